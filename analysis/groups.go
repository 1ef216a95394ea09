package analysis

import (
	"slices"

	"github.com/shopspring/decimal"
	"hermannm.dev/salesdash/sales"
)

type GroupSum struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

type DayTotal struct {
	Date  sales.Date `json:"date"`
	Value float64    `json:"value"`
}

// Sums metric per dimension value, sorted by sum in descending order. Equal sums keep the
// order in which their category first appears in the view. If topN is positive, at most topN
// groups are returned.
func GroupAndSum(view View, dimension sales.Dimension, metric sales.Metric, topN int) []GroupSum {
	groups := sumGroups(view.records, dimension.Of, metric)

	slices.SortStableFunc(groups, func(group1 group[string], group2 group[string]) int {
		return group2.total.Cmp(group1.total)
	})

	if topN > 0 && len(groups) > topN {
		groups = groups[:topN]
	}

	sums := make([]GroupSum, 0, len(groups))
	for _, group := range groups {
		sums = append(sums, GroupSum{Category: group.key, Value: group.total.InexactFloat64()})
	}
	return sums
}

// Sums metric per dimension value without truncation, for proportional charts.
func DistributionBy(view View, dimension sales.Dimension, metric sales.Metric) []GroupSum {
	return GroupAndSum(view, dimension, metric, 0)
}

// Proportion of the distribution's total held by each group, in the same order. All shares
// are 0 if the total is 0.
func Shares(distribution []GroupSum) []float64 {
	total := decimal.Zero
	for _, group := range distribution {
		total = total.Add(decimal.NewFromFloat(group.Value))
	}

	shares := make([]float64, len(distribution))
	if total.IsZero() {
		return shares
	}

	for i, group := range distribution {
		shares[i] = decimal.NewFromFloat(group.Value).Div(total).InexactFloat64()
	}
	return shares
}

// Sums metric per date, in ascending date order. Dates without records are left out.
func DailySum(view View, metric sales.Metric) []DayTotal {
	groups := sumGroups(view.records, recordDate, metric)

	slices.SortStableFunc(groups, func(group1 group[sales.Date], group2 group[sales.Date]) int {
		return group1.key.Compare(group2.key)
	})

	sums := make([]DayTotal, 0, len(groups))
	for _, group := range groups {
		sums = append(sums, DayTotal{Date: group.key, Value: group.total.InexactFloat64()})
	}
	return sums
}

type group[Key comparable] struct {
	key   Key
	total decimal.Decimal
}

// Groups in order of first occurrence. Sums are kept as decimals so that equal totals
// compare equal regardless of summation order.
func sumGroups[Key comparable](
	records []sales.Record,
	keyOf func(sales.Record) Key,
	metric sales.Metric,
) []group[Key] {
	var groups []group[Key]
	indexes := make(map[Key]int)

	for _, record := range records {
		key := keyOf(record)
		value := decimal.NewFromFloat(metric.Of(record))

		if i, exists := indexes[key]; exists {
			groups[i].total = groups[i].total.Add(value)
		} else {
			indexes[key] = len(groups)
			groups = append(groups, group[Key]{key: key, total: value})
		}
	}

	return groups
}

// First group with the highest total. groups must not be empty.
func maxGroup[Key comparable](groups []group[Key]) group[Key] {
	best := groups[0]
	for _, candidate := range groups[1:] {
		if candidate.total.GreaterThan(best.total) {
			best = candidate
		}
	}
	return best
}

func recordDate(record sales.Record) sales.Date {
	return record.Date
}
