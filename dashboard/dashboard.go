package dashboard

import (
	"fmt"
	"time"

	"hermannm.dev/salesdash/analysis"
	"hermannm.dev/salesdash/sales"
)

const NoDataMessage = "No data in the selected date range."

// Parameters chosen by the user for one recomputation of the dashboard. Omitted fields use
// the same defaults as the initial page: the table's full date span, top 10 products by
// sales, and sales for the trend line and pie chart.
type Query struct {
	DateRange    *analysis.DateRange `json:"dateRange,omitempty"`
	Bar          *analysis.Selection `json:"bar,omitempty"`
	TrendMetric  sales.Metric        `json:"trendMetric,omitempty"`
	PieDimension sales.Dimension     `json:"pieDimension,omitempty"`
	PieMetric    sales.Metric        `json:"pieMetric,omitempty"`
}

type Result struct {
	LoadID    string             `json:"loadId"`
	DateRange analysis.DateRange `json:"dateRange"`
	// Set when no records fall in the date range. All other fields below are then nil.
	Empty   bool   `json:"empty"`
	Message string `json:"message,omitempty"`

	KPIs  *KPIs      `json:"kpis,omitempty"`
	Bar   *BarChart  `json:"bar,omitempty"`
	Trend *LineChart `json:"trend,omitempty"`
	Pie   *PieChart  `json:"pie,omitempty"`
}

type KPIs struct {
	analysis.KPISet
	Display KPIDisplay `json:"display"`
}

type KPIDisplay struct {
	TotalSales        string `json:"totalSales"`
	AverageSale       string `json:"averageSale"`
	MaxSale           string `json:"maxSale"`
	TotalOrders       string `json:"totalOrders"`
	TotalQuantity     string `json:"totalQuantity"`
	AverageDailySales string `json:"averageDailySales"`
	BestDaySales      string `json:"bestDaySales"`
}

type BarChart struct {
	Title     string              `json:"title"`
	Dimension sales.Dimension     `json:"dimension"`
	Metric    sales.Metric        `json:"metric"`
	TopN      int                 `json:"topN"`
	Bars      []analysis.GroupSum `json:"bars"`
}

type LineChart struct {
	Title  string              `json:"title"`
	Metric sales.Metric        `json:"metric"`
	Points []analysis.DayTotal `json:"points"`
}

type PieChart struct {
	Title     string          `json:"title"`
	Dimension sales.Dimension `json:"dimension"`
	Metric    sales.Metric    `json:"metric"`
	Slices    []PieSlice      `json:"slices"`
}

type PieSlice struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
	Share    float64 `json:"share"`
}

// Runs one full pass over the table for the given query. Invalid parameters are rejected
// with an error matching analysis.ErrInvalidSelection before anything is computed. A date
// range without records gives an empty result, not an error.
func Build(table sales.Table, query Query) (Result, error) {
	query = query.withDefaults(table)
	if err := query.validate(); err != nil {
		return Result{}, err
	}

	result := Result{LoadID: table.LoadID().String(), DateRange: *query.DateRange}

	view := analysis.FilterByDate(table, *query.DateRange)
	if view.IsEmpty() {
		result.Empty = true
		result.Message = NoDataMessage
		return result, nil
	}

	kpis, err := analysis.ComputeKPIs(view)
	if err != nil {
		return Result{}, err
	}
	result.KPIs = &KPIs{KPISet: kpis, Display: formatKPIs(kpis)}

	result.Bar = &BarChart{
		Title: fmt.Sprintf(
			"Top %d %v by %v", query.Bar.TopN, query.Bar.Dimension, query.Bar.Metric,
		),
		Dimension: query.Bar.Dimension,
		Metric:    query.Bar.Metric,
		TopN:      query.Bar.TopN,
		Bars:      analysis.GroupAndSum(view, query.Bar.Dimension, query.Bar.Metric, query.Bar.TopN),
	}

	result.Trend = &LineChart{
		Title:  fmt.Sprintf("Daily %v Trend (%v)", query.TrendMetric, query.DateRange),
		Metric: query.TrendMetric,
		Points: analysis.DailySum(view, query.TrendMetric),
	}

	distribution := analysis.DistributionBy(view, query.PieDimension, query.PieMetric)
	shares := analysis.Shares(distribution)
	slices := make([]PieSlice, len(distribution))
	for i, group := range distribution {
		slices[i] = PieSlice{Category: group.Category, Value: group.Value, Share: shares[i]}
	}
	result.Pie = &PieChart{
		Title: fmt.Sprintf(
			"%v Distribution by %v (%v)", query.PieMetric, query.PieDimension, query.DateRange,
		),
		Dimension: query.PieDimension,
		Metric:    query.PieMetric,
		Slices:    slices,
	}

	return result, nil
}

func (query Query) withDefaults(table sales.Table) Query {
	if query.DateRange == nil {
		fullRange, ok := analysis.FullRange(table)
		if !ok {
			// Nothing to show for an empty table; any valid range gives the empty state
			today := sales.DateOf(time.Now())
			fullRange = analysis.DateRange{Start: today, End: today}
		}
		query.DateRange = &fullRange
	}

	if query.Bar == nil {
		bar := analysis.DefaultSelection()
		query.Bar = &bar
	}
	if query.TrendMetric == 0 {
		query.TrendMetric = sales.MetricSales
	}
	if query.PieDimension == 0 {
		query.PieDimension = sales.DimensionProduct
	}
	if query.PieMetric == 0 {
		query.PieMetric = sales.MetricSales
	}

	return query
}

func (query Query) validate() error {
	if err := query.DateRange.Validate(); err != nil {
		return err
	}
	if err := query.Bar.Validate(); err != nil {
		return err
	}
	if !query.TrendMetric.IsValid() {
		return fmt.Errorf("%w: invalid trend metric", analysis.ErrInvalidSelection)
	}
	if !query.PieDimension.IsValid() {
		return fmt.Errorf("%w: invalid pie chart dimension", analysis.ErrInvalidSelection)
	}
	if !query.PieMetric.IsValid() {
		return fmt.Errorf("%w: invalid pie chart metric", analysis.ErrInvalidSelection)
	}
	return nil
}

func formatKPIs(kpis analysis.KPISet) KPIDisplay {
	return KPIDisplay{
		TotalSales:        FormatAmount(kpis.TotalSales),
		AverageSale:       FormatAmount(kpis.AverageSale),
		MaxSale:           FormatAmount(kpis.MaxSale),
		TotalOrders:       FormatCount(kpis.TotalOrders),
		TotalQuantity:     FormatAmount(kpis.TotalQuantity),
		AverageDailySales: FormatAmount(kpis.AverageDailySales),
		BestDaySales:      FormatAmount(kpis.BestDaySales),
	}
}
