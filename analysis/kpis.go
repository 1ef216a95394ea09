package analysis

import (
	"errors"

	"github.com/shopspring/decimal"
	"hermannm.dev/salesdash/sales"
)

// Returned by ComputeKPIs for an empty view, where averages, maximums and top entities are
// undefined.
var ErrEmptyView = errors.New("no records in selected date range")

type KPISet struct {
	TotalSales  float64 `json:"totalSales"`
	AverageSale float64 `json:"averageSale"`
	MaxSale     float64 `json:"maxSale"`
	// Product of the first record with the highest sale.
	TopProduct string `json:"topProduct"`
	// Region with the highest summed sales.
	TopRegion        string  `json:"topRegion"`
	TotalOrders      int     `json:"totalOrders"`
	TotalQuantity    float64 `json:"totalQuantity"`
	DistinctProducts int     `json:"distinctProducts"`
	// Mean of the per-day sales sums, as opposed to AverageSale which is per record.
	AverageDailySales float64    `json:"averageDailySales"`
	BestDay           sales.Date `json:"bestDay"`
	BestDaySales      float64    `json:"bestDaySales"`
}

func ComputeKPIs(view View) (KPISet, error) {
	if view.IsEmpty() {
		return KPISet{}, ErrEmptyView
	}

	totalSales := decimal.Zero
	totalQuantity := decimal.Zero
	products := make(map[string]struct{})
	maxIndex := 0

	for i, record := range view.records {
		totalSales = totalSales.Add(decimal.NewFromFloat(record.Sales))
		totalQuantity = totalQuantity.Add(decimal.NewFromFloat(record.QuantitySold))
		products[record.Product] = struct{}{}

		// Strictly greater, so the first record with the max wins ties
		if record.Sales > view.records[maxIndex].Sales {
			maxIndex = i
		}
	}

	count := decimal.NewFromInt(int64(len(view.records)))
	topRegion := maxGroup(sumGroups(view.records, sales.DimensionRegion.Of, sales.MetricSales))

	days := sumGroups(view.records, recordDate, sales.MetricSales)
	bestDay := maxGroup(days)
	averageDailySales := totalSales.Div(decimal.NewFromInt(int64(len(days))))

	return KPISet{
		TotalSales:        totalSales.InexactFloat64(),
		AverageSale:       totalSales.Div(count).InexactFloat64(),
		MaxSale:           view.records[maxIndex].Sales,
		TopProduct:        view.records[maxIndex].Product,
		TopRegion:         topRegion.key,
		TotalOrders:       len(view.records),
		TotalQuantity:     totalQuantity.InexactFloat64(),
		DistinctProducts:  len(products),
		AverageDailySales: averageDailySales.InexactFloat64(),
		BestDay:           bestDay.key,
		BestDaySales:      bestDay.total.InexactFloat64(),
	}, nil
}
