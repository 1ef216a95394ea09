package dashboard_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hermannm.dev/salesdash/analysis"
	"hermannm.dev/salesdash/dashboard"
	"hermannm.dev/salesdash/sales"
)

func day(dayOfMonth int) sales.Date {
	return sales.NewDate(2024, time.January, dayOfMonth)
}

func scenarioTable() sales.Table {
	return sales.NewTable("scenario", []sales.Record{
		{Product: "ProdA", Region: "Region1", Date: day(1), Sales: 100, QuantitySold: 5},
		{Product: "ProdB", Region: "Region1", Date: day(2), Sales: 50, QuantitySold: 2},
		{Product: "ProdA", Region: "Region2", Date: day(3), Sales: 200, QuantitySold: 1},
	})
}

func TestBuildWithDefaults(t *testing.T) {
	table := scenarioTable()

	result, err := dashboard.Build(table, dashboard.Query{})
	require.NoError(t, err)

	assert.False(t, result.Empty)
	assert.Equal(t, table.LoadID().String(), result.LoadID)
	assert.Equal(t, analysis.DateRange{Start: day(1), End: day(3)}, result.DateRange)

	require.NotNil(t, result.KPIs)
	assert.Equal(t, 350.0, result.KPIs.TotalSales)
	assert.Equal(t, "350.00", result.KPIs.Display.TotalSales)
	assert.Equal(t, "ProdA", result.KPIs.TopProduct)

	require.NotNil(t, result.Bar)
	assert.Equal(t, "Top 10 Product by Sales", result.Bar.Title)
	assert.Equal(t, []analysis.GroupSum{
		{Category: "ProdA", Value: 300},
		{Category: "ProdB", Value: 50},
	}, result.Bar.Bars)

	require.NotNil(t, result.Trend)
	assert.Equal(t, "Daily Sales Trend (2024-01-01 to 2024-01-03)", result.Trend.Title)
	assert.Len(t, result.Trend.Points, 3)

	require.NotNil(t, result.Pie)
	assert.Equal(t, "Sales Distribution by Product (2024-01-01 to 2024-01-03)", result.Pie.Title)
	require.Len(t, result.Pie.Slices, 2)
	assert.InDelta(t, 300.0/350.0, result.Pie.Slices[0].Share, 1e-9)
}

func TestBuildWithSelection(t *testing.T) {
	dateRange := analysis.DateRange{Start: day(1), End: day(2)}
	query := dashboard.Query{
		DateRange: &dateRange,
		Bar: &analysis.Selection{
			Dimension: sales.DimensionRegion,
			Metric:    sales.MetricQuantitySold,
			TopN:      3,
		},
		TrendMetric:  sales.MetricQuantitySold,
		PieDimension: sales.DimensionRegion,
	}

	result, err := dashboard.Build(scenarioTable(), query)
	require.NoError(t, err)

	assert.Equal(t, 150.0, result.KPIs.TotalSales)
	assert.Equal(t, 75.0, result.KPIs.AverageSale)
	assert.Equal(t, "Top 3 Region by Quantity Sold", result.Bar.Title)
	assert.Equal(t, []analysis.GroupSum{{Category: "Region1", Value: 7}}, result.Bar.Bars)
	assert.Equal(t, []analysis.DayTotal{
		{Date: day(1), Value: 5},
		{Date: day(2), Value: 2},
	}, result.Trend.Points)
	assert.Equal(t, []dashboard.PieSlice{
		{Category: "Region1", Value: 150, Share: 1},
	}, result.Pie.Slices)
}

func TestBuildWithNoDataInRange(t *testing.T) {
	dateRange := analysis.DateRange{Start: day(10), End: day(12)}

	result, err := dashboard.Build(scenarioTable(), dashboard.Query{DateRange: &dateRange})
	require.NoError(t, err)

	assert.True(t, result.Empty)
	assert.Equal(t, dashboard.NoDataMessage, result.Message)
	assert.Nil(t, result.KPIs)
	assert.Nil(t, result.Bar)
	assert.Nil(t, result.Trend)
	assert.Nil(t, result.Pie)
}

func TestBuildWithEmptyTable(t *testing.T) {
	result, err := dashboard.Build(sales.NewTable("empty", nil), dashboard.Query{})
	require.NoError(t, err)
	assert.True(t, result.Empty)
}

func TestBuildRejectsInvalidSelection(t *testing.T) {
	reversed := analysis.DateRange{Start: day(3), End: day(1)}

	for name, query := range map[string]dashboard.Query{
		"reversed date range": {DateRange: &reversed},
		"top N out of bounds": {Bar: &analysis.Selection{
			Dimension: sales.DimensionProduct,
			Metric:    sales.MetricSales,
			TopN:      50,
		}},
		"invalid pie dimension": {PieDimension: 7},
		"invalid trend metric":  {TrendMetric: 7},
	} {
		_, err := dashboard.Build(scenarioTable(), query)
		assert.ErrorIs(t, err, analysis.ErrInvalidSelection, name)
	}
}

func TestQueryJSON(t *testing.T) {
	var query dashboard.Query
	require.NoError(t, json.Unmarshal([]byte(`{
		"dateRange": {"start": "2024-01-01", "end": "2024-01-02"},
		"bar": {"dimension": "Region", "metric": "Quantity Sold", "topN": 5},
		"pieDimension": "Region"
	}`), &query))

	require.NotNil(t, query.DateRange)
	assert.Equal(t, day(2), query.DateRange.End)
	assert.Equal(t, sales.DimensionRegion, query.Bar.Dimension)
	assert.Equal(t, sales.MetricQuantitySold, query.Bar.Metric)
	assert.Equal(t, 5, query.Bar.TopN)
	assert.Equal(t, sales.DimensionRegion, query.PieDimension)
	assert.Equal(t, sales.Metric(0), query.TrendMetric)

	assert.Error(t, json.Unmarshal([]byte(`{"pieDimension": "Date"}`), &query))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1,234,567.89", dashboard.FormatAmount(1234567.891))
	assert.Equal(t, "75.00", dashboard.FormatAmount(75))
	assert.Equal(t, "12,345", dashboard.FormatCount(12345))
}
