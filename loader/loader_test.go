package loader_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"hermannm.dev/salesdash/loader"
	"hermannm.dev/salesdash/sales"
)

const scenarioCSV = `Product,Date,Region,Sales,Quantity Sold
ProdA,2024-01-01,Region1,100,5
ProdB,2024-01-02,Region1,50,2
ProdA,2024-01-03,Region2,200,1
ProdC,not-a-date,Region1,10,1
`

func writeFile(t *testing.T, name string, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDropsInvalidRows(t *testing.T) {
	table, err := loader.Load(writeFile(t, "data.csv", scenarioCSV))
	require.NoError(t, err)

	assert.Equal(t, []sales.Record{
		{
			Product:      "ProdA",
			Region:       "Region1",
			Date:         sales.NewDate(2024, time.January, 1),
			Sales:        100,
			QuantitySold: 5,
		},
		{
			Product:      "ProdB",
			Region:       "Region1",
			Date:         sales.NewDate(2024, time.January, 2),
			Sales:        50,
			QuantitySold: 2,
		},
		{
			Product:      "ProdA",
			Region:       "Region2",
			Date:         sales.NewDate(2024, time.January, 3),
			Sales:        200,
			QuantitySold: 1,
		},
	}, table.Records())
}

func TestLoadDropsRowWithAnyInvalidField(t *testing.T) {
	path := writeFile(t, "data.csv", `Region,Quantity Sold,Sales,Date,Product,Notes
North,3,10.5,2024-05-01,Widget,kept
,3,10.5,2024-05-01,Widget,blank region
North,3,10.5,2024-05-01,,blank product
North,three,10.5,2024-05-01,Widget,bad quantity
North,3,ten,2024-05-01,Widget,bad sales
North,3,NaN,2024-05-01,Widget,NaN sales
North,3,10.5,,Widget,blank date
North,3,10.5,2024-13-01,Widget,impossible date
North,3
South,1,2,2024-05-02T10:30:00Z,Gadget,kept with time of day
`)

	table, err := loader.Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	assert.Equal(t, sales.Record{
		Product:      "Widget",
		Region:       "North",
		Date:         sales.NewDate(2024, time.May, 1),
		Sales:        10.5,
		QuantitySold: 3,
	}, table.Record(0))
	assert.Equal(t, "Gadget", table.Record(1).Product)
	assert.Equal(t, sales.NewDate(2024, time.May, 2), table.Record(1).Date)
}

func TestLoadWithOnlyInvalidRowsGivesEmptyTable(t *testing.T) {
	table, err := loader.Load(writeFile(t, "data.csv", "Product,Sales,Quantity Sold,Date,Region\nA,x,1,2024-01-01,R\n"))
	require.NoError(t, err)
	assert.True(t, table.IsEmpty())
}

func TestLoadMissingSource(t *testing.T) {
	_, err := loader.Load(filepath.Join(t.TempDir(), "data.xlsx"))
	require.Error(t, err)

	assert.True(t, loader.IsNotFound(err))
	assert.False(t, loader.IsParseFailure(err))

	var loadErr *loader.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, loader.SourceNotFound, loadErr.Kind)
}

func TestLoadMissingColumnIsParseFailure(t *testing.T) {
	_, err := loader.Load(writeFile(t, "data.csv", "Product,Sales,Date,Region\nA,1,2024-01-01,R\n"))
	require.Error(t, err)

	assert.True(t, loader.IsParseFailure(err))
	assert.Contains(t, err.Error(), "Quantity Sold")
}

func TestLoadColumnNamesAreExactMatch(t *testing.T) {
	_, err := loader.Load(writeFile(t, "data.csv", "product,sales,quantity sold,date,region\nA,1,1,2024-01-01,R\n"))
	assert.True(t, loader.IsParseFailure(err))
}

func TestLoadUnreadableFileIsParseFailure(t *testing.T) {
	_, err := loader.Load(writeFile(t, "data.xlsx", "this is not a zip archive"))
	require.Error(t, err)
	assert.True(t, loader.IsParseFailure(err))
}

func TestLoadExcelWithSerialDates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")

	file := excelize.NewFile()
	rows := [][]any{
		{"Date", "Product", "Region", "Sales", "Quantity Sold"},
		{time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), "ProdA", "Region1", 100, 5},
		{"2024-01-02", "ProdB", "Region1", 50.25, 2},
		{"not-a-date", "ProdC", "Region1", 10, 1},
		{time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC), "ProdA", "Region2", "n/a", 1},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, file.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, file.SaveAs(path))
	require.NoError(t, file.Close())

	table, err := loader.Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	assert.Equal(t, sales.NewDate(2024, time.January, 1), table.Record(0).Date)
	assert.Equal(t, 100.0, table.Record(0).Sales)
	assert.Equal(t, sales.NewDate(2024, time.January, 2), table.Record(1).Date)
	assert.Equal(t, 50.25, table.Record(1).Sales)
}

func TestLoadExcelWith1904DateSystem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")

	file := excelize.NewFile()
	date1904 := true
	require.NoError(t, file.SetWorkbookProps(&excelize.WorkbookPropsOptions{Date1904: &date1904}))
	rows := [][]any{
		{"Date", "Product", "Region", "Sales", "Quantity Sold"},
		// 2024-01-01 counted from 1904-01-01; the 1900 system would give 2019-12-31
		{43830, "ProdA", "Region1", 100, 5},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, file.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, file.SaveAs(path))
	require.NoError(t, file.Close())

	table, err := loader.Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, sales.NewDate(2024, time.January, 1), table.Record(0).Date)
}

func TestLoadDropsMonthOnlyDates(t *testing.T) {
	table, err := loader.Load(writeFile(
		t,
		"data.csv",
		"Product,Date,Region,Sales,Quantity Sold\nProdA,2024.01,Region1,100,5\nProdB,2024.01.02,Region1,50,2\n",
	))
	require.NoError(t, err)

	require.Equal(t, 1, table.Len())
	assert.Equal(t, "ProdB", table.Record(0).Product)
	assert.Equal(t, sales.NewDate(2024, time.January, 2), table.Record(0).Date)
}

func TestLoadLegacyExcelIsParseFailure(t *testing.T) {
	_, err := loader.Load(writeFile(t, "data.xls", "legacy workbook"))
	require.Error(t, err)
	assert.True(t, loader.IsParseFailure(err))
}
