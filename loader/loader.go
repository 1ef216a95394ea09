package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"hermannm.dev/devlog/log"
	"hermannm.dev/salesdash/sales"
	"hermannm.dev/salesdash/spreadsheet"
	"hermannm.dev/wrap"
)

// Reads the spreadsheet at path into a Table. Rows with a missing or invalid value in any of
// the required columns are dropped; surviving rows keep their original order. A table with
// zero rows is a valid result.
//
// All failures are returned as *LoadError.
func Load(path string) (sales.Table, error) {
	reader, err := spreadsheet.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return sales.Table{}, &LoadError{Kind: SourceNotFound, Source: path, Cause: err}
		}
		return sales.Table{}, &LoadError{Kind: ParseFailure, Source: path, Cause: err}
	}
	defer reader.Close()

	table, err := ReadTable(path, reader)
	if err != nil {
		return sales.Table{}, &LoadError{Kind: ParseFailure, Source: path, Cause: err}
	}

	return table, nil
}

type LoadStats struct {
	RowsRead    int
	RowsDropped int
}

// Reads and coerces all rows from an already opened reader. Used by Load, and exposed for
// sources that do not come from a file path.
func ReadTable(source string, reader spreadsheet.Reader) (sales.Table, error) {
	header, err := reader.ReadHeaderRow()
	if err != nil {
		return sales.Table{}, wrap.Error(err, "failed to read header row")
	}

	columns, err := newColumnIndex(header)
	if err != nil {
		return sales.Table{}, err
	}

	var records []sales.Record
	var stats LoadStats
	dateSystem := reader.SerialDates()

	for {
		row, rowNumber, done, err := reader.ReadRow()
		if done {
			break
		}
		if err != nil {
			return sales.Table{}, wrap.Errorf(err, "failed to read row %d", stats.RowsRead+2)
		}
		stats.RowsRead++

		record, ok := columns.coerceRow(row, dateSystem)
		if !ok {
			stats.RowsDropped++
			log.Debug(
				"dropped row with missing or invalid values",
				slog.String("source", source),
				slog.Int("row", rowNumber),
			)
			continue
		}

		records = append(records, record)
	}

	log.Debug(
		"loaded sales table",
		slog.String("source", source),
		slog.Int("rowsRead", stats.RowsRead),
		slog.Int("rowsDropped", stats.RowsDropped),
		slog.Int("records", len(records)),
	)

	return sales.NewTable(source, records), nil
}

type columnIndex struct {
	product      int
	sales        int
	quantitySold int
	date         int
	region       int
}

func newColumnIndex(header []string) (columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		if _, duplicate := positions[name]; duplicate {
			if isRequiredColumn(name) {
				return columnIndex{}, fmt.Errorf("duplicate column '%s' in header row", name)
			}
			continue
		}
		positions[name] = i
	}

	var missing []error
	lookup := func(name string) int {
		position, ok := positions[name]
		if !ok {
			missing = append(missing, fmt.Errorf("missing column '%s'", name))
			return -1
		}
		return position
	}

	columns := columnIndex{
		product:      lookup(sales.ColumnProduct),
		sales:        lookup(sales.ColumnSales),
		quantitySold: lookup(sales.ColumnQuantitySold),
		date:         lookup(sales.ColumnDate),
		region:       lookup(sales.ColumnRegion),
	}

	if len(missing) > 0 {
		return columnIndex{}, wrap.Errors("header row is missing required columns", missing...)
	}

	return columns, nil
}

func isRequiredColumn(name string) bool {
	for _, required := range sales.RequiredColumns {
		if name == required {
			return true
		}
	}
	return false
}

func (columns columnIndex) coerceRow(
	row []string,
	dateSystem spreadsheet.SerialDateSystem,
) (sales.Record, bool) {
	product, ok := coerceLabel(field(row, columns.product))
	if !ok {
		return sales.Record{}, false
	}

	region, ok := coerceLabel(field(row, columns.region))
	if !ok {
		return sales.Record{}, false
	}

	salesValue, ok := coerceNumber(field(row, columns.sales))
	if !ok {
		return sales.Record{}, false
	}

	quantitySold, ok := coerceNumber(field(row, columns.quantitySold))
	if !ok {
		return sales.Record{}, false
	}

	date, ok := coerceDate(field(row, columns.date), dateSystem)
	if !ok {
		return sales.Record{}, false
	}

	return sales.Record{
		Product:      product,
		Region:       region,
		Date:         date,
		Sales:        salesValue,
		QuantitySold: quantitySold,
	}, true
}

// Cells past the end of a short row are blank.
func field(row []string, index int) string {
	if index >= len(row) {
		return ""
	}
	return row[index]
}
