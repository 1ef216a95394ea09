package loader

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"hermannm.dev/salesdash/sales"
	"hermannm.dev/salesdash/spreadsheet"
)

var dateLayouts = []string{
	sales.DateLayout,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
	"2006.01.02",
	"01/02/2006",
	"1/2/2006",
	"01/02/2006 15:04:05",
	"1/2/2006 15:04",
	"02-Jan-2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// Parses a numeric cell. Blank, non-numeric, NaN and infinite values count as missing.
func coerceNumber(field string) (value float64, ok bool) {
	field = strings.TrimSpace(field)
	if field == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(field, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

// Parses a date cell into a calendar date, dropping any time of day. Unless dateSystem is
// NoSerialDates, plain numbers are read as Excel serial day numbers in that system.
func coerceDate(
	field string,
	dateSystem spreadsheet.SerialDateSystem,
) (date sales.Date, ok bool) {
	field = strings.TrimSpace(field)
	if field == "" {
		return sales.Date{}, false
	}

	if dateSystem != spreadsheet.NoSerialDates {
		if serial, err := strconv.ParseFloat(field, 64); err == nil {
			if serial <= 0 || math.IsNaN(serial) || math.IsInf(serial, 0) {
				return sales.Date{}, false
			}

			t, err := excelize.ExcelDateToTime(serial, dateSystem == spreadsheet.Excel1904)
			if err != nil {
				return sales.Date{}, false
			}
			return sales.DateOf(t), true
		}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, field); err == nil {
			return sales.DateOf(t), true
		}
	}

	return sales.Date{}, false
}

func coerceLabel(field string) (label string, ok bool) {
	if strings.TrimSpace(field) == "" {
		return "", false
	}
	return field, true
}
