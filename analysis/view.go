package analysis

import (
	"fmt"

	"hermannm.dev/salesdash/sales"
)

// Inclusive range of calendar dates.
type DateRange struct {
	Start sales.Date `json:"start"`
	End   sales.Date `json:"end"`
}

// The range spanning every record in the table. ok is false for an empty table.
func FullRange(table sales.Table) (dateRange DateRange, ok bool) {
	first, last, ok := table.DateSpan()
	if !ok {
		return DateRange{}, false
	}
	return DateRange{Start: first, End: last}, true
}

func (dateRange DateRange) Validate() error {
	if dateRange.Start.IsZero() || dateRange.End.IsZero() {
		return fmt.Errorf("%w: date range must have both start and end", ErrInvalidSelection)
	}
	if dateRange.Start.After(dateRange.End.Time) {
		return fmt.Errorf(
			"%w: date range start %v is after end %v",
			ErrInvalidSelection,
			dateRange.Start,
			dateRange.End,
		)
	}
	return nil
}

func (dateRange DateRange) Contains(date sales.Date) bool {
	return !date.Before(dateRange.Start.Time) && !date.After(dateRange.End.Time)
}

func (dateRange DateRange) String() string {
	return fmt.Sprintf("%v to %v", dateRange.Start, dateRange.End)
}

// The records of a table that fall within a date range, in table order. An empty view is a
// normal result, and must be checked with IsEmpty before computing KPIs.
type View struct {
	records []sales.Record
}

func FilterByDate(table sales.Table, dateRange DateRange) View {
	var records []sales.Record

	table.Each(func(_ int, record sales.Record) bool {
		if dateRange.Contains(record.Date) {
			records = append(records, record)
		}
		return true
	})

	return View{records: records}
}

// View over every record in the table.
func All(table sales.Table) View {
	return View{records: table.Records()}
}

func (view View) Len() int {
	return len(view.records)
}

func (view View) IsEmpty() bool {
	return len(view.records) == 0
}

func (view View) Record(index int) sales.Record {
	return view.records[index]
}

// Returns a copy of the records in the view.
func (view View) Records() []sales.Record {
	records := make([]sales.Record, len(view.records))
	copy(records, view.records)
	return records
}
