package sales

import (
	"github.com/google/uuid"
)

// Table is the validated dataset produced by one load of the source. It is never mutated
// after construction, so it can be shared freely between concurrent readers.
type Table struct {
	loadID  uuid.UUID
	source  string
	records []Record
}

// Takes ownership of the given records; callers must not modify the slice afterwards.
func NewTable(source string, records []Record) Table {
	return Table{loadID: uuid.New(), source: source, records: records}
}

// Unique per load event, so consumers can tell a reloaded table from a cached one.
func (table Table) LoadID() uuid.UUID {
	return table.loadID
}

func (table Table) Source() string {
	return table.source
}

func (table Table) Len() int {
	return len(table.records)
}

func (table Table) IsEmpty() bool {
	return len(table.records) == 0
}

func (table Table) Record(index int) Record {
	return table.records[index]
}

// Returns a copy of the table's records in their original order.
func (table Table) Records() []Record {
	records := make([]Record, len(table.records))
	copy(records, table.records)
	return records
}

// Calls yield for every record in table order, stopping early if it returns false.
func (table Table) Each(yield func(index int, record Record) bool) {
	for i, record := range table.records {
		if !yield(i, record) {
			return
		}
	}
}

// Earliest and latest dates in the table. ok is false for an empty table.
func (table Table) DateSpan() (first Date, last Date, ok bool) {
	if len(table.records) == 0 {
		return Date{}, Date{}, false
	}

	first = table.records[0].Date
	last = first
	for _, record := range table.records[1:] {
		if record.Date.Before(first.Time) {
			first = record.Date
		}
		if record.Date.After(last.Time) {
			last = record.Date
		}
	}

	return first, last, true
}
