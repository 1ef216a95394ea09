package sales

import (
	"encoding/json"
	"time"

	"hermannm.dev/wrap"
)

const DateLayout = "2006-01-02"

// A calendar date, stored as midnight UTC so dates compare with ==, Before and After.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Drops the clock part of the given time, keeping the date as seen in its own location.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return NewDate(year, month, day)
}

func ParseDate(value string) (Date, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return Date{}, wrap.Errorf(err, "invalid date '%s' (expected format %s)", value, DateLayout)
	}
	return DateOf(t), nil
}

func (date Date) String() string {
	return date.Format(DateLayout)
}

func (date Date) Compare(other Date) int {
	switch {
	case date.Before(other.Time):
		return -1
	case date.After(other.Time):
		return 1
	default:
		return 0
	}
}

func (date Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(date.String())
}

func (date *Date) UnmarshalJSON(bytes []byte) error {
	var value string
	if err := json.Unmarshal(bytes, &value); err != nil {
		return wrap.Error(err, "expected date string")
	}

	parsed, err := ParseDate(value)
	if err != nil {
		return err
	}

	*date = parsed
	return nil
}
