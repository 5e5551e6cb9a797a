// Package datetime holds the calendar-date and timestamp conventions used on
// the wire: dates are YYYY-MM-DD without zone, timestamps are
// YYYY-MM-DD HH:MM:SS (RFC 3339 also accepted).
package datetime

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)

var (
	ErrInvalidDate      = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidTimestamp = errors.New("invalid timestamp, expected YYYY-MM-DD HH:MM:SS")
)

// ParseDate parses a civil date as midnight UTC.
func ParseDate(v string) (time.Time, error) {
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// ParseOptionalDate returns nil for an empty string.
func ParseOptionalDate(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := ParseDate(v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func ParseTimestamp(v string) (time.Time, error) {
	if t, err := time.Parse(TimestampLayout, v); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, ErrInvalidTimestamp
}

// ParseOptionalTimestamp returns nil for a nil or empty value.
func ParseOptionalTimestamp(v *string) (*time.Time, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	t, err := ParseTimestamp(*v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

func FormatOptionalTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := FormatTimestamp(*t)
	return &v
}

// DateOf truncates t to its calendar date in t's location, returned as
// midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const secondsPerDay = 24 * 60 * 60

// InclusiveDays counts calendar days in [start, end]; 2024-01-01..2024-01-05
// is 5. It returns 0 when end is before start.
func InclusiveDays(start, end time.Time) int {
	s, e := DateOf(start), DateOf(end)
	if e.Before(s) {
		return 0
	}
	return int((e.Unix()-s.Unix())/secondsPerDay) + 1
}

// Hours is end-start in fractional hours, exact to the second.
func Hours(start, end time.Time) decimal.Decimal {
	seconds := decimal.NewFromInt(end.Unix() - start.Unix())
	return seconds.DivRound(decimal.NewFromInt(3600), 4)
}

// EachDay calls fn for every calendar date in [start, end].
func EachDay(start, end time.Time, fn func(day time.Time) error) error {
	for d := DateOf(start); !d.After(DateOf(end)); d = d.AddDate(0, 0, 1) {
		if err := fn(d); err != nil {
			return err
		}
	}
	return nil
}
