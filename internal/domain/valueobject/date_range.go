package valueobject

import (
	"errors"
	"time"
)

var errEmptyRange = errors.New("date range end must be after its start")

// DateRange is a half-open interval [From, To). A zero bound is unbounded.
type DateRange struct {
	From time.Time
	To   time.Time
}

// NewDateRange creates a DateRange, normalizing bounds to UTC.
func NewDateRange(from, to time.Time) (DateRange, error) {
	r := DateRange{}
	if !from.IsZero() {
		r.From = from.UTC()
	}
	if !to.IsZero() {
		r.To = to.UTC()
	}
	if r.HasFrom() && r.HasTo() && !r.To.After(r.From) {
		return DateRange{}, errEmptyRange
	}
	return r, nil
}

// MonthRange returns the range covering a calendar month in UTC.
func MonthRange(year int, month time.Month) DateRange {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return DateRange{From: from, To: from.AddDate(0, 1, 0)}
}

// HasFrom reports whether the range has a lower bound.
func (r DateRange) HasFrom() bool { return !r.From.IsZero() }

// HasTo reports whether the range has an upper bound.
func (r DateRange) HasTo() bool { return !r.To.IsZero() }

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	if r.HasFrom() && t.Before(r.From) {
		return false
	}
	if r.HasTo() && !t.Before(r.To) {
		return false
	}
	return true
}
