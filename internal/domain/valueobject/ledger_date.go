package valueobject

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the calendar-day layout used for exported dates.
const DateLayout = "2006-01-02"

var errMalformedDate = errors.New("malformed date")

// dayLayouts are the accepted calendar-day layouts, tried in order.
var dayLayouts = []string{
	DateLayout,
	"02-01-2006",
	"02/01/2006",
	"02.01.2006",
}

// ParseLedgerDate parses a date as written in imported rows or API requests.
// Calendar days resolve to midnight UTC; RFC 3339 timestamps keep their instant.
func ParseLedgerDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, errMalformedDate
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC().Truncate(time.Microsecond), nil
	}
	for _, layout := range dayLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errMalformedDate
}

// FormatLedgerDate renders t as a calendar day when it is midnight UTC, and as
// RFC 3339 otherwise, so that parsing the result yields t again.
func FormatLedgerDate(t time.Time) string {
	u := t.UTC()
	if u.Hour() == 0 && u.Minute() == 0 && u.Second() == 0 && u.Nanosecond() == 0 {
		return u.Format(DateLayout)
	}
	return u.Format(time.RFC3339Nano)
}
