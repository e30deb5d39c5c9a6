package journal

import (
	"errors"
	"strings"
	"time"
)

// WireLayout is the date-time layout written to clients: an ISO-8601 local
// date-time in UTC, with fractional seconds only when non-zero.
const WireLayout = "2006-01-02T15:04:05.999999999"

var errUnparseableDate = errors.New("unparseable date")

// accepted input layouts, tried in order
var inputLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// FormatDate renders t in UTC using WireLayout.
func FormatDate(t time.Time) string {
	return t.UTC().Format(WireLayout)
}

// ParseDate parses an ISO-8601 local date-time, interpreted as UTC.
// A value carrying a zone ("Z" or "+02:00") is accepted and converted to UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errUnparseableDate
	}
	for _, layout := range inputLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, errUnparseableDate
}
