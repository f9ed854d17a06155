package transform

import (
	"strings"
	"time"
)

// Layouts seen across client exports. Tried in order; first match wins.
var temporalLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"2006/01/02",
}

// Cell values that mean "no value" in source extracts.
var missingMarkers = map[string]struct{}{
	"":     {},
	"null": {},
	"none": {},
	"nan":  {},
	"nat":  {},
	"n/a":  {},
}

// parseTemporal coerces a raw cell into a timestamp. Unparsable values
// become missing (nil), never an error.
func parseTemporal(value string) *time.Time {
	v := strings.TrimSpace(value)
	if _, missing := missingMarkers[strings.ToLower(v)]; missing {
		return nil
	}

	for _, layout := range temporalLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// dateOf truncates a timestamp to its UTC calendar date.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
