package models

import (
	"fmt"
	"time"
)

// YearWeek identifies a single ISO-8601 calendar week. Values are only
// constructed from validated input; a YearWeek is never partially valid.
type YearWeek struct {
	Year int `json:"year"`
	Week int `json:"week"`
}

// String formats the week as its compact YYYYWW display key, e.g. "202401".
func (w YearWeek) String() string {
	return fmt.Sprintf("%d%02d", w.Year, w.Week)
}

// Compare orders weeks lexicographically by (year, week). Week numbers reset
// at year boundaries, so this is only an ordering, not a distance; use the
// analyzer's WeekDifference for distances.
func (w YearWeek) Compare(other YearWeek) int {
	if w.Year != other.Year {
		if w.Year < other.Year {
			return -1
		}
		return 1
	}
	switch {
	case w.Week < other.Week:
		return -1
	case w.Week > other.Week:
		return 1
	default:
		return 0
	}
}

// Before reports whether w falls strictly before other.
func (w YearWeek) Before(other YearWeek) bool {
	return w.Compare(other) < 0
}

// CurrentYearWeek returns the ISO week containing t.
func CurrentYearWeek(t time.Time) YearWeek {
	year, week := t.ISOWeek()
	return YearWeek{Year: year, Week: week}
}
