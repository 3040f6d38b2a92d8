package maintenance

import (
	"regexp"
	"time"
)

var bareDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseFlexibleDate accepts either a bare calendar date (YYYY-MM-DD,
// interpreted as local midnight so the day never shifts across timezones)
// or a full RFC3339 timestamp. Returns nil on unparseable input; callers
// treat nil permissively.
func ParseFlexibleDate(s string) *time.Time {
	if s == "" {
		return nil
	}

	if bareDateRe.MatchString(s) {
		t, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return nil
		}
		return &t
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}

// AddYears performs a calendar-correct year addition (Feb 29 rolls over
// per time.AddDate semantics).
func AddYears(t time.Time, years int) time.Time {
	return t.AddDate(years, 0, 0)
}

func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// DaysBetween returns the number of whole days from `from` to `to`,
// truncated toward zero. Negative when `to` precedes `from`.
func DaysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

// EarlierOf returns whichever of two nullable dates is chronologically
// first, the non-nil one if only one is present, or nil if both are nil.
// This is the tie-break for "next due" fields with two independent triggers.
func EarlierOf(a, b *time.Time) *time.Time {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a.Before(*b) {
		return a
	}
	return b
}
