package maintenance

import (
	"time"

	"carcheck/backend/internal/constants"
)

// SeasonalChange describes the next recommended tire swap.
type SeasonalChange struct {
	Date      time.Time
	Direction string // "winter-to-summer" or "summer-to-winter"
}

// EasterSunday computes Easter for a year using Gauss's algorithm.
func EasterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
}

// NextSeasonalChange projects the next recommended swap date for the mounted
// tire type: winter sets come off at Easter, summer sets on October 1. Nil for
// all-season sets or when no set is mounted.
func NextSeasonalChange(now time.Time, mounted constants.TireType) *SeasonalChange {
	year := now.Year()

	switch mounted {
	case constants.TireWinter:
		easter := EasterSunday(year)
		if !now.Before(easter) {
			easter = EasterSunday(year + 1)
		}
		return &SeasonalChange{Date: easter, Direction: "winter-to-summer"}

	case constants.TireSummer:
		october1 := time.Date(year, time.October, 1, 0, 0, 0, 0, time.Local)
		if !now.Before(october1) {
			october1 = time.Date(year+1, time.October, 1, 0, 0, 0, 0, time.Local)
		}
		return &SeasonalChange{Date: october1, Direction: "summer-to-winter"}
	}

	return nil
}
