package maintenance

import (
	"math"
	"time"
)

// NextByTime projects the next service date by elapsed calendar time.
// A non-positive interval falls back to 1 year.
func NextByTime(lastDate *time.Time, intervalYears int) *time.Time {
	if lastDate == nil {
		return nil
	}

	years := intervalYears
	if years <= 0 {
		years = 1
	}

	next := AddYears(*lastDate, years)
	return &next
}

// NextByDistance projects the next service date from the car's own observed
// driving rate since the last service. A fixed distance interval alone cannot
// predict a calendar date, so the km/day rate is derived empirically from the
// car's history rather than assumed.
//
// Returns nil when inputs are missing, distance tracking is disabled, less
// than one day has elapsed, or no distance was driven. When the interval is
// already exceeded it returns `now`, signalling due-now rather than a date
// in the past.
func NextByDistance(now time.Time, lastDate *time.Time, lastMileage *int, currentMileage, intervalKm int, distanceTracking bool) *time.Time {
	if lastDate == nil || lastMileage == nil || !distanceTracking {
		return nil
	}

	daysSince := DaysBetween(*lastDate, now)
	if daysSince < 1 {
		return nil
	}

	kmDriven := currentMileage - *lastMileage
	if kmDriven <= 0 {
		return nil
	}

	avgKmPerDay := float64(kmDriven) / float64(daysSince)

	remainingKm := intervalKm - kmDriven
	if remainingKm <= 0 {
		return &now
	}

	remainingDays := int(math.Ceil(float64(remainingKm) / avgKmPerDay))
	next := AddDays(now, remainingDays)
	return &next
}

// Next combines the two projections, whichever comes first.
func Next(now time.Time, lastDate *time.Time, lastMileage *int, currentMileage, intervalYears, intervalKm int, distanceTracking bool) *time.Time {
	byTime := NextByTime(lastDate, intervalYears)
	byKm := NextByDistance(now, lastDate, lastMileage, currentMileage, intervalKm, distanceTracking)
	return EarlierOf(byTime, byKm)
}

// NextTUV is the statutory periodic test projection: always exactly
// TUVIntervalYears after the last appointment.
func NextTUV(lastDate *time.Time) *time.Time {
	if lastDate == nil {
		return nil
	}
	next := AddYears(*lastDate, TUVIntervalYears)
	return &next
}

// TUVIntervalYears is fixed by regulation.
const TUVIntervalYears = 2
