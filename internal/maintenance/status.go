package maintenance

import (
	"math"
	"time"
)

// Status is the urgency classification of a projected due date.
type Status string

const (
	StatusOverdue  Status = "overdue"
	StatusUpcoming Status = "upcoming"
	StatusCurrent  Status = "current"
	StatusNone     Status = "none"
)

// UpcomingHorizonDays is the window within which a due date counts as upcoming.
const UpcomingHorizonDays = 30

// Severity maps a progress percentage to a presentation bucket.
type Severity string

const (
	SeverityDanger  Severity = "danger"
	SeverityWarning Severity = "warning"
	SeverityOK      Severity = "ok"
)

// Classify maps a projected date to its urgency relative to `now`.
func Classify(now time.Time, date *time.Time) Status {
	if date == nil {
		return StatusNone
	}

	daysUntil := DaysBetween(now, *date)
	switch {
	case daysUntil < 0:
		return StatusOverdue
	case daysUntil <= UpcomingHorizonDays:
		return StatusUpcoming
	default:
		return StatusCurrent
	}
}

// TimeProgress returns how far `now` sits between lastDate and nextDate as a
// 0-100 percentage, one decimal place. Nil when either date is missing or the
// interval is non-positive.
func TimeProgress(now time.Time, lastDate, nextDate *time.Time) *float64 {
	if lastDate == nil || nextDate == nil {
		return nil
	}

	totalDays := DaysBetween(*lastDate, *nextDate)
	if totalDays <= 0 {
		return nil
	}

	daysPassed := DaysBetween(*lastDate, now)
	progress := clampPercent(float64(daysPassed) / float64(totalDays) * 100)
	return &progress
}

// DistanceProgress returns the driven share of the distance interval as a
// 0-100 percentage, one decimal place. Nil when the last mileage is missing
// or the interval is non-positive.
func DistanceProgress(lastMileage *int, currentMileage, intervalKm int) *float64 {
	if lastMileage == nil || intervalKm <= 0 {
		return nil
	}

	kmDriven := currentMileage - *lastMileage
	progress := clampPercent(float64(kmDriven) / float64(intervalKm) * 100)
	return &progress
}

// RemainingKm returns km left until the distance interval is reached.
// Negative when already exceeded. Nil when inputs are missing.
func RemainingKm(lastMileage *int, currentMileage, intervalKm int) *int {
	if lastMileage == nil || intervalKm <= 0 {
		return nil
	}
	remaining := intervalKm - (currentMileage - *lastMileage)
	return &remaining
}

// SeverityFor buckets a progress percentage for presentation. This is a pure
// function of the value, not stored state.
func SeverityFor(progress float64) Severity {
	switch {
	case progress >= 100:
		return SeverityDanger
	case progress >= 80:
		return SeverityWarning
	default:
		return SeverityOK
	}
}

func clampPercent(v float64) float64 {
	v = math.Max(0, math.Min(100, v))
	return math.Round(v*10) / 10
}
