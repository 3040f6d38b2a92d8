package maintenance

import (
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	now := date(2024, time.June, 15)

	cases := []struct {
		name     string
		due      *time.Time
		expected Status
	}{
		{"nil date", nil, StatusNone},
		{"yesterday", datePtr(2024, time.June, 14), StatusOverdue},
		{"today", datePtr(2024, time.June, 15), StatusUpcoming},
		{"in 30 days", datePtr(2024, time.July, 15), StatusUpcoming},
		{"in 31 days", datePtr(2024, time.July, 16), StatusCurrent},
		{"next year", datePtr(2025, time.June, 15), StatusCurrent},
	}

	for _, tc := range cases {
		if got := Classify(now, tc.due); got != tc.expected {
			t.Errorf("%s: expected %s, got %s", tc.name, tc.expected, got)
		}
	}
}

func TestClassify_Idempotent(t *testing.T) {
	now := date(2024, time.June, 15)
	due := datePtr(2024, time.July, 1)

	first := Classify(now, due)
	second := Classify(now, due)
	if first != second {
		t.Errorf("classification not stable: %s then %s", first, second)
	}
}

func TestTimeProgress(t *testing.T) {
	last := datePtr(2024, time.January, 1)
	next := datePtr(2025, time.January, 1)

	halfway := TimeProgress(date(2024, time.July, 2), last, next)
	if halfway == nil {
		t.Fatal("expected a percentage")
	}
	if *halfway < 49 || *halfway > 51 {
		t.Errorf("expected ~50%%, got %v", *halfway)
	}

	before := TimeProgress(date(2023, time.June, 1), last, next)
	if before == nil || *before != 0 {
		t.Errorf("expected clamp to 0, got %v", before)
	}

	after := TimeProgress(date(2026, time.January, 1), last, next)
	if after == nil || *after != 100 {
		t.Errorf("expected clamp to 100, got %v", after)
	}
}

func TestTimeProgress_Guards(t *testing.T) {
	now := date(2024, time.June, 1)
	last := datePtr(2024, time.January, 1)

	if got := TimeProgress(now, nil, datePtr(2025, time.January, 1)); got != nil {
		t.Errorf("expected nil without last date, got %v", got)
	}
	if got := TimeProgress(now, last, nil); got != nil {
		t.Errorf("expected nil without next date, got %v", got)
	}
	// next before last: non-positive interval must not divide by zero
	if got := TimeProgress(now, last, datePtr(2023, time.January, 1)); got != nil {
		t.Errorf("expected nil for inverted interval, got %v", got)
	}
	if got := TimeProgress(now, last, last); got != nil {
		t.Errorf("expected nil for zero interval, got %v", got)
	}
}

func TestDistanceProgress(t *testing.T) {
	got := DistanceProgress(intPtr(10000), 11000, 15000)
	if got == nil {
		t.Fatal("expected a percentage")
	}
	if *got != 6.7 {
		t.Errorf("expected 6.7, got %v", *got)
	}

	over := DistanceProgress(intPtr(10000), 30000, 15000)
	if over == nil || *over != 100 {
		t.Errorf("expected clamp to 100, got %v", over)
	}

	if got := DistanceProgress(nil, 11000, 15000); got != nil {
		t.Errorf("expected nil without last mileage, got %v", got)
	}
	if got := DistanceProgress(intPtr(10000), 11000, 0); got != nil {
		t.Errorf("expected nil for non-positive interval, got %v", got)
	}
}

func TestRemainingKm(t *testing.T) {
	got := RemainingKm(intPtr(10000), 11000, 15000)
	if got == nil || *got != 14000 {
		t.Errorf("expected 14000, got %v", got)
	}

	exceeded := RemainingKm(intPtr(10000), 30000, 15000)
	if exceeded == nil || *exceeded != -5000 {
		t.Errorf("expected -5000, got %v", exceeded)
	}

	if got := RemainingKm(nil, 11000, 15000); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestSeverityFor(t *testing.T) {
	cases := []struct {
		progress float64
		expected Severity
	}{
		{0, SeverityOK},
		{79.9, SeverityOK},
		{80, SeverityWarning},
		{99.9, SeverityWarning},
		{100, SeverityDanger},
	}

	for _, tc := range cases {
		if got := SeverityFor(tc.progress); got != tc.expected {
			t.Errorf("%v: expected %s, got %s", tc.progress, tc.expected, got)
		}
	}
}
