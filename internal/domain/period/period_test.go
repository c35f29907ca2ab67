package period

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFirstDay(t *testing.T) {
	tests := []struct {
		name     string
		in       time.Time
		expected time.Time
	}{
		{"mid month", date(2025, time.February, 15), date(2025, time.February, 1)},
		{"already first", date(2025, time.June, 1), date(2025, time.June, 1)},
		{"last day", date(2024, time.December, 31), date(2024, time.December, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FirstDay(tt.in); !got.Equal(tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPrevMonth(t *testing.T) {
	tests := []struct {
		name     string
		in       time.Time
		expected time.Time
	}{
		{"january rolls to previous december", date(2025, time.January, 1), date(2024, time.December, 1)},
		{"mid year", date(2025, time.July, 1), date(2025, time.June, 1)},
		{"march", date(2025, time.March, 1), date(2025, time.February, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PrevMonth(tt.in); !got.Equal(tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestMonthRange(t *testing.T) {
	tests := []struct {
		name          string
		in            time.Time
		expectedStart time.Time
		expectedEnd   time.Time
	}{
		{"february", date(2025, time.February, 15), date(2025, time.February, 1), date(2025, time.March, 1)},
		{"december rolls to next january", date(2024, time.December, 25), date(2024, time.December, 1), date(2025, time.January, 1)},
		{"first day input", date(2025, time.April, 1), date(2025, time.April, 1), date(2025, time.May, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := MonthRange(tt.in)
			if !start.Equal(tt.expectedStart) {
				t.Errorf("expected start %v, got %v", tt.expectedStart, start)
			}
			if !end.Equal(tt.expectedEnd) {
				t.Errorf("expected end %v, got %v", tt.expectedEnd, end)
			}
		})
	}
}

func TestParsePeriodOrToday(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected time.Time
	}{
		{"year and month", "2025-03", date(2025, time.March, 1)},
		{"full date collapses to first day", "2025-03-17", date(2025, time.March, 1)},
		{"trailing garbage after month", "2024-12-whatever", date(2024, time.December, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParsePeriodOrToday(tt.in); !got.Equal(tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestParsePeriodOrTodayFallsBackToCurrentMonth(t *testing.T) {
	// The fallback is the current month on the local calendar, not UTC;
	// west of UTC those differ around month boundaries.
	thisMonth := FirstDay(time.Now())

	tests := []struct {
		name string
		in   string
	}{
		{"empty string", ""},
		{"not a date", "hello"},
		{"missing month", "2025"},
		{"month out of range", "2025-13"},
		{"zero month", "2025-00"},
		{"non-numeric month", "2025-xx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParsePeriodOrToday(tt.in); !got.Equal(thisMonth) {
				t.Errorf("expected fallback to %v, got %v", thisMonth, got)
			}
		})
	}
}
