// Package period provides pure calendar-month date math. A period is a
// calendar month represented canonically by its first day.
package period

import (
	"strconv"
	"strings"
	"time"
)

// FirstDay returns the first day of the month containing d.
func FirstDay(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
}

// PrevMonth returns the first day of the month preceding the given
// first-of-month date, handling the January to previous-December rollover.
func PrevMonth(firstDay time.Time) time.Time {
	if firstDay.Month() == time.January {
		return time.Date(firstDay.Year()-1, time.December, 1, 0, 0, 0, 0, firstDay.Location())
	}
	return time.Date(firstDay.Year(), firstDay.Month()-1, 1, 0, 0, 0, 0, firstDay.Location())
}

// MonthRange returns the half-open interval [start, end) covering the
// month containing d: start is the first day of that month, end the first
// day of the following month (December rolls over to next January).
func MonthRange(d time.Time) (start, end time.Time) {
	start = FirstDay(d)
	if start.Month() == time.December {
		end = time.Date(start.Year()+1, time.January, 1, 0, 0, 0, 0, start.Location())
	} else {
		end = time.Date(start.Year(), start.Month()+1, 1, 0, 0, 0, 0, start.Location())
	}
	return start, end
}

// ParsePeriodOrToday parses a "YYYY-MM" (or looser "YYYY-MM-...") string
// into the first day of that month. On empty input or any parse failure it
// returns the first day of the current month in local time; it never fails.
func ParsePeriodOrToday(s string) time.Time {
	if s != "" {
		parts := strings.SplitN(s, "-", 3)
		if len(parts) >= 2 {
			year, errY := strconv.Atoi(parts[0])
			month, errM := strconv.Atoi(parts[1])
			if errY == nil && errM == nil && year >= 1 && year <= 9999 && month >= 1 && month <= 12 {
				return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
			}
		}
	}
	return FirstDay(time.Now())
}
