package dateutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// FinancialYear is an Indian financial year running 1 April to 31 March.
type FinancialYear struct {
	StartYear int
	EndYear   int
}

// ParseFinancialYear parses labels such as "2025-2026" or "2025-26".
func ParseFinancialYear(label string) (FinancialYear, error) {
	parts := strings.Split(strings.TrimSpace(label), "-")
	if len(parts) != 2 {
		return FinancialYear{}, fmt.Errorf("financial year %q must look like 2025-2026", label)
	}
	start, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) != 4 {
		return FinancialYear{}, fmt.Errorf("financial year %q has an invalid start year", label)
	}
	end, err := strconv.Atoi(parts[1])
	if err != nil {
		return FinancialYear{}, fmt.Errorf("financial year %q has an invalid end year", label)
	}
	switch len(parts[1]) {
	case 2:
		end += (start / 100) * 100
		if end < start {
			end += 100
		}
	case 4:
	default:
		return FinancialYear{}, fmt.Errorf("financial year %q has an invalid end year", label)
	}
	if end != start+1 {
		return FinancialYear{}, fmt.Errorf("financial year %q must span consecutive years", label)
	}
	return FinancialYear{StartYear: start, EndYear: end}, nil
}

// String returns the canonical "2025-2026" label.
func (fy FinancialYear) String() string {
	return fmt.Sprintf("%d-%d", fy.StartYear, fy.EndYear)
}

// Start returns 1 April of the financial year.
func (fy FinancialYear) Start() time.Time {
	return time.Date(fy.StartYear, time.April, 1, 0, 0, 0, 0, time.UTC)
}

// End returns 31 March of the financial year.
func (fy FinancialYear) End() time.Time {
	return time.Date(fy.EndYear, time.March, 31, 0, 0, 0, 0, time.UTC)
}

// Date resolves a day and month inside the financial year: April to December
// fall in the start year, January to March in the end year.
func (fy FinancialYear) Date(month time.Month, day int) time.Time {
	year := fy.StartYear
	if month <= time.March {
		year = fy.EndYear
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Contains reports whether t falls inside the financial year.
func (fy FinancialYear) Contains(t time.Time) bool {
	d := StartOfDay(t)
	return !d.Before(fy.Start()) && !d.After(fy.End())
}

// StartOfDay truncates t to midnight UTC of its calendar day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsPastDue reports whether due is strictly before the calendar day of now.
func IsPastDue(due, now time.Time) bool {
	return StartOfDay(due).Before(StartOfDay(now))
}

// FormatDate formats t using DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
