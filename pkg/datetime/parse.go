// Package datetime provides calendar date utility functions.
package datetime

import (
	"fmt"
	"math"
	"time"

	"cloud.google.com/go/civil"
	"github.com/iwvelando/amortize/pkg/constants"
)

const (
	// DateLayout is the format expected in calculation files and is also the
	// output date format.
	DateLayout = constants.DateLayout
)

// ParseDate parses a YYYY-MM-DD string into a calendar date.
func ParseDate(value string) (civil.Date, error) {
	d, err := civil.ParseDate(value)
	if err != nil {
		return civil.Date{}, fmt.Errorf("invalid date %q: expected %s", value, DateLayout)
	}
	return d, nil
}

// MustParseDate parses a date string and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseDate(value string) civil.Date {
	d, err := ParseDate(value)
	if err != nil {
		panic(err)
	}
	return d
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonths offsets a date by whole calendar months. The day of month is kept
// when the target month has it and clamped to the month's last day otherwise,
// so 2025-01-31 plus one month is 2025-02-28.
func AddMonths(d civil.Date, months int) civil.Date {
	total := int(d.Month) - 1 + months
	year := d.Year + floorDiv(total, constants.MonthsPerYear)
	month := time.Month(total-floorDiv(total, constants.MonthsPerYear)*constants.MonthsPerYear) + 1

	day := d.Day
	if last := DaysInMonth(year, month); day > last {
		day = last
	}
	return civil.Date{Year: year, Month: month, Day: day}
}

// PeriodDate returns the date of the period at the zero-based index for a
// schedule starting on start. Frequencies that divide a year into whole
// months advance by calendar months measured from start, anything finer
// advances by a fixed number of days.
func PeriodDate(start civil.Date, index, periodsPerYear int) civil.Date {
	if periodsPerYear <= 0 {
		periodsPerYear = constants.DefaultPeriodsPerYear
	}
	if constants.MonthsPerYear%periodsPerYear == 0 {
		return AddMonths(start, index*(constants.MonthsPerYear/periodsPerYear))
	}
	return start.AddDays(index * DayStep(periodsPerYear))
}

// DayStep is the number of days between payments for sub-monthly frequencies,
// e.g. 7 for weekly and 14 for biweekly.
func DayStep(periodsPerYear int) int {
	step := int(math.Round(float64(constants.DaysPerYear) / float64(periodsPerYear)))
	if step < 1 {
		step = 1
	}
	return step
}

// SameMonth reports whether two dates fall in the same calendar month.
func SameMonth(a, b civil.Date) bool {
	return a.Year == b.Year && a.Month == b.Month
}

// OnOrAfter returns true if date is the same day as or later than reference.
func OnOrAfter(date, reference civil.Date) bool {
	return !date.Before(reference)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
