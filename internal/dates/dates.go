// Package dates provides the calendar-day value type shared by the fiscal
// calendar and the record matcher. Dates are day-granular: no time of day,
// no timezone.
package dates

import (
	"fmt"
	"strings"
	"time"
)

// CalendarDate is a plain (year, month, day) value. The zero value is not a
// valid date; construct through New, Parse or FromTime.
type CalendarDate struct {
	Year  int
	Month int // 1-12
	Day   int // 1-31
}

// New builds a CalendarDate, clamping the day to the month's length.
func New(year, month, day int) CalendarDate {
	max := DaysInMonth(year, month)
	if day > max {
		day = max
	}
	if day < 1 {
		day = 1
	}
	return CalendarDate{Year: year, Month: month, Day: day}
}

// FromTime truncates a time.Time to its calendar day.
func FromTime(t time.Time) CalendarDate {
	return CalendarDate{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// Time converts to midnight UTC, for interop with time-based APIs.
func (d CalendarDate) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether d is the zero value.
func (d CalendarDate) IsZero() bool { return d == CalendarDate{} }

// String formats as YYYY-MM-DD.
func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Compare returns -1, 0 or 1 ordering by (year, month, day).
func (d CalendarDate) Compare(o CalendarDate) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(d.Month - o.Month)
	default:
		return sign(d.Day - o.Day)
	}
}

func (d CalendarDate) Before(o CalendarDate) bool { return d.Compare(o) < 0 }
func (d CalendarDate) After(o CalendarDate) bool  { return d.Compare(o) > 0 }
func (d CalendarDate) Equal(o CalendarDate) bool  { return d == o }

// AddMonths shifts the date by n calendar months (n may be negative),
// clamping the day to the target month's length so the result is always
// a valid date (Jan 31 + 1 month = Feb 28/29).
func (d CalendarDate) AddMonths(n int) CalendarDate {
	months := d.Year*12 + (d.Month - 1) + n
	year := months / 12
	month := months%12 + 1
	if months < 0 && months%12 != 0 {
		year--
		month += 12
	}
	return New(year, month, d.Day)
}

// DaysInMonth returns the number of days in the given month, honoring leap
// years for February.
func DaysInMonth(year, month int) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

var parseLayouts = []string{
	"2006-01-02", // YYYY-MM-DD
	"1/2/2006",   // M/D/YYYY, 1-2 digit month and day
}

// Parse accepts YYYY-MM-DD and M/D/YYYY, returning ok=false for anything
// else (including out-of-range components like month 13 or Feb 30). It never
// panics: malformed input is "no date", not an error.
func Parse(raw string) (CalendarDate, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return CalendarDate{}, false
	}
	for _, layout := range parseLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return FromTime(t), true
	}
	return CalendarDate{}, false
}

// ParsePtr is Parse with a pointer result, for nullable date fields.
func ParsePtr(raw string) *CalendarDate {
	d, ok := Parse(raw)
	if !ok {
		return nil
	}
	return &d
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
