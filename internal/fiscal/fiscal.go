// Package fiscal implements the company fiscal calendar. Quarters do not
// follow the Gregorian layout: Q1 runs Mar-May, Q2 Jun-Aug, Q3 Sep-Nov and
// Q4 Dec-Feb, with Q4 spanning the calendar-year boundary. A Q4 is attributed
// to the fiscal year of its December, so Jan/Feb 2026 belong to Q4 of fiscal
// year 2025.
package fiscal

import (
	"fmt"

	"github.com/sav-lawnstarter/studies-calendar/internal/dates"
)

// Quarter is a contiguous three-month window of the fiscal calendar.
type Quarter struct {
	Number     int // 1-4
	FiscalYear int
	Start      dates.CalendarDate
	End        dates.CalendarDate
}

// Contains reports whether d falls inside the quarter (inclusive bounds).
func (q Quarter) Contains(d dates.CalendarDate) bool {
	return !d.Before(q.Start) && !d.After(q.End)
}

// Label renders a quarter as "Q1 2025". Round-trips the quarter number and
// fiscal year; cosmetic beyond that.
func (q Quarter) Label() string {
	return fmt.Sprintf("Q%d %d", q.Number, q.FiscalYear)
}

// QuarterOf classifies a date into its fiscal quarter. Total over valid
// dates; there is no failure path here, invalid input is rejected upstream
// by dates.Parse.
func QuarterOf(d dates.CalendarDate) Quarter {
	y := d.Year
	switch {
	case d.Month >= 3 && d.Month <= 5:
		return Quarter{
			Number:     1,
			FiscalYear: y,
			Start:      dates.CalendarDate{Year: y, Month: 3, Day: 1},
			End:        dates.CalendarDate{Year: y, Month: 5, Day: 31},
		}
	case d.Month >= 6 && d.Month <= 8:
		return Quarter{
			Number:     2,
			FiscalYear: y,
			Start:      dates.CalendarDate{Year: y, Month: 6, Day: 1},
			End:        dates.CalendarDate{Year: y, Month: 8, Day: 31},
		}
	case d.Month >= 9 && d.Month <= 11:
		return Quarter{
			Number:     3,
			FiscalYear: y,
			Start:      dates.CalendarDate{Year: y, Month: 9, Day: 1},
			End:        dates.CalendarDate{Year: y, Month: 11, Day: 30},
		}
	case d.Month == 12:
		return q4(y)
	default: // Jan, Feb: tail of the previous December's Q4
		return q4(y - 1)
	}
}

func q4(decYear int) Quarter {
	febYear := decYear + 1
	return Quarter{
		Number:     4,
		FiscalYear: decYear,
		Start:      dates.CalendarDate{Year: decYear, Month: 12, Day: 1},
		End:        dates.CalendarDate{Year: febYear, Month: 2, Day: dates.DaysInMonth(febYear, 2)},
	}
}

// NextQuarter returns a date guaranteed to fall in the chronologically next
// quarter. Every quarter is exactly three calendar months, so a three-month
// shift is sufficient.
func NextQuarter(d dates.CalendarDate) dates.CalendarDate {
	return d.AddMonths(3)
}

// PrevQuarter is the symmetric three-month step back.
func PrevQuarter(d dates.CalendarDate) dates.CalendarDate {
	return d.AddMonths(-3)
}

// QuartersBack returns the quarter containing from followed by the n-1
// preceding quarters, newest first. Used by the running-totals view.
func QuartersBack(from dates.CalendarDate, n int) []Quarter {
	if n <= 0 {
		return nil
	}
	out := make([]Quarter, 0, n)
	cursor := from
	for i := 0; i < n; i++ {
		q := QuarterOf(cursor)
		out = append(out, q)
		cursor = PrevQuarter(q.Start)
	}
	return out
}
