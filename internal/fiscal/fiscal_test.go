package fiscal

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sav-lawnstarter/studies-calendar/internal/dates"
)

func TestQuarterOfBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		date       dates.CalendarDate
		number     int
		fiscalYear int
		start      dates.CalendarDate
		end        dates.CalendarDate
	}{
		{
			name: "q1 first day", date: dates.CalendarDate{Year: 2026, Month: 3, Day: 1},
			number: 1, fiscalYear: 2026,
			start: dates.CalendarDate{Year: 2026, Month: 3, Day: 1}, end: dates.CalendarDate{Year: 2026, Month: 5, Day: 31},
		},
		{
			name: "q1 last day", date: dates.CalendarDate{Year: 2026, Month: 5, Day: 31},
			number: 1, fiscalYear: 2026,
			start: dates.CalendarDate{Year: 2026, Month: 3, Day: 1}, end: dates.CalendarDate{Year: 2026, Month: 5, Day: 31},
		},
		{
			name: "q2 last day", date: dates.CalendarDate{Year: 2026, Month: 8, Day: 31},
			number: 2, fiscalYear: 2026,
			start: dates.CalendarDate{Year: 2026, Month: 6, Day: 1}, end: dates.CalendarDate{Year: 2026, Month: 8, Day: 31},
		},
		{
			name: "q3 last day", date: dates.CalendarDate{Year: 2026, Month: 11, Day: 30},
			number: 3, fiscalYear: 2026,
			start: dates.CalendarDate{Year: 2026, Month: 9, Day: 1}, end: dates.CalendarDate{Year: 2026, Month: 11, Day: 30},
		},
		{
			name: "q4 first day", date: dates.CalendarDate{Year: 2026, Month: 12, Day: 1},
			number: 4, fiscalYear: 2026,
			start: dates.CalendarDate{Year: 2026, Month: 12, Day: 1}, end: dates.CalendarDate{Year: 2027, Month: 2, Day: 28},
		},
		{
			name: "dec 31 stays in q4 of its own year", date: dates.CalendarDate{Year: 2025, Month: 12, Day: 31},
			number: 4, fiscalYear: 2025,
			start: dates.CalendarDate{Year: 2025, Month: 12, Day: 1}, end: dates.CalendarDate{Year: 2026, Month: 2, Day: 28},
		},
		{
			name: "jan 1 belongs to previous fiscal year", date: dates.CalendarDate{Year: 2026, Month: 1, Day: 1},
			number: 4, fiscalYear: 2025,
			start: dates.CalendarDate{Year: 2025, Month: 12, Day: 1}, end: dates.CalendarDate{Year: 2026, Month: 2, Day: 28},
		},
		{
			name: "feb 28 non leap", date: dates.CalendarDate{Year: 2026, Month: 2, Day: 28},
			number: 4, fiscalYear: 2025,
			start: dates.CalendarDate{Year: 2025, Month: 12, Day: 1}, end: dates.CalendarDate{Year: 2026, Month: 2, Day: 28},
		},
		{
			name: "feb 29 leap", date: dates.CalendarDate{Year: 2024, Month: 2, Day: 29},
			number: 4, fiscalYear: 2023,
			start: dates.CalendarDate{Year: 2023, Month: 12, Day: 1}, end: dates.CalendarDate{Year: 2024, Month: 2, Day: 29},
		},
		{
			name: "december before a leap february", date: dates.CalendarDate{Year: 2023, Month: 12, Day: 15},
			number: 4, fiscalYear: 2023,
			start: dates.CalendarDate{Year: 2023, Month: 12, Day: 1}, end: dates.CalendarDate{Year: 2024, Month: 2, Day: 29},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := QuarterOf(tt.date)
			require.Equal(t, tt.number, q.Number)
			require.Equal(t, tt.fiscalYear, q.FiscalYear)
			require.Equal(t, tt.start, q.Start)
			require.Equal(t, tt.end, q.End)
		})
	}
}

// Every valid date must fall inside its own quarter, and the quarter bounds
// must be ordered.
func TestQuarterContainsItsDate(t *testing.T) {
	t.Parallel()

	for year := 2023; year <= 2027; year++ {
		for month := 1; month <= 12; month++ {
			for _, day := range []int{1, 15, dates.DaysInMonth(year, month)} {
				d := dates.CalendarDate{Year: year, Month: month, Day: day}
				q := QuarterOf(d)
				require.True(t, q.Number >= 1 && q.Number <= 4, "quarter number out of range for %s", d)
				require.False(t, q.End.Before(q.Start), "inverted bounds for %s", d)
				require.True(t, q.Contains(d), "%s not inside %s (%s..%s)", d, q.Label(), q.Start, q.End)
			}
		}
	}
}

func TestNextQuarterCycles(t *testing.T) {
	t.Parallel()

	d := dates.CalendarDate{Year: 2025, Month: 3, Day: 10} // Q1 2025
	want := []int{1, 2, 3, 4, 1, 2, 3, 4, 1}
	prev := QuarterOf(d)
	for i, number := range want {
		q := QuarterOf(d)
		require.Equal(t, number, q.Number, "step %d", i)
		if i > 0 {
			require.True(t, prev.Start.Before(q.Start), "quarters must advance monotonically")
		}
		prev = q
		d = NextQuarter(d)
	}
}

func TestPrevQuarterIsInverseAtQuarterGranularity(t *testing.T) {
	t.Parallel()

	for _, d := range []dates.CalendarDate{
		{Year: 2025, Month: 3, Day: 1}, {Year: 2025, Month: 12, Day: 31}, {Year: 2026, Month: 1, Day: 15}, {Year: 2024, Month: 2, Day: 29}, {Year: 2026, Month: 8, Day: 31},
	} {
		q := QuarterOf(d)
		forward := QuarterOf(NextQuarter(d))
		back := QuarterOf(PrevQuarter(NextQuarter(d)))
		require.NotEqual(t, q, forward, "next quarter must differ for %s", d)
		require.Equal(t, q, back, "prev(next) must restore the quarter for %s", d)
	}
}

func TestLabel(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Q1 2025", QuarterOf(dates.CalendarDate{Year: 2025, Month: 4, Day: 1}).Label())
	require.Equal(t, "Q4 2025", QuarterOf(dates.CalendarDate{Year: 2026, Month: 2, Day: 1}).Label())
}

func TestQuartersBack(t *testing.T) {
	t.Parallel()

	qs := QuartersBack(dates.CalendarDate{Year: 2026, Month: 1, Day: 10}, 4)
	require.Len(t, qs, 4)
	require.Equal(t, "Q4 2025", qs[0].Label())
	require.Equal(t, "Q3 2025", qs[1].Label())
	require.Equal(t, "Q2 2025", qs[2].Label())
	require.Equal(t, "Q1 2025", qs[3].Label())

	require.Nil(t, QuartersBack(dates.CalendarDate{Year: 2026, Month: 1, Day: 10}, 0))
}
