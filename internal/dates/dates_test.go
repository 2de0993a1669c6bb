package dates

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want CalendarDate
		ok   bool
	}{
		{name: "iso", raw: "2025-03-01", want: CalendarDate{2025, 3, 1}, ok: true},
		{name: "iso leap day", raw: "2024-02-29", want: CalendarDate{2024, 2, 29}, ok: true},
		{name: "us slash", raw: "3/1/2025", want: CalendarDate{2025, 3, 1}, ok: true},
		{name: "us slash two digit", raw: "11/30/2026", want: CalendarDate{2026, 11, 30}, ok: true},
		{name: "us slash padded", raw: "03/04/2026", want: CalendarDate{2026, 3, 4}, ok: true},
		{name: "surrounding whitespace", raw: " 2025-06-15 ", want: CalendarDate{2025, 6, 15}, ok: true},
		{name: "empty", raw: "", ok: false},
		{name: "garbage", raw: "next tuesday", ok: false},
		{name: "month thirteen", raw: "2025-13-01", ok: false},
		{name: "feb thirty", raw: "2025-02-30", ok: false},
		{name: "non leap feb 29", raw: "2025-02-29", ok: false},
		{name: "wrong separator", raw: "2025.03.01", ok: false},
		{name: "day first ambiguous", raw: "30/11/2026", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.raw)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				require.Equal(t, tt.want, got)
			}
		})
	}
}

func TestAddMonths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		d    CalendarDate
		n    int
		want CalendarDate
	}{
		{name: "forward", d: CalendarDate{2025, 3, 15}, n: 3, want: CalendarDate{2025, 6, 15}},
		{name: "backward", d: CalendarDate{2025, 3, 15}, n: -3, want: CalendarDate{2024, 12, 15}},
		{name: "year wrap forward", d: CalendarDate{2025, 11, 1}, n: 3, want: CalendarDate{2026, 2, 1}},
		{name: "year wrap backward", d: CalendarDate{2025, 1, 1}, n: -2, want: CalendarDate{2024, 11, 1}},
		{name: "day clamped", d: CalendarDate{2025, 1, 31}, n: 1, want: CalendarDate{2025, 2, 28}},
		{name: "day clamped leap", d: CalendarDate{2024, 1, 31}, n: 1, want: CalendarDate{2024, 2, 29}},
		{name: "dec 31 forward", d: CalendarDate{2025, 12, 31}, n: 3, want: CalendarDate{2026, 3, 31}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.d.AddMonths(tt.n))
		})
	}
}

func TestOrdering(t *testing.T) {
	t.Parallel()

	a := CalendarDate{2025, 3, 1}
	b := CalendarDate{2025, 3, 2}
	c := CalendarDate{2026, 1, 1}

	require.True(t, a.Before(b))
	require.True(t, b.After(a))
	require.True(t, b.Before(c))
	require.True(t, a.Equal(a))
	require.Equal(t, 0, a.Compare(a))
	require.Equal(t, -1, a.Compare(c))
	require.Equal(t, 1, c.Compare(a))
}

func TestStringRoundTrip(t *testing.T) {
	t.Parallel()

	d := CalendarDate{2026, 2, 9}
	require.Equal(t, "2026-02-09", d.String())
	back, ok := Parse(d.String())
	require.True(t, ok)
	require.Equal(t, d, back)
}

func TestDaysInMonth(t *testing.T) {
	t.Parallel()

	require.Equal(t, 31, DaysInMonth(2025, 1))
	require.Equal(t, 28, DaysInMonth(2025, 2))
	require.Equal(t, 29, DaysInMonth(2024, 2))
	require.Equal(t, 29, DaysInMonth(2000, 2))
	require.Equal(t, 28, DaysInMonth(1900, 2))
	require.Equal(t, 30, DaysInMonth(2025, 11))
	require.Equal(t, 31, DaysInMonth(2025, 12))
}

func TestNewClampsDay(t *testing.T) {
	t.Parallel()

	require.Equal(t, CalendarDate{2025, 2, 28}, New(2025, 2, 31))
	require.Equal(t, CalendarDate{2024, 2, 29}, New(2024, 2, 30))
	require.Equal(t, CalendarDate{2025, 6, 1}, New(2025, 6, 0))
}
