package dates

import "time"

// Clock supplies the current calendar day. Injecting it keeps quarter
// navigation and "most recent" calculations testable.
type Clock interface {
	Today() CalendarDate
}

// SystemClock reads the wall clock in the given location.
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Today() CalendarDate {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	return FromTime(time.Now().In(loc))
}

// FixedClock always returns the same day. Test double.
type FixedClock struct {
	Date CalendarDate
}

func (c FixedClock) Today() CalendarDate { return c.Date }
