package engine

import (
	"time"
)

// =============================================================================
// TIME POINT - Concrete time abstraction (events are minute-level, vacations day-level)
// =============================================================================

type TimePoint struct {
	Time        time.Time
	Granularity Granularity
}

type Granularity int

const (
	GranularityDay Granularity = iota
	GranularityHour
	GranularityMinute
)

// Constructors
func NewTimePoint(year int, month time.Month, day int) TimePoint {
	return TimePoint{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), Granularity: GranularityDay}
}

func NewTimePointWithHour(year int, month time.Month, day, hour int) TimePoint {
	return TimePoint{Time: time.Date(year, month, day, hour, 0, 0, 0, time.UTC), Granularity: GranularityHour}
}

func NewTimePointWithMinute(year int, month time.Month, day, hour, minute int) TimePoint {
	return TimePoint{Time: time.Date(year, month, day, hour, minute, 0, 0, time.UTC), Granularity: GranularityMinute}
}

func TimePointFromTime(t time.Time) TimePoint {
	return TimePoint{Time: t.UTC(), Granularity: GranularityMinute}
}

func Today() TimePoint {
	now := time.Now()
	return NewTimePoint(now.Year(), now.Month(), now.Day())
}

// Comparison
func (tp TimePoint) Before(other TimePoint) bool        { return tp.normalize().Before(other.normalize()) }
func (tp TimePoint) Equal(other TimePoint) bool         { return tp.normalize().Equal(other.normalize()) }
func (tp TimePoint) After(other TimePoint) bool         { return tp.normalize().After(other.normalize()) }
func (tp TimePoint) BeforeOrEqual(other TimePoint) bool { return tp.Before(other) || tp.Equal(other) }
func (tp TimePoint) AfterOrEqual(other TimePoint) bool  { return tp.After(other) || tp.Equal(other) }

func (tp TimePoint) normalize() time.Time {
	switch tp.Granularity {
	case GranularityDay:
		return time.Date(tp.Time.Year(), tp.Time.Month(), tp.Time.Day(), 0, 0, 0, 0, time.UTC)
	case GranularityHour:
		return time.Date(tp.Time.Year(), tp.Time.Month(), tp.Time.Day(), tp.Time.Hour(), 0, 0, 0, time.UTC)
	default:
		return tp.Time
	}
}

// Arithmetic
func (tp TimePoint) AddDays(n int) TimePoint {
	return TimePoint{Time: tp.Time.AddDate(0, 0, n), Granularity: tp.Granularity}
}
func (tp TimePoint) AddMonths(n int) TimePoint {
	return TimePoint{Time: tp.Time.AddDate(0, n, 0), Granularity: tp.Granularity}
}

// Day bounds. A day-granularity point expands to [00:00, 23:59:59] so that
// date-level vacations overlap any event touching that date.
func (tp TimePoint) StartOfDay() TimePoint {
	return TimePoint{
		Time:        time.Date(tp.Time.Year(), tp.Time.Month(), tp.Time.Day(), 0, 0, 0, 0, time.UTC),
		Granularity: GranularityMinute,
	}
}

func (tp TimePoint) EndOfDay() TimePoint {
	return TimePoint{
		Time:        time.Date(tp.Time.Year(), tp.Time.Month(), tp.Time.Day(), 23, 59, 59, 0, time.UTC),
		Granularity: GranularityMinute,
	}
}

// SameDay reports whether both points fall on the same calendar date.
func (tp TimePoint) SameDay(other TimePoint) bool {
	y1, m1, d1 := tp.Time.Date()
	y2, m2, d2 := other.Time.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Properties
func (tp TimePoint) Year() int             { return tp.Time.Year() }
func (tp TimePoint) Month() time.Month     { return tp.Time.Month() }
func (tp TimePoint) Day() int              { return tp.Time.Day() }
func (tp TimePoint) Weekday() time.Weekday { return tp.Time.Weekday() }
func (tp TimePoint) IsWeekend() bool {
	wd := tp.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
func (tp TimePoint) IsZero() bool { return tp.Time.IsZero() }

func (tp TimePoint) String() string {
	switch tp.Granularity {
	case GranularityDay:
		return tp.Time.Format("2006-01-02")
	case GranularityHour:
		return tp.Time.Format("2006-01-02 15:00")
	default:
		return tp.Time.Format(time.RFC3339)
	}
}

// DateKey returns the calendar date in ISO form, used for indexing events by day.
func (tp TimePoint) DateKey() string { return tp.Time.Format("2006-01-02") }

// =============================================================================
// PERIOD - Bounded date range for a solve horizon
// =============================================================================

// Period is the inclusive [Start, End] range a solve covers.
type Period struct {
	Start TimePoint
	End   TimePoint
}

// Contains returns true if the time point is within the period [Start, End].
func (p Period) Contains(t TimePoint) bool {
	return t.AfterOrEqual(p.Start) && t.BeforeOrEqual(p.End)
}

func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// =============================================================================
// RANGE OVERLAP - Shared by the conflict detector and blackout predicates
// =============================================================================

// RangesOverlapStrict reports strict time-range overlap: startA < endB AND startB < endA.
// Back-to-back ranges (endA == startB) do NOT overlap.
func RangesOverlapStrict(startA, endA, startB, endB TimePoint) bool {
	return startA.Time.Before(endB.Time) && startB.Time.Before(endA.Time)
}

// RangesOverlapInclusive reports date-level overlap: startA <= endB AND endA >= startB.
// Used for vacations after expanding their dates to full-day bounds.
func RangesOverlapInclusive(startA, endA, startB, endB TimePoint) bool {
	return !startA.Time.After(endB.Time) && !endA.Time.Before(startB.Time)
}

// =============================================================================
// HOLIDAY CALENDAR - Org-specific static calendar data
// =============================================================================

// Holiday is a calendar date the organization treats specially. Long-weekend
// holidays can be referenced by blackout-window constraints.
type Holiday struct {
	Date          TimePoint
	Label         string
	IsLongWeekend bool
}

// HolidayCalendar provides holiday lookups for constraint evaluation.
type HolidayCalendar interface {
	// IsHoliday checks if a date is a holiday.
	IsHoliday(date TimePoint) bool

	// IsLongWeekend checks if a date is part of a long-weekend window.
	IsLongWeekend(date TimePoint) bool
}

// SliceCalendar is a HolidayCalendar over a static holiday list.
type SliceCalendar []Holiday

func (c SliceCalendar) IsHoliday(date TimePoint) bool {
	for _, h := range c {
		if h.Date.SameDay(date) {
			return true
		}
	}
	return false
}

func (c SliceCalendar) IsLongWeekend(date TimePoint) bool {
	for _, h := range c {
		if h.IsLongWeekend && h.Date.SameDay(date) {
			return true
		}
	}
	return false
}
