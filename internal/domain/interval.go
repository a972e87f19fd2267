package domain

import "github.com/m04kA/SMC-SalonService/pkg/types"

// Interval half-open time-of-day interval [Start, End)
type Interval struct {
	Start types.TimeString
	End   types.TimeString
}

// IsValid returns true if the interval is non-empty
func (i Interval) IsValid() bool {
	return i.End.IsAfter(i.Start)
}

// Overlaps returns true if the intervals share at least one minute.
// Touching intervals (10:00-11:00 and 11:00-12:00) do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.IsBefore(other.End) && i.End.IsAfter(other.Start)
}

// Contains returns true if other lies fully inside i
func (i Interval) Contains(other Interval) bool {
	return !other.Start.IsBefore(i.Start) && !other.End.IsAfter(i.End)
}

// DurationMinutes length of the interval
func (i Interval) DurationMinutes() int {
	return i.End.Minutes() - i.Start.Minutes()
}

func (i Interval) String() string {
	return i.Start.String() + "-" + i.End.String()
}
