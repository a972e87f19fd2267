package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// TenantSettings raw calendar settings of a tenant as stored in the tenants table.
// JSON columns are kept undecoded: the stored shapes are loosely typed and are
// parsed with defaults by the availability engine.
type TenantSettings struct {
	TenantID                  int64  `json:"tenantId"`
	BusinessHours             []byte `json:"businessHours,omitempty"`
	ClosedDays                []byte `json:"closedDays,omitempty"`
	TemporaryClosedDays       []byte `json:"temporaryClosedDays,omitempty"`
	SpecialBusinessHours      []byte `json:"specialBusinessHours,omitempty"`
	MaxConcurrentReservations *int   `json:"maxConcurrentReservations,omitempty"`
}

// DayHours opening hours of one weekday
type DayHours struct {
	Open   types.TimeString
	Close  types.TimeString
	IsOpen bool
}

// Window returns the opening hours as an interval
func (d DayHours) Window() Interval {
	return Interval{Start: d.Open, End: d.Close}
}

// TenantCalendar typed calendar of a tenant
type TenantCalendar struct {
	Weekly                map[time.Weekday]DayHours
	WeeklyDefault         *DayHours // "default" entry of business hours
	ClosedWeekdays        map[time.Weekday]struct{}
	ClosedDates           map[string]struct{} // YYYY-MM-DD
	Overrides             map[string]Interval // YYYY-MM-DD -> hours
	MaxConcurrentBookings int
}

// NewTenantCalendar creates an empty calendar with default capacity
func NewTenantCalendar() *TenantCalendar {
	return &TenantCalendar{
		Weekly:                make(map[time.Weekday]DayHours),
		ClosedWeekdays:        make(map[time.Weekday]struct{}),
		ClosedDates:           make(map[string]struct{}),
		Overrides:             make(map[string]Interval),
		MaxConcurrentBookings: DefaultMaxConcurrentBookings,
	}
}

// IsClosedOn returns true if the date is a one-off closure
func (c *TenantCalendar) IsClosedOn(date time.Time) bool {
	_, ok := c.ClosedDates[date.Format(DateFormat)]
	return ok
}

// IsClosedWeekday returns true if the weekday is a regular day off
func (c *TenantCalendar) IsClosedWeekday(weekday time.Weekday) bool {
	_, ok := c.ClosedWeekdays[weekday]
	return ok
}

// CalendarSource which rule produced the effective window
type CalendarSource string

const (
	SourceClosedDate    CalendarSource = "closed_date"
	SourceClosedWeekday CalendarSource = "closed_weekday"
	SourceOverride      CalendarSource = "override"
	SourceWeekly        CalendarSource = "weekly"
	SourceWeeklyDefault CalendarSource = "weekly_default"
	SourceDefault       CalendarSource = "default"
)

// CalendarWindow effective opening hours of a tenant on a date
type CalendarWindow struct {
	Window Interval
	Closed bool
	Source CalendarSource
}
