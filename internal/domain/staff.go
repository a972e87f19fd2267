package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Staff member of a tenant
type Staff struct {
	ID           int64
	TenantID     int64
	Name         string
	WorkingHours *string // default hours, free text "HH:MM-HH:MM"
	IsActive     bool
}

// StaffShift explicit schedule of a staff member for one date
type StaffShift struct {
	ID         int64
	StaffID    int64
	TenantID   int64
	ShiftDate  time.Time
	StartTime  *types.TimeString
	EndTime    *types.TimeString
	IsOff      bool
	BreakTimes []byte // JSON [{"start":"HH:MM","end":"HH:MM"}], may be double encoded
}

// HasWindow returns true if the shift carries an explicit working window
func (s *StaffShift) HasWindow() bool {
	return s.StartTime != nil && s.EndTime != nil
}

// StaffAvailability resolved working window and breaks of a staff member for a date
type StaffAvailability struct {
	StaffID int64
	Window  Interval
	Breaks  []Interval
}

// IsFree returns true if the interval fits the window and misses every break
func (a StaffAvailability) IsFree(slot Interval) bool {
	if !a.Window.Contains(slot) {
		return false
	}
	for _, br := range a.Breaks {
		if br.Overlaps(slot) {
			return false
		}
	}
	return true
}
