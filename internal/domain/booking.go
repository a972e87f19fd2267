package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// BookingStatus represents the status of a reservation
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Booking is a reservation as seen by the availability engine.
// BookingDate and StartTime are tenant-local civil values, no timezone conversion applies.
type Booking struct {
	ID              int64
	TenantID        int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int    // resolved from the reserved menus, 0 if unknown
	StaffID         *int64 // nil = no staff assigned
	Status          BookingStatus
}

// IsConfirmed returns true if the booking takes part in conflict checks
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// IsAssignedTo returns true if the booking is explicitly assigned to the staff member
func (b *Booking) IsAssignedTo(staffID int64) bool {
	return b.StaffID != nil && *b.StaffID == staffID
}

// BookingsFilter filter for loading a tenant's bookings on one date
type BookingsFilter struct {
	TenantID int64
	Date     time.Time
	Status   BookingStatus
}

// EndTime returns start + durationMinutes, clamped to the end of the day
func (b *Booking) EndTime(durationMinutes int) types.TimeString {
	end := b.StartTime.Minutes() + durationMinutes
	if end > types.MaxMinutes {
		end = types.MaxMinutes
	}
	ts, _ := types.NewTimeStringFromMinutes(end)
	return ts
}
