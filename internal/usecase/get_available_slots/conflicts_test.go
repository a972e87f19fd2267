package get_available_slots

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

func TestFilterStaffScoped_BreakBoundary(t *testing.T) {
	staff := domain.StaffAvailability{
		StaffID: 1,
		Window:  iv("09:00", "18:00"),
		Breaks:  []domain.Interval{iv("13:00", "13:30")},
	}
	candidates := generateCandidates(staff.Window, 30)

	slots := slotStrings(filterStaffScoped(candidates, 30, nil, staff))

	assert.NotContains(t, slots, "13:00")
	assert.NotContains(t, slots, "13:15")
	assert.Contains(t, slots, "12:30")
	assert.Contains(t, slots, "13:30")
	assert.Equal(t, "17:30", slots[len(slots)-1])
}

func TestFilterStaffScoped_Exclusivity(t *testing.T) {
	staff := domain.StaffAvailability{StaffID: 1, Window: iv("09:00", "18:00")}
	spans := toBookingSpans([]*domain.Booking{
		booking("10:00", 60, staffIDPtr(1)),
		booking("14:00", 60, staffIDPtr(2)),
		booking("15:00", 60, nil),
	})
	candidates := generateCandidates(staff.Window, 45)

	slots := filterStaffScoped(candidates, 45, spans, staff)

	for _, s := range slots {
		overlaps := s.IsBefore(ts("11:00")) && s.Minutes()+45 > ts("10:00").Minutes()
		assert.False(t, overlaps, "slot %s overlaps own booking", s)
	}
	got := slotStrings(slots)
	assert.Contains(t, got, "09:15")
	assert.NotContains(t, got, "09:30")
	assert.Contains(t, got, "11:00")
	assert.Contains(t, got, "14:00")
	assert.Contains(t, got, "15:00")
}

func TestFilterUnscoped_CapacityBeatsFreeStaff(t *testing.T) {
	pool := staffPool{
		members: []domain.StaffAvailability{
			{StaffID: 1, Window: iv("10:00", "19:00")},
			{StaffID: 2, Window: iv("10:00", "19:00")},
			{StaffID: 3, Window: iv("10:00", "19:00")},
		},
		envelope: iv("10:00", "19:00"),
	}
	spans := toBookingSpans([]*domain.Booking{
		booking("12:00", 60, staffIDPtr(1)),
		booking("12:00", 60, nil),
	})
	candidates := generateCandidates(iv("10:00", "19:00"), 60)

	got := slotStrings(filterUnscoped(candidates, 60, spans, pool, 2, false))

	for _, blocked := range []string{"11:15", "11:30", "11:45", "12:00", "12:15", "12:30", "12:45"} {
		assert.NotContains(t, got, blocked)
	}
	assert.Contains(t, got, "11:00")
	assert.Contains(t, got, "13:00")
}

func TestFilterUnscoped_AssignedBookingBlocksOnlyItsStaff(t *testing.T) {
	pool := staffPool{
		members: []domain.StaffAvailability{
			{StaffID: 1, Window: iv("10:00", "12:00")},
			{StaffID: 2, Window: iv("11:00", "13:00")},
		},
		envelope: iv("10:00", "13:00"),
	}
	spans := toBookingSpans([]*domain.Booking{booking("10:00", 60, staffIDPtr(1))})
	candidates := generateCandidates(pool.envelope, 60)

	got := slotStrings(filterUnscoped(candidates, 60, spans, pool, 3, false))

	// 10:xx: только сотрудник 1 работает, но он занят; с 11:00 свободен сотрудник 2 (или 1)
	assert.Equal(t, []string{"11:00", "11:15", "11:30", "11:45", "12:00"}, got)
}

func TestFilterUnscoped_BreaksPerStaff(t *testing.T) {
	pool := staffPool{
		members: []domain.StaffAvailability{
			{StaffID: 1, Window: iv("10:00", "14:00"), Breaks: []domain.Interval{iv("12:00", "13:00")}},
		},
		envelope: iv("10:00", "14:00"),
	}
	candidates := generateCandidates(pool.envelope, 60)

	got := slotStrings(filterUnscoped(candidates, 60, nil, pool, 3, false))

	assert.Equal(t, []string{"10:00", "10:15", "10:30", "10:45", "11:00", "13:00"}, got)
}

func TestFilterUnscoped_CapacityOnly(t *testing.T) {
	spans := toBookingSpans([]*domain.Booking{
		booking("10:00", 30, nil),
		booking("10:00", 30, nil),
		booking("10:00", 30, nil),
	})
	candidates := generateCandidates(iv("10:00", "11:00"), 30)

	got := slotStrings(filterUnscoped(candidates, 30, spans, staffPool{}, 3, true))

	assert.Equal(t, []string{"10:30"}, got)
}

func TestToBookingSpans(t *testing.T) {
	cancelled := booking("09:00", 60, nil)
	cancelled.Status = domain.StatusCancelled

	spans := toBookingSpans([]*domain.Booking{
		booking("10:00", 0, nil),
		booking("23:30", 90, nil),
		cancelled,
		nil,
	})

	assert.Len(t, spans, 2)
	assert.Equal(t, iv("10:00", "11:00"), spans[0].interval)
	assert.Equal(t, iv("23:30", "24:00"), spans[1].interval)
}
