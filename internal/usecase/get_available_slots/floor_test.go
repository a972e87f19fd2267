package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

func TestSameDayFloor(t *testing.T) {
	base := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		now      time.Time
		bookings []*domain.Booking
		want     string
	}{
		{
			name: "now plus buffer",
			now:  base.Add(11*time.Hour + 2*time.Minute),
			want: "11:12",
		},
		{
			name: "seconds round up",
			now:  base.Add(11*time.Hour + 2*time.Minute + 30*time.Second),
			want: "11:13",
		},
		{
			name:     "running booking raises floor",
			now:      base.Add(11 * time.Hour),
			bookings: []*domain.Booking{booking("10:30", 60, nil)},
			want:     "11:30",
		},
		{
			name:     "booking ending before floor ignored",
			now:      base.Add(11 * time.Hour),
			bookings: []*domain.Booking{booking("09:00", 60, nil)},
			want:     "11:10",
		},
		{
			name: "floor raised past every later ending booking",
			now:  base.Add(11 * time.Hour),
			bookings: []*domain.Booking{
				booking("11:00", 30, nil),
				booking("15:00", 60, nil),
			},
			want: "16:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			floor := sameDayFloor(tt.now, toBookingSpans(tt.bookings))
			assert.Equal(t, ts(tt.want).Minutes(), floor)
		})
	}
}

func TestSameDayFloor_PastMidnight(t *testing.T) {
	now := time.Date(2025, time.June, 2, 23, 55, 0, 0, time.UTC)
	floor := sameDayFloor(now, nil)

	assert.Greater(t, floor, 24*60)
	assert.Empty(t, applyFloor(generateCandidates(iv("22:00", "24:00"), 15), floor))
}

func TestApplyFloor(t *testing.T) {
	slots := generateCandidates(iv("10:00", "12:00"), 30)

	got := slotStrings(applyFloor(slots, ts("10:45").Minutes()))

	assert.Equal(t, []string{"10:45", "11:00", "11:15", "11:30"}, got)
}
