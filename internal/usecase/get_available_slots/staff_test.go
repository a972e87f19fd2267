package get_available_slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

func TestParseWorkingHours(t *testing.T) {
	tests := []struct {
		in     string
		want   domain.Interval
		wantOK bool
	}{
		{in: "10:00-19:00", want: iv("10:00", "19:00"), wantOK: true},
		{in: " 9:30 ~ 18:00 ", want: iv("09:30", "18:00"), wantOK: true},
		{in: "10:00〜20:00", want: iv("10:00", "20:00"), wantOK: true},
		{in: "19:00-10:00", wantOK: false},
		{in: "10:00", wantOK: false},
		{in: "morning-evening", wantOK: false},
		{in: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseWorkingHours(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseBreaks(t *testing.T) {
	window := iv("09:00", "18:00")

	breaks, warnings := parseBreaks([]byte(`[
		{"start": "15:00", "end": "15:15"},
		{"start": "13:00", "end": "13:30"},
		{"start": "12:00", "end": "11:00"},
		{"start": "08:00", "end": "09:30"},
		{"start": "noon", "end": "13:00"}
	]`), window)

	assert.Equal(t, []domain.Interval{iv("13:00", "13:30"), iv("15:00", "15:15")}, breaks)
	assert.Len(t, warnings, 3)
}

func TestParseBreaks_DoubleEncodedAndEmpty(t *testing.T) {
	window := iv("09:00", "18:00")

	breaks, warnings := parseBreaks([]byte(`"[{\"start\":\"13:00\",\"end\":\"14:00\"}]"`), window)
	assert.Empty(t, warnings)
	assert.Equal(t, []domain.Interval{iv("13:00", "14:00")}, breaks)

	breaks, warnings = parseBreaks(nil, window)
	assert.Empty(t, warnings)
	assert.Empty(t, breaks)
}

func TestResolveStaffAvailability(t *testing.T) {
	withDefault := &domain.Staff{ID: 1, WorkingHours: strPtr("10:00-19:00"), IsActive: true}
	withoutDefault := &domain.Staff{ID: 2, IsActive: true}

	tests := []struct {
		name       string
		staff      *domain.Staff
		shift      *domain.StaffShift
		wantWindow *domain.Interval
		wantBreaks int
		wantSource string
	}{
		{
			name:       "shift off",
			staff:      withDefault,
			shift:      &domain.StaffShift{StaffID: 1, IsOff: true, StartTime: tsPtr("09:00"), EndTime: tsPtr("18:00")},
			wantSource: reasonOff,
		},
		{
			name:  "explicit shift with breaks",
			staff: withDefault,
			shift: &domain.StaffShift{
				StaffID:    1,
				StartTime:  tsPtr("09:00"),
				EndTime:    tsPtr("18:00"),
				BreakTimes: []byte(`[{"start":"13:00","end":"13:30"}]`),
			},
			wantWindow: ptrInterval(iv("09:00", "18:00")),
			wantBreaks: 1,
			wantSource: sourceShift,
		},
		{
			name:       "shift wider than default hours wins",
			staff:      withDefault,
			shift:      &domain.StaffShift{StaffID: 1, StartTime: tsPtr("08:00"), EndTime: tsPtr("22:00")},
			wantWindow: ptrInterval(iv("08:00", "22:00")),
			wantSource: sourceShift,
		},
		{
			name:       "empty shift window",
			staff:      withDefault,
			shift:      &domain.StaffShift{StaffID: 1, StartTime: tsPtr("18:00"), EndTime: tsPtr("18:00")},
			wantSource: reasonEmptyWindow,
		},
		{
			name:       "no shift row uses default hours",
			staff:      withDefault,
			wantWindow: ptrInterval(iv("10:00", "19:00")),
			wantSource: sourceDefaultHours,
		},
		{
			name:       "malformed shift row treated as missing",
			staff:      withDefault,
			shift:      &domain.StaffShift{StaffID: 1, StartTime: tsPtr("09:00")},
			wantWindow: ptrInterval(iv("10:00", "19:00")),
			wantSource: sourceDefaultHours,
		},
		{
			name:       "neither shift nor default hours",
			staff:      withoutDefault,
			wantSource: reasonUnresolved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := resolveStaffAvailability(tt.staff, tt.shift)
			assert.Equal(t, tt.wantSource, res.source)
			if tt.wantWindow == nil {
				assert.Nil(t, res.availability)
				return
			}
			require.NotNil(t, res.availability)
			assert.Equal(t, *tt.wantWindow, res.availability.Window)
			assert.Len(t, res.availability.Breaks, tt.wantBreaks)
		})
	}
}

func TestBuildStaffPool_Envelope(t *testing.T) {
	staff := []*domain.Staff{
		{ID: 1, WorkingHours: strPtr("10:00-16:00"), IsActive: true},
		{ID: 2, WorkingHours: strPtr("12:00-20:00"), IsActive: true},
		{ID: 3, WorkingHours: strPtr("07:00-22:00"), IsActive: false},
		{ID: 4, IsActive: true},
		{ID: 5, WorkingHours: strPtr("08:00-21:00"), IsActive: true},
	}
	shifts := map[int64]*domain.StaffShift{
		5: {StaffID: 5, IsOff: true},
	}

	resolved := map[int64]string{}
	pool := buildStaffPool(staff, shifts, func(id int64, res staffResolution) {
		resolved[id] = res.source
	})

	require.Len(t, pool.members, 2)
	assert.Equal(t, iv("10:00", "20:00"), pool.envelope)
	assert.Equal(t, map[int64]string{
		1: sourceDefaultHours,
		2: sourceDefaultHours,
		3: reasonInactive,
		4: reasonUnresolved,
		5: reasonOff,
	}, resolved)
}

func ptrInterval(i domain.Interval) *domain.Interval {
	return &i
}
