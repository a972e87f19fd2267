package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

var tokyo = time.FixedZone("JST", 9*60*60)

// понедельник
var queryDate = time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)

type fixture struct {
	tenants  *fakeTenantRepo
	menus    *fakeMenuRepo
	staff    *fakeStaffRepo
	shifts   *fakeShiftRepo
	bookings *fakeBookingRepo
	metrics  *recordingMetrics
	now      time.Time
}

func newFixture() *fixture {
	return &fixture{
		tenants: &fakeTenantRepo{settings: &domain.TenantSettings{
			TenantID:      1,
			BusinessHours: []byte(`{"monday": {"open": "10:00", "close": "19:00"}}`),
		}},
		menus: &fakeMenuRepo{menus: []*domain.Menu{
			{ID: 1, TenantID: 1, DurationMinutes: 60},
			{ID: 2, TenantID: 1, DurationMinutes: 30},
		}},
		staff:    &fakeStaffRepo{},
		shifts:   &fakeShiftRepo{},
		bookings: &fakeBookingRepo{},
		metrics:  newRecordingMetrics(),
		// за день до запрашиваемой даты по времени салона
		now: time.Date(2025, time.June, 1, 12, 0, 0, 0, tokyo),
	}
}

func (f *fixture) useCase() *UseCase {
	uc := NewUseCase(f.tenants, f.menus, f.staff, f.shifts, f.bookings, tokyo, f.metrics, nopLogger{})
	uc.timeProvider = fixedTime{now: f.now}
	return uc
}

func (f *fixture) execute(t *testing.T, req *Request) []string {
	t.Helper()
	resp, err := f.useCase().Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp)
	return slotStrings(resp.Slots)
}

func TestUseCase_FullDayNoBookings(t *testing.T) {
	f := newFixture()
	f.staff.staff = []*domain.Staff{{ID: 1, WorkingHours: strPtr("10:00-19:00"), IsActive: true}}

	resp, err := f.useCase().Execute(context.Background(), &Request{TenantID: 1, Date: queryDate, MenuIDs: []int64{1}})
	require.NoError(t, err)

	slots := slotStrings(resp.Slots)
	require.Len(t, slots, 33)
	assert.Equal(t, "10:00", slots[0])
	assert.Equal(t, "18:00", slots[32])
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, []int{33}, f.metrics.slots[ModePool])

	require.Len(t, f.bookings.filters, 1)
	assert.Equal(t, domain.StatusConfirmed, f.bookings.filters[0].Status)
	assert.Equal(t, "2025-06-02", f.bookings.filters[0].Date.Format(domain.DateFormat))
}

func TestUseCase_StaffShiftWithBreak(t *testing.T) {
	f := newFixture()
	f.staff.staff = []*domain.Staff{{ID: 7, WorkingHours: strPtr("10:00-19:00"), IsActive: true}}
	f.shifts.shifts = []*domain.StaffShift{{
		StaffID:    7,
		StartTime:  tsPtr("09:00"),
		EndTime:    tsPtr("18:00"),
		BreakTimes: []byte(`[{"start":"13:00","end":"13:30"}]`),
	}}

	slots := f.execute(t, &Request{TenantID: 1, Date: queryDate, MenuIDs: []int64{2}, StaffID: staffIDPtr(7)})

	assert.Equal(t, "09:00", slots[0], "staff shift is authoritative over store hours")
	assert.NotContains(t, slots, "13:00")
	assert.Contains(t, slots, "13:30")
	assert.Equal(t, "17:30", slots[len(slots)-1])
	assert.Equal(t, []int{len(slots)}, f.metrics.slots[ModeStaff])
}

func TestUseCase_ClosureBeatsOverride(t *testing.T) {
	f := newFixture()
	f.tenants.settings.TemporaryClosedDays = []byte(`["2025-06-02"]`)
	f.tenants.settings.SpecialBusinessHours = []byte(`{"2025-06-02": {"open": "12:00", "close": "15:00"}}`)
	f.staff.staff = []*domain.Staff{{ID: 1, WorkingHours: strPtr("10:00-19:00"), IsActive: true}}

	for _, staffID := range []*int64{nil, staffIDPtr(1)} {
		slots := f.execute(t, &Request{TenantID: 1, Date: queryDate, MenuIDs: []int64{1}, StaffID: staffID})
		assert.Empty(t, slots)
	}
	assert.Empty(t, f.bookings.filters, "bookings are not needed for a closed day")
}

func TestUseCase_StaffScopedIgnoresOtherStaffBookings(t *testing.T) {
	f := newFixture()
	f.staff.staff = []*domain.Staff{
		{ID: 1, WorkingHours: strPtr("10:00-19:00"), IsActive: true},
		{ID: 2, WorkingHours: strPtr("10:00-19:00"), IsActive: true},
	}
	f.bookings.bookings = []*domain.Booking{
		booking("10:00", 60, staffIDPtr(1)),
		booking("12:00", 60, staffIDPtr(2)),
		booking("12:00", 60, nil),
		booking("12:00", 60, nil),
	}

	slots := f.execute(t, &Request{TenantID: 1, Date: queryDate, MenuIDs: []int64{1}, StaffID: staffIDPtr(1)})

	for _, s := range slots {
		start := ts(s).Minutes()
		assert.False(t, start < ts("11:00").Minutes() && start+60 > ts("10:00").Minutes(), "slot %s", s)
	}
	assert.Contains(t, slots, "12:00", "capacity is not applied to a staff-scoped query")
}

func TestUseCase_CapacityInPooledMode(t *testing.T) {
	f := newFixture()
	f.tenants.settings.MaxConcurrentReservations = ptr.Ptr(2)
	f.staff.staff = []*domain.Staff{
		{ID: 1, WorkingHours: strPtr("10:00-19:00"), IsActive: true},
		{ID: 2, WorkingHours: strPtr("10:00-19:00"), IsActive: true},
		{ID: 3, WorkingHours: strPtr("10:00-19:00"), IsActive: true},
	}
	f.bookings.bookings = []*domain.Booking{
		booking("14:00", 60, staffIDPtr(1)),
		booking("14:00", 60, staffIDPtr(2)),
	}

	slots := f.execute(t, &Request{TenantID: 1, Date: queryDate, MenuIDs: []int64{1}})

	for _, s := range slots {
		start := ts(s).Minutes()
		assert.False(t, start < ts("15:00").Minutes() && start+60 > ts("14:00").Minutes(), "slot %s", s)
	}
	assert.Contains(t, slots, "13:00")
	assert.Contains(t, slots, "15:00")
}

func TestUseCase_NoStaffRecordsCapacityOnly(t *testing.T) {
	f := newFixture()

	slots := f.execute(t, &Request{TenantID: 1, Date: queryDate, MenuIDs: []int64{1}})

	assert.Len(t, slots, 33)
	assert.Equal(t, 1, f.metrics.fallbacks[fallbackCapacityOnly])
}

func TestUseCase_AllStaffOffIsEmpty(t *testing.T) {
	f := newFixture()
	f.staff.staff = []*domain.Staff{{ID: 1, WorkingHours: strPtr("10:00-19:00"), IsActive: true}}
	f.shifts.shifts = []*domain.StaffShift{{StaffID: 1, IsOff: true}}

	slots := f.execute(t, &Request{TenantID: 1, Date: queryDate, MenuIDs: []int64{1}})

	assert.Empty(t, slots)
}

func TestUseCase_EnvelopeBoundsGridWithoutCalendarConfig(t *testing.T) {
	f := newFixture()
	f.tenants.settings = &domain.TenantSettings{TenantID: 1}
	f.staff.staff = []*domain.Staff{
		{ID: 1, WorkingHours: strPtr("08:00-12:00"), IsActive: true},
		{ID: 2, WorkingHours: strPtr("11:00-21:00"), IsActive: true},
	}

	slots := f.execute(t, &Request{TenantID: 1, Date: queryDate, MenuIDs: []int64{1}})

	assert.Equal(t, "08:00", slots[0])
	assert.Equal(t, "20:00", slots[len(slots)-1])
}

func TestUseCase_CalendarWindowBoundsPooledGrid(t *testing.T) {
	f := newFixture()
	f.staff.staff = []*domain.Staff{{ID: 1, WorkingHours: strPtr("08:00-21:00"), IsActive: true}}

	slots := f.execute(t, &Request{TenantID: 1, Date: queryDate, MenuIDs: []int64{1}})

	assert.Equal(t, "10:00", slots[0])
	assert.Equal(t, "18:00", slots[len(slots)-1])
}

func TestUseCase_DegradesOnCollaboratorFailures(t *testing.T) {
	f := newFixture()
	f.tenants.err = errDBDown
	f.menus.err = errDBDown
	f.staff.listErr = errDBDown
	f.shifts.err = errDBDown

	resp, err := f.useCase().Execute(context.Background(), &Request{TenantID: 1, Date: queryDate, MenuIDs: []int64{2}})
	require.NoError(t, err)

	slots := slotStrings(resp.Slots)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, "10:00", slots[0])
	assert.Equal(t, "18:00", slots[len(slots)-1])
	assert.Equal(t, 1, f.metrics.fallbacks[fallbackCalendarFetch])
	assert.Equal(t, 1, f.metrics.fallbacks[fallbackMenuFetch])
	assert.Equal(t, 1, f.metrics.fallbacks[fallbackStaffFetch])
}

func TestUseCase_ShiftFetchFailureUsesDefaultHours(t *testing.T) {
	f := newFixture()
	f.staff.staff = []*domain.Staff{{ID: 1, WorkingHours: strPtr("12:00-15:00"), IsActive: true}}
	f.shifts.err = errDBDown

	slots := f.execute(t, &Request{TenantID: 1, Date: queryDate, MenuIDs: []int64{1}, StaffID: staffIDPtr(1)})

	assert.Equal(t, []string{"12:00", "12:15", "12:30", "12:45", "13:00", "13:15", "13:30", "13:45", "14:00"}, slots)
	assert.Equal(t, 1, f.metrics.fallbacks[fallbackShiftFetch])
}

func TestUseCase_UnknownOrInactiveStaff(t *testing.T) {
	f := newFixture()
	f.staff.staff = []*domain.Staff{{ID: 1, WorkingHours: strPtr("10:00-19:00"), IsActive: false}}

	assert.Empty(t, f.execute(t, &Request{TenantID: 1, Date: queryDate, StaffID: staffIDPtr(1)}))
	assert.Empty(t, f.execute(t, &Request{TenantID: 1, Date: queryDate, StaffID: staffIDPtr(99)}))
}

func TestUseCase_BookingFetchFailure(t *testing.T) {
	f := newFixture()
	f.bookings.err = errDBDown

	_, err := f.useCase().Execute(context.Background(), &Request{TenantID: 1, Date: queryDate, MenuIDs: []int64{1}})

	assert.ErrorIs(t, err, ErrInternal)
}

func TestUseCase_SameDayFloor(t *testing.T) {
	f := newFixture()
	f.now = time.Date(2025, time.June, 2, 13, 3, 0, 0, tokyo)
	f.staff.staff = []*domain.Staff{{ID: 1, WorkingHours: strPtr("10:00-19:00"), IsActive: true}}

	slots := f.execute(t, &Request{TenantID: 1, Date: queryDate, MenuIDs: []int64{2}})
	assert.Equal(t, "13:15", slots[0])

	f.bookings.bookings = []*domain.Booking{booking("13:00", 60, staffIDPtr(1))}
	slots = f.execute(t, &Request{TenantID: 1, Date: queryDate, MenuIDs: []int64{2}})
	assert.Equal(t, "14:00", slots[0])
}

func TestUseCase_TodayInTenantTimezone(t *testing.T) {
	f := newFixture()
	// 2025-06-01 20:00 UTC = 2025-06-02 05:00 JST
	f.now = time.Date(2025, time.June, 1, 20, 0, 0, 0, time.UTC)

	slots := f.execute(t, &Request{TenantID: 1, Date: queryDate, MenuIDs: []int64{1}})

	assert.Len(t, slots, 33)
}

func TestUseCase_PastDate(t *testing.T) {
	f := newFixture()
	f.now = time.Date(2025, time.June, 3, 9, 0, 0, 0, tokyo)

	slots := f.execute(t, &Request{TenantID: 1, Date: queryDate, MenuIDs: []int64{1}})

	assert.Empty(t, slots)
	assert.Empty(t, f.bookings.filters)
}

func TestUseCase_Idempotent(t *testing.T) {
	f := newFixture()
	f.staff.staff = []*domain.Staff{
		{ID: 1, WorkingHours: strPtr("10:00-19:00"), IsActive: true},
		{ID: 2, WorkingHours: strPtr("12:00-18:00"), IsActive: true},
	}
	f.bookings.bookings = []*domain.Booking{
		booking("11:00", 90, staffIDPtr(1)),
		booking("15:00", 60, nil),
	}
	req := &Request{TenantID: 1, Date: queryDate, MenuIDs: []int64{1, 2}}

	first := f.execute(t, req)
	second := f.execute(t, req)

	assert.Equal(t, first, second)
}

func TestUseCase_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{name: "nil request", req: nil},
		{name: "missing tenant", req: &Request{Date: queryDate}},
		{name: "missing date", req: &Request{TenantID: 1}},
		{name: "bad menu id", req: &Request{TenantID: 1, Date: queryDate, MenuIDs: []int64{0}}},
		{name: "bad staff id", req: &Request{TenantID: 1, Date: queryDate, StaffID: staffIDPtr(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newFixture().useCase().Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
