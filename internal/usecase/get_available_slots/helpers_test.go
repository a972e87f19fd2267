package get_available_slots

import (
	"context"
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	shiftRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/shift"
	staffRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

var errDBDown = errors.New("connection refused")

type fakeTenantRepo struct {
	settings *domain.TenantSettings
	err      error
}

func (f *fakeTenantRepo) GetSettings(_ context.Context, _ int64) (*domain.TenantSettings, error) {
	return f.settings, f.err
}

type fakeMenuRepo struct {
	menus []*domain.Menu
	err   error
}

func (f *fakeMenuRepo) GetByIDs(_ context.Context, _ int64, ids []int64) ([]*domain.Menu, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := make([]*domain.Menu, 0)
	for _, m := range f.menus {
		for _, id := range ids {
			if m.ID == id {
				result = append(result, m)
				break
			}
		}
	}
	return result, nil
}

type fakeStaffRepo struct {
	staff   []*domain.Staff
	err     error
	listErr error
}

func (f *fakeStaffRepo) GetByID(_ context.Context, _ int64, staffID int64) (*domain.Staff, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, s := range f.staff {
		if s.ID == staffID {
			return s, nil
		}
	}
	return nil, staffRepo.ErrStaffNotFound
}

func (f *fakeStaffRepo) ListByTenant(_ context.Context, _ int64) ([]*domain.Staff, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.staff, nil
}

type fakeShiftRepo struct {
	shifts []*domain.StaffShift
	err    error
}

func (f *fakeShiftRepo) GetByStaffAndDate(_ context.Context, _ int64, staffID int64, _ time.Time) (*domain.StaffShift, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, s := range f.shifts {
		if s.StaffID == staffID {
			return s, nil
		}
	}
	return nil, shiftRepo.ErrShiftNotFound
}

func (f *fakeShiftRepo) ListByTenantAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.StaffShift, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.shifts, nil
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
	filters  []domain.BookingsFilter
}

func (f *fakeBookingRepo) GetByTenantAndDate(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.filters = append(f.filters, filter)
	if f.err != nil {
		return nil, f.err
	}
	return f.bookings, nil
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type recordingMetrics struct {
	fallbacks map[string]int
	slots     map[string][]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{fallbacks: map[string]int{}, slots: map[string][]int{}}
}

func (m *recordingMetrics) IncFallback(kind string) {
	m.fallbacks[kind]++
}

func (m *recordingMetrics) ObserveSlots(mode string, count int) {
	m.slots[mode] = append(m.slots[mode], count)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func ts(s string) types.TimeString {
	return types.MustTimeString(s)
}

func tsPtr(s string) *types.TimeString {
	t := ts(s)
	return &t
}

func iv(start, end string) domain.Interval {
	return domain.Interval{Start: ts(start), End: ts(end)}
}

func strPtr(s string) *string {
	return &s
}

func staffIDPtr(id int64) *int64 {
	return &id
}

func slotStrings(slots []types.TimeString) []string {
	result := make([]string, len(slots))
	for i, s := range slots {
		result[i] = s.String()
	}
	return result
}

func booking(start string, duration int, staffID *int64) *domain.Booking {
	return &domain.Booking{
		TenantID:        1,
		StartTime:       ts(start),
		DurationMinutes: duration,
		StaffID:         staffID,
		Status:          domain.StatusConfirmed,
	}
}
