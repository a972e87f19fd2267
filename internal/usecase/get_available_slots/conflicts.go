package get_available_slots

import (
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// bookingSpan подтвержденное бронирование, приведенное к интервалу
type bookingSpan struct {
	interval domain.Interval
	staffID  *int64
}

// toBookingSpans переводит подтвержденные бронирования в интервалы.
// Бронирование без длительности считается как 60 минут, конец ограничен 24:00.
func toBookingSpans(bookings []*domain.Booking) []bookingSpan {
	spans := make([]bookingSpan, 0, len(bookings))
	for _, b := range bookings {
		if b == nil || !b.IsConfirmed() {
			continue
		}

		duration := b.DurationMinutes
		if duration <= 0 {
			duration = domain.DefaultServiceDurationMinutes
		}

		spans = append(spans, bookingSpan{
			interval: domain.Interval{Start: b.StartTime, End: b.EndTime(duration)},
			staffID:  b.StaffID,
		})
	}
	return spans
}

// filterStaffScoped оставляет слоты, свободные у конкретного сотрудника.
// Бронирования других сотрудников и без сотрудника не учитываются, лимит тенанта не применяется.
func filterStaffScoped(
	candidates []types.TimeString,
	durationMinutes int,
	spans []bookingSpan,
	staff domain.StaffAvailability,
) []types.TimeString {
	result := make([]types.TimeString, 0, len(candidates))

	for _, start := range candidates {
		slot := slotInterval(start, durationMinutes)
		if overlapsStaffBooking(slot, spans, staff.StaffID) {
			continue
		}
		if overlapsAny(slot, staff.Breaks) {
			continue
		}
		result = append(result, start)
	}

	return result
}

// filterUnscoped оставляет слоты, которые может взять хотя бы один сотрудник и
// которые не упираются в лимит одновременных бронирований тенанта.
//
// Учет двойной: назначенные бронирования блокируют только своего сотрудника,
// а для лимита считаются все пересекающиеся бронирования тенанта (с сотрудником и без).
// capacityOnly отключает проверку сотрудников (у тенанта нет сотрудников).
func filterUnscoped(
	candidates []types.TimeString,
	durationMinutes int,
	spans []bookingSpan,
	pool staffPool,
	capacity int,
	capacityOnly bool,
) []types.TimeString {
	result := make([]types.TimeString, 0, len(candidates))

	for _, start := range candidates {
		slot := slotInterval(start, durationMinutes)

		if countOverlapping(slot, spans) >= capacity {
			continue
		}

		if capacityOnly || anyStaffFree(slot, spans, pool) {
			result = append(result, start)
		}
	}

	return result
}

func anyStaffFree(slot domain.Interval, spans []bookingSpan, pool staffPool) bool {
	for _, member := range pool.members {
		if !member.IsFree(slot) {
			continue
		}
		if overlapsStaffBooking(slot, spans, member.StaffID) {
			continue
		}
		return true
	}
	return false
}

func overlapsStaffBooking(slot domain.Interval, spans []bookingSpan, staffID int64) bool {
	for _, span := range spans {
		if span.staffID == nil || *span.staffID != staffID {
			continue
		}
		if span.interval.Overlaps(slot) {
			return true
		}
	}
	return false
}

func countOverlapping(slot domain.Interval, spans []bookingSpan) int {
	count := 0
	for _, span := range spans {
		if span.interval.Overlaps(slot) {
			count++
		}
	}
	return count
}

func overlapsAny(slot domain.Interval, intervals []domain.Interval) bool {
	for _, iv := range intervals {
		if iv.Overlaps(slot) {
			return true
		}
	}
	return false
}
