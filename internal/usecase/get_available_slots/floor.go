package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// sameDayFloor минимальное время начала (в минутах от полуночи) для бронирования на сегодня.
// now округляется вверх до минуты, к нему добавляется буфер; затем граница поднимается
// до конца каждого бронирования, которое заканчивается позже нее.
// Результат может быть больше 24:00, тогда слотов на сегодня нет.
func sameDayFloor(now time.Time, spans []bookingSpan) int {
	nowMinutes := now.Hour()*60 + now.Minute()
	if now.Second() > 0 || now.Nanosecond() > 0 {
		nowMinutes++
	}

	floor := nowMinutes + domain.SameDayBufferMinutes
	for _, span := range spans {
		if end := span.interval.End.Minutes(); end > floor {
			floor = end
		}
	}

	return floor
}

// applyFloor отбрасывает слоты, начинающиеся строго раньше границы
func applyFloor(slots []types.TimeString, floor int) []types.TimeString {
	result := make([]types.TimeString, 0, len(slots))
	for _, s := range slots {
		if s.Minutes() >= floor {
			result = append(result, s)
		}
	}
	return result
}
