package get_available_slots

import (
	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// resolveDuration суммарная длительность выбранных меню.
// Неизвестное меню или меню без длительности считается как 60 минут.
// Пустой список меню дает длительность по умолчанию.
func resolveDuration(menus []*domain.Menu, menuIDs []int64) int {
	if len(menuIDs) == 0 {
		return domain.DefaultServiceDurationMinutes
	}

	durations := make(map[int64]int, len(menus))
	for _, m := range menus {
		if m == nil {
			continue
		}
		durations[m.ID] = m.DurationMinutes
	}

	total := 0
	for _, id := range menuIDs {
		d, ok := durations[id]
		if !ok || d <= 0 {
			d = domain.DefaultServiceDurationMinutes
		}
		total += d
	}

	return total
}
