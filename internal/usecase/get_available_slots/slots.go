package get_available_slots

import (
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// generateCandidates генерирует время начала с шагом сетки от open до close-duration включительно.
// Сетка привязана к open, слот не может заканчиваться позже close.
func generateCandidates(bounds domain.Interval, durationMinutes int) []types.TimeString {
	candidates := make([]types.TimeString, 0)
	if !bounds.IsValid() || durationMinutes <= 0 {
		return candidates
	}

	lastStart := bounds.End.Minutes() - durationMinutes
	for m := bounds.Start.Minutes(); m <= lastStart; m += domain.GridStepMinutes {
		ts, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			break
		}
		candidates = append(candidates, ts)
	}

	return candidates
}

// slotInterval интервал [start, start+duration)
func slotInterval(start types.TimeString, durationMinutes int) domain.Interval {
	return domain.Interval{Start: start, End: clampedTime(start.Minutes() + durationMinutes)}
}

// clampedTime время с ограничением концом суток
func clampedTime(minutes int) types.TimeString {
	if minutes > types.MaxMinutes {
		minutes = types.MaxMinutes
	}
	if minutes < 0 {
		minutes = 0
	}
	ts, _ := types.NewTimeStringFromMinutes(minutes)
	return ts
}
