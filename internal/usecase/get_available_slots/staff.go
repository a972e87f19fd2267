package get_available_slots

import (
	"fmt"
	"sort"
	"strings"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Причины, по которым сотрудник недоступен на дату
const (
	reasonOff          = "off"
	reasonEmptyWindow  = "empty_window"
	reasonUnresolved   = "unresolved"
	reasonInactive     = "inactive"
	sourceShift        = "shift"
	sourceDefaultHours = "default_hours"
)

var workingHoursSeparators = strings.NewReplacer("〜", "-", "~", "-", "－", "-", "–", "-")

type breakJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// staffResolution результат разрешения расписания одного сотрудника
type staffResolution struct {
	availability *domain.StaffAvailability // nil, если сотрудник недоступен
	source       string                    // shift | default_hours | причина недоступности
	warnings     []string
}

// resolveStaffAvailability рабочее окно и перерывы сотрудника на дату.
// Смена на дату приоритетнее часов по умолчанию; выходной по смене делает день недоступным.
// shift == nil означает, что записи о смене нет.
func resolveStaffAvailability(staff *domain.Staff, shift *domain.StaffShift) staffResolution {
	var warnings []string

	if shift != nil {
		switch {
		case shift.IsOff:
			return staffResolution{source: reasonOff}
		case shift.HasWindow():
			window := domain.Interval{Start: *shift.StartTime, End: *shift.EndTime}
			if !window.IsValid() {
				return staffResolution{
					source:   reasonEmptyWindow,
					warnings: []string{fmt.Sprintf("shift window %s is empty", window)},
				}
			}
			breaks, breakWarnings := parseBreaks(shift.BreakTimes, window)
			return staffResolution{
				availability: &domain.StaffAvailability{StaffID: staff.ID, Window: window, Breaks: breaks},
				source:       sourceShift,
				warnings:     breakWarnings,
			}
		default:
			warnings = append(warnings, "shift row has neither window nor off flag, ignored")
		}
	}

	if staff.WorkingHours == nil || strings.TrimSpace(*staff.WorkingHours) == "" {
		return staffResolution{source: reasonUnresolved, warnings: warnings}
	}

	window, ok := parseWorkingHours(*staff.WorkingHours)
	if !ok {
		warnings = append(warnings, fmt.Sprintf("working_hours %q is invalid", *staff.WorkingHours))
		return staffResolution{source: reasonUnresolved, warnings: warnings}
	}

	return staffResolution{
		availability: &domain.StaffAvailability{StaffID: staff.ID, Window: window},
		source:       sourceDefaultHours,
		warnings:     warnings,
	}
}

// parseWorkingHours разбирает часы по умолчанию вида "10:00-19:00" (допускаются ~ и 〜)
func parseWorkingHours(s string) (domain.Interval, bool) {
	parts := strings.Split(workingHoursSeparators.Replace(strings.TrimSpace(s)), "-")
	if len(parts) != 2 {
		return domain.Interval{}, false
	}

	start, err := types.NewTimeStringFromString(parts[0])
	if err != nil {
		return domain.Interval{}, false
	}
	end, err := types.NewTimeStringFromString(parts[1])
	if err != nil {
		return domain.Interval{}, false
	}

	window := domain.Interval{Start: start, End: end}
	if !window.IsValid() {
		return domain.Interval{}, false
	}
	return window, true
}

// parseBreaks разбирает перерывы смены. Некорректные, перевернутые и выходящие за окно смены
// перерывы отбрасываются с предупреждением.
func parseBreaks(raw []byte, window domain.Interval) ([]domain.Interval, []string) {
	var items []breakJSON
	ok, err := decodeLoose(raw, &items)
	if err != nil {
		return nil, []string{fmt.Sprintf("break_times: %v", err)}
	}
	if !ok {
		return nil, nil
	}

	var warnings []string
	breaks := make([]domain.Interval, 0, len(items))
	for _, item := range items {
		start, errStart := types.NewTimeStringFromString(item.Start)
		end, errEnd := types.NewTimeStringFromString(item.End)
		if errStart != nil || errEnd != nil {
			warnings = append(warnings, fmt.Sprintf("break %q-%q is malformed", item.Start, item.End))
			continue
		}

		br := domain.Interval{Start: start, End: end}
		if !br.IsValid() {
			warnings = append(warnings, fmt.Sprintf("break %s is inverted", br))
			continue
		}
		if !window.Contains(br) {
			warnings = append(warnings, fmt.Sprintf("break %s is outside shift %s", br, window))
			continue
		}
		breaks = append(breaks, br)
	}

	sort.Slice(breaks, func(i, j int) bool {
		return breaks[i].Start.IsBefore(breaks[j].Start)
	})

	return breaks, warnings
}

// staffPool доступные сотрудники тенанта на дату
type staffPool struct {
	members  []domain.StaffAvailability
	envelope domain.Interval // от самого раннего начала до самого позднего конца
}

func (p staffPool) isEmpty() bool {
	return len(p.members) == 0
}

// buildStaffPool разрешает расписание всех активных сотрудников.
// onResolved вызывается для каждого сотрудника (для логирования).
func buildStaffPool(
	staff []*domain.Staff,
	shifts map[int64]*domain.StaffShift,
	onResolved func(staffID int64, res staffResolution),
) staffPool {
	var pool staffPool

	for _, s := range staff {
		if s == nil {
			continue
		}
		if !s.IsActive {
			onResolved(s.ID, staffResolution{source: reasonInactive})
			continue
		}

		res := resolveStaffAvailability(s, shifts[s.ID])
		onResolved(s.ID, res)
		if res.availability == nil {
			continue
		}

		member := *res.availability
		if pool.isEmpty() {
			pool.envelope = member.Window
		} else {
			if member.Window.Start.IsBefore(pool.envelope.Start) {
				pool.envelope.Start = member.Window.Start
			}
			if member.Window.End.IsAfter(pool.envelope.End) {
				pool.envelope.End = member.Window.End
			}
		}
		pool.members = append(pool.members, member)
	}

	return pool
}
