package get_available_slots

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

const businessHoursDefaultKey = "default"

var (
	defaultOpen   = types.MustTimeString(domain.DefaultOpenTime)
	defaultClose  = types.MustTimeString(domain.DefaultCloseTime)
	defaultWindow = domain.Interval{Start: defaultOpen, End: defaultClose}
)

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sun":       time.Sunday,
	"mon":       time.Monday,
	"tue":       time.Tuesday,
	"wed":       time.Wednesday,
	"thu":       time.Thursday,
	"fri":       time.Friday,
	"sat":       time.Saturday,
}

// hoursJSON запись business_hours / special_business_hours
type hoursJSON struct {
	Open   *string `json:"open"`
	Close  *string `json:"close"`
	IsOpen *bool   `json:"isOpen"`
}

// parseCalendar единственная точка разбора настроек календаря.
// Любые некорректные фрагменты пропускаются с предупреждением, ошибка наружу не возвращается.
func parseCalendar(settings *domain.TenantSettings) (*domain.TenantCalendar, []string) {
	cal := domain.NewTenantCalendar()
	if settings == nil {
		return cal, nil
	}

	var warnings []string
	warn := func(format string, v ...interface{}) {
		warnings = append(warnings, fmt.Sprintf(format, v...))
	}

	parseBusinessHours(cal, settings.BusinessHours, warn)
	parseClosedDays(cal, settings.ClosedDays, warn)
	parseTemporaryClosedDays(cal, settings.TemporaryClosedDays, warn)
	parseSpecialHours(cal, settings.SpecialBusinessHours, warn)

	if settings.MaxConcurrentReservations != nil {
		if *settings.MaxConcurrentReservations >= domain.MinConcurrentBookings {
			cal.MaxConcurrentBookings = *settings.MaxConcurrentReservations
		} else {
			warn("max_concurrent_reservations=%d is invalid, using %d",
				*settings.MaxConcurrentReservations, domain.DefaultMaxConcurrentBookings)
		}
	}

	return cal, warnings
}

func parseBusinessHours(cal *domain.TenantCalendar, raw []byte, warn func(string, ...interface{})) {
	var entries map[string]json.RawMessage
	ok, err := decodeLoose(raw, &entries)
	if err != nil {
		warn("business_hours: %v", err)
		return
	}
	if !ok {
		return
	}

	// ключи обходятся в фиксированном порядке: "monday" и "1" могут описывать один день
	for _, key := range slices.Sorted(maps.Keys(entries)) {
		var entry hoursJSON
		if _, err := decodeLoose(entries[key], &entry); err != nil {
			warn("business_hours[%s]: %v", key, err)
			continue
		}

		hours := dayHoursWithDefaults(entry, func(field, v string) {
			warn("business_hours[%s].%s=%q is invalid, using default", key, field, v)
		})

		normalized := strings.ToLower(strings.TrimSpace(key))
		if normalized == businessHoursDefaultKey {
			h := hours
			cal.WeeklyDefault = &h
			continue
		}

		weekday, ok := parseWeekday(normalized)
		if !ok {
			warn("business_hours: unknown weekday key %q", key)
			continue
		}
		cal.Weekly[weekday] = hours
	}
}

// dayHoursWithDefaults отсутствующие или некорректные open/close заменяются на 10:00/19:00
func dayHoursWithDefaults(entry hoursJSON, onInvalid func(field, value string)) domain.DayHours {
	hours := domain.DayHours{Open: defaultOpen, Close: defaultClose, IsOpen: true}

	if entry.Open != nil {
		if ts, err := types.NewTimeStringFromString(*entry.Open); err == nil {
			hours.Open = ts
		} else {
			onInvalid("open", *entry.Open)
		}
	}
	if entry.Close != nil {
		if ts, err := types.NewTimeStringFromString(*entry.Close); err == nil {
			hours.Close = ts
		} else {
			onInvalid("close", *entry.Close)
		}
	}
	if entry.IsOpen != nil {
		hours.IsOpen = *entry.IsOpen
	}

	return hours
}

func parseClosedDays(cal *domain.TenantCalendar, raw []byte, warn func(string, ...interface{})) {
	var days []interface{}
	ok, err := decodeLoose(raw, &days)
	if err != nil {
		warn("closed_days: %v", err)
		return
	}
	if !ok {
		return
	}

	for _, day := range days {
		switch v := day.(type) {
		case float64:
			if v < 0 || v > 6 || v != float64(int(v)) {
				warn("closed_days: weekday %v out of range", v)
				continue
			}
			cal.ClosedWeekdays[time.Weekday(int(v))] = struct{}{}
		case string:
			weekday, ok := parseWeekday(strings.ToLower(strings.TrimSpace(v)))
			if !ok {
				warn("closed_days: unknown weekday %q", v)
				continue
			}
			cal.ClosedWeekdays[weekday] = struct{}{}
		default:
			warn("closed_days: unsupported value %v", v)
		}
	}
}

func parseTemporaryClosedDays(cal *domain.TenantCalendar, raw []byte, warn func(string, ...interface{})) {
	var dates []interface{}
	ok, err := decodeLoose(raw, &dates)
	if err != nil {
		warn("temporary_closed_days: %v", err)
		return
	}
	if !ok {
		return
	}

	for _, d := range dates {
		s, isString := d.(string)
		if !isString {
			warn("temporary_closed_days: unsupported value %v", d)
			continue
		}
		date, ok := parseDateKey(s)
		if !ok {
			warn("temporary_closed_days: invalid date %q", s)
			continue
		}
		cal.ClosedDates[date] = struct{}{}
	}
}

func parseSpecialHours(cal *domain.TenantCalendar, raw []byte, warn func(string, ...interface{})) {
	var entries map[string]hoursJSON
	ok, err := decodeLoose(raw, &entries)
	if err != nil {
		warn("special_business_hours: %v", err)
		return
	}
	if !ok {
		return
	}

	for _, key := range slices.Sorted(maps.Keys(entries)) {
		entry := entries[key]
		date, ok := parseDateKey(key)
		if !ok {
			warn("special_business_hours: invalid date %q", key)
			continue
		}
		if entry.Open == nil || entry.Close == nil {
			warn("special_business_hours[%s]: open and close are required", key)
			continue
		}
		open, errOpen := types.NewTimeStringFromString(*entry.Open)
		closeTime, errClose := types.NewTimeStringFromString(*entry.Close)
		if errOpen != nil || errClose != nil {
			warn("special_business_hours[%s]: invalid hours %q-%q", key, *entry.Open, *entry.Close)
			continue
		}
		// close <= open сохраняется: такой день просто не даст слотов
		cal.Overrides[date] = domain.Interval{Start: open, End: closeTime}
	}
}

// resolveCalendarWindow эффективные часы работы тенанта на дату.
// Приоритет: разовое закрытие, выходной день недели, разовое изменение часов,
// недельное расписание (в т.ч. запись "default"), затем 10:00-19:00.
func resolveCalendarWindow(cal *domain.TenantCalendar, date time.Time) domain.CalendarWindow {
	if cal.IsClosedOn(date) {
		return domain.CalendarWindow{Closed: true, Source: domain.SourceClosedDate}
	}

	weekday := date.Weekday()
	if cal.IsClosedWeekday(weekday) {
		return domain.CalendarWindow{Closed: true, Source: domain.SourceClosedWeekday}
	}

	if override, ok := cal.Overrides[date.Format(domain.DateFormat)]; ok {
		return domain.CalendarWindow{Window: override, Source: domain.SourceOverride}
	}

	if hours, ok := cal.Weekly[weekday]; ok {
		return windowFromHours(hours, domain.SourceWeekly)
	}

	if cal.WeeklyDefault != nil {
		return windowFromHours(*cal.WeeklyDefault, domain.SourceWeeklyDefault)
	}

	return domain.CalendarWindow{Window: defaultWindow, Source: domain.SourceDefault}
}

func windowFromHours(hours domain.DayHours, source domain.CalendarSource) domain.CalendarWindow {
	if !hours.IsOpen {
		return domain.CalendarWindow{Closed: true, Source: source}
	}
	return domain.CalendarWindow{Window: hours.Window(), Source: source}
}

func parseWeekday(key string) (time.Weekday, bool) {
	if weekday, ok := weekdayNames[key]; ok {
		return weekday, true
	}
	n, err := strconv.Atoi(key)
	if err != nil || n < 0 || n > 6 {
		return 0, false
	}
	return time.Weekday(n), true
}

// parseDateKey принимает "YYYY-MM-DD" и ISO timestamp, берется часть с датой
func parseDateKey(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < len(domain.DateFormat) {
		return "", false
	}
	datePart := s[:len(domain.DateFormat)]
	if _, err := time.Parse(domain.DateFormat, datePart); err != nil {
		return "", false
	}
	return datePart, true
}

// decodeLoose разбирает JSON колонку, которая может быть пустой, "null",
// "[]" или строкой с JSON внутри (двойное кодирование).
// Возвращает false, если значение пустое.
func decodeLoose(raw []byte, v interface{}) (bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if isEmptyJSON(trimmed) {
		return false, nil
	}

	if trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err != nil {
			return false, err
		}
		return decodeLoose([]byte(inner), v)
	}

	if err := json.Unmarshal(trimmed, v); err != nil {
		return false, err
	}
	return true, nil
}

func isEmptyJSON(b []byte) bool {
	switch strings.ToLower(string(b)) {
	case "", "null", `""`, "[]", "{}":
		return true
	}
	return false
}
