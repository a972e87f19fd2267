package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	shiftRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/shift"
	staffRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

const tracerName = "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"

// Метки метрики availability_fallbacks_total
const (
	fallbackCalendarFetch = "calendar_fetch"
	fallbackCalendarParse = "calendar_parse"
	fallbackMenuFetch     = "menu_fetch"
	fallbackStaffFetch    = "staff_fetch"
	fallbackShiftFetch    = "shift_fetch"
	fallbackCapacityOnly  = "capacity_only"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	tenantRepo   TenantRepository
	menuRepo     MenuRepository
	staffRepo    StaffRepository
	shiftRepo    ShiftRepository
	bookingRepo  BookingRepository
	location     *time.Location
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// location - часовой пояс салонов, в нем вычисляется "сегодня" и текущее время.
// metrics может быть nil.
func NewUseCase(
	tenantRepo TenantRepository,
	menuRepo MenuRepository,
	staffRepo StaffRepository,
	shiftRepo ShiftRepository,
	bookingRepo BookingRepository,
	location *time.Location,
	metrics Metrics,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}

	return &UseCase{
		tenantRepo:   tenantRepo,
		menuRepo:     menuRepo,
		staffRepo:    staffRepo,
		shiftRepo:    shiftRepo,
		bookingRepo:  bookingRepo,
		location:     location,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "GetAvailableSlots")
	defer span.End()

	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, uc.location)
	mode := ModePool
	if req.StaffID != nil {
		mode = ModeStaff
	}
	span.SetAttributes(
		attribute.Int64("tenant.id", req.TenantID),
		attribute.String("availability.date", date.Format(domain.DateFormat)),
		attribute.String("availability.mode", mode),
	)

	uc.logger.Info("GetAvailableSlots: tenant=%d, date=%s, menus=%v, staff=%s",
		req.TenantID, date.Format(domain.DateFormat), req.MenuIDs, formatStaffID(req.StaffID))

	resp := &Response{
		Date:     date,
		TenantID: req.TenantID,
		StaffID:  req.StaffID,
		Slots:    []types.TimeString{},
	}

	// 2. Текущее время салона вычисляется один раз на запрос
	now := uc.timeProvider.Now().In(uc.location)
	if isDateInPast(date, now) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past", date.Format(domain.DateFormat))
		return resp, nil
	}

	// 3. Часы работы тенанта
	window := uc.resolveCalendar(ctx, req.TenantID, date)
	calendar := window.calendar
	if window.Closed {
		uc.logger.Info("GetAvailableSlots: tenant=%d closed on %s (source=%s)",
			req.TenantID, date.Format(domain.DateFormat), window.Source)
		uc.metrics.ObserveSlots(mode, 0)
		return resp, nil
	}

	// 4. Длительность выбранных меню
	resp.DurationMinutes = uc.resolveDuration(ctx, req.TenantID, req.MenuIDs)

	// 5. Подтвержденные бронирования на дату; без них доступность не вычислить
	bookings, err := uc.bookingRepo.GetByTenantAndDate(ctx, domain.BookingsFilter{
		TenantID: req.TenantID,
		Date:     date,
		Status:   domain.StatusConfirmed,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "bookings fetch failed")
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}
	spans := toBookingSpans(bookings)

	// 6-7. Сотрудники, сетка и конфликты
	var slots []types.TimeString
	if req.StaffID != nil {
		slots = uc.staffScopedSlots(ctx, req.TenantID, *req.StaffID, date, resp.DurationMinutes, spans)
	} else {
		slots = uc.pooledSlots(ctx, req.TenantID, date, window.CalendarWindow, calendar.MaxConcurrentBookings,
			resp.DurationMinutes, spans)
	}

	// 8. Для сегодняшней даты отсекаем прошедшее время и идущие записи
	if isSameDay(date, now) {
		floor := sameDayFloor(now, spans)
		slots = applyFloor(slots, floor)
		uc.logger.Info("GetAvailableSlots: same-day floor %d min applied", floor)
	}

	resp.Slots = slots
	uc.metrics.ObserveSlots(mode, len(slots))
	span.SetAttributes(attribute.Int("availability.slots", len(slots)))

	uc.logger.Info("GetAvailableSlots: %d slots for tenant=%d, date=%s, duration=%d",
		len(slots), req.TenantID, date.Format(domain.DateFormat), resp.DurationMinutes)

	return resp, nil
}

type resolvedCalendar struct {
	domain.CalendarWindow
	calendar *domain.TenantCalendar
}

// resolveCalendar загружает и разбирает календарь; при любой ошибке используется календарь по умолчанию
func (uc *UseCase) resolveCalendar(ctx context.Context, tenantID int64, date time.Time) resolvedCalendar {
	settings, err := uc.tenantRepo.GetSettings(ctx, tenantID)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: failed to get calendar of tenant=%d, using defaults: %v", tenantID, err)
		uc.metrics.IncFallback(fallbackCalendarFetch)
		settings = nil
	}

	calendar, warnings := parseCalendar(settings)
	if len(warnings) > 0 {
		uc.logger.Warn("GetAvailableSlots: calendar of tenant=%d has invalid entries: %s",
			tenantID, strings.Join(warnings, "; "))
		uc.metrics.IncFallback(fallbackCalendarParse)
	}

	window := resolveCalendarWindow(calendar, date)
	if !window.Closed {
		uc.logger.Info("GetAvailableSlots: calendar window %s (source=%s, capacity=%d)",
			window.Window, window.Source, calendar.MaxConcurrentBookings)
	}

	return resolvedCalendar{CalendarWindow: window, calendar: calendar}
}

// resolveDuration при ошибке каталога каждое меню считается как 60 минут
func (uc *UseCase) resolveDuration(ctx context.Context, tenantID int64, menuIDs []int64) int {
	if len(menuIDs) == 0 {
		return resolveDuration(nil, nil)
	}

	menus, err := uc.menuRepo.GetByIDs(ctx, tenantID, menuIDs)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: failed to get menus %v, using default durations: %v", menuIDs, err)
		uc.metrics.IncFallback(fallbackMenuFetch)
		menus = nil
	}

	return resolveDuration(menus, menuIDs)
}

// staffScopedSlots слоты конкретного сотрудника: сетка строится по его окну
func (uc *UseCase) staffScopedSlots(
	ctx context.Context,
	tenantID, staffID int64,
	date time.Time,
	duration int,
	spans []bookingSpan,
) []types.TimeString {
	staff, err := uc.staffRepo.GetByID(ctx, tenantID, staffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			uc.logger.Info("GetAvailableSlots: staff id=%d not found in tenant=%d", staffID, tenantID)
		} else {
			uc.logger.Error("GetAvailableSlots: failed to get staff id=%d: %v", staffID, err)
			uc.metrics.IncFallback(fallbackStaffFetch)
		}
		return []types.TimeString{}
	}
	if !staff.IsActive {
		uc.logger.Info("GetAvailableSlots: staff id=%d is inactive", staffID)
		return []types.TimeString{}
	}

	shift, err := uc.shiftRepo.GetByStaffAndDate(ctx, tenantID, staffID, date)
	if err != nil {
		if !errors.Is(err, shiftRepo.ErrShiftNotFound) {
			uc.logger.Warn("GetAvailableSlots: failed to get shift of staff id=%d, using default hours: %v", staffID, err)
			uc.metrics.IncFallback(fallbackShiftFetch)
		}
		shift = nil
	}

	res := resolveStaffAvailability(staff, shift)
	uc.logResolution(staffID, res)
	if res.availability == nil {
		return []types.TimeString{}
	}

	candidates := generateCandidates(res.availability.Window, duration)
	return filterStaffScoped(candidates, duration, spans, *res.availability)
}

// pooledSlots слоты "любого сотрудника" с учетом лимита одновременных бронирований
func (uc *UseCase) pooledSlots(
	ctx context.Context,
	tenantID int64,
	date time.Time,
	window domain.CalendarWindow,
	capacity int,
	duration int,
	spans []bookingSpan,
) []types.TimeString {
	capacityOnly := false

	staff, err := uc.staffRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: failed to list staff of tenant=%d, checking capacity only: %v", tenantID, err)
		uc.metrics.IncFallback(fallbackStaffFetch)
		staff = nil
		capacityOnly = true
	} else if len(staff) == 0 {
		uc.logger.Info("GetAvailableSlots: tenant=%d has no staff, checking capacity only", tenantID)
		capacityOnly = true
	}

	var pool staffPool
	if !capacityOnly {
		shifts := uc.loadShifts(ctx, tenantID, date)
		pool = buildStaffPool(staff, shifts, uc.logResolution)
		if pool.isEmpty() {
			uc.logger.Info("GetAvailableSlots: no staff available in tenant=%d on %s",
				tenantID, date.Format(domain.DateFormat))
			return []types.TimeString{}
		}
	} else {
		uc.metrics.IncFallback(fallbackCapacityOnly)
	}

	bounds := window.Window
	if window.Source == domain.SourceDefault && !pool.isEmpty() {
		bounds = pool.envelope
		uc.logger.Info("GetAvailableSlots: grid bounded by staff envelope %s", bounds)
	}

	candidates := generateCandidates(bounds, duration)
	return filterUnscoped(candidates, duration, spans, pool, capacity, capacityOnly)
}

func (uc *UseCase) loadShifts(ctx context.Context, tenantID int64, date time.Time) map[int64]*domain.StaffShift {
	shifts := make(map[int64]*domain.StaffShift)

	list, err := uc.shiftRepo.ListByTenantAndDate(ctx, tenantID, date)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: failed to list shifts of tenant=%d, using default hours: %v", tenantID, err)
		uc.metrics.IncFallback(fallbackShiftFetch)
		return shifts
	}

	for _, s := range list {
		if s != nil {
			shifts[s.StaffID] = s
		}
	}
	return shifts
}

func (uc *UseCase) logResolution(staffID int64, res staffResolution) {
	for _, w := range res.warnings {
		uc.logger.Warn("GetAvailableSlots: staff id=%d: %s", staffID, w)
	}
	if res.availability == nil {
		uc.logger.Info("GetAvailableSlots: staff id=%d unavailable (%s)", staffID, res.source)
		return
	}
	uc.logger.Info("GetAvailableSlots: staff id=%d window %s, %d breaks (source=%s)",
		staffID, res.availability.Window, len(res.availability.Breaks), res.source)
}

func formatStaffID(id *int64) string {
	if id == nil {
		return "any"
	}
	return fmt.Sprintf("%d", *id)
}
