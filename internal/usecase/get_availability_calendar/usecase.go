package get_availability_calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	slotsUC "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
)

// UseCase календарь доступности на несколько дней.
// Даты считаются параллельно, расчет одной даты остается последовательным.
type UseCase struct {
	slots        SlotsUseCase
	location     *time.Location
	maxParallel  int
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slots SlotsUseCase, location *time.Location, maxParallel int, logger Logger) *UseCase {
	if location == nil {
		location = time.UTC
	}
	if maxParallel <= 0 {
		maxParallel = 1
	}

	return &UseCase{
		slots:        slots,
		location:     location,
		maxParallel:  maxParallel,
		timeProvider: &slotsUC.RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения календаря доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailabilityCalendar: validation failed: %v", err)
		return nil, err
	}

	days := req.Days
	if days == 0 {
		days = domain.DefaultCalendarDays
	}

	from := req.From
	if from.IsZero() {
		from = uc.timeProvider.Now().In(uc.location)
	}
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, uc.location)

	uc.logger.Info("GetAvailabilityCalendar: tenant=%d, from=%s, days=%d",
		req.TenantID, from.Format(domain.DateFormat), days)

	// 2. Каждая дата считается отдельным запросом, результат пишется в свою ячейку
	result := make([]Day, days)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.maxParallel)

	for i := 0; i < days; i++ {
		date := from.AddDate(0, 0, i)
		g.Go(func() error {
			resp, err := uc.slots.Execute(gctx, &slotsUC.Request{
				TenantID: req.TenantID,
				Date:     date,
				MenuIDs:  req.MenuIDs,
				StaffID:  req.StaffID,
			})
			if err != nil {
				return fmt.Errorf("date %s: %w", date.Format(domain.DateFormat), err)
			}
			result[i] = Day{
				Date:      date,
				Available: len(resp.Slots) > 0,
				Slots:     resp.Slots,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, slotsUC.ErrInvalidInput) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("GetAvailabilityCalendar: failed for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return &Response{
		TenantID: req.TenantID,
		From:     from,
		Days:     result,
	}, nil
}
