package get_availability_calendar

import (
	"context"
	"time"

	slotsUC "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
)

// SlotsUseCase расчет слотов на одну дату
type SlotsUseCase interface {
	Execute(ctx context.Context, req *slotsUC.Request) (*slotsUC.Response, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
