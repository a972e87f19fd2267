package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// TenantRepository источник настроек календаря тенанта
type TenantRepository interface {
	GetSettings(ctx context.Context, tenantID int64) (*domain.TenantSettings, error)
}

// MenuRepository каталог меню тенанта
type MenuRepository interface {
	// GetByIDs возвращает найденные меню, неизвестные ID пропускаются
	GetByIDs(ctx context.Context, tenantID int64, ids []int64) ([]*domain.Menu, error)
}

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	GetByID(ctx context.Context, tenantID, staffID int64) (*domain.Staff, error)
	ListByTenant(ctx context.Context, tenantID int64) ([]*domain.Staff, error)
}

// ShiftRepository интерфейс репозитория смен
type ShiftRepository interface {
	GetByStaffAndDate(ctx context.Context, tenantID, staffID int64, date time.Time) (*domain.StaffShift, error)
	ListByTenantAndDate(ctx context.Context, tenantID int64, date time.Time) ([]*domain.StaffShift, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByTenantAndDate получает бронирования тенанта на дату
	GetByTenantAndDate(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// Metrics метрики движка доступности
type Metrics interface {
	IncFallback(kind string)
	ObserveSlots(mode string, count int)
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

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

type nopMetrics struct{}

func (nopMetrics) IncFallback(string)       {}
func (nopMetrics) ObserveSlots(string, int) {}
