package tenant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

// Repository репозиторий настроек календаря тенантов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория тенантов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetSettings получает сырые настройки календаря тенанта.
// JSON колонки возвращаются как есть, разбор выполняет движок доступности.
func (r *Repository) GetSettings(ctx context.Context, tenantID int64) (*domain.TenantSettings, error) {
	query, args, err := psqlbuilder.Select(
		"tenant_id",
		"business_hours",
		"closed_days",
		"temporary_closed_days",
		"special_business_hours",
		"max_concurrent_reservations",
	).
		From("tenants").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSettings - build select query: %v", ErrBuildQuery, err)
	}

	var (
		settings      domain.TenantSettings
		maxConcurrent sql.NullInt64
		businessHours []byte
		closedDays    []byte
		temporaryDays []byte
		specialHours  []byte
	)

	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&settings.TenantID,
		&businessHours,
		&closedDays,
		&temporaryDays,
		&specialHours,
		&maxConcurrent,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("%w: GetSettings - scan settings: %v", ErrExecQuery, err)
	}

	settings.BusinessHours = businessHours
	settings.ClosedDays = closedDays
	settings.TemporaryClosedDays = temporaryDays
	settings.SpecialBusinessHours = specialHours
	if maxConcurrent.Valid {
		v := int(maxConcurrent.Int64)
		settings.MaxConcurrentReservations = &v
	}

	return &settings, nil
}
