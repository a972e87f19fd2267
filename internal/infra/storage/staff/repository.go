package staff

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

var staffColumns = []string{
	"staff_id",
	"tenant_id",
	"name",
	"working_hours",
	"is_active",
}

// Repository репозиторий сотрудников
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сотрудников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает сотрудника тенанта по ID
func (r *Repository) GetByID(ctx context.Context, tenantID, staffID int64) (*domain.Staff, error) {
	query, args, err := psqlbuilder.Select(staffColumns...).
		From("staff").
		Where(squirrel.Eq{"tenant_id": tenantID, "staff_id": staffID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanStaff(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan staff: %v", ErrScanRow, err)
	}

	return s, nil
}

// ListByTenant получает всех сотрудников тенанта, включая неактивных
func (r *Repository) ListByTenant(ctx context.Context, tenantID int64) ([]*domain.Staff, error) {
	query, args, err := psqlbuilder.Select(staffColumns...).
		From("staff").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("staff_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Staff, 0)
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByTenant - scan row: %v", ErrScanRow, err)
		}
		result = append(result, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStaff(row rowScanner) (*domain.Staff, error) {
	var (
		s            domain.Staff
		workingHours sql.NullString
		isActive     sql.NullBool
	)

	if err := row.Scan(&s.ID, &s.TenantID, &s.Name, &workingHours, &isActive); err != nil {
		return nil, err
	}

	if workingHours.Valid {
		wh := workingHours.String
		s.WorkingHours = &wh
	}
	// NULL трактуем как активного сотрудника
	s.IsActive = !isActive.Valid || isActive.Bool

	return &s, nil
}
