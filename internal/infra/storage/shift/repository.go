package shift

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

var shiftColumns = []string{
	"shift_id",
	"staff_id",
	"tenant_id",
	"shift_date",
	"start_time",
	"end_time",
	"is_off",
	"break_times",
}

// Repository репозиторий смен сотрудников
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория смен
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByStaffAndDate получает смену сотрудника на дату
func (r *Repository) GetByStaffAndDate(ctx context.Context, tenantID, staffID int64, date time.Time) (*domain.StaffShift, error) {
	query, args, err := psqlbuilder.Select(shiftColumns...).
		From("staff_shifts").
		Where(squirrel.Eq{
			"tenant_id":  tenantID,
			"staff_id":   staffID,
			"shift_date": date.Format(domain.DateFormat),
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffAndDate - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanShift(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShiftNotFound
		}
		return nil, fmt.Errorf("%w: GetByStaffAndDate - scan shift: %v", ErrScanRow, err)
	}

	return s, nil
}

// ListByTenantAndDate получает смены всех сотрудников тенанта на дату
func (r *Repository) ListByTenantAndDate(ctx context.Context, tenantID int64, date time.Time) ([]*domain.StaffShift, error) {
	query, args, err := psqlbuilder.Select(shiftColumns...).
		From("staff_shifts").
		Where(squirrel.Eq{
			"tenant_id":  tenantID,
			"shift_date": date.Format(domain.DateFormat),
		}).
		OrderBy("staff_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTenantAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTenantAndDate - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	shifts := make([]*domain.StaffShift, 0)
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByTenantAndDate - scan row: %v", ErrScanRow, err)
		}
		shifts = append(shifts, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByTenantAndDate - rows error: %v", ErrScanRow, err)
	}

	return shifts, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanShift(row rowScanner) (*domain.StaffShift, error) {
	var (
		s         domain.StaffShift
		shiftDate sql.NullTime
		isOff     sql.NullBool
	)

	err := row.Scan(
		&s.ID,
		&s.StaffID,
		&s.TenantID,
		&shiftDate,
		&s.StartTime,
		&s.EndTime,
		&isOff,
		&s.BreakTimes,
	)
	if err != nil {
		return nil, err
	}

	s.ShiftDate = shiftDate.Time
	s.IsOff = isOff.Valid && isOff.Bool

	return &s, nil
}
