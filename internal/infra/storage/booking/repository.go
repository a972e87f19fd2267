package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// durationExpr длительность бронирования: сумма меню из reservation_menus,
// иначе длительность основного меню, иначе 0 (движок подставит значение по умолчанию)
const durationExpr = `COALESCE(
	(SELECT SUM(rm_menu.duration) FROM reservation_menus rm
		JOIN menus rm_menu ON rm_menu.menu_id = rm.menu_id
		WHERE rm.reservation_id = r.reservation_id),
	m.duration,
	0) AS duration_minutes`

// Repository репозиторий бронирований (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByTenantAndDate получает бронирования тенанта на дату.
// reservation_date хранится в локальном времени салона, конвертация не выполняется.
func (r *Repository) GetByTenantAndDate(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(
		"r.reservation_id",
		"r.tenant_id",
		"r.reservation_date",
		"r.staff_id",
		"r.status",
		durationExpr,
	).
		From("reservations r").
		LeftJoin("menus m ON m.menu_id = r.menu_id").
		Where(squirrel.Eq{"r.tenant_id": filter.TenantID}).
		Where(squirrel.Expr("DATE(r.reservation_date) = ?", filter.Date.Format(domain.DateFormat)))

	if filter.Status != "" {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.status": filter.Status})
	}

	query, args, err := selectBuilder.OrderBy("r.reservation_date ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantAndDate - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var (
			booking         domain.Booking
			reservationDate sql.NullTime
			staffID         sql.NullInt64
			status          string
		)

		err := rows.Scan(
			&booking.ID,
			&booking.TenantID,
			&reservationDate,
			&staffID,
			&status,
			&booking.DurationMinutes,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		if !reservationDate.Valid {
			continue
		}

		booking.BookingDate = reservationDate.Time
		booking.StartTime = types.NewTimeString(reservationDate.Time)
		booking.Status = domain.BookingStatus(status)
		if staffID.Valid {
			id := staffID.Int64
			booking.StaffID = &id
		}

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
