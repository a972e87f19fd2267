package menu

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

// Repository репозиторий каталога меню
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория меню
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByIDs получает меню тенанта по списку ID. Отсутствующие ID просто не попадают в результат.
func (r *Repository) GetByIDs(ctx context.Context, tenantID int64, ids []int64) ([]*domain.Menu, error) {
	if len(ids) == 0 {
		return []*domain.Menu{}, nil
	}

	query, args, err := psqlbuilder.Select(
		"menu_id",
		"tenant_id",
		"name",
		"duration",
		"price",
	).
		From("menus").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Eq{"menu_id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	menus := make([]*domain.Menu, 0, len(ids))
	for rows.Next() {
		var (
			m        domain.Menu
			duration sql.NullInt64
			price    sql.NullFloat64
		)
		if err := rows.Scan(&m.ID, &m.TenantID, &m.Name, &duration, &price); err != nil {
			return nil, fmt.Errorf("%w: GetByIDs - scan row: %v", ErrScanRow, err)
		}
		m.DurationMinutes = int(duration.Int64)
		m.Price = price.Float64
		menus = append(menus, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - rows error: %v", ErrScanRow, err)
	}

	return menus, nil
}
