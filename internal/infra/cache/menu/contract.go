package menu

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// MenuRepository источник каталога меню
type MenuRepository interface {
	GetByIDs(ctx context.Context, tenantID int64, ids []int64) ([]*domain.Menu, error)
}
