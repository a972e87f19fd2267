package menu

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

type key struct {
	tenantID int64
	menuID   int64
}

// Cache in-process LRU каталога меню с ограниченным временем жизни записей
type Cache struct {
	repo  MenuRepository
	cache *expirable.LRU[key, domain.Menu]
}

// NewCache создает кэш меню на size записей с TTL
func NewCache(repo MenuRepository, size int, ttl time.Duration) *Cache {
	return &Cache{
		repo:  repo,
		cache: expirable.NewLRU[key, domain.Menu](size, nil, ttl),
	}
}

// GetByIDs возвращает меню из кэша, недостающие догружает из репозитория
func (c *Cache) GetByIDs(ctx context.Context, tenantID int64, ids []int64) ([]*domain.Menu, error) {
	result := make([]*domain.Menu, 0, len(ids))
	missing := make([]int64, 0)

	for _, id := range ids {
		if m, ok := c.cache.Get(key{tenantID: tenantID, menuID: id}); ok {
			m := m
			result = append(result, &m)
			continue
		}
		missing = append(missing, id)
	}

	if len(missing) == 0 {
		return result, nil
	}

	loaded, err := c.repo.GetByIDs(ctx, tenantID, missing)
	if err != nil {
		return nil, err
	}

	for _, m := range loaded {
		c.cache.Add(key{tenantID: tenantID, menuID: m.ID}, *m)
		result = append(result, m)
	}

	return result, nil
}
