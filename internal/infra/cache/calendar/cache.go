package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

const keyPrefix = "salon:calendar:"

// Cache кэширует сырые настройки календаря тенанта в Redis.
// Ошибки Redis не прерывают запрос: чтение идет напрямую в репозиторий.
type Cache struct {
	repo   SettingsRepository
	rdb    RedisClient
	ttl    time.Duration
	logger Logger
}

// NewCache создает кэш настроек календаря
func NewCache(repo SettingsRepository, rdb RedisClient, ttl time.Duration, logger Logger) *Cache {
	return &Cache{
		repo:   repo,
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

// GetSettings возвращает настройки из кэша или из репозитория
func (c *Cache) GetSettings(ctx context.Context, tenantID int64) (*domain.TenantSettings, error) {
	key := cacheKey(tenantID)

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var settings domain.TenantSettings
		if err := json.Unmarshal(raw, &settings); err == nil {
			return &settings, nil
		}
		c.logger.Warn("CalendarCache: corrupted entry for tenant=%d, reloading", tenantID)
	case errors.Is(err, redis.Nil):
	default:
		c.logger.Warn("CalendarCache: redis get failed for tenant=%d: %v", tenantID, err)
	}

	settings, err := c.repo.GetSettings(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(settings)
	if err != nil {
		c.logger.Error("CalendarCache: failed to encode settings for tenant=%d: %v", tenantID, err)
		return settings, nil
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("CalendarCache: redis set failed for tenant=%d: %v", tenantID, err)
	}

	return settings, nil
}

func cacheKey(tenantID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, tenantID)
}
