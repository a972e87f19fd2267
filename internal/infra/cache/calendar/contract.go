package calendar

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// SettingsRepository источник настроек календаря (репозиторий тенантов)
type SettingsRepository interface {
	GetSettings(ctx context.Context, tenantID int64) (*domain.TenantSettings, error)
}

// RedisClient подмножество команд redis, используемых кэшем (*redis.Client подходит)
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
