package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v6"
)

var (
	// ErrInvalidConfig возвращается при некорректных значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Tracing      TracingConfig      `toml:"tracing"`
	Redis        RedisConfig        `toml:"redis"`
	Cache        CacheConfig        `toml:"cache"`
	RateLimit    RateLimitConfig    `toml:"ratelimit"`
	Availability AvailabilityConfig `toml:"availability"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" env:"SALON_HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout"`  // секунды
	WriteTimeout    int `toml:"write_timeout"` // секунды
	IdleTimeout     int `toml:"idle_timeout"`  // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host" env:"SALON_DB_HOST"`
	Port            int    `toml:"port" env:"SALON_DB_PORT"`
	User            string `toml:"user" env:"SALON_DB_USER"`
	Password        string `toml:"password" env:"SALON_DB_PASSWORD"`
	DBName          string `toml:"dbname" env:"SALON_DB_NAME"`
	SSLMode         string `toml:"sslmode" env:"SALON_DB_SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level" env:"SALON_LOG_LEVEL"`
	File  string `toml:"file" env:"SALON_LOG_FILE"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" env:"SALON_METRICS_ENABLED"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type TracingConfig struct {
	Enabled      bool    `toml:"enabled" env:"SALON_TRACING_ENABLED"`
	OTLPEndpoint string  `toml:"otlp_endpoint" env:"SALON_OTLP_ENDPOINT"`
	SampleRatio  float64 `toml:"sample_ratio"`
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled" env:"SALON_REDIS_ENABLED"`
	Addr     string `toml:"addr" env:"SALON_REDIS_ADDR"`
	Password string `toml:"password" env:"SALON_REDIS_PASSWORD"`
	DB       int    `toml:"db"`
}

type CacheConfig struct {
	CalendarTTL int `toml:"calendar_ttl"` // секунды, TTL настроек календаря в Redis
	MenuSize    int `toml:"menu_size"`    // размер LRU каталога меню
	MenuTTL     int `toml:"menu_ttl"`     // секунды
}

type RateLimitConfig struct {
	Enabled bool    `toml:"enabled" env:"SALON_RATELIMIT_ENABLED"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
}

type AvailabilityConfig struct {
	Timezone    string `toml:"timezone" env:"SALON_TIMEZONE"`
	MaxParallel int    `toml:"max_parallel"` // параллелизм по датам в календаре доступности
}

// Location часовой пояс салонов
func (a AvailabilityConfig) Location() (*time.Location, error) {
	return time.LoadLocation(a.Timezone)
}

// Load читает конфигурацию из TOML файла и применяет переменные окружения
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "salon-service",
		},
		Tracing: TracingConfig{
			SampleRatio: 1,
		},
		Cache: CacheConfig{
			CalendarTTL: 60,
			MenuSize:    1024,
			MenuTTL:     300,
		},
		RateLimit: RateLimitConfig{
			RPS:   20,
			Burst: 40,
		},
		Availability: AvailabilityConfig{
			Timezone:    "Asia/Tokyo",
			MaxParallel: 4,
		},
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range: %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("%w: database.host is required", ErrInvalidConfig)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
	}
	if c.Tracing.Enabled && c.Tracing.OTLPEndpoint == "" {
		return fmt.Errorf("%w: tracing.otlp_endpoint is required when tracing is enabled", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: ratelimit.rps and ratelimit.burst must be positive", ErrInvalidConfig)
	}
	if c.Availability.MaxParallel <= 0 {
		return fmt.Errorf("%w: availability.max_parallel must be positive", ErrInvalidConfig)
	}
	if _, err := c.Availability.Location(); err != nil {
		return fmt.Errorf("%w: availability.timezone %q: %v", ErrInvalidConfig, c.Availability.Timezone, err)
	}
	return nil
}
