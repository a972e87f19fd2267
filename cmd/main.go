package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	getAvailabilityCalendarHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_availability_calendar"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_available_slots"
	getDayBookingsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_day_bookings"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/config"
	calendarCache "github.com/m04kA/SMC-SalonService/internal/infra/cache/calendar"
	menuCache "github.com/m04kA/SMC-SalonService/internal/infra/cache/menu"
	bookingRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/booking"
	menuRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/menu"
	shiftRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/shift"
	staffRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/staff"
	tenantRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/tenant"
	bookingsService "github.com/m04kA/SMC-SalonService/internal/service/bookings"
	getAvailabilityCalendarUC "github.com/m04kA/SMC-SalonService/internal/usecase/get_availability_calendar"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/metrics"
	"github.com/m04kA/SMC-SalonService/pkg/tracing"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-SalonService...")
	log.Info("Configuration loaded from %s", *configPath)

	location, err := cfg.Availability.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %s: %v", cfg.Availability.Timezone, err)
	}

	// Трассировка
	shutdownTracing, err := tracing.Setup(context.Background(), tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRatio:  cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to setup tracing: %v", err)
	}
	if cfg.Tracing.Enabled {
		log.Info("Tracing enabled, exporting to %s", cfg.Tracing.OTLPEndpoint)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var engineMetrics getAvailableSlotsUC.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		engineMetrics = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Все репозитории работают через DBExecutor, с метриками или без
	var executor dbmetrics.DBExecutor = db
	if cfg.Metrics.Enabled {
		executor = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	}

	// Инициализируем репозитории
	tenantRepository := tenantRepo.NewRepository(executor)
	menuRepository := menuRepo.NewRepository(executor)
	staffRepository := staffRepo.NewRepository(executor)
	shiftRepository := shiftRepo.NewRepository(executor)
	bookingRepository := bookingRepo.NewRepository(executor)

	// Кэши
	var settingsSource getAvailableSlotsUC.TenantRepository = tenantRepository
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			// кэш работает в режиме fail-open, поэтому только предупреждаем
			log.Warn("Redis is unavailable at %s: %v", cfg.Redis.Addr, err)
		}
		cancelPing()

		settingsSource = calendarCache.NewCache(
			tenantRepository,
			redisClient,
			time.Duration(cfg.Cache.CalendarTTL)*time.Second,
			log,
		)
		log.Info("Calendar settings cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Cache.CalendarTTL)
	}

	menus := menuCache.NewCache(
		menuRepository,
		cfg.Cache.MenuSize,
		time.Duration(cfg.Cache.MenuTTL)*time.Second,
	)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		settingsSource,
		menus,
		staffRepository,
		shiftRepository,
		bookingRepository,
		location,
		engineMetrics,
		log,
	)

	getAvailabilityCalendarUseCase := getAvailabilityCalendarUC.NewUseCase(
		getAvailableSlotsUseCase,
		location,
		cfg.Availability.MaxParallel,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailabilityCalendar := getAvailabilityCalendarHandler.NewHandler(getAvailabilityCalendarUseCase, log)
	getDayBookings := getDayBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recover(log))
	r.Use(middleware.AccessLog(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log)
		api.Use(limiter.Middleware)
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// Доступные слоты на дату
	api.HandleFunc("/tenants/{tenantId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Календарь доступности на несколько дней
	api.HandleFunc("/tenants/{tenantId}/availability-calendar",
		getAvailabilityCalendar.Handle).Methods(http.MethodGet)

	// Бронирования салона за день
	api.HandleFunc("/tenants/{tenantId}/reservations",
		getDayBookings.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(r, "salon-service"),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to shutdown tracer provider: %v", err)
	}

	log.Info("Server stopped gracefully")
}
