package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-SalonBooking/internal/api"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	availabilityRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	clientRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/client"
	availabilityService "github.com/m04kA/SMC-SalonBooking/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/service/slots"
	createBookingUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/slotlock"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

const (
	redisLockRetry      = 50 * time.Millisecond
	rateLimitCleanupGap = 10 * time.Minute
)

func serveCmd(configPath *string) *cobra.Command {
	var skipMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, !skipMigrations)
		},
	}
	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "не применять миграции при старте")

	return cmd
}

func runServer(ctx context.Context, configPath string, migrate bool) error {
	env, err := setup(ctx, configPath)
	if err != nil {
		return err
	}
	defer env.close()

	cfg, log := env.cfg, env.log
	log.Info("Starting SMC-SalonBooking...")

	if migrate {
		if err := env.migrate(ctx); err != nil {
			return err
		}
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopCh := make(chan struct{})
	defer close(stopCh)

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// С nil-метриками обёртка прозрачна
	wrappedDB := dbmetrics.WrapWithDefault(env.db, metricsCollector, stopCh)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB, env.dialect)
	catalogRepository := catalogRepo.NewRepository(wrappedDB, env.dialect)
	clientRepository := clientRepo.NewRepository(wrappedDB, env.dialect)
	templateRepository := availabilityRepo.NewRepository(wrappedDB, env.dialect)
	txManager := txmanager.NewTransactionManager(wrappedDB)

	// Блокировка слотов: redis, если сервис запущен в нескольких экземплярах
	var locker createBookingUC.SlotLocker = slotlock.NewLocal()
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		locker = slotlock.NewRedis(redisClient, time.Duration(cfg.Redis.LockTTL)*time.Second, redisLockRetry)
		log.Info("Slot locks stored in redis (addr=%s)", cfg.Redis.Addr)
	}

	// Инициализируем сервисы
	engine := slots.NewEngine(templateRepository, bookingRepository)
	bookingSvc := bookingsService.NewService(bookingRepository, txManager, &bookingsService.RealTimeProvider{}, metricsCollector, log)
	availabilitySvc := availabilityService.NewService(templateRepository, catalogRepository, txManager,
		cfg.Booking.BulkGranularityMinutes, log)
	catalogSvc := catalogService.NewService(catalogRepository, templateRepository, bookingRepository, clientRepository, txManager, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		clientRepository,
		engine,
		locker,
		txManager,
		createBookingUC.NewBcryptTokenIssuer(bcrypt.DefaultCost),
		metricsCollector,
		log,
	).WithLockTimeout(cfg.Booking.SlotLockTimeoutDuration())

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(catalogRepository, engine, txManager, log)

	deps := api.Deps{
		GetAvailableSlots: getAvailableSlotsUseCase,
		CreateBooking:     createBookingUseCase,
		Bookings:          bookingSvc,
		Availability:      availabilitySvc,
		Catalog:           catalogSvc,
		Logger:            log,
	}

	if cfg.Metrics.Enabled {
		deps.Metrics = metricsCollector
	}

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, log)
		go limiter.RunCleanup(rateLimitCleanupGap, stopCh)
		deps.RateLimiter = limiter
		log.Info("Rate limit for booking creation: %.2f rps, burst %d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	r := api.NewRouter(deps)

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-quit:
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
