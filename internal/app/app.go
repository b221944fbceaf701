package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	cancelReservationHandler "github.com/m04kA/SMC-TableBooking/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/m04kA/SMC-TableBooking/internal/api/handlers/create_reservation"
	getAvailabilityHandler "github.com/m04kA/SMC-TableBooking/internal/api/handlers/get_availability"
	getReservationHandler "github.com/m04kA/SMC-TableBooking/internal/api/handlers/get_reservation"
	getSettingsHandler "github.com/m04kA/SMC-TableBooking/internal/api/handlers/get_settings"
	issueNonceHandler "github.com/m04kA/SMC-TableBooking/internal/api/handlers/issue_nonce"
	listReservationsHandler "github.com/m04kA/SMC-TableBooking/internal/api/handlers/list_reservations"
	updateCapacityOverrideHandler "github.com/m04kA/SMC-TableBooking/internal/api/handlers/update_capacity_override"
	updateSettingsHandler "github.com/m04kA/SMC-TableBooking/internal/api/handlers/update_settings"
	"github.com/m04kA/SMC-TableBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TableBooking/internal/config"
	overrideRepo "github.com/m04kA/SMC-TableBooking/internal/infra/storage/override"
	reservationRepo "github.com/m04kA/SMC-TableBooking/internal/infra/storage/reservation"
	settingsRepo "github.com/m04kA/SMC-TableBooking/internal/infra/storage/settings"
	reservationsService "github.com/m04kA/SMC-TableBooking/internal/service/reservations"
	settingsService "github.com/m04kA/SMC-TableBooking/internal/service/settings"
	createReservationUC "github.com/m04kA/SMC-TableBooking/internal/usecase/create_reservation"
	getAvailabilityUC "github.com/m04kA/SMC-TableBooking/internal/usecase/get_availability"
	"github.com/m04kA/SMC-TableBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-TableBooking/pkg/logger"
	"github.com/m04kA/SMC-TableBooking/pkg/metrics"
	"github.com/m04kA/SMC-TableBooking/pkg/nonce"
	"github.com/m04kA/SMC-TableBooking/pkg/txmanager"
)

// App собранное приложение: пул соединений, use cases и роутер
type App struct {
	cfg           *config.Config
	log           *logger.Logger
	db            *sql.DB
	stopMetricsCh chan struct{}

	GetAvailability *getAvailabilityUC.UseCase
	router          *mux.Router
}

// OpenDB открывает пул соединений с Postgres и проверяет доступность базы
func OpenDB(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.QueryTimeoutDuration())
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// New собирает зависимости сервиса
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	loc, err := cfg.Restaurant.Location()
	if err != nil {
		return nil, fmt.Errorf("restaurant timezone: %w", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := OpenDB(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без коллектора обёртка только проксирует вызовы
	stopMetricsCh := make(chan struct{})
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)

	nonceManager, err := nonce.NewManager(cfg.Security.NonceSecret, cfg.Security.NonceTTL())
	if err != nil {
		close(stopMetricsCh)
		_ = db.Close()
		return nil, fmt.Errorf("nonce manager: %w", err)
	}

	// Инициализируем репозитории
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)
	overrideRepository := overrideRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)
	timeProvider := getAvailabilityUC.NewRealTimeProvider(loc)

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(reservationRepository, txMgr, timeProvider, log)
	settingsSvc := settingsService.NewService(settingsRepository, overrideRepository, txMgr, log)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		settingsRepository,
		reservationRepository,
		overrideRepository.Ceiling,
		timeProvider,
		cfg.Database.QueryTimeoutDuration(),
		metricsCollector,
		log,
	)

	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		settingsRepository,
		overrideRepository.Ceiling,
		txMgr,
		timeProvider,
		cfg.Restaurant.MaxPartySize,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	handlers := Handlers{
		GetAvailability:        getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log),
		IssueNonce:             issueNonceHandler.NewHandler(nonceManager, middleware.NonceHeader, log),
		CreateReservation:      createReservationHandler.NewHandler(createReservationUseCase, log),
		GetReservation:         getReservationHandler.NewHandler(reservationsSvc, log),
		CancelReservation:      cancelReservationHandler.NewHandler(reservationsSvc, log),
		ListReservations:       listReservationsHandler.NewHandler(reservationsSvc, log),
		GetSettings:            getSettingsHandler.NewHandler(settingsSvc, log),
		UpdateSettings:         updateSettingsHandler.NewHandler(settingsSvc, log),
		UpdateCapacityOverride: updateCapacityOverrideHandler.NewHandler(settingsSvc, log),
	}

	opts := RouterOptions{
		Metrics:       metricsCollector,
		MetricsPath:   cfg.Metrics.Path,
		AdminKey:      cfg.Security.AdminAPIKey,
		NonceVerifier: nonceManager,
		Logger:        log,
	}
	if cfg.RateLimit.Enabled {
		opts.RateLimit = cfg.RateLimit.RequestsPerMinute
		log.Info("Rate limit enabled: %d requests/min per IP", cfg.RateLimit.RequestsPerMinute)
	}

	return &App{
		cfg:             cfg,
		log:             log,
		db:              db,
		stopMetricsCh:   stopMetricsCh,
		GetAvailability: getAvailabilityUseCase,
		router:          NewRouter(handlers, opts),
	}, nil
}

// Handler корневой HTTP обработчик
func (a *App) Handler() http.Handler {
	return a.router
}

// Run запускает HTTP сервер и останавливает его при отмене ctx
func (a *App) Run(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", a.cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      a.router,
		ReadTimeout:  time.Duration(a.cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(a.cfg.Server.IdleTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed to start: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(a.cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	a.log.Info("Server stopped gracefully")
	return nil
}

// Close останавливает сбор метрик и закрывает пул соединений
func (a *App) Close() {
	close(a.stopMetricsCh)
	if err := a.db.Close(); err != nil {
		a.log.Error("Failed to close database: %v", err)
	}
}
