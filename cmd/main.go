package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	addDateOverrideHandler "github.com/m04kA/CMP-AvailabilityService/internal/api/handlers/add_date_override"
	getAvailableSlotsHandler "github.com/m04kA/CMP-AvailabilityService/internal/api/handlers/get_available_slots"
	getLiveStatusHandler "github.com/m04kA/CMP-AvailabilityService/internal/api/handlers/get_live_status"
	getScheduleHandler "github.com/m04kA/CMP-AvailabilityService/internal/api/handlers/get_schedule"
	removeDateOverrideHandler "github.com/m04kA/CMP-AvailabilityService/internal/api/handlers/remove_date_override"
	updateRecurringScheduleHandler "github.com/m04kA/CMP-AvailabilityService/internal/api/handlers/update_recurring_schedule"
	updateSettingsHandler "github.com/m04kA/CMP-AvailabilityService/internal/api/handlers/update_settings"
	"github.com/m04kA/CMP-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/CMP-AvailabilityService/internal/config"
	availabilityRepo "github.com/m04kA/CMP-AvailabilityService/internal/infra/storage/availability"
	sessionServiceClient "github.com/m04kA/CMP-AvailabilityService/internal/integrations/sessionservice"
	availabilityService "github.com/m04kA/CMP-AvailabilityService/internal/service/availability"
	getAvailableSlotsUC "github.com/m04kA/CMP-AvailabilityService/internal/usecase/get_available_slots"
	getLiveStatusUC "github.com/m04kA/CMP-AvailabilityService/internal/usecase/get_live_status"
	"github.com/m04kA/CMP-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/CMP-AvailabilityService/pkg/logger"
	"github.com/m04kA/CMP-AvailabilityService/pkg/metrics"
	"github.com/m04kA/CMP-AvailabilityService/pkg/simpletxmanager"
	"github.com/m04kA/CMP-AvailabilityService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting CMP-AvailabilityService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
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

	// Инициализируем клиент SessionService
	sessionClient := sessionServiceClient.NewClient(
		cfg.SessionService.URL,
		time.Duration(cfg.SessionService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (SessionService=%s timeout=%ds)",
		cfg.SessionService.URL, cfg.SessionService.Timeout)

	// Инициализируем репозиторий и transaction manager (с метриками или без)
	var repository *availabilityRepo.Repository
	var txMgr availabilityService.TransactionManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		repository = availabilityRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		repository = availabilityRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервис профилей доступности
	availabilitySvc := availabilityService.NewService(repository, txMgr, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(availabilitySvc, sessionClient, log)
	getLiveStatusUseCase := getLiveStatusUC.NewUseCase(availabilitySvc, sessionClient, log)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getLiveStatus := getLiveStatusHandler.NewHandler(getLiveStatusUseCase, log)
	getSchedule := getScheduleHandler.NewHandler(availabilitySvc, log)
	updateRecurringSchedule := updateRecurringScheduleHandler.NewHandler(availabilitySvc, log)
	addDateOverride := addDateOverrideHandler.NewHandler(availabilitySvc, log)
	removeDateOverride := removeDateOverrideHandler.NewHandler(availabilitySvc, log)
	updateSettings := updateSettingsHandler.NewHandler(availabilitySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты коуча
	api.HandleFunc("/coaches/{coachId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Живой статус коуча
	api.HandleFunc("/coaches/{coachId}/availability/status",
		getLiveStatus.Handle).Methods(http.MethodGet)

	// Полное расписание коуча
	api.HandleFunc("/coaches/{coachId}/schedule",
		getSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Замена еженедельного расписания
	protected.HandleFunc("/coaches/{coachId}/schedule/recurring",
		updateRecurringSchedule.Handle).Methods(http.MethodPut)

	// Исключения на даты
	protected.HandleFunc("/coaches/{coachId}/schedule/overrides",
		addDateOverride.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/coaches/{coachId}/schedule/overrides/{date}",
		removeDateOverride.Handle).Methods(http.MethodDelete)

	// Настройки профиля (буферы, длительности, окно бронирования)
	protected.HandleFunc("/coaches/{coachId}/settings",
		updateSettings.Handle).Methods(http.MethodPut)

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
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
