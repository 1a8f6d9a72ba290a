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

	closeSessionHandler "github.com/m04kA/SMC-AppointmentScheduler/internal/api/handlers/close_session"
	createSessionHandler "github.com/m04kA/SMC-AppointmentScheduler/internal/api/handlers/create_session"
	getSessionHandler "github.com/m04kA/SMC-AppointmentScheduler/internal/api/handlers/get_session"
	listAttemptsHandler "github.com/m04kA/SMC-AppointmentScheduler/internal/api/handlers/list_attempts"
	listProvidersHandler "github.com/m04kA/SMC-AppointmentScheduler/internal/api/handlers/list_providers"
	refreshAvailabilityHandler "github.com/m04kA/SMC-AppointmentScheduler/internal/api/handlers/refresh_availability"
	selectDateHandler "github.com/m04kA/SMC-AppointmentScheduler/internal/api/handlers/select_date"
	selectHourHandler "github.com/m04kA/SMC-AppointmentScheduler/internal/api/handlers/select_hour"
	selectProviderHandler "github.com/m04kA/SMC-AppointmentScheduler/internal/api/handlers/select_provider"
	submitBookingHandler "github.com/m04kA/SMC-AppointmentScheduler/internal/api/handlers/submit_booking"
	toggleCalendarHandler "github.com/m04kA/SMC-AppointmentScheduler/internal/api/handlers/toggle_calendar"
	"github.com/m04kA/SMC-AppointmentScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentScheduler/internal/config"
	attemptRepo "github.com/m04kA/SMC-AppointmentScheduler/internal/infra/storage/attempt"
	providerServiceClient "github.com/m04kA/SMC-AppointmentScheduler/internal/integrations/providerservice"
	bookingsService "github.com/m04kA/SMC-AppointmentScheduler/internal/service/bookings"
	sessionsService "github.com/m04kA/SMC-AppointmentScheduler/internal/service/sessions"
	"github.com/m04kA/SMC-AppointmentScheduler/pkg/logger"
	"github.com/m04kA/SMC-AppointmentScheduler/pkg/metrics"
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

	log.Info("Starting SMC-AppointmentScheduler...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var observer sessionsService.Observer

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		observer = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Журнал попыток записи (опционально)
	var attempts bookingsService.AttemptRepository

	if cfg.Database.Enabled {
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

		attempts = attemptRepo.NewRepository(db)
	} else {
		log.Warn("Database disabled, booking attempts will not be journaled")
	}

	// Инициализируем клиента маркетплейса
	providerClient := providerServiceClient.NewClient(
		cfg.ProviderService.URL,
		time.Duration(cfg.ProviderService.Timeout)*time.Second,
		providerServiceClient.NewLimiter(cfg.ProviderService.RateLimit, cfg.ProviderService.RateBurst),
		log,
	)
	log.Info("Integration client initialized (ProviderService=%s timeout=%ds rate=%.1f/s)",
		cfg.ProviderService.URL, cfg.ProviderService.Timeout, cfg.ProviderService.RateLimit)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(providerClient, attempts, log)

	sessionSvc := sessionsService.NewService(
		providerClient,
		bookingSvc,
		providerClient,
		observer,
		sessionsService.Config{
			Location:              cfg.Scheduling.Location(),
			RequestTimeout:        time.Duration(cfg.Scheduling.RequestTimeout) * time.Second,
			CloseCalendarOnSelect: cfg.Scheduling.CloseCalendarOnSelect,
			IdleTTL:               time.Duration(cfg.Sessions.IdleTTL) * time.Second,
		},
		log,
	)

	// Фоновая очистка неактивных сессий
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go sessionSvc.Run(sweepCtx, time.Duration(cfg.Sessions.SweepInterval)*time.Second)

	// Инициализируем handlers
	listProviders := listProvidersHandler.NewHandler(sessionSvc, log)
	createSession := createSessionHandler.NewHandler(sessionSvc, log)
	getSession := getSessionHandler.NewHandler(sessionSvc, log)
	closeSession := closeSessionHandler.NewHandler(sessionSvc, log)
	selectProvider := selectProviderHandler.NewHandler(sessionSvc, log)
	selectDate := selectDateHandler.NewHandler(sessionSvc, log)
	toggleCalendar := toggleCalendarHandler.NewHandler(sessionSvc, log)
	selectHour := selectHourHandler.NewHandler(sessionSvc, log)
	submitBooking := submitBookingHandler.NewHandler(sessionSvc, log)
	refreshAvailability := refreshAvailabilityHandler.NewHandler(sessionSvc, log)
	listAttempts := listAttemptsHandler.NewHandler(sessionSvc, bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Metrics middleware и endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix, все маршруты требуют bearer токен (он передается в маркетплейс)
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	api.HandleFunc("/providers", listProviders.Handle).Methods(http.MethodGet)

	// --- Экран записи ---
	api.HandleFunc("/sessions", createSession.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{sessionId}", closeSession.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{sessionId}/provider", selectProvider.Handle).Methods(http.MethodPut)
	api.HandleFunc("/sessions/{sessionId}/date", selectDate.Handle).Methods(http.MethodPut)
	api.HandleFunc("/sessions/{sessionId}/calendar/toggle", toggleCalendar.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}/hour", selectHour.Handle).Methods(http.MethodPut)
	api.HandleFunc("/sessions/{sessionId}/submit", submitBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}/availability/refresh", refreshAvailability.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}/attempts", listAttempts.Handle).Methods(http.MethodGet)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем очистку и закрываем открытые сессии
	stopSweep()
	sessionSvc.Shutdown()
	log.Info("Sessions closed")

	log.Info("Server stopped gracefully")
}
