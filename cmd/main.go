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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-TrainingPortal/internal/api/handlers"
	bookingWizardHandler "github.com/m04kA/SMC-TrainingPortal/internal/api/handlers/booking_wizard"
	cancelBookingHandler "github.com/m04kA/SMC-TrainingPortal/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-TrainingPortal/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-TrainingPortal/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-TrainingPortal/internal/api/handlers/get_booking"
	getBookingHistoryHandler "github.com/m04kA/SMC-TrainingPortal/internal/api/handlers/get_booking_history"
	getPackagesHandler "github.com/m04kA/SMC-TrainingPortal/internal/api/handlers/get_packages"
	getSubscriptionsHandler "github.com/m04kA/SMC-TrainingPortal/internal/api/handlers/get_subscriptions"
	getTrainersHandler "github.com/m04kA/SMC-TrainingPortal/internal/api/handlers/get_trainers"
	getUserBookingsHandler "github.com/m04kA/SMC-TrainingPortal/internal/api/handlers/get_user_bookings"
	"github.com/m04kA/SMC-TrainingPortal/internal/api/middleware"
	"github.com/m04kA/SMC-TrainingPortal/internal/config"
	catalogCache "github.com/m04kA/SMC-TrainingPortal/internal/infra/cache/catalog"
	journalRepo "github.com/m04kA/SMC-TrainingPortal/internal/infra/storage/journal"
	"github.com/m04kA/SMC-TrainingPortal/internal/integrations/studioapi"
	bookingsService "github.com/m04kA/SMC-TrainingPortal/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-TrainingPortal/internal/service/catalog"
	creditsService "github.com/m04kA/SMC-TrainingPortal/internal/service/credits"
	sessionsService "github.com/m04kA/SMC-TrainingPortal/internal/service/sessions"
	createBookingUC "github.com/m04kA/SMC-TrainingPortal/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-TrainingPortal/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-TrainingPortal/internal/wizard"
	"github.com/m04kA/SMC-TrainingPortal/pkg/logger"
	"github.com/m04kA/SMC-TrainingPortal/pkg/metrics"
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

	log.Info("Starting SMC-TrainingPortal...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Wizard.Location()
	if err != nil {
		log.Fatal("Failed to resolve time zone %q: %v", cfg.Wizard.TimeZone, err)
	}

	// Фоновые задачи останавливаются при завершении
	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	// Инициализируем метрики (если включены); nil коллектор ничего не пишет
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Клиент API студии
	studioClient, err := studioapi.NewClient(
		cfg.StudioAPI.URL,
		time.Duration(cfg.StudioAPI.Timeout)*time.Second,
		log,
		metricsCollector,
	)
	if err != nil {
		log.Fatal("Failed to create studio API client: %v", err)
	}
	log.Info("Studio API client initialized (url=%s, timeout=%ds)", cfg.StudioAPI.URL, cfg.StudioAPI.Timeout)

	// Журнал операций в Postgres (опционально)
	var journal bookingsService.Journal
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

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		repo := journalRepo.NewRepository(db)
		journal = repo
		go runJournalRetention(bgCtx, repo, time.Duration(cfg.Database.RetentionDays)*24*time.Hour, log)
	} else {
		log.Info("Database disabled, booking journal is not persisted")
	}

	// Кэш справочников в Redis (опционально)
	var cache catalogService.Cache
	if cfg.Cache.Enabled {
		rdb, err := catalogCache.NewClient(bgCtx, cfg.Cache.Addr, cfg.Cache.Password, cfg.Cache.DB)
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer rdb.Close()

		cache = catalogCache.New(rdb, cfg.Cache.Prefix, time.Duration(cfg.Cache.TTL)*time.Second)
		log.Info("Catalog cache enabled (addr=%s, ttl=%ds)", cfg.Cache.Addr, cfg.Cache.TTL)
	}

	// Инициализируем use cases и сервисы
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(studioClient, location, log)
	creditsSvc := creditsService.NewService(studioClient, log)
	bookingSvc := bookingsService.NewService(studioClient, journal, metricsCollector, log)
	catalogSvc := catalogService.NewService(studioClient, cache, log)
	createBookingUseCase := createBookingUC.NewUseCase(studioClient, creditsSvc, bookingSvc, location, log)

	sessionSvc := sessionsService.NewService(
		wizard.Deps{
			Slots:         getAvailableSlotsUseCase,
			Subscriptions: creditsSvc,
			Lifecycle:     bookingSvc,
			Metrics:       metricsCollector,
			Logger:        log,
		},
		time.Duration(cfg.Wizard.IdleTTL)*time.Second,
		cfg.Wizard.MaxSessions,
		metricsCollector,
		log,
	)
	go sessionSvc.Run(bgCtx, time.Duration(cfg.Wizard.SweepInterval)*time.Second)

	// Инициализируем handlers
	bookingWizard := bookingWizardHandler.NewHandler(sessionSvc, bookingSvc, location, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getTrainers := getTrainersHandler.NewHandler(catalogSvc, log)
	getPackages := getPackagesHandler.NewHandler(catalogSvc, log)
	getSubscriptions := getSubscriptionsHandler.NewHandler(creditsSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, location, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, location, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, location, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, location, log)
	getBookingHistory := getBookingHistoryHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// API prefix, все маршруты требуют токен пользователя
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, 3*time.Minute, log)
		go limiter.Run(bgCtx)
		api.Use(limiter.Middleware)
		log.Info("Rate limit enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// --- Мастер записи ---
	api.HandleFunc("/wizards", bookingWizard.Start).Methods(http.MethodPost)
	api.HandleFunc("/wizards/{wizardId}", bookingWizard.Get).Methods(http.MethodGet)
	api.HandleFunc("/wizards/{wizardId}", bookingWizard.Close).Methods(http.MethodDelete)
	api.HandleFunc("/wizards/{wizardId}/month", bookingWizard.NavigateMonth).Methods(http.MethodPut)
	api.HandleFunc("/wizards/{wizardId}/date", bookingWizard.SelectDate).Methods(http.MethodPut)
	api.HandleFunc("/wizards/{wizardId}/slot", bookingWizard.SelectSlot).Methods(http.MethodPut)
	api.HandleFunc("/wizards/{wizardId}/back", bookingWizard.Back).Methods(http.MethodPost)
	api.HandleFunc("/wizards/{wizardId}/confirm", bookingWizard.Confirm).Methods(http.MethodPost)
	api.HandleFunc("/wizards/{wizardId}/reset", bookingWizard.Reset).Methods(http.MethodPost)

	// --- Справочники ---
	api.HandleFunc("/trainers", getTrainers.Handle).Methods(http.MethodGet)
	api.HandleFunc("/trainers/{trainerId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/packages", getPackages.Handle).Methods(http.MethodGet)
	api.HandleFunc("/subscriptions", getSubscriptions.Handle).Methods(http.MethodGet)

	// --- Записи ---
	api.HandleFunc("/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/history", getBookingHistory.Handle).Methods(http.MethodGet)

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

	stopBackground()
	sessionSvc.CloseAll()

	log.Info("Server stopped gracefully")
}

// runJournalRetention раз в час удаляет записи журнала старше retention
func runJournalRetention(ctx context.Context, repo *journalRepo.Repository, retention time.Duration, log *logger.Logger) {
	if retention <= 0 {
		return
	}

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			deleted, err := repo.DeleteOlderThan(ctx, now.Add(-retention))
			if err != nil {
				log.Error("JournalRetention: cleanup failed: %v", err)
				continue
			}
			if deleted > 0 {
				log.Info("JournalRetention: deleted %d entries older than %s", deleted, retention)
			}
		}
	}
}
