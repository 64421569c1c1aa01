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

	cancelBookingHandler "github.com/m04kA/SMC-CourtService/internal/api/handlers/cancel_booking"
	completeBookingHandler "github.com/m04kA/SMC-CourtService/internal/api/handlers/complete_booking"
	createBookingHandler "github.com/m04kA/SMC-CourtService/internal/api/handlers/create_booking"
	createCourtHandler "github.com/m04kA/SMC-CourtService/internal/api/handlers/create_court"
	createFacilityHandler "github.com/m04kA/SMC-CourtService/internal/api/handlers/create_facility"
	decideBookingHandler "github.com/m04kA/SMC-CourtService/internal/api/handlers/decide_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-CourtService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-CourtService/internal/api/handlers/get_booking"
	getFacilityBookingsHandler "github.com/m04kA/SMC-CourtService/internal/api/handlers/get_facility_bookings"
	getFacilityCourtsHandler "github.com/m04kA/SMC-CourtService/internal/api/handlers/get_facility_courts"
	getFacilityReportHandler "github.com/m04kA/SMC-CourtService/internal/api/handlers/get_facility_report"
	getUserBookingsHandler "github.com/m04kA/SMC-CourtService/internal/api/handlers/get_user_bookings"
	registerUserHandler "github.com/m04kA/SMC-CourtService/internal/api/handlers/register_user"
	setFacilityApprovalHandler "github.com/m04kA/SMC-CourtService/internal/api/handlers/set_facility_approval"
	setUserActiveHandler "github.com/m04kA/SMC-CourtService/internal/api/handlers/set_user_active"
	setUserVerifiedHandler "github.com/m04kA/SMC-CourtService/internal/api/handlers/set_user_verified"
	"github.com/m04kA/SMC-CourtService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtService/internal/config"
	"github.com/m04kA/SMC-CourtService/internal/infra/notify"
	bookingRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/catalog"
	userRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/user"
	"github.com/m04kA/SMC-CourtService/internal/scheduler"
	bookingsService "github.com/m04kA/SMC-CourtService/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-CourtService/internal/service/catalog"
	moderationService "github.com/m04kA/SMC-CourtService/internal/service/moderation"
	createBookingUC "github.com/m04kA/SMC-CourtService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-CourtService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-CourtService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtService/pkg/logger"
	"github.com/m04kA/SMC-CourtService/pkg/metrics"
	"github.com/m04kA/SMC-CourtService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-CourtService/pkg/txmanager"
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

	log.Info("Starting SMC-CourtService...")
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

	// Инициализируем publisher событий (или заглушку)
	var publisher interface {
		Publish(event notify.BookingEvent)
	}
	if cfg.Notify.Enabled {
		amqpPublisher, err := notify.NewPublisher(
			cfg.Notify.URL,
			cfg.Notify.Exchange,
			time.Duration(cfg.Notify.Timeout)*time.Second,
			log,
		)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
		log.Info("Event publisher connected (exchange=%s)", cfg.Notify.Exchange)
	} else {
		publisher = notify.NoopPublisher{}
		log.Info("Event publishing disabled")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		catalogRepository *catalogRepo.Repository
		userRepository    *userRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		userRepository = userRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	moderationSvc := moderationService.NewService(userRepository, catalogRepository, log)
	catalogSvc := catalogService.NewService(catalogRepository, userRepository, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		catalogRepository,
		publisher,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		catalogRepository,
		bookingRepository,
		moderationSvc,
		txMgr,
		publisher,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		catalogRepository,
		bookingRepository,
		moderationSvc,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	decideBooking := decideBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	completeBooking := completeBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getFacilityBookings := getFacilityBookingsHandler.NewHandler(bookingSvc, log)
	getFacilityReport := getFacilityReportHandler.NewHandler(bookingSvc, log)
	registerUser := registerUserHandler.NewHandler(moderationSvc, log)
	createFacility := createFacilityHandler.NewHandler(catalogSvc, log)
	createCourt := createCourtHandler.NewHandler(catalogSvc, log)
	getFacilityCourts := getFacilityCourtsHandler.NewHandler(catalogSvc, log)
	setUserActive := setUserActiveHandler.NewHandler(moderationSvc, log)
	setUserVerified := setUserVerifiedHandler.NewHandler(moderationSvc, log)
	setFacilityApproval := setFacilityApprovalHandler.NewHandler(moderationSvc, log)

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

	// Расписание слотов корта на день
	api.HandleFunc("/courts/{courtId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Корты одобренной площадки
	api.HandleFunc("/facilities/{facilityId}/courts",
		getFacilityCourts.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/decide", decideBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/complete", completeBooking.Handle).Methods(http.MethodPatch)

	// --- История и отчёты ---
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/facilities/{facilityId}/bookings", getFacilityBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/facilities/{facilityId}/report", getFacilityReport.Handle).Methods(http.MethodGet)

	// --- Регистрация и каталог ---
	protected.HandleFunc("/users", registerUser.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/facilities", createFacility.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/facilities/{facilityId}/courts", createCourt.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (роль platform_admin проверяется в сервисе)
	// ============================================================

	admin := protected.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/users/{userId}/active", setUserActive.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/users/{userId}/verify", setUserVerified.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/facilities/{facilityId}/approval", setFacilityApproval.Handle).Methods(http.MethodPatch)

	// Запускаем фоновое завершение бронирований
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()

	if cfg.Scheduler.Enabled {
		sweeper := scheduler.New(
			bookingSvc,
			time.Duration(cfg.Scheduler.IntervalSeconds)*time.Second,
			log,
		)
		go sweeper.Run(schedulerCtx)
	} else {
		log.Info("Background completion disabled")
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

	// Останавливаем планировщик и сбор метрик connection pool
	stopScheduler()
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
