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

	cancelBookingHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/create_booking"
	createGroupBookingHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/create_group_booking"
	createRecurringBookingHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/create_recurring_booking"
	getAvailableSlotsHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/get_booking"
	getCustomerBookingsHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/get_customer_bookings"
	remindersDueHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/reminders_due"
	updateStatusHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/update_status"
	"github.com/m04kA/Salon-BookingService/internal/api/middleware"
	"github.com/m04kA/Salon-BookingService/internal/config"
	"github.com/m04kA/Salon-BookingService/internal/infra/queue"
	catalogRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/catalog"
	reservationRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/reservation"
	bookingsService "github.com/m04kA/Salon-BookingService/internal/service/bookings"
	remindersService "github.com/m04kA/Salon-BookingService/internal/service/reminders"
	createBookingUC "github.com/m04kA/Salon-BookingService/internal/usecase/create_booking"
	createGroupBookingUC "github.com/m04kA/Salon-BookingService/internal/usecase/create_group_booking"
	createRecurringBookingUC "github.com/m04kA/Salon-BookingService/internal/usecase/create_recurring_booking"
	getAvailableSlotsUC "github.com/m04kA/Salon-BookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/Salon-BookingService/migrations"
	"github.com/m04kA/Salon-BookingService/pkg/dbmetrics"
	"github.com/m04kA/Salon-BookingService/pkg/logger"
	"github.com/m04kA/Salon-BookingService/pkg/metrics"
	"github.com/m04kA/Salon-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/Salon-BookingService/pkg/txmanager"
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

	log.Info("Starting Salon-BookingService...")
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

	// Применяем миграции до старта обработки запросов
	if err := migrations.Apply(context.Background(), db); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Database migrations applied")

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		catalogRepository     *catalogRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Подключаемся к RabbitMQ (если включен)
	var publisher *queue.Publisher
	if cfg.RabbitMQ.Enabled {
		publisher, err = queue.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
		log.Info("RabbitMQ publisher connected, queue=%s", cfg.RabbitMQ.Queue)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(reservationRepository, log)

	var eventPublisher remindersService.EventPublisher
	if publisher != nil {
		eventPublisher = publisher
	}
	reminderSvc := remindersService.NewService(reservationRepository, eventPublisher, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		reservationRepository,
		catalogRepository,
		txMgr,
		log,
	)

	createRecurringBookingUseCase := createRecurringBookingUC.NewUseCase(
		reservationRepository,
		catalogRepository,
		txMgr,
		log,
	)

	createGroupBookingUseCase := createGroupBookingUC.NewUseCase(
		reservationRepository,
		catalogRepository,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		catalogRepository,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	createRecurringBooking := createRecurringBookingHandler.NewHandler(createRecurringBookingUseCase, log)
	createGroupBooking := createGroupBookingHandler.NewHandler(createGroupBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateStatus := updateStatusHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	remindersDue := remindersDueHandler.NewHandler(reminderSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Доступные слоты
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/recurring", createRecurringBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/group", createGroupBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/status", updateStatus.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	api.HandleFunc("/customers/{customerId}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

	// Напоминания
	api.HandleFunc("/reminders/due", remindersDue.Handle).Methods(http.MethodGet)

	// Фоновый отправитель напоминаний
	stopReminderCh := make(chan struct{})
	if cfg.Reminders.Enabled && cfg.RabbitMQ.Enabled {
		go runReminderPoller(reminderSvc, cfg.Reminders, log, stopReminderCh)
		log.Info("Reminder poller started (interval=%ds, lookahead=%dh)",
			cfg.Reminders.PollInterval, cfg.Reminders.LookaheadHours)
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

	// Останавливаем фоновые процессы
	close(stopReminderCh)
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

// runReminderPoller периодически выбирает визиты в окне напоминаний,
// публикует события и помечает записи отправленными
func runReminderPoller(svc *remindersService.Service, cfg config.RemindersConfig, log *logger.Logger, stopCh <-chan struct{}) {
	ticker := time.NewTicker(time.Duration(cfg.PollInterval) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			sent, err := svc.Dispatch(ctx, cfg.LookaheadHours)
			cancel()

			if err != nil {
				log.Error("Reminder poller: dispatch failed: %v", err)
				continue
			}
			if sent > 0 {
				log.Info("Reminder poller: dispatched %d reminders", sent)
			}

		case <-stopCh:
			return
		}
	}
}
