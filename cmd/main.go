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
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/cancel_booking"
	createBlockedPeriodHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/create_blocked_period"
	createBookingHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/create_booking"
	createServiceHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/create_service"
	deleteBlockedPeriodHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/delete_blocked_period"
	deleteServiceHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/delete_service"
	exportBookingsHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/export_bookings"
	getAvailabilityHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/get_available_slots"
	getBlockedPeriodsHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/get_blocked_periods"
	getBookingHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/get_booking"
	getBookingsHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/get_bookings"
	getCustomerBookingsHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/get_customer_bookings"
	getNextSlotsHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/get_next_slots"
	getServiceHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/get_service"
	getServicesHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/get_services"
	updateAvailabilityHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/update_availability"
	updateBookingStatusHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/update_booking_status"
	updateServiceHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/update_service"
	"github.com/m04kA/SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SalonBookingService/internal/config"
	availabilityRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/availability"
	blockedRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/blocked"
	bookingRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/booking"
	serviceRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/service"
	"github.com/m04kA/SalonBookingService/internal/integrations/bookingevents"
	availabilityService "github.com/m04kA/SalonBookingService/internal/service/availability"
	blockedService "github.com/m04kA/SalonBookingService/internal/service/blocked"
	bookingsService "github.com/m04kA/SalonBookingService/internal/service/bookings"
	catalogService "github.com/m04kA/SalonBookingService/internal/service/catalog"
	createBookingUC "github.com/m04kA/SalonBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SalonBookingService/internal/usecase/get_available_slots"
	getNextSlotsUC "github.com/m04kA/SalonBookingService/internal/usecase/get_next_slots"
	"github.com/m04kA/SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SalonBookingService/pkg/logger"
	"github.com/m04kA/SalonBookingService/pkg/metrics"
	"github.com/m04kA/SalonBookingService/pkg/simpletxmanager"
	"github.com/m04kA/SalonBookingService/pkg/txmanager"
)

const createBookingRoute = "create_booking"

// txManager is what the use cases need from either transaction manager.
type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// eventPublisher is satisfied by bookingevents.Publisher and bookingevents.Noop.
type eventPublisher interface {
	createBookingUC.EventPublisher
	bookingsService.EventPublisher
}

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SalonBookingService for salon %q (%s)...", cfg.Salon.Name, cfg.Salon.ID)

	location, err := time.LoadLocation(cfg.Salon.Timezone)
	if err != nil {
		log.Fatal("Unknown salon timezone %q: %v", cfg.Salon.Timezone, err)
	}
	salonID := cfg.Salon.SalonID()

	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var (
		bookingRepository      *bookingRepo.Repository
		serviceRepository      *serviceRepo.Repository
		availabilityRepository *availabilityRepo.Repository
		blockedRepository      *blockedRepo.Repository
		txMgr                  txManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		blockedRepository = blockedRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		blockedRepository = blockedRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Booking events
	var events eventPublisher = bookingevents.Noop{}
	var publisher *bookingevents.Publisher
	if cfg.Kafka.Enabled {
		timeout := time.Duration(cfg.Kafka.WriteTimeoutMs) * time.Millisecond
		writer := bookingevents.NewWriter(cfg.Kafka.BrokerList(), cfg.Kafka.Topic, timeout)
		publisher = bookingevents.NewPublisher(writer, cfg.Kafka.Topic, bookingevents.Salon{
			Name:    cfg.Salon.Name,
			Address: cfg.Salon.Address,
			Phone:   cfg.Salon.Phone,
			Email:   cfg.Salon.Email,
		}, timeout, metricsCollector, log)
		events = publisher
		log.Info("Booking events go to Kafka topic %s (brokers=%s)", cfg.Kafka.Topic, cfg.Kafka.Brokers)
	} else {
		log.Info("Kafka disabled, booking events are dropped")
	}

	// Rate limiter for POST /bookings
	var redisClient *redis.Client
	var limiter middleware.RateLimiter
	trustedProxies, err := middleware.ParseTrustedProxies(cfg.RateLimit.TrustedProxyList())
	if err != nil {
		log.Fatal("Invalid rate_limit.trusted_proxies: %v", err)
	}
	if cfg.RateLimit.Enabled {
		window := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
		if cfg.Redis.Enabled {
			redisClient = redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			if err := redisClient.Ping(pingCtx).Err(); err != nil {
				log.Warn("Redis at %s is not reachable yet: %v", cfg.Redis.Addr, err)
			}
			cancel()
			limiter = middleware.NewRedisRateLimiter(redisClient, cfg.RateLimit.Requests, window, cfg.RateLimit.Prefix)
			log.Info("Rate limiting via Redis at %s: %d requests per %s", cfg.Redis.Addr, cfg.RateLimit.Requests, window)
		} else {
			limiter = middleware.NewLocalRateLimiter(cfg.RateLimit.Requests, window)
			log.Info("Rate limiting in process: %d requests per %s", cfg.RateLimit.Requests, window)
		}
	}

	// Services
	bookingSvc := bookingsService.NewService(salonID, location, bookingRepository, events, metricsCollector, log)
	catalogSvc := catalogService.NewService(salonID, serviceRepository, log)
	availabilitySvc := availabilityService.NewService(salonID, availabilityRepository, txMgr, log)
	blockedSvc := blockedService.NewService(salonID, blockedRepository, log)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		salonID,
		location,
		bookingRepository,
		serviceRepository,
		availabilityRepository,
		blockedRepository,
		txMgr,
		events,
		metricsCollector,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		salonID,
		location,
		bookingRepository,
		serviceRepository,
		availabilityRepository,
		blockedRepository,
		txMgr,
		metricsCollector,
		log,
	)

	getNextSlotsUseCase := getNextSlotsUC.NewUseCase(
		salonID,
		location,
		getNextSlotsUC.Limits{
			Default: cfg.Booking.NextSlotsDefaultLimit,
			Max:     cfg.Booking.NextSlotsMaxLimit,
		},
		bookingRepository,
		serviceRepository,
		availabilityRepository,
		blockedRepository,
		txMgr,
		metricsCollector,
		log,
	)

	// Handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getNextSlots := getNextSlotsHandler.NewHandler(getNextSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	getBookings := getBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	exportBookings := exportBookingsHandler.NewHandler(bookingSvc, log)
	getServices := getServicesHandler.NewHandler(catalogSvc, false, log)
	getAllServices := getServicesHandler.NewHandler(catalogSvc, true, log)
	getService := getServiceHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(availabilitySvc, log)
	getBlockedPeriods := getBlockedPeriodsHandler.NewHandler(blockedSvc, log)
	createBlockedPeriod := createBlockedPeriodHandler.NewHandler(blockedSvc, log)
	deleteBlockedPeriod := deleteBlockedPeriodHandler.NewHandler(blockedSvc, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Customer)

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/services", getServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}", getService.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/next", getNextSlots.Handle).Methods(http.MethodGet)

	// --- Bookings (customer identified by X-Customer-ID, or by cancel token) ---
	var createBookingFn http.Handler = http.HandlerFunc(createBooking.Handle)
	if limiter != nil {
		createBookingFn = middleware.RateLimit(limiter, createBookingRoute, cfg.RateLimit.FailOpen, trustedProxies, metricsCollector, log)(createBookingFn)
	}
	api.Handle("/bookings", createBookingFn).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{idOrToken}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{idOrToken}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	customer := api.PathPrefix("/customer").Subrouter()
	customer.Use(middleware.RequireCustomer)
	customer.HandleFunc("/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (HTTP Basic)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Admin.Username, cfg.Admin.PasswordHash, log))

	admin.HandleFunc("/bookings", getBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/export", exportBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	admin.HandleFunc("/services", getAllServices.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/services/{serviceId}", updateService.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/services/{serviceId}", deleteService.Handle).Methods(http.MethodDelete)

	admin.HandleFunc("/availability", updateAvailability.Handle).Methods(http.MethodPut)

	admin.HandleFunc("/blocked-periods", getBlockedPeriods.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/blocked-periods", createBlockedPeriod.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/blocked-periods/{id}", deleteBlockedPeriod.Handle).Methods(http.MethodDelete)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

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

	if publisher != nil {
		if err := publisher.Close(); err != nil {
			log.Error("Failed to close Kafka writer: %v", err)
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
