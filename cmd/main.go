package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	cancelReservationHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/create_reservation"
	getAvailabilityHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/get_availability"
	getBookingPolicyHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/get_booking_policy"
	getDeviceHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/get_device"
	getDeviceScheduleHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/get_device_schedule"
	getDevicesHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/get_devices"
	getReservationHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/get_reservation"
	getUserReservationsHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/get_user_reservations"
	loginHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/login"
	registerHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/register"
	"github.com/m04kA/SMC-LaundryService/internal/api/middleware"
	"github.com/m04kA/SMC-LaundryService/internal/config"
	"github.com/m04kA/SMC-LaundryService/internal/infra/cache"
	"github.com/m04kA/SMC-LaundryService/internal/infra/catalog"
	authService "github.com/m04kA/SMC-LaundryService/internal/service/auth"
	devicesService "github.com/m04kA/SMC-LaundryService/internal/service/devices"
	reservationsService "github.com/m04kA/SMC-LaundryService/internal/service/reservations"
	createReservationUC "github.com/m04kA/SMC-LaundryService/internal/usecase/create_reservation"
	getAvailabilityUC "github.com/m04kA/SMC-LaundryService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-LaundryService/pkg/jwtauth"
	"github.com/m04kA/SMC-LaundryService/pkg/logger"
	"github.com/m04kA/SMC-LaundryService/pkg/metrics"
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

	log.Info("Starting SMC-LaundryService...")

	policy, err := cfg.BookingPolicy()
	if err != nil {
		log.Fatal("Invalid booking policy: %v", err)
	}
	log.Info("Booking policy: mode=%s, grid=%s, blackout=[%d,%d), horizon=%dd, tz=%s",
		policy.Mode, policy.SlotGrid(), policy.BlackoutStartHour, policy.BlackoutEndHour,
		policy.HorizonDays, policy.Location)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к хранилищу
	var store *storageBackend
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		store, err = openSQLite(cfg.Database, log)
	default:
		store, err = openPostgres(cfg.Database, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh, log)
	}
	if err != nil {
		log.Fatal("Failed to open storage (driver=%s): %v", cfg.Database.Driver, err)
	}
	defer store.close()

	// Заводим устройства из каталога
	devices, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		log.Fatal("Failed to load device catalog: %v", err)
	}
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = store.devices.UpsertAll(seedCtx, devices)
	seedCancel()
	if err != nil {
		log.Fatal("Failed to seed devices: %v", err)
	}
	log.Info("Device catalog seeded: %d devices from %s", len(devices), cfg.Catalog.Path)

	deviceRegistry := cache.NewDeviceCache(store.devices, time.Duration(cfg.Catalog.CacheTTLSeconds)*time.Second)

	tokens, err := jwtauth.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute, cfg.Auth.Issuer)
	if err != nil {
		log.Fatal("Failed to initialize token manager: %v", err)
	}

	// Инициализируем сервисы
	devicesSvc := devicesService.NewService(deviceRegistry, policy, log)
	reservationsSvc := reservationsService.NewService(store.reservations, deviceRegistry, policy, log)
	authSvc := authService.NewService(store.users, tokens, log)

	// Инициализируем use cases
	var outcomes createReservationUC.MetricsRecorder
	if metricsCollector != nil {
		outcomes = metricsCollector
	}
	createReservationUseCase := createReservationUC.NewUseCase(
		deviceRegistry,
		store.reservations,
		store.txMgr,
		policy,
		outcomes,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		deviceRegistry,
		store.reservations,
		policy,
		log,
	)

	// Инициализируем handlers
	getDevices := getDevicesHandler.NewHandler(devicesSvc, log)
	getDevice := getDeviceHandler.NewHandler(devicesSvc, log)
	getBookingPolicy := getBookingPolicyHandler.NewHandler(devicesSvc)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getDeviceSchedule := getDeviceScheduleHandler.NewHandler(reservationsSvc, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationsSvc, log)
	register := registerHandler.NewHandler(authSvc, log)
	login := loginHandler.NewHandler(authSvc, log)

	trustedProxies, err := middleware.ParseTrustedProxies(cfg.RateLimit.TrustedProxies)
	if err != nil {
		log.Fatal("Invalid rate_limit.trusted_proxies: %v", err)
	}

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/devices", getDevices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/devices/{deviceId}", getDevice.Handle).Methods(http.MethodGet)
	api.HandleFunc("/devices/{deviceId}/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/devices/{deviceId}/reservations", getDeviceSchedule.Handle).Methods(http.MethodGet)
	api.HandleFunc("/policy", getBookingPolicy.Handle).Methods(http.MethodGet)

	newRateLimiter := func() func(http.Handler) http.Handler {
		return middleware.RateLimit(middleware.NewClientRateLimiter(
			rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst, cfg.RateLimit.IdleTTL(), trustedProxies,
		))
	}

	authRoutes := api.PathPrefix("/auth").Subrouter()
	if cfg.RateLimit.Enabled {
		authRoutes.Use(newRateLimiter())
	}
	authRoutes.HandleFunc("/register", register.Handle).Methods(http.MethodPost)
	authRoutes.HandleFunc("/login", login.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (Bearer токен или доверенный X-User-ID)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(tokens, cfg.Auth.TrustUserHeader))

	// Ограничение частоты только для изменяющих запросов
	limit := func(h http.HandlerFunc) http.Handler { return h }
	if cfg.RateLimit.Enabled {
		limiter := newRateLimiter()
		limit = func(h http.HandlerFunc) http.Handler { return limiter(h) }
		log.Info("Rate limiting enabled: %.1f rps, burst %d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	protected.Handle("/reservations", limit(createReservation.Handle)).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.Handle("/reservations/{reservationId}", limit(cancelReservation.Handle)).Methods(http.MethodDelete)
	protected.HandleFunc("/me/reservations", getUserReservations.Handle).Methods(http.MethodGet)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	close(stopMetricsCh)

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
