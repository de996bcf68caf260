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

	buildCampaignURLHandler "github.com/nishigaki-sys/school-booking-v2/internal/api/handlers/build_campaign_url"
	copySlotHandler "github.com/nishigaki-sys/school-booking-v2/internal/api/handlers/copy_slot"
	createReservationHandler "github.com/nishigaki-sys/school-booking-v2/internal/api/handlers/create_reservation"
	deleteReservationHandler "github.com/nishigaki-sys/school-booking-v2/internal/api/handlers/delete_reservation"
	getAnalyticsHandler "github.com/nishigaki-sys/school-booking-v2/internal/api/handlers/get_analytics"
	getCalendarHandler "github.com/nishigaki-sys/school-booking-v2/internal/api/handlers/get_calendar"
	getGlobalAnalyticsHandler "github.com/nishigaki-sys/school-booking-v2/internal/api/handlers/get_global_analytics"
	getPublicPageHandler "github.com/nishigaki-sys/school-booking-v2/internal/api/handlers/get_public_page"
	getReservationHandler "github.com/nishigaki-sys/school-booking-v2/internal/api/handlers/get_reservation"
	listReservationsHandler "github.com/nishigaki-sys/school-booking-v2/internal/api/handlers/list_reservations"
	manageAllowlistHandler "github.com/nishigaki-sys/school-booking-v2/internal/api/handlers/manage_allowlist"
	manageContentsHandler "github.com/nishigaki-sys/school-booking-v2/internal/api/handlers/manage_contents"
	manageVenuesHandler "github.com/nishigaki-sys/school-booking-v2/internal/api/handlers/manage_venues"
	recordAccessEventHandler "github.com/nishigaki-sys/school-booking-v2/internal/api/handlers/record_access_event"
	removeSlotHandler "github.com/nishigaki-sys/school-booking-v2/internal/api/handlers/remove_slot"
	updateReservationHandler "github.com/nishigaki-sys/school-booking-v2/internal/api/handlers/update_reservation"
	upsertSlotHandler "github.com/nishigaki-sys/school-booking-v2/internal/api/handlers/upsert_slot"
	watchChangesHandler "github.com/nishigaki-sys/school-booking-v2/internal/api/handlers/watch_changes"
	"github.com/nishigaki-sys/school-booking-v2/internal/api/middleware"
	"github.com/nishigaki-sys/school-booking-v2/internal/config"
	accessEventRepo "github.com/nishigaki-sys/school-booking-v2/internal/infra/storage/accessevent"
	reservationRepo "github.com/nishigaki-sys/school-booking-v2/internal/infra/storage/reservation"
	scheduleRepo "github.com/nishigaki-sys/school-booking-v2/internal/infra/storage/schedule"
	sysconfigRepo "github.com/nishigaki-sys/school-booking-v2/internal/infra/storage/sysconfig"
	venueRepo "github.com/nishigaki-sys/school-booking-v2/internal/infra/storage/venue"
	accessControlService "github.com/nishigaki-sys/school-booking-v2/internal/service/accesscontrol"
	catalogService "github.com/nishigaki-sys/school-booking-v2/internal/service/catalog"
	eventsService "github.com/nishigaki-sys/school-booking-v2/internal/service/events"
	reservationsService "github.com/nishigaki-sys/school-booking-v2/internal/service/reservations"
	venuesService "github.com/nishigaki-sys/school-booking-v2/internal/service/venues"
	buildCampaignURLUC "github.com/nishigaki-sys/school-booking-v2/internal/usecase/build_campaign_url"
	copySlotUC "github.com/nishigaki-sys/school-booking-v2/internal/usecase/copy_slot"
	getAnalyticsUC "github.com/nishigaki-sys/school-booking-v2/internal/usecase/get_analytics"
	getCalendarUC "github.com/nishigaki-sys/school-booking-v2/internal/usecase/get_calendar"
	getGlobalAnalyticsUC "github.com/nishigaki-sys/school-booking-v2/internal/usecase/get_global_analytics"
	removeSlotUC "github.com/nishigaki-sys/school-booking-v2/internal/usecase/remove_slot"
	upsertSlotUC "github.com/nishigaki-sys/school-booking-v2/internal/usecase/upsert_slot"
	"github.com/nishigaki-sys/school-booking-v2/internal/watch"
	"github.com/nishigaki-sys/school-booking-v2/pkg/dbmetrics"
	"github.com/nishigaki-sys/school-booking-v2/pkg/logger"
	"github.com/nishigaki-sys/school-booking-v2/pkg/metrics"
	"github.com/nishigaki-sys/school-booking-v2/pkg/simpletxmanager"
	"github.com/nishigaki-sys/school-booking-v2/pkg/txmanager"
)

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

	log.Info("Starting school-booking-v2...")
	log.Info("Configuration loaded from config.toml")

	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Repositories with or without metrics instrumentation.
	var (
		venues       *venueRepo.Repository
		schedules    *scheduleRepo.Repository
		reservations *reservationRepo.Repository
		accessEvents *accessEventRepo.Repository
		sysConfig    *sysconfigRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		venues = venueRepo.NewRepository(wrappedDB)
		schedules = scheduleRepo.NewRepository(wrappedDB)
		reservations = reservationRepo.NewRepository(wrappedDB)
		accessEvents = accessEventRepo.NewRepository(wrappedDB)
		sysConfig = sysconfigRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		venues = venueRepo.NewRepository(db)
		schedules = scheduleRepo.NewRepository(db)
		reservations = reservationRepo.NewRepository(db)
		accessEvents = accessEventRepo.NewRepository(db)
		sysConfig = sysconfigRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Change-notification listener. Subscribers come and go over the
	// process lifetime; the watcher itself lives until shutdown.
	var watcher *watch.Watcher
	if cfg.Watch.Enabled {
		watcher, err = watch.New(cfg.Database.DSN(), watch.Options{
			MinReconnect: time.Duration(cfg.Watch.MinReconnect) * time.Second,
			MaxReconnect: time.Duration(cfg.Watch.MaxReconnect) * time.Second,
			PingInterval: time.Duration(cfg.Watch.PingInterval) * time.Second,
		}, log)
		if err != nil {
			log.Fatal("Failed to start change watcher: %v", err)
		}
		defer watcher.Close()
		log.Info("Change watcher listening on schedule, reservation and access event channels")
	}

	// Services.
	reservationSvc := reservationsService.NewService(reservations, schedules, txMgr, log)
	venueSvc := venuesService.NewService(venues, schedules, reservations, accessEvents, txMgr, log)
	catalogSvc := catalogService.NewService(schedules, sysConfig, txMgr, log)
	eventSvc := eventsService.NewService(accessEvents, schedules, log)
	accessControlSvc := accessControlService.NewService(sysConfig, log)

	// Use cases.
	upsertSlotUseCase := upsertSlotUC.NewUseCase(schedules, txMgr, log)
	removeSlotUseCase := removeSlotUC.NewUseCase(schedules, reservations, txMgr, log)
	copySlotUseCase := copySlotUC.NewUseCase(schedules, txMgr, log)
	getCalendarUseCase := getCalendarUC.NewUseCase(schedules, reservations, log)
	getAnalyticsUseCase := getAnalyticsUC.NewUseCase(schedules, reservations, accessEvents, log)
	getGlobalAnalyticsUseCase := getGlobalAnalyticsUC.NewUseCase(venues, schedules, reservations, accessEvents, log)
	buildCampaignURLUseCase := buildCampaignURLUC.NewUseCase(schedules, log)

	// Handlers.
	upsertSlot := upsertSlotHandler.NewHandler(upsertSlotUseCase, log)
	removeSlot := removeSlotHandler.NewHandler(removeSlotUseCase, log)
	copySlot := copySlotHandler.NewHandler(copySlotUseCase, log)
	getCalendar := getCalendarHandler.NewHandler(getCalendarUseCase, log)
	getPublicPage := getPublicPageHandler.NewHandler(venueSvc, log)
	recordAccessEvent := recordAccessEventHandler.NewHandler(eventSvc, log)
	createWebReservation := createReservationHandler.NewPublicHandler(reservationSvc, log)
	createAdminReservation := createReservationHandler.NewAdminHandler(reservationSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	updateReservation := updateReservationHandler.NewHandler(reservationSvc, log)
	deleteReservation := deleteReservationHandler.NewHandler(reservationSvc, log)
	listReservations := listReservationsHandler.NewHandler(reservationSvc, log)
	getAnalytics := getAnalyticsHandler.NewHandler(getAnalyticsUseCase, log)
	getGlobalAnalytics := getGlobalAnalyticsHandler.NewHandler(getGlobalAnalyticsUseCase, log)
	manageVenues := manageVenuesHandler.NewHandler(venueSvc, log)
	manageContents := manageContentsHandler.NewHandler(catalogSvc, log)
	manageAllowlist := manageAllowlistHandler.NewHandler(accessControlSvc, log)
	buildCampaignURL := buildCampaignURLHandler.NewHandler(buildCampaignURLUseCase, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (booking page surface)
	// ============================================================

	api.HandleFunc("/venues/{venueId}/page", getPublicPage.Handle).Methods(http.MethodGet)
	api.HandleFunc("/venues/{venueId}/calendar", getCalendar.Handle).Methods(http.MethodGet)
	api.HandleFunc("/venues/{venueId}/events", recordAccessEvent.Handle).Methods(http.MethodPost)
	api.HandleFunc("/venues/{venueId}/reservations", createWebReservation.Handle).Methods(http.MethodPost)

	// Live change stream for the booking page and admin views.
	if watcher != nil {
		watchChanges := watchChangesHandler.NewHandler(watcher, log)
		api.HandleFunc("/venues/{venueId}/changes", watchChanges.Handle).Methods(http.MethodGet)
		log.Info("Change stream endpoint enabled at /api/v1/venues/{venueId}/changes")
	}

	// ============================================================
	// PROTECTED ROUTES (IP gate + X-Admin-Role header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.IPAllowlist(accessControlSvc))
	protected.Use(middleware.Auth)

	// Venue-scoped admin routes: school admins stay inside their venue.
	venueScoped := protected.PathPrefix("/venues/{venueId}").Subrouter()
	venueScoped.Use(middleware.VenueScope)

	// Schedule writes
	venueScoped.HandleFunc("/schedule/{date}/slots", upsertSlot.Handle).Methods(http.MethodPut)
	venueScoped.HandleFunc("/schedule/{date}/slots/{slotId}", removeSlot.Handle).Methods(http.MethodDelete)
	venueScoped.HandleFunc("/schedule/slots/{slotId}/copy", copySlot.Handle).Methods(http.MethodPost)

	// Per-venue analytics and tools
	venueScoped.HandleFunc("/analytics", getAnalytics.Handle).Methods(http.MethodGet)
	venueScoped.HandleFunc("/campaign-url", buildCampaignURL.Handle).Methods(http.MethodPost)
	venueScoped.HandleFunc("/page-settings", manageVenues.HandlePageSettings).Methods(http.MethodPatch)

	// Venue content catalog
	venueScoped.HandleFunc("/contents", manageContents.HandleListVenue).Methods(http.MethodGet)
	venueScoped.HandleFunc("/contents", manageContents.HandleAddVenue).Methods(http.MethodPost)
	venueScoped.HandleFunc("/contents/import", manageContents.HandleImport).Methods(http.MethodPost)
	venueScoped.HandleFunc("/contents/{contentId}", manageContents.HandleUpdateVenue).Methods(http.MethodPut)
	venueScoped.HandleFunc("/contents/{contentId}", manageContents.HandleDeleteVenue).Methods(http.MethodDelete)

	// Reservation administration
	protected.HandleFunc("/reservations", createAdminReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", updateReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}", deleteReservation.Handle).Methods(http.MethodDelete)

	// Global-admin routes
	global := protected.PathPrefix("").Subrouter()
	global.Use(middleware.RequireGlobal)

	global.HandleFunc("/analytics/global", getGlobalAnalytics.Handle).Methods(http.MethodGet)

	global.HandleFunc("/venues", manageVenues.HandleList).Methods(http.MethodGet)
	global.HandleFunc("/venues", manageVenues.HandleCreate).Methods(http.MethodPost)
	global.HandleFunc("/venues/{venueId}", manageVenues.HandleGet).Methods(http.MethodGet)
	global.HandleFunc("/venues/{venueId}", manageVenues.HandleUpdate).Methods(http.MethodPut)
	global.HandleFunc("/venues/{venueId}", manageVenues.HandleDelete).Methods(http.MethodDelete)

	global.HandleFunc("/shared-contents", manageContents.HandleListShared).Methods(http.MethodGet)
	global.HandleFunc("/shared-contents", manageContents.HandleSaveShared).Methods(http.MethodPost)
	global.HandleFunc("/shared-contents/{contentId}", manageContents.HandleDeleteShared).Methods(http.MethodDelete)

	global.HandleFunc("/settings/ip-allowlist", manageAllowlist.HandleGet).Methods(http.MethodGet)
	global.HandleFunc("/settings/ip-allowlist", manageAllowlist.HandleUpdate).Methods(http.MethodPut)

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
