package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"velora/config"
	"velora/cron"
	"velora/database"
	appointmentRepoPkg "velora/database/repository/appointment"
	catalogRepoPkg "velora/database/repository/catalog"
	clientRepoPkg "velora/database/repository/client"
	voucherRepoPkg "velora/database/repository/voucher"
	"velora/handlers"
	"velora/middleware"
	"velora/routes"
	"velora/services/booking"
	"velora/services/client"
	"velora/services/tasks"
	"velora/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	windows, err := booking.ParseWorkingHours(config.AppConfig.WorkingHours)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid WORKING_HOURS: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	catalogRepo := catalogRepoPkg.NewMongoCatalogRepo()
	appointmentRepo := appointmentRepoPkg.NewMongoAppointmentRepo()
	clientRepo := clientRepoPkg.NewMongoClientRepo()
	voucherRepo := voucherRepoPkg.NewMongoVoucherRepo()

	// services.
	var remote *booking.SlotFunctionClient
	if config.AppConfig.SlotFunctionURL != "" {
		remote = booking.NewSlotFunctionClient(
			config.AppConfig.SlotFunctionURL,
			config.AppConfig.SlotFunctionKey,
			utils.GetCacheClient(),
		)
	}

	slotEngine := &booking.SlotEngine{
		Catalog:      catalogRepo,
		Appointments: appointmentRepo,
		Windows:      windows,
		Remote:       remote,
	}

	bookingService := &booking.DefaultBookingSessionService{
		Catalog:      catalogRepo,
		Appointments: appointmentRepo,
		Engine:       slotEngine,
		Cache:        utils.GetSessionCacheClient(),
		Reminders:    tasks.NewAsynqScheduler(),
	}

	clientService := &client.DefaultClientService{
		Repo:        clientRepo,
		ApptRepo:    appointmentRepo,
		VoucherRepo: voucherRepo,
	}

	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	clientHandler := handlers.NewClientHandler(clientService, logger)

	routes.RegisterRoutes(router, bookingHandler, clientHandler)

	// Background workers.
	cron.InitReminderWorker(appointmentRepo)
	sweep := cron.InitCompletionSweep(appointmentRepo)
	defer sweep.Stop()

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
