// File: mindlink/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mindlink/config"
	"mindlink/cron"
	"mindlink/database"
	bookingRepo "mindlink/database/repository/booking"
	deviceRepo "mindlink/database/repository/device"
	"mindlink/handlers"
	"mindlink/middleware"
	"mindlink/routes"
	"mindlink/services/booking"
	"mindlink/services/call"
	"mindlink/services/notification"
	"mindlink/services/payment"
	"mindlink/services/tasks"
	"mindlink/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCallRoomCache()
	utils.FirebaseInit()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.Default())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookings := bookingRepo.NewMongoBookingRepo()
	if mongoRepo, ok := bookings.(*bookingRepo.MongoBookingRepo); ok {
		if err := mongoRepo.EnsureIndexes(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
		}
	}
	devices := deviceRepo.NewMongoDeviceRepo()

	// collaborators.
	callService := call.NewDefaultCallService()
	notificationService, err := notification.NewDefaultNotificationService(devices)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}
	refundIssuer := payment.NewStripeRefundIssuer()
	reminderScheduler := tasks.NewAsynqReminderScheduler()

	// lifecycle service.
	lifecycleService := &booking.DefaultLifecycleService{
		Repo:      bookings,
		Call:      callService,
		Notify:    notificationService,
		Refunds:   refundIssuer,
		Reminders: reminderScheduler,
	}

	bookingHandler := handlers.NewBookingHandler(lifecycleService, callService, devices)
	routes.RegisterBookingRoutes(router, bookingHandler)

	// Reminder worker delivers queued session reminders.
	cron.InitReminderWorker(notificationService)

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
