// File: ridebook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ridebook/clients/dispatch"
	"ridebook/config"
	"ridebook/cron"
	"ridebook/database"
	recordsRepo "ridebook/database/repository/records"
	"ridebook/handlers"
	"ridebook/middleware"
	"ridebook/routes"
	"ridebook/services/booking"
	"ridebook/services/operator"
	"ridebook/services/user"
	"ridebook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.Default())
	router.Use(middleware.RateLimitMiddleware())

	// Upstream client and repositories.
	dispatchClient := dispatch.NewClient(logger)
	bookingRecords := recordsRepo.NewMongoRecordRepo()
	recentLocations := recordsRepo.NewMongoLocationRepo()

	// services.
	operatorService := &operator.Service{
		Dispatch: dispatchClient,
		Cache:    utils.GetOperatorCacheClient(),
		Logger:   logger,
	}

	sessionService := &user.DefaultSessionService{
		Dispatch: dispatchClient,
		Cache:    utils.GetSessionCacheClient(),
		Logger:   logger,
	}

	reminderClient := cron.NewReminderClient()
	bookingManager := booking.NewManager(
		utils.GetDraftCacheClient(),
		dispatchClient,
		bookingRecords,
		reminderClient,
		recentLocations,
		operatorService,
		logger,
	)

	cron.InitReminderWorker(bookingRecords)
	utils.StartHealthMonitor([]*redis.Client{
		utils.GetDraftCacheClient(),
		utils.GetSessionCacheClient(),
		utils.GetOperatorCacheClient(),
	}, database.MongoClient, dispatchClient.Ping)

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Booking:  handlers.NewBookingHandler(bookingManager, logger),
		Payment:  handlers.NewPaymentHandler(bookingManager, logger),
		Auth:     handlers.NewAuthHandler(sessionService, bookingManager, logger),
		Operator: handlers.NewOperatorHandler(operatorService, logger),
		Records:  handlers.NewRecordsHandler(bookingRecords, recentLocations, logger),
		Sessions: sessionService,
	}

	routes.RegisterRoutes(router, handlerBundle)

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
