package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/acdube/govtravel/internal/api/http"
	"github.com/acdube/govtravel/internal/config"
	"github.com/acdube/govtravel/internal/flights"
	"github.com/acdube/govtravel/internal/rates"
	"github.com/acdube/govtravel/internal/rates/sources"
	"github.com/acdube/govtravel/internal/scheduler"
	"github.com/acdube/govtravel/internal/trip"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Build the initial rate snapshot before serving anything.
	srcs := sources.All()
	snap, err := rates.Build(srcs)
	if err != nil {
		log.Fatalf("failed to build rate snapshot: %v", err)
	}
	store := rates.NewStore(snap)
	log.Printf("rate snapshot built, %d records", snap.Len())

	// Live flight pricing is optional; without it the local model
	// answers every flight estimate.
	var pricing flights.PricingService
	if cfg.FlightAPIBaseURL != "" {
		httpClient := &http.Client{Timeout: cfg.FlightTimeout}
		pricing = flights.NewHTTPPricingService(cfg.FlightAPIBaseURL, cfg.FlightAPIKey, httpClient)
	}
	estimator := flights.NewEstimator(pricing, cfg.FlightTimeout)

	composer := trip.NewComposer(store, estimator, sources.DefaultRecord())

	// Scheduler that periodically rebuilds the snapshot.
	sched := scheduler.New(store, srcs, cfg.RebuildInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "govtravel",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":       "ok",
			"service":      "govtravel",
			"rateRecords":  store.Current().Len(),
			"snapshotTime": store.Current().BuiltAt(),
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, store, composer)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
