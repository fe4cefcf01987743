package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/movieticket/booking-platform/orchestrator-service/config"
	"github.com/movieticket/booking-platform/orchestrator-service/handlers"
	"github.com/movieticket/booking-platform/shared/logging"
	"github.com/movieticket/booking-platform/shared/telemetry"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load configuration
	cfg, err := config.ReadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	logging.Init(cfg.LogLevel)
	logrus.WithFields(logrus.Fields{
		"service": cfg.ServiceName,
		"env":     cfg.Env,
		"port":    cfg.Port,
	}).Info("starting")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize dependencies
	deps, err := config.BuildDependencies(ctx, cfg)
	if err != nil {
		logrus.Fatalf("Failed to build dependencies: %v", err)
	}
	defer func() {
		if err := deps.Close(); err != nil {
			logrus.WithError(err).Error("error closing dependencies")
		}
	}()

	// Setup and start HTTP server
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           setupRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	// Start event subscriber
	if deps.EventSubscriber != nil {
		g.Go(func() error {
			return deps.EventSubscriber.Subscribe(gctx, deps.BookingEventHandlers)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logrus.Infof("shutting down %s", cfg.ServiceName)

		// Graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logrus.WithError(err).Error("server stopped with error")
		return
	}

	logrus.Infof("%s stopped", cfg.ServiceName)
}

func setupRouter(deps *config.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Telemetry middleware (inject telemetry into context)
	if deps.Telemetry != nil {
		r.Use(telemetry.Middleware(deps.Telemetry))
	}

	r.Get("/health", handlers.Health)

	// Metrics endpoint for Prometheus
	r.Handle("/metrics", handlers.NewMetricsHandler())

	deps.BookingHandlers.RegisterRoutes(r)

	return r
}
