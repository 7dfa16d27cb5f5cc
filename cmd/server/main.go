package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/dukerupert/brochure/internal"
	"github.com/dukerupert/brochure/internal/geocode"
	"github.com/dukerupert/brochure/internal/handler"
	"github.com/dukerupert/brochure/internal/middleware"
	"github.com/dukerupert/brochure/internal/router"
	"github.com/dukerupert/brochure/internal/routes"
	"github.com/dukerupert/brochure/internal/service"
	"github.com/dukerupert/brochure/internal/telemetry"
	"github.com/dukerupert/brochure/web"
)

const shutdownTimeout = 10 * time.Second

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	flushSentry, err := telemetry.InitSentry(telemetry.SentryConfig{
		DSN:         cfg.Sentry.DSN,
		Enabled:     cfg.Sentry.Enabled,
		Environment: cfg.Sentry.Environment,
		Release:     cfg.Sentry.Release,
		SampleRate:  cfg.Sentry.SampleRate,
		Debug:       cfg.Sentry.Debug,
	}, logger)
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}
	defer flushSentry()

	// ==========================================================================
	// Initialize geocoder and services
	// ==========================================================================

	geocoder, err := geocode.NewNominatimClient(geocode.NominatimConfig{
		Endpoint:  cfg.Geocoder.URL,
		UserAgent: cfg.Geocoder.UserAgent,
		Timeout:   cfg.Geocoder.Timeout,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize geocoder: %w", err)
	}
	logger.Info("Geocoder configured", "endpoint", cfg.Geocoder.URL, "timeout", cfg.Geocoder.Timeout)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	lookupService, err := service.NewLookupService(geocoder, telemetry.NewLookupMetrics("brochure", registry))
	if err != nil {
		return fmt.Errorf("failed to initialize lookup service: %w", err)
	}

	// ==========================================================================
	// Initialize handlers
	// ==========================================================================

	logger.Info("Loading templates...")
	renderer, err := handler.NewRenderer(web.Templates())
	if err != nil {
		return fmt.Errorf("failed to initialize renderer: %w", err)
	}
	logger.Info("Templates loaded successfully")

	requestInfoHandler := handler.NewRequestInfoHandler(lookupService, renderer)
	apiHandler := handler.NewAPIHandler(lookupService)

	// ==========================================================================
	// Initialize middleware
	// ==========================================================================

	metrics := middleware.NewMetrics("brochure", registry,
		"/", "/request-info", "/api/lookup", "/api/address/validate", "/health")

	// Configure security headers
	securityConfig := middleware.DefaultSecurityHeadersConfig()
	if cfg.Env == "dev" {
		securityConfig.HSTSMaxAge = 0 // Disable HSTS in development
	}

	// Configure rate limiting
	clientIP := middleware.ClientIPFunc(cfg.TrustedProxies)

	defaultConfig := middleware.DefaultRateLimiterConfig()
	defaultConfig.KeyFunc = clientIP
	defaultRateLimiter := middleware.NewRateLimiter(defaultConfig)

	lookupConfig := middleware.LookupRateLimiterConfig()
	lookupConfig.KeyFunc = clientIP
	lookupConfig.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
	lookupConfig.BurstSize = cfg.RateLimit.Burst
	lookupRateLimiter := middleware.NewRateLimiter(lookupConfig)

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	r := router.New(
		router.Recovery(logger),
		telemetry.SentryMiddleware(),
		middleware.RequestID,
		middleware.WithRequestLogger(logger),
		metrics.Middleware,
		middleware.SecurityHeaders(securityConfig),
		middleware.MaxBodySize(middleware.DefaultMaxBodySize),
		router.Logger(logger),
	)

	// Metrics and health are registered before the default limiter applies
	routes.RegisterOpsRoutes(r, routes.OpsDeps{MetricsHandler: metrics.Handler()})

	limited := r.Group(defaultRateLimiter.Middleware)
	routes.RegisterSiteRoutes(limited, routes.SiteDeps{
		RequestInfoHandler: requestInfoHandler,
		Static:             web.Static(),
		LookupLimit:        lookupRateLimiter.Middleware,
	})
	routes.RegisterAPIRoutes(limited, routes.APIDeps{
		APIHandler:  apiHandler,
		LookupLimit: lookupRateLimiter.Middleware,
	})

	// ==========================================================================
	// Start server
	// ==========================================================================

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		// Leaves room for a full geocoder round trip
		WriteTimeout: cfg.Geocoder.Timeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defaultRateLimiter.Run(gctx)
		return nil
	})
	g.Go(func() error {
		lookupRateLimiter.Run(gctx)
		return nil
	})

	g.Go(func() error {
		logger.Info("Starting server", "address", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
