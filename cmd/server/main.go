package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/stockmesh/backend/docs"
	"github.com/stockmesh/backend/internal/infrastructure/config"
	"github.com/stockmesh/backend/internal/infrastructure/logger"
	"github.com/stockmesh/backend/internal/infrastructure/telemetry"
	"github.com/stockmesh/backend/internal/interfaces/http/middleware"
	"github.com/stockmesh/backend/internal/interfaces/http/router"
)

//go:generate swag init -g main.go -d ./,../../internal/interfaces/http/handler,../../internal/interfaces/http/dto --parseInternal --overridesFile ../../.swaggo -o ../../docs

//	@title			StockMesh API
//	@version		1.0
//	@description	Multi-channel inventory sync and marketplace analytics API.
//	@description	Stock levels are pushed to every connected sales channel and
//	@description	competitor market data is collected for pricing analysis.

//	@contact.name	StockMesh Maintainers
//	@contact.url	https://github.com/stockmesh/backend

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@externalDocs.description	OpenAPI
//	@externalDocs.url			https://swagger.io/resources/open-api/

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Telemetry comes first so the logger can bridge into the OTEL log pipeline
	providers, err := telemetry.Setup(ctx, telemetryConfig(cfg), nil)
	if err != nil {
		return fmt.Errorf("initialize telemetry: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}, providers.Logs.ZapCore(telemetry.TracerName, logger.ParseLevel(cfg.Log.Level)))
	if err != nil {
		_ = providers.Shutdown(ctx)
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting stockmesh backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.Int("channels", len(cfg.Channels)),
		zap.Bool("traces", cfg.Telemetry.TracesEnabled),
		zap.Bool("metrics", cfg.Telemetry.MetricsEnabled),
	)

	app, err := buildApp(ctx, cfg, providers, log)
	if err != nil {
		_ = providers.Shutdown(context.Background())
		return fmt.Errorf("initialize application: %w", err)
	}
	defer app.Close()

	if cfg.Analytics.SchedulerEnabled {
		app.runner.Start(ctx)
	}

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := middleware.SetupValidator(); err != nil {
		return fmt.Errorf("register validators: %w", err)
	}

	engine, err := router.NewEngine(router.EngineConfig{
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.TracesEnabled,
		},
		CORS: middleware.CORSConfig{
			AllowOrigins:  cfg.HTTP.CORSAllowOrigins,
			AllowMethods:  cfg.HTTP.CORSAllowMethods,
			AllowHeaders:  cfg.HTTP.CORSAllowHeaders,
			ExposeHeaders: []string{middleware.RequestIDHeader},
			MaxAge:        middleware.DefaultCORSConfig().MaxAge,
		},
		MaxBodySize:    cfg.HTTP.MaxBodySize,
		TrustedProxies: cfg.HTTP.TrustedProxies,
		Meter:          app.meter,
		Logger:         log,
	})
	if err != nil {
		return fmt.Errorf("build http engine: %w", err)
	}
	router.RegisterAPI(engine, app.handlers())
	router.RegisterDocs(engine, middleware.SwaggerConfig{
		Enabled:    cfg.Swagger.Enabled,
		AllowedIPs: cfg.Swagger.AllowedIPs,
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("Shutting down server...")
	case runErr = <-serveErr:
		log.Error("Server failed", zap.Error(runErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := app.runner.Stop(shutdownCtx); err != nil {
		log.Warn("Scheduler did not stop cleanly", zap.Error(err))
	}
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Warn("Telemetry shutdown failed", zap.Error(err))
	}

	log.Info("Server exited")
	return runErr
}

func telemetryConfig(cfg *config.Config) telemetry.Config {
	return telemetry.Config{
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    cfg.App.Version,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		Insecure:          cfg.Telemetry.Insecure,
		TracesEnabled:     cfg.Telemetry.TracesEnabled,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		MetricsEnabled:    cfg.Telemetry.MetricsEnabled,
		MetricsInterval:   cfg.Telemetry.MetricsInterval,
		LogsEnabled:       cfg.Telemetry.LogsEnabled,
	}
}
