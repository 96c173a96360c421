package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/samirrijal/geowatch/internal/adapters/collector"
	"github.com/samirrijal/geowatch/internal/adapters/http"
	natsadapter "github.com/samirrijal/geowatch/internal/adapters/nats"
	"github.com/samirrijal/geowatch/internal/adapters/valkey"
	"github.com/samirrijal/geowatch/internal/core/ports"
	"github.com/samirrijal/geowatch/internal/core/usecases"
	"github.com/samirrijal/geowatch/internal/pkg/config"
	"github.com/samirrijal/geowatch/internal/pkg/logging"
	"github.com/samirrijal/geowatch/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("geowatch-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup(logLevel, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown(ctx)
		}
	}

	// Collection backend gateway
	gateway := collector.New(cfg.Collector.BaseURL, time.Duration(cfg.Collector.Timeout)*time.Second)

	// Session store
	sessions, err := valkey.New(cfg.Valkey.Addr)
	var sessionStore ports.SessionStore
	if err != nil {
		slog.Warn("valkey unavailable, sessions disabled", "error", err)
	} else {
		sessionStore = sessions
		defer sessions.Close()
	}

	// NATS refresh publisher
	var publisher ports.RefreshPublisher
	pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable, refresh events disabled", "error", err)
	} else {
		publisher = pub
		defer pub.Close()
	}

	// Raw NATS connection for WebSocket relay
	natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
	}

	// Use cases
	appLogger := slog.Default()
	deps := &http.Dependencies{
		Dashboard: usecases.NewDashboardService(gateway, publisher, appLogger),
		Archive:   usecases.NewArchiveService(gateway, publisher, appLogger),
		Export:    usecases.NewExportService(gateway, appLogger),
		Sessions:  sessionStore,
		NATS:      natsConn,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "GeoWatch API",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
