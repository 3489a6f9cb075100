package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	httpapi "github.com/lakewatch/pollution-api/internal/api/http"
	"github.com/lakewatch/pollution-api/internal/collector"
	"github.com/lakewatch/pollution-api/internal/config"
	"github.com/lakewatch/pollution-api/internal/pollution"
	"github.com/lakewatch/pollution-api/internal/sensor"
	"github.com/lakewatch/pollution-api/internal/storage"
	"github.com/lakewatch/pollution-api/internal/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog := newLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := storage.New(ctx, cfg.PostgresDSN, &zlog)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		zlog.Fatal().Err(err).Msg("failed to run migrations")
	}

	pollutionRepo := storage.NewPollutionRepo(db)
	weatherRepo := storage.NewWeatherRepo(db)

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	weatherClient := weather.NewClient(httpClient, cfg.WeatherAPIKey, cfg.WeatherLat, cfg.WeatherLon)
	liveSensor := sensor.NewSimulator(cfg.SensorID)

	service := pollution.NewService(pollutionRepo, weatherRepo, weatherClient, liveSensor, &zlog)

	if cfg.CollectorEnabled {
		ingest := collector.New(liveSensor, weatherClient, pollutionRepo, weatherRepo, cfg.CollectInterval, &zlog)
		if err := ingest.Start(); err != nil {
			zlog.Fatal().Err(err).Msg("failed to start collector")
		}
		defer ingest.Stop()
	}

	app := fiber.New(fiber.Config{
		AppName:               "pollution-api",
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

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "pollution-api",
		})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpapi.RegisterRoutes(app, service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			zlog.Error().Err(err).Msg("fiber server stopped")
		}
	}()

	zlog.Info().Str("port", cfg.Port).Msg("pollution-api started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		zlog.Error().Err(err).Msg("error during shutdown")
	}
}

func newLogger(appEnv string) zerolog.Logger {
	if appEnv == "local" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
