// Package main is the entry point for the award selection service.
// It wires the availability sources, valuation and rate adapters, and the
// selection engine behind the HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/award-alerts/award-fare-selection-system/internal/adapter/airports"
	selectionhttp "github.com/award-alerts/award-fare-selection-system/internal/adapter/http"
	"github.com/award-alerts/award-fare-selection-system/internal/adapter/http/middleware"
	"github.com/award-alerts/award-fare-selection-system/internal/adapter/mileage"
	"github.com/award-alerts/award-fare-selection-system/internal/adapter/provider/awardseats"
	"github.com/award-alerts/award-fare-selection-system/internal/adapter/rates"
	"github.com/award-alerts/award-fare-selection-system/internal/config"
	"github.com/award-alerts/award-fare-selection-system/internal/domain"
	"github.com/award-alerts/award-fare-selection-system/internal/engine"
	"github.com/award-alerts/award-fare-selection-system/internal/infrastructure/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg := config.MustLoad()

	log := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "award-selection",
	})
	logger.SetGlobal(log)

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Msg("Configuration loaded")

	handler, cleanup, err := buildHandler(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build application")
	}
	defer cleanup()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Configure server timeouts from config
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.Setup(e, log.Logger)
	selectionhttp.RegisterRoutes(e, handler)

	// Start server with graceful shutdown
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	gracefulShutdown(e, log)
}

// buildHandler assembles the selection engine and its adapters from config.
// The returned cleanup releases shared resources (e.g. the redis connection).
func buildHandler(cfg *config.Config, log *logger.Logger) (*selectionhttp.SelectionHandler, func(), error) {
	cleanup := func() {}

	// Airport metadata
	airportTable := airports.Builtin()
	if cfg.Selection.AirportsFile != "" {
		if err := airportTable.LoadCSV(cfg.Selection.AirportsFile); err != nil {
			return nil, cleanup, err
		}
		log.Info().
			Str("file", cfg.Selection.AirportsFile).
			Int("airports", airportTable.Len()).
			Msg("Loaded airport table")
	}

	// Mileage valuations
	mileageTable, err := mileage.ParseValues(cfg.Selection.MileageValues)
	if err != nil {
		return nil, cleanup, fmt.Errorf("parse mileage values: %w", err)
	}

	// Currency conversion, optionally backed by a shared redis rate cache
	converterOpts := []rates.Option{rates.WithLogger(log)}
	if cfg.Redis.Enabled {
		cache, err := rates.NewRedisCache(rates.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.RateTTL,
		}, log)
		if err != nil {
			return nil, cleanup, err
		}
		cleanup = func() { cache.Close() }
		converterOpts = append(converterOpts, rates.WithSharedCache(cache))
	}
	converter := rates.NewConverter(rates.Config{
		BaseCurrency: cfg.Selection.BaseCurrency,
		BaseURL:      cfg.Rates.BaseURL,
		APIKey:       cfg.Rates.APIKey,
		Timeout:      cfg.Rates.Timeout,
	}, converterOpts...)

	// One shared upstream client serves every program; the API multiplexes
	// sources through the query.
	availabilityClient := awardseats.NewClient(awardseats.Config{
		BaseURL:           cfg.Availability.BaseURL,
		APIKey:            cfg.Availability.APIKey,
		PageSize:          cfg.Availability.PageSize,
		Timeout:           cfg.Availability.Timeout,
		RequestsPerSecond: cfg.Availability.RequestsPerSecond,
		Burst:             cfg.Availability.Burst,
	}, log)

	sources := make(map[domain.Source]domain.AvailabilitySource, len(domain.AllSources()))
	for _, source := range domain.AllSources() {
		sources[source] = availabilityClient
	}

	selector := engine.New(engine.Deps{
		Airports:  airportTable,
		Mileage:   mileageTable,
		Converter: converter,
		Logger:    log,
	})

	handler := selectionhttp.NewSelectionHandler(sources, selector, log,
		selectionhttp.WithMaxPageDepth(cfg.Availability.MaxPages),
		selectionhttp.WithSelectionTimeout(cfg.Selection.GlobalTimeout))
	return handler, cleanup, nil
}

// gracefulShutdown handles graceful server shutdown on interrupt signals.
func gracefulShutdown(e *echo.Echo, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
