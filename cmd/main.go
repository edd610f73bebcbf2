package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"leadscraper/internal/config"
	"leadscraper/internal/core/job"
	"leadscraper/internal/core/placecache"
	"leadscraper/internal/core/report"
	"leadscraper/internal/core/scrape"
	"leadscraper/internal/logger"
	"leadscraper/internal/platform/places"
	"leadscraper/internal/reference"
	"leadscraper/internal/server"
)

func main() {
	cfg := config.Load()
	log.Printf("[leadscraper] starting at %s (env=%s)\n", cfg.HTTPAddr, cfg.AppEnv)

	logr := logger.New("main")
	if cfg.PlacesAPIKey == "" {
		logr.LogWarn("PLACES_API_KEY is not set; upstream calls will be denied")
	}

	ref := reference.Load(cfg.ReferenceFile(), logr)
	logr.LogInfof("reference data: %d sectors, %d districts", len(ref.Sectors()), len(ref.Districts()))

	cache := placecache.New(cfg.CacheFile())
	registry := job.NewRegistry(cfg.JobsFile())
	sink := job.NewLogSink()

	placesClient := places.New(places.Config{
		APIKey:         cfg.PlacesAPIKey,
		BaseURL:        cfg.PlacesBaseURL,
		PageTokenDelay: cfg.PageTokenDelay,
	})
	writer := report.NewWriter(cfg.OutputDir)

	// Jobs run until this context is cancelled at shutdown.
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	scrapeSvc := scrape.NewService(jobCtx, cfg, placesClient, cache, registry, sink, writer, ref)

	app := fiber.New(fiber.Config{
		AppName: "Leadscraper Engine",
		JSONEncoder: func(v interface{}) ([]byte, error) {
			var buf bytes.Buffer
			encoder := json.NewEncoder(&buf)
			encoder.SetEscapeHTML(false)
			if err := encoder.Encode(v); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		},
	})

	server.RegisterRoutes(app, server.Dependencies{
		Scrape:          scrapeSvc,
		Registry:        registry,
		Sink:            sink,
		Reference:       ref,
		APIKeySet:       cfg.PlacesAPIKey != "",
		LogPollInterval: cfg.LogPollInterval,
	})

	// Graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-shutdown
		logr.LogInfo("Shutting down...")
		cancelJobs()
		if err := registry.Flush(); err != nil {
			logr.LogError("job snapshot flush failed", err)
		}
		if err := cache.Flush(); err != nil {
			logr.LogError("cache flush failed", err)
		}
		_ = app.ShutdownWithTimeout(5 * time.Second)
	}()

	if err := app.Listen(cfg.HTTPAddr); err != nil {
		log.Fatalf("server listen: %v", err)
	}
}
