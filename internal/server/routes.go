package server

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"leadscraper/internal/core/job"
	"leadscraper/internal/core/scrape"
	"leadscraper/internal/health"
	"leadscraper/internal/reference"
)

type Dependencies struct {
	Scrape          *scrape.Service
	Registry        *job.Registry
	Sink            *job.LogSink
	Reference       *reference.Data
	APIKeySet       bool
	LogPollInterval time.Duration
}

func RegisterRoutes(app *fiber.App, d Dependencies) {
	healthHandler := health.NewHandler(d.APIKeySet, d.Reference)
	app.Get("/health", health.Limiter(), healthHandler.HandleHealth)

	h := scrape.NewHandler(d.Scrape, d.Registry, d.Sink, d.Reference, d.LogPollInterval)

	app.Get("/sectors", h.HandleListSectors)
	app.Get("/districts", h.HandleListDistricts)
	app.Get("/districts/:district/neighborhoods", h.HandleListNeighborhoods)

	app.Post("/scrape", h.HandleCreateScrape)
	app.Post("/scrape/custom", h.HandleCreateCustomScrape)

	app.Get("/job/:jobId", h.HandleGetJob)
	app.Get("/job/:jobId/logs", h.HandleStreamLogs)
	app.Post("/job/:jobId/stop", h.HandleStopJob)
	app.Get("/job/:jobId/download/:format", h.HandleDownload)
}
