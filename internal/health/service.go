package health

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"leadscraper/internal/logger"
	"leadscraper/internal/reference"
)

// Handler reports readiness basics: whether the upstream API key is set and
// how much reference data was loaded.
type Handler struct {
	log       *logger.Logger
	apiKeySet bool
	ref       *reference.Data
	startTime time.Time
}

func NewHandler(apiKeySet bool, ref *reference.Data) *Handler {
	return &Handler{
		log:       logger.New("HealthCheck"),
		apiKeySet: apiKeySet,
		ref:       ref,
		startTime: time.Now(),
	}
}

type response struct {
	Status        string `json:"status"`
	APIKeySet     bool   `json:"apiKeySet"`
	Sectors       int    `json:"sectors"`
	Districts     int    `json:"districts"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	h.log.LogDebug("health check")
	return c.JSON(response{
		Status:        "ok",
		APIKeySet:     h.apiKeySet,
		Sectors:       len(h.ref.Sectors()),
		Districts:     len(h.ref.Districts()),
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
	})
}

func Limiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        300,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{"error": "Rate limit exceeded"})
		},
	})
}
