package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	AppEnv   string
	HTTPAddr string

	// DataDir holds durable snapshots (job registry, places cache) and the
	// optional reference override file. OutputDir holds per-job artifacts.
	DataDir   string
	OutputDir string

	PlacesAPIKey  string
	PlacesBaseURL string

	// Inter-request delays tuned for the Places API rate limits. The page
	// token is not valid for immediate reuse, hence the long page delay.
	PageTokenDelay    time.Duration
	DetailDelay       time.Duration
	NeighborhoodDelay time.Duration
	KeywordDelay      time.Duration

	MaxResultsPerQuery int
	LogPollInterval    time.Duration
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func Load() Config {
	return Config{
		AppEnv:   getenv("APP_ENV", "development"),
		HTTPAddr: getenv("HTTP_ADDR", ":3001"),

		DataDir:   getenv("DATA_DIR", "./data"),
		OutputDir: getenv("OUTPUT_DIR", "./output"),

		PlacesAPIKey:  os.Getenv("PLACES_API_KEY"),
		PlacesBaseURL: getenv("PLACES_BASE_URL", "https://maps.googleapis.com/maps/api/place"),

		PageTokenDelay:    getenvDuration("PAGE_TOKEN_DELAY", 2500*time.Millisecond),
		DetailDelay:       getenvDuration("DETAIL_DELAY", 600*time.Millisecond),
		NeighborhoodDelay: getenvDuration("NEIGHBORHOOD_DELAY", 300*time.Millisecond),
		KeywordDelay:      getenvDuration("KEYWORD_DELAY", 800*time.Millisecond),

		MaxResultsPerQuery: getenvInt("MAX_RESULTS_PER_QUERY", 60),
		LogPollInterval:    getenvDuration("LOG_POLL_INTERVAL", 400*time.Millisecond),
	}
}

// JobsFile is the durable job registry snapshot path.
func (c Config) JobsFile() string { return filepath.Join(c.DataDir, "jobs-persistence.json") }

// CacheFile is the durable places cache snapshot path.
func (c Config) CacheFile() string { return filepath.Join(c.DataDir, "places-cache.json") }

// ReferenceFile is the optional sector/neighborhood override file.
func (c Config) ReferenceFile() string { return filepath.Join(c.DataDir, "reference.yaml") }
