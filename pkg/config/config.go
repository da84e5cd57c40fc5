package config

import (
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration for one publication run.
// It supports environment-based initialization, with sensible defaults.
type Config struct {
	ServiceName string // e.g. "rates-publisher"
	Env         string // e.g. "dev", "uat", "prod"
	LogLevel    string // "debug", "info", etc.

	// Upstream APIs
	ReferenceAPIURL string // instrument list + exchange reference data
	MarketAPIURL    string // per-ticker historical data (API key required)
	HTTPTimeout     time.Duration
	RetryMax        int
	RequestsPerSec  int
	Burst           int

	// API key resolution. The environment variable wins; the AWS Secrets
	// Manager secret is the fallback. An unresolvable key degrades
	// enrichment, it never fails the run.
	MarketAPIKey     string
	APIKeySecretName string
	AWSRegion        string

	// Output
	Dataset         string // dataset label used in events and metrics
	OutputPath      string // CSV written here (atomically)
	PriorOutputPath string // previous run's CSV, read for carry-forward
	CatalogPath     string // fixed catalog TOML, empty = no catalog

	// Filters
	QuoteCurrency     string
	ExchangeBlocklist []string
	StalenessCutoff   time.Time // time-of-day (UTC); cutoff = yesterday at this time

	// Liveness probe
	LivenessURLTemplate string // %s replaced by the base ticker; empty = probe disabled

	// Enrichment
	EnrichWorkers int
	CacheTTL      time.Duration
	RedisAddr     string // empty = no enrichment cache
	RedisDB       int
	RedisPass     string

	// Eventing / metrics
	NATSURL         string // empty = no event published
	OutboundSubject string
	PushgatewayURL  string // empty = no metrics push
}

// Load loads configuration from environment variables and .env file if present.
func Load() *Config {
	// load .env silently (no error if missing)
	_ = godotenv.Load()

	return &Config{
		ServiceName: GetEnv("SERVICE_NAME", "rates-publisher"),
		Env:         GetEnv("ENV", "dev"),
		LogLevel:    GetEnv("LOG_LEVEL", "info"),

		ReferenceAPIURL: GetEnv("REFERENCE_API_URL", "https://reference-data-api.kaiko.io/v1"),
		MarketAPIURL:    GetEnv("MARKET_API_URL", "https://us.market-api.kaiko.io/v2"),
		HTTPTimeout:     GetEnvDuration("HTTP_TIMEOUT", 15*time.Second),
		RetryMax:        GetEnvInt("HTTP_RETRY_MAX", 2),
		RequestsPerSec:  GetEnvInt("HTTP_REQUESTS_PER_SEC", 5),
		Burst:           GetEnvInt("HTTP_BURST", 10),

		MarketAPIKey:     GetEnv("MARKET_API_KEY", ""),
		APIKeySecretName: GetEnv("API_KEY_SECRET_NAME", ""),
		AWSRegion:        GetEnv("AWS_REGION", "us-east-2"),

		Dataset:         GetEnv("DATASET", "single-asset-rates"),
		OutputPath:      GetEnv("OUTPUT_PATH", "rates.csv"),
		PriorOutputPath: GetEnv("PRIOR_OUTPUT_PATH", GetEnv("OUTPUT_PATH", "rates.csv")),
		CatalogPath:     GetEnv("CATALOG_PATH", "configs/fixed_catalog.toml"),

		QuoteCurrency:     GetEnv("QUOTE_CURRENCY", "USD"),
		ExchangeBlocklist: GetEnvList("EXCHANGE_BLOCKLIST", nil),
		StalenessCutoff:   GetEnvTime("STALENESS_CUTOFF", "21:00"),

		LivenessURLTemplate: GetEnv("LIVENESS_URL_TEMPLATE", ""),

		EnrichWorkers: GetEnvInt("ENRICH_WORKERS", 4),
		CacheTTL:      GetEnvDuration("CACHE_TTL", 6*time.Hour),
		RedisAddr:     GetEnv("REDIS_ADDR", ""),
		RedisDB:       GetEnvInt("REDIS_DB", 0),
		RedisPass:     GetEnv("REDIS_PASS", ""),

		NATSURL:         GetEnv("NATS_URL", ""),
		OutboundSubject: GetEnv("OUTBOUND_SUBJECT", "evt.rates.published.v1"),
		PushgatewayURL:  GetEnv("PUSHGATEWAY_URL", ""),
	}
}

// StalenessCutoffFor anchors the configured cutoff time-of-day to the day
// before now, in UTC. A row whose last publication predates the returned
// instant is considered stale.
func (c *Config) StalenessCutoffFor(now time.Time) time.Time {
	y := now.UTC().AddDate(0, 0, -1)
	return time.Date(y.Year(), y.Month(), y.Day(),
		c.StalenessCutoff.Hour(), c.StalenessCutoff.Minute(), 0, 0, time.UTC)
}
