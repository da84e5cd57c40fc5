package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Checker-Finance/rates-publisher/internal/csvio"
	"github.com/Checker-Finance/rates-publisher/internal/enrich"
	"github.com/Checker-Finance/rates-publisher/internal/kaiko"
	"github.com/Checker-Finance/rates-publisher/internal/liveness"
	"github.com/Checker-Finance/rates-publisher/internal/metrics"
	"github.com/Checker-Finance/rates-publisher/internal/publisher"
	"github.com/Checker-Finance/rates-publisher/internal/rate"
	"github.com/Checker-Finance/rates-publisher/internal/rates"
	intsecrets "github.com/Checker-Finance/rates-publisher/internal/secrets"
	"github.com/Checker-Finance/rates-publisher/pkg/config"
	"github.com/Checker-Finance/rates-publisher/pkg/logger"
	"github.com/Checker-Finance/rates-publisher/pkg/model"
	pkgsecrets "github.com/Checker-Finance/rates-publisher/pkg/secrets"
	"github.com/Checker-Finance/rates-publisher/pkg/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	log, err := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	log.Info("starting [rates-publisher]",
		zap.String("dataset", cfg.Dataset),
		zap.String("output", cfg.OutputPath))

	// --- API key resolution (env, then AWS Secrets Manager) ---
	var provider pkgsecrets.Provider
	if cfg.APIKeySecretName != "" {
		provider, err = pkgsecrets.NewAWSProvider(ctx, cfg.AWSRegion)
		if err != nil {
			log.Fatal("failed to init AWS provider", zap.Error(err))
		}
	}
	resolver := intsecrets.NewResolver(log, provider, pkgsecrets.NewCache[string](30*time.Minute))
	apiKey := resolver.ResolveAPIKey(ctx, cfg)
	if apiKey == "" {
		log.Warn("config.api_key_missing", zap.String("effect", "enrichment columns defaulted"))
	} else {
		log.Info("config.api_key_resolved", zap.String("key", utils.MaskKey(apiKey)))
	}

	// --- Upstream client ---
	rateMgr := rate.NewManager(rate.Config{
		RequestsPerSecond: cfg.RequestsPerSec,
		Burst:             cfg.Burst,
	})
	client := kaiko.NewClient(log, cfg.ReferenceAPIURL, cfg.MarketAPIURL, apiKey, rateMgr, cfg.HTTPTimeout, cfg.RetryMax)

	// --- Enrichment cache (optional) ---
	var cache *enrich.Cache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			DB:       cfg.RedisDB,
			Password: cfg.RedisPass,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unavailable, enrichment cache disabled", zap.Error(err))
		} else {
			cache = enrich.NewCache(log, rdb, cfg.CacheTTL)
			defer rdb.Close() //nolint:errcheck
		}
	}
	enricher := enrich.New(log, client, cache, cfg.EnrichWorkers, apiKey != "")

	// --- Eventing (optional) ---
	var events rates.EventPublisher
	if cfg.NATSURL != "" {
		nc, err := nats.Connect(cfg.NATSURL, nats.Name(cfg.ServiceName))
		if err != nil {
			log.Fatal("failed to connect to NATS", zap.Error(err))
		}
		defer nc.Drain() //nolint:errcheck

		pub, err := publisher.New(log, nc, cfg.OutboundSubject, cfg.ServiceName)
		if err != nil {
			log.Fatal("failed to init publisher", zap.Error(err))
		}
		events = pub
	}

	// --- Fixed catalog ---
	var catalog []model.RateRow
	if cfg.CatalogPath != "" {
		catalog, err = rates.LoadCatalog(cfg.CatalogPath)
		if err != nil {
			log.Fatal("failed to load fixed catalog", zap.Error(err))
		}
		log.Info("catalog.loaded", zap.Int("rows", len(catalog)))
	}

	// --- Liveness probe (optional) ---
	var prober rates.LivenessProber
	if cfg.LivenessURLTemplate != "" {
		prober = liveness.New(log, cfg.LivenessURLTemplate, cfg.HTTPTimeout)
	}

	filters := []rates.Filter{
		rates.QuoteFilter{Currency: cfg.QuoteCurrency},
		rates.ExchangeBlocklistFilter{Blocked: cfg.ExchangeBlocklist},
		rates.StalenessFilter{Cutoff: cfg.StalenessCutoffFor(time.Now())},
	}

	pipeline := rates.NewPipeline(
		log,
		client,
		enricher,
		csvio.NewReader(log, cfg.PriorOutputPath),
		csvio.NewWriter(log, cfg.OutputPath),
		rates.Options{
			Prober:  prober,
			Events:  events,
			Filters: filters,
			Catalog: catalog,
			Dataset: cfg.Dataset,
			Output:  cfg.OutputPath,
		},
	)

	runErr := pipeline.Run(ctx)

	if cfg.PushgatewayURL != "" {
		if err := metrics.Push(cfg.PushgatewayURL, cfg.ServiceName); err != nil {
			log.Warn("metrics.push_failed", zap.Error(err))
		}
	}

	if runErr != nil {
		log.Error("pipeline.run_failed", zap.Error(runErr))
		_ = log.Sync()
		os.Exit(1)
	}
}
