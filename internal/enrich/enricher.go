package enrich

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Checker-Finance/rates-publisher/internal/metrics"
	"github.com/Checker-Finance/rates-publisher/internal/rates"
	"github.com/Checker-Finance/rates-publisher/pkg/model"
)

// Source provides the upstream lookups enrichment needs.
type Source interface {
	ExchangeNames(ctx context.Context) (map[string]string, error)
	LatestRate(ctx context.Context, ticker string) (model.RateDatapoint, error)
}

// Enricher fills each row's exchange list, calculation window and last
// publication time from the per-ticker market endpoint. Lookups run on a
// bounded worker pool; results land by row index so output order never
// depends on completion order. Every per-row failure degrades to the
// placeholder value; enrichment can never fail the batch.
type Enricher struct {
	logger  *zap.Logger
	source  Source
	cache   *Cache // nil disables caching
	workers int
	enabled bool // false when no API key was resolved
}

// New creates an Enricher. enabled=false skips all per-ticker calls and
// leaves placeholders (missing API key).
func New(logger *zap.Logger, source Source, cache *Cache, workers int, enabled bool) *Enricher {
	if workers < 1 {
		workers = 1
	}
	return &Enricher{
		logger:  logger,
		source:  source,
		cache:   cache,
		workers: workers,
		enabled: enabled,
	}
}

// Enrich returns the rows with enrichment fields populated. Only
// Single-Asset rows are eligible for a per-ticker lookup; everything else
// keeps its placeholders.
func (e *Enricher) Enrich(ctx context.Context, rows []model.RateRow) []model.RateRow {
	out := make([]model.RateRow, len(rows))
	copy(out, rows)

	if !e.enabled {
		metrics.EnrichmentCalls.WithLabelValues("skipped").Add(float64(len(out)))
		return out
	}

	mappings, err := e.source.ExchangeNames(ctx)
	if err != nil {
		// Raw exchange codes are still usable in the output.
		e.logger.Warn("enrich.exchange_mappings_failed", zap.Error(err))
		mappings = nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i := range out {
		if out[i].Family != rates.FamilySingleAsset {
			metrics.EnrichmentCalls.WithLabelValues("skipped").Inc()
			continue
		}

		i := i
		g.Go(func() error {
			e.enrichRow(gctx, &out[i], mappings)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

func (e *Enricher) enrichRow(ctx context.Context, row *model.RateRow, mappings map[string]string) {
	dp, cached := e.cacheGet(ctx, row.Ticker)
	if !cached {
		var err error
		dp, err = e.source.LatestRate(ctx, row.Ticker)
		if err != nil {
			metrics.EnrichmentCalls.WithLabelValues("degraded").Inc()
			e.logger.Warn("enrich.lookup_degraded",
				zap.String("ticker", row.Ticker),
				zap.Error(err))
			return
		}
		e.cachePut(ctx, row.Ticker, dp)
		metrics.EnrichmentCalls.WithLabelValues("ok").Inc()
	} else {
		metrics.EnrichmentCalls.WithLabelValues("cached").Inc()
	}

	row.Exchanges = RenderExchanges(dp.Exchanges, mappings)
	row.CalcWindow = RenderCalcWindow(dp.CalcWindowSec)
	row.LastPublished = dp.PublishedAt
}

func (e *Enricher) cacheGet(ctx context.Context, ticker string) (model.RateDatapoint, bool) {
	if e.cache == nil {
		return model.RateDatapoint{}, false
	}
	return e.cache.Get(ctx, ticker)
}

func (e *Enricher) cachePut(ctx context.Context, ticker string, dp model.RateDatapoint) {
	if e.cache != nil {
		e.cache.Put(ctx, ticker, dp)
	}
}

// RenderExchanges maps exchange codes to display names (codes without a
// mapping pass through) and joins them sorted by code.
func RenderExchanges(codes []string, mappings map[string]string) string {
	if len(codes) == 0 {
		return model.Placeholder
	}

	sorted := make([]string, len(codes))
	copy(sorted, codes)
	sort.Strings(sorted)

	names := make([]string, 0, len(sorted))
	for _, code := range sorted {
		if name, ok := mappings[code]; ok {
			names = append(names, name)
		} else {
			names = append(names, code)
		}
	}
	return strings.Join(names, ", ")
}

// RenderCalcWindow renders a calculation window in seconds as "<n>s".
func RenderCalcWindow(seconds int) string {
	if seconds <= 0 {
		return model.Placeholder
	}
	return fmt.Sprintf("%ds", seconds)
}
