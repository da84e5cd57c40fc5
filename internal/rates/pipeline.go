package rates

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Checker-Finance/rates-publisher/internal/metrics"
	"github.com/Checker-Finance/rates-publisher/pkg/model"
)

// InstrumentSource returns the full set of raw instrument records for one
// run. An error here is fatal: nothing is written.
type InstrumentSource interface {
	FetchInstruments(ctx context.Context) ([]model.RawInstrument, error)
}

// Enricher fills the Exchanges, CalcWindow and LastPublished fields of each
// row, degrading to placeholders on any per-row failure.
type Enricher interface {
	Enrich(ctx context.Context, rows []model.RateRow) []model.RateRow
}

// PriorOutput exposes the factsheet links of the previous run's published
// file. A missing prior file yields an empty index, not an error.
type PriorOutput interface {
	FactsheetIndex(ctx context.Context) (model.FactsheetIndex, error)
}

// LivenessProber reports whether a public detail page exists for a base
// ticker. Probed instruments that fail are excluded from the output.
type LivenessProber interface {
	Alive(ctx context.Context, baseTicker string) bool
}

// Sink accepts the final row set. Implementations must write atomically: a
// failed run must never leave a partial file behind.
type Sink interface {
	Write(ctx context.Context, rows []model.RateRow) error
}

// EventPublisher announces a completed publication downstream. Optional.
type EventPublisher interface {
	PublishDatasetPublished(ctx context.Context, evt model.DatasetPublishedEvent) error
}

// Pipeline is the publication run: fetch, normalize, enrich, carry forward
// factsheets, filter, merge location variants, probe liveness, overlay the
// fixed catalog, write.
type Pipeline struct {
	logger   *zap.Logger
	source   InstrumentSource
	enricher Enricher
	prior    PriorOutput
	prober   LivenessProber // nil disables the liveness stage
	sink     Sink
	events   EventPublisher // nil disables eventing
	filters  []Filter
	catalog  []model.RateRow
	dataset  string
	output   string
}

// Options carries the optional pipeline collaborators and parameters.
type Options struct {
	Prober  LivenessProber
	Events  EventPublisher
	Filters []Filter
	Catalog []model.RateRow
	Dataset string
	Output  string
}

// NewPipeline assembles a run from its collaborators.
func NewPipeline(logger *zap.Logger, source InstrumentSource, enricher Enricher, prior PriorOutput, sink Sink, opts Options) *Pipeline {
	return &Pipeline{
		logger:   logger,
		source:   source,
		enricher: enricher,
		prior:    prior,
		prober:   opts.Prober,
		sink:     sink,
		events:   opts.Events,
		filters:  opts.Filters,
		catalog:  opts.Catalog,
		dataset:  opts.Dataset,
		output:   opts.Output,
	}
}

// Run executes one publication run. It either writes a complete output file
// and returns nil, or writes nothing and returns the fatal error.
func (p *Pipeline) Run(ctx context.Context) error {
	runID := uuid.New()
	start := time.Now()
	log := p.logger.With(zap.String("run_id", runID.String()))

	raw, err := p.source.FetchInstruments(ctx)
	if err != nil {
		return fmt.Errorf("fetch instruments: %w", err)
	}
	fetchedAt := time.Now().UTC()
	metrics.RecordsFetched.Add(float64(len(raw)))
	log.Info("pipeline.fetched", zap.Int("records", len(raw)))

	rows := make([]model.RateRow, 0, len(raw))
	for _, rec := range raw {
		row, err := Normalize(rec)
		if err != nil {
			metrics.RecordErrors.Inc()
			log.Warn("pipeline.record_dropped", zap.Error(err))
			continue
		}
		rows = append(rows, row)
	}

	rows = p.enricher.Enrich(ctx, rows)

	prior, err := p.prior.FactsheetIndex(ctx)
	if err != nil {
		return fmt.Errorf("read prior output: %w", err)
	}
	rows = CarryForward(rows, prior)

	rows = ApplyFilters(log, rows, p.filters, func(reason string) {
		metrics.RowsDropped.WithLabelValues(reason).Inc()
	})

	merged := Merge(rows)
	metrics.VariantGroups.Set(float64(len(merged)))
	log.Info("pipeline.merged",
		zap.Int("rows_in", len(rows)),
		zap.Int("groups", len(merged)))

	if p.prober != nil {
		merged = p.probeLiveness(ctx, log, merged)
	}

	catalog := CarryForward(p.catalog, prior)
	final := Overlay(catalog, merged, func(ticker string) {
		log.Info("pipeline.catalog_shadowed", zap.String("ticker", ticker))
	})

	if err := p.sink.Write(ctx, final); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	publishedAt := time.Now().UTC()

	metrics.RowsPublished.Set(float64(len(final)))
	metrics.RunDurationSeconds.Set(time.Since(start).Seconds())
	log.Info("pipeline.published",
		zap.Int("rows", len(final)),
		zap.Duration("elapsed", time.Since(start)))

	if p.events != nil {
		evt := model.DatasetPublishedEvent{
			RunID:       runID,
			Dataset:     p.dataset,
			OutputPath:  p.output,
			RowCount:    len(final),
			FetchedAt:   fetchedAt,
			PublishedAt: publishedAt,
		}
		if err := p.events.PublishDatasetPublished(ctx, evt); err != nil {
			// The file is already out; eventing failure is not worth a rerun.
			log.Warn("pipeline.event_publish_failed", zap.Error(err))
		}
	}

	return nil
}

// probeLiveness drops merged rows whose public detail page does not resolve.
// Runs post-merge: the probe target is the base ticker.
func (p *Pipeline) probeLiveness(ctx context.Context, log *zap.Logger, rows []model.RateRow) []model.RateRow {
	out := make([]model.RateRow, 0, len(rows))
	for _, row := range rows {
		if !p.prober.Alive(ctx, row.Ticker) {
			metrics.RowsDropped.WithLabelValues(ReasonNotLive).Inc()
			log.Info("pipeline.liveness_dropped", zap.String("ticker", row.Ticker))
			continue
		}
		out = append(out, row)
	}
	return out
}
