package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

var (
	// RecordsFetched counts raw instrument records returned by the source.
	RecordsFetched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rates_records_fetched_total",
		Help: "Total raw instrument records fetched from the reference API.",
	})

	// RecordErrors counts records dropped for being unparseable.
	RecordErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rates_record_errors_total",
		Help: "Records dropped due to malformed fields.",
	})

	// RowsDropped counts rows removed by a filter, by reason code.
	RowsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rates_rows_dropped_total",
		Help: "Rows dropped by the filter chain (by reason).",
	}, []string{"reason"})

	// EnrichmentCalls counts per-ticker enrichment outcomes.
	EnrichmentCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rates_enrichment_calls_total",
		Help: "Per-ticker enrichment lookups (by status: ok, cached, degraded, skipped).",
	}, []string{"status"})

	// VariantGroups counts merged variant groups per run.
	VariantGroups = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rates_variant_groups",
		Help: "Variant groups produced by the merger in the last run.",
	})

	// RowsPublished is the number of rows in the written output file.
	RowsPublished = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rates_rows_published",
		Help: "Rows written to the published CSV in the last run.",
	})

	// RunDurationSeconds is the wall time of the last completed run.
	RunDurationSeconds = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rates_run_duration_seconds",
		Help: "Duration of the last completed publication run.",
	})
)

// Push sends the default registry to a Prometheus Pushgateway. Batch jobs
// have no scrape surface, so metrics are pushed once at end of run. Failure
// to push never fails the run.
func Push(gatewayURL, job string) error {
	return push.New(gatewayURL, job).Gatherer(prometheus.DefaultGatherer).Push()
}
