package rates

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Checker-Finance/rates-publisher/pkg/model"
)

// Drop reason codes, used for logging and metrics.
const (
	ReasonQuoteCurrency     = "quote_currency"
	ReasonExchangeBlocklist = "exchange_blocklist"
	ReasonStale             = "stale"
	ReasonNotLive           = "not_live"
)

// Verdict is a single filter's decision for one row.
type Verdict struct {
	Keep   bool
	Reason string // drop reason code, empty when kept
}

func keep() Verdict              { return Verdict{Keep: true} }
func drop(reason string) Verdict { return Verdict{Reason: reason} }

// Filter is one independent row predicate.
type Filter interface {
	Name() string
	Apply(row model.RateRow) Verdict
}

// QuoteFilter keeps only rows quoted in the target currency. Exact match:
// USDT does not pass a USD filter.
type QuoteFilter struct {
	Currency string
}

func (f QuoteFilter) Name() string { return "quote" }

func (f QuoteFilter) Apply(row model.RateRow) Verdict {
	if strings.EqualFold(row.Quote, f.Currency) {
		return keep()
	}
	return drop(ReasonQuoteCurrency)
}

// ExchangeBlocklistFilter drops rows whose exchanges descriptor mentions a
// disallowed venue.
type ExchangeBlocklistFilter struct {
	Blocked []string
}

func (f ExchangeBlocklistFilter) Name() string { return "exchange_blocklist" }

func (f ExchangeBlocklistFilter) Apply(row model.RateRow) Verdict {
	for _, blocked := range f.Blocked {
		if blocked != "" && strings.Contains(row.Exchanges, blocked) {
			return drop(ReasonExchangeBlocklist)
		}
	}
	return keep()
}

// StalenessFilter drops rows whose most recent publication predates the
// cutoff. Rows with an unknown publication time are kept: enrichment
// degradation must not silently delist an instrument.
type StalenessFilter struct {
	Cutoff time.Time
}

func (f StalenessFilter) Name() string { return "staleness" }

func (f StalenessFilter) Apply(row model.RateRow) Verdict {
	if row.LastPublished.IsZero() || !row.LastPublished.Before(f.Cutoff) {
		return keep()
	}
	return drop(ReasonStale)
}

// ApplyFilters runs each filter over each row in order, short-circuit-free
// between filters, and returns the surviving rows in input order. dropped is
// called once per dropped row with the reason code.
func ApplyFilters(logger *zap.Logger, rows []model.RateRow, filters []Filter, dropped func(reason string)) []model.RateRow {
	out := make([]model.RateRow, 0, len(rows))

rowLoop:
	for _, row := range rows {
		for _, f := range filters {
			if v := f.Apply(row); !v.Keep {
				logger.Debug("filter.row_dropped",
					zap.String("ticker", row.Ticker),
					zap.String("filter", f.Name()),
					zap.String("reason", v.Reason))
				if dropped != nil {
					dropped(v.Reason)
				}
				continue rowLoop
			}
		}
		out = append(out, row)
	}
	return out
}
