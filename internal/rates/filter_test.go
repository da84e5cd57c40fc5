package rates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Checker-Finance/rates-publisher/pkg/model"
)

func TestQuoteFilter(t *testing.T) {
	f := QuoteFilter{Currency: "USD"}

	tests := []struct {
		quote string
		keep  bool
	}{
		{"USD", true},
		{"usd", true},
		{"USDT", false},
		{"EUR", false},
		{"", false},
	}

	for _, tt := range tests {
		v := f.Apply(model.RateRow{Quote: tt.quote})
		assert.Equal(t, tt.keep, v.Keep, "quote %q", tt.quote)
		if !tt.keep {
			assert.Equal(t, ReasonQuoteCurrency, v.Reason)
		}
	}
}

func TestExchangeBlocklistFilter(t *testing.T) {
	f := ExchangeBlocklistFilter{Blocked: []string{"Coinbase"}}

	v := f.Apply(model.RateRow{Exchanges: "Coinbase, Kraken"})
	assert.False(t, v.Keep)
	assert.Equal(t, ReasonExchangeBlocklist, v.Reason)

	v = f.Apply(model.RateRow{Exchanges: "Kraken"})
	assert.True(t, v.Keep)

	// Empty blocklist entries never match.
	f = ExchangeBlocklistFilter{Blocked: []string{""}}
	assert.True(t, f.Apply(model.RateRow{Exchanges: "Kraken"}).Keep)
}

func TestStalenessFilter(t *testing.T) {
	cutoff := time.Date(2024, 1, 2, 21, 0, 0, 0, time.UTC)
	f := StalenessFilter{Cutoff: cutoff}

	stale := model.RateRow{LastPublished: time.Date(2024, 1, 2, 20, 0, 0, 0, time.UTC)}
	fresh := model.RateRow{LastPublished: time.Date(2024, 1, 2, 22, 0, 0, 0, time.UTC)}
	unknown := model.RateRow{}

	v := f.Apply(stale)
	assert.False(t, v.Keep)
	assert.Equal(t, ReasonStale, v.Reason)

	assert.True(t, f.Apply(fresh).Keep)
	assert.True(t, f.Apply(unknown).Keep, "unknown publication time never delists a row")
	assert.True(t, f.Apply(model.RateRow{LastPublished: cutoff}).Keep, "exactly at cutoff is kept")
}

func TestApplyFilters(t *testing.T) {
	rows := []model.RateRow{
		{Ticker: "A", Quote: "USD", Exchanges: "Kraken"},
		{Ticker: "B", Quote: "USDT", Exchanges: "Kraken"},
		{Ticker: "C", Quote: "USD", Exchanges: "Coinbase, Kraken"},
		{Ticker: "D", Quote: "USD", Exchanges: "Binance"},
	}
	filters := []Filter{
		QuoteFilter{Currency: "USD"},
		ExchangeBlocklistFilter{Blocked: []string{"Coinbase"}},
	}

	var reasons []string
	kept := ApplyFilters(zap.NewNop(), rows, filters, func(reason string) {
		reasons = append(reasons, reason)
	})

	require.Len(t, kept, 2)
	assert.Equal(t, "A", kept[0].Ticker, "input order preserved")
	assert.Equal(t, "D", kept[1].Ticker)
	assert.Equal(t, []string{ReasonQuoteCurrency, ReasonExchangeBlocklist}, reasons)
}

func TestApplyFilters_NoFilters(t *testing.T) {
	rows := []model.RateRow{{Ticker: "A"}, {Ticker: "B"}}
	kept := ApplyFilters(zap.NewNop(), rows, nil, nil)
	assert.Equal(t, rows, kept)
}
