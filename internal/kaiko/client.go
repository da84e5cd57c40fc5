package kaiko

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/Checker-Finance/rates-publisher/internal/httpclient"
	"github.com/Checker-Finance/rates-publisher/internal/rate"
	"github.com/Checker-Finance/rates-publisher/pkg/model"
)

// ErrNoData reports an empty data page for a ticker.
var ErrNoData = errors.New("no data for ticker")

// Client talks to the Kaiko reference-data API (instrument and exchange
// listings, no key required) and the market API (per-ticker rate data,
// X-API-KEY required).
type Client struct {
	logger       *zap.Logger
	referenceURL string
	marketURL    string
	apiKey       string
	refExec      *httpclient.Executor
	mktExec      *httpclient.Executor
}

// NewClient creates a Client. apiKey may be empty; LatestRate then fails and
// callers degrade to placeholders.
func NewClient(logger *zap.Logger, referenceURL, marketURL, apiKey string, rateMgr *rate.Manager, timeout time.Duration, retryMax int) *Client {
	httpc := &http.Client{Timeout: timeout}
	return &Client{
		logger:       logger,
		referenceURL: referenceURL,
		marketURL:    marketURL,
		apiKey:       apiKey,
		refExec:      httpclient.New(logger, rateMgr, httpc, retryMax, "kaiko.reference"),
		mktExec:      httpclient.New(logger, rateMgr, httpc, retryMax, "kaiko.market"),
	}
}

// FetchInstruments returns every rate definition the reference API lists.
// Any failure here is fatal for the run.
func (c *Client) FetchInstruments(ctx context.Context) ([]model.RawInstrument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.referenceURL+"/rates", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	var resp instrumentsResponse
	if err := c.refExec.DoJSON(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("kaiko: list rates: %w", err)
	}

	out := make([]model.RawInstrument, 0, len(resp.Data))
	for _, rec := range resp.Data {
		out = append(out, model.RawInstrument{
			Ticker:        rec.Ticker,
			Brand:         rec.Brand,
			Type:          rec.Type,
			ShortName:     rec.ShortName,
			Dissemination: rec.Dissemination,
			LaunchDate:    rec.LaunchDate,
			InceptionDate: rec.InceptionDate,
			Base:          rec.Base.ShortName,
			Quote:         rec.Quote.ShortName,
		})
	}
	return out, nil
}

// ExchangeNames returns the exchange code to display name mapping. CRCO is
// special-cased: the listed name is stale upstream.
func (c *Client) ExchangeNames(ctx context.Context) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.referenceURL+"/exchanges", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	var resp exchangesResponse
	if err := c.refExec.DoJSON(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("kaiko: list exchanges: %w", err)
	}

	mappings := make(map[string]string, len(resp.Data))
	for _, e := range resp.Data {
		if e.Code == "" || e.Name == "" {
			continue
		}
		if e.Code == "CRCO" {
			mappings[e.Code] = "Crypto.com"
			continue
		}
		mappings[e.Code] = e.Name
	}
	return mappings, nil
}

// LatestRate fetches the most recent published data point for ticker:
// page_size=1, sort=desc, parameters=true gets it in a single call.
func (c *Client) LatestRate(ctx context.Context, ticker string) (model.RateDatapoint, error) {
	if c.apiKey == "" {
		return model.RateDatapoint{}, errors.New("kaiko: no API key")
	}

	endpoint := fmt.Sprintf("%s/data/index.v1/digital_asset_rates_price/%s?page_size=1&parameters=true&sort=desc",
		c.marketURL, url.PathEscape(ticker))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return model.RateDatapoint{}, err
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Accept", "application/json")

	var resp ratesPriceResponse
	if err := c.mktExec.DoJSON(ctx, req, &resp); err != nil {
		return model.RateDatapoint{}, fmt.Errorf("kaiko: rate price %s: %w", ticker, err)
	}
	if len(resp.Data) == 0 {
		return model.RateDatapoint{}, fmt.Errorf("kaiko: %w: %s", ErrNoData, ticker)
	}

	latest := resp.Data[0]
	dp := model.RateDatapoint{
		Exchanges:     latest.Parameters.Exchanges,
		CalcWindowSec: latest.Parameters.CalcWindow,
	}
	if latest.Time != "" {
		if t, err := time.Parse(time.RFC3339, latest.Time); err == nil {
			dp.PublishedAt = t
		} else {
			c.logger.Warn("kaiko.market.bad_time",
				zap.String("ticker", ticker),
				zap.String("time", latest.Time))
		}
	}
	return dp, nil
}
