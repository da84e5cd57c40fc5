package liveness

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// Prober checks that a public detail page exists for an instrument before
// it is included in the output. The URL template's %s is replaced by the
// base ticker. Only a 200 counts as live; timeouts and errors exclude the
// instrument.
type Prober struct {
	logger   *zap.Logger
	client   *http.Client
	template string
}

// New creates a Prober for the given URL template.
func New(logger *zap.Logger, template string, timeout time.Duration) *Prober {
	return &Prober{
		logger:   logger,
		client:   &http.Client{Timeout: timeout},
		template: template,
	}
}

// Alive reports whether the detail page for baseTicker resolves with a 200.
func (p *Prober) Alive(ctx context.Context, baseTicker string) bool {
	target := fmt.Sprintf(p.template, url.PathEscape(baseTicker))

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		p.logger.Warn("liveness.bad_request", zap.String("ticker", baseTicker), zap.Error(err))
		return false
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Warn("liveness.probe_failed", zap.String("ticker", baseTicker), zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.logger.Info("liveness.not_found",
			zap.String("ticker", baseTicker),
			zap.Int("status", resp.StatusCode))
		return false
	}
	return true
}
