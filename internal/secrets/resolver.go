package secrets

import (
	"context"

	"go.uber.org/zap"

	"github.com/Checker-Finance/rates-publisher/pkg/config"
	pkgsecrets "github.com/Checker-Finance/rates-publisher/pkg/secrets"
)

// Resolver resolves the market-data API key used by the per-ticker
// enrichment endpoint. The environment-supplied value always wins; AWS
// Secrets Manager is the fallback. An empty result is not an error: the
// pipeline proceeds with enrichment columns defaulted (the caller warns
// once).
type Resolver struct {
	logger   *zap.Logger
	provider pkgsecrets.Provider
	cache    *pkgsecrets.Cache[string]
}

// NewResolver creates a Resolver. provider may be nil when no secret store
// is configured.
func NewResolver(logger *zap.Logger, provider pkgsecrets.Provider, cache *pkgsecrets.Cache[string]) *Resolver {
	return &Resolver{
		logger:   logger,
		provider: provider,
		cache:    cache,
	}
}

// ResolveAPIKey returns the API key, or "" when no key can be resolved.
func (r *Resolver) ResolveAPIKey(ctx context.Context, cfg *config.Config) string {
	if cfg.MarketAPIKey != "" {
		return cfg.MarketAPIKey
	}
	if r.provider == nil || cfg.APIKeySecretName == "" {
		return ""
	}

	if key, ok := r.cache.Get(cfg.APIKeySecretName); ok {
		return key
	}

	secret, err := r.provider.GetSecret(ctx, cfg.APIKeySecretName)
	if err != nil {
		r.logger.Warn("secrets.api_key_fetch_failed",
			zap.String("secret", cfg.APIKeySecretName),
			zap.Error(err))
		return ""
	}

	key := secret["api_key"]
	if key == "" {
		r.logger.Warn("secrets.api_key_missing_in_secret",
			zap.String("secret", cfg.APIKeySecretName))
		return ""
	}

	r.cache.Put(cfg.APIKeySecretName, key)
	return key
}
