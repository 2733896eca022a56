package secrets

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Checker-Finance/tradingview-adapter/internal/tradingview"
	pkgsecrets "github.com/Checker-Finance/tradingview-adapter/pkg/secrets"
)

// Resolver resolves the OAuth client identity from a secrets Provider,
// caching the result locally to reduce API calls.
//
// Secret JSON format: {"client_id": "...", "client_secret": "..."}
type Resolver struct {
	logger   *zap.Logger
	provider pkgsecrets.Provider
	cache    *pkgsecrets.Cache[tradingview.OAuthClientConfig]
}

// NewResolver constructs an OAuth client config resolver.
func NewResolver(
	logger *zap.Logger,
	provider pkgsecrets.Provider,
	cache *pkgsecrets.Cache[tradingview.OAuthClientConfig],
) *Resolver {
	return &Resolver{
		logger:   logger,
		provider: provider,
		cache:    cache,
	}
}

// Resolve fetches or caches the OAuthClientConfig stored under secretName.
func (r *Resolver) Resolve(ctx context.Context, secretName string) (*tradingview.OAuthClientConfig, error) {
	if cfg, ok := r.cache.Get(secretName); ok {
		return &cfg, nil
	}

	secretMap, err := r.provider.GetSecret(ctx, secretName)
	if err != nil {
		r.logger.Warn("secrets.fetch_failed",
			zap.String("key", secretName),
			zap.Error(err))
		return nil, fmt.Errorf("resolve oauth client config: %w", err)
	}

	cfg, err := parseOAuthConfig(secretMap)
	if err != nil {
		return nil, fmt.Errorf("parse secret %q: %w", secretName, err)
	}

	r.cache.Put(secretName, cfg)

	r.logger.Info("secrets.oauth_config_resolved",
		zap.String("key", secretName))
	return &cfg, nil
}

// parseOAuthConfig extracts an OAuthClientConfig from the raw secret map.
func parseOAuthConfig(m map[string]string) (tradingview.OAuthClientConfig, error) {
	cfg := tradingview.OAuthClientConfig{
		ClientID:     m["client_id"],
		ClientSecret: m["client_secret"],
	}
	if cfg.ClientID == "" {
		return tradingview.OAuthClientConfig{}, fmt.Errorf("missing required field 'client_id'")
	}
	if cfg.ClientSecret == "" {
		return tradingview.OAuthClientConfig{}, fmt.Errorf("missing required field 'client_secret'")
	}
	return cfg, nil
}
