// Package universe resolves the eligible instrument pool for an index.
package universe

import (
	"context"
	"fmt"

	"github.com/niveshlabs/quantmomentum/internal/contracts"
	"github.com/niveshlabs/quantmomentum/internal/data"
	"github.com/niveshlabs/quantmomentum/internal/external/nse"
	"github.com/niveshlabs/quantmomentum/pkg/logger"
	"github.com/niveshlabs/quantmomentum/pkg/redis"
)

// Provider serves index constituent lists. Lookup order is cache, then
// database, then a live refresh from the exchange pages. Refreshed
// lists are persisted so later runs work offline.
type Provider struct {
	repo   *data.MembershipRepository
	client *nse.Client
	cache  *redis.Cache
	logger *logger.Logger
}

var _ contracts.MembershipProvider = (*Provider)(nil)

// NewProvider creates a new universe provider.
func NewProvider(repo *data.MembershipRepository, client *nse.Client, cache *redis.Cache, log *logger.Logger) *Provider {
	return &Provider{
		repo:   repo,
		client: client,
		cache:  cache,
		logger: log,
	}
}

// Constituents returns the member symbols of an index.
func (p *Provider) Constituents(ctx context.Context, index string) ([]string, error) {
	cacheKey := redis.MembershipKey(index)

	var cached []string
	if hit, err := p.cache.Get(ctx, cacheKey, &cached); err == nil && hit && len(cached) > 0 {
		return cached, nil
	}

	symbols, err := p.repo.Constituents(ctx, index)
	if err != nil {
		return nil, fmt.Errorf("membership lookup failed: %w", err)
	}

	if len(symbols) == 0 {
		symbols, err = p.Refresh(ctx, index)
		if err != nil {
			return nil, err
		}
	}

	if err := p.cache.Set(ctx, cacheKey, symbols, redis.TTLWeekly); err != nil {
		p.logger.WithError(err).Warn("Membership cache write failed")
	}

	return symbols, nil
}

// Refresh fetches the live constituent list, persists it and
// invalidates the cache.
func (p *Provider) Refresh(ctx context.Context, index string) ([]string, error) {
	symbols, err := p.client.FetchConstituents(ctx, index)
	if err != nil {
		return nil, fmt.Errorf("constituent refresh failed: %w", err)
	}

	if err := p.repo.Replace(ctx, index, symbols); err != nil {
		return nil, fmt.Errorf("membership save failed: %w", err)
	}

	if err := p.cache.Delete(ctx, redis.MembershipKey(index)); err != nil {
		p.logger.WithError(err).Warn("Membership cache invalidation failed")
	}

	p.logger.WithFields(map[string]interface{}{
		"index":   index,
		"symbols": len(symbols),
	}).Info("Universe refreshed")

	return symbols, nil
}
