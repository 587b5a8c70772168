package adapter

import (
	"context"
	"time"

	"flashgen/internal/cache"
	"flashgen/internal/domain"

	"go.uber.org/zap"
)

// CachedInvoker wraps a ModelInvoker with a response cache keyed on the
// model name and prompt pair, so re-processing the same chunk does not
// repeat the LLM call. Cache failures degrade to a normal invocation.
type CachedInvoker struct {
	next   domain.ModelInvoker
	cache  domain.Cache
	model  string
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedInvoker creates a caching wrapper around next. model is
// included in the cache key so switching models never serves stale
// responses.
func NewCachedInvoker(next domain.ModelInvoker, cacheAdapter domain.Cache, model string, ttl time.Duration, logger *zap.Logger) *CachedInvoker {
	return &CachedInvoker{
		next:   next,
		cache:  cacheAdapter,
		model:  model,
		ttl:    ttl,
		logger: logger,
	}
}

// Invoke returns the cached raw response when present, otherwise
// delegates and stores the result.
func (c *CachedInvoker) Invoke(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	key := cache.GenerateCacheKey("llm", "response", cache.HashParts(c.model, systemPrompt, userPrompt))

	cached, err := c.cache.Get(ctx, key)
	if err == nil {
		c.logger.Debug("LLM response cache hit", zap.String("key", key))
		return cached, nil
	}
	if err != domain.ErrCacheMiss {
		c.logger.Warn("LLM response cache lookup failed", zap.String("key", key), zap.Error(err))
	}

	raw, err := c.next.Invoke(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", err
	}

	if setErr := c.cache.Set(ctx, key, raw, c.ttl); setErr != nil {
		c.logger.Warn("Failed to store LLM response in cache", zap.String("key", key), zap.Error(setErr))
	}
	return raw, nil
}

var _ domain.ModelInvoker = (*CachedInvoker)(nil)
