// Package veccache provides term vectors for card content, with an optional
// caching decorator backed by a key-value store. Caching per-card vectors is
// purely an optimization: the compute source is the source of truth and the
// cache is invalidated on insert and reseed.
package veccache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/finlit-labs/expcards/internal/domain"
	"github.com/finlit-labs/expcards/internal/kv"
	"github.com/finlit-labs/expcards/internal/match"
)

const cacheKeyPrefix = "expcards:vec:"

// Source supplies the term vector of a card's content and invalidates stale
// entries when the store changes.
type Source interface {
	VectorFor(ctx context.Context, store string, c domain.Card) (match.TermVector, error)
	Invalidate(ctx context.Context, store string, id int64) error
}

// Compute is the pure source: it tokenizes the card content on every call.
type Compute struct{}

// VectorFor builds the content vector directly.
func (Compute) VectorFor(_ context.Context, _ string, c domain.Card) (match.TermVector, error) {
	return match.VectorOf(match.Tokenize(c.Content)), nil
}

// Invalidate is a no-op: nothing is cached.
func (Compute) Invalidate(context.Context, string, int64) error { return nil }

// store is the subset of kv.Store the cache needs.
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// Cached decorates a Source with a key-value cache keyed by store name and
// card id. Cache failures degrade to computing the vector, never to request
// failures.
type Cached struct {
	inner      Source
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner Source,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *Cached {
	return &Cached{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// VectorFor returns a cached vector or computes and caches it.
func (c *Cached) VectorFor(ctx context.Context, storeName string, card domain.Card) (match.TermVector, error) {
	key := cacheKey(storeName, card.ID)

	if vec, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return vec, nil
	}
	c.incCache("miss")

	vec, err := c.inner.VectorFor(ctx, storeName, card)
	if err != nil {
		return nil, fmt.Errorf("compute vector: %w", err)
	}

	c.putToCache(ctx, key, vec)
	return vec, nil
}

// Invalidate removes the cached vector for a card.
func (c *Cached) Invalidate(ctx context.Context, storeName string, id int64) error {
	if err := c.store.Del(ctx, cacheKey(storeName, id)); err != nil {
		return fmt.Errorf("invalidate vector cache: %w", err)
	}
	return c.inner.Invalidate(ctx, storeName, id)
}

func (c *Cached) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *Cached) getFromCache(ctx context.Context, key string) (match.TermVector, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kv.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached vector", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	var vec match.TermVector
	if err := json.Unmarshal(data, &vec); err != nil {
		c.logger.Warn("Failed to parse cached vector", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return vec, true
}

func (c *Cached) putToCache(ctx context.Context, key string, vec match.TermVector) {
	data, err := json.Marshal(vec)
	if err != nil {
		c.logger.Warn("Failed to encode vector", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache vector", zap.String("key", key), zap.Error(err))
	}
}

func cacheKey(storeName string, id int64) string {
	return cacheKeyPrefix + storeName + ":" + strconv.FormatInt(id, 10)
}
