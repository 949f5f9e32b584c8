// Package cache is the TTL cache layer for coin data: tokenomics snapshots
// on a short TTL and alias mappings (search term -> canonical coin ID) on a
// long one. Store failures after startup degrade to miss/no-op so a flaky
// store never takes scoring down with it.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"CoinPulse/internal/domain/models"
	"CoinPulse/internal/domain/repository"
	pkgcache "CoinPulse/pkg/cache"
	xlogger "CoinPulse/pkg/logger"
)

const (
	// KindTokenomics keys the short-TTL market snapshots.
	KindTokenomics = "tokenomics"
	// KindAlias keys the search-term to canonical-ID mappings.
	KindAlias = "alias"
)

// Service wraps a key-value store with domain key construction. Every key
// except alias keys is built from the canonical coin ID, so callers may pass
// raw symbols or names interchangeably and still hit the same entry.
type Service struct {
	store         pkgcache.Service
	stats         pkgcache.StatsReporter
	metrics       repository.Metrics
	logger        *xlogger.Logger
	tokenomicsTTL time.Duration
	aliasTTL      time.Duration
}

// NewService creates the cache layer on top of a connected store.
func NewService(store pkgcache.Service, m repository.Metrics, l *xlogger.Logger, tokenomicsTTL, aliasTTL time.Duration) *Service {
	if tokenomicsTTL <= 0 {
		tokenomicsTTL = 10 * time.Minute
	}
	if aliasTTL <= 0 {
		aliasTTL = 7 * 24 * time.Hour
	}
	s := &Service{
		store:         store,
		metrics:       m,
		logger:        l,
		tokenomicsTTL: tokenomicsTTL,
		aliasTTL:      aliasTTL,
	}
	if sr, ok := store.(pkgcache.StatsReporter); ok {
		s.stats = sr
	}
	return s
}

// AliasTTL returns the configured alias expiry.
func (s *Service) AliasTTL() time.Duration {
	return s.aliasTTL
}

// GetTokenomics returns the cached snapshot, or nil on miss. Store errors
// are logged and reported as a miss.
func (s *Service) GetTokenomics(ctx context.Context, coinID string) *models.Tokenomics {
	key := s.makeKey(ctx, KindTokenomics, coinID)

	var t models.Tokenomics
	err := s.store.Get(ctx, key, &t)
	switch {
	case err == nil:
		s.metrics.RecordCacheOp(KindTokenomics, "hit")
		return &t
	case errors.Is(err, pkgcache.ErrCacheMiss):
		s.metrics.RecordCacheOp(KindTokenomics, "miss")
		return nil
	default:
		s.logger.Warn("cache read failed, treating as miss",
			xlogger.String("coin_id", coinID), xlogger.Error(err))
		s.metrics.RecordCacheOp(KindTokenomics, "error")
		return nil
	}
}

// SetTokenomics caches a snapshot with the standard tokenomics TTL. Write
// failures are logged and dropped.
func (s *Service) SetTokenomics(ctx context.Context, coinID string, t *models.Tokenomics) {
	key := s.makeKey(ctx, KindTokenomics, coinID)

	if err := s.store.Set(ctx, key, t, s.tokenomicsTTL); err != nil {
		s.logger.Warn("cache write failed",
			xlogger.String("coin_id", coinID), xlogger.Error(err))
		s.metrics.RecordCacheOp(KindTokenomics, "error")
		return
	}
	s.logger.Debug("cached tokenomics",
		xlogger.String("coin_id", coinID), xlogger.Duration("ttl", s.tokenomicsTTL))
}

// GetAlias resolves a search term to its canonical coin ID.
func (s *Service) GetAlias(ctx context.Context, term string) (string, bool) {
	key := aliasKey(term)

	var id string
	err := s.store.Get(ctx, key, &id)
	switch {
	case err == nil && id != "":
		return id, true
	case err != nil && !errors.Is(err, pkgcache.ErrCacheMiss):
		s.logger.Warn("alias read failed",
			xlogger.String("term", term), xlogger.Error(err))
	}
	return "", false
}

// SetAlias stores one search-term mapping with the long alias TTL.
func (s *Service) SetAlias(ctx context.Context, term, canonicalID string) {
	if err := s.store.Set(ctx, aliasKey(term), canonicalID, s.aliasTTL); err != nil {
		s.logger.Warn("alias write failed",
			xlogger.String("term", term), xlogger.Error(err))
	}
}

// SetBulkAliases stores many mappings in one pipelined write sharing one
// TTL. Returns the number of aliases written.
func (s *Service) SetBulkAliases(ctx context.Context, aliases map[string]string) (int, error) {
	if len(aliases) == 0 {
		return 0, nil
	}

	values := make(map[string]interface{}, len(aliases))
	for term, id := range aliases {
		values[aliasKey(term)] = id
	}

	if err := s.store.MSet(ctx, values, s.aliasTTL); err != nil {
		return 0, fmt.Errorf("bulk alias write: %w", err)
	}
	return len(aliases), nil
}

// Delete removes one cache entry.
func (s *Service) Delete(ctx context.Context, kind, coinID string) {
	key := s.makeKey(ctx, kind, coinID)
	if err := s.store.Delete(ctx, key); err != nil {
		s.logger.Warn("cache delete failed",
			xlogger.String("key", key), xlogger.Error(err))
	}
}

// Stats reports store health and usage.
func (s *Service) Stats(ctx context.Context) *models.CacheStats {
	if s.stats == nil {
		return &models.CacheStats{Connected: true}
	}

	st, err := s.stats.Stats(ctx)
	if err != nil {
		return &models.CacheStats{Connected: false, Error: err.Error()}
	}
	return &models.CacheStats{
		Connected:        true,
		TotalKeys:        st.TotalKeys,
		UsedMemoryHuman:  st.UsedMemoryHuman,
		ConnectedClients: st.ConnectedClients,
	}
}

// makeKey builds "<kind>:<canonical id>". If no alias resolves, the
// lower-cased input is used verbatim so an unknown term still gets a
// usable, stable key.
func (s *Service) makeKey(ctx context.Context, kind, coinID string) string {
	if kind != KindAlias {
		if canonical, ok := s.GetAlias(ctx, coinID); ok {
			return fmt.Sprintf("%s:%s", kind, canonical)
		}
	}
	return fmt.Sprintf("%s:%s", kind, normalizeTerm(coinID))
}

func aliasKey(term string) string {
	return fmt.Sprintf("%s:%s", KindAlias, normalizeTerm(term))
}

func normalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}
