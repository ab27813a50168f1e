// Package service serves market statistics with a Redis snapshot cache in
// front of the aggregation. Cache failures fall through to a live compute.
package service

import (
	"context"
	"encoding/json"
	"time"

	"broker_portal_backend/internal/market/aggregate"
	"broker_portal_backend/internal/market/repository"
	"broker_portal_backend/platform/apperr"
	"broker_portal_backend/platform/logger"
	ptext "broker_portal_backend/platform/text"

	"github.com/redis/go-redis/v9"
)

type Service struct {
	repo  *repository.Repository
	cache *redis.Client
	ttl   time.Duration
	log   *logger.Logger
}

// New builds the service. The cache client may be nil; every request then
// aggregates live.
func New(repo *repository.Repository, cache *redis.Client, ttl time.Duration, log *logger.Logger) *Service {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Service{repo: repo, cache: cache, ttl: ttl, log: log}
}

var validDimensions = map[aggregate.Dimension]bool{
	aggregate.ByState:        true,
	aggregate.ByCity:         true,
	aggregate.ByNeighborhood: true,
	aggregate.ByPropertyType: true,
}

// Stats returns grouped market metrics for a dimension, optionally scoped to
// one city (the usual call for neighborhood breakdowns).
func (s *Service) Stats(ctx context.Context, dim aggregate.Dimension, city string) ([]aggregate.Group, error) {
	const op = "market.Stats"
	if !validDimensions[dim] {
		return nil, apperr.Validation("unknown grouping dimension").WithOp(op)
	}

	key := cacheKey(dim, city)
	if cached, ok := s.fromCache(ctx, key); ok {
		return cached, nil
	}

	rows, err := s.repo.ActiveRows(ctx, city)
	if err != nil {
		s.log.DatabaseError(op, err)
		return nil, apperr.Wrap(apperr.KindInternal, "could not load market rows", err).WithOp(op)
	}
	groups := aggregate.Aggregate(rows, dim)

	s.toCache(ctx, key, groups)
	return groups, nil
}

// Refresh recomputes and caches the snapshots the dashboard reads most: the
// city-level and type-level views. The scheduler calls this periodically so
// user requests mostly hit warm cache.
func (s *Service) Refresh(ctx context.Context) error {
	const op = "market.Refresh"
	for _, dim := range []aggregate.Dimension{aggregate.ByCity, aggregate.ByPropertyType, aggregate.ByState} {
		rows, err := s.repo.ActiveRows(ctx, "")
		if err != nil {
			s.log.DatabaseError(op, err)
			return apperr.Wrap(apperr.KindInternal, "could not refresh market snapshot", err).WithOp(op)
		}
		s.toCache(ctx, cacheKey(dim, ""), aggregate.Aggregate(rows, dim))
	}
	return nil
}

func cacheKey(dim aggregate.Dimension, city string) string {
	key := "market:stats:" + string(dim)
	if city != "" {
		key += ":" + ptext.FoldLower(city)
	}
	return key
}

func (s *Service) fromCache(ctx context.Context, key string) ([]aggregate.Group, bool) {
	if s.cache == nil {
		return nil, false
	}
	payload, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warn("market cache read failed", "error", err, "key", key)
		}
		return nil, false
	}
	var groups []aggregate.Group
	if err := json.Unmarshal(payload, &groups); err != nil {
		s.log.Warn("market cache decode failed", "error", err, "key", key)
		return nil, false
	}
	return groups, true
}

func (s *Service) toCache(ctx context.Context, key string, groups []aggregate.Group) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(groups)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		s.log.Warn("market cache write failed", "error", err, "key", key)
	}
}
