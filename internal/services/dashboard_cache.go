package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/surya-platform/service-storefront/internal/models"
)

// snapshotCacheKey is the single cache slot for the dashboard snapshot.
const snapshotCacheKey = "storefront:dashboard:stats"

// DashboardCacheService caches the computed dashboard snapshot in Redis for
// a short TTL. The snapshot is ephemeral and fully recomputable, so cache
// failures degrade to recomputation, never to an error.
type DashboardCacheService struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// cachedSnapshot wraps the snapshot with the time it was stored.
type cachedSnapshot struct {
	Snapshot *models.DashboardSnapshot `json:"snapshot"`
	CachedAt time.Time                 `json:"cached_at"`
}

// NewDashboardCacheService creates a new DashboardCacheService
func NewDashboardCacheService(redisClient *redis.Client, ttl time.Duration, logger *zap.Logger) *DashboardCacheService {
	if ttl == 0 {
		ttl = 30 * time.Second // Default TTL
	}
	return &DashboardCacheService{
		redis:  redisClient,
		ttl:    ttl,
		logger: logger,
	}
}

// Get retrieves the cached snapshot, or nil on a miss.
func (s *DashboardCacheService) Get(ctx context.Context) (*models.DashboardSnapshot, error) {
	if s.redis == nil {
		return nil, nil // No cache available
	}

	data, err := s.redis.Get(ctx, snapshotCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		s.logger.Warn("failed to get snapshot from cache", zap.Error(err))
		return nil, nil
	}

	var cached cachedSnapshot
	if err := json.Unmarshal(data, &cached); err != nil {
		s.logger.Warn("failed to unmarshal cached snapshot", zap.Error(err))
		return nil, nil
	}

	s.logger.Debug("cache hit for dashboard snapshot", zap.Time("cached_at", cached.CachedAt))
	return cached.Snapshot, nil
}

// Set stores the snapshot with the configured TTL.
func (s *DashboardCacheService) Set(ctx context.Context, snapshot *models.DashboardSnapshot) error {
	if s.redis == nil {
		return nil // No cache available
	}

	data, err := json.Marshal(cachedSnapshot{Snapshot: snapshot, CachedAt: time.Now()})
	if err != nil {
		s.logger.Warn("failed to marshal snapshot for cache", zap.Error(err))
		return err
	}

	if err := s.redis.Set(ctx, snapshotCacheKey, data, s.ttl).Err(); err != nil {
		s.logger.Warn("failed to set snapshot in cache", zap.Error(err))
		return err
	}

	s.logger.Debug("cached dashboard snapshot", zap.Duration("ttl", s.ttl))
	return nil
}

// HandleStoreChanged implements events.StoreChangeHandler: any order, user
// or product change drops the cached snapshot so the next request
// recomputes fresh numbers.
func (s *DashboardCacheService) HandleStoreChanged(subject string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.Invalidate(ctx); err != nil {
		s.logger.Warn("failed to invalidate snapshot cache after store change",
			zap.String("subject", subject),
			zap.Error(err),
		)
	}
}

// Invalidate drops the cached snapshot.
func (s *DashboardCacheService) Invalidate(ctx context.Context) error {
	if s.redis == nil {
		return nil
	}

	if err := s.redis.Del(ctx, snapshotCacheKey).Err(); err != nil {
		s.logger.Warn("failed to invalidate snapshot cache", zap.Error(err))
		return err
	}

	s.logger.Debug("invalidated dashboard snapshot cache")
	return nil
}
