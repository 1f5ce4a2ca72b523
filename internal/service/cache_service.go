package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"team-vote/internal/domain"
	"team-vote/pkg/redis"

	"go.uber.org/zap"
)

// CacheService wraps the optional Redis layer. A nil *CacheService or one
// built without a client is valid and turns every call into a no-op, so
// callers never branch on whether Redis is configured. Cache errors are
// logged and swallowed.
type CacheService struct {
	redis  *redis.Client
	logger *zap.Logger
}

// NewCacheService creates a new cache service. redisClient may be nil.
func NewCacheService(redisClient *redis.Client, logger *zap.Logger) *CacheService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{
		redis:  redisClient,
		logger: logger,
	}
}

// Enabled reports whether a Redis client is configured
func (c *CacheService) Enabled() bool {
	return c != nil && c.redis != nil
}

// TeamsVersion returns the current generation of the team listing. Writers
// bump it through InvalidateTeams, so a listing read from the store before a
// write can only ever be cached under a generation nobody reads any more.
// ok is false when the cache is disabled or unreachable.
func (c *CacheService) TeamsVersion(ctx context.Context) (int64, bool) {
	if !c.Enabled() {
		return 0, false
	}

	val, err := c.redis.Get(ctx, c.redis.KeyBuilder.KeyTeamsVersion())
	if err == redis.Nil {
		return 0, true
	}
	if err != nil {
		c.logger.Warn("Teams cache error, falling back to database", zap.Error(err))
		return 0, false
	}

	version, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		c.logger.Warn("Teams cache version corrupted, falling back to database", zap.Error(err))
		return 0, false
	}
	return version, true
}

// GetTeams returns the team listing cached for version
func (c *CacheService) GetTeams(ctx context.Context, version int64) ([]domain.Team, bool) {
	if !c.Enabled() {
		return nil, false
	}

	data, err := c.redis.Get(ctx, c.redis.KeyBuilder.KeyTeamsAll(version))
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Teams cache error, falling back to database", zap.Error(err))
		}
		return nil, false
	}

	var teams []domain.Team
	if err := json.Unmarshal([]byte(data), &teams); err != nil {
		c.logger.Warn("Teams cache corrupted, falling back to database", zap.Error(err))
		return nil, false
	}

	c.logger.Debug("Teams cache hit", zap.Int64("version", version), zap.Int("teams", len(teams)))
	return teams, true
}

// SetTeams caches the team listing read while version was current
func (c *CacheService) SetTeams(ctx context.Context, version int64, teams []domain.Team) {
	if !c.Enabled() {
		return
	}

	data, err := json.Marshal(teams)
	if err != nil {
		c.logger.Error("Failed to marshal teams for caching", zap.Error(err))
		return
	}

	if err := c.redis.Set(ctx, c.redis.KeyBuilder.KeyTeamsAll(version), string(data), redis.TTLTeams); err != nil {
		c.logger.Warn("Failed to cache teams", zap.Error(err))
	}
}

// InvalidateTeams moves the team listing to a new generation. Entries of
// older generations are never read again and expire on their own.
func (c *CacheService) InvalidateTeams(ctx context.Context) {
	if !c.Enabled() {
		return
	}

	if _, err := c.redis.Incr(ctx, c.redis.KeyBuilder.KeyTeamsVersion()); err != nil {
		c.logger.Error("Failed to invalidate teams cache", zap.Error(err))
	}
}

// SetTally stores the most recent live tally
func (c *CacheService) SetTally(ctx context.Context, tally []domain.TeamTally) {
	if !c.Enabled() {
		return
	}

	data, err := json.Marshal(tally)
	if err != nil {
		c.logger.Error("Failed to marshal tally for caching", zap.Error(err))
		return
	}

	if err := c.redis.Set(ctx, c.redis.KeyBuilder.KeyTally(), string(data), redis.TTLTally); err != nil {
		c.logger.Warn("Failed to cache tally", zap.Error(err))
	}
}

// GetTally returns the most recent cached live tally
func (c *CacheService) GetTally(ctx context.Context) ([]domain.TeamTally, bool) {
	if !c.Enabled() {
		return nil, false
	}

	data, err := c.redis.Get(ctx, c.redis.KeyBuilder.KeyTally())
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Tally cache error", zap.Error(err))
		}
		return nil, false
	}

	var tally []domain.TeamTally
	if err := json.Unmarshal([]byte(data), &tally); err != nil {
		c.logger.Warn("Tally cache corrupted", zap.Error(err))
		return nil, false
	}
	return tally, true
}

// HealthCheck performs a health check on the cache system
func (c *CacheService) HealthCheck(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}

	start := time.Now()
	err := c.redis.Health(ctx)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error("Cache health check failed",
			zap.Duration("duration", duration),
			zap.Error(err))
		return err
	}

	c.logger.Debug("Cache health check passed", zap.Duration("duration", duration))
	return nil
}
