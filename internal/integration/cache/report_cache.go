// Package cache implements Redis-backed caching for derived read models.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// reportTTL bounds staleness for entries that survive a missed
// invalidation, for example when Redis was unreachable during a write.
const reportTTL = 10 * time.Minute

// NewRedisClient creates a Redis client from a redis:// URL. The client
// connects lazily, so a down Redis surfaces as per-operation errors
// rather than a startup failure.
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

// reportCache implements adapter.ReportCache on Redis. Entries are keyed
// by a per-user generation counter; invalidation bumps the counter so
// every older entry becomes unreachable and ages out via TTL.
type reportCache struct {
	client *redis.Client
}

// NewReportCache creates a new report cache instance.
func NewReportCache(client *redis.Client) adapter.ReportCache {
	return &reportCache{
		client: client,
	}
}

// GetMonthlyReport returns the cached payload for the user's report.
func (c *reportCache) GetMonthlyReport(ctx context.Context, userID uuid.UUID, year, month int) ([]byte, bool, error) {
	generation, err := c.generation(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	payload, err := c.client.Get(ctx, reportKey(userID, generation, year, month)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached report: %w", err)
	}
	return payload, true, nil
}

// SetMonthlyReport stores the payload under the user's current generation.
func (c *reportCache) SetMonthlyReport(ctx context.Context, userID uuid.UUID, year, month int, payload []byte) error {
	generation, err := c.generation(ctx, userID)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, reportKey(userID, generation, year, month), payload, reportTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache report: %w", err)
	}
	return nil
}

// InvalidateUserReports bumps the user's generation counter.
func (c *reportCache) InvalidateUserReports(ctx context.Context, userID uuid.UUID) error {
	if err := c.client.Incr(ctx, generationKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached reports: %w", err)
	}
	return nil
}

// generation reads the user's current generation counter, defaulting to
// zero for users who have never had an invalidation.
func (c *reportCache) generation(ctx context.Context, userID uuid.UUID) (int64, error) {
	generation, err := c.client.Get(ctx, generationKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read cache generation: %w", err)
	}
	return generation, nil
}

func generationKey(userID uuid.UUID) string {
	return fmt.Sprintf("reports:gen:%s", userID)
}

func reportKey(userID uuid.UUID, generation int64, year, month int) string {
	return fmt.Sprintf("reports:%s:%d:%04d-%02d", userID, generation, year, month)
}
