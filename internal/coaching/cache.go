package coaching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const summaryKeyPrefix = "coachstats::summary::"

// SummaryCache stores computed summaries in redis as JSON.
type SummaryCache struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewSummaryCache(redisClient *redis.Client, ttl time.Duration) *SummaryCache {
	return &SummaryCache{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

// Get reports whether key was found and decoded into out.
func (c *SummaryCache) Get(ctx context.Context, key string, out any) (bool, error) {
	payload, err := c.redisClient.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get [%s]: %w", key, err)
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return false, fmt.Errorf("unmarshal cached summary [%s]: %w", key, err)
	}
	return true, nil
}

func (c *SummaryCache) Set(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if err := c.redisClient.Set(ctx, key, string(payload), c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set [%s]: %w", key, err)
	}
	return nil
}

// LogbookKey depends on the calendar day of now, since window statistics do.
func LogbookKey(playerID string, now time.Time) string {
	return fmt.Sprintf("%slogbook::%s::%s", summaryKeyPrefix, playerID, now.Format("2006-01-02"))
}

func ProgressKey(playerID string) string {
	return fmt.Sprintf("%sprogress::%s", summaryKeyPrefix, playerID)
}
