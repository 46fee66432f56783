package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v7"

	"advancedstats/database"
)

// Cache keeps monthly ticket counts between page loads, keyed by event ID.
// A nil slice with a nil error is a miss.
type Cache interface {
	MonthlyCounts(eventID int64) ([]database.MonthlyCount, error)
	StoreMonthlyCounts(eventID int64, counts []database.MonthlyCount) error
	Invalidate(eventID int64) error
}

type NopCache struct{}

func (NopCache) MonthlyCounts(int64) ([]database.MonthlyCount, error)    { return nil, nil }
func (NopCache) StoreMonthlyCounts(int64, []database.MonthlyCount) error { return nil }
func (NopCache) Invalidate(int64) error                                  { return nil }

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(addr string, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping().Err(); err != nil {
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return &RedisCache{client: client, ttl: ttl}, nil
}

// slugs are only unique per organizer, so entries are keyed by event ID
func monthlyCountsKey(eventID int64) string {
	return "advanced_stats:event:" + strconv.FormatInt(eventID, 10) + ":monthly_tickets"
}

func (c *RedisCache) MonthlyCounts(eventID int64) ([]database.MonthlyCount, error) {
	raw, err := c.client.Get(monthlyCountsKey(eventID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	counts := []database.MonthlyCount{}
	if err := json.Unmarshal(raw, &counts); err != nil {
		return nil, fmt.Errorf("decode cached counts: %w", err)
	}
	return counts, nil
}

func (c *RedisCache) StoreMonthlyCounts(eventID int64, counts []database.MonthlyCount) error {
	if counts == nil {
		counts = []database.MonthlyCount{}
	}
	raw, err := json.Marshal(counts)
	if err != nil {
		return err
	}
	return c.client.Set(monthlyCountsKey(eventID), raw, c.ttl).Err()
}

func (c *RedisCache) Invalidate(eventID int64) error {
	return c.client.Del(monthlyCountsKey(eventID)).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
