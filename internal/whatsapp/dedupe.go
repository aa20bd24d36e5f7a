package whatsapp

import (
	"context"
	"fmt"
	"time"

	"whatsapp_gateway/internal/scheduler"
	"whatsapp_gateway/platform/config"

	"github.com/redis/go-redis/v9"
)

const (
	dedupeKeyPrefix  = "whatsapp:sent:"
	defaultDedupeTTL = 24 * time.Hour
)

// Deduper remembers idempotency keys of outbound messages in Redis.
// A nil *Deduper claims every key.
type Deduper struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewDeduper connects to REDIS_URL.
func NewDeduper(cfg config.RedisConfig) (*Deduper, error) {
	if cfg.GetRedisURL() == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := scheduler.RedisOptions(cfg.GetRedisURL(), cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	return newDeduper(redis.NewClient(opt), cfg.GetWhatsAppDedupeTTL()), nil
}

func newDeduper(rdb *redis.Client, ttl time.Duration) *Deduper {
	if ttl <= 0 {
		ttl = defaultDedupeTTL
	}
	return &Deduper{rdb: rdb, ttl: ttl}
}

// Claim reports whether key was not seen within the TTL, recording it.
func (d *Deduper) Claim(ctx context.Context, key string) (bool, error) {
	if d == nil || key == "" {
		return true, nil
	}

	ok, err := d.rdb.SetNX(ctx, dedupeKeyPrefix+key, time.Now().Unix(), d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claim idempotency key: %w", err)
	}
	return ok, nil
}

// Release forgets key so a failed send can be retried with it.
func (d *Deduper) Release(ctx context.Context, key string) error {
	if d == nil || key == "" {
		return nil
	}

	if err := d.rdb.Del(ctx, dedupeKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("release idempotency key: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func (d *Deduper) Ping(ctx context.Context) error {
	if d == nil {
		return nil
	}
	return d.rdb.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (d *Deduper) Close() error {
	if d == nil {
		return nil
	}
	return d.rdb.Close()
}
