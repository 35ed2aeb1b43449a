package ratelimit

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "rl:http:"

// RedisLimiter counts requests per identifier in Redis so that every replica
// shares the same budget.
type RedisLimiter struct {
	client *redis.Client
	rule   Rule
}

func NewRedisLimiter(client *redis.Client, rule Rule) *RedisLimiter {
	return &RedisLimiter{client: client, rule: rule}
}

// Allow increments the identifier's counter and sets the expiry on first
// access. On Redis errors it fails open: the request is allowed and the error
// is returned for the caller to log.
func (l *RedisLimiter) Allow(ctx context.Context, identifier string) (bool, error) {
	key := redisKeyPrefix + identifier

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return true, fmt.Errorf("redis INCR %s: %w", key, err)
	}

	if count == 1 {
		if err := l.client.Expire(ctx, key, l.rule.Window).Err(); err != nil {
			// Without a TTL the key would throttle the identifier forever.
			l.client.Del(ctx, key)
			return true, fmt.Errorf("redis EXPIRE %s: %w", key, err)
		}
	}

	return int(count) <= l.rule.Limit, nil
}

// Remaining returns how many requests identifier has left in the current
// window.
func (l *RedisLimiter) Remaining(ctx context.Context, identifier string) (int, error) {
	count, err := l.client.Get(ctx, redisKeyPrefix+identifier).Int()
	if err == redis.Nil {
		return l.rule.Limit, nil
	}
	if err != nil {
		return l.rule.Limit, err
	}

	remaining := l.rule.Limit - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}
