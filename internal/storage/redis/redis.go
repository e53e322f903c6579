// Package redis keeps the token denylist in Redis so every API instance sees a
// logout.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"shiftease/internal/config"
)

const keyPrefix = "shiftease:revoked:"

type Denylist struct {
	client *redis.Client
	now    func() time.Time
}

// New connects and pings, retrying up to cfg.MaxRetries times.
func New(ctx context.Context, cfg config.Redis) (*Denylist, error) {
	const op = "storage.redis.New"

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	var lastErr error
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				client.Close()
				return nil, fmt.Errorf("%s: %w", op, ctx.Err())
			case <-time.After(cfg.RetryInterval):
			}
		}

		if lastErr = client.Ping(ctx).Err(); lastErr == nil {
			return &Denylist{client: client, now: time.Now}, nil
		}
	}

	client.Close()
	return nil, fmt.Errorf("%s: failed to connect after %d attempts: %w", op, cfg.MaxRetries+1, lastErr)
}

func (d *Denylist) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	const op = "storage.redis.Revoke"

	ttl := until.Sub(d.now())
	if ttl <= 0 {
		return nil
	}

	if err := d.client.Set(ctx, keyPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (d *Denylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	const op = "storage.redis.IsRevoked"

	err := d.client.Get(ctx, keyPrefix+tokenID).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, redis.Nil):
		return false, nil
	default:
		return false, fmt.Errorf("%s: %w", op, err)
	}
}

func (d *Denylist) Close() error {
	return d.client.Close()
}
