package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ConnectOptions controls how long NewClient keeps retrying the initial ping.
type ConnectOptions struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
	Logger          zerolog.Logger
}

// DefaultConnectOptions retries for up to 15 seconds.
func DefaultConnectOptions() ConnectOptions {
	return ConnectOptions{
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     2 * time.Second,
		MaxElapsedTime:  15 * time.Second,
		Logger:          zerolog.Nop(),
	}
}

// NewClient creates a new Redis client.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	return NewClientWithOptions(ctx, redisURL, DefaultConnectOptions())
}

// NewClientWithOptions creates a new Redis client, retrying the first ping
// with exponential backoff.
func NewClientWithOptions(ctx context.Context, redisURL string, opts ConnectOptions) (*redis.Client, error) {
	redisOpts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(redisOpts)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = opts.InitialInterval
	b.MaxInterval = opts.MaxInterval
	b.MaxElapsedTime = opts.MaxElapsedTime

	attempt := 0
	err = backoff.Retry(func() error {
		attempt++
		pingErr := client.Ping(ctx).Err()
		if pingErr != nil {
			opts.Logger.Warn().
				Err(pingErr).
				Int("attempt", attempt).
				Msg("redis ping failed, retrying")
		}
		return pingErr
	}, backoff.WithContext(b, ctx))
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
