package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iho/daodash/internal/domain"
)

// ToastPublisher fans toast events out over a redis channel and keeps the
// latest queue snapshot under a key for clients that connect later.
type ToastPublisher struct {
	client      *redis.Client
	channel     string
	snapshotKey string
	recorder    OpRecorder
	retrier     *Retrier
}

// NewToastPublisher creates a new ToastPublisher. recorder may be nil.
func NewToastPublisher(client *redis.Client, channel string, recorder OpRecorder) *ToastPublisher {
	return &ToastPublisher{
		client:      client,
		channel:     channel,
		snapshotKey: channel + ":latest",
		recorder:    recorderOrNop(recorder),
		retrier:     NewRetrier(zerolog.Nop()),
	}
}

// WithRetrier replaces the retrier used for transient publish failures.
func (p *ToastPublisher) WithRetrier(r *Retrier) *ToastPublisher {
	p.retrier = r
	return p
}

// Publish stores the snapshot and publishes the event in one round trip.
func (p *ToastPublisher) Publish(ctx context.Context, event *domain.ToastEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode toast event: %w", err)
	}

	snapshot, err := json.Marshal(event.Toasts)
	if err != nil {
		return fmt.Errorf("failed to encode toast snapshot: %w", err)
	}

	return p.retrier.Retry(ctx, func() error {
		_, err := p.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, p.snapshotKey, snapshot, 0)
			pipe.Publish(ctx, p.channel, payload)
			return nil
		})
		p.recorder.RedisOperation("publish", err)
		return err
	})
}

// Latest returns the most recently published queue, or an empty queue if
// nothing was published yet.
func (p *ToastPublisher) Latest(ctx context.Context) ([]domain.Toast, error) {
	raw, err := p.client.Get(ctx, p.snapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return []domain.Toast{}, nil
	}
	p.recorder.RedisOperation("get", err)
	if err != nil {
		return nil, err
	}

	var toasts []domain.Toast
	if err := json.Unmarshal(raw, &toasts); err != nil {
		return nil, fmt.Errorf("failed to decode toast snapshot: %w", err)
	}

	return toasts, nil
}

// Channel returns the pub/sub channel events are published on.
func (p *ToastPublisher) Channel() string {
	return p.channel
}
