package eventpublisher

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/daodash/internal/domain"
	"github.com/iho/daodash/internal/usecase"
)

// EventPublisher relays toast queue changes to an external Publisher.
type EventPublisher struct {
	source    ToastSource
	publisher Publisher
	recorder  Recorder
	logger    zerolog.Logger
	buffer    int
	now       func() time.Time

	dropped atomic.Int64
}

// ToastSource is the part of usecase.ToastQueue the relay needs.
type ToastSource interface {
	Subscribe(fn usecase.ToastListener) (unsubscribe func())
}

// Publisher defines the interface for publishing events to external systems.
type Publisher interface {
	Publish(ctx context.Context, event *domain.ToastEvent) error
}

// Recorder receives the outcome of every publish.
type Recorder interface {
	EventPublished(err error)
}

// Config for EventPublisher.
type Config struct {
	Source     ToastSource
	Publisher  Publisher
	Recorder   Recorder
	Logger     zerolog.Logger
	BufferSize int // Events held while the publisher is busy
	Now        func() time.Time
}

// NewEventPublisher creates a new EventPublisher.
func NewEventPublisher(cfg Config) *EventPublisher {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 256
	}
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}

	return &EventPublisher{
		source:    cfg.Source,
		publisher: cfg.Publisher,
		recorder:  cfg.Recorder,
		logger:    cfg.Logger,
		buffer:    cfg.BufferSize,
		now:       cfg.Now,
	}
}

// Start subscribes to the toast queue and publishes its events.
// It runs continuously until the context is cancelled.
func (ep *EventPublisher) Start(ctx context.Context) error {
	events := make(chan *domain.ToastEvent, ep.buffer)

	// The listener runs inside the queue's dispatch lock, so it never blocks.
	unsubscribe := ep.source.Subscribe(func(action domain.ToastAction, toasts []domain.Toast) {
		eventType, toastID := domain.EventTypeOf(action)
		event := &domain.ToastEvent{
			Type:       eventType,
			ToastID:    toastID,
			Toasts:     toasts,
			OccurredAt: ep.now(),
		}

		select {
		case events <- event:
		default:
			ep.dropped.Add(1)
			ep.logger.Warn().
				Str("event_type", eventType).
				Str("toast_id", toastID).
				Msg("event buffer full, dropping toast event")
		}
	})
	defer unsubscribe()

	ep.logger.Info().Int("buffer_size", ep.buffer).Msg("event publisher started")

	for {
		select {
		case <-ctx.Done():
			ep.logger.Info().Msg("event publisher shutting down")
			return ctx.Err()
		case event := <-events:
			ep.publishEvent(ctx, event)
		}
	}
}

// Dropped returns the number of events discarded because the buffer was full.
func (ep *EventPublisher) Dropped() int64 {
	return ep.dropped.Load()
}

// publishEvent publishes a single event. Failures are logged and skipped.
func (ep *EventPublisher) publishEvent(ctx context.Context, event *domain.ToastEvent) {
	err := ep.publisher.Publish(ctx, event)
	if ep.recorder != nil {
		ep.recorder.EventPublished(err)
	}

	if err != nil {
		ep.logger.Error().
			Err(err).
			Str("event_type", event.Type).
			Str("toast_id", event.ToastID).
			Msg("failed to publish event")
		return
	}

	ep.logger.Debug().
		Str("event_type", event.Type).
		Str("toast_id", event.ToastID).
		Msg("event published")
}

// LogPublisher is a simple publisher that logs events.
type LogPublisher struct {
	logger zerolog.Logger
}

// NewLogPublisher creates a new LogPublisher.
func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs the event.
func (p *LogPublisher) Publish(ctx context.Context, event *domain.ToastEvent) error {
	payload, err := json.Marshal(event.Toasts)
	if err != nil {
		return err
	}

	p.logger.Info().
		Str("event_type", event.Type).
		Str("toast_id", event.ToastID).
		RawJSON("toasts", payload).
		Msg("toast event")

	return nil
}
