package usecase

import (
	"context"
	"time"
)

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// Scheduler runs fn once after delay.
type Scheduler interface {
	Schedule(delay time.Duration, fn func())
}

// MetricsRecorder records domain counters.
type MetricsRecorder interface {
	TokenFormatted()
	TokenParsed(ok bool)
	ScheduleChecked(ok bool)
	ToastDispatched(eventType string)
	ToastQueueLength(n int)
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response. A nil
	// response releases the key.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// SystemClock is a Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// TimerScheduler is a Scheduler backed by time.AfterFunc.
type TimerScheduler struct{}

// Schedule starts a timer that calls fn after delay.
func (TimerScheduler) Schedule(delay time.Duration, fn func()) {
	time.AfterFunc(delay, fn)
}

type nopMetrics struct{}

func (nopMetrics) TokenFormatted() {}
func (nopMetrics) TokenParsed(bool) {}
func (nopMetrics) ScheduleChecked(bool) {}
func (nopMetrics) ToastDispatched(string) {}
func (nopMetrics) ToastQueueLength(int) {}
