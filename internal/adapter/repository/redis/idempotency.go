package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const processingMarker = "processing"

// IdempotencyStore implements usecase.IdempotencyStore using Redis.
type IdempotencyStore struct {
	client   *redis.Client
	prefix   string
	recorder OpRecorder
}

// NewIdempotencyStore creates a new IdempotencyStore. recorder may be nil.
func NewIdempotencyStore(client *redis.Client, recorder OpRecorder) *IdempotencyStore {
	return &IdempotencyStore{
		client:   client,
		prefix:   "daodash:idempotency:",
		recorder: recorderOrNop(recorder),
	}
}

// CheckAndSet atomically checks if key exists, sets if not.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	fullKey := s.prefix + key

	value := response
	if value == nil {
		value = []byte(processingMarker)
	}

	set, err := s.client.SetNX(ctx, fullKey, value, ttl).Result()
	s.recorder.RedisOperation("setnx", err)
	if err != nil {
		return false, nil, err
	}
	if set {
		return false, nil, nil
	}

	// Another request got there first
	existing, err := s.client.Get(ctx, fullKey).Bytes()
	if errors.Is(err, redis.Nil) {
		// Expired between SETNX and GET; the caller may proceed.
		return false, nil, nil
	}
	s.recorder.RedisOperation("get", err)
	if err != nil {
		return false, nil, err
	}

	return true, existing, nil
}

// Update updates an existing idempotency key with the final response. A nil
// response releases the key so the request can be retried.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if response == nil {
		err := s.client.Del(ctx, s.prefix+key).Err()
		s.recorder.RedisOperation("del", err)
		return err
	}

	err := s.client.Set(ctx, s.prefix+key, response, ttl).Err()
	s.recorder.RedisOperation("set", err)
	return err
}

// IsProcessing reports whether a stored value is the in-flight placeholder.
func IsProcessing(value []byte) bool {
	return string(value) == processingMarker
}
