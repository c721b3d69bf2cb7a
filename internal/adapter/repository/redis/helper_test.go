package redis

import (
	"sync"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
)

func newTestRedisClient(t *testing.T) (*redislib.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{
		Addr:       mr.Addr(),
		MaxRetries: -1,
	})

	return client, mr
}

type countingRecorder struct {
	mu   sync.Mutex
	ops  map[string]int
	errs map[string]int
}

func (r *countingRecorder) RedisOperation(operation string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ops == nil {
		r.ops = make(map[string]int)
		r.errs = make(map[string]int)
	}
	r.ops[operation]++
	if err != nil {
		r.errs[operation]++
	}
}
