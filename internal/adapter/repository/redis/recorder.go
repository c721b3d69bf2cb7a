package redis

// OpRecorder receives the outcome of every redis round trip.
type OpRecorder interface {
	RedisOperation(operation string, err error)
}

type nopRecorder struct{}

func (nopRecorder) RedisOperation(string, error) {}

func recorderOrNop(r OpRecorder) OpRecorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}
