package eventpublisher

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/goleak"

	"github.com/iho/daodash/internal/adapter/idgen"
	"github.com/iho/daodash/internal/domain"
	"github.com/iho/daodash/internal/usecase"
	"github.com/iho/daodash/internal/usecase/mocks"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestStartRelaysQueueEvents(t *testing.T) {
	queue := newTestQueue()
	pub := newStubPublisher()
	rec := &stubRecorder{}
	ep := NewEventPublisher(Config{
		Source:    queue,
		Publisher: pub,
		Recorder:  rec,
		Logger:    zerolog.Nop(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := startPublisher(ctx, ep)
	waitSubscribed(t, queue)

	h, err := queue.Toast(usecase.ToastInput{Title: "vote cast"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = h.Dismiss()

	first := pub.next(t)
	second := pub.next(t)

	if first.Type != domain.EventTypeToastAdded || first.ToastID != h.ID {
		t.Fatalf("unexpected first event %+v", first)
	}
	if len(first.Toasts) != 1 || !first.Toasts[0].Open {
		t.Fatalf("expected snapshot with open toast, got %+v", first.Toasts)
	}
	if second.Type != domain.EventTypeToastDismissed {
		t.Fatalf("expected dismissed event, got %q", second.Type)
	}

	cancel()
	waitStopped(t, done)

	if rec.count() != 2 {
		t.Fatalf("expected 2 recorded publishes, got %d", rec.count())
	}
}

func TestStartContinuesOnPublishError(t *testing.T) {
	queue := newTestQueue()
	pub := newStubPublisher()
	pub.fail = map[string]error{domain.EventTypeToastAdded: errors.New("fail")}
	rec := &stubRecorder{}
	ep := NewEventPublisher(Config{
		Source:    queue,
		Publisher: pub,
		Recorder:  rec,
		Logger:    zerolog.Nop(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := startPublisher(ctx, ep)
	waitSubscribed(t, queue)

	_, _ = queue.Toast(usecase.ToastInput{Title: "a"})
	queue.Clear()

	event := pub.next(t)
	if event.Type != domain.EventTypeToastRemoved {
		t.Fatalf("expected removed event after failed add, got %q", event.Type)
	}

	cancel()
	waitStopped(t, done)

	if rec.failures() != 1 {
		t.Fatalf("expected 1 recorded failure, got %d", rec.failures())
	}
}

func TestStartStopsOnContextCancellation(t *testing.T) {
	queue := newTestQueue()
	ep := NewEventPublisher(Config{
		Source:    queue,
		Publisher: newStubPublisher(),
		Logger:    zerolog.Nop(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := startPublisher(ctx, ep)
	waitSubscribed(t, queue)

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("publisher did not stop after cancel")
	}

	if queue.listeners() != 0 {
		t.Fatalf("expected listener removed on shutdown, got %d", queue.listeners())
	}
}

func TestListenerDropsWhenBufferFull(t *testing.T) {
	queue := newTestQueue()
	pub := &blockingPublisher{entered: make(chan struct{}, 8), release: make(chan struct{})}
	ep := NewEventPublisher(Config{
		Source:     queue,
		Publisher:  pub,
		Logger:     zerolog.Nop(),
		BufferSize: 1,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := startPublisher(ctx, ep)
	waitSubscribed(t, queue)

	_, _ = queue.Toast(usecase.ToastInput{Title: "in flight"})
	select {
	case <-pub.entered:
	case <-time.After(time.Second):
		t.Fatal("publisher was not called")
	}

	_, _ = queue.Toast(usecase.ToastInput{Title: "buffered"})
	_, _ = queue.Toast(usecase.ToastInput{Title: "dropped"})

	if ep.Dropped() != 1 {
		t.Fatalf("expected 1 dropped event, got %d", ep.Dropped())
	}

	close(pub.release)
	cancel()
	waitStopped(t, done)
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogPublisher(zerolog.New(&buf))

	err := p.Publish(context.Background(), &domain.ToastEvent{
		Type:    domain.EventTypeToastAdded,
		ToastID: "t1",
		Toasts:  []domain.Toast{{ID: "t1", Title: "hi", Variant: domain.ToastVariantDefault, Open: true}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"event_type":"toast.added"`) || !strings.Contains(out, `"title":"hi"`) {
		t.Fatalf("unexpected log output %q", out)
	}
}

func startPublisher(ctx context.Context, ep *EventPublisher) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- ep.Start(ctx)
	}()
	return done
}

func waitSubscribed(t *testing.T, q *countingQueue) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for q.listeners() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("publisher did not subscribe")
		}
		time.Sleep(time.Millisecond)
	}
}

func waitStopped(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher did not stop after cancel")
	}
}

// countingQueue wraps a ToastQueue and tracks live subscriptions.
type countingQueue struct {
	*usecase.ToastQueue

	mu    sync.Mutex
	count int
}

func newTestQueue() *countingQueue {
	return &countingQueue{
		ToastQueue: usecase.NewToastQueue(usecase.ToastQueueConfig{
			IDGen:     idgen.NewSequence("t"),
			Scheduler: mocks.NewManualScheduler(),
			Logger:    zerolog.Nop(),
		}),
	}
}

func (q *countingQueue) Subscribe(fn usecase.ToastListener) func() {
	unsubscribe := q.ToastQueue.Subscribe(fn)

	q.mu.Lock()
	q.count++
	q.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			unsubscribe()
			q.mu.Lock()
			q.count--
			q.mu.Unlock()
		})
	}
}

func (q *countingQueue) listeners() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

type stubPublisher struct {
	events chan *domain.ToastEvent
	fail   map[string]error
}

func newStubPublisher() *stubPublisher {
	return &stubPublisher{events: make(chan *domain.ToastEvent, 16)}
}

func (s *stubPublisher) Publish(ctx context.Context, event *domain.ToastEvent) error {
	if err := s.fail[event.Type]; err != nil {
		return err
	}
	s.events <- event
	return nil
}

func (s *stubPublisher) next(t *testing.T) *domain.ToastEvent {
	t.Helper()
	select {
	case e := <-s.events:
		return e
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

type blockingPublisher struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingPublisher) Publish(ctx context.Context, event *domain.ToastEvent) error {
	b.entered <- struct{}{}
	<-b.release
	return nil
}

type stubRecorder struct {
	mu     sync.Mutex
	total  int
	failed int
}

func (r *stubRecorder) EventPublished(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.total++
	if err != nil {
		r.failed++
	}
}

func (r *stubRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}

func (r *stubRecorder) failures() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failed
}
