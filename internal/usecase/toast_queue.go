package usecase

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/daodash/internal/domain"
)

// ToastListener is called after every queue change with the action applied
// and a copy of the resulting queue.
type ToastListener func(action domain.ToastAction, toasts []domain.Toast)

// ToastQueueConfig holds dependencies for ToastQueue.
type ToastQueueConfig struct {
	Limit       int
	RemoveDelay time.Duration
	IDGen       IDGenerator
	Scheduler   Scheduler
	Metrics     MetricsRecorder
	Logger      zerolog.Logger
}

// ToastQueue owns the notification queue shown by the dashboard. One queue
// is built at start-up and handed to everything that raises notifications.
//
// Dispatches are serialized and listeners run inside that critical section,
// so a listener must not call back into the queue synchronously.
type ToastQueue struct {
	dispatchMu sync.Mutex

	mu             sync.RWMutex
	toasts         []domain.Toast
	listeners      []listenerEntry
	nextListenerID int
	pendingRemoval map[string]struct{}

	limit       int
	removeDelay time.Duration
	idGen       IDGenerator
	scheduler   Scheduler
	metrics     MetricsRecorder
	logger      zerolog.Logger
}

type listenerEntry struct {
	id int
	fn ToastListener
}

// NewToastQueue creates a new ToastQueue.
func NewToastQueue(cfg ToastQueueConfig) *ToastQueue {
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultToastLimit
	}
	if cfg.RemoveDelay <= 0 {
		cfg.RemoveDelay = DefaultToastRemoveDelay
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = TimerScheduler{}
	}
	if cfg.Metrics == nil {
		cfg.Metrics = nopMetrics{}
	}

	return &ToastQueue{
		toasts:         []domain.Toast{},
		pendingRemoval: make(map[string]struct{}),
		limit:          cfg.Limit,
		removeDelay:    cfg.RemoveDelay,
		idGen:          cfg.IDGen,
		scheduler:      cfg.Scheduler,
		metrics:        cfg.Metrics,
		logger:         cfg.Logger,
	}
}

// ToastInput represents input for raising a toast.
type ToastInput struct {
	Title       string
	Description string
	Variant     domain.ToastVariant
	Duration    time.Duration
}

// ToastHandle lets the caller of Toast change or close what it raised.
type ToastHandle struct {
	ID    string
	queue *ToastQueue
}

// Update patches the toast.
func (h ToastHandle) Update(patch domain.ToastPatch) error {
	return h.queue.Update(h.ID, patch)
}

// Dismiss closes the toast.
func (h ToastHandle) Dismiss() error {
	return h.queue.Dismiss(h.ID)
}

// Toast adds a new open toast at the head of the queue.
func (q *ToastQueue) Toast(input ToastInput) (ToastHandle, error) {
	if err := domain.ValidateToast(input.Title, input.Description, input.Variant); err != nil {
		return ToastHandle{}, err
	}

	variant := input.Variant
	if variant == "" {
		variant = domain.ToastVariantDefault
	}

	toast := domain.Toast{
		ID:          q.idGen.Generate(),
		Title:       input.Title,
		Description: input.Description,
		Variant:     variant,
		Duration:    input.Duration,
		Open:        true,
	}

	q.dispatch(domain.AddToast{Toast: toast})

	return ToastHandle{ID: toast.ID, queue: q}, nil
}

// Update merges patch into the toast with the given id.
func (q *ToastQueue) Update(id string, patch domain.ToastPatch) error {
	if patch.Variant != nil && !patch.Variant.Valid() {
		return domain.ErrInvalidToast
	}

	return q.dispatchExisting(id, domain.UpdateToast{ID: id, Patch: patch})
}

// Dismiss closes the toast with the given id and schedules its removal.
func (q *ToastQueue) Dismiss(id string) error {
	return q.dispatchExisting(id, domain.DismissToast{ID: id})
}

// DismissAll closes every toast and schedules their removal.
func (q *ToastQueue) DismissAll() {
	q.dispatch(domain.DismissToast{})
}

// Remove drops the toast with the given id immediately.
func (q *ToastQueue) Remove(id string) error {
	return q.dispatchExisting(id, domain.RemoveToast{ID: id})
}

// Clear drops every toast immediately.
func (q *ToastQueue) Clear() {
	q.dispatch(domain.RemoveToast{})
}

// Toasts returns a copy of the queue, newest first.
func (q *ToastQueue) Toasts() []domain.Toast {
	q.mu.RLock()
	defer q.mu.RUnlock()

	return append([]domain.Toast(nil), q.toasts...)
}

// Get returns the toast with the given id.
func (q *ToastQueue) Get(id string) (domain.Toast, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	for _, t := range q.toasts {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Toast{}, domain.ErrToastNotFound
}

// Subscribe registers fn for queue changes and returns a function that
// unregisters it.
func (q *ToastQueue) Subscribe(fn ToastListener) (unsubscribe func()) {
	q.mu.Lock()
	defer q.mu.Unlock()

	id := q.nextListenerID
	q.nextListenerID++
	q.listeners = append(q.listeners, listenerEntry{id: id, fn: fn})

	return func() {
		q.mu.Lock()
		defer q.mu.Unlock()

		for i, l := range q.listeners {
			if l.id == id {
				q.listeners = append(q.listeners[:i:i], q.listeners[i+1:]...)
				return
			}
		}
	}
}

func (q *ToastQueue) dispatchExisting(id string, action domain.ToastAction) error {
	q.dispatchMu.Lock()
	defer q.dispatchMu.Unlock()

	if _, err := q.Get(id); err != nil {
		return err
	}

	q.apply(action)
	return nil
}

func (q *ToastQueue) dispatch(action domain.ToastAction) {
	q.dispatchMu.Lock()
	defer q.dispatchMu.Unlock()

	q.apply(action)
}

// apply must be called with dispatchMu held.
func (q *ToastQueue) apply(action domain.ToastAction) {
	q.mu.Lock()
	q.toasts = domain.ReduceToasts(q.toasts, action, q.limit)
	if dismiss, ok := action.(domain.DismissToast); ok {
		q.scheduleRemovalLocked(dismiss.ID)
	}
	snapshot := append([]domain.Toast(nil), q.toasts...)
	listeners := append([]listenerEntry(nil), q.listeners...)
	q.mu.Unlock()

	eventType, toastID := domain.EventTypeOf(action)
	q.metrics.ToastDispatched(eventType)
	q.metrics.ToastQueueLength(len(snapshot))

	q.logger.Debug().
		Str("event_type", eventType).
		Str("toast_id", toastID).
		Int("queue_length", len(snapshot)).
		Msg("toast queue changed")

	for _, l := range listeners {
		l.fn(action, snapshot)
	}
}

// scheduleRemovalLocked starts one removal timer per dismissed toast. An
// empty id covers every toast currently queued. A toast that already has a
// timer keeps it.
func (q *ToastQueue) scheduleRemovalLocked(id string) {
	ids := []string{id}
	if id == "" {
		ids = ids[:0]
		for _, t := range q.toasts {
			ids = append(ids, t.ID)
		}
	}

	for _, toastID := range ids {
		if _, pending := q.pendingRemoval[toastID]; pending {
			continue
		}
		q.pendingRemoval[toastID] = struct{}{}

		toastID := toastID
		q.scheduler.Schedule(q.removeDelay, func() {
			q.dispatchMu.Lock()
			defer q.dispatchMu.Unlock()

			q.mu.Lock()
			delete(q.pendingRemoval, toastID)
			q.mu.Unlock()

			q.apply(domain.RemoveToast{ID: toastID})
		})
	}
}
