package domain

import "time"

// Event types
const (
	EventTypeToastAdded     = "toast.added"
	EventTypeToastUpdated   = "toast.updated"
	EventTypeToastDismissed = "toast.dismissed"
	EventTypeToastRemoved   = "toast.removed"
)

// ToastEvent describes one change to the toast queue.
type ToastEvent struct {
	Type       string    `json:"type"`
	ToastID    string    `json:"toast_id,omitempty"`
	Toasts     []Toast   `json:"toasts"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventTypeOf maps a queue action to its event type.
func EventTypeOf(action ToastAction) (eventType, toastID string) {
	switch a := action.(type) {
	case AddToast:
		return EventTypeToastAdded, a.Toast.ID
	case UpdateToast:
		return EventTypeToastUpdated, a.ID
	case DismissToast:
		return EventTypeToastDismissed, a.ID
	case RemoveToast:
		return EventTypeToastRemoved, a.ID
	default:
		panic("domain: unknown toast action")
	}
}
