package domain

import "time"

// ToastVariant selects the visual style of a toast.
type ToastVariant string

const (
	ToastVariantDefault     ToastVariant = "default"
	ToastVariantDestructive ToastVariant = "destructive"
	ToastVariantSuccess     ToastVariant = "success"
)

// Valid reports whether v is a known variant.
func (v ToastVariant) Valid() bool {
	switch v {
	case ToastVariantDefault, ToastVariantDestructive, ToastVariantSuccess:
		return true
	}
	return false
}

// Toast is a single on-screen notification.
type Toast struct {
	ID          string        `json:"id"`
	Title       string        `json:"title,omitempty"`
	Description string        `json:"description,omitempty"`
	Variant     ToastVariant  `json:"variant"`
	Duration    time.Duration `json:"duration"`
	Open        bool          `json:"open"`
}

// ToastPatch holds the fields an update may change. Nil fields are kept.
type ToastPatch struct {
	Title       *string
	Description *string
	Variant     *ToastVariant
	Duration    *time.Duration
	Open        *bool
}

// ToastAction is one of AddToast, UpdateToast, DismissToast or RemoveToast.
type ToastAction interface {
	toastAction()
}

// AddToast puts a toast at the head of the queue.
type AddToast struct {
	Toast Toast
}

// UpdateToast merges Patch into the toast with the given ID.
type UpdateToast struct {
	ID    string
	Patch ToastPatch
}

// DismissToast closes the toast with the given ID, or all toasts when ID is empty.
type DismissToast struct {
	ID string
}

// RemoveToast drops the toast with the given ID, or all toasts when ID is empty.
type RemoveToast struct {
	ID string
}

func (AddToast) toastAction()     {}
func (UpdateToast) toastAction()  {}
func (DismissToast) toastAction() {}
func (RemoveToast) toastAction()  {}

// ReduceToasts applies action to state and returns the new state. state is
// not modified. The result holds at most limit toasts, newest first.
func ReduceToasts(state []Toast, action ToastAction, limit int) []Toast {
	switch a := action.(type) {
	case AddToast:
		next := make([]Toast, 0, len(state)+1)
		next = append(next, a.Toast)
		next = append(next, state...)
		if limit > 0 && len(next) > limit {
			next = next[:limit]
		}
		return next

	case UpdateToast:
		next := make([]Toast, len(state))
		for i, t := range state {
			if t.ID == a.ID {
				t = a.Patch.apply(t)
			}
			next[i] = t
		}
		return next

	case DismissToast:
		next := make([]Toast, len(state))
		for i, t := range state {
			if a.ID == "" || t.ID == a.ID {
				t.Open = false
			}
			next[i] = t
		}
		return next

	case RemoveToast:
		if a.ID == "" {
			return []Toast{}
		}
		next := make([]Toast, 0, len(state))
		for _, t := range state {
			if t.ID != a.ID {
				next = append(next, t)
			}
		}
		return next

	default:
		panic("domain: unknown toast action")
	}
}

func (p ToastPatch) apply(t Toast) Toast {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Variant != nil {
		t.Variant = *p.Variant
	}
	if p.Duration != nil {
		t.Duration = *p.Duration
	}
	if p.Open != nil {
		t.Open = *p.Open
	}
	return t
}
