package domain

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func toastsWithIDs(ids ...string) []Toast {
	toasts := make([]Toast, len(ids))
	for i, id := range ids {
		toasts[i] = Toast{ID: id, Title: "t" + id, Variant: ToastVariantDefault, Open: true}
	}
	return toasts
}

func TestReduceToasts_Add(t *testing.T) {
	state := toastsWithIDs("2", "1")

	got := ReduceToasts(state, AddToast{Toast: Toast{ID: "3", Open: true}}, 5)

	want := append([]Toast{{ID: "3", Open: true}}, state...)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected state (-want +got):\n%s", diff)
	}

	if len(state) != 2 {
		t.Fatalf("expected input state to be left alone, got %d entries", len(state))
	}
}

func TestReduceToasts_AddDropsOldest(t *testing.T) {
	state := toastsWithIDs("5", "4", "3", "2", "1")

	got := ReduceToasts(state, AddToast{Toast: Toast{ID: "6"}}, 5)

	ids := make([]string, len(got))
	for i, toast := range got {
		ids[i] = toast.ID
	}
	if diff := cmp.Diff([]string{"6", "5", "4", "3", "2"}, ids); diff != "" {
		t.Fatalf("unexpected ids (-want +got):\n%s", diff)
	}
}

func TestReduceToasts_Update(t *testing.T) {
	state := toastsWithIDs("2", "1")
	title := "Vote submitted"
	variant := ToastVariantSuccess
	duration := 3 * time.Second

	got := ReduceToasts(state, UpdateToast{ID: "1", Patch: ToastPatch{
		Title:    &title,
		Variant:  &variant,
		Duration: &duration,
	}}, 5)

	want := []Toast{
		state[0],
		{ID: "1", Title: "Vote submitted", Variant: ToastVariantSuccess, Duration: 3 * time.Second, Open: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected state (-want +got):\n%s", diff)
	}
}

func TestReduceToasts_UpdateUnknownID(t *testing.T) {
	state := toastsWithIDs("1")
	title := "x"

	got := ReduceToasts(state, UpdateToast{ID: "missing", Patch: ToastPatch{Title: &title}}, 5)

	if diff := cmp.Diff(state, got); diff != "" {
		t.Fatalf("expected no change (-want +got):\n%s", diff)
	}
}

func TestReduceToasts_Dismiss(t *testing.T) {
	state := toastsWithIDs("2", "1")

	got := ReduceToasts(state, DismissToast{ID: "2"}, 5)
	if got[0].Open || !got[1].Open {
		t.Fatalf("expected only toast 2 closed, got %+v", got)
	}

	got = ReduceToasts(state, DismissToast{}, 5)
	for _, toast := range got {
		if toast.Open {
			t.Fatalf("expected all toasts closed, got %+v", got)
		}
	}
}

func TestReduceToasts_Remove(t *testing.T) {
	state := toastsWithIDs("3", "2", "1")

	got := ReduceToasts(state, RemoveToast{ID: "2"}, 5)
	if diff := cmp.Diff([]Toast{state[0], state[2]}, got); diff != "" {
		t.Fatalf("unexpected state (-want +got):\n%s", diff)
	}

	got = ReduceToasts(state, RemoveToast{}, 5)
	if len(got) != 0 {
		t.Fatalf("expected empty queue, got %+v", got)
	}
}

func TestEventTypeOf(t *testing.T) {
	tests := []struct {
		action   ToastAction
		wantType string
		wantID   string
	}{
		{AddToast{Toast: Toast{ID: "a"}}, EventTypeToastAdded, "a"},
		{UpdateToast{ID: "b"}, EventTypeToastUpdated, "b"},
		{DismissToast{}, EventTypeToastDismissed, ""},
		{RemoveToast{ID: "c"}, EventTypeToastRemoved, "c"},
	}

	for _, tt := range tests {
		gotType, gotID := EventTypeOf(tt.action)
		if gotType != tt.wantType || gotID != tt.wantID {
			t.Fatalf("expected (%s, %s), got (%s, %s)", tt.wantType, tt.wantID, gotType, gotID)
		}
	}
}
