package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/daodash/internal/adapter/http/dto"
	"github.com/iho/daodash/internal/domain"
	"github.com/iho/daodash/internal/usecase"
)

// ToastService defines the behavior needed by ToastHandler.
type ToastService interface {
	Toast(input usecase.ToastInput) (usecase.ToastHandle, error)
	Toasts() []domain.Toast
	Get(id string) (domain.Toast, error)
	Update(id string, patch domain.ToastPatch) error
	Dismiss(id string) error
	DismissAll()
	Remove(id string) error
	Clear()
}

// ToastHandler handles notification queue requests.
type ToastHandler struct {
	queue ToastService
}

// NewToastHandler creates a new ToastHandler.
func NewToastHandler(queue ToastService) *ToastHandler {
	return &ToastHandler{queue: queue}
}

// List returns the queue, newest first.
func (h *ToastHandler) List(w http.ResponseWriter, r *http.Request) {
	toasts := h.queue.Toasts()

	writeJSON(w, http.StatusOK, dto.ListToastsResponse{
		Toasts: dto.ToastsFromDomain(toasts),
		Total:  int64(len(toasts)),
	})
}

// Create raises a new toast.
func (h *ToastHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateToastRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	handle, err := h.queue.Toast(req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create toast", err.Error())
		return
	}

	h.writeToast(w, http.StatusCreated, handle.ID)
}

// Get returns one toast.
func (h *ToastHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.writeToast(w, http.StatusOK, chi.URLParam(r, "id"))
}

// Update patches a toast.
func (h *ToastHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateToastRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.queue.Update(id, req.ToPatch()); err != nil {
		writeError(w, mapDomainError(err), "failed to update toast", err.Error())
		return
	}

	h.writeToast(w, http.StatusOK, id)
}

// Dismiss closes a toast and schedules its removal.
func (h *ToastHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.queue.Dismiss(id); err != nil {
		writeError(w, mapDomainError(err), "failed to dismiss toast", err.Error())
		return
	}

	h.writeToast(w, http.StatusOK, id)
}

// DismissAll closes every toast.
func (h *ToastHandler) DismissAll(w http.ResponseWriter, r *http.Request) {
	h.queue.DismissAll()
	h.List(w, r)
}

// Remove drops a toast immediately.
func (h *ToastHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.queue.Remove(chi.URLParam(r, "id")); err != nil {
		writeError(w, mapDomainError(err), "failed to remove toast", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Clear drops every toast immediately.
func (h *ToastHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.queue.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (h *ToastHandler) writeToast(w http.ResponseWriter, status int, id string) {
	toast, err := h.queue.Get(id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get toast", err.Error())
		return
	}

	writeJSON(w, status, dto.ToastFromDomain(toast))
}
