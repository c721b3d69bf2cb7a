package handler

import (
	"net/http"
	"time"

	"github.com/iho/daodash/internal/adapter/http/dto"
	"github.com/iho/daodash/internal/domain"
	"github.com/iho/daodash/internal/usecase"
)

// ScheduleService defines the behavior needed by ScheduleHandler.
type ScheduleService interface {
	Timezones() []string
	OffsetDifference(a, b string) (int, error)
	ResolveDate(date, clock, timezone string) (time.Time, error)
	CheckGap(input usecase.GapInput) (bool, error)
	ValidateWindow(window domain.ProposalWindow) (*usecase.ValidatedWindow, error)
	DateAhead(durationSeconds int64, startDate string) (string, error)
	Countdown(end time.Time) string
}

// ScheduleHandler handles timezone and proposal timing requests.
type ScheduleHandler struct {
	scheduleUC ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleUC ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleUC: scheduleUC}
}

// Timezones lists selectable UTC offsets.
func (h *ScheduleHandler) Timezones(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.TimezonesResponse{Timezones: h.scheduleUC.Timezones()})
}

// Difference returns offset(a) - offset(b) in minutes.
func (h *ScheduleHandler) Difference(w http.ResponseWriter, r *http.Request) {
	a := r.URL.Query().Get("a")
	b := r.URL.Query().Get("b")
	if a == "" || b == "" {
		writeError(w, http.StatusBadRequest, "missing timezone", "both a and b are required")
		return
	}

	minutes, err := h.scheduleUC.OffsetDifference(a, b)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compare timezones", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.OffsetDifferenceResponse{A: a, B: b, Minutes: minutes})
}

// ResolveDate turns form input into an absolute instant.
func (h *ScheduleHandler) ResolveDate(w http.ResponseWriter, r *http.Request) {
	var req dto.ResolveDateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	instant, err := h.scheduleUC.ResolveDate(req.Date, req.Time, req.Timezone)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to resolve date", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ResolvedDateFromTime(instant))
}

// CheckGap reports whether two wall-clock times are far enough apart.
func (h *ScheduleHandler) CheckGap(w http.ResponseWriter, r *http.Request) {
	var req dto.GapRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	enough, err := h.scheduleUC.CheckGap(req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to check gap", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.GapResponse{Enough: enough})
}

// ValidateWindow checks a proposal's voting period.
func (h *ScheduleHandler) ValidateWindow(w http.ResponseWriter, r *http.Request) {
	var req dto.ProposalWindowRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	window, err := h.scheduleUC.ValidateWindow(req.ToDomain())
	if err != nil {
		writeError(w, mapDomainError(err), "invalid proposal window", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ProposalWindowFromUseCase(window))
}

// DateAhead returns the date a duration after a start date.
func (h *ScheduleHandler) DateAhead(w http.ResponseWriter, r *http.Request) {
	duration, err := parseInt64Query(r, "duration", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid duration", err.Error())
		return
	}

	date, err := h.scheduleUC.DateAhead(duration, r.URL.Query().Get("start"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute date", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DateAheadResponse{Date: date})
}

// Countdown describes how far an RFC 3339 instant is from now.
func (h *ScheduleHandler) Countdown(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("end")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "missing end", "")
		return
	}

	end, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CountdownResponse{End: end, Text: h.scheduleUC.Countdown(end)})
}
