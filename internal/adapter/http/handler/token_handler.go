package handler

import (
	"net/http"

	"github.com/iho/daodash/internal/adapter/http/dto"
	"github.com/iho/daodash/internal/usecase"
)

// TokenService defines the behavior needed by TokenHandler.
type TokenService interface {
	FormatToken(input usecase.FormatTokenInput) (*usecase.FormattedToken, error)
	ParseToken(input usecase.ParseTokenInput) (*usecase.ParsedToken, error)
	SummarizeTally(input usecase.TallyInput) (*usecase.TallyResult, error)
}

// TokenHandler handles token amount and tally requests.
type TokenHandler struct {
	tokenUC TokenService
}

// NewTokenHandler creates a new TokenHandler.
func NewTokenHandler(tokenUC TokenService) *TokenHandler {
	return &TokenHandler{tokenUC: tokenUC}
}

// Format renders a base-unit amount.
func (h *TokenHandler) Format(w http.ResponseWriter, r *http.Request) {
	var req dto.FormatTokenRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	out, err := h.tokenUC.FormatToken(req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to format amount", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TokenAmountFromUseCase(out))
}

// Parse converts a typed amount into base units.
func (h *TokenHandler) Parse(w http.ResponseWriter, r *http.Request) {
	var req dto.ParseTokenRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	out, err := h.tokenUC.ParseToken(req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to parse amount", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ParsedTokenFromUseCase(out))
}

// Tally computes vote shares and turnout.
func (h *TokenHandler) Tally(w http.ResponseWriter, r *http.Request) {
	var req dto.TallyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	out, err := h.tokenUC.SummarizeTally(req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to summarize tally", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TallyFromUseCase(out))
}
