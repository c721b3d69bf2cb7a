package dto

import (
	"time"

	"github.com/iho/daodash/internal/domain"
	"github.com/iho/daodash/internal/usecase"
)

// FormatTokenRequest represents a request to render a base-unit amount.
type FormatTokenRequest struct {
	BaseUnits string `json:"base_units"`
	Decimals  int    `json:"decimals"`
	Symbol    string `json:"symbol,omitempty"`
	Round     bool   `json:"round,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *FormatTokenRequest) ToUseCaseInput() usecase.FormatTokenInput {
	return usecase.FormatTokenInput{
		BaseUnits: r.BaseUnits,
		Decimals:  r.Decimals,
		Symbol:    r.Symbol,
		Round:     r.Round,
	}
}

// ParseTokenRequest represents a request to convert a typed amount to base units.
type ParseTokenRequest struct {
	Amount   string `json:"amount"`
	Decimals int    `json:"decimals"`
}

// ToUseCaseInput converts to use case input.
func (r *ParseTokenRequest) ToUseCaseInput() usecase.ParseTokenInput {
	return usecase.ParseTokenInput{
		Amount:   r.Amount,
		Decimals: r.Decimals,
	}
}

// ResolveDateRequest represents form date input.
type ResolveDateRequest struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Timezone string `json:"timezone"`
}

// GapRequest represents a minimum-gap check.
type GapRequest struct {
	StartDate  string `json:"start_date"`
	StartTime  string `json:"start_time"`
	EndDate    string `json:"end_date"`
	EndTime    string `json:"end_time"`
	MinSeconds *int64 `json:"min_seconds,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *GapRequest) ToUseCaseInput() usecase.GapInput {
	return usecase.GapInput{
		StartDate:  r.StartDate,
		StartTime:  r.StartTime,
		EndDate:    r.EndDate,
		EndTime:    r.EndTime,
		MinSeconds: r.MinSeconds,
	}
}

// ProposalWindowRequest represents the voting period of a new proposal.
type ProposalWindowRequest struct {
	StartDate string `json:"start_date"`
	StartTime string `json:"start_time"`
	EndDate   string `json:"end_date"`
	EndTime   string `json:"end_time"`
	Timezone  string `json:"timezone"`
}

// ToDomain converts to a domain proposal window.
func (r *ProposalWindowRequest) ToDomain() domain.ProposalWindow {
	return domain.ProposalWindow{
		StartDate: r.StartDate,
		StartTime: r.StartTime,
		EndDate:   r.EndDate,
		EndTime:   r.EndTime,
		Timezone:  r.Timezone,
	}
}

// TallyRequest holds base-unit vote counts as decimal strings.
type TallyRequest struct {
	Yes         string `json:"yes"`
	No          string `json:"no"`
	Abstain     string `json:"abstain"`
	TotalSupply string `json:"total_supply,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *TallyRequest) ToUseCaseInput() usecase.TallyInput {
	return usecase.TallyInput{
		Yes:         r.Yes,
		No:          r.No,
		Abstain:     r.Abstain,
		TotalSupply: r.TotalSupply,
	}
}

// FormatMembersRequest lists member addresses to render.
type FormatMembersRequest struct {
	Addresses []string `json:"addresses"`
}

// CreateToastRequest represents a request to raise a toast.
type CreateToastRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Variant     string `json:"variant,omitempty"`
	DurationMS  int64  `json:"duration_ms,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateToastRequest) ToUseCaseInput() usecase.ToastInput {
	return usecase.ToastInput{
		Title:       r.Title,
		Description: r.Description,
		Variant:     domain.ToastVariant(r.Variant),
		Duration:    time.Duration(r.DurationMS) * time.Millisecond,
	}
}

// UpdateToastRequest represents a partial toast update. Omitted fields are kept.
type UpdateToastRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Variant     *string `json:"variant,omitempty"`
	DurationMS  *int64  `json:"duration_ms,omitempty"`
	Open        *bool   `json:"open,omitempty"`
}

// ToPatch converts to a domain patch.
func (r *UpdateToastRequest) ToPatch() domain.ToastPatch {
	patch := domain.ToastPatch{
		Title:       r.Title,
		Description: r.Description,
		Open:        r.Open,
	}
	if r.Variant != nil {
		v := domain.ToastVariant(*r.Variant)
		patch.Variant = &v
	}
	if r.DurationMS != nil {
		d := time.Duration(*r.DurationMS) * time.Millisecond
		patch.Duration = &d
	}
	return patch
}
