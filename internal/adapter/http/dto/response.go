package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/daodash/internal/domain"
	"github.com/iho/daodash/internal/usecase"
)

// TokenAmountResponse represents a formatted amount in API responses.
type TokenAmountResponse struct {
	BaseUnits   string          `json:"base_units"`
	Decimals    int             `json:"decimals"`
	Exact       decimal.Decimal `json:"exact"`
	Abbreviated string          `json:"abbreviated"`
	Approximate *float64        `json:"approximate"`
}

// TokenAmountFromUseCase converts a formatted amount to response.
func TokenAmountFromUseCase(t *usecase.FormattedToken) *TokenAmountResponse {
	return &TokenAmountResponse{
		BaseUnits:   t.BaseUnits,
		Decimals:    t.Decimals,
		Exact:       decimal.RequireFromString(t.Exact),
		Abbreviated: t.Abbreviated,
		Approximate: t.Approximate,
	}
}

// ParsedTokenResponse represents a parsed amount in API responses.
type ParsedTokenResponse struct {
	BaseUnits string          `json:"base_units"`
	Exact     decimal.Decimal `json:"exact"`
}

// ParsedTokenFromUseCase converts a parsed amount to response.
func ParsedTokenFromUseCase(t *usecase.ParsedToken) *ParsedTokenResponse {
	return &ParsedTokenResponse{
		BaseUnits: t.BaseUnits,
		Exact:     decimal.RequireFromString(t.Exact),
	}
}

// TimezonesResponse lists selectable UTC offsets.
type TimezonesResponse struct {
	Timezones []string `json:"timezones"`
}

// OffsetDifferenceResponse is offset(a) - offset(b).
type OffsetDifferenceResponse struct {
	A       string `json:"a"`
	B       string `json:"b"`
	Minutes int    `json:"minutes"`
}

// ResolvedDateResponse is an absolute instant resolved from form input.
type ResolvedDateResponse struct {
	Instant time.Time `json:"instant"`
	UTC     time.Time `json:"utc"`
	Unix    int64     `json:"unix"`
}

// ResolvedDateFromTime converts an instant to response.
func ResolvedDateFromTime(t time.Time) *ResolvedDateResponse {
	return &ResolvedDateResponse{
		Instant: t,
		UTC:     t.UTC(),
		Unix:    t.Unix(),
	}
}

// GapResponse reports a minimum-gap check.
type GapResponse struct {
	Enough bool `json:"enough"`
}

// ProposalWindowResponse represents a validated voting period.
type ProposalWindowResponse struct {
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationSeconds int64     `json:"duration_seconds"`
	StartsIn        string    `json:"starts_in"`
	EndsIn          string    `json:"ends_in"`
	Timezone        string    `json:"timezone"`
}

// ProposalWindowFromUseCase converts a validated window to response.
func ProposalWindowFromUseCase(w *usecase.ValidatedWindow) *ProposalWindowResponse {
	return &ProposalWindowResponse{
		Start:           w.Start,
		End:             w.End,
		DurationSeconds: int64(w.Duration / time.Second),
		StartsIn:        w.StartsIn,
		EndsIn:          w.EndsIn,
		Timezone:        w.Timezone,
	}
}

// DateAheadResponse is a calendar date.
type DateAheadResponse struct {
	Date string `json:"date"`
}

// CountdownResponse describes the distance to a moment.
type CountdownResponse struct {
	End  time.Time `json:"end"`
	Text string    `json:"text"`
}

// TallyResponse represents vote shares in API responses.
type TallyResponse struct {
	Total       string                 `json:"total"`
	Percentages domain.VotePercentages `json:"percentages"`
	Turnout     decimal.Decimal        `json:"turnout"`
}

// TallyFromUseCase converts a tally result to response.
func TallyFromUseCase(t *usecase.TallyResult) *TallyResponse {
	return &TallyResponse{
		Total:       t.Total,
		Percentages: t.Percentages,
		Turnout:     decimal.RequireFromString(t.Turnout),
	}
}

// MemberResponse represents a member address in API responses.
type MemberResponse struct {
	Address  string `json:"address"`
	Checksum string `json:"checksum"`
	Short    string `json:"short"`
}

// MembersFromUseCase converts members to responses.
func MembersFromUseCase(members []usecase.Member) []MemberResponse {
	result := make([]MemberResponse, len(members))
	for i, m := range members {
		result[i] = MemberResponse{
			Address:  m.Address,
			Checksum: m.Checksum,
			Short:    m.Short,
		}
	}
	return result
}

// ToastResponse represents a toast in API responses.
type ToastResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Variant     string `json:"variant"`
	DurationMS  int64  `json:"duration_ms"`
	Open        bool   `json:"open"`
}

// ToastFromDomain converts domain toast to response.
func ToastFromDomain(t domain.Toast) ToastResponse {
	return ToastResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Variant:     string(t.Variant),
		DurationMS:  t.Duration.Milliseconds(),
		Open:        t.Open,
	}
}

// ToastsFromDomain converts domain toasts to responses.
func ToastsFromDomain(toasts []domain.Toast) []ToastResponse {
	result := make([]ToastResponse, len(toasts))
	for i, t := range toasts {
		result[i] = ToastFromDomain(t)
	}
	return result
}

// ListToastsResponse represents the toast queue, newest first.
type ListToastsResponse struct {
	Toasts []ToastResponse `json:"toasts"`
	Total  int64           `json:"total"`
}

// ListMembersResponse represents formatted member addresses.
type ListMembersResponse struct {
	Members []MemberResponse `json:"members"`
	Total   int64            `json:"total"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
