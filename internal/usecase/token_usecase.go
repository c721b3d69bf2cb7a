package usecase

import (
	"fmt"
	"math"
	"math/big"

	"github.com/iho/daodash/internal/domain"
)

// TokenUseCase formats and parses token amounts for display.
type TokenUseCase struct {
	metrics MetricsRecorder
}

// NewTokenUseCase creates a new TokenUseCase. A nil recorder disables metrics.
func NewTokenUseCase(metrics MetricsRecorder) *TokenUseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &TokenUseCase{metrics: metrics}
}

// FormatTokenInput represents input for formatting an amount.
type FormatTokenInput struct {
	BaseUnits string
	Decimals  int
	Symbol    string
	Round     bool
}

// FormattedToken is an amount rendered every way the dashboard shows it.
type FormattedToken struct {
	BaseUnits   string
	Decimals    int
	Exact       string
	Abbreviated string
	// Approximate is nil when the amount has no float representation.
	Approximate *float64
}

// FormatToken renders a base-unit amount.
func (uc *TokenUseCase) FormatToken(input FormatTokenInput) (*FormattedToken, error) {
	if err := domain.ValidateDecimals(input.Decimals); err != nil {
		return nil, err
	}
	if err := domain.ValidateSymbol(input.Symbol); err != nil {
		return nil, err
	}

	value, ok := new(big.Int).SetString(input.BaseUnits, 10)
	if !ok || value.Sign() < 0 {
		return nil, fmt.Errorf("%w: base units must be a non-negative integer", domain.ErrInvalidTokenAmount)
	}

	opts := domain.AbbreviateOptions{Symbol: input.Symbol, Round: input.Round}

	out := &FormattedToken{
		BaseUnits:   value.String(),
		Decimals:    input.Decimals,
		Exact:       domain.FormatTokenAmount(value, input.Decimals),
		Abbreviated: domain.AbbreviateTokenAmount(value, input.Decimals, opts),
	}

	if f := domain.BigIntToFloat(value, input.Decimals); !math.IsNaN(f) && !math.IsInf(f, 0) {
		out.Approximate = &f
	}

	uc.metrics.TokenFormatted()

	return out, nil
}

// ParseTokenInput represents input for parsing user-typed amounts.
type ParseTokenInput struct {
	Amount   string
	Decimals int
}

// ParsedToken is a user-typed amount converted to base units.
type ParsedToken struct {
	BaseUnits string
	Exact     string
}

// ParseToken converts a decimal string into base units.
func (uc *TokenUseCase) ParseToken(input ParseTokenInput) (*ParsedToken, error) {
	if err := domain.ValidateDecimals(input.Decimals); err != nil {
		return nil, err
	}

	value, err := domain.ParseTokenAmount(input.Amount, input.Decimals)
	if err != nil {
		uc.metrics.TokenParsed(false)
		return nil, err
	}

	uc.metrics.TokenParsed(true)

	return &ParsedToken{
		BaseUnits: value.String(),
		Exact:     domain.FormatTokenAmount(value, input.Decimals),
	}, nil
}

// TallyInput holds base-unit vote counts as decimal strings. Empty values count as zero.
type TallyInput struct {
	Yes         string
	No          string
	Abstain     string
	TotalSupply string
}

// TallyResult is a tally with percentages.
type TallyResult struct {
	Total       string
	Percentages domain.VotePercentages
	Turnout     string
}

// SummarizeTally computes option shares and turnout.
func (uc *TokenUseCase) SummarizeTally(input TallyInput) (*TallyResult, error) {
	var values [4]*big.Int
	for i, s := range []string{input.Yes, input.No, input.Abstain, input.TotalSupply} {
		if s == "" {
			continue
		}
		v, ok := new(big.Int).SetString(s, 10)
		if !ok || v.Sign() < 0 {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTokenAmount, s)
		}
		values[i] = v
	}

	tally := domain.VoteTally{Yes: values[0], No: values[1], Abstain: values[2]}

	return &TallyResult{
		Total:       tally.Total().String(),
		Percentages: tally.Percentages(),
		Turnout:     tally.Turnout(values[3]).StringFixed(2),
	}, nil
}
