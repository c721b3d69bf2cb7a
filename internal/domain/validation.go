package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Validation errors
var (
	ErrInvalidSymbol   = errors.New("invalid token symbol")
	ErrDecimalsTooHigh = errors.New("decimals exceed maximum allowed")
)

// Validation constants
const (
	MaxDecimals          = 77 // digits in 2^256
	MaxSymbolLength      = 11
	MaxToastTitleLength  = 120
	MaxToastDescLength   = 500
	MaxProposalDuration  = 365 * 24 * 60 * 60
	MaxAddressesPerBatch = 200
)

var symbolRegex = regexp.MustCompile(`^[A-Za-z0-9$.\-]+$`)

// ValidateDecimals validates a token's decimals count
func ValidateDecimals(decimals int) error {
	if decimals < 0 {
		return ErrInvalidDecimals
	}

	if decimals > MaxDecimals {
		return fmt.Errorf("%w: maximum is %d", ErrDecimalsTooHigh, MaxDecimals)
	}

	return nil
}

// ValidateSymbol validates a token ticker. An empty symbol is allowed.
func ValidateSymbol(symbol string) error {
	if symbol == "" {
		return nil
	}

	if len(symbol) > MaxSymbolLength {
		return fmt.Errorf("%w: exceeds %d characters", ErrInvalidSymbol, MaxSymbolLength)
	}

	if !symbolRegex.MatchString(symbol) {
		return fmt.Errorf("%w: %q", ErrInvalidSymbol, symbol)
	}

	return nil
}

// ValidateToast validates the user-visible fields of a toast
func ValidateToast(title, description string, variant ToastVariant) error {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	if title == "" && description == "" {
		return fmt.Errorf("%w: title or description required", ErrInvalidToast)
	}

	if len(title) > MaxToastTitleLength {
		return fmt.Errorf("%w: title exceeds %d characters", ErrInvalidToast, MaxToastTitleLength)
	}

	if len(description) > MaxToastDescLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidToast, MaxToastDescLength)
	}

	if variant != "" && !variant.Valid() {
		return fmt.Errorf("%w: unknown variant %q", ErrInvalidToast, variant)
	}

	return nil
}
