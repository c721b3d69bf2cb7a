package domain

import "errors"

var (
	// Token errors
	ErrInvalidTokenAmount = errors.New("invalid token amount")
	ErrInvalidDecimals    = errors.New("decimals must not be negative")

	// Schedule errors
	ErrInvalidTimezone      = errors.New("invalid timezone")
	ErrInvalidDate          = errors.New("invalid date or time")
	ErrProposalTooShort     = errors.New("proposal duration below minimum")
	ErrProposalStartsInPast = errors.New("proposal start is in the past")

	// Toast errors
	ErrToastNotFound = errors.New("toast not found")
	ErrInvalidToast  = errors.New("invalid toast")

	// Member errors
	ErrInvalidAddress = errors.New("invalid address")
)
