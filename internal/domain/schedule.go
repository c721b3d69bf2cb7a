package domain

import (
	"fmt"
	"time"
)

// ProposalWindow is the voting period entered on the create-proposal form.
type ProposalWindow struct {
	StartDate string
	StartTime string
	EndDate   string
	EndTime   string
	Timezone  string
}

// Start resolves the absolute start instant.
func (w ProposalWindow) Start() (time.Time, error) {
	return InputToDate(w.StartDate, w.StartTime, w.Timezone)
}

// End resolves the absolute end instant.
func (w ProposalWindow) End() (time.Time, error) {
	return InputToDate(w.EndDate, w.EndTime, w.Timezone)
}

// Validate checks that the window starts no earlier than now and lasts at
// least minDuration. Both bounds share the window's timezone, which must be
// one of TimezoneOptions.
func (w ProposalWindow) Validate(minDuration time.Duration, now time.Time) error {
	offset, err := ParseUTCOffset(w.Timezone)
	if err != nil {
		return err
	}
	if !IsValidTimezone(offset.String()) {
		return fmt.Errorf("%w: %q is not a selectable offset", ErrInvalidTimezone, w.Timezone)
	}

	start, err := w.Start()
	if err != nil {
		return err
	}

	end, err := w.End()
	if err != nil {
		return err
	}

	if start.Before(now.Truncate(time.Minute)) {
		return fmt.Errorf("%w: starts at %s", ErrProposalStartsInPast, start.Format(time.RFC3339))
	}

	if end.Before(start.Add(minDuration)) {
		return fmt.Errorf("%w: needs at least %s", ErrProposalTooShort, minDuration)
	}

	return nil
}
