package usecase

import "time"

const (
	// DefaultToastLimit is the number of toasts kept on screen.
	DefaultToastLimit = 5

	// DefaultToastRemoveDelay is how long a dismissed toast stays in the queue
	// so its close animation can finish.
	DefaultToastRemoveDelay = 1000 * time.Second

	// DefaultProposalMinDuration is the shortest voting period a proposal may have.
	DefaultProposalMinDuration = 24 * time.Hour

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)
