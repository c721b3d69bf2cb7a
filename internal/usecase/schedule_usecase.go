package usecase

import (
	"time"

	"github.com/iho/daodash/internal/domain"
)

// ScheduleUseCase handles proposal timing.
type ScheduleUseCase struct {
	clock       Clock
	minDuration time.Duration
	metrics     MetricsRecorder
}

// NewScheduleUseCase creates a new ScheduleUseCase.
func NewScheduleUseCase(clock Clock, minDuration time.Duration, metrics MetricsRecorder) *ScheduleUseCase {
	if clock == nil {
		clock = SystemClock{}
	}
	if minDuration <= 0 {
		minDuration = DefaultProposalMinDuration
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}

	return &ScheduleUseCase{
		clock:       clock,
		minDuration: minDuration,
		metrics:     metrics,
	}
}

// MinDuration returns the configured minimum voting period.
func (uc *ScheduleUseCase) MinDuration() time.Duration {
	return uc.minDuration
}

// Timezones lists the selectable UTC offsets.
func (uc *ScheduleUseCase) Timezones() []string {
	return domain.TimezoneOptions()
}

// OffsetDifference returns offset(a) - offset(b) in minutes.
func (uc *ScheduleUseCase) OffsetDifference(a, b string) (int, error) {
	return domain.TimezoneOffsetDifference(a, b)
}

// ResolveDate turns form input into an absolute instant.
func (uc *ScheduleUseCase) ResolveDate(date, clock, timezone string) (time.Time, error) {
	return domain.InputToDate(date, clock, timezone)
}

// GapInput represents input for a minimum-gap check.
type GapInput struct {
	StartDate  string
	StartTime  string
	EndDate    string
	EndTime    string
	MinSeconds *int64
}

// CheckGap reports whether the end is far enough from the start. The
// configured minimum applies when MinSeconds is nil.
func (uc *ScheduleUseCase) CheckGap(input GapInput) (bool, error) {
	minSeconds := int64(uc.minDuration / time.Second)
	if input.MinSeconds != nil {
		minSeconds = *input.MinSeconds
	}

	ok, err := domain.IsGapEnough(input.StartDate, input.StartTime, input.EndDate, input.EndTime, minSeconds)
	if err != nil {
		return false, err
	}

	uc.metrics.ScheduleChecked(ok)

	return ok, nil
}

// ValidatedWindow is a proposal window that passed validation.
type ValidatedWindow struct {
	Start    time.Time
	End      time.Time
	Duration time.Duration
	StartsIn string
	EndsIn   string
	Timezone string
}

// ValidateWindow checks a proposal's voting period.
func (uc *ScheduleUseCase) ValidateWindow(window domain.ProposalWindow) (*ValidatedWindow, error) {
	now := uc.clock.Now()

	if err := window.Validate(uc.minDuration, now); err != nil {
		uc.metrics.ScheduleChecked(false)
		return nil, err
	}

	start, _ := window.Start()
	end, _ := window.End()

	uc.metrics.ScheduleChecked(true)

	return &ValidatedWindow{
		Start:    start,
		End:      end,
		Duration: end.Sub(start),
		StartsIn: domain.CountdownText(start, now),
		EndsIn:   domain.CountdownText(end, now),
		Timezone: window.Timezone,
	}, nil
}

// DateAhead returns the date durationSeconds after startDate, or after today.
func (uc *ScheduleUseCase) DateAhead(durationSeconds int64, startDate string) (string, error) {
	return domain.DurationDateAhead(durationSeconds, startDate, uc.clock.Now())
}

// Countdown describes how far end is from now.
func (uc *ScheduleUseCase) Countdown(end time.Time) string {
	return domain.CountdownText(end, uc.clock.Now())
}
