package scheduling

import (
	"fmt"
	"time"
)

// ReviewInput carries the optional metadata sent along with an outcome.
type ReviewInput struct {
	EventID          string
	ResponseTimeMs   *int64
	Confidence       *int
	SessionID        *string
	DeviceType       *string
	// StudyEnvironment is a free-form label such as "commute" or "desk".
	StudyEnvironment *string
}

const maxStudyEnvironmentLength = 64

// Validate checks the optional fields against their allowed ranges.
func (in ReviewInput) Validate() error {
	if in.ResponseTimeMs != nil && *in.ResponseTimeMs < 0 {
		return &ValidationError{Field: "response_time_ms", Reason: "must not be negative", Err: ErrInvalidInput}
	}
	if in.Confidence != nil && (*in.Confidence < 1 || *in.Confidence > 5) {
		return &ValidationError{Field: "confidence", Reason: fmt.Sprintf("%d is not between 1 and 5", *in.Confidence), Err: ErrInvalidInput}
	}
	if in.StudyEnvironment != nil && len(*in.StudyEnvironment) > maxStudyEnvironmentLength {
		return &ValidationError{Field: "study_environment", Reason: fmt.Sprintf("must be at most %d bytes", maxStudyEnvironmentLength), Err: ErrInvalidInput}
	}
	return nil
}

// ReviewResult is the updated item together with the event that records the review.
type ReviewResult struct {
	Item  Item
	Event ReviewEvent
}

// ReviewItem applies one outcome to item at now. The input item is not modified.
func (p Profile) ReviewItem(item Item, outcome Outcome, input ReviewInput, now time.Time) (ReviewResult, error) {
	if err := outcome.Validate(); err != nil {
		return ReviewResult{}, err
	}
	if err := input.Validate(); err != nil {
		return ReviewResult{}, err
	}
	if item.Status == StatusArchived {
		return ReviewResult{}, fmt.Errorf("review item %s: %w", item.ID, ErrItemArchived)
	}

	interval, ease := p.NextInterval(item.IntervalDays, item.EaseFactor, item.Repetitions, outcome)

	updated := item
	updated.IntervalDays = interval
	updated.EaseFactor = ease
	if outcome == OutcomeAgain {
		updated.Repetitions = 0
	} else {
		updated.Repetitions = max(item.Repetitions, 0) + 1
	}
	updated.TotalReviews = max(item.TotalReviews, 0) + 1
	updated.CorrectReviews = min(max(item.CorrectReviews, 0), updated.TotalReviews-1)
	if outcome.IsCorrect() {
		updated.CorrectReviews++
	}
	updated.AverageResponseTimeMs = runningAverage(item.AverageResponseTimeMs, item.TotalReviews, input.ResponseTimeMs)
	updated.Status = p.NextStatus(outcome, updated.Repetitions, updated.IntervalDays, updated.CorrectReviews, updated.TotalReviews)

	reviewedAt := now
	lastOutcome := outcome
	updated.LastReviewOutcome = &lastOutcome
	updated.LastReviewedAt = &reviewedAt
	updated.NextReviewDate = now.AddDate(0, 0, interval)
	updated.UpdatedAt = now

	event := ReviewEvent{
		ID:                   input.EventID,
		ItemID:               item.ID,
		OwnerID:              item.OwnerID,
		Outcome:              outcome,
		ResponseTimeMs:       input.ResponseTimeMs,
		Confidence:           input.Confidence,
		SessionID:            input.SessionID,
		DeviceType:           input.DeviceType,
		StudyEnvironment:     input.StudyEnvironment,
		TimeOfDay:            now.Hour(),
		PreviousIntervalDays: item.IntervalDays,
		IntervalDays:         interval,
		PreviousEaseFactor:   item.EaseFactor,
		EaseFactor:           ease,
		Status:               updated.Status,
		OccurredAt:           now,
	}
	return ReviewResult{Item: updated, Event: event}, nil
}

func runningAverage(current *float64, previousReviews int, responseTimeMs *int64) *float64 {
	if responseTimeMs == nil {
		return current
	}
	next := float64(*responseTimeMs)
	if current == nil || previousReviews <= 0 {
		return &next
	}
	avg := (*current*float64(previousReviews) + next) / float64(previousReviews+1)
	return &avg
}
