package scheduling

import "time"

// Item is one reviewable learning item owned by a single learner.
type Item struct {
	ID                    string     `db:"id" json:"id" yaml:"id" validate:"required"`
	OwnerID               string     `db:"owner_id" json:"owner_id" yaml:"owner_id" validate:"required"`
	Front                 string     `db:"front" json:"front" yaml:"front" validate:"required,max=1000"`
	Back                  string     `db:"back" json:"back" yaml:"back" validate:"required,max=2000"`
	Topic                 string     `db:"topic" json:"topic" yaml:"topic" validate:"max=100"`
	Difficulty            Difficulty `db:"difficulty" json:"difficulty" yaml:"difficulty" validate:"omitempty,oneof=EASY MEDIUM HARD"`
	Status                Status     `db:"status" json:"status" yaml:"status" validate:"required,oneof=PENDING ACTIVE MASTERED ARCHIVED"`
	EaseFactor            float64    `db:"ease_factor" json:"ease_factor" yaml:"ease_factor" validate:"gt=0"`
	IntervalDays          int        `db:"interval_days" json:"interval_days" yaml:"interval_days" validate:"gte=1"`
	Repetitions           int        `db:"repetitions" json:"repetitions" yaml:"repetitions" validate:"gte=0"`
	NextReviewDate        time.Time  `db:"next_review_date" json:"next_review_date" yaml:"next_review_date" validate:"required"`
	TotalReviews          int        `db:"total_reviews" json:"total_reviews" yaml:"total_reviews" validate:"gte=0"`
	CorrectReviews        int        `db:"correct_reviews" json:"correct_reviews" yaml:"correct_reviews" validate:"gte=0,ltefield=TotalReviews"`
	LastReviewOutcome     *Outcome   `db:"last_review_outcome" json:"last_review_outcome,omitempty" yaml:"last_review_outcome,omitempty"`
	LastReviewedAt        *time.Time `db:"last_reviewed_at" json:"last_reviewed_at,omitempty" yaml:"last_reviewed_at,omitempty"`
	AverageResponseTimeMs *float64   `db:"average_response_time_ms" json:"average_response_time_ms,omitempty" yaml:"average_response_time_ms,omitempty"`
	Version               int64      `db:"version" json:"version" yaml:"version"`
	CreatedAt             time.Time  `db:"created_at" json:"created_at" yaml:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at" json:"updated_at" yaml:"updated_at"`
}

// Accuracy returns CorrectReviews/TotalReviews, and false when the item was never reviewed.
func (item Item) Accuracy() (float64, bool) {
	return accuracy(item.CorrectReviews, item.TotalReviews)
}

func accuracy(correct, total int) (float64, bool) {
	if total <= 0 {
		return 0, false
	}
	return float64(correct) / float64(total), true
}

// ReviewEvent is the append-only record of one review.
type ReviewEvent struct {
	ID                   string    `db:"id" json:"id" yaml:"id" validate:"required"`
	ItemID               string    `db:"item_id" json:"item_id" yaml:"item_id" validate:"required"`
	OwnerID              string    `db:"owner_id" json:"owner_id" yaml:"owner_id" validate:"required"`
	Outcome              Outcome   `db:"outcome" json:"outcome" yaml:"outcome" validate:"required,oneof=AGAIN HARD GOOD EASY"`
	ResponseTimeMs       *int64    `db:"response_time_ms" json:"response_time_ms,omitempty" yaml:"response_time_ms,omitempty" validate:"omitempty,gte=0"`
	Confidence           *int      `db:"confidence" json:"confidence,omitempty" yaml:"confidence,omitempty" validate:"omitempty,min=1,max=5"`
	SessionID            *string   `db:"session_id" json:"session_id,omitempty" yaml:"session_id,omitempty"`
	DeviceType           *string   `db:"device_type" json:"device_type,omitempty" yaml:"device_type,omitempty"`
	StudyEnvironment     *string   `db:"study_environment" json:"study_environment,omitempty" yaml:"study_environment,omitempty" validate:"omitempty,max=64"`
	TimeOfDay            int       `db:"time_of_day" json:"time_of_day" yaml:"time_of_day" validate:"gte=0,lte=23"`
	PreviousIntervalDays int       `db:"previous_interval_days" json:"previous_interval_days" yaml:"previous_interval_days"`
	IntervalDays         int       `db:"interval_days" json:"interval_days" yaml:"interval_days" validate:"gte=1"`
	PreviousEaseFactor   float64   `db:"previous_ease_factor" json:"previous_ease_factor" yaml:"previous_ease_factor"`
	EaseFactor           float64   `db:"ease_factor" json:"ease_factor" yaml:"ease_factor"`
	Status               Status    `db:"status" json:"status" yaml:"status" validate:"required"`
	OccurredAt           time.Time `db:"occurred_at" json:"occurred_at" yaml:"occurred_at" validate:"required"`
}

// Content holds the caller-provided fields of a new item.
type Content struct {
	Front      string
	Back       string
	Topic      string
	Difficulty Difficulty
}

// NewItem returns a never-reviewed item that is due immediately.
func (p Profile) NewItem(id, ownerID string, content Content, now time.Time) Item {
	difficulty := content.Difficulty
	if difficulty == "" {
		difficulty = DifficultyMedium
	}
	return Item{
		ID:             id,
		OwnerID:        ownerID,
		Front:          content.Front,
		Back:           content.Back,
		Topic:          content.Topic,
		Difficulty:     difficulty,
		Status:         StatusPending,
		EaseFactor:     p.InitialEase,
		IntervalDays:   1,
		Repetitions:    0,
		NextReviewDate: now,
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
