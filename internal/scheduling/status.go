package scheduling

// Status is the lifecycle state of an item.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusActive   Status = "ACTIVE"
	StatusMastered Status = "MASTERED"
	StatusArchived Status = "ARCHIVED"
)

// Statuses lists the lifecycle states in display order.
var Statuses = []Status{StatusPending, StatusActive, StatusMastered, StatusArchived}

func (s Status) String() string {
	return string(s)
}

// IsValid reports whether s is one of the known states.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusActive, StatusMastered, StatusArchived:
		return true
	}
	return false
}

// Difficulty is the content difficulty tier assigned when an item is created.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// Difficulties lists the difficulty tiers from easiest to hardest.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

func (d Difficulty) String() string {
	return string(d)
}
