package scheduling

import (
	"math"
	"time"
)

const (
	basePriority = 50
	minPriority  = 0
	maxPriority  = 100
)

// ComputePriority ranks how urgently item should be reviewed at now, from 0 to 100.
func ComputePriority(item Item, now time.Time) int {
	priority := basePriority

	overdueDays := int(math.Floor(float64(now.Sub(item.NextReviewDate)) / float64(24*time.Hour)))
	if overdueDays > 0 {
		priority += min(30, overdueDays*2)
	} else {
		priority -= -overdueDays
	}

	switch item.Difficulty {
	case DifficultyHard:
		priority += 15
	case DifficultyMedium:
		priority += 5
	case DifficultyEasy:
		priority -= 5
	}

	if acc, ok := item.Accuracy(); ok {
		switch {
		case acc < 0.5:
			priority += 20
		case acc < 0.7:
			priority += 10
		case acc > 0.9:
			priority -= 10
		}
	}

	switch {
	case item.EaseFactor < 2.0:
		priority += 10
	case item.EaseFactor > 2.8:
		priority -= 5
	}

	switch item.Status {
	case StatusPending:
		priority += 25
	case StatusMastered:
		priority -= 20
	case StatusArchived:
		priority -= 50
	}

	return min(maxPriority, max(minPriority, priority))
}
