// Package statistics summarizes a learner's deck and review history.
package statistics

import (
	"time"

	"github.com/at-ishikawa/flashrev/internal/scheduling"
)

// DeckStatistics is a snapshot of a learner's items at a point in time.
type DeckStatistics struct {
	Total        int                           `json:"total"`
	ByStatus     map[scheduling.Status]int     `json:"by_status"`
	ByDifficulty map[scheduling.Difficulty]int `json:"by_difficulty"`
	// AverageAccuracy is a percentage over reviewed items only.
	AverageAccuracy   float64 `json:"average_accuracy"`
	AverageEaseFactor float64 `json:"average_ease_factor"`
	AverageInterval   float64 `json:"average_interval"`
	DueToday          int     `json:"due_today"`
	Overdue           int     `json:"overdue"`
}

// CalculateDeckStatistics counts items by status and difficulty and averages their scheduling state.
// An item scheduled before the start of today is overdue, one scheduled later today is due today.
// Archived items are counted but never due.
func CalculateDeckStatistics(items []scheduling.Item, now time.Time) DeckStatistics {
	result := DeckStatistics{
		Total:        len(items),
		ByStatus:     make(map[scheduling.Status]int),
		ByDifficulty: make(map[scheduling.Difficulty]int),
	}
	if len(items) == 0 {
		return result
	}

	dayStart := scheduling.StartOfDay(now)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var totalAccuracy, totalEase float64
	var totalInterval, reviewed int
	for _, item := range items {
		result.ByStatus[item.Status]++
		result.ByDifficulty[item.Difficulty]++

		if acc, ok := item.Accuracy(); ok {
			totalAccuracy += acc * 100
			reviewed++
		}
		totalEase += item.EaseFactor
		totalInterval += item.IntervalDays

		if item.Status == scheduling.StatusArchived {
			continue
		}
		switch {
		case item.NextReviewDate.Before(dayStart):
			result.Overdue++
		case item.NextReviewDate.Before(dayEnd):
			result.DueToday++
		}
	}

	if reviewed > 0 {
		result.AverageAccuracy = totalAccuracy / float64(reviewed)
	}
	result.AverageEaseFactor = totalEase / float64(len(items))
	result.AverageInterval = float64(totalInterval) / float64(len(items))
	return result
}
