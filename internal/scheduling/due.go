package scheduling

import (
	"sort"
	"time"
)

// DueOptions controls SelectDue.
type DueOptions struct {
	// IncludeOverdue selects everything due up to now. When false only items due today are kept.
	IncludeOverdue bool
	// MaxCount truncates the queue when positive.
	MaxCount int
}

// DueItem is an item of the review queue with the priority it was ranked by.
type DueItem struct {
	Item
	Priority int `json:"priority" yaml:"priority"`
}

// SelectDue filters items down to the review queue at now, ordered by priority.
// The input slice is not modified.
func SelectDue(items []Item, opts DueOptions, now time.Time) []Item {
	ranked := RankDue(items, opts, now)
	result := make([]Item, len(ranked))
	for i, d := range ranked {
		result[i] = d.Item
	}
	return result
}

// RankDue is SelectDue that keeps the priority computed at now for each item.
// Ties are broken by NextReviewDate, then ID, so the order is stable for identical input.
func RankDue(items []Item, opts DueOptions, now time.Time) []DueItem {
	dayStart := StartOfDay(now)
	dayEnd := dayStart.AddDate(0, 0, 1)

	candidates := make([]DueItem, 0, len(items))
	for _, item := range items {
		if item.Status == StatusArchived {
			continue
		}
		if opts.IncludeOverdue {
			if item.NextReviewDate.After(now) {
				continue
			}
		} else if item.NextReviewDate.Before(dayStart) || !item.NextReviewDate.Before(dayEnd) {
			continue
		}
		candidates = append(candidates, DueItem{Item: item, Priority: ComputePriority(item, now)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if !a.NextReviewDate.Equal(b.NextReviewDate) {
			return a.NextReviewDate.Before(b.NextReviewDate)
		}
		return a.ID < b.ID
	})

	if opts.MaxCount > 0 && len(candidates) > opts.MaxCount {
		candidates = candidates[:opts.MaxCount]
	}
	return candidates
}

// StartOfDay truncates t to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
