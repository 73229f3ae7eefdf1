package scheduling

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func dueFixture(now time.Time) []Item {
	dayStart := StartOfDay(now)
	return []Item{
		{ID: "overdue", Status: StatusActive, Difficulty: DifficultyMedium, EaseFactor: 2.5, NextReviewDate: now.AddDate(0, 0, -2)},
		{ID: "this-morning", Status: StatusActive, Difficulty: DifficultyHard, EaseFactor: 2.5, NextReviewDate: dayStart.Add(9 * time.Hour)},
		{ID: "tonight", Status: StatusActive, Difficulty: DifficultyMedium, EaseFactor: 2.5, NextReviewDate: dayStart.Add(20 * time.Hour)},
		{ID: "tomorrow", Status: StatusActive, Difficulty: DifficultyHard, EaseFactor: 2.5, NextReviewDate: dayStart.Add(25 * time.Hour)},
		{ID: "archived", Status: StatusArchived, Difficulty: DifficultyHard, EaseFactor: 1.3, NextReviewDate: now.AddDate(0, 0, -1), TotalReviews: 10, CorrectReviews: 2},
		{ID: "new", Status: StatusPending, Difficulty: DifficultyMedium, EaseFactor: 2.5, NextReviewDate: now},
	}
}

func ids(items []Item) []string {
	result := make([]string, len(items))
	for i, item := range items {
		result[i] = item.ID
	}
	return result
}

func TestSelectDue(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		opts DueOptions
		want []string
	}{
		{
			name: "including overdue keeps everything due up to now",
			opts: DueOptions{IncludeOverdue: true},
			want: []string{"new", "this-morning", "overdue"},
		},
		{
			name: "without overdue keeps only items due today",
			opts: DueOptions{},
			want: []string{"new", "this-morning", "tonight"},
		},
		{
			name: "max count truncates after sorting",
			opts: DueOptions{IncludeOverdue: true, MaxCount: 2},
			want: []string{"new", "this-morning"},
		},
		{
			name: "max count larger than the queue",
			opts: DueOptions{IncludeOverdue: true, MaxCount: 50},
			want: []string{"new", "this-morning", "overdue"},
		},
		{
			name: "non-positive max count is ignored",
			opts: DueOptions{IncludeOverdue: true, MaxCount: -1},
			want: []string{"new", "this-morning", "overdue"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectDue(dueFixture(now), tt.opts, now)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestRankDue_KeepsRankingPriority(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	items := dueFixture(now)

	for _, opts := range []DueOptions{{IncludeOverdue: true}, {}, {IncludeOverdue: true, MaxCount: 2}} {
		t.Run(fmt.Sprintf("%+v", opts), func(t *testing.T) {
			ranked := RankDue(items, opts, now)
			selected := SelectDue(items, opts, now)
			assert.Len(t, ranked, len(selected))
			for i, d := range ranked {
				assert.Equal(t, selected[i].ID, d.ID)
				assert.Equal(t, ComputePriority(d.Item, now), d.Priority)
				if i > 0 {
					assert.LessOrEqual(t, d.Priority, ranked[i-1].Priority)
				}
			}
		})
	}
}

func TestSelectDue_TieBreak(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	items := []Item{
		{ID: "c", Status: StatusActive, Difficulty: DifficultyMedium, EaseFactor: 2.5, NextReviewDate: now.Add(-1 * time.Hour)},
		{ID: "b", Status: StatusActive, Difficulty: DifficultyMedium, EaseFactor: 2.5, NextReviewDate: now.Add(-2 * time.Hour)},
		{ID: "a", Status: StatusActive, Difficulty: DifficultyMedium, EaseFactor: 2.5, NextReviewDate: now.Add(-1 * time.Hour)},
	}

	got := SelectDue(items, DueOptions{IncludeOverdue: true}, now)
	assert.Equal(t, []string{"b", "a", "c"}, ids(got))
}

func TestSelectDue_DoesNotModifyInput(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	items := dueFixture(now)
	before := ids(items)

	_ = SelectDue(items, DueOptions{IncludeOverdue: true, MaxCount: 1}, now)
	assert.Equal(t, before, ids(items))
}

func TestSelectDue_ArchivedIsNeverSelected(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	archived := Item{ID: "archived", Status: StatusArchived, Difficulty: DifficultyHard, TotalReviews: 10, CorrectReviews: 2}

	for _, next := range []time.Time{now.AddDate(-1, 0, 0), now.Add(-time.Minute), now, StartOfDay(now).Add(time.Hour)} {
		archived.NextReviewDate = next
		assert.Empty(t, SelectDue([]Item{archived}, DueOptions{IncludeOverdue: true}, now))
		assert.Empty(t, SelectDue([]Item{archived}, DueOptions{}, now))
	}
}

func TestSelectDue_OverdueResultIsDueSubset(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	rng := rand.New(rand.NewSource(7))

	for run := 0; run < 50; run++ {
		items := make([]Item, 30)
		byID := make(map[string]Item, len(items))
		for i := range items {
			items[i] = Item{
				ID:             fmt.Sprintf("item-%02d", i),
				Status:         Statuses[rng.Intn(len(Statuses))],
				Difficulty:     Difficulties[rng.Intn(len(Difficulties))],
				EaseFactor:     1.3 + rng.Float64()*1.7,
				NextReviewDate: now.Add(time.Duration(rng.Intn(20*24)-10*24) * time.Hour),
				TotalReviews:   10,
				CorrectReviews: rng.Intn(11),
			}
			byID[items[i].ID] = items[i]
		}

		got := SelectDue(items, DueOptions{IncludeOverdue: true}, now)
		previous := maxPriority + 1
		for _, item := range got {
			original, ok := byID[item.ID]
			assert.True(t, ok)
			assert.Equal(t, original, item)
			assert.NotEqual(t, StatusArchived, item.Status)
			assert.False(t, item.NextReviewDate.After(now))

			priority := ComputePriority(item, now)
			assert.LessOrEqual(t, priority, previous)
			previous = priority
		}
	}
}

func TestStartOfDay(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	now := time.Date(2025, 3, 10, 1, 30, 0, 0, tokyo)

	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, tokyo), StartOfDay(now))
}
