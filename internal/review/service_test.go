package review

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/flashrev/internal/cache"
	"github.com/at-ishikawa/flashrev/internal/config"
	"github.com/at-ishikawa/flashrev/internal/item"
	mock_item "github.com/at-ishikawa/flashrev/internal/mocks/item"
	"github.com/at-ishikawa/flashrev/internal/scheduling"
)

var testNow = time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func newTestService(t *testing.T, opts ...Option) (*Service, *mock_item.MockRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock_item.NewMockRepository(ctrl)
	opts = append([]Option{
		WithClock(scheduling.FixedClock(testNow)),
		WithIDGenerator(sequentialIDs("id")),
	}, opts...)
	return NewService(repo, scheduling.StandardProfile, config.ReviewConfig{MaxConflictRetries: 2}, opts...), repo
}

func newItem(id string) *scheduling.Item {
	it := scheduling.StandardProfile.NewItem(id, "u1", scheduling.Content{Front: "front", Back: "back"}, testNow.Add(-time.Hour))
	return &it
}

func TestService_Review(t *testing.T) {
	ctx := context.Background()
	memory := cache.NewMemoryCache[[]scheduling.Item](cache.MemoryOptions{Now: func() time.Time { return testNow }})
	service, repo := newTestService(t, WithCache(memory))
	require.NoError(t, memory.Set(ctx, dueKey("u1", testNow), []scheduling.Item{*newItem("i1")}))

	repo.EXPECT().Get(ctx, "u1", "i1").Return(newItem("i1"), nil)
	repo.EXPECT().SaveReview(ctx, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, it *scheduling.Item, event *scheduling.ReviewEvent) error {
			assert.Equal(t, 1, it.Repetitions)
			assert.Equal(t, "id-1", event.ID)
			assert.Equal(t, "i1", event.ItemID)
			return nil
		})

	got, err := service.Review(ctx, "u1", "i1", scheduling.OutcomeGood, scheduling.ReviewInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Item.IntervalDays)
	assert.Equal(t, 1, got.Item.TotalReviews)
	assert.Equal(t, 1, got.Item.CorrectReviews)
	assert.Equal(t, scheduling.StatusActive, got.Item.Status)
	assert.Equal(t, testNow.AddDate(0, 0, 1), got.Item.NextReviewDate)
	assert.Equal(t, scheduling.OutcomeGood, got.Event.Outcome)

	_, ok, err := memory.Get(ctx, dueKey("u1", testNow))
	require.NoError(t, err)
	assert.False(t, ok, "due cache must be invalidated")
}

func TestService_Review_RetriesVersionConflict(t *testing.T) {
	ctx := context.Background()
	service, repo := newTestService(t)

	stale := newItem("i1")
	fresh := newItem("i1")
	fresh.Version = 2
	fresh.Repetitions = 1
	fresh.IntervalDays = 1
	fresh.TotalReviews = 1
	fresh.CorrectReviews = 1
	fresh.Status = scheduling.StatusActive

	gomock.InOrder(
		repo.EXPECT().Get(ctx, "u1", "i1").Return(stale, nil),
		repo.EXPECT().SaveReview(ctx, gomock.Any(), gomock.Any()).Return(item.ErrVersionConflict),
		repo.EXPECT().Get(ctx, "u1", "i1").Return(fresh, nil),
		repo.EXPECT().SaveReview(ctx, gomock.Any(), gomock.Any()).Return(nil),
	)

	got, err := service.Review(ctx, "u1", "i1", scheduling.OutcomeGood, scheduling.ReviewInput{EventID: "e1"})
	require.NoError(t, err)
	assert.Equal(t, 6, got.Item.IntervalDays, "second GOOD review computed on fresh state")
	assert.Equal(t, 2, got.Item.TotalReviews)
	assert.Equal(t, "e1", got.Event.ID)
}

func TestService_Review_Errors(t *testing.T) {
	archived := newItem("i1")
	archived.Status = scheduling.StatusArchived

	tests := []struct {
		name    string
		outcome scheduling.Outcome
		input   scheduling.ReviewInput
		setup   func(repo *mock_item.MockRepository)
		wantErr error
	}{
		{
			name:    "unknown outcome is rejected before the store",
			outcome: scheduling.Outcome("MAYBE"),
			setup:   func(repo *mock_item.MockRepository) {},
			wantErr: scheduling.ErrInvalidOutcome,
		},
		{
			name:    "confidence out of range",
			outcome: scheduling.OutcomeGood,
			input:   scheduling.ReviewInput{Confidence: ptr(6)},
			setup:   func(repo *mock_item.MockRepository) {},
			wantErr: scheduling.ErrInvalidInput,
		},
		{
			name:    "not found is not retried",
			outcome: scheduling.OutcomeGood,
			setup: func(repo *mock_item.MockRepository) {
				repo.EXPECT().Get(gomock.Any(), "u1", "i1").Return(nil, fmt.Errorf("get item i1: %w", item.ErrNotFound)).Times(1)
			},
			wantErr: item.ErrNotFound,
		},
		{
			name:    "archived item",
			outcome: scheduling.OutcomeEasy,
			setup: func(repo *mock_item.MockRepository) {
				repo.EXPECT().Get(gomock.Any(), "u1", "i1").Return(archived, nil).Times(1)
			},
			wantErr: scheduling.ErrItemArchived,
		},
		{
			name:    "conflict persists after every retry",
			outcome: scheduling.OutcomeHard,
			setup: func(repo *mock_item.MockRepository) {
				repo.EXPECT().Get(gomock.Any(), "u1", "i1").DoAndReturn(func(context.Context, string, string) (*scheduling.Item, error) {
					return newItem("i1"), nil
				}).Times(3)
				repo.EXPECT().SaveReview(gomock.Any(), gomock.Any(), gomock.Any()).Return(item.ErrVersionConflict).Times(3)
			},
			wantErr: item.ErrVersionConflict,
		},
		{
			name:    "store failure is not retried",
			outcome: scheduling.OutcomeGood,
			setup: func(repo *mock_item.MockRepository) {
				repo.EXPECT().Get(gomock.Any(), "u1", "i1").Return(newItem("i1"), nil).Times(1)
				repo.EXPECT().SaveReview(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("disk full")).Times(1)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newTestService(t)
			tt.setup(repo)

			got, err := service.Review(context.Background(), "u1", "i1", tt.outcome, tt.input)
			assert.Error(t, err)
			assert.Nil(t, got)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestService_DueQueue_UsesCache(t *testing.T) {
	ctx := context.Background()
	memory := cache.NewMemoryCache[[]scheduling.Item](cache.MemoryOptions{Now: func() time.Time { return testNow }})
	service, repo := newTestService(t, WithCache(memory))

	low := newItem("low")
	low.Difficulty = scheduling.DifficultyEasy
	high := newItem("high")
	high.Difficulty = scheduling.DifficultyHard
	tonight := newItem("tonight")
	tonight.NextReviewDate = time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC)

	repo.EXPECT().
		FindDueCandidates(ctx, "u1", time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)).
		Return([]scheduling.Item{*low, *high, *tonight}, nil).
		Times(1)

	got, err := service.DueQueue(ctx, "u1", scheduling.DueOptions{IncludeOverdue: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"high", "low"}, ids(got))
	for _, d := range got {
		assert.Equal(t, scheduling.ComputePriority(d.Item, testNow), d.Priority)
	}

	got, err = service.DueQueue(ctx, "u1", scheduling.DueOptions{IncludeOverdue: false, MaxCount: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"high", "tonight"}, ids(got))

	count, err := service.CountDue(ctx, "u1", false)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestService_DueQueue_StoreError(t *testing.T) {
	service, repo := newTestService(t)
	repo.EXPECT().FindDueCandidates(gomock.Any(), "u1", gomock.Any()).Return(nil, errors.New("connection refused"))

	_, err := service.DueQueue(context.Background(), "u1", scheduling.DueOptions{})
	assert.Error(t, err)
}

func TestService_ListItems(t *testing.T) {
	tests := []struct {
		name       string
		filter     item.ListFilter
		wantFilter *item.ListFilter
		wantField  string
	}{
		{
			name:       "zero limit uses the default page size",
			filter:     item.ListFilter{Topic: "geo"},
			wantFilter: &item.ListFilter{Topic: "geo", Limit: 20},
		},
		{
			name:       "explicit page",
			filter:     item.ListFilter{Limit: 100, Offset: 40},
			wantFilter: &item.ListFilter{Limit: 100, Offset: 40},
		},
		{
			name:      "limit above maximum",
			filter:    item.ListFilter{Limit: 101},
			wantField: "limit",
		},
		{
			name:      "negative limit",
			filter:    item.ListFilter{Limit: -1},
			wantField: "limit",
		},
		{
			name:      "negative offset",
			filter:    item.ListFilter{Offset: -5},
			wantField: "offset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newTestService(t)
			if tt.wantFilter != nil {
				repo.EXPECT().List(gomock.Any(), "u1", *tt.wantFilter).Return([]scheduling.Item{*newItem("i1")}, nil)
			}

			got, err := service.ListItems(context.Background(), "u1", tt.filter)
			if tt.wantField != "" {
				var validationErr *scheduling.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, tt.wantField, validationErr.Field)
				assert.ErrorIs(t, err, scheduling.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "i1", got[0].ID)
		})
	}
}

func TestService_CreateItem(t *testing.T) {
	tests := []struct {
		name      string
		content   scheduling.Content
		wantField string
		want      *scheduling.Item
	}{
		{
			name:    "trimmed content with default difficulty",
			content: scheduling.Content{Front: "  capital of France ", Back: "Paris", Topic: "geo"},
			want: &scheduling.Item{
				ID: "id-1", OwnerID: "u1", Front: "capital of France", Back: "Paris", Topic: "geo",
				Difficulty: scheduling.DifficultyMedium, Status: scheduling.StatusPending,
				EaseFactor: 2.5, IntervalDays: 1, NextReviewDate: testNow, Version: 1,
				CreatedAt: testNow, UpdatedAt: testNow,
			},
		},
		{
			name:      "empty front",
			content:   scheduling.Content{Front: "   ", Back: "Paris"},
			wantField: "front",
		},
		{
			name:      "empty back",
			content:   scheduling.Content{Front: "France", Back: ""},
			wantField: "back",
		},
		{
			name:      "identical sides",
			content:   scheduling.Content{Front: "Paris", Back: "paris"},
			wantField: "back",
		},
		{
			name:      "unknown difficulty",
			content:   scheduling.Content{Front: "France", Back: "Paris", Difficulty: "EXTREME"},
			wantField: "difficulty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newTestService(t)
			if tt.want != nil {
				repo.EXPECT().Create(gomock.Any(), tt.want).Return(nil)
			}

			got, err := service.CreateItem(context.Background(), "u1", tt.content)
			if tt.wantField != "" {
				var validationErr *scheduling.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, tt.wantField, validationErr.Field)
				assert.ErrorIs(t, err, scheduling.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Restore(t *testing.T) {
	t.Run("archived item becomes active and due now", func(t *testing.T) {
		service, repo := newTestService(t)
		archived := newItem("i1")
		archived.Status = scheduling.StatusArchived
		archived.NextReviewDate = testNow.AddDate(0, 0, -20)
		archived.TotalReviews = 11
		archived.CorrectReviews = 2

		repo.EXPECT().Get(gomock.Any(), "u1", "i1").Return(archived, nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		got, err := service.Restore(context.Background(), "u1", "i1")
		require.NoError(t, err)
		assert.Equal(t, scheduling.StatusActive, got.Status)
		assert.Equal(t, testNow, got.NextReviewDate)
		assert.Equal(t, 11, got.TotalReviews)
	})

	t.Run("active item cannot be restored", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().Get(gomock.Any(), "u1", "i1").Return(newItem("i1"), nil)

		_, err := service.Restore(context.Background(), "u1", "i1")
		assert.ErrorIs(t, err, ErrNotArchived)
	})
}

func TestService_Priority(t *testing.T) {
	service, repo := newTestService(t)
	it := newItem("i1")
	it.Difficulty = scheduling.DifficultyHard
	repo.EXPECT().Get(gomock.Any(), "u1", "i1").Return(it, nil)

	got, err := service.Priority(context.Background(), "u1", "i1")
	require.NoError(t, err)
	assert.Equal(t, scheduling.ComputePriority(*it, testNow), got)
}

func TestService_Events(t *testing.T) {
	service, repo := newTestService(t)
	events := []scheduling.ReviewEvent{{ID: "e2"}, {ID: "e1"}}
	repo.EXPECT().Get(gomock.Any(), "u1", "i1").Return(newItem("i1"), nil)
	repo.EXPECT().FindEvents(gomock.Any(), "u1", "i1").Return(events, nil)

	got, err := service.Events(context.Background(), "u1", "i1")
	require.NoError(t, err)
	assert.Equal(t, events, got)
}

func TestService_Stats(t *testing.T) {
	service, repo := newTestService(t)
	reviewed := newItem("i1")
	reviewed.TotalReviews = 2
	reviewed.CorrectReviews = 1
	repo.EXPECT().FindByOwner(gomock.Any(), "u1").Return([]scheduling.Item{*reviewed, *newItem("i2")}, nil)
	repo.EXPECT().FindEventsByOwner(gomock.Any(), "u1").Return([]scheduling.ReviewEvent{
		{ItemID: "i1", Outcome: scheduling.OutcomeGood, OccurredAt: testNow.AddDate(0, 0, -2)},
		{ItemID: "i1", Outcome: scheduling.OutcomeAgain, OccurredAt: testNow.AddDate(0, 0, -1)},
	}, nil)

	got, err := service.Stats(context.Background(), "u1", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Deck.Total)
	assert.InDelta(t, 50.0, got.Deck.AverageAccuracy, 1e-9)
	assert.Equal(t, 2, got.Deck.DueToday)
	assert.Equal(t, 2, got.Reviews.Aggregate.ReviewsCount)
	assert.Equal(t, 1, got.Reviews.Aggregate.CorrectCount)
}

func ids(items []scheduling.DueItem) []string {
	result := make([]string, len(items))
	for i, it := range items {
		result[i] = it.ID
	}
	return result
}

func ptr[T any](v T) *T {
	return &v
}
