package item

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/flashrev/internal/config"
	"github.com/at-ishikawa/flashrev/internal/scheduling"
)

func newMockRepository(t *testing.T, retry config.RetryConfig) (*DBRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewDBRepository(sqlx.NewDb(db, "mysql"), retry), mock
}

func itemRow(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(itemColumns).AddRow(
		"item-1", "owner-1", "What is SM-2?", "A spaced repetition algorithm", "memory", "MEDIUM", "ACTIVE",
		2.5, 6, 2, now, 2, 2, "GOOD", now, 1500.0, int64(3), now, now,
	)
}

func reviewedItem(now time.Time) *scheduling.Item {
	outcome := scheduling.OutcomeGood
	return &scheduling.Item{
		ID:                "item-1",
		OwnerID:           "owner-1",
		Front:             "What is SM-2?",
		Back:              "A spaced repetition algorithm",
		Topic:             "memory",
		Difficulty:        scheduling.DifficultyMedium,
		Status:            scheduling.StatusActive,
		EaseFactor:        2.5,
		IntervalDays:      15,
		Repetitions:       3,
		NextReviewDate:    now.AddDate(0, 0, 15),
		TotalReviews:      3,
		CorrectReviews:    3,
		LastReviewOutcome: &outcome,
		LastReviewedAt:    &now,
		Version:           3,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func reviewEvent(now time.Time) *scheduling.ReviewEvent {
	return &scheduling.ReviewEvent{
		ID:                   "event-1",
		ItemID:               "item-1",
		OwnerID:              "owner-1",
		Outcome:              scheduling.OutcomeGood,
		PreviousIntervalDays: 6,
		IntervalDays:         15,
		PreviousEaseFactor:   2.5,
		EaseFactor:           2.5,
		Status:               scheduling.StatusActive,
		OccurredAt:           now,
	}
}

func TestDBRepository_Get(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	query := regexp.QuoteMeta(selectItems + " WHERE owner_id = ? AND id = ?")

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   error
	}{
		{
			name: "returns the item",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs("owner-1", "item-1").WillReturnRows(itemRow(now))
			},
		},
		{
			name: "missing item",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs("owner-1", "item-1").WillReturnRows(sqlmock.NewRows(itemColumns))
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t, config.RetryConfig{Attempts: 1})
			tt.setupMock(mock)

			got, err := repo.Get(context.Background(), "owner-1", "item-1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "item-1", got.ID)
			assert.Equal(t, scheduling.StatusActive, got.Status)
			assert.Equal(t, 6, got.IntervalDays)
			require.NotNil(t, got.LastReviewOutcome)
			assert.Equal(t, scheduling.OutcomeGood, *got.LastReviewOutcome)
			require.NotNil(t, got.AverageResponseTimeMs)
			assert.Equal(t, 1500.0, *got.AverageResponseTimeMs)
			assert.Equal(t, int64(3), got.Version)

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBRepository_Get_DatabaseError(t *testing.T) {
	repo, mock := newMockRepository(t, config.RetryConfig{Attempts: 1})
	mock.ExpectQuery("SELECT").WillReturnError(fmt.Errorf("connection refused"))

	_, err := repo.Get(context.Background(), "owner-1", "item-1")
	assert.ErrorContains(t, err, "connection refused")
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestDBRepository_List(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		filter    ListFilter
		setupMock func(mock sqlmock.Sqlmock)
	}{
		{
			name:   "without topic",
			filter: ListFilter{Limit: 20},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(selectItems+" WHERE owner_id = ? ORDER BY created_at DESC, id LIMIT ? OFFSET ?")).
					WithArgs("owner-1", 20, 0).
					WillReturnRows(itemRow(now))
			},
		},
		{
			name:   "topic is lowered and wrapped in wildcards",
			filter: ListFilter{Topic: " Memory ", Limit: 5, Offset: 10},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(selectItems+" WHERE owner_id = ? AND LOWER(topic) LIKE ? ORDER BY created_at DESC, id LIMIT ? OFFSET ?")).
					WithArgs("owner-1", "%memory%", 5, 10).
					WillReturnRows(itemRow(now))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t, config.RetryConfig{Attempts: 1})
			tt.setupMock(mock)

			got, err := repo.List(context.Background(), "owner-1", tt.filter)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "item-1", got[0].ID)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBRepository_SaveReview(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	deadlock := &mysql.MySQLError{Number: 1213, Message: "Deadlock found"}

	tests := []struct {
		name        string
		retry       config.RetryConfig
		setupMock   func(mock sqlmock.Sqlmock)
		wantErr     error
		wantAnyErr  bool
		wantVersion int64
	}{
		{
			name:  "updates the item and appends the event",
			retry: config.RetryConfig{Attempts: 1},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("UPDATE items SET").
					WithArgs(
						"What is SM-2?", "A spaced repetition algorithm", "memory", "MEDIUM", "ACTIVE",
						2.5, 15, 3, now.AddDate(0, 0, 15),
						3, 3, "GOOD", now,
						nil, now,
						"item-1", "owner-1", int64(3),
					).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO review_events (" + "id, item_id, owner_id, outcome")).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			wantVersion: 4,
		},
		{
			name:  "stale version is a conflict",
			retry: config.RetryConfig{Attempts: 3, InitialDelayMs: 1},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("UPDATE items SET").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectRollback()
			},
			wantErr:     ErrVersionConflict,
			wantVersion: 3,
		},
		{
			name:  "deadlock is retried",
			retry: config.RetryConfig{Attempts: 3, InitialDelayMs: 1},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("UPDATE items SET").WillReturnError(deadlock)
				mock.ExpectRollback()
				mock.ExpectBegin()
				mock.ExpectExec("UPDATE items SET").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("INSERT INTO review_events").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			wantVersion: 4,
		},
		{
			name:  "event insert failure rolls back the item update",
			retry: config.RetryConfig{Attempts: 1},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("UPDATE items SET").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("INSERT INTO review_events").WillReturnError(fmt.Errorf("duplicate entry"))
				mock.ExpectRollback()
			},
			wantAnyErr:  true,
			wantVersion: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t, tt.retry)
			tt.setupMock(mock)

			item := reviewedItem(now)
			err := repo.SaveReview(context.Background(), item, reviewEvent(now))
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantAnyErr:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantVersion, item.Version)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBRepository_SaveReview_RejectsInvalidEvent(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	repo, mock := newMockRepository(t, config.RetryConfig{Attempts: 1})

	event := reviewEvent(now)
	confidence := 9
	event.Confidence = &confidence

	err := repo.SaveReview(context.Background(), reviewedItem(now), event)
	var validationErr *scheduling.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "confidence", validationErr.Field)
	assert.ErrorIs(t, err, scheduling.ErrInvalidInput)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBRepository_SaveReview_RejectsInvalidTimeOfDay(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	repo, mock := newMockRepository(t, config.RetryConfig{Attempts: 1})

	event := reviewEvent(now)
	event.TimeOfDay = 24

	err := repo.SaveReview(context.Background(), reviewedItem(now), event)
	var validationErr *scheduling.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "time_of_day", validationErr.Field)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBRepository_BatchCreate(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		items     []*scheduling.Item
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   bool
	}{
		{
			name: "creates multiple items with multi-row insert",
			items: []*scheduling.Item{
				reviewedItem(now),
				func() *scheduling.Item {
					item := scheduling.StandardProfile.NewItem("item-2", "owner-1", scheduling.Content{Front: "Q", Back: "A"}, now)
					return &item
				}(),
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO items (id, owner_id, front, back, topic, difficulty, status, ease_factor")).
					WillReturnResult(sqlmock.NewResult(0, 2))
				mock.ExpectCommit()
			},
		},
		{
			name:      "empty slice returns nil",
			items:     []*scheduling.Item{},
			setupMock: func(mock sqlmock.Sqlmock) {},
		},
		{
			name: "invalid item is rejected before writing",
			items: []*scheduling.Item{
				{ID: "item-3", OwnerID: "owner-1", Status: scheduling.StatusActive, IntervalDays: 1, EaseFactor: 2.5, NextReviewDate: now},
			},
			setupMock: func(mock sqlmock.Sqlmock) {},
			wantErr:   true,
		},
		{
			name:  "db error propagates",
			items: []*scheduling.Item{reviewedItem(now)},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO items").WillReturnError(fmt.Errorf("duplicate entry"))
				mock.ExpectRollback()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t, config.RetryConfig{Attempts: 1})
			tt.setupMock(mock)

			err := repo.BatchCreate(context.Background(), tt.items)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
