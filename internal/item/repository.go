// Package item stores reviewable items and their review events.
package item

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/flashrev/internal/config"
	"github.com/at-ishikawa/flashrev/internal/database"
	"github.com/at-ishikawa/flashrev/internal/scheduling"
)

var (
	ErrNotFound        = errors.New("item not found")
	ErrVersionConflict = errors.New("item was modified by another review")
)

//go:generate mockgen -source=repository.go -destination=../mocks/item/mock_repository.go -package=mock_item Repository

// Repository persists items and their append-only review history.
type Repository interface {
	Get(ctx context.Context, ownerID, itemID string) (*scheduling.Item, error)
	FindByOwner(ctx context.Context, ownerID string) ([]scheduling.Item, error)
	List(ctx context.Context, ownerID string, filter ListFilter) ([]scheduling.Item, error)
	FindDueCandidates(ctx context.Context, ownerID string, before time.Time) ([]scheduling.Item, error)
	Create(ctx context.Context, item *scheduling.Item) error
	BatchCreate(ctx context.Context, items []*scheduling.Item) error
	Save(ctx context.Context, item *scheduling.Item) error
	SaveReview(ctx context.Context, item *scheduling.Item, event *scheduling.ReviewEvent) error
	FindEvents(ctx context.Context, ownerID, itemID string) ([]scheduling.ReviewEvent, error)
	FindEventsByOwner(ctx context.Context, ownerID string) ([]scheduling.ReviewEvent, error)
	BatchCreateEvents(ctx context.Context, events []*scheduling.ReviewEvent) error
}

var itemColumns = []string{
	"id", "owner_id", "front", "back", "topic", "difficulty", "status",
	"ease_factor", "interval_days", "repetitions", "next_review_date",
	"total_reviews", "correct_reviews", "last_review_outcome", "last_reviewed_at",
	"average_response_time_ms", "version", "created_at", "updated_at",
}

var eventColumns = []string{
	"id", "item_id", "owner_id", "outcome", "response_time_ms", "confidence",
	"session_id", "device_type", "study_environment", "time_of_day",
	"previous_interval_days", "interval_days",
	"previous_ease_factor", "ease_factor", "status", "occurred_at",
}

var (
	selectItems  = "SELECT " + strings.Join(itemColumns, ", ") + " FROM items"
	selectEvents = "SELECT " + strings.Join(eventColumns, ", ") + " FROM review_events"
)

// DBRepository implements Repository on top of sqlx. Queries are written with ? and rebound per driver.
type DBRepository struct {
	db    *sqlx.DB
	retry config.RetryConfig
}

// NewDBRepository creates a new DBRepository. Writes are retried on transient errors according to retry.
func NewDBRepository(db *sqlx.DB, retry config.RetryConfig) *DBRepository {
	return &DBRepository{db: db, retry: retry}
}

// Get returns the item, or ErrNotFound when ownerID has no item with itemID.
func (r *DBRepository) Get(ctx context.Context, ownerID, itemID string) (*scheduling.Item, error) {
	var item scheduling.Item
	err := r.db.GetContext(ctx, &item, r.db.Rebind(selectItems+" WHERE owner_id = ? AND id = ?"), ownerID, itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get item %s: %w", itemID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(item) > %w", err)
	}
	return &item, nil
}

// FindByOwner returns every item of ownerID ordered by creation.
func (r *DBRepository) FindByOwner(ctx context.Context, ownerID string) ([]scheduling.Item, error) {
	var items []scheduling.Item
	query := r.db.Rebind(selectItems + " WHERE owner_id = ? ORDER BY created_at, id")
	if err := r.db.SelectContext(ctx, &items, query, ownerID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(items) > %w", err)
	}
	return items, nil
}

// ListFilter selects one page of an owner's items. Topic matches as a case-insensitive substring.
type ListFilter struct {
	Topic  string
	Limit  int
	Offset int
}

// List returns one page of the items of ownerID, newest first.
func (r *DBRepository) List(ctx context.Context, ownerID string, filter ListFilter) ([]scheduling.Item, error) {
	query := selectItems + " WHERE owner_id = ?"
	args := []interface{}{ownerID}
	if topic := strings.TrimSpace(filter.Topic); topic != "" {
		query += " AND LOWER(topic) LIKE ?"
		args = append(args, "%"+strings.ToLower(topic)+"%")
	}
	query += " ORDER BY created_at DESC, id LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	var items []scheduling.Item
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(list items) > %w", err)
	}
	return items, nil
}

// FindDueCandidates returns the non-archived items of ownerID scheduled before the given time.
func (r *DBRepository) FindDueCandidates(ctx context.Context, ownerID string, before time.Time) ([]scheduling.Item, error) {
	var items []scheduling.Item
	query := r.db.Rebind(selectItems + " WHERE owner_id = ? AND status <> ? AND next_review_date < ? ORDER BY next_review_date, id")
	if err := r.db.SelectContext(ctx, &items, query, ownerID, scheduling.StatusArchived, before.UTC()); err != nil {
		return nil, fmt.Errorf("db.SelectContext(due items) > %w", err)
	}
	return items, nil
}

// Create inserts a new item.
func (r *DBRepository) Create(ctx context.Context, item *scheduling.Item) error {
	return r.BatchCreate(ctx, []*scheduling.Item{item})
}

// BatchCreate inserts items in a single transaction using a multi-row INSERT.
func (r *DBRepository) BatchCreate(ctx context.Context, items []*scheduling.Item) error {
	if len(items) == 0 {
		return nil
	}
	for _, item := range items {
		if err := validateStruct(item); err != nil {
			return err
		}
	}

	query := r.db.Rebind(database.BuildMultiRowInsert("items", itemColumns, len(items)))
	var args []interface{}
	for _, item := range items {
		args = append(args, itemArgs(item)...)
	}

	return database.WithRetry(ctx, r.retry, func(ctx context.Context) error {
		return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("insert items: %w", err)
			}
			return nil
		})
	})
}

// Save writes item if its Version still matches the stored one and then bumps item.Version.
// A stale version returns ErrVersionConflict.
func (r *DBRepository) Save(ctx context.Context, item *scheduling.Item) error {
	if err := validateStruct(item); err != nil {
		return err
	}
	err := database.WithRetry(ctx, r.retry, func(ctx context.Context) error {
		return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
			return r.update(ctx, tx, item)
		})
	})
	if err != nil {
		return err
	}
	item.Version++
	return nil
}

// SaveReview writes the reviewed item and appends its event in one transaction.
func (r *DBRepository) SaveReview(ctx context.Context, item *scheduling.Item, event *scheduling.ReviewEvent) error {
	if err := validateStruct(item); err != nil {
		return err
	}
	if err := validateStruct(event); err != nil {
		return err
	}

	insertEvent := r.db.Rebind(database.BuildMultiRowInsert("review_events", eventColumns, 1))
	err := database.WithRetry(ctx, r.retry, func(ctx context.Context) error {
		return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
			if err := r.update(ctx, tx, item); err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, insertEvent, eventArgs(event)...); err != nil {
				return fmt.Errorf("insert review event: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return err
	}
	item.Version++
	return nil
}

func (r *DBRepository) update(ctx context.Context, tx *sqlx.Tx, item *scheduling.Item) error {
	query := tx.Rebind(`UPDATE items SET
		front = ?, back = ?, topic = ?, difficulty = ?, status = ?,
		ease_factor = ?, interval_days = ?, repetitions = ?, next_review_date = ?,
		total_reviews = ?, correct_reviews = ?, last_review_outcome = ?, last_reviewed_at = ?,
		average_response_time_ms = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND owner_id = ? AND version = ?`)

	result, err := tx.ExecContext(ctx, query,
		item.Front, item.Back, item.Topic, item.Difficulty, item.Status,
		item.EaseFactor, item.IntervalDays, item.Repetitions, item.NextReviewDate.UTC(),
		item.TotalReviews, item.CorrectReviews, item.LastReviewOutcome, utcPtr(item.LastReviewedAt),
		item.AverageResponseTimeMs, item.UpdatedAt.UTC(),
		item.ID, item.OwnerID, item.Version,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update item %s at version %d: %w", item.ID, item.Version, ErrVersionConflict)
	}
	return nil
}

// FindEvents returns the review history of one item, newest first.
func (r *DBRepository) FindEvents(ctx context.Context, ownerID, itemID string) ([]scheduling.ReviewEvent, error) {
	var events []scheduling.ReviewEvent
	query := r.db.Rebind(selectEvents + " WHERE owner_id = ? AND item_id = ? ORDER BY occurred_at DESC, id")
	if err := r.db.SelectContext(ctx, &events, query, ownerID, itemID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(review events) > %w", err)
	}
	return events, nil
}

// FindEventsByOwner returns every review event of ownerID, oldest first.
func (r *DBRepository) FindEventsByOwner(ctx context.Context, ownerID string) ([]scheduling.ReviewEvent, error) {
	var events []scheduling.ReviewEvent
	query := r.db.Rebind(selectEvents + " WHERE owner_id = ? ORDER BY occurred_at, id")
	if err := r.db.SelectContext(ctx, &events, query, ownerID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(review events by owner) > %w", err)
	}
	return events, nil
}

// BatchCreateEvents inserts events in a single transaction using a multi-row INSERT.
func (r *DBRepository) BatchCreateEvents(ctx context.Context, events []*scheduling.ReviewEvent) error {
	if len(events) == 0 {
		return nil
	}
	for _, event := range events {
		if err := validateStruct(event); err != nil {
			return err
		}
	}

	query := r.db.Rebind(database.BuildMultiRowInsert("review_events", eventColumns, len(events)))
	var args []interface{}
	for _, event := range events {
		args = append(args, eventArgs(event)...)
	}

	return database.WithRetry(ctx, r.retry, func(ctx context.Context) error {
		return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("insert review events: %w", err)
			}
			return nil
		})
	})
}

func itemArgs(item *scheduling.Item) []interface{} {
	return []interface{}{
		item.ID, item.OwnerID, item.Front, item.Back, item.Topic, item.Difficulty, item.Status,
		item.EaseFactor, item.IntervalDays, item.Repetitions, item.NextReviewDate.UTC(),
		item.TotalReviews, item.CorrectReviews, item.LastReviewOutcome, utcPtr(item.LastReviewedAt),
		item.AverageResponseTimeMs, item.Version, item.CreatedAt.UTC(), item.UpdatedAt.UTC(),
	}
}

func eventArgs(event *scheduling.ReviewEvent) []interface{} {
	return []interface{}{
		event.ID, event.ItemID, event.OwnerID, event.Outcome, event.ResponseTimeMs, event.Confidence,
		event.SessionID, event.DeviceType, event.StudyEnvironment, event.TimeOfDay,
		event.PreviousIntervalDays, event.IntervalDays,
		event.PreviousEaseFactor, event.EaseFactor, event.Status, event.OccurredAt.UTC(),
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
