// Package review coordinates scheduling decisions with persistence and the due-set cache.
package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/avast/retry-go"
	"github.com/google/uuid"

	"github.com/at-ishikawa/flashrev/internal/cache"
	"github.com/at-ishikawa/flashrev/internal/config"
	"github.com/at-ishikawa/flashrev/internal/item"
	"github.com/at-ishikawa/flashrev/internal/scheduling"
	"github.com/at-ishikawa/flashrev/internal/statistics"
)

const (
	maxFrontLength = 1000
	maxBackLength  = 2000
	maxTopicLength = 100

	defaultListLimit = 20
	maxListLimit     = 100
)

// ErrNotArchived is returned when restoring an item that is not archived.
var ErrNotArchived = errors.New("item is not archived")

// DueCache holds each learner's due candidates for the current day.
type DueCache = cache.Cache[[]scheduling.Item]

// Service runs reviews and due-set queries for learners.
type Service struct {
	repo    item.Repository
	cache   DueCache
	profile scheduling.Profile
	clock   scheduling.Clock
	cfg     config.ReviewConfig
	newID   func() string
	logger  *slog.Logger
}

type Option func(*Service)

// WithCache sets the due candidate cache. Without it every query reads the store.
func WithCache(c DueCache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

func WithClock(clock scheduling.Clock) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// WithIDGenerator replaces the UUID generator used for new items and review events.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		s.newID = newID
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a Service that schedules with profile.
func NewService(repo item.Repository, profile scheduling.Profile, cfg config.ReviewConfig, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		cache:   cache.Noop[[]scheduling.Item]{},
		profile: profile,
		clock:   scheduling.SystemClock{},
		cfg:     cfg,
		newID:   uuid.NewString,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns one item of ownerID.
func (s *Service) Get(ctx context.Context, ownerID, itemID string) (*scheduling.Item, error) {
	it, err := s.repo.Get(ctx, ownerID, itemID)
	if err != nil {
		return nil, fmt.Errorf("repo.Get() > %w", err)
	}
	return it, nil
}

// CreateItem stores a new item that is due immediately.
func (s *Service) CreateItem(ctx context.Context, ownerID string, content scheduling.Content) (*scheduling.Item, error) {
	content.Front = strings.TrimSpace(content.Front)
	content.Back = strings.TrimSpace(content.Back)
	content.Topic = strings.TrimSpace(content.Topic)
	if err := validateContent(content); err != nil {
		return nil, err
	}

	it := s.profile.NewItem(s.newID(), ownerID, content, s.clock.Now())
	if err := s.repo.Create(ctx, &it); err != nil {
		return nil, fmt.Errorf("repo.Create() > %w", err)
	}
	s.invalidate(ctx, ownerID)
	s.logger.Info("created item", "item_id", it.ID, "owner_id", ownerID)
	return &it, nil
}

func validateContent(content scheduling.Content) error {
	invalid := func(field, reason string) error {
		return &scheduling.ValidationError{Field: field, Reason: reason, Err: scheduling.ErrInvalidInput}
	}
	switch {
	case content.Front == "":
		return invalid("front", "must not be empty")
	case content.Back == "":
		return invalid("back", "must not be empty")
	case utf8.RuneCountInString(content.Front) > maxFrontLength:
		return invalid("front", fmt.Sprintf("must be at most %d characters", maxFrontLength))
	case utf8.RuneCountInString(content.Back) > maxBackLength:
		return invalid("back", fmt.Sprintf("must be at most %d characters", maxBackLength))
	case utf8.RuneCountInString(content.Topic) > maxTopicLength:
		return invalid("topic", fmt.Sprintf("must be at most %d characters", maxTopicLength))
	case strings.EqualFold(content.Front, content.Back):
		return invalid("back", "must differ from front")
	}
	if content.Difficulty != "" {
		switch content.Difficulty {
		case scheduling.DifficultyEasy, scheduling.DifficultyMedium, scheduling.DifficultyHard:
		default:
			return invalid("difficulty", fmt.Sprintf("unknown difficulty %q", content.Difficulty))
		}
	}
	return nil
}

// Review applies outcome to the item and persists the new state together with its review event.
// A concurrent review of the same item makes the save fail with a version conflict; the whole
// read, compute and save cycle is then repeated on fresh state, up to MaxConflictRetries times.
func (s *Service) Review(ctx context.Context, ownerID, itemID string, outcome scheduling.Outcome, input scheduling.ReviewInput) (*scheduling.ReviewResult, error) {
	if err := outcome.Validate(); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if input.EventID == "" {
		input.EventID = s.newID()
	}

	var result scheduling.ReviewResult
	err := retry.Do(
		func() error {
			it, err := s.repo.Get(ctx, ownerID, itemID)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("repo.Get() > %w", err))
			}
			s.warnOutOfRange(it)

			result, err = s.profile.ReviewItem(*it, outcome, input, s.clock.Now())
			if err != nil {
				return retry.Unrecoverable(err)
			}
			if err := s.repo.SaveReview(ctx, &result.Item, &result.Event); err != nil {
				if errors.Is(err, item.ErrVersionConflict) {
					return err
				}
				return retry.Unrecoverable(fmt.Errorf("repo.SaveReview() > %w", err))
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(s.cfg.MaxConflictRetries+1),
		retry.Delay(10*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			s.logger.Debug("retrying review after version conflict",
				"item_id", itemID,
				"attempt", n+1,
				"error", err)
		}),
	)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, ownerID)
	s.logger.Info("reviewed item",
		"item_id", itemID,
		"outcome", outcome,
		"interval_days", result.Item.IntervalDays,
		"ease_factor", result.Item.EaseFactor,
		"status", result.Item.Status)
	return &result, nil
}

func (s *Service) warnOutOfRange(it *scheduling.Item) {
	if it.EaseFactor < s.profile.MinEase || it.EaseFactor > s.profile.MaxEase || it.IntervalDays < 1 || it.Repetitions < 0 {
		s.logger.Warn("stored scheduling state is out of range and will be clamped",
			"item_id", it.ID,
			"ease_factor", it.EaseFactor,
			"interval_days", it.IntervalDays,
			"repetitions", it.Repetitions)
	}
}

// Restore moves an archived item back to ACTIVE and makes it due now. Its counters and ease are kept.
func (s *Service) Restore(ctx context.Context, ownerID, itemID string) (*scheduling.Item, error) {
	it, err := s.repo.Get(ctx, ownerID, itemID)
	if err != nil {
		return nil, fmt.Errorf("repo.Get() > %w", err)
	}
	if it.Status != scheduling.StatusArchived {
		return nil, fmt.Errorf("restore item %s in status %s: %w", itemID, it.Status, ErrNotArchived)
	}

	now := s.clock.Now()
	it.Status = scheduling.StatusActive
	it.NextReviewDate = now
	it.UpdatedAt = now
	if err := s.repo.Save(ctx, it); err != nil {
		return nil, fmt.Errorf("repo.Save() > %w", err)
	}
	s.invalidate(ctx, ownerID)
	s.logger.Info("restored item", "item_id", itemID)
	return it, nil
}

// Priority returns the review priority of one item.
func (s *Service) Priority(ctx context.Context, ownerID, itemID string) (int, error) {
	it, err := s.repo.Get(ctx, ownerID, itemID)
	if err != nil {
		return 0, fmt.Errorf("repo.Get() > %w", err)
	}
	return scheduling.ComputePriority(*it, s.clock.Now()), nil
}

// DueQueue returns the items ownerID should review now, highest priority first,
// each with the priority it was ranked by.
func (s *Service) DueQueue(ctx context.Context, ownerID string, opts scheduling.DueOptions) ([]scheduling.DueItem, error) {
	now := s.clock.Now()
	candidates, err := s.dueCandidates(ctx, ownerID, now)
	if err != nil {
		return nil, err
	}
	return scheduling.RankDue(candidates, opts, now), nil
}

// ListItems returns one page of the items of ownerID, newest first.
// A zero limit means the default page size of 20.
func (s *Service) ListItems(ctx context.Context, ownerID string, filter item.ListFilter) ([]scheduling.Item, error) {
	if filter.Limit == 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit < 0 || filter.Limit > maxListLimit {
		return nil, &scheduling.ValidationError{Field: "limit", Reason: fmt.Sprintf("must be between 1 and %d", maxListLimit), Err: scheduling.ErrInvalidInput}
	}
	if filter.Offset < 0 {
		return nil, &scheduling.ValidationError{Field: "offset", Reason: "must not be negative", Err: scheduling.ErrInvalidInput}
	}
	items, err := s.repo.List(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("repo.List() > %w", err)
	}
	return items, nil
}

// CountDue returns the size of the unbounded due set.
func (s *Service) CountDue(ctx context.Context, ownerID string, includeOverdue bool) (int, error) {
	due, err := s.DueQueue(ctx, ownerID, scheduling.DueOptions{IncludeOverdue: includeOverdue})
	if err != nil {
		return 0, err
	}
	return len(due), nil
}

// Events returns the review history of one item, newest first.
func (s *Service) Events(ctx context.Context, ownerID, itemID string) ([]scheduling.ReviewEvent, error) {
	if _, err := s.repo.Get(ctx, ownerID, itemID); err != nil {
		return nil, fmt.Errorf("repo.Get() > %w", err)
	}
	events, err := s.repo.FindEvents(ctx, ownerID, itemID)
	if err != nil {
		return nil, fmt.Errorf("repo.FindEvents() > %w", err)
	}
	return events, nil
}

// Report is the statistics view of one learner.
type Report struct {
	Deck    statistics.DeckStatistics         `json:"deck"`
	Reviews statistics.ReviewStatisticsResult `json:"reviews"`
}

// Stats summarizes the deck of ownerID and its review history, optionally filtered by year and month.
func (s *Service) Stats(ctx context.Context, ownerID string, year, month int) (*Report, error) {
	items, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("repo.FindByOwner() > %w", err)
	}
	events, err := s.repo.FindEventsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("repo.FindEventsByOwner() > %w", err)
	}
	reviews, err := statistics.CalculateReviewStatistics(events, year, month)
	if err != nil {
		return nil, fmt.Errorf("statistics.CalculateReviewStatistics() > %w", err)
	}
	return &Report{
		Deck:    statistics.CalculateDeckStatistics(items, s.clock.Now()),
		Reviews: reviews,
	}, nil
}

// dueCandidates returns every non-archived item scheduled before the end of the current day.
// The result is cached per learner and day; writes through this Service invalidate it.
func (s *Service) dueCandidates(ctx context.Context, ownerID string, now time.Time) ([]scheduling.Item, error) {
	key := dueKey(ownerID, now)
	candidates, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("failed to read due cache", "key", key, "error", err)
	}
	if ok {
		return candidates, nil
	}

	candidates, err = s.repo.FindDueCandidates(ctx, ownerID, scheduling.StartOfDay(now).AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("repo.FindDueCandidates() > %w", err)
	}
	if err := s.cache.Set(ctx, key, candidates); err != nil {
		s.logger.Warn("failed to write due cache", "key", key, "error", err)
	}
	return candidates, nil
}

// Invalidate drops the cached due candidates of ownerID, for writers that bypass this Service.
func (s *Service) Invalidate(ctx context.Context, ownerID string) {
	s.invalidate(ctx, ownerID)
}

func (s *Service) invalidate(ctx context.Context, ownerID string) {
	key := dueKey(ownerID, s.clock.Now())
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to invalidate due cache", "key", key, "error", err)
	}
}

func dueKey(ownerID string, now time.Time) string {
	return cache.Key("due", ownerID, now.Format(time.DateOnly))
}
