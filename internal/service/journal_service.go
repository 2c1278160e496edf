package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"journal-service/internal/domain/entity"
	"journal-service/internal/domain/repository"
	"journal-service/internal/domain/service"
	"journal-service/internal/infrastructure/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type journalService struct {
	entryRepo repository.EntryRepository
	feedback  service.FeedbackService
	publisher service.EventPublisher
	metrics   *metrics.Metrics
	logger    *zap.Logger
	now       func() time.Time
}

// NewJournalService creates a new journal service.
// feedback and publisher may be nil when those integrations are disabled.
func NewJournalService(
	entryRepo repository.EntryRepository,
	feedback service.FeedbackService,
	publisher service.EventPublisher,
	m *metrics.Metrics,
	logger *zap.Logger,
) service.JournalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &journalService{
		entryRepo: entryRepo,
		feedback:  feedback,
		publisher: publisher,
		metrics:   m,
		logger:    logger.Named("journal"),
		now:       time.Now,
	}
}

// Reconcile looks up the entry of the day, merges the patch into it and
// writes the result as an upsert on (user, day).
// A lookup failure aborts before any write.
//
// The lookup matches the anchor against the day's range in the caller's
// current zone, while a merged row keeps its stored entry_day. After a zone
// change a write for "today" can therefore update a row that entry lists
// still show under the previous local date, and the weekly summary shows
// under the new one.
func (s *journalService) Reconcile(
	ctx context.Context,
	userID uuid.UUID,
	day entity.DayKey,
	patch entity.EntryPatch,
) (*entity.JournalEntry, error) {
	if userID == uuid.Nil {
		return nil, entity.ErrAuthRequired
	}
	if day.IsZero() {
		return nil, entity.NewValidationError("day", "is required")
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	lookup, err := s.entryRepo.FindForDay(ctx, userID, day)
	if err != nil {
		return nil, backendError("look up journal entry", err)
	}
	if lookup.Found && lookup.Entry == nil {
		return nil, entity.NewBackendError("look up journal entry", errors.New("found outcome without entry"))
	}

	now := s.now().UTC()

	var base *entity.JournalEntry
	if lookup.Found {
		// keep the stored anchor as the identity of the day
		base = lookup.Entry
	} else {
		base = &entity.JournalEntry{
			ID:        uuid.New(),
			UserID:    userID,
			EntryDate: anchorFor(day, now),
			CreatedAt: now,
		}
	}

	merged := patch.Apply(base)
	if merged.EntryDay == "" {
		merged.EntryDay = day.String()
	}
	merged.UpdatedAt = now

	stored, err := s.entryRepo.Upsert(ctx, merged)
	if err != nil {
		return nil, backendError("save journal entry", err)
	}

	s.metrics.EntrySaved(patch)
	s.publishEntrySaved(ctx, stored)

	s.logger.Debug("journal entry saved",
		zap.String("user_id", userID.String()),
		zap.String("day", day.String()),
		zap.Bool("created", !lookup.Found),
	)

	return stored, nil
}

// RateDay sets today's rating
func (s *journalService) RateDay(ctx context.Context, userID uuid.UUID, loc *time.Location, rating int32) (*entity.JournalEntry, error) {
	return s.Reconcile(ctx, userID, s.today(loc), entity.RatingPatch(rating))
}

// WriteJournal sets today's journal text
func (s *journalService) WriteJournal(ctx context.Context, userID uuid.UUID, loc *time.Location, text string) (*entity.JournalEntry, error) {
	return s.Reconcile(ctx, userID, s.today(loc), entity.TextPatch(text))
}

// SubmitJournal saves first; feedback is only requested after a successful
// save and its failure is reported next to the saved entry
func (s *journalService) SubmitJournal(
	ctx context.Context,
	userID uuid.UUID,
	loc *time.Location,
	text string,
	withFeedback bool,
) (*entity.SubmitResult, error) {
	entry, err := s.WriteJournal(ctx, userID, loc, text)
	if err != nil {
		return nil, err
	}

	result := &entity.SubmitResult{Entry: entry}
	if !withFeedback {
		return result, nil
	}

	feedback, err := s.requestFeedback(ctx, *entry.JournalText)
	if err != nil {
		s.logger.Warn("feedback request failed after save",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		result.FeedbackErr = err
		return result, nil
	}

	result.Feedback = feedback
	return result, nil
}

// EntryForDay returns the entry of day or entity.ErrNotFound
func (s *journalService) EntryForDay(ctx context.Context, userID uuid.UUID, day entity.DayKey) (*entity.JournalEntry, error) {
	if userID == uuid.Nil {
		return nil, entity.ErrAuthRequired
	}

	lookup, err := s.entryRepo.FindForDay(ctx, userID, day)
	if err != nil {
		return nil, backendError("look up journal entry", err)
	}
	if !lookup.Found || lookup.Entry == nil {
		return nil, fmt.Errorf("no journal entry for %s: %w", day, entity.ErrNotFound)
	}

	return lookup.Entry, nil
}

// ListEntries returns all entries of the user, newest first
func (s *journalService) ListEntries(ctx context.Context, userID uuid.UUID) ([]*entity.JournalEntry, error) {
	if userID == uuid.Nil {
		return nil, entity.ErrAuthRequired
	}

	entries, err := s.entryRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, backendError("list journal entries", err)
	}
	return entries, nil
}

// WeeklySummary runs one range query over the current window and aggregates it
func (s *journalService) WeeklySummary(ctx context.Context, userID uuid.UUID, loc *time.Location) (*entity.RatingSummary, error) {
	if userID == uuid.Nil {
		return nil, entity.ErrAuthRequired
	}

	window := entity.BuildWeeklyWindow(s.now(), loc)
	from, to := window.Range()

	entries, err := s.entryRepo.FindInRange(ctx, userID, from, to)
	if err != nil {
		return nil, backendError("load weekly entries", err)
	}

	summary := AggregateWeek(window, entries)
	return &summary, nil
}

// FeedbackForDay asks for feedback on the stored text of day
func (s *journalService) FeedbackForDay(ctx context.Context, userID uuid.UUID, day entity.DayKey) (*entity.Feedback, error) {
	entry, err := s.EntryForDay(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	if !entry.HasText() {
		return nil, fmt.Errorf("no journal text for %s: %w", day, entity.ErrNotFound)
	}

	return s.requestFeedback(ctx, *entry.JournalText)
}

func (s *journalService) requestFeedback(ctx context.Context, text string) (*entity.Feedback, error) {
	if s.feedback == nil {
		return nil, fmt.Errorf("feedback is not configured: %w", entity.ErrCompletionFailed)
	}
	return s.feedback.RequestFeedback(ctx, text)
}

func (s *journalService) today(loc *time.Location) entity.DayKey {
	return entity.DayKeyOf(s.now(), loc)
}

func (s *journalService) publishEntrySaved(ctx context.Context, entry *entity.JournalEntry) {
	if s.publisher == nil {
		return
	}

	event := &entity.EntrySavedEvent{
		EventID:  uuid.New().String(),
		UserID:   entry.UserID.String(),
		EntryID:  entry.ID.String(),
		EntryDay: entry.EntryDay,
		Rating:   entry.Rating,
		HasText:  entry.HasText(),
		SavedAt:  entry.UpdatedAt,
	}

	if err := s.publisher.PublishEntrySaved(ctx, event); err != nil {
		s.logger.Warn("failed to publish entry saved event", zap.Error(err))
	}
}

// anchorFor returns now when it falls on day, else the start of day
func anchorFor(day entity.DayKey, now time.Time) time.Time {
	if day.Contains(now) {
		return now
	}
	return day.Start().UTC()
}

func backendError(op string, err error) error {
	if errors.Is(err, entity.ErrBackend) {
		return err
	}
	return entity.NewBackendError(op, err)
}
