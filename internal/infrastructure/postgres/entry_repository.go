package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"journal-service/internal/domain/entity"
	"journal-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `id, user_id, entry_date, entry_day::text, rating, journal_entry, created_at, updated_at`

// entryRepository implements repository.EntryRepository
type entryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new journal entry repository
func NewEntryRepository(pool *pgxpool.Pool) repository.EntryRepository {
	return &entryRepository{
		pool: pool,
	}
}

// FindForDay looks up the entry anchored inside the local day
func (r *entryRepository) FindForDay(ctx context.Context, userID uuid.UUID, day entity.DayKey) (repository.EntryLookup, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE user_id = $1 AND entry_date >= $2 AND entry_date < $3
		ORDER BY entry_date ASC
		LIMIT 1
	`

	entry, err := scanEntry(r.pool.QueryRow(ctx, query, userID, day.Start(), day.NextStart()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.NotFound(), nil
		}
		return repository.EntryLookup{}, entity.NewBackendError("find journal entry", err)
	}

	return repository.Found(entry), nil
}

// FindInRange returns entries with from <= entry_date < to, oldest first
func (r *entryRepository) FindInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*entity.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE user_id = $1 AND entry_date >= $2 AND entry_date < $3
		ORDER BY entry_date ASC
	`

	rows, err := r.pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, entity.NewBackendError("query journal entries", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// Upsert inserts the entry or merges it into the row of the same (user, day).
// The stored anchor and creation time of an existing row are kept.
func (r *entryRepository) Upsert(ctx context.Context, entry *entity.JournalEntry) (*entity.JournalEntry, error) {
	query := `
		INSERT INTO journal_entries (id, user_id, entry_date, entry_day, rating, journal_entry, created_at, updated_at)
		VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8)
		ON CONFLICT (user_id, entry_day) DO UPDATE SET
			rating = COALESCE(EXCLUDED.rating, journal_entries.rating),
			journal_entry = COALESCE(EXCLUDED.journal_entry, journal_entries.journal_entry),
			updated_at = EXCLUDED.updated_at
		RETURNING ` + entryColumns

	stored, err := scanEntry(r.pool.QueryRow(ctx, query,
		entry.ID,
		entry.UserID,
		entry.EntryDate,
		entry.EntryDay,
		entry.Rating,
		entry.JournalText,
		entry.CreatedAt,
		entry.UpdatedAt,
	))
	if err != nil {
		return nil, entity.NewBackendError("upsert journal entry", err)
	}

	return stored, nil
}

// ListByUser returns all entries of a user, newest first
func (r *entryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE user_id = $1
		ORDER BY entry_date DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, entity.NewBackendError("list journal entries", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

func scanEntry(row pgx.Row) (*entity.JournalEntry, error) {
	var entry entity.JournalEntry
	err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.EntryDate,
		&entry.EntryDay,
		&entry.Rating,
		&entry.JournalText,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func collectEntries(rows pgx.Rows) ([]*entity.JournalEntry, error) {
	var entries []*entity.JournalEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, entity.NewBackendError("scan journal entry", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, entity.NewBackendError("iterate journal entries", fmt.Errorf("rows: %w", err))
	}

	return entries, nil
}
