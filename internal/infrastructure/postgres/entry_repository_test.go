package postgres

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"journal-service/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestPool connects to JOURNAL_TEST_DATABASE_URL and applies the schema
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("JOURNAL_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("JOURNAL_TEST_DATABASE_URL is not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	schema, err := os.ReadFile("../../../migrations/000001_init.up.sql")
	require.NoError(t, err)
	_, err = pool.Exec(ctx, string(schema))
	require.NoError(t, err)

	return pool
}

func createTestUser(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, email, password_hash) VALUES ($1, $2, 'x')`,
		id, id.String()+"@example.com",
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	})
	return id
}

func newEntry(userID uuid.UUID, anchor time.Time, day string) *entity.JournalEntry {
	return &entity.JournalEntry{
		ID:        uuid.New(),
		UserID:    userID,
		EntryDate: anchor,
		EntryDay:  day,
		CreatedAt: anchor,
		UpdatedAt: anchor,
	}
}

func TestEntryRepository_UpsertMerges(t *testing.T) {
	pool := newTestPool(t)
	repo := NewEntryRepository(pool)
	ctx := context.Background()
	userID := createTestUser(t, pool)

	anchor := time.Date(2024, time.May, 10, 9, 0, 0, 0, time.UTC)
	first := newEntry(userID, anchor, "2024-05-10")
	rating := int32(4)
	first.Rating = &rating

	stored, err := repo.Upsert(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-10", stored.EntryDay)

	second := newEntry(userID, anchor.Add(8*time.Hour), "2024-05-10")
	text := "evening notes"
	second.JournalText = &text

	merged, err := repo.Upsert(ctx, second)
	require.NoError(t, err)

	assert.Equal(t, first.ID, merged.ID)
	assert.True(t, merged.EntryDate.Equal(anchor))
	require.NotNil(t, merged.Rating)
	assert.Equal(t, int32(4), *merged.Rating)
	assert.Equal(t, "evening notes", *merged.JournalText)
}

func TestEntryRepository_ConcurrentUpsertsKeepOneRow(t *testing.T) {
	pool := newTestPool(t)
	repo := NewEntryRepository(pool)
	ctx := context.Background()
	userID := createTestUser(t, pool)
	anchor := time.Date(2024, time.May, 11, 9, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rating := int32(i%5 + 1)
			entry := newEntry(userID, anchor.Add(time.Duration(i)*time.Minute), "2024-05-11")
			entry.Rating = &rating
			_, err := repo.Upsert(ctx, entry)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	entries, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestEntryRepository_Lookups(t *testing.T) {
	pool := newTestPool(t)
	repo := NewEntryRepository(pool)
	ctx := context.Background()
	userID := createTestUser(t, pool)

	loc := time.FixedZone("UTC+02:00", 2*3600)
	day := entity.NewDayKey(2024, time.May, 12, loc)

	lookup, err := repo.FindForDay(ctx, userID, day)
	require.NoError(t, err)
	assert.False(t, lookup.Found)

	// 23:30 local on May 12 is 21:30 UTC
	_, err = repo.Upsert(ctx, newEntry(userID, time.Date(2024, time.May, 12, 21, 30, 0, 0, time.UTC), "2024-05-12"))
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, newEntry(userID, time.Date(2024, time.May, 12, 22, 30, 0, 0, time.UTC), "2024-05-13"))
	require.NoError(t, err)

	lookup, err = repo.FindForDay(ctx, userID, day)
	require.NoError(t, err)
	require.True(t, lookup.Found)
	assert.Equal(t, "2024-05-12", lookup.Entry.EntryDay)

	entries, err := repo.FindInRange(ctx, userID, day.Start(), day.AddDays(1).NextStart())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2024-05-12", entries[0].EntryDay)

	entries, err = repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2024-05-13", entries[0].EntryDay)
}
