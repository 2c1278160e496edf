package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"journal-service/internal/domain/entity"
	"journal-service/internal/domain/repository"

	"github.com/google/uuid"
)

// entryStore is an in-memory EntryRepository that enforces the
// (user_id, entry_day) uniqueness the way the SQL upsert does
type entryStore struct {
	mu      sync.Mutex
	rows    map[string]*entity.JournalEntry
	order   []string
	findErr error
	saveErr error
	finds   int
	saves   int
}

func newEntryStore() *entryStore {
	return &entryStore{rows: make(map[string]*entity.JournalEntry)}
}

func rowKey(userID uuid.UUID, day string) string {
	return userID.String() + "/" + day
}

func (s *entryStore) FindForDay(_ context.Context, userID uuid.UUID, day entity.DayKey) (repository.EntryLookup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.finds++
	if s.findErr != nil {
		return repository.EntryLookup{}, s.findErr
	}
	for _, key := range s.order {
		row := s.rows[key]
		if row.UserID == userID && !row.EntryDate.Before(day.Start()) && row.EntryDate.Before(day.NextStart()) {
			return repository.Found(row.Clone()), nil
		}
	}
	return repository.NotFound(), nil
}

func (s *entryStore) FindInRange(_ context.Context, userID uuid.UUID, from, to time.Time) ([]*entity.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findErr != nil {
		return nil, s.findErr
	}
	var out []*entity.JournalEntry
	for _, key := range s.order {
		row := s.rows[key]
		if row.UserID == userID && !row.EntryDate.Before(from) && row.EntryDate.Before(to) {
			out = append(out, row.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].EntryDate.Before(out[j].EntryDate) })
	return out, nil
}

func (s *entryStore) Upsert(_ context.Context, entry *entity.JournalEntry) (*entity.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saves++
	if s.saveErr != nil {
		return nil, s.saveErr
	}

	key := rowKey(entry.UserID, entry.EntryDay)
	existing, ok := s.rows[key]
	if !ok {
		s.rows[key] = entry.Clone()
		s.order = append(s.order, key)
		return entry.Clone(), nil
	}

	merged := existing.Clone()
	if entry.Rating != nil {
		merged.Rating = entry.Clone().Rating
	}
	if entry.JournalText != nil {
		merged.JournalText = entry.Clone().JournalText
	}
	merged.UpdatedAt = entry.UpdatedAt
	s.rows[key] = merged
	return merged.Clone(), nil
}

func (s *entryStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*entity.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*entity.JournalEntry
	for _, key := range s.order {
		if row := s.rows[key]; row.UserID == userID {
			out = append(out, row.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].EntryDate.After(out[j].EntryDate) })
	return out, nil
}

func (s *entryStore) count(userID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, row := range s.rows {
		if row.UserID == userID {
			n++
		}
	}
	return n
}

func (s *entryStore) put(entry *entity.JournalEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := rowKey(entry.UserID, entry.EntryDay)
	if _, ok := s.rows[key]; !ok {
		s.order = append(s.order, key)
	}
	s.rows[key] = entry.Clone()
}

type fakeCompletion struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func (c *fakeCompletion) Complete(_ context.Context, prompt string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.prompts = append(c.prompts, prompt)
	if c.err != nil {
		return "", c.err
	}
	return c.reply, nil
}

func (c *fakeCompletion) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.prompts)
}

type fakePublisher struct {
	mu         sync.Mutex
	registered []*entity.UserRegisteredEvent
	saved      []*entity.EntrySavedEvent
	err        error
}

func (p *fakePublisher) PublishUserRegistered(_ context.Context, event *entity.UserRegisteredEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.registered = append(p.registered, event)
	return p.err
}

func (p *fakePublisher) PublishEntrySaved(_ context.Context, event *entity.EntrySavedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saved = append(p.saved, event)
	return p.err
}

type sentReminder struct {
	to, name string
	day      entity.DayKey
}

type fakeMailer struct {
	mu           sync.Mutex
	verification []string
	reminders    []sentReminder
	err          error
}

func (m *fakeMailer) SendVerificationEmail(_ context.Context, to, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.verification = append(m.verification, to)
	return nil
}

func (m *fakeMailer) SendReminderEmail(_ context.Context, to, name string, day entity.DayKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.reminders = append(m.reminders, sentReminder{to: to, name: name, day: day})
	return nil
}

type userStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
	err   error
}

func newUserStore() *userStore {
	return &userStore{users: make(map[uuid.UUID]*entity.User)}
}

func (s *userStore) Create(_ context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	for _, u := range s.users {
		if u.Email == user.Email {
			return entity.ErrConflict
		}
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *userStore) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *userStore) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, entity.ErrNotFound
}

func (s *userStore) Update(_ context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.users[user.ID]; !ok {
		return entity.ErrNotFound
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *userStore) EmailExists(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *userStore) ListReminderRecipients(_ context.Context) ([]*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	var out []*entity.User
	for _, u := range s.users {
		if u.IsActive && u.EmailVerified && u.RemindersEnabled {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

type sessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entity.Session
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[uuid.UUID]*entity.Session)}
}

func (s *sessionStore) Set(_ context.Context, session *entity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *session
	s.sessions[session.ID] = &cp
	return nil
}

func (s *sessionStore) Get(_ context.Context, id uuid.UUID) (*entity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	cp := *session
	return &cp, nil
}

func (s *sessionStore) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[id]
	return ok, nil
}

func (s *sessionStore) UpdateLastActivity(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[id]; ok {
		session.UpdateActivity()
	}
	return nil
}

func (s *sessionStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

type tokenStore struct {
	mu     sync.Mutex
	next   int
	tokens map[string]string
}

func newTokenStore() *tokenStore {
	return &tokenStore{tokens: make(map[string]string)}
}

func (s *tokenStore) GenerateToken() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return fmt.Sprintf("token-%d", s.next), nil
}

func (s *tokenStore) StoreToken(_ context.Context, token, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = userID
	return nil
}

func (s *tokenStore) GetUserIDByToken(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.tokens[token]
	if !ok {
		return "", entity.ErrNotFound
	}
	return userID, nil
}

func (s *tokenStore) DeleteToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}

func (s *tokenStore) tokenFor(userID uuid.UUID) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, owner := range s.tokens {
		if owner == userID.String() {
			return token
		}
	}
	return ""
}

type reminderLog struct {
	mu   sync.Mutex
	sent map[string]bool
}

func newReminderLog() *reminderLog {
	return &reminderLog{sent: make(map[string]bool)}
}

func (l *reminderLog) MarkSent(_ context.Context, userID uuid.UUID, day entity.DayKey) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := rowKey(userID, day.String())
	if l.sent[key] {
		return false, nil
	}
	l.sent[key] = true
	return true, nil
}
