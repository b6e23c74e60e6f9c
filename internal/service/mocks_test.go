package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/inkwell-app/inkwell/backend/internal/models"
	"github.com/inkwell-app/inkwell/backend/internal/repository"
)

// mockEntryRepository is an in-memory EntryRepository for testing.
type mockEntryRepository struct {
	mu      sync.Mutex
	entries []models.JournalEntry
}

func (m *mockEntryRepository) add(entries ...models.JournalEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entries...)
}

func (m *mockEntryRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.JournalEntry, error) {
	return m.ListByOwnerSince(ctx, ownerID, time.Time{})
}

func (m *mockEntryRepository) ListByOwnerSince(ctx context.Context, ownerID uuid.UUID, since time.Time) ([]models.JournalEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []models.JournalEntry
	for _, e := range m.entries {
		if e.OwnerID == ownerID && !e.CreatedAt.Before(since) {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

// mockProfileRepository is an in-memory ProfileRepository. MutateStreak
// holds a per-owner mutex for the duration of the mutation, mirroring
// the row lock of the Postgres implementation.
type mockProfileRepository struct {
	mu       sync.Mutex
	locks    map[uuid.UUID]*sync.Mutex
	profiles map[uuid.UUID]*models.WriterProfile
}

func newMockProfileRepository() *mockProfileRepository {
	return &mockProfileRepository{
		locks:    make(map[uuid.UUID]*sync.Mutex),
		profiles: make(map[uuid.UUID]*models.WriterProfile),
	}
}

func (m *mockProfileRepository) put(p *models.WriterProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *p
	m.profiles[p.OwnerID] = &clone
}

func (m *mockProfileRepository) ownerLock(ownerID uuid.UUID) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[ownerID]
	if !ok {
		l = &sync.Mutex{}
		m.locks[ownerID] = l
	}
	return l
}

func (m *mockProfileRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*models.WriterProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[ownerID]
	if !ok {
		return nil, repository.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *mockProfileRepository) MutateStreak(ctx context.Context, ownerID uuid.UUID, mutate func(p *models.WriterProfile) bool) (*models.WriterProfile, error) {
	lock := m.ownerLock(ownerID)
	lock.Lock()
	defer lock.Unlock()

	m.mu.Lock()
	p, ok := m.profiles[ownerID]
	m.mu.Unlock()
	if !ok {
		return nil, repository.ErrProfileNotFound
	}

	working := *p
	if mutate(&working) {
		m.mu.Lock()
		stored := working
		m.profiles[ownerID] = &stored
		m.mu.Unlock()
	}
	result := working
	return &result, nil
}

// day parses a "2006-01-02" date into its local-day representation.
func day(t string) time.Time {
	parsed, err := time.Parse("2006-01-02", t)
	if err != nil {
		panic(err)
	}
	return parsed
}

// entryAt builds a content entry for an owner at a UTC instant.
func entryAt(ownerID uuid.UUID, at time.Time, words int, mood *int) models.JournalEntry {
	return models.JournalEntry{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		CreatedAt:  at,
		WordCount:  words,
		MoodRating: mood,
	}
}

func moodOf(rating int) *int {
	return &rating
}

// frozen returns a clock pinned to the given instant.
func frozen(at time.Time) func() time.Time {
	return func() time.Time { return at }
}
