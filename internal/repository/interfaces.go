package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/inkwell-app/inkwell/backend/internal/models"
)

// EntryRepository defines read-only access to journal entry facts. The
// analytics core never creates or edits entries.
type EntryRepository interface {
	// ListByOwner returns every entry for the owner, ordered by
	// created_at ascending.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.JournalEntry, error)
	// ListByOwnerSince returns entries created at or after the given
	// UTC instant, ordered by created_at ascending.
	ListByOwnerSince(ctx context.Context, ownerID uuid.UUID, since time.Time) ([]models.JournalEntry, error)
}

// ProfileRepository defines access to writer profiles, including the
// locked read-modify-write used to advance the streak cursor.
type ProfileRepository interface {
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*models.WriterProfile, error)
	// MutateStreak runs mutate against the owner's profile inside a
	// transaction holding an exclusive row lock, serializing concurrent
	// streak updates for the same owner. The mutated fields are written
	// back only when mutate returns true; all fields commit atomically.
	MutateStreak(ctx context.Context, ownerID uuid.UUID, mutate func(p *models.WriterProfile) bool) (*models.WriterProfile, error)
}
