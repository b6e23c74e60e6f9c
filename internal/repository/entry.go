package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/inkwell-app/inkwell/backend/internal/models"
)

const entriesTable = "journal_entries"

var entryColumns = []string{"id", "owner_id", "created_at", "word_count", "mood_rating"}

type entryRepository struct {
	db Querier
}

// NewEntryRepository creates an EntryRepository backed by Postgres.
func NewEntryRepository(db Querier) EntryRepository {
	return &entryRepository{db: db}
}

func (r *entryRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.JournalEntry, error) {
	query := builder.Select(entryColumns...).
		From(entriesTable).
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("created_at ASC")

	return r.list(ctx, query)
}

func (r *entryRepository) ListByOwnerSince(ctx context.Context, ownerID uuid.UUID, since time.Time) ([]models.JournalEntry, error) {
	query := builder.Select(entryColumns...).
		From(entriesTable).
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.GtOrEq{"created_at": since}).
		OrderBy("created_at ASC")

	return r.list(ctx, query)
}

func (r *entryRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]models.JournalEntry, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build entry query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}

	var entries []models.JournalEntry
	if err := pgxscan.ScanAll(&entries, rows); err != nil {
		return nil, fmt.Errorf("failed to scan entries: %w", err)
	}

	return entries, nil
}
