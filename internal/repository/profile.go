package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/inkwell-app/inkwell/backend/internal/models"
)

const profilesTable = "writer_profiles"

var profileColumns = []string{
	"owner_id", "timezone", "daily_word_goal",
	"current_streak", "longest_streak", "last_content_day",
	"created_at", "updated_at",
}

// ErrProfileNotFound is returned when no profile exists for an owner.
var ErrProfileNotFound = errors.New("writer profile not found")

type profileRepository struct {
	db Querier
}

// NewProfileRepository creates a ProfileRepository backed by Postgres.
func NewProfileRepository(db Querier) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*models.WriterProfile, error) {
	sql, args, err := builder.Select(profileColumns...).
		From(profilesTable).
		Where(squirrel.Eq{"owner_id": ownerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build profile query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}

	var profile models.WriterProfile
	if err := pgxscan.ScanOne(&profile, rows); err != nil {
		if pgxscan.NotFound(err) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to scan profile: %w", err)
	}

	return &profile, nil
}

// MutateStreak serializes concurrent streak updates for one owner via a
// SELECT ... FOR UPDATE row lock held until the transaction commits.
// Concurrent callers for the same owner block on the lock and observe
// the committed cursor; other owners are unaffected.
func (r *profileRepository) MutateStreak(ctx context.Context, ownerID uuid.UUID, mutate func(p *models.WriterProfile) bool) (*models.WriterProfile, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	sql, args, err := builder.Select(profileColumns...).
		From(profilesTable).
		Where(squirrel.Eq{"owner_id": ownerID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build locked profile query: %w", err)
	}

	rows, err := tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to lock profile: %w", err)
	}

	var profile models.WriterProfile
	if err := pgxscan.ScanOne(&profile, rows); err != nil {
		if pgxscan.NotFound(err) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to scan locked profile: %w", err)
	}

	if !mutate(&profile) {
		// No field changes; release the lock without writing.
		if err := tx.Commit(ctx); err != nil {
			return nil, fmt.Errorf("failed to commit transaction: %w", err)
		}
		return &profile, nil
	}

	updateSQL, updateArgs, err := builder.Update(profilesTable).
		Set("current_streak", profile.CurrentStreak).
		Set("longest_streak", profile.LongestStreak).
		Set("last_content_day", profile.LastContentDay).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"owner_id": ownerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build profile update: %w", err)
	}

	if _, err := tx.Exec(ctx, updateSQL, updateArgs...); err != nil {
		return nil, fmt.Errorf("failed to update profile streak: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit streak update: %w", err)
	}

	return &profile, nil
}
