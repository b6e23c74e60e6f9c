package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/inkwell-app/inkwell/backend/internal/models"
)

// StreakService maintains the per-writer streak cursor.
type StreakService interface {
	// RecordEntryWritten advances the streak for a content-bearing
	// entry created at the given UTC instant. It is idempotent for
	// repeated entries on the same local day and ignores backdated
	// entries. Invalidates the owner's cached statistics.
	RecordEntryWritten(ctx context.Context, ownerID uuid.UUID, createdAt time.Time) (*models.WriterProfile, error)

	// RecalculateStreak recomputes current and longest streak from the
	// full entry history. When apply is true the recomputed values
	// overwrite the stored profile cursor (repair path).
	RecalculateStreak(ctx context.Context, ownerID uuid.UUID, apply bool) (*models.StreakState, error)
}

// StatisticsService produces the full writing-statistics payload.
type StatisticsService interface {
	GetStatistics(ctx context.Context, ownerID uuid.UUID, period models.Period) (*models.StatisticsResponse, error)
}
