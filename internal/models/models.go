package models

import (
	"time"

	"github.com/google/uuid"
)

// JournalEntry is a single journal entry as produced by the authoring
// subsystem. The analytics core treats entries as read-only facts.
// Entries with WordCount == 0 are placeholder notes and are excluded
// from streak, consistency, day-of-week and time-of-day computations.
type JournalEntry struct {
	ID         uuid.UUID `json:"id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	CreatedAt  time.Time `json:"created_at"`
	WordCount  int       `json:"word_count"`
	MoodRating *int      `json:"mood_rating,omitempty"`
}

// HasContent reports whether the entry counts toward streaks.
func (e JournalEntry) HasContent() bool {
	return e.WordCount > 0
}

// WriterProfile holds the per-user settings and the streak cursor.
// CurrentStreak, LongestStreak and LastContentDay are mutated only by
// the streak service, under an owner-scoped exclusive lock.
type WriterProfile struct {
	OwnerID        uuid.UUID  `json:"owner_id"`
	Timezone       string     `json:"timezone"`
	DailyWordGoal  int        `json:"daily_word_goal"`
	CurrentStreak  int        `json:"current_streak"`
	LongestStreak  int        `json:"longest_streak"`
	LastContentDay *time.Time `json:"last_content_day,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// RecordEntryRequest is the notification payload sent by the entry
// authoring subsystem after a content-bearing entry is persisted.
type RecordEntryRequest struct {
	CreatedAt time.Time `json:"created_at" binding:"required"`
}

// RecalculateStreakRequest controls the streak repair path. When Apply
// is true the recomputed values overwrite the stored cursor.
type RecalculateStreakRequest struct {
	Apply bool `json:"apply"`
}

// StreakState is the pair of streak counters derived from history.
type StreakState struct {
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
}
