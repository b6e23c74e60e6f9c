package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/inkwell-app/inkwell/backend/internal/logger"
	"github.com/inkwell-app/inkwell/backend/internal/models"
	"github.com/inkwell-app/inkwell/backend/internal/repository"
)

type streakService struct {
	profileRepo repository.ProfileRepository
	entryRepo   repository.EntryRepository
	cache       *StatisticsCache
	resolver    LocalDayResolver
	now         func() time.Time
}

// NewStreakService creates a new streak service.
func NewStreakService(profileRepo repository.ProfileRepository, entryRepo repository.EntryRepository, cache *StatisticsCache) StreakService {
	return &streakService{
		profileRepo: profileRepo,
		entryRepo:   entryRepo,
		cache:       cache,
		now:         time.Now,
	}
}

// RecordEntryWritten advances the streak cursor for one qualifying
// entry. The read-compare-write runs inside the repository's exclusive
// per-owner lock, so two near-simultaneous entries for the same owner
// cannot both apply an increment against the stale cursor.
func (s *streakService) RecordEntryWritten(ctx context.Context, ownerID uuid.UUID, createdAt time.Time) (*models.WriterProfile, error) {
	var oldCursor, newCursor *time.Time

	profile, err := s.profileRepo.MutateStreak(ctx, ownerID, func(p *models.WriterProfile) bool {
		day := s.resolver.Resolve(createdAt, p.Timezone)
		oldCursor = cloneDay(p.LastContentDay)
		changed := advanceStreak(p, day)
		newCursor = cloneDay(p.LastContentDay)
		return changed
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record entry for streak: %w", err)
	}

	// Drop every period variant under both the pre- and post-write
	// cursor, so a stale key cannot be served or repopulated after the
	// commit.
	s.cache.InvalidateOwner(ownerID, oldCursor, newCursor)

	logger.FromContext(ctx).Debug("streak recorded",
		logger.String("owner_id", ownerID.String()),
		logger.Int("current_streak", profile.CurrentStreak),
		logger.Int("longest_streak", profile.LongestStreak),
	)

	return profile, nil
}

// advanceStreak applies one content-day observation to the profile's
// streak fields. Returns false when nothing changed (same-day repeat or
// backdated entry).
func advanceStreak(p *models.WriterProfile, day time.Time) bool {
	switch {
	case p.LastContentDay == nil:
		// First-ever content day.
		p.CurrentStreak = 1
		if p.LongestStreak < 1 {
			p.LongestStreak = 1
		}
		p.LastContentDay = cloneDay(&day)
		return true

	case day.Equal(*p.LastContentDay):
		// Additional entries on an already-counted day.
		return false

	case day.Before(*p.LastContentDay):
		// Backdated entries never disturb the live streak.
		return false

	case daysBetween(*p.LastContentDay, day) == 1:
		p.CurrentStreak++
		if p.CurrentStreak > p.LongestStreak {
			p.LongestStreak = p.CurrentStreak
		}
		p.LastContentDay = cloneDay(&day)
		return true

	default:
		// Gap of two or more days: the streak restarts, the record
		// stands.
		p.CurrentStreak = 1
		p.LastContentDay = cloneDay(&day)
		return true
	}
}

// RecalculateStreak is the canonical full recompute over the complete
// content history, used to verify or repair the incremental cursor.
func (s *streakService) RecalculateStreak(ctx context.Context, ownerID uuid.UUID, apply bool) (*models.StreakState, error) {
	profile, err := s.profileRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	entries, err := s.entryRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	days := contentDays(entries, profile.Timezone, s.resolver)
	today := s.resolver.Resolve(s.now(), profile.Timezone)
	state := streakFromDays(days, today)

	if apply {
		var oldCursor, newCursor *time.Time
		if _, err := s.profileRepo.MutateStreak(ctx, ownerID, func(p *models.WriterProfile) bool {
			oldCursor = cloneDay(p.LastContentDay)
			p.CurrentStreak = state.CurrentStreak
			p.LongestStreak = state.LongestStreak
			if len(days) > 0 {
				p.LastContentDay = cloneDay(&days[len(days)-1])
			} else {
				p.LastContentDay = nil
			}
			newCursor = cloneDay(p.LastContentDay)
			return true
		}); err != nil {
			return nil, fmt.Errorf("failed to apply recalculated streak: %w", err)
		}
		s.cache.InvalidateOwner(ownerID, oldCursor, newCursor)

		logger.FromContext(ctx).Info("streak recalculated and applied",
			logger.String("owner_id", ownerID.String()),
			logger.Int("current_streak", state.CurrentStreak),
			logger.Int("longest_streak", state.LongestStreak),
		)
	}

	return &state, nil
}

// streakFromDays computes current and longest streak from a sorted,
// de-duplicated set of content days. The current streak is the run
// ending at today or yesterday; older runs leave it at zero.
func streakFromDays(days []time.Time, today time.Time) models.StreakState {
	if len(days) == 0 {
		return models.StreakState{}
	}

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if daysBetween(days[i-1], days[i]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	current := 0
	last := days[len(days)-1]
	if gap := daysBetween(last, today); gap >= 0 && gap <= 1 {
		current = 1
		for i := len(days) - 2; i >= 0; i-- {
			if daysBetween(days[i], days[i+1]) != 1 {
				break
			}
			current++
		}
	}

	return models.StreakState{CurrentStreak: current, LongestStreak: longest}
}

// contentDays maps content-bearing entries to their sorted, unique
// local days.
func contentDays(entries []models.JournalEntry, timezone string, resolver LocalDayResolver) []time.Time {
	seen := make(map[time.Time]bool)
	for _, e := range entries {
		if !e.HasContent() {
			continue
		}
		seen[resolver.Resolve(e.CreatedAt, timezone)] = true
	}

	days := make([]time.Time, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

func cloneDay(day *time.Time) *time.Time {
	if day == nil {
		return nil
	}
	d := *day
	return &d
}
