package service

import (
	"sort"
	"time"

	"github.com/inkwell-app/inkwell/backend/internal/models"
)

// goalStreakFromEntries computes the word-goal streak over the full
// history. A day qualifies only when the sum of its entries' word
// counts meets the daily goal, so this is always a full recompute:
// entries added later in a day can flip that day's achievement.
func goalStreakFromEntries(entries []models.JournalEntry, profile *models.WriterProfile, today time.Time, resolver LocalDayResolver) models.GoalStreak {
	sums := make(map[time.Time]int)
	for _, e := range entries {
		if !e.HasContent() {
			continue
		}
		sums[resolver.Resolve(e.CreatedAt, profile.Timezone)] += e.WordCount
	}

	days := make([]time.Time, 0, len(sums))
	for day, words := range sums {
		if words >= profile.DailyWordGoal {
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	state := streakFromDays(days, today)
	return models.GoalStreak{
		Current: state.CurrentStreak,
		Longest: state.LongestStreak,
		Goal:    profile.DailyWordGoal,
	}
}
