package service

import (
	"time"

	"github.com/inkwell-app/inkwell/backend/internal/models"
)

// Milestone threshold tables. Evaluated against the entire history so
// the same milestones come back regardless of the requested period.
var (
	entryCountMilestones = []int{1, 10, 50, 100, 365, 500, 1000}
	totalWordMilestones  = []int{1000, 10000, 50000, 100000, 250000, 500000, 1000000}
	streakMilestones     = []int{7, 30, 100, 365}
)

const (
	MilestoneTypeEntries = "total_entries"
	MilestoneTypeWords   = "total_words"
	MilestoneTypeStreak  = "longest_streak"
)

// buildMilestones evaluates every fixed threshold against full-history
// totals.
func buildMilestones(entries []models.JournalEntry, longestStreak int) []models.Milestone {
	totalEntries := len(entries)
	totalWords := 0
	for _, e := range entries {
		totalWords += e.WordCount
	}

	milestones := make([]models.Milestone, 0, len(entryCountMilestones)+len(totalWordMilestones)+len(streakMilestones))
	for _, value := range entryCountMilestones {
		milestones = append(milestones, models.Milestone{
			Type:     MilestoneTypeEntries,
			Value:    value,
			Achieved: totalEntries >= value,
			Current:  totalEntries,
		})
	}
	for _, value := range totalWordMilestones {
		milestones = append(milestones, models.Milestone{
			Type:     MilestoneTypeWords,
			Value:    value,
			Achieved: totalWords >= value,
			Current:  totalWords,
		})
	}
	for _, value := range streakMilestones {
		milestones = append(milestones, models.Milestone{
			Type:     MilestoneTypeStreak,
			Value:    value,
			Achieved: longestStreak >= value,
			Current:  longestStreak,
		})
	}
	return milestones
}

// personalRecords computes the all-time superlatives: the single
// content entry with the most words, the day with the highest summed
// word count, and the longest plain and goal streaks.
func personalRecords(entries []models.JournalEntry, timezone string, resolver LocalDayResolver, longestStreak, longestGoalStreak int) models.PersonalRecords {
	var longestEntry *models.RecordEntry
	sums := make(map[time.Time]int)

	for _, e := range entries {
		if !e.HasContent() {
			continue
		}
		day := resolver.Resolve(e.CreatedAt, timezone)
		sums[day] += e.WordCount

		if longestEntry == nil || e.WordCount > longestEntry.WordCount {
			longestEntry = &models.RecordEntry{
				EntryID:   e.ID.String(),
				Date:      dayString(day),
				WordCount: e.WordCount,
			}
		}
	}

	var bestDay *models.BestDay
	for day, words := range sums {
		if bestDay == nil || words > bestDay.WordCount ||
			(words == bestDay.WordCount && dayString(day) < bestDay.Date) {
			bestDay = &models.BestDay{Date: dayString(day), WordCount: words}
		}
	}

	return models.PersonalRecords{
		LongestEntry:      longestEntry,
		BestDay:           bestDay,
		LongestStreak:     longestStreak,
		LongestGoalStreak: longestGoalStreak,
	}
}
