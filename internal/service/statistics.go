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

const (
	// moodTrendThreshold is the fixed half-to-half average difference
	// beyond which a mood timeline counts as improving or declining.
	moodTrendThreshold = 0.3

	// maxStreakRuns caps the streak history returned per request.
	maxStreakRuns = 5
)

const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

type statisticsService struct {
	entryRepo   repository.EntryRepository
	profileRepo repository.ProfileRepository
	cache       *StatisticsCache
	resolver    LocalDayResolver
	now         func() time.Time
}

// NewStatisticsService creates a new statistics service.
func NewStatisticsService(entryRepo repository.EntryRepository, profileRepo repository.ProfileRepository, cache *StatisticsCache) StatisticsService {
	return &statisticsService{
		entryRepo:   entryRepo,
		profileRepo: profileRepo,
		cache:       cache,
		now:         time.Now,
	}
}

// GetStatistics assembles the full statistics payload for one owner and
// period, served from the cache when a fresh entry exists for the
// owner's current streak cursor.
func (s *statisticsService) GetStatistics(ctx context.Context, ownerID uuid.UUID, period models.Period) (*models.StatisticsResponse, error) {
	profile, err := s.profileRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	key := statisticsCacheKey(ownerID, period, profile.LastContentDay)
	payload, hit, err := s.cache.GetOrCompute(key, func() (*models.StatisticsResponse, error) {
		return s.compute(ctx, profile, period)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Debug("statistics served",
		logger.String("owner_id", ownerID.String()),
		logger.String("period", string(period)),
		logger.Bool("cache_hit", hit),
	)

	return payload, nil
}

func (s *statisticsService) compute(ctx context.Context, profile *models.WriterProfile, period models.Period) (*models.StatisticsResponse, error) {
	loc := s.resolver.Location(profile.Timezone)
	today := s.resolver.Resolve(s.now(), profile.Timezone)

	// Milestones, personal records and the goal streak always use the
	// full history, so the complete entry set is needed regardless of
	// period.
	allEntries, err := s.entryRepo.ListByOwner(ctx, profile.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	endDay := today
	var startDay time.Time
	var periodEntries []models.JournalEntry

	if period == models.PeriodAll {
		periodEntries = allEntries
		startDay = today
		if len(allEntries) > 0 {
			startDay = s.resolver.Resolve(allEntries[0].CreatedAt, profile.Timezone)
		}
		if startDay.After(endDay) {
			startDay = endDay
		}
	} else {
		startDay = today.AddDate(0, 0, -(period.Days() - 1))
		// Fetch from local midnight of the period start; the local-day
		// filter below trims any overhang.
		since := time.Date(startDay.Year(), startDay.Month(), startDay.Day(), 0, 0, 0, 0, loc)
		fetched, err := s.entryRepo.ListByOwnerSince(ctx, profile.OwnerID, since)
		if err != nil {
			return nil, fmt.Errorf("failed to list period entries: %w", err)
		}
		for _, e := range fetched {
			day := s.resolver.Resolve(e.CreatedAt, profile.Timezone)
			if !day.Before(startDay) && !day.After(endDay) {
				periodEntries = append(periodEntries, e)
			}
		}
	}

	allDays := contentDays(allEntries, profile.Timezone, s.resolver)
	allTime := streakFromDays(allDays, today)
	goal := goalStreakFromEntries(allEntries, profile, today, s.resolver)

	return &models.StatisticsResponse{
		Period:    period,
		StartDate: dayString(startDay),
		EndDate:   dayString(endDay),
		Mood:      s.buildMoodAnalytics(periodEntries, profile.Timezone),
		WordCount: s.buildWordCountAnalytics(periodEntries, profile),
		WritingPatterns: models.WritingPatterns{
			ConsistencyRate: consistencyRate(periodEntries, profile.Timezone, s.resolver, startDay, endDay),
			TimeOfDay:       timeOfDayHistogram(periodEntries, loc),
			DayOfWeek:       dayOfWeekHistogram(periodEntries, loc),
			StreakHistory:   streakHistory(contentDays(periodEntries, profile.Timezone, s.resolver)),
		},
		Milestones:      buildMilestones(allEntries, allTime.LongestStreak),
		GoalStreak:      goal,
		PersonalRecords: personalRecords(allEntries, profile.Timezone, s.resolver, allTime.LongestStreak, goal.Longest),
	}, nil
}

// buildMoodAnalytics aggregates mood ratings. Placeholder entries keep
// their ratings; only streak-style computations exclude them.
func (s *statisticsService) buildMoodAnalytics(entries []models.JournalEntry, timezone string) models.MoodAnalytics {
	distribution := make(map[int]int, 5)
	for rating := 1; rating <= 5; rating++ {
		distribution[rating] = 0
	}

	type daily struct {
		sum   int
		count int
	}
	byDay := make(map[time.Time]*daily)

	totalSum, totalRated := 0, 0
	for _, e := range entries {
		if e.MoodRating == nil {
			continue
		}
		rating := *e.MoodRating
		distribution[rating]++
		totalSum += rating
		totalRated++

		day := s.resolver.Resolve(e.CreatedAt, timezone)
		if d, ok := byDay[day]; ok {
			d.sum += rating
			d.count++
		} else {
			byDay[day] = &daily{sum: rating, count: 1}
		}
	}

	days := make([]time.Time, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	timeline := make([]models.MoodPoint, 0, len(days))
	for _, d := range days {
		agg := byDay[d]
		timeline = append(timeline, models.MoodPoint{
			Date:    dayString(d),
			Average: float64(agg.sum) / float64(agg.count),
			Count:   agg.count,
		})
	}

	average := 0.0
	if totalRated > 0 {
		average = float64(totalSum) / float64(totalRated)
	}

	return models.MoodAnalytics{
		AverageRating: average,
		Distribution:  distribution,
		Timeline:      timeline,
		TotalRated:    totalRated,
		Trend:         classifyMoodTrend(timeline),
	}
}

// classifyMoodTrend compares the first and second half of the daily
// mood timeline. Fewer than two daily points, or an empty half,
// classifies as stable.
func classifyMoodTrend(timeline []models.MoodPoint) string {
	if len(timeline) < 2 {
		return TrendStable
	}

	mid := len(timeline) / 2
	first, second := timeline[:mid], timeline[mid:]
	if len(first) == 0 || len(second) == 0 {
		return TrendStable
	}

	avg := func(points []models.MoodPoint) float64 {
		sum := 0.0
		for _, p := range points {
			sum += p.Average
		}
		return sum / float64(len(points))
	}

	diff := avg(second) - avg(first)
	switch {
	case diff > moodTrendThreshold:
		return TrendImproving
	case diff < -moodTrendThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func (s *statisticsService) buildWordCountAnalytics(entries []models.JournalEntry, profile *models.WriterProfile) models.WordCountAnalytics {
	type daily struct {
		words   int
		entries int
	}
	byDay := make(map[time.Time]*daily)

	totalWords := 0
	for _, e := range entries {
		totalWords += e.WordCount
		day := s.resolver.Resolve(e.CreatedAt, profile.Timezone)
		if d, ok := byDay[day]; ok {
			d.words += e.WordCount
			d.entries++
		} else {
			byDay[day] = &daily{words: e.WordCount, entries: 1}
		}
	}

	days := make([]time.Time, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	timeline := make([]models.WordCountPoint, 0, len(days))
	goalDays := 0
	var best *models.BestDay
	for _, d := range days {
		agg := byDay[d]
		timeline = append(timeline, models.WordCountPoint{
			Date:       dayString(d),
			WordCount:  agg.words,
			EntryCount: agg.entries,
		})
		if agg.words >= profile.DailyWordGoal {
			goalDays++
		}
		if agg.words > 0 && (best == nil || agg.words > best.WordCount) {
			best = &models.BestDay{Date: dayString(d), WordCount: agg.words}
		}
	}

	avgPerEntry := 0.0
	if len(entries) > 0 {
		avgPerEntry = float64(totalWords) / float64(len(entries))
	}

	activeDays := len(days)
	avgPerActiveDay := 0.0
	goalRate := 0.0
	if activeDays > 0 {
		avgPerActiveDay = float64(totalWords) / float64(activeDays)
		goalRate = float64(goalDays) / float64(activeDays) * 100
	}

	return models.WordCountAnalytics{
		TotalWords:          totalWords,
		AveragePerEntry:     avgPerEntry,
		AveragePerActiveDay: avgPerActiveDay,
		Timeline:            timeline,
		GoalAchievementRate: goalRate,
		BestDay:             best,
	}
}

// consistencyRate is distinct content days over the calendar days the
// period spans, inclusive, as a percentage.
func consistencyRate(entries []models.JournalEntry, timezone string, resolver LocalDayResolver, startDay, endDay time.Time) float64 {
	spanned := daysBetween(startDay, endDay) + 1
	if spanned <= 0 {
		return 0
	}
	active := len(contentDays(entries, timezone, resolver))
	return float64(active) / float64(spanned) * 100
}

// timeOfDayHistogram buckets content entries by their local hour.
// Boundaries are inclusive: morning 05-11, afternoon 12-17, evening
// 18-23, night 00-04.
func timeOfDayHistogram(entries []models.JournalEntry, loc *time.Location) models.TimeOfDayHistogram {
	var hist models.TimeOfDayHistogram
	for _, e := range entries {
		if !e.HasContent() {
			continue
		}
		switch hour := e.CreatedAt.In(loc).Hour(); {
		case hour >= 5 && hour <= 11:
			hist.Morning++
		case hour >= 12 && hour <= 17:
			hist.Afternoon++
		case hour >= 18:
			hist.Evening++
		default:
			hist.Night++
		}
	}
	return hist
}

var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// dayOfWeekHistogram counts content entries per weekday. All seven
// weekdays are always reported, Monday first.
func dayOfWeekHistogram(entries []models.JournalEntry, loc *time.Location) []models.WeekdayCount {
	counts := make(map[time.Weekday]int, 7)
	for _, e := range entries {
		if !e.HasContent() {
			continue
		}
		counts[e.CreatedAt.In(loc).Weekday()]++
	}

	histogram := make([]models.WeekdayCount, 0, len(weekdayOrder))
	for _, day := range weekdayOrder {
		histogram = append(histogram, models.WeekdayCount{
			Day:   day.String(),
			Count: counts[day],
		})
	}
	return histogram
}

// streakHistory reconstructs the maximal consecutive-day runs in the
// period's content days and returns the longest five, longest first.
// Ties keep chronological order.
func streakHistory(days []time.Time) []models.StreakRun {
	runs := make([]models.StreakRun, 0)
	if len(days) == 0 {
		return runs
	}

	start := days[0]
	prev := days[0]
	for _, d := range days[1:] {
		if daysBetween(prev, d) > 1 {
			runs = append(runs, models.StreakRun{
				StartDate: dayString(start),
				EndDate:   dayString(prev),
				Length:    daysBetween(start, prev) + 1,
			})
			start = d
		}
		prev = d
	}
	runs = append(runs, models.StreakRun{
		StartDate: dayString(start),
		EndDate:   dayString(prev),
		Length:    daysBetween(start, prev) + 1,
	})

	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Length > runs[j].Length })
	if len(runs) > maxStreakRuns {
		runs = runs[:maxStreakRuns]
	}
	return runs
}
