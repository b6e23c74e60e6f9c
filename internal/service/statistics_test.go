package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/inkwell-app/inkwell/backend/internal/models"
	"github.com/stretchr/testify/require"
)

func newStatisticsFixture(t *testing.T, timezone string, now time.Time) (*statisticsService, *mockProfileRepository, *mockEntryRepository, uuid.UUID) {
	t.Helper()

	ownerID := uuid.New()
	profileRepo := newMockProfileRepository()
	profileRepo.put(&models.WriterProfile{
		OwnerID:       ownerID,
		Timezone:      timezone,
		DailyWordGoal: 500,
	})
	entryRepo := &mockEntryRepository{}

	svc := NewStatisticsService(entryRepo, profileRepo, NewStatisticsCache(0)).(*statisticsService)
	svc.now = frozen(now)

	return svc, profileRepo, entryRepo, ownerID
}

func TestGetStatistics_MoodAnalytics(t *testing.T) {
	now := time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC)
	svc, _, entryRepo, ownerID := newStatisticsFixture(t, "UTC", now)

	// Two rated entries on one day, one on the next, one unrated.
	entryRepo.add(
		entryAt(ownerID, day("2025-06-08").Add(9*time.Hour), 300, moodOf(2)),
		entryAt(ownerID, day("2025-06-08").Add(20*time.Hour), 250, moodOf(4)),
		entryAt(ownerID, day("2025-06-09").Add(9*time.Hour), 400, moodOf(5)),
		entryAt(ownerID, day("2025-06-10").Add(9*time.Hour), 100, nil),
	)

	resp, err := svc.GetStatistics(context.Background(), ownerID, models.Period7Days)
	require.NoError(t, err)

	mood := resp.Mood
	require.Equal(t, 3, mood.TotalRated)
	require.InDelta(t, (2.0+4.0+5.0)/3.0, mood.AverageRating, 1e-9)
	require.Equal(t, map[int]int{1: 0, 2: 1, 3: 0, 4: 1, 5: 1}, mood.Distribution)

	require.Len(t, mood.Timeline, 2)
	require.Equal(t, "2025-06-08", mood.Timeline[0].Date)
	require.InDelta(t, 3.0, mood.Timeline[0].Average, 1e-9)
	require.Equal(t, 2, mood.Timeline[0].Count)
	require.Equal(t, "2025-06-09", mood.Timeline[1].Date)
	require.InDelta(t, 5.0, mood.Timeline[1].Average, 1e-9)

	// 5.0 vs 3.0 across the halves.
	require.Equal(t, TrendImproving, mood.Trend)
}

func TestClassifyMoodTrend(t *testing.T) {
	points := func(averages ...float64) []models.MoodPoint {
		ps := make([]models.MoodPoint, 0, len(averages))
		for _, a := range averages {
			ps = append(ps, models.MoodPoint{Average: a})
		}
		return ps
	}

	tests := []struct {
		name     string
		timeline []models.MoodPoint
		want     string
	}{
		{name: "empty", timeline: nil, want: TrendStable},
		{name: "single point", timeline: points(5), want: TrendStable},
		{name: "improving", timeline: points(1, 1, 5, 5), want: TrendImproving},
		{name: "declining", timeline: points(5, 5, 1, 1), want: TrendDeclining},
		{name: "flat", timeline: points(3, 3, 3, 3), want: TrendStable},
		{name: "below threshold", timeline: points(3.0, 3.0, 3.2, 3.2), want: TrendStable},
		{name: "exactly at threshold", timeline: points(3.0, 3.0, 3.3, 3.3), want: TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, classifyMoodTrend(tt.timeline))
		})
	}
}

func TestGetStatistics_WordCountAnalytics(t *testing.T) {
	now := time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC)
	svc, _, entryRepo, ownerID := newStatisticsFixture(t, "UTC", now)

	// Day 08 sums to 600 and meets the 500-word goal, day 09 does not,
	// day 10 is a placeholder-only day.
	entryRepo.add(
		entryAt(ownerID, day("2025-06-08").Add(9*time.Hour), 350, nil),
		entryAt(ownerID, day("2025-06-08").Add(21*time.Hour), 250, nil),
		entryAt(ownerID, day("2025-06-09").Add(9*time.Hour), 200, nil),
		entryAt(ownerID, day("2025-06-10").Add(9*time.Hour), 0, nil),
	)

	resp, err := svc.GetStatistics(context.Background(), ownerID, models.Period7Days)
	require.NoError(t, err)

	wc := resp.WordCount
	require.Equal(t, 800, wc.TotalWords)
	require.InDelta(t, 800.0/4.0, wc.AveragePerEntry, 1e-9)

	require.Len(t, wc.Timeline, 3)
	require.Equal(t, 600, wc.Timeline[0].WordCount)
	require.Equal(t, 2, wc.Timeline[0].EntryCount)
	require.Equal(t, 0, wc.Timeline[2].WordCount)

	// One of three active days met the goal.
	require.InDelta(t, 100.0/3.0, wc.GoalAchievementRate, 1e-9)

	require.NotNil(t, wc.BestDay)
	require.Equal(t, "2025-06-08", wc.BestDay.Date)
	require.Equal(t, 600, wc.BestDay.WordCount)
}

func TestTimeOfDayHistogram_Boundaries(t *testing.T) {
	ownerID := uuid.New()
	base := day("2025-06-08")

	var entries []models.JournalEntry
	for _, hour := range []int{0, 4, 5, 11, 12, 17, 18, 23} {
		entries = append(entries, entryAt(ownerID, base.Add(time.Duration(hour)*time.Hour), 100, nil))
	}
	// Placeholders stay out of the histogram.
	entries = append(entries, entryAt(ownerID, base.Add(9*time.Hour), 0, nil))

	hist := timeOfDayHistogram(entries, time.UTC)
	require.Equal(t, 2, hist.Morning)
	require.Equal(t, 2, hist.Afternoon)
	require.Equal(t, 2, hist.Evening)
	require.Equal(t, 2, hist.Night)
}

func TestDayOfWeekHistogram(t *testing.T) {
	ownerID := uuid.New()

	// 2025-06-09 is a Monday.
	entries := []models.JournalEntry{
		entryAt(ownerID, day("2025-06-09").Add(9*time.Hour), 100, nil),
		entryAt(ownerID, day("2025-06-09").Add(20*time.Hour), 100, nil),
		entryAt(ownerID, day("2025-06-14").Add(9*time.Hour), 100, nil),
		entryAt(ownerID, day("2025-06-11").Add(9*time.Hour), 0, nil),
	}

	hist := dayOfWeekHistogram(entries, time.UTC)
	require.Len(t, hist, 7)
	require.Equal(t, "Monday", hist[0].Day)
	require.Equal(t, 2, hist[0].Count)
	require.Equal(t, "Wednesday", hist[2].Day)
	require.Equal(t, 0, hist[2].Count)
	require.Equal(t, "Saturday", hist[5].Day)
	require.Equal(t, 1, hist[5].Count)
	require.Equal(t, "Sunday", hist[6].Day)
}

func TestStreakHistory(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		runs := streakHistory(nil)
		require.NotNil(t, runs)
		require.Empty(t, runs)
	})

	t.Run("caps at five longest", func(t *testing.T) {
		// Six runs: lengths 1, 2, 3, 1, 2, 4 in chronological order.
		var days []time.Time
		add := func(start string, length int) {
			d := day(start)
			for i := 0; i < length; i++ {
				days = append(days, d.AddDate(0, 0, i))
			}
		}
		add("2025-01-01", 1)
		add("2025-01-10", 2)
		add("2025-01-20", 3)
		add("2025-02-01", 1)
		add("2025-02-10", 2)
		add("2025-02-20", 4)

		runs := streakHistory(days)
		require.Len(t, runs, 5)

		lengths := make([]int, 0, len(runs))
		for _, r := range runs {
			lengths = append(lengths, r.Length)
		}
		require.Equal(t, []int{4, 3, 2, 2, 1}, lengths)

		// Equal lengths keep chronological order.
		require.Equal(t, "2025-01-10", runs[2].StartDate)
		require.Equal(t, "2025-02-10", runs[3].StartDate)
		require.Equal(t, "2025-01-01", runs[4].StartDate)

		require.Equal(t, "2025-02-20", runs[0].StartDate)
		require.Equal(t, "2025-02-23", runs[0].EndDate)
	})
}

func TestBuildMilestones(t *testing.T) {
	ownerID := uuid.New()

	// Eleven entries, one a placeholder; 5200 words total.
	var entries []models.JournalEntry
	for i := 0; i < 10; i++ {
		entries = append(entries, entryAt(ownerID, day("2025-06-01").AddDate(0, 0, i).Add(9*time.Hour), 520, nil))
	}
	entries = append(entries, entryAt(ownerID, day("2025-06-11").Add(9*time.Hour), 0, nil))

	milestones := buildMilestones(entries, 8)

	byKey := make(map[string]models.Milestone)
	for _, m := range milestones {
		byKey[m.Type+":"+strconv.Itoa(m.Value)] = m
	}

	// Placeholder entries count toward the entry total.
	m := byKey[MilestoneTypeEntries+":10"]
	require.True(t, m.Achieved)
	require.Equal(t, 11, m.Current)
	require.False(t, byKey[MilestoneTypeEntries+":50"].Achieved)

	require.True(t, byKey[MilestoneTypeWords+":1000"].Achieved)
	require.Equal(t, 5200, byKey[MilestoneTypeWords+":1000"].Current)
	require.False(t, byKey[MilestoneTypeWords+":10000"].Achieved)

	require.True(t, byKey[MilestoneTypeStreak+":7"].Achieved)
	require.False(t, byKey[MilestoneTypeStreak+":30"].Achieved)
	require.Equal(t, 8, byKey[MilestoneTypeStreak+":30"].Current)
}

// Milestones come from the full history, so every period reports the
// same set.
func TestGetStatistics_MilestonesPeriodIndependent(t *testing.T) {
	now := time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC)
	svc, _, entryRepo, ownerID := newStatisticsFixture(t, "UTC", now)

	for i := 0; i < 12; i++ {
		entryRepo.add(entryAt(ownerID, day("2025-01-01").AddDate(0, 0, i).Add(9*time.Hour), 600, nil))
	}

	var last []models.Milestone
	for _, period := range models.Periods {
		resp, err := svc.GetStatistics(context.Background(), ownerID, period)
		require.NoError(t, err)
		if last != nil {
			require.Equal(t, last, resp.Milestones, "period %s", period)
		}
		last = resp.Milestones
	}
}

func TestPersonalRecords(t *testing.T) {
	ownerID := uuid.New()
	resolver := LocalDayResolver{}

	big := entryAt(ownerID, day("2025-06-02").Add(9*time.Hour), 700, nil)
	entries := []models.JournalEntry{
		entryAt(ownerID, day("2025-06-01").Add(9*time.Hour), 400, nil),
		entryAt(ownerID, day("2025-06-01").Add(20*time.Hour), 300, nil),
		big,
		// Placeholder never wins a record.
		entryAt(ownerID, day("2025-06-03").Add(9*time.Hour), 0, nil),
	}

	records := personalRecords(entries, "UTC", resolver, 4, 2)

	require.NotNil(t, records.LongestEntry)
	require.Equal(t, big.ID.String(), records.LongestEntry.EntryID)
	require.Equal(t, 700, records.LongestEntry.WordCount)

	// Days 01 and 02 both sum to 700; the earlier day wins the tie.
	require.NotNil(t, records.BestDay)
	require.Equal(t, "2025-06-01", records.BestDay.Date)
	require.Equal(t, 700, records.BestDay.WordCount)

	require.Equal(t, 4, records.LongestStreak)
	require.Equal(t, 2, records.LongestGoalStreak)
}

func TestGetStatistics_ZeroData(t *testing.T) {
	now := time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC)
	svc, _, _, ownerID := newStatisticsFixture(t, "UTC", now)

	resp, err := svc.GetStatistics(context.Background(), ownerID, models.Period30Days)
	require.NoError(t, err)

	require.Equal(t, models.Period30Days, resp.Period)
	require.Equal(t, "2025-05-12", resp.StartDate)
	require.Equal(t, "2025-06-10", resp.EndDate)

	require.Equal(t, 0.0, resp.Mood.AverageRating)
	require.Equal(t, 0, resp.Mood.TotalRated)
	require.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}, resp.Mood.Distribution)
	require.Empty(t, resp.Mood.Timeline)
	require.Equal(t, TrendStable, resp.Mood.Trend)

	require.Equal(t, 0, resp.WordCount.TotalWords)
	require.Nil(t, resp.WordCount.BestDay)
	require.Empty(t, resp.WordCount.Timeline)

	require.Equal(t, 0.0, resp.WritingPatterns.ConsistencyRate)
	require.Len(t, resp.WritingPatterns.DayOfWeek, 7)
	require.Empty(t, resp.WritingPatterns.StreakHistory)

	require.NotEmpty(t, resp.Milestones)
	for _, m := range resp.Milestones {
		require.False(t, m.Achieved)
		require.Equal(t, 0, m.Current)
	}

	require.Equal(t, 0, resp.GoalStreak.Current)
	require.Nil(t, resp.PersonalRecords.LongestEntry)
	require.Nil(t, resp.PersonalRecords.BestDay)
}

func TestGetStatistics_PeriodWindow(t *testing.T) {
	now := time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC)
	svc, _, entryRepo, ownerID := newStatisticsFixture(t, "UTC", now)

	entryRepo.add(
		// Outside the 7-day window.
		entryAt(ownerID, day("2025-06-01").Add(9*time.Hour), 900, nil),
		// Exactly on the window boundary, six days back.
		entryAt(ownerID, day("2025-06-04").Add(9*time.Hour), 200, nil),
		entryAt(ownerID, day("2025-06-10").Add(9*time.Hour), 300, nil),
	)

	resp, err := svc.GetStatistics(context.Background(), ownerID, models.Period7Days)
	require.NoError(t, err)
	require.Equal(t, "2025-06-04", resp.StartDate)
	require.Equal(t, 500, resp.WordCount.TotalWords)
	// Two content days over seven spanned.
	require.InDelta(t, 2.0/7.0*100, resp.WritingPatterns.ConsistencyRate, 1e-9)

	all, err := svc.GetStatistics(context.Background(), ownerID, models.PeriodAll)
	require.NoError(t, err)
	require.Equal(t, "2025-06-01", all.StartDate)
	require.Equal(t, 1400, all.WordCount.TotalWords)
	// 2025-06-01 through 2025-06-10 spans ten days, three with content.
	require.InDelta(t, 3.0/10.0*100, all.WritingPatterns.ConsistencyRate, 1e-9)
}

// A write between reads must produce a payload that reflects the new
// entry, not the cached pre-write one.
func TestGetStatistics_WriteInvalidatesCache(t *testing.T) {
	now := time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC)

	ownerID := uuid.New()
	profileRepo := newMockProfileRepository()
	profileRepo.put(&models.WriterProfile{
		OwnerID:       ownerID,
		Timezone:      "UTC",
		DailyWordGoal: 500,
	})
	entryRepo := &mockEntryRepository{}
	cache := NewStatisticsCache(0)

	stats := NewStatisticsService(entryRepo, profileRepo, cache).(*statisticsService)
	stats.now = frozen(now)
	streaks := NewStreakService(profileRepo, entryRepo, cache).(*streakService)
	streaks.now = frozen(now)

	ctx := context.Background()

	first := entryAt(ownerID, day("2025-06-09").Add(9*time.Hour), 300, nil)
	entryRepo.add(first)
	_, err := streaks.RecordEntryWritten(ctx, ownerID, first.CreatedAt)
	require.NoError(t, err)

	resp1, err := stats.GetStatistics(ctx, ownerID, models.Period7Days)
	require.NoError(t, err)
	require.Equal(t, 300, resp1.WordCount.TotalWords)

	// Second read with no intervening write returns the cached payload.
	resp2, err := stats.GetStatistics(ctx, ownerID, models.Period7Days)
	require.NoError(t, err)
	require.Same(t, resp1, resp2)

	second := entryAt(ownerID, day("2025-06-10").Add(9*time.Hour), 200, nil)
	entryRepo.add(second)
	_, err = streaks.RecordEntryWritten(ctx, ownerID, second.CreatedAt)
	require.NoError(t, err)

	resp3, err := stats.GetStatistics(ctx, ownerID, models.Period7Days)
	require.NoError(t, err)
	require.Equal(t, 500, resp3.WordCount.TotalWords)
}
