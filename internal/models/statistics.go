package models

import (
	"fmt"
	"strings"
)

// Period is a named lookback window for timeline statistics. Milestones
// and personal records ignore the period and always use full history.
type Period string

const (
	Period7Days  Period = "7d"
	Period30Days Period = "30d"
	Period90Days Period = "90d"
	PeriodYear   Period = "1y"
	PeriodAll    Period = "all"
)

// Periods lists every supported period, in the order they are reported.
var Periods = []Period{Period7Days, Period30Days, Period90Days, PeriodYear, PeriodAll}

// ParsePeriod validates a raw period string. The returned error lists
// the supported choices so it can be surfaced to the caller as-is.
func ParsePeriod(raw string) (Period, error) {
	for _, p := range Periods {
		if raw == string(p) {
			return p, nil
		}
	}
	choices := make([]string, len(Periods))
	for i, p := range Periods {
		choices[i] = string(p)
	}
	return "", fmt.Errorf("unsupported period %q: must be one of %s", raw, strings.Join(choices, ", "))
}

// Days returns the number of calendar days covered by fixed-size
// periods, and 0 for the all-time period.
func (p Period) Days() int {
	switch p {
	case Period7Days:
		return 7
	case Period30Days:
		return 30
	case Period90Days:
		return 90
	case PeriodYear:
		return 365
	default:
		return 0
	}
}

// MoodPoint is one local day on the mood timeline.
type MoodPoint struct {
	Date    string  `json:"date"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// MoodAnalytics aggregates mood ratings over the requested period.
// Distribution always carries all five rating buckets.
type MoodAnalytics struct {
	AverageRating float64     `json:"average_rating"`
	Distribution  map[int]int `json:"distribution"`
	Timeline      []MoodPoint `json:"timeline"`
	TotalRated    int         `json:"total_rated"`
	Trend         string      `json:"trend"`
}

// WordCountPoint is one local day on the word-count timeline.
type WordCountPoint struct {
	Date       string `json:"date"`
	WordCount  int    `json:"word_count"`
	EntryCount int    `json:"entry_count"`
}

// BestDay is the local day with the highest summed word count.
type BestDay struct {
	Date      string `json:"date"`
	WordCount int    `json:"word_count"`
}

// WordCountAnalytics aggregates word counts over the requested period.
type WordCountAnalytics struct {
	TotalWords          int              `json:"total_words"`
	AveragePerEntry     float64          `json:"average_per_entry"`
	AveragePerActiveDay float64          `json:"average_per_active_day"`
	Timeline            []WordCountPoint `json:"timeline"`
	GoalAchievementRate float64          `json:"goal_achievement_rate"`
	BestDay             *BestDay         `json:"best_day"`
}

// TimeOfDayHistogram buckets content entries by local hour:
// morning 05-11, afternoon 12-17, evening 18-23, night 00-04.
type TimeOfDayHistogram struct {
	Morning   int `json:"morning"`
	Afternoon int `json:"afternoon"`
	Evening   int `json:"evening"`
	Night     int `json:"night"`
}

// WeekdayCount is the content-entry count for one weekday. The
// histogram always reports all seven weekdays, Monday first.
type WeekdayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// StreakRun is a maximal block of consecutive local days with content.
type StreakRun struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Length    int    `json:"length"`
}

// WritingPatterns groups the period-scoped pattern statistics.
type WritingPatterns struct {
	ConsistencyRate float64            `json:"consistency_rate"`
	TimeOfDay       TimeOfDayHistogram `json:"time_of_day"`
	DayOfWeek       []WeekdayCount     `json:"day_of_week"`
	StreakHistory   []StreakRun        `json:"streak_history"`
}

// Milestone is one fixed threshold evaluated against full history.
type Milestone struct {
	Type     string `json:"type"`
	Value    int    `json:"value"`
	Achieved bool   `json:"achieved"`
	Current  int    `json:"current"`
}

// GoalStreak reports consecutive days meeting the daily word goal.
type GoalStreak struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
	Goal    int `json:"goal"`
}

// RecordEntry is the all-time single entry with the most words.
type RecordEntry struct {
	EntryID   string `json:"entry_id"`
	Date      string `json:"date"`
	WordCount int    `json:"word_count"`
}

// PersonalRecords are all-time superlatives, independent of period.
type PersonalRecords struct {
	LongestEntry      *RecordEntry `json:"longest_entry"`
	BestDay           *BestDay     `json:"best_day"`
	LongestStreak     int          `json:"longest_streak"`
	LongestGoalStreak int          `json:"longest_goal_streak"`
}

// StatisticsResponse is the full payload returned by the statistics
// endpoint. Milestones, goal streak and personal records are computed
// over the user's entire history regardless of the requested period.
type StatisticsResponse struct {
	Period          Period             `json:"period"`
	StartDate       string             `json:"start_date"`
	EndDate         string             `json:"end_date"`
	Mood            MoodAnalytics      `json:"mood_analytics"`
	WordCount       WordCountAnalytics `json:"word_count_analytics"`
	WritingPatterns WritingPatterns    `json:"writing_patterns"`
	Milestones      []Milestone        `json:"milestones"`
	GoalStreak      GoalStreak         `json:"goal_streak"`
	PersonalRecords PersonalRecords    `json:"personal_records"`
}
