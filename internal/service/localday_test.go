package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLocalDayResolver_Resolve(t *testing.T) {
	resolver := LocalDayResolver{}

	tests := []struct {
		name     string
		instant  time.Time
		timezone string
		want     string
	}{
		{
			name:     "UTC midday",
			instant:  time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC),
			timezone: "UTC",
			want:     "2025-01-15",
		},
		{
			name:     "late UTC evening is already tomorrow in Tokyo",
			instant:  time.Date(2025, 1, 15, 23, 0, 0, 0, time.UTC),
			timezone: "Asia/Tokyo",
			want:     "2025-01-16",
		},
		{
			name:     "early UTC morning is still yesterday in Los Angeles",
			instant:  time.Date(2025, 1, 15, 5, 0, 0, 0, time.UTC),
			timezone: "America/Los_Angeles",
			want:     "2025-01-14",
		},
		{
			name:     "UTC+14 crosses to the next date at noon UTC",
			instant:  time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC),
			timezone: "Pacific/Kiritimati",
			want:     "2025-01-16",
		},
		{
			name:     "empty timezone falls back to UTC",
			instant:  time.Date(2025, 1, 15, 23, 30, 0, 0, time.UTC),
			timezone: "",
			want:     "2025-01-15",
		},
		{
			name:     "unknown timezone falls back to UTC",
			instant:  time.Date(2025, 1, 15, 23, 30, 0, 0, time.UTC),
			timezone: "Mars/Olympus_Mons",
			want:     "2025-01-15",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolver.Resolve(tt.instant, tt.timezone)
			require.Equal(t, tt.want, dayString(got))
			require.Equal(t, time.UTC, got.Location())
			require.Equal(t, 0, got.Hour())
		})
	}
}

// Around a DST transition the offset of the instant decides the date,
// so consecutive local days stay exactly one apart even when a day is
// 23 or 25 hours long.
func TestLocalDayResolver_DST(t *testing.T) {
	resolver := LocalDayResolver{}
	const tz = "America/New_York"

	// US spring-forward 2025: 2025-03-09 02:00 EST jumps to 03:00 EDT.
	beforeJump := time.Date(2025, 3, 9, 6, 30, 0, 0, time.UTC)  // 01:30 EST
	afterJump := time.Date(2025, 3, 9, 7, 30, 0, 0, time.UTC)   // 03:30 EDT
	nextMorning := time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC) // 09:00 EDT

	dayOfJump := resolver.Resolve(beforeJump, tz)
	require.Equal(t, "2025-03-09", dayString(dayOfJump))
	require.Equal(t, dayOfJump, resolver.Resolve(afterJump, tz))

	next := resolver.Resolve(nextMorning, tz)
	require.Equal(t, 1, daysBetween(dayOfJump, next))

	// Fall-back 2025: 2025-11-02 02:00 EDT returns to 01:00 EST.
	beforeFallBack := time.Date(2025, 11, 2, 5, 30, 0, 0, time.UTC) // 01:30 EDT
	afterFallBack := time.Date(2025, 11, 2, 6, 30, 0, 0, time.UTC)  // 01:30 EST
	require.Equal(t, resolver.Resolve(beforeFallBack, tz), resolver.Resolve(afterFallBack, tz))
}

func TestDaysBetween(t *testing.T) {
	require.Equal(t, 0, daysBetween(day("2025-06-10"), day("2025-06-10")))
	require.Equal(t, 1, daysBetween(day("2025-06-10"), day("2025-06-11")))
	require.Equal(t, -1, daysBetween(day("2025-06-11"), day("2025-06-10")))
	require.Equal(t, 31, daysBetween(day("2025-06-10"), day("2025-07-11")))
	// Across a leap day.
	require.Equal(t, 2, daysBetween(day("2024-02-28"), day("2024-03-01")))
}

// One instant, many dates: the same write lands on different calendar
// days depending on the writer's zone.
func TestLocalDayResolver_SameInstantDifferentDates(t *testing.T) {
	resolver := LocalDayResolver{}
	instant := time.Date(2025, 1, 15, 23, 30, 0, 0, time.UTC)

	require.Equal(t, "2025-01-15", dayString(resolver.Resolve(instant, "America/Los_Angeles")))
	require.Equal(t, "2025-01-16", dayString(resolver.Resolve(instant, "Asia/Tokyo")))
}
