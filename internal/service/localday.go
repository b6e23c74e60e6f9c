package service

import (
	"time"

	"github.com/inkwell-app/inkwell/backend/internal/logger"
)

// LocalDayResolver converts UTC instants into local calendar days.
//
// A local day is represented as midnight UTC of the wall-clock date in
// the user's timezone, so day values compare and subtract cleanly
// regardless of the zone they came from. Two instants map to the same
// day iff their wall-clock date in the profile's timezone is identical,
// which holds across DST transitions because the zone's offset at the
// instant is applied, never a cached one.
type LocalDayResolver struct{}

// Location loads the named IANA zone. Unknown or empty names fall back
// to UTC; the resolver never fails its caller over a bad timezone.
func (LocalDayResolver) Location(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		logger.Default().Warn("unknown timezone, falling back to UTC",
			logger.String("timezone", name),
			logger.Err(err),
		)
		return time.UTC
	}
	return loc
}

// Resolve returns the local calendar day containing instant in the
// named timezone.
func (r LocalDayResolver) Resolve(instant time.Time, timezone string) time.Time {
	y, m, d := instant.In(r.Location(timezone)).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// dayString formats a local day for API payloads.
func dayString(day time.Time) string {
	return day.Format("2006-01-02")
}

// daysBetween returns the whole days from a to b. Both arguments must
// be local day values (midnight UTC).
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
