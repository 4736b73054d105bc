// Package roster holds the shift scheduling and weekly-hour accounting rules.
//
// Everything here is synchronous and free of I/O: callers load a staff
// document, hand it to the engine together with a reference time, and write
// back whatever the engine returns. The only inputs besides the arguments are
// the values in Policy, which is built once from configuration.
package roster

import (
	"strings"
	"time"
)

const (
	DefaultWeeklyCapHours = 38
	DefaultMinRestHours   = 10
	DefaultMaxDailyHours  = 12

	// capEpsilon absorbs float rounding when comparing projected hours to the cap.
	capEpsilon = 1e-6
)

// DefaultRoleDurations are the role defaults in minutes, used when a shift has
// neither an end time nor an explicit duration.
var DefaultRoleDurations = map[string]int{
	"morning": 360,
	"evening": 360,
	"night":   600,
}

// Policy carries the business knobs for scheduling.
type Policy struct {
	DefaultWeeklyCap float64
	MinRest          time.Duration
	MaxDaily         time.Duration
	WeekStartsOn     time.Weekday
	Location         *time.Location
	RoleDurations    map[string]int
}

// DefaultPolicy returns the policy used when nothing is configured:
// Monday-start weeks in UTC, 38h cap, 10h rest, 12h daily maximum.
func DefaultPolicy() Policy {
	return Policy{
		DefaultWeeklyCap: DefaultWeeklyCapHours,
		MinRest:          DefaultMinRestHours * time.Hour,
		MaxDaily:         DefaultMaxDailyHours * time.Hour,
		WeekStartsOn:     time.Monday,
		Location:         time.UTC,
		RoleDurations:    DefaultRoleDurations,
	}
}

func (p Policy) location() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

// RoleDuration returns the default duration in minutes for a role label, or 0
// when the role has none.
func (p Policy) RoleDuration(role string) int {
	durations := p.RoleDurations
	if durations == nil {
		durations = DefaultRoleDurations
	}
	return durations[strings.ToLower(strings.TrimSpace(role))]
}
