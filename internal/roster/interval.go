package roster

import (
	"errors"
	"fmt"
	"time"

	"github.com/rakaarfi/roster-system-be/internal/models"
)

var ErrInvalidShiftTime = errors.New("invalid shift date or time")

// Interval is the concrete span of a shift. End is nil when the shift cannot
// be resolved (no end time, no duration, no role default).
type Interval struct {
	Start     time.Time  `json:"start"`
	End       *time.Time `json:"end"`
	Overnight bool       `json:"overnight"`
}

func (iv Interval) Resolved() bool { return iv.End != nil }

// Duration is zero for unresolved intervals.
func (iv Interval) Duration() time.Duration {
	if iv.End == nil {
		return 0
	}
	return iv.End.Sub(iv.Start)
}

// ResolveInterval turns stored shift fields into instants in loc. An end time
// at or before the start time is read as the following day. The result only
// depends on the shift fields, loc and roleDurations.
func ResolveInterval(shift models.Shift, loc *time.Location, roleDurations map[string]int) (Interval, error) {
	start, err := combine(shift.ShiftDate, shift.ShiftStartTime, loc)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: start %q %q: %v", ErrInvalidShiftTime, shift.ShiftDate, shift.ShiftStartTime, err)
	}
	iv := Interval{Start: start}

	switch {
	case shift.ShiftEndTime != "":
		end, err := combine(shift.ShiftDate, shift.ShiftEndTime, loc)
		if err != nil {
			return Interval{}, fmt.Errorf("%w: end %q: %v", ErrInvalidShiftTime, shift.ShiftEndTime, err)
		}
		if !end.After(start) {
			end = end.Add(24 * time.Hour)
			iv.Overnight = true
		}
		iv.End = &end
	case shift.DurationMinutes > 0:
		end := start.Add(time.Duration(shift.DurationMinutes) * time.Minute)
		iv.End = &end
	default:
		if mins := (Policy{RoleDurations: roleDurations}).RoleDuration(shift.ShiftRole); mins > 0 {
			end := start.Add(time.Duration(mins) * time.Minute)
			iv.End = &end
		}
	}
	return iv, nil
}

// Resolve resolves a shift with the policy's location and role defaults.
func (p Policy) Resolve(shift models.Shift) (Interval, error) {
	return ResolveInterval(shift, p.location(), p.RoleDurations)
}

type resolvedShift struct {
	shift models.Shift
	start time.Time
	end   time.Time
}

// activeIntervals resolves every non-cancelled shift, dropping the ones that
// do not resolve.
func (p Policy) activeIntervals(shifts []models.Shift) []resolvedShift {
	out := make([]resolvedShift, 0, len(shifts))
	for _, s := range shifts {
		if s.Status == models.StatusCancelled {
			continue
		}
		iv, err := p.Resolve(s)
		if err != nil || !iv.Resolved() {
			continue
		}
		out = append(out, resolvedShift{shift: s, start: iv.Start, end: *iv.End})
	}
	return out
}
