package roster

import (
	"fmt"
	"strings"
	"time"

	"github.com/rakaarfi/roster-system-be/internal/models"
)

type Rule string

const (
	RuleInvalidShift   Rule = "invalid_shift"
	RuleOneShiftPerDay Rule = "one_shift_per_day"
	RuleNoOverlap      Rule = "no_overlap"
	RuleDailyLimit     Rule = "daily_limit"
	RuleMinRest        Rule = "min_rest"
	RuleWeeklyCap      Rule = "weekly_cap"
)

// ValidationError is a business-rule violation. Message is user-facing.
type ValidationError struct {
	Rule    Rule   `json:"rule"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string { return e.Message }

func violation(rule Rule, format string, args ...any) *ValidationError {
	return &ValidationError{Rule: rule, Message: fmt.Sprintf(format, args...)}
}

// NewShift builds an assigned shift from admin input. Without an end time
// the role default duration is stored so the shift stays resolvable even if
// role defaults change later.
func (p Policy) NewShift(input models.CreateShiftInput, id string, now time.Time) (models.Shift, *ValidationError) {
	shift := models.Shift{
		ID:             id,
		ShiftDate:      strings.TrimSpace(input.ShiftDate),
		ShiftRole:      strings.ToLower(strings.TrimSpace(input.ShiftRole)),
		ShiftStartTime: strings.TrimSpace(input.ShiftStartTime),
		ShiftEndTime:   strings.TrimSpace(input.ShiftEndTime),
		Status:         models.StatusAssigned,
		CreatedAt:      now,
	}
	if shift.ID == "" || shift.ShiftDate == "" || shift.ShiftRole == "" || shift.ShiftStartTime == "" {
		return models.Shift{}, violation(RuleInvalidShift, "Please fill Staff, Date, Role, and Start Time.")
	}
	if shift.ShiftEndTime == "" {
		shift.DurationMinutes = p.RoleDuration(shift.ShiftRole)
		if shift.DurationMinutes <= 0 {
			return models.Shift{}, violation(RuleInvalidShift, "Please enter an End Time or define a role duration.")
		}
	}
	iv, err := p.Resolve(shift)
	if err != nil || !iv.Resolved() {
		return models.Shift{}, violation(RuleInvalidShift, "Invalid shift times.")
	}
	return shift, nil
}

// ValidateNewShift runs the scheduling rules against the staff member's
// existing shifts and returns the first violation, or nil. Cancelled shifts
// take no part in any check.
func (p Policy) ValidateNewShift(staff models.StaffProfile, candidate models.Shift) *ValidationError {
	iv, err := p.Resolve(candidate)
	if err != nil || !iv.Resolved() {
		return violation(RuleInvalidShift, "Invalid shift times.")
	}
	start, end := iv.Start, *iv.End
	active := p.activeIntervals(staff.Shifts)

	if v := checkOneShiftPerDay(staff.Shifts, candidate.ShiftDate); v != nil {
		return v
	}
	if v := checkNoOverlap(active, start, end); v != nil {
		return v
	}
	if v := p.checkDailyLimit(start, end); v != nil {
		return v
	}
	if v := p.checkMinRest(active, start, end); v != nil {
		return v
	}
	return p.checkWeeklyCap(staff, start, end)
}

func checkOneShiftPerDay(existing []models.Shift, date string) *ValidationError {
	for _, s := range existing {
		if s.Status != models.StatusCancelled && s.ShiftDate == date {
			return violation(RuleOneShiftPerDay, "This staff already has a shift on %s.", date)
		}
	}
	return nil
}

func checkNoOverlap(active []resolvedShift, start, end time.Time) *ValidationError {
	for _, rs := range active {
		if MinutesOverlap(rs.start, rs.end, start, end) > 0 {
			span := rs.shift.ShiftStartTime
			if rs.shift.ShiftEndTime != "" {
				span += "-" + rs.shift.ShiftEndTime
			}
			return violation(RuleNoOverlap, "Overlaps with existing shift on %s (%s).", rs.shift.ShiftDate, span)
		}
	}
	return nil
}

// checkDailyLimit only applies when the shift starts and ends on the same
// calendar day.
func (p Policy) checkDailyLimit(start, end time.Time) *ValidationError {
	if !SameLocalDay(start, end) {
		return nil
	}
	if end.Sub(start) > p.MaxDaily {
		return violation(RuleDailyLimit, "Exceeds max daily hours (%sh).", formatHours(p.MaxDaily.Hours()))
	}
	return nil
}

// checkMinRest requires MinRest between the candidate and every other shift,
// in both directions. Back-to-back shifts (zero gap) count as too little rest.
func (p Policy) checkMinRest(active []resolvedShift, start, end time.Time) *ValidationError {
	restHours := formatHours(p.MinRest.Hours())
	for _, rs := range active {
		restAfterPrev := start.Sub(rs.end)
		if restAfterPrev >= 0 && restAfterPrev < p.MinRest {
			return violation(RuleMinRest, "Not enough rest since prior shift (%sh).", restHours)
		}
		restBeforeNext := rs.start.Sub(end)
		if restBeforeNext >= 0 && restBeforeNext < p.MinRest {
			return violation(RuleMinRest, "Not enough rest before next shift (%sh).", restHours)
		}
	}
	return nil
}

// checkWeeklyCap projects the week containing the candidate's start.
func (p Policy) checkWeeklyCap(staff models.StaffProfile, start, end time.Time) *ValidationError {
	capHours := p.CapFor(staff)
	w := WeekWindow(start, p.WeekStartsOn)

	usedHours := float64(p.weekMinutes(staff.Shifts, w)) / 60
	added := float64(MinutesOverlap(start, end, w.Start, w.End)) / 60
	projected := usedHours + added
	if projected > capHours+capEpsilon {
		return violation(RuleWeeklyCap, "Weekly cap exceeded: %.2fh > %sh. Hours left: %.2fh.",
			projected, formatHours(capHours), capHours-usedHours)
	}
	return nil
}
