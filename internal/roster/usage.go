package roster

import (
	"math"
	"time"

	"github.com/rakaarfi/roster-system-be/internal/models"
	"github.com/shopspring/decimal"
)

// Usage is a staff member's worked hours against their weekly cap.
type Usage struct {
	UsedHours   float64 `json:"used_hours"`
	LeftHours   float64 `json:"left_hours"`
	CapHours    float64 `json:"cap_hours"`
	UsedPercent float64 `json:"used_percent"`
	Window      Window  `json:"window"`
}

// CapFor returns the staff member's weekly cap, falling back to the policy
// default when unset.
func (p Policy) CapFor(staff models.StaffProfile) float64 {
	if staff.WeeklyHourCap > 0 {
		return staff.WeeklyHourCap
	}
	if p.DefaultWeeklyCap > 0 {
		return p.DefaultWeeklyCap
	}
	return DefaultWeeklyCapHours
}

// WeekOf returns the configured week window containing ref.
func (p Policy) WeekOf(ref time.Time) Window {
	return WeekWindow(ref.In(p.location()), p.WeekStartsOn)
}

// weekMinutes sums the minutes of non-cancelled, resolvable shifts inside w.
func (p Policy) weekMinutes(shifts []models.Shift, w Window) int {
	total := 0
	for _, rs := range p.activeIntervals(shifts) {
		total += MinutesOverlap(rs.start, rs.end, w.Start, w.End)
	}
	return total
}

// WeeklyUsage reports hours used in the week containing ref. Unresolvable
// shifts count as zero.
func (p Policy) WeeklyUsage(staff models.StaffProfile, ref time.Time) Usage {
	capHours := p.CapFor(staff)
	w := p.WeekOf(ref)
	minutes := p.weekMinutes(staff.Shifts, w)

	used := decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60)).Round(2)
	left := decimal.NewFromFloat(capHours).Sub(used).Round(2)
	if left.IsNegative() {
		left = decimal.Zero
	}

	return Usage{
		UsedHours:   used.InexactFloat64(),
		LeftHours:   left.InexactFloat64(),
		CapHours:    capHours,
		UsedPercent: usedPercent(used.InexactFloat64(), capHours),
		Window:      w,
	}
}

func usedPercent(used, capHours float64) float64 {
	if capHours <= 0 {
		return 0
	}
	return math.Min(100, math.Max(0, used/capHours*100))
}
