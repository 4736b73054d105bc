package roster

import (
	"sort"
	"time"

	"github.com/rakaarfi/roster-system-be/internal/models"
	"github.com/shopspring/decimal"
)

type TimesheetRow struct {
	ShiftID   string               `json:"shift_id"`
	Date      string               `json:"date"`
	Role      string               `json:"role"`
	Start     string               `json:"start"`
	End       string               `json:"end"`
	Hours     float64              `json:"hours"`
	Status    models.ShiftStatus   `json:"status"`
	Overnight bool                 `json:"overnight"`
	Resolved  bool                 `json:"resolved"`
	Request   *models.ShiftRequest `json:"request,omitempty"`
}

type Timesheet struct {
	Window Window         `json:"window"`
	Rows   []TimesheetRow `json:"rows"`
	Usage  Usage          `json:"usage"`
}

// Timesheet lists the shifts dated inside the week containing ref, ordered by
// start, together with the week's usage. Cancelled shifts are listed with
// zero hours.
func (p Policy) Timesheet(staff models.StaffProfile, ref time.Time) Timesheet {
	usage := p.WeeklyUsage(staff, ref)
	w := usage.Window

	type keyed struct {
		row   TimesheetRow
		start time.Time
	}
	var rows []keyed
	for _, s := range staff.Shifts {
		iv, err := p.Resolve(s)
		if err != nil || !w.Contains(iv.Start) {
			continue
		}
		row := TimesheetRow{
			ShiftID:   s.ID,
			Date:      s.ShiftDate,
			Role:      s.ShiftRole,
			Start:     s.ShiftStartTime,
			End:       s.ShiftEndTime,
			Status:    s.Status,
			Overnight: iv.Overnight,
			Resolved:  iv.Resolved(),
			Request:   s.Request,
		}
		if iv.Resolved() {
			if row.End == "" {
				row.End = iv.End.Format(TimeLayout)
			}
			if s.Status != models.StatusCancelled {
				row.Hours = decimal.NewFromFloat(iv.Duration().Hours()).Round(2).InexactFloat64()
			}
		}
		rows = append(rows, keyed{row: row, start: iv.Start})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].start.Before(rows[j].start) })

	out := Timesheet{Window: w, Usage: usage, Rows: make([]TimesheetRow, 0, len(rows))}
	for _, k := range rows {
		out.Rows = append(out.Rows, k.row)
	}
	return out
}
