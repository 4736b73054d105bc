package roster_test

import (
	"testing"

	"github.com/rakaarfi/roster-system-be/internal/models"
	"github.com/rakaarfi/roster-system-be/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimesheet(t *testing.T) {
	cancelled := assigned("c", "2025-05-13", "09:00", "17:00")
	cancelled.Status = models.StatusCancelled
	derived := models.Shift{ID: "n", ShiftDate: "2025-05-14", ShiftStartTime: "20:00", ShiftRole: "night", DurationMinutes: 600, Status: models.StatusAssigned}
	floater := models.Shift{ID: "f", ShiftDate: "2025-05-16", ShiftStartTime: "09:00", ShiftRole: "floater", Status: models.StatusAssigned}

	staff := models.StaffProfile{ID: "emp1", Shifts: []models.Shift{
		assigned("late", "2025-05-15", "09:00", "15:00"),
		assigned("early", "2025-05-12", "09:00", "17:00"),
		cancelled,
		derived,
		floater,
		assigned("nextweek", "2025-05-19", "09:00", "17:00"),
	}}

	ts := roster.DefaultPolicy().Timesheet(staff, at("2025-05-14", "12:00"))
	require.Len(t, ts.Rows, 5)

	ids := make([]string, 0, len(ts.Rows))
	for _, r := range ts.Rows {
		ids = append(ids, r.ShiftID)
	}
	assert.Equal(t, []string{"early", "c", "n", "late", "f"}, ids)

	assert.Equal(t, 8.0, ts.Rows[0].Hours)
	assert.Zero(t, ts.Rows[1].Hours, "cancelled rows carry no hours")
	assert.Equal(t, "06:00", ts.Rows[2].End)
	assert.True(t, ts.Rows[2].Resolved)
	assert.Equal(t, 10.0, ts.Rows[2].Hours)
	assert.False(t, ts.Rows[4].Resolved)
	assert.Zero(t, ts.Rows[4].Hours)

	assert.Equal(t, 24.0, ts.Usage.UsedHours)
	assert.Equal(t, ts.Window, ts.Usage.Window)
}

func TestTimesheet_Empty(t *testing.T) {
	ts := roster.DefaultPolicy().Timesheet(models.StaffProfile{}, at("2025-05-14", "12:00"))
	assert.NotNil(t, ts.Rows)
	assert.Empty(t, ts.Rows)
	assert.Equal(t, 38.0, ts.Usage.LeftHours)
}
