package roster_test

import (
	"testing"
	"time"

	"github.com/rakaarfi/roster-system-be/internal/models"
	"github.com/rakaarfi/roster-system-be/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assigned(id, date, start, end string) models.Shift {
	return models.Shift{
		ID:             id,
		ShiftDate:      date,
		ShiftStartTime: start,
		ShiftEndTime:   end,
		ShiftRole:      "morning",
		Status:         models.StatusAssigned,
	}
}

func TestResolveInterval(t *testing.T) {
	tests := []struct {
		name          string
		shift         models.Shift
		wantEnd       time.Time
		wantOvernight bool
		wantDuration  time.Duration
	}{
		{
			name:         "same day",
			shift:        assigned("s1", "2025-05-12", "09:00", "17:00"),
			wantEnd:      at("2025-05-12", "17:00"),
			wantDuration: 8 * time.Hour,
		},
		{
			name:          "overnight",
			shift:         assigned("s1", "2025-05-12", "22:00", "08:00"),
			wantEnd:       at("2025-05-13", "08:00"),
			wantOvernight: true,
			wantDuration:  10 * time.Hour,
		},
		{
			name:          "equal start and end is a full day",
			shift:         assigned("s1", "2025-05-12", "09:00", "09:00"),
			wantEnd:       at("2025-05-13", "09:00"),
			wantOvernight: true,
			wantDuration:  24 * time.Hour,
		},
		{
			name:         "explicit duration",
			shift:        models.Shift{ShiftDate: "2025-05-12", ShiftStartTime: "09:00", DurationMinutes: 90, ShiftRole: "night"},
			wantEnd:      at("2025-05-12", "10:30"),
			wantDuration: 90 * time.Minute,
		},
		{
			name:         "night role default",
			shift:        models.Shift{ShiftDate: "2025-05-12", ShiftStartTime: "20:00", ShiftRole: "night"},
			wantEnd:      at("2025-05-13", "06:00"),
			wantDuration: 10 * time.Hour,
		},
		{
			name:         "role label is case insensitive",
			shift:        models.Shift{ShiftDate: "2025-05-12", ShiftStartTime: "06:00", ShiftRole: " Morning "},
			wantEnd:      at("2025-05-12", "12:00"),
			wantDuration: 6 * time.Hour,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iv, err := roster.ResolveInterval(tt.shift, time.UTC, roster.DefaultRoleDurations)
			require.NoError(t, err)
			require.True(t, iv.Resolved())
			assert.True(t, tt.wantEnd.Equal(*iv.End), "end: got %s want %s", iv.End, tt.wantEnd)
			assert.Equal(t, tt.wantOvernight, iv.Overnight)
			assert.Equal(t, tt.wantDuration, iv.Duration())
			assert.True(t, iv.End.After(iv.Start))

			again, err := roster.ResolveInterval(tt.shift, time.UTC, roster.DefaultRoleDurations)
			require.NoError(t, err)
			assert.Equal(t, iv, again)
		})
	}
}

func TestResolveInterval_Unresolved(t *testing.T) {
	s := models.Shift{ShiftDate: "2025-05-12", ShiftStartTime: "09:00", ShiftRole: "floater"}
	iv, err := roster.ResolveInterval(s, time.UTC, roster.DefaultRoleDurations)
	require.NoError(t, err)
	assert.False(t, iv.Resolved())
	assert.Nil(t, iv.End)
	assert.Zero(t, iv.Duration())
	assert.True(t, at("2025-05-12", "09:00").Equal(iv.Start))
}

func TestResolveInterval_InvalidFields(t *testing.T) {
	tests := []models.Shift{
		assigned("s1", "12/05/2025", "09:00", "17:00"),
		assigned("s1", "2025-05-12", "9am", "17:00"),
		assigned("s1", "2025-05-12", "09:00", "25:00"),
		assigned("s1", "", "09:00", "17:00"),
	}
	for _, s := range tests {
		_, err := roster.ResolveInterval(s, time.UTC, nil)
		assert.ErrorIs(t, err, roster.ErrInvalidShiftTime, "shift %+v", s)
	}
}

func TestResolveInterval_Location(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*60*60)
	iv, err := roster.ResolveInterval(assigned("s1", "2025-05-12", "09:00", "17:00"), loc, nil)
	require.NoError(t, err)
	assert.Equal(t, "2025-05-12T01:00:00Z", iv.Start.UTC().Format(time.RFC3339))
}

func TestPolicyRoleDuration(t *testing.T) {
	p := roster.DefaultPolicy()
	assert.Equal(t, 360, p.RoleDuration("morning"))
	assert.Equal(t, 360, p.RoleDuration("EVENING"))
	assert.Equal(t, 600, p.RoleDuration("night"))
	assert.Equal(t, 0, p.RoleDuration("floater"))

	p.RoleDurations = map[string]int{"floater": 240}
	assert.Equal(t, 240, p.RoleDuration("Floater"))
	assert.Equal(t, 0, p.RoleDuration("morning"))
}
