package repository

import (
	"testing"
	"time"

	"github.com/rakaarfi/roster-system-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyVariants(t *testing.T) {
	assert.Equal(t, []string{"weeklyHourCap", "WeeklyHourCap", "weekly_hour_cap"}, keyVariants("weeklyHourCap"))
	assert.Equal(t, []string{"id", "Id", "id"}, keyVariants("id"))
}

func TestDecodeStaffDocument_FieldNameVariants(t *testing.T) {
	docs := map[string]string{
		"camel":  `{"name":"Dana","weeklyHourCap":40,"fcmToken":"tok","shifts":[{"id":"a","shiftDate":"2025-05-12","shiftStartTime":"09:00","durationMinutes":360,"shiftRole":"morning","status":"assigned"}]}`,
		"pascal": `{"Name":"Dana","WeeklyHourCap":40,"FcmToken":"tok","Shifts":[{"Id":"a","ShiftDate":"2025-05-12","ShiftStartTime":"09:00","DurationMinutes":360,"ShiftRole":"Morning","Status":"Assigned"}]}`,
		"snake":  `{"name":"Dana","weekly_hour_cap":"40","fcm_token":"tok","shifts":[{"id":"a","shift_date":"2025-05-12","shift_start_time":"09:00","duration_minutes":"360","shift_role":"MORNING","status":"ASSIGNED"}]}`,
	}
	for name, raw := range docs {
		t.Run(name, func(t *testing.T) {
			p, err := DecodeStaffDocument("emp1", []byte(raw))
			require.NoError(t, err)
			assert.Equal(t, "emp1", p.ID)
			assert.Equal(t, "Dana", p.Name)
			assert.Equal(t, 40.0, p.WeeklyHourCap)
			assert.Equal(t, "tok", p.FCMToken)
			assert.Equal(t, models.RoleStaff, p.Role)
			assert.True(t, p.Active)
			require.Len(t, p.Shifts, 1)
			assert.Equal(t, models.Shift{
				ID:              "a",
				ShiftDate:       "2025-05-12",
				ShiftStartTime:  "09:00",
				DurationMinutes: 360,
				ShiftRole:       "morning",
				Status:          models.StatusAssigned,
			}, p.Shifts[0])
			assert.NotNil(t, p.Messages)
		})
	}
}

func TestDecodeStaffDocument_Timestamps(t *testing.T) {
	want := time.Date(2025, 5, 10, 8, 0, 0, 0, time.UTC)
	forms := []string{
		`"2025-05-10T08:00:00Z"`,
		`1746864000000`,
		`{"seconds":1746864000,"nanoseconds":0}`,
		`{"_seconds":1746864000,"_nanoseconds":0}`,
	}
	for _, form := range forms {
		raw := `{"name":"Dana","lastShiftCreatedAt":` + form + `,"messages":[{"text":"hi","from":"HR","sentAt":` + form + `}]}`
		p, err := DecodeStaffDocument("emp1", []byte(raw))
		require.NoError(t, err, form)
		require.NotNil(t, p.LastShiftCreatedAt, form)
		assert.True(t, want.Equal(*p.LastShiftCreatedAt), form)
		require.Len(t, p.Messages, 1)
		assert.True(t, want.Equal(p.Messages[0].SentAt), form)
	}
}

func TestDecodeStaffDocument_Statuses(t *testing.T) {
	tests := map[string]models.ShiftStatus{
		``:          models.StatusAssigned,
		`Pending`:   models.StatusPending,
		`APPROVED`:  models.StatusApproved,
		`canceled`:  models.StatusCancelled,
		`Cancelled`: models.StatusCancelled,
	}
	for in, want := range tests {
		raw := `{"shifts":[{"id":"a","shiftDate":"2025-05-12","shiftStartTime":"09:00","status":"` + in + `"}]}`
		p, err := DecodeStaffDocument("emp1", []byte(raw))
		require.NoError(t, err, in)
		assert.Equal(t, want, p.Shifts[0].Status, in)
	}
}

func TestDecodeStaffDocument_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{"not json", `{"name":`, ErrMalformed},
		{"shift without id", `{"shifts":[{"shiftDate":"2025-05-12","shiftStartTime":"09:00"}]}`, ErrLegacyShift},
		{"unknown status", `{"shifts":[{"id":"a","status":"maybe"}]}`, ErrMalformed},
		{"unknown role", `{"role":"Manager"}`, ErrMalformed},
		{"cap not a number", `{"weeklyHourCap":"lots"}`, ErrMalformed},
		{"shifts not a list", `{"shifts":{"id":"a"}}`, ErrMalformed},
		{"name not a string", `{"name":["Dana"]}`, ErrMalformed},
		{"bad timestamp", `{"createdAt":"yesterday"}`, ErrMalformed},
		{"active not a bool", `{"active":"sometimes"}`, ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeStaffDocument("emp1", []byte(tt.raw))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEncodeDecodeKeepsRevisionOutOfDocument(t *testing.T) {
	p := &models.StaffProfile{ID: "emp1", Name: "Dana", Role: models.RoleHR, Revision: 7}
	raw, err := EncodeStaffDocument(p)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"shifts":[]`)

	back, err := DecodeStaffDocument("emp1", raw)
	require.NoError(t, err)
	assert.Zero(t, back.Revision)
	assert.Equal(t, models.RoleHR, back.Role)
	assert.Equal(t, int64(7), p.Revision)
}

func TestApplyPatch(t *testing.T) {
	doc := &models.StaffProfile{ID: "emp1", Revision: 3}
	stale := int64(2)
	err := applyPatch(doc, StaffPatch{AppendMessages: []models.Message{{Text: "x"}}, ExpectedRevision: &stale})
	assert.ErrorIs(t, err, ErrRevisionConflict)
	assert.Empty(t, doc.Messages)
	assert.Equal(t, int64(3), doc.Revision)

	assert.True(t, StaffPatch{ExpectedRevision: &stale}.empty())
	assert.False(t, StaffPatch{AppendMessages: []models.Message{{Text: "x"}}}.empty())
}
