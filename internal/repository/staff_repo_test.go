package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rakaarfi/roster-system-be/internal/database"
	"github.com/rakaarfi/roster-system-be/internal/models"
	"github.com/rakaarfi/roster-system-be/internal/repository"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// staffRepoSuite runs the same contract against every StaffRepository backend.
type staffRepoSuite struct {
	suite.Suite
	newRepo func(t *testing.T) repository.StaffRepository
	repo    repository.StaffRepository
	ctx     context.Context
}

func TestMemoryStaffRepository(t *testing.T) {
	suite.Run(t, &staffRepoSuite{newRepo: func(*testing.T) repository.StaffRepository {
		return repository.NewStaffMemoryRepository()
	}})
}

func TestSQLiteStaffRepository(t *testing.T) {
	suite.Run(t, &staffRepoSuite{newRepo: func(t *testing.T) repository.StaffRepository {
		db, err := database.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "roster.db"))
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		return repository.NewStaffSQLiteRepository(db)
	}})
}

func (s *staffRepoSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = s.newRepo(s.T())
}

var created = time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

func profile(id, name, email, role string) *models.StaffProfile {
	return &models.StaffProfile{
		ID:            id,
		Name:          name,
		Email:         email,
		Role:          role,
		WeeklyHourCap: 38,
		Active:        true,
		CreatedAt:     created,
	}
}

func shift(id, date string) models.Shift {
	return models.Shift{
		ID:             id,
		ShiftDate:      date,
		ShiftStartTime: "09:00",
		ShiftEndTime:   "17:00",
		ShiftRole:      "morning",
		Status:         models.StatusAssigned,
		CreatedAt:      created,
	}
}

func (s *staffRepoSuite) create(p *models.StaffProfile) {
	s.Require().NoError(s.repo.CreateStaff(s.ctx, p, "hash-"+p.ID))
}

func (s *staffRepoSuite) TestCreateAndGet() {
	p := profile("emp1", "Dana", "dana@example.com", models.RoleStaff)
	p.Shifts = []models.Shift{shift("a", "2025-05-12")}
	s.create(p)
	s.Equal(int64(1), p.Revision)

	got, err := s.repo.GetStaff(s.ctx, "emp1")
	s.Require().NoError(err)
	s.Equal("Dana", got.Name)
	s.Equal(models.RoleStaff, got.Role)
	s.Equal(38.0, got.WeeklyHourCap)
	s.Equal(int64(1), got.Revision)
	s.Equal(p.Shifts, got.Shifts)
	s.Empty(got.Messages)
	s.True(created.Equal(got.CreatedAt))
}

func (s *staffRepoSuite) TestCreateDuplicate() {
	s.create(profile("emp1", "Dana", "dana@example.com", models.RoleStaff))

	err := s.repo.CreateStaff(s.ctx, profile("emp1", "Other", "other@example.com", models.RoleStaff), "x")
	s.ErrorIs(err, repository.ErrDuplicate)

	err = s.repo.CreateStaff(s.ctx, profile("emp2", "Other", "DANA@example.com", models.RoleStaff), "x")
	s.ErrorIs(err, repository.ErrDuplicate)
}

func (s *staffRepoSuite) TestGetMissing() {
	_, err := s.repo.GetStaff(s.ctx, "ghost")
	s.ErrorIs(err, repository.ErrNotFound)

	_, err = s.repo.UpdateStaff(s.ctx, "ghost", repository.StaffPatch{AppendMessages: []models.Message{{Text: "hi"}}})
	s.ErrorIs(err, repository.ErrNotFound)

	_, err = s.repo.GetCredentials(s.ctx, "ghost")
	s.ErrorIs(err, repository.ErrNotFound)
}

func (s *staffRepoSuite) TestQueryStaffByRole() {
	s.create(profile("emp1", "Alice", "alice@example.com", models.RoleStaff))
	s.create(profile("emp2", "Bob", "bob@example.com", models.RoleStaff))
	s.create(profile("emp3", "Carla", "carla@example.com", models.RoleStaff))
	s.create(profile("hr1", "Hana", "hana@example.com", models.RoleHR))

	all, total, err := s.repo.QueryStaffByRole(s.ctx, repository.StaffQuery{Role: "staff"}, 1, 0)
	s.Require().NoError(err)
	s.Equal(3, total)
	s.Len(all, 3)
	s.Equal("emp1", all[0].ID)

	page2, total, err := s.repo.QueryStaffByRole(s.ctx, repository.StaffQuery{Role: models.RoleStaff}, 2, 2)
	s.Require().NoError(err)
	s.Equal(3, total)
	s.Require().Len(page2, 1)
	s.Equal("emp3", page2[0].ID)

	found, total, err := s.repo.QueryStaffByRole(s.ctx, repository.StaffQuery{Search: "BOB"}, 1, 10)
	s.Require().NoError(err)
	s.Equal(1, total)
	s.Require().Len(found, 1)
	s.Equal("emp2", found[0].ID)

	everyone, total, err := s.repo.QueryStaffByRole(s.ctx, repository.StaffQuery{}, 1, 10)
	s.Require().NoError(err)
	s.Equal(4, total)
	s.Len(everyone, 4)

	past, total, err := s.repo.QueryStaffByRole(s.ctx, repository.StaffQuery{}, 9, 10)
	s.Require().NoError(err)
	s.Equal(4, total)
	s.Empty(past)
}

func (s *staffRepoSuite) TestUpdateStaff() {
	s.create(profile("emp1", "Dana", "dana@example.com", models.RoleStaff))

	weeklyCap := 20.0
	token := "device-token"
	stamp := time.Date(2025, 5, 10, 8, 0, 0, 0, time.UTC)
	msg := models.Message{Text: "New shift", From: "HR", SentAt: stamp}

	got, err := s.repo.UpdateStaff(s.ctx, "emp1", repository.StaffPatch{
		AppendShifts:       []models.Shift{shift("a", "2025-05-12")},
		AppendMessages:     []models.Message{msg},
		WeeklyHourCap:      &weeklyCap,
		FCMToken:           &token,
		LastShiftCreatedAt: &stamp,
	})
	s.Require().NoError(err)
	s.Equal(int64(2), got.Revision)

	reloaded, err := s.repo.GetStaff(s.ctx, "emp1")
	s.Require().NoError(err)
	s.Equal(int64(2), reloaded.Revision)
	s.Equal(20.0, reloaded.WeeklyHourCap)
	s.Equal("device-token", reloaded.FCMToken)
	s.Require().NotNil(reloaded.LastShiftCreatedAt)
	s.True(stamp.Equal(*reloaded.LastShiftCreatedAt))
	s.Equal([]models.Message{msg}, reloaded.Messages)
	s.Require().Len(reloaded.Shifts, 1)

	// append keeps existing shifts
	_, err = s.repo.UpdateStaff(s.ctx, "emp1", repository.StaffPatch{AppendShifts: []models.Shift{shift("b", "2025-05-13")}})
	s.Require().NoError(err)

	// replace
	replaced := []models.Shift{shift("c", "2025-05-14")}
	got, err = s.repo.UpdateStaff(s.ctx, "emp1", repository.StaffPatch{Shifts: &replaced})
	s.Require().NoError(err)
	s.Equal(int64(4), got.Revision)
	s.Equal(replaced, got.Shifts)
}

func (s *staffRepoSuite) TestUpdateStaff_RevisionConflict() {
	s.create(profile("emp1", "Dana", "dana@example.com", models.RoleStaff))

	current, err := s.repo.GetStaff(s.ctx, "emp1")
	s.Require().NoError(err)
	rev := current.Revision

	_, err = s.repo.UpdateStaff(s.ctx, "emp1", repository.StaffPatch{
		AppendShifts:     []models.Shift{shift("a", "2025-05-12")},
		ExpectedRevision: &rev,
	})
	s.Require().NoError(err)

	_, err = s.repo.UpdateStaff(s.ctx, "emp1", repository.StaffPatch{
		AppendShifts:     []models.Shift{shift("b", "2025-05-12")},
		ExpectedRevision: &rev,
	})
	s.ErrorIs(err, repository.ErrRevisionConflict)

	after, err := s.repo.GetStaff(s.ctx, "emp1")
	s.Require().NoError(err)
	s.Len(after.Shifts, 1)
}

func (s *staffRepoSuite) TestUpdateStaff_RejectsShiftWithoutID() {
	s.create(profile("emp1", "Dana", "dana@example.com", models.RoleStaff))

	_, err := s.repo.UpdateStaff(s.ctx, "emp1", repository.StaffPatch{AppendShifts: []models.Shift{shift("", "2025-05-12")}})
	s.ErrorIs(err, repository.ErrLegacyShift)
}

func (s *staffRepoSuite) TestGetCredentials() {
	s.create(profile("emp1", "Dana", "dana@example.com", models.RoleHR))

	creds, err := s.repo.GetCredentials(s.ctx, "emp1")
	s.Require().NoError(err)
	s.Equal("hash-emp1", creds.PasswordHash)
	s.Equal(models.Principal{UserID: "emp1", Name: "Dana", Role: models.RoleHR, Email: "dana@example.com"}, creds.Principal)
	s.True(creds.Active)

	gone := profile("emp2", "Gil", "gil@example.com", models.RoleStaff)
	gone.Active = false
	s.create(gone)
	creds, err = s.repo.GetCredentials(s.ctx, "emp2")
	s.Require().NoError(err)
	s.False(creds.Active)
}

func TestSeedRaw_NormalizesLegacyDocument(t *testing.T) {
	repo := repository.NewStaffMemoryRepository()
	raw := []byte(`{
		"Name": "Dana",
		"email": "dana@example.com",
		"role": "staff",
		"weekly_hour_cap": "40",
		"shifts": [
			{"id": "a", "ShiftDate": "2025-05-12", "shift_start_time": "09:00", "shiftEndTime": "17:00", "shiftRole": "Morning", "status": "Pending",
			 "request": {"shiftEndTime": "18:00", "prevStartTime": "09:00", "prevEndTime": "17:00", "requestedAt": {"seconds": 1746864000, "nanoseconds": 0}}}
		]
	}`)
	require.NoError(t, repository.SeedRaw(repo, "emp1", "hash", raw))

	p, err := repo.GetStaff(context.Background(), "emp1")
	require.NoError(t, err)
	require.Len(t, p.Shifts, 1)
	require.NotNil(t, p.Shifts[0].Request)
	require.Equal(t, "Dana", p.Name)
	require.Equal(t, models.RoleStaff, p.Role)
	require.Equal(t, 40.0, p.WeeklyHourCap)
	require.Equal(t, models.StatusPending, p.Shifts[0].Status)
	require.Equal(t, "morning", p.Shifts[0].ShiftRole)
	require.Equal(t, "18:00", p.Shifts[0].Request.ShiftEndTime)
	require.Equal(t, int64(1746864000), p.Shifts[0].Request.RequestedAt.Unix())

	require.Error(t, repository.SeedRaw(nil, "x", "", raw))
}
