// internal/repository/repository.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rakaarfi/roster-system-be/internal/models"
)

// File ini mendefinisikan kontrak document store untuk staff.
// Satu dokumen per staff: profil, daftar shift, dan inbox pesan.
// Implementasi konkret: PostgreSQL (JSONB), SQLite, dan in-memory.

var (
	ErrNotFound         = errors.New("staff document not found")
	ErrDuplicate        = errors.New("staff id or email already exists")
	ErrRevisionConflict = errors.New("staff document was modified by another request")
	ErrLegacyShift      = errors.New("stored shift has no id")
	ErrMalformed        = errors.New("malformed staff document")
)

// StaffPatch is a partial update. Nil / empty fields are left alone.
// Shifts replaces the whole list and is applied before AppendShifts.
type StaffPatch struct {
	Shifts             *[]models.Shift
	AppendShifts       []models.Shift
	AppendMessages     []models.Message
	WeeklyHourCap      *float64
	FCMToken           *string
	LastShiftCreatedAt *time.Time

	// ExpectedRevision turns the write into a compare-and-swap.
	ExpectedRevision *int64
}

func (p StaffPatch) empty() bool {
	return p.Shifts == nil && len(p.AppendShifts) == 0 && len(p.AppendMessages) == 0 &&
		p.WeeklyHourCap == nil && p.FCMToken == nil && p.LastShiftCreatedAt == nil
}

// StaffQuery filters QueryStaffByRole. Search matches name, email or role, case-insensitively.
type StaffQuery struct {
	Role   string
	Search string
}

// StaffRepository: kontrak untuk operasi dokumen staff.
type StaffRepository interface {
	CreateStaff(ctx context.Context, profile *models.StaffProfile, passwordHash string) error                // Buat dokumen staff baru.
	GetStaff(ctx context.Context, id string) (*models.StaffProfile, error)                                   // Ambil dokumen by ID.
	QueryStaffByRole(ctx context.Context, q StaffQuery, page, limit int) ([]models.StaffProfile, int, error) // limit <= 0 berarti semua.
	UpdateStaff(ctx context.Context, id string, patch StaffPatch) (*models.StaffProfile, error)              // Partial update + revision bump.
	GetCredentials(ctx context.Context, id string) (*models.Credentials, error)                              // Hash password + principal untuk login.
}

// applyPatch mutates doc in place and bumps its revision. Every backend calls it
// while holding the document's write lock.
func applyPatch(doc *models.StaffProfile, patch StaffPatch) error {
	if patch.ExpectedRevision != nil && *patch.ExpectedRevision != doc.Revision {
		return fmt.Errorf("%w: staff %s at revision %d, expected %d",
			ErrRevisionConflict, doc.ID, doc.Revision, *patch.ExpectedRevision)
	}
	if patch.Shifts != nil {
		doc.Shifts = append([]models.Shift{}, (*patch.Shifts)...)
	}
	for _, s := range append(append([]models.Shift{}, doc.Shifts...), patch.AppendShifts...) {
		if strings.TrimSpace(s.ID) == "" {
			return fmt.Errorf("%w: staff %s, shift on %s", ErrLegacyShift, doc.ID, s.ShiftDate)
		}
	}
	doc.Shifts = append(doc.Shifts, patch.AppendShifts...)
	doc.Messages = append(doc.Messages, patch.AppendMessages...)
	if patch.WeeklyHourCap != nil {
		doc.WeeklyHourCap = *patch.WeeklyHourCap
	}
	if patch.FCMToken != nil {
		doc.FCMToken = *patch.FCMToken
	}
	if patch.LastShiftCreatedAt != nil {
		t := *patch.LastShiftCreatedAt
		doc.LastShiftCreatedAt = &t
	}
	doc.Revision++
	return nil
}

// matchesQuery is the in-process version of the SQL filters.
func matchesQuery(p models.StaffProfile, q StaffQuery) bool {
	if q.Role != "" && !strings.EqualFold(p.Role, q.Role) {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(q.Search))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Email), term) ||
		strings.Contains(strings.ToLower(p.Role), term)
}

func offsetFor(page, limit int) int {
	if page < 1 || limit <= 0 {
		return 0
	}
	return (page - 1) * limit
}
