package roster

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rakaarfi/roster-system-be/internal/models"
)

var (
	ErrShiftNotFound     = errors.New("shift not found")
	ErrMissingShiftID    = errors.New("shift id is required")
	ErrAwaitingApproval  = errors.New("shift edit is awaiting approval")
	ErrInvalidTransition = errors.New("invalid shift status transition")
	ErrEmptyProposal     = errors.New("proposed start or end time is required")
)

// EditProposal holds the times a staff member wants instead of the assigned ones.
// An empty field means "keep the current value".
type EditProposal struct {
	ShiftStartTime string
	ShiftEndTime   string
}

func transitionError(shift *models.Shift, action string) error {
	return fmt.Errorf("%w: cannot %s a %s shift", ErrInvalidTransition, action, shift.Status)
}

// SubmitEdit moves an assigned shift to pending and records the proposal.
// Live times are left untouched until approval.
func SubmitEdit(shift *models.Shift, proposal EditProposal, now time.Time) error {
	switch shift.Status {
	case models.StatusAssigned:
	case models.StatusPending:
		return ErrAwaitingApproval
	default:
		return transitionError(shift, "edit")
	}

	proposal.ShiftStartTime = strings.TrimSpace(proposal.ShiftStartTime)
	proposal.ShiftEndTime = strings.TrimSpace(proposal.ShiftEndTime)
	if proposal.ShiftStartTime == "" && proposal.ShiftEndTime == "" {
		return ErrEmptyProposal
	}
	for _, clock := range []string{proposal.ShiftStartTime, proposal.ShiftEndTime} {
		if clock == "" {
			continue
		}
		if _, err := time.Parse(TimeLayout, clock); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidShiftTime, clock)
		}
	}

	shift.Request = &models.ShiftRequest{
		ShiftStartTime: proposal.ShiftStartTime,
		ShiftEndTime:   proposal.ShiftEndTime,
		PrevStartTime:  shift.ShiftStartTime,
		PrevEndTime:    shift.ShiftEndTime,
		RequestedAt:    now,
	}
	shift.Status = models.StatusPending
	return nil
}

// Approve applies a pending request to the live times. A pending shift with
// no request payload is approved unchanged.
func Approve(shift *models.Shift) error {
	if shift.Status != models.StatusPending {
		return transitionError(shift, "approve")
	}
	if req := shift.Request; req != nil {
		if req.ShiftStartTime != "" {
			shift.ShiftStartTime = req.ShiftStartTime
		}
		if req.ShiftEndTime != "" {
			shift.ShiftEndTime = req.ShiftEndTime
		}
	}
	shift.Request = nil
	shift.Status = models.StatusApproved
	return nil
}

// Reject discards a pending request and reverts the shift to assigned.
func Reject(shift *models.Shift) error {
	if shift.Status != models.StatusPending {
		return transitionError(shift, "reject")
	}
	shift.Request = nil
	shift.Status = models.StatusAssigned
	return nil
}

// Cancel takes an assigned or approved shift out of scheduling. The record stays.
func Cancel(shift *models.Shift) error {
	switch shift.Status {
	case models.StatusAssigned, models.StatusApproved:
		shift.Status = models.StatusCancelled
		return nil
	case models.StatusPending:
		return fmt.Errorf("%w: resolve the pending request before cancelling", ErrInvalidTransition)
	}
	return transitionError(shift, "cancel")
}

// FindShift locates a shift by its stable id. Field-tuple matching is not
// supported; shifts without an id cannot be addressed.
func FindShift(shifts []models.Shift, id string) (int, error) {
	if strings.TrimSpace(id) == "" {
		return -1, ErrMissingShiftID
	}
	for i := range shifts {
		if shifts[i].ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrShiftNotFound, id)
}

// Mutate copies shifts, applies fn to the one with the given id and returns
// the new list together with the updated shift. The input slice is not modified.
func Mutate(shifts []models.Shift, id string, fn func(*models.Shift) error) ([]models.Shift, models.Shift, error) {
	i, err := FindShift(shifts, id)
	if err != nil {
		return nil, models.Shift{}, err
	}
	updated := make([]models.Shift, len(shifts))
	copy(updated, shifts)
	if updated[i].Request != nil {
		req := *updated[i].Request
		updated[i].Request = &req
	}
	if err := fn(&updated[i]); err != nil {
		return nil, models.Shift{}, err
	}
	return updated, updated[i], nil
}

// Remove returns shifts without the one with the given id.
func Remove(shifts []models.Shift, id string) ([]models.Shift, models.Shift, error) {
	i, err := FindShift(shifts, id)
	if err != nil {
		return nil, models.Shift{}, err
	}
	removed := shifts[i]
	out := make([]models.Shift, 0, len(shifts)-1)
	out = append(out, shifts[:i]...)
	out = append(out, shifts[i+1:]...)
	return out, removed, nil
}

// PendingRequest is one row of the approval queue.
type PendingRequest struct {
	StaffID   string       `json:"staff_id"`
	StaffName string       `json:"staff_name"`
	Shift     models.Shift `json:"shift"`
	FromStart string       `json:"from_start"`
	FromEnd   string       `json:"from_end"`
	ToStart   string       `json:"to_start"`
	ToEnd     string       `json:"to_end"`
}

// PendingRequests lists every pending shift across the given staff, with the
// current and proposed times side by side.
func PendingRequests(staff []models.StaffProfile) []PendingRequest {
	out := []PendingRequest{}
	for _, st := range staff {
		for _, s := range st.Shifts {
			if s.Status != models.StatusPending {
				continue
			}
			row := PendingRequest{StaffID: st.ID, StaffName: st.Name, Shift: s, ToStart: s.ShiftStartTime, ToEnd: s.ShiftEndTime}
			if req := s.Request; req != nil && (req.ShiftStartTime != "" || req.ShiftEndTime != "") {
				row.FromStart, row.FromEnd = s.ShiftStartTime, s.ShiftEndTime
				if req.ShiftStartTime != "" {
					row.ToStart = req.ShiftStartTime
				}
				if req.ShiftEndTime != "" {
					row.ToEnd = req.ShiftEndTime
				}
			}
			out = append(out, row)
		}
	}
	return out
}
