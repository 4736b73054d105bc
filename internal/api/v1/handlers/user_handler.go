package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rakaarfi/roster-system-be/internal/models"
	"github.com/rakaarfi/roster-system-be/internal/repository"
	"github.com/rakaarfi/roster-system-be/internal/roster"
	"github.com/rakaarfi/roster-system-be/internal/utils"
	zlog "github.com/rs/zerolog/log"
)

type UserHandler struct {
	StaffRepo repository.StaffRepository
	Policy    roster.Policy
	Validate  *validator.Validate
	Now       func() time.Time
}

func NewUserHandler(staffRepo repository.StaffRepository, policy roster.Policy) *UserHandler {
	return &UserHandler{
		StaffRepo: staffRepo,
		Policy:    policy,
		Validate:  models.NewValidator(),
		Now:       time.Now,
	}
}

// loadSelf returns the caller's own staff document.
func (h *UserHandler) loadSelf(c *fiber.Ctx) (*models.StaffProfile, error) {
	p, err := utils.PrincipalFromCtx(c)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Failed to identify user")
	}
	return h.StaffRepo.GetStaff(c.UserContext(), p.UserID)
}

func (h *UserHandler) GetMyProfile(c *fiber.Ctx) error {
	staff, err := h.loadSelf(c)
	if err != nil {
		return respondError(c, err, "Failed to retrieve profile")
	}
	return c.Status(http.StatusOK).JSON(models.Response{
		Success: true,
		Message: "Profile retrieved successfully",
		Data:    newStaffView(h.Policy, *staff, h.Now()),
	})
}

func (h *UserHandler) GetMyShifts(c *fiber.Ctx) error {
	staff, err := h.loadSelf(c)
	if err != nil {
		return respondError(c, err, "Failed to retrieve shifts")
	}
	return c.JSON(models.Response{
		Success: true,
		Message: "Shifts retrieved successfully",
		Data:    staff.Shifts,
	})
}

func (h *UserHandler) GetMyMessages(c *fiber.Ctx) error {
	staff, err := h.loadSelf(c)
	if err != nil {
		return respondError(c, err, "Failed to retrieve messages")
	}
	return c.JSON(models.Response{
		Success: true,
		Message: "Messages retrieved successfully",
		Data:    staff.Messages,
	})
}

// GetMyTimesheet returns the week containing ?date=YYYY-MM-DD (default today).
func (h *UserHandler) GetMyTimesheet(c *fiber.Ctx) error {
	ref := h.Now()
	if dateStr := strings.TrimSpace(c.Query("date")); dateStr != "" {
		loc := h.Policy.Location
		if loc == nil {
			loc = time.UTC
		}
		parsed, err := time.ParseInLocation(roster.DateLayout, dateStr, loc)
		if err != nil {
			return badRequest(c, "Invalid date format, use YYYY-MM-DD", err)
		}
		ref = parsed
	}

	staff, err := h.loadSelf(c)
	if err != nil {
		return respondError(c, err, "Failed to retrieve timesheet")
	}
	return c.JSON(models.Response{
		Success: true,
		Message: "Timesheet retrieved successfully",
		Data:    h.Policy.Timesheet(*staff, ref),
	})
}

// RequestShiftEdit submits a time change for one of the caller's assigned shifts.
func (h *UserHandler) RequestShiftEdit(c *fiber.Ctx) error {
	input := new(models.EditRequestInput)
	if err := c.BodyParser(input); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	input.ShiftStartTime = strings.TrimSpace(input.ShiftStartTime)
	input.ShiftEndTime = strings.TrimSpace(input.ShiftEndTime)
	if err := h.Validate.Struct(input); err != nil {
		return badRequest(c, "Validation failed", err)
	}

	staff, err := h.loadSelf(c)
	if err != nil {
		return respondError(c, err, "Failed to submit request")
	}
	shiftID := c.Params("shiftId")
	now := h.Now()

	proposal := roster.EditProposal{ShiftStartTime: input.ShiftStartTime, ShiftEndTime: input.ShiftEndTime}
	shifts, updated, err := roster.Mutate(staff.Shifts, shiftID, func(s *models.Shift) error {
		return roster.SubmitEdit(s, proposal, now)
	})
	if err != nil {
		return respondError(c, err, "Failed to submit request")
	}

	rev := staff.Revision
	_, err = h.StaffRepo.UpdateStaff(c.UserContext(), staff.ID, repository.StaffPatch{
		Shifts:           &shifts,
		AppendMessages:   []models.Message{roster.EditSubmittedMessage(updated, staff.Name, now)},
		ExpectedRevision: &rev,
	})
	if err != nil {
		return respondError(c, err, "Failed to submit request")
	}

	zlog.Info().Str("staff_id", staff.ID).Str("shift_id", shiftID).Msg("Shift edit requested")
	return c.JSON(models.Response{
		Success: true,
		Message: "Request submitted successfully",
		Data:    updated,
	})
}

func (h *UserHandler) UpdateDeviceToken(c *fiber.Ctx) error {
	p, err := utils.PrincipalFromCtx(c)
	if err != nil {
		return respondError(c, fiber.NewError(fiber.StatusUnauthorized, "Failed to identify user"), "Failed to update device token")
	}
	input := new(models.DeviceTokenInput)
	if err := c.BodyParser(input); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	input.Token = strings.TrimSpace(input.Token)
	if err := h.Validate.Struct(input); err != nil {
		return badRequest(c, "Validation failed", err)
	}

	if _, err := h.StaffRepo.UpdateStaff(c.UserContext(), p.UserID, repository.StaffPatch{FCMToken: &input.Token}); err != nil {
		return respondError(c, err, "Failed to update device token")
	}
	zlog.Debug().Str("staff_id", p.UserID).Msg("Device token updated")
	return c.JSON(models.Response{Success: true, Message: "Device token updated successfully"})
}
