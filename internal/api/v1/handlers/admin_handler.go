package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rakaarfi/roster-system-be/internal/models"
	"github.com/rakaarfi/roster-system-be/internal/notify"
	"github.com/rakaarfi/roster-system-be/internal/repository"
	"github.com/rakaarfi/roster-system-be/internal/roster"
	"github.com/rakaarfi/roster-system-be/internal/utils"
	zlog "github.com/rs/zerolog/log"
)

type AdminHandler struct {
	StaffRepo   repository.StaffRepository
	Policy      roster.Policy
	Notifier    notify.Sink
	NotifyTitle string
	Validate    *validator.Validate
	Now         func() time.Time
	NewID       func() string
}

func NewAdminHandler(staffRepo repository.StaffRepository, policy roster.Policy, notifier notify.Sink, notifyTitle string) *AdminHandler {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &AdminHandler{
		StaffRepo:   staffRepo,
		Policy:      policy,
		Notifier:    notifier,
		NotifyTitle: notifyTitle,
		Validate:    models.NewValidator(),
		Now:         time.Now,
		NewID:       uuid.NewString,
	}
}

// StaffView is a staff profile together with the usage of the current week.
type StaffView struct {
	models.StaffProfile
	Usage roster.Usage `json:"usage"`
}

func newStaffView(policy roster.Policy, p models.StaffProfile, now time.Time) StaffView {
	return StaffView{StaffProfile: p, Usage: policy.WeeklyUsage(p, now)}
}

func (h *AdminHandler) loadStaff(c *fiber.Ctx) (*models.StaffProfile, error) {
	staffID, err := utils.ExtractStaffIDFromParam(c)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return h.StaffRepo.GetStaff(c.UserContext(), staffID)
}

func (h *AdminHandler) notify(staff *models.StaffProfile, msg models.Message) {
	h.Notifier.Notify(staff.FCMToken, h.NotifyTitle, msg.Text)
}

// --- Staff Management ---

func (h *AdminHandler) CreateStaff(c *fiber.Ctx) error {
	input := new(models.CreateStaffInput)
	if err := c.BodyParser(input); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	input.UserID = strings.TrimSpace(input.UserID)
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)

	if err := h.Validate.Struct(input); err != nil {
		return badRequest(c, "Validation failed", err)
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return respondError(c, err, "Failed to create staff")
	}

	weeklyCap := input.WeeklyHourCap
	if weeklyCap <= 0 {
		weeklyCap = h.Policy.DefaultWeeklyCap
	}
	now := h.Now()
	profile := &models.StaffProfile{
		ID:            input.UserID,
		Name:          input.Name,
		Email:         input.Email,
		Role:          input.Role,
		WeeklyHourCap: weeklyCap,
		Shifts:        []models.Shift{},
		Messages:      []models.Message{},
		Active:        true,
		CreatedAt:     now,
	}
	if err := h.StaffRepo.CreateStaff(c.UserContext(), profile, hash); err != nil {
		return respondError(c, err, "Failed to create staff")
	}

	zlog.Info().Str("staff_id", profile.ID).Str("role", profile.Role).Msg("Staff created")
	return c.Status(fiber.StatusCreated).JSON(models.Response{
		Success: true,
		Message: "Staff created successfully",
		Data:    newStaffView(h.Policy, *profile, now),
	})
}

// GetAllStaff lists staff with this week's usage. Filters: role, q (name, email or role).
func (h *AdminHandler) GetAllStaff(c *fiber.Ctx) error {
	pagination := utils.ParsePaginationParams(c)
	query := repository.StaffQuery{
		Role:   strings.TrimSpace(c.Query("role")),
		Search: strings.TrimSpace(c.Query("q")),
	}

	staff, total, err := h.StaffRepo.QueryStaffByRole(c.UserContext(), query, pagination.Page, pagination.Limit)
	if err != nil {
		return respondError(c, err, "Failed to retrieve staff")
	}

	now := h.Now()
	views := make([]StaffView, 0, len(staff))
	for _, p := range staff {
		views = append(views, newStaffView(h.Policy, p, now))
	}
	meta := utils.BuildPaginationMeta(total, pagination.Limit, pagination.Page)
	return c.Status(http.StatusOK).JSON(utils.NewPaginatedResponse("Staff retrieved successfully", views, meta))
}

func (h *AdminHandler) GetStaffByID(c *fiber.Ctx) error {
	staff, err := h.loadStaff(c)
	if err != nil {
		return respondError(c, err, "Failed to retrieve staff")
	}
	return c.JSON(models.Response{
		Success: true,
		Message: "Staff retrieved successfully",
		Data:    newStaffView(h.Policy, *staff, h.Now()),
	})
}

func (h *AdminHandler) UpdateWeeklyCap(c *fiber.Ctx) error {
	staffID, err := utils.ExtractStaffIDFromParam(c)
	if err != nil {
		return badRequest(c, "Invalid staff id", err)
	}
	input := new(models.UpdateCapInput)
	if err := c.BodyParser(input); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.Validate.Struct(input); err != nil {
		return badRequest(c, "Validation failed", err)
	}

	saved, err := h.StaffRepo.UpdateStaff(c.UserContext(), staffID, repository.StaffPatch{WeeklyHourCap: &input.WeeklyHourCap})
	if err != nil {
		return respondError(c, err, "Failed to update weekly cap")
	}
	zlog.Info().Str("staff_id", staffID).Float64("weekly_hour_cap", input.WeeklyHourCap).Msg("Weekly cap updated")
	return c.JSON(models.Response{
		Success: true,
		Message: "Weekly cap updated successfully",
		Data:    newStaffView(h.Policy, *saved, h.Now()),
	})
}

// --- Shift Management ---

// buildShift parses the body and runs every scheduling rule against staff.
func (h *AdminHandler) buildShift(c *fiber.Ctx, staff *models.StaffProfile, now time.Time) (models.Shift, error) {
	input := new(models.CreateShiftInput)
	if err := c.BodyParser(input); err != nil {
		return models.Shift{}, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Validate.Struct(input); err != nil {
		return models.Shift{}, fiber.NewError(fiber.StatusBadRequest, "Validation failed: "+err.Error())
	}

	shift, verr := h.Policy.NewShift(*input, h.NewID(), now)
	if verr != nil {
		return models.Shift{}, verr
	}
	if verr := h.Policy.ValidateNewShift(*staff, shift); verr != nil {
		zlog.Info().Str("staff_id", staff.ID).Str("rule", string(verr.Rule)).Msg("Shift rejected by scheduling rules")
		return models.Shift{}, verr
	}
	return shift, nil
}

func (h *AdminHandler) CreateShift(c *fiber.Ctx) error {
	staff, err := h.loadStaff(c)
	if err != nil {
		return respondError(c, err, "Failed to create shift")
	}
	now := h.Now()
	shift, err := h.buildShift(c, staff, now)
	if err != nil {
		return respondError(c, err, "Failed to create shift")
	}

	msg := roster.AssignedMessage(shift, now)
	rev := staff.Revision
	saved, err := h.StaffRepo.UpdateStaff(c.UserContext(), staff.ID, repository.StaffPatch{
		AppendShifts:       []models.Shift{shift},
		AppendMessages:     []models.Message{msg},
		LastShiftCreatedAt: &now,
		ExpectedRevision:   &rev,
	})
	if err != nil {
		return respondError(c, err, "Failed to create shift")
	}
	h.notify(saved, msg)

	zlog.Info().Str("staff_id", staff.ID).Str("shift_id", shift.ID).Str("shift_date", shift.ShiftDate).Msg("Shift assigned")
	return c.Status(fiber.StatusCreated).JSON(models.Response{
		Success: true,
		Message: "Shift created successfully",
		Data:    shift,
	})
}

// CheckShift runs the same checks as CreateShift without writing anything.
func (h *AdminHandler) CheckShift(c *fiber.Ctx) error {
	staff, err := h.loadStaff(c)
	if err != nil {
		return respondError(c, err, "Failed to check shift")
	}
	now := h.Now()
	shift, err := h.buildShift(c, staff, now)
	if err != nil {
		return respondError(c, err, "Failed to check shift")
	}
	return c.JSON(models.Response{
		Success: true,
		Message: "Shift is valid",
		Data: fiber.Map{
			"shift": shift,
			"usage": h.Policy.WeeklyUsage(*staff, now),
		},
	})
}

// transitionShift applies apply to one shift of the staff document, appends
// the resulting message and writes the shift list back.
func (h *AdminHandler) transitionShift(c *fiber.Ctx, action string, apply func(*models.Shift) error, message func(models.Shift, time.Time) models.Message) error {
	failed := "Failed to " + action + " shift"
	staff, err := h.loadStaff(c)
	if err != nil {
		return respondError(c, err, failed)
	}
	shiftID := c.Params("shiftId")

	shifts, updated, err := roster.Mutate(staff.Shifts, shiftID, apply)
	if err != nil {
		return respondError(c, err, failed)
	}

	now := h.Now()
	msg := message(updated, now)
	rev := staff.Revision
	saved, err := h.StaffRepo.UpdateStaff(c.UserContext(), staff.ID, repository.StaffPatch{
		Shifts:           &shifts,
		AppendMessages:   []models.Message{msg},
		ExpectedRevision: &rev,
	})
	if err != nil {
		return respondError(c, err, failed)
	}
	h.notify(saved, msg)

	zlog.Info().Str("staff_id", staff.ID).Str("shift_id", shiftID).Str("status", string(updated.Status)).Msgf("Shift %s", action)
	return c.JSON(models.Response{
		Success: true,
		Message: "Shift updated successfully",
		Data:    updated,
	})
}

func (h *AdminHandler) CancelShift(c *fiber.Ctx) error {
	return h.transitionShift(c, "cancel", roster.Cancel, roster.CancelledMessage)
}

func (h *AdminHandler) ApproveRequest(c *fiber.Ctx) error {
	return h.transitionShift(c, "approve", roster.Approve, roster.ApprovedMessage)
}

func (h *AdminHandler) RejectRequest(c *fiber.Ctx) error {
	return h.transitionShift(c, "reject", roster.Reject, roster.RejectedMessage)
}

// DeleteShift removes the shift record entirely.
func (h *AdminHandler) DeleteShift(c *fiber.Ctx) error {
	staff, err := h.loadStaff(c)
	if err != nil {
		return respondError(c, err, "Failed to delete shift")
	}
	shiftID := c.Params("shiftId")

	shifts, removed, err := roster.Remove(staff.Shifts, shiftID)
	if err != nil {
		return respondError(c, err, "Failed to delete shift")
	}

	msg := roster.RemovedMessage(removed, h.Now())
	rev := staff.Revision
	saved, err := h.StaffRepo.UpdateStaff(c.UserContext(), staff.ID, repository.StaffPatch{
		Shifts:           &shifts,
		AppendMessages:   []models.Message{msg},
		ExpectedRevision: &rev,
	})
	if err != nil {
		return respondError(c, err, "Failed to delete shift")
	}
	h.notify(saved, msg)

	zlog.Info().Str("staff_id", staff.ID).Str("shift_id", shiftID).Msg("Shift removed")
	return c.JSON(models.Response{Success: true, Message: "Shift deleted successfully"})
}

// GetPendingRequests lists every pending edit request across Staff documents.
func (h *AdminHandler) GetPendingRequests(c *fiber.Ctx) error {
	staff, _, err := h.StaffRepo.QueryStaffByRole(c.UserContext(), repository.StaffQuery{Role: models.RoleStaff}, 1, 0)
	if err != nil {
		return respondError(c, err, "Failed to retrieve requests")
	}
	requests := roster.PendingRequests(staff)
	zlog.Debug().Int("count", len(requests)).Msg("Pending requests retrieved")
	return c.JSON(models.Response{
		Success: true,
		Message: "Pending requests retrieved successfully",
		Data:    requests,
	})
}

// --- Messaging ---

func (h *AdminHandler) SendMessage(c *fiber.Ctx) error {
	staffID, err := utils.ExtractStaffIDFromParam(c)
	if err != nil {
		return badRequest(c, "Invalid staff id", err)
	}
	input := new(models.SendMessageInput)
	if err := c.BodyParser(input); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	input.Text = strings.TrimSpace(input.Text)
	if err := h.Validate.Struct(input); err != nil {
		return badRequest(c, "Validation failed", err)
	}

	msg := models.Message{Text: input.Text, From: roster.SenderHR, SentAt: h.Now()}
	saved, err := h.StaffRepo.UpdateStaff(c.UserContext(), staffID, repository.StaffPatch{AppendMessages: []models.Message{msg}})
	if err != nil {
		return respondError(c, err, "Failed to send message")
	}
	h.notify(saved, msg)

	zlog.Info().Str("staff_id", staffID).Msg("Message sent")
	return c.Status(fiber.StatusCreated).JSON(models.Response{
		Success: true,
		Message: "Message sent successfully",
		Data:    msg,
	})
}
