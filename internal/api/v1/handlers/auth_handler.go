package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rakaarfi/roster-system-be/internal/models"
	"github.com/rakaarfi/roster-system-be/internal/repository"
	"github.com/rakaarfi/roster-system-be/internal/utils"
	zlog "github.com/rs/zerolog/log"
)

type AuthHandler struct {
	StaffRepo repository.StaffRepository
	Validate  *validator.Validate
}

func NewAuthHandler(staffRepo repository.StaffRepository) *AuthHandler {
	return &AuthHandler{
		StaffRepo: staffRepo,
		Validate:  models.NewValidator(),
	}
}

// Login resolves the chosen user id to its stored credential, checks the
// password and returns a signed token with the caller's principal.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	input := new(models.LoginInput)

	if err := c.BodyParser(input); err != nil {
		return badRequest(c, "Invalid request body", nil)
	}
	input.UserID = strings.TrimSpace(input.UserID)

	if err := h.Validate.Struct(input); err != nil {
		return badRequest(c, "Validation failed", err)
	}

	creds, err := h.StaffRepo.GetCredentials(c.UserContext(), input.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) { // User tidak ditemukan
			zlog.Info().Str("user_id", input.UserID).Msg("User not found during login")
			return c.Status(fiber.StatusUnauthorized).JSON(models.Response{
				Success: false, Message: "Invalid user id or password",
			})
		}
		zlog.Error().Err(err).Str("user_id", input.UserID).Msg("Error loading credentials during login")
		return c.Status(fiber.StatusInternalServerError).JSON(models.Response{
			Success: false, Message: "Login failed",
		})
	}

	if !utils.CheckPasswordHash(input.Password, creds.PasswordHash) {
		zlog.Info().Str("user_id", input.UserID).Msg("Invalid password during login")
		return c.Status(fiber.StatusUnauthorized).JSON(models.Response{
			Success: false, Message: "Invalid user id or password",
		})
	}

	if !creds.Active {
		zlog.Info().Str("user_id", input.UserID).Msg("Inactive account attempted login")
		return c.Status(fiber.StatusForbidden).JSON(models.Response{
			Success: false, Message: "Account is inactive",
		})
	}

	token, err := utils.GenerateJWT(creds.Principal)
	if err != nil {
		zlog.Error().Err(err).Str("user_id", input.UserID).Msg("Error generating JWT for user during login")
		return c.Status(fiber.StatusInternalServerError).JSON(models.Response{
			Success: false, Message: "Login failed",
		})
	}

	zlog.Info().Str("user_id", input.UserID).Str("role", creds.Role).Msg("User logged in successfully")
	return c.Status(http.StatusOK).JSON(models.Response{
		Success: true,
		Message: "Login successful",
		Data:    fiber.Map{"token": token, "user": creds.Principal},
	})
}
