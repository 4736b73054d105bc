package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rakaarfi/roster-system-be/internal/models"
	"github.com/rakaarfi/roster-system-be/internal/repository"
	"github.com/rakaarfi/roster-system-be/internal/roster"
	zlog "github.com/rs/zerolog/log"
)

// ErrorHandler menangani error yang tidak ditangani handler dengan format Response standar
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	if code >= fiber.StatusInternalServerError {
		zlog.Error().Err(err).Str("path", c.Path()).Msg("Unhandled error")
	} else {
		zlog.Debug().Err(err).Str("path", c.Path()).Int("status", code).Msg("Request error")
	}
	return c.Status(code).JSON(models.Response{Success: false, Message: message})
}

// statusFor maps domain errors to HTTP status codes. ok is false for
// errors that have no client-facing meaning.
func statusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, roster.ErrShiftNotFound):
		return fiber.StatusNotFound, true
	case errors.Is(err, repository.ErrDuplicate),
		errors.Is(err, repository.ErrRevisionConflict),
		errors.Is(err, roster.ErrAwaitingApproval),
		errors.Is(err, roster.ErrInvalidTransition):
		return fiber.StatusConflict, true
	case errors.Is(err, roster.ErrMissingShiftID),
		errors.Is(err, roster.ErrEmptyProposal),
		errors.Is(err, roster.ErrInvalidShiftTime):
		return fiber.StatusBadRequest, true
	case errors.Is(err, repository.ErrLegacyShift), errors.Is(err, repository.ErrMalformed):
		return fiber.StatusUnprocessableEntity, true
	}
	return fiber.StatusInternalServerError, false
}

// respondError writes err in the standard envelope. fallback is used as the
// message for unexpected errors so internals are not leaked.
func respondError(c *fiber.Ctx, err error, fallback string) error {
	var verr *roster.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(models.Response{
			Success: false, Message: verr.Message, Data: verr,
		})
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		zlog.Warn().Err(err).Str("path", c.Path()).Msg(fallback)
		return c.Status(fe.Code).JSON(models.Response{Success: false, Message: fe.Message})
	}

	code, known := statusFor(err)
	if !known {
		zlog.Error().Err(err).Str("path", c.Path()).Msg(fallback)
		return c.Status(code).JSON(models.Response{Success: false, Message: fallback})
	}
	zlog.Warn().Err(err).Str("path", c.Path()).Int("status", code).Msg(fallback)
	return c.Status(code).JSON(models.Response{Success: false, Message: err.Error()})
}

func badRequest(c *fiber.Ctx, message string, err error) error {
	zlog.Warn().Err(err).Str("path", c.Path()).Msg(message)
	resp := models.Response{Success: false, Message: message}
	if err != nil {
		resp.Data = err.Error()
	}
	return c.Status(fiber.StatusBadRequest).JSON(resp)
}
