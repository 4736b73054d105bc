package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rakaarfi/roster-system-be/internal/models"
	"github.com/rakaarfi/roster-system-be/internal/utils"
	zlog "github.com/rs/zerolog/log"
)

// Protected adalah middleware untuk melindungi route yang memerlukan autentikasi
func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := utils.ExtractToken(c)
		if tokenString == "" {
			zlog.Warn().Str("path", c.Path()).Msg("Missing token in request")
			return c.Status(fiber.StatusUnauthorized).JSON(models.Response{
				Success: false, Message: "Unauthorized: Missing token",
			})
		}

		claims, err := utils.ValidateJWT(tokenString)
		if err != nil {
			zlog.Warn().Err(err).Msg("JWT Validation Error")
			return c.Status(fiber.StatusUnauthorized).JSON(models.Response{
				Success: false, Message: "Unauthorized: Invalid token",
			})
		}

		// Simpan principal di context Fiber untuk digunakan handler selanjutnya
		c.Locals(utils.LocalsPrincipal, claims.Principal())
		return c.Next()
	}
}

// Authorize adalah middleware untuk memeriksa role user
func Authorize(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Harus dijalankan setelah Protected()
		p, err := utils.PrincipalFromCtx(c)
		if err != nil {
			zlog.Error().Msg("Principal not found in context. Ensure Protected middleware runs first.")
			return c.Status(fiber.StatusForbidden).JSON(models.Response{
				Success: false, Message: "Forbidden: Cannot determine user role",
			})
		}

		for _, role := range allowedRoles {
			if strings.EqualFold(p.Role, role) {
				return c.Next()
			}
		}

		zlog.Warn().Str("user_id", p.UserID).Str("role", p.Role).Strs("allowedRoles", allowedRoles).
			Msg("Forbidden access for user to resource requiring roles")
		return c.Status(fiber.StatusForbidden).JSON(models.Response{
			Success: false, Message: "Forbidden: Insufficient privileges",
		})
	}
}
