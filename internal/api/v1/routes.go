package v1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rakaarfi/roster-system-be/internal/api/v1/handlers"
	"github.com/rakaarfi/roster-system-be/internal/middleware"
	"github.com/rakaarfi/roster-system-be/internal/models"
)

func SetupRoutes(app *fiber.App, authHandler *handlers.AuthHandler, adminHandler *handlers.AdminHandler, userHandler *handlers.UserHandler) {
	// Grouping API v1
	api := app.Group("/api/v1")

	// Rute Autentikasi (Publik)
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)

	// Rute Admin (Perlu Login & Role HR atau Admin)
	admin := api.Group("/admin", middleware.Protected(), middleware.Authorize(models.RoleHR, models.RoleAdmin))
	//--staff--
	admin.Post("/staff", adminHandler.CreateStaff)
	admin.Get("/staff", adminHandler.GetAllStaff)
	admin.Get("/staff/:staffId", adminHandler.GetStaffByID)
	admin.Put("/staff/:staffId/cap", adminHandler.UpdateWeeklyCap)
	admin.Post("/staff/:staffId/messages", adminHandler.SendMessage)
	//--shifts--
	admin.Post("/staff/:staffId/shifts", adminHandler.CreateShift)
	admin.Post("/staff/:staffId/shifts/check", adminHandler.CheckShift)
	admin.Post("/staff/:staffId/shifts/:shiftId/cancel", adminHandler.CancelShift)
	admin.Delete("/staff/:staffId/shifts/:shiftId", adminHandler.DeleteShift)
	//--requests--
	admin.Get("/requests", adminHandler.GetPendingRequests)
	admin.Post("/staff/:staffId/shifts/:shiftId/approve", adminHandler.ApproveRequest)
	admin.Post("/staff/:staffId/shifts/:shiftId/reject", adminHandler.RejectRequest)

	// Rute User (Perlu Login, semua role)
	user := api.Group("/user", middleware.Protected())
	user.Get("/profile", userHandler.GetMyProfile)
	user.Get("/shifts", userHandler.GetMyShifts)
	user.Get("/messages", userHandler.GetMyMessages)
	user.Get("/timesheet", userHandler.GetMyTimesheet)
	user.Post("/shifts/:shiftId/request", userHandler.RequestShiftEdit)
	user.Put("/device-token", userHandler.UpdateDeviceToken)

	// Rute Health Check (Publik)
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "UP"})
	})
}
