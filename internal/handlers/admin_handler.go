package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gymtrack/gymtrack-backend/internal/dto"
	"github.com/gymtrack/gymtrack-backend/internal/services"
)

// AdminHandler serves the owner-only membership and statistics endpoints.
// Role gating happens in middleware; by the time these run the actor is an
// owner.
type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.adminService.ListMembers()
	if err != nil {
		slog.Error("user list failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Envelope{
			Success: false, Message: "Server error",
		})
	}
	return c.JSON(dto.UsersResponse{Success: true, Users: users})
}

func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	err := h.adminService.DeleteMember(c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Envelope{
				Success: false, Message: "User not found",
			})
		}
		slog.Error("user delete failed", "error", err, "actor", actorFromLocals(c).ID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Envelope{
			Success: false, Message: "Server error",
		})
	}
	return c.JSON(dto.Envelope{Success: true})
}

func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.adminService.Stats(time.Now())
	if err != nil {
		slog.Error("stats failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Envelope{
			Success: false, Message: "Server error",
		})
	}
	return c.JSON(dto.StatsResponse{Success: true, Stats: *stats})
}
