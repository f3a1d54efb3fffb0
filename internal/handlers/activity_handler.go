package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gymtrack/gymtrack-backend/internal/dto"
	"github.com/gymtrack/gymtrack-backend/internal/middleware"
	"github.com/gymtrack/gymtrack-backend/internal/services"
)

type ActivityHandler struct {
	activityService *services.ActivityService
}

func NewActivityHandler(activityService *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// actorFromLocals reads the identity stashed by the session gates.
func actorFromLocals(c *fiber.Ctx) services.Actor {
	id, _ := c.Locals(middleware.LocalUserID).(string)
	role, _ := c.Locals(middleware.LocalUserType).(string)
	username, _ := c.Locals(middleware.LocalUsername).(string)
	return services.Actor{ID: id, Role: role, Username: username}
}

func (h *ActivityHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Envelope{
			Success: false, Message: "Invalid request body",
		})
	}

	activity, err := h.activityService.Create(
		actorFromLocals(c),
		req.ActivityType,
		req.Description,
		req.Duration,
		req.Equipment,
		parseDate(req.Date),
	)
	if err != nil {
		slog.Error("activity create failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Envelope{
			Success: false, Message: "Server error",
		})
	}

	return c.JSON(dto.ActivityResponse{Success: true, Activity: *activity})
}

func (h *ActivityHandler) List(c *fiber.Ctx) error {
	activities, err := h.activityService.List(actorFromLocals(c))
	if err != nil {
		slog.Error("activity list failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Envelope{
			Success: false, Message: "Server error",
		})
	}
	return c.JSON(dto.ActivitiesResponse{Success: true, Activities: activities})
}

func (h *ActivityHandler) Delete(c *fiber.Ctx) error {
	err := h.activityService.Delete(actorFromLocals(c), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrActivityNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.Envelope{
				Success: false, Message: "Activity not found",
			})
		case errors.Is(err, services.ErrNotActivityOwner):
			return c.Status(fiber.StatusForbidden).JSON(dto.Envelope{
				Success: false, Message: "Not authorized",
			})
		}
		slog.Error("activity delete failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Envelope{
			Success: false, Message: "Server error",
		})
	}
	return c.JSON(dto.Envelope{Success: true})
}

// parseDate accepts RFC 3339 or a bare date; anything else falls back to
// the current time, mirroring the client defaulting rule.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return time.Time{}
}
