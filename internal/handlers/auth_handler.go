package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gymtrack/gymtrack-backend/internal/dto"
	"github.com/gymtrack/gymtrack-backend/internal/middleware"
	"github.com/gymtrack/gymtrack-backend/internal/models"
	"github.com/gymtrack/gymtrack-backend/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
	store       *session.Store
}

func NewAuthHandler(authService *services.AuthService, store *session.Store) *AuthHandler {
	return &AuthHandler{authService: authService, store: store}
}

// Login verifies credentials scoped by userType and establishes a session.
// Bad credentials are a business failure, not an HTTP error: 200 with
// success:false and a message that never reveals whether the account exists.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Envelope{
			Success: false, Message: "Invalid request body",
		})
	}

	acct, err := h.authService.Login(req.Username, req.Password, req.UserType)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.JSON(dto.Envelope{Success: false, Message: "Invalid credentials"})
		}
		slog.Error("login failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Envelope{
			Success: false, Message: "Server error",
		})
	}

	sess, err := h.store.Get(c)
	if err != nil {
		slog.Error("session create failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Envelope{
			Success: false, Message: "Server error",
		})
	}
	userType := req.UserType
	if userType == "" {
		userType = models.RoleUser
	}
	sess.Set(middleware.SessionUserID, acct.ID)
	sess.Set(middleware.SessionUserType, userType)
	sess.Set(middleware.SessionUsername, acct.Username)
	if err := sess.Save(); err != nil {
		slog.Error("session save failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Envelope{
			Success: false, Message: "Server error",
		})
	}

	return c.JSON(dto.LoginResponse{
		Success:  true,
		UserType: userType,
		User: dto.SessionUser{
			ID:       acct.ID,
			Username: acct.Username,
			Name:     acct.Name,
		},
	})
}

// Register creates an account without logging it in. Duplicates surface as
// success:false, not as an HTTP error.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Envelope{
			Success: false, Message: "Invalid request body",
		})
	}

	err := h.authService.Register(req.Name, req.Username, req.Email, req.Password, req.UserType)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateAccount) {
			return c.JSON(dto.Envelope{Success: false, Message: "Username or email already exists"})
		}
		slog.Error("registration failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Envelope{
			Success: false, Message: "Server error",
		})
	}

	return c.JSON(dto.Envelope{Success: true, Message: "Registration successful"})
}

// Logout destroys the session. Safe to call without one.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err == nil {
		_ = sess.Destroy()
	}
	return c.JSON(dto.Envelope{Success: true})
}

// CurrentUser resolves the session to a live account. No session, an
// expired one, or a since-deleted account all yield success:false.
func (h *AuthHandler) CurrentUser(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return c.JSON(dto.Envelope{Success: false})
	}
	userID, _ := sess.Get(middleware.SessionUserID).(string)
	userType, _ := sess.Get(middleware.SessionUserType).(string)
	if userID == "" {
		return c.JSON(dto.Envelope{Success: false})
	}

	acct, err := h.authService.CurrentUser(userID, userType)
	if err != nil {
		if !errors.Is(err, services.ErrAccountNotFound) {
			slog.Error("current user lookup failed", "error", err, "actor", userID)
		}
		return c.JSON(dto.Envelope{Success: false})
	}

	return c.JSON(dto.CurrentUserResponse{
		Success: true,
		User: dto.ProfileUser{
			ID:       acct.ID,
			Username: acct.Username,
			Name:     acct.Name,
			Email:    acct.Email,
		},
		UserType: userType,
	})
}
