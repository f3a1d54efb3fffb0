package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gymtrack/gymtrack-backend/internal/config"
	"github.com/gymtrack/gymtrack-backend/internal/dto"
	"github.com/gymtrack/gymtrack-backend/internal/models"
)

// Session keys. The session is saved only at login, so its TTL is fixed
// from issuance rather than sliding.
const (
	SessionUserID   = "userId"
	SessionUserType = "userType"
	SessionUsername = "username"
)

// Locals keys populated by the gates below.
const (
	LocalUserID   = "userId"
	LocalUserType = "userType"
	LocalUsername = "username"
)

// NewSessionStore builds the server-side session store backing the opaque
// cookie token.
func NewSessionStore(cfg *config.Config) *session.Store {
	return session.New(session.Config{
		Expiration:     cfg.SessionTTL,
		KeyLookup:      "cookie:" + cfg.SessionCookie,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
}

// RequireSession rejects unauthenticated requests with 401 and stashes the
// session identity in locals for handlers.
func RequireSession(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userType, username, err := sessionIdentity(store, c)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.Envelope{
				Success: false, Message: "Server error",
			})
		}
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Envelope{
				Success: false, Message: "Not authenticated",
			})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalUserType, userType)
		c.Locals(LocalUsername, username)
		return c.Next()
	}
}

// RequireOwner gates owner-only endpoints. Anonymous and member sessions
// both get 403, matching the admin surface's single failure mode.
func RequireOwner(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userType, username, err := sessionIdentity(store, c)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.Envelope{
				Success: false, Message: "Server error",
			})
		}
		if userID == "" || userType != models.RoleOwner {
			return c.Status(fiber.StatusForbidden).JSON(dto.Envelope{
				Success: false, Message: "Not authorized",
			})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalUserType, userType)
		c.Locals(LocalUsername, username)
		return c.Next()
	}
}

func sessionIdentity(store *session.Store, c *fiber.Ctx) (userID, userType, username string, err error) {
	sess, err := store.Get(c)
	if err != nil {
		return "", "", "", err
	}
	userID, _ = sess.Get(SessionUserID).(string)
	userType, _ = sess.Get(SessionUserType).(string)
	username, _ = sess.Get(SessionUsername).(string)
	return userID, userType, username, nil
}
