package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gymtrack/gymtrack-backend/internal/config"
	"github.com/gymtrack/gymtrack-backend/internal/handlers"
	"github.com/gymtrack/gymtrack-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	store *session.Store,
	authHandler *handlers.AuthHandler,
	activityHandler *handlers.ActivityHandler,
	adminHandler *handlers.AdminHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter, per IP
	api.Use(limiter.New(limiter.Config{
		Max:               cfg.APIRateLimit,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Credential endpoints get a stricter limit
	authLimiter := limiter.New(limiter.Config{
		Max:               cfg.AuthRateLimit,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	api.Post("/login", authLimiter, authHandler.Login)
	api.Post("/register", authLimiter, authHandler.Register)

	api.Post("/logout", authHandler.Logout)
	api.Get("/current-user", authHandler.CurrentUser)

	// Member-level endpoints: any authenticated session
	requireSession := middleware.RequireSession(store)
	api.Get("/activities", requireSession, activityHandler.List)
	api.Post("/activities", requireSession, activityHandler.Create)
	api.Delete("/activities/:id", requireSession, activityHandler.Delete)

	// Owner-only endpoints
	requireOwner := middleware.RequireOwner(store)
	api.Get("/users", requireOwner, adminHandler.ListUsers)
	api.Delete("/users/:id", requireOwner, adminHandler.DeleteUser)
	api.Get("/stats", requireOwner, adminHandler.Stats)
}
