package routes

import (
	"time"

	"github.com/burakserin/taskvault/internal/handlers"
	"github.com/burakserin/taskvault/internal/middleware"
	"github.com/burakserin/taskvault/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	users *services.UserService,
	userHandler *handlers.UserHandler,
	taskHandler *handlers.TaskHandler,
	healthHandler *handlers.HealthHandler,
) {
	// General rate limiter: 60 req/min per IP
	app.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	app.Get("/health", healthHandler.Check)

	// Signup/login share a stricter limit: 10 req/min per IP
	authLimiter := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})

	protected := middleware.Protected(users)

	// Users
	app.Post("/users", authLimiter, userHandler.Signup)
	app.Post("/users/login", authLimiter, userHandler.Login)
	app.Post("/users/logout", protected, userHandler.Logout)
	app.Post("/users/logoutall", protected, userHandler.LogoutAll)
	app.Get("/users/me", protected, userHandler.Me)
	app.Patch("/users/me", protected, userHandler.UpdateMe)
	app.Delete("/users/me", protected, userHandler.DeleteMe)
	app.Post("/users/me/avatar", protected, userHandler.UploadAvatar)
	app.Delete("/users/me/avatar", protected, userHandler.DeleteAvatar)
	app.Get("/users/:id/avatar", userHandler.GetAvatar)

	// Tasks (all owner-scoped)
	app.Post("/tasks", protected, taskHandler.Create)
	app.Get("/tasks", protected, taskHandler.List)
	app.Get("/tasks/:id", protected, taskHandler.Get)
	app.Patch("/tasks/:id", protected, taskHandler.Update)
	app.Delete("/tasks/:id", protected, taskHandler.Delete)
}
