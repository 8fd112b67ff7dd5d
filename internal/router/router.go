package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/insightclass/insightclass-api/internal/config"
	"github.com/insightclass/insightclass-api/internal/handler"
	"github.com/insightclass/insightclass-api/internal/middleware"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler           *handler.AuthHandler
	FeedbackHandler       *handler.FeedbackHandler
	LegacyFeedbackHandler *handler.LegacyFeedbackHandler
	FeedHandler           *handler.FeedHandler
	SubjectHandler        *handler.SubjectHandler
	TeacherHandler        *handler.TeacherHandler
	StudentHandler        *handler.StudentHandler
	JWTMiddleware         fiber.Handler
	SubmitRateLimit       fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/health", handler.HealthCheck(cfg))

	// Common v1 group for health & headers
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}
	submitRateLimit := deps.SubmitRateLimit
	if submitRateLimit == nil {
		submitRateLimit = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		auth := app.Group("/api/v1/auth")
		deps.AuthHandler.Register(auth)
	}

	managerOnly := middleware.RequireRole("gestor")

	// Legacy classroom endpoints kept wire-compatible for older clients. The
	// submit limiter and the manager gate sit on their own routes, not on the
	// group, so a GET never spends the submission budget.
	if deps.LegacyFeedbackHandler != nil {
		legacy := app.Group("/feedback", jwtMiddleware)
		deps.LegacyFeedbackHandler.RegisterSubmit(legacy, submitRateLimit)
		deps.LegacyFeedbackHandler.RegisterList(legacy, managerOnly)
	}

	if deps.FeedbackHandler != nil {
		feedback := app.Group("/api/v1/feedback", jwtMiddleware)
		deps.FeedbackHandler.Register(feedback)

		if deps.FeedHandler != nil {
			deps.FeedHandler.Register(feedback, managerOnly)
		}
	}

	if deps.SubjectHandler != nil {
		subjects := app.Group("/api/v1/subjects", jwtMiddleware)
		deps.SubjectHandler.Register(subjects)
		deps.SubjectHandler.RegisterManage(subjects, managerOnly)
	}

	if deps.TeacherHandler != nil {
		teachers := app.Group("/api/v1/teachers", jwtMiddleware)
		deps.TeacherHandler.Register(teachers)
		deps.TeacherHandler.RegisterManage(teachers, managerOnly)
	}

	if deps.StudentHandler != nil {
		students := app.Group("/api/v1/students", jwtMiddleware)
		deps.StudentHandler.Register(students)
		deps.StudentHandler.RegisterManage(students, managerOnly)
	}
}
