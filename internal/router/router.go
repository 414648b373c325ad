package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/campusdesk/support-api/internal/config"
	"github.com/campusdesk/support-api/internal/handler"
	"github.com/campusdesk/support-api/internal/middleware"
	"github.com/campusdesk/support-api/internal/models"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	RequestHandler           *handler.RequestHandler
	AdminRequestHandler      *handler.AdminRequestHandler
	FAQHandler               *handler.FAQHandler
	AdminFAQHandler          *handler.AdminFAQHandler
	AnnouncementHandler      *handler.AnnouncementHandler
	AdminAnnouncementHandler *handler.AdminAnnouncementHandler
	AdminActivityHandler     *handler.AdminActivityHandler
	AdminUserHandler         *handler.AdminUserHandler
	JWTMiddleware            fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	// Public board content
	if deps.AnnouncementHandler != nil {
		deps.AnnouncementHandler.Register(api.Group("/announcements"))
	}

	// Student surface
	if deps.RequestHandler != nil {
		deps.RequestHandler.Register(api.Group("/requests", jwtMiddleware))
	}
	if deps.FAQHandler != nil {
		deps.FAQHandler.Register(api.Group("/faqs", jwtMiddleware))
	}

	// Admin surface
	admin := api.Group("/admin", jwtMiddleware, middleware.RequireRole(models.RoleAdmin))
	if deps.AdminRequestHandler != nil {
		deps.AdminRequestHandler.Register(admin.Group("/requests"))
	}
	if deps.AdminFAQHandler != nil {
		deps.AdminFAQHandler.Register(admin.Group("/faqs"))
	}
	if deps.AdminAnnouncementHandler != nil {
		deps.AdminAnnouncementHandler.Register(admin.Group("/announcements"))
	}
	if deps.AdminActivityHandler != nil {
		deps.AdminActivityHandler.Register(admin.Group("/activity-logs"))
	}
	if deps.AdminUserHandler != nil {
		deps.AdminUserHandler.Register(admin.Group("/users"))
	}
}
