package routes

import (
	"time"

	"github.com/estateflow/estateflow-backend/internal/config"
	"github.com/estateflow/estateflow-backend/internal/handlers"
	"github.com/estateflow/estateflow-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	leadHandler *handlers.LeadHandler,
	billingHandler *handlers.BillingHandler,
	adminHandler *handlers.AdminHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth is public, with a stricter limiter against credential guessing
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/signup", authHandler.SignUp)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Get("/auth/me", middleware.JWTProtected(cfg), authHandler.Me)

	// Leads are tenant-scoped, JWT required
	leads := api.Group("/leads", middleware.JWTProtected(cfg))
	leads.Get("/", leadHandler.List)
	leads.Post("/", leadHandler.Create)
	leads.Get("/stats", leadHandler.Stats)
	leads.Get("/quota", leadHandler.Quota)
	leads.Get("/:id", leadHandler.Get)
	leads.Put("/:id", leadHandler.Update)
	leads.Put("/:id/status", leadHandler.SetStatus)
	leads.Post("/:id/follow-up/complete", leadHandler.CompleteFollowUp)
	leads.Get("/:id/contact-links", leadHandler.ContactLinks)
	leads.Delete("/:id", leadHandler.Delete)

	// Billing: the simulated checkout
	api.Post("/billing/checkout", middleware.JWTProtected(cfg), billingHandler.Checkout)

	// Admin directory (JWT + admin re-verified against the registry)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db))
	admin.Get("/tenants", adminHandler.ListTenants)
	admin.Get("/tenants/:id/leads", adminHandler.TenantLeads)
	admin.Put("/tenants/:id/plan", adminHandler.SetTenantPlan)
}
