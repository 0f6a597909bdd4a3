package handlers

import (
	"time"

	"storefront/internal/middleware"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// RouterDeps holds everything the HTTP layer needs.
type RouterDeps struct {
	Catalog           *services.CatalogService
	Checkout          *services.CheckoutService
	Auth              *services.AuthService
	Wallets           repositories.WalletRepository
	Codes             services.CodeGenerator
	SessionStore      *session.Store
	PreferredCurrency string
	ProductImageDir   string
}

// NewRouter builds the Fiber app with the storefront pages, the
// management API and the health check.
func NewRouter(deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		Views: NewViewsEngine(),
	})

	app.Use(logger.New())

	if deps.ProductImageDir != "" {
		app.Static("/images/products", deps.ProductImageDir)
	}

	// Storefront pages
	shopHandler := NewShopHandler(deps.Catalog, deps.SessionStore, deps.PreferredCurrency)
	shopHandler.RegisterRoutes(app)

	cartHandler := NewCartHandler(deps.Catalog, deps.Wallets, deps.Checkout, deps.Codes, deps.SessionStore, deps.PreferredCurrency)
	cartHandler.RegisterRoutes(app)

	// Management API
	apiV1 := app.Group("/api/v1")

	authHandler := NewAuthHandler(deps.Auth)
	authHandler.RegisterRoutes(apiV1)

	protected := apiV1.Group("", middleware.AuthRequired(deps.Auth))
	adminHandler := NewAdminHandler(deps.Catalog, deps.Wallets)
	adminHandler.RegisterRoutes(protected)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app
}
