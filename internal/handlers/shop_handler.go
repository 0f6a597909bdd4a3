package handlers

import (
	"log"

	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// ShopHandler serves the public storefront pages.
type ShopHandler struct {
	catalog           *services.CatalogService
	store             *session.Store
	preferredCurrency string
}

// NewShopHandler creates a new ShopHandler.
func NewShopHandler(catalog *services.CatalogService, store *session.Store, preferredCurrency string) *ShopHandler {
	return &ShopHandler{
		catalog:           catalog,
		store:             store,
		preferredCurrency: preferredCurrency,
	}
}

// RegisterRoutes registers the storefront routes with the Fiber app.
func (h *ShopHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleIndex)
	router.Get("/category/:category", h.HandleCategory)
	router.Get("/product/:link", h.HandleProduct)
}

// HandleIndex renders the product catalog.
func (h *ShopHandler) HandleIndex(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return fiber.ErrInternalServerError
	}

	products, err := h.catalog.ListProducts()
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return fiber.ErrInternalServerError
	}

	cartSession := cartFromSession(sess, h.preferredCurrency)
	messages := consumeFlashes(sess)
	if err := sess.Save(); err != nil {
		log.Printf("Error saving session: %v", err)
	}

	return c.Render("index", fiber.Map{
		"Cart":     cartSession,
		"Products": products,
		"Messages": messages,
	})
}

// HandleCategory renders the catalog filtered to one category. An unknown
// category renders the empty listing with an info notice rather than a
// 404.
func (h *ShopHandler) HandleCategory(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return fiber.ErrInternalServerError
	}

	category := c.Params("category")
	products, err := h.catalog.ListByCategory(category)
	if err != nil {
		log.Printf("Error listing products for category %s: %v", category, err)
		return fiber.ErrInternalServerError
	}

	messages := consumeFlashes(sess)
	if len(products) == 0 {
		messages = append(messages, Flash{Level: "info", Message: "No such category exists: " + category})
	}

	cartSession := cartFromSession(sess, h.preferredCurrency)
	if err := sess.Save(); err != nil {
		log.Printf("Error saving session: %v", err)
	}

	return c.Render("index", fiber.Map{
		"Cart":     cartSession,
		"Products": products,
		"Messages": messages,
	})
}

// HandleProduct renders a single product page looked up by friendly link.
func (h *ShopHandler) HandleProduct(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return fiber.ErrInternalServerError
	}

	product, err := h.catalog.GetProductByFriendlyLink(c.Params("link"))
	if err != nil {
		return c.Redirect("/", fiber.StatusFound)
	}

	cartSession := cartFromSession(sess, h.preferredCurrency)
	messages := consumeFlashes(sess)
	if err := sess.Save(); err != nil {
		log.Printf("Error saving session: %v", err)
	}

	return c.Render("product", fiber.Map{
		"Cart":     cartSession,
		"Product":  product,
		"Messages": messages,
	})
}
