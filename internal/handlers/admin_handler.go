package handlers

import (
	"errors"
	"fmt"
	"log"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler exposes the JSON management API for products and
// payment wallets.
type AdminHandler struct {
	catalog  *services.CatalogService
	wallets  repositories.WalletRepository
	validate *validator.Validate
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(catalog *services.CatalogService, wallets repositories.WalletRepository) *AdminHandler {
	return &AdminHandler{
		catalog:  catalog,
		wallets:  wallets,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the management routes with the Fiber app.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	products := router.Group("/products")
	products.Get("/", h.HandleListProducts)
	products.Get("/:id", h.HandleGetProduct)
	products.Post("/", h.HandleCreateProduct)
	products.Put("/:id", h.HandleUpdateProduct)
	products.Delete("/:id", h.HandleDeleteProduct)

	wallets := router.Group("/wallets")
	wallets.Get("/", h.HandleListWallets)
	wallets.Post("/", h.HandleCreateWallet)
	wallets.Put("/:id", h.HandleUpdateWallet)
	wallets.Delete("/:id", h.HandleDeleteWallet)
}

// HandleListProducts returns all products.
func (h *AdminHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.catalog.ListProducts()
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not list products",
			"error":   err.Error(),
		})
	}
	return c.JSON(products)
}

// HandleGetProduct returns a single product by ID.
func (h *AdminHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.catalog.GetProductByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Product not found",
			"error":   err.Error(),
		})
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product.
func (h *AdminHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing create product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	if err := h.catalog.CreateProduct(&product); err != nil {
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create product",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct updates an existing product.
func (h *AdminHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	product.ID = c.Params("id")

	if err := h.validate.Struct(product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	if err := h.catalog.UpdateProduct(&product); err != nil {
		log.Printf("Error updating product %s: %v", product.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update product",
			"error":   err.Error(),
		})
	}

	return c.JSON(product)
}

// HandleDeleteProduct deletes a product by ID.
func (h *AdminHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.catalog.DeleteProduct(c.Params("id")); err != nil {
		log.Printf("Error deleting product %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete product",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}

// HandleListWallets returns all payment wallets.
func (h *AdminHandler) HandleListWallets(c *fiber.Ctx) error {
	wallets, err := h.wallets.GetAll()
	if err != nil {
		log.Printf("Error listing wallets: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not list wallets",
			"error":   err.Error(),
		})
	}
	return c.JSON(wallets)
}

// HandleCreateWallet creates a new payment wallet.
func (h *AdminHandler) HandleCreateWallet(c *fiber.Ctx) error {
	var wallet models.Wallet
	if err := c.BodyParser(&wallet); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(wallet); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	if err := h.wallets.Create(&wallet); err != nil {
		log.Printf("Error creating wallet: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create wallet",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(wallet)
}

// HandleUpdateWallet updates an existing payment wallet.
func (h *AdminHandler) HandleUpdateWallet(c *fiber.Ctx) error {
	var wallet models.Wallet
	if err := c.BodyParser(&wallet); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	wallet.ID = c.Params("id")

	if err := h.validate.Struct(wallet); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	if err := h.wallets.Update(&wallet); err != nil {
		log.Printf("Error updating wallet %s: %v", wallet.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update wallet",
			"error":   err.Error(),
		})
	}

	return c.JSON(wallet)
}

// HandleDeleteWallet deletes a payment wallet by ID.
func (h *AdminHandler) HandleDeleteWallet(c *fiber.Ctx) error {
	if err := h.wallets.Delete(c.Params("id")); err != nil {
		log.Printf("Error deleting wallet %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete wallet",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Wallet deleted successfully"})
}

func validationMessages(err error) map[string]string {
	messages := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			messages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return messages
}
