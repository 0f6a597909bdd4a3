package repositories

import (
	"errors"

	"storefront/internal/models"
)

// ErrProductNotFound signals that no product matches the given id or
// friendly link.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
// Listing methods return products in creation order, which is the order
// the storefront renders them in.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByCategory(category string) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	GetByFriendlyLink(link string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
