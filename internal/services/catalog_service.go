package services

import (
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// CatalogService handles business logic related to the product catalog.
type CatalogService struct {
	repo repositories.ProductRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repositories.ProductRepository) *CatalogService {
	return &CatalogService{
		repo: repo,
	}
}

// ListProducts retrieves all products in creation order.
func (s *CatalogService) ListProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// ListByCategory retrieves the products tagged with a category, in
// creation order. An unknown category yields an empty list, not an error.
func (s *CatalogService) ListByCategory(category string) ([]models.Product, error) {
	return s.repo.GetByCategory(category)
}

// GetProductByID retrieves a single product by its ID.
func (s *CatalogService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// GetProductByFriendlyLink retrieves a single product by its friendly link.
func (s *CatalogService) GetProductByFriendlyLink(link string) (*models.Product, error) {
	return s.repo.GetByFriendlyLink(link)
}

// CreateProduct creates a new product.
func (s *CatalogService) CreateProduct(product *models.Product) error {
	return s.repo.Create(product)
}

// UpdateProduct updates an existing product.
func (s *CatalogService) UpdateProduct(product *models.Product) error {
	return s.repo.Update(product)
}

// DeleteProduct deletes a product by its ID.
func (s *CatalogService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}
