package repositories

import (
	"fmt"
	"regexp"
	"strings"

	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products from the database in creation order.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("created_at").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByCategory retrieves the products tagged with a category. Categories
// are stored as a serialized JSON array, so the match is a LIKE over the
// serialized column; category names are plain words, which keeps the match
// unambiguous.
func (r *GORMProductRepository) GetByCategory(category string) ([]models.Product, error) {
	var products []models.Product
	pattern := fmt.Sprintf(`%%"%s"%%`, category)
	if err := r.db.Where("categories LIKE ?", pattern).Order("created_at").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products for category %s: %w", category, err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product with ID %s: %w", id, ErrProductNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// GetByFriendlyLink retrieves a single product by its friendly link.
func (r *GORMProductRepository) GetByFriendlyLink(link string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "friendly_link = ?", link).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product with friendly link %s: %w", link, ErrProductNotFound)
		}
		return nil, fmt.Errorf("failed to get product by friendly link %s: %w", link, err)
	}
	return &product, nil
}

// Create creates a new product in the database, assigning it a friendly
// link derived from its name. A numeric suffix is appended when the slug
// is already taken.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if product.FriendlyLink == "" {
		slug := Slugify(product.Name)
		var count int64
		if err := r.db.Model(&models.Product{}).Where("friendly_link LIKE ?", slug+"%").Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check friendly link for %s: %w", product.Name, err)
		}
		if count > 0 {
			slug = fmt.Sprintf("%s-%d", slug, count+1)
		}
		product.FriendlyLink = slug
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update updates an existing product in the database.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product) // Save will update all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update product with ID %s: %w", product.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s not found for update", product.ID)
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product with ID %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s not found for deletion", id)
	}
	return nil
}

var slugStrip = regexp.MustCompile(`[^\w-]`)

// Slugify turns a product name into a URL-friendly link: whitespace
// becomes hyphens, anything else non-word is dropped, and the result is
// lowercased.
func Slugify(name string) string {
	slug := strings.Join(strings.Fields(name), "-")
	slug = slugStrip.ReplaceAllString(slug, "")
	return strings.ToLower(slug)
}
