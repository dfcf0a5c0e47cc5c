package repositories

import (
	"errors"
	"fmt"

	"tienda/internal/models"

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

// GetAll retrieves the full catalog from the database.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID, or nil when absent.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// GetByBrand retrieves products of a brand, matching case-insensitively.
func (r *GORMProductRepository) GetByBrand(brand string) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("LOWER(brand) = LOWER(?)", brand).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products by brand %s: %w", brand, err)
	}
	return products, nil
}

// GetByCategory retrieves products of a category, matching case-insensitively.
func (r *GORMProductRepository) GetByCategory(category string) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("LOWER(category) = LOWER(?)", category).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products by category %s: %w", category, err)
	}
	return products, nil
}

// Save inserts the product when it carries no ID, assigning a fresh UUID,
// and replaces the stored record otherwise.
func (r *GORMProductRepository) Save(product *models.Product) (*models.Product, error) {
	if product.ID == "" {
		product.ID = uuid.New().String()
		if err := r.db.Create(product).Error; err != nil {
			return nil, fmt.Errorf("failed to create product: %w", err)
		}
		return product, nil
	}
	if err := r.db.Save(product).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

// Delete removes a product by its ID, reporting whether a record existed.
func (r *GORMProductRepository) Delete(id string) (bool, error) {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete product: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
