package repositories

import (
	"strings"
	"sync"

	"tienda/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// GetAll returns the full catalog.
func (r *MockProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	return productList, nil
}

// GetByID returns a product by its ID, or nil when absent.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

// GetByBrand returns the products of a brand, matching case-insensitively.
func (r *MockProductRepository) GetByBrand(brand string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]models.Product, 0)
	for _, p := range r.products {
		if strings.EqualFold(p.Brand, brand) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

// GetByCategory returns the products of a category, matching case-insensitively.
func (r *MockProductRepository) GetByCategory(category string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]models.Product, 0)
	for _, p := range r.products {
		if strings.EqualFold(p.Category, category) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

// Save inserts the product, assigning a UUID when it has none, or replaces
// the stored record.
func (r *MockProductRepository) Save(product *models.Product) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	r.products[product.ID] = *product
	return product, nil
}

// Delete removes a product by its ID, reporting whether it existed.
func (r *MockProductRepository) Delete(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[id]
	if !ok {
		return false, nil
	}
	delete(r.products, id)
	return true, nil
}
