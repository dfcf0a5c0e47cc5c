package repositories

import (
	"tienda/internal/models"
)

// ProductRepository defines the interface for catalog data access.
//
// GetByID returns (nil, nil) when no product carries the given ID; services
// translate that into a NotFoundError. GetByBrand and GetByCategory match
// case-insensitively. Save inserts (assigning an ID) when the product has no
// ID yet, otherwise replaces the stored record. Delete reports whether a
// record existed.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	GetByBrand(brand string) ([]models.Product, error)
	GetByCategory(category string) ([]models.Product, error)
	Save(product *models.Product) (*models.Product, error)
	Delete(id string) (bool, error)
}
