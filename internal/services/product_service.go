package services

import (
	"strings"

	"tienda/internal/models"
	"tienda/internal/repositories"
)

// ProductInput carries the data needed to create a product. The entity
// constructor enforces the catalog invariants before anything is persisted.
type ProductInput struct {
	Name        string  `json:"name" validate:"required"`
	Brand       string  `json:"brand"`
	Category    string  `json:"category"`
	Size        string  `json:"size"`
	Color       string  `json:"color"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Description string  `json:"description"`
}

// ProductUpdate carries a partial update. Nil fields are treated as unset and
// leave the stored value unchanged; a field explicitly set to its zero value
// still overwrites.
type ProductUpdate struct {
	Name        *string  `json:"name"`
	Brand       *string  `json:"brand"`
	Category    *string  `json:"category"`
	Size        *string  `json:"size"`
	Color       *string  `json:"color"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Description *string  `json:"description"`
}

// SearchFilters narrows a catalog search. Empty strings mean "no filter".
type SearchFilters struct {
	Brand     string
	Category  string
	Available bool
}

// ProductService handles business logic related to the catalog.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves the full catalog.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product, failing with NotFoundError when
// the ID is unknown.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, models.NewNotFoundError(id)
	}
	return product, nil
}

// SearchProducts applies the brand/category/availability filters. A single
// brand or category filter is delegated to the repository; when both are set
// the catalog is filtered in-process, matching case-insensitively.
func (s *ProductService) SearchProducts(filters SearchFilters) ([]models.Product, error) {
	var (
		candidates []models.Product
		err        error
	)

	switch {
	case filters.Brand != "" && filters.Category == "":
		candidates, err = s.repo.GetByBrand(filters.Brand)
	case filters.Category != "" && filters.Brand == "":
		candidates, err = s.repo.GetByCategory(filters.Category)
	default:
		candidates, err = s.repo.GetAll()
	}
	if err != nil {
		return nil, err
	}

	results := candidates
	if filters.Brand != "" && filters.Category != "" {
		results = make([]models.Product, 0, len(candidates))
		for _, p := range candidates {
			if strings.EqualFold(p.Brand, filters.Brand) && strings.EqualFold(p.Category, filters.Category) {
				results = append(results, p)
			}
		}
	}

	if filters.Available {
		available := make([]models.Product, 0, len(results))
		for _, p := range results {
			if p.IsAvailable() {
				available = append(available, p)
			}
		}
		results = available
	}

	return results, nil
}

// CreateProduct validates the input through the entity constructor and
// persists the new product. The repository assigns the ID.
func (s *ProductService) CreateProduct(input ProductInput) (*models.Product, error) {
	product, err := models.NewProduct(
		input.Name,
		input.Brand,
		input.Category,
		input.Size,
		input.Color,
		input.Price,
		input.Stock,
		input.Description,
	)
	if err != nil {
		return nil, err
	}
	return s.repo.Save(product)
}

// UpdateProduct overlays only the fields present in update onto the existing
// product, re-validates the merged entity, and persists it under the same ID.
// It fails with NotFoundError when the ID is unknown.
func (s *ProductService) UpdateProduct(id string, update ProductUpdate) (*models.Product, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, models.NewNotFoundError(id)
	}

	merged := *existing
	if update.Name != nil {
		merged.Name = *update.Name
	}
	if update.Brand != nil {
		merged.Brand = *update.Brand
	}
	if update.Category != nil {
		merged.Category = *update.Category
	}
	if update.Size != nil {
		merged.Size = *update.Size
	}
	if update.Color != nil {
		merged.Color = *update.Color
	}
	if update.Price != nil {
		merged.Price = *update.Price
	}
	if update.Stock != nil {
		merged.Stock = *update.Stock
	}
	if update.Description != nil {
		merged.Description = *update.Description
	}

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Save(&merged)
}

// DeleteProduct removes a product, failing with NotFoundError when the ID is
// unknown.
func (s *ProductService) DeleteProduct(id string) error {
	deleted, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return models.NewNotFoundError(id)
	}
	return nil
}

// GetAvailableProducts retrieves the subset of the catalog with stock left.
func (s *ProductService) GetAvailableProducts() ([]models.Product, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	available := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.IsAvailable() {
			available = append(available, p)
		}
	}
	return available, nil
}
