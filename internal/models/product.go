package models

import "strings"

// Product represents a catalog entry of the shoe store.
type Product struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string  `json:"name" gorm:"type:varchar(200);not null" validate:"required"`
	Brand       string  `json:"brand" gorm:"type:varchar(100);not null"`
	Category    string  `json:"category" gorm:"type:varchar(100);not null"`
	Size        string  `json:"size" gorm:"type:varchar(20)"`
	Color       string  `json:"color" gorm:"type:varchar(50)"`
	Price       float64 `json:"price" gorm:"not null" validate:"required,gt=0"`
	Stock       int     `json:"stock" gorm:"not null" validate:"gte=0"`
	Description string  `json:"description" gorm:"type:text"`
}

// NewProduct builds a Product with no ID, enforcing the catalog invariants:
// non-empty name, positive price, non-negative stock. The repository assigns
// an ID on first save.
func NewProduct(name, brand, category, size, color string, price float64, stock int, description string) (*Product, error) {
	p := &Product{
		Name:        name,
		Brand:       brand,
		Category:    category,
		Size:        size,
		Color:       color,
		Price:       price,
		Stock:       stock,
		Description: description,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the product invariants. It runs at construction and again
// before every persisted mutation.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return NewValidationError("product name cannot be empty")
	}
	if p.Price <= 0 {
		return NewValidationError("product price must be greater than 0")
	}
	if p.Stock < 0 {
		return NewValidationError("product stock cannot be negative")
	}
	return nil
}

// IsAvailable reports whether the product has stock left.
func (p *Product) IsAvailable() bool {
	return p.Stock > 0
}

// ReduceStock decreases the stock by quantity. It fails when the quantity is
// not positive or exceeds the current stock.
func (p *Product) ReduceStock(quantity int) error {
	if quantity <= 0 {
		return NewValidationError("quantity to reduce must be positive")
	}
	if quantity > p.Stock {
		return NewValidationError("insufficient stock to complete the operation")
	}
	p.Stock -= quantity
	return nil
}

// IncreaseStock adds quantity units to the stock. It fails when the quantity
// is not positive.
func (p *Product) IncreaseStock(quantity int) error {
	if quantity <= 0 {
		return NewValidationError("quantity to increase must be positive")
	}
	p.Stock += quantity
	return nil
}
