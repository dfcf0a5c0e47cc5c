package models_test

import (
	"testing"

	"tienda/internal/models"

	"github.com/stretchr/testify/assert"
)

func validProduct(t *testing.T) *models.Product {
	t.Helper()
	p, err := models.NewProduct("Nike Air Zoom Pegasus", "Nike", "Running", "42", "Black", 120.0, 5, "Running shoes")
	assert.NoError(t, err)
	return p
}

func TestNewProduct_Valid(t *testing.T) {
	p := validProduct(t)

	assert.Empty(t, p.ID, "ID must stay empty until the repository assigns one")
	assert.Equal(t, "Nike Air Zoom Pegasus", p.Name)
	assert.Equal(t, 120.0, p.Price)
	assert.Equal(t, 5, p.Stock)
}

func TestNewProduct_Invariants(t *testing.T) {
	tests := []struct {
		name    string
		product func() (*models.Product, error)
	}{
		{"empty name", func() (*models.Product, error) {
			return models.NewProduct("", "Nike", "Running", "42", "Black", 120.0, 5, "")
		}},
		{"blank name", func() (*models.Product, error) {
			return models.NewProduct("   ", "Nike", "Running", "42", "Black", 120.0, 5, "")
		}},
		{"zero price", func() (*models.Product, error) {
			return models.NewProduct("Pegasus", "Nike", "Running", "42", "Black", 0, 5, "")
		}},
		{"negative price", func() (*models.Product, error) {
			return models.NewProduct("Pegasus", "Nike", "Running", "42", "Black", -10, 5, "")
		}},
		{"negative stock", func() (*models.Product, error) {
			return models.NewProduct("Pegasus", "Nike", "Running", "42", "Black", 120.0, -1, "")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tt.product()
			assert.Nil(t, p)
			var validationErr *models.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestProduct_IsAvailable(t *testing.T) {
	p := validProduct(t)
	assert.True(t, p.IsAvailable())

	assert.NoError(t, p.ReduceStock(5))
	assert.Equal(t, 0, p.Stock)
	assert.False(t, p.IsAvailable())

	assert.NoError(t, p.IncreaseStock(1))
	assert.True(t, p.IsAvailable())
}

func TestProduct_ReduceStock(t *testing.T) {
	p := validProduct(t)

	assert.NoError(t, p.ReduceStock(2))
	assert.Equal(t, 3, p.Stock)

	// Non-positive quantities are rejected
	assert.Error(t, p.ReduceStock(0))
	assert.Error(t, p.ReduceStock(-1))
	assert.Equal(t, 3, p.Stock)

	// Cannot reduce below zero
	assert.Error(t, p.ReduceStock(4))
	assert.Equal(t, 3, p.Stock)
}

func TestProduct_IncreaseStock(t *testing.T) {
	p := validProduct(t)

	assert.NoError(t, p.IncreaseStock(10))
	assert.Equal(t, 15, p.Stock)

	assert.Error(t, p.IncreaseStock(0))
	assert.Error(t, p.IncreaseStock(-3))
	assert.Equal(t, 15, p.Stock)
}
