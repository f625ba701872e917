// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"time"

	"novasalud/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// ProductInput carries the fields of a new product
type ProductInput struct {
	Name                 string          `json:"name" validate:"required,max=120"`
	Category             entity.Category `json:"category" validate:"required"`
	Price                decimal.Decimal `json:"price"`
	Stock                int             `json:"stock"`
	ReorderLevel         int             `json:"reorder_level"`
	Supplier             string          `json:"supplier" validate:"max=120"`
	Barcode              *string         `json:"barcode,omitempty" validate:"omitempty,numeric,max=32"`
	Description          *string         `json:"description,omitempty" validate:"omitempty,max=500"`
	ExpiryDate           *time.Time      `json:"expiry_date,omitempty"`
	RequiresPrescription bool            `json:"requires_prescription"`
}

// ProductFilter narrows ListProducts. Zero values match everything.
type ProductFilter struct {
	Category             entity.Category
	StockLevel           entity.StockLevel
	RequiresPrescription *bool
}

// ProductUsecase defines the interface for inventory management use cases
type ProductUsecase interface {
	// AddProduct stores a new product and returns it with its assigned ID
	AddProduct(ctx context.Context, input *ProductInput) (*entity.Product, error)

	// UpdateProduct merges the patch into an existing product
	UpdateProduct(ctx context.Context, id string, patch *entity.ProductPatch) (*entity.Product, error)

	// DeleteProduct removes a product. Sales referencing it are left untouched.
	DeleteProduct(ctx context.Context, id string) error

	// GetProductByID retrieves a single product
	GetProductByID(ctx context.Context, id string) (*entity.Product, error)

	// ListProducts retrieves products matching the filter, in insertion order
	ListProducts(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)

	// GetProductLabel renders the product's QR label as PNG
	GetProductLabel(ctx context.Context, id string) ([]byte, error)
}
