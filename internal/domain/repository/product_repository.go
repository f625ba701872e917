// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"novasalud/internal/domain/entity"
)

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product storage operations.
type ProductRepository interface {
	// CreateProduct assigns the next product ID and stores the product.
	CreateProduct(ctx context.Context, product *entity.Product) error

	// FindProductByID retrieves a product by its ID.
	FindProductByID(ctx context.Context, id string) (*entity.Product, error)

	// ListProducts retrieves all products in insertion order.
	ListProducts(ctx context.Context) ([]*entity.Product, error)

	// UpdateProduct replaces the stored product with the same ID.
	UpdateProduct(ctx context.Context, product *entity.Product) error

	// DeleteProduct removes a product.
	DeleteProduct(ctx context.Context, id string) error
}
