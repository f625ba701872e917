package repository

import (
	"context"
	"errors"

	"novasalud/internal/domain/entity"
)

// ErrSaleNotFound is returned when a sale is not found.
var ErrSaleNotFound = errors.New("sale not found")

// SaleRepository defines the interface for sale storage operations.
type SaleRepository interface {
	// CreateSale assigns the next sale ID and stores the sale.
	CreateSale(ctx context.Context, sale *entity.Sale) error

	// FindSaleByID retrieves a sale by its ID.
	FindSaleByID(ctx context.Context, id string) (*entity.Sale, error)

	// ListSales retrieves all sales in insertion order.
	ListSales(ctx context.Context) ([]*entity.Sale, error)

	// UpdateSale replaces the stored sale with the same ID.
	UpdateSale(ctx context.Context, sale *entity.Sale) error

	// DeleteSale removes a sale.
	DeleteSale(ctx context.Context, id string) error

	// ExistsByCustomer reports whether any sale references the customer.
	ExistsByCustomer(ctx context.Context, customerID string) (bool, error)
}
