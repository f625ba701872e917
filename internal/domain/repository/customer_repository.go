package repository

import (
	"context"
	"errors"

	"novasalud/internal/domain/entity"
)

// ErrCustomerNotFound is returned when a customer is not found.
var ErrCustomerNotFound = errors.New("customer not found")

// CustomerRepository defines the interface for customer storage operations.
type CustomerRepository interface {
	// CreateCustomer assigns the next customer ID and stores the customer.
	CreateCustomer(ctx context.Context, customer *entity.Customer) error

	// FindCustomerByID retrieves a customer by its ID.
	FindCustomerByID(ctx context.Context, id string) (*entity.Customer, error)

	// ListCustomers retrieves all customers in insertion order.
	ListCustomers(ctx context.Context) ([]*entity.Customer, error)

	// UpdateCustomer replaces the stored customer with the same ID.
	UpdateCustomer(ctx context.Context, customer *entity.Customer) error

	// DeleteCustomer removes a customer.
	DeleteCustomer(ctx context.Context, id string) error
}
