package repository

import "context"

// TransactionManager defines the interface for running a unit of work against the store.
// This allows the use case layer to group multi-collection mutations without depending on the storage engine.
type TransactionManager interface {
	// Execute runs a function within a single unit of work.
	// If the function returns an error, every change made through the factory is discarded.
	// Otherwise the changes are persisted and become visible atomically.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances bound to a specific unit of work.
type RepositoryFactory interface {
	// NewProductRepository returns a ProductRepository bound to the current unit of work.
	NewProductRepository() ProductRepository

	// NewCustomerRepository returns a CustomerRepository bound to the current unit of work.
	NewCustomerRepository() CustomerRepository

	// NewSaleRepository returns a SaleRepository bound to the current unit of work.
	NewSaleRepository() SaleRepository

	// NewNotificationRepository returns a NotificationRepository bound to the current unit of work.
	NewNotificationRepository() NotificationRepository
}
