package memory

import (
	"context"

	"novasalud/internal/domain/repository"
)

// memoryTransactionManager implements the domain's TransactionManager interface on top of Store.
type memoryTransactionManager struct {
	store *Store
}

// memoryRepositoryFactory hands out repositories bound to one draft state.
type memoryRepositoryFactory struct {
	view view
}

// NewTransactionManager is the constructor for memoryTransactionManager.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &memoryTransactionManager{store: store}
}

// Execute runs fn against a draft of the state. Returning an error discards the draft.
// Writers are serialised, so the callback must not call Execute again.
func (tm *memoryTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	return tm.store.execute(ctx, func(draft *state) error {
		return fn(&memoryRepositoryFactory{view: draftView{draft: draft}})
	})
}

// NewProductRepository creates a product repository bound to the draft.
func (f *memoryRepositoryFactory) NewProductRepository() repository.ProductRepository {
	return &productRepository{view: f.view}
}

// NewCustomerRepository creates a customer repository bound to the draft.
func (f *memoryRepositoryFactory) NewCustomerRepository() repository.CustomerRepository {
	return &customerRepository{view: f.view}
}

// NewSaleRepository creates a sale repository bound to the draft.
func (f *memoryRepositoryFactory) NewSaleRepository() repository.SaleRepository {
	return &saleRepository{view: f.view}
}

// NewNotificationRepository creates a notification repository bound to the draft.
func (f *memoryRepositoryFactory) NewNotificationRepository() repository.NotificationRepository {
	return &notificationRepository{view: f.view}
}

// view abstracts where a repository reads and writes: the committed state or a transaction draft.
type view interface {
	read(ctx context.Context, fn func(st *state) error) error
	write(ctx context.Context, fn func(st *state) error) error
}

// storeView runs every write as its own unit of work.
type storeView struct {
	store *Store
}

func (v storeView) read(ctx context.Context, fn func(st *state) error) error {
	return v.store.read(ctx, fn)
}

func (v storeView) write(ctx context.Context, fn func(st *state) error) error {
	return v.store.execute(ctx, fn)
}

// draftView operates on a draft already guarded by the store's write lock.
type draftView struct {
	draft *state
}

func (v draftView) read(_ context.Context, fn func(st *state) error) error {
	return fn(v.draft)
}

func (v draftView) write(_ context.Context, fn func(st *state) error) error {
	return fn(v.draft)
}
