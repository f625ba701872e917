package memory

import (
	"context"
	"slices"

	"novasalud/internal/domain/entity"
	"novasalud/internal/domain/repository"
)

type customerRepository struct {
	view view
}

// NewCustomerRepository creates a customer repository reading committed state.
func NewCustomerRepository(store *Store) repository.CustomerRepository {
	return &customerRepository{view: storeView{store: store}}
}

func (r *customerRepository) CreateCustomer(ctx context.Context, customer *entity.Customer) error {
	return r.view.write(ctx, func(st *state) error {
		customer.ID = nextID(customerPrefix, &st.counters.Customer)
		st.customers = append(st.customers, customer.Clone())

		return nil
	})
}

func (r *customerRepository) FindCustomerByID(ctx context.Context, id string) (*entity.Customer, error) {
	var customer *entity.Customer
	err := r.view.read(ctx, func(st *state) error {
		idx := st.customerIndex(id)
		if idx < 0 {
			return repository.ErrCustomerNotFound
		}
		customer = st.customers[idx].Clone()

		return nil
	})

	return customer, err
}

func (r *customerRepository) ListCustomers(ctx context.Context) ([]*entity.Customer, error) {
	var customers []*entity.Customer
	err := r.view.read(ctx, func(st *state) error {
		customers = make([]*entity.Customer, 0, len(st.customers))
		for _, c := range st.customers {
			customers = append(customers, c.Clone())
		}

		return nil
	})

	return customers, err
}

func (r *customerRepository) UpdateCustomer(ctx context.Context, customer *entity.Customer) error {
	return r.view.write(ctx, func(st *state) error {
		idx := st.customerIndex(customer.ID)
		if idx < 0 {
			return repository.ErrCustomerNotFound
		}
		st.customers[idx] = customer.Clone()

		return nil
	})
}

func (r *customerRepository) DeleteCustomer(ctx context.Context, id string) error {
	return r.view.write(ctx, func(st *state) error {
		idx := st.customerIndex(id)
		if idx < 0 {
			return repository.ErrCustomerNotFound
		}
		st.customers = slices.Delete(st.customers, idx, idx+1)

		return nil
	})
}
