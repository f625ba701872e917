package memory

import (
	"context"
	"slices"

	"novasalud/internal/domain/entity"
	"novasalud/internal/domain/repository"
)

type saleRepository struct {
	view view
}

// NewSaleRepository creates a sale repository reading committed state.
func NewSaleRepository(store *Store) repository.SaleRepository {
	return &saleRepository{view: storeView{store: store}}
}

func (r *saleRepository) CreateSale(ctx context.Context, sale *entity.Sale) error {
	return r.view.write(ctx, func(st *state) error {
		sale.ID = nextID(salePrefix, &st.counters.Sale)
		st.sales = append(st.sales, sale.Clone())

		return nil
	})
}

func (r *saleRepository) FindSaleByID(ctx context.Context, id string) (*entity.Sale, error) {
	var sale *entity.Sale
	err := r.view.read(ctx, func(st *state) error {
		idx := st.saleIndex(id)
		if idx < 0 {
			return repository.ErrSaleNotFound
		}
		sale = st.sales[idx].Clone()

		return nil
	})

	return sale, err
}

func (r *saleRepository) ListSales(ctx context.Context) ([]*entity.Sale, error) {
	var sales []*entity.Sale
	err := r.view.read(ctx, func(st *state) error {
		sales = make([]*entity.Sale, 0, len(st.sales))
		for _, sale := range st.sales {
			sales = append(sales, sale.Clone())
		}

		return nil
	})

	return sales, err
}

func (r *saleRepository) UpdateSale(ctx context.Context, sale *entity.Sale) error {
	return r.view.write(ctx, func(st *state) error {
		idx := st.saleIndex(sale.ID)
		if idx < 0 {
			return repository.ErrSaleNotFound
		}
		st.sales[idx] = sale.Clone()

		return nil
	})
}

func (r *saleRepository) DeleteSale(ctx context.Context, id string) error {
	return r.view.write(ctx, func(st *state) error {
		idx := st.saleIndex(id)
		if idx < 0 {
			return repository.ErrSaleNotFound
		}
		st.sales = slices.Delete(st.sales, idx, idx+1)

		return nil
	})
}

func (r *saleRepository) ExistsByCustomer(ctx context.Context, customerID string) (bool, error) {
	var exists bool
	err := r.view.read(ctx, func(st *state) error {
		exists = slices.ContainsFunc(st.sales, func(sale *entity.Sale) bool {
			return sale.Customer == customerID
		})

		return nil
	})

	return exists, err
}
