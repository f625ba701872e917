package memory

import (
	"context"
	"slices"

	"novasalud/internal/domain/entity"
	"novasalud/internal/domain/repository"
)

type productRepository struct {
	view view
}

// NewProductRepository creates a product repository reading committed state.
// Writes made through it are committed one at a time.
func NewProductRepository(store *Store) repository.ProductRepository {
	return &productRepository{view: storeView{store: store}}
}

func (r *productRepository) CreateProduct(ctx context.Context, product *entity.Product) error {
	return r.view.write(ctx, func(st *state) error {
		product.ID = nextID(productPrefix, &st.counters.Product)
		st.products = append(st.products, product.Clone())

		return nil
	})
}

func (r *productRepository) FindProductByID(ctx context.Context, id string) (*entity.Product, error) {
	var product *entity.Product
	err := r.view.read(ctx, func(st *state) error {
		idx := st.productIndex(id)
		if idx < 0 {
			return repository.ErrProductNotFound
		}
		product = st.products[idx].Clone()

		return nil
	})

	return product, err
}

func (r *productRepository) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	var products []*entity.Product
	err := r.view.read(ctx, func(st *state) error {
		products = make([]*entity.Product, 0, len(st.products))
		for _, p := range st.products {
			products = append(products, p.Clone())
		}

		return nil
	})

	return products, err
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *entity.Product) error {
	return r.view.write(ctx, func(st *state) error {
		idx := st.productIndex(product.ID)
		if idx < 0 {
			return repository.ErrProductNotFound
		}
		st.products[idx] = product.Clone()

		return nil
	})
}

func (r *productRepository) DeleteProduct(ctx context.Context, id string) error {
	return r.view.write(ctx, func(st *state) error {
		idx := st.productIndex(id)
		if idx < 0 {
			return repository.ErrProductNotFound
		}
		st.products = slices.Delete(st.products, idx, idx+1)

		return nil
	})
}
