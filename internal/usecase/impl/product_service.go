package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "novasalud/internal/delivery/context"
	"novasalud/internal/domain/entity"
	domainerrors "novasalud/internal/domain/errors"
	"novasalud/internal/domain/repository"
	"novasalud/internal/domain/service"
	"novasalud/internal/errors"
	"novasalud/internal/usecase"

	"go.uber.org/fx"
)

type productService struct {
	txManager   repository.TransactionManager
	productRepo repository.ProductRepository
	labels      service.LabelService
	notifier    *notifier
	events      *eventDispatcher
	logger      *slog.Logger
	now         func() time.Time
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In
	EventDispatcherParams

	TxManager   repository.TransactionManager
	ProductRepo repository.ProductRepository
	Labels      service.LabelService
}

// NewProductService creates a new product service instance
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		txManager:   params.TxManager,
		productRepo: params.ProductRepo,
		labels:      params.Labels,
		notifier:    newNotifier(params.TxManager, params.Logger),
		events:      newEventDispatcher(params.EventDispatcherParams),
		logger:      params.Logger,
		now:         time.Now,
	}
}

func (s *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

// AddProduct stores a new product and returns it with its assigned ID
func (s *productService) AddProduct(ctx context.Context, input *usecase.ProductInput) (*entity.Product, error) {
	now := s.now()
	product := &entity.Product{
		Name:                 input.Name,
		Category:             input.Category,
		Price:                input.Price,
		Stock:                input.Stock,
		ReorderLevel:         input.ReorderLevel,
		Supplier:             input.Supplier,
		Barcode:              input.Barcode,
		Description:          input.Description,
		ExpiryDate:           input.ExpiryDate,
		RequiresPrescription: input.RequiresPrescription,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := validateProduct(product); err != nil {
		return nil, s.notifier.fail(ctx, err, "Could not add product \"%s\": %s", input.Name, failureReason(err))
	}

	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewProductRepository().CreateProduct(ctx, product); err != nil {
			return errors.Wrap(err, "failed to create product")
		}

		return s.notifier.record(ctx, repoFactory.NewNotificationRepository(), entity.NotificationSuccess,
			"Product \"%s\" added successfully", product.Name)
	})
	if err != nil {
		return nil, s.notifier.fail(ctx, err, "Could not add product \"%s\": %s", input.Name, failureReason(err))
	}

	s.log(ctx).InfoContext(ctx, "Product added", slog.String("product_id", product.ID))

	return product, nil
}

// UpdateProduct merges the patch into an existing product
func (s *productService) UpdateProduct(ctx context.Context, id string, patch *entity.ProductPatch) (*entity.Product, error) {
	if patch == nil {
		patch = &entity.ProductPatch{}
	}

	var (
		updated *entity.Product
		crossed bool
	)
	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.NewProductRepository()

		product, err := findProduct(ctx, productRepo, id)
		if err != nil {
			return err
		}

		wasLow := product.NeedsReorder()
		patch.Apply(product)
		if err := validateProduct(product); err != nil {
			return err
		}
		product.UpdatedAt = s.now()

		if err := productRepo.UpdateProduct(ctx, product); err != nil {
			return errors.Wrap(err, "failed to update product")
		}

		notifications := repoFactory.NewNotificationRepository()
		if err := s.notifier.record(ctx, notifications, entity.NotificationSuccess,
			"Product \"%s\" updated successfully", product.Name); err != nil {
			return err
		}
		if !wasLow && product.NeedsReorder() {
			crossed = true
			if err := recordLowStock(ctx, s.notifier, notifications, product); err != nil {
				return err
			}
		}
		updated = product

		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrProductNotFound) {
			return nil, s.notifier.fail(ctx, err, "Product with ID %s not found", id)
		}

		return nil, s.notifier.fail(ctx, err, "Could not update product %s: %s", id, failureReason(err))
	}

	if crossed {
		s.events.lowStock(ctx, []*entity.Product{updated})
	}

	return updated, nil
}

// DeleteProduct removes a product. Sales referencing it are left untouched.
func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.NewProductRepository()

		product, err := findProduct(ctx, productRepo, id)
		if err != nil {
			return err
		}
		if err := productRepo.DeleteProduct(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete product")
		}

		return s.notifier.record(ctx, repoFactory.NewNotificationRepository(), entity.NotificationSuccess,
			"Product \"%s\" deleted successfully", product.Name)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrProductNotFound) {
			return s.notifier.fail(ctx, err, "Product with ID %s not found", id)
		}

		return s.notifier.fail(ctx, err, "Could not delete product %s: %s", id, failureReason(err))
	}

	s.log(ctx).InfoContext(ctx, "Product deleted", slog.String("product_id", id))

	return nil
}

// GetProductByID retrieves a single product
func (s *productService) GetProductByID(ctx context.Context, id string) (*entity.Product, error) {
	return findProduct(ctx, s.productRepo, id)
}

// ListProducts retrieves products matching the filter, in insertion order
func (s *productService) ListProducts(ctx context.Context, filter usecase.ProductFilter) ([]*entity.Product, error) {
	products, err := s.productRepo.ListProducts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	matched := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.StockLevel != "" && p.StockStatus().Status != filter.StockLevel {
			continue
		}
		if filter.RequiresPrescription != nil && p.RequiresPrescription != *filter.RequiresPrescription {
			continue
		}
		matched = append(matched, p)
	}

	return matched, nil
}

// GetProductLabel renders the product's QR label as PNG
func (s *productService) GetProductLabel(ctx context.Context, id string) ([]byte, error) {
	product, err := findProduct(ctx, s.productRepo, id)
	if err != nil {
		return nil, err
	}

	png, err := s.labels.GenerateProductLabel(product.ID, product.Barcode)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render product label")
	}

	return png, nil
}

func findProduct(ctx context.Context, repo repository.ProductRepository, id string) (*entity.Product, error) {
	product, err := repo.FindProductByID(ctx, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, domainerrors.ErrProductNotFound.WithDetails(id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

func validateProduct(p *entity.Product) error {
	switch {
	case p.Name == "":
		return validationError("product name is required")
	case !p.Category.IsValid():
		return validationError("unknown category %q", p.Category)
	case p.Price.IsNegative():
		return validationError("price must not be negative")
	case p.ReorderLevel < 0:
		return validationError("reorder level must not be negative")
	}

	return nil
}

func recordLowStock(ctx context.Context, n *notifier, repo repository.NotificationRepository, p *entity.Product) error {
	return n.record(ctx, repo, entity.NotificationWarning,
		"Product \"%s\" is low on stock (%d units left)", p.Name, p.Stock)
}
