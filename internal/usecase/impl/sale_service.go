package impl

import (
	"context"
	"fmt"
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

type saleService struct {
	txManager    repository.TransactionManager
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	notifier     *notifier
	events       *eventDispatcher
	logger       *slog.Logger
	now          func() time.Time
}

// SaleServiceParams holds dependencies for SaleService, injected by Fx.
type SaleServiceParams struct {
	fx.In
	EventDispatcherParams

	TxManager    repository.TransactionManager
	SaleRepo     repository.SaleRepository
	ProductRepo  repository.ProductRepository
	CustomerRepo repository.CustomerRepository
}

// NewSaleService creates a new sale service instance
func NewSaleService(params SaleServiceParams) usecase.SaleUsecase {
	return &saleService{
		txManager:    params.TxManager,
		saleRepo:     params.SaleRepo,
		productRepo:  params.ProductRepo,
		customerRepo: params.CustomerRepo,
		notifier:     newNotifier(params.TxManager, params.Logger),
		events:       newEventDispatcher(params.EventDispatcherParams),
		logger:       params.Logger,
		now:          time.Now,
	}
}

func (s *saleService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

// AddSale records a sale, taking its lines out of stock and crediting the customer.
// Every line must reference an existing product with enough stock, otherwise nothing changes.
func (s *saleService) AddSale(ctx context.Context, input *usecase.SaleInput) (*entity.Sale, error) {
	if err := validateSaleInput(input); err != nil {
		return nil, s.notifier.fail(ctx, err, "Could not record sale: %s", failureReason(err))
	}

	now := s.now()
	sale := &entity.Sale{
		Date:          now,
		Customer:      input.Customer,
		Products:      append([]entity.SaleLine(nil), input.Products...),
		Total:         input.Total,
		PaymentMethod: input.PaymentMethod,
		Status:        input.Status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if sale.Status == "" {
		sale.Status = entity.SaleStatusCompleted
	}
	if input.Date != nil {
		sale.Date = *input.Date
	}

	var lowStock []*entity.Product
	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		lowStock, err = s.applySale(ctx, repoFactory, sale, now)
		if err != nil {
			return err
		}

		if err := repoFactory.NewSaleRepository().CreateSale(ctx, sale); err != nil {
			return errors.Wrap(err, "failed to create sale")
		}

		notifications := repoFactory.NewNotificationRepository()
		if err := s.notifier.record(ctx, notifications, entity.NotificationSuccess,
			"Sale %s recorded successfully", sale.ID); err != nil {
			return err
		}
		for _, p := range lowStock {
			if err := recordLowStock(ctx, s.notifier, notifications, p); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, s.notifier.fail(ctx, err, "Could not record sale: %s", failureReason(err))
	}

	s.log(ctx).InfoContext(ctx, "Sale recorded",
		slog.String("sale_id", sale.ID),
		slog.String("customer_id", sale.Customer),
		slog.String("total", sale.Total.StringFixed(2)),
	)
	s.events.publish(ctx, service.EventSaleRecorded, sale.ID, saleAttributes(sale))
	s.events.lowStock(ctx, lowStock)

	return sale, nil
}

// applySale checks every line against stock, then decrements stock and credits the customer.
// It returns the products that dropped to or below their reorder level.
// A sale recorded as already refunded owes nothing, so only existence is checked.
func (s *saleService) applySale(ctx context.Context, repoFactory repository.RepositoryFactory, sale *entity.Sale, now time.Time) ([]*entity.Product, error) {
	productRepo := repoFactory.NewProductRepository()

	// Lines for the same product are summed so the stock check covers all of them.
	var order []string
	required := make(map[string]int, len(sale.Products))
	for _, line := range sale.Products {
		if _, seen := required[line.ProductID]; !seen {
			order = append(order, line.ProductID)
		}
		required[line.ProductID] += line.Quantity
	}

	products := make(map[string]*entity.Product, len(order))
	for _, productID := range order {
		product, err := findProduct(ctx, productRepo, productID)
		if err != nil {
			return nil, err
		}
		if !sale.IsRefunded() && product.Stock < required[productID] {
			return nil, domainerrors.ErrInsufficientStock.WithDetails(fmt.Sprintf(
				"%s: requested %d, available %d", product.Name, required[productID], product.Stock))
		}
		products[productID] = product
	}

	if sale.IsRefunded() {
		return nil, nil
	}

	var lowStock []*entity.Product
	for _, productID := range order {
		product := products[productID]
		wasLow := product.NeedsReorder()
		product.Stock -= required[productID]
		product.UpdatedAt = now
		if err := productRepo.UpdateProduct(ctx, product); err != nil {
			return nil, errors.Wrap(err, "failed to decrement stock")
		}
		if !wasLow && product.NeedsReorder() {
			lowStock = append(lowStock, product)
		}
	}

	customerRepo := repoFactory.NewCustomerRepository()
	customer, err := customerRepo.FindCustomerByID(ctx, sale.Customer)
	switch {
	case errors.Is(err, repository.ErrCustomerNotFound):
		s.log(ctx).DebugContext(ctx, "Sale references unknown customer", slog.String("customer_id", sale.Customer))

		return lowStock, nil
	case err != nil:
		return nil, errors.Wrap(err, "failed to find customer")
	}

	customer.AddPurchase(sale.Total, now)
	customer.UpdatedAt = now
	if err := customerRepo.UpdateCustomer(ctx, customer); err != nil {
		return nil, errors.Wrap(err, "failed to credit customer")
	}

	return lowStock, nil
}

// reverseSale restores stock for every line of the stored sale and debits the customer, floored at zero.
// Missing products or customers are skipped.
func (s *saleService) reverseSale(ctx context.Context, repoFactory repository.RepositoryFactory, sale *entity.Sale, now time.Time) error {
	productRepo := repoFactory.NewProductRepository()
	for _, line := range sale.Products {
		product, err := productRepo.FindProductByID(ctx, line.ProductID)
		if errors.Is(err, repository.ErrProductNotFound) {
			s.log(ctx).DebugContext(ctx, "Skipping stock restore for missing product",
				slog.String("sale_id", sale.ID),
				slog.String("product_id", line.ProductID),
			)

			continue
		}
		if err != nil {
			return errors.Wrap(err, "failed to find product")
		}

		product.Stock += line.Quantity
		product.UpdatedAt = now
		if err := productRepo.UpdateProduct(ctx, product); err != nil {
			return errors.Wrap(err, "failed to restore stock")
		}
	}

	customerRepo := repoFactory.NewCustomerRepository()
	customer, err := customerRepo.FindCustomerByID(ctx, sale.Customer)
	if errors.Is(err, repository.ErrCustomerNotFound) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to find customer")
	}

	customer.RemovePurchase(sale.Total)
	customer.UpdatedAt = now
	if err := customerRepo.UpdateCustomer(ctx, customer); err != nil {
		return errors.Wrap(err, "failed to debit customer")
	}

	return nil
}

// UpdateSale merges the patch. Entering Refunded reverses the stored sale's effects exactly once.
func (s *saleService) UpdateSale(ctx context.Context, id string, patch *entity.SalePatch) (*entity.Sale, error) {
	if patch == nil {
		patch = &entity.SalePatch{}
	}
	if err := validateSalePatch(patch); err != nil {
		return nil, s.notifier.fail(ctx, err, "Could not update sale %s: %s", id, failureReason(err))
	}

	var (
		updated  *entity.Sale
		refunded bool
	)
	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		saleRepo := repoFactory.NewSaleRepository()

		sale, err := findSale(ctx, saleRepo, id)
		if err != nil {
			return err
		}

		previous := sale.Status
		next := previous
		if patch.Status != nil {
			next = *patch.Status
		}
		if !previous.CanTransitionTo(next) {
			return domainerrors.ErrInvalidStatusTransition.WithDetails(fmt.Sprintf("%s -> %s", previous, next))
		}

		now := s.now()
		if previous != entity.SaleStatusRefunded && next == entity.SaleStatusRefunded {
			if err := s.reverseSale(ctx, repoFactory, sale, now); err != nil {
				return err
			}
			refunded = true
		}

		patch.Apply(sale)
		sale.UpdatedAt = now
		if err := saleRepo.UpdateSale(ctx, sale); err != nil {
			return errors.Wrap(err, "failed to update sale")
		}
		updated = sale

		return s.notifier.record(ctx, repoFactory.NewNotificationRepository(), entity.NotificationSuccess,
			"Sale %s updated successfully", sale.ID)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrSaleNotFound) {
			return nil, s.notifier.fail(ctx, err, "Sale with ID %s not found", id)
		}

		return nil, s.notifier.fail(ctx, err, "Could not update sale %s: %s", id, failureReason(err))
	}

	eventType := service.EventSaleUpdated
	if refunded {
		eventType = service.EventSaleRefunded
		s.log(ctx).InfoContext(ctx, "Sale refunded", slog.String("sale_id", id))
	}
	s.events.publish(ctx, eventType, updated.ID, saleAttributes(updated))

	return updated, nil
}

// DeleteSale removes a sale, reversing its effects unless it was already refunded
func (s *saleService) DeleteSale(ctx context.Context, id string) error {
	var deleted *entity.Sale
	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		saleRepo := repoFactory.NewSaleRepository()

		sale, err := findSale(ctx, saleRepo, id)
		if err != nil {
			return err
		}

		if !sale.IsRefunded() {
			if err := s.reverseSale(ctx, repoFactory, sale, s.now()); err != nil {
				return err
			}
		}

		if err := saleRepo.DeleteSale(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete sale")
		}
		deleted = sale

		return s.notifier.record(ctx, repoFactory.NewNotificationRepository(), entity.NotificationSuccess,
			"Sale %s deleted successfully", id)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrSaleNotFound) {
			return s.notifier.fail(ctx, err, "Sale with ID %s not found", id)
		}

		return s.notifier.fail(ctx, err, "Could not delete sale %s: %s", id, failureReason(err))
	}

	s.log(ctx).InfoContext(ctx, "Sale deleted", slog.String("sale_id", id))
	s.events.publish(ctx, service.EventSaleDeleted, id, saleAttributes(deleted))

	return nil
}

// GetSaleByID retrieves a single sale
func (s *saleService) GetSaleByID(ctx context.Context, id string) (*entity.Sale, error) {
	return findSale(ctx, s.saleRepo, id)
}

// GetSaleDetail retrieves a sale with product and customer names resolved
func (s *saleService) GetSaleDetail(ctx context.Context, id string) (*usecase.SaleDetail, error) {
	sale, err := findSale(ctx, s.saleRepo, id)
	if err != nil {
		return nil, err
	}

	detail := &usecase.SaleDetail{
		Sale:         sale,
		CustomerName: usecase.UnknownCustomerName,
		Lines:        make([]usecase.SaleLineDetail, 0, len(sale.Products)),
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, sale.Customer)
	switch {
	case err == nil:
		detail.CustomerName = customer.Name
		detail.CustomerKnown = true
	case !errors.Is(err, repository.ErrCustomerNotFound):
		return nil, errors.Wrap(err, "failed to find customer")
	}

	for _, line := range sale.Products {
		lineDetail := usecase.SaleLineDetail{
			ProductID:   line.ProductID,
			ProductName: usecase.UnknownProductName,
			Quantity:    line.Quantity,
		}

		product, err := s.productRepo.FindProductByID(ctx, line.ProductID)
		switch {
		case err == nil:
			price := product.Price
			lineDetail.ProductName = product.Name
			lineDetail.UnitPrice = &price
			lineDetail.ProductKnown = true
		case !errors.Is(err, repository.ErrProductNotFound):
			return nil, errors.Wrap(err, "failed to find product")
		}

		detail.Lines = append(detail.Lines, lineDetail)
	}

	return detail, nil
}

// ListSales retrieves sales matching the filter, in insertion order
func (s *saleService) ListSales(ctx context.Context, filter usecase.SaleFilter) ([]*entity.Sale, error) {
	sales, err := s.saleRepo.ListSales(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sales")
	}

	matched := make([]*entity.Sale, 0, len(sales))
	for _, sale := range sales {
		if filter.Status != "" && sale.Status != filter.Status {
			continue
		}
		if filter.Customer != "" && sale.Customer != filter.Customer {
			continue
		}
		matched = append(matched, sale)
	}

	return matched, nil
}

func findSale(ctx context.Context, repo repository.SaleRepository, id string) (*entity.Sale, error) {
	sale, err := repo.FindSaleByID(ctx, id)
	if errors.Is(err, repository.ErrSaleNotFound) {
		return nil, domainerrors.ErrSaleNotFound.WithDetails(id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find sale")
	}

	return sale, nil
}

func validateSaleInput(input *usecase.SaleInput) error {
	if len(input.Products) == 0 {
		return validationError("a sale needs at least one product")
	}
	for i, line := range input.Products {
		if line.ProductID == "" {
			return validationError("line %d has no product", i+1)
		}
		if line.Quantity <= 0 {
			return validationError("line %d quantity must be positive", i+1)
		}
	}
	if input.Total.IsNegative() {
		return validationError("total must not be negative")
	}
	if !input.PaymentMethod.IsValid() {
		return validationError("unknown payment method %q", input.PaymentMethod)
	}
	if input.Status != "" && !input.Status.IsValid() {
		return validationError("unknown sale status %q", input.Status)
	}

	return nil
}

func validateSalePatch(patch *entity.SalePatch) error {
	if patch.PaymentMethod != nil && !patch.PaymentMethod.IsValid() {
		return validationError("unknown payment method %q", *patch.PaymentMethod)
	}
	if patch.Status != nil && !patch.Status.IsValid() {
		return validationError("unknown sale status %q", *patch.Status)
	}

	return nil
}

func saleAttributes(sale *entity.Sale) map[string]string {
	return map[string]string{
		"customer_id":    sale.Customer,
		"status":         string(sale.Status),
		"payment_method": string(sale.PaymentMethod),
		"total":          sale.Total.StringFixed(2),
	}
}
