package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "novasalud/internal/delivery/context"
	"novasalud/internal/domain/entity"
	domainerrors "novasalud/internal/domain/errors"
	"novasalud/internal/domain/repository"
	"novasalud/internal/errors"
	"novasalud/internal/usecase"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

type customerService struct {
	txManager    repository.TransactionManager
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
	notifier     *notifier
	logger       *slog.Logger
	now          func() time.Time
}

// CustomerServiceParams holds dependencies for CustomerService, injected by Fx.
type CustomerServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	CustomerRepo repository.CustomerRepository
	SaleRepo     repository.SaleRepository
	Logger       *slog.Logger
}

// NewCustomerService creates a new customer service instance
func NewCustomerService(params CustomerServiceParams) usecase.CustomerUsecase {
	return &customerService{
		txManager:    params.TxManager,
		customerRepo: params.CustomerRepo,
		saleRepo:     params.SaleRepo,
		notifier:     newNotifier(params.TxManager, params.Logger),
		logger:       params.Logger,
		now:          time.Now,
	}
}

func (s *customerService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

// AddCustomer stores a new customer with zero purchases
func (s *customerService) AddCustomer(ctx context.Context, input *usecase.CustomerInput) (*entity.Customer, error) {
	if input.Name == "" {
		err := validationError("customer name is required")

		return nil, s.notifier.fail(ctx, err, "Could not add customer: %s", failureReason(err))
	}

	now := s.now()
	customer := &entity.Customer{
		Name:                input.Name,
		Email:               input.Email,
		Phone:               input.Phone,
		Address:             input.Address,
		DNI:                 input.DNI,
		HasMedicalInsurance: input.HasMedicalInsurance,
		TotalPurchases:      decimal.Zero,
		LastPurchase:        now,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewCustomerRepository().CreateCustomer(ctx, customer); err != nil {
			return errors.Wrap(err, "failed to create customer")
		}

		return s.notifier.record(ctx, repoFactory.NewNotificationRepository(), entity.NotificationSuccess,
			"Customer \"%s\" added successfully", customer.Name)
	})
	if err != nil {
		return nil, s.notifier.fail(ctx, err, "Could not add customer \"%s\": %s", input.Name, failureReason(err))
	}

	s.log(ctx).InfoContext(ctx, "Customer added", slog.String("customer_id", customer.ID))

	return customer, nil
}

// UpdateCustomer merges the patch into an existing customer
func (s *customerService) UpdateCustomer(ctx context.Context, id string, patch *entity.CustomerPatch) (*entity.Customer, error) {
	if patch == nil {
		patch = &entity.CustomerPatch{}
	}

	var updated *entity.Customer
	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		customerRepo := repoFactory.NewCustomerRepository()

		customer, err := findCustomer(ctx, customerRepo, id)
		if err != nil {
			return err
		}

		patch.Apply(customer)
		if customer.Name == "" {
			return validationError("customer name is required")
		}
		if customer.TotalPurchases.IsNegative() {
			return validationError("total purchases must not be negative")
		}
		customer.UpdatedAt = s.now()

		if err := customerRepo.UpdateCustomer(ctx, customer); err != nil {
			return errors.Wrap(err, "failed to update customer")
		}
		updated = customer

		return s.notifier.record(ctx, repoFactory.NewNotificationRepository(), entity.NotificationSuccess,
			"Customer \"%s\" updated successfully", customer.Name)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrCustomerNotFound) {
			return nil, s.notifier.fail(ctx, err, "Customer with ID %s not found", id)
		}

		return nil, s.notifier.fail(ctx, err, "Could not update customer %s: %s", id, failureReason(err))
	}

	return updated, nil
}

// DeleteCustomer removes a customer that no sale references
func (s *customerService) DeleteCustomer(ctx context.Context, id string) error {
	var name string
	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		customerRepo := repoFactory.NewCustomerRepository()

		customer, err := findCustomer(ctx, customerRepo, id)
		if err != nil {
			return err
		}
		name = customer.Name

		hasSales, err := repoFactory.NewSaleRepository().ExistsByCustomer(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to check customer sales")
		}
		if hasSales {
			return domainerrors.ErrCustomerHasSales.WithDetails(id)
		}

		if err := customerRepo.DeleteCustomer(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete customer")
		}

		return s.notifier.record(ctx, repoFactory.NewNotificationRepository(), entity.NotificationSuccess,
			"Customer \"%s\" deleted successfully", customer.Name)
	})
	switch {
	case err == nil:
		s.log(ctx).InfoContext(ctx, "Customer deleted", slog.String("customer_id", id))

		return nil
	case errors.Is(err, domainerrors.ErrCustomerNotFound):
		return s.notifier.fail(ctx, err, "Customer with ID %s not found", id)
	case errors.Is(err, domainerrors.ErrCustomerHasSales):
		return s.notifier.fail(ctx, err, "Cannot delete customer \"%s\" because they have associated sales", name)
	default:
		return s.notifier.fail(ctx, err, "Could not delete customer %s: %s", id, failureReason(err))
	}
}

// GetCustomerByID retrieves a single customer
func (s *customerService) GetCustomerByID(ctx context.Context, id string) (*entity.Customer, error) {
	return findCustomer(ctx, s.customerRepo, id)
}

// ListCustomers retrieves every customer in insertion order
func (s *customerService) ListCustomers(ctx context.Context) ([]*entity.Customer, error) {
	customers, err := s.customerRepo.ListCustomers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customers")
	}

	return customers, nil
}

// ReconcilePurchases compares stored purchase totals with the sales ledger
func (s *customerService) ReconcilePurchases(ctx context.Context, apply bool) (*usecase.ReconcileReport, error) {
	if !apply {
		return reconcile(ctx, s.customerRepo, s.saleRepo)
	}

	var report *usecase.ReconcileReport
	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		customerRepo := repoFactory.NewCustomerRepository()

		var err error
		report, err = reconcile(ctx, customerRepo, repoFactory.NewSaleRepository())
		if err != nil {
			return err
		}
		if len(report.Drifts) == 0 {
			return nil
		}

		now := s.now()
		for _, drift := range report.Drifts {
			customer, err := findCustomer(ctx, customerRepo, drift.CustomerID)
			if err != nil {
				return err
			}
			customer.TotalPurchases = drift.Computed
			customer.UpdatedAt = now
			if err := customerRepo.UpdateCustomer(ctx, customer); err != nil {
				return errors.Wrap(err, "failed to update customer total")
			}
		}
		report.Applied = true

		return s.notifier.record(ctx, repoFactory.NewNotificationRepository(), entity.NotificationInfo,
			"Reconciled purchase totals for %d customers", len(report.Drifts))
	})
	if err != nil {
		return nil, s.notifier.fail(ctx, err, "Could not reconcile purchase totals: %s", failureReason(err))
	}

	s.log(ctx).InfoContext(ctx, "Purchase totals reconciled", slog.Int("drifts", len(report.Drifts)))

	return report, nil
}

// reconcile sums non-refunded sales per customer and lists every customer whose stored total differs.
func reconcile(ctx context.Context, customerRepo repository.CustomerRepository, saleRepo repository.SaleRepository) (*usecase.ReconcileReport, error) {
	customers, err := customerRepo.ListCustomers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customers")
	}
	sales, err := saleRepo.ListSales(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sales")
	}

	computed := make(map[string]decimal.Decimal, len(customers))
	for _, sale := range sales {
		if sale.IsRefunded() {
			continue
		}
		computed[sale.Customer] = computed[sale.Customer].Add(sale.Total)
	}

	report := &usecase.ReconcileReport{Checked: len(customers), Drifts: []usecase.PurchaseDrift{}}
	for _, c := range customers {
		total := computed[c.ID]
		if c.TotalPurchases.Equal(total) {
			continue
		}
		report.Drifts = append(report.Drifts, usecase.PurchaseDrift{
			CustomerID: c.ID,
			Name:       c.Name,
			Recorded:   c.TotalPurchases,
			Computed:   total,
			Difference: c.TotalPurchases.Sub(total),
		})
	}

	return report, nil
}

func findCustomer(ctx context.Context, repo repository.CustomerRepository, id string) (*entity.Customer, error) {
	customer, err := repo.FindCustomerByID(ctx, id)
	if errors.Is(err, repository.ErrCustomerNotFound) {
		return nil, domainerrors.ErrCustomerNotFound.WithDetails(id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find customer")
	}

	return customer, nil
}
