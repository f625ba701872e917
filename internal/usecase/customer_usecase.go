package usecase

import (
	"context"

	"novasalud/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// CustomerInput carries the fields of a new customer
type CustomerInput struct {
	Name                string  `json:"name" validate:"required,max=120"`
	Email               string  `json:"email" validate:"omitempty,email"`
	Phone               string  `json:"phone" validate:"omitempty,max=20"`
	Address             *string `json:"address,omitempty" validate:"omitempty,max=200"`
	DNI                 *string `json:"dni,omitempty" validate:"omitempty,numeric,len=8"`
	HasMedicalInsurance bool    `json:"has_medical_insurance"`
}

// PurchaseDrift reports a customer whose stored total differs from the sum of their non-refunded sales
type PurchaseDrift struct {
	CustomerID string          `json:"customer_id"`
	Name       string          `json:"name"`
	Recorded   decimal.Decimal `json:"recorded"`
	Computed   decimal.Decimal `json:"computed"`
	Difference decimal.Decimal `json:"difference"`
}

// ReconcileReport is the outcome of a purchase total reconciliation
type ReconcileReport struct {
	Checked int             `json:"checked"`
	Drifts  []PurchaseDrift `json:"drifts"`
	Applied bool            `json:"applied"`
}

// CustomerUsecase defines the interface for customer management use cases
type CustomerUsecase interface {
	// AddCustomer stores a new customer with zero purchases
	AddCustomer(ctx context.Context, input *CustomerInput) (*entity.Customer, error)

	// UpdateCustomer merges the patch into an existing customer
	UpdateCustomer(ctx context.Context, id string, patch *entity.CustomerPatch) (*entity.Customer, error)

	// DeleteCustomer removes a customer that no sale references
	DeleteCustomer(ctx context.Context, id string) error

	// GetCustomerByID retrieves a single customer
	GetCustomerByID(ctx context.Context, id string) (*entity.Customer, error)

	// ListCustomers retrieves every customer in insertion order
	ListCustomers(ctx context.Context) ([]*entity.Customer, error)

	// ReconcilePurchases compares stored purchase totals with the sales ledger.
	// When apply is true the drifted totals are rewritten.
	ReconcilePurchases(ctx context.Context, apply bool) (*ReconcileReport, error)
}
