package entity

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus is the lifecycle state of a sale.
type SaleStatus string

const (
	// SaleStatusPending marks a sale awaiting payment confirmation.
	SaleStatusPending SaleStatus = "Pending"
	// SaleStatusCompleted marks a paid sale.
	SaleStatusCompleted SaleStatus = "Completed"
	// SaleStatusRefunded marks a sale whose stock and purchase effects were reversed.
	SaleStatusRefunded SaleStatus = "Refunded"
)

// saleTransitions lists the legal status changes. Staying in the same status is always allowed.
var saleTransitions = map[SaleStatus][]SaleStatus{
	SaleStatusPending:   {SaleStatusCompleted, SaleStatusRefunded},
	SaleStatusCompleted: {SaleStatusRefunded},
	SaleStatusRefunded:  {},
}

// IsValid checks if the SaleStatus is a known value.
func (s SaleStatus) IsValid() bool {
	_, ok := saleTransitions[s]

	return ok
}

// CanTransitionTo reports whether a sale in status s may move to next.
func (s SaleStatus) CanTransitionTo(next SaleStatus) bool {
	if s == next {
		return s.IsValid()
	}

	return slices.Contains(saleTransitions[s], next)
}

// PaymentMethod is how a sale was paid.
type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "Cash"
	PaymentCreditCard PaymentMethod = "Credit Card"
	PaymentDebitCard  PaymentMethod = "Debit Card"
	PaymentYape       PaymentMethod = "Yape"
	PaymentPlin       PaymentMethod = "Plin"
)

// IsValid checks if the PaymentMethod is a known value.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentCreditCard, PaymentDebitCard, PaymentYape, PaymentPlin:
		return true
	default:
		return false
	}
}

// SaleLine is one line item of a sale.
type SaleLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Sale records a transaction with a customer.
type Sale struct {
	ID            string          `json:"id"`             // Sequential identifier, e.g. "V001".
	Date          time.Time       `json:"date"`           // Business date of the sale.
	Customer      string          `json:"customer"`       // Customer ID. May reference a customer that no longer exists.
	Products      []SaleLine      `json:"products"`       // Ordered line items.
	Total         decimal.Decimal `json:"total"`          // Amount charged, computed by the caller from the line items.
	PaymentMethod PaymentMethod   `json:"payment_method"` // How the sale was paid.
	Status        SaleStatus      `json:"status"`         // Lifecycle state.
	CreatedAt     time.Time       `json:"created_at"`     // Timestamp of when the sale was recorded.
	UpdatedAt     time.Time       `json:"updated_at"`     // Timestamp of the last modification.
}

// Clone returns a deep copy of the sale.
func (s *Sale) Clone() *Sale {
	if s == nil {
		return nil
	}
	cloned := *s
	cloned.Products = slices.Clone(s.Products)

	return &cloned
}

// IsRefunded reports whether the sale's effects have already been reversed.
func (s *Sale) IsRefunded() bool {
	return s.Status == SaleStatusRefunded
}

// SalePatch holds the mutable fields of a sale. Line items, total and customer are fixed at creation.
type SalePatch struct {
	Date          *time.Time     `json:"date,omitempty"`
	PaymentMethod *PaymentMethod `json:"payment_method,omitempty"`
	Status        *SaleStatus    `json:"status,omitempty"`
}

// Apply merges the patch into the sale.
func (sp SalePatch) Apply(s *Sale) {
	if sp.Date != nil {
		s.Date = *sp.Date
	}
	if sp.PaymentMethod != nil {
		s.PaymentMethod = *sp.PaymentMethod
	}
	if sp.Status != nil {
		s.Status = *sp.Status
	}
}
