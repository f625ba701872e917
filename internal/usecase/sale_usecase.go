package usecase

import (
	"context"
	"time"

	"novasalud/internal/domain/entity"

	"github.com/shopspring/decimal"
)

const (
	// UnknownProductName is shown for sale lines whose product was deleted
	UnknownProductName = "Unknown product"
	// UnknownCustomerName is shown for sales whose customer does not exist
	UnknownCustomerName = "Unknown customer"
)

// SaleInput carries the fields of a new sale. Total is computed by the caller from the lines.
type SaleInput struct {
	Date          *time.Time           `json:"date,omitempty"`
	Customer      string               `json:"customer"`
	Products      []entity.SaleLine    `json:"products" validate:"required,min=1,dive"`
	Total         decimal.Decimal      `json:"total"`
	PaymentMethod entity.PaymentMethod `json:"payment_method" validate:"required"`
	Status        entity.SaleStatus    `json:"status"`
}

// SaleFilter narrows ListSales. Zero values match everything.
type SaleFilter struct {
	Status   entity.SaleStatus
	Customer string
}

// SaleLineDetail is a sale line with its product resolved
type SaleLineDetail struct {
	ProductID    string           `json:"product_id"`
	ProductName  string           `json:"product_name"`
	Quantity     int              `json:"quantity"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"`
	ProductKnown bool             `json:"product_known"`
}

// SaleDetail is a sale with customer and product names resolved
type SaleDetail struct {
	Sale          *entity.Sale     `json:"sale"`
	CustomerName  string           `json:"customer_name"`
	CustomerKnown bool             `json:"customer_known"`
	Lines         []SaleLineDetail `json:"lines"`
}

// SaleUsecase defines the interface for sale recording use cases
type SaleUsecase interface {
	// AddSale records a sale, taking its lines out of stock and crediting the customer
	AddSale(ctx context.Context, input *SaleInput) (*entity.Sale, error)

	// UpdateSale merges the patch; entering Refunded reverses the sale's effects once
	UpdateSale(ctx context.Context, id string, patch *entity.SalePatch) (*entity.Sale, error)

	// DeleteSale removes a sale, reversing its effects unless it was already refunded
	DeleteSale(ctx context.Context, id string) error

	// GetSaleByID retrieves a single sale
	GetSaleByID(ctx context.Context, id string) (*entity.Sale, error)

	// GetSaleDetail retrieves a sale with product and customer names resolved
	GetSaleDetail(ctx context.Context, id string) (*SaleDetail, error)

	// ListSales retrieves sales matching the filter, in insertion order
	ListSales(ctx context.Context, filter SaleFilter) ([]*entity.Sale, error)
}
