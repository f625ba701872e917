package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSaleStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from SaleStatus
		to   SaleStatus
		want bool
	}{
		{SaleStatusPending, SaleStatusCompleted, true},
		{SaleStatusPending, SaleStatusRefunded, true},
		{SaleStatusCompleted, SaleStatusRefunded, true},
		{SaleStatusCompleted, SaleStatusCompleted, true},
		{SaleStatusRefunded, SaleStatusRefunded, true},
		{SaleStatusRefunded, SaleStatusCompleted, false},
		{SaleStatusRefunded, SaleStatusPending, false},
		{SaleStatusCompleted, SaleStatusPending, false},
		{SaleStatus("Lost"), SaleStatus("Lost"), false},
		{SaleStatusPending, SaleStatus("Lost"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestSale_CloneIsIndependent(t *testing.T) {
	original := &Sale{
		ID:       "V001",
		Products: []SaleLine{{ProductID: "P001", Quantity: 2}},
		Total:    decimal.RequireFromString("11.00"),
		Status:   SaleStatusCompleted,
	}

	cloned := original.Clone()
	cloned.Products[0].Quantity = 99
	cloned.Status = SaleStatusRefunded

	assert.Equal(t, 2, original.Products[0].Quantity)
	assert.Equal(t, SaleStatusCompleted, original.Status)
}

func TestSalePatch_Apply(t *testing.T) {
	sale := &Sale{Status: SaleStatusPending, PaymentMethod: PaymentCash}
	status := SaleStatusCompleted
	method := PaymentYape
	date := time.Date(2023, 6, 5, 10, 15, 0, 0, time.UTC)

	SalePatch{Status: &status, PaymentMethod: &method, Date: &date}.Apply(sale)

	assert.Equal(t, SaleStatusCompleted, sale.Status)
	assert.Equal(t, PaymentYape, sale.PaymentMethod)
	assert.Equal(t, date, sale.Date)
}

func TestCustomer_RemovePurchaseFloorsAtZero(t *testing.T) {
	c := &Customer{TotalPurchases: decimal.RequireFromString("5.00")}
	c.RemovePurchase(decimal.RequireFromString("11.00"))

	assert.True(t, c.TotalPurchases.IsZero())
}

func TestProduct_CloneCopiesOptionalFields(t *testing.T) {
	barcode := "7501234567890"
	expiry := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	p := &Product{ID: "P001", Barcode: &barcode, ExpiryDate: &expiry}

	cloned := p.Clone()
	*cloned.Barcode = "changed"
	*cloned.ExpiryDate = expiry.AddDate(1, 0, 0)

	assert.Equal(t, "7501234567890", *p.Barcode)
	assert.Equal(t, expiry, *p.ExpiryDate)
}
