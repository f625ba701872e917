package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a pharmacy client. TotalPurchases is maintained by sale side effects.
type Customer struct {
	ID                  string          `json:"id"`                    // Sequential identifier, e.g. "C001".
	Name                string          `json:"name"`                  // Full name.
	Email               string          `json:"email"`                 // Contact email.
	Phone               string          `json:"phone"`                 // Contact phone.
	Address             *string         `json:"address,omitempty"`     // Optional postal address.
	DNI                 *string         `json:"dni,omitempty"`         // Optional national identity document number.
	HasMedicalInsurance bool            `json:"has_medical_insurance"` // Whether the customer has medical insurance.
	TotalPurchases      decimal.Decimal `json:"total_purchases"`       // Sum of the customer's non-refunded sales.
	LastPurchase        time.Time       `json:"last_purchase"`         // Timestamp of the most recent sale.
	CreatedAt           time.Time       `json:"created_at"`            // Timestamp of when the customer was added.
	UpdatedAt           time.Time       `json:"updated_at"`            // Timestamp of the last modification.
}

// Clone returns a deep copy of the customer.
func (c *Customer) Clone() *Customer {
	if c == nil {
		return nil
	}
	cloned := *c
	cloned.Address = cloneString(c.Address)
	cloned.DNI = cloneString(c.DNI)

	return &cloned
}

// AddPurchase increments the purchase total and stamps the last purchase time.
func (c *Customer) AddPurchase(amount decimal.Decimal, at time.Time) {
	c.TotalPurchases = c.TotalPurchases.Add(amount)
	c.LastPurchase = at
}

// RemovePurchase decrements the purchase total, never going below zero.
func (c *Customer) RemovePurchase(amount decimal.Decimal) {
	c.TotalPurchases = decimal.Max(decimal.Zero, c.TotalPurchases.Sub(amount))
}

// CustomerPatch holds the fields of a partial customer update. Nil fields are left unchanged.
type CustomerPatch struct {
	Name                *string          `json:"name,omitempty"`
	Email               *string          `json:"email,omitempty"`
	Phone               *string          `json:"phone,omitempty"`
	Address             *string          `json:"address,omitempty"`
	DNI                 *string          `json:"dni,omitempty"`
	HasMedicalInsurance *bool            `json:"has_medical_insurance,omitempty"`
	TotalPurchases      *decimal.Decimal `json:"total_purchases,omitempty"`
}

// Apply merges the patch into the customer.
func (cp CustomerPatch) Apply(c *Customer) {
	if cp.Name != nil {
		c.Name = *cp.Name
	}
	if cp.Email != nil {
		c.Email = *cp.Email
	}
	if cp.Phone != nil {
		c.Phone = *cp.Phone
	}
	if cp.Address != nil {
		c.Address = cloneString(cp.Address)
	}
	if cp.DNI != nil {
		c.DNI = cloneString(cp.DNI)
	}
	if cp.HasMedicalInsurance != nil {
		c.HasMedicalInsurance = *cp.HasMedicalInsurance
	}
	if cp.TotalPurchases != nil {
		c.TotalPurchases = *cp.TotalPurchases
	}
}
