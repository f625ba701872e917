// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies a product in the pharmacy catalogue.
type Category string

const (
	// CategoryMedicine covers over-the-counter and prescription drugs.
	CategoryMedicine Category = "Medicamentos"
	// CategoryMedicalEquipment covers devices such as thermometers.
	CategoryMedicalEquipment Category = "Equipos Médicos"
	// CategoryPersonalCare covers hygiene and personal care items.
	CategoryPersonalCare Category = "Cuidado Personal"
	// CategorySupplements covers vitamins and dietary supplements.
	CategorySupplements Category = "Vitaminas y Suplementos"
)

// Categories lists every known category in display order.
func Categories() []Category {
	return []Category{CategoryMedicine, CategoryMedicalEquipment, CategoryPersonalCare, CategorySupplements}
}

// IsValid checks if the Category is a known value.
func (c Category) IsValid() bool {
	switch c {
	case CategoryMedicine, CategoryMedicalEquipment, CategoryPersonalCare, CategorySupplements:
		return true
	default:
		return false
	}
}

// Product is an inventory item sold by the pharmacy.
type Product struct {
	ID                   string          `json:"id"`                    // Sequential identifier, e.g. "P001".
	Name                 string          `json:"name"`                  // Display name, e.g. "Paracetamol 500mg".
	Category             Category        `json:"category"`              // Catalogue category.
	Price                decimal.Decimal `json:"price"`                 // Unit sale price.
	Stock                int             `json:"stock"`                 // Units on hand. Direct edits may drive it negative.
	ReorderLevel         int             `json:"reorder_level"`         // Threshold below which the product is low on stock.
	Supplier             string          `json:"supplier"`              // Supplier name.
	Barcode              *string         `json:"barcode,omitempty"`     // Optional EAN/UPC barcode.
	Description          *string         `json:"description,omitempty"` // Optional free-text description.
	ExpiryDate           *time.Time      `json:"expiry_date,omitempty"` // Optional expiry date of the current lot.
	RequiresPrescription bool            `json:"requires_prescription"` // Whether a prescription is needed to sell it.
	CreatedAt            time.Time       `json:"created_at"`            // Timestamp of when the product was added.
	UpdatedAt            time.Time       `json:"updated_at"`            // Timestamp of the last modification.
}

// Clone returns a deep copy of the product.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	cloned := *p
	cloned.Barcode = cloneString(p.Barcode)
	cloned.Description = cloneString(p.Description)
	if p.ExpiryDate != nil {
		expiry := *p.ExpiryDate
		cloned.ExpiryDate = &expiry
	}

	return &cloned
}

// StockStatus reports the product's stock classification.
func (p *Product) StockStatus() StockStatus {
	return GetStockStatus(p.Stock, p.ReorderLevel)
}

// NeedsReorder reports whether the product is at or below its reorder level.
func (p *Product) NeedsReorder() bool {
	return p.Stock <= p.ReorderLevel
}

// ProductPatch holds the fields of a partial product update. Nil fields are left unchanged.
type ProductPatch struct {
	Name                 *string          `json:"name,omitempty"`
	Category             *Category        `json:"category,omitempty"`
	Price                *decimal.Decimal `json:"price,omitempty"`
	Stock                *int             `json:"stock,omitempty"`
	ReorderLevel         *int             `json:"reorder_level,omitempty"`
	Supplier             *string          `json:"supplier,omitempty"`
	Barcode              *string          `json:"barcode,omitempty"`
	Description          *string          `json:"description,omitempty"`
	ExpiryDate           *time.Time       `json:"expiry_date,omitempty"`
	RequiresPrescription *bool            `json:"requires_prescription,omitempty"`
}

// Apply merges the patch into the product.
func (pp ProductPatch) Apply(p *Product) {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Category != nil {
		p.Category = *pp.Category
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.Stock != nil {
		p.Stock = *pp.Stock
	}
	if pp.ReorderLevel != nil {
		p.ReorderLevel = *pp.ReorderLevel
	}
	if pp.Supplier != nil {
		p.Supplier = *pp.Supplier
	}
	if pp.Barcode != nil {
		p.Barcode = cloneString(pp.Barcode)
	}
	if pp.Description != nil {
		p.Description = cloneString(pp.Description)
	}
	if pp.ExpiryDate != nil {
		expiry := *pp.ExpiryDate
		p.ExpiryDate = &expiry
	}
	if pp.RequiresPrescription != nil {
		p.RequiresPrescription = *pp.RequiresPrescription
	}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s

	return &v
}
