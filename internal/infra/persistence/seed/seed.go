// Package seed provides the bootstrap dataset used when the store starts empty.
package seed

import (
	"time"

	"novasalud/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// Dataset returns a fresh copy of the bootstrap catalogue, clients and sales.
// Counters match the highest id in each collection.
func Dataset(now time.Time) *entity.Snapshot {
	return &entity.Snapshot{
		Products:  products(now),
		Customers: customers(now),
		Sales:     sales(now),
		Counters:  entity.Counters{Product: 8, Customer: 4, Sale: 5},
	}
}

func products(now time.Time) []*entity.Product {
	return []*entity.Product{
		{
			ID: "P001", Name: "Paracetamol 500mg", Category: entity.CategoryMedicine,
			Price: decimal.RequireFromString("5.50"), Stock: 150, ReorderLevel: 30,
			Supplier: "Farmacéutica Nacional", Barcode: ptr("7501234567890"),
			Description: ptr("Analgésico y antipirético"),
			CreatedAt:   now, UpdatedAt: now,
		},
		{
			ID: "P002", Name: "Ibuprofeno 400mg", Category: entity.CategoryMedicine,
			Price: decimal.RequireFromString("8.90"), Stock: 85, ReorderLevel: 25,
			Supplier: "Laboratorios Lima", Barcode: ptr("7502345678901"),
			Description: ptr("Antiinflamatorio no esteroideo"),
			CreatedAt:   now, UpdatedAt: now,
		},
		{
			ID: "P003", Name: "Amoxicilina 500mg", Category: entity.CategoryMedicine,
			Price: decimal.RequireFromString("14.50"), Stock: 20, ReorderLevel: 25,
			Supplier: "Farma Internacional", Description: ptr("Antibiótico de amplio espectro"),
			ExpiryDate: date(2023, time.December, 30), RequiresPrescription: true,
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "P004", Name: "Alcohol 96% 250ml", Category: entity.CategoryPersonalCare,
			Price: decimal.RequireFromString("7.90"), Stock: 60, ReorderLevel: 15,
			Supplier:  "Químicos Perú",
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "P005", Name: "Vitamina C 1000mg", Category: entity.CategorySupplements,
			Price: decimal.RequireFromString("25.90"), Stock: 40, ReorderLevel: 10,
			Supplier: "Nutrilab", ExpiryDate: date(2024, time.June, 15),
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "P006", Name: "Termómetro Digital", Category: entity.CategoryMedicalEquipment,
			Price: decimal.RequireFromString("29.90"), Stock: 15, ReorderLevel: 5,
			Supplier:  "MediEquip",
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "P007", Name: "Omeprazol 20mg", Category: entity.CategoryMedicine,
			Price: decimal.RequireFromString("12.50"), Stock: 5, ReorderLevel: 20,
			Supplier: "Laboratorios Lima", ExpiryDate: date(2023, time.October, 30),
			RequiresPrescription: true,
			CreatedAt:            now, UpdatedAt: now,
		},
		{
			ID: "P008", Name: "Mascarilla KN95 (Unidad)", Category: entity.CategoryPersonalCare,
			Price: decimal.RequireFromString("3.50"), Stock: 200, ReorderLevel: 50,
			Supplier:  "Safety Perú",
			CreatedAt: now, UpdatedAt: now,
		},
	}
}

func customers(now time.Time) []*entity.Customer {
	return []*entity.Customer{
		{
			ID: "C001", Name: "Juan Pérez García", Email: "juan.perez@gmail.com", Phone: "987654321",
			Address: ptr("Av. Arequipa 123, Lince"), DNI: ptr("45678912"), HasMedicalInsurance: true,
			TotalPurchases: decimal.RequireFromString("345.80"),
			LastPurchase:   timestamp("2023-05-30T10:15:00Z"),
			CreatedAt:      now, UpdatedAt: now,
		},
		{
			ID: "C002", Name: "María Rodríguez", Email: "mariarodri@hotmail.com", Phone: "987123456",
			Address: ptr("Jr. Los Pinos 456, San Isidro"), DNI: ptr("12345678"),
			TotalPurchases: decimal.RequireFromString("120.50"),
			LastPurchase:   timestamp("2023-06-02T15:30:00Z"),
			CreatedAt:      now, UpdatedAt: now,
		},
		{
			ID: "C003", Name: "Carlos Sánchez", Email: "carlos.sanchez@gmail.com", Phone: "999888777",
			Address: ptr("Calle Los Álamos 789, Miraflores"), DNI: ptr("87654321"), HasMedicalInsurance: true,
			TotalPurchases: decimal.RequireFromString("540.20"),
			LastPurchase:   timestamp("2023-06-05T09:45:00Z"),
			CreatedAt:      now, UpdatedAt: now,
		},
		{
			ID: "C004", Name: "Ana Gómez", Email: "ana.gomez@yahoo.com", Phone: "977666555",
			TotalPurchases: decimal.RequireFromString("75.00"),
			LastPurchase:   timestamp("2023-05-25T14:00:00Z"),
			CreatedAt:      now, UpdatedAt: now,
		},
	}
}

func sales(now time.Time) []*entity.Sale {
	return []*entity.Sale{
		{
			ID: "V001", Date: timestamp("2023-06-05T10:15:00Z"), Customer: "C001",
			Products:      []entity.SaleLine{{ProductID: "P001", Quantity: 2}, {ProductID: "P004", Quantity: 1}},
			Total:         decimal.RequireFromString("18.90"),
			PaymentMethod: entity.PaymentCash, Status: entity.SaleStatusCompleted,
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "V002", Date: timestamp("2023-06-04T15:30:00Z"), Customer: "C002",
			Products:      []entity.SaleLine{{ProductID: "P002", Quantity: 1}, {ProductID: "P005", Quantity: 1}},
			Total:         decimal.RequireFromString("34.80"),
			PaymentMethod: entity.PaymentCreditCard, Status: entity.SaleStatusCompleted,
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "V003", Date: timestamp("2023-06-03T09:45:00Z"), Customer: "C003",
			Products:      []entity.SaleLine{{ProductID: "P003", Quantity: 1}, {ProductID: "P006", Quantity: 1}},
			Total:         decimal.RequireFromString("44.40"),
			PaymentMethod: entity.PaymentYape, Status: entity.SaleStatusCompleted,
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "V004", Date: timestamp("2023-06-02T14:00:00Z"), Customer: "C004",
			Products:      []entity.SaleLine{{ProductID: "P001", Quantity: 1}, {ProductID: "P008", Quantity: 5}},
			Total:         decimal.RequireFromString("23.00"),
			PaymentMethod: entity.PaymentCash, Status: entity.SaleStatusRefunded,
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "V005", Date: timestamp("2023-06-01T11:30:00Z"), Customer: "C001",
			Products:      []entity.SaleLine{{ProductID: "P007", Quantity: 1}},
			Total:         decimal.RequireFromString("12.50"),
			PaymentMethod: entity.PaymentPlin, Status: entity.SaleStatusPending,
			CreatedAt: now, UpdatedAt: now,
		},
	}
}

func ptr(s string) *string {
	return &s
}

func date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	return &t
}

func timestamp(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}

	return t
}
