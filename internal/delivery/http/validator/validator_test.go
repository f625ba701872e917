package validator

import (
	"testing"

	"novasalud/internal/domain/entity"
	"novasalud/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestCustomValidator_Validate(t *testing.T) {
	v := New()
	shortDNI := "123"

	tests := []struct {
		name    string
		input   any
		wantErr bool
	}{
		{name: "valid product", input: &usecase.ProductInput{Name: "Loratadina 10mg", Category: entity.CategoryMedicine}},
		{name: "product without name", input: &usecase.ProductInput{Category: entity.CategoryMedicine}, wantErr: true},
		{name: "customer with bad email", input: &usecase.CustomerInput{Name: "Ana", Email: "not-an-email"}, wantErr: true},
		{name: "customer with short dni", input: &usecase.CustomerInput{Name: "Ana", DNI: &shortDNI}, wantErr: true},
		{name: "sale without lines", input: &usecase.SaleInput{PaymentMethod: entity.PaymentCash}, wantErr: true},
		{name: "login", input: &usecase.LoginInput{Operator: "farmacia", Password: "secret"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}
			assert.NoError(t, err)
		})
	}
}
