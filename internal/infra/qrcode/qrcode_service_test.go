package qrcode

import (
	"bytes"
	"encoding/json"
	"image/png"
	"testing"

	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoveryLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected qrcode.RecoveryLevel
	}{
		{"L", qrcode.Low},
		{"M", qrcode.Medium},
		{"Q", qrcode.High},
		{"H", qrcode.Highest},
		{"invalid", qrcode.Medium},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, recoveryLevel(tt.level))
		})
	}
}

func TestLabelService_GenerateProductLabel(t *testing.T) {
	service := NewLabelService(128, "M")
	barcode := "7501234567890"

	pngBytes, err := service.GenerateProductLabel("P001", &barcode)
	require.NoError(t, err)
	require.NotEmpty(t, pngBytes)

	img, err := png.Decode(bytes.NewReader(pngBytes))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
}

func TestLabelService_GenerateProductLabelRequiresID(t *testing.T) {
	service := NewLabelService(0, "")

	_, err := service.GenerateProductLabel("", nil)
	assert.Error(t, err)
}

func TestLabelService_ParseProductLabel(t *testing.T) {
	service := NewLabelService(256, "M")
	barcode := "7501234567890"
	payload, err := json.Marshal(LabelData{ProductID: "P001", Barcode: &barcode, Type: "product"})
	require.NoError(t, err)

	productID, err := service.ParseProductLabel(string(payload))
	require.NoError(t, err)
	assert.Equal(t, "P001", productID)
}

func TestLabelService_ParseProductLabelErrors(t *testing.T) {
	service := NewLabelService(256, "M")

	tests := []struct {
		name    string
		payload string
	}{
		{"invalid json", "{"},
		{"wrong type", `{"product_id":"P001","type":"subscription"}`},
		{"missing id", `{"type":"product"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ParseProductLabel(tt.payload)
			assert.Error(t, err)
		})
	}
}
