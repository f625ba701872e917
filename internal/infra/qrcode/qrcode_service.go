// Package qrcode renders printable shelf labels for products.
package qrcode

import (
	"encoding/json"

	"novasalud/internal/domain/service"
	"novasalud/internal/errors"

	"github.com/skip2/go-qrcode"
)

const (
	labelType   = "product"
	defaultSize = 256
)

type labelService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// LabelData is the JSON payload encoded in a product label.
type LabelData struct {
	ProductID string  `json:"product_id"`
	Barcode   *string `json:"barcode,omitempty"`
	Type      string  `json:"type"`
}

// NewLabelService creates a new label service instance
func NewLabelService(size int, errorCorrectionLevel string) service.LabelService {
	if size <= 0 {
		size = defaultSize
	}

	return &labelService{
		size:                 size,
		errorCorrectionLevel: recoveryLevel(errorCorrectionLevel),
	}
}

func recoveryLevel(level string) qrcode.RecoveryLevel {
	switch level {
	case "L":
		return qrcode.Low
	case "Q":
		return qrcode.High
	case "H":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// GenerateProductLabel renders a PNG QR code identifying the product
func (s *labelService) GenerateProductLabel(productID string, barcode *string) ([]byte, error) {
	if productID == "" {
		return nil, errors.New("product ID is required")
	}

	payload, err := json.Marshal(LabelData{
		ProductID: productID,
		Barcode:   barcode,
		Type:      labelType,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal label data")
	}

	code, err := qrcode.New(string(payload), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	png, err := code.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return png, nil
}

// ParseProductLabel parses label payload text and returns the product ID
func (s *labelService) ParseProductLabel(payload string) (string, error) {
	var data LabelData
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return "", errors.Wrap(err, "failed to unmarshal label data")
	}

	if data.Type != labelType {
		return "", errors.Errorf("invalid label type: %s", data.Type)
	}
	if data.ProductID == "" {
		return "", errors.New("label has no product ID")
	}

	return data.ProductID, nil
}
