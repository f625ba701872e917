package service

// LabelService defines the interface for product label generation
type LabelService interface {
	// GenerateProductLabel renders a QR code PNG identifying the product
	GenerateProductLabel(productID string, barcode *string) ([]byte, error)

	// ParseProductLabel decodes label payload text back into the product ID
	ParseProductLabel(payload string) (string, error)
}
