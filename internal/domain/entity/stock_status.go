package entity

// StockLevel classifies stock against the reorder level.
type StockLevel string

const (
	StockLevelOut       StockLevel = "no stock"
	StockLevelLow       StockLevel = "low"
	StockLevelAvailable StockLevel = "available"
)

// StockSeverity is the display class paired with a StockLevel.
type StockSeverity string

const (
	SeverityCritical StockSeverity = "critical"
	SeverityWarning  StockSeverity = "warning"
	SeverityOK       StockSeverity = "ok"
)

// StockStatus is the label and severity class shown next to a product.
type StockStatus struct {
	Status StockLevel    `json:"status"`
	Class  StockSeverity `json:"class"`
}

// GetStockStatus classifies stock: <=0 is out of stock, below the reorder level is low.
func GetStockStatus(stock, reorderLevel int) StockStatus {
	switch {
	case stock <= 0:
		return StockStatus{Status: StockLevelOut, Class: SeverityCritical}
	case stock < reorderLevel:
		return StockStatus{Status: StockLevelLow, Class: SeverityWarning}
	default:
		return StockStatus{Status: StockLevelAvailable, Class: SeverityOK}
	}
}
