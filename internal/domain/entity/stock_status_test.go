package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetStockStatus(t *testing.T) {
	tests := []struct {
		name    string
		stock   int
		reorder int
		want    StockStatus
	}{
		{"negative stock", -3, 10, StockStatus{StockLevelOut, SeverityCritical}},
		{"zero stock", 0, 10, StockStatus{StockLevelOut, SeverityCritical}},
		{"below reorder", 9, 10, StockStatus{StockLevelLow, SeverityWarning}},
		{"at reorder", 10, 10, StockStatus{StockLevelAvailable, SeverityOK}},
		{"above reorder", 150, 30, StockStatus{StockLevelAvailable, SeverityOK}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetStockStatus(tt.stock, tt.reorder))
		})
	}
}

func TestProduct_NeedsReorderIncludesThreshold(t *testing.T) {
	assert.True(t, (&Product{Stock: 10, ReorderLevel: 10}).NeedsReorder())
	assert.False(t, (&Product{Stock: 11, ReorderLevel: 10}).NeedsReorder())
}
