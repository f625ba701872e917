package usecase

import (
	"context"
	"time"

	"novasalud/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// RecentSale is a dashboard row for one of the latest sales
type RecentSale struct {
	ID             string            `json:"id"`
	CustomerName   string            `json:"customer_name"`
	Total          decimal.Decimal   `json:"total"`
	TotalFormatted string            `json:"total_formatted"`
	Date           time.Time         `json:"date"`
	DateFormatted  string            `json:"date_formatted"`
	TimeAgo        string            `json:"time_ago"`
	Status         entity.SaleStatus `json:"status"`
}

// StockBreakdown counts products per stock level
type StockBreakdown struct {
	Available int `json:"available"`
	Low       int `json:"low"`
	NoStock   int `json:"no_stock"`
}

// DashboardMetrics aggregates the figures shown on the dashboard
type DashboardMetrics struct {
	TotalSales          decimal.Decimal   `json:"total_sales"`
	TotalSalesFormatted string            `json:"total_sales_formatted"`
	OrderCount          int               `json:"order_count"`
	CustomerCount       int               `json:"customer_count"`
	ProductCount        int               `json:"product_count"`
	LowStockProducts    []*entity.Product `json:"low_stock_products"`
	OutOfStockCount     int               `json:"out_of_stock_count"`
	RecentSales         []RecentSale      `json:"recent_sales"`
	StockBreakdown      StockBreakdown    `json:"stock_breakdown"`
	ExpiringProducts    []*entity.Product `json:"expiring_products"`
	GeneratedAt         time.Time         `json:"generated_at"`
}

// DashboardUsecase defines the interface for dashboard queries
type DashboardUsecase interface {
	// GetMetrics computes the dashboard figures from the committed state
	GetMetrics(ctx context.Context) (*DashboardMetrics, error)
}
