package impl

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"time"

	"novasalud/config"
	"novasalud/internal/domain/entity"
	"novasalud/internal/domain/repository"
	"novasalud/internal/errors"
	"novasalud/internal/usecase"
	"novasalud/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

type dashboardService struct {
	productRepo      repository.ProductRepository
	customerRepo     repository.CustomerRepository
	saleRepo         repository.SaleRepository
	recentSalesLimit int
	expiryWindow     time.Duration
	location         *time.Location
	logger           *slog.Logger
	now              func() time.Time
}

// DashboardServiceParams holds dependencies for DashboardService, injected by Fx.
type DashboardServiceParams struct {
	fx.In

	ProductRepo  repository.ProductRepository
	CustomerRepo repository.CustomerRepository
	SaleRepo     repository.SaleRepository
	Config       *config.Config
	Logger       *slog.Logger
}

// NewDashboardService creates a new dashboard service instance
func NewDashboardService(params DashboardServiceParams) (usecase.DashboardUsecase, error) {
	store := params.Config.Store
	if store == nil {
		store = &config.StoreConfig{}
	}

	location, err := util.LoadLocation(store.Timezone)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load dashboard timezone")
	}

	limit := store.RecentSalesLimit
	if limit <= 0 {
		limit = 3
	}

	return &dashboardService{
		productRepo:      params.ProductRepo,
		customerRepo:     params.CustomerRepo,
		saleRepo:         params.SaleRepo,
		recentSalesLimit: limit,
		expiryWindow:     store.ExpiryWindow,
		location:         location,
		logger:           params.Logger,
		now:              time.Now,
	}, nil
}

// GetMetrics computes the dashboard figures from the committed state
func (s *dashboardService) GetMetrics(ctx context.Context) (*usecase.DashboardMetrics, error) {
	products, err := s.productRepo.ListProducts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}
	customers, err := s.customerRepo.ListCustomers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customers")
	}
	sales, err := s.saleRepo.ListSales(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sales")
	}

	now := s.now()
	metrics := &usecase.DashboardMetrics{
		CustomerCount:    len(customers),
		ProductCount:     len(products),
		LowStockProducts: []*entity.Product{},
		ExpiringProducts: []*entity.Product{},
		GeneratedAt:      now,
	}

	expiryCutoff := now.Add(s.expiryWindow)
	for _, p := range products {
		switch p.StockStatus().Status {
		case entity.StockLevelOut:
			metrics.StockBreakdown.NoStock++
		case entity.StockLevelLow:
			metrics.StockBreakdown.Low++
		default:
			metrics.StockBreakdown.Available++
		}
		if p.Stock <= 0 {
			metrics.OutOfStockCount++
		}
		if p.NeedsReorder() {
			metrics.LowStockProducts = append(metrics.LowStockProducts, p)
		}
		if s.expiryWindow > 0 && p.ExpiryDate != nil && p.ExpiryDate.Before(expiryCutoff) {
			metrics.ExpiringProducts = append(metrics.ExpiringProducts, p)
		}
	}
	slices.SortStableFunc(metrics.ExpiringProducts, func(a, b *entity.Product) int {
		return a.ExpiryDate.Compare(*b.ExpiryDate)
	})

	total := decimal.Zero
	for _, sale := range sales {
		if sale.IsRefunded() {
			continue
		}
		total = total.Add(sale.Total)
		metrics.OrderCount++
	}
	metrics.TotalSales = total
	metrics.TotalSalesFormatted = util.FormatCurrency(total)

	names := make(map[string]string, len(customers))
	for _, c := range customers {
		names[c.ID] = c.Name
	}
	metrics.RecentSales = s.recentSales(sales, names, now)

	return metrics, nil
}

// recentSales returns the newest sales by business date, ties broken by insertion order.
func (s *dashboardService) recentSales(sales []*entity.Sale, names map[string]string, now time.Time) []usecase.RecentSale {
	sorted := slices.Clone(sales)
	slices.SortStableFunc(sorted, func(a, b *entity.Sale) int {
		return cmp.Compare(b.Date.UnixNano(), a.Date.UnixNano())
	})
	if len(sorted) > s.recentSalesLimit {
		sorted = sorted[:s.recentSalesLimit]
	}

	recent := make([]usecase.RecentSale, 0, len(sorted))
	for _, sale := range sorted {
		name, ok := names[sale.Customer]
		if !ok {
			name = usecase.UnknownCustomerName
		}
		recent = append(recent, usecase.RecentSale{
			ID:             sale.ID,
			CustomerName:   name,
			Total:          sale.Total,
			TotalFormatted: util.FormatCurrency(sale.Total),
			Date:           sale.Date,
			DateFormatted:  util.FormatDate(sale.Date, s.location),
			TimeAgo:        util.FormatTimeAgo(sale.Date, now),
			Status:         sale.Status,
		})
	}

	return recent
}
