package ports

import (
	"context"
	"time"

	"github.com/mugstore/backoffice/internal/core/domain"
)

// SalesWindow aggregates completed and shipped orders over a date window.
type SalesWindow struct {
	TotalSales    float64
	OrderCount    int64
	AvgOrderValue float64
}

// PopularProduct ranks a product by how many order lines reference it.
type PopularProduct struct {
	ProductID  string
	Name       string
	OrderCount int64
}

// DashboardSnapshot is the point-in-time aggregate view behind the landing
// page. Nothing in it is cached.
type DashboardSnapshot struct {
	ActiveProductCount int64
	CustomerCount      int64
	OrderCount         int64
	RecentOrders       []*domain.Order // newest first, at most 10
	Last30Days         SalesWindow
	LowStock           []*domain.Product // quantity ≤ 10, active only, at most 10
	Popular            []PopularProduct  // at most 10
}

// DashboardRepository runs the read-only aggregation queries.
type DashboardRepository interface {
	CountActiveProducts(ctx context.Context) (int64, error)
	CountCustomers(ctx context.Context) (int64, error)
	CountOrders(ctx context.Context) (int64, error)
	RecentOrders(ctx context.Context, limit int) ([]*domain.Order, error)
	// SalesSince aggregates completed|shipped orders with created_at >= from.
	SalesSince(ctx context.Context, from time.Time) (SalesWindow, error)
	// LowStock returns active products with stock_quantity <= threshold,
	// ordered by quantity ascending then id.
	LowStock(ctx context.Context, threshold, limit int) ([]*domain.Product, error)
	// Popular ranks products by order-line count descending, then id.
	Popular(ctx context.Context, limit int) ([]PopularProduct, error)
}

// DashboardService computes the snapshot for a given reference time.
type DashboardService interface {
	Snapshot(ctx context.Context, now time.Time) (*DashboardSnapshot, error)
}
