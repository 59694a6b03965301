package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/mugstore/backoffice/internal/core/ports"
)

const (
	dashboardTopN     = 10
	lowStockThreshold = 10
	salesWindowDays   = 30
)

// DashboardService assembles the point-in-time aggregate snapshot. Every call
// hits storage; nothing is cached. Reads bypass the audit trail.
type DashboardService struct {
	repo   ports.DashboardRepository
	logger zerolog.Logger
}

func NewDashboardService(repo ports.DashboardRepository, logger zerolog.Logger) *DashboardService {
	return &DashboardService{repo: repo, logger: logger}
}

// Snapshot computes the dashboard for the given reference time. The 30-day
// sales window is calendar-date granular: its lower bound is midnight UTC of
// now's date minus 30 days, inclusive of today.
func (s *DashboardService) Snapshot(ctx context.Context, now time.Time) (*ports.DashboardSnapshot, error) {
	activeProducts, err := s.repo.CountActiveProducts(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := s.repo.CountCustomers(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.repo.CountOrders(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.RecentOrders(ctx, dashboardTopN)
	if err != nil {
		return nil, err
	}

	window, err := s.repo.SalesSince(ctx, windowStart(now))
	if err != nil {
		return nil, err
	}

	lowStock, err := s.repo.LowStock(ctx, lowStockThreshold, dashboardTopN)
	if err != nil {
		return nil, err
	}
	popular, err := s.repo.Popular(ctx, dashboardTopN)
	if err != nil {
		return nil, err
	}

	return &ports.DashboardSnapshot{
		ActiveProductCount: activeProducts,
		CustomerCount:      customers,
		OrderCount:         orders,
		RecentOrders:       recent,
		Last30Days:         window,
		LowStock:           lowStock,
		Popular:            popular,
	}, nil
}

// windowStart truncates now to its UTC calendar date and steps back 30 days.
func windowStart(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return today.AddDate(0, 0, -salesWindowDays)
}
