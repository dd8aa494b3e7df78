package service

import (
	"context"
	"fmt"

	"bistro/internal/model"
	"bistro/internal/repository"
)

// AnalyticsService produces the admin dashboard reports.
type AnalyticsService interface {
	AdminStats(ctx context.Context) (*model.AdminStats, error)
	OrderStats(ctx context.Context) ([]model.CategoryStat, error)
}

type analyticsService struct {
	repo repository.StatsRepository
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(repo repository.StatsRepository) AnalyticsService {
	return &analyticsService{repo: repo}
}

// AdminStats counts menu items, payments and users and sums revenue. The
// reads are independent, so the figures may not describe a single instant.
func (s *analyticsService) AdminStats(ctx context.Context) (*model.AdminStats, error) {
	menuItems, err := s.repo.CountMenuItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("count menu items: %w", err)
	}
	orders, err := s.repo.CountPayments(ctx)
	if err != nil {
		return nil, fmt.Errorf("count payments: %w", err)
	}
	users, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	revenue, err := s.repo.TotalRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}

	return &model.AdminStats{
		MenuItems: menuItems,
		Orders:    orders,
		Users:     users,
		Revenue:   revenue,
	}, nil
}

// OrderStats groups purchased menu items by category. Ids that no longer
// match a menu item are left out.
func (s *analyticsService) OrderStats(ctx context.Context) ([]model.CategoryStat, error) {
	stats, err := s.repo.OrderStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("order stats: %w", err)
	}
	if stats == nil {
		stats = []model.CategoryStat{}
	}
	return stats, nil
}
