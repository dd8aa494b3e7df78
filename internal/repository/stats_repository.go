package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"bistro/internal/model"
)

// StatsRepository runs the read-only reporting queries.
type StatsRepository interface {
	CountMenuItems(ctx context.Context) (int64, error)
	CountPayments(ctx context.Context) (int64, error)
	CountUsers(ctx context.Context) (int64, error)
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
	OrderStats(ctx context.Context) ([]model.CategoryStat, error)
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new stats repository.
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) count(ctx context.Context, m interface{}) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(m).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *statsRepository) CountMenuItems(ctx context.Context) (int64, error) {
	return r.count(ctx, &model.MenuItem{})
}

func (r *statsRepository) CountPayments(ctx context.Context) (int64, error) {
	return r.count(ctx, &model.Payment{})
}

func (r *statsRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, &model.User{})
}

// TotalRevenue sums every payment. An empty table yields zero.
func (r *statsRepository) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	row := r.db.WithContext(ctx).Model(&model.Payment{}).Select("COALESCE(SUM(price), 0)").Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// OrderStats joins every purchased menu item id against the menu and
// groups the matches by category. Ids with no menu row are dropped by the
// inner join.
func (r *statsRepository) OrderStats(ctx context.Context) ([]model.CategoryStat, error) {
	var stats []model.CategoryStat
	err := r.db.WithContext(ctx).
		Table("payment_menu_items AS pmi").
		Select("m.category AS category, COUNT(*) AS count, COALESCE(SUM(m.price), 0) AS revenue").
		Joins("JOIN menu_items AS m ON m.id = pmi.menu_item_id").
		Group("m.category").
		Order("m.category").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
