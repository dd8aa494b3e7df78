package repository

import (
	"context"

	"gorm.io/gorm"

	"bistro/internal/model"
)

// MenuFilter narrows a menu listing.
type MenuFilter struct {
	Category string
}

// MenuRepository defines menu persistence operations.
type MenuRepository interface {
	List(ctx context.Context, filter MenuFilter) ([]model.MenuItem, error)
	FindByID(ctx context.Context, id string) (*model.MenuItem, error)
	Create(ctx context.Context, item *model.MenuItem) error
	Update(ctx context.Context, id string, patch model.MenuItemPatch) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type menuRepository struct {
	db *gorm.DB
}

// NewMenuRepository creates a new menu repository.
func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

// List returns menu items, newest first.
func (r *menuRepository) List(ctx context.Context, filter MenuFilter) ([]model.MenuItem, error) {
	q := r.db.WithContext(ctx)
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	var items []model.MenuItem
	if err := q.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID finds a menu item by ID.
func (r *menuRepository) FindByID(ctx context.Context, id string) (*model.MenuItem, error) {
	var item model.MenuItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Create creates a new menu item.
func (r *menuRepository) Create(ctx context.Context, item *model.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Update applies a partial update and returns the number of rows changed.
func (r *menuRepository) Update(ctx context.Context, id string, patch model.MenuItemPatch) (int64, error) {
	cols := patch.Columns()
	if len(cols) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Model(&model.MenuItem{}).Where("id = ?", id).Updates(cols)
	return res.RowsAffected, res.Error
}

// Delete removes a menu item and returns the number of rows removed.
func (r *menuRepository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.MenuItem{})
	return res.RowsAffected, res.Error
}
