package repository

import (
	"context"

	"gorm.io/gorm"

	"bistro/internal/model"
)

// CartRepository defines cart persistence operations.
type CartRepository interface {
	ListByEmail(ctx context.Context, email string) ([]model.CartEntry, error)
	Create(ctx context.Context, entry *model.CartEntry) error
	DeleteOwned(ctx context.Context, id, email string) (int64, error)
	DeleteByIDs(ctx context.Context, email string, ids []string) (int64, error)
}

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a new cart repository.
func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// ListByEmail returns the cart entries owned by email.
func (r *cartRepository) ListByEmail(ctx context.Context, email string) ([]model.CartEntry, error) {
	var entries []model.CartEntry
	if err := r.db.WithContext(ctx).Where("email = ?", email).Order("created_at").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Create creates a new cart entry.
func (r *cartRepository) Create(ctx context.Context, entry *model.CartEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// DeleteOwned removes a single entry if it belongs to email.
func (r *cartRepository) DeleteOwned(ctx context.Context, id, email string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND email = ?", id, email).Delete(&model.CartEntry{})
	return res.RowsAffected, res.Error
}

// DeleteByIDs removes every listed entry owned by email. Unknown ids and
// entries of other owners are ignored; an empty list never reaches the database.
func (r *cartRepository) DeleteByIDs(ctx context.Context, email string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Where("id IN ? AND email = ?", ids, email).Delete(&model.CartEntry{})
	return res.RowsAffected, res.Error
}
