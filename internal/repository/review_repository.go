package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bistro/internal/model"
)

// ReviewRepository defines review persistence operations.
type ReviewRepository interface {
	List(ctx context.Context) ([]model.Review, error)
	Save(ctx context.Context, review *model.Review) error
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) List(ctx context.Context) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// Save inserts the review or overwrites the existing row with the same ID.
func (r *reviewRepository) Save(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(review).Error
}
