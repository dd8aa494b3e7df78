package service

import (
	"context"
	"fmt"
	"time"

	"bistro/internal/cache"
	"bistro/internal/model"
	"bistro/internal/repository"
)

const (
	reviewCacheTTL     = 10 * time.Minute
	reviewListCacheKey = "reviews:list"
)

// ReviewService exposes the read-only review list.
type ReviewService interface {
	ListReviews(ctx context.Context) ([]model.Review, error)
}

type reviewService struct {
	repo  repository.ReviewRepository
	cache *cache.Client
}

// NewReviewService builds a ReviewService with repository and cache.
func NewReviewService(repo repository.ReviewRepository, cache *cache.Client) ReviewService {
	return &reviewService{repo: repo, cache: cache}
}

func (s *reviewService) ListReviews(ctx context.Context) ([]model.Review, error) {
	var cached []model.Review
	if s.cache.GetJSON(ctx, reviewListCacheKey, &cached) {
		return cached, nil
	}

	reviews, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	if reviews == nil {
		reviews = []model.Review{}
	}

	s.cache.SetJSON(ctx, reviewListCacheKey, reviews, reviewCacheTTL)
	return reviews, nil
}
