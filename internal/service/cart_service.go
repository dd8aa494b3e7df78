package service

import (
	"context"
	"fmt"

	apperrors "bistro/internal/errors"
	"bistro/internal/model"
	"bistro/internal/repository"
)

// CartService manages a user's open cart entries.
type CartService interface {
	ListCart(ctx context.Context, email string) ([]model.CartEntry, error)
	AddToCart(ctx context.Context, entry *model.CartEntry) (*model.InsertResult, error)
	RemoveFromCart(ctx context.Context, id, email string) (*model.DeleteResult, error)
}

type cartService struct {
	repo repository.CartRepository
}

// NewCartService builds a CartService.
func NewCartService(repo repository.CartRepository) CartService {
	return &cartService{repo: repo}
}

// ListCart returns the entries owned by email. An empty email yields an
// empty cart, never every user's entries.
func (s *cartService) ListCart(ctx context.Context, email string) ([]model.CartEntry, error) {
	if email == "" {
		return []model.CartEntry{}, nil
	}
	entries, err := s.repo.ListByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	if entries == nil {
		entries = []model.CartEntry{}
	}
	return entries, nil
}

func (s *cartService) AddToCart(ctx context.Context, entry *model.CartEntry) (*model.InsertResult, error) {
	if entry.Email == "" || entry.MenuItemID == "" {
		return nil, fmt.Errorf("%w: email and menuId are required", apperrors.ErrInvalidInput)
	}
	if entry.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", apperrors.ErrInvalidInput)
	}

	entry.ID = ""
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("add to cart: %w", err)
	}
	return &model.InsertResult{Acknowledged: true, InsertedID: entry.ID}, nil
}

// RemoveFromCart deletes one entry, only if email owns it.
func (s *cartService) RemoveFromCart(ctx context.Context, id, email string) (*model.DeleteResult, error) {
	affected, err := s.repo.DeleteOwned(ctx, id, email)
	if err != nil {
		return nil, fmt.Errorf("remove from cart: %w", err)
	}
	return &model.DeleteResult{Acknowledged: true, DeletedCount: affected}, nil
}
