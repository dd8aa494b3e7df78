package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"bistro/internal/cache"
	apperrors "bistro/internal/errors"
	"bistro/internal/model"
	"bistro/internal/repository"
)

const (
	menuCacheTTL     = 5 * time.Minute
	menuListCacheKey = "menu:list"
)

// MenuService exposes the public menu and its admin operations.
type MenuService interface {
	ListMenu(ctx context.Context, category string) ([]model.MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (*model.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *model.MenuItem) (*model.InsertResult, error)
	UpdateMenuItem(ctx context.Context, id string, patch model.MenuItemPatch) (*model.UpdateResult, error)
	DeleteMenuItem(ctx context.Context, id string) (*model.DeleteResult, error)
}

type menuService struct {
	repo  repository.MenuRepository
	cache *cache.Client
}

// NewMenuService builds a MenuService with repository and cache.
func NewMenuService(repo repository.MenuRepository, cache *cache.Client) MenuService {
	return &menuService{repo: repo, cache: cache}
}

func menuItemCacheKey(id string) string {
	return fmt.Sprintf("menu:item:%s", id)
}

// CatalogCacheKeys returns the keys that go stale when menu items with the
// given ids or the reviews are written without going through the services.
func CatalogCacheKeys(menuIDs ...string) []string {
	keys := []string{menuListCacheKey, reviewListCacheKey}
	for _, id := range menuIDs {
		if id != "" {
			keys = append(keys, menuItemCacheKey(id))
		}
	}
	return keys
}

// ListMenu returns items newest first. Only the unfiltered list is cached.
func (s *menuService) ListMenu(ctx context.Context, category string) ([]model.MenuItem, error) {
	if category == "" {
		var cached []model.MenuItem
		if s.cache.GetJSON(ctx, menuListCacheKey, &cached) {
			return cached, nil
		}
	}

	items, err := s.repo.List(ctx, repository.MenuFilter{Category: category})
	if err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}
	if items == nil {
		items = []model.MenuItem{}
	}

	if category == "" {
		s.cache.SetJSON(ctx, menuListCacheKey, items, menuCacheTTL)
	}
	return items, nil
}

func (s *menuService) GetMenuItem(ctx context.Context, id string) (*model.MenuItem, error) {
	var cached model.MenuItem
	if s.cache.GetJSON(ctx, menuItemCacheKey(id), &cached) {
		return &cached, nil
	}

	item, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find menu item: %w", err)
	}

	s.cache.SetJSON(ctx, menuItemCacheKey(id), item, menuCacheTTL)
	return item, nil
}

func (s *menuService) CreateMenuItem(ctx context.Context, item *model.MenuItem) (*model.InsertResult, error) {
	if !item.Price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be positive", apperrors.ErrInvalidInput)
	}

	item.ID = ""
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create menu item: %w", err)
	}
	s.invalidate(ctx, item.ID)

	return &model.InsertResult{Acknowledged: true, InsertedID: item.ID}, nil
}

func (s *menuService) UpdateMenuItem(ctx context.Context, id string, patch model.MenuItemPatch) (*model.UpdateResult, error) {
	if patch.Price != nil && !patch.Price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be positive", apperrors.ErrInvalidInput)
	}

	affected, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update menu item: %w", err)
	}
	s.invalidate(ctx, id)

	return &model.UpdateResult{Acknowledged: true, ModifiedCount: affected}, nil
}

func (s *menuService) DeleteMenuItem(ctx context.Context, id string) (*model.DeleteResult, error) {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete menu item: %w", err)
	}
	s.invalidate(ctx, id)

	return &model.DeleteResult{Acknowledged: true, DeletedCount: affected}, nil
}

func (s *menuService) invalidate(ctx context.Context, id string) {
	_ = s.cache.Delete(ctx, menuListCacheKey, menuItemCacheKey(id))
}
