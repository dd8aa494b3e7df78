package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"bistro/internal/cache"
	"bistro/internal/config"
	"bistro/internal/db"
	"bistro/internal/logger"
	"bistro/internal/model"
	"bistro/internal/repository"
	"bistro/internal/service"
)

// SeedMenuItem is one menu entry in the seed file.
type SeedMenuItem struct {
	ID       string          `json:"_id"`
	Name     string          `json:"name"`
	Recipe   string          `json:"recipe"`
	Image    string          `json:"image"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
}

// SeedReview is one review in the seed file.
type SeedReview struct {
	ID      string  `json:"_id"`
	Name    string  `json:"name"`
	Details string  `json:"details"`
	Rating  float64 `json:"rating"`
}

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	zlog.Info("starting seed")

	gormDB, err := db.NewMySQL(cfg.MySQLDSN, false)
	if err != nil {
		zlog.Fatal("connect to database", zap.Error(err))
	}
	defer db.Close(gormDB)

	if err := db.Migrate(gormDB, false); err != nil {
		zlog.Fatal("run migrations", zap.Error(err))
	}

	ctx := context.Background()

	var menu []SeedMenuItem
	if err := readSource(ctx, cfg.SeedMenuSource, &menu); err != nil {
		zlog.Fatal("load menu", zap.String("source", cfg.SeedMenuSource), zap.Error(err))
	}
	created, updated, skipped, err := seedMenu(ctx, repository.NewMenuRepository(gormDB), menu)
	if err != nil {
		zlog.Fatal("seed menu", zap.Error(err))
	}
	zlog.Info("menu seeded",
		zap.Int("created", created),
		zap.Int("updated", updated),
		zap.Int("skipped", skipped),
	)

	var reviews []SeedReview
	if err := readSource(ctx, cfg.SeedReviewSource, &reviews); err != nil {
		zlog.Fatal("load reviews", zap.String("source", cfg.SeedReviewSource), zap.Error(err))
	}
	saved, err := seedReviews(ctx, repository.NewReviewRepository(gormDB), reviews)
	if err != nil {
		zlog.Fatal("seed reviews", zap.Error(err))
	}
	zlog.Info("reviews seeded", zap.Int("saved", saved))

	// A running server would otherwise serve the old catalog until the TTLs expire.
	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if err := cacheClient.Ping(ctx); err != nil {
		zlog.Warn("redis unavailable, cached catalog not cleared", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		return
	}
	keys := staleCacheKeys(menu)
	_ = cacheClient.Delete(ctx, keys...)
	zlog.Info("catalog cache cleared", zap.Int("keys", len(keys)))
}

// staleCacheKeys lists the cache entries a seed run may have invalidated.
func staleCacheKeys(items []SeedMenuItem) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return service.CatalogCacheKeys(ids...)
}

// readSource decodes a JSON array from a local file or an http(s) URL.
func readSource(ctx context.Context, source string, dst interface{}) error {
	var body []byte
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", source, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("fetch %s: status %d", source, resp.StatusCode)
		}
		if body, err = io.ReadAll(resp.Body); err != nil {
			return fmt.Errorf("read response body: %w", err)
		}
	} else {
		var err error
		if body, err = os.ReadFile(source); err != nil {
			return fmt.Errorf("read %s: %w", source, err)
		}
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("parse JSON: %w", err)
	}
	return nil
}

// seedMenu creates new menu items or updates existing ones by id. Items
// without a name, category or positive price are skipped.
func seedMenu(ctx context.Context, repo repository.MenuRepository, items []SeedMenuItem) (created, updated, skipped int, err error) {
	for _, item := range items {
		if item.Name == "" || item.Category == "" || !item.Price.IsPositive() {
			skipped++
			continue
		}

		var existing *model.MenuItem
		if item.ID != "" {
			existing, err = repo.FindByID(ctx, item.ID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return created, updated, skipped, fmt.Errorf("check menu item %s: %w", item.ID, err)
			}
		}

		if existing != nil {
			patch := model.MenuItemPatch{
				Name:     &item.Name,
				Price:    &item.Price,
				Category: &item.Category,
				Recipe:   &item.Recipe,
				Image:    &item.Image,
			}
			if _, err := repo.Update(ctx, item.ID, patch); err != nil {
				return created, updated, skipped, fmt.Errorf("update menu item %s: %w", item.ID, err)
			}
			updated++
			continue
		}

		record := &model.MenuItem{
			ID:       item.ID,
			Name:     item.Name,
			Recipe:   item.Recipe,
			Image:    item.Image,
			Category: item.Category,
			Price:    item.Price,
		}
		if err := repo.Create(ctx, record); err != nil {
			return created, updated, skipped, fmt.Errorf("create menu item %s: %w", item.Name, err)
		}
		created++
	}

	return created, updated, skipped, nil
}

// seedReviews upserts every review by id.
func seedReviews(ctx context.Context, repo repository.ReviewRepository, reviews []SeedReview) (int, error) {
	saved := 0
	for _, r := range reviews {
		review := &model.Review{
			ID:      r.ID,
			Name:    r.Name,
			Details: r.Details,
			Rating:  r.Rating,
		}
		if err := repo.Save(ctx, review); err != nil {
			return saved, fmt.Errorf("save review %s: %w", r.Name, err)
		}
		saved++
	}
	return saved, nil
}
