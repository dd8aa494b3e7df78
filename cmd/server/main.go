package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"bistro/docs"
	"bistro/internal/auth"
	"bistro/internal/cache"
	"bistro/internal/config"
	"bistro/internal/db"
	"bistro/internal/gateway"
	"bistro/internal/guard"
	"bistro/internal/handler"
	"bistro/internal/logger"
	"bistro/internal/repository"
	"bistro/internal/router"
	"bistro/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title Bistro Boss API
// @version 1.0
// @description Restaurant ordering API with menu, carts, Stripe checkout and admin analytics.
// @host localhost:5000
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if err := run(cfg, zlog); err != nil {
		zlog.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	gormDB, err := db.NewMySQL(cfg.MySQLDSN, cfg.LogLevel == "debug")
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			zlog.Warn("close database", zap.Error(err))
		}
	}()

	if cfg.ResetDB {
		zlog.Warn("RESET_DB=true detected, dropping all tables")
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		return err
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		zlog.Warn("redis unavailable, serving without cache", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}
	cancelPing()

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	menuRepo := repository.NewMenuRepository(gormDB)
	reviewRepo := repository.NewReviewRepository(gormDB)
	cartRepo := repository.NewCartRepository(gormDB)
	paymentRepo := repository.NewPaymentRepository(gormDB)
	statsRepo := repository.NewStatsRepository(gormDB)

	// Auth and payment provider
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	stripeGateway := gateway.NewStripeGateway(cfg.StripeSecretKey, gateway.WithLogger(zlog.Named("stripe")))

	// Services
	authService := service.NewAuthService(jwtService)
	userService := service.NewUserService(userRepo)
	menuService := service.NewMenuService(menuRepo, cacheClient)
	reviewService := service.NewReviewService(reviewRepo, cacheClient)
	cartService := service.NewCartService(cartRepo)
	checkoutService := service.NewCheckoutService(paymentRepo, cartRepo, stripeGateway, cfg.StripeCurrency, zlog.Named("checkout"))
	analyticsService := service.NewAnalyticsService(statsRepo)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, zlog, guard.New(jwtService, userRepo), router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		User:    handler.NewUserHandler(userService),
		Menu:    handler.NewMenuHandler(menuService),
		Review:  handler.NewReviewHandler(reviewService),
		Cart:    handler.NewCartHandler(cartService),
		Payment: handler.NewPaymentHandler(checkoutService),
		Stats:   handler.NewStatsHandler(analyticsService),
	})

	if cfg.SwaggerHost != "" {
		host := strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
		docs.SwaggerInfo.Host = host
	}
	zlog.Info("swagger documentation available", zap.String("url", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.ServerPort
		zlog.Info("server starting", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zlog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
