package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/shop-auth-service/internal/api/http"
	"github.com/spec-kit/shop-auth-service/internal/api/http/handlers"
	"github.com/spec-kit/shop-auth-service/internal/auth"
	"github.com/spec-kit/shop-auth-service/internal/config"
	"github.com/spec-kit/shop-auth-service/internal/observability"
	"github.com/spec-kit/shop-auth-service/internal/persistence"
	"github.com/spec-kit/shop-auth-service/internal/repository"
	"github.com/spec-kit/shop-auth-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	inviteRepo := repository.NewInviteRepository(pool)

	tokenMgr := auth.NewTokenManager(cfg.Auth.JWTSecret)
	tokenCache := persistence.NewProviderTokenCache(redis, 24*time.Hour)

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:   userRepo,
		InviteRepo: inviteRepo,
		TokenMgr:   tokenMgr,
	})
	userService := service.NewUserService(userRepo)
	inviteService := service.NewInviteService(inviteRepo)
	shopifyService := service.NewShopifyService(*cfg, service.ShopifyDependencies{
		UserRepo:   userRepo,
		TokenMgr:   tokenMgr,
		TokenCache: tokenCache,
		Logger:     logger,
	})
	authMiddleware := auth.NewAuthMiddleware(tokenMgr)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(authService, userService, inviteService),
		Shopify:        handlers.NewShopifyHandler(shopifyService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
