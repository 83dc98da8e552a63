package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/homecook/config"
	"github.com/d60-Lab/homecook/internal/api"
	"github.com/d60-Lab/homecook/internal/api/handler"
	"github.com/d60-Lab/homecook/internal/notify"
	"github.com/d60-Lab/homecook/internal/repository"
	"github.com/d60-Lab/homecook/internal/service"
	"github.com/d60-Lab/homecook/pkg/database"
	"github.com/d60-Lab/homecook/pkg/logger"
	"github.com/d60-Lab/homecook/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Server.Mode); err != nil {
		fmt.Fprintln(os.Stderr, "init logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	if cfg.Tracing.Endpoint != "" {
		shutdown, err := tracing.Init(ctx, cfg)
		if err != nil {
			logger.Warn("tracing init failed", zap.Error(err))
		} else {
			defer shutdown(context.Background())
		}
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Error("init database", zap.Error(err))
		os.Exit(1)
	}

	var cache *redis.Client
	if cfg.Redis.Enabled {
		cache = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := cache.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, running without cache", zap.Error(err))
			cache = nil
		}
	}

	if err := os.MkdirAll(cfg.Server.UploadDir, 0o755); err != nil {
		logger.Error("create upload dir", zap.Error(err))
		os.Exit(1)
	}

	// 推送 hub 在启动时构造一次，显式传给需要发布的服务
	hub := notify.NewHub(cfg.Notify.Buffer)

	userRepo := repository.NewUserRepository(db)
	dishRepo := repository.NewDishRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)

	userSvc := service.NewUserService(userRepo, service.AuthConfig{Secret: cfg.JWT.Secret, TTL: cfg.JWT.TTL})
	dishSvc := service.NewDishService(dishRepo, userRepo, addressRepo, cache, cfg.Redis.CacheTTL)
	addressSvc := service.NewAddressService(addressRepo, userRepo)
	orderSvc := service.NewOrderService(orderRepo, dishRepo, addressRepo, hub)
	paymentSvc := service.NewPaymentService(orderRepo, hub, cfg.Stripe.SecretKey, service.PaymentConfig{
		WebhookSecret: cfg.Stripe.WebhookSecret,
		Currency:      cfg.Stripe.Currency,
		SuccessURL:    cfg.Stripe.SuccessURL,
		CancelURL:     cfg.Stripe.CancelURL,
	}, nil)
	wishlistSvc := service.NewWishlistService(wishlistRepo)
	messageSvc := service.NewMessageService(messageRepo, hub)

	h := handler.New(userSvc, dishSvc, addressSvc, orderSvc, paymentSvc, wishlistSvc, messageSvc, hub, cfg.Server.UploadDir)
	router := api.NewRouter(cfg, h)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Info("server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
