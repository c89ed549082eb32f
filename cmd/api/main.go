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

	"peer-wallet/config"
	httpHandler "peer-wallet/internal/adapter/http/handler"
	pgStorage "peer-wallet/internal/adapter/storage/postgres"
	redisStorage "peer-wallet/internal/adapter/storage/redis"
	"peer-wallet/internal/core/ports"
	"peer-wallet/internal/service"
	"peer-wallet/pkg/logger"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("PWL_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	gin.SetMode(cfg.Server.Mode)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting peer wallet API")

	ctx := context.Background()

	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := pgStorage.EnsureSchema(ctx, pool, log); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply database schema")
		}
	}

	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// Repositories
	accountRepo := pgStorage.NewAccountRepo(pool)
	productRepo := pgStorage.NewProductRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Redis stores
	productCache := redisStorage.NewProductCache(rdb)
	idempotencyCache := redisStorage.NewIdempotencyCache(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Core services
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	// Business services
	authSvc := service.NewAuthService(accountRepo, hashSvc, tokenSvc, logger.Component(log, "auth"))
	accountSvc := service.NewAccountService(accountRepo, logger.Component(log, "account"))
	walletSvc := service.NewWalletService(
		accountRepo,
		productRepo,
		idempotencyCache,
		transactor,
		cfg.Wallet,
		logger.Component(log, "wallet"),
	)
	productSvc := service.NewProductService(productRepo, transactor, productCache, cfg.Cache.ProductTTL, logger.Component(log, "product"))

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		AccountSvc:     accountSvc,
		WalletSvc:      walletSvc,
		ProductSvc:     productSvc,
		TokenSvc:       tokenSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{
			pgStorage.NewHealthCheck(pool),
			redisStorage.NewHealthCheck(rdb),
		},
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		Logger:       logger.Component(log, "http"),
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
