package handler

import (
	"peer-wallet/internal/adapter/http/middleware"
	redisStore "peer-wallet/internal/adapter/storage/redis"
	"peer-wallet/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const defaultMaxBodyBytes = 1 << 20

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	AccountSvc     ports.AccountService
	WalletSvc      ports.WalletService
	ProductSvc     ports.ProductService
	TokenSvc       ports.TokenService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	MaxBodyBytes   int64 // 0 = 1 MB
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	maxBody := deps.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(maxBody))

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		rule, ok := rules[group]
		if deps.RateLimitStore == nil || !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", rl("auth_register"), authHandler.Register)
		auth.POST("/login", rl("auth_login"), authHandler.Login)
	}

	// --- JWT-authenticated routes ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)

	accountHandler := NewAccountHandler(deps.AccountSvc)
	walletHandler := NewWalletHandler(deps.WalletSvc)
	me := v1.Group("/me", jwtAuth, rl("wallet"))
	{
		me.GET("", accountHandler.GetMe)
		me.PUT("/name", accountHandler.Rename)
		me.PUT("/wallet", walletHandler.ReplaceWallet)
		me.POST("/wallet/deposit", walletHandler.Deposit)
		me.POST("/transfers", walletHandler.Transfer)
		me.POST("/divisions", walletHandler.Divide)
		me.POST("/purchases", walletHandler.Purchase)
	}

	productHandler := NewProductHandler(deps.ProductSvc)
	products := v1.Group("/products", jwtAuth, rl("products"))
	{
		products.POST("", productHandler.Create)
		products.GET("", productHandler.List)
		products.GET("/:id", productHandler.Get)
		products.PUT("/:id/name", productHandler.Rename)
		products.PUT("/:id/prices", productHandler.UpdatePrices)
		products.PUT("/:id/type", productHandler.UpdateType)
		products.GET("/:id/quote", productHandler.Quote)
	}

	return r
}
