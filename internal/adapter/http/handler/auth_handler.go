package handler

import (
	"context"
	"net/http"
	"time"

	"peer-wallet/internal/adapter/http/dto"
	"peer-wallet/internal/core/ports"
	"peer-wallet/pkg/response"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authSvc ports.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authSvc ports.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	account, err := h.authSvc.Register(c.Request.Context(), ports.RegisterRequest{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Currency: req.Currency,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toAccountResponse(account))
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	token, expiry, err := h.authSvc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.LoginResponse{
		Token:     token,
		ExpiresAt: timestamp(expiry),
	})
}

// HealthCheck handles GET /health. Every dependency is pinged under a
// shared timeout; any failure turns the answer into 503.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		resp := dto.HealthResponse{Status: "healthy", Checks: make(map[string]string, len(checkers))}
		code := http.StatusOK
		for _, checker := range checkers {
			if err := checker.Ping(ctx); err != nil {
				resp.Checks[checker.Name()] = err.Error()
				resp.Status = "degraded"
				code = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[checker.Name()] = "ok"
		}

		c.JSON(code, resp)
	}
}
