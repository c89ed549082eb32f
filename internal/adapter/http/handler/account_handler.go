package handler

import (
	"peer-wallet/internal/adapter/http/dto"
	"peer-wallet/internal/core/ports"
	"peer-wallet/pkg/response"

	"github.com/gin-gonic/gin"
)

// AccountHandler serves the caller's own profile.
type AccountHandler struct {
	accountSvc ports.AccountService
}

func NewAccountHandler(accountSvc ports.AccountService) *AccountHandler {
	return &AccountHandler{accountSvc: accountSvc}
}

// GetMe handles GET /api/v1/me.
func (h *AccountHandler) GetMe(c *gin.Context) {
	personID, ok := currentPerson(c)
	if !ok {
		return
	}

	account, err := h.accountSvc.GetAccount(c.Request.Context(), personID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toAccountResponse(account))
}

// Rename handles PUT /api/v1/me/name.
func (h *AccountHandler) Rename(c *gin.Context) {
	personID, ok := currentPerson(c)
	if !ok {
		return
	}
	var req dto.RenameRequest
	if !bindJSON(c, &req) {
		return
	}

	account, err := h.accountSvc.Rename(c.Request.Context(), personID, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toAccountResponse(account))
}
