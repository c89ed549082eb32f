package handler

import (
	"peer-wallet/internal/adapter/http/dto"
	"peer-wallet/internal/core/ports"
	"peer-wallet/pkg/apperror"
	"peer-wallet/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"

	maxIdempotencyKeyLen = 128
)

// WalletHandler handles the money-moving endpoints of the caller.
type WalletHandler struct {
	walletSvc ports.WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc ports.WalletService) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc}
}

// ReplaceWallet handles PUT /api/v1/me/wallet. The current balance is lost.
func (h *WalletHandler) ReplaceWallet(c *gin.Context) {
	personID, ok := currentPerson(c)
	if !ok {
		return
	}
	var req dto.ReplaceWalletRequest
	if !bindJSON(c, &req) {
		return
	}

	account, err := h.walletSvc.ReplaceWallet(c.Request.Context(), personID, req.Currency)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toAccountResponse(account))
}

// Deposit handles POST /api/v1/me/wallet/deposit.
func (h *WalletHandler) Deposit(c *gin.Context) {
	personID, ok := currentPerson(c)
	if !ok {
		return
	}
	var req dto.DepositRequest
	if !bindJSON(c, &req) {
		return
	}
	amount, ok := parseAmount(c, req.Amount)
	if !ok {
		return
	}

	account, err := h.walletSvc.Deposit(c.Request.Context(), personID, amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toAccountResponse(account))
}

// Transfer handles POST /api/v1/me/transfers. An Idempotency-Key header
// makes retries return the first result.
func (h *WalletHandler) Transfer(c *gin.Context) {
	personID, ok := currentPerson(c)
	if !ok {
		return
	}
	idemKey := c.GetHeader(HeaderIdempotencyKey)
	if len(idemKey) > maxIdempotencyKeyLen {
		response.Error(c, apperror.Validation("Idempotency-Key is too long"))
		return
	}
	var req dto.TransferRequest
	if !bindJSON(c, &req) {
		return
	}
	toID, ok := parseID(c, req.ToID, "to_id")
	if !ok {
		return
	}
	amount, ok := parseAmount(c, req.Amount)
	if !ok {
		return
	}

	result, err := h.walletSvc.Transfer(c.Request.Context(), ports.TransferRequest{
		FromID:         personID,
		ToID:           toID,
		Amount:         amount,
		IdempotencyKey: idemKey,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.TransferResponse{
		FromID:      result.FromID.String(),
		ToID:        result.ToID.String(),
		Amount:      money(result.Amount),
		Currency:    result.Currency,
		FromBalance: money(result.FromBalance),
	})
}

// Divide handles POST /api/v1/me/divisions.
func (h *WalletHandler) Divide(c *gin.Context) {
	personID, ok := currentPerson(c)
	if !ok {
		return
	}
	var req dto.DivideRequest
	if !bindJSON(c, &req) {
		return
	}

	recipients := make([]uuid.UUID, 0, len(req.RecipientIDs))
	for _, raw := range req.RecipientIDs {
		id, ok := parseID(c, raw, "recipient_ids")
		if !ok {
			return
		}
		recipients = append(recipients, id)
	}

	result, err := h.walletSvc.Divide(c.Request.Context(), ports.DivideRequest{
		FromID:       personID,
		RecipientIDs: recipients,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.DivideResponse{
		Part:       money(result.Part),
		Recipients: result.Recipients,
		Account:    toAccountResponse(result.Account),
	})
}

// Purchase handles POST /api/v1/me/purchases.
func (h *WalletHandler) Purchase(c *gin.Context) {
	personID, ok := currentPerson(c)
	if !ok {
		return
	}
	var req dto.PurchaseRequest
	if !bindJSON(c, &req) {
		return
	}

	productID, ok := parseID(c, req.ProductID, "product_id")
	if !ok {
		return
	}

	result, err := h.walletSvc.Buy(c.Request.Context(), ports.BuyRequest{
		PersonID:  personID,
		ProductID: productID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.PurchaseResponse{
		Product: toProductResponse(result.Product),
		Paid:    money(result.Paid),
		Account: toAccountResponse(result.Account),
	})
}
