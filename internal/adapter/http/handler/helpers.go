package handler

import (
	"errors"
	"net/http"
	"time"

	"peer-wallet/internal/adapter/http/dto"
	"peer-wallet/internal/adapter/http/middleware"
	"peer-wallet/internal/core/domain"
	"peer-wallet/pkg/apperror"
	"peer-wallet/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// bindJSON decodes and sanitizes the body into req. On failure the error
// response is already written and false is returned.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, apperror.ErrPayloadTooLarge())
			return false
		}
		response.Error(c, apperror.Validation(err.Error()))
		return false
	}
	dto.SanitizeStruct(req)
	return true
}

// currentPerson returns the caller set by JWTAuth, writing 401 when absent.
func currentPerson(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.PersonID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return uuid.Nil, false
	}
	return id, true
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	return parseID(c, c.Param(name), name)
}

func parseID(c *gin.Context, raw, field string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		response.Error(c, apperror.Validation("invalid "+field))
		return uuid.Nil, false
	}
	return id, true
}

// parseAmount reads a money string already checked by the `money` tag.
func parseAmount(c *gin.Context, raw string) (decimal.Decimal, bool) {
	amount, err := domain.ParseAmount(raw)
	if err != nil {
		response.Error(c, apperror.ErrInvalidAmount(err))
		return decimal.Zero, false
	}
	return amount, true
}

func money(d decimal.Decimal) string {
	return d.StringFixed(domain.MoneyScale)
}

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func toAccountResponse(a *domain.Account) dto.AccountResponse {
	w := a.Person.Wallet()
	return dto.AccountResponse{
		ID:       a.ID.String(),
		Username: a.Username,
		Name:     a.Person.Name(),
		HasFund:  a.Person.HasFund(),
		Wallet: dto.WalletResponse{
			Currency: string(w.Currency()),
			Balance:  money(w.Balance()),
		},
		CreatedAt: timestamp(a.CreatedAt),
		UpdatedAt: timestamp(a.UpdatedAt),
	}
}

func toProductResponse(e *domain.CatalogEntry) dto.ProductResponse {
	prices := e.Product.Prices()
	out := make([]dto.PriceResponse, 0, len(prices))
	for _, p := range prices {
		out = append(out, dto.PriceResponse{
			Currency: string(p.Currency),
			Amount:   money(p.Amount),
		})
	}
	return dto.ProductResponse{
		ID:        e.ID.String(),
		Name:      e.Product.Name(),
		Type:      string(e.Product.Type()),
		TVA:       e.Product.TVA().StringFixed(domain.MoneyScale),
		Prices:    out,
		CreatedAt: timestamp(e.CreatedAt),
		UpdatedAt: timestamp(e.UpdatedAt),
	}
}

// toPrices converts validated price inputs. Amounts were checked by the
// `money` tag so parse errors cannot occur; an entry that fails is dropped
// the same way the catalog drops invalid prices.
func toPrices(in []dto.PriceInput) []domain.Price {
	out := make([]domain.Price, 0, len(in))
	for _, p := range in {
		amount, err := domain.ParseAmount(p.Amount)
		if err != nil {
			continue
		}
		out = append(out, domain.Price{Currency: domain.Currency(p.Currency), Amount: amount})
	}
	return out
}
