package handler

import (
	"peer-wallet/internal/adapter/http/dto"
	"peer-wallet/internal/core/domain"
	"peer-wallet/internal/core/ports"
	"peer-wallet/pkg/apperror"
	"peer-wallet/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
)

// ProductHandler handles catalog endpoints.
type ProductHandler struct {
	productSvc ports.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productSvc ports.ProductService) *ProductHandler {
	return &ProductHandler{productSvc: productSvc}
}

// Create handles POST /api/v1/products.
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.productSvc.Create(c.Request.Context(), ports.CreateProductRequest{
		Name:   req.Name,
		Type:   req.Type,
		Prices: toPrices(req.Prices),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, toProductResponse(entry))
}

// List handles GET /api/v1/products?page=&page_size=.
func (h *ProductHandler) List(c *gin.Context) {
	var q dto.ListProductsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	if q.Page == 0 {
		q.Page = defaultPage
	}
	if q.PageSize == 0 {
		q.PageSize = defaultPageSize
	}

	entries, err := h.productSvc.List(c.Request.Context(), q.Page, q.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.ProductResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, toProductResponse(e))
	}
	response.OK(c, dto.ProductListResponse{
		Items:    items,
		Page:     q.Page,
		PageSize: q.PageSize,
	})
}

// Get handles GET /api/v1/products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	entry, err := h.productSvc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toProductResponse(entry))
}

// Rename handles PUT /api/v1/products/:id/name.
func (h *ProductHandler) Rename(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.RenameRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.productSvc.Rename(c.Request.Context(), id, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toProductResponse(entry))
}

// UpdatePrices handles PUT /api/v1/products/:id/prices. Invalid entries are
// dropped; when none survive the previous prices stay and are returned.
func (h *ProductHandler) UpdatePrices(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePricesRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.productSvc.UpdatePrices(c.Request.Context(), id, toPrices(req.Prices))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toProductResponse(entry))
}

// UpdateType handles PUT /api/v1/products/:id/type.
func (h *ProductHandler) UpdateType(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTypeRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.productSvc.UpdateType(c.Request.Context(), id, req.Type)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toProductResponse(entry))
}

// Quote handles GET /api/v1/products/:id/quote?currency=XXX.
func (h *ProductHandler) Quote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var q dto.QuoteQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	quote, err := h.productSvc.Quote(c.Request.Context(), id, q.Currency)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.QuoteResponse{
		ProductID: quote.ProductID.String(),
		Currency:  string(quote.Currency),
		Price:     money(quote.Price),
		TVA:       quote.TVA.StringFixed(domain.MoneyScale),
	})
}
