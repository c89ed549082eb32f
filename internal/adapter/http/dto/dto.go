package dto

// ---- Auth ----

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50,safe_id"`
	Password string `json:"password" binding:"required,min=8,max=128" sanitize:"-"`
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Currency string `json:"currency" binding:"required,currency"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required" sanitize:"-"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// ---- Account & Wallet ----

type RenameRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

type ReplaceWalletRequest struct {
	Currency string `json:"currency" binding:"required,currency"`
}

// DepositRequest carries the amount as a decimal string, e.g. "12.50".
type DepositRequest struct {
	Amount string `json:"amount" binding:"required,money"`
}

type TransferRequest struct {
	ToID   string `json:"to_id" binding:"required,uuid"`
	Amount string `json:"amount" binding:"required,money"`
}

// DivideRequest lists the recipients of a division. Ids may repeat and may
// include the caller.
type DivideRequest struct {
	RecipientIDs []string `json:"recipient_ids" binding:"max=100,dive,uuid"`
}

type PurchaseRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
}

type WalletResponse struct {
	Currency string `json:"currency"`
	Balance  string `json:"balance"`
}

type AccountResponse struct {
	ID        string         `json:"id"`
	Username  string         `json:"username"`
	Name      string         `json:"name"`
	HasFund   bool           `json:"has_fund"`
	Wallet    WalletResponse `json:"wallet"`
	CreatedAt string         `json:"created_at"`
	UpdatedAt string         `json:"updated_at"`
}

type TransferResponse struct {
	FromID      string `json:"from_id"`
	ToID        string `json:"to_id"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	FromBalance string `json:"from_balance"`
}

type DivideResponse struct {
	Part       string          `json:"part"`
	Recipients int             `json:"recipients"`
	Account    AccountResponse `json:"account"`
}

type PurchaseResponse struct {
	Product ProductResponse `json:"product"`
	Paid    string          `json:"paid"`
	Account AccountResponse `json:"account"`
}

// ---- Products ----

// PriceInput is one price entry. Unsupported currencies and non-positive
// amounts pass validation and are dropped by the catalog.
type PriceInput struct {
	Currency string `json:"currency" binding:"required,len=3"`
	Amount   string `json:"amount" binding:"required,money"`
}

type CreateProductRequest struct {
	Name   string       `json:"name" binding:"required,min=1,max=100"`
	Type   string       `json:"type" binding:"required,product_type"`
	Prices []PriceInput `json:"prices" binding:"max=20,dive"`
}

type UpdatePricesRequest struct {
	Prices []PriceInput `json:"prices" binding:"required,max=20,dive"`
}

type UpdateTypeRequest struct {
	Type string `json:"type" binding:"required,product_type"`
}

type ListProductsQuery struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

type QuoteQuery struct {
	Currency string `form:"currency" binding:"required,currency"`
}

type PriceResponse struct {
	Currency string `json:"currency"`
	Amount   string `json:"amount"`
}

type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	TVA       string          `json:"tva"`
	Prices    []PriceResponse `json:"prices"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

type ProductListResponse struct {
	Items    []ProductResponse `json:"items"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

type QuoteResponse struct {
	ProductID string `json:"product_id"`
	Currency  string `json:"currency"`
	Price     string `json:"price"`
	TVA       string `json:"tva"`
}

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
