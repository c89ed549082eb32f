package ports

import (
	"context"
	"time"

	"peer-wallet/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=services.go -destination=mocks/services_mock.go -package=mocks

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(personID uuid.UUID, username string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	PersonID uuid.UUID
	Username string
}

// ProductCache is the Redis read-through layer in front of the catalog.
type ProductCache interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.CatalogEntry, error) // nil on miss
	Set(ctx context.Context, entry *domain.CatalogEntry, ttl time.Duration) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// IdempotencyCache remembers transfer results per payer and client key.
type IdempotencyCache interface {
	Get(ctx context.Context, personID uuid.UUID, clientKey string) (*TransferResult, error) // nil on miss
	// Put keeps the first result recorded for a key and reports whether it stored this one.
	Put(ctx context.Context, personID uuid.UUID, clientKey string, result *TransferResult, ttl time.Duration) (bool, error)
}

// --- Service Ports (Business Logic) ---

// AuthService defines registration and login.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*domain.Account, error)
	Login(ctx context.Context, username, password string) (string, time.Time, error) // token, expiry, error
}

// RegisterRequest holds input for person registration.
type RegisterRequest struct {
	Username string
	Password string
	Name     string
	Currency string
}

// AccountService defines read and profile operations on accounts.
type AccountService interface {
	GetAccount(ctx context.Context, personID uuid.UUID) (*domain.Account, error)
	Rename(ctx context.Context, personID uuid.UUID, name string) (*domain.Account, error)
}

// WalletService defines the money-moving operations.
type WalletService interface {
	Deposit(ctx context.Context, personID uuid.UUID, amount decimal.Decimal) (*domain.Account, error)
	ReplaceWallet(ctx context.Context, personID uuid.UUID, currency string) (*domain.Account, error)
	Transfer(ctx context.Context, req TransferRequest) (*TransferResult, error)
	Divide(ctx context.Context, req DivideRequest) (*DivideResult, error)
	Buy(ctx context.Context, req BuyRequest) (*PurchaseResult, error)
}

// TransferRequest holds validated input for a person-to-person transfer.
type TransferRequest struct {
	FromID         uuid.UUID
	ToID           uuid.UUID
	Amount         decimal.Decimal
	IdempotencyKey string // optional
}

// TransferResult is the outcome of a transfer, replayed for repeated keys.
type TransferResult struct {
	FromID      uuid.UUID       `json:"from_id"`
	ToID        uuid.UUID       `json:"to_id"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	FromBalance decimal.Decimal `json:"from_balance"`
}

// DivideRequest holds input for splitting a balance among recipients.
// RecipientIDs may repeat and may contain FromID.
type DivideRequest struct {
	FromID       uuid.UUID
	RecipientIDs []uuid.UUID
}

// DivideResult is the outcome of a division.
type DivideResult struct {
	Part       decimal.Decimal
	Recipients int
	Account    *domain.Account
}

// BuyRequest holds input for a product purchase.
type BuyRequest struct {
	PersonID  uuid.UUID
	ProductID uuid.UUID
}

// PurchaseResult is the outcome of a purchase.
type PurchaseResult struct {
	Product *domain.CatalogEntry
	Paid    decimal.Decimal
	Account *domain.Account
}

// ProductService defines catalog management.
type ProductService interface {
	Create(ctx context.Context, req CreateProductRequest) (*domain.CatalogEntry, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.CatalogEntry, error)
	List(ctx context.Context, page, pageSize int) ([]*domain.CatalogEntry, error)
	Rename(ctx context.Context, id uuid.UUID, name string) (*domain.CatalogEntry, error)
	UpdatePrices(ctx context.Context, id uuid.UUID, prices []domain.Price) (*domain.CatalogEntry, error)
	UpdateType(ctx context.Context, id uuid.UUID, productType string) (*domain.CatalogEntry, error)
	Quote(ctx context.Context, id uuid.UUID, currency string) (*Quote, error)
}

// CreateProductRequest holds input for product creation.
type CreateProductRequest struct {
	Name   string
	Type   string
	Prices []domain.Price
}

// Quote is a product price in one currency with its tax rate.
type Quote struct {
	ProductID uuid.UUID
	Currency  domain.Currency
	Price     decimal.Decimal
	TVA       decimal.Decimal
}
