package ports

import (
	"context"

	"peer-wallet/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

//go:generate mockgen -source=repositories.go -destination=mocks/repositories_mock.go -package=mocks

// AccountRepository defines persistence operations for accounts (person + wallet).
// Methods accepting pgx.Tx are used inside transaction blocks for pessimistic locking.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Account, error)
	UpdateName(ctx context.Context, id uuid.UUID, name string) error
	// SaveWallet persists the currency and balance of the account's wallet.
	SaveWallet(ctx context.Context, tx pgx.Tx, account *domain.Account) error
}

// ProductRepository defines persistence operations for the product catalog.
// Updates go through GetByIDForUpdate and Update in the same transaction.
type ProductRepository interface {
	Create(ctx context.Context, entry *domain.CatalogEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CatalogEntry, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.CatalogEntry, error)
	List(ctx context.Context, limit, offset int) ([]*domain.CatalogEntry, error)
	Update(ctx context.Context, tx pgx.Tx, entry *domain.CatalogEntry) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
