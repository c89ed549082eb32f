package postgres

import (
	"context"
	"errors"
	"fmt"

	"peer-wallet/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const accountColumns = `id, username, password_hash, name, currency, balance::text, created_at, updated_at`

// AccountRepo implements ports.AccountRepository.
type AccountRepo struct {
	pool Pool
}

// NewAccountRepo creates a new AccountRepo.
func NewAccountRepo(pool Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

// Create inserts a new account with its wallet state.
func (r *AccountRepo) Create(ctx context.Context, a *domain.Account) error {
	query := `INSERT INTO accounts (id, username, password_hash, name, currency, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	w := a.Person.Wallet()
	_, err := r.pool.Exec(ctx, query,
		a.ID, a.Username, a.PasswordHash, a.Person.Name(),
		string(w.Currency()), w.Balance().StringFixed(domain.MoneyScale),
		a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID fetches an account by its UUID (without locking).
func (r *AccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	a, err := scanAccount(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account by id: %w", err)
	}
	return a, nil
}

// GetByUsername fetches an account by its login name.
func (r *AccountRepo) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE username = $1`

	a, err := scanAccount(r.pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account by username: %w", err)
	}
	return a, nil
}

// GetByIDForUpdate fetches an account with a row lock.
// This MUST be called within a transaction.
func (r *AccountRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 FOR UPDATE`

	a, err := scanAccount(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account for update: %w", err)
	}
	return a, nil
}

// UpdateName changes the display name of a person.
func (r *AccountRepo) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	query := `UPDATE accounts SET name = $1, updated_at = NOW() WHERE id = $2`

	tag, err := r.pool.Exec(ctx, query, name, id)
	if err != nil {
		return fmt.Errorf("update account name: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account not found: %s", id)
	}
	return nil
}

// SaveWallet writes the wallet currency and balance within a transaction.
func (r *AccountRepo) SaveWallet(ctx context.Context, tx pgx.Tx, a *domain.Account) error {
	query := `UPDATE accounts SET currency = $1, balance = $2, updated_at = NOW() WHERE id = $3`

	w := a.Person.Wallet()
	tag, err := tx.Exec(ctx, query, string(w.Currency()), w.Balance().StringFixed(domain.MoneyScale), a.ID)
	if err != nil {
		return fmt.Errorf("save wallet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account not found: %s", a.ID)
	}
	return nil
}

// scanAccount rebuilds the person and wallet through the domain constructors
// so a corrupted row surfaces as an error instead of a broken aggregate.
func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		a        domain.Account
		name     string
		currency string
		balance  string
	)
	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &name, &currency, &balance, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(balance)
	if err != nil {
		return nil, fmt.Errorf("account %s balance %q: %w", a.ID, balance, err)
	}
	wallet, err := domain.RestoreWallet(currency, amount)
	if err != nil {
		return nil, fmt.Errorf("account %s wallet: %w", a.ID, err)
	}
	person, err := domain.NewPerson(name, currency)
	if err != nil {
		return nil, fmt.Errorf("account %s person: %w", a.ID, err)
	}
	if err := person.SetWallet(wallet); err != nil {
		return nil, fmt.Errorf("account %s person: %w", a.ID, err)
	}
	a.Person = person
	return &a, nil
}
