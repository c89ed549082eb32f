package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"peer-wallet/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const productColumns = `id, name, product_type, prices, created_at, updated_at`

// ProductRepo implements ports.ProductRepository.
// Prices are stored as an ordered JSONB array.
type ProductRepo struct {
	pool Pool
}

// NewProductRepo creates a new ProductRepo.
func NewProductRepo(pool Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

// Create inserts a new catalog entry.
func (r *ProductRepo) Create(ctx context.Context, e *domain.CatalogEntry) error {
	query := `INSERT INTO products (id, name, product_type, prices, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	prices, err := json.Marshal(e.Product.Prices())
	if err != nil {
		return fmt.Errorf("marshal prices: %w", err)
	}

	_, err = r.pool.Exec(ctx, query,
		e.ID, e.Product.Name(), string(e.Product.Type()), prices,
		e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID fetches a catalog entry by its UUID.
func (r *ProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.CatalogEntry, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	e, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return e, nil
}

// GetByIDForUpdate fetches a catalog entry with a row lock.
// This MUST be called within a transaction.
func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.CatalogEntry, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`

	e, err := scanProduct(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	return e, nil
}

// List returns catalog entries ordered by creation time, oldest first.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*domain.CatalogEntry, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at, id LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	entries := make([]*domain.CatalogEntry, 0)
	for rows.Next() {
		e, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return entries, nil
}

// Update overwrites name, type and prices of an entry locked by tx.
func (r *ProductRepo) Update(ctx context.Context, tx pgx.Tx, e *domain.CatalogEntry) error {
	query := `UPDATE products SET name = $1, product_type = $2, prices = $3, updated_at = NOW() WHERE id = $4`

	prices, err := json.Marshal(e.Product.Prices())
	if err != nil {
		return fmt.Errorf("marshal prices: %w", err)
	}

	tag, err := tx.Exec(ctx, query, e.Product.Name(), string(e.Product.Type()), prices, e.ID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product not found: %s", e.ID)
	}
	return nil
}

func scanProduct(row pgx.Row) (*domain.CatalogEntry, error) {
	var (
		e           domain.CatalogEntry
		name        string
		productType string
		rawPrices   []byte
	)
	if err := row.Scan(&e.ID, &name, &productType, &rawPrices, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}

	var prices []domain.Price
	if err := json.Unmarshal(rawPrices, &prices); err != nil {
		return nil, fmt.Errorf("product %s prices: %w", e.ID, err)
	}
	product, err := domain.NewProduct(name, prices, productType)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", e.ID, err)
	}
	e.Product = product
	return &e, nil
}
