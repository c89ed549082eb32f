package integration

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"peer-wallet/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// --- In-Memory Account Repo ---

// accountRow is what the accounts table stores. Reads rebuild the aggregate
// so callers never share mutable state.
type accountRow struct {
	id           uuid.UUID
	username     string
	passwordHash string
	name         string
	currency     string
	balance      decimal.Decimal
	createdAt    time.Time
	updatedAt    time.Time
}

// inMemoryAccountRepo keeps one mutex per row. GetByIDForUpdate holds it
// until the owning transaction ends, like SELECT ... FOR UPDATE.
type inMemoryAccountRepo struct {
	mu    sync.RWMutex
	rows  map[uuid.UUID]accountRow
	locks map[uuid.UUID]*sync.Mutex
}

func newInMemoryAccountRepo() *inMemoryAccountRepo {
	return &inMemoryAccountRepo{
		rows:  make(map[uuid.UUID]accountRow),
		locks: make(map[uuid.UUID]*sync.Mutex),
	}
}

func (r *inMemoryAccountRepo) Create(ctx context.Context, a *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.username == a.Username {
			return fmt.Errorf("duplicate key value violates unique constraint \"accounts_username_key\"")
		}
	}
	w := a.Person.Wallet()
	r.rows[a.ID] = accountRow{
		id:           a.ID,
		username:     a.Username,
		passwordHash: a.PasswordHash,
		name:         a.Person.Name(),
		currency:     string(w.Currency()),
		balance:      w.Balance(),
		createdAt:    a.CreatedAt,
		updatedAt:    a.UpdatedAt,
	}
	r.locks[a.ID] = &sync.Mutex{}
	return nil
}

func (r *inMemoryAccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	r.mu.RLock()
	row, ok := r.rows[id]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return row.toAccount()
}

func (r *inMemoryAccountRepo) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, row := range r.rows {
		if row.username == username {
			return row.toAccount()
		}
	}
	return nil, nil
}

func (r *inMemoryAccountRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Account, error) {
	mt, ok := tx.(*memTx)
	if !ok {
		return nil, errors.New("GetByIDForUpdate outside a transaction")
	}

	r.mu.RLock()
	rowLock, exists := r.locks[id]
	r.mu.RUnlock()
	if !exists {
		return nil, nil
	}
	mt.acquire(id, rowLock)
	return r.GetByID(ctx, id)
}

func (r *inMemoryAccountRepo) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return fmt.Errorf("account not found: %s", id)
	}
	row.name = name
	row.updatedAt = time.Now().UTC()
	r.rows[id] = row
	return nil
}

func (r *inMemoryAccountRepo) SaveWallet(ctx context.Context, tx pgx.Tx, a *domain.Account) error {
	mt, ok := tx.(*memTx)
	if !ok || !mt.holds(a.ID) {
		return fmt.Errorf("account %s is not locked by this transaction", a.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	row, exists := r.rows[a.ID]
	if !exists {
		return fmt.Errorf("account not found: %s", a.ID)
	}
	w := a.Person.Wallet()
	row.currency = string(w.Currency())
	row.balance = w.Balance()
	row.updatedAt = time.Now().UTC()
	r.rows[a.ID] = row
	return nil
}

// balance reads a stored balance for assertions.
func (r *inMemoryAccountRepo) balance(id uuid.UUID) decimal.Decimal {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rows[id].balance
}

func (row accountRow) toAccount() (*domain.Account, error) {
	w, err := domain.RestoreWallet(row.currency, row.balance)
	if err != nil {
		return nil, err
	}
	p, err := domain.NewPerson(row.name, row.currency)
	if err != nil {
		return nil, err
	}
	if err := p.SetWallet(w); err != nil {
		return nil, err
	}
	return &domain.Account{
		ID:           row.id,
		Username:     row.username,
		PasswordHash: row.passwordHash,
		Person:       p,
		CreatedAt:    row.createdAt,
		UpdatedAt:    row.updatedAt,
	}, nil
}

// --- In-Memory Product Repo ---

type productRow struct {
	id          uuid.UUID
	name        string
	productType string
	prices      []domain.Price
	createdAt   time.Time
	updatedAt   time.Time
}

// inMemoryProductRepo locks rows the same way inMemoryAccountRepo does.
type inMemoryProductRepo struct {
	mu    sync.RWMutex
	rows  map[uuid.UUID]productRow
	locks map[uuid.UUID]*sync.Mutex
	order []uuid.UUID // insertion order stands in for ORDER BY created_at
	reads int         // GetByID calls, to observe the cache
}

func newInMemoryProductRepo() *inMemoryProductRepo {
	return &inMemoryProductRepo{
		rows:  make(map[uuid.UUID]productRow),
		locks: make(map[uuid.UUID]*sync.Mutex),
	}
}

func (r *inMemoryProductRepo) Create(ctx context.Context, e *domain.CatalogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[e.ID] = toProductRow(e)
	r.locks[e.ID] = &sync.Mutex{}
	r.order = append(r.order, e.ID)
	return nil
}

func (r *inMemoryProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.CatalogEntry, error) {
	r.mu.Lock()
	r.reads++
	row, ok := r.rows[id]
	r.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return row.toEntry()
}

func (r *inMemoryProductRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.CatalogEntry, error) {
	mt, ok := tx.(*memTx)
	if !ok {
		return nil, errors.New("GetByIDForUpdate outside a transaction")
	}

	r.mu.RLock()
	rowLock, exists := r.locks[id]
	r.mu.RUnlock()
	if !exists {
		return nil, nil
	}
	mt.acquire(id, rowLock)

	r.mu.RLock()
	row := r.rows[id]
	r.mu.RUnlock()
	return row.toEntry()
}

func (r *inMemoryProductRepo) List(ctx context.Context, limit, offset int) ([]*domain.CatalogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.CatalogEntry, 0, limit)
	for i := offset; i < len(r.order) && len(out) < limit; i++ {
		e, err := r.rows[r.order[i]].toEntry()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *inMemoryProductRepo) Update(ctx context.Context, tx pgx.Tx, e *domain.CatalogEntry) error {
	mt, ok := tx.(*memTx)
	if !ok || !mt.holds(e.ID) {
		return fmt.Errorf("product %s is not locked by this transaction", e.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[e.ID]; !ok {
		return fmt.Errorf("product not found: %s", e.ID)
	}
	row := toProductRow(e)
	row.updatedAt = time.Now().UTC()
	r.rows[e.ID] = row
	return nil
}

func (r *inMemoryProductRepo) readCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.reads
}

func toProductRow(e *domain.CatalogEntry) productRow {
	return productRow{
		id:          e.ID,
		name:        e.Product.Name(),
		productType: string(e.Product.Type()),
		prices:      e.Product.Prices(),
		createdAt:   e.CreatedAt,
		updatedAt:   e.UpdatedAt,
	}
}

func (row productRow) toEntry() (*domain.CatalogEntry, error) {
	p, err := domain.NewProduct(row.name, row.prices, row.productType)
	if err != nil {
		return nil, err
	}
	return &domain.CatalogEntry{ID: row.id, Product: p, CreatedAt: row.createdAt, UpdatedAt: row.updatedAt}, nil
}

// --- In-Memory Transactor ---

type inMemoryTransactor struct{}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &memTx{held: make(map[uuid.UUID]*sync.Mutex)}, nil
}

// memTx tracks the row locks taken through it and releases them on
// Commit or Rollback. Only the locking methods of pgx.Tx are meaningful.
type memTx struct {
	mu   sync.Mutex
	held map[uuid.UUID]*sync.Mutex
	done bool
}

func (t *memTx) acquire(id uuid.UUID, rowLock *sync.Mutex) {
	t.mu.Lock()
	_, already := t.held[id]
	t.mu.Unlock()
	if already {
		return
	}
	rowLock.Lock()
	t.mu.Lock()
	t.held[id] = rowLock
	t.mu.Unlock()
}

func (t *memTx) holds(id uuid.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.held[id]
	return ok
}

func (t *memTx) release() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	for id, l := range t.held {
		l.Unlock()
		delete(t.held, id)
	}
	return nil
}

func (t *memTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *memTx) Commit(ctx context.Context) error          { return t.release() }
func (t *memTx) Rollback(ctx context.Context) error        { return t.release() }
func (t *memTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, errors.New("not supported")
}
func (t *memTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *memTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *memTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, errors.New("not supported")
}
func (t *memTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), errors.New("not supported")
}
func (t *memTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not supported")
}
func (t *memTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (t *memTx) Conn() *pgx.Conn                                                { return nil }
