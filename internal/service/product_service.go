package service

import (
	"context"
	"fmt"
	"time"

	"peer-wallet/internal/core/domain"
	"peer-wallet/internal/core/ports"
	"peer-wallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ProductServiceImpl implements ports.ProductService with a read-through cache.
type ProductServiceImpl struct {
	productRepo ports.ProductRepository
	transactor  ports.DBTransactor
	cache       ports.ProductCache
	cacheTTL    time.Duration
	log         zerolog.Logger
}

// NewProductService creates a new ProductServiceImpl.
func NewProductService(
	productRepo ports.ProductRepository,
	transactor ports.DBTransactor,
	cache ports.ProductCache,
	cacheTTL time.Duration,
	log zerolog.Logger,
) *ProductServiceImpl {
	return &ProductServiceImpl{
		productRepo: productRepo,
		transactor:  transactor,
		cache:       cache,
		cacheTTL:    cacheTTL,
		log:         log,
	}
}

// Create adds a product. Invalid prices are dropped, an invalid type fails.
func (s *ProductServiceImpl) Create(ctx context.Context, req ports.CreateProductRequest) (*domain.CatalogEntry, error) {
	product, err := domain.NewProduct(req.Name, req.Prices, req.Type)
	if err != nil {
		return nil, domainError(err)
	}

	now := time.Now().UTC()
	entry := &domain.CatalogEntry{
		ID:        uuid.New(),
		Product:   product,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.productRepo.Create(ctx, entry); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create product: %w", err))
	}
	s.fillCache(ctx, entry)

	s.log.Info().
		Str("product_id", entry.ID.String()).
		Str("type", string(product.Type())).
		Int("prices", len(product.Prices())).
		Msg("product created")

	return entry, nil
}

// Get returns a product from the cache, falling back to the database.
func (s *ProductServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.CatalogEntry, error) {
	cached, err := s.cache.Get(ctx, id)
	if err != nil {
		s.log.Warn().Err(err).Str("product_id", id.String()).Msg("product cache read failed, using database")
	}
	if cached != nil {
		return cached, nil
	}

	entry, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	s.fillCache(ctx, entry)
	return entry, nil
}

// List pages through the catalog. page starts at 1.
func (s *ProductServiceImpl) List(ctx context.Context, page, pageSize int) ([]*domain.CatalogEntry, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	entries, err := s.productRepo.List(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list products: %w", err))
	}
	return entries, nil
}

// Rename changes the product label.
func (s *ProductServiceImpl) Rename(ctx context.Context, id uuid.UUID, name string) (*domain.CatalogEntry, error) {
	return s.update(ctx, id, func(p *domain.Product) error {
		p.SetName(name)
		return nil
	})
}

// UpdatePrices replaces the price list with its valid subset. When nothing
// valid remains the previous list is kept; the returned entry shows which.
func (s *ProductServiceImpl) UpdatePrices(ctx context.Context, id uuid.UUID, prices []domain.Price) (*domain.CatalogEntry, error) {
	return s.update(ctx, id, func(p *domain.Product) error {
		p.SetPrices(prices)
		return nil
	})
}

// UpdateType moves the product to another TVA category.
func (s *ProductServiceImpl) UpdateType(ctx context.Context, id uuid.UUID, productType string) (*domain.CatalogEntry, error) {
	return s.update(ctx, id, func(p *domain.Product) error {
		return p.SetType(productType)
	})
}

// Quote returns the product price in currency along with its TVA rate.
func (s *ProductServiceImpl) Quote(ctx context.Context, id uuid.UUID, currency string) (*ports.Quote, error) {
	c, err := domain.ParseCurrency(currency)
	if err != nil {
		return nil, domainError(err)
	}

	entry, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	amount, err := entry.Product.Price(c)
	if err != nil {
		return nil, domainError(err)
	}
	return &ports.Quote{
		ProductID: entry.ID,
		Currency:  c,
		Price:     amount,
		TVA:       entry.Product.TVA(),
	}, nil
}

// update locks the row, applies fn and writes the entry in one transaction,
// then evicts the cached copy. Concurrent updates of one product serialise.
func (s *ProductServiceImpl) update(ctx context.Context, id uuid.UUID, fn func(*domain.Product) error) (*domain.CatalogEntry, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	entry, err := s.productRepo.GetByIDForUpdate(ctx, dbTx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("lock product: %w", err))
	}
	if entry == nil {
		return nil, apperror.ErrNotFound("product")
	}
	if err := fn(entry.Product); err != nil {
		return nil, domainError(err)
	}

	if err := s.productRepo.Update(ctx, dbTx, entry); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("update product: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}
	entry.UpdatedAt = time.Now().UTC()

	if err := s.cache.Delete(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("product_id", id.String()).Msg("failed to evict product from cache")
	}

	s.log.Info().Str("product_id", id.String()).Msg("product updated")
	return entry, nil
}

func (s *ProductServiceImpl) load(ctx context.Context, id uuid.UUID) (*domain.CatalogEntry, error) {
	entry, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get product: %w", err))
	}
	if entry == nil {
		return nil, apperror.ErrNotFound("product")
	}
	return entry, nil
}

// fillCache is best effort; the database stays the source of truth.
func (s *ProductServiceImpl) fillCache(ctx context.Context, entry *domain.CatalogEntry) {
	if err := s.cache.Set(ctx, entry, s.cacheTTL); err != nil {
		s.log.Warn().Err(err).Str("product_id", entry.ID.String()).Msg("failed to cache product")
	}
}
