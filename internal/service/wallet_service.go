package service

import (
	"bytes"
	"context"
	"fmt"
	"slices"

	"peer-wallet/config"
	"peer-wallet/internal/core/domain"
	"peer-wallet/internal/core/ports"
	"peer-wallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// WalletServiceImpl implements ports.WalletService. Every call runs in one
// database transaction with the involved accounts locked FOR UPDATE.
type WalletServiceImpl struct {
	accountRepo ports.AccountRepository
	productRepo ports.ProductRepository
	idempCache  ports.IdempotencyCache
	transactor  ports.DBTransactor
	opts        config.WalletConfig
	log         zerolog.Logger
}

// NewWalletService creates a new WalletServiceImpl.
func NewWalletService(
	accountRepo ports.AccountRepository,
	productRepo ports.ProductRepository,
	idempCache ports.IdempotencyCache,
	transactor ports.DBTransactor,
	opts config.WalletConfig,
	log zerolog.Logger,
) *WalletServiceImpl {
	return &WalletServiceImpl{
		accountRepo: accountRepo,
		productRepo: productRepo,
		idempCache:  idempCache,
		transactor:  transactor,
		opts:        opts,
		log:         log,
	}
}

// Deposit credits amount to the person's wallet.
func (s *WalletServiceImpl) Deposit(ctx context.Context, personID uuid.UUID, amount decimal.Decimal) (*domain.Account, error) {
	var account *domain.Account
	err := s.withLockedAccounts(ctx, []uuid.UUID{personID}, func(locked lockedAccounts) error {
		account = locked.get(personID)
		return account.Person.Wallet().AddFund(amount)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("person_id", personID.String()).
		Str("amount", amount.String()).
		Str("currency", string(account.Person.Wallet().Currency())).
		Msg("deposit processed")

	return account, nil
}

// ReplaceWallet gives the person a new empty wallet in currency.
// The previous wallet and its balance are discarded.
func (s *WalletServiceImpl) ReplaceWallet(ctx context.Context, personID uuid.UUID, currency string) (*domain.Account, error) {
	wallet, err := domain.NewWallet(currency)
	if err != nil {
		return nil, domainError(err)
	}

	var (
		account   *domain.Account
		discarded decimal.Decimal
	)
	err = s.withLockedAccounts(ctx, []uuid.UUID{personID}, func(locked lockedAccounts) error {
		account = locked.get(personID)
		discarded = account.Person.Wallet().Balance()
		return account.Person.SetWallet(wallet)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("person_id", personID.String()).
		Str("currency", currency).
		Str("discarded_balance", discarded.String()).
		Msg("wallet replaced")

	return account, nil
}

// Transfer moves req.Amount between two persons sharing a currency.
// A non-empty IdempotencyKey makes retries return the first result.
func (s *WalletServiceImpl) Transfer(ctx context.Context, req ports.TransferRequest) (*ports.TransferResult, error) {
	if req.IdempotencyKey != "" {
		prev, err := s.replayTransfer(ctx, req)
		if err != nil || prev != nil {
			return prev, err
		}
	}

	var result *ports.TransferResult
	err := s.withLockedAccounts(ctx, []uuid.UUID{req.FromID, req.ToID}, func(locked lockedAccounts) error {
		from, to := locked.get(req.FromID), locked.get(req.ToID)
		if err := from.Person.TransferFund(req.Amount, to.Person); err != nil {
			return err
		}
		result = &ports.TransferResult{
			FromID:      req.FromID,
			ToID:        req.ToID,
			Amount:      req.Amount,
			Currency:    string(from.Person.Wallet().Currency()),
			FromBalance: from.Person.Wallet().Balance(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if req.IdempotencyKey != "" {
		s.rememberTransfer(ctx, req, result)
	}

	s.log.Info().
		Str("from_id", req.FromID.String()).
		Str("to_id", req.ToID.String()).
		Str("amount", req.Amount.String()).
		Str("currency", result.Currency).
		Msg("transfer processed")

	return result, nil
}

// Divide splits the caller's balance among req.RecipientIDs.
func (s *WalletServiceImpl) Divide(ctx context.Context, req ports.DivideRequest) (*ports.DivideResult, error) {
	recipients := req.RecipientIDs
	if s.opts.DivideExcludeSelf {
		recipients = slices.DeleteFunc(slices.Clone(recipients), func(id uuid.UUID) bool {
			return id == req.FromID
		})
	}

	var result *ports.DivideResult
	ids := append([]uuid.UUID{req.FromID}, recipients...)
	err := s.withLockedAccounts(ctx, ids, func(locked lockedAccounts) error {
		from := locked.get(req.FromID)
		persons := make([]*domain.Person, len(recipients))
		for i, id := range recipients {
			persons[i] = locked.get(id).Person
		}

		part, err := from.Person.DivisionShare(len(persons))
		if err != nil {
			return err
		}
		if err := from.Person.DivideWallet(persons); err != nil {
			return err
		}
		result = &ports.DivideResult{Part: part, Recipients: len(persons), Account: from}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("from_id", req.FromID.String()).
		Int("recipients", result.Recipients).
		Str("part", result.Part.String()).
		Msg("wallet divided")

	return result, nil
}

// Buy pays for a product in the buyer's wallet currency.
func (s *WalletServiceImpl) Buy(ctx context.Context, req ports.BuyRequest) (*ports.PurchaseResult, error) {
	entry, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get product: %w", err))
	}
	if entry == nil {
		return nil, apperror.ErrNotFound("product")
	}

	var result *ports.PurchaseResult
	err = s.withLockedAccounts(ctx, []uuid.UUID{req.PersonID}, func(locked lockedAccounts) error {
		buyer := locked.get(req.PersonID)
		before := buyer.Person.Wallet().Balance()
		if err := buyer.Person.BuyProduct(entry.Product); err != nil {
			return err
		}
		result = &ports.PurchaseResult{
			Product: entry,
			Paid:    before.Sub(buyer.Person.Wallet().Balance()),
			Account: buyer,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("person_id", req.PersonID.String()).
		Str("product_id", req.ProductID.String()).
		Str("paid", result.Paid.String()).
		Msg("purchase processed")

	return result, nil
}

// lockedAccounts holds accounts locked in one transaction, in lock order.
type lockedAccounts struct {
	byID    map[uuid.UUID]*domain.Account
	ordered []*domain.Account
}

func (l lockedAccounts) get(id uuid.UUID) *domain.Account {
	return l.byID[id]
}

// withLockedAccounts locks every distinct id in ascending UUID order, runs fn
// and persists all locked wallets when fn succeeds. Domain errors from fn are
// mapped to AppErrors; nothing is written when fn fails.
func (s *WalletServiceImpl) withLockedAccounts(ctx context.Context, ids []uuid.UUID, fn func(lockedAccounts) error) error {
	unique := slices.Clone(ids)
	slices.SortFunc(unique, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })
	unique = slices.Compact(unique)

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	locked := lockedAccounts{byID: make(map[uuid.UUID]*domain.Account, len(unique))}
	for _, id := range unique {
		account, err := s.accountRepo.GetByIDForUpdate(ctx, dbTx, id)
		if err != nil {
			return apperror.ErrDatabaseError(fmt.Errorf("lock account %s: %w", id, err))
		}
		if account == nil {
			return apperror.ErrNotFound("account")
		}
		locked.byID[id] = account
		locked.ordered = append(locked.ordered, account)
	}

	if err := fn(locked); err != nil {
		return domainError(err)
	}
	for _, a := range locked.ordered {
		if balance := a.Person.Wallet().Balance(); !domain.FitsStorage(balance) {
			return domainError(fmt.Errorf("%w: balance of %s would exceed %d digits",
				domain.ErrInvalidAmount, a.ID, domain.MaxAmountDigits))
		}
	}

	if err := s.saveWallets(ctx, dbTx, locked.ordered); err != nil {
		return err
	}
	if err := dbTx.Commit(ctx); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}

func (s *WalletServiceImpl) saveWallets(ctx context.Context, dbTx pgx.Tx, accounts []*domain.Account) error {
	for _, a := range accounts {
		if err := s.accountRepo.SaveWallet(ctx, dbTx, a); err != nil {
			return apperror.ErrDatabaseError(fmt.Errorf("save wallet %s: %w", a.ID, err))
		}
	}
	return nil
}

// replayTransfer returns the result stored for the request's key. Cache
// failures degrade to processing the request again.
func (s *WalletServiceImpl) replayTransfer(ctx context.Context, req ports.TransferRequest) (*ports.TransferResult, error) {
	prev, err := s.idempCache.Get(ctx, req.FromID, req.IdempotencyKey)
	if err != nil {
		s.log.Warn().Err(err).Str("idempotency_key", req.IdempotencyKey).Msg("idempotency lookup failed, processing request")
		return nil, nil
	}
	if prev == nil {
		return nil, nil
	}
	if prev.ToID != req.ToID || !prev.Amount.Equal(req.Amount) {
		return nil, apperror.ErrDuplicateRequest()
	}

	s.log.Info().Str("idempotency_key", req.IdempotencyKey).Msg("transfer replayed from idempotency cache")
	return prev, nil
}

func (s *WalletServiceImpl) rememberTransfer(ctx context.Context, req ports.TransferRequest, result *ports.TransferResult) {
	stored, err := s.idempCache.Put(ctx, req.FromID, req.IdempotencyKey, result, s.opts.IdempotencyTTL)
	if err != nil {
		s.log.Warn().Err(err).Str("idempotency_key", req.IdempotencyKey).Msg("failed to record transfer result")
		return
	}
	if !stored {
		s.log.Warn().Str("idempotency_key", req.IdempotencyKey).Msg("idempotency key already recorded by a concurrent transfer")
	}
}
