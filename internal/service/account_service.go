package service

import (
	"context"
	"fmt"

	"peer-wallet/internal/core/domain"
	"peer-wallet/internal/core/ports"
	"peer-wallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AccountServiceImpl implements ports.AccountService.
type AccountServiceImpl struct {
	accountRepo ports.AccountRepository
	log         zerolog.Logger
}

// NewAccountService creates a new AccountServiceImpl.
func NewAccountService(accountRepo ports.AccountRepository, log zerolog.Logger) *AccountServiceImpl {
	return &AccountServiceImpl{accountRepo: accountRepo, log: log}
}

// GetAccount returns the person and wallet behind personID.
func (s *AccountServiceImpl) GetAccount(ctx context.Context, personID uuid.UUID) (*domain.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, personID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get account: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrNotFound("account")
	}
	return account, nil
}

// Rename replaces the person's display name.
func (s *AccountServiceImpl) Rename(ctx context.Context, personID uuid.UUID, name string) (*domain.Account, error) {
	account, err := s.GetAccount(ctx, personID)
	if err != nil {
		return nil, err
	}

	account.Person.SetName(name)
	if err := s.accountRepo.UpdateName(ctx, personID, account.Person.Name()); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("update name: %w", err))
	}

	s.log.Info().Str("person_id", personID.String()).Msg("person renamed")
	return account, nil
}
