package service

import (
	"context"
	"errors"
	"testing"

	"peer-wallet/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupAccountService(t *testing.T) (*AccountServiceImpl, *mocks.MockAccountRepository) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAccountRepository(ctrl)
	return NewAccountService(repo, zerolog.Nop()), repo
}

func TestAccountService_GetAccount(t *testing.T) {
	svc, repo := setupAccountService(t)
	ctx := context.Background()
	account := newAccount(t, "alice", "GBP", "3.5")

	repo.EXPECT().GetByID(ctx, account.ID).Return(account, nil)

	got, err := svc.GetAccount(ctx, account.ID)
	require.NoError(t, err)
	assert.Same(t, account, got)
}

func TestAccountService_GetAccount_NotFound(t *testing.T) {
	svc, repo := setupAccountService(t)
	ctx := context.Background()
	id := uuid.New()

	repo.EXPECT().GetByID(ctx, id).Return(nil, nil)

	_, err := svc.GetAccount(ctx, id)
	assertAppError(t, err, "REQ_002")
}

func TestAccountService_GetAccount_DBError(t *testing.T) {
	svc, repo := setupAccountService(t)
	ctx := context.Background()
	id := uuid.New()

	repo.EXPECT().GetByID(ctx, id).Return(nil, errors.New("timeout"))

	_, err := svc.GetAccount(ctx, id)
	assertAppError(t, err, "SYS_001")
}

func TestAccountService_Rename(t *testing.T) {
	svc, repo := setupAccountService(t)
	ctx := context.Background()
	account := newAccount(t, "alice", "EUR", "0")

	repo.EXPECT().GetByID(ctx, account.ID).Return(account, nil)
	repo.EXPECT().UpdateName(ctx, account.ID, "Alice Liddell").Return(nil)

	got, err := svc.Rename(ctx, account.ID, "Alice Liddell")
	require.NoError(t, err)
	assert.Equal(t, "Alice Liddell", got.Person.Name())
}

func TestAccountService_Rename_NotFound(t *testing.T) {
	svc, repo := setupAccountService(t)
	ctx := context.Background()
	id := uuid.New()

	repo.EXPECT().GetByID(ctx, id).Return(nil, nil)

	_, err := svc.Rename(ctx, id, "x")
	assertAppError(t, err, "REQ_002")
}
