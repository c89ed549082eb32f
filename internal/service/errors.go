package service

import (
	"errors"

	"peer-wallet/internal/core/domain"
	"peer-wallet/pkg/apperror"
)

// domainError maps a domain error to its AppError. The domain error stays in
// the chain so errors.Is keeps matching it. AppErrors pass through untouched.
func domainError(err error) *apperror.AppError {
	if err == nil {
		return nil
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return apperror.ErrInvalidAmount(err)
	case errors.Is(err, domain.ErrInvalidBalance):
		return apperror.ErrInvalidBalance(err)
	case errors.Is(err, domain.ErrInvalidCurrency):
		return apperror.ErrInvalidCurrency(err)
	case errors.Is(err, domain.ErrInsufficientFunds):
		return apperror.ErrInsufficientFunds(err)
	case errors.Is(err, domain.ErrCurrencyMismatch):
		return apperror.ErrCurrencyMismatch(err)
	case errors.Is(err, domain.ErrInvalidRecipient):
		return apperror.ErrInvalidRecipient(err)
	case errors.Is(err, domain.ErrMissingWallet):
		return apperror.ErrMissingWallet(err)
	case errors.Is(err, domain.ErrInvalidType):
		return apperror.ErrInvalidType(err)
	case errors.Is(err, domain.ErrCurrencyNotAvailable):
		return apperror.ErrCurrencyNotAvailable(err)
	default:
		return apperror.InternalError(err)
	}
}
