package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped cause (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Wallet (WAL) ----

func ErrInvalidAmount(err error) *AppError {
	return Wrap("WAL_001", "Invalid amount", http.StatusBadRequest, err)
}

func ErrInvalidBalance(err error) *AppError {
	return Wrap("WAL_002", "Invalid balance", http.StatusBadRequest, err)
}

func ErrInvalidCurrency(err error) *AppError {
	return Wrap("WAL_003", "Invalid currency", http.StatusBadRequest, err)
}

func ErrInsufficientFunds(err error) *AppError {
	return Wrap("WAL_004", "Insufficient funds", http.StatusPaymentRequired, err)
}

func ErrCurrencyMismatch(err error) *AppError {
	return Wrap("WAL_005", "Wallet currencies differ", http.StatusConflict, err)
}

func ErrInvalidRecipient(err error) *AppError {
	return Wrap("WAL_006", "Invalid recipient", http.StatusBadRequest, err)
}

func ErrMissingWallet(err error) *AppError {
	return Wrap("WAL_007", "Wallet is required", http.StatusBadRequest, err)
}

// ---- Product (PRD) ----

func ErrInvalidType(err error) *AppError {
	return Wrap("PRD_001", "Invalid type", http.StatusBadRequest, err)
}

func ErrCurrencyNotAvailable(err error) *AppError {
	return Wrap("PRD_002", "Currency not available for this product", http.StatusUnprocessableEntity, err)
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrUsernameExists() *AppError {
	return New("AUTH_002", "Username already exists", http.StatusConflict)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- Request (REQ) ----

// Validation returns a REQ_001 error for malformed input.
func Validation(message string) *AppError {
	return New("REQ_001", message, http.StatusBadRequest)
}

func ErrNotFound(entity string) *AppError {
	return New("REQ_002", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrDuplicateRequest() *AppError {
	return New("REQ_003", "Request already processed with different parameters", http.StatusConflict)
}

func ErrPayloadTooLarge() *AppError {
	return New("REQ_004", "Request body too large", http.StatusRequestEntityTooLarge)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// As returns the AppError in err's chain. Anything else becomes a SYS_001
// that keeps err as its cause.
func As(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return InternalError(err)
}
