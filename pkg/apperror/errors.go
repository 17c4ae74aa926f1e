package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
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

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// From returns err as an *AppError, turning anything else into InternalError.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return InternalError(err)
}

// ---- Envelope (ENV) ----

// ErrMalformedEnvelope reports absent top-level envelope fields.
func ErrMalformedEnvelope(missing ...string) *AppError {
	msg := "Missing required parameters"
	if len(missing) > 0 {
		msg += ": " + strings.Join(missing, ", ")
	}
	return New("ENV_001", msg, http.StatusBadRequest)
}

func ErrUnknownTenant() *AppError {
	return New("ENV_002", "Invalid agency_uid", http.StatusUnauthorized)
}

func ErrDecryptionFailed(err error) *AppError {
	return Wrap("ENV_003", "Invalid encrypted payload", http.StatusBadRequest, err)
}

// Validation reports an operation-level problem with a decrypted payload.
func Validation(message string) *AppError {
	return New("ENV_004", message, http.StatusBadRequest)
}

// ---- Transfer (TRF) ----

func ErrInsufficientFunds() *AppError {
	return New("TRF_001", "Insufficient balance", http.StatusPaymentRequired)
}

func ErrTransferConflict() *AppError {
	return New("TRF_002", "transfer_id already used with a different amount", http.StatusConflict)
}

// ---- Ledger (LDG) ----

// ErrLedger forwards a message the ledger returned.
func ErrLedger(message string, err error) *AppError {
	if message == "" {
		message = "Internal server error"
	}
	return Wrap("LDG_001", message, http.StatusInternalServerError, err)
}

func ErrLedgerUnavailable(err error) *AppError {
	return Wrap("LDG_002", "Internal server error", http.StatusInternalServerError, err)
}

// ---- Upstream provider (PRV) ----

func ErrProvider(message string, err error) *AppError {
	if message == "" {
		message = "Game provider error"
	}
	return Wrap("PRV_001", message, http.StatusBadGateway, err)
}

func ErrProviderUnavailable(err error) *AppError {
	return Wrap("PRV_002", "Game provider unavailable", http.StatusBadGateway, err)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrEncryptionFailure(err error) *AppError {
	return Wrap("SYS_003", "Encryption service failure", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}
