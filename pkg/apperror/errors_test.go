package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("TRF_001", "Insufficient balance", http.StatusPaymentRequired),
			expected: "[TRF_001] Insufficient balance",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("SYS_001", "DB error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[SYS_001] DB error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("SYS_001", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
	assert.Nil(t, New("ENV_001", "test", http.StatusBadRequest).Unwrap())
}

func TestFrom(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", ErrUnknownTenant())
	assert.Equal(t, "ENV_002", From(wrapped).Code)

	plain := From(errors.New("boom"))
	assert.Equal(t, "SYS_001", plain.Code)
	assert.Equal(t, http.StatusInternalServerError, plain.HTTPStatus)
}

func TestErrMalformedEnvelope(t *testing.T) {
	assert.Equal(t, "Missing required parameters", ErrMalformedEnvelope().Message)
	assert.Equal(t, "Missing required parameters: tenant_id, payload", ErrMalformedEnvelope("tenant_id", "payload").Message)
}

func TestErrLedger_DefaultMessage(t *testing.T) {
	assert.Equal(t, "Internal server error", ErrLedger("", nil).Message)
	assert.Equal(t, "member not found", ErrLedger("member not found", nil).Message)
}

func TestErrorCatalog(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
		message    string
	}{
		{"UnknownTenant", ErrUnknownTenant(), "ENV_002", 401, "Invalid agency_uid"},
		{"DecryptionFailed", ErrDecryptionFailed(nil), "ENV_003", 400, "Invalid encrypted payload"},
		{"Validation", Validation("bad"), "ENV_004", 400, "bad"},
		{"InsufficientFunds", ErrInsufficientFunds(), "TRF_001", 402, "Insufficient balance"},
		{"TransferConflict", ErrTransferConflict(), "TRF_002", 409, "transfer_id already used with a different amount"},
		{"LedgerUnavailable", ErrLedgerUnavailable(nil), "LDG_002", 500, "Internal server error"},
		{"Provider", ErrProvider("", nil), "PRV_001", 502, "Game provider error"},
		{"ProviderUnavailable", ErrProviderUnavailable(nil), "PRV_002", 502, "Game provider unavailable"},
		{"RateLimit", ErrRateLimitExceeded(), "RATE_001", 429, "Rate limit exceeded"},
		{"Database", ErrDatabaseError(nil), "SYS_001", 500, "Internal database error"},
		{"Encryption", ErrEncryptionFailure(nil), "SYS_003", 500, "Encryption service failure"},
		{"Internal", InternalError(nil), "SYS_001", 500, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
			assert.Equal(t, tt.message, tt.err.Message)
		})
	}
}
