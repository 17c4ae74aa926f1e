package service

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"provider-bridge/config"
	"provider-bridge/internal/core/domain"
	"provider-bridge/internal/envelope"
	"provider-bridge/pkg/aesecb"
	"provider-bridge/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testTenant      = "agency-1"
	testOtherTenant = "agency-2"

	primarySecret  = "0123456789abcdef0123456789abcdef"
	fallbackSecret = "fedcba9876543210fedcba9876543210"
	otherSecret    = "abcdefabcdefabcdefabcdefabcdefab"
)

func newTestLogger() zerolog.Logger { return zerolog.New(io.Discard) }

// mockTx implements pgx.Tx for testing
type mockTx struct{ pgx.Tx }

func (m *mockTx) Rollback(_ context.Context) error { return nil }
func (m *mockTx) Commit(_ context.Context) error   { return nil }

func assertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, expectedCode, appErr.Code)
}

// newTestRegistry registers agency-1 with a primary and a fallback key and
// agency-2 with a single key.
func newTestRegistry(t *testing.T) *KeyRegistry {
	t.Helper()
	reg, err := NewKeyRegistry([]config.TenantConfig{
		{
			TenantID:        testTenant,
			Secret:          primarySecret,
			UpstreamURL:     "https://provider.example.com/launch",
			FallbackSecrets: []string{fallbackSecret},
		},
		{TenantID: testOtherTenant, Secret: otherSecret},
	})
	require.NoError(t, err)
	return reg
}

func sealEnvelope(t *testing.T, tenantID, secret string, v any) domain.Envelope {
	t.Helper()
	payload, err := envelope.SealPayload(v, []byte(secret))
	require.NoError(t, err)
	return domain.Envelope{TenantID: tenantID, Timestamp: "1700000000000", Payload: payload}
}

// openPayload decrypts a reply payload with secret into out.
func openPayload(t *testing.T, payload any, secret string, out any) {
	t.Helper()
	ct, ok := payload.(string)
	require.True(t, ok, "payload is %T, want sealed string", payload)
	plain, err := aesecb.Decrypt(ct, []byte(secret))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(plain, out))
}
