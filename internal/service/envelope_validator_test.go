package service

import (
	"testing"

	"provider-bridge/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeValidator_PrimaryKey(t *testing.T) {
	v := NewEnvelopeValidator(newTestRegistry(t))
	env := sealEnvelope(t, testTenant, primarySecret, map[string]any{"member_account": "p1", "game_uid": "42"})

	vr, err := v.ValidateAndDecrypt(env, domain.OperationLaunch)
	require.NoError(t, err)
	assert.Equal(t, domain.KeyRolePrimary, vr.Credential.Role)

	req, ok := vr.Request.(*domain.LaunchRequest)
	require.True(t, ok)
	assert.Equal(t, "p1", req.MemberAccount)
	assert.Equal(t, "42", req.GameUID)
}

func TestEnvelopeValidator_FallbackKey(t *testing.T) {
	v := NewEnvelopeValidator(newTestRegistry(t))
	env := sealEnvelope(t, testTenant, fallbackSecret, map[string]any{"member_account": "p1", "credit_amount": "0"})

	vr, err := v.ValidateAndDecrypt(env, domain.OperationTransfer)
	require.NoError(t, err)
	assert.Equal(t, domain.KeyRoleFallback, vr.Credential.Role)
	assert.Equal(t, []byte(fallbackSecret), vr.Credential.Secret)
}

func TestEnvelopeValidator_Errors(t *testing.T) {
	reg := newTestRegistry(t)
	v := NewEnvelopeValidator(reg)

	tests := []struct {
		name      string
		env       domain.Envelope
		wantCode  string
		wantVR    bool
		wantInMsg string
	}{
		{
			name:      "missing fields",
			env:       domain.Envelope{TenantID: testTenant},
			wantCode:  "ENV_001",
			wantInMsg: "timestamp, payload",
		},
		{
			name:     "unknown tenant",
			env:      sealEnvelope(t, "nobody", primarySecret, map[string]string{"member_account": "p1"}),
			wantCode: "ENV_002",
		},
		{
			name:     "wrong key",
			env:      sealEnvelope(t, testTenant, otherSecret, map[string]string{"member_account": "p1"}),
			wantCode: "ENV_003",
		},
		{
			name:     "garbage payload",
			env:      domain.Envelope{TenantID: testTenant, Timestamp: "1", Payload: "%%%not-base64"},
			wantCode: "ENV_003",
		},
		{
			name:     "ill-typed field",
			env:      sealEnvelope(t, testTenant, primarySecret, map[string]any{"member_account": []string{"p1"}}),
			wantCode: "ENV_004",
			wantVR:   true,
		},
		{
			name:     "payload names another tenant",
			env:      sealEnvelope(t, testTenant, primarySecret, map[string]any{"agency_uid": testOtherTenant, "member_account": "p1"}),
			wantCode: "ENV_002",
			wantVR:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vr, err := v.ValidateAndDecrypt(tt.env, domain.OperationLaunch)
			assertAppError(t, err, tt.wantCode)
			if tt.wantInMsg != "" {
				assert.Contains(t, err.Error(), tt.wantInMsg)
			}
			if tt.wantVR {
				require.NotNil(t, vr)
				assert.Nil(t, vr.Request)
			} else {
				assert.Nil(t, vr)
			}
		})
	}
}
