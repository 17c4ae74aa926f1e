package service

import (
	"provider-bridge/internal/core/domain"
	"provider-bridge/internal/core/ports"
	"provider-bridge/internal/envelope"
	"provider-bridge/pkg/apperror"
)

// EnvelopeValidator implements ports.EnvelopeValidator.
type EnvelopeValidator struct {
	registry ports.KeyRegistry
}

// NewEnvelopeValidator creates a validator over registry.
func NewEnvelopeValidator(registry ports.KeyRegistry) *EnvelopeValidator {
	return &EnvelopeValidator{registry: registry}
}

// ValidateAndDecrypt checks presence, resolves the tenant, opens the payload
// with the primary key then each fallback, and parses it for op.
//
// Once a key has matched, the returned ValidatedRequest is non-nil even when
// err is set (parse failure, tenant mismatch) so the caller can seal its error
// reply with that key. Request is nil in that case.
func (v *EnvelopeValidator) ValidateAndDecrypt(env domain.Envelope, op domain.Operation) (*ports.ValidatedRequest, error) {
	if missing := env.MissingFields(); len(missing) > 0 {
		return nil, apperror.ErrMalformedEnvelope(missing...)
	}

	keys := v.registry.Keys(env.TenantID)
	if len(keys) == 0 {
		return nil, apperror.ErrUnknownTenant()
	}

	cred, plain, err := envelope.Open(env.Payload, keys)
	if err != nil {
		return nil, apperror.ErrDecryptionFailed(err)
	}

	vr := &ports.ValidatedRequest{Credential: cred}
	req, err := domain.ParseRequest(op, plain)
	if err != nil {
		return vr, apperror.Validation(err.Error())
	}
	if pt := req.PayloadTenantID(); pt != "" && pt != env.TenantID {
		return vr, apperror.ErrUnknownTenant()
	}

	vr.Request = req
	return vr, nil
}
