package service

import (
	"encoding/json"
	"time"

	"provider-bridge/internal/core/domain"
	"provider-bridge/internal/core/ports"
	"provider-bridge/internal/envelope"
	"provider-bridge/pkg/apperror"
)

// CallbackDialect is the wire form a POST callback arrived in.
type CallbackDialect int

const (
	// DialectModern is a standard {tenant_id, timestamp, payload} envelope.
	DialectModern CallbackDialect = iota
	// DialectLegacy is a bare JSON body carrying member_account and no payload.
	DialectLegacy
)

func (d CallbackDialect) String() string {
	if d == DialectLegacy {
		return "legacy"
	}
	return "modern"
}

// parseCallbackBody detects the dialect and always returns an envelope.
// Legacy bodies are sealed under the tenant's legacy key so both dialects
// continue through the same validator.
func parseCallbackBody(body []byte, registry ports.KeyRegistry) (domain.Envelope, CallbackDialect, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return domain.Envelope{}, DialectModern, apperror.ErrMalformedEnvelope()
	}

	if _, ok := probe["payload"]; ok {
		var env domain.Envelope
		if err := json.Unmarshal(body, &env); err != nil {
			return domain.Envelope{}, DialectModern, apperror.ErrMalformedEnvelope()
		}
		return env, DialectModern, nil
	}

	if _, ok := probe["member_account"]; !ok {
		return domain.Envelope{}, DialectModern, apperror.ErrMalformedEnvelope("payload")
	}

	var legacy domain.CallbackRequest
	if err := json.Unmarshal(body, &legacy); err != nil {
		return domain.Envelope{}, DialectLegacy, apperror.Validation((&domain.FieldError{Invalid: "payload", Reason: err.Error()}).Error())
	}
	if legacy.TenantID == "" {
		return domain.Envelope{}, DialectLegacy, apperror.ErrMalformedEnvelope("tenant_id")
	}
	cred, ok := registry.Legacy(legacy.TenantID)
	if !ok {
		return domain.Envelope{TenantID: legacy.TenantID}, DialectLegacy, apperror.ErrUnknownTenant()
	}

	env, err := envelope.Seal(json.RawMessage(body), cred, time.Now())
	if err != nil {
		return domain.Envelope{TenantID: legacy.TenantID}, DialectLegacy, apperror.ErrEncryptionFailure(err)
	}
	if legacy.Timestamp != "" {
		env.Timestamp = legacy.Timestamp
	}
	return *env, DialectLegacy, nil
}
