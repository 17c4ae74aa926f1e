package service

import (
	"time"

	"provider-bridge/internal/core/domain"
	"provider-bridge/internal/core/ports"
	"provider-bridge/internal/envelope"
	"provider-bridge/pkg/apperror"

	"github.com/rs/zerolog"
)

const msgSuccess = "Success"

func successReply(tenantID string, payload any) *ports.Reply {
	return &ports.Reply{
		HTTPStatus: 200,
		TenantID:   tenantID,
		Body:       domain.ProviderResponse{Code: domain.CodeSuccess, Msg: msgSuccess, Payload: payload},
	}
}

// failureReply maps err onto a code=1 reply. Non-AppErrors become 500s.
func failureReply(tenantID string, err error, payload any) *ports.Reply {
	appErr := apperror.From(err)
	return &ports.Reply{
		HTTPStatus: appErr.HTTPStatus,
		TenantID:   tenantID,
		Body:       domain.ProviderResponse{Code: domain.CodeFailure, Msg: appErr.Message, Payload: payload},
	}
}

// errorKey picks the key that seals an error payload: the key that opened
// the request, else the tenant's primary. Unknown tenants get no key, and
// their error replies carry no payload.
func errorKey(registry ports.KeyRegistry, vr *ports.ValidatedRequest, tenantID string) (domain.Credential, bool) {
	if vr != nil {
		return vr.Credential, true
	}
	return registry.Primary(tenantID)
}

// sealError seals v for an error reply under errorKey. The reply goes out
// without a payload when no key is known or sealing fails.
func sealError(log zerolog.Logger, registry ports.KeyRegistry, vr *ports.ValidatedRequest, tenantID string, v any) any {
	cred, ok := errorKey(registry, vr, tenantID)
	if !ok {
		return nil
	}
	payload, err := envelope.SealPayload(v, cred.Secret)
	if err != nil {
		log.Error().Err(err).Str("tenant_id", cred.TenantID).Msg("failed to seal error payload")
		return nil
	}
	return payload
}

func nowMillis() string {
	return domain.NowMillis(time.Now())
}
