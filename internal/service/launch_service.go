package service

import (
	"context"
	"time"

	"provider-bridge/internal/core/domain"
	"provider-bridge/internal/core/ports"
	"provider-bridge/internal/envelope"
	"provider-bridge/pkg/apperror"

	"github.com/rs/zerolog"
)

type launchPayload struct {
	GameLaunchURL string `json:"game_launch_url"`
}

// LaunchServiceImpl implements ports.LaunchService.
type LaunchServiceImpl struct {
	registry  ports.KeyRegistry
	validator ports.EnvelopeValidator
	ledger    ports.LedgerClient
	log       zerolog.Logger
}

// NewLaunchService creates a new LaunchServiceImpl.
func NewLaunchService(
	registry ports.KeyRegistry,
	validator ports.EnvelopeValidator,
	ledger ports.LedgerClient,
	log zerolog.Logger,
) *LaunchServiceImpl {
	return &LaunchServiceImpl{
		registry:  registry,
		validator: validator,
		ledger:    ledger,
		log:       log,
	}
}

// Launch returns {game_launch_url} as an envelope sealed with the tenant's
// primary key, whichever key opened the request. Failures carry no payload.
func (s *LaunchServiceImpl) Launch(ctx context.Context, env domain.Envelope) *ports.Reply {
	vr, err := s.validator.ValidateAndDecrypt(env, domain.OperationLaunch)
	if err != nil {
		return s.failure(env.TenantID, err)
	}

	req := vr.Request.(*domain.LaunchRequest)
	if err := req.Validate(); err != nil {
		return s.failure(env.TenantID, apperror.Validation(err.Error()))
	}

	if req.TenantID == "" {
		req.TenantID = env.TenantID
	}
	url, err := s.ledger.Launch(ctx, req)
	if err != nil {
		return s.failure(env.TenantID, ledgerFailure(err))
	}

	primary, ok := s.registry.Primary(env.TenantID)
	if !ok {
		return s.failure(env.TenantID, apperror.ErrUnknownTenant())
	}
	sealed, err := envelope.Seal(launchPayload{GameLaunchURL: url}, primary, time.Now())
	if err != nil {
		return s.failure(env.TenantID, apperror.ErrEncryptionFailure(err))
	}

	s.log.Info().
		Str("tenant_id", env.TenantID).
		Str("member_account", req.MemberAccount).
		Str("game_uid", req.GameUID).
		Msg("seamless launch issued")

	return successReply(env.TenantID, sealed)
}

func (s *LaunchServiceImpl) failure(tenantID string, err error) *ports.Reply {
	s.log.Warn().Err(err).Str("tenant_id", tenantID).Msg("launch failed")
	return failureReply(tenantID, err, nil)
}
