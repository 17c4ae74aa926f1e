package service

import (
	"context"
	"errors"
	"fmt"

	"provider-bridge/internal/core/domain"
	"provider-bridge/internal/core/ports"
	"provider-bridge/pkg/apperror"

	"github.com/rs/zerolog"
)

// GameLaunchServiceImpl implements ports.GameLaunchService.
type GameLaunchServiceImpl struct {
	registry ports.KeyRegistry
	provider ports.ProviderClient
	log      zerolog.Logger
}

// NewGameLaunchService creates a new GameLaunchServiceImpl.
func NewGameLaunchService(registry ports.KeyRegistry, provider ports.ProviderClient, log zerolog.Logger) *GameLaunchServiceImpl {
	return &GameLaunchServiceImpl{registry: registry, provider: provider, log: log}
}

// LaunchGame asks the tenant's upstream provider for a launch URL.
func (s *GameLaunchServiceImpl) LaunchGame(ctx context.Context, req ports.GameLaunchRequest) (string, error) {
	keys := s.registry.Keys(req.TenantID)
	if len(keys) == 0 {
		return "", apperror.ErrUnknownTenant()
	}
	if keys[0].UpstreamURL == "" {
		return "", apperror.ErrProvider("Game provider not configured for tenant", nil)
	}

	url, err := s.provider.Launch(ctx, keys, &domain.LaunchRequest{
		TenantID:      req.TenantID,
		MemberAccount: req.MemberAccount,
		GameUID:       req.GameUID,
		Timestamp:     nowMillis(),
		CreditAmount:  req.CreditAmount,
		CurrencyCode:  req.CurrencyCode,
		Language:      req.Language,
		HomeURL:       req.HomeURL,
		Platform:      req.Platform,
	})
	if err != nil {
		var pe *ports.ProviderError
		if errors.As(err, &pe) {
			s.log.Warn().Err(err).Str("tenant_id", req.TenantID).Msg("provider refused launch")
			return "", apperror.ErrProvider(pe.Msg, err)
		}
		s.log.Error().Err(err).Str("tenant_id", req.TenantID).Msg("provider launch failed")
		return "", apperror.ErrProviderUnavailable(fmt.Errorf("provider launch: %w", err))
	}
	if url == "" {
		return "", apperror.ErrProvider("Game provider returned no launch URL", nil)
	}

	s.log.Info().
		Str("tenant_id", req.TenantID).
		Str("member_account", req.MemberAccount).
		Str("game_uid", req.GameUID).
		Msg("game launched via provider")
	return url, nil
}
