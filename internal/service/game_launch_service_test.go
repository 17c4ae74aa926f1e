package service

import (
	"context"
	"errors"
	"testing"

	"provider-bridge/config"
	"provider-bridge/internal/core/domain"
	"provider-bridge/internal/core/ports"
	"provider-bridge/internal/core/ports/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGameLaunchService_LaunchGame(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mocks.NewMockProviderClient(ctrl)
	svc := NewGameLaunchService(newTestRegistry(t), provider, newTestLogger())

	provider.EXPECT().Launch(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, keys []domain.Credential, req *domain.LaunchRequest) (string, error) {
			require.Len(t, keys, 2)
			assert.True(t, keys[0].IsPrimary())
			assert.Equal(t, testTenant, req.TenantID)
			assert.Equal(t, "p1", req.MemberAccount)
			assert.Equal(t, "42", req.GameUID)
			assert.NotEmpty(t, req.Timestamp)
			return "https://games.example.com/42", nil
		})

	url, err := svc.LaunchGame(context.Background(), ports.GameLaunchRequest{
		TenantID:      testTenant,
		MemberAccount: "p1",
		GameUID:       "42",
		CurrencyCode:  "USD",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://games.example.com/42", url)
}

func TestGameLaunchService_Errors(t *testing.T) {
	tests := []struct {
		name     string
		tenant   string
		provider func(p *mocks.MockProviderClient)
		wantCode string
	}{
		{name: "unknown tenant", tenant: "nobody", wantCode: "ENV_002"},
		{name: "no upstream configured", tenant: testOtherTenant, wantCode: "PRV_001"},
		{
			name:   "provider refuses",
			tenant: testTenant,
			provider: func(p *mocks.MockProviderClient) {
				p.EXPECT().Launch(gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", &ports.ProviderError{HTTPStatus: 200, Code: 1, Msg: "Game closed"})
			},
			wantCode: "PRV_001",
		},
		{
			name:   "provider unreachable",
			tenant: testTenant,
			provider: func(p *mocks.MockProviderClient) {
				p.EXPECT().Launch(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("dial tcp: refused"))
			},
			wantCode: "PRV_002",
		},
		{
			name:   "empty url",
			tenant: testTenant,
			provider: func(p *mocks.MockProviderClient) {
				p.EXPECT().Launch(gomock.Any(), gomock.Any(), gomock.Any()).Return("", nil)
			},
			wantCode: "PRV_001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			provider := mocks.NewMockProviderClient(ctrl)
			if tt.provider != nil {
				tt.provider(provider)
			}
			svc := NewGameLaunchService(newTestRegistry(t), provider, newTestLogger())

			url, err := svc.LaunchGame(context.Background(), ports.GameLaunchRequest{
				TenantID: tt.tenant, MemberAccount: "p1", GameUID: "1",
			})
			assert.Empty(t, url)
			assertAppError(t, err, tt.wantCode)
		})
	}
}

func TestGameLaunchService_FallbackInheritsUpstream(t *testing.T) {
	reg, err := NewKeyRegistry([]config.TenantConfig{
		{TenantID: "t", Secret: primarySecret, UpstreamURL: "https://up.example.com"},
		{TenantID: "t", Secret: fallbackSecret},
	})
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	provider := mocks.NewMockProviderClient(ctrl)
	provider.EXPECT().Launch(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, keys []domain.Credential, _ *domain.LaunchRequest) (string, error) {
			assert.Equal(t, "https://up.example.com", keys[1].UpstreamURL)
			return "https://up.example.com/play", nil
		})

	url, err := NewGameLaunchService(reg, provider, newTestLogger()).LaunchGame(context.Background(), ports.GameLaunchRequest{
		TenantID: "t", MemberAccount: "p1", GameUID: "1",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://up.example.com/play", url)
}
