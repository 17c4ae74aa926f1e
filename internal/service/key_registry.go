package service

import (
	"bytes"
	"fmt"

	"provider-bridge/config"
	"provider-bridge/internal/core/domain"
	"provider-bridge/pkg/aesecb"
)

// KeyRegistry implements ports.KeyRegistry over the configured tenants.
type KeyRegistry struct {
	byTenant map[string][]domain.Credential
}

// NewKeyRegistry builds the registry. The first entry seen for a tenant holds
// its primary key; later entries and fallback_secrets are fallbacks in the
// order they appear.
func NewKeyRegistry(tenants []config.TenantConfig) (*KeyRegistry, error) {
	r := &KeyRegistry{byTenant: make(map[string][]domain.Credential)}

	for i, t := range tenants {
		if t.TenantID == "" {
			return nil, fmt.Errorf("tenants[%d]: empty tenant_id", i)
		}
		secrets := append([]string{t.Secret}, t.FallbackSecrets...)
		for j, s := range secrets {
			key, err := aesecb.ParseKey(s)
			if err != nil {
				return nil, fmt.Errorf("tenants[%d] (%s) key %d: %w", i, t.TenantID, j, err)
			}
			if err := r.add(t.TenantID, key, t.UpstreamURL); err != nil {
				return nil, fmt.Errorf("tenants[%d]: %w", i, err)
			}
		}
	}

	if len(r.byTenant) == 0 {
		return nil, fmt.Errorf("no tenants configured")
	}
	return r, nil
}

func (r *KeyRegistry) add(tenantID string, key []byte, upstreamURL string) error {
	existing := r.byTenant[tenantID]
	for _, c := range existing {
		if bytes.Equal(c.Secret, key) {
			return fmt.Errorf("tenant %s: duplicate key", tenantID)
		}
	}

	cred := domain.Credential{
		TenantID:    tenantID,
		Secret:      key,
		UpstreamURL: upstreamURL,
		Role:        domain.KeyRolePrimary,
		Index:       len(existing),
	}
	if len(existing) > 0 {
		cred.Role = domain.KeyRoleFallback
		if cred.UpstreamURL == "" {
			cred.UpstreamURL = existing[0].UpstreamURL
		}
	}
	r.byTenant[tenantID] = append(existing, cred)
	return nil
}

// Keys returns a copy so callers cannot reorder the registry.
func (r *KeyRegistry) Keys(tenantID string) []domain.Credential {
	creds, ok := r.byTenant[tenantID]
	if !ok {
		return nil
	}
	out := make([]domain.Credential, len(creds))
	copy(out, creds)
	return out
}

func (r *KeyRegistry) Primary(tenantID string) (domain.Credential, bool) {
	creds := r.byTenant[tenantID]
	if len(creds) == 0 {
		return domain.Credential{}, false
	}
	return creds[0], true
}

func (r *KeyRegistry) Legacy(tenantID string) (domain.Credential, bool) {
	creds := r.byTenant[tenantID]
	switch len(creds) {
	case 0:
		return domain.Credential{}, false
	case 1:
		return creds[0], true
	default:
		return creds[1], true
	}
}

// Tenants reports how many tenants are registered.
func (r *KeyRegistry) Tenants() int {
	return len(r.byTenant)
}
