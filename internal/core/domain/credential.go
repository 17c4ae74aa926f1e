package domain

// KeyRole tells which of a tenant's keys opened a request.
type KeyRole string

const (
	KeyRolePrimary  KeyRole = "primary"
	KeyRoleFallback KeyRole = "fallback"
)

// Credential is one registered key for a tenant.
type Credential struct {
	TenantID    string
	Secret      []byte `json:"-"` // 32-byte AES key, never serialised
	UpstreamURL string
	Role        KeyRole
	Index       int // 0 for the primary, 1.. for fallbacks in registration order
}

// IsPrimary reports whether c is the tenant's first registered key.
func (c Credential) IsPrimary() bool {
	return c.Role == KeyRolePrimary
}
