package ports

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

import (
	"context"
	"time"

	"provider-bridge/internal/core/domain"
)

// KeyRegistry resolves tenant credentials. It is immutable once built and
// safe for concurrent reads.
type KeyRegistry interface {
	// Keys returns the tenant's credentials, primary first then fallbacks in
	// registration order. Unknown tenants yield nil.
	Keys(tenantID string) []domain.Credential
	Primary(tenantID string) (domain.Credential, bool)
	// Legacy is the key used to wrap bare legacy callbacks: the first
	// fallback, or the primary when there is none.
	Legacy(tenantID string) (domain.Credential, bool)
}

// ValidatedRequest is a decrypted envelope plus the key that opened it.
type ValidatedRequest struct {
	Credential domain.Credential
	Request    domain.DecryptedRequest
}

// EnvelopeValidator opens inbound envelopes.
type EnvelopeValidator interface {
	ValidateAndDecrypt(env domain.Envelope, op domain.Operation) (*ValidatedRequest, error)
}

// IdempotencyCache is the Redis-layer transfer replay check (fast path).
type IdempotencyCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // Returns cached outcome JSON or nil
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// AuditService records provider calls asynchronously.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}

// --- Service Ports (Business Logic) ---

// Reply is a complete provider answer: status, body and the tenant it was for.
type Reply struct {
	HTTPStatus int
	TenantID   string
	Body       domain.ProviderResponse
}

// CallbackService handles provider-pushed balance adjustments.
type CallbackService interface {
	// Callback handles the POST variant: a modern envelope or a legacy bare body.
	Callback(ctx context.Context, body []byte) *Reply
	// CallbackQuery handles the GET variant; its reply is never encrypted.
	CallbackQuery(ctx context.Context, q CallbackQuery) *Reply
}

// CallbackQuery holds the GET callback query string.
type CallbackQuery struct {
	TenantID      string
	MemberAccount string
	GameUID       string
	Amount        string
	Timestamp     string
}

// LaunchService handles seamless launch envelopes.
type LaunchService interface {
	Launch(ctx context.Context, env domain.Envelope) *Reply
}

// TransferService handles signed-amount transfers.
type TransferService interface {
	Transfer(ctx context.Context, env domain.Envelope) *Reply
}

// TransactionListService pages a tenant's game transactions.
type TransactionListService interface {
	ListTransactions(ctx context.Context, env domain.Envelope) *Reply
}

// GameLaunchService serves the UI: plain JSON in, launch URL out, via the
// tenant's upstream provider.
type GameLaunchService interface {
	LaunchGame(ctx context.Context, req GameLaunchRequest) (string, error)
}

// GameLaunchRequest holds validated input for a UI game launch.
type GameLaunchRequest struct {
	TenantID      string
	MemberAccount string
	GameUID       string
	CreditAmount  string
	CurrencyCode  string
	Language      string
	HomeURL       string
	Platform      string
}
