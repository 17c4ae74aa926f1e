package ports

//go:generate mockgen -source=clients.go -destination=mocks/mock_clients.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"

	"provider-bridge/internal/core/domain"
)

// LedgerClient talks to the ledger's HTTP API.
type LedgerClient interface {
	// Callback forwards a sealed, ledger-schema balance adjustment.
	Callback(ctx context.Context, env domain.Envelope) (*LedgerCallbackResult, error)
	// Launch asks the ledger for a seamless game URL.
	Launch(ctx context.Context, req *domain.LaunchRequest) (string, error)
}

// LedgerCallbackResult is the ledger's answer to a callback. Payload is set
// when the ledger sealed the result itself.
type LedgerCallbackResult struct {
	Code         int               `json:"code"`
	Msg          string            `json:"msg"`
	Payload      json.RawMessage   `json:"payload,omitempty"`
	CreditAmount domain.FlexString `json:"credit_amount,omitempty"`
	Balance      domain.FlexString `json:"balance,omitempty"`
}

// LedgerError is a well-formed refusal from the ledger (code != 0 or non-2xx).
type LedgerError struct {
	HTTPStatus int
	Code       int
	Msg        string
}

func (e *LedgerError) Error() string {
	return fmt.Sprintf("ledger rejected request (http %d, code %d): %s", e.HTTPStatus, e.Code, e.Msg)
}

// ProviderClient calls a tenant's upstream game provider.
type ProviderClient interface {
	// Launch seals req with keys[0], posts it to keys[0].UpstreamURL and
	// opens the reply with any of keys.
	Launch(ctx context.Context, keys []domain.Credential, req *domain.LaunchRequest) (string, error)
}

// ProviderError is a well-formed refusal from an upstream provider.
type ProviderError struct {
	HTTPStatus int
	Code       int
	Msg        string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider rejected request (http %d, code %d): %s", e.HTTPStatus, e.Code, e.Msg)
}
