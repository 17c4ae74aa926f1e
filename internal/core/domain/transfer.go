package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransferStatus is the transfer_status value on the wire.
type TransferStatus int

const (
	TransferStatusQuery   TransferStatus = 0
	TransferStatusSuccess TransferStatus = 1
	TransferStatusFailed  TransferStatus = 2
)

// TransferKind is derived from the sign of the requested amount.
type TransferKind string

const (
	TransferKindDeposit    TransferKind = "DEPOSIT"
	TransferKindWithdrawal TransferKind = "WITHDRAWAL"
	TransferKindQuery      TransferKind = "QUERY"
)

// KindOf classifies a signed amount in minor units.
func KindOf(amount int64) TransferKind {
	switch {
	case amount > 0:
		return TransferKindDeposit
	case amount < 0:
		return TransferKindWithdrawal
	default:
		return TransferKindQuery
	}
}

// TransferOutcome is the result of one transfer call. Applied outcomes are
// journaled and replayed verbatim for a repeated transfer_id.
// Amounts are minor units.
type TransferOutcome struct {
	ID            uuid.UUID      `json:"id"`
	TenantID      string         `json:"tenant_id"`
	PlayerID      string         `json:"player_id"`
	Currency      string         `json:"currency"`
	Amount        int64          `json:"amount"`
	BalanceBefore int64          `json:"balance_before"`
	BalanceAfter  int64          `json:"balance_after"`
	TransferID    string         `json:"transfer_id"`
	TransactionID string         `json:"transaction_id"`
	Status        TransferStatus `json:"status"`
	GameLaunchURL string         `json:"game_launch_url,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

// Kind classifies the outcome by its amount.
func (o *TransferOutcome) Kind() TransferKind {
	return KindOf(o.Amount)
}

// Consistent reports whether the balances obey the transfer invariant.
func (o *TransferOutcome) Consistent() bool {
	if o.Status == TransferStatusSuccess {
		return o.BalanceAfter == o.BalanceBefore+o.Amount
	}
	return o.BalanceAfter == o.BalanceBefore
}

// BuildTransferKey namespaces a provider transfer_id by tenant.
func BuildTransferKey(tenantID, transferID string) string {
	return tenantID + ":transfer:" + transferID
}
