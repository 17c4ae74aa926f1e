package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Wallet is a player's balance in one currency for one tenant, in minor units.
type Wallet struct {
	ID        uuid.UUID `json:"id"`
	TenantID  string    `json:"tenant_id"`
	PlayerID  string    `json:"player_id"`
	Currency  string    `json:"currency"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CanApply reports whether adding amount keeps the balance non-negative.
func (w *Wallet) CanApply(amount int64) bool {
	if w.Overflows(amount) {
		return false
	}
	return w.Balance+amount >= 0
}

// Overflows reports whether a deposit of amount would exceed the int64 range.
func (w *Wallet) Overflows(amount int64) bool {
	return amount > 0 && w.Balance > math.MaxInt64-amount
}
