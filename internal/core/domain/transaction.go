package domain

import "time"

// TransactionRecord is one game round row from the ledger. Amounts are minor units.
type TransactionRecord struct {
	TenantID     string    `json:"tenant_id"`
	PlayerID     string    `json:"player_id"`
	BetAmount    int64     `json:"bet_amount"`
	WinAmount    int64     `json:"win_amount"`
	Currency     string    `json:"currency"`
	SerialNumber string    `json:"serial_number"`
	GameRound    string    `json:"game_round"`
	GameID       string    `json:"game_id"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Within reports whether the record falls in [from, to], inclusive, by epoch millis.
func (r *TransactionRecord) Within(fromMillis, toMillis int64) bool {
	ms := r.OccurredAt.UnixMilli()
	return ms >= fromMillis && ms <= toMillis
}
