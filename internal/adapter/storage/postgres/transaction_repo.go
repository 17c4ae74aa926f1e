package postgres

import (
	"context"
	"fmt"

	"provider-bridge/internal/core/domain"
)

// TransactionRepo implements ports.TransactionRepository over the
// game_transactions table the ledger writes.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// ListByTenant returns every game transaction of a tenant, oldest first.
func (r *TransactionRepo) ListByTenant(ctx context.Context, tenantID string) ([]domain.TransactionRecord, error) {
	query := `SELECT tenant_id, player_id, bet_amount, win_amount, currency,
		serial_number, game_round, game_id, occurred_at
		FROM game_transactions WHERE tenant_id = $1
		ORDER BY occurred_at ASC, serial_number ASC`

	rows, err := r.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var records []domain.TransactionRecord
	for rows.Next() {
		var rec domain.TransactionRecord
		if err := rows.Scan(
			&rec.TenantID, &rec.PlayerID, &rec.BetAmount, &rec.WinAmount, &rec.Currency,
			&rec.SerialNumber, &rec.GameRound, &rec.GameID, &rec.OccurredAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return records, nil
}
