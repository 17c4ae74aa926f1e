package postgres

import (
	"context"
	"errors"
	"fmt"

	"provider-bridge/internal/core/domain"
	"provider-bridge/internal/core/ports"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

const transferColumnList = `id, tenant_id, player_id, currency, amount, balance_before, balance_after,
		transfer_id, transaction_id, status, created_at`

// TransferRepo implements ports.TransferRepository over the transfers journal.
type TransferRepo struct {
	pool Pool
}

// NewTransferRepo creates a new TransferRepo.
func NewTransferRepo(pool Pool) *TransferRepo {
	return &TransferRepo{pool: pool}
}

// Create journals an applied transfer. A duplicate (tenant_id, transfer_id)
// returns ports.ErrTransferExists.
func (r *TransferRepo) Create(ctx context.Context, tx pgx.Tx, o *domain.TransferOutcome) error {
	query := `INSERT INTO transfers (` + transferColumnList + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := tx.Exec(ctx, query,
		o.ID, o.TenantID, o.PlayerID, o.Currency, o.Amount,
		o.BalanceBefore, o.BalanceAfter, o.TransferID, o.TransactionID,
		int(o.Status), o.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ports.ErrTransferExists
		}
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

// GetByTransferID reads a journaled transfer outside any transaction.
func (r *TransferRepo) GetByTransferID(ctx context.Context, tenantID, transferID string) (*domain.TransferOutcome, error) {
	return r.get(r.pool.QueryRow(ctx, selectTransfer, tenantID, transferID))
}

// GetByTransferIDTx reads a journaled transfer inside tx.
func (r *TransferRepo) GetByTransferIDTx(ctx context.Context, tx pgx.Tx, tenantID, transferID string) (*domain.TransferOutcome, error) {
	return r.get(tx.QueryRow(ctx, selectTransfer, tenantID, transferID))
}

const selectTransfer = `SELECT ` + transferColumnList + `
		FROM transfers WHERE tenant_id = $1 AND transfer_id = $2`

func (r *TransferRepo) get(row pgx.Row) (*domain.TransferOutcome, error) {
	o := &domain.TransferOutcome{}
	var status int
	err := row.Scan(
		&o.ID, &o.TenantID, &o.PlayerID, &o.Currency, &o.Amount,
		&o.BalanceBefore, &o.BalanceAfter, &o.TransferID, &o.TransactionID,
		&status, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	o.Status = domain.TransferStatus(status)
	return o, nil
}
