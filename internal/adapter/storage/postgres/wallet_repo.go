package postgres

import (
	"context"
	"errors"
	"fmt"

	"provider-bridge/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const walletColumnList = `id, tenant_id, player_id, currency, balance, created_at, updated_at`

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// Get fetches a wallet without locking. A missing wallet is (nil, nil).
func (r *WalletRepo) Get(ctx context.Context, tenantID, playerID, currency string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumnList + `
		FROM wallets WHERE tenant_id = $1 AND player_id = $2 AND currency = $3`

	w, err := scanWallet(r.pool.QueryRow(ctx, query, tenantID, playerID, currency))
	if err != nil {
		return nil, fmt.Errorf("get wallet: %w", err)
	}
	return w, nil
}

// GetOrCreateForUpdate returns the player's wallet locked FOR UPDATE,
// creating it at zero first if needed. This MUST be called within a transaction.
func (r *WalletRepo) GetOrCreateForUpdate(ctx context.Context, tx pgx.Tx, tenantID, playerID, currency string) (*domain.Wallet, error) {
	insert := `INSERT INTO wallets (id, tenant_id, player_id, currency, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 0, NOW(), NOW())
		ON CONFLICT (tenant_id, player_id, currency) DO NOTHING`

	if _, err := tx.Exec(ctx, insert, uuid.New(), tenantID, playerID, currency); err != nil {
		return nil, fmt.Errorf("ensure wallet: %w", err)
	}

	query := `SELECT ` + walletColumnList + `
		FROM wallets WHERE tenant_id = $1 AND player_id = $2 AND currency = $3 FOR UPDATE`

	w, err := scanWallet(tx.QueryRow(ctx, query, tenantID, playerID, currency))
	if err != nil {
		return nil, fmt.Errorf("lock wallet: %w", err)
	}
	if w == nil {
		return nil, fmt.Errorf("lock wallet: %s/%s/%s missing after insert", tenantID, playerID, currency)
	}
	return w, nil
}

// UpdateBalance sets a wallet's balance within a transaction.
func (r *WalletRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance int64) error {
	query := `UPDATE wallets SET balance = $1, updated_at = NOW() WHERE id = $2`

	tag, err := tx.Exec(ctx, query, balance, walletID)
	if err != nil {
		return fmt.Errorf("update wallet balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found: %s", walletID)
	}
	return nil
}

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	w := &domain.Wallet{}
	err := row.Scan(&w.ID, &w.TenantID, &w.PlayerID, &w.Currency, &w.Balance, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return w, nil
}
