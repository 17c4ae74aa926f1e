package ports

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

import (
	"context"
	"errors"

	"provider-bridge/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WalletRepository defines persistence operations for player wallets.
// Methods accepting pgx.Tx are used inside transaction blocks for pessimistic locking.
type WalletRepository interface {
	Get(ctx context.Context, tenantID, playerID, currency string) (*domain.Wallet, error)
	// GetOrCreateForUpdate locks the wallet row, creating it at zero balance first if needed.
	GetOrCreateForUpdate(ctx context.Context, tx pgx.Tx, tenantID, playerID, currency string) (*domain.Wallet, error)
	UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance int64) error
}

// ErrTransferExists is returned by TransferRepository.Create when the
// (tenant_id, transfer_id) pair is already journaled.
var ErrTransferExists = errors.New("transfer already recorded")

// TransferRepository is the transfer journal. The unique (tenant_id, transfer_id)
// constraint makes it the durable idempotency record.
type TransferRepository interface {
	Create(ctx context.Context, tx pgx.Tx, outcome *domain.TransferOutcome) error
	GetByTransferID(ctx context.Context, tenantID, transferID string) (*domain.TransferOutcome, error)
	GetByTransferIDTx(ctx context.Context, tx pgx.Tx, tenantID, transferID string) (*domain.TransferOutcome, error)
}

// TransactionRepository reads game round rows from the ledger.
type TransactionRepository interface {
	ListByTenant(ctx context.Context, tenantID string) ([]domain.TransactionRecord, error)
}

// AuditRepository persists audit entries.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
