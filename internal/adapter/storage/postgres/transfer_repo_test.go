package postgres

import (
	"context"
	"testing"
	"time"

	"provider-bridge/internal/core/domain"
	"provider-bridge/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOutcome() *domain.TransferOutcome {
	return &domain.TransferOutcome{
		ID:            uuid.New(),
		TenantID:      "agency-1",
		PlayerID:      "p1",
		Currency:      "USD",
		Amount:        5000,
		BalanceBefore: 1000,
		BalanceAfter:  6000,
		TransferID:    "T1",
		TransactionID: uuid.NewString(),
		Status:        domain.TransferStatusSuccess,
		CreatedAt:     time.Now().UTC().Truncate(time.Microsecond),
	}
}

func outcomeRow(o *domain.TransferOutcome) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "tenant_id", "player_id", "currency", "amount", "balance_before", "balance_after",
		"transfer_id", "transaction_id", "status", "created_at",
	}).AddRow(
		o.ID, o.TenantID, o.PlayerID, o.Currency, o.Amount, o.BalanceBefore, o.BalanceAfter,
		o.TransferID, o.TransactionID, int(o.Status), o.CreatedAt,
	)
}

func outcomeArgs(o *domain.TransferOutcome) []any {
	return []any{
		o.ID, o.TenantID, o.PlayerID, o.Currency, o.Amount,
		o.BalanceBefore, o.BalanceAfter, o.TransferID, o.TransactionID,
		int(o.Status), o.CreatedAt,
	}
}

func TestTransferRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransferRepo(mock)
	o := newTestOutcome()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO transfers").
		WithArgs(outcomeArgs(o)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	assert.NoError(t, repo.Create(context.Background(), tx, o))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferRepo_Create_UniqueViolation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransferRepo(mock)
	o := newTestOutcome()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO transfers").
		WithArgs(outcomeArgs(o)...).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "transfers_tenant_transfer_key"})

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), tx, o)
	assert.ErrorIs(t, err, ports.ErrTransferExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferRepo_GetByTransferID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransferRepo(mock)
	o := newTestOutcome()

	mock.ExpectQuery("SELECT .+ FROM transfers WHERE tenant_id").
		WithArgs("agency-1", "T1").
		WillReturnRows(outcomeRow(o))

	result, err := repo.GetByTransferID(context.Background(), "agency-1", "T1")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, o.TransactionID, result.TransactionID)
	assert.Equal(t, domain.TransferStatusSuccess, result.Status)
	assert.Equal(t, int64(6000), result.BalanceAfter)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferRepo_GetByTransferIDTx_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransferRepo(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM transfers WHERE tenant_id").
		WithArgs("agency-1", "nope").
		WillReturnError(pgx.ErrNoRows)

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	result, err := repo.GetByTransferIDTx(context.Background(), tx, "agency-1", "nope")
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}
