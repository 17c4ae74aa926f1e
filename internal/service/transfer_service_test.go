package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"provider-bridge/internal/core/domain"
	"provider-bridge/internal/core/ports"
	"provider-bridge/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type transferTestDeps struct {
	svc          *TransferServiceImpl
	walletRepo   *mocks.MockWalletRepository
	transferRepo *mocks.MockTransferRepository
	cache        *mocks.MockIdempotencyCache
	transactor   *mocks.MockDBTransactor
	ledger       *mocks.MockLedgerClient
	ctrl         *gomock.Controller
}

func setupTransferService(t *testing.T) *transferTestDeps {
	ctrl := gomock.NewController(t)
	reg := newTestRegistry(t)
	d := &transferTestDeps{
		walletRepo:   mocks.NewMockWalletRepository(ctrl),
		transferRepo: mocks.NewMockTransferRepository(ctrl),
		cache:        mocks.NewMockIdempotencyCache(ctrl),
		transactor:   mocks.NewMockDBTransactor(ctrl),
		ledger:       mocks.NewMockLedgerClient(ctrl),
		ctrl:         ctrl,
	}
	d.svc = NewTransferService(
		reg,
		NewEnvelopeValidator(reg),
		d.walletRepo,
		d.transferRepo,
		d.cache,
		d.transactor,
		d.ledger,
		TransferConfig{DefaultCurrency: "USD", CacheTTL: time.Hour},
		newTestLogger(),
	)
	return d
}

// expectApplied wires the happy path of a fresh transfer against a wallet
// holding balance minor units.
func (d *transferTestDeps) expectApplied(transferID, currency string, balance, amount int64) uuid.UUID {
	tx := &mockTx{}
	walletID := uuid.New()
	key := domain.BuildTransferKey(testTenant, transferID)

	d.cache.EXPECT().Get(gomock.Any(), key).Return(nil, nil)
	d.transferRepo.EXPECT().GetByTransferID(gomock.Any(), testTenant, transferID).Return(nil, nil)
	d.transactor.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	d.walletRepo.EXPECT().GetOrCreateForUpdate(gomock.Any(), tx, testTenant, "p1", currency).
		Return(&domain.Wallet{ID: walletID, TenantID: testTenant, PlayerID: "p1", Currency: currency, Balance: balance}, nil)
	d.transferRepo.EXPECT().GetByTransferIDTx(gomock.Any(), tx, testTenant, transferID).Return(nil, nil)
	d.walletRepo.EXPECT().UpdateBalance(gomock.Any(), tx, walletID, balance+amount).Return(nil)
	d.transferRepo.EXPECT().Create(gomock.Any(), tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, o *domain.TransferOutcome) error {
			if !o.Consistent() {
				return errors.New("inconsistent outcome")
			}
			return nil
		})
	d.cache.EXPECT().Set(gomock.Any(), key, gomock.Any(), time.Hour).Return(nil)
	return walletID
}

func TestTransferService_Deposit(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	d.expectApplied("T1", "USD", 10000, 5000)

	env := sealEnvelope(t, testTenant, primarySecret, map[string]any{
		"member_account": "p1",
		"credit_amount":  50,
		"transfer_id":    "T1",
	})
	reply := d.svc.Transfer(context.Background(), env)
	require.Equal(t, http.StatusOK, reply.HTTPStatus)
	assert.Equal(t, domain.CodeSuccess, reply.Body.Code)

	var out transferPayload
	openPayload(t, reply.Body.Payload, primarySecret, &out)
	assert.Equal(t, "p1", out.PlayerName)
	assert.Equal(t, "USD", out.Currency)
	assert.Equal(t, "50.00", out.TransferAmount)
	assert.Equal(t, "100.00", out.BeforeAmount)
	assert.Equal(t, "150.00", out.AfterAmount)
	assert.Equal(t, "T1", out.TransferID)
	assert.NotEmpty(t, out.TransactionID)
	assert.Equal(t, int(domain.TransferStatusSuccess), out.TransferStatus)
	assert.Empty(t, out.GameLaunchURL)
}

func TestTransferService_Withdrawal_FallbackKey(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	d.expectApplied("T2", "PHP", 10000, -2550)

	env := sealEnvelope(t, testTenant, fallbackSecret, map[string]any{
		"member_account": "p1",
		"credit_amount":  "-25.50",
		"transfer_id":    "T2",
		"currency_code":  "php",
	})
	reply := d.svc.Transfer(context.Background(), env)
	require.Equal(t, http.StatusOK, reply.HTTPStatus)

	var out transferPayload
	openPayload(t, reply.Body.Payload, fallbackSecret, &out)
	assert.Equal(t, "PHP", out.Currency)
	assert.Equal(t, "-25.50", out.TransferAmount)
	assert.Equal(t, "74.50", out.AfterAmount)
}

func TestTransferService_InsufficientFunds(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	tx := &mockTx{}
	d.cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil)
	d.transferRepo.EXPECT().GetByTransferID(gomock.Any(), testTenant, "T3").Return(nil, nil)
	d.transactor.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	d.walletRepo.EXPECT().GetOrCreateForUpdate(gomock.Any(), tx, testTenant, "p1", "USD").
		Return(&domain.Wallet{ID: uuid.New(), Balance: 1000}, nil)
	d.transferRepo.EXPECT().GetByTransferIDTx(gomock.Any(), tx, testTenant, "T3").Return(nil, nil)

	env := sealEnvelope(t, testTenant, primarySecret, map[string]any{
		"member_account": "p1",
		"credit_amount":  "-50",
		"transfer_id":    "T3",
	})
	reply := d.svc.Transfer(context.Background(), env)
	assert.Equal(t, http.StatusPaymentRequired, reply.HTTPStatus)
	assert.Equal(t, domain.CodeFailure, reply.Body.Code)
	assert.Equal(t, "Insufficient balance", reply.Body.Msg)

	var out transferPayload
	openPayload(t, reply.Body.Payload, primarySecret, &out)
	assert.Equal(t, int(domain.TransferStatusFailed), out.TransferStatus)
	assert.Equal(t, "10.00", out.BeforeAmount)
	assert.Equal(t, "10.00", out.AfterAmount)
	_, err := uuid.Parse(out.TransactionID)
	assert.NoError(t, err, "failed transfers still carry a transaction_id")
}

func TestTransferService_DepositOverflow(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	tx := &mockTx{}
	d.cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil)
	d.transferRepo.EXPECT().GetByTransferID(gomock.Any(), testTenant, "T-big").Return(nil, nil)
	d.transactor.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	d.walletRepo.EXPECT().GetOrCreateForUpdate(gomock.Any(), tx, testTenant, "p1", "USD").
		Return(&domain.Wallet{ID: uuid.New(), Balance: 100}, nil)
	d.transferRepo.EXPECT().GetByTransferIDTx(gomock.Any(), tx, testTenant, "T-big").Return(nil, nil)

	// math.MaxInt64 minor units
	env := sealEnvelope(t, testTenant, primarySecret, map[string]any{
		"member_account": "p1",
		"credit_amount":  "92233720368547758.07",
		"transfer_id":    "T-big",
	})
	reply := d.svc.Transfer(context.Background(), env)
	assert.Equal(t, http.StatusBadRequest, reply.HTTPStatus)
	assert.Equal(t, domain.CodeFailure, reply.Body.Code)
	assert.Contains(t, reply.Body.Msg, "overflow")

	var out transferPayload
	openPayload(t, reply.Body.Payload, primarySecret, &out)
	assert.Equal(t, int(domain.TransferStatusFailed), out.TransferStatus)
	assert.Equal(t, "T-big", out.TransferID)
}

func TestTransferService_Query(t *testing.T) {
	t.Run("existing wallet", func(t *testing.T) {
		d := setupTransferService(t)
		defer d.ctrl.Finish()

		d.walletRepo.EXPECT().Get(gomock.Any(), testTenant, "p1", "USD").Return(&domain.Wallet{Balance: 4200}, nil)

		env := sealEnvelope(t, testTenant, primarySecret, map[string]any{"member_account": "p1", "credit_amount": "0"})
		reply := d.svc.Transfer(context.Background(), env)
		require.Equal(t, http.StatusOK, reply.HTTPStatus)

		var out transferPayload
		openPayload(t, reply.Body.Payload, primarySecret, &out)
		assert.Equal(t, int(domain.TransferStatusQuery), out.TransferStatus)
		assert.Equal(t, "42.00", out.AfterAmount)
		assert.Equal(t, "0.00", out.TransferAmount)
		assert.NotEmpty(t, out.TransactionID)
	})

	t.Run("unknown player reads zero", func(t *testing.T) {
		d := setupTransferService(t)
		defer d.ctrl.Finish()

		d.walletRepo.EXPECT().Get(gomock.Any(), testTenant, "p9", "USD").Return(nil, nil)

		outcome, err := d.svc.Apply(context.Background(), testTenant, &domain.TransferRequest{MemberAccount: "p9", CreditAmount: "0"})
		require.NoError(t, err)
		assert.Equal(t, int64(0), outcome.BalanceAfter)
		assert.Equal(t, domain.TransferKindQuery, outcome.Kind())
	})

	t.Run("two queries get distinct transaction ids", func(t *testing.T) {
		d := setupTransferService(t)
		defer d.ctrl.Finish()

		d.walletRepo.EXPECT().Get(gomock.Any(), testTenant, "p1", "USD").Return(nil, nil).Times(2)

		req := &domain.TransferRequest{MemberAccount: "p1", CreditAmount: "0"}
		a, err := d.svc.Apply(context.Background(), testTenant, req)
		require.NoError(t, err)
		b, err := d.svc.Apply(context.Background(), testTenant, req)
		require.NoError(t, err)
		assert.NotEqual(t, a.TransactionID, b.TransactionID)
	})
}

func TestTransferService_Replay(t *testing.T) {
	prior := &domain.TransferOutcome{
		ID:            uuid.New(),
		TenantID:      testTenant,
		PlayerID:      "p1",
		Currency:      "USD",
		Amount:        5000,
		BalanceBefore: 0,
		BalanceAfter:  5000,
		TransferID:    "T1",
		TransactionID: "tx-original",
		Status:        domain.TransferStatusSuccess,
	}
	req := &domain.TransferRequest{MemberAccount: "p1", CreditAmount: "50.00", TransferID: "T1"}
	key := domain.BuildTransferKey(testTenant, "T1")

	t.Run("from cache", func(t *testing.T) {
		d := setupTransferService(t)
		defer d.ctrl.Finish()

		raw, _ := json.Marshal(prior)
		d.cache.EXPECT().Get(gomock.Any(), key).Return(raw, nil)

		outcome, err := d.svc.Apply(context.Background(), testTenant, req)
		require.NoError(t, err)
		assert.Equal(t, "tx-original", outcome.TransactionID)
		assert.Equal(t, int64(5000), outcome.BalanceAfter)
	})

	t.Run("from journal", func(t *testing.T) {
		d := setupTransferService(t)
		defer d.ctrl.Finish()

		d.cache.EXPECT().Get(gomock.Any(), key).Return(nil, nil)
		d.transferRepo.EXPECT().GetByTransferID(gomock.Any(), testTenant, "T1").Return(prior, nil)

		outcome, err := d.svc.Apply(context.Background(), testTenant, req)
		require.NoError(t, err)
		assert.Equal(t, "tx-original", outcome.TransactionID)
	})

	t.Run("redis down falls through to journal", func(t *testing.T) {
		d := setupTransferService(t)
		defer d.ctrl.Finish()

		d.cache.EXPECT().Get(gomock.Any(), key).Return(nil, errors.New("connection refused"))
		d.transferRepo.EXPECT().GetByTransferID(gomock.Any(), testTenant, "T1").Return(prior, nil)

		outcome, err := d.svc.Apply(context.Background(), testTenant, req)
		require.NoError(t, err)
		assert.Equal(t, "tx-original", outcome.TransactionID)
	})

	t.Run("corrupt cache entry is ignored", func(t *testing.T) {
		d := setupTransferService(t)
		defer d.ctrl.Finish()

		d.cache.EXPECT().Get(gomock.Any(), key).Return([]byte("{broken"), nil)
		d.transferRepo.EXPECT().GetByTransferID(gomock.Any(), testTenant, "T1").Return(prior, nil)

		outcome, err := d.svc.Apply(context.Background(), testTenant, req)
		require.NoError(t, err)
		assert.Equal(t, "tx-original", outcome.TransactionID)
	})

	t.Run("concurrent insert loses the unique race", func(t *testing.T) {
		d := setupTransferService(t)
		defer d.ctrl.Finish()

		tx := &mockTx{}
		walletID := uuid.New()
		d.cache.EXPECT().Get(gomock.Any(), key).Return(nil, nil)
		gomock.InOrder(
			d.transferRepo.EXPECT().GetByTransferID(gomock.Any(), testTenant, "T1").Return(nil, nil),
			d.transactor.EXPECT().Begin(gomock.Any()).Return(tx, nil),
			d.walletRepo.EXPECT().GetOrCreateForUpdate(gomock.Any(), tx, testTenant, "p1", "USD").
				Return(&domain.Wallet{ID: walletID}, nil),
			d.transferRepo.EXPECT().GetByTransferIDTx(gomock.Any(), tx, testTenant, "T1").Return(nil, nil),
			d.walletRepo.EXPECT().UpdateBalance(gomock.Any(), tx, walletID, int64(5000)).Return(nil),
			d.transferRepo.EXPECT().Create(gomock.Any(), tx, gomock.Any()).Return(ports.ErrTransferExists),
			d.transferRepo.EXPECT().GetByTransferID(gomock.Any(), testTenant, "T1").Return(prior, nil),
		)

		outcome, err := d.svc.Apply(context.Background(), testTenant, req)
		require.NoError(t, err)
		assert.Equal(t, "tx-original", outcome.TransactionID)
	})

	t.Run("replay committed while waiting for the lock", func(t *testing.T) {
		d := setupTransferService(t)
		defer d.ctrl.Finish()

		tx := &mockTx{}
		d.cache.EXPECT().Get(gomock.Any(), key).Return(nil, nil)
		d.transferRepo.EXPECT().GetByTransferID(gomock.Any(), testTenant, "T1").Return(nil, nil)
		d.transactor.EXPECT().Begin(gomock.Any()).Return(tx, nil)
		d.walletRepo.EXPECT().GetOrCreateForUpdate(gomock.Any(), tx, testTenant, "p1", "USD").
			Return(&domain.Wallet{ID: uuid.New(), Balance: 5000}, nil)
		d.transferRepo.EXPECT().GetByTransferIDTx(gomock.Any(), tx, testTenant, "T1").Return(prior, nil)

		outcome, err := d.svc.Apply(context.Background(), testTenant, req)
		require.NoError(t, err)
		assert.Equal(t, "tx-original", outcome.TransactionID)
	})

	t.Run("different amount conflicts", func(t *testing.T) {
		d := setupTransferService(t)
		defer d.ctrl.Finish()

		d.cache.EXPECT().Get(gomock.Any(), key).Return(nil, nil)
		d.transferRepo.EXPECT().GetByTransferID(gomock.Any(), testTenant, "T1").Return(prior, nil)

		env := sealEnvelope(t, testTenant, primarySecret, map[string]any{
			"member_account": "p1",
			"credit_amount":  "60",
			"transfer_id":    "T1",
		})
		reply := d.svc.Transfer(context.Background(), env)
		assert.Equal(t, http.StatusConflict, reply.HTTPStatus)
		assert.Equal(t, domain.CodeFailure, reply.Body.Code)

		var out transferPayload
		openPayload(t, reply.Body.Payload, primarySecret, &out)
		assert.Equal(t, int(domain.TransferStatusFailed), out.TransferStatus)
		assert.Equal(t, "60.00", out.TransferAmount)
	})

	t.Run("different player conflicts", func(t *testing.T) {
		d := setupTransferService(t)
		defer d.ctrl.Finish()

		d.cache.EXPECT().Get(gomock.Any(), key).Return(nil, nil)
		d.transferRepo.EXPECT().GetByTransferID(gomock.Any(), testTenant, "T1").Return(prior, nil)

		_, err := d.svc.Apply(context.Background(), testTenant, &domain.TransferRequest{
			MemberAccount: "p2", CreditAmount: "50", TransferID: "T1",
		})
		assertAppError(t, err, "TRF_002")
	})
}

func TestTransferService_LaunchAfterDeposit(t *testing.T) {
	t.Run("url attached", func(t *testing.T) {
		d := setupTransferService(t)
		defer d.ctrl.Finish()

		d.expectApplied("T4", "USD", 0, 10000)
		d.ledger.EXPECT().Launch(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req *domain.LaunchRequest) (string, error) {
				assert.Equal(t, "100.00", req.CreditAmount)
				assert.Equal(t, "7", req.GameUID)
				return "https://games.example.com/7", nil
			})

		env := sealEnvelope(t, testTenant, primarySecret, map[string]any{
			"member_account": "p1", "credit_amount": "100", "transfer_id": "T4", "game_uid": "7",
		})
		reply := d.svc.Transfer(context.Background(), env)
		require.Equal(t, http.StatusOK, reply.HTTPStatus)

		var out transferPayload
		openPayload(t, reply.Body.Payload, primarySecret, &out)
		assert.Equal(t, "https://games.example.com/7", out.GameLaunchURL)
	})

	t.Run("launch failure keeps the transfer", func(t *testing.T) {
		d := setupTransferService(t)
		defer d.ctrl.Finish()

		d.expectApplied("T5", "USD", 0, 10000)
		d.ledger.EXPECT().Launch(gomock.Any(), gomock.Any()).Return("", errors.New("ledger down"))

		env := sealEnvelope(t, testTenant, primarySecret, map[string]any{
			"member_account": "p1", "credit_amount": "100", "transfer_id": "T5", "game_uid": "7",
		})
		reply := d.svc.Transfer(context.Background(), env)
		require.Equal(t, http.StatusOK, reply.HTTPStatus)

		var out transferPayload
		openPayload(t, reply.Body.Payload, primarySecret, &out)
		assert.Equal(t, int(domain.TransferStatusSuccess), out.TransferStatus)
		assert.Empty(t, out.GameLaunchURL)
	})
}

func TestTransferService_RejectedBeforeLedger(t *testing.T) {
	tests := []struct {
		name       string
		env        func(t *testing.T) domain.Envelope
		wantStatus int
		sealedWith string
	}{
		{
			name: "deposit without transfer_id",
			env: func(t *testing.T) domain.Envelope {
				return sealEnvelope(t, testTenant, fallbackSecret, map[string]any{"member_account": "p1", "credit_amount": "5"})
			},
			wantStatus: http.StatusBadRequest,
			sealedWith: fallbackSecret,
		},
		{
			name: "three decimal places",
			env: func(t *testing.T) domain.Envelope {
				return sealEnvelope(t, testTenant, primarySecret, map[string]any{"member_account": "p1", "credit_amount": "5.001", "transfer_id": "x"})
			},
			wantStatus: http.StatusBadRequest,
			sealedWith: primarySecret,
		},
		{
			name: "unknown tenant has no payload",
			env: func(t *testing.T) domain.Envelope {
				return sealEnvelope(t, "nobody", otherSecret, map[string]any{"member_account": "p1"})
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "undecryptable uses tenant primary",
			env: func(t *testing.T) domain.Envelope {
				return sealEnvelope(t, testOtherTenant, primarySecret, map[string]any{"member_account": "p1"})
			},
			wantStatus: http.StatusBadRequest,
			sealedWith: otherSecret,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setupTransferService(t)
			defer d.ctrl.Finish()

			reply := d.svc.Transfer(context.Background(), tt.env(t))
			assert.Equal(t, tt.wantStatus, reply.HTTPStatus)
			assert.Equal(t, domain.CodeFailure, reply.Body.Code)

			if tt.sealedWith == "" {
				assert.Nil(t, reply.Body.Payload)
				return
			}
			var out transferPayload
			openPayload(t, reply.Body.Payload, tt.sealedWith, &out)
			assert.Equal(t, int(domain.TransferStatusFailed), out.TransferStatus)
		})
	}
}
