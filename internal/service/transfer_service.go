package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"provider-bridge/internal/core/domain"
	"provider-bridge/internal/core/ports"
	"provider-bridge/internal/envelope"
	"provider-bridge/pkg/apperror"
	"provider-bridge/pkg/money"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultTransferCacheTTL = 24 * time.Hour

type transferPayload struct {
	GameLaunchURL  string `json:"game_launch_url,omitempty"`
	PlayerName     string `json:"player_name"`
	Currency       string `json:"currency"`
	TransferAmount string `json:"transfer_amount"`
	BeforeAmount   string `json:"before_amount,omitempty"`
	AfterAmount    string `json:"after_amount,omitempty"`
	TransferID     string `json:"transfer_id"`
	TransactionID  string `json:"transaction_id,omitempty"`
	TransferStatus int    `json:"transfer_status"`
	Timestamp      string `json:"timestamp"`
}

// TransferServiceImpl implements ports.TransferService.
type TransferServiceImpl struct {
	registry        ports.KeyRegistry
	validator       ports.EnvelopeValidator
	walletRepo      ports.WalletRepository
	transferRepo    ports.TransferRepository
	cache           ports.IdempotencyCache
	transactor      ports.DBTransactor
	ledger          ports.LedgerClient
	defaultCurrency string
	cacheTTL        time.Duration
	log             zerolog.Logger
}

// TransferConfig carries the tunables of the transfer service.
type TransferConfig struct {
	DefaultCurrency string
	CacheTTL        time.Duration
}

// NewTransferService creates a new TransferServiceImpl.
func NewTransferService(
	registry ports.KeyRegistry,
	validator ports.EnvelopeValidator,
	walletRepo ports.WalletRepository,
	transferRepo ports.TransferRepository,
	cache ports.IdempotencyCache,
	transactor ports.DBTransactor,
	ledger ports.LedgerClient,
	cfg TransferConfig,
	log zerolog.Logger,
) *TransferServiceImpl {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultTransferCacheTTL
	}
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = "USD"
	}
	return &TransferServiceImpl{
		registry:        registry,
		validator:       validator,
		walletRepo:      walletRepo,
		transferRepo:    transferRepo,
		cache:           cache,
		transactor:      transactor,
		ledger:          ledger,
		defaultCurrency: cfg.DefaultCurrency,
		cacheTTL:        cfg.CacheTTL,
		log:             log,
	}
}

// Transfer decrypts the envelope, applies the transfer and seals the outcome
// with the key that opened the request. Failures are sealed the same way.
func (s *TransferServiceImpl) Transfer(ctx context.Context, env domain.Envelope) *ports.Reply {
	vr, err := s.validator.ValidateAndDecrypt(env, domain.OperationTransfer)
	if err != nil {
		return s.failure(vr, env.TenantID, nil, nil, err)
	}

	req := vr.Request.(*domain.TransferRequest)
	if err := req.Validate(); err != nil {
		return s.failure(vr, env.TenantID, req, nil, apperror.Validation(err.Error()))
	}

	outcome, err := s.Apply(ctx, env.TenantID, req)
	if err != nil {
		return s.failure(vr, env.TenantID, req, outcome, err)
	}

	if req.GameUID != "" && outcome.Status == domain.TransferStatusSuccess {
		outcome.GameLaunchURL = s.launchAfterTransfer(ctx, env.TenantID, req, outcome)
	}

	payload, err := envelope.SealPayload(newTransferPayload(outcome), vr.Credential.Secret)
	if err != nil {
		return s.failure(vr, env.TenantID, req, nil, apperror.ErrEncryptionFailure(err))
	}
	return successReply(env.TenantID, payload)
}

// Apply executes one transfer. A positive amount deposits, a negative amount
// withdraws and zero reads the balance. A replayed transfer_id with the same
// amount returns the journaled outcome; with a different amount it conflicts.
//
// On insufficient balance the returned outcome is non-nil with status Failed
// alongside the error.
func (s *TransferServiceImpl) Apply(ctx context.Context, tenantID string, req *domain.TransferRequest) (*domain.TransferOutcome, error) {
	amount := req.Amount()
	currency := s.currency(req)

	if amount == 0 {
		return s.query(ctx, tenantID, req.MemberAccount, currency)
	}

	key := domain.BuildTransferKey(tenantID, req.TransferID)

	// Layer 1: Redis replay check
	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("redis transfer check failed, falling through to DB")
	}
	if cached != nil {
		var prior domain.TransferOutcome
		if err := json.Unmarshal(cached, &prior); err == nil {
			return s.replay(&prior, req.MemberAccount, amount)
		}
		s.log.Warn().Str("key", key).Msg("corrupt cached transfer, ignoring")
	}

	// Layer 2: journal lookup
	prior, err := s.transferRepo.GetByTransferID(ctx, tenantID, req.TransferID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("journal lookup: %w", err))
	}
	if prior != nil {
		return s.replay(prior, req.MemberAccount, amount)
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := s.walletRepo.GetOrCreateForUpdate(ctx, dbTx, tenantID, req.MemberAccount, currency)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock wallet: %w", err))
	}

	// A concurrent replay may have committed while we waited for the lock.
	prior, err = s.transferRepo.GetByTransferIDTx(ctx, dbTx, tenantID, req.TransferID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("journal recheck: %w", err))
	}
	if prior != nil {
		return s.replay(prior, req.MemberAccount, amount)
	}

	now := time.Now().UTC()
	if wallet.Overflows(amount) {
		return nil, apperror.Validation("credit_amount would overflow the balance")
	}
	if !wallet.CanApply(amount) {
		return &domain.TransferOutcome{
			TenantID:      tenantID,
			PlayerID:      req.MemberAccount,
			Currency:      currency,
			Amount:        amount,
			BalanceBefore: wallet.Balance,
			BalanceAfter:  wallet.Balance,
			TransferID:    req.TransferID,
			TransactionID: uuid.New().String(),
			Status:        domain.TransferStatusFailed,
			CreatedAt:     now,
		}, apperror.ErrInsufficientFunds()
	}

	outcome := &domain.TransferOutcome{
		ID:            uuid.New(),
		TenantID:      tenantID,
		PlayerID:      req.MemberAccount,
		Currency:      currency,
		Amount:        amount,
		BalanceBefore: wallet.Balance,
		BalanceAfter:  wallet.Balance + amount,
		TransferID:    req.TransferID,
		TransactionID: uuid.New().String(),
		Status:        domain.TransferStatusSuccess,
		CreatedAt:     now,
	}

	if err := s.walletRepo.UpdateBalance(ctx, dbTx, wallet.ID, outcome.BalanceAfter); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update balance: %w", err))
	}

	if err := s.transferRepo.Create(ctx, dbTx, outcome); err != nil {
		if errors.Is(err, ports.ErrTransferExists) {
			_ = dbTx.Rollback(ctx)
			return s.replayFromJournal(ctx, tenantID, req.TransferID, req.MemberAccount, amount)
		}
		return nil, apperror.InternalError(fmt.Errorf("journal transfer: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	// Post-process: cache in Redis (best-effort)
	if raw, err := json.Marshal(outcome); err == nil {
		if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("failed to cache transfer in redis")
		}
	}

	s.log.Info().
		Str("tenant_id", tenantID).
		Str("transfer_id", req.TransferID).
		Str("transaction_id", outcome.TransactionID).
		Str("kind", string(outcome.Kind())).
		Int64("amount", amount).
		Int64("balance_after", outcome.BalanceAfter).
		Msg("transfer applied")

	return outcome, nil
}

func (s *TransferServiceImpl) query(ctx context.Context, tenantID, playerID, currency string) (*domain.TransferOutcome, error) {
	wallet, err := s.walletRepo.Get(ctx, tenantID, playerID, currency)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("read wallet: %w", err))
	}
	var balance int64
	if wallet != nil {
		balance = wallet.Balance
	}
	return &domain.TransferOutcome{
		TenantID:      tenantID,
		PlayerID:      playerID,
		Currency:      currency,
		BalanceBefore: balance,
		BalanceAfter:  balance,
		TransactionID: uuid.New().String(),
		Status:        domain.TransferStatusQuery,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// replay returns a journaled outcome if the retry matches it.
func (s *TransferServiceImpl) replay(prior *domain.TransferOutcome, playerID string, amount int64) (*domain.TransferOutcome, error) {
	if prior.Amount != amount || prior.PlayerID != playerID {
		s.log.Warn().
			Str("tenant_id", prior.TenantID).
			Str("transfer_id", prior.TransferID).
			Int64("journaled_amount", prior.Amount).
			Int64("requested_amount", amount).
			Msg("transfer_id reused with different parameters")
		return nil, apperror.ErrTransferConflict()
	}
	s.log.Info().
		Str("tenant_id", prior.TenantID).
		Str("transfer_id", prior.TransferID).
		Str("transaction_id", prior.TransactionID).
		Msg("transfer replayed")
	return prior, nil
}

func (s *TransferServiceImpl) replayFromJournal(ctx context.Context, tenantID, transferID, playerID string, amount int64) (*domain.TransferOutcome, error) {
	prior, err := s.transferRepo.GetByTransferID(ctx, tenantID, transferID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("journal reread: %w", err))
	}
	if prior == nil {
		return nil, apperror.InternalError(fmt.Errorf("transfer %s vanished after unique violation", transferID))
	}
	return s.replay(prior, playerID, amount)
}

// launchAfterTransfer issues a game URL for a funded session. It never fails
// the transfer: the balance change is already committed.
func (s *TransferServiceImpl) launchAfterTransfer(ctx context.Context, tenantID string, req *domain.TransferRequest, outcome *domain.TransferOutcome) string {
	url, err := s.ledger.Launch(ctx, &domain.LaunchRequest{
		TenantID:      tenantID,
		MemberAccount: req.MemberAccount,
		GameUID:       req.GameUID,
		Timestamp:     nowMillis(),
		CreditAmount:  money.Format(outcome.BalanceAfter),
		CurrencyCode:  outcome.Currency,
		Language:      req.Language,
		HomeURL:       req.HomeURL,
		Platform:      req.Platform,
	})
	if err != nil {
		s.log.Warn().Err(err).
			Str("tenant_id", tenantID).
			Str("transfer_id", req.TransferID).
			Msg("launch after transfer failed")
		return ""
	}
	return url
}

func (s *TransferServiceImpl) currency(req *domain.TransferRequest) string {
	if c := strings.TrimSpace(req.CurrencyCode); c != "" {
		return strings.ToUpper(c)
	}
	return s.defaultCurrency
}

// failure seals whatever is known about the transfer with status 2.
func (s *TransferServiceImpl) failure(vr *ports.ValidatedRequest, tenantID string, req *domain.TransferRequest, outcome *domain.TransferOutcome, err error) *ports.Reply {
	appErr := apperror.From(err)
	event := s.log.Warn()
	if appErr.HTTPStatus >= 500 {
		event = s.log.Error()
	}
	event.Err(err).Str("tenant_id", tenantID).Msg("transfer failed")

	var body transferPayload
	switch {
	case outcome != nil:
		body = newTransferPayload(outcome)
	case req != nil:
		body = transferPayload{
			PlayerName:     req.MemberAccount,
			Currency:       s.currency(req),
			TransferAmount: money.Normalize(req.CreditAmount),
			TransferID:     req.TransferID,
		}
	}
	body.TransferStatus = int(domain.TransferStatusFailed)
	body.Timestamp = nowMillis()

	return failureReply(tenantID, appErr, sealError(s.log, s.registry, vr, tenantID, body))
}

func newTransferPayload(o *domain.TransferOutcome) transferPayload {
	return transferPayload{
		GameLaunchURL:  o.GameLaunchURL,
		PlayerName:     o.PlayerID,
		Currency:       o.Currency,
		TransferAmount: money.Format(o.Amount),
		BeforeAmount:   money.Format(o.BalanceBefore),
		AfterAmount:    money.Format(o.BalanceAfter),
		TransferID:     o.TransferID,
		TransactionID:  o.TransactionID,
		TransferStatus: int(o.Status),
		Timestamp:      nowMillis(),
	}
}
