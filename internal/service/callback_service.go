package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"provider-bridge/internal/core/domain"
	"provider-bridge/internal/core/ports"
	"provider-bridge/internal/envelope"
	"provider-bridge/pkg/apperror"
	"provider-bridge/pkg/money"

	"github.com/rs/zerolog"
)

// balancePayload is the sealed callback answer; failures carry a zero balance.
type balancePayload struct {
	CreditAmount string `json:"credit_amount"`
	Timestamp    string `json:"timestamp"`
}

// ledgerCallback is the ledger's field naming for a balance adjustment.
type ledgerCallback struct {
	AgencyUID     string `json:"agency_uid"`
	MemberAccount string `json:"member_account"`
	GameUID       string `json:"game_uid"`
	CreditAmount  string `json:"credit_amount"`
	Timestamp     string `json:"timestamp"`
}

// CallbackServiceImpl implements ports.CallbackService.
type CallbackServiceImpl struct {
	registry  ports.KeyRegistry
	validator ports.EnvelopeValidator
	ledger    ports.LedgerClient
	log       zerolog.Logger
}

// NewCallbackService creates a new CallbackServiceImpl.
func NewCallbackService(
	registry ports.KeyRegistry,
	validator ports.EnvelopeValidator,
	ledger ports.LedgerClient,
	log zerolog.Logger,
) *CallbackServiceImpl {
	return &CallbackServiceImpl{
		registry:  registry,
		validator: validator,
		ledger:    ledger,
		log:       log,
	}
}

// Callback handles the POST variant. Every reply, failures included, carries
// an encrypted {credit_amount, timestamp} payload.
func (s *CallbackServiceImpl) Callback(ctx context.Context, body []byte) *ports.Reply {
	env, dialect, err := parseCallbackBody(body, s.registry)
	if err != nil {
		return s.failure(nil, env.TenantID, err)
	}

	vr, err := s.validator.ValidateAndDecrypt(env, domain.OperationCallback)
	if err != nil {
		return s.failure(vr, env.TenantID, err)
	}

	req := vr.Request.(*domain.CallbackRequest)
	if err := req.Validate(); err != nil {
		return s.failure(vr, env.TenantID, apperror.Validation(err.Error()))
	}

	result, err := s.forward(ctx, vr.Credential, req)
	if err != nil {
		return s.failure(vr, env.TenantID, err)
	}

	s.log.Info().
		Str("tenant_id", env.TenantID).
		Str("member_account", req.MemberAccount).
		Str("dialect", dialect.String()).
		Str("key_role", string(vr.Credential.Role)).
		Msg("callback forwarded")

	// Ledger already sealed its answer: pass it through untouched.
	if hasPayload(result.Payload) {
		return successReply(env.TenantID, result.Payload)
	}

	payload, err := envelope.SealPayload(balancePayload{
		CreditAmount: ledgerBalance(result),
		Timestamp:    nowMillis(),
	}, vr.Credential.Secret)
	if err != nil {
		return s.failure(vr, env.TenantID, apperror.ErrEncryptionFailure(err))
	}
	return successReply(env.TenantID, payload)
}

// CallbackQuery handles the GET variant. The reply is plain JSON.
func (s *CallbackServiceImpl) CallbackQuery(ctx context.Context, q ports.CallbackQuery) *ports.Reply {
	zero := balancePayload{CreditAmount: money.Format(0), Timestamp: nowMillis()}

	if q.TenantID == "" || q.MemberAccount == "" || q.Amount == "" {
		var missing []string
		for _, f := range [][2]string{{"tenant_id", q.TenantID}, {"member_account", q.MemberAccount}, {"amount", q.Amount}} {
			if f[1] == "" {
				missing = append(missing, f[0])
			}
		}
		return failureReply(q.TenantID, apperror.ErrMalformedEnvelope(missing...), zero)
	}

	cred, ok := s.registry.Primary(q.TenantID)
	if !ok {
		return failureReply(q.TenantID, apperror.ErrUnknownTenant(), zero)
	}

	req := &domain.CallbackRequest{
		TenantID:      q.TenantID,
		MemberAccount: q.MemberAccount,
		GameUID:       q.GameUID,
		Amount:        q.Amount,
		Timestamp:     q.Timestamp,
	}
	if err := req.Validate(); err != nil {
		return failureReply(q.TenantID, apperror.Validation(err.Error()), zero)
	}

	result, err := s.forward(ctx, cred, req)
	if err != nil {
		return failureReply(q.TenantID, err, zero)
	}

	if hasPayload(result.Payload) {
		if plain, ok := s.openLedgerPayload(q.TenantID, result.Payload); ok {
			return successReply(q.TenantID, plain)
		}
		return successReply(q.TenantID, result.Payload)
	}
	return successReply(q.TenantID, balancePayload{CreditAmount: ledgerBalance(result), Timestamp: nowMillis()})
}

// forward normalizes req to the ledger's schema, seals it with cred and
// sends it.
func (s *CallbackServiceImpl) forward(ctx context.Context, cred domain.Credential, req *domain.CallbackRequest) (*ports.LedgerCallbackResult, error) {
	ts := req.Timestamp
	if ts == "" {
		ts = nowMillis()
	}
	env, err := envelope.Seal(ledgerCallback{
		AgencyUID:     cred.TenantID,
		MemberAccount: req.MemberAccount,
		GameUID:       req.GameUID,
		CreditAmount:  money.Normalize(req.Amount),
		Timestamp:     ts,
	}, cred, time.Now())
	if err != nil {
		return nil, apperror.ErrEncryptionFailure(err)
	}

	result, err := s.ledger.Callback(ctx, *env)
	if err != nil {
		return nil, ledgerFailure(err)
	}
	return result, nil
}

// openLedgerPayload decrypts a sealed ledger payload for display. The payload
// may be a bare base64 string or an envelope object.
func (s *CallbackServiceImpl) openLedgerPayload(tenantID string, raw json.RawMessage) (json.RawMessage, bool) {
	var ciphertext string
	if err := json.Unmarshal(raw, &ciphertext); err != nil {
		var env domain.Envelope
		if err := json.Unmarshal(raw, &env); err != nil || env.Payload == "" {
			return nil, false
		}
		ciphertext = env.Payload
	}

	_, plain, err := envelope.Open(ciphertext, s.registry.Keys(tenantID))
	if err != nil {
		s.log.Warn().Err(err).Str("tenant_id", tenantID).Msg("could not open ledger payload")
		return nil, false
	}
	return plain, true
}

func (s *CallbackServiceImpl) failure(vr *ports.ValidatedRequest, tenantID string, err error) *ports.Reply {
	appErr := apperror.From(err)
	event := s.log.Warn()
	if appErr.HTTPStatus >= 500 {
		event = s.log.Error()
	}
	event.Err(err).Str("tenant_id", tenantID).Msg("callback failed")

	payload := sealError(s.log, s.registry, vr, tenantID, balancePayload{CreditAmount: money.Format(0), Timestamp: nowMillis()})
	return failureReply(tenantID, appErr, payload)
}

// ledgerFailure maps a ledger client error onto the protocol taxonomy.
func ledgerFailure(err error) *apperror.AppError {
	var le *ports.LedgerError
	if errors.As(err, &le) {
		return apperror.ErrLedger(le.Msg, err)
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperror.ErrLedgerUnavailable(fmt.Errorf("ledger call: %w", err))
}

func hasPayload(raw json.RawMessage) bool {
	s := string(raw)
	return len(raw) > 0 && s != "null" && s != `""`
}

func ledgerBalance(r *ports.LedgerCallbackResult) string {
	if r.Balance != "" {
		return money.Normalize(r.Balance.String())
	}
	if r.CreditAmount != "" {
		return money.Normalize(r.CreditAmount.String())
	}
	return money.Format(0)
}
