package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"

	"provider-bridge/internal/core/domain"
	"provider-bridge/internal/core/ports"
	"provider-bridge/internal/envelope"
	"provider-bridge/pkg/apperror"
	"provider-bridge/pkg/money"

	"github.com/rs/zerolog"
)

const (
	minPageSize     = 1
	maxPageSize     = 5000
	defaultPageSize = maxPageSize
)

type transactionListPayload struct {
	TotalCount  int                   `json:"total_count"`
	CurrentPage int                   `json:"current_page"`
	PageSize    int                   `json:"page_size"`
	TotalPage   int                   `json:"total_page"`
	Records     []transactionListItem `json:"records"`
}

type transactionListItem struct {
	TenantID      string `json:"tenant_id"`
	MemberAccount string `json:"member_account"`
	BetAmount     string `json:"bet_amount"`
	WinAmount     string `json:"win_amount"`
	CurrencyCode  string `json:"currency_code"`
	SerialNumber  string `json:"serial_number"`
	GameRound     string `json:"game_round"`
	GameID        string `json:"game_id"`
	Timestamp     string `json:"timestamp"`
}

// TransactionListServiceImpl implements ports.TransactionListService.
type TransactionListServiceImpl struct {
	registry  ports.KeyRegistry
	validator ports.EnvelopeValidator
	txRepo    ports.TransactionRepository
	log       zerolog.Logger
}

// NewTransactionListService creates a new TransactionListServiceImpl.
func NewTransactionListService(
	registry ports.KeyRegistry,
	validator ports.EnvelopeValidator,
	txRepo ports.TransactionRepository,
	log zerolog.Logger,
) *TransactionListServiceImpl {
	return &TransactionListServiceImpl{
		registry:  registry,
		validator: validator,
		txRepo:    txRepo,
		log:       log,
	}
}

// ListTransactions filters the tenant's rows to [from_date, to_date]
// inclusive and returns one page, sealed with the key that opened the request.
func (s *TransactionListServiceImpl) ListTransactions(ctx context.Context, env domain.Envelope) *ports.Reply {
	vr, err := s.validator.ValidateAndDecrypt(env, domain.OperationTransactionList)
	if err != nil {
		return s.failure(vr, env.TenantID, err)
	}

	q := vr.Request.(*domain.TransactionListQuery)
	if err := q.Validate(); err != nil {
		return s.failure(vr, env.TenantID, apperror.Validation(err.Error()))
	}

	records, err := s.txRepo.ListByTenant(ctx, env.TenantID)
	if err != nil {
		return s.failure(vr, env.TenantID, apperror.ErrDatabaseError(fmt.Errorf("list transactions: %w", err)))
	}

	from, _ := strconv.ParseInt(q.FromDate, 10, 64)
	to, _ := strconv.ParseInt(q.ToDate, 10, 64)
	page := paginate(filterByDate(records, from, to), parsePageNo(q.PageNo), clampPageSize(q.PageSize))

	payload, err := envelope.SealPayload(page, vr.Credential.Secret)
	if err != nil {
		return s.failure(vr, env.TenantID, apperror.ErrEncryptionFailure(err))
	}

	s.log.Debug().
		Str("tenant_id", env.TenantID).
		Int("total_count", page.TotalCount).
		Int("page", page.CurrentPage).
		Msg("transactions listed")

	return successReply(env.TenantID, payload)
}

func (s *TransactionListServiceImpl) failure(vr *ports.ValidatedRequest, tenantID string, err error) *ports.Reply {
	s.log.Warn().Err(err).Str("tenant_id", tenantID).Msg("transaction list failed")
	payload := sealError(s.log, s.registry, vr, tenantID, map[string]string{"timestamp": nowMillis()})
	return failureReply(tenantID, err, payload)
}

// filterByDate keeps records in [from, to] and orders them by time then serial
// so pages are stable across calls.
func filterByDate(records []domain.TransactionRecord, from, to int64) []domain.TransactionRecord {
	out := make([]domain.TransactionRecord, 0, len(records))
	for i := range records {
		if records[i].Within(from, to) {
			out = append(out, records[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].OccurredAt.Equal(out[j].OccurredAt) {
			return out[i].OccurredAt.Before(out[j].OccurredAt)
		}
		return out[i].SerialNumber < out[j].SerialNumber
	})
	return out
}

func paginate(records []domain.TransactionRecord, pageNo, pageSize int) transactionListPayload {
	total := len(records)
	totalPage := int(math.Ceil(float64(total) / float64(pageSize)))

	// Bound pageNo before multiplying so a huge page_no cannot overflow.
	start := total
	if pageNo-1 < (total+pageSize-1)/pageSize {
		start = (pageNo - 1) * pageSize
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	items := make([]transactionListItem, 0, end-start)
	for _, r := range records[start:end] {
		items = append(items, transactionListItem{
			TenantID:      r.TenantID,
			MemberAccount: r.PlayerID,
			BetAmount:     money.Format(r.BetAmount),
			WinAmount:     money.Format(r.WinAmount),
			CurrencyCode:  r.Currency,
			SerialNumber:  r.SerialNumber,
			GameRound:     r.GameRound,
			GameID:        r.GameID,
			Timestamp:     strconv.FormatInt(r.OccurredAt.UnixMilli(), 10),
		})
	}

	return transactionListPayload{
		TotalCount:  total,
		CurrentPage: pageNo,
		PageSize:    pageSize,
		TotalPage:   totalPage,
		Records:     items,
	}
}

func clampPageSize(raw string) int {
	if raw == "" {
		return defaultPageSize
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultPageSize
	}
	if n < minPageSize {
		return minPageSize
	}
	if n > maxPageSize {
		return maxPageSize
	}
	return n
}

func parsePageNo(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
