package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"provider-bridge/config"
	"provider-bridge/internal/adapter/http/handler"
	"provider-bridge/internal/adapter/ledger"
	"provider-bridge/internal/adapter/provider"
	redisStore "provider-bridge/internal/adapter/storage/redis"
	"provider-bridge/internal/core/domain"
	"provider-bridge/internal/core/ports/mocks"
	"provider-bridge/internal/envelope"
	"provider-bridge/internal/service"
	"provider-bridge/pkg/aesecb"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	primarySecret  = "0123456789abcdef0123456789abcdef"
	fallbackSecret = "fedcba9876543210fedcba9876543210"
)

type bridge struct {
	router *gin.Engine
	ledger *http.ServeMux
}

// newBridge wires the real services against a fake ledger API and a
// miniredis-backed rate limiter.
func newBridge(t *testing.T) *bridge {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mux := http.NewServeMux()
	ledgerSrv := httptest.NewServer(mux)
	t.Cleanup(ledgerSrv.Close)

	reg, err := service.NewKeyRegistry([]config.TenantConfig{{
		TenantID:        "agency-1",
		Secret:          primarySecret,
		FallbackSecrets: []string{fallbackSecret},
	}})
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	ctrl := gomock.NewController(t)
	log := zerolog.Nop()
	validator := service.NewEnvelopeValidator(reg)
	lc := ledger.NewClient(ledgerSrv.URL, 2*time.Second, log)

	router := handler.SetupRouter(handler.RouterDeps{
		CallbackSvc: service.NewCallbackService(reg, validator, lc, log),
		LaunchSvc:   service.NewLaunchService(reg, validator, lc, log),
		TransferSvc: service.NewTransferService(reg, validator,
			mocks.NewMockWalletRepository(ctrl), mocks.NewMockTransferRepository(ctrl),
			redisStore.NewIdempotencyCache(rdb), mocks.NewMockDBTransactor(ctrl), lc,
			service.TransferConfig{}, log),
		ListSvc:        service.NewTransactionListService(reg, validator, mocks.NewMockTransactionRepository(ctrl), log),
		GameSvc:        service.NewGameLaunchService(reg, provider.NewClient(2*time.Second, log), log),
		RateLimitStore: redisStore.NewRateLimitStore(rdb),
		Logger:         log,
	})
	return &bridge{router: router, ledger: mux}
}

func (b *bridge) post(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	b.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw)))
	return w
}

func seal(t *testing.T, secret string, v any) domain.Envelope {
	t.Helper()
	payload, err := envelope.SealPayload(v, []byte(secret))
	require.NoError(t, err)
	return domain.Envelope{TenantID: "agency-1", Timestamp: "1700000000000", Payload: payload}
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func open(t *testing.T, ciphertext any, secret string) map[string]any {
	t.Helper()
	s, ok := ciphertext.(string)
	require.True(t, ok, "payload is %T", ciphertext)
	plain, err := aesecb.Decrypt(s, []byte(secret))
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(plain, &out))
	return out
}

func TestBridge_CallbackThroughLedger(t *testing.T) {
	b := newBridge(t)
	b.ledger.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		var env domain.Envelope
		require.NoError(t, json.NewDecoder(r.Body).Decode(&env))
		fwd := open(t, env.Payload, fallbackSecret)
		assert.Equal(t, "agency-1", fwd["agency_uid"])
		assert.Equal(t, "4.00", fwd["credit_amount"])
		_, _ = io.WriteString(w, `{"code":0,"msg":"ok","balance":104}`)
	})

	w := b.post(t, "/api/v1/provider/callback", seal(t, fallbackSecret, map[string]any{
		"member_account": "p1", "game_uid": "42", "amount": 4,
	}))

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "600", w.Header().Get("X-RateLimit-Limit"))

	body := decodeBody(t, w)
	assert.Equal(t, float64(0), body["code"])
	assert.Equal(t, "104.00", open(t, body["payload"], fallbackSecret)["credit_amount"])
}

func TestBridge_LaunchSealedWithPrimary(t *testing.T) {
	b := newBridge(t)
	b.ledger.HandleFunc("/launch", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"code":0,"msg":"ok","game_launch_url":"https://g.example.com/play"}`)
	})

	w := b.post(t, "/api/v1/provider/launch", seal(t, fallbackSecret, map[string]any{
		"member_account": "p1", "game_uid": 7,
	}))
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	env, ok := body["payload"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "agency-1", env["tenant_id"])
	assert.Equal(t, "https://g.example.com/play", open(t, env["payload"], primarySecret)["game_launch_url"])
}

func TestBridge_UnknownTenantTransfer(t *testing.T) {
	b := newBridge(t)

	env := seal(t, primarySecret, map[string]any{"member_account": "p1", "credit_amount": "10", "transfer_id": "t-1"})
	env.TenantID = "nobody"
	w := b.post(t, "/api/v1/provider/transfer", env)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["code"])
	assert.Equal(t, "Invalid agency_uid", body["msg"])
	// No key belongs to the caller, so nothing is sealed.
	_, hasPayload := body["payload"]
	assert.False(t, hasPayload)
}

func TestBridge_UndecryptableEnvelope(t *testing.T) {
	b := newBridge(t)

	w := b.post(t, "/api/v1/provider/transactions", seal(t, "abcdefabcdefabcdefabcdefabcdefab", map[string]any{"from_date": 0, "to_date": 1}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Invalid encrypted payload", body["msg"])
}

func TestBridge_GameLaunchUnknownTenant(t *testing.T) {
	b := newBridge(t)

	w := b.post(t, "/api/v1/games/launch", map[string]any{"tenant_id": "nobody", "member_account": "p1", "game_uid": "1"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"code":1,"msg":"Invalid agency_uid"}`, w.Body.String())
}

func TestBridge_HealthWithoutCheckers(t *testing.T) {
	b := newBridge(t)
	w := httptest.NewRecorder()
	b.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
