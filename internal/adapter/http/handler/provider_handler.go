package handler

import (
	"encoding/json"
	"io"

	"provider-bridge/internal/adapter/http/middleware"
	"provider-bridge/internal/core/domain"
	"provider-bridge/internal/core/ports"
	"provider-bridge/pkg/response"

	"github.com/gin-gonic/gin"
)

// ProviderHandler serves the encrypted provider protocol endpoints.
type ProviderHandler struct {
	callbackSvc ports.CallbackService
	launchSvc   ports.LaunchService
	transferSvc ports.TransferService
	listSvc     ports.TransactionListService
}

// NewProviderHandler creates a new ProviderHandler.
func NewProviderHandler(
	callbackSvc ports.CallbackService,
	launchSvc ports.LaunchService,
	transferSvc ports.TransferService,
	listSvc ports.TransactionListService,
) *ProviderHandler {
	return &ProviderHandler{
		callbackSvc: callbackSvc,
		launchSvc:   launchSvc,
		transferSvc: transferSvc,
		listSvc:     listSvc,
	}
}

// CallbackQuery handles GET /api/v1/provider/callback.
func (h *ProviderHandler) CallbackQuery(c *gin.Context) {
	tenant := c.Query("tenant_id")
	if tenant == "" {
		tenant = c.Query("agency_uid")
	}
	writeReply(c, h.callbackSvc.CallbackQuery(c.Request.Context(), ports.CallbackQuery{
		TenantID:      tenant,
		MemberAccount: c.Query("member_account"),
		GameUID:       c.Query("game_uid"),
		Amount:        c.Query("amount"),
		Timestamp:     c.Query("timestamp"),
	}))
}

// Callback handles POST /api/v1/provider/callback. The body is either an
// envelope or a legacy bare JSON request, so it is passed on unparsed.
func (h *ProviderHandler) Callback(c *gin.Context) {
	body, _ := io.ReadAll(c.Request.Body)
	writeReply(c, h.callbackSvc.Callback(c.Request.Context(), body))
}

// Launch handles POST /api/v1/provider/launch.
func (h *ProviderHandler) Launch(c *gin.Context) {
	writeReply(c, h.launchSvc.Launch(c.Request.Context(), readEnvelope(c)))
}

// Transfer handles POST /api/v1/provider/transfer.
func (h *ProviderHandler) Transfer(c *gin.Context) {
	writeReply(c, h.transferSvc.Transfer(c.Request.Context(), readEnvelope(c)))
}

// ListTransactions handles POST /api/v1/provider/transactions.
func (h *ProviderHandler) ListTransactions(c *gin.Context) {
	writeReply(c, h.listSvc.ListTransactions(c.Request.Context(), readEnvelope(c)))
}

// readEnvelope decodes the body leniently. An unreadable body yields a
// zero envelope, which the services reject as missing parameters.
func readEnvelope(c *gin.Context) domain.Envelope {
	var env domain.Envelope
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return env
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return domain.Envelope{}
	}
	return env
}

func writeReply(c *gin.Context, reply *ports.Reply) {
	c.Set(middleware.CtxReplyCode, reply.Body.Code)
	if reply.TenantID != "" {
		c.Set(middleware.CtxTenantID, reply.TenantID)
	}
	response.Write(c, reply.HTTPStatus, reply.Body)
}
