package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"provider-bridge/internal/core/domain"
	"provider-bridge/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditLog records every provider protocol call after it was answered,
// successful or not. Other routes are ignored.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		action := mapRouteToAction(c.Request.Method, c.FullPath())
		if action == "" {
			return
		}

		code := domain.CodeFailure
		if _, ok := c.Get(CtxReplyCode); ok {
			code = c.GetInt(CtxReplyCode)
		}

		details, _ := json.Marshal(map[string]any{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"request_id": c.GetString(CtxRequestID),
		})

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ID:         uuid.New(),
			TenantID:   c.GetString(CtxTenantID),
			Action:     action,
			HTTPStatus: c.Writer.Status(),
			Code:       code,
			IPAddress:  c.ClientIP(),
			Details:    string(details),
			CreatedAt:  time.Now(),
		})
	}
}

func mapRouteToAction(method, route string) domain.AuditAction {
	switch {
	case route == "/api/v1/provider/callback" && (method == http.MethodPost || method == http.MethodGet):
		return domain.AuditActionCallback
	case route == "/api/v1/provider/launch" && method == http.MethodPost:
		return domain.AuditActionLaunch
	case route == "/api/v1/provider/transfer" && method == http.MethodPost:
		return domain.AuditActionTransfer
	case route == "/api/v1/provider/transactions" && method == http.MethodPost:
		return domain.AuditActionTransactionList
	case route == "/api/v1/games/launch" && method == http.MethodPost:
		return domain.AuditActionGameLaunch
	}
	return ""
}
