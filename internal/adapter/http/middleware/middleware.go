package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"provider-bridge/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Context keys
const (
	CtxRequestID = "request_id"
	CtxTenantID  = "tenant_id"
	// CtxReplyCode holds the protocol code (0 or 1) a handler answered with.
	CtxReplyCode = "reply_code"
)

// RequestID assigns every request an id, reusing a well-formed inbound
// X-Request-ID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(response.HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}
		c.Set(CtxRequestID, id)
		c.Header(response.HeaderRequestID, id)
		c.Next()
	}
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("request_id", c.GetString(CtxRequestID)).
			Str("tenant_id", c.GetString(CtxTenantID)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}

// Recovery turns a panic into a {code:1} 500 answer.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Interface("panic", r).
					Str("request_id", c.GetString(CtxRequestID)).
					Str("path", c.Request.URL.Path).
					Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, response.Body{
					Code: 1,
					Msg:  "Internal server error",
				})
			}
		}()
		c.Next()
	}
}

// MaxBodySize returns middleware that limits the request body size.
// Once the limit is exceeded the reader returns an error.
func MaxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// TenantPeek records the caller's tenant for rate limiting, logging and
// audit without decrypting anything. It reads tenant_id or agency_uid from
// the query string, or from the top level of a JSON body, then restores the
// body for the handler.
func TenantPeek() gin.HandlerFunc {
	return func(c *gin.Context) {
		if t := firstNonEmpty(c.Query("tenant_id"), c.Query("agency_uid")); t != "" {
			c.Set(CtxTenantID, t)
		}
		if c.Request.Body == nil || c.Request.Method == http.MethodGet {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				// Rejected before any tenant key is known, so never sealed.
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, response.Body{Code: 1, Msg: "Request body too large"})
				return
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, response.Body{Code: 1, Msg: "Missing required parameters"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		var peek struct {
			TenantID  string `json:"tenant_id"`
			AgencyUID string `json:"agency_uid"`
		}
		if json.Unmarshal(body, &peek) == nil {
			if t := firstNonEmpty(peek.TenantID, peek.AgencyUID); t != "" {
				c.Set(CtxTenantID, t)
			}
		}
		c.Next()
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
