package response

import (
	"errors"
	"net/http"

	"provider-bridge/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const (
	codeSuccess = 0
	codeFailure = 1

	// HeaderRequestID echoes the request id set by the RequestID middleware.
	HeaderRequestID = "X-Request-ID"
)

// Body is the provider protocol answer: {code, msg, payload?}.
type Body struct {
	Code    int    `json:"code"`
	Msg     string `json:"msg"`
	Payload any    `json:"payload,omitempty"`
}

// OK sends a 200 success body with an optional unencrypted payload.
func OK(c *gin.Context, payload any) {
	Write(c, http.StatusOK, Body{Code: codeSuccess, Msg: "Success", Payload: payload})
}

// Write sends body as JSON with status.
func Write(c *gin.Context, status int, body any) {
	if id := RequestID(c); id != "" {
		c.Header(HeaderRequestID, id)
	}
	c.JSON(status, body)
}

// Error sends a code=1 body. *apperror.AppError keeps its status and
// message; anything else is a 500.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		Write(c, appErr.HTTPStatus, Body{Code: codeFailure, Msg: appErr.Message})
		return
	}
	Write(c, http.StatusInternalServerError, Body{Code: codeFailure, Msg: "Internal server error"})
}

// RequestID returns the id stored under "request_id", or "".
func RequestID(c *gin.Context) string {
	if id, exists := c.Get("request_id"); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}
