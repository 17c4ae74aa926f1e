package handler

import (
	"provider-bridge/internal/adapter/http/dto"
	"provider-bridge/internal/adapter/http/middleware"
	"provider-bridge/internal/core/domain"
	"provider-bridge/internal/core/ports"
	"provider-bridge/pkg/apperror"
	"provider-bridge/pkg/response"

	"github.com/gin-gonic/gin"
)

// GameHandler serves the plain-JSON launch endpoint used by the UI.
type GameHandler struct {
	gameSvc ports.GameLaunchService
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(gameSvc ports.GameLaunchService) *GameHandler {
	return &GameHandler{gameSvc: gameSvc}
}

// Launch handles POST /api/v1/games/launch.
func (h *GameHandler) Launch(c *gin.Context) {
	var req dto.GameLaunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperror.Validation(err.Error()))
		return
	}
	dto.TrimStrings(&req)
	c.Set(middleware.CtxTenantID, req.TenantID)

	url, err := h.gameSvc.LaunchGame(c.Request.Context(), ports.GameLaunchRequest{
		TenantID:      req.TenantID,
		MemberAccount: req.MemberAccount,
		GameUID:       req.GameUID.String(),
		CreditAmount:  req.CreditAmount.String(),
		CurrencyCode:  req.CurrencyCode,
		Language:      req.Language,
		HomeURL:       req.HomeURL,
		Platform:      req.Platform.String(),
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.Set(middleware.CtxReplyCode, domain.CodeSuccess)
	response.OK(c, dto.GameLaunchResponse{GameLaunchURL: url})
}

func fail(c *gin.Context, err error) {
	c.Set(middleware.CtxReplyCode, domain.CodeFailure)
	response.Error(c, err)
}
