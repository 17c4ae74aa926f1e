package dto

import "provider-bridge/internal/core/domain"

// GameLaunchRequest is the body of POST /api/v1/games/launch.
// game_uid and credit_amount accept JSON strings or numbers.
type GameLaunchRequest struct {
	TenantID      string            `json:"tenant_id" binding:"required,max=64,safe_id"`
	MemberAccount string            `json:"member_account" binding:"required,max=64,safe_id"`
	GameUID       domain.FlexString `json:"game_uid" binding:"required,max=64,safe_id"`
	CreditAmount  domain.FlexString `json:"credit_amount" binding:"omitempty,numeric"`
	CurrencyCode  string            `json:"currency_code" binding:"omitempty,len=3,alpha"`
	Language      string            `json:"language" binding:"omitempty,max=16"`
	HomeURL       string            `json:"home_url" binding:"omitempty,max=2048,safe_url"`
	Platform      domain.FlexString `json:"platform" binding:"omitempty,max=32"`
}

// GameLaunchResponse is the payload of a successful UI launch.
type GameLaunchResponse struct {
	GameLaunchURL string `json:"game_launch_url"`
}
