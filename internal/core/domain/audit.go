package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited action.
type AuditAction string

const (
	AuditActionCallback        AuditAction = "CALLBACK"
	AuditActionLaunch          AuditAction = "LAUNCH"
	AuditActionTransfer        AuditAction = "TRANSFER"
	AuditActionTransactionList AuditAction = "TRANSACTION_LIST"
	AuditActionGameLaunch      AuditAction = "GAME_LAUNCH"
)

// AuditLog records one provider call and how it was answered.
type AuditLog struct {
	ID         uuid.UUID   `json:"id"`
	TenantID   string      `json:"tenant_id,omitempty"`
	Action     AuditAction `json:"action"`
	HTTPStatus int         `json:"http_status"`
	Code       int         `json:"code"`
	Details    string      `json:"details,omitempty"` // JSON string
	IPAddress  string      `json:"ip_address"`
	CreatedAt  time.Time   `json:"created_at"`
}
