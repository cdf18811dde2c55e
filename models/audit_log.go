package models

import "time"

const AuditLogTable = "lab_audit_log"

// Audit actions recorded for ledger-affecting and administrative mutations.
const (
	AuditRequestApproved = "request.approved"
	AuditRequestRejected = "request.rejected"
	AuditRequestReturned = "request.returned"
	AuditItemCreated     = "item.created"
	AuditItemUpdated     = "item.updated"
	AuditItemDeleted     = "item.deleted"
)

type AuditLog struct {
	ID      string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ActorID string `gorm:"type:uuid;index;not null" json:"actorId"`
	Action  string `gorm:"size:40;index;not null" json:"action"`

	ItemID    *string `gorm:"type:uuid;index" json:"itemId,omitempty"`
	RequestID *string `gorm:"type:uuid;index" json:"requestId,omitempty"`

	Detail string `gorm:"size:255" json:"detail,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func (AuditLog) TableName() string { return AuditLogTable }
