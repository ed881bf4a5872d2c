package model

import (
	"time"

	"github.com/jwalitptl/hims-api/internal/listing"
)

type AuditLog struct {
	ID         string    `json:"id" db:"id"`
	Action     string    `json:"action" db:"action"`
	EntityType string    `json:"entity_type" db:"entity_type"`
	EntityID   string    `json:"entity_id" db:"entity_id"`
	Changes    string    `json:"changes" db:"changes"`
	RequestID  string    `json:"request_id" db:"request_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"
)

// RecordEvent is published after a write commits.
type RecordEvent struct {
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	RequestID  string    `json:"request_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Session is returned after the app password is accepted.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type CreateSessionRequest struct {
	Password string `json:"password" binding:"required"`
}

// DeletionTicket is step one of a deletion: the record about to be removed
// and the token that must accompany the DELETE.
type DeletionTicket struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	Record    listing.View `json:"record"`
}
