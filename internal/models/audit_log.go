package models

import (
	"time"

	"github.com/google/uuid"
)

type AuditAction string

const (
	AuditCreated   AuditAction = "created"
	AuditUpdated   AuditAction = "updated"
	AuditDeleted   AuditAction = "deleted"
	AuditCancelled AuditAction = "cancelled"
)

// AuditLog records one write made through the API.
type AuditLog struct {
	ID         uuid.UUID
	EntityType string
	EntityID   uuid.UUID
	ActorID    *uuid.UUID
	Action     AuditAction
	Details    map[string]any
	CreatedAt  time.Time
}

// AuthToken is the opaque credential issued at login, one per user.
type AuthToken struct {
	Key       string
	UserID    uuid.UUID
	CreatedAt time.Time
}
