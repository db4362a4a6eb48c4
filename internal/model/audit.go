package model

import (
	"time"
)

type AuditEntry struct {
	SessionID  string      `json:"session_id"`
	Actor      string      `json:"actor"`
	Action     string      `json:"action"`
	EntityType string      `json:"entity_type"`
	EntityID   int64       `json:"entity_id"`
	Changes    interface{} `json:"changes,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}
