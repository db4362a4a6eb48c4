package model

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
)

type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleDoctor Role = "Doctor"
)

// Session is the authenticated actor for the lifetime of one login.
type Session struct {
	ID        uuid.UUID `json:"id"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	StartedAt time.Time `json:"started_at"`
}

func NewSession(userID int64, username string, role Role) *Session {
	return &Session{
		ID:        uuid.New(),
		UserID:    userID,
		Username:  username,
		Role:      role,
		StartedAt: time.Now(),
	}
}

// Require fails unless the session exists and carries one of roles.
func (s *Session) Require(roles ...Role) error {
	if s == nil {
		return apperrors.Unauthorized("login required")
	}
	for _, r := range roles {
		if s.Role == r {
			return nil
		}
	}
	return apperrors.Forbidden("operation not permitted for role " + string(s.Role))
}

// Actor names the session owner for logs and audit entries.
func (s *Session) Actor() string {
	if s == nil {
		return "anonymous"
	}
	return string(s.Role) + ":" + s.Username
}
