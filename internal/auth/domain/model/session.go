package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionLifetime is how long an issued session stays valid (~91.3 days).
const SessionLifetime = 7889400000 * time.Millisecond

// Session is the stored proof of a successful login, correlated to the
// client through the session cookie.
type Session struct {
	SessionID string    `json:"sessionID" gorm:"primaryKey;size:64"`
	UserID    int64     `json:"userID" gorm:"index"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// NewSession issues a fresh session for the given user with an opaque
// identifier and an expiration of SessionLifetime from now.
func NewSession(userID int64) *Session {
	return &Session{
		SessionID: uuid.New().String(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(SessionLifetime),
	}
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return s.IsExpiredAt(time.Now())
}

// IsExpiredAt returns true if the session would be expired at the given time.
// Useful for testing with deterministic time values.
func (s *Session) IsExpiredAt(t time.Time) bool {
	return !t.Before(s.ExpiresAt)
}
