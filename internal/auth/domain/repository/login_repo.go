package repository

import (
	"context"
	"time"

	"studyhub/internal/auth/domain/model"
)

// LoginRepository defines the capability contract for the credential and
// session stores. Absence of a row surfaces as usecase.ErrUserNotFound or
// usecase.ErrSessionNotFound; data-access failures come back wrapped so
// callers can tell the two apart.
type LoginRepository interface {
	// User operations
	GetUserByMail(ctx context.Context, email string) (*model.User, error)

	// Session operations
	SaveSession(ctx context.Context, userID int64, sessionID string, expiresAt time.Time) (*model.Session, error)
	GetSession(ctx context.Context, sessionID string) (*model.Session, error)
	GetUserBySession(ctx context.Context, sessionID string) (*model.User, error)
	DeleteSession(ctx context.Context, sessionID string) (int64, error)

	// Ping verifies backend connectivity, for health reporting.
	Ping(ctx context.Context) error
}
