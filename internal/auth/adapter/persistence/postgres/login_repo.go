package postgres

import (
	"context"
	"errors"
	"time"

	"studyhub/internal/auth/domain/model"
	"studyhub/internal/auth/domain/repository"
	"studyhub/internal/auth/usecase"
	apperrors "studyhub/internal/shared/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repository needs. pgxmock satisfies
// it in tests.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
}

// LoginRepository implements the login repository contract with raw SQL
// through the pgx driver.
type LoginRepository struct {
	db DB
}

// NewLoginRepository creates a new pgx-backed login repository.
func NewLoginRepository(db DB) *LoginRepository {
	return &LoginRepository{db: db}
}

// GetUserByMail retrieves a user by email, exact match.
func (r *LoginRepository) GetUserByMail(ctx context.Context, email string) (*model.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, email, password, level, role, level_progress
		FROM users
		WHERE email = $1
	`, email)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, usecase.ErrUserNotFound
	}
	if err != nil {
		return nil, apperrors.NewInfrastructureError("query user by email").
			WithComponent("postgres").
			WithCause(err)
	}
	return user, nil
}

// SaveSession persists a new session row and returns the stored entity.
func (r *LoginRepository) SaveSession(ctx context.Context, userID int64, sessionID string, expiresAt time.Time) (*model.Session, error) {
	_, err := r.db.Exec(ctx, `
		INSERT INTO sessions (session_id, user_id, expires_at)
		VALUES ($1, $2, $3)
	`, sessionID, userID, expiresAt)
	if err != nil {
		return nil, apperrors.NewInfrastructureError("insert session").
			WithComponent("postgres").
			WithDetail("session_id", sessionID).
			WithCause(err)
	}

	return &model.Session{SessionID: sessionID, UserID: userID, ExpiresAt: expiresAt}, nil
}

// GetSession retrieves a session by its identifier.
func (r *LoginRepository) GetSession(ctx context.Context, sessionID string) (*model.Session, error) {
	row := r.db.QueryRow(ctx, `
		SELECT session_id, user_id, expires_at
		FROM sessions
		WHERE session_id = $1
	`, sessionID)

	var session model.Session
	err := row.Scan(&session.SessionID, &session.UserID, &session.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, usecase.ErrSessionNotFound
	}
	if err != nil {
		return nil, apperrors.NewInfrastructureError("query session").
			WithComponent("postgres").
			WithCause(err)
	}
	return &session, nil
}

// GetUserBySession joins the session row to its owning user.
func (r *LoginRepository) GetUserBySession(ctx context.Context, sessionID string) (*model.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT u.id, u.email, u.password, u.level, u.role, u.level_progress
		FROM users u
		JOIN sessions s ON u.id = s.user_id
		WHERE s.session_id = $1
	`, sessionID)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, usecase.ErrSessionNotFound
	}
	if err != nil {
		return nil, apperrors.NewInfrastructureError("query user by session").
			WithComponent("postgres").
			WithCause(err)
	}
	return user, nil
}

// DeleteSession removes the session row and returns the affected-row count.
func (r *LoginRepository) DeleteSession(ctx context.Context, sessionID string) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM sessions WHERE session_id = $1
	`, sessionID)
	if err != nil {
		return 0, apperrors.NewInfrastructureError("delete session").
			WithComponent("postgres").
			WithDetail("session_id", sessionID).
			WithCause(err)
	}
	return tag.RowsAffected(), nil
}

// Ping verifies connectivity to the database.
func (r *LoginRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(&user.ID, &user.Email, &user.Password, &user.Level, &user.Role, &user.LevelProgress)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Compile-time interface check.
var _ repository.LoginRepository = (*LoginRepository)(nil)
