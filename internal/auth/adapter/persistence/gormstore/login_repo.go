package gormstore

import (
	"context"
	"errors"
	"time"

	"studyhub/internal/auth/domain/model"
	"studyhub/internal/auth/domain/repository"
	"studyhub/internal/auth/usecase"
	apperrors "studyhub/internal/shared/errors"

	"gorm.io/gorm"
)

// LoginRepository implements the login repository contract through the GORM
// ORM. It reads and writes the same users/sessions schema as the pgx
// backend, so the two are interchangeable.
type LoginRepository struct {
	db *gorm.DB
}

// NewLoginRepository creates a new GORM-backed login repository.
func NewLoginRepository(db *gorm.DB) *LoginRepository {
	return &LoginRepository{db: db}
}

// GetUserByMail retrieves a user by email, exact match.
func (r *LoginRepository) GetUserByMail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, usecase.ErrUserNotFound
	}
	if err != nil {
		return nil, apperrors.NewInfrastructureError("query user by email").
			WithComponent("gormstore").
			WithCause(err)
	}
	return &user, nil
}

// SaveSession persists a new session row and returns the stored entity.
func (r *LoginRepository) SaveSession(ctx context.Context, userID int64, sessionID string, expiresAt time.Time) (*model.Session, error) {
	session := model.Session{SessionID: sessionID, UserID: userID, ExpiresAt: expiresAt}
	if err := r.db.WithContext(ctx).Create(&session).Error; err != nil {
		return nil, apperrors.NewInfrastructureError("insert session").
			WithComponent("gormstore").
			WithDetail("session_id", sessionID).
			WithCause(err)
	}
	return &session, nil
}

// GetSession retrieves a session by its identifier.
func (r *LoginRepository) GetSession(ctx context.Context, sessionID string) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, usecase.ErrSessionNotFound
	}
	if err != nil {
		return nil, apperrors.NewInfrastructureError("query session").
			WithComponent("gormstore").
			WithCause(err)
	}
	return &session, nil
}

// GetUserBySession joins the session row to its owning user.
func (r *LoginRepository) GetUserBySession(ctx context.Context, sessionID string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Joins("JOIN sessions ON sessions.user_id = users.id").
		Where("sessions.session_id = ?", sessionID).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, usecase.ErrSessionNotFound
	}
	if err != nil {
		return nil, apperrors.NewInfrastructureError("query user by session").
			WithComponent("gormstore").
			WithCause(err)
	}
	return &user, nil
}

// DeleteSession removes the session row and returns the affected-row count.
func (r *LoginRepository) DeleteSession(ctx context.Context, sessionID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&model.Session{})
	if res.Error != nil {
		return 0, apperrors.NewInfrastructureError("delete session").
			WithComponent("gormstore").
			WithDetail("session_id", sessionID).
			WithCause(res.Error)
	}
	return res.RowsAffected, nil
}

// Ping verifies connectivity to the database.
func (r *LoginRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Compile-time interface check.
var _ repository.LoginRepository = (*LoginRepository)(nil)
