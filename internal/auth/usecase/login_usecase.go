package usecase

import (
	"context"
	"errors"
	"time"

	"studyhub/internal/auth/domain/model"
	"studyhub/internal/auth/domain/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrSessionNotFound = errors.New("session not found")
)

// LoginUsecaseInterface defines the contract for the authentication service.
type LoginUsecaseInterface interface {
	GetLogin(ctx context.Context, email string) (*model.User, error)
	ValidatePassword(password, hash string) bool
	SaveSession(ctx context.Context, userID int64, sessionID string, expiresAt time.Time) (*model.Session, error)
	GetSession(ctx context.Context, sessionID string) (*model.Session, error)
	GetUserBySession(ctx context.Context, sessionID string) (*model.User, error)
	DeleteSession(ctx context.Context, sessionID string) (int64, error)
}

// LoginUsecase implements the authentication logic on top of the storage
// backend chosen at startup.
type LoginUsecase struct {
	repo repository.LoginRepository
}

// NewLoginUsecase creates a new instance of LoginUsecase.
func NewLoginUsecase(repo repository.LoginRepository) *LoginUsecase {
	return &LoginUsecase{repo: repo}
}

// GetLogin looks up the login record for the given email address.
// Returns ErrUserNotFound if no account uses the address.
func (uc *LoginUsecase) GetLogin(ctx context.Context, email string) (*model.User, error) {
	return uc.repo.GetUserByMail(ctx, email)
}

// ValidatePassword compares a submitted password against the stored bcrypt
// hash. bcrypt performs the constant-effort comparison.
func (uc *LoginUsecase) ValidatePassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// SaveSession persists a new session row and returns the stored entity.
func (uc *LoginUsecase) SaveSession(ctx context.Context, userID int64, sessionID string, expiresAt time.Time) (*model.Session, error) {
	return uc.repo.SaveSession(ctx, userID, sessionID, expiresAt)
}

// GetSession fetches a session by its identifier. An empty identifier is
// resolved to ErrSessionNotFound without touching the store.
func (uc *LoginUsecase) GetSession(ctx context.Context, sessionID string) (*model.Session, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}
	return uc.repo.GetSession(ctx, sessionID)
}

// GetUserBySession resolves the user owning a session, with the same
// empty-identifier guard as GetSession.
func (uc *LoginUsecase) GetUserBySession(ctx context.Context, sessionID string) (*model.User, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}
	return uc.repo.GetUserBySession(ctx, sessionID)
}

// DeleteSession removes the session row and returns the number of rows
// actually deleted. Deleting an absent session returns 0 without error.
func (uc *LoginUsecase) DeleteSession(ctx context.Context, sessionID string) (int64, error) {
	return uc.repo.DeleteSession(ctx, sessionID)
}

// Ensure LoginUsecase implements LoginUsecaseInterface
var _ LoginUsecaseInterface = (*LoginUsecase)(nil)
