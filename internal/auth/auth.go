package auth

import (
	"context"
	"fmt"

	authhttp "studyhub/internal/auth/adapter/http"
	"studyhub/internal/auth/adapter/persistence/gormstore"
	"studyhub/internal/auth/adapter/persistence/postgres"
	"studyhub/internal/auth/config"
	"studyhub/internal/auth/domain/repository"
	"studyhub/internal/auth/usecase"
	"studyhub/internal/database"
	"studyhub/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"
)

// AuthModule wires the login slice together: storage backend, usecase and
// HTTP handler. The backend is chosen once from configuration, never by
// runtime type inspection.
type AuthModule struct {
	repository repository.LoginRepository
	usecase    usecase.LoginUsecaseInterface
	handler    *authhttp.LoginHTTPHandler
	config     *config.Config

	pool   *pgxpool.Pool
	gormDB *gorm.DB
}

// NewAuthModule creates a new authentication module instance, connecting to
// the storage backend selected by cfg.DBSelect.
func NewAuthModule(ctx context.Context, cfg *config.Config, log logger.Logger) (*AuthModule, error) {
	module := &AuthModule{config: cfg}

	switch cfg.DBSelect {
	case config.BackendGorm:
		db, err := database.NewGormDB(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open gorm backend: %w", err)
		}
		module.gormDB = db
		module.repository = gormstore.NewLoginRepository(db)
	default:
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open pgx backend: %w", err)
		}
		module.pool = pool
		module.repository = postgres.NewLoginRepository(pool)
	}

	module.usecase = usecase.NewLoginUsecase(module.repository)
	module.handler = authhttp.NewLoginHTTPHandler(
		module.usecase,
		log,
		cfg.CookieName,
		cfg.CookiePath,
		cfg.CookieDomain,
		cfg.CookieSecure,
		cfg.CookieHTTPOnly,
		cfg.CookieSameSite,
	)

	return module, nil
}

// RegisterRoutes registers the login routes with the provided router.
func (am *AuthModule) RegisterRoutes(router fiber.Router) {
	am.handler.SetupLoginRoutes(router)
}

// GetUsecase returns the login usecase for external access.
func (am *AuthModule) GetUsecase() usecase.LoginUsecaseInterface {
	return am.usecase
}

// HealthCheck verifies the storage backend is reachable.
func (am *AuthModule) HealthCheck(ctx context.Context) error {
	return am.repository.Ping(ctx)
}

// Close releases the storage backend resources.
func (am *AuthModule) Close() error {
	if am.pool != nil {
		am.pool.Close()
	}
	if am.gormDB != nil {
		sqlDB, err := am.gormDB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
