package gormstore

import (
	"context"
	"testing"
	"time"

	"studyhub/internal/auth/domain/model"
	"studyhub/internal/auth/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type LoginRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo *LoginRepository
	user model.User
}

func (suite *LoginRepositoryTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), db.AutoMigrate(&model.User{}, &model.Session{}))

	suite.db = db
	suite.repo = NewLoginRepository(db)

	suite.user = model.User{
		Email:    "test@test.com",
		Password: "$2b$06$puuWEyu2f5WZSyBWD5oE2OSm/1.d8h7tNqKCnbbBCeD3kI3WzkY8q",
		Level:    1,
		Role:     model.RoleStudent,
	}
	require.NoError(suite.T(), db.Create(&suite.user).Error)
}

func (suite *LoginRepositoryTestSuite) TestGetUserByMail_Success() {
	user, err := suite.repo.GetUserByMail(context.Background(), "test@test.com")

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.user.ID, user.ID)
	assert.Equal(suite.T(), "test@test.com", user.Email)
	assert.Equal(suite.T(), suite.user.Password, user.Password)
	assert.Equal(suite.T(), model.RoleStudent, user.Role)
}

func (suite *LoginRepositoryTestSuite) TestGetUserByMail_NotFound() {
	user, err := suite.repo.GetUserByMail(context.Background(), "nobody@test.com")

	assert.Nil(suite.T(), user)
	assert.ErrorIs(suite.T(), err, usecase.ErrUserNotFound)
}

func (suite *LoginRepositoryTestSuite) TestSaveSession_RoundTrip() {
	expiresAt := time.Now().Add(model.SessionLifetime).Truncate(time.Second)

	saved, err := suite.repo.SaveSession(context.Background(), suite.user.ID, "session-abc", expiresAt)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "session-abc", saved.SessionID)

	loaded, err := suite.repo.GetSession(context.Background(), "session-abc")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), saved.SessionID, loaded.SessionID)
	assert.Equal(suite.T(), saved.UserID, loaded.UserID)
	assert.True(suite.T(), saved.ExpiresAt.Equal(loaded.ExpiresAt))
}

func (suite *LoginRepositoryTestSuite) TestGetSession_NotFound() {
	session, err := suite.repo.GetSession(context.Background(), "missing")

	assert.Nil(suite.T(), session)
	assert.ErrorIs(suite.T(), err, usecase.ErrSessionNotFound)
}

func (suite *LoginRepositoryTestSuite) TestGetUserBySession_Success() {
	_, err := suite.repo.SaveSession(context.Background(), suite.user.ID, "session-abc", time.Now().Add(time.Hour))
	require.NoError(suite.T(), err)

	user, err := suite.repo.GetUserBySession(context.Background(), "session-abc")

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.user.ID, user.ID)
	assert.Equal(suite.T(), "test@test.com", user.Email)
}

func (suite *LoginRepositoryTestSuite) TestGetUserBySession_NotFound() {
	user, err := suite.repo.GetUserBySession(context.Background(), "missing")

	assert.Nil(suite.T(), user)
	assert.ErrorIs(suite.T(), err, usecase.ErrSessionNotFound)
}

func (suite *LoginRepositoryTestSuite) TestDeleteSession_ReportsAffectedRows() {
	_, err := suite.repo.SaveSession(context.Background(), suite.user.ID, "session-abc", time.Now().Add(time.Hour))
	require.NoError(suite.T(), err)

	count, err := suite.repo.DeleteSession(context.Background(), "session-abc")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), count)

	// Second delete of the same session is a no-op.
	count, err = suite.repo.DeleteSession(context.Background(), "session-abc")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(0), count)

	_, err = suite.repo.GetSession(context.Background(), "session-abc")
	assert.ErrorIs(suite.T(), err, usecase.ErrSessionNotFound)
}

func (suite *LoginRepositoryTestSuite) TestPing() {
	assert.NoError(suite.T(), suite.repo.Ping(context.Background()))
}

func TestLoginRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(LoginRepositoryTestSuite))
}
