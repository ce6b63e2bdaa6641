package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/majilabs/oasis/internal/auth/domain"
	"github.com/majilabs/oasis/internal/auth/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Session{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	users, sessions := repository.New(db)
	return New(zap.NewNop(), users, sessions, node), db
}

func TestCreateUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, domain.CreateUserRequest{
		FullName: "Jane Mwangi",
		Email:    "Jane@Example.com",
		Password: "longenough",
	})
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotEqual(t, "longenough", user.PasswordHash)

	// Duplicate email is rejected.
	_, err = svc.CreateUser(ctx, domain.CreateUserRequest{
		Email:    "jane@example.com",
		Password: "longenough",
	})
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestCreateUserRejectsWeakPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateUser(context.Background(), domain.CreateUserRequest{
		Email:    "short@example.com",
		Password: "tiny",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestCreateUserCoercesUnknownRole(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, domain.CreateUserRequest{
		Email:    "sneaky@example.com",
		Password: "longenough",
		Role:     "superuser",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)

	admin, err := svc.CreateUser(ctx, domain.CreateUserRequest{
		Email:    "admin@example.com",
		Password: "longenough",
		Role:     domain.RoleAdmin,
	})
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())
}

func TestLoginAndAuthenticate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, domain.CreateUserRequest{
		FullName: "Jane Mwangi",
		Email:    "jane@example.com",
		Password: "longenough",
	})
	require.NoError(t, err)

	result, err := svc.Login(ctx, domain.LoginRequest{
		Email:    "JANE@example.com",
		Password: "longenough",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.RawToken)
	assert.True(t, result.ExpiresAt.After(time.Now()))

	user, err := svc.Authenticate(ctx, result.RawToken)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, domain.CreateUserRequest{
		Email:    "jane@example.com",
		Password: "longenough",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, domain.LoginRequest{
		Email:    "jane@example.com",
		Password: "wrongpassword",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, domain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "longenough",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	_, err := svc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidSession)

	_, err = svc.Authenticate(ctx, "never-issued")
	assert.ErrorIs(t, err, domain.ErrInvalidSession)

	_, err = svc.CreateUser(ctx, domain.CreateUserRequest{
		Email:    "jane@example.com",
		Password: "longenough",
	})
	require.NoError(t, err)

	result, err := svc.Login(ctx, domain.LoginRequest{
		Email:    "jane@example.com",
		Password: "longenough",
	})
	require.NoError(t, err)

	// Force the session past its expiry.
	expired := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, db.Model(&domain.Session{}).
		Where("1 = 1").
		Update("expires_at", expired).Error)

	_, err = svc.Authenticate(ctx, result.RawToken)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, domain.CreateUserRequest{
		Email:    "jane@example.com",
		Password: "longenough",
	})
	require.NoError(t, err)

	result, err := svc.Login(ctx, domain.LoginRequest{
		Email:    "jane@example.com",
		Password: "longenough",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, result.RawToken))

	_, err = svc.Authenticate(ctx, result.RawToken)
	assert.ErrorIs(t, err, domain.ErrSessionRevoked)
}
