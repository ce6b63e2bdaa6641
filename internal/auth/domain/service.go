package domain

import (
	"context"
	"time"
)

type Service interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, rawToken string) error
	// Authenticate resolves a bearer token to the owning user, rejecting
	// unknown, expired and revoked sessions.
	Authenticate(ctx context.Context, rawToken string) (*User, error)
}

type CreateUserRequest struct {
	FullName string
	Email    string
	Password string
	Role     string
}

type LoginRequest struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

type LoginResult struct {
	User      User
	RawToken  string
	ExpiresAt time.Time
}
