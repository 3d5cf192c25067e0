package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthorized       = errors.New("unauthorized")

	ErrIncorrectCode   = errors.New("incorrect code")
	ErrCodeExpired     = errors.New("code expired")
	ErrAlreadyVerified = errors.New("user already verified")
	ErrRateLimited     = errors.New("rate limited")
)

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type VerifyCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

type ResendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User        *User  `json:"user"`
	AccessToken string `json:"access_token"`
}

type AuthService interface {
	Signup(ctx context.Context, req SignupRequest) error
	VerifyCode(ctx context.Context, req VerifyCodeRequest, origin string) error
	ResendCode(ctx context.Context, req ResendCodeRequest, origin string) error
	SignIn(ctx context.Context, req SignInRequest) (*AuthResponse, error)
	GetUser(ctx context.Context) (*User, error)
}

// VerificationMailer delivers a verification code to an address.
// Implementations must not block the caller on provider latency;
// delivery failures are logged, never surfaced.
type VerificationMailer interface {
	SendVerificationCode(email, code string)
}

// AttemptLimiter bounds how often an operation may run per requesting
// origin inside a fixed window.
type AttemptLimiter interface {
	Allow(ctx context.Context, op, origin string, limit int, window time.Duration) (bool, error)
}
