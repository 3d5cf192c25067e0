// Package domain
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

type User struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Password   string    `json:"-"`
	IsVerified bool      `json:"is_verified"`

	// VerificationCode and CodeExpiry are set together while a
	// verification attempt is pending and cleared together once the
	// account is verified.
	VerificationCode *string    `json:"-"`
	CodeExpiry       *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) error

	// MarkVerified flips the account to verified and clears the pending
	// code, guarded by an exact match on the stored code so concurrent
	// verifications cannot both consume it. Returns ErrUserNotFound when
	// no row matched.
	MarkVerified(ctx context.Context, userID uuid.UUID, code string) error

	// SetVerificationCode replaces the pending code and expiry on an
	// unverified account. Returns ErrAlreadyVerified when the account is
	// verified and ErrUserNotFound when it does not exist.
	SetVerificationCode(ctx context.Context, userID uuid.UUID, code string, expiry time.Time) error
}
