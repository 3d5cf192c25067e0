package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"recipeauth/internal/domain"
)

const uniqueViolationCode = "23505"

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT
			id,
			email,
			name,
			password,
			is_verified,
			verification_code,
			code_expiry,
			created_at,
			updated_at
		FROM users
		WHERE email = $1
	`

	row := r.db.QueryRow(ctx, query, email)

	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Password,
		&user.IsVerified,
		&user.VerificationCode,
		&user.CodeExpiry,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (email, name, password, is_verified, verification_code, code_expiry, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	now := time.Now().UTC()

	err := r.db.QueryRow(ctx, query,
		user.Email,
		user.Name,
		user.Password,
		user.IsVerified,
		user.VerificationCode,
		user.CodeExpiry,
		now,
		now,
	).Scan(&user.ID)
	if err != nil {
		// The unique constraint on email is the authoritative duplicate
		// check, the service pre-check only shapes the error path.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

func (r *UserRepository) MarkVerified(ctx context.Context, userID uuid.UUID, code string) error {
	query := `
		UPDATE users
		SET is_verified = TRUE, verification_code = NULL, code_expiry = NULL, updated_at = $1
		WHERE id = $2 AND verification_code = $3 AND is_verified = FALSE
	`

	ct, err := r.db.Exec(ctx, query, time.Now().UTC(), userID, code)
	if err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}

	// Zero rows means another request consumed or rotated the code
	// between our read and this write.
	if ct.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

func (r *UserRepository) SetVerificationCode(ctx context.Context, userID uuid.UUID, code string, expiry time.Time) error {
	query := `
		UPDATE users
		SET verification_code = $1, code_expiry = $2, updated_at = $3
		WHERE id = $4 AND is_verified = FALSE
	`

	ct, err := r.db.Exec(ctx, query, code, expiry, time.Now().UTC(), userID)
	if err != nil {
		return fmt.Errorf("failed to set verification code: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return domain.ErrAlreadyVerified
	}

	return nil
}
