// Package auth
package auth

import (
	"context"
	"errors"
	"time"

	"recipeauth/internal/adapters/http/middleware"
	"recipeauth/internal/domain"
)

const (
	attemptWindow   = time.Minute
	verifyCodeLimit = 5
	resendCodeLimit = 3
)

type service struct {
	repo    domain.UserRepository
	tokens  *TokenManager
	mailer  domain.VerificationMailer
	limiter domain.AttemptLimiter
	codeTTL time.Duration
}

func NewService(
	repo domain.UserRepository,
	tokens *TokenManager,
	mailer domain.VerificationMailer,
	limiter domain.AttemptLimiter,
	codeTTL time.Duration,
) domain.AuthService {
	return &service{
		repo:    repo,
		tokens:  tokens,
		mailer:  mailer,
		limiter: limiter,
		codeTTL: codeTTL,
	}
}

func (s *service) Signup(ctx context.Context, req domain.SignupRequest) error {
	_, err := s.repo.GetByEmail(ctx, req.Email)
	if err == nil {
		return domain.ErrEmailAlreadyExists
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hashedPwd, err := HashPassword(req.Password)
	if err != nil {
		return err
	}

	code, expiry, err := GenerateCode(s.codeTTL)
	if err != nil {
		return err
	}

	user := &domain.User{
		Email:            req.Email,
		Name:             req.Name,
		Password:         hashedPwd,
		IsVerified:       false,
		VerificationCode: &code,
		CodeExpiry:       &expiry,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return err
	}

	// Delivery failure must not undo account creation, the resend path
	// is the recovery.
	s.mailer.SendVerificationCode(user.Email, code)

	return nil
}

func (s *service) VerifyCode(ctx context.Context, req domain.VerifyCodeRequest, origin string) error {
	allowed, err := s.limiter.Allow(ctx, "verify-code", origin, verifyCodeLimit, attemptWindow)
	if err != nil {
		return err
	}
	if !allowed {
		return domain.ErrRateLimited
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	// Already-verified accounts have no pending code and look identical
	// to unknown emails.
	if user.VerificationCode == nil || user.CodeExpiry == nil {
		return domain.ErrUserNotFound
	}

	if *user.VerificationCode != req.Code {
		return domain.ErrIncorrectCode
	}

	if !time.Now().UTC().Before(*user.CodeExpiry) {
		return domain.ErrCodeExpired
	}

	return s.repo.MarkVerified(ctx, user.ID, req.Code)
}

func (s *service) ResendCode(ctx context.Context, req domain.ResendCodeRequest, origin string) error {
	allowed, err := s.limiter.Allow(ctx, "resend-code", origin, resendCodeLimit, attemptWindow)
	if err != nil {
		return err
	}
	if !allowed {
		return domain.ErrRateLimited
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	if user.IsVerified {
		return domain.ErrAlreadyVerified
	}

	code, expiry, err := GenerateCode(s.codeTTL)
	if err != nil {
		return err
	}

	if err := s.repo.SetVerificationCode(ctx, user.ID, code, expiry); err != nil {
		return err
	}

	s.mailer.SendVerificationCode(user.Email, code)

	return nil
}

func (s *service) SignIn(ctx context.Context, req domain.SignInRequest) (*domain.AuthResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !VerifyPassword(req.Password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	accessToken, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, err
	}

	return &domain.AuthResponse{
		User:        user,
		AccessToken: accessToken,
	}, nil
}

func (s *service) GetUser(ctx context.Context) (*domain.User, error) {
	email, ok := middleware.GetUser(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	return user, nil
}
