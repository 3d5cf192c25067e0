package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"recipeauth/internal/domain"
)

type Claims struct {
	jwt.RegisteredClaims
}

// TokenManager issues and verifies the signed bearer tokens handed out
// at sign-in. Secret and signing method are fixed at construction.
type TokenManager struct {
	secret []byte
	method jwt.SigningMethod
	expiry time.Duration
}

func NewTokenManager(secret, algorithm string, expiry time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("token manager requires a signing secret")
	}

	var method jwt.SigningMethod
	switch algorithm {
	case "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}

	return &TokenManager{
		secret: []byte(secret),
		method: method,
		expiry: expiry,
	}, nil
}

func (m *TokenManager) Expiry() time.Duration {
	return m.expiry
}

// Issue signs a token carrying the subject and an absolute expiry.
func (m *TokenManager) Issue(subject string) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.expiry)),
		},
	}

	token := jwt.NewWithClaims(m.method, claims)
	return token.SignedString(m.secret)
}

// Verify parses the token and returns its subject. Tampered, expired, or
// differently signed tokens yield ErrInvalidToken.
func (m *TokenManager) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{m.method.Alg()}))
	if err != nil || !token.Valid {
		return "", domain.ErrInvalidToken
	}

	return claims.Subject, nil
}
