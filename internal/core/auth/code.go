package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

var codeSpace = big.NewInt(1000000)

// GenerateCode draws a 6-digit verification code from 000000-999999 and
// pairs it with its expiry. crypto/rand keeps the code unguessable
// within the attempt budget.
func GenerateCode(ttl time.Duration) (string, time.Time, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate verification code: %w", err)
	}

	code := fmt.Sprintf("%06d", n.Int64())
	expiry := time.Now().UTC().Add(ttl)

	return code, expiry, nil
}
