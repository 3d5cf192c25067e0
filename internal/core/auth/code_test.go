package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode_SixDigits(t *testing.T) {
	t.Parallel()

	for range 100 {
		code, _, err := GenerateCode(3 * time.Minute)
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, r := range code {
			require.True(t, r >= '0' && r <= '9', "code %q contains non-digit", code)
		}
	}
}

func TestGenerateCode_ExpiryWindow(t *testing.T) {
	t.Parallel()

	before := time.Now().UTC()
	_, expiry, err := GenerateCode(3 * time.Minute)
	require.NoError(t, err)
	after := time.Now().UTC()

	assert.False(t, expiry.Before(before.Add(3*time.Minute)))
	assert.False(t, expiry.After(after.Add(3*time.Minute)))
}
