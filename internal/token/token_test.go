package token_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/spacerent/space-rental-backend/internal/domain"
	"github.com/spacerent/space-rental-backend/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(ttl time.Duration) *token.Manager {
	return token.NewManager("test-secret-key-for-testing-only", ttl, 4)
}

func TestManager_PasswordHashing(t *testing.T) {
	m := newManager(time.Hour)

	hash, err := m.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, m.VerifyPassword("correct horse battery staple", hash))
	assert.False(t, m.VerifyPassword("wrong password", hash))
	assert.False(t, m.VerifyPassword("", hash))
}

func TestManager_GenerateOpaqueToken(t *testing.T) {
	m := newManager(time.Hour)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok, err := m.GenerateOpaqueToken()
		require.NoError(t, err)

		// 32 random bytes base64url-encoded without padding
		assert.Len(t, tok, 43)
		assert.False(t, strings.ContainsAny(tok, "+/="), "token must be URL-safe")
		assert.False(t, seen[tok], "tokens must not repeat")
		seen[tok] = true
	}
}

func TestManager_AccessTokenRoundTrip(t *testing.T) {
	m := newManager(time.Hour)
	userID := uuid.New()

	signed, err := m.GenerateAccessToken(userID, domain.RoleOwner)
	require.NoError(t, err)

	claims, err := m.VerifyAccessToken(signed)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, domain.RoleOwner, claims.Role)
}

func TestManager_VerifyAccessToken_Rejections(t *testing.T) {
	m := newManager(time.Hour)

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name: "garbage token",
			token: func(t *testing.T) string {
				return "not.a.jwt"
			},
		},
		{
			name: "expired token",
			token: func(t *testing.T) string {
				expired := newManager(-time.Minute)
				signed, err := expired.GenerateAccessToken(uuid.New(), domain.RoleRenter)
				require.NoError(t, err)
				return signed
			},
		},
		{
			name: "wrong signing secret",
			token: func(t *testing.T) string {
				other := token.NewManager("a-different-secret", time.Hour, 4)
				signed, err := other.GenerateAccessToken(uuid.New(), domain.RoleRenter)
				require.NoError(t, err)
				return signed
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.VerifyAccessToken(tt.token(t))
			assert.Error(t, err)
		})
	}
}
