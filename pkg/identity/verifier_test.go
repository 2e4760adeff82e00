package identity

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testKey = "test-verification-key"

func signToken(t *testing.T, key string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(key))
	assert.NoError(t, err)
	return signed
}

func TestVerify(t *testing.T) {
	v := NewVerifier(testKey)

	token := signToken(t, testKey, jwt.MapClaims{
		"sub":   "user-123",
		"email": "user@example.com",
		"name":  "Test User",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	principal, err := v.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", principal.UID)
	assert.Equal(t, "user@example.com", principal.Email)
	assert.Equal(t, "Test User", principal.Name)

	// second call must hit the cache and return the same principal
	cached, err := v.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, principal, cached)
}

func TestVerifyRejects(t *testing.T) {
	v := NewVerifier(testKey)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "garbage token", token: "not-a-jwt"},
		{
			name: "wrong key",
			token: signToken(t, "another-key", jwt.MapClaims{
				"sub": "user-123",
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
		},
		{
			name: "expired token",
			token: signToken(t, testKey, jwt.MapClaims{
				"sub": "user-123",
				"exp": time.Now().Add(-time.Hour).Unix(),
			}),
		},
		{
			name: "missing subject",
			token: signToken(t, testKey, jwt.MapClaims{
				"email": "user@example.com",
				"exp":   time.Now().Add(time.Hour).Unix(),
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal, err := v.Verify(tt.token)
			assert.ErrorIs(t, err, ErrUnauthenticated)
			assert.Nil(t, principal)
		})
	}
}
