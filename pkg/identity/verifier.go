// Package identity verifies bearer tokens and resolves them to a caller
// principal. Decoded principals are cached briefly so hot callers do not pay
// for signature verification on every request.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	gocache "github.com/patrickmn/go-cache"
)

// ErrUnauthenticated is returned for any token that cannot be verified:
// missing, malformed, expired, or carrying a bad signature.
var ErrUnauthenticated = errors.New("unauthenticated")

// Principal is the verified caller identity attached to each request.
type Principal struct {
	UID   string
	Email string
	Name  string
}

type Verifier interface {
	Verify(token string) (*Principal, error)
}

type verifier struct {
	key   []byte
	cache *gocache.Cache
}

func NewVerifier(verificationKey string) Verifier {
	return &verifier{
		key:   []byte(verificationKey),
		cache: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (v *verifier) Verify(token string) (*Principal, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	cacheKey := tokenFingerprint(token)
	if cached, found := v.cache.Get(cacheKey); found {
		return cached.(*Principal), nil
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.key, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrUnauthenticated
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrUnauthenticated
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrUnauthenticated
	}

	principal := &Principal{UID: sub}
	if email, ok := claims["email"].(string); ok {
		principal.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		principal.Name = name
	}

	v.cache.Set(cacheKey, principal, cacheTTL(claims))
	return principal, nil
}

// cacheTTL caps the cache entry at the token's own expiry so a cached
// principal never outlives its token.
func cacheTTL(claims jwt.MapClaims) time.Duration {
	ttl := 5 * time.Minute
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		if remaining := time.Until(exp.Time); remaining < ttl {
			ttl = remaining
		}
	}
	return ttl
}

func tokenFingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
