package transport

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenSource supplies the bearer token attached to every request.
// Acquiring and refreshing Azure AD credentials is the caller's concern;
// the session only asks for a token per request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken returns a TokenSource that always yields tok. Suitable for
// short-lived scripts where the caller manages expiry.
func StaticToken(tok string) TokenSource {
	return staticToken(tok)
}

type staticToken string

func (t staticToken) Token(ctx context.Context) (string, error) {
	if t == "" {
		return "", fmt.Errorf("transport: empty access token")
	}
	return string(t), nil
}

// expirySkew re-fetches a token slightly before its exp claim so an
// in-flight request does not ride an expiring token.
const expirySkew = 2 * time.Minute

// CachedTokenSource caches tokens produced by a refresh function, reusing
// a token until the exp claim of its JWT (minus a skew margin) passes.
// Tokens are parsed without signature verification: the session is the
// token's consumer, not its validator.
type CachedTokenSource struct {
	refresh func(ctx context.Context) (string, error)
	now     func() time.Time

	mu      sync.Mutex
	token   string
	expires time.Time
}

// NewCachedTokenSource wraps refresh with expiry-aware caching.
func NewCachedTokenSource(refresh func(ctx context.Context) (string, error)) *CachedTokenSource {
	return &CachedTokenSource{refresh: refresh, now: time.Now}
}

// Token implements TokenSource.
func (c *CachedTokenSource) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && (c.expires.IsZero() || c.now().Add(expirySkew).Before(c.expires)) {
		return c.token, nil
	}

	tok, err := c.refresh(ctx)
	if err != nil {
		return "", fmt.Errorf("transport: refreshing token: %w", err)
	}

	c.token = tok
	c.expires = tokenExpiry(tok)
	return tok, nil
}

// tokenExpiry extracts the exp claim, returning the zero time for tokens
// that are not JWTs or carry no expiry (such tokens are cached forever).
func tokenExpiry(tok string) time.Time {
	parsed, _, err := jwt.NewParser().ParseUnverified(tok, jwt.MapClaims{})
	if err != nil {
		return time.Time{}
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
