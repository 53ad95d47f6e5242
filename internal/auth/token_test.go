package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestTokens(secret string, ttl time.Duration) (*TokenService, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	return NewTokenService(secret, ttl, WithClock(clock.Now)), clock
}

func TestTokenService_IssueVerifyRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		email string
	}{
		{name: "object id", id: "665f1c2ab9d3e4f5a6b7c8d9", email: "alice@example.com"},
		{name: "uuid", id: "8c6f0a3e-2f4b-4c2a-9a51-0c7a5d3f1e22", email: "bob@example.com"},
		{name: "empty email", id: "42", email: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, clock := newTestTokens("secret", time.Hour)

			token, err := tokens.Issue(tt.id, tt.email)
			require.NoError(t, err)

			clock.Advance(59 * time.Minute)
			claims, err := tokens.Verify(token)
			require.NoError(t, err)
			assert.Equal(t, tt.id, claims.UserID)
			assert.Equal(t, tt.email, claims.Email)
			assert.Equal(t, clock.now.Add(-59*time.Minute).Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
		})
	}
}

func TestTokenService_IssueRejectsEmptySubject(t *testing.T) {
	tokens, _ := newTestTokens("secret", time.Hour)

	_, err := tokens.Issue("", "alice@example.com")
	assert.Error(t, err)
}

func TestTokenService_VerifyExpired(t *testing.T) {
	tokens, clock := newTestTokens("secret", time.Hour)
	token, err := tokens.Issue("user-1", "alice@example.com")
	require.NoError(t, err)

	clock.Advance(time.Hour)
	_, err = tokens.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)

	clock.Advance(24 * time.Hour)
	_, err = tokens.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenService_ExpiryUsesVerifierClock(t *testing.T) {
	issuer, _ := newTestTokens("secret", time.Hour)
	token, err := issuer.Issue("user-1", "alice@example.com")
	require.NoError(t, err)

	later := &fakeClock{now: time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC)}
	verifier := NewTokenService("secret", time.Hour, WithClock(later.Now))

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenService_VerifyDifferentSecret(t *testing.T) {
	issuer, _ := newTestTokens("secret-a", time.Hour)
	verifier, _ := newTestTokens("secret-b", time.Hour)

	token, err := issuer.Issue("user-1", "alice@example.com")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestTokenService_VerifyTampered(t *testing.T) {
	tokens, _ := newTestTokens("secret", time.Hour)
	token, err := tokens.Issue("user-1", "alice@example.com")
	require.NoError(t, err)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: "user-2",
		Email:  "mallory@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	// Swap the payload of a genuine token for a forged one, keeping the signature.
	parts := strings.Split(token, ".")
	forgedParts := strings.Split(forged, ".")
	tampered := parts[0] + "." + forgedParts[1] + "." + parts[2]

	_, err = tokens.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestTokenService_VerifyRejectsOtherAlgorithms(t *testing.T) {
	tokens, _ := newTestTokens("secret", time.Hour)
	claims := &Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)),
		},
	}

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = tokens.Verify(unsigned)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = tokens.Verify(hs512)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestTokenService_VerifyMalformed(t *testing.T) {
	tokens, _ := newTestTokens("secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := tokens.Verify(token)
		assert.ErrorIs(t, err, ErrMalformedToken, "token %q", token)
	}
}

func TestTokenService_VerifyRequiresExpiry(t *testing.T) {
	tokens, _ := newTestTokens("secret", time.Hour)
	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: "user-1"}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = tokens.Verify(noExpiry)
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestNewTokenService_DefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultTokenTTL, NewTokenService("secret", 0).TTL())
	assert.Equal(t, time.Minute, NewTokenService("secret", time.Minute).TTL())
}
