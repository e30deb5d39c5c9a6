package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret-key-with-at-least-32-characters")

func TestNewTokenIssuer(t *testing.T) {
	_, err := NewTokenIssuer([]byte("short"), time.Hour)
	assert.ErrorIs(t, err, ErrWeakSecret)

	ti, err := NewTokenIssuer(testSecret, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenTTL, ti.TTL())
}

func TestIssue_Claims(t *testing.T) {
	ti, err := NewTokenIssuer(testSecret, 0)
	require.NoError(t, err)
	now := time.Unix(1_700_000_000, 0)

	signed, err := ti.Issue(Principal{Name: "admin", Authorities: []string{ScopeRead, ScopeWrite}}, now)
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(signed, claims)
	require.NoError(t, err)

	assert.Equal(t, "self", claims["iss"])
	assert.Equal(t, "admin", claims["sub"])
	assert.Equal(t, "journals:read journals:write", claims["scope"])
	assert.EqualValues(t, 1_700_000_000, claims["iat"])
	assert.EqualValues(t, 1_700_003_600, claims["exp"])
}

func TestIssue_EmptyPrincipal(t *testing.T) {
	ti, _ := NewTokenIssuer(testSecret, 0)
	_, err := ti.Issue(Principal{}, time.Now())
	assert.Error(t, err)
}

func TestVerify_RoundTrip(t *testing.T) {
	ti, _ := NewTokenIssuer(testSecret, 0)
	p := Principal{Name: "viewer", Authorities: []string{ScopeRead}}

	signed, err := ti.Issue(p, time.Now())
	require.NoError(t, err)

	got, err := ti.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, p, got)
	assert.True(t, got.Has(ScopeRead))
	assert.False(t, got.Has(ScopeWrite))
}

func TestVerify_Expired(t *testing.T) {
	ti, _ := NewTokenIssuer(testSecret, time.Minute)
	signed, err := ti.Issue(Principal{Name: "admin"}, time.Now().Add(-2*time.Minute))
	require.NoError(t, err)

	_, err = ti.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerify_ClockInjected(t *testing.T) {
	ti, _ := NewTokenIssuer(testSecret, time.Hour)
	issued := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	signed, err := ti.Issue(Principal{Name: "admin"}, issued)
	require.NoError(t, err)

	ti.now = func() time.Time { return issued.Add(59 * time.Minute) }
	_, err = ti.Verify(signed)
	assert.NoError(t, err)

	ti.now = func() time.Time { return issued.Add(61 * time.Minute) }
	_, err = ti.Verify(signed)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerify_Rejects(t *testing.T) {
	ti, _ := NewTokenIssuer(testSecret, 0)
	other, _ := NewTokenIssuer([]byte(strings.Repeat("x", 40)), 0)
	now := time.Now()

	forged, _ := other.Issue(Principal{Name: "admin"}, now)

	wrongIssuer, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer: "someone-else", Subject: "admin",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}).SignedString(testSecret)

	noExpiry, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: Issuer, Subject: "admin"},
	}).SignedString(testSecret)

	noSubject, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: Issuer, ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))},
	}).SignedString(testSecret)

	unsigned, _ := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: Issuer, Subject: "admin", ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	for name, tok := range map[string]string{
		"garbage":      "not.a.jwt",
		"forged":       forged,
		"wrong issuer": wrongIssuer,
		"no expiry":    noExpiry,
		"no subject":   noSubject,
		"alg none":     unsigned,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ti.Verify(tok)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
