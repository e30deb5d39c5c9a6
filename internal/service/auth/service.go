// Package auth holds authentication logic independent of any transport:
// credential checking through a pluggable provider and bearer token issuance.
package auth

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidCredentials is returned when a username/password pair is rejected.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Credentials represents authentication credentials.
type Credentials struct {
	Username string
	Password string
}

// CredentialRequirements defines password policy requirements.
type CredentialRequirements struct {
	MinPasswordLength int
	WeakPasswords     []string
}

// AuthProvider checks credentials and resolves the caller's authorities.
type AuthProvider interface {
	// Authenticate returns the principal for creds, or an error wrapping
	// ErrInvalidCredentials.
	Authenticate(ctx context.Context, creds Credentials) (Principal, error)

	GetRequirements() CredentialRequirements

	Name() string
}

// AuthService turns accepted credentials into bearer tokens.
type AuthService struct {
	provider AuthProvider
	issuer   *TokenIssuer
	now      func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(provider AuthProvider, issuer *TokenIssuer) *AuthService {
	return &AuthService{provider: provider, issuer: issuer, now: time.Now}
}

// IssueToken authenticates creds and returns a signed token with the
// principal it was issued for.
func (s *AuthService) IssueToken(ctx context.Context, creds Credentials) (string, Principal, error) {
	p, err := s.provider.Authenticate(ctx, creds)
	if err != nil {
		return "", Principal{}, err
	}
	token, err := s.issuer.Issue(p, s.now())
	if err != nil {
		return "", Principal{}, err
	}
	return token, p, nil
}

// Verify validates a bearer token.
func (s *AuthService) Verify(token string) (Principal, error) {
	return s.issuer.Verify(token)
}

// GetProvider returns the current authentication provider.
func (s *AuthService) GetProvider() AuthProvider {
	return s.provider
}
