package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	authservice "journal-api/internal/service/auth"
)

// User is a configured account.
type User struct {
	Name     string
	Password string
	Role     string
}

// UserProvider authenticates against a fixed list of configured users.
type UserProvider struct {
	users             []User
	minPasswordLength int
	weakPasswords     []string
}

// NewUserProvider creates a provider over users. Users with an empty name
// or password are ignored.
func NewUserProvider(users []User, req authservice.CredentialRequirements) *UserProvider {
	p := &UserProvider{minPasswordLength: req.MinPasswordLength, weakPasswords: req.WeakPasswords}
	for _, u := range users {
		if u.Name != "" && u.Password != "" {
			p.users = append(p.users, u)
		}
	}
	return p
}

// Authenticate compares creds against every configured user in constant time.
func (p *UserProvider) Authenticate(_ context.Context, creds authservice.Credentials) (authservice.Principal, error) {
	if creds.Username == "" || creds.Password == "" {
		return authservice.Principal{}, fmt.Errorf("credentials must not be empty: %w", authservice.ErrInvalidCredentials)
	}
	if len(creds.Password) < p.minPasswordLength {
		return authservice.Principal{}, fmt.Errorf("password too short: %w", authservice.ErrInvalidCredentials)
	}
	lower := strings.ToLower(creds.Password)
	for _, weak := range p.weakPasswords {
		if lower == weak {
			return authservice.Principal{}, fmt.Errorf("weak password: %w", authservice.ErrInvalidCredentials)
		}
	}

	var matched *User
	for i := range p.users {
		u := &p.users[i]
		userOK := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(u.Name))
		passOK := subtle.ConstantTimeCompare([]byte(creds.Password), []byte(u.Password))
		if userOK&passOK == 1 && matched == nil {
			matched = u
		}
	}
	if matched == nil {
		return authservice.Principal{}, authservice.ErrInvalidCredentials
	}
	return authservice.Principal{Name: matched.Name, Authorities: RoleAuthorities(matched.Role)}, nil
}

func (p *UserProvider) GetRequirements() authservice.CredentialRequirements {
	return authservice.CredentialRequirements{
		MinPasswordLength: p.minPasswordLength,
		WeakPasswords:     p.weakPasswords,
	}
}

func (p *UserProvider) Name() string {
	return "users"
}
