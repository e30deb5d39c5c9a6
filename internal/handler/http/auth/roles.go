package auth

import (
	"net/http"

	authservice "journal-api/internal/service/auth"
)

// Role constants name the configured users' roles.
const (
	// RoleAdmin may read and write journals
	RoleAdmin = "admin"
	// RoleViewer may only read journals
	RoleViewer = "viewer"
)

var roleAuthorities = map[string][]string{
	RoleAdmin:  {authservice.ScopeRead, authservice.ScopeWrite},
	RoleViewer: {authservice.ScopeRead},
}

// RoleAuthorities returns the authorities granted to role, or nil for an
// unknown role.
func RoleAuthorities(role string) []string {
	return append([]string(nil), roleAuthorities[role]...)
}

// RequiredScope returns the authority a request method needs.
// Safe methods need read access; everything else needs write access.
func RequiredScope(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return authservice.ScopeRead
	default:
		return authservice.ScopeWrite
	}
}
