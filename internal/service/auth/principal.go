package auth

import "slices"

// Authorities granted to API callers.
const (
	ScopeRead  = "journals:read"
	ScopeWrite = "journals:write"
)

// Principal is an authenticated caller: a name and the authorities it holds.
// It is passed explicitly; nothing reads it from ambient state.
type Principal struct {
	Name        string
	Authorities []string
}

// Has reports whether p holds authority.
func (p Principal) Has(authority string) bool {
	return slices.Contains(p.Authorities, authority)
}
