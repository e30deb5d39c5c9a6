package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"journal-api/internal/handler/http/respond"
	authservice "journal-api/internal/service/auth"
)

type ctxKey struct{}

// Verifier validates a raw bearer token.
type Verifier interface {
	Verify(token string) (authservice.Principal, error)
}

// PrincipalFromContext returns the caller stored by Authz.
func PrincipalFromContext(ctx context.Context) (authservice.Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(authservice.Principal)
	return p, ok
}

// Authz requires a valid bearer token carrying the scope the request
// method needs (see RequiredScope).
//
//   - missing, malformed, expired or forged token: 401
//   - valid token without the scope: 403
func Authz(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			p, err := bearerPrincipal(r.Header.Get("Authorization"), v)
			RecordAuthzCheckDuration(time.Since(start).Seconds())
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="journal-api"`)
				respond.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized: " + err.Error()})
				return
			}

			scope := RequiredScope(r.Method)
			if !p.Has(scope) {
				RecordForbiddenAttempt(scope, r.Method)
				respond.JSON(w, http.StatusForbidden, map[string]string{"error": "forbidden: " + scope + " scope required"})
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, p)))
		})
	}
}

func bearerPrincipal(header string, v Verifier) (authservice.Principal, error) {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return authservice.Principal{}, errors.New("missing bearer token")
	}
	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return authservice.Principal{}, errors.New("missing bearer token")
	}
	p, err := v.Verify(token)
	if err != nil {
		return authservice.Principal{}, errors.New("invalid token")
	}
	return p, nil
}
