package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"journal-api/internal/handler/http/respond"
	"journal-api/internal/observability/logging"
	"journal-api/internal/observability/metrics"
	authservice "journal-api/internal/service/auth"
)

// errUnauthorized carries no cause, so rejected logins are not logged twice.
var errUnauthorized = respond.NewAppError(http.StatusUnauthorized, "unauthorized", nil)

// TokenHandler issues a bearer token for HTTP Basic credentials.
// @Summary      Issue token
// @Description  Exchanges Basic credentials for a signed JWT valid for one hour
// @Tags         auth
// @Security     BasicAuth
// @Produce      plain
// @Success      200 {string} string "raw JWT"
// @Failure      401 {string} string "missing or invalid credentials"
// @Failure      429 {string} string "too many requests"
// @Router       /auth/token [post]
func TokenHandler(svc *authservice.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := logging.WithRequestID(r.Context(), slog.Default())

		fail := func(reason string) {
			logger.Warn("authentication failed",
				slog.String("reason", reason),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			metrics.RecordTokenRequest(false)
			RecordAuthDuration("failure", time.Since(start).Seconds())
			w.Header().Set("WWW-Authenticate", `Basic realm="journal-api", charset="UTF-8"`)
			respond.SafeErrorV2(w, http.StatusUnauthorized, errUnauthorized)
		}

		user, pass, ok := r.BasicAuth()
		if !ok {
			fail("missing_basic_auth")
			return
		}

		token, p, err := svc.IssueToken(r.Context(), authservice.Credentials{Username: user, Password: pass})
		if err != nil {
			if errors.Is(err, authservice.ErrInvalidCredentials) {
				fail("invalid_credentials")
				return
			}
			metrics.RecordTokenRequest(false)
			RecordAuthDuration("failure", time.Since(start).Seconds())
			respond.SafeErrorV2(w, http.StatusInternalServerError,
				respond.NewAppError(http.StatusInternalServerError, "internal server error", fmt.Errorf("token generation failed: %w", err)))
			return
		}

		logger.Info("authentication successful",
			slog.String("user", p.Name),
			slog.Any("authorities", p.Authorities),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		metrics.RecordTokenRequest(true)
		RecordAuthDuration("success", time.Since(start).Seconds())

		w.Header().Set("Cache-Control", "no-store")
		respond.Text(w, http.StatusOK, token)
	}
}
