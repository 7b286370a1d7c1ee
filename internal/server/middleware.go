package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tdx/internal/auth"
)

type contextKey int

const principalKey contextKey = iota

// PrincipalFrom returns the authenticated principal stored on the request
// context by [Authenticate].
func PrincipalFrom(ctx context.Context) (*auth.Principal, bool) {
	p, ok := ctx.Value(principalKey).(*auth.Principal)
	return p, ok
}

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLogger logs one line per request with method, path, status and
// duration.
func RequestLogger(logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, req)

			logger.Info("request",
				"method", req.Method,
				"path", req.URL.Path,
				"status", recorder.status,
				"duration", time.Since(start),
			)
		})
	}
}

// Authenticate resolves the bearer token to a principal and stores it on the
// request context, rejecting requests without a valid session.
func Authenticate(identity *auth.Service) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			token := bearerToken(req)
			if token == "" {
				writeErrorMessage(w, http.StatusUnauthorized, "authentication required")
				return
			}

			principal, err := identity.Verify(token)
			if err != nil {
				writeError(w, err)
				return
			}

			ctx := context.WithValue(req.Context(), principalKey, principal)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from an Authorization: Bearer header, or
// returns an empty string.
func bearerToken(req *http.Request) string {
	header := req.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
