package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/2beens/coachstats/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

const TokenHeader = "X-COACHSTATS-TOKEN"

type AuthMiddlewareHandler struct {
	apiToken     string
	allowedPaths map[string]bool
}

// NewAuthMiddlewareHandler guards every path except the allowed ones with apiToken.
// An empty apiToken disables the check.
func NewAuthMiddlewareHandler(apiToken string, allowedPaths ...string) *AuthMiddlewareHandler {
	h := &AuthMiddlewareHandler{
		apiToken:     apiToken,
		allowedPaths: map[string]bool{},
	}
	for _, p := range allowedPaths {
		h.allowedPaths[p] = true
	}
	return h
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.apiToken == "" || h.allowedPaths[r.URL.Path] {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			authToken := r.Header.Get(TokenHeader)
			if authToken == "" {
				log.Tracef("[missing token] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "missing-auth-token")
				return
			}
			if subtle.ConstantTimeCompare([]byte(authToken), []byte(h.apiToken)) != 1 {
				log.Tracef("[invalid token] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "invalid-auth-token")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r)
		})
	}
}
