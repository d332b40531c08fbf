package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/randalmurphal/captionmirror/auth"
)

type claimsKey struct{}

// ClaimsFromContext returns the token claims of an authenticated request,
// or nil when the request used an API key.
func ClaimsFromContext(ctx context.Context) *auth.ControlClaims {
	c, _ := ctx.Value(claimsKey{}).(*auth.ControlClaims)
	return c
}

// requireScope rejects requests whose credential does not grant scope.
func (s *Server) requireScope(scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			credential := bearer(r)
			if credential == "" {
				writeError(w, http.StatusUnauthorized, "missing bearer credential")
				return
			}

			if s.keys != nil && auth.ValidateAPIKeyFormat(credential, auth.APIKeyConfig{}) {
				if err := s.keys.Verify(credential); err != nil {
					s.logger.Debug("api key rejected", "prefix", auth.ExtractAPIKeyPrefix(credential, auth.APIKeyConfig{}))
					writeError(w, http.StatusUnauthorized, err.Error())
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			if len(s.cfg.JWT.Secret) == 0 {
				writeError(w, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
				return
			}
			claims, err := auth.ValidateToken(s.cfg.JWT, credential)
			if err != nil {
				writeError(w, http.StatusUnauthorized, err.Error())
				return
			}
			if !claims.HasScope(scope) {
				writeError(w, http.StatusForbidden, fmt.Sprintf("%v: requires %s", auth.ErrInsufficientScope, scope))
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
		})
	}
}

func bearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
