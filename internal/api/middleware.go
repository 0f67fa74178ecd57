package api

import (
	"log/slog"
	"net/http"

	"davechat/internal/session"
	"davechat/pkg/api"
)

// RequireLogin guards routes that only make sense for an authenticated
// session. It is composed in front of handlers rather than buried in them,
// and answers with a typed 401 body.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())
		if sess == nil || !sess.LoggedIn {
			slog.Warn("unauthorized access attempt", "path", r.URL.Path)
			writeErrorResponse(w, http.StatusUnauthorized, api.ErrorResponse{
				Error: "Unauthorized. Please log in.",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
