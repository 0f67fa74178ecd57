package session

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const CookieName = "davechat_session"

type contextKey struct{}

// Manager binds sessions to the browser cookie and makes the current
// session available through the request context. Mutations are persisted
// explicitly via Save rather than by ambient side effect.
type Manager struct {
	store Store
	ttl   time.Duration
}

func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl}
}

// Middleware loads the session named by the cookie, creating a fresh one
// when the cookie is absent or the stored session has expired. The cookie
// is refreshed on every request so the idle TTL slides.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sess *Session

		if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
			loaded, err := m.store.Get(r.Context(), cookie.Value)
			if err != nil {
				slog.Error("error loading session", "error", err)
			}
			sess = loaded
		}

		if sess == nil {
			sess = New()
			if err := m.store.Put(r.Context(), sess); err != nil {
				slog.Error("error storing new session", "error", err)
			}
			slog.Info("started new session", "session_id", sess.ID)
		}

		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    sess.ID,
			Path:     "/",
			MaxAge:   int(m.ttl.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		ctx := context.WithValue(r.Context(), contextKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FromContext returns the session attached by Middleware, or nil when the
// handler runs outside it.
func FromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(contextKey{}).(*Session)
	return sess
}

// Save persists a mutated session back to the store, refreshing its TTL.
func (m *Manager) Save(ctx context.Context, s *Session) error {
	return m.store.Put(ctx, s)
}
