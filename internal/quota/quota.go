package quota

import (
	"log/slog"

	"davechat/internal/session"
)

// Decision is the typed outcome of a quota check. Rejections carry the
// configured limit so the caller can report it.
type Decision struct {
	Allowed bool
	Limit   int
}

// Gate enforces the free-message allowance for unauthenticated sessions.
type Gate struct {
	limit int
}

func NewGate(limit int) *Gate {
	return &Gate{limit: limit}
}

// CheckAndIncrement applies the gate to one chat turn. Authenticated
// sessions always pass and are never counted. A guest at the limit is
// rejected without incrementing; a guest under it is counted and allowed.
// The caller persists the session mutation.
func (g *Gate) CheckAndIncrement(sess *session.Session) Decision {
	if sess.LoggedIn {
		return Decision{Allowed: true, Limit: g.limit}
	}

	if sess.GuestMessageCount >= g.limit {
		slog.Warn("guest exceeded message limit", "session_id", sess.ID, "count", sess.GuestMessageCount)
		return Decision{Allowed: false, Limit: g.limit}
	}

	sess.GuestMessageCount++
	slog.Info("guest message counted", "session_id", sess.ID, "count", sess.GuestMessageCount)
	return Decision{Allowed: true, Limit: g.limit}
}

// Reset clears the guest allowance, used on new chat.
func Reset(sess *session.Session) {
	sess.GuestMessageCount = 0
}
