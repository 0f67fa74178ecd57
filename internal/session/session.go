package session

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"davechat/internal/conversation"
)

// Session is the per-browser working state. It travels by value through a
// request: handlers mutate their copy and persist it back through the
// Manager, so two concurrent sessions never share history slices.
type Session struct {
	ID                string              `json:"id"`
	LoggedIn          bool                `json:"logged_in"`
	UserID            string              `json:"user_id,omitempty"`
	Username          string              `json:"username,omitempty"`
	Email             string              `json:"email,omitempty"`
	History           []conversation.Turn `json:"history,omitempty"`
	GuestMessageCount int                 `json:"guest_message_count"`
}

func New() *Session {
	return &Session{ID: newToken()}
}

// Clear resets every field except the session id, which stays bound to the
// browser cookie.
func (s *Session) Clear() {
	s.LoggedIn = false
	s.UserID = ""
	s.Username = ""
	s.Email = ""
	s.History = nil
	s.GuestMessageCount = 0
}

// newToken returns a 32-char hex id, the same shape the user ids use.
func newToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Store is the explicit session persistence interface. Get returns
// (nil, nil) for an unknown or expired id.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Put(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}
