package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"davechat/internal/conversation"
	"davechat/internal/history"
	"davechat/internal/llm"
	"davechat/internal/quota"
	"davechat/internal/session"
)

// ChatbotService wires the conversation manager, quota gate, history store
// and generator behind the HTTP surface.
type ChatbotService struct {
	db            *gorm.DB
	sessions      *session.Manager
	histories     *history.Store
	conversations *conversation.Manager
	gate          *quota.Gate
	generator     llm.Generator
}

func NewChatbotService(db *gorm.DB, sessions *session.Manager, conversations *conversation.Manager, gate *quota.Gate, generator llm.Generator) *ChatbotService {
	return &ChatbotService{
		db:            db,
		sessions:      sessions,
		histories:     history.NewStore(db),
		conversations: conversations,
		gate:          gate,
		generator:     generator,
	}
}

func (s *ChatbotService) AddRoutes(r chi.Router) {
	r.Get("/health", RestHandler(func(r *http.Request) (any, error) { return nil, nil }))

	r.Post("/register", RestHandler(s.Register))
	r.Post("/login", RestHandler(s.Login))
	r.Get("/check_login_status", RestHandler(s.CheckLoginStatus))

	r.Post("/chat", RestHandler(s.Chat))
	r.Get("/new_chat", RestHandler(s.NewChat))
	r.Post("/new_chat", RestHandler(s.NewChat))

	r.Group(func(r chi.Router) {
		r.Use(RequireLogin)
		r.Post("/logout", RestHandler(s.Logout))
		r.Get("/history", RestHandler(s.GetHistory))
	})
}
