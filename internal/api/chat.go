package api

import (
	"log/slog"
	"net/http"
	"strings"

	"davechat/internal/conversation"
	"davechat/internal/quota"
	"davechat/internal/session"
	"davechat/pkg/api"
)

func (s *ChatbotService) Chat(r *http.Request) (any, error) {
	req, err := ParseRequest[api.ChatRequest](r)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Message) == "" {
		slog.Warn("chat attempt with no message provided")
		return nil, CodedErrorf(http.StatusBadRequest, "No message provided")
	}

	ctx := r.Context()
	sess := session.FromContext(ctx)

	if len(sess.History) == 0 {
		sess.History = s.conversations.Resolve(ctx, sess.LoggedIn, sess.UserID, s.histories)
	}

	decision := s.gate.CheckAndIncrement(sess)
	if !decision.Allowed {
		return nil, QuotaError(decision.Limit)
	}
	// The count increment must survive even if the model call below fails.
	if err := s.sessions.Save(ctx, sess); err != nil {
		slog.Error("error saving session", "error", err)
	}

	reply, err := s.generator.Generate(ctx, sess.History, req.Message)
	if err != nil {
		slog.Error("model call failed", "user_id", sess.UserID, "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "Chat failed due to server error.")
	}

	updated := conversation.Append(sess.History, conversation.RoleUser, req.Message)
	updated = conversation.Append(updated, conversation.RoleModel, reply)
	sess.History = updated
	if err := s.sessions.Save(ctx, sess); err != nil {
		slog.Error("error saving session", "error", err)
	}

	if sess.LoggedIn && sess.UserID != "" {
		s.histories.Save(ctx, sess.UserID, sess.History)
	}

	return api.ChatResponse{Response: reply}, nil
}

func (s *ChatbotService) NewChat(r *http.Request) (any, error) {
	ctx := r.Context()
	sess := session.FromContext(ctx)

	if sess.LoggedIn && sess.UserID != "" && len(sess.History) > 0 {
		s.histories.Save(ctx, sess.UserID, sess.History)
	}

	quota.Reset(sess)
	sess.History = s.conversations.Initialize()
	if err := s.sessions.Save(ctx, sess); err != nil {
		slog.Error("error saving session", "error", err)
	}

	slog.Info("new chat started", "username", sess.Username)
	return api.NewChatResponse{Message: "New chat started"}, nil
}

func (s *ChatbotService) GetHistory(r *http.Request) (any, error) {
	q, err := ParseRequestQueryParams[api.HistoryQuery](r)
	if err != nil {
		return nil, err
	}

	ctx := r.Context()
	sess := session.FromContext(ctx)

	if len(sess.History) == 0 {
		sess.History = s.conversations.Resolve(ctx, true, sess.UserID, s.histories)
		if err := s.sessions.Save(ctx, sess); err != nil {
			slog.Error("error saving session", "error", err)
		}
	}

	display := toDisplayTurns(sess.History)
	if q.Offset > 0 {
		if q.Offset >= len(display) {
			display = nil
		} else {
			display = display[q.Offset:]
		}
	}
	if q.Limit > 0 && q.Limit < len(display) {
		display = display[:q.Limit]
	}

	return api.HistoryResponse{History: display}, nil
}
