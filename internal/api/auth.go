package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"davechat/internal/database"
	"davechat/internal/session"
	"davechat/pkg/api"
)

func newUserID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func (s *ChatbotService) Register(r *http.Request) (any, error) {
	req, err := ParseRequest[api.RegisterRequest](r)
	if err != nil {
		return nil, err
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		slog.Warn("registration attempt with missing fields")
		return nil, CodedErrorf(http.StatusBadRequest, "Username, email, and password are required")
	}

	ctx := r.Context()

	var existing database.User
	err = s.db.WithContext(ctx).Where("username = ?", req.Username).First(&existing).Error
	if err == nil {
		slog.Warn("registration attempt for existing username", "username", req.Username)
		return nil, ConflictError("username", "Username already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		slog.Error("error checking username", "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "Registration failed due to server error.")
	}

	err = s.db.WithContext(ctx).Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		slog.Warn("registration attempt for existing email", "email", req.Email)
		return nil, ConflictError("email", "Email address already in use")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		slog.Error("error checking email", "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "Registration failed due to server error.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("error hashing password", "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "Registration failed due to server error.")
	}

	user := database.User{
		Id:           newUserID(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		slog.Error("error creating user", "username", req.Username, "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "Registration failed due to server error.")
	}

	slog.Info("user registered", "username", user.Username, "user_id", user.Id)
	return Created(api.RegisterResponse{Message: "Registration successful"}), nil
}

func (s *ChatbotService) Login(r *http.Request) (any, error) {
	req, err := ParseRequest[api.LoginRequest](r)
	if err != nil {
		return nil, err
	}

	ctx := r.Context()
	sess := session.FromContext(ctx)

	var user database.User
	err = s.db.WithContext(ctx).Where("username = ?", req.Username).First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		slog.Error("error looking up user", "username", req.Username, "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "Login failed due to server error.")
	}

	if errors.Is(err, gorm.ErrRecordNotFound) ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		slog.Warn("login failed, invalid credentials", "username", req.Username)
		sess.LoggedIn = false
		sess.UserID = ""
		sess.Username = ""
		sess.Email = ""
		sess.History = nil
		if err := s.sessions.Save(ctx, sess); err != nil {
			slog.Error("error saving session", "error", err)
		}
		return nil, CodedErrorf(http.StatusUnauthorized, "Invalid credentials")
	}

	sess.LoggedIn = true
	sess.UserID = user.Id
	sess.Username = user.Username
	sess.Email = user.Email
	sess.History = s.conversations.Resolve(ctx, true, user.Id, s.histories)
	if err := s.sessions.Save(ctx, sess); err != nil {
		slog.Error("error saving session", "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "Login failed due to server error.")
	}

	slog.Info("user logged in", "username", user.Username, "user_id", user.Id)
	return api.LoginResponse{Message: "Login successful", Username: user.Username, Email: user.Email}, nil
}

func (s *ChatbotService) Logout(r *http.Request) (any, error) {
	ctx := r.Context()
	sess := session.FromContext(ctx)

	if sess.UserID != "" && len(sess.History) > 0 {
		s.histories.Save(ctx, sess.UserID, sess.History)
	}

	username := sess.Username
	sess.Clear()
	if err := s.sessions.Save(ctx, sess); err != nil {
		slog.Error("error saving session", "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "Logout failed due to server error.")
	}

	slog.Info("user logged out", "username", username)
	return api.LogoutResponse{Message: "Logged out"}, nil
}

func (s *ChatbotService) CheckLoginStatus(r *http.Request) (any, error) {
	ctx := r.Context()
	sess := session.FromContext(ctx)

	if !sess.LoggedIn || sess.UserID == "" {
		return api.GuestStatusResponse{LoggedIn: false, GuestMessageCount: sess.GuestMessageCount}, nil
	}

	// Session restores (new process, expired cache) arrive without a
	// working history; rebuild it before reporting.
	if len(sess.History) == 0 {
		sess.History = s.conversations.Resolve(ctx, true, sess.UserID, s.histories)
		if err := s.sessions.Save(ctx, sess); err != nil {
			slog.Error("error saving session", "error", err)
		}
	}

	return api.LoginStatusResponse{
		LoggedIn:    true,
		Username:    sess.Username,
		UserId:      sess.UserID,
		Email:       sess.Email,
		ChatHistory: toDisplayTurns(sess.History),
	}, nil
}
