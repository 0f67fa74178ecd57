package api

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Message string `json:"message"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type LogoutResponse struct {
	Message string `json:"message"`
}

// LoginStatusResponse is the authenticated branch of /check_login_status.
type LoginStatusResponse struct {
	LoggedIn    bool          `json:"logged_in"`
	Username    string        `json:"username"`
	UserId      string        `json:"user_id"`
	Email       string        `json:"email"`
	ChatHistory []DisplayTurn `json:"chat_history"`
}

// GuestStatusResponse is the unauthenticated branch of /check_login_status.
type GuestStatusResponse struct {
	LoggedIn          bool `json:"logged_in"`
	GuestMessageCount int  `json:"guest_message_count"`
}

// ErrorResponse is the body of every non-2xx response. Field names the
// conflicting column on 409; Code is a machine-readable reason like
// LIMIT_EXCEEDED on 403.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Code  string `json:"code,omitempty"`
}
