package api

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

type NewChatResponse struct {
	Message string `json:"message"`
}

// DisplayTurn is a history turn normalized for presentation: persona turns
// stripped, every part unwrapped to plain text.
type DisplayTurn struct {
	Role  string   `json:"role"`
	Parts []string `json:"parts"`
}

type HistoryQuery struct {
	Limit  int `schema:"limit"`
	Offset int `schema:"offset"`
}

type HistoryResponse struct {
	History []DisplayTurn `json:"history"`
}
