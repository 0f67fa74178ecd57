package conversation

import (
	"context"
	"encoding/json"
	"fmt"

	"davechat/internal/persona"
)

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// The Gemini history format allows each part of a turn to be either a bare
// string or a {"text": ...} object. Part keeps track of which form a part
// arrived in so that a stored history round-trips byte-for-byte.
type Part struct {
	Text       string
	Structured bool
}

func (p Part) MarshalJSON() ([]byte, error) {
	if p.Structured {
		return json.Marshal(struct {
			Text string `json:"text"`
		}{Text: p.Text})
	}
	return json.Marshal(p.Text)
}

func (p *Part) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		p.Text = text
		p.Structured = false
		return nil
	}

	var obj struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("part is neither a string nor a text object: %w", err)
	}
	p.Text = obj.Text
	p.Structured = true
	return nil
}

type Turn struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// NewTurn builds a turn in the structured form, which is what new turns are
// written as.
func NewTurn(role, text string) Turn {
	return Turn{Role: role, Parts: []Part{{Text: text, Structured: true}}}
}

// Text returns the text of the first part, or "" for a malformed turn.
func (t Turn) Text() string {
	if len(t.Parts) == 0 {
		return ""
	}
	return t.Parts[0].Text
}

const (
	preambleUserText  = "You are Dave, a helpful chat assistant created by Raphael Daveal. You will always respond as Dave and adhere to the persona provided in your training data."
	preambleModelText = "Okay, I understand. I am Dave, and I will respond as a helpful chat assistant created by Raphael Daveal, adhering to my defined persona."
)

// Preamble returns the fixed two-turn identity prefix that seeds every fresh
// conversation.
func Preamble() []Turn {
	return []Turn{
		NewTurn(RoleUser, preambleUserText),
		NewTurn(RoleModel, preambleModelText),
	}
}

// Loader is the read side of the durable history store.
type Loader interface {
	Load(ctx context.Context, userID string) []Turn
}

// Manager assembles working histories from the persona and the durable
// store. It holds no per-session state and is safe for concurrent use.
type Manager struct {
	persona *persona.Persona
}

func NewManager(p *persona.Persona) *Manager {
	return &Manager{persona: p}
}

// Initialize returns a brand-new working history: the fixed preamble
// followed by a user/model turn pair per persona example.
func (m *Manager) Initialize() []Turn {
	history := Preamble()
	if m.persona == nil {
		return history
	}
	for _, example := range m.persona.Examples {
		if example.User == "" || example.Bot == "" {
			continue
		}
		history = append(history, NewTurn(RoleUser, example.User))
		history = append(history, NewTurn(RoleModel, example.Bot))
	}
	return history
}

// Resolve returns the working history for a session: the stored history
// verbatim for an authenticated user that has one, otherwise a fresh
// initialization. An authenticated user whose stored record exists but is
// empty falls through to re-initialization.
func (m *Manager) Resolve(ctx context.Context, loggedIn bool, userID string, store Loader) []Turn {
	if loggedIn && userID != "" && store != nil {
		if stored := store.Load(ctx, userID); len(stored) > 0 {
			return stored
		}
	}
	return m.Initialize()
}

// Append returns history with one new turn added. The input slice is never
// mutated, so histories already handed to other sessions stay intact.
func Append(history []Turn, role, text string) []Turn {
	out := make([]Turn, len(history), len(history)+1)
	copy(out, history)
	return append(out, NewTurn(role, text))
}

// FilterForDisplay strips the fixed preamble turns and normalizes every
// remaining part to plain text. The result is only for presentation; model
// calls and persistence always use the unfiltered history.
func FilterForDisplay(history []Turn) []Turn {
	display := make([]Turn, 0, len(history))
	for _, turn := range history {
		text := turn.Text()
		if turn.Role == RoleUser && text == preambleUserText {
			continue
		}
		if turn.Role == RoleModel && text == preambleModelText {
			continue
		}
		display = append(display, Turn{Role: turn.Role, Parts: []Part{{Text: text}}})
	}
	return display
}
