package persona

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
)

type Example struct {
	User string `json:"user"`
	Bot  string `json:"bot"`
}

type Persona struct {
	Name        string    `json:"name,omitempty"`
	Description string    `json:"description,omitempty"`
	Examples    []Example `json:"examples"`
}

// Load reads the persona definition from path. A missing or malformed file
// is logged and yields a nil persona; the chatbot still works without one,
// it just starts conversations with the bare preamble.
func Load(path string) *Persona {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Warn("persona file not found", "path", path)
		} else {
			slog.Error("error reading persona file", "path", path, "error", err)
		}
		return nil
	}

	var p Persona
	if err := json.Unmarshal(data, &p); err != nil {
		slog.Error("error decoding persona file", "path", path, "error", err)
		return nil
	}

	slog.Info("loaded persona", "path", path, "examples", len(p.Examples))
	return &p
}
