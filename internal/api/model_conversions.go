package api

import (
	"davechat/internal/conversation"
	"davechat/pkg/api"
)

func toDisplayTurns(history []conversation.Turn) []api.DisplayTurn {
	filtered := conversation.FilterForDisplay(history)
	display := make([]api.DisplayTurn, len(filtered))
	for i, turn := range filtered {
		display[i] = api.DisplayTurn{Role: turn.Role, Parts: []string{turn.Text()}}
	}
	return display
}
