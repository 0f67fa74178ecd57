package llm

import (
	"context"
	"fmt"

	"davechat/internal/conversation"
)

const (
	ProviderGoogleAI = "googleai"
	ProviderOpenAI   = "openai"
)

// Generator is the remote generative-model service: given the working
// history as context and one new message, produce the reply text. This is
// the single external I/O call in a chat turn.
type Generator interface {
	Generate(ctx context.Context, history []conversation.Turn, message string) (string, error)
}

func NewGenerator(ctx context.Context, provider, apiKey, model string) (Generator, error) {
	switch provider {
	case ProviderGoogleAI:
		return NewGoogleAI(ctx, apiKey, model)
	case ProviderOpenAI:
		return NewOpenAI(model), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", provider)
	}
}
