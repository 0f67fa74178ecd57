package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/schema"

	"davechat/internal/conversation"
)

// GoogleAI generates replies through the Gemini API.
type GoogleAI struct {
	client *googleai.GoogleAI
	model  string
}

func NewGoogleAI(ctx context.Context, apiKey, model string) (*GoogleAI, error) {
	client, err := googleai.New(ctx, googleai.WithAPIKey(apiKey), googleai.WithDefaultModel(model))
	if err != nil {
		return nil, fmt.Errorf("could not create Gemini client: %w", err)
	}
	return &GoogleAI{client: client, model: model}, nil
}

func (g *GoogleAI) Generate(ctx context.Context, history []conversation.Turn, message string) (string, error) {
	messages := make([]llms.MessageContent, 0, len(history)+1)
	for _, turn := range history {
		messages = append(messages, llms.TextParts(messageType(turn.Role), turn.Text()))
	}
	messages = append(messages, llms.TextParts(schema.ChatMessageTypeHuman, message))

	resp, err := g.client.GenerateContent(ctx, messages)
	if err != nil {
		slog.Error("gemini error: generate content failed", "model", g.model, "error", err)
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	return resp.Choices[0].Content, nil
}

func messageType(role string) schema.ChatMessageType {
	if role == conversation.RoleModel {
		return schema.ChatMessageTypeAI
	}
	return schema.ChatMessageTypeHuman
}
