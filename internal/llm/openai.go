package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go"

	"davechat/internal/conversation"
)

// OpenAI generates replies through the chat completions API. It reads its
// credentials from the environment, which also covers OpenAI-compatible
// endpoints such as Gemini's compatibility surface.
type OpenAI struct {
	client openai.Client
	model  string
}

func NewOpenAI(model string) *OpenAI {
	return &OpenAI{
		client: openai.NewClient(),
		model:  model,
	}
}

func (o *OpenAI) Generate(ctx context.Context, history []conversation.Turn, message string) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)
	for _, turn := range history {
		if turn.Role == conversation.RoleModel {
			messages = append(messages, openai.AssistantMessage(turn.Text()))
		} else {
			messages = append(messages, openai.UserMessage(turn.Text()))
		}
	}
	messages = append(messages, openai.UserMessage(message))

	res, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: messages,
		Model:    o.model,
	})
	if err != nil {
		slog.Error("openai error: chat completions failed", "model", o.model, "error", err)
		return "", fmt.Errorf("openai generation failed: %w", err)
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	return res.Choices[0].Message.Content, nil
}
