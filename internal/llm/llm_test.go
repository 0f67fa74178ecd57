package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tmc/langchaingo/schema"

	"davechat/internal/conversation"
)

func TestNewGeneratorUnknownProvider(t *testing.T) {
	_, err := NewGenerator(context.Background(), "carrier-pigeon", "", "some-model")
	assert.Error(t, err)
}

func TestMessageTypeMapping(t *testing.T) {
	assert.Equal(t, schema.ChatMessageTypeHuman, messageType(conversation.RoleUser))
	assert.Equal(t, schema.ChatMessageTypeAI, messageType(conversation.RoleModel))
	// Unknown roles degrade to human rather than dropping the turn.
	assert.Equal(t, schema.ChatMessageTypeHuman, messageType("narrator"))
}
