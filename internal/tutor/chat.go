package tutor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/lumen/internal/content"
	"github.com/abhisek/lumen/internal/llm"
)

// Chat answers a follow-up question about topic given the conversation so
// far.
func (s *Service) Chat(ctx context.Context, topic string, history []content.ChatMessage, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", errors.New("chat message is empty")
	}
	msgs := make([]llm.Message, 0, len(history)+1)
	for _, m := range history {
		role := llm.RoleUser
		if m.Role == content.ChatModel {
			role = llm.RoleAssistant
		}
		msgs = append(msgs, llm.Message{Role: role, Content: m.Text})
	}
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: input})

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, llm.PurposeChat), llm.Request{
		System:      buildChatSystem(topic),
		Messages:    msgs,
		MaxTokens:   s.cfg.ChatMaxTokens,
		Temperature: 0.8,
	})
	if err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}
