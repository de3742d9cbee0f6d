package chatgpt

import (
	"context"
	"errors"
	"io"

	"github.com/rprovine/reefwatch/internal/domain/chat"
	"github.com/rprovine/reefwatch/pkg/metrics"
)

// ChatBackend adapts the raw client to the chat domain contract.
type ChatBackend struct {
	client      *Client
	model       string
	temperature float32
	maxTokens   int
}

var _ chat.LLM = (*ChatBackend)(nil)

// NewChatBackend builds the domain-facing adapter.
func NewChatBackend(client *Client, model string, temperature float32, maxTokens int) *ChatBackend {
	return &ChatBackend{
		client:      client,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

func (b *ChatBackend) Complete(ctx context.Context, system string, history []chat.Message) (chat.Completion, error) {
	resp, err := b.client.CreateChatCompletion(ctx, b.request(system, history))
	if err != nil {
		return chat.Completion{}, err
	}
	if len(resp.Choices) == 0 {
		return chat.Completion{}, errors.New("chatgpt returned no choices")
	}
	return chat.Completion{
		Text: resp.Choices[0].Message.Content,
		Usage: metrics.TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

func (b *ChatBackend) Stream(ctx context.Context, system string, history []chat.Message) (chat.TokenStream, error) {
	stream, err := b.client.CreateChatCompletionStream(ctx, b.request(system, history))
	if err != nil {
		return nil, err
	}
	return &tokenStream{inner: stream}, nil
}

func (b *ChatBackend) request(system string, history []chat.Message) ChatCompletionRequest {
	messages := make([]Message, 0, len(history)+1)
	messages = append(messages, Message{Role: "system", Content: system})
	for _, m := range history {
		messages = append(messages, Message{Role: m.Role, Content: m.Content})
	}
	return ChatCompletionRequest{
		Model:       b.model,
		Messages:    messages,
		Temperature: b.temperature,
		MaxTokens:   b.maxTokens,
	}
}

type tokenStream struct {
	inner Stream
}

func (s *tokenStream) Recv() (string, error) {
	for {
		chunk, err := s.inner.Recv()
		if err != nil {
			return "", err
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		if chunk.Choices[0].FinishReason != "" && chunk.Choices[0].Delta.Content == "" {
			return "", io.EOF
		}
		return chunk.Choices[0].Delta.Content, nil
	}
}

func (s *tokenStream) Close() error {
	return s.inner.Close()
}
