package chat

import (
	"context"
	"time"

	"github.com/rprovine/reefwatch/pkg/metrics"
)

// Message is one turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is an inbound chat turn. A nil IncludeContext means true:
// current ocean data is injected unless the caller opts out.
type Request struct {
	Message        string `json:"message" binding:"required"`
	SessionID      string `json:"session_id"`
	IncludeContext *bool  `json:"include_context"`
}

// WantsContext resolves the context flag default.
func (r Request) WantsContext() bool {
	return r.IncludeContext == nil || *r.IncludeContext
}

// Response is a completed chat turn.
type Response struct {
	Response  string              `json:"response"`
	SessionID string              `json:"session_id"`
	Timestamp time.Time           `json:"timestamp"`
	Usage     *metrics.TokenUsage `json:"usage,omitempty"`
}

// StreamChunk is one frame of a streamed reply. The final frame carries
// Done=true and an empty chunk unless the stream failed mid-flight.
type StreamChunk struct {
	Chunk     string `json:"chunk"`
	Done      bool   `json:"done"`
	SessionID string `json:"session_id"`
}

// Completion is a full model reply with token accounting.
type Completion struct {
	Text  string
	Usage metrics.TokenUsage
}

// TokenStream yields reply fragments until io.EOF.
type TokenStream interface {
	Recv() (string, error)
	Close() error
}

// LLM abstracts the chat completion backend.
type LLM interface {
	Complete(ctx context.Context, system string, history []Message) (Completion, error)
	Stream(ctx context.Context, system string, history []Message) (TokenStream, error)
}
