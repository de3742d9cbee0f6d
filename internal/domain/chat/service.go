package chat

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rprovine/reefwatch/internal/domain/ocean"
	"github.com/rprovine/reefwatch/internal/observability"
	apperrors "github.com/rprovine/reefwatch/pkg/errors"
)

const (
	connectFallback = "I apologize, but I'm having trouble connecting right now. Please try again in a moment."
	streamFallback  = "Sorry, I encountered an error. Please try again."
)

// Service handles chat turns against the model backend.
type Service interface {
	// Send runs one synchronous turn. Model failures degrade to a canned
	// reply; the only errors returned are for invalid input.
	Send(ctx context.Context, req Request) (Response, error)
	// Stream runs one turn, emitting chunks on the returned channel. The
	// channel always terminates with a Done frame and is closed after it.
	Stream(ctx context.Context, req Request) (<-chan StreamChunk, error)
	// ClearSession drops a conversation, reporting whether it existed.
	ClearSession(sessionID string) bool
	// Sweep evicts idle sessions. Called periodically by the app loop.
	Sweep() int
}

// SummaryProvider supplies the live conditions digest for context injection.
type SummaryProvider interface {
	Summary(ctx context.Context) (ocean.Summary, error)
}

// Config tunes the assistant.
type Config struct {
	Prompt        string
	SessionMaxAge time.Duration
}

type service struct {
	cfg      Config
	llm      LLM
	sessions *SessionStore
	summary  SummaryProvider
	metrics  *observability.Metrics
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
}

// NewService wires up the chat assistant.
func NewService(cfg Config, llm LLM, sessions *SessionStore, summary SummaryProvider, metrics *observability.Metrics, logger *slog.Logger) Service {
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultSystemPrompt
	}
	return &service{
		cfg:      cfg,
		llm:      llm,
		sessions: sessions,
		summary:  summary,
		metrics:  metrics,
		logger:   logger.With("component", "chat.service"),
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

func (s *service) Send(ctx context.Context, req Request) (Response, error) {
	sessionID, system, history, err := s.prepareTurn(ctx, req)
	if err != nil {
		return Response{}, err
	}

	completion, err := s.llm.Complete(ctx, system, history)
	if err != nil {
		s.logger.Error("chat completion failed", "session", sessionID, "error", err)
		s.metrics.ChatRequests.WithLabelValues("complete", "fallback").Inc()
		return Response{
			Response:  connectFallback,
			SessionID: sessionID,
			Timestamp: s.now().UTC(),
		}, nil
	}

	s.sessions.Append(sessionID, "assistant", completion.Text)
	s.metrics.ChatRequests.WithLabelValues("complete", "success").Inc()
	s.metrics.ChatTokens.WithLabelValues("prompt").Add(float64(completion.Usage.PromptTokens))
	s.metrics.ChatTokens.WithLabelValues("completion").Add(float64(completion.Usage.CompletionTokens))
	s.metrics.ActiveSessions.Set(float64(s.sessions.Len()))

	resp := Response{
		Response:  completion.Text,
		SessionID: sessionID,
		Timestamp: s.now().UTC(),
	}
	if !completion.Usage.IsZero() {
		usage := completion.Usage
		resp.Usage = &usage
	}
	return resp, nil
}

func (s *service) Stream(ctx context.Context, req Request) (<-chan StreamChunk, error) {
	sessionID, system, history, err := s.prepareTurn(ctx, req)
	if err != nil {
		return nil, err
	}

	out := make(chan StreamChunk)
	go func() {
		defer close(out)

		stream, err := s.llm.Stream(ctx, system, history)
		if err != nil {
			s.logger.Error("chat stream failed to start", "session", sessionID, "error", err)
			s.metrics.ChatRequests.WithLabelValues("stream", "fallback").Inc()
			out <- StreamChunk{Chunk: streamFallback, Done: true, SessionID: sessionID}
			return
		}
		defer stream.Close()

		var full strings.Builder
		for {
			text, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				s.logger.Error("chat stream broke mid-reply", "session", sessionID, "error", err)
				s.metrics.ChatRequests.WithLabelValues("stream", "fallback").Inc()
				select {
				case out <- StreamChunk{Chunk: streamFallback, Done: true, SessionID: sessionID}:
				case <-ctx.Done():
				}
				return
			}
			if text == "" {
				continue
			}
			full.WriteString(text)
			select {
			case out <- StreamChunk{Chunk: text, SessionID: sessionID}:
			case <-ctx.Done():
				return
			}
		}

		if full.Len() > 0 {
			s.sessions.Append(sessionID, "assistant", full.String())
			s.metrics.ChatRequests.WithLabelValues("stream", "success").Inc()
		} else {
			s.metrics.ChatRequests.WithLabelValues("stream", "fallback").Inc()
		}
		s.metrics.ActiveSessions.Set(float64(s.sessions.Len()))
		out <- StreamChunk{Done: true, SessionID: sessionID}
	}()
	return out, nil
}

// prepareTurn resolves the session, applies Pidgin detection, builds the
// system prompt, and records the user message.
func (s *service) prepareTurn(ctx context.Context, req Request) (string, string, []Message, error) {
	if strings.TrimSpace(req.Message) == "" {
		return "", "", nil, apperrors.Wrap("invalid_input", "chat message cannot be empty", nil)
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = s.newID()
	}

	if DetectPidgin(req.Message) {
		s.sessions.MarkPidgin(sessionID)
	}

	system := s.cfg.Prompt
	if s.sessions.IsPidgin(sessionID) {
		system += pidginNote
	}
	if req.WantsContext() {
		system += "\n\n" + s.contextBlock(ctx)
	}

	s.sessions.Append(sessionID, "user", req.Message)
	return sessionID, system, s.sessions.History(sessionID), nil
}

func (s *service) contextBlock(ctx context.Context) string {
	summary, err := s.summary.Summary(ctx)
	if err != nil {
		s.logger.Warn("summary unavailable for chat context", "error", err)
		return contextUnavailable
	}
	return buildContext(summary)
}

func (s *service) ClearSession(sessionID string) bool {
	ok := s.sessions.Delete(sessionID)
	s.metrics.ActiveSessions.Set(float64(s.sessions.Len()))
	return ok
}

func (s *service) Sweep() int {
	removed := s.sessions.Sweep(s.cfg.SessionMaxAge)
	if removed > 0 {
		s.logger.Info("swept idle chat sessions", "removed", removed)
		s.metrics.SessionsSwept.Add(float64(removed))
	}
	s.metrics.ActiveSessions.Set(float64(s.sessions.Len()))
	return removed
}
