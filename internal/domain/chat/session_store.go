package chat

import (
	"sync"
	"time"
)

// Session holds one conversation's state. Pidgin mode is sticky: once a
// user writes in Pidgin the whole session answers in kind.
type Session struct {
	ID           string
	Messages     []Message
	CreatedAt    time.Time
	LastActivity time.Time
	PidginMode   bool
}

// SessionStore keeps conversations in memory. Safe for concurrent use.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	maxTurns int
	now      func() time.Time
}

// NewSessionStore builds a store that caps each history at maxTurns
// messages, dropping the oldest first.
func NewSessionStore(maxTurns int) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		maxTurns: maxTurns,
		now:      time.Now,
	}
}

func (s *SessionStore) getOrCreate(id string) *Session {
	sess, ok := s.sessions[id]
	if !ok {
		now := s.now().UTC()
		sess = &Session{ID: id, CreatedAt: now, LastActivity: now}
		s.sessions[id] = sess
	}
	return sess
}

// Append records one message and refreshes the activity timestamp.
func (s *SessionStore) Append(id, role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.getOrCreate(id)
	sess.Messages = append(sess.Messages, Message{Role: role, Content: content})
	if len(sess.Messages) > s.maxTurns {
		sess.Messages = sess.Messages[len(sess.Messages)-s.maxTurns:]
	}
	sess.LastActivity = s.now().UTC()
}

// History returns a copy of the session's messages, empty for unknown ids.
func (s *SessionStore) History(id string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil
	}
	out := make([]Message, len(sess.Messages))
	copy(out, sess.Messages)
	return out
}

// MarkPidgin flips the session into sticky Pidgin mode.
func (s *SessionStore) MarkPidgin(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getOrCreate(id).PidginMode = true
}

// IsPidgin reports whether a session has seen Pidgin input.
func (s *SessionStore) IsPidgin(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	return ok && sess.PidginMode
}

// Delete removes a session, reporting whether it existed.
func (s *SessionStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

// Sweep removes sessions idle longer than maxAge and returns the count.
func (s *SessionStore) Sweep(maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().UTC().Add(-maxAge)
	removed := 0
	for id, sess := range s.sessions {
		if sess.LastActivity.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
