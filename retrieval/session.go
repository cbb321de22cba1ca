package retrieval

import (
	"time"

	"github.com/google/uuid"
	"github.com/poiesic/menukb/query"
)

// Role identifies the speaker of a Turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in a conversation.
type Turn struct {
	Role    Role
	Content string
	Intent  query.Intent
	At      time.Time
}

// Session is the conversation state of one user. It is passed explicitly
// into every Ask call and is not safe for concurrent use.
type Session struct {
	ID      uuid.UUID
	History []Turn
}

// NewSession creates an empty session with a random ID.
func NewSession() *Session {
	return &Session{ID: uuid.New()}
}

// Last returns up to n most recent turns, oldest first.
func (s *Session) Last(n int) []Turn {
	if s == nil || n <= 0 {
		return nil
	}
	if n > len(s.History) {
		n = len(s.History)
	}
	return s.History[len(s.History)-n:]
}

// Reset clears the history and keeps the ID.
func (s *Session) Reset() {
	s.History = nil
}

func (s *Session) record(role Role, content string, intent query.Intent) {
	if s == nil {
		return
	}
	s.History = append(s.History, Turn{Role: role, Content: content, Intent: intent, At: time.Now()})
}
