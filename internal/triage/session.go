package triage

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Step is the wizard's position within one conversation.
type Step int

const (
	StepGreet Step = iota
	StepInitialSymptom
	StepSelectSymptom
	StepDays
	StepFollowUp
)

// Session is the per-conversation state, keyed explicitly by its ID. It holds
// everything the wizard needs between turns; nothing conversation-scoped
// lives outside it.
type Session struct {
	ID        string
	Step      Step
	Name      string
	Reported  []string
	Matches   []string
	Days      int
	Pending   []string
	Current   string
	CreatedAt time.Time
}

// SessionStore holds active conversations. Safe for concurrent use.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionStore creates an empty SessionStore.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Create starts a new session at the greeting step and returns it.
func (s *SessionStore) Create() *Session {
	session := &Session{
		ID:        uuid.New().String(),
		Step:      StepGreet,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session
}

// Get returns the session with the given ID, if it exists.
func (s *SessionStore) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	return session, ok
}

// Delete removes a finished or abandoned session.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of active sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
