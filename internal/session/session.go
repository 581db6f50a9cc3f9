package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"

	"dokusho-feedback/internal/feedback"
)

type passageKey struct {
	Level string
	Model string
}

// Session is the per-connection state: the current passage, a
// (level, model) → passage cache so regenerating with identical
// arguments reuses the earlier result, the last feedback shown on the
// page, and a one-shot flash message. Last write wins.
type Session struct {
	mu sync.Mutex

	passage      string
	passageLevel string
	passageModel string
	cache        map[passageKey]string

	lastFeedback    feedback.Result
	hasLastFeedback bool

	flash string
}

func (s *Session) SetPassage(text, level, model string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.passage = text
	s.passageLevel = level
	s.passageModel = model
	s.cache[passageKey{level, model}] = text
}

func (s *Session) Passage() (text, level, model string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.passage, s.passageLevel, s.passageModel
}

func (s *Session) HasPassage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.passage != ""
}

// CachedPassage returns the passage previously generated for the same
// (level, model) pair within this session, if any.
func (s *Session) CachedPassage(level, model string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.cache[passageKey{level, model}]
	return text, ok
}

func (s *Session) SetLastFeedback(res feedback.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFeedback = res
	s.hasLastFeedback = true
}

func (s *Session) LastFeedback() (feedback.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFeedback, s.hasLastFeedback
}

func (s *Session) SetFlash(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flash = msg
}

// PopFlash returns the pending flash message and clears it.
func (s *Session) PopFlash() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.flash
	s.flash = ""
	return msg
}

// Manager hands out sessions keyed by an opaque ID carried in a
// cookie. There is no expiry; the app targets a single local user.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Get returns the session for id, creating it on first use.
func (m *Manager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		s = &Session{cache: make(map[passageKey]string)}
		m.sessions[id] = s
	}
	return s
}

// NewID generates a random session identifier.
func NewID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}
