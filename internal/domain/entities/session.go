package entities

import (
	"context"
	"sync"
	"time"

	"mannequin/internal/domain/valueobjects"
)

type SessionID string

// Session owns one wizard per browser. All wizard access goes through
// WithWizard so a background generation and the page handlers never race.
type Session struct {
	id       SessionID
	mu       sync.Mutex
	wizard   *Wizard
	lastSeen time.Time
	cancel   context.CancelFunc
}

func NewSession(id SessionID, language valueobjects.Language) *Session {
	return &Session{
		id:       id,
		wizard:   NewWizard(language),
		lastSeen: time.Now(),
	}
}

func (s *Session) ID() SessionID {
	return s.id
}

func (s *Session) WithWizard(fn func(w *Wizard)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSeen = time.Now()
	fn(s.wizard)
}

// BeginGeneration starts a generation on the wizard and, in the same
// critical section, derives its context from parent. The returned context is
// cancelled by CancelInFlight or by the next BeginGeneration.
func (s *Session) BeginGeneration(parent context.Context) (context.Context, GenerationTicket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSeen = time.Now()
	ticket, ok := s.wizard.Begin()
	if !ok {
		return nil, GenerationTicket{}, false
	}

	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	return ctx, ticket, true
}

// StartOver resets the wizard and cancels the generation in flight under one
// lock, so no generation can start between the two.
func (s *Session) StartOver() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSeen = time.Now()
	s.wizard.StartOver()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// CancelInFlight stops the attached generation, if any.
func (s *Session) CancelInFlight() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastSeen
}
