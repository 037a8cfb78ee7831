package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"mannequin/internal/domain"
	"mannequin/internal/domain/entities"
	domainrepos "mannequin/internal/domain/repositories"
	"mannequin/internal/domain/valueobjects"
)

// MemorySessionRepository keeps sessions in process memory. Nothing survives
// a restart.
type MemorySessionRepository struct {
	sessions map[entities.SessionID]*entities.Session
	mu       sync.RWMutex
}

func NewMemorySessionRepository() domainrepos.SessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[entities.SessionID]*entities.Session),
	}
}

func (r *MemorySessionRepository) Create(ctx context.Context, language valueobjects.Language) (*entities.Session, error) {
	session := entities.NewSession(entities.SessionID(uuid.NewString()), language)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.ID()] = session
	return session, nil
}

func (r *MemorySessionRepository) FindByID(ctx context.Context, id entities.SessionID) (*entities.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, exists := r.sessions[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}

	return session, nil
}

func (r *MemorySessionRepository) Sweep(ctx context.Context, cutoff time.Time) []*entities.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	var expired []*entities.Session
	for id, session := range r.sessions {
		if session.LastSeen().Before(cutoff) {
			expired = append(expired, session)
			delete(r.sessions, id)
		}
	}
	return expired
}
