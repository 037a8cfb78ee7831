package repositories

import (
	"context"
	"time"

	"mannequin/internal/domain/entities"
	"mannequin/internal/domain/valueobjects"
)

type SessionRepository interface {
	Create(ctx context.Context, language valueobjects.Language) (*entities.Session, error)
	FindByID(ctx context.Context, id entities.SessionID) (*entities.Session, error)
	// Sweep removes sessions not seen since the cutoff and returns them.
	Sweep(ctx context.Context, cutoff time.Time) []*entities.Session
}
