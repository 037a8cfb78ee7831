package usecases

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"mannequin/internal/domain"
	"mannequin/internal/domain/entities"
	"mannequin/internal/domain/repositories"
	"mannequin/internal/domain/valueobjects"
)

// WizardUseCase drives the per-session try-on flow. Generations run in the
// background under the use case's own lifetime, not the HTTP request.
type WizardUseCase struct {
	sessions repositories.SessionRepository
	tryOn    *TryOnUseCase
	logger   zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewWizardUseCase(sessions repositories.SessionRepository, tryOn *TryOnUseCase, logger zerolog.Logger) *WizardUseCase {
	ctx, cancel := context.WithCancel(context.Background())
	return &WizardUseCase{
		sessions: sessions,
		tryOn:    tryOn,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Session returns the session with the given id, creating a new one in the
// given language when the id is empty or unknown.
func (uc *WizardUseCase) Session(ctx context.Context, id entities.SessionID, language valueobjects.Language) (*entities.Session, bool, error) {
	if id != "" {
		session, err := uc.sessions.FindByID(ctx, id)
		if err == nil {
			return session, false, nil
		}
		if !errors.Is(err, domain.ErrSessionNotFound) {
			return nil, false, err
		}
	}

	session, err := uc.sessions.Create(ctx, language)
	if err != nil {
		return nil, false, err
	}
	uc.logger.Debug().Str("session_id", string(session.ID())).Str("language", language.String()).Msg("session created")
	return session, true, nil
}

func (uc *WizardUseCase) UploadModel(session *entities.Session, img *valueobjects.EncodedImage) bool {
	var accepted bool
	session.WithWizard(func(w *entities.Wizard) {
		accepted = w.SetModelImage(img)
	})
	return accepted
}

// UploadGarment returns domain.ErrGarmentLocked while no model image exists.
func (uc *WizardUseCase) UploadGarment(session *entities.Session, img *valueobjects.EncodedImage) (bool, error) {
	var (
		accepted bool
		err      error
	)
	session.WithWizard(func(w *entities.Wizard) {
		accepted, err = w.SetClothingImage(img)
	})
	return accepted, err
}

// Generate starts a generation when both images are present and nothing is
// in flight. It reports whether one was started.
func (uc *WizardUseCase) Generate(session *entities.Session) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.closed {
		return false
	}

	ctx, ticket, started := session.BeginGeneration(uc.ctx)
	if !started {
		return false
	}

	uc.wg.Add(1)
	go uc.run(ctx, session, ticket)
	return true
}

func (uc *WizardUseCase) run(ctx context.Context, session *entities.Session, ticket entities.GenerationTicket) {
	defer uc.wg.Done()

	logger := uc.logger.With().
		Str("session_id", string(session.ID())).
		Uint64("epoch", ticket.Epoch).
		Logger()

	output, err := uc.tryOn.Execute(ctx, TryOnInput{
		ModelPayload:   ticket.ModelPayload,
		GarmentPayload: ticket.GarmentPayload,
		Language:       ticket.Language,
	})

	var applied bool
	session.WithWizard(func(w *entities.Wizard) {
		if err != nil {
			applied = w.Fail(ticket.Epoch)
			return
		}
		applied = w.Complete(ticket.Epoch, output.Image)
	})

	switch {
	case !applied:
		logger.Debug().Msg("stale generation result dropped")
	case err != nil:
		logger.Error().Err(err).Msg("generation failed")
	default:
		logger.Info().Str("request_id", string(output.RequestID)).Msg("generation finished")
	}
}

// StartOver clears the wizard and abandons any generation in flight.
func (uc *WizardUseCase) StartOver(session *entities.Session) {
	session.StartOver()
}

func (uc *WizardUseCase) SetLanguage(session *entities.Session, language valueobjects.Language) {
	session.WithWizard(func(w *entities.Wizard) {
		w.SetLanguage(language)
	})
}

func (uc *WizardUseCase) ToggleLanguage(session *entities.Session) valueobjects.Language {
	var language valueobjects.Language
	session.WithWizard(func(w *entities.Wizard) {
		language = w.ToggleLanguage()
	})
	return language
}

func (uc *WizardUseCase) View(session *entities.Session) entities.WizardView {
	var view entities.WizardView
	session.WithWizard(func(w *entities.Wizard) {
		view = w.Snapshot()
	})
	return view
}

// SweepIdle drops sessions idle for longer than ttl and cancels their work.
func (uc *WizardUseCase) SweepIdle(ctx context.Context, ttl time.Duration) int {
	expired := uc.sessions.Sweep(ctx, time.Now().Add(-ttl))
	for _, session := range expired {
		session.CancelInFlight()
	}
	if len(expired) > 0 {
		uc.logger.Debug().Int("count", len(expired)).Msg("idle sessions swept")
	}
	return len(expired)
}

// Wait blocks until every started generation has finished.
func (uc *WizardUseCase) Wait() {
	uc.wg.Wait()
}

// Close cancels all generations and waits for them. Generate is a no-op
// afterwards.
func (uc *WizardUseCase) Close() {
	uc.mu.Lock()
	uc.closed = true
	uc.mu.Unlock()

	uc.cancel()
	uc.wg.Wait()
}
