package entities

import (
	"mannequin/internal/domain"
	"mannequin/internal/domain/valueobjects"
)

// Phase is the one active view of the wizard. Loading, a result and an error
// are mutually exclusive by construction.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseDone
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// GenerationTicket is handed out by Begin and must be presented to Complete
// or Fail. Tickets from before a StartOver are stale and ignored.
type GenerationTicket struct {
	Epoch          uint64
	ModelPayload   string
	GarmentPayload string
	Language       valueobjects.Language
}

// Wizard is the three-step try-on flow: upload model, upload garment,
// generate and view. It is not safe for concurrent use; callers serialize
// access (see Session).
type Wizard struct {
	language      valueobjects.Language
	modelImage    *valueobjects.EncodedImage
	clothingImage *valueobjects.EncodedImage
	phase         Phase
	finalImage    *valueobjects.EncodedImage
	epoch         uint64
}

func NewWizard(language valueobjects.Language) *Wizard {
	if language == "" {
		language = valueobjects.Persian
	}
	return &Wizard{language: language}
}

// SetModelImage stores the person photo. Ignored outside the upload view.
// The garment image is kept.
func (w *Wizard) SetModelImage(img *valueobjects.EncodedImage) bool {
	if w.phase != PhaseIdle || img == nil {
		return false
	}
	w.modelImage = img
	return true
}

// SetClothingImage stores the garment photo. The garment step stays locked
// until a model image is present.
func (w *Wizard) SetClothingImage(img *valueobjects.EncodedImage) (bool, error) {
	if w.modelImage == nil {
		return false, domain.ErrGarmentLocked
	}
	if w.phase != PhaseIdle || img == nil {
		return false, nil
	}
	w.clothingImage = img
	return true, nil
}

func (w *Wizard) GarmentUnlocked() bool {
	return w.modelImage != nil
}

// CanGenerate reports whether Begin would start a generation.
func (w *Wizard) CanGenerate() bool {
	return w.modelImage != nil && w.clothingImage != nil && w.phase == PhaseIdle
}

// Begin moves to Loading and returns the payloads to send. With an image
// missing or a generation in flight it changes nothing and returns false.
func (w *Wizard) Begin() (GenerationTicket, bool) {
	if !w.CanGenerate() {
		return GenerationTicket{}, false
	}

	w.phase = PhaseLoading
	w.finalImage = nil

	return GenerationTicket{
		Epoch:          w.epoch,
		ModelPayload:   w.modelImage.Payload(),
		GarmentPayload: w.clothingImage.Payload(),
		Language:       w.language,
	}, true
}

// Complete records a generated image for the ticket's epoch.
func (w *Wizard) Complete(epoch uint64, img *valueobjects.EncodedImage) bool {
	if !w.current(epoch) {
		return false
	}
	if img == nil {
		w.phase = PhaseFailed
		return true
	}
	w.phase = PhaseDone
	w.finalImage = img
	return true
}

// Fail records a failed generation for the ticket's epoch.
func (w *Wizard) Fail(epoch uint64) bool {
	if !w.current(epoch) {
		return false
	}
	w.phase = PhaseFailed
	w.finalImage = nil
	return true
}

// StartOver clears both uploads and any result. In-flight generations are
// orphaned: their epoch no longer matches.
func (w *Wizard) StartOver() {
	w.modelImage = nil
	w.clothingImage = nil
	w.finalImage = nil
	w.phase = PhaseIdle
	w.epoch++
}

func (w *Wizard) SetLanguage(language valueobjects.Language) {
	w.language = language
}

func (w *Wizard) ToggleLanguage() valueobjects.Language {
	w.language = w.language.Toggle()
	return w.language
}

func (w *Wizard) Language() valueobjects.Language {
	return w.language
}

func (w *Wizard) Phase() Phase {
	return w.phase
}

func (w *Wizard) IsLoading() bool {
	return w.phase == PhaseLoading
}

func (w *Wizard) current(epoch uint64) bool {
	return w.phase == PhaseLoading && epoch == w.epoch
}

// WizardView is a read-only copy of the wizard for rendering.
type WizardView struct {
	Phase           Phase
	Language        valueobjects.Language
	Direction       valueobjects.Direction
	ModelImage      *valueobjects.EncodedImage
	ClothingImage   *valueobjects.EncodedImage
	FinalImage      *valueobjects.EncodedImage
	Failed          bool
	GarmentUnlocked bool
	CanGenerate     bool
}

func (w *Wizard) Snapshot() WizardView {
	return WizardView{
		Phase:           w.phase,
		Language:        w.language,
		Direction:       w.language.Direction(),
		ModelImage:      w.modelImage,
		ClothingImage:   w.clothingImage,
		FinalImage:      w.finalImage,
		Failed:          w.phase == PhaseFailed,
		GarmentUnlocked: w.GarmentUnlocked(),
		CanGenerate:     w.CanGenerate(),
	}
}
