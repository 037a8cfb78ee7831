package api

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"mannequin/internal/application/services"
	"mannequin/internal/application/usecases"
	"mannequin/internal/domain"
	"mannequin/internal/domain/valueobjects"
	"mannequin/internal/infrastructure/i18n"
)

// WizardHandler serves the server-rendered try-on page. Every POST ends in
// a redirect back to the page.
type WizardHandler struct {
	wizard  *usecases.WizardUseCase
	uploads *services.UploadService
	catalog *i18n.Catalog
	logger  zerolog.Logger
}

func NewWizardHandler(
	wizard *usecases.WizardUseCase,
	uploads *services.UploadService,
	catalog *i18n.Catalog,
	logger zerolog.Logger,
) *WizardHandler {
	return &WizardHandler{
		wizard:  wizard,
		uploads: uploads,
		catalog: catalog,
		logger:  logger,
	}
}

func (h *WizardHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	view := h.wizard.View(session)

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, newPageView(view, h.catalog.Set(view.Language))); err != nil {
		h.logger.Error().Err(err).Msg("render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

func (h *WizardHandler) HandleUploadModel(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())

	img := h.readImage(w, r)
	if img != nil && !h.wizard.UploadModel(session, img) {
		h.logger.Debug().Str("session_id", string(session.ID())).Msg("model upload ignored outside the upload view")
	}
	backToPage(w, r)
}

func (h *WizardHandler) HandleUploadGarment(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())

	img := h.readImage(w, r)
	if img != nil {
		if _, err := h.wizard.UploadGarment(session, img); errors.Is(err, domain.ErrGarmentLocked) {
			h.logger.Debug().Str("session_id", string(session.ID())).Msg("garment upload refused: no model image yet")
		}
	}
	backToPage(w, r)
}

func (h *WizardHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	if !h.wizard.Generate(session) {
		h.logger.Debug().Str("session_id", string(session.ID())).Msg("generate ignored")
	}
	backToPage(w, r)
}

func (h *WizardHandler) HandleStartOver(w http.ResponseWriter, r *http.Request) {
	h.wizard.StartOver(SessionFromContext(r.Context()))
	backToPage(w, r)
}

// HandleLanguage sets the language given in the lang field, or toggles it
// when the field is absent.
func (h *WizardHandler) HandleLanguage(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())

	if lang, err := valueobjects.ParseLanguage(r.FormValue("lang")); err == nil {
		h.wizard.SetLanguage(session, lang)
	} else {
		h.wizard.ToggleLanguage(session)
	}
	backToPage(w, r)
}

func (h *WizardHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// readImage returns nil when the upload was dropped.
func (h *WizardHandler) readImage(w http.ResponseWriter, r *http.Request) *valueobjects.EncodedImage {
	img, err := h.uploads.ReadImage(w, r, services.UploadField)
	if err != nil {
		h.logger.Warn().Err(err).Str("request_id", RequestIDFromContext(r.Context())).Msg("upload failed")
		return nil
	}
	return img
}

func backToPage(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
