package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"mannequin/internal/application/usecases"
	"mannequin/internal/domain"
	"mannequin/internal/domain/valueobjects"
	"mannequin/internal/infrastructure/i18n"
	"mannequin/model"
)

// APIHandler serves the JSON endpoints.
type APIHandler struct {
	tryOn    *usecases.TryOnUseCase
	wizard   *usecases.WizardUseCase
	catalog  *i18n.Catalog
	maxBytes int64
	logger   zerolog.Logger
}

func NewAPIHandler(
	tryOn *usecases.TryOnUseCase,
	wizard *usecases.WizardUseCase,
	catalog *i18n.Catalog,
	maxBytes int64,
	logger zerolog.Logger,
) *APIHandler {
	return &APIHandler{
		tryOn:    tryOn,
		wizard:   wizard,
		catalog:  catalog,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// HandleState returns the caller's wizard as JSON.
func (h *APIHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	view := h.wizard.View(SessionFromContext(r.Context()))
	writeJSON(w, http.StatusOK, newStateResponse(view, h.catalog.Set(view.Language)))
}

// HandleTryOn runs one generation without touching any session.
func (h *APIHandler) HandleTryOn(w http.ResponseWriter, r *http.Request) {
	// two base64 images grow by a third each
	r.Body = http.MaxBytesReader(w, r.Body, 3*h.maxBytes)

	var req model.TryOnAPIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	lang := valueobjects.English
	if req.Language != "" {
		parsed, err := valueobjects.ParseLanguage(req.Language)
		if err != nil {
			h.sendError(w, err.Error(), http.StatusBadRequest)
			return
		}
		lang = parsed
	}

	modelImage, err := valueobjects.ParseDataURL(req.ModelImage)
	if err != nil {
		h.sendError(w, "modelImage: "+err.Error(), http.StatusBadRequest)
		return
	}
	garmentImage, err := valueobjects.ParseDataURL(req.GarmentImage)
	if err != nil {
		h.sendError(w, "garmentImage: "+err.Error(), http.StatusBadRequest)
		return
	}

	out, err := h.tryOn.Execute(r.Context(), usecases.TryOnInputFromImages(modelImage, garmentImage, lang))
	if err != nil {
		event := h.logger.Error()
		if errors.Is(err, domain.ErrMissingCredential) {
			event = h.logger.Warn()
		}
		event.Err(err).Str("request_id", RequestIDFromContext(r.Context())).Msg("api try-on failed")

		h.sendError(w, h.catalog.Set(lang).T("errorDescription"), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, model.TryOnAPIResponse{Image: out.Image.String()})
}

func (h *APIHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, model.TryOnAPIResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
