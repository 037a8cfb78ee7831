package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"mannequin/internal/application/services"
	"mannequin/internal/application/usecases"
)

type RouterDeps struct {
	Wizard *WizardHandler
	API    *APIHandler
	Flow   *usecases.WizardUseCase
	Locale *services.LocaleService
	Logger zerolog.Logger
}

func NewRouter(deps RouterDeps) http.Handler {
	r := mux.NewRouter()
	r.Use(RequestID, Logger(deps.Logger), Recoverer(deps.Logger))

	withSession := Sessions(deps.Flow, deps.Locale, deps.Logger)
	page := func(fn http.HandlerFunc) http.Handler {
		return withSession(fn)
	}

	r.Handle("/", page(deps.Wizard.HandleIndex)).Methods(http.MethodGet)
	r.Handle("/upload/model", page(deps.Wizard.HandleUploadModel)).Methods(http.MethodPost)
	r.Handle("/upload/garment", page(deps.Wizard.HandleUploadGarment)).Methods(http.MethodPost)
	r.Handle("/generate", page(deps.Wizard.HandleGenerate)).Methods(http.MethodPost)
	r.Handle("/start-over", page(deps.Wizard.HandleStartOver)).Methods(http.MethodPost)
	r.Handle("/language", page(deps.Wizard.HandleLanguage)).Methods(http.MethodPost)
	r.Handle("/api/state", page(deps.API.HandleState)).Methods(http.MethodGet)

	r.HandleFunc("/api/tryon", deps.API.HandleTryOn).Methods(http.MethodPost)
	r.HandleFunc("/healthz", deps.Wizard.HandleHealth).Methods(http.MethodGet)

	return r
}
