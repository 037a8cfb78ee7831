package main

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	appservices "mannequin/internal/application/services"
	"mannequin/internal/application/usecases"
	"mannequin/internal/config"
	domainrepos "mannequin/internal/domain/repositories"
	domainservices "mannequin/internal/domain/services"
	"mannequin/internal/infrastructure/api"
	"mannequin/internal/infrastructure/external"
	"mannequin/internal/infrastructure/geoip"
	"mannequin/internal/infrastructure/i18n"
	"mannequin/internal/infrastructure/repositories"
	"mannequin/internal/infrastructure/services"
)

// application is the wired object graph shared by serve and generate.
type application struct {
	cfg    *config.Config
	logger zerolog.Logger

	pool  domainrepos.GenAIClientPool
	tryOn *usecases.TryOnUseCase
	flow  *usecases.WizardUseCase
	geo   *geoip.Resolver
}

func newApplication(cfg *config.Config, logger zerolog.Logger) (*application, error) {
	// Initialize infrastructure layer
	pool := services.NewGenAIClientPool(cfg.AIClientConfig())
	aiService := external.NewGeminiTryOnService(pool, external.GeminiTryOnOptions{
		Model:      cfg.GenAIModel,
		Credential: config.CredentialFromEnv,
		Timeout:    cfg.GenerationTimeout,
		Logger:     logger.With().Str("component", "genai").Logger(),
	})

	geo, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		return nil, err
	}

	// Initialize domain and application layers
	tryOn := usecases.NewTryOnUseCase(domainservices.NewTryOnDomainService(aiService), logger)
	flow := usecases.NewWizardUseCase(repositories.NewMemorySessionRepository(), tryOn, logger)

	return &application{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		tryOn:  tryOn,
		flow:   flow,
		geo:    geo,
	}, nil
}

// router builds the HTTP surface.
func (a *application) router() (http.Handler, error) {
	catalog, err := i18n.Load()
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}

	uploads := appservices.NewUploadService(a.cfg.MaxUploadBytes, a.logger)

	var lookup appservices.CountryLookup
	if a.geo != nil {
		lookup = a.geo.Lookup
	}
	locale := appservices.NewLocaleService(a.cfg.DefaultLanguage, lookup)

	return api.NewRouter(api.RouterDeps{
		Wizard: api.NewWizardHandler(a.flow, uploads, catalog, a.logger),
		API:    api.NewAPIHandler(a.tryOn, a.flow, catalog, a.cfg.MaxUploadBytes, a.logger),
		Flow:   a.flow,
		Locale: locale,
		Logger: a.logger,
	}), nil
}

// Close stops background generations and releases clients.
func (a *application) Close() {
	a.flow.Close()
	if err := a.pool.Close(); err != nil {
		a.logger.Warn().Err(err).Msg("close genai clients")
	}
	if err := a.geo.Close(); err != nil {
		a.logger.Warn().Err(err).Msg("close geoip database")
	}
}
