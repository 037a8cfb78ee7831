package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"mannequin/internal/domain/entities"
	"mannequin/internal/domain/services"
	"mannequin/internal/domain/valueobjects"
)

type TryOnUseCase struct {
	domainService *services.TryOnDomainService
	logger        zerolog.Logger
}

func NewTryOnUseCase(domainService *services.TryOnDomainService, logger zerolog.Logger) *TryOnUseCase {
	return &TryOnUseCase{
		domainService: domainService,
		logger:        logger,
	}
}

// TryOnInput carries raw base64 payloads, without the data URL prefix.
type TryOnInput struct {
	ModelPayload   string
	GarmentPayload string
	Language       valueobjects.Language
}

// TryOnInputFromImages builds an input from two decoded data URLs.
func TryOnInputFromImages(model, garment *valueobjects.EncodedImage, language valueobjects.Language) TryOnInput {
	input := TryOnInput{Language: language}
	if model != nil {
		input.ModelPayload = model.Payload()
	}
	if garment != nil {
		input.GarmentPayload = garment.Payload()
	}
	return input
}

type TryOnOutput struct {
	RequestID entities.TryOnRequestID
	Image     *valueobjects.EncodedImage
}

// Execute runs exactly one generation.
func (uc *TryOnUseCase) Execute(ctx context.Context, input TryOnInput) (*TryOnOutput, error) {
	request, err := entities.NewTryOnRequest(input.ModelPayload, input.GarmentPayload, input.Language)
	if err != nil {
		return nil, fmt.Errorf("invalid try-on request: %w", err)
	}

	result, err := uc.domainService.ProcessTryOn(ctx, request)
	if err != nil {
		uc.logger.Warn().
			Err(err).
			Str("request_id", string(request.ID())).
			Dur("elapsed", time.Since(request.CreatedAt())).
			Msg("try-on failed")
		return nil, err
	}

	uc.logger.Info().
		Str("request_id", string(request.ID())).
		Str("language", request.Language().String()).
		Dur("elapsed", time.Since(request.CreatedAt())).
		Msg("try-on generated")

	return &TryOnOutput{
		RequestID: request.ID(),
		Image:     result.Image(),
	}, nil
}
