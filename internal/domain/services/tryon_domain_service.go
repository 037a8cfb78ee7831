package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mannequin/internal/domain"
	"mannequin/internal/domain/entities"
	"mannequin/internal/domain/repositories"
	"mannequin/internal/domain/valueobjects"
)

type TryOnDomainService struct {
	aiService repositories.TryOnAIService
}

func NewTryOnDomainService(aiService repositories.TryOnAIService) *TryOnDomainService {
	return &TryOnDomainService{
		aiService: aiService,
	}
}

// ProcessTryOn runs one generation. There is no retry: every failure is
// returned to the caller, wrapped around one of the domain sentinels.
func (s *TryOnDomainService) ProcessTryOn(ctx context.Context, request *entities.TryOnRequest) (*entities.TryOnResult, error) {
	if err := s.validateRequest(request); err != nil {
		return nil, fmt.Errorf("request validation failed: %w", err)
	}

	payload, err := s.aiService.GenerateTryOn(ctx, request)
	if err != nil {
		if errors.Is(err, domain.ErrMissingCredential) {
			return nil, err
		}
		if s.isQuotaError(err) {
			return nil, fmt.Errorf("%w: service temporarily unavailable due to high demand: %w", domain.ErrProviderFailure, err)
		}
		return nil, fmt.Errorf("%w: try-on generation failed: %w", domain.ErrProviderFailure, err)
	}

	if payload == "" {
		return nil, domain.ErrNoImage
	}

	image, err := valueobjects.NewEncodedImage(entities.GeneratedMIMEType, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: unusable image payload: %w", domain.ErrProviderFailure, err)
	}

	return entities.NewTryOnResult(request.ID(), image), nil
}

func (s *TryOnDomainService) validateRequest(request *entities.TryOnRequest) error {
	if request == nil || request.ModelPayload() == "" || request.GarmentPayload() == "" {
		return domain.ErrImagesRequired
	}

	return nil
}

func (s *TryOnDomainService) isQuotaError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "quota exceeded") ||
		strings.Contains(errStr, "resourceexhausted") ||
		strings.Contains(errStr, "resource_exhausted")
}
