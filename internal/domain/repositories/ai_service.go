package repositories

import (
	"context"

	"mannequin/internal/domain/entities"
)

// TryOnAIService composites the garment onto the model photo. It returns the
// base64 payload of the generated image, or "" when the provider answered
// without an image part.
type TryOnAIService interface {
	GenerateTryOn(ctx context.Context, request *entities.TryOnRequest) (string, error)
}
