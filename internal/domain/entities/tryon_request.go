package entities

import (
	"fmt"
	"time"

	"mannequin/internal/domain"
	"mannequin/internal/domain/valueobjects"
)

type TryOnRequestID string

// TryOnRequest carries the raw base64 payloads (no data URL prefix) that are
// sent to the image model.
type TryOnRequest struct {
	id             TryOnRequestID
	modelPayload   string
	garmentPayload string
	language       valueobjects.Language
	createdAt      time.Time
}

func NewTryOnRequest(
	modelPayload string,
	garmentPayload string,
	language valueobjects.Language,
) (*TryOnRequest, error) {
	if modelPayload == "" || garmentPayload == "" {
		return nil, domain.ErrImagesRequired
	}

	if language == "" {
		language = valueobjects.English
	}

	id := TryOnRequestID(fmt.Sprintf("req_%d", time.Now().UnixNano()))

	return &TryOnRequest{
		id:             id,
		modelPayload:   modelPayload,
		garmentPayload: garmentPayload,
		language:       language,
		createdAt:      time.Now(),
	}, nil
}

func (r *TryOnRequest) ID() TryOnRequestID {
	return r.id
}

func (r *TryOnRequest) ModelPayload() string {
	return r.modelPayload
}

func (r *TryOnRequest) GarmentPayload() string {
	return r.garmentPayload
}

func (r *TryOnRequest) Language() valueobjects.Language {
	return r.language
}

func (r *TryOnRequest) CreatedAt() time.Time {
	return r.createdAt
}
