package domain

import "errors"

var (
	ErrMissingCredential = errors.New("api credential not configured")
	ErrNoImage           = errors.New("the model did not return an image")
	ErrImagesRequired    = errors.New("model and garment images are required")
	ErrGarmentLocked     = errors.New("garment upload is locked until a model image is present")
	ErrInvalidDataURL    = errors.New("invalid image data url")
	ErrProviderFailure   = errors.New("provider failure")
	ErrSessionNotFound   = errors.New("session not found")
)
