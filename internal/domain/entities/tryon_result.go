package entities

import (
	"fmt"
	"time"

	"mannequin/internal/domain/valueobjects"
)

// GeneratedMIMEType is the type the result is displayed under.
const GeneratedMIMEType = "image/png"

type TryOnResultID string

type TryOnResult struct {
	id        TryOnResultID
	requestID TryOnRequestID
	image     *valueobjects.EncodedImage
}

func NewTryOnResult(requestID TryOnRequestID, image *valueobjects.EncodedImage) *TryOnResult {
	id := TryOnResultID(fmt.Sprintf("result_%d", time.Now().UnixNano()))

	return &TryOnResult{
		id:        id,
		requestID: requestID,
		image:     image,
	}
}

func (r *TryOnResult) ID() TryOnResultID {
	return r.id
}

func (r *TryOnResult) RequestID() TryOnRequestID {
	return r.requestID
}

func (r *TryOnResult) Image() *valueobjects.EncodedImage {
	return r.image
}

func (r *TryOnResult) HasImage() bool {
	return r.image != nil
}
