package valueobjects

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	_ "golang.org/x/image/webp"

	"mannequin/internal/domain"
)

type ImageFormat string

const (
	JPEG ImageFormat = "jpeg"
	PNG  ImageFormat = "png"
	GIF  ImageFormat = "gif"
	WEBP ImageFormat = "webp"
)

const (
	dataURLScheme = "data:"
	base64Marker  = ";base64,"
)

// EncodedImage is an image carried as a data URL: a MIME type plus the
// base64 payload. Values are immutable once constructed.
type EncodedImage struct {
	mimeType string
	payload  string
}

// ImageInfo is what could be learned about the pixels without decoding them fully.
type ImageInfo struct {
	Format ImageFormat
	Width  int
	Height int
}

// IsImageMIME reports whether the declared type begins with "image/".
func IsImageMIME(mimeType string) bool {
	return strings.HasPrefix(normalizeMIME(mimeType), "image/")
}

// EncodeDataURL base64-encodes raw file bytes under the given MIME type.
func EncodeDataURL(mimeType string, data []byte) (*EncodedImage, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: image data cannot be empty", domain.ErrInvalidDataURL)
	}
	if !IsImageMIME(mimeType) {
		return nil, fmt.Errorf("%w: not an image type %q", domain.ErrInvalidDataURL, mimeType)
	}

	return &EncodedImage{
		mimeType: normalizeMIME(mimeType),
		payload:  base64.StdEncoding.EncodeToString(data),
	}, nil
}

// NewEncodedImage wraps an already base64-encoded payload.
func NewEncodedImage(mimeType, payload string) (*EncodedImage, error) {
	if !IsImageMIME(mimeType) {
		return nil, fmt.Errorf("%w: not an image type %q", domain.ErrInvalidDataURL, mimeType)
	}
	if err := checkPayload(payload); err != nil {
		return nil, err
	}

	return &EncodedImage{
		mimeType: normalizeMIME(mimeType),
		payload:  payload,
	}, nil
}

// ParseDataURL accepts strings of the form data:<mime>;base64,<payload>.
func ParseDataURL(s string) (*EncodedImage, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(s), dataURLScheme)
	if !ok {
		return nil, fmt.Errorf("%w: missing data: scheme", domain.ErrInvalidDataURL)
	}

	mimeType, payload, ok := strings.Cut(rest, base64Marker)
	if !ok {
		return nil, fmt.Errorf("%w: payload is not base64", domain.ErrInvalidDataURL)
	}

	return NewEncodedImage(mimeType, payload)
}

// DecodePayload decodes a raw base64 payload, padded or not.
func DecodePayload(payload string) ([]byte, error) {
	data, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDataURL, err)
	}
	return data, nil
}

func (i *EncodedImage) MIMEType() string {
	return i.mimeType
}

// Payload returns the base64 data with the data URL prefix stripped.
func (i *EncodedImage) Payload() string {
	return i.payload
}

func (i *EncodedImage) Bytes() ([]byte, error) {
	return DecodePayload(i.payload)
}

func (i *EncodedImage) String() string {
	return dataURLScheme + i.mimeType + base64Marker + i.payload
}

// Sniff inspects the image header. It is informational only; uploads are
// accepted on their declared MIME type.
func (i *EncodedImage) Sniff() (ImageInfo, error) {
	data, err := i.Bytes()
	if err != nil {
		return ImageInfo{}, err
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ImageInfo{}, err
	}

	f, err := toFormat(format)
	if err != nil {
		return ImageInfo{}, err
	}

	return ImageInfo{Format: f, Width: cfg.Width, Height: cfg.Height}, nil
}

func toFormat(format string) (ImageFormat, error) {
	switch format {
	case "jpeg":
		return JPEG, nil
	case "png":
		return PNG, nil
	case "gif":
		return GIF, nil
	case "webp":
		return WEBP, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func normalizeMIME(mimeType string) string {
	return strings.ToLower(strings.TrimSpace(mimeType))
}

func checkPayload(payload string) error {
	if payload == "" {
		return fmt.Errorf("%w: empty payload", domain.ErrInvalidDataURL)
	}
	for _, r := range payload {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '+', r == '/', r == '=':
		default:
			return fmt.Errorf("%w: invalid base64 character %q", domain.ErrInvalidDataURL, r)
		}
	}
	return nil
}
