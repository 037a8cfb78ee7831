package services

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/rs/zerolog"

	"mannequin/internal/domain/valueobjects"
)

// UploadField is the multipart field both upload forms post to.
const UploadField = "image"

const multipartMemory = 1 << 20

type UploadService struct {
	maxBytes int64
	logger   zerolog.Logger
}

func NewUploadService(maxBytes int64, logger zerolog.Logger) *UploadService {
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	return &UploadService{
		maxBytes: maxBytes,
		logger:   logger,
	}
}

func (s *UploadService) MaxBytes() int64 {
	return s.maxBytes
}

// ReadImage returns the uploaded file as an encoded image. A missing file, a
// file over the size limit and a file not declared as image/* all yield
// (nil, nil): the upload is dropped without telling the user.
func (s *UploadService) ReadImage(w http.ResponseWriter, r *http.Request, field string) (*valueobjects.EncodedImage, error) {
	// the multipart envelope adds a little on top of the file itself
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBytes+multipartMemory)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.logger.Info().Int64("limit", s.maxBytes).Msg("upload dropped: request too large")
			return nil, nil
		}
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	// r is usually a middleware copy; the server only cleans up the original
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	declared := header.Header.Get("Content-Type")
	mimeType, _, err := mime.ParseMediaType(declared)
	if err != nil || !valueobjects.IsImageMIME(mimeType) {
		s.logger.Info().Str("filename", header.Filename).Str("content_type", declared).Msg("upload dropped: not an image")
		return nil, nil
	}
	if header.Size > s.maxBytes {
		s.logger.Info().Str("filename", header.Filename).Int64("size", header.Size).Int64("limit", s.maxBytes).Msg("upload dropped: file too large")
		return nil, nil
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	img, err := valueobjects.EncodeDataURL(mimeType, data)
	if err != nil {
		return nil, err
	}

	s.logUpload(header.Filename, img, len(data))
	return img, nil
}

func (s *UploadService) logUpload(filename string, img *valueobjects.EncodedImage, size int) {
	event := s.logger.Debug().
		Str("filename", filename).
		Str("mime_type", img.MIMEType()).
		Int("size", size)

	// the declared type is what counts; sniffing only enriches the log line
	if info, err := img.Sniff(); err == nil {
		event = event.Str("format", string(info.Format)).Int("width", info.Width).Int("height", info.Height)
	} else {
		event = event.AnErr("sniff", err)
	}
	event.Msg("upload accepted")
}
