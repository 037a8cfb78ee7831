package external

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"mannequin/internal/domain"
	"mannequin/internal/domain/entities"
	"mannequin/internal/domain/repositories"
	"mannequin/internal/domain/valueobjects"
)

const (
	DefaultModel = "gemini-2.5-flash-image-preview"

	// Uploads are forwarded as-is under this type.
	inputMIMEType = "image/jpeg"
)

type GeminiTryOnOptions struct {
	Model string
	// Credential is consulted on every call so the key never has to be
	// present at startup.
	Credential func() string
	// Timeout of zero means the call may take as long as the provider needs.
	Timeout time.Duration
	Logger  zerolog.Logger
}

type GeminiTryOnService struct {
	pool       repositories.GenAIClientPool
	model      string
	credential func() string
	timeout    time.Duration
	logger     zerolog.Logger
}

func NewGeminiTryOnService(pool repositories.GenAIClientPool, opts GeminiTryOnOptions) repositories.TryOnAIService {
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultModel
	}
	credential := opts.Credential
	if credential == nil {
		credential = func() string { return "" }
	}

	return &GeminiTryOnService{
		pool:       pool,
		model:      model,
		credential: credential,
		timeout:    opts.Timeout,
		logger:     opts.Logger,
	}
}

func (s *GeminiTryOnService) GenerateTryOn(ctx context.Context, request *entities.TryOnRequest) (string, error) {
	apiKey := strings.TrimSpace(s.credential())
	if apiKey == "" && s.pool.Config().Backend != repositories.BackendVertex {
		return "", domain.ErrMissingCredential
	}

	generator, err := s.pool.GetGenerator(ctx, apiKey)
	if err != nil {
		return "", err
	}

	modelBytes, err := valueobjects.DecodePayload(request.ModelPayload())
	if err != nil {
		return "", fmt.Errorf("model image: %w", err)
	}
	garmentBytes, err := valueobjects.DecodePayload(request.GarmentPayload())
	if err != nil {
		return "", fmt.Errorf("garment image: %w", err)
	}

	parts := []*genai.Part{
		{InlineData: &genai.Blob{MIMEType: inputMIMEType, Data: modelBytes}},
		{InlineData: &genai.Blob{MIMEType: inputMIMEType, Data: garmentBytes}},
		genai.NewPartFromText(PromptFor(request.Language())),
	}

	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.logger.Info().
		Str("request_id", string(request.ID())).
		Str("model", s.model).
		Str("language", request.Language().String()).
		Msg("GenerateTryOn")

	resp, err := generator.GenerateContent(ctx, s.model, contents, &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityImage), string(genai.ModalityText)},
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	payload := firstInlineImage(resp)
	if payload == "" {
		s.logger.Warn().
			Str("request_id", string(request.ID())).
			Str("responseText", responseText(resp)).
			Msg("No image data in response")
	}

	return payload, nil
}

// firstInlineImage returns the first inline data part of the first candidate,
// base64-encoded, or "" when there is none.
func firstInlineImage(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return ""
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return base64.StdEncoding.EncodeToString(part.InlineData.Data)
		}
	}

	return ""
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}
