package repositories

import (
	"context"

	"google.golang.org/genai"
)

// ContentGenerator is the slice of genai.Models used for try-on.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GenAI backends
const (
	BackendGemini = "gemini"
	BackendVertex = "vertex"
)

// AIClientConfig is shared by every client the pool creates.
type AIClientConfig struct {
	Backend   string
	ProjectID string
	Location  string
}

// GenAIClientPool hands out one client per credential so a rotated API key
// takes effect without a restart.
type GenAIClientPool interface {
	// credential is the API key for the Gemini backend; the Vertex backend
	// uses Application Default Credentials and ignores it.
	GetGenerator(ctx context.Context, credential string) (ContentGenerator, error)

	Config() *AIClientConfig

	Close() error
}
