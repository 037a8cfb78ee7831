package services

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/oauth2/google"
	"google.golang.org/genai"

	"mannequin/internal/domain"
	"mannequin/internal/domain/repositories"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// genAIClientPool caches genai clients by credential.
type genAIClientPool struct {
	config  *repositories.AIClientConfig
	clients map[string]*genai.Client
	mutex   sync.RWMutex

	findCredentials func(ctx context.Context, scopes ...string) (*google.Credentials, error)
}

// NewGenAIClientPool creates clients lazily, one per credential.
func NewGenAIClientPool(config *repositories.AIClientConfig) repositories.GenAIClientPool {
	if config.Backend == "" {
		config.Backend = repositories.BackendGemini
	}
	if config.Location == "" {
		config.Location = "us-central1"
	}

	return &genAIClientPool{
		config:          config,
		clients:         make(map[string]*genai.Client),
		findCredentials: google.FindDefaultCredentials,
	}
}

func (p *genAIClientPool) GetGenerator(ctx context.Context, credential string) (repositories.ContentGenerator, error) {
	key := credential
	if p.config.Backend == repositories.BackendVertex {
		key = repositories.BackendVertex
	}

	p.mutex.RLock()
	if client, ok := p.clients[key]; ok {
		defer p.mutex.RUnlock()
		return client.Models, nil
	}
	p.mutex.RUnlock()

	p.mutex.Lock()
	defer p.mutex.Unlock()

	// double-checked: another caller may have created it
	if client, ok := p.clients[key]; ok {
		return client.Models, nil
	}

	clientConfig, err := p.clientConfig(ctx, credential)
	if err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	p.clients[key] = client
	return client.Models, nil
}

func (p *genAIClientPool) clientConfig(ctx context.Context, credential string) (*genai.ClientConfig, error) {
	if p.config.Backend != repositories.BackendVertex {
		if credential == "" {
			return nil, domain.ErrMissingCredential
		}
		return &genai.ClientConfig{
			APIKey:  credential,
			Backend: genai.BackendGeminiAPI,
		}, nil
	}

	creds, err := p.findCredentials(ctx, cloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("%w: application default credentials: %v", domain.ErrMissingCredential, err)
	}

	projectID := p.config.ProjectID
	if projectID == "" {
		projectID = creds.ProjectID
	}
	if projectID == "" {
		return nil, fmt.Errorf("%w: no project id for the vertex backend", domain.ErrMissingCredential)
	}

	return &genai.ClientConfig{
		Backend:  genai.BackendVertexAI,
		Project:  projectID,
		Location: p.config.Location,
	}, nil
}

func (p *genAIClientPool) Config() *repositories.AIClientConfig {
	return p.config
}

func (p *genAIClientPool) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	// genai clients hold no resources that need closing
	clear(p.clients)
	return nil
}
