package config

import (
	"testing"
	"time"

	"mannequin/internal/domain/valueobjects"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "PORT", "GENAI_BACKEND", "GENAI_MODEL", "PROJECT_ID", "GOOGLE_CLOUD_PROJECT",
		"LOCATION", "DEFAULT_LANGUAGE", "MAX_UPLOAD_MB", "SESSION_TTL_MINUTES",
		"GENERATION_TIMEOUT_SECONDS", "GEOIP_DB_PATH", "API_KEY", "GEMINI_API_KEY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port mismatch: got %q", cfg.Port)
	}
	if cfg.GenAIBackend != "gemini" {
		t.Fatalf("GenAIBackend mismatch: got %q", cfg.GenAIBackend)
	}
	if cfg.GenAIModel != "gemini-2.5-flash-image-preview" {
		t.Fatalf("GenAIModel mismatch: got %q", cfg.GenAIModel)
	}
	if cfg.DefaultLanguage != valueobjects.Persian {
		t.Fatalf("DefaultLanguage mismatch: got %q", cfg.DefaultLanguage)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Fatalf("MaxUploadBytes mismatch: got %d", cfg.MaxUploadBytes)
	}
	if cfg.GenerationTimeout != 0 {
		t.Fatalf("GenerationTimeout should default to none, got %s", cfg.GenerationTimeout)
	}
	if cfg.SessionTTL != time.Hour {
		t.Fatalf("SessionTTL mismatch: got %s", cfg.SessionTTL)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development environment")
	}
}

func TestLoadProjectFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_CLOUD_PROJECT", "from-gcloud")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ProjectID != "from-gcloud" {
		t.Fatalf("ProjectID mismatch: got %q", cfg.ProjectID)
	}

	t.Setenv("PROJECT_ID", "explicit")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ProjectID != "explicit" {
		t.Fatalf("ProjectID mismatch: got %q", cfg.ProjectID)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"DEFAULT_LANGUAGE": "de",
		"GENAI_BACKEND":    "openai",
		"MAX_UPLOAD_MB":    "-1",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}

func TestAIClientConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("GENAI_BACKEND", "Vertex")
	t.Setenv("PROJECT_ID", "p")
	t.Setenv("LOCATION", "europe-west4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	ai := cfg.AIClientConfig()
	if ai.Backend != "vertex" || ai.ProjectID != "p" || ai.Location != "europe-west4" {
		t.Fatalf("AIClientConfig mismatch: %#v", ai)
	}
}

func TestCredentialFromEnv(t *testing.T) {
	clearEnv(t)
	if got := CredentialFromEnv(); got != "" {
		t.Fatalf("expected no credential, got %q", got)
	}

	t.Setenv("GEMINI_API_KEY", "gemini-key")
	if got := CredentialFromEnv(); got != "gemini-key" {
		t.Fatalf("fallback mismatch: got %q", got)
	}

	t.Setenv("API_KEY", " primary ")
	if got := CredentialFromEnv(); got != "primary" {
		t.Fatalf("API_KEY should win: got %q", got)
	}
}
