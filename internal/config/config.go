package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"mannequin/internal/domain/repositories"
	"mannequin/internal/domain/valueobjects"
)

const defaultModel = "gemini-2.5-flash-image-preview"

// Config represents application configuration loaded from environment variables.
// The API key is not part of it: see CredentialFromEnv.
type Config struct {
	AppEnv            string
	Port              string
	GenAIBackend      string
	GenAIModel        string
	ProjectID         string
	Location          string
	DefaultLanguage   valueobjects.Language
	MaxUploadBytes    int64
	SessionTTL        time.Duration
	GenerationTimeout time.Duration
	GeoIPDBPath       string
	HTTPReadTimeout   time.Duration
	HTTPWriteTimeout  time.Duration
	HTTPIdleTimeout   time.Duration
}

// LoadDotEnv reads .env files into the environment if present.
func LoadDotEnv() {
	_ = godotenv.Load(".env", ".env.local")
}

// Load reads configuration from environment variables and applies defaults.
func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		Port:              getEnv("PORT", "8080"),
		GenAIBackend:      strings.ToLower(getEnv("GENAI_BACKEND", repositories.BackendGemini)),
		GenAIModel:        getEnv("GENAI_MODEL", defaultModel),
		ProjectID:         getEnv("PROJECT_ID", os.Getenv("GOOGLE_CLOUD_PROJECT")),
		Location:          getEnv("LOCATION", "us-central1"),
		MaxUploadBytes:    int64(getEnvInt("MAX_UPLOAD_MB", 10)) << 20,
		SessionTTL:        time.Minute * time.Duration(getEnvInt("SESSION_TTL_MINUTES", 60)),
		GenerationTimeout: time.Second * time.Duration(getEnvInt("GENERATION_TIMEOUT_SECONDS", 0)),
		GeoIPDBPath:       os.Getenv("GEOIP_DB_PATH"),
		HTTPReadTimeout:   time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:  time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:   time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
	}

	lang, err := valueobjects.ParseLanguage(getEnv("DEFAULT_LANGUAGE", string(valueobjects.Persian)))
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_LANGUAGE: %w", err)
	}
	cfg.DefaultLanguage = lang

	switch cfg.GenAIBackend {
	case repositories.BackendGemini, repositories.BackendVertex:
	default:
		return nil, fmt.Errorf("GENAI_BACKEND must be %q or %q, got %q", repositories.BackendGemini, repositories.BackendVertex, cfg.GenAIBackend)
	}

	if cfg.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_MB must be positive")
	}

	return cfg, nil
}

// AIClientConfig is the part of Config the genai client pool needs.
func (c *Config) AIClientConfig() *repositories.AIClientConfig {
	return &repositories.AIClientConfig{
		Backend:   c.GenAIBackend,
		ProjectID: c.ProjectID,
		Location:  c.Location,
	}
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// CredentialFromEnv returns the Gemini API key. It is read on every call so
// the key can be supplied or rotated without a restart.
func CredentialFromEnv() string {
	if key := strings.TrimSpace(os.Getenv("API_KEY")); key != "" {
		return key
	}
	return strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
