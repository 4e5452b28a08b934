package config

import (
	"os"
	"strconv"
	"time"

	"deck-converter/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ConverterPort string
	StudioPort    string
	MaxFileSize   int64
	LogLevel      string

	SofficePath    string
	ConvertTimeout time.Duration
	RenderWorkers  int
	PageTimeout    time.Duration

	ConversionServiceURL string
	DeckCacheSize        int

	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string

	SupabaseURL   string
	SupabaseKey   string
	StorageBucket string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Container platforms provide the listening port via PORT.
		// The service-specific variables win for local multi-process runs.
		ConverterPort: getEnvOrDefault("CONVERTER_PORT", getEnvOrDefault("PORT", "8000")),
		StudioPort:    getEnvOrDefault("STUDIO_PORT", "8501"),
		MaxFileSize:   getEnvInt64OrDefault("MAX_FILE_SIZE", 50*1024*1024), // 50MB default
		LogLevel:      getEnvOrDefault("LOG_LEVEL", "info"),

		SofficePath:    getEnvOrDefault("SOFFICE_PATH", "soffice"),
		ConvertTimeout: getEnvDurationOrDefault("CONVERT_TIMEOUT_SEC", 120*time.Second),
		RenderWorkers:  getEnvIntOrDefault("RENDER_WORKERS", 4),
		PageTimeout:    getEnvDurationOrDefault("PAGE_TIMEOUT_SEC", 90*time.Second),

		ConversionServiceURL: getEnvOrDefault("CONVERSION_SERVICE_URL", "http://localhost:8000"),
		DeckCacheSize:        getEnvIntOrDefault("DECK_CACHE_SIZE", 32),

		OpenAIKey:     getEnvOrDefault("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnvOrDefault("OPENAI_BASE_URL", ""),
		OpenAIModel:   getEnvOrDefault("OPENAI_MODEL", ""),

		SupabaseURL:   getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey:   getEnvOrDefault("SUPABASE_SERVICE_KEY", ""),
		StorageBucket: getEnvOrDefault("STORAGE_BUCKET", "deck-artifacts"),
	}
}

// GetConverterPort returns the conversion service port
func (c *AppConfig) GetConverterPort() string {
	return c.ConverterPort
}

// GetStudioPort returns the studio port
func (c *AppConfig) GetStudioPort() string {
	return c.StudioPort
}

// GetMaxFileSize returns the maximum allowed upload size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetSofficePath returns the office suite binary path
func (c *AppConfig) GetSofficePath() string {
	return c.SofficePath
}

// GetConvertTimeout returns the office conversion timeout
func (c *AppConfig) GetConvertTimeout() time.Duration {
	return c.ConvertTimeout
}

// GetRenderWorkers returns the page rendering worker limit
func (c *AppConfig) GetRenderWorkers() int {
	return c.RenderWorkers
}

// GetPageTimeout returns the per-page extraction timeout
func (c *AppConfig) GetPageTimeout() time.Duration {
	return c.PageTimeout
}

// GetConversionServiceURL returns the conversion service base URL
func (c *AppConfig) GetConversionServiceURL() string {
	return c.ConversionServiceURL
}

// GetDeckCacheSize returns the studio deck registry capacity
func (c *AppConfig) GetDeckCacheSize() int {
	return c.DeckCacheSize
}

// GetOpenAIKey returns the model API key
func (c *AppConfig) GetOpenAIKey() string {
	return c.OpenAIKey
}

// GetOpenAIBaseURL returns an alternative model API base URL
func (c *AppConfig) GetOpenAIBaseURL() string {
	return c.OpenAIBaseURL
}

// GetOpenAIModel returns the model name
func (c *AppConfig) GetOpenAIModel() string {
	return c.OpenAIModel
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase service key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// GetStorageBucket returns the artifact storage bucket
func (c *AppConfig) GetStorageBucket() string {
	return c.StorageBucket
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}
