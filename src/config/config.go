package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultMaxUploadSize = 10 * 1024 * 1024 // 10MB
	defaultLLMTimeout    = 30 * time.Second
	defaultReportTTL     = 24 * time.Hour
)

// AppConfig holds all configuration for the application.
// The values are loaded from environment variables.
type AppConfig struct {
	// Core settings
	Port     string
	LogLevel string

	// Upload settings
	MaxUploadSizeBytes int64

	// HTTP settings
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int

	// Narrative engine settings. An empty LLMAPIKey selects the rule-based engine.
	LLMProvider string
	LLMAPIKey   string
	LLMModel    string
	LLMBaseURL  string
	LLMTimeout  time.Duration

	// Report store
	ReportTTL time.Duration
}

// Cfg is a global instance of the AppConfig.
var Cfg *AppConfig

// LoadConfig loads configuration from environment variables or a .env file.
// It centralizes all configuration logic for the application.
func LoadConfig() {
	// 1. Try loading from the current directory (standard behavior)
	errEnv := godotenv.Load()

	// 2. If not found, try loading from the parent directory (common when running from /backend)
	if errEnv != nil {
		errEnv = godotenv.Load("../.env")
	}

	if errEnv != nil {
		if os.IsNotExist(errEnv) {
			log.Println("Info: No .env file found in current or parent directory. Relying on OS environment variables (expected in production).")
		} else {
			log.Printf("Warning: Error loading .env file: %v. Relying on OS environment variables.", errEnv)
		}
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")
	Cfg = FromViper(newViper())

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, LLMProvider=%s, LLMEnabled=%t, ReportTTL=%s",
		Cfg.Port, Cfg.LogLevel, Cfg.LLMProvider, Cfg.LLMEnabled(), Cfg.ReportTTL)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("max_upload_size_bytes", defaultMaxUploadSize)
	v.SetDefault("allowed_origins", "http://localhost:3000")
	v.SetDefault("rate_limit_rps", 10)
	v.SetDefault("rate_limit_burst", 30)
	v.SetDefault("llm_provider", "openai")
	v.SetDefault("llm_api_key", "")
	v.SetDefault("openai_api_key", "")
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("llm_model", "")
	v.SetDefault("llm_base_url", "")
	v.SetDefault("llm_timeout", defaultLLMTimeout)
	v.SetDefault("report_ttl", defaultReportTTL)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// FromViper builds an AppConfig from v, correcting invalid values to defaults.
func FromViper(v *viper.Viper) *AppConfig {
	cfg := &AppConfig{
		Port:               v.GetString("port"),
		LogLevel:           v.GetString("log_level"),
		MaxUploadSizeBytes: v.GetInt64("max_upload_size_bytes"),
		AllowedOrigins:     splitList(v.GetString("allowed_origins")),
		RateLimitRPS:       v.GetFloat64("rate_limit_rps"),
		RateLimitBurst:     v.GetInt("rate_limit_burst"),
		LLMProvider:        strings.ToLower(strings.TrimSpace(v.GetString("llm_provider"))),
		LLMAPIKey:          strings.TrimSpace(v.GetString("llm_api_key")),
		LLMModel:           v.GetString("llm_model"),
		LLMBaseURL:         v.GetString("llm_base_url"),
		LLMTimeout:         v.GetDuration("llm_timeout"),
		ReportTTL:          v.GetDuration("report_ttl"),
	}

	// Provider-specific keys are honoured when no generic key is set.
	if cfg.LLMAPIKey == "" {
		switch cfg.LLMProvider {
		case "gemini":
			cfg.LLMAPIKey = strings.TrimSpace(v.GetString("gemini_api_key"))
		default:
			cfg.LLMAPIKey = strings.TrimSpace(v.GetString("openai_api_key"))
		}
	}

	if cfg.MaxUploadSizeBytes <= 0 {
		log.Printf("WARNING: Invalid MAX_UPLOAD_SIZE_BYTES %d. Using default 10MB.", cfg.MaxUploadSizeBytes)
		cfg.MaxUploadSizeBytes = defaultMaxUploadSize
	}
	if cfg.LLMTimeout <= 0 {
		log.Printf("Invalid LLM_TIMEOUT, using default: %s", defaultLLMTimeout)
		cfg.LLMTimeout = defaultLLMTimeout
	}
	if cfg.ReportTTL <= 0 {
		log.Printf("Invalid REPORT_TTL, using default: %s", defaultReportTTL)
		cfg.ReportTTL = defaultReportTTL
	}
	if cfg.RateLimitRPS <= 0 {
		cfg.RateLimitRPS = 10
	}
	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = 30
	}
	return cfg
}

// LLMEnabled reports whether an LLM provider can be used.
func (c *AppConfig) LLMEnabled() bool {
	return c.LLMAPIKey != ""
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
