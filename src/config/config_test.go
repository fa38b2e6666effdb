package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	// Explicit values override any ambient environment.
	v := newViper()
	v.Set("port", "8080")
	v.Set("max_upload_size_bytes", 10*1024*1024)
	v.Set("llm_api_key", "")
	v.Set("openai_api_key", "")
	v.Set("gemini_api_key", "")
	v.Set("llm_provider", "openai")
	v.Set("report_ttl", "24h")
	v.Set("llm_timeout", "30s")
	v.Set("allowed_origins", "http://localhost:3000")

	cfg := FromViper(v)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, int64(10*1024*1024), cfg.MaxUploadSizeBytes)
	require.Equal(t, 30*time.Second, cfg.LLMTimeout)
	require.Equal(t, 24*time.Hour, cfg.ReportTTL)
	require.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	require.False(t, cfg.LLMEnabled())
}

func TestFromViper_ProviderKeyFallback(t *testing.T) {
	v := newViper()
	v.Set("llm_api_key", "")
	v.Set("llm_provider", " Gemini ")
	v.Set("gemini_api_key", "g-key")
	v.Set("openai_api_key", "o-key")

	cfg := FromViper(v)
	require.Equal(t, "gemini", cfg.LLMProvider)
	require.Equal(t, "g-key", cfg.LLMAPIKey)
	require.True(t, cfg.LLMEnabled())
}

func TestFromViper_InvalidValuesUseDefaults(t *testing.T) {
	v := newViper()
	v.Set("max_upload_size_bytes", -1)
	v.Set("llm_timeout", "0s")
	v.Set("report_ttl", "-5m")
	v.Set("rate_limit_rps", 0)
	v.Set("allowed_origins", "https://a.example, ,https://b.example")

	cfg := FromViper(v)
	require.Equal(t, int64(defaultMaxUploadSize), cfg.MaxUploadSizeBytes)
	require.Equal(t, defaultLLMTimeout, cfg.LLMTimeout)
	require.Equal(t, defaultReportTTL, cfg.ReportTTL)
	require.Equal(t, 10.0, cfg.RateLimitRPS)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}
