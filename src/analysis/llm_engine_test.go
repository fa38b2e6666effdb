package analysis

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sivasakthivelp04-cell/finsight-ai/src/llm"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/models"
)

type fakeProvider struct {
	mu       sync.Mutex
	response string
	err      error
	delay    time.Duration

	systems []string
	prompts []string
	opts    []llm.Options
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Complete(ctx context.Context, system, prompt string, opts llm.Options) (string, error) {
	f.mu.Lock()
	f.systems = append(f.systems, system)
	f.prompts = append(f.prompts, prompt)
	f.opts = append(f.opts, opts)
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.response, f.err
}

const validAnalysis = `{
  "health_score": 140,
  "status": "Healthy",
  "summary": "Strong quarter driven by client revenue.",
  "risks": [{"type": "Concentration", "severity": "Low", "message": "Few clients."}],
  "forecast": "Growth continues."
}`

func TestLLMAnalyze_UsesModelOutput(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{response: validAnalysis}
	engine := NewLLMEngine(provider, NewRuleBasedEngine(), time.Second)

	result := engine.Analyze(context.Background(), healthySummary(), "Retail", "en")

	require.Equal(t, models.EngineLLM, result.Engine)
	require.Equal(t, 100, result.HealthScore)
	require.Equal(t, "Strong quarter driven by client revenue.", result.Summary)
	require.NotNil(t, result.Recommendations)
	require.NotNil(t, result.BookkeepingTaxCompliance.ComplianceWatch)

	require.Len(t, provider.prompts, 1)
	require.Contains(t, provider.systems[0], "financial consultant for Retail SMEs")
	require.Contains(t, provider.systems[0], "Provide all fields in English.")
	require.Contains(t, provider.prompts[0], "SME in the Retail sector")
	require.Contains(t, provider.prompts[0], "- Revenue: 5000")
	require.True(t, provider.opts[0].JSON)
	require.InDelta(t, 0.7, provider.opts[0].Temperature, 1e-6)
}

func TestLLMAnalyze_HindiInstruction(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{response: validAnalysis}
	result := NewLLMEngine(provider, nil, time.Second).Analyze(context.Background(), healthySummary(), "", "hi")

	require.Equal(t, "hi", result.Language)
	require.Contains(t, provider.systems[0], "in HINDI")
	require.True(t, strings.HasSuffix(strings.TrimSpace(provider.prompts[0]), "IMPORTANT: Provide all narrative fields in HINDI"))
}

func TestLLMAnalyze_FallsBack(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		provider *fakeProvider
	}{
		{"provider error", &fakeProvider{err: errors.New("connection refused")}},
		{"malformed output", &fakeProvider{response: "I cannot help with that"}},
		{"missing summary", &fakeProvider{response: `{"health_score": 50, "status": "At Risk"}`}},
		{"timeout", &fakeProvider{response: validAnalysis, delay: time.Second}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			engine := NewLLMEngine(tt.provider, NewRuleBasedEngine(), 20*time.Millisecond)
			got := engine.Analyze(context.Background(), healthySummary(), "General", "en")
			want := NewRuleBasedEngine().Analyze(context.Background(), healthySummary(), "General", "en")
			require.Equal(t, want, got)
		})
	}
}

func TestLLMTranslate_OverlaysModelOutput(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{response: `{"summary": "अनुवादित सारांश", "status": "Healthy", "forecast": ""}`}
	engine := NewLLMEngine(provider, NewRuleBasedEngine(), time.Second)
	s := healthySummary()
	en := NewRuleBasedEngine().Analyze(context.Background(), s, "General", "en")

	out := engine.Translate(context.Background(), en, "hi", models.ContextFromSummary(s, "General"))

	require.Equal(t, "अनुवादित सारांश", out.Summary)
	require.Equal(t, "स्वस्थ", out.Status)
	require.Equal(t, "12 महीनों में 10-15% विकास की उम्मीद है।", out.Forecast)
	require.Equal(t, en.HealthScore, out.HealthScore)
	require.Contains(t, provider.systems[0], "Translate to Hindi.")
	require.Contains(t, provider.prompts[0], "Revenue: $5,000.00")
	require.InDelta(t, 0.3, provider.opts[0].Temperature, 1e-6)
}

func TestLLMTranslate_FallsBackToPhrasebook(t *testing.T) {
	t.Parallel()
	engine := NewLLMEngine(&fakeProvider{err: errors.New("boom")}, NewRuleBasedEngine(), time.Second)
	s := healthySummary()
	tc := models.ContextFromSummary(s, "General")
	en := NewRuleBasedEngine().Analyze(context.Background(), s, "General", "en")

	out := engine.Translate(context.Background(), en, "hi", tc)
	require.Equal(t, NewRuleBasedEngine().Translate(context.Background(), en, "hi", tc), out)
}
