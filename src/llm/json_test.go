package llm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type scored struct {
	Score  int    `json:"health_score"`
	Status string `json:"status"`
}

func TestSmartParse_StrictJSON(t *testing.T) {
	t.Parallel()
	var out scored
	require.NoError(t, SmartParse(`{"health_score": 80, "status": "Healthy"}`, &out))
	require.Equal(t, scored{Score: 80, Status: "Healthy"}, out)
}

func TestSmartParse_CodeFence(t *testing.T) {
	t.Parallel()
	var out scored
	input := "```json\n{\"health_score\": 55, \"status\": \"At Risk\"}\n```"
	require.NoError(t, SmartParse(input, &out))
	require.Equal(t, 55, out.Score)
}

func TestSmartParse_TrailingComma(t *testing.T) {
	t.Parallel()
	var out scored
	require.NoError(t, SmartParse(`{"health_score": 61, "status": "At Risk",}`, &out))
	require.Equal(t, "At Risk", out.Status)
}

func TestSmartParse_Garbage(t *testing.T) {
	t.Parallel()
	var out scored
	require.Error(t, SmartParse(`[1, 2`+"\x00", &out))
}
