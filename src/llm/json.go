// backend/src/llm/json.go
package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// SmartParse decodes model output into v, trying strict JSON, then a
// repaired copy, then Hjson. Markdown code fences are stripped first.
func SmartParse(input string, v interface{}) error {
	input = stripCodeFence(input)

	if err := json.Unmarshal([]byte(input), v); err == nil {
		return nil
	}

	if repaired, err := jsonrepair.RepairJSON(input); err == nil {
		if err := json.Unmarshal([]byte(repaired), v); err == nil {
			return nil
		}
	}

	// hjson decodes into generic values; round-trip through encoding/json so
	// struct tags apply.
	var generic interface{}
	if err := hjson.Unmarshal([]byte(input), &generic); err != nil {
		return fmt.Errorf("unparseable model output: %w", err)
	}
	raw, err := json.Marshal(generic)
	if err != nil {
		return fmt.Errorf("unparseable model output: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("model output does not match schema: %w", err)
	}
	return nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}
