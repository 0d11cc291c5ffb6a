package llm

import (
	"encoding/json"
	"testing"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			"openai chat completions",
			`{"choices":[{"message":{"content":"chat reply"}}]}`,
			"chat reply",
		},
		{
			"legacy completions",
			`{"choices":[{"text":"legacy reply"}]}`,
			"legacy reply",
		},
		{
			"responses api",
			`{"output_text":"responses reply"}`,
			"responses reply",
		},
		{
			"anthropic messages",
			`{"content":[{"type":"text","text":"claude reply"}]}`,
			"claude reply",
		},
		{
			"ollama chat",
			`{"message":{"role":"assistant","content":"ollama reply"}}`,
			"ollama reply",
		},
		{
			"gateway reply field",
			`{"reply":"gateway reply"}`,
			"gateway reply",
		},
		{
			"gateway response field",
			`{"response":"fallback reply"}`,
			"fallback reply",
		},
		{
			"no recognized shape",
			`{"data":{"text":"hidden"}}`,
			"",
		},
		{
			"not json",
			`<html>error</html>`,
			"",
		},
		{
			"empty",
			``,
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractText(json.RawMessage(tt.raw)); got != tt.want {
				t.Errorf("ExtractText(%s) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestExtractTextPrefersChatOverSiblings(t *testing.T) {
	raw := `{"choices":[{"message":{"content":"winner"},"text":"loser"}],"output_text":"loser","reply":"loser"}`
	if got := ExtractText(json.RawMessage(raw)); got != "winner" {
		t.Errorf("ExtractText = %q, want %q", got, "winner")
	}
}

func TestExtractTextEmptyChoiceFallsThrough(t *testing.T) {
	raw := `{"choices":[{"message":{"content":""}}],"output_text":"next in line"}`
	if got := ExtractText(json.RawMessage(raw)); got != "next in line" {
		t.Errorf("ExtractText = %q, want %q", got, "next in line")
	}
}
