package llm

import "encoding/json"

// ExtractText pulls the assistant text out of an arbitrary provider
// response payload. Providers and gateways disagree on where the text
// lives, so the fallback order is explicit:
//
//  1. choices[0].message.content  (OpenAI chat completions)
//  2. choices[0].text             (legacy completions)
//  3. output_text                 (OpenAI responses API)
//  4. content[0].text             (Anthropic messages)
//  5. message.content             (Ollama chat)
//  6. reply, then response        (gateway wrappers)
//
// The first non-empty string wins. An empty string means no shape matched.
func ExtractText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var payload struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
			Text string `json:"text"`
		} `json:"choices"`
		OutputText string `json:"output_text"`
		Content    []struct {
			Text string `json:"text"`
		} `json:"content"`
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		Reply    string `json:"reply"`
		Response string `json:"response"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}

	if len(payload.Choices) > 0 {
		if c := payload.Choices[0].Message.Content; c != "" {
			return c
		}
		if c := payload.Choices[0].Text; c != "" {
			return c
		}
	}
	if payload.OutputText != "" {
		return payload.OutputText
	}
	if len(payload.Content) > 0 && payload.Content[0].Text != "" {
		return payload.Content[0].Text
	}
	if payload.Message.Content != "" {
		return payload.Message.Content
	}
	if payload.Reply != "" {
		return payload.Reply
	}
	return payload.Response
}
