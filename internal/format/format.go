// Package format builds OpenAI-compatible response payloads from a generated
// reply. Both entry points are deterministic given their inputs, so the same
// reply, id and timestamp always produce byte-identical output.
package format

import (
	"github.com/yourorg/eliza-gateway/internal/openai"
)

// approxTokens estimates a token count at roughly four bytes per token.
// The backing engine has no tokenizer; callers only need a ballpark figure.
func approxTokens(s string) int {
	if s == "" {
		return 0
	}
	return (len(s) + 3) / 4
}

// Completion builds a single non-streaming completion object.
func Completion(reply, id, model string, created int64, prompt string) openai.ChatCompletionsResponse {
	return openai.ChatCompletionsResponse{
		ID:      id,
		Object:  "chat.completion",
		Created: created,
		Model:   model,
		Choices: []openai.Choice{{
			Index: 0,
			Message: openai.ChatMessage{
				Role:    openai.RoleAssistant,
				Content: reply,
			},
			FinishReason: "stop",
		}},
		Usage: openai.Usage{
			PromptTokens:     approxTokens(prompt),
			CompletionTokens: approxTokens(reply),
			TotalTokens:      approxTokens(prompt) + approxTokens(reply),
		},
	}
}

// StreamChunks splits reply into contiguous slices of at most chunkSize
// characters, preserving order and content exactly: concatenating every
// delta reconstructs the reply byte for byte. Slicing is rune-aligned so a
// multi-byte character is never split across chunks. The final content chunk
// carries finish_reason "stop"; the [DONE] sentinel is wire framing and is
// appended by the SSE writer, not here.
func StreamChunks(reply, id, model string, created int64, chunkSize int) []openai.ChatCompletionChunk {
	if chunkSize <= 0 {
		chunkSize = 1
	}
	var parts []string
	runes := []rune(reply)
	for start := 0; start < len(runes); start += chunkSize {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		parts = append(parts, string(runes[start:end]))
	}
	// An empty reply still yields one terminating chunk.
	if len(parts) == 0 {
		parts = []string{""}
	}

	stop := "stop"
	chunks := make([]openai.ChatCompletionChunk, 0, len(parts))
	for i, p := range parts {
		c := openai.ChatCompletionChunk{
			ID:      id,
			Object:  "chat.completion.chunk",
			Created: created,
			Model:   model,
			Choices: []openai.ChunkChoice{{
				Index: 0,
				Delta: openai.Delta{Content: p},
			}},
		}
		if i == len(parts)-1 {
			c.Choices[0].FinishReason = &stop
		}
		chunks = append(chunks, c)
	}
	return chunks
}
