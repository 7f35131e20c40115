package format

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/yourorg/eliza-gateway/internal/openai"
)

func TestCompletion_Shape(t *testing.T) {
	resp := Completion("How do you do.", "eliza-abc", "eliza", 1700000000, "Hello")

	if resp.ID != "eliza-abc" {
		t.Errorf("ID = %q, want eliza-abc", resp.ID)
	}
	if resp.Object != "chat.completion" {
		t.Errorf("Object = %q, want chat.completion", resp.Object)
	}
	if len(resp.Choices) != 1 {
		t.Fatalf("len(Choices) = %d, want 1", len(resp.Choices))
	}
	c := resp.Choices[0]
	if c.Message.Role != openai.RoleAssistant {
		t.Errorf("Message.Role = %q, want assistant", c.Message.Role)
	}
	if c.Message.Content == "" {
		t.Error("Message.Content is empty")
	}
	if c.FinishReason != "stop" {
		t.Errorf("FinishReason = %q, want stop", c.FinishReason)
	}
	if resp.Usage.TotalTokens != resp.Usage.PromptTokens+resp.Usage.CompletionTokens {
		t.Error("Usage.TotalTokens is not the sum of prompt and completion tokens")
	}
}

func TestCompletion_Idempotent(t *testing.T) {
	a := Completion("reply", "id-1", "eliza", 1700000000, "hi")
	b := Completion("reply", "id-1", "eliza", 1700000000, "hi")

	ja, _ := json.Marshal(a)
	jb, _ := json.Marshal(b)
	if string(ja) != string(jb) {
		t.Error("same inputs produced different serialized output")
	}
}

func TestStreamChunks_RoundTrip(t *testing.T) {
	replies := []string{
		"short",
		"a reply that is a fair bit longer than one chunk",
		"ünïcödé — 漢字テスト — emoji 🙂🙃 mixed in",
		strings.Repeat("x", 1000),
	}
	sizes := []int{1, 3, 10, 24, 2048}

	for _, reply := range replies {
		for _, size := range sizes {
			chunks := StreamChunks(reply, "eliza-id", "eliza", 1700000000, size)
			var b strings.Builder
			for _, c := range chunks {
				b.WriteString(c.Choices[0].Delta.Content)
			}
			if b.String() != reply {
				t.Errorf("size %d: concatenated deltas do not reconstruct reply (len %d vs %d)",
					size, b.Len(), len(reply))
			}
		}
	}
}

func TestStreamChunks_ChunkCountAndFinish(t *testing.T) {
	reply := strings.Repeat("a", 30)
	chunks := StreamChunks(reply, "eliza-id", "eliza", 1700000000, 10)

	if len(chunks) != 3 {
		t.Fatalf("len(chunks) = %d, want exactly 3 content chunks", len(chunks))
	}
	for i, c := range chunks[:2] {
		if c.Choices[0].FinishReason != nil {
			t.Errorf("chunk %d has finish_reason %q, want null", i, *c.Choices[0].FinishReason)
		}
	}
	last := chunks[2]
	if last.Choices[0].FinishReason == nil || *last.Choices[0].FinishReason != "stop" {
		t.Error("last chunk should carry finish_reason stop")
	}
}

func TestStreamChunks_MultibyteNeverSplit(t *testing.T) {
	reply := "日本語のテキスト"
	for size := 1; size <= 5; size++ {
		for _, c := range StreamChunks(reply, "id", "eliza", 0, size) {
			d := c.Choices[0].Delta.Content
			if !utf8.ValidString(d) {
				t.Fatalf("size %d: delta %q is not valid UTF-8", size, d)
			}
			if got := len([]rune(d)); got > size {
				t.Errorf("size %d: delta has %d characters", size, got)
			}
		}
	}
}

func TestStreamChunks_EmptyReply(t *testing.T) {
	chunks := StreamChunks("", "id", "eliza", 0, 10)
	if len(chunks) != 1 {
		t.Fatalf("len(chunks) = %d, want 1 terminating chunk", len(chunks))
	}
	if chunks[0].Choices[0].Delta.Content != "" {
		t.Error("empty reply should yield an empty delta")
	}
	if chunks[0].Choices[0].FinishReason == nil {
		t.Error("terminating chunk should carry finish_reason")
	}
}

func TestStreamChunks_Idempotent(t *testing.T) {
	a, _ := json.Marshal(StreamChunks("the same reply", "id", "eliza", 42, 5))
	b, _ := json.Marshal(StreamChunks("the same reply", "id", "eliza", 42, 5))
	if string(a) != string(b) {
		t.Error("same inputs produced different chunk sequences")
	}
}
