package openai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformed marks a body that is not valid JSON at all.
// ErrValidation marks JSON that does not satisfy the chat schema.
// Both map to HTTP 400 but carry distinct type tags on the wire.
var (
	ErrMalformed  = errors.New("malformed request")
	ErrValidation = errors.New("validation error")
)

// rawRequest defers interpretation of fields that need stricter handling
// than plain decoding gives: stream must be a JSON boolean literal, and
// message roles/contents are validated individually. Unknown top-level
// fields are ignored for forward compatibility.
type rawRequest struct {
	Model    string          `json:"model"`
	Messages json.RawMessage `json:"messages"`
	Stream   json.RawMessage `json:"stream"`
}

// Parse normalizes a raw request body into a validated ChatCompletionsRequest.
// It is the sole constructor: a request that reaches the handler is never
// partially valid.
func Parse(body []byte) (ChatCompletionsRequest, error) {
	var raw rawRequest
	// Unmarshal (unlike Decoder.Decode) rejects trailing data after the
	// first JSON value.
	if err := json.Unmarshal(body, &raw); err != nil {
		return ChatCompletionsRequest{}, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}

	if len(raw.Messages) == 0 || string(raw.Messages) == "null" {
		return ChatCompletionsRequest{}, fmt.Errorf("%w: messages is required", ErrValidation)
	}
	var msgs []ChatMessage
	if err := json.Unmarshal(raw.Messages, &msgs); err != nil {
		return ChatCompletionsRequest{}, fmt.Errorf("%w: messages must be an array of {role, content}", ErrValidation)
	}
	if len(msgs) == 0 {
		return ChatCompletionsRequest{}, fmt.Errorf("%w: messages must not be empty", ErrValidation)
	}

	hasUser := false
	for i, m := range msgs {
		switch m.Role {
		case RoleSystem, RoleAssistant:
		case RoleUser:
			hasUser = true
		default:
			return ChatCompletionsRequest{}, fmt.Errorf("%w: messages[%d].role must be system, user or assistant", ErrValidation, i)
		}
	}
	if !hasUser {
		return ChatCompletionsRequest{}, fmt.Errorf("%w: at least one user message is required", ErrValidation)
	}

	// stream is accepted only as a literal true/false; truthy values are
	// rejected rather than coerced.
	stream := false
	switch string(bytes.TrimSpace(raw.Stream)) {
	case "", "false", "null":
	case "true":
		stream = true
	default:
		return ChatCompletionsRequest{}, fmt.Errorf("%w: stream must be a boolean", ErrValidation)
	}

	return ChatCompletionsRequest{
		Model:    raw.Model,
		Messages: msgs,
		Stream:   stream,
	}, nil
}
