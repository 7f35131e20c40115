// Package generate defines the seam to the reply-generation engine. The
// gateway treats generation as an opaque call; which engine backs it is a
// build-time decision.
package generate

import "context"

// Generator produces a reply to a single user utterance. Implementations may
// fail; the gateway maps any failure to an internal error without exposing
// detail to the caller.
type Generator interface {
	Generate(ctx context.Context, utterance string) (string, error)
}

// Func adapts a plain function to the Generator interface.
type Func func(ctx context.Context, utterance string) (string, error)

func (f Func) Generate(ctx context.Context, utterance string) (string, error) {
	return f(ctx, utterance)
}
