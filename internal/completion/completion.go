// Package completion abstracts the external text-generation service behind
// a narrow capability interface.
//
// WHY AN INTERFACE?
// The remix service needs exactly one thing from the outside world: "here is
// a prompt, give me generated text or a typed failure." By depending on that
// single method instead of a vendor SDK, the whole gateway can be tested
// with an in-memory fake — no network, no API key, no flakiness.
package completion

import "context"

// Service generates text for a rendered prompt. maxTokens caps the size of
// the generated output. Implementations must return errors from the
// apperror taxonomy (Unauthorized, RateLimited, Upstream) so callers never
// have to inspect vendor error types.
type Service interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}
