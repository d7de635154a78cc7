package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/sakif/content-remix/internal/apperror"
)

// =========================================================================
// MOCK COMPLETION SERVICE
// =========================================================================
//
// echoCompletion records the prompt it was given and returns a canned
// response. Echoing the prompt back lets tests assert on the rendered
// template without depending on any real model output.

type echoCompletion struct {
	capturedPrompt    string
	capturedMaxTokens int
	calls             int
	returnText        string
	returnErr         error
	echoPrompt        bool
}

func (m *echoCompletion) Generate(_ context.Context, prompt string, maxTokens int) (string, error) {
	m.calls++
	m.capturedPrompt = prompt
	m.capturedMaxTokens = maxTokens
	if m.returnErr != nil {
		return "", m.returnErr
	}
	if m.echoPrompt {
		return prompt, nil
	}
	return m.returnText, nil
}

func newTestRemixService(t *testing.T, mock *echoCompletion, keyUsable bool) *RemixService {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewRemixService(mock, keyUsable, logger)
}

// =========================================================================
// TYPES TESTS
// =========================================================================

func TestTypes_StableEnumeration(t *testing.T) {
	svc := newTestRemixService(t, &echoCompletion{}, true)

	types := svc.Types()
	if len(types) != 7 {
		t.Fatalf("Types() returned %d entries, want 7", len(types))
	}
	if types[0].Type != "improve" {
		t.Errorf("first type = %q, want %q", types[0].Type, "improve")
	}
	for _, rt := range types {
		if rt.Description == "" {
			t.Errorf("type %q has no description", rt.Type)
		}
	}

	// Two calls must return the same listing in the same order.
	again := svc.Types()
	for i := range types {
		if types[i] != again[i] {
			t.Errorf("Types() not stable at index %d: %v vs %v", i, types[i], again[i])
		}
	}
}

// =========================================================================
// VALIDATION TESTS
// =========================================================================

func TestRemix_EmptyText(t *testing.T) {
	mock := &echoCompletion{}
	svc := newTestRemixService(t, mock, true)

	for _, text := range []string{"", "   ", "\n\t "} {
		_, err := svc.Remix(context.Background(), text, "improve")
		if !errors.Is(err, apperror.ErrValidation) {
			t.Errorf("Remix(%q) error = %v, want ErrValidation", text, err)
		}
	}
	if mock.calls != 0 {
		t.Errorf("completion called %d times for invalid input, want 0", mock.calls)
	}
}

func TestRemix_TextLengthBoundary(t *testing.T) {
	mock := &echoCompletion{returnText: "ok"}
	svc := newTestRemixService(t, mock, true)

	// Exactly at the cap: succeeds.
	atLimit := strings.Repeat("a", MaxRemixTextLength)
	if _, err := svc.Remix(context.Background(), atLimit, ""); err != nil {
		t.Fatalf("Remix() at limit error = %v", err)
	}

	// One past the cap: validation error.
	overLimit := strings.Repeat("a", MaxRemixTextLength+1)
	_, err := svc.Remix(context.Background(), overLimit, "")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Remix() over limit error = %v, want ErrValidation", err)
	}
}

func TestRemix_LengthCountsRunes(t *testing.T) {
	// 10000 multi-byte characters is still within the cap — lengths count
	// code points, not bytes.
	mock := &echoCompletion{returnText: "ok"}
	svc := newTestRemixService(t, mock, true)

	text := strings.Repeat("ü", MaxRemixTextLength)
	result, err := svc.Remix(context.Background(), text, "")
	if err != nil {
		t.Fatalf("Remix() error = %v", err)
	}
	if result.OriginalLength != MaxRemixTextLength {
		t.Errorf("OriginalLength = %d, want %d", result.OriginalLength, MaxRemixTextLength)
	}
}

func TestRemix_UnknownType(t *testing.T) {
	mock := &echoCompletion{}
	svc := newTestRemixService(t, mock, true)

	_, err := svc.Remix(context.Background(), "some text", "pirate")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("Remix() error = %v, want ErrValidation", err)
	}
	// The message must list the valid modes so the caller can self-correct.
	for _, key := range []string{"improve", "summarize", "expand", "casual", "formal", "thread", "unique"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error message %q does not mention valid type %q", err.Error(), key)
		}
	}
	if mock.calls != 0 {
		t.Errorf("completion called for unknown type, want no calls")
	}
}

func TestRemix_OmittedTypeDefaultsToImprove(t *testing.T) {
	withDefault := &echoCompletion{echoPrompt: true}
	svcDefault := newTestRemixService(t, withDefault, true)
	explicit := &echoCompletion{echoPrompt: true}
	svcExplicit := newTestRemixService(t, explicit, true)

	resDefault, err := svcDefault.Remix(context.Background(), "hello", "")
	if err != nil {
		t.Fatalf("Remix() with omitted type error = %v", err)
	}
	resExplicit, err := svcExplicit.Remix(context.Background(), "hello", "improve")
	if err != nil {
		t.Fatalf("Remix() with explicit type error = %v", err)
	}

	if withDefault.capturedPrompt != explicit.capturedPrompt {
		t.Error("omitted type rendered a different prompt than explicit \"improve\"")
	}
	if resDefault.Type != "improve" || resExplicit.Type != "improve" {
		t.Errorf("result types = %q / %q, want both %q", resDefault.Type, resExplicit.Type, "improve")
	}
}

// =========================================================================
// CONFIGURATION TESTS
// =========================================================================

func TestRemix_UnusableKeyFailsFast(t *testing.T) {
	mock := &echoCompletion{}
	svc := newTestRemixService(t, mock, false)

	_, err := svc.Remix(context.Background(), "valid text", "improve")
	if !errors.Is(err, apperror.ErrConfig) {
		t.Fatalf("Remix() error = %v, want ErrConfig", err)
	}
	// Fail fast means no wasted network round-trip.
	if mock.calls != 0 {
		t.Errorf("completion called %d times without a usable key, want 0", mock.calls)
	}
}

func TestRemix_ValidationBeforeConfigCheck(t *testing.T) {
	// Invalid input must win over the missing key — validation is local and
	// reported first.
	svc := newTestRemixService(t, &echoCompletion{}, false)

	_, err := svc.Remix(context.Background(), "  ", "improve")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Remix() error = %v, want ErrValidation before ErrConfig", err)
	}
}

// =========================================================================
// COMPLETION CALL TESTS
// =========================================================================

func TestRemix_SummarizePromptContainsInputText(t *testing.T) {
	// With the completion mocked to echo its prompt, the "remixed" text is
	// the rendered template — assert the contract pieces are in there.
	mock := &echoCompletion{echoPrompt: true}
	svc := newTestRemixService(t, mock, true)

	input := "The quick brown fox."
	result, err := svc.Remix(context.Background(), input, "summarize")
	if err != nil {
		t.Fatalf("Remix() error = %v", err)
	}

	if !strings.Contains(result.RemixedText, "concise summary") {
		t.Errorf("summarize prompt %q does not contain %q", result.RemixedText, "concise summary")
	}
	if !strings.Contains(result.RemixedText, input) {
		t.Errorf("summarize prompt does not embed the input text")
	}
	if result.OriginalLength != 20 {
		t.Errorf("OriginalLength = %d, want 20", result.OriginalLength)
	}
	if result.Type != "summarize" {
		t.Errorf("Type = %q, want %q", result.Type, "summarize")
	}
	if result.Timestamp.IsZero() {
		t.Error("Timestamp not set")
	}
}

func TestRemix_TrimsInputBeforePrompting(t *testing.T) {
	mock := &echoCompletion{echoPrompt: true}
	svc := newTestRemixService(t, mock, true)

	result, err := svc.Remix(context.Background(), "  hello world  ", "improve")
	if err != nil {
		t.Fatalf("Remix() error = %v", err)
	}
	if strings.Contains(mock.capturedPrompt, "  hello world  ") {
		t.Error("prompt contains untrimmed input")
	}
	if result.OriginalLength != len("hello world") {
		t.Errorf("OriginalLength = %d, want %d", result.OriginalLength, len("hello world"))
	}
}

func TestRemix_PassesFixedBudget(t *testing.T) {
	mock := &echoCompletion{returnText: "ok"}
	svc := newTestRemixService(t, mock, true)

	if _, err := svc.Remix(context.Background(), "text", "expand"); err != nil {
		t.Fatalf("Remix() error = %v", err)
	}
	if mock.capturedMaxTokens != completionBudget {
		t.Errorf("maxTokens = %d, want %d", mock.capturedMaxTokens, completionBudget)
	}
}

func TestRemix_SurfacesTypedUpstreamErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"auth", apperror.Unauthorized("bad key"), apperror.ErrUnauthorized},
		{"rate limit", apperror.RateLimited("throttled"), apperror.ErrRateLimited},
		{"upstream", apperror.Upstream("boom"), apperror.ErrUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &echoCompletion{returnErr: tt.err}
			svc := newTestRemixService(t, mock, true)

			_, err := svc.Remix(context.Background(), "text", "casual")
			if !errors.Is(err, tt.target) {
				t.Errorf("Remix() error = %v, want %v", err, tt.target)
			}
			// No retries — one failure, one call.
			if mock.calls != 1 {
				t.Errorf("completion called %d times, want exactly 1 (no retries)", mock.calls)
			}
		})
	}
}

func TestRemix_ResultLengths(t *testing.T) {
	mock := &echoCompletion{returnText: "short"}
	svc := newTestRemixService(t, mock, true)

	result, err := svc.Remix(context.Background(), "a longer piece of text", "improve")
	if err != nil {
		t.Fatalf("Remix() error = %v", err)
	}
	if result.RemixedText != "short" {
		t.Errorf("RemixedText = %q, want %q", result.RemixedText, "short")
	}
	if result.RemixedLength != 5 {
		t.Errorf("RemixedLength = %d, want 5", result.RemixedLength)
	}
	if result.OriginalLength != len("a longer piece of text") {
		t.Errorf("OriginalLength = %d, want %d", result.OriginalLength, len("a longer piece of text"))
	}
}
