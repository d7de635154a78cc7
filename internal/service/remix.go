// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, enforces rules, orchestrates
//	Repository / completion  → talks to the database / the completion API
//
// The services accept plain Go values (never *http.Request) and return
// domain errors from the apperror package (never HTTP status codes), so
// they can be exercised from tests, a CLI, or a different transport without
// touching this code.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sakif/content-remix/internal/apperror"
	"github.com/sakif/content-remix/internal/completion"
	"github.com/sakif/content-remix/internal/model"
)

const (
	// MaxRemixTextLength is the cap on input text, counted in code points.
	MaxRemixTextLength = 10000
	// DefaultRemixType is used when the request omits the type entirely.
	// An unrecognized type that IS present is rejected instead — an omitted
	// field is a client that doesn't care, a wrong value is a client bug.
	DefaultRemixType = "improve"
	// completionBudget caps the generated output, fixed for every mode.
	completionBudget = 1000
)

// remixMode is one entry of the closed mode enumeration: a stable key, a
// description for the UI, and a deterministic prompt template. One mode →
// one template → one rendered prompt; nothing outside this table ever
// reaches the completion service.
type remixMode struct {
	key         string
	description string
	template    string
}

// remixModes is ordered — Types() returns it as-is, so the UI listing is
// stable across calls.
var remixModes = []remixMode{
	{
		key:         "improve",
		description: "Improve clarity, flow, and impact",
		template:    "Improve the following text for clarity, flow, and impact while keeping its original meaning. Return only the improved text.\n\n%s",
	},
	{
		key:         "summarize",
		description: "Condense into a short summary",
		template:    "Provide a concise summary of the following text, capturing the key points. Return only the summary.\n\n%s",
	},
	{
		key:         "expand",
		description: "Add detail, examples, and context",
		template:    "Expand the following text with more detail, examples, and context. Return only the expanded text.\n\n%s",
	},
	{
		key:         "casual",
		description: "Rewrite in a relaxed, conversational tone",
		template:    "Rewrite the following text in a casual, conversational tone. Return only the rewritten text.\n\n%s",
	},
	{
		key:         "formal",
		description: "Rewrite in a professional, formal tone",
		template:    "Rewrite the following text in a formal, professional tone. Return only the rewritten text.\n\n%s",
	},
	{
		key:         "thread",
		description: "Turn into a numbered tweet thread with hashtags",
		template:    "Turn the following text into a numbered thread of tweets. Each tweet must be under 280 characters and include relevant hashtags. Return only the thread.\n\n%s",
	},
	{
		key:         "unique",
		description: "Generate 5-8 standalone tweets without hashtags",
		template:    "Turn the following text into 5-8 standalone tweets. Each tweet must be under 280 characters, work on its own, and must not include hashtags. Separate the tweets with blank lines.\n\n%s",
	},
}

// validRemixKeys renders the mode keys for the "unknown mode" message.
func validRemixKeys() string {
	keys := make([]string, len(remixModes))
	for i, m := range remixModes {
		keys[i] = m.key
	}
	return strings.Join(keys, ", ")
}

// RemixService is the transform gateway: it validates requests, resolves
// modes to prompts, and invokes the completion service.
type RemixService struct {
	completion completion.Service
	keyUsable  bool
	logger     *slog.Logger
}

// NewRemixService creates a RemixService. keyUsable reflects whether a real
// completion credential is configured (config.HasUsableKey); when false,
// Remix fails fast with a configuration error before any network call.
func NewRemixService(svc completion.Service, keyUsable bool, logger *slog.Logger) *RemixService {
	return &RemixService{
		completion: svc,
		keyUsable:  keyUsable,
		logger:     logger,
	}
}

// Types returns the fixed enumeration of supported modes. Side-effect free.
func (s *RemixService) Types() []model.RemixType {
	types := make([]model.RemixType, len(remixModes))
	for i, m := range remixModes {
		types[i] = model.RemixType{Type: m.key, Description: m.description}
	}
	return types
}

// Remix validates the input, renders the prompt for the mode, and calls the
// completion service once. Validation short-circuits on the first failure,
// in this order: text present → text within the cap → mode known.
func (s *RemixService) Remix(ctx context.Context, text, remixType string) (*model.RemixResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperror.ValidationFailed("text", "text is required")
	}

	originalLength := utf8.RuneCountInString(text)
	if originalLength > MaxRemixTextLength {
		return nil, apperror.ValidationFailed("text",
			fmt.Sprintf("text must be %d characters or less", MaxRemixTextLength))
	}

	mode, err := resolveMode(remixType)
	if err != nil {
		return nil, err
	}

	// Fail fast on a missing credential — no point rendering a prompt and
	// burning a round-trip just to get a 401 from upstream.
	if !s.keyUsable {
		return nil, apperror.ConfigError("OpenAI API key is not configured")
	}

	prompt := fmt.Sprintf(mode.template, text)

	remixed, err := s.completion.Generate(ctx, prompt, completionBudget)
	if err != nil {
		// Already typed by the completion client; log and surface as-is.
		s.logger.Error("completion call failed",
			slog.String("type", mode.key),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("text remixed",
		slog.String("type", mode.key),
		slog.Int("original_length", originalLength),
		slog.Int("remixed_length", utf8.RuneCountInString(remixed)),
	)

	return &model.RemixResult{
		RemixedText:    remixed,
		OriginalLength: originalLength,
		RemixedLength:  utf8.RuneCountInString(remixed),
		Type:           mode.key,
		Timestamp:      time.Now().UTC(),
	}, nil
}

// resolveMode maps a request's type string onto the enumeration. An empty
// string falls back to the default mode; anything else must match exactly.
func resolveMode(remixType string) (remixMode, error) {
	if remixType == "" {
		remixType = DefaultRemixType
	}
	for _, m := range remixModes {
		if m.key == remixType {
			return m, nil
		}
	}
	return remixMode{}, apperror.ValidationFailed("type",
		fmt.Sprintf("unknown remix type %q, valid types: %s", remixType, validRemixKeys()))
}
