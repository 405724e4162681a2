package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/videoai/comprehension-api/internal/content"
	"github.com/videoai/comprehension-api/internal/metrics"
)

// Invoker is the single capability this package needs from a generative
// model vendor: prompt in, raw text out. Tests substitute a deterministic
// stub.
type Invoker interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// Config tunes the generation client.
type Config struct {
	MinTranscriptChars int
}

const defaultMinTranscriptChars = 100

// stage tracks the bounded-retry state machine: the primary prompt is
// attempted once, the relaxed fallback at most once more, then the request
// fails. There is never a third model call.
type stage int

const (
	stagePrimary stage = iota
	stageFallback
)

func (s stage) String() string {
	if s == stageFallback {
		return "fallback"
	}
	return "primary"
}

// Generator turns transcripts into validated quiz/Q&A payloads.
type Generator struct {
	invoker Invoker
	config  Config
	metrics *metrics.Content
	logger  zerolog.Logger
}

var _ content.PayloadGenerator = (*Generator)(nil)

func NewGenerator(invoker Invoker, cfg Config, m *metrics.Content, logger zerolog.Logger) *Generator {
	if cfg.MinTranscriptChars <= 0 {
		cfg.MinTranscriptChars = defaultMinTranscriptChars
	}
	return &Generator{
		invoker: invoker,
		config:  cfg,
		metrics: m,
		logger:  logger.With().Str("component", "content_generator").Logger(),
	}
}

// Generate runs the full pipeline: count policy, primary prompt, cleanup,
// soft-failure detection, at most one fallback attempt, parse, schema
// validation, metadata attachment. No persistence happens here.
func (g *Generator) Generate(ctx context.Context, req content.GenerateRequest) (content.Payload, error) {
	transcriptLen := len(req.Transcript)
	if transcriptLen < g.config.MinTranscriptChars {
		return nil, fmt.Errorf("%w: need at least %d characters, got %d",
			content.ErrInsufficientContent, g.config.MinTranscriptChars, transcriptLen)
	}

	count := content.RequiredCount(req.ContentType, req.DurationSeconds, transcriptLen)

	logger := g.logger.With().
		Str("content_type", string(req.ContentType)).
		Int("required_count", count).
		Int("transcript_len", transcriptLen).
		Logger()
	logger.Info().Msg("generating content")

	payload, err := g.attempt(ctx, req.ContentType, stagePrimary,
		content.BuildPrompt(req.ContentType, count, req.PageTitle, req.Transcript, req.DurationSeconds))
	if err != nil {
		if !retryable(err) {
			return nil, err
		}
		logger.Warn().Err(err).Msg("primary response unusable, retrying with relaxed prompt")
		g.metrics.Fallbacks.WithLabelValues(string(req.ContentType)).Inc()
		payload, err = g.attempt(ctx, req.ContentType, stageFallback,
			content.BuildFallbackPrompt(req.ContentType, count, req.PageTitle, req.Transcript))
		if err != nil {
			return nil, err
		}
	}

	if err := content.ValidatePayload(payload); err != nil {
		return nil, err
	}

	// Count mismatch is tolerated: callers compare array length themselves.
	if payload.ItemCount() != count {
		logger.Warn().
			Int("received_count", payload.ItemCount()).
			Msg("model returned a different item count than required")
	}

	switch p := payload.(type) {
	case *content.QuizPayload:
		p.MCQCount = count
		p.VideoDuration = req.DurationSeconds
	case *content.QAPayload:
		p.QACount = count
		p.VideoDuration = req.DurationSeconds
	}

	logger.Info().Int("item_count", payload.ItemCount()).Msg("content generated")
	return payload, nil
}

func (g *Generator) attempt(ctx context.Context, t content.ContentType, s stage, prompt string) (content.Payload, error) {
	raw, err := g.invoker.Invoke(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("invoke model (%s): %w", s, err)
	}

	text := CleanModelText(raw)
	if reason := softFailureReason(text); reason != "" {
		return nil, fmt.Errorf("%w: %s response %s", content.ErrMalformedResponse, s, reason)
	}

	return content.ParsePayload(t, text)
}

// retryable reports whether a failed attempt warrants the one fallback
// call. Model transport errors are terminal; only unusable output is worth
// a relaxed retry.
func retryable(err error) bool {
	return errors.Is(err, content.ErrMalformedResponse) || errors.Is(err, content.ErrSchemaValidation)
}

// CleanModelText strips markdown code-fence wrapping the model tends to add
// around JSON output.
func CleanModelText(raw string) string {
	text := strings.ReplaceAll(raw, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// softFailureReason classifies a response that is present but unusable:
// too short to hold a payload, not a JSON object, or refusal phrasing
// instead of content.
func softFailureReason(text string) string {
	if len(text) < 50 {
		return "too short"
	}
	if !strings.HasPrefix(text, "{") {
		return "does not start with a JSON object"
	}
	lower := strings.ToLower(text)
	if strings.Contains(lower, "insufficient") || strings.Contains(lower, "cannot generate") {
		return "contains refusal phrasing"
	}
	return ""
}
