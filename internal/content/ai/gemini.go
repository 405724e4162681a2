package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

// GeminiConfig holds connection details for the Gemini API.
type GeminiConfig struct {
	APIKey         string
	Model          string
	RequestTimeout time.Duration
}

const (
	defaultGeminiModel   = "gemini-2.5-flash"
	defaultGeminiTimeout = 90 * time.Second
)

// GeminiClient implements Invoker against the Gemini API.
type GeminiClient struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
	logger  zerolog.Logger
}

var _ Invoker = (*GeminiClient)(nil)

func NewGeminiClient(ctx context.Context, cfg GeminiConfig, logger zerolog.Logger) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key not configured")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = defaultGeminiModel
	}
	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.4)

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultGeminiTimeout
	}

	return &GeminiClient{
		client:  client,
		model:   model,
		timeout: timeout,
		logger:  logger.With().Str("component", "gemini").Str("model", modelName).Logger(),
	}, nil
}

// Invoke sends a single prompt and returns the concatenated candidate text.
func (c *GeminiClient) Invoke(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	started := time.Now()
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	for _, cand := range resp.Candidates {
		if cand.FinishReason != genai.FinishReasonStop {
			c.logger.Warn().Str("finish_reason", cand.FinishReason.String()).Msg("gemini stopped early")
		}
	}

	text := extractText(resp)
	c.logger.Debug().
		Dur("elapsed", time.Since(started)).
		Int("response_len", len(text)).
		Msg("gemini call complete")

	if text == "" {
		return "", fmt.Errorf("gemini returned no text candidates")
	}
	return text, nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func extractText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
	}
	return b.String()
}
