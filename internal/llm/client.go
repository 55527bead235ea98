package llm

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client is an abstraction over LLM providers
type Client interface {
	// GenerateContent generates text content using the specified model tier
	GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// Embed returns the embedding vector for text
	Embed(ctx context.Context, text string) ([]float32, error)
	// GetModel returns the provider model name for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}

// GeminiClient implements Client for Google Gemini. Transient failures are
// retried with exponential backoff.
type GeminiClient struct {
	client *genai.Client
	config *Config
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, config: config, sleep: sleepCtx}, nil
}

// GenerateContent generates text content using the specified model tier
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", &APIError{Op: "generate", Model: string(tier), Message: "no model configured for tier"}
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(c.config.Temperature)
	if c.config.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(c.config.MaxOutputTokens)
	}

	var text string
	err := c.retry(ctx, "generate", modelName, func() error {
		resp, err := model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			return err
		}
		text, err = responseText(resp)
		return err
	})
	return text, err
}

// Embed returns the embedding of text from the configured embedding model.
// Text longer than MaxEmbedChars is truncated.
func (c *GeminiClient) Embed(ctx context.Context, text string) ([]float32, error) {
	modelName := c.config.EmbeddingModel
	if modelName == "" {
		return nil, &APIError{Op: "embed", Message: "no embedding model configured"}
	}

	em := c.client.EmbeddingModel(modelName)
	input := truncateRunes(text, c.config.MaxEmbedChars)

	var values []float32
	err := c.retry(ctx, "embed", modelName, func() error {
		resp, err := em.EmbedContent(ctx, genai.Text(input))
		if err != nil {
			return err
		}
		if resp == nil || resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
			return fmt.Errorf("%w: no embedding values", errEmptyResponse)
		}
		values = resp.Embedding.Values
		return nil
	})
	return values, err
}

// GetModel returns the model name for a tier
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// retry runs call until it succeeds, fails permanently, or MaxRetries
// retries are spent. Failures are returned as *APIError.
func (c *GeminiClient) retry(ctx context.Context, op, model string, call func() error) error {
	backoff := c.config.RetryBackoff
	for attempt := 0; ; attempt++ {
		err := call()
		if err == nil {
			return nil
		}
		if attempt >= c.config.MaxRetries || !isTransient(err) {
			return &APIError{Op: op, Model: model, Message: fmt.Sprintf("failed after %d attempt(s)", attempt+1), Cause: err}
		}

		log.Printf("[llm] %s with %s failed (attempt %d), retrying in %v: %v", op, model, attempt+1, backoff, err)
		if err := c.sleep(ctx, backoff); err != nil {
			return &APIError{Op: op, Model: model, Message: "canceled while retrying", Cause: err}
		}
		backoff *= 2
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
			return "", fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("%w: no candidates", errEmptyResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("response blocked by safety filters")
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: no content", errEmptyResponse)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("%w: no text parts", errEmptyResponse)
	}
	return sb.String(), nil
}

// truncateRunes cuts s to at most limit runes. A non-positive limit keeps s.
func truncateRunes(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}
