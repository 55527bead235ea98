// Package llm provides the model configuration and client abstraction used for
// skill extraction and text embeddings.
package llm

import "time"

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks such as skill extraction
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning
	TierStandard ModelTier = "standard"
	// TierAdvanced is for complex reasoning
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider, the only one implemented.
const ProviderGemini Provider = "gemini"

// DefaultEmbeddingModel is the model used to embed job and resume text.
const DefaultEmbeddingModel = "text-embedding-004"

// DefaultMaxEmbedChars keeps embedding input inside the model's token limit.
const DefaultMaxEmbedChars = 8000

// Config holds the model configuration for the application
type Config struct {
	Provider       Provider
	Models         map[ModelTier]string
	EmbeddingModel string
	// Temperature applies to every generation call.
	Temperature float32
	// MaxOutputTokens caps generation length; zero leaves the provider default.
	MaxOutputTokens int32
	// MaxEmbedChars truncates text before embedding; zero disables truncation.
	MaxEmbedChars int
	// MaxRetries is how many times a transient failure is retried.
	MaxRetries int
	// RetryBackoff is the first retry delay; it doubles on each attempt.
	RetryBackoff time.Duration
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		EmbeddingModel:  DefaultEmbeddingModel,
		Temperature:     0.3,
		MaxOutputTokens: 300,
		MaxEmbedChars:   DefaultMaxEmbedChars,
		MaxRetries:      2,
		RetryBackoff:    500 * time.Millisecond,
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := c.clone()
	newConfig.Models[tier] = model
	return newConfig
}

// WithEmbeddingModel returns a new Config using the given embedding model
func (c *Config) WithEmbeddingModel(model string) *Config {
	newConfig := c.clone()
	newConfig.EmbeddingModel = model
	return newConfig
}

func (c *Config) clone() *Config {
	newConfig := *c
	newConfig.Models = make(map[ModelTier]string, len(c.Models))
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	return &newConfig
}
