package services

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"

	domain "github.com/promptlift/cli/internal/domain"
)

// TokenizerService provides token count estimation for prompt text.
// This is a polyfill for providers that don't return token usage
// metrics in their API responses.
type TokenizerService struct {
	// charsPerToken is the average characters per token estimate.
	// ~4 characters per token is a reasonable ratio for English text.
	charsPerToken float64
}

// TokenizerConfig holds configuration for the tokenizer service
type TokenizerConfig struct {
	// CharsPerToken is the average characters per token (default: 4.0)
	CharsPerToken float64
}

// DefaultTokenizerConfig returns the default tokenizer configuration
func DefaultTokenizerConfig() TokenizerConfig {
	return TokenizerConfig{CharsPerToken: 4.0}
}

// NewTokenizerService creates a new tokenizer service with the given configuration
func NewTokenizerService(config TokenizerConfig) *TokenizerService {
	if config.CharsPerToken <= 0 {
		config.CharsPerToken = 4.0
	}
	return &TokenizerService{charsPerToken: config.CharsPerToken}
}

// EstimateTokenCount estimates the number of tokens in a text string.
// Empty or whitespace-only input counts as zero; any other input counts
// as at least one token. The estimate rounds up so short text is never
// undercounted.
func (t *TokenizerService) EstimateTokenCount(text string) int {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}

	charCount := utf8.RuneCountInString(trimmed)
	tokens := int(math.Ceil(float64(charCount) / t.charsPerToken))
	if tokens < 1 {
		tokens = 1
	}

	return tokens
}

// ShouldUseEstimate determines if token estimation should be used
// based on whether the provider returned valid usage metrics
func (t *TokenizerService) ShouldUseEstimate(usage *domain.ProviderUsage) bool {
	if usage == nil {
		return true
	}

	// Some providers return zeros instead of omitting the block
	return usage.TotalTokens == 0 && usage.PromptTokens == 0 && usage.CompletionTokens == 0
}

// ApproximateUsageEvent builds a usage event from local estimates when
// the provider did not report token counts
func (t *TokenizerService) ApproximateUsageEvent(provider, model, input, output string, now time.Time) domain.TokenUsageEvent {
	promptTokens := int64(t.EstimateTokenCount(input))
	completionTokens := int64(t.EstimateTokenCount(output))

	return domain.TokenUsageEvent{
		Provider:         provider,
		Model:            model,
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      promptTokens + completionTokens,
		Timestamp:        now.UnixMilli(),
		Approximate:      true,
	}
}
