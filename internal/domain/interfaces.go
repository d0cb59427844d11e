package domain

import "context"

// CompletionRequest carries everything a provider needs for one call
type CompletionRequest struct {
	Model        string
	SystemPrompt string
	Prompt       string
	MaxTokens    int
}

// CompletionResult is a provider's answer. Usage is nil when the
// provider did not report token counts; callers fall back to estimation.
type CompletionResult struct {
	Content string
	Usage   *ProviderUsage
}

// ProviderUsage mirrors the token-usage block of a provider response
type ProviderUsage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

// CompletionProvider is the external collaborator that turns a
// system+user prompt pair into generated text. It is the only blocking
// operation in the pipeline and must honor context cancellation.
type CompletionProvider interface {
	Name() string
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResult, error)
}

// PricingService provides pricing information and cost calculation.
// Prices are per million tokens; unknown models resolve to 0.0.
type PricingService interface {
	GetInputPrice(model string) float64
	GetOutputPrice(model string) float64
	CalculateCost(model string, inputTokens, outputTokens int64) (inputCost, outputCost, totalCost float64)
}

// UsageStore persists token-usage events, keeping only the most recent
// entries up to the backend's cap. List returns events in insertion
// order, oldest first.
type UsageStore interface {
	Append(ctx context.Context, event TokenUsageEvent) error
	List(ctx context.Context) ([]TokenUsageEvent, error)
	Close() error
	Health(ctx context.Context) error
}
