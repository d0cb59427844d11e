package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/promptlift/cli/internal/domain"
	logger "github.com/promptlift/cli/internal/logger"
)

// OptimizedCompletionOrchestrator sequences prompt optimization, the
// completion-provider call, and the post-hoc metrics of the round trip.
// The provider call is the only operation whose failure surfaces to the
// caller; optimization and usage recording degrade gracefully.
type OptimizedCompletionOrchestrator struct {
	provider  domain.CompletionProvider
	optimizer *PromptOptimizer
	assembler *SystemPromptAssembler
	tokenizer *TokenizerService
	ledger    *UsageLedger
	pricing   domain.PricingService
}

// OrchestratorConfig wires the orchestrator's collaborators
type OrchestratorConfig struct {
	Provider  domain.CompletionProvider
	Optimizer *PromptOptimizer
	Assembler *SystemPromptAssembler
	Tokenizer *TokenizerService
	Ledger    *UsageLedger
	Pricing   domain.PricingService
}

// NewOrchestrator creates an orchestrator, filling in default
// collaborators where the config leaves them nil
func NewOrchestrator(cfg OrchestratorConfig) *OptimizedCompletionOrchestrator {
	if cfg.Tokenizer == nil {
		cfg.Tokenizer = NewTokenizerService(DefaultTokenizerConfig())
	}
	if cfg.Optimizer == nil {
		cfg.Optimizer = NewPromptOptimizer(cfg.Tokenizer)
	}
	if cfg.Assembler == nil {
		cfg.Assembler = NewSystemPromptAssembler()
	}

	return &OptimizedCompletionOrchestrator{
		provider:  cfg.Provider,
		optimizer: cfg.Optimizer,
		assembler: cfg.Assembler,
		tokenizer: cfg.Tokenizer,
		ledger:    cfg.Ledger,
		pricing:   cfg.Pricing,
	}
}

// RunRequest describes one orchestrated completion
type RunRequest struct {
	Prompt string
	Model  string

	// SystemPrompt overrides assembly when non-empty; otherwise the
	// assembler builds one from Domain, Complexity, and OutputFormat
	SystemPrompt string
	Domain       string
	Complexity   string
	OutputFormat string

	OptimizationEnabled bool
	Options             domain.OptimizationOptions
	MaxTokens           int
}

// keyActionWords are the verbs whose survival from the original prompt
// into the optimized one rewards the round-trip quality score
var keyActionWords = []string{"write", "create", "analyze", "explain", "design"}

// Run executes the optimize-complete-measure sequence and returns the
// completion text with everything measured about the round trip.
func (o *OptimizedCompletionOrchestrator) Run(ctx context.Context, req RunRequest) (*domain.OptimizedResponse, error) {
	start := time.Now()
	requestID := uuid.NewString()

	originalTokens := o.tokenizer.EstimateTokenCount(req.Prompt)

	text := req.Prompt
	methods := []string{}
	suggestions := []string{}
	savedTokens := 0
	savingPercentage := 0.0
	optimizedTokens := originalTokens

	if req.OptimizationEnabled {
		result := o.optimizer.Optimize(req.Prompt, req.Options)
		// An optimizer that somehow empties a non-empty prompt must not
		// block the completion; fall back to the raw text
		if result.OptimizedPrompt != "" || strings.TrimSpace(req.Prompt) == "" {
			text = result.OptimizedPrompt
			methods = result.OptimizationMethods
			suggestions = result.Suggestions
			savedTokens = result.SavedTokens
			savingPercentage = result.SavingPercentage
			optimizedTokens = result.OptimizedTokens
		}
	}

	systemPrompt := req.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = o.assembler.Assemble(req.Domain, req.Complexity, req.OutputFormat)
	}

	completion, err := o.provider.Complete(ctx, domain.CompletionRequest{
		Model:        req.Model,
		SystemPrompt: systemPrompt,
		Prompt:       text,
		MaxTokens:    req.MaxTokens,
	})
	if err != nil {
		return nil, domain.WrapProviderError(o.provider.Name(), err)
	}

	elapsed := time.Since(start)

	costSaved := 0.0
	if o.pricing != nil {
		costSaved = float64(savedTokens) * o.pricing.GetInputPrice(req.Model) / 1_000_000
	}

	qualityScore := roundTripQualityScore(req.Prompt, text, completion.Content, savingPercentage)

	usage := o.buildUsageEvent(req.Model, systemPrompt, text, completion, start)
	if o.ledger != nil && ctx.Err() == nil {
		o.ledger.Record(ctx, usage)
	}

	logger.L(ctx).Debug("completion round trip finished",
		zap.String("request_id", requestID),
		zap.Int("saved_tokens", savedTokens),
		zap.Int("quality_score", qualityScore),
		zap.Duration("elapsed", elapsed))

	return &domain.OptimizedResponse{
		RequestID:        requestID,
		Content:          completion.Content,
		Model:            req.Model,
		OriginalTokens:   originalTokens,
		OptimizedTokens:  optimizedTokens,
		SavedTokens:      savedTokens,
		SavingPercentage: savingPercentage,
		CostSaved:        costSaved,
		Methods:          methods,
		Suggestions:      suggestions,
		Usage:            &usage,
		Metrics: domain.PerformanceMetrics{
			Duration:      elapsed,
			QualityScore:  qualityScore,
			EfficiencyPct: savingPercentage,
		},
	}, nil
}

func (o *OptimizedCompletionOrchestrator) buildUsageEvent(model, systemPrompt, prompt string, completion *domain.CompletionResult, start time.Time) domain.TokenUsageEvent {
	providerName := o.provider.Name()

	if !o.tokenizer.ShouldUseEstimate(completion.Usage) {
		return domain.TokenUsageEvent{
			Provider:         providerName,
			Model:            model,
			PromptTokens:     completion.Usage.PromptTokens,
			CompletionTokens: completion.Usage.CompletionTokens,
			TotalTokens:      completion.Usage.TotalTokens,
			Timestamp:        start.UnixMilli(),
			Approximate:      false,
		}
	}

	input := systemPrompt
	if input != "" && prompt != "" {
		input += "\n\n"
	}
	input += prompt

	return o.tokenizer.ApproximateUsageEvent(providerName, model, input, completion.Content, start)
}

// roundTripQualityScore measures how well the optimization preserved
// the request and how usable the response looks. Starts at 100.
func roundTripQualityScore(original, optimized, response string, savingPercentage float64) int {
	score := 100

	switch {
	case savingPercentage > 80:
		score -= 30
	case savingPercentage > 60:
		score -= 15
	}

	lowerOriginal := strings.ToLower(original)
	lowerOptimized := strings.ToLower(optimized)
	for _, word := range keyActionWords {
		if strings.Contains(lowerOriginal, word) && strings.Contains(lowerOptimized, word) {
			score += 5
		}
	}

	if utf8.RuneCountInString(response) < 50 {
		score -= 20
	}

	lowerResponse := strings.ToLower(response)
	if strings.Contains(lowerResponse, "error") || strings.Contains(lowerResponse, "sorry") {
		score -= 15
	}

	return score
}
