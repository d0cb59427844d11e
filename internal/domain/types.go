package domain

import "time"

// OptimizationLevel controls how many lossy-compression passes the
// optimizer applies to a prompt.
type OptimizationLevel string

const (
	OptimizationLight      OptimizationLevel = "light"
	OptimizationMedium     OptimizationLevel = "medium"
	OptimizationAggressive OptimizationLevel = "aggressive"
)

// OptimizationPasses selects individual transformation passes. A nil
// Custom set in OptimizationOptions means the level preset decides.
type OptimizationPasses struct {
	CollapseWhitespace    bool `json:"collapse_whitespace" yaml:"collapse_whitespace" mapstructure:"collapse_whitespace"`
	RemoveFillerPhrases   bool `json:"remove_filler_phrases" yaml:"remove_filler_phrases" mapstructure:"remove_filler_phrases"`
	AbbreviateConnectives bool `json:"abbreviate_connectives" yaml:"abbreviate_connectives" mapstructure:"abbreviate_connectives"`
	RestructureSentences  bool `json:"restructure_sentences" yaml:"restructure_sentences" mapstructure:"restructure_sentences"`
	DropQualifiers        bool `json:"drop_qualifiers" yaml:"drop_qualifiers" mapstructure:"drop_qualifiers"`
}

// OptimizationOptions configures a single optimizer invocation.
// When Custom is non-nil it overrides the level preset entirely.
type OptimizationOptions struct {
	Level  OptimizationLevel
	Custom *OptimizationPasses
}

// TokenOptimizationResult reports the outcome of one optimization run.
// It is derived data, recomputed per call and never persisted.
type TokenOptimizationResult struct {
	OriginalTokens      int      `json:"original_tokens"`
	OptimizedTokens     int      `json:"optimized_tokens"`
	SavedTokens         int      `json:"saved_tokens"`
	SavingPercentage    float64  `json:"saving_percentage"`
	OptimizedPrompt     string   `json:"optimized_prompt"`
	OptimizationMethods []string `json:"optimization_methods"`
	Suggestions         []string `json:"suggestions"`
}

// QualityAnalysis scores a prompt's structural completeness. The score
// is the raw sum of the rule rewards and penalties and is deliberately
// unclamped; IsGood is the only boolean contract (score >= 60).
type QualityAnalysis struct {
	Score       int      `json:"score"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
	IsGood      bool     `json:"is_good"`
}

// GoalAnalysis classifies free text into a goal, professional domain,
// audience tier, and expected output type.
type GoalAnalysis struct {
	PrimaryGoal    string   `json:"primary_goal"`
	Domain         string   `json:"domain"`
	TargetAudience string   `json:"target_audience"`
	ExpectedOutput string   `json:"expected_output"`
	Complexity     string   `json:"complexity"`
	Suggestions    []string `json:"suggestions"`
}

// TokenUsageEvent is an immutable record of one completion call's token
// consumption. Approximate is true when the counts came from the local
// estimator rather than a provider-reported usage block.
type TokenUsageEvent struct {
	Provider         string `json:"provider"`
	Model            string `json:"model"`
	PromptTokens     int64  `json:"prompt_tokens"`
	CompletionTokens int64  `json:"completion_tokens"`
	TotalTokens      int64  `json:"total_tokens"`
	Timestamp        int64  `json:"timestamp"`
	Approximate      bool   `json:"approximate"`
}

// Time returns the event timestamp as a time.Time in local time
func (e TokenUsageEvent) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// MonthlyUsage aggregates ledger events over one calendar month
type MonthlyUsage struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	TotalTokens      int64 `json:"total_tokens"`
	EventCount       int   `json:"event_count"`
}

// PerformanceMetrics bundles the post-hoc measurements of one
// orchestrated completion round trip.
type PerformanceMetrics struct {
	Duration      time.Duration `json:"duration"`
	QualityScore  int           `json:"quality_score"`
	EfficiencyPct float64       `json:"efficiency_pct"`
}

// OptimizedResponse is the orchestrator's result: the completion text
// plus everything measured about the optimized round trip.
type OptimizedResponse struct {
	RequestID        string             `json:"request_id"`
	Content          string             `json:"content"`
	Model            string             `json:"model"`
	OriginalTokens   int                `json:"original_tokens"`
	OptimizedTokens  int                `json:"optimized_tokens"`
	SavedTokens      int                `json:"saved_tokens"`
	SavingPercentage float64            `json:"saving_percentage"`
	CostSaved        float64            `json:"cost_saved"`
	Methods          []string           `json:"methods"`
	Suggestions      []string           `json:"suggestions"`
	Usage            *TokenUsageEvent   `json:"usage,omitempty"`
	Metrics          PerformanceMetrics `json:"metrics"`
}

// BatchOptimizationResult aggregates an ordered batch of optimizer runs
type BatchOptimizationResult struct {
	Results            []TokenOptimizationResult `json:"results"`
	TotalSavedTokens   int                       `json:"total_saved_tokens"`
	EstimatedCostSaved float64                   `json:"estimated_cost_saved"`
	AverageEfficiency  float64                   `json:"average_efficiency"`
}

// PerformanceReport summarizes historical orchestration results and
// recommends an aggressiveness level for future runs.
type PerformanceReport struct {
	AverageQuality    float64           `json:"average_quality"`
	AverageEfficiency float64           `json:"average_efficiency"`
	TotalSavedTokens  int               `json:"total_saved_tokens"`
	RecommendedLevel  OptimizationLevel `json:"recommended_level"`
}
