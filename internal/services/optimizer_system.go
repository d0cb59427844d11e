package services

import (
	"regexp"
	"strings"

	domain "github.com/promptlift/cli/internal/domain"
)

// System-level instructions carry different boilerplate than user
// prompts: assistant framing, emphasis padding, restated obligations.
// These transforms compress that framing without touching the actual
// instruction content.

var systemBoilerplate = []struct {
	verbose string
	short   string
}{
	{"you are a helpful assistant that ", "you "},
	{"you are an ai assistant that ", "you "},
	{"your task is to ", ""},
	{"your job is to ", ""},
	{"please make sure to ", ""},
	{"please make sure that you ", ""},
	{"make sure that you ", ""},
	{"it is important that you ", ""},
	{"it is very important that you ", ""},
	{"you should always ", "always "},
	{"you must always ", "always "},
	{"always remember to ", ""},
	{"remember that you should ", ""},
	{"keep in mind that ", ""},
	{"do not forget to ", ""},
	{"under no circumstances should you ", "never "},
}

var systemBoilerplatePatterns = func() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(systemBoilerplate))
	for i, r := range systemBoilerplate {
		patterns[i] = foldPattern(r.verbose)
	}
	return patterns
}()

func compressBoilerplate(text string) string {
	result := text
	for i, r := range systemBoilerplate {
		result = systemBoilerplatePatterns[i].ReplaceAllString(result, r.short)
	}
	return tidy(result)
}

var systemPromptPasses = []optimizationPass{
	{
		name:    "whitespace collapse",
		enabled: func(p domain.OptimizationPasses) bool { return p.CollapseWhitespace },
		apply:   collapseWhitespace,
	},
	{
		name:    "boilerplate compression",
		enabled: func(p domain.OptimizationPasses) bool { return p.RemoveFillerPhrases },
		apply:   compressBoilerplate,
	},
	{
		name:    "connective abbreviation",
		enabled: func(p domain.OptimizationPasses) bool { return p.AbbreviateConnectives },
		apply:   abbreviateConnectives,
	},
	{
		name:    "qualifier pruning",
		enabled: func(p domain.OptimizationPasses) bool { return p.DropQualifiers },
		apply:   dropQualifiers,
	},
}

// OptimizeSystemPrompt compresses system-level instruction text under
// the given aggressiveness level. Same level semantics as Optimize but
// the transforms target assistant boilerplate rather than user content.
func (o *PromptOptimizer) OptimizeSystemPrompt(text string, level domain.OptimizationLevel) domain.TokenOptimizationResult {
	if strings.TrimSpace(text) == "" {
		return domain.TokenOptimizationResult{
			OptimizedPrompt:     "",
			OptimizationMethods: []string{},
			Suggestions:         []string{},
		}
	}

	originalTokens := o.tokenizer.EstimateTokenCount(text)
	enabled := PassesForLevel(level)

	result := text
	methods := []string{}

	for _, pass := range systemPromptPasses {
		if !pass.enabled(enabled) {
			continue
		}

		candidate := pass.apply(result)
		if candidate == result {
			continue
		}
		if o.tokenizer.EstimateTokenCount(candidate) > o.tokenizer.EstimateTokenCount(result) {
			continue
		}

		result = candidate
		methods = append(methods, pass.name)
	}

	optimizedTokens := o.tokenizer.EstimateTokenCount(result)
	savedTokens := originalTokens - optimizedTokens
	if savedTokens < 0 {
		savedTokens = 0
	}

	savingPercentage := 0.0
	if originalTokens > 0 {
		savingPercentage = float64(savedTokens) / float64(originalTokens) * 100
	}

	return domain.TokenOptimizationResult{
		OriginalTokens:      originalTokens,
		OptimizedTokens:     optimizedTokens,
		SavedTokens:         savedTokens,
		SavingPercentage:    savingPercentage,
		OptimizedPrompt:     result,
		OptimizationMethods: methods,
		Suggestions:         []string{},
	}
}

var escalationOrder = []domain.OptimizationLevel{
	domain.OptimizationLight,
	domain.OptimizationMedium,
	domain.OptimizationAggressive,
}

// OptimizeSystemPromptToTarget tries light, then medium, then
// aggressive until the target reduction percentage is met or the
// harshest level has been applied. Greedy with early exit; there is no
// backtracking.
func (o *PromptOptimizer) OptimizeSystemPromptToTarget(text string, targetPercent float64) domain.TokenOptimizationResult {
	var result domain.TokenOptimizationResult

	for _, level := range escalationOrder {
		result = o.OptimizeSystemPrompt(text, level)
		if result.SavingPercentage >= targetPercent {
			return result
		}
	}

	return result
}
