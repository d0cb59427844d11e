package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/promptlift/cli/internal/domain"
)

func TestOptimizeSystemPrompt(t *testing.T) {
	optimizer := NewPromptOptimizer(nil)

	t.Run("empty input yields zero result", func(t *testing.T) {
		result := optimizer.OptimizeSystemPrompt("  ", domain.OptimizationAggressive)
		assert.Zero(t, result.OriginalTokens)
		assert.Empty(t, result.OptimizedPrompt)
		assert.Empty(t, result.OptimizationMethods)
	})

	t.Run("boilerplate compression", func(t *testing.T) {
		prompt := "You are a helpful assistant that answers accounting questions. It is important that you cite the relevant standard."

		result := optimizer.OptimizeSystemPrompt(prompt, domain.OptimizationMedium)

		assert.NotContains(t, result.OptimizedPrompt, "helpful assistant")
		assert.NotContains(t, result.OptimizedPrompt, "It is important that you")
		assert.Contains(t, result.OptimizedPrompt, "answers accounting questions")
		assert.Contains(t, result.OptimizedPrompt, "cite the relevant standard")
		assert.Contains(t, result.OptimizationMethods, "boilerplate compression")
		assert.Less(t, result.OptimizedTokens, result.OriginalTokens)
	})

	t.Run("light level leaves boilerplate alone", func(t *testing.T) {
		prompt := "You are a helpful assistant that answers accounting questions."

		result := optimizer.OptimizeSystemPrompt(prompt, domain.OptimizationLight)

		assert.Contains(t, result.OptimizedPrompt, "helpful assistant")
		assert.NotContains(t, result.OptimizationMethods, "boilerplate compression")
	})
}

func TestOptimizeSystemPromptToTarget(t *testing.T) {
	optimizer := NewPromptOptimizer(nil)
	prompt := "You are a helpful assistant that   reviews contracts. You should always flag very ambiguous clauses in order to protect the client."

	t.Run("stops at the first level meeting the target", func(t *testing.T) {
		result := optimizer.OptimizeSystemPromptToTarget(prompt, 0)
		// Zero target is met immediately, so only the light passes ran
		assert.Equal(t, []string{"whitespace collapse"}, result.OptimizationMethods)
	})

	t.Run("escalates to harsher levels for ambitious targets", func(t *testing.T) {
		result := optimizer.OptimizeSystemPromptToTarget(prompt, 40)

		assert.NotContains(t, result.OptimizedPrompt, "helpful assistant")
		assert.NotContains(t, result.OptimizedPrompt, "very ")
		assert.Contains(t, result.OptimizedPrompt, "reviews contracts")
	})

	t.Run("unreachable target returns the aggressive result", func(t *testing.T) {
		result := optimizer.OptimizeSystemPromptToTarget("Review contracts.", 90)

		assert.Less(t, result.SavingPercentage, 90.0)
		assert.Equal(t, "Review contracts.", result.OptimizedPrompt)
	})
}
