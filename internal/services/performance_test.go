package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/promptlift/cli/internal/domain"
)

func historyEntry(quality int, efficiency float64, saved int) domain.OptimizedResponse {
	return domain.OptimizedResponse{
		SavedTokens: saved,
		Metrics: domain.PerformanceMetrics{
			QualityScore:  quality,
			EfficiencyPct: efficiency,
		},
	}
}

func TestAnalyzePerformance(t *testing.T) {
	tests := []struct {
		name      string
		history   []domain.OptimizedResponse
		wantLevel domain.OptimizationLevel
	}{
		{
			name:      "empty history recommends light",
			history:   nil,
			wantLevel: domain.OptimizationLight,
		},
		{
			name: "high quality and efficiency recommends aggressive",
			history: []domain.OptimizedResponse{
				historyEntry(90, 35, 100),
				historyEntry(88, 40, 120),
			},
			wantLevel: domain.OptimizationAggressive,
		},
		{
			name: "high quality alone recommends medium",
			history: []domain.OptimizedResponse{
				historyEntry(90, 5, 10),
				historyEntry(80, 10, 10),
			},
			wantLevel: domain.OptimizationMedium,
		},
		{
			name: "mediocre quality recommends light",
			history: []domain.OptimizedResponse{
				historyEntry(70, 50, 500),
			},
			wantLevel: domain.OptimizationLight,
		},
		{
			name: "boundary values stop short of aggressive",
			history: []domain.OptimizedResponse{
				historyEntry(85, 30, 50),
			},
			wantLevel: domain.OptimizationMedium,
		},
		{
			name: "quality at the medium boundary stays light",
			history: []domain.OptimizedResponse{
				historyEntry(75, 30, 50),
			},
			wantLevel: domain.OptimizationLight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := AnalyzePerformance(tt.history)
			assert.Equal(t, tt.wantLevel, report.RecommendedLevel)
		})
	}

	t.Run("averages and totals", func(t *testing.T) {
		report := AnalyzePerformance([]domain.OptimizedResponse{
			historyEntry(80, 20, 100),
			historyEntry(90, 40, 300),
		})

		assert.Equal(t, 85.0, report.AverageQuality)
		assert.Equal(t, 30.0, report.AverageEfficiency)
		assert.Equal(t, 400, report.TotalSavedTokens)
	})
}

func TestPersonalizedSuggestions(t *testing.T) {
	t.Run("empty history yields no advice", func(t *testing.T) {
		assert.Empty(t, PersonalizedSuggestions(nil))
	})

	t.Run("low efficiency suggests a harsher level", func(t *testing.T) {
		suggestions := PersonalizedSuggestions([]domain.OptimizedResponse{
			historyEntry(80, 2, 5),
		})
		assert.Contains(t, suggestions,
			"Average savings are low; try a more aggressive optimization level")
	})

	t.Run("high efficiency suggests tighter drafting", func(t *testing.T) {
		suggestions := PersonalizedSuggestions([]domain.OptimizedResponse{
			historyEntry(80, 50, 200),
		})
		assert.Contains(t, suggestions,
			"High savings suggest verbose prompts; drafting tighter prompts may improve response quality")
	})

	t.Run("lifetime savings milestone", func(t *testing.T) {
		suggestions := PersonalizedSuggestions([]domain.OptimizedResponse{
			historyEntry(80, 20, 600),
			historyEntry(80, 20, 600),
		})
		assert.Contains(t, suggestions,
			"You have saved over 1000 tokens with optimization; keep it enabled")
	})
}

func TestBatchOptimize(t *testing.T) {
	orchestrator := newTestOrchestrator(&fakeProvider{}, nil)

	t.Run("empty batch", func(t *testing.T) {
		result := orchestrator.BatchOptimize(nil, domain.OptimizationOptions{Level: domain.OptimizationMedium})

		assert.Empty(t, result.Results)
		assert.Zero(t, result.TotalSavedTokens)
		assert.Zero(t, result.AverageEfficiency)
		assert.Zero(t, result.EstimatedCostSaved)
	})

	t.Run("aggregates per-prompt savings in order", func(t *testing.T) {
		prompts := []string{
			"Could you please summarize the incident report for the weekly review",
			"Fix the bug.",
		}

		result := orchestrator.BatchOptimize(prompts, domain.OptimizationOptions{Level: domain.OptimizationMedium})

		require.Len(t, result.Results, 2)
		assert.Greater(t, result.Results[0].SavedTokens, 0)
		assert.Zero(t, result.Results[1].SavedTokens)
		assert.Equal(t, result.Results[0].SavedTokens+result.Results[1].SavedTokens, result.TotalSavedTokens)
		assert.Greater(t, result.EstimatedCostSaved, 0.0)
		assert.Equal(t,
			(result.Results[0].SavingPercentage+result.Results[1].SavingPercentage)/2,
			result.AverageEfficiency)
	})
}
