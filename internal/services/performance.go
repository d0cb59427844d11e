package services

import (
	domain "github.com/promptlift/cli/internal/domain"
)

// BatchOptimize runs the optimizer over prompts in order and aggregates
// the savings. Cost is estimated against one averaged static price
// since no single model applies to a batch.
func (o *OptimizedCompletionOrchestrator) BatchOptimize(prompts []string, options domain.OptimizationOptions) domain.BatchOptimizationResult {
	results := make([]domain.TokenOptimizationResult, 0, len(prompts))

	totalSaved := 0
	efficiencySum := 0.0

	for _, prompt := range prompts {
		result := o.optimizer.Optimize(prompt, options)
		results = append(results, result)
		totalSaved += result.SavedTokens
		efficiencySum += result.SavingPercentage
	}

	averageEfficiency := 0.0
	if len(prompts) > 0 {
		averageEfficiency = efficiencySum / float64(len(prompts))
	}

	return domain.BatchOptimizationResult{
		Results:            results,
		TotalSavedTokens:   totalSaved,
		EstimatedCostSaved: float64(totalSaved) * AverageInputPrice() / 1_000_000,
		AverageEfficiency:  averageEfficiency,
	}
}

// Performance thresholds for level recommendation
const (
	aggressiveQualityThreshold    = 85
	aggressiveEfficiencyThreshold = 30
	mediumQualityThreshold        = 75
	lowEfficiencyThreshold        = 10
	highEfficiencyThreshold       = 35
	lifetimeSavingsThreshold      = 1000
)

// AnalyzePerformance aggregates past orchestration results and
// recommends an aggressiveness level for future runs
func AnalyzePerformance(history []domain.OptimizedResponse) domain.PerformanceReport {
	if len(history) == 0 {
		return domain.PerformanceReport{RecommendedLevel: domain.OptimizationLight}
	}

	qualitySum := 0.0
	efficiencySum := 0.0
	totalSaved := 0

	for _, response := range history {
		qualitySum += float64(response.Metrics.QualityScore)
		efficiencySum += response.Metrics.EfficiencyPct
		totalSaved += response.SavedTokens
	}

	averageQuality := qualitySum / float64(len(history))
	averageEfficiency := efficiencySum / float64(len(history))

	level := domain.OptimizationLight
	switch {
	case averageQuality > aggressiveQualityThreshold && averageEfficiency > aggressiveEfficiencyThreshold:
		level = domain.OptimizationAggressive
	case averageQuality > mediumQualityThreshold:
		level = domain.OptimizationMedium
	}

	return domain.PerformanceReport{
		AverageQuality:    averageQuality,
		AverageEfficiency: averageEfficiency,
		TotalSavedTokens:  totalSaved,
		RecommendedLevel:  level,
	}
}

// PersonalizedSuggestions derives advice from historical performance
func PersonalizedSuggestions(history []domain.OptimizedResponse) []string {
	suggestions := []string{}

	if len(history) == 0 {
		return suggestions
	}

	report := AnalyzePerformance(history)

	if report.AverageEfficiency < lowEfficiencyThreshold {
		suggestions = append(suggestions,
			"Average savings are low; try a more aggressive optimization level")
	}
	if report.AverageEfficiency > highEfficiencyThreshold {
		suggestions = append(suggestions,
			"High savings suggest verbose prompts; drafting tighter prompts may improve response quality")
	}
	if report.TotalSavedTokens > lifetimeSavingsThreshold {
		suggestions = append(suggestions,
			"You have saved over 1000 tokens with optimization; keep it enabled")
	}

	return suggestions
}
