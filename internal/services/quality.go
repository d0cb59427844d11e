package services

import (
	"strings"
	"unicode/utf8"

	domain "github.com/promptlift/cli/internal/domain"
)

// QualityAnalyzer scores a prompt's structural completeness. Each rule
// is evaluated independently against the same input; the score is the
// raw sum of rewards and penalties with no clamping, so pathological
// inputs can score well below zero. IsGood is the boolean gate callers
// should rely on; the raw score is for display and ranking only.
type QualityAnalyzer struct{}

// NewQualityAnalyzer creates a quality analyzer
func NewQualityAnalyzer() *QualityAnalyzer {
	return &QualityAnalyzer{}
}

// goodScoreThreshold is the score at or above which a prompt counts as good
const goodScoreThreshold = 60

var qualityActionVerbs = []string{
	"write", "create", "analyze", "design", "develop",
	"build", "make", "show", "explain", "generate",
}

var qualityContextMarkers = []string{
	"for", "in", "with", "that", "this", "about", "regarding", "concerning",
}

var qualityDetailNouns = []string{
	"code", "program", "website", "app", "report", "analysis", "design", "content",
}

// Analyze scores promptText and emits actionable issues and suggestions
func (a *QualityAnalyzer) Analyze(promptText string) domain.QualityAnalysis {
	score := 0
	issues := []string{}
	suggestions := []string{}

	lower := strings.ToLower(promptText)
	length := utf8.RuneCountInString(promptText)

	switch {
	case length < 10:
		issues = append(issues, "Prompt is too short")
		suggestions = append(suggestions, "Add more detail about what you need")
		score -= 30
	case length < 50:
		issues = append(issues, "Prompt is short")
		suggestions = append(suggestions, "Add an explanation of the context and goal")
		score -= 15
	case length > 500:
		issues = append(issues, "Prompt is too long")
		suggestions = append(suggestions, "Be more concise")
		score -= 10
	default:
		score += 20
	}

	if containsAny(lower, qualityActionVerbs) {
		score += 15
	} else {
		issues = append(issues, "No clear action verb")
		suggestions = append(suggestions, "Start with an action verb like write, create, or analyze")
		score -= 20
	}

	if containsAny(lower, qualityContextMarkers) {
		score += 10
	} else {
		issues = append(issues, "No context provided")
		suggestions = append(suggestions, "Describe who or what the result is for")
		score -= 15
	}

	if containsAny(lower, qualityDetailNouns) {
		score += 10
	} else {
		issues = append(issues, "No specific deliverable named")
		suggestions = append(suggestions, "Name the concrete output you expect, e.g. a report or code")
		score -= 10
	}

	return domain.QualityAnalysis{
		Score:       score,
		Issues:      issues,
		Suggestions: suggestions,
		IsGood:      score >= goodScoreThreshold,
	}
}

// containsAny reports whether text contains at least one of the
// keywords as a substring. Text must already be lower-cased.
func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
