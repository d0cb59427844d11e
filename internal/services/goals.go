package services

import (
	"strings"

	domain "github.com/promptlift/cli/internal/domain"
)

// GoalInferencer classifies free text into a primary goal, professional
// domain, target audience, and expected output using keyword heuristics.
type GoalInferencer struct{}

// NewGoalInferencer creates a goal inferencer
func NewGoalInferencer() *GoalInferencer {
	return &GoalInferencer{}
}

// goalRule maps a keyword set to its classification. Rules are
// evaluated in order and the first match wins, so a prompt containing
// both "analyze" and "design" resolves to Data Analysis. The order is a
// deliberate tie-break and must not be rearranged.
type goalRule struct {
	keywords       []string
	primaryGoal    string
	domainTag      string
	expectedOutput string
}

var goalRules = []goalRule{
	{[]string{"code", "program", "software"}, "Software Development", "developer", "Code & Technical Solution"},
	{[]string{"analyze", "report", "data"}, "Data Analysis", "analyst", "Analysis & Report"},
	{[]string{"design", "ui", "ux"}, "UI/UX Design", "designer", "Design Concept & Specification"},
	{[]string{"content", "write", "article"}, "Content Creation", "writer", "Content & Text"},
	{[]string{"marketing", "advertising", "sales"}, "Marketing & Advertising", "marketer", "Marketing Material"},
	{[]string{"education", "teaching", "learning"}, "Education & Teaching", "teacher", "Educational Material"},
	{[]string{"business", "strategy", "plan"}, "Business Management", "business", "Business Document"},
	{[]string{"research", "study", "investigation"}, "Research & Investigation", "researcher", "Research Summary"},
}

// audienceRule maps keywords to a target-audience tier, evaluated
// independently of the goal classification
type audienceRule struct {
	keywords   []string
	audience   string
	complexity string
}

var audienceRules = []audienceRule{
	{[]string{"beginner", "newbie", "learning"}, "Beginners", "beginner"},
	{[]string{"expert", "professional", "advanced"}, "Experts", "expert"},
	{[]string{"intermediate", "medium"}, "Intermediate Users", "intermediate"},
}

// Suggestions are currently provided for the developer, analyst, and
// designer domains only.
var domainSuggestions = map[string][]string{
	"developer": {
		"Specify the programming language and target environment",
		"Describe the expected input and output",
	},
	"analyst": {
		"Name the data source and the metrics that matter",
		"State the time range the analysis should cover",
	},
	"designer": {
		"Mention the target platform and any brand constraints",
	},
}

// Infer classifies promptText in a single pass over the lower-cased text
func (g *GoalInferencer) Infer(promptText string) domain.GoalAnalysis {
	lower := strings.ToLower(promptText)

	analysis := domain.GoalAnalysis{
		PrimaryGoal:    "General",
		Domain:         "custom",
		ExpectedOutput: "General Response",
		TargetAudience: "General",
		Complexity:     "intermediate",
		Suggestions:    []string{},
	}

	for _, rule := range goalRules {
		if containsAny(lower, rule.keywords) {
			analysis.PrimaryGoal = rule.primaryGoal
			analysis.Domain = rule.domainTag
			analysis.ExpectedOutput = rule.expectedOutput
			break
		}
	}

	for _, rule := range audienceRules {
		if containsAny(lower, rule.keywords) {
			analysis.TargetAudience = rule.audience
			analysis.Complexity = rule.complexity
			break
		}
	}

	if suggestions, ok := domainSuggestions[analysis.Domain]; ok {
		analysis.Suggestions = append(analysis.Suggestions, suggestions...)
	}

	return analysis
}
