package services

import (
	"regexp"
	"strings"

	domain "github.com/promptlift/cli/internal/domain"
)

// PromptOptimizer rewrites a user-authored prompt into a token-reduced
// form. It is a compressor, not a paraphraser: every pass preserves the
// action and subject of the input, and no pass may increase the token
// count of the text it receives.
type PromptOptimizer struct {
	tokenizer *TokenizerService
}

// NewPromptOptimizer creates a prompt optimizer using the given tokenizer
func NewPromptOptimizer(tokenizer *TokenizerService) *PromptOptimizer {
	if tokenizer == nil {
		tokenizer = NewTokenizerService(DefaultTokenizerConfig())
	}
	return &PromptOptimizer{tokenizer: tokenizer}
}

// optimizationPass is one named transformation. Enabled decides whether
// the pass runs for a resolved toggle set; apply performs the rewrite.
type optimizationPass struct {
	name    string
	enabled func(domain.OptimizationPasses) bool
	apply   func(string) string
}

// PassesForLevel maps an aggressiveness level to its preset toggle set.
// Unknown levels resolve to the medium preset.
func PassesForLevel(level domain.OptimizationLevel) domain.OptimizationPasses {
	switch level {
	case domain.OptimizationLight:
		return domain.OptimizationPasses{
			CollapseWhitespace: true,
		}
	case domain.OptimizationAggressive:
		return domain.OptimizationPasses{
			CollapseWhitespace:    true,
			RemoveFillerPhrases:   true,
			AbbreviateConnectives: true,
			RestructureSentences:  true,
			DropQualifiers:        true,
		}
	default:
		return domain.OptimizationPasses{
			CollapseWhitespace:    true,
			RemoveFillerPhrases:   true,
			AbbreviateConnectives: true,
		}
	}
}

func resolvePasses(options domain.OptimizationOptions) domain.OptimizationPasses {
	if options.Custom != nil {
		return *options.Custom
	}
	return PassesForLevel(options.Level)
}

// Optimize rewrites prompt under the given options and reports tokens
// saved, the passes that fired, and improvement suggestions. The input
// is never mutated; empty input yields a valid all-zero result.
func (o *PromptOptimizer) Optimize(prompt string, options domain.OptimizationOptions) domain.TokenOptimizationResult {
	if strings.TrimSpace(prompt) == "" {
		return domain.TokenOptimizationResult{
			OptimizedPrompt:     "",
			OptimizationMethods: []string{},
			Suggestions:         []string{},
		}
	}

	originalTokens := o.tokenizer.EstimateTokenCount(prompt)
	enabled := resolvePasses(options)

	text := prompt
	methods := []string{}

	for _, pass := range userPromptPasses {
		if !pass.enabled(enabled) {
			continue
		}

		candidate := pass.apply(text)
		if candidate == text {
			continue
		}
		// A pass that would expand the text is skipped for this input
		if o.tokenizer.EstimateTokenCount(candidate) > o.tokenizer.EstimateTokenCount(text) {
			continue
		}

		text = candidate
		methods = append(methods, pass.name)
	}

	optimizedTokens := o.tokenizer.EstimateTokenCount(text)
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
		OptimizedPrompt:     text,
		OptimizationMethods: methods,
		Suggestions:         o.suggestions(prompt, savedTokens),
	}
}

func (o *PromptOptimizer) suggestions(prompt string, savedTokens int) []string {
	suggestions := []string{}

	if savedTokens == 0 {
		suggestions = append(suggestions, "No improvement found; the prompt is already compact")
	}
	if o.tokenizer.EstimateTokenCount(prompt) > 250 {
		suggestions = append(suggestions, "Consider splitting this prompt into smaller, focused requests")
	}
	if !strings.Contains(prompt, "\n") && len(prompt) > 300 {
		suggestions = append(suggestions, "Structure long prompts with line breaks or bullet points")
	}

	return suggestions
}

var userPromptPasses = []optimizationPass{
	{
		name:    "whitespace collapse",
		enabled: func(p domain.OptimizationPasses) bool { return p.CollapseWhitespace },
		apply:   collapseWhitespace,
	},
	{
		name:    "filler phrase removal",
		enabled: func(p domain.OptimizationPasses) bool { return p.RemoveFillerPhrases },
		apply:   removeFillerPhrases,
	},
	{
		name:    "connective abbreviation",
		enabled: func(p domain.OptimizationPasses) bool { return p.AbbreviateConnectives },
		apply:   abbreviateConnectives,
	},
	{
		name:    "sentence restructuring",
		enabled: func(p domain.OptimizationPasses) bool { return p.RestructureSentences },
		apply:   restructureSentences,
	},
	{
		name:    "qualifier pruning",
		enabled: func(p domain.OptimizationPasses) bool { return p.DropQualifiers },
		apply:   dropQualifiers,
	},
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// collapseWhitespace folds runs of whitespace into single spaces and
// drops immediately repeated words ("the the" -> "the"), ignoring case
func collapseWhitespace(text string) string {
	collapsed := strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	if collapsed == "" {
		return collapsed
	}

	words := strings.Split(collapsed, " ")
	deduped := make([]string, 0, len(words))
	deduped = append(deduped, words[0])
	for _, word := range words[1:] {
		if strings.EqualFold(word, deduped[len(deduped)-1]) {
			continue
		}
		deduped = append(deduped, word)
	}

	return strings.Join(deduped, " ")
}

var fillerPhrases = []string{
	"i was wondering if you could ",
	"i would like you to ",
	"i would like to ask you to ",
	"i want you to ",
	"it would be great if you could ",
	"could you please ",
	"can you please ",
	"would you please ",
	"could you ",
	"can you ",
	"please go ahead and ",
	"go ahead and ",
	"please ",
	"kindly ",
	"if possible, ",
	"if possible ",
}

var fillerPatterns = compileFold(fillerPhrases)

// removeFillerPhrases strips polite request framing that carries no
// instruction content
func removeFillerPhrases(text string) string {
	result := text
	for _, re := range fillerPatterns {
		result = re.ReplaceAllString(result, "")
	}
	return tidy(result)
}

var connectiveReplacements = []struct {
	verbose string
	short   string
}{
	{"due to the fact that", "because"},
	{"in spite of the fact that", "although"},
	{"in the event that", "if"},
	{"at this point in time", "now"},
	{"for the purpose of", "for"},
	{"with regard to", "about"},
	{"with respect to", "about"},
	{"in order to", "to"},
	{"a large number of", "many"},
	{"the majority of", "most"},
	{"take into account", "consider"},
	{"as well as", "and"},
	{"in addition to", "besides"},
}

var connectivePatterns = func() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(connectiveReplacements))
	for i, r := range connectiveReplacements {
		patterns[i] = foldPattern(r.verbose)
	}
	return patterns
}()

// abbreviateConnectives replaces verbose connective language with the
// short equivalent
func abbreviateConnectives(text string) string {
	result := text
	for i, r := range connectiveReplacements {
		result = connectivePatterns[i].ReplaceAllString(result, r.short)
	}
	return tidy(result)
}

var framingClauses = []string{
	"i think that ",
	"i believe that ",
	"i feel like ",
	"as you may know, ",
	"as you may know ",
	"as you know, ",
	"to be honest, ",
	"needless to say, ",
	"first of all, ",
	"basically, ",
	"at the end of the day, ",
	"thank you in advance.",
	"thank you in advance",
	"thanks in advance.",
	"thanks in advance",
}

var framingPatterns = compileFold(framingClauses)

// restructureSentences drops lead-in framing and closing courtesies
// that do not change what is being asked
func restructureSentences(text string) string {
	result := text
	for _, re := range framingPatterns {
		result = re.ReplaceAllString(result, "")
	}
	return tidy(result)
}

var qualifierRe = regexp.MustCompile(`(?i)\b(very|really|quite|extremely|basically|actually|simply|just|definitely|certainly|somewhat|rather|totally)\s+`)

// dropQualifiers removes non-essential intensity qualifiers
func dropQualifiers(text string) string {
	return tidy(qualifierRe.ReplaceAllString(text, ""))
}

// foldPattern compiles a case-insensitive literal match
func foldPattern(literal string) *regexp.Regexp {
	return regexp.MustCompile("(?i)" + regexp.QuoteMeta(literal))
}

func compileFold(literals []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(literals))
	for i, literal := range literals {
		patterns[i] = foldPattern(literal)
	}
	return patterns
}

// tidy normalizes whitespace and stray leading punctuation left behind
// by phrase removal
func tidy(text string) string {
	result := whitespaceRe.ReplaceAllString(text, " ")
	result = strings.TrimSpace(result)
	result = strings.TrimPrefix(result, ", ")
	result = strings.TrimPrefix(result, ". ")
	return strings.TrimSpace(result)
}
