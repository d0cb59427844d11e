package services

import (
	"fmt"
	"strings"
)

// SystemPromptAssembler composes the system instruction sent to the
// completion provider: a domain-flavored base prompt followed by a
// complexity guidance block and an output-format guidance block. The
// concatenation order (domain, complexity, format) is load-bearing for
// downstream prompt quality and must not change.
type SystemPromptAssembler struct{}

// NewSystemPromptAssembler creates a system-prompt assembler
func NewSystemPromptAssembler() *SystemPromptAssembler {
	return &SystemPromptAssembler{}
}

// DomainTemplate is the static per-domain configuration used to build
// the domain-flavored base prompt. Never mutated at runtime.
type DomainTemplate struct {
	Tone        string
	FocusAreas  string
	Examples    string
	Constraints string
	Terminology string
}

var domainTemplates = map[string]DomainTemplate{
	"developer": {
		Tone:        "precise and technical",
		FocusAreas:  "correctness, maintainability, and edge cases",
		Examples:    "include minimal runnable code snippets where they clarify the instruction",
		Constraints: "state language, framework, and version assumptions explicitly",
		Terminology: "use standard software engineering terminology",
	},
	"analyst": {
		Tone:        "objective and evidence-driven",
		FocusAreas:  "data sources, metrics, trends, and caveats",
		Examples:    "reference concrete figures and comparison baselines",
		Constraints: "separate observations from interpretation",
		Terminology: "use standard statistics and business-intelligence terminology",
	},
	"designer": {
		Tone:        "visual and user-centered",
		FocusAreas:  "usability, hierarchy, accessibility, and consistency",
		Examples:    "describe layouts and interactions concretely",
		Constraints: "respect stated platform and brand constraints",
		Terminology: "use standard UI/UX terminology",
	},
	"writer": {
		Tone:        "engaging and audience-aware",
		FocusAreas:  "structure, voice, clarity, and flow",
		Examples:    "show a short sample passage when tone is ambiguous",
		Constraints: "match the requested length and register",
		Terminology: "use plain editorial vocabulary",
	},
	"marketer": {
		Tone:        "persuasive and benefit-led",
		FocusAreas:  "audience targeting, positioning, and calls to action",
		Examples:    "include a concrete headline or hook example",
		Constraints: "keep claims specific and verifiable",
		Terminology: "use standard marketing terminology",
	},
	"teacher": {
		Tone:        "patient and structured",
		FocusAreas:  "learning objectives, sequencing, and comprehension checks",
		Examples:    "illustrate each concept with a worked example",
		Constraints: "build from fundamentals before advanced material",
		Terminology: "define terms when first introduced",
	},
	"business": {
		Tone:        "pragmatic and outcome-focused",
		FocusAreas:  "objectives, stakeholders, risks, and measurable results",
		Examples:    "tie recommendations to concrete business impact",
		Constraints: "keep scope and assumptions explicit",
		Terminology: "use standard management terminology",
	},
	"researcher": {
		Tone:        "rigorous and methodical",
		FocusAreas:  "methodology, sources, limitations, and reproducibility",
		Examples:    "cite the kind of evidence that supports each claim",
		Constraints: "distinguish established findings from open questions",
		Terminology: "use standard academic terminology",
	},
}

// genericSystemPrompt is the fallback instruction set used when no
// specific domain applies
const genericSystemPrompt = `You are a prompt oracle: you transform requests into precise, executable instructions.

Structure every response with these mandatory sections: ROLE, TASK, CONTEXT, INSTRUCTIONS, OUTPUT, CONSTRAINTS.

Write in imperative command form. Use no passive voice. Ask no clarifying questions; resolve ambiguity with explicit assumptions stated in CONTEXT.`

const (
	defaultComplexity = "intermediate"
	defaultFormat     = "paragraph"
)

var complexityBlocks = map[string]string{
	"beginner": `Complexity guidance: explain every step in plain language and assume no prior knowledge. Use simple, everyday examples. Avoid specialist vocabulary; when a term is unavoidable, define it immediately. Keep structure shallow: short sections, one idea each. Recommended command verbs: Write, Create, Make, Show, Explain.`,
	"intermediate": `Complexity guidance: assume working familiarity with the subject and explain only the non-obvious steps. Use practical, realistic examples. Standard domain vocabulary is acceptable without definitions. Organize output into clearly separated sections. Recommended command verbs: Develop, Implement, Analyze, Integrate, Refine.`,
	"advanced": `Complexity guidance: assume deep familiarity and focus on trade-offs, edge cases, and design rationale. Use sophisticated, realistic examples drawn from production scenarios. Use precise technical vocabulary freely. Structure output for reference use with nested detail where warranted. Recommended command verbs: Architect, Optimize, Formalize, Evaluate, Synthesize.`,
	"expert": `Complexity guidance: assume mastery and engage at the level of novel insight and frontier practice. Examples should challenge conventional approaches. Use specialist terminology without reservation. Structure output as a peer-level briefing. Recommended command verbs: Orchestrate, Innovate, Pioneer, Redefine, Master.`,
}

var formatBlocks = map[string]string{
	"paragraph": `Output format: continuous prose paragraphs. Target three to five sentences per paragraph with smooth transitions. Maintain a flowing, readable style. Recommended command verbs: Describe, Discuss, Elaborate.`,
	"bullet_points": `Output format: bulleted list. One concise point per bullet, parallel grammatical structure across bullets, no more than two levels of nesting. Recommended command verbs: List, Outline, Summarize.`,
	"numbered_list": `Output format: numbered list in execution order. Each item is a single actionable step beginning with a verb. Keep steps atomic so they can be followed one at a time. Recommended command verbs: Enumerate, Sequence, Rank.`,
	"table": `Output format: table with a header row. Choose columns that make rows directly comparable; keep cell contents terse. Add a one-sentence takeaway after the table. Recommended command verbs: Compare, Tabulate, Contrast.`,
	"code": `Output format: code block with the language identifier. Include only the code needed to satisfy the task, preceded by a one-line summary and followed by brief usage notes. Recommended command verbs: Implement, Refactor, Generate.`,
}

// Assemble builds the system prompt for the given domain, complexity
// level, and output format. An unset, "General", or unknown domain
// yields the fixed generic prompt; otherwise the domain-flavored base
// is followed by the complexity block and the format block. Unknown
// complexity falls back to intermediate, unknown format to paragraph.
func (a *SystemPromptAssembler) Assemble(domainTag, complexityLevel, outputFormat string) string {
	base, specific := a.basePrompt(domainTag)
	if !specific {
		return base
	}

	complexity, ok := complexityBlocks[complexityLevel]
	if !ok {
		complexity = complexityBlocks[defaultComplexity]
	}

	format, ok := formatBlocks[outputFormat]
	if !ok {
		format = formatBlocks[defaultFormat]
	}

	return base + "\n\n" + complexity + "\n\n" + format
}

func (a *SystemPromptAssembler) basePrompt(domainTag string) (prompt string, specific bool) {
	tag := strings.ToLower(strings.TrimSpace(domainTag))
	if tag == "" || tag == "general" {
		return genericSystemPrompt, false
	}

	template, ok := domainTemplates[tag]
	if !ok {
		return genericSystemPrompt, false
	}

	return fmt.Sprintf(`You are a prompt oracle specialized in %s work: you transform requests into precise, executable instructions for that field.

Structure every response with these mandatory sections: ROLE, TASK, CONTEXT, INSTRUCTIONS, OUTPUT, CONSTRAINTS. Frame the ROLE and TASK around %s concerns.

Keep the tone %s. Focus on %s. For examples, %s. As a constraint, %s, and %s.

Write in imperative command form. Use no passive voice. Ask no clarifying questions; resolve ambiguity with explicit assumptions stated in CONTEXT.`,
		tag, tag, template.Tone, template.FocusAreas, template.Examples,
		template.Constraints, template.Terminology), true
}
