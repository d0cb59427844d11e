package cmd

import (
	"fmt"

	services "github.com/promptlift/cli/internal/services"
	cobra "github.com/spf13/cobra"
)

var systemPromptCmd = &cobra.Command{
	Use:   "system-prompt",
	Short: "Assemble a system prompt for a domain, complexity, and format",
	Long: `Build a system prompt from the domain template, complexity guidance,
and output-format instructions. Unknown domains fall back to a
general-purpose prompt-engineering persona. Use --compress to run the
system-prompt compressor over the assembled text.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		domainTag, _ := cmd.Flags().GetString("domain")
		complexity, _ := cmd.Flags().GetString("complexity")
		format, _ := cmd.Flags().GetString("format")
		if domainTag == "" {
			domainTag = cfg.Prompt.Domain
		}
		if complexity == "" {
			complexity = cfg.Prompt.Complexity
		}
		if format == "" {
			format = cfg.Prompt.OutputFormat
		}

		assembler := services.NewSystemPromptAssembler()
		prompt := assembler.Assemble(domainTag, complexity, format)

		if compress, _ := cmd.Flags().GetBool("compress"); compress {
			tokenizer := services.NewTokenizerService(services.DefaultTokenizerConfig())
			optimizer := services.NewPromptOptimizer(tokenizer)

			result := optimizer.OptimizeSystemPromptToTarget(prompt, cfg.Optimization.TargetReduction)
			fmt.Println(result.OptimizedPrompt)
			fmt.Println()
			fmt.Printf("Tokens: %d -> %d (saved %d, %.1f%%)\n",
				result.OriginalTokens, result.OptimizedTokens, result.SavedTokens, result.SavingPercentage)
			return nil
		}

		fmt.Println(prompt)
		return nil
	},
}

func init() {
	systemPromptCmd.Flags().String("domain", "", "target domain (e.g. Software Development)")
	systemPromptCmd.Flags().String("complexity", "", "complexity level (beginner, intermediate, advanced, expert)")
	systemPromptCmd.Flags().String("format", "", "output format (paragraph, bullet_points, numbered_list, table, code)")
	systemPromptCmd.Flags().Bool("compress", false, "compress the assembled prompt toward the configured target reduction")
	rootCmd.AddCommand(systemPromptCmd)
}
