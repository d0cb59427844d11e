package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	services "github.com/promptlift/cli/internal/services"
	cobra "github.com/spf13/cobra"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize [PROMPT]",
	Short: "Compress a prompt to reduce its token footprint",
	Long: `Apply lossy text-compression passes to a prompt and report the token
savings. The passes applied depend on the optimization level: light
only collapses whitespace, medium also strips filler phrases and
abbreviates connectives, and aggressive additionally restructures
sentences and drops hedging qualifiers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt, err := readPromptText(args)
		if err != nil {
			return err
		}

		levelFlag, _ := cmd.Flags().GetString("level")
		if levelFlag == "" {
			levelFlag = cfg.Optimization.Level
		}
		level, err := parseLevel(levelFlag)
		if err != nil {
			return err
		}

		tokenizer := services.NewTokenizerService(services.DefaultTokenizerConfig())
		optimizer := services.NewPromptOptimizer(tokenizer)

		result := optimizer.Optimize(prompt, optimizationOptions(cfg, level))

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(cmd, result)
		}

		fmt.Println(result.OptimizedPrompt)
		fmt.Println()
		fmt.Printf("Tokens: %d -> %d (saved %d, %.1f%%)\n",
			result.OriginalTokens, result.OptimizedTokens, result.SavedTokens, result.SavingPercentage)
		if len(result.OptimizationMethods) > 0 {
			fmt.Printf("Methods: %s\n", strings.Join(result.OptimizationMethods, ", "))
		}
		for _, suggestion := range result.Suggestions {
			fmt.Printf("Suggestion: %s\n", suggestion)
		}

		return nil
	},
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func init() {
	optimizeCmd.Flags().String("level", "", "optimization level (light, medium, aggressive)")
	optimizeCmd.Flags().Bool("json", false, "print the full result as JSON")
	rootCmd.AddCommand(optimizeCmd)
}
