package cmd

import (
	"fmt"
	"strings"

	services "github.com/promptlift/cli/internal/services"
	cobra "github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [PROMPT]",
	Short: "Score prompt quality and infer the goal behind it",
	Long: `Run the quality analyzer and goal inferencer over a prompt. The
quality score rewards clear action verbs, context markers, and
specific detail; the goal analysis classifies the prompt's domain,
target audience, and expected output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt, err := readPromptText(args)
		if err != nil {
			return err
		}

		analyzer := services.NewQualityAnalyzer()
		inferencer := services.NewGoalInferencer()

		quality := analyzer.Analyze(prompt)
		goals := inferencer.Infer(prompt)

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(cmd, map[string]any{
				"quality": quality,
				"goals":   goals,
			})
		}

		fmt.Printf("Quality score: %d/100\n", quality.Score)
		if quality.IsGood {
			fmt.Println("Verdict: good prompt")
		} else {
			fmt.Println("Verdict: needs improvement")
		}
		for _, issue := range quality.Issues {
			fmt.Printf("Issue: %s\n", issue)
		}
		for _, suggestion := range quality.Suggestions {
			fmt.Printf("Suggestion: %s\n", suggestion)
		}

		fmt.Println()
		fmt.Printf("Primary goal: %s\n", goals.PrimaryGoal)
		fmt.Printf("Domain: %s\n", goals.Domain)
		fmt.Printf("Audience: %s (%s)\n", goals.TargetAudience, goals.Complexity)
		fmt.Printf("Expected output: %s\n", goals.ExpectedOutput)
		if len(goals.Suggestions) > 0 {
			fmt.Printf("Next steps: %s\n", strings.Join(goals.Suggestions, "; "))
		}

		return nil
	},
}

func init() {
	analyzeCmd.Flags().Bool("json", false, "print the full result as JSON")
	rootCmd.AddCommand(analyzeCmd)
}
