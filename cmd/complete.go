package cmd

import (
	"fmt"
	"strings"
	"time"

	services "github.com/promptlift/cli/internal/services"
	cobra "github.com/spf13/cobra"
)

var completeCmd = &cobra.Command{
	Use:   "complete [PROMPT]",
	Short: "Run an optimized completion through the inference gateway",
	Long: `Optimize a prompt, assemble a system prompt for it, send both through
the inference gateway, and record the token usage in the ledger. The
model is addressed as provider/model, for example anthropic/claude-4.

Prints the completion followed by the round-trip metrics: tokens saved
by optimization, estimated cost saved, latency, and a quality score
for the optimized exchange.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt, err := readPromptText(args)
		if err != nil {
			return err
		}

		model, _ := cmd.Flags().GetString("model")
		if model == "" {
			model = cfg.Prompt.DefaultModel
		}
		if !strings.Contains(model, "/") {
			return fmt.Errorf("model must be addressed as provider/model, got %q", model)
		}

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

		noOptimize, _ := cmd.Flags().GetBool("no-optimize")
		levelFlag, _ := cmd.Flags().GetString("level")
		if levelFlag == "" {
			levelFlag = cfg.Optimization.Level
		}
		level, err := parseLevel(levelFlag)
		if err != nil {
			return err
		}

		maxTokens, _ := cmd.Flags().GetInt("max-tokens")
		if maxTokens <= 0 {
			maxTokens = cfg.Prompt.MaxTokens
		}

		ledger, store := newLedger(cfg)
		defer func() { _ = store.Close() }()

		orchestrator := services.NewOrchestrator(services.OrchestratorConfig{
			Provider: services.NewGatewayProvider(cfg.Gateway),
			Ledger:   ledger,
			Pricing:  services.NewPricingService(cfg.Pricing),
		})

		response, err := orchestrator.Run(cmd.Context(), services.RunRequest{
			Prompt:              prompt,
			Model:               model,
			Domain:              domainTag,
			Complexity:          complexity,
			OutputFormat:        format,
			OptimizationEnabled: cfg.Optimization.Enabled && !noOptimize,
			Options:             optimizationOptions(cfg, level),
			MaxTokens:           maxTokens,
		})
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(cmd, response)
		}

		fmt.Println(response.Content)
		fmt.Println()
		fmt.Printf("Model: %s\n", response.Model)
		fmt.Printf("Tokens: %d -> %d (saved %d, %.1f%%)\n",
			response.OriginalTokens, response.OptimizedTokens, response.SavedTokens, response.SavingPercentage)
		if response.CostSaved > 0 {
			fmt.Printf("Estimated cost saved: $%.6f\n", response.CostSaved)
		}
		fmt.Printf("Latency: %s\n", response.Metrics.Duration.Round(time.Millisecond))
		fmt.Printf("Round-trip quality: %d/100\n", response.Metrics.QualityScore)
		if response.Usage != nil {
			marker := ""
			if response.Usage.Approximate {
				marker = " (estimated)"
			}
			fmt.Printf("Usage: %d prompt + %d completion = %d tokens%s\n",
				response.Usage.PromptTokens, response.Usage.CompletionTokens, response.Usage.TotalTokens, marker)
		}

		return nil
	},
}

func init() {
	completeCmd.Flags().StringP("model", "m", "", "model addressed as provider/model")
	completeCmd.Flags().String("domain", "", "target domain for system-prompt assembly")
	completeCmd.Flags().String("complexity", "", "complexity level for system-prompt assembly")
	completeCmd.Flags().String("format", "", "output format for system-prompt assembly")
	completeCmd.Flags().String("level", "", "optimization level (light, medium, aggressive)")
	completeCmd.Flags().Bool("no-optimize", false, "send the prompt unmodified")
	completeCmd.Flags().Int("max-tokens", 0, "maximum completion tokens")
	completeCmd.Flags().Bool("json", false, "print the full response as JSON")
	rootCmd.AddCommand(completeCmd)
}
