package cmd

import (
	"fmt"
	"time"

	services "github.com/promptlift/cli/internal/services"
	cobra "github.com/spf13/cobra"
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show recorded token usage",
	Long: `Summarize the usage ledger: totals for the current calendar month plus
the most recent usage events. Events recorded without provider-reported
token counts are marked as estimated.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ledger, store := newLedger(cfg)
		defer func() { _ = store.Close() }()

		ctx := cmd.Context()
		now := time.Now()

		monthly := ledger.MonthlyTotals(ctx, now)
		fmt.Printf("Usage for %s:\n", now.Format("January 2006"))
		fmt.Printf("  Events:            %d\n", monthly.EventCount)
		fmt.Printf("  Prompt tokens:     %d\n", monthly.PromptTokens)
		fmt.Printf("  Completion tokens: %d\n", monthly.CompletionTokens)
		fmt.Printf("  Total tokens:      %d\n", monthly.TotalTokens)

		if cfg.Pricing.Enabled {
			pricing := services.NewPricingService(cfg.Pricing)
			fmt.Printf("  Estimated cost:    $%.4f %s\n",
				ledger.MonthlyCost(ctx, now, pricing), cfg.Pricing.Currency)
		}

		limit, _ := cmd.Flags().GetInt("recent")
		events := ledger.Recent(ctx, limit)
		if len(events) == 0 {
			return nil
		}

		fmt.Println()
		fmt.Printf("Last %d events:\n", len(events))
		for _, event := range events {
			marker := ""
			if event.Approximate {
				marker = " (estimated)"
			}
			fmt.Printf("  %s  %s/%s  %d tokens%s\n",
				event.Time().Format(time.RFC3339), event.Provider, event.Model, event.TotalTokens, marker)
		}

		return nil
	},
}

func init() {
	usageCmd.Flags().Int("recent", 10, "number of recent events to list")
	rootCmd.AddCommand(usageCmd)
}
