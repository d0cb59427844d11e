package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	config "github.com/promptlift/cli/config"
	domain "github.com/promptlift/cli/internal/domain"
	storage "github.com/promptlift/cli/internal/infra/storage"
	services "github.com/promptlift/cli/internal/services"
)

// readPromptText joins the positional args into the prompt, falling
// back to stdin when no args were given
func readPromptText(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read prompt from stdin: %w", err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("no prompt provided (pass it as an argument or pipe it on stdin)")
	}

	return text, nil
}

func parseLevel(level string) (domain.OptimizationLevel, error) {
	switch domain.OptimizationLevel(level) {
	case domain.OptimizationLight, domain.OptimizationMedium, domain.OptimizationAggressive:
		return domain.OptimizationLevel(level), nil
	default:
		return "", fmt.Errorf("unknown optimization level %q (expected light, medium, or aggressive)", level)
	}
}

// newLedger opens the configured usage store. A backend that cannot be
// reached degrades to the in-memory store so completions still work.
func newLedger(cfg *config.Config) (*services.UsageLedger, domain.UsageStore) {
	store, err := storage.NewUsageStore(cfg.Ledger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %s ledger unavailable (%v), usage will not persist\n", cfg.Ledger.Type, err)
		store = storage.NewMemoryStore()
	}
	return services.NewUsageLedger(store), store
}

// optimizationOptions builds optimizer options from the configured
// level plus any custom pass selection in the config file
func optimizationOptions(cfg *config.Config, level domain.OptimizationLevel) domain.OptimizationOptions {
	options := domain.OptimizationOptions{Level: level}

	if cfg.Optimization.Passes != nil {
		p := cfg.Optimization.Passes
		options.Custom = &domain.OptimizationPasses{
			CollapseWhitespace:    p.CollapseWhitespace,
			RemoveFillerPhrases:   p.RemoveFillerPhrases,
			AbbreviateConnectives: p.AbbreviateConnectives,
			RestructureSentences:  p.RestructureSentences,
			DropQualifiers:        p.DropQualifiers,
		}
	}

	return options
}
