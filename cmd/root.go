package cmd

import (
	"fmt"
	"os"

	config "github.com/promptlift/cli/config"
	logger "github.com/promptlift/cli/internal/logger"
	cobra "github.com/spf13/cobra"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "promptlift",
	Short: "Prompt optimization and quality analysis for LLM workflows",
	Long: `A command-line toolkit for getting more out of LLM prompts: estimate
token counts, compress prompts before they are sent, score prompt
quality, infer the goal behind a prompt, assemble tailored system
prompts, and track token usage across completions.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Welcome to promptlift!")
		fmt.Println("Use 'promptlift optimize' to compress a prompt or --help to see available commands.")
	},
}

func Execute() {
	defer logger.Close()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", fmt.Sprintf("config file (default is %s)", config.DefaultConfigPath))
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
	configPath, _ := rootCmd.PersistentFlags().GetString("config")

	loaded, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config from %s: %v\n", configPath, err)
		os.Exit(1)
	}
	cfg = loaded

	logger.Init(verbose)
}
