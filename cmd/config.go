package cmd

import (
	"fmt"
	"os"

	config "github.com/promptlift/cli/config"
	services "github.com/promptlift/cli/internal/services"
	cobra "github.com/spf13/cobra"
	viper "github.com/spf13/viper"
	yaml "gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
	Long:  `Inspect and modify the promptlift configuration file.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new project configuration",
	Long: `Create a .promptlift/config.yaml configuration file in the current
directory with default settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := config.DefaultConfigPath

		if _, err := os.Stat(configPath); err == nil {
			overwrite, _ := cmd.Flags().GetBool("overwrite")
			if !overwrite {
				return fmt.Errorf("configuration file %s already exists (use --overwrite to replace)", configPath)
			}
		}

		defaults := config.DefaultConfig()
		if err := defaults.SaveConfig(configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}

		fmt.Printf("Successfully created %s\n", configPath)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		cmd.Print(string(data))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [KEY] [VALUE]",
	Short: "Set a configuration value",
	Long: `Set a configuration value using dot notation and persist it, for
example:

  promptlift config set optimization.level aggressive
  promptlift config set ledger.type sqlite`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := rootCmd.PersistentFlags().GetString("config")
		if configPath == "" {
			configPath = config.DefaultConfigPath
		}

		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			if err := config.DefaultConfig().SaveConfig(configPath); err != nil {
				return fmt.Errorf("failed to create config file: %w", err)
			}
		}

		v := viper.New()
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}

		service := services.NewConfigService(v, cfg)
		if err := service.SetValue(args[0], args[1]); err != nil {
			return err
		}
		cfg = service.GetConfig()

		fmt.Printf("Set %s = %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("overwrite", false, "overwrite an existing configuration file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
