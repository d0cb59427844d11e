package services

import (
	"fmt"

	"github.com/spf13/viper"

	config "github.com/promptlift/cli/config"
	"github.com/promptlift/cli/internal/utils"
)

// ConfigService edits the configuration file through viper so values
// can be addressed by dot path ("optimization.level"). It keeps a typed
// snapshot of the config that is refreshed after every write.
type ConfigService struct {
	viper  *viper.Viper
	config *config.Config
}

// NewConfigService wraps an already-initialized viper instance. The
// instance must have its config file set and read.
func NewConfigService(v *viper.Viper, cfg *config.Config) *ConfigService {
	return &ConfigService{
		viper:  v,
		config: cfg,
	}
}

// Reload re-reads the file and replaces the typed snapshot. Unset keys
// come back at their default values, not zero values.
func (cs *ConfigService) Reload() (*config.Config, error) {
	if err := cs.viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to re-read config file: %w", err)
	}

	newConfig := config.DefaultConfig()
	if err := cs.viper.Unmarshal(newConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reloaded config: %w", err)
	}

	cs.config = newConfig

	return newConfig, nil
}

// GetConfig returns the typed snapshot from the last load or write
func (cs *ConfigService) GetConfig() *config.Config {
	return cs.config
}

// SetValue sets one dot-path key, writes the file, and reloads so the
// snapshot reflects what was actually persisted
func (cs *ConfigService) SetValue(key, value string) error {
	cs.viper.Set(key, value)

	if err := utils.WriteViperConfigWithIndent(cs.viper, 2); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	if _, err := cs.Reload(); err != nil {
		return fmt.Errorf("failed to reload config after setting: %w", err)
	}

	return nil
}
