package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type BaseConfig struct {
	ShutdownTimeout string `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`

	// Game selects the configured game integration (e.g. "MTG").
	// Resolved once at startup and passed into the import resolver.
	Game string `mapstructure:"game" yaml:"game"`

	Log      LogConfig      `mapstructure:"log"      yaml:"log"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Drive    DriveConfig    `mapstructure:"drive"    yaml:"drive"`
	Sync     SyncConfig     `mapstructure:"sync"     yaml:"sync"`
	Agent    AgentConfig    `mapstructure:"agent"    yaml:"agent"`
}

func LoadConfig() (*BaseConfig, error) {
	cfg := &BaseConfig{}

	setDefaults()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}
