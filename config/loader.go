package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".deadfile"

// configType is the config file format.
const configType = "yaml"

// Load reads conventions from a .deadfile.yaml in searchDir, falling back to
// defaults for anything unset. A missing config file is not an error.
func Load(searchDir string) (Conventions, error) {
	viperCfg := viper.New()

	defaults := Default()
	viperCfg.SetDefault("root_markers", defaults.RootMarkers)
	viperCfg.SetDefault("source_suffix", defaults.SourceSuffix)
	viperCfg.SetDefault("initializer_name", defaults.InitializerName)
	viperCfg.SetDefault("entrypoint_pattern", defaults.EntrypointPattern)

	viperCfg.SetConfigName(configName)
	viperCfg.SetConfigType(configType)
	viperCfg.AddConfigPath(searchDir)

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return Conventions{}, fmt.Errorf("failed to read config: %w", readErr)
		}
	}

	var conv Conventions
	if err := viperCfg.Unmarshal(&conv); err != nil {
		return Conventions{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := conv.Validate(); err != nil {
		return Conventions{}, fmt.Errorf("invalid config: %w", err)
	}

	return conv, nil
}
