// Package config loads sizetree defaults from global and local YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/sizetree/internal/types"
	"github.com/temirov/sizetree/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds command defaults read from configuration files.
type ApplicationConfiguration struct {
	Tree TreeConfiguration `mapstructure:"tree"`
}

// TreeConfiguration defines render defaults. Nil fields were not set by any file.
type TreeConfiguration struct {
	MaxDepth    *int     `mapstructure:"max_depth"`
	MaxChildren *int     `mapstructure:"max_children"`
	ShowSizes   *bool    `mapstructure:"show_sizes"`
	IterateAll  *bool    `mapstructure:"iterate_all"`
	Format      string   `mapstructure:"format"`
	Color       *bool    `mapstructure:"color"`
	Clipboard   *bool    `mapstructure:"clipboard"`
	Exclude     []string `mapstructure:"exclude"`
}

// LoadApplicationConfiguration loads configuration from global and local files.
// The local file, or the explicit file when one is given, overrides the global one.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	localConfig, loadErr := loadConfigurationFromPath(localPath)
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	merged = merged.Merge(localConfig)

	merged.Tree.Exclude = utils.DeduplicatePatterns(merged.Tree.Exclude)

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) string {
	if explicitPath == "" {
		return filepath.Join(workingDirectory, utils.ConfigFileName)
	}
	if filepath.IsAbs(explicitPath) {
		return explicitPath
	}
	return filepath.Join(workingDirectory, explicitPath)
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType("yaml")
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	result.Tree = result.Tree.merge(override.Tree)
	return result
}

func (config TreeConfiguration) merge(override TreeConfiguration) TreeConfiguration {
	result := config
	if override.MaxDepth != nil {
		result.MaxDepth = cloneInt(override.MaxDepth)
	}
	if override.MaxChildren != nil {
		result.MaxChildren = cloneInt(override.MaxChildren)
	}
	if override.ShowSizes != nil {
		result.ShowSizes = cloneBool(override.ShowSizes)
	}
	if override.IterateAll != nil {
		result.IterateAll = cloneBool(override.IterateAll)
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != nil {
		result.Color = cloneBool(override.Color)
	}
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	if len(override.Exclude) > 0 {
		result.Exclude = append([]string{}, utils.DeduplicatePatterns(override.Exclude)...)
	}
	return result
}

// RenderConfig applies the configured values on top of base.
// Negative limits are ignored so the renderer only ever receives valid values.
func (config TreeConfiguration) RenderConfig(base types.RenderConfig) types.RenderConfig {
	result := base
	if config.MaxDepth != nil && *config.MaxDepth >= 0 {
		result.MaxDepth = *config.MaxDepth
	}
	if config.MaxChildren != nil && *config.MaxChildren >= 0 {
		result.MaxChildren = *config.MaxChildren
	}
	if config.ShowSizes != nil {
		result.ShowSizes = *config.ShowSizes
	}
	if config.IterateAll != nil {
		result.ForceComplete = *config.IterateAll
	}
	if len(config.Exclude) > 0 {
		result.ExcludePatterns = append([]string{}, config.Exclude...)
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
