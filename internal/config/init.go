package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/temirov/sizetree/internal/types"
	"github.com/temirov/sizetree/internal/utils"
)

// InitTarget identifies where configuration should be initialized.
type InitTarget string

const (
	// InitTargetLocal writes .sizetree.yaml into the working directory.
	InitTargetLocal InitTarget = "local"
	// InitTargetGlobal writes config.yaml into ~/.sizetree.
	InitTargetGlobal InitTarget = "global"

	configurationFileMode      = 0o600
	configurationDirectoryMode = 0o755

	defaultConfigurationTemplateFormat = `tree:
  max_depth: %d
  max_children: %d
  show_sizes: false
  iterate_all: false
  format: %s
  color: false
  clipboard: false
  exclude: []
`
)

// InitOptions controls how configuration initialization behaves.
type InitOptions struct {
	Target           InitTarget
	Force            bool
	WorkingDirectory string
}

// DefaultConfigurationTemplate returns the YAML written by InitializeConfiguration.
func DefaultConfigurationTemplate() string {
	return fmt.Sprintf(defaultConfigurationTemplateFormat, types.DefaultMaxDepth, types.DefaultMaxChildren, types.FormatRaw)
}

// InitializeConfiguration writes the default configuration to the requested target
// and returns the path it wrote. An existing file is only replaced when Force is set.
func InitializeConfiguration(options InitOptions) (string, error) {
	destinationPath, resolveErr := resolveInitDestination(options)
	if resolveErr != nil {
		return "", resolveErr
	}

	openFlags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !options.Force {
		openFlags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	// #nosec G304
	fileHandle, openErr := os.OpenFile(destinationPath, openFlags, configurationFileMode)
	if openErr != nil {
		if errors.Is(openErr, fs.ErrExist) {
			return "", fmt.Errorf("configuration file already exists at %s", destinationPath)
		}
		return "", fmt.Errorf("open configuration %s: %w", destinationPath, openErr)
	}
	if _, writeErr := fileHandle.WriteString(DefaultConfigurationTemplate()); writeErr != nil {
		_ = fileHandle.Close()
		return "", fmt.Errorf("write configuration to %s: %w", destinationPath, writeErr)
	}
	if closeErr := fileHandle.Close(); closeErr != nil {
		return "", fmt.Errorf("close configuration %s: %w", destinationPath, closeErr)
	}
	return destinationPath, nil
}

func resolveInitDestination(options InitOptions) (string, error) {
	switch options.Target {
	case "", InitTargetLocal:
		workingDirectory := options.WorkingDirectory
		if workingDirectory == "" {
			current, err := os.Getwd()
			if err != nil {
				return "", fmt.Errorf("determine working directory for configuration: %w", err)
			}
			workingDirectory = current
		}
		return filepath.Join(workingDirectory, utils.ConfigFileName), nil
	case InitTargetGlobal:
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory for configuration: %w", err)
		}
		configurationDirectory := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName)
		if err := os.MkdirAll(configurationDirectory, configurationDirectoryMode); err != nil {
			return "", fmt.Errorf("create configuration directory %s: %w", configurationDirectory, err)
		}
		return filepath.Join(configurationDirectory, utils.GlobalConfigFileName), nil
	default:
		return "", fmt.Errorf("unsupported init target %q", options.Target)
	}
}
