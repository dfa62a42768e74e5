// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/sizetree/internal/commands"
	"github.com/temirov/sizetree/internal/config"
	"github.com/temirov/sizetree/internal/output"
	"github.com/temirov/sizetree/internal/services/clipboard"
	"github.com/temirov/sizetree/internal/types"
	"github.com/temirov/sizetree/internal/utils"
)

const (
	levelFlagName      = "level"
	levelFlagShorthand = "l"
	degreeFlagName     = "degree"
	degreeShorthand    = "d"
	pathFlagName       = "path"
	pathFlagShorthand  = "p"
	statFlagName       = "stat"
	iterateAllFlagName = "iterate-all"
	formatFlagName     = "format"
	colorFlagName      = "color"
	copyFlagName       = "copy"
	excludeFlagName    = "exclude"
	excludeShorthand   = "e"
	configFlagName     = "config"
	verboseFlagName    = "verbose"
	versionFlagName    = "version"
	globalFlagName     = "global"
	forceFlagName      = "force"

	rootUse              = "sizetree [path]"
	rootShortDescription = "render a directory tree with sizes"
	rootLongDescription  = `sizetree renders a directory subtree as an indented listing.
Use --level to bound recursion depth and --degree to bound the entries shown per directory.
Use --stat to annotate every entry with its aggregated size and --iterate-all to keep
counting sizes past the truncation points.`
	rootUsageExample = `  # Show sizes two levels deep
  sizetree --stat -l 2 ./src

  # Count every byte even when listings are truncated
  sizetree --stat --iterate-all -d 5 ~

  # Emit the rendered tree as JSON
  sizetree --format json .`

	initUse              = "init"
	initShortDescription = "write a default configuration file"

	levelFlagDescription      = "set max level of the tree"
	degreeFlagDescription     = "set max degree of the tree"
	pathFlagDescription       = "set start path"
	statFlagDescription       = "show a brief status of items"
	iterateAllFlagDescription = "seek all of items even if the limit has exceeded"
	formatFlagDescription     = "output format (raw, json, xml)"
	colorFlagDescription      = "colorize truncation and permission markers"
	copyFlagDescription       = "copy the rendered tree to the clipboard"
	excludeFlagDescription    = "exclude path pattern"
	configFlagDescription     = "configuration file to use instead of " + utils.ConfigFileName
	verboseFlagDescription    = "log the effective configuration"
	versionFlagDescription    = "display application version"
	globalFlagDescription     = "write the configuration into the home directory"
	forceFlagDescription      = "overwrite an existing configuration file"

	versionTemplate             = "sizetree version: %s\n"
	initWrittenTemplate         = "configuration written to %s\n"
	invalidFormatMessage        = "Invalid format value '%s'"
	invalidIntegerFlagFormat    = "Max %s of the tree must be an integer (got %s)"
	clipboardFailureMessage     = "failed to copy tree to clipboard"
	renderStartedMessage        = "rendering tree"
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	// errorAbsolutePathFormat reports failure to resolve an absolute path.
	errorAbsolutePathFormat = "abs failed for '%s': %w"
	// errorPathMissingFormat reports a missing path.
	errorPathMissingFormat = "path '%s' does not exist"
	// errorStatFormat reports failure to retrieve file statistics.
	errorStatFormat = "stat failed for '%s': %w"
	// errorNotDirectoryFormat reports a root path that is not a directory.
	errorNotDirectoryFormat = "path '%s' is not a directory"
)

// Dependencies are the collaborators the CLI needs from its host process.
type Dependencies struct {
	Logger           *zap.Logger
	LogLevel         *zap.AtomicLevel
	Clipboard        clipboard.Copier
	WorkingDirectory string
}

// Execute runs the sizetree application with the process arguments.
func Execute(logger *zap.Logger, logLevel zap.AtomicLevel) error {
	rootCommand := NewRootCommand(Dependencies{
		Logger:    logger,
		LogLevel:  &logLevel,
		Clipboard: clipboard.NewService(),
	})
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// treeOptions stores the raw flag values of the root command.
type treeOptions struct {
	maxDepth        int
	maxChildren     int
	startPath       string
	showSizes       bool
	iterateAll      bool
	format          string
	colorize        bool
	copyToClipboard bool
	exclusions      []string
	configPath      string
	verbose         bool
	showVersion     bool

	maxDepthValue    *fallbackIntFlagValue
	maxChildrenValue *fallbackIntFlagValue
}

// NewRootCommand builds the root Cobra command.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	var options treeOptions

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if options.verbose && dependencies.LogLevel != nil {
				dependencies.LogLevel.SetLevel(zap.DebugLevel)
			}
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				_, err := fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return err
			}
			return runTree(command, dependencies, options, arguments)
		},
	}

	reportInvalidInteger := func(flagKey string, input string) {
		dependencies.Logger.Warn(fmt.Sprintf(invalidIntegerFlagFormat, flagKey, input))
	}

	flagSet := rootCommand.Flags()
	options.maxDepthValue = registerFallbackIntFlag(flagSet, &options.maxDepth, levelFlagName, levelFlagShorthand, types.DefaultMaxDepth, levelFlagDescription, reportInvalidInteger)
	options.maxChildrenValue = registerFallbackIntFlag(flagSet, &options.maxChildren, degreeFlagName, degreeShorthand, types.DefaultMaxChildren, degreeFlagDescription, reportInvalidInteger)
	flagSet.StringVarP(&options.startPath, pathFlagName, pathFlagShorthand, "", pathFlagDescription)
	registerBooleanFlag(flagSet, &options.showSizes, statFlagName, false, statFlagDescription)
	registerBooleanFlag(flagSet, &options.iterateAll, iterateAllFlagName, false, iterateAllFlagDescription)
	flagSet.StringVar(&options.format, formatFlagName, types.FormatRaw, formatFlagDescription)
	registerBooleanFlag(flagSet, &options.colorize, colorFlagName, false, colorFlagDescription)
	registerBooleanFlag(flagSet, &options.copyToClipboard, copyFlagName, false, copyFlagDescription)
	flagSet.StringArrayVarP(&options.exclusions, excludeFlagName, excludeShorthand, nil, excludeFlagDescription)
	flagSet.StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	flagSet.BoolVar(&options.showVersion, versionFlagName, false, versionFlagDescription)
	registerBooleanFlag(rootCommand.PersistentFlags(), &options.verbose, verboseFlagName, false, verboseFlagDescription)

	rootCommand.AddCommand(createInitCommand(dependencies))
	return rootCommand
}

// createInitCommand returns the init subcommand.
func createInitCommand(dependencies Dependencies) *cobra.Command {
	var global bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			writtenPath, initErr := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            force,
				WorkingDirectory: dependencies.WorkingDirectory,
			})
			if initErr != nil {
				return initErr
			}
			_, err := fmt.Fprintf(command.OutOrStdout(), initWrittenTemplate, writtenPath)
			return err
		},
	}
	registerBooleanFlag(initCommand.Flags(), &global, globalFlagName, false, globalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &force, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// runTree resolves the effective configuration, renders the tree and writes it.
func runTree(command *cobra.Command, dependencies Dependencies, options treeOptions, arguments []string) error {
	workingDirectory := dependencies.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: options.configPath,
	})
	if configurationError != nil {
		return configurationError
	}
	treeConfiguration := applicationConfiguration.Tree
	renderConfiguration := treeConfiguration.RenderConfig(types.DefaultRenderConfig())

	flagSet := command.Flags()
	if maxDepth, explicit := options.maxDepthValue.Value(); explicit {
		renderConfiguration.MaxDepth = maxDepth
	}
	if maxChildren, explicit := options.maxChildrenValue.Value(); explicit {
		renderConfiguration.MaxChildren = maxChildren
	}
	if flagSet.Changed(statFlagName) {
		renderConfiguration.ShowSizes = options.showSizes
	}
	if flagSet.Changed(iterateAllFlagName) {
		renderConfiguration.ForceComplete = options.iterateAll
	}
	for _, pattern := range options.exclusions {
		trimmedPattern := strings.TrimSpace(pattern)
		if trimmedPattern != "" && !utils.ContainsString(renderConfiguration.ExcludePatterns, trimmedPattern) {
			renderConfiguration.ExcludePatterns = append(renderConfiguration.ExcludePatterns, trimmedPattern)
		}
	}

	format := types.FormatRaw
	if treeConfiguration.Format != "" {
		format = treeConfiguration.Format
	}
	if flagSet.Changed(formatFlagName) {
		format = options.format
	}
	format = strings.ToLower(format)
	if !output.IsSupportedFormat(format) {
		return fmt.Errorf(invalidFormatMessage, format)
	}
	colorize := resolveBoolean(flagSet.Changed(colorFlagName), options.colorize, treeConfiguration.Color)
	copyToClipboard := resolveBoolean(flagSet.Changed(copyFlagName), options.copyToClipboard, treeConfiguration.Clipboard)

	inputPath := types.DefaultRootPath
	if len(arguments) > 0 {
		inputPath = arguments[0]
	}
	if options.startPath != "" {
		inputPath = options.startPath
	}
	if !filepath.IsAbs(inputPath) {
		inputPath = filepath.Join(workingDirectory, inputPath)
	}
	rootPath, pathError := resolveAndValidatePath(inputPath)
	if pathError != nil {
		return pathError
	}

	dependencies.Logger.Debug(renderStartedMessage,
		zap.String("root", rootPath.AbsolutePath),
		zap.Int("maxDepth", renderConfiguration.MaxDepth),
		zap.Int("maxChildren", renderConfiguration.MaxChildren),
		zap.Bool("showSizes", renderConfiguration.ShowSizes),
		zap.Bool("forceComplete", renderConfiguration.ForceComplete),
		zap.Strings("exclude", renderConfiguration.ExcludePatterns),
		zap.String("format", format),
	)

	result, renderError := commands.NewTreeRenderer(renderConfiguration).Render(rootPath.AbsolutePath)
	if renderError != nil {
		return renderError
	}

	renderer, rendererError := output.NewRenderer(format, colorize)
	if rendererError != nil {
		return rendererError
	}
	if writeError := renderer.Render(command.OutOrStdout(), rootPath.AbsolutePath, result); writeError != nil {
		return writeError
	}

	if copyToClipboard && dependencies.Clipboard != nil {
		if copyError := dependencies.Clipboard.Copy(output.FormatRaw(result)); copyError != nil {
			dependencies.Logger.Warn(clipboardFailureMessage, zap.Error(copyError))
		}
	}
	return nil
}

// resolveBoolean picks the flag value when it was set explicitly, then the configured value.
func resolveBoolean(flagChanged bool, flagValue bool, configured *bool) bool {
	if flagChanged {
		return flagValue
	}
	if configured != nil {
		return *configured
	}
	return false
}

// resolveAndValidatePath converts the input path to absolute form and checks it is an existing directory.
func resolveAndValidatePath(inputPath string) (types.ValidatedPath, error) {
	absolutePath, absolutePathError := filepath.Abs(inputPath)
	if absolutePathError != nil {
		return types.ValidatedPath{}, fmt.Errorf(errorAbsolutePathFormat, inputPath, absolutePathError)
	}
	cleanPath := filepath.Clean(absolutePath)
	info, fileStatusError := os.Stat(cleanPath)
	if fileStatusError != nil {
		if os.IsNotExist(fileStatusError) {
			return types.ValidatedPath{}, fmt.Errorf(errorPathMissingFormat, inputPath)
		}
		return types.ValidatedPath{}, fmt.Errorf(errorStatFormat, inputPath, fileStatusError)
	}
	if !info.IsDir() {
		return types.ValidatedPath{}, fmt.Errorf(errorNotDirectoryFormat, inputPath)
	}
	return types.ValidatedPath{AbsolutePath: cleanPath, IsDir: true}, nil
}
