// Package cli implements the drawspec command-line interface.
//
// # Commands
//
//   - compile: Compile diagram documents into scene JSON (primitive ops)
//   - render: Compile and render to SVG, PNG, PDF, DOT or JSON
//   - validate: Check documents and report style fallbacks
//   - inspect: Browse the compiled op stream interactively
//   - serve: Run the HTTP API
//   - cache: Manage the local scene and artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/drawspec/pkg/buildinfo"
	"github.com/matzehuels/drawspec/pkg/cache"
	"github.com/matzehuels/drawspec/pkg/config"
	dsio "github.com/matzehuels/drawspec/pkg/io"
	"github.com/matzehuels/drawspec/pkg/pipeline"
	"github.com/matzehuels/drawspec/pkg/render/sink"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "drawspec"

// sceneExt is appended to the input base name for compiled scenes.
const sceneExt = ".scene.json"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
	errOut     io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
		errOut: w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "drawspec compiles diagram documents into drawing operations",
		Long:         `drawspec compiles declarative diagram documents (shapes, connectors, mixed units and coordinate conventions) into an ordered stream of primitive drawing operations, and renders that stream to SVG, PNG, PDF or Graphviz.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/drawspec/config.toml)")

	root.AddCommand(c.compileCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	var ch cache.Cache = cache.NewNullCache()
	if !noCache {
		var err error
		if ch, err = c.Config.OpenCache(ctx); err != nil {
			return nil, err
		}
	}
	runner := pipeline.NewRunner(ch, nil, c.Logger)
	if ttl, err := c.Config.TTL(); err == nil {
		runner.TTL = ttl
	}
	return runner, nil
}

// cacheDir returns the configured file cache directory or the user
// cache default.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cache.DefaultDir()
}

// =============================================================================
// Compile Flags
// =============================================================================

// compileFlags are the compile overrides shared by several commands.
type compileFlags struct {
	margin  float64
	autoFit bool
	anchor  string
	yAxis   string
	noCache bool
}

func (f *compileFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.margin, "margin", 0, "auto-fit margin in inches (default: document or 0.5)")
	cmd.Flags().BoolVar(&f.autoFit, "auto-fit", false, "fit the canvas to the shapes (default: per schema)")
	cmd.Flags().StringVar(&f.anchor, "anchor", "", "coordinate anchor: top-left, center")
	cmd.Flags().StringVar(&f.yAxis, "y-axis", "", "y axis direction: down, up")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	_ = cmd.RegisterFlagCompletionFunc("anchor", completeFixed("top-left", "center"))
	_ = cmd.RegisterFlagCompletionFunc("y-axis", completeFixed("down", "up"))
}

// options starts from the config file and applies explicitly set flags.
func (f *compileFlags) options(cmd *cobra.Command, cfg config.Config) pipeline.Options {
	opts := cfg.PipelineOptions()
	if cmd.Flags().Changed("margin") {
		m := f.margin
		opts.Margin = &m
	}
	if cmd.Flags().Changed("auto-fit") {
		a := f.autoFit
		opts.AutoFit = &a
	}
	if f.anchor != "" {
		opts.Anchor = f.anchor
	}
	if f.yAxis != "" {
		opts.YAxis = f.yAxis
	}
	opts.NoCache = f.noCache
	return opts
}

// =============================================================================
// Input / Output Helpers
// =============================================================================

// readInput reads a document file, or stdin for "-".
func readInput(path string) ([]byte, dsio.Format, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return data, dsio.FormatJSON, err
	}
	format, err := dsio.FormatFromPath(path)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	return data, format, nil
}

// parseFormats parses a comma-separated format string into a slice.
// An empty string yields nil so the config file or pipeline default applies.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		if input == "-" {
			return appName
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	for _, f := range sink.Formats {
		if ext == f {
			return strings.TrimSuffix(output, filepath.Ext(output))
		}
	}
	return output
}

// outputPath returns the file for one format. A single format written to
// an explicit output path uses it verbatim.
func outputPath(output, input, format string, single bool) string {
	if single && output != "" {
		return output
	}
	return basePath(output, input) + "." + format
}
