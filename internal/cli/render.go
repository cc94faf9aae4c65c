package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/drawspec/pkg/pipeline"
)

// renderCommand creates the render command: compile then render in one step.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags      compileFlags
		formatsStr string
		output     string
		scale      float64
		title      bool
		rsvg       bool
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a diagram document to SVG, PNG, PDF or DOT",
		Long: `Render a diagram document.

The document is compiled and the resulting op stream is replayed into each
requested format. PDF output (and PNG with --rsvg) needs rsvg-convert on the
PATH. Compiled scenes and rendered artifacts are cached locally.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(cmd, c.Config)
			if formats := parseFormats(formatsStr); formats != nil {
				opts.Formats = formats
			}
			if cmd.Flags().Changed("scale") {
				opts.Scale = scale
			}
			opts.Title = title
			opts.RSVG = opts.RSVG || rsvg
			if err := opts.ValidateForRender(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, flags.noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot, json (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().Float64Var(&scale, "scale", 0, "raster scale (png default 2)")
	cmd.Flags().BoolVar(&title, "title", false, "embed the page name as SVG title")
	cmd.Flags().BoolVar(&rsvg, "rsvg", false, "rasterize PNG with rsvg-convert")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	logger := loggerFromContext(ctx)

	data, format, err := readInput(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}
	opts.DocFormat = format
	opts.Logger = logger

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, c.errOut, fmt.Sprintf("Rendering %s...", input))
	spinner.Start()

	result, err := runner.Execute(ctx, data, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	printSuccess("Rendered %s", input)
	printStats(result.Stats.Shapes, result.Stats.Ops, result.Stats.Warnings, result.CacheInfo.CompileHit && result.CacheInfo.RenderHit)
	printWarnings(result.Scene.Warnings)

	single := len(opts.Formats) == 1
	for _, f := range opts.Formats {
		path := outputPath(output, input, f, single)
		if err := os.WriteFile(path, result.Artifacts[f], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}
