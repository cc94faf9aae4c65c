package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	dsio "github.com/matzehuels/drawspec/pkg/io"
	"github.com/matzehuels/drawspec/pkg/pipeline"
)

// compileCommand creates the compile command.
func (c *CLI) compileCommand() *cobra.Command {
	var (
		flags  compileFlags
		output string
		jobs   int
	)

	cmd := &cobra.Command{
		Use:   "compile [files...]",
		Short: "Compile diagram documents into scene JSON",
		Long: `Compile diagram documents into scene JSON.

Each document (JSON schema v1 or v2, or TOML) is compiled into the ordered
list of primitive drawing operations and written next to the input as
<name>.scene.json. With a single input, --output selects the file ("-" for
stdout). Several inputs are compiled in parallel.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "" && len(args) > 1 {
				return fmt.Errorf("--output requires a single input")
			}
			opts := flags.options(cmd, c.Config)
			return c.runCompile(cmd.Context(), args, opts, output, jobs, flags.noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file for a single input (\"-\" for stdout)")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", pipeline.DefaultConcurrency, "documents compiled in parallel")

	return cmd
}

func (c *CLI) runCompile(ctx context.Context, inputs []string, opts pipeline.Options, output string, jobs int, noCache bool) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = logger

	batch := make([]pipeline.Input, 0, len(inputs))
	for _, path := range inputs {
		data, format, err := readInput(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		batch = append(batch, pipeline.Input{Name: path, Data: data, Format: format})
	}

	prog := newProgress(logger)
	results, err := runner.CompileAll(ctx, batch, opts, jobs)
	if err != nil {
		return err
	}

	var failed int
	for _, res := range results {
		if res.Err != nil {
			failed++
			printError("%s: %v", res.Name, res.Err)
			continue
		}
		path := output
		if path == "" {
			path = basePath("", res.Name) + sceneExt
		}
		if err := writeScene(res, path); err != nil {
			return err
		}
		printSuccess("Compiled %s", res.Name)
		printStats(len(res.Scene.Shapes()), len(res.Scene.Ops), len(res.Scene.Warnings), false)
		printWarnings(res.Scene.Warnings)
		if path != "-" {
			printFile(path)
		}
	}
	prog.done(fmt.Sprintf("Compiled %d of %d documents", len(results)-failed, len(results)))

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(results))
	}
	return nil
}

func writeScene(res pipeline.BatchResult, path string) error {
	if path == "-" {
		return dsio.WriteScene(res.Scene, os.Stdout)
	}
	if err := dsio.ExportScene(res.Scene, path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
