package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/drawspec/pkg/errors"
	"github.com/matzehuels/drawspec/pkg/pipeline"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var flags compileFlags

	cmd := &cobra.Command{
		Use:   "validate [files...]",
		Short: "Check diagram documents without writing output",
		Long: `Check diagram documents without writing output.

Each document is decoded and compiled. Fatal errors are reported with their
error code; recoverable style fallbacks are listed as warnings.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(cmd, c.Config)
			opts.NoCache = true
			opts.Logger = loggerFromContext(cmd.Context())

			var failed int
			for _, path := range args {
				data, format, err := readInput(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				o := opts
				o.DocFormat = format
				s, err := pipeline.Compile(data, o)
				if err != nil {
					failed++
					printError("%s: %s", path, errorLine(err))
					continue
				}
				if len(s.Warnings) == 0 {
					printSuccess("%s", path)
					continue
				}
				printWarning("%s: %d warnings", path, len(s.Warnings))
				printWarnings(s.Warnings)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d documents invalid", failed, len(args))
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

// errorLine formats an error as "CODE message" when it carries a code.
func errorLine(err error) string {
	if code := errors.GetCode(err); code != "" {
		return fmt.Sprintf("%s %s", StyleWarning.Render(string(code)), errors.UserMessage(err))
	}
	return err.Error()
}
