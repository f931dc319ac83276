package cli

import (
	"github.com/spf13/cobra"

	"github.com/studyztp/nugget/internal/passes"
)

// AnalyzeOptions holds flags for the analyze command.
type AnalyzeOptions struct {
	*RootOptions
	Params string
	Output string
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AnalyzeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "analyze <module.yaml>",
		Short: "Insert the per-block sampling hook into a labeled module",
		Long: `Insert a sampling-hook call before the terminator of every block that
carries identity metadata, then report the instrumented-block total
through the init hook in the ROI entry function.

Run label first: blocks without identity metadata are skipped.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, err := passes.Build(passes.AnalysisPassName, opts.Params)
			if err != nil {
				return commandError(newFormatter(rootOpts, cmd), ErrCodePass, err)
			}
			return runTransform(rootOpts, pass, args[0], opts.Output, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Params, "params", "p", "", `pass parameters, e.g. "interval_length=100000"`)
	cmd.Flags().StringVarP(&opts.Output, "out", "o", "", "write the instrumented module to this path")

	return cmd
}
