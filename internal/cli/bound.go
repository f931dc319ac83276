package cli

import (
	"github.com/spf13/cobra"

	"github.com/studyztp/nugget/internal/passes"
)

// BoundOptions holds flags for the bound command.
type BoundOptions struct {
	*RootOptions
	Params string
	Output string
}

// NewBoundCommand creates the bound command.
func NewBoundCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BoundOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "bound <module.yaml>",
		Short: "Mark the warmup/start/end phase-boundary blocks",
		Long: `Locate the configured warmup, start, and end marker blocks by their
stable IDs and insert the corresponding marker-hook calls (or, with
label_only=true, structural asm markers), then report the trigger
counts through the init hook in the ROI entry function.

A warmup_marker_count of 0 requests no warmup marker.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, err := passes.Build(passes.BoundPassName, opts.Params)
			if err != nil {
				return commandError(newFormatter(rootOpts, cmd), ErrCodePass, err)
			}
			return runTransform(rootOpts, pass, args[0], opts.Output, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Params, "params", "p", "",
		`pass parameters: warmup_marker_bb_id, warmup_marker_count, start_marker_bb_id, start_marker_count, end_marker_bb_id, end_marker_count[, label_only]`)
	cmd.Flags().StringVarP(&opts.Output, "out", "o", "", "write the instrumented module to this path")

	return cmd
}
