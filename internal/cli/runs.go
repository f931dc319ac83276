package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studyztp/nugget/internal/store"
)

// RunsData is the success payload of the runs command.
type RunsData struct {
	Runs []store.LabelRun `json:"runs"`
}

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs <runs.db>",
		Short: "List recorded labeling runs",
		Long: `List every labeling run recorded in a provenance store, oldest first,
with its module name, pass parameters, and totals.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRuns(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runRuns(opts *RootOptions, storePath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	s, err := store.Open(storePath)
	if err != nil {
		return commandError(formatter, ErrCodeStore, err)
	}
	defer s.Close()

	runs, err := s.ListLabelRuns(context.Background())
	if err != nil {
		return commandError(formatter, ErrCodeStore, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(RunsData{Runs: runs})
	}
	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "no recorded runs")
		return nil
	}
	for _, run := range runs {
		params := run.Params
		if params == "" {
			params = "(defaults)"
		}
		fmt.Fprintf(formatter.Writer, "%s  module=%s functions=%d blocks=%d params=%s\n",
			run.ID, run.ModuleName, run.FunctionCount, run.BlockCount, params)
	}
	return nil
}
