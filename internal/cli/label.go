package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studyztp/nugget/internal/ir"
	"github.com/studyztp/nugget/internal/passes"
	"github.com/studyztp/nugget/internal/store"
)

// runIDGen generates provenance run identifiers. Package-level so tests
// can substitute a store.FixedGenerator.
var runIDGen store.RunIDGenerator = store.UUIDv7Generator{}

// LabelOptions holds flags for the label command.
type LabelOptions struct {
	*RootOptions
	Params    string // raw pass parameter string
	Output    string // labeled module output path
	StorePath string // optional provenance store
}

// LabelData is the success payload of the label command.
type LabelData struct {
	Module string `json:"module"`
	Blocks int    `json:"blocks"`
	Table  string `json:"table"`
	Output string `json:"output,omitempty"`
	RunID  string `json:"run_id,omitempty"`
}

// NewLabelCommand creates the label command.
func NewLabelCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LabelOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "label <module.yaml>",
		Short: "Assign stable IDs to every basic block",
		Long: `Assign a dense, module-global ID to every basic block, attach it as
metadata on the block's terminator, and write the descriptive CSV table.

The module is transformed in memory; pass --out to save the labeled
module for the downstream instrumentation passes.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLabel(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Params, "params", "p", "", `pass parameters, e.g. "output_csv=bb_info.csv"`)
	cmd.Flags().StringVarP(&opts.Output, "out", "o", "", "write the labeled module to this path")
	cmd.Flags().StringVar(&opts.StorePath, "store", "", "record the run in this provenance store")

	return cmd
}

func runLabel(opts *LabelOptions, modulePath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	pass, err := passes.Build(passes.LabelPassName, opts.Params)
	if err != nil {
		return commandError(formatter, ErrCodePass, err)
	}
	labelPass := pass.(*passes.LabelPass)

	m, err := ir.LoadModule(modulePath)
	if err != nil {
		return commandError(formatter, ErrCodeLoad, err)
	}
	formatter.VerboseLog("loaded module %s (%d function(s))", m.Name, len(m.Functions))

	if err := labelPass.Run(m); err != nil {
		return passError(formatter, err)
	}

	data := LabelData{
		Module: m.Name,
		Blocks: len(labelPass.Records()),
		Table:  labelPass.Summary(),
	}

	if opts.StorePath != "" {
		runID, err := recordLabelRun(opts.StorePath, m.Name, opts.Params, labelPass)
		if err != nil {
			return commandError(formatter, ErrCodeStore, err)
		}
		data.RunID = runID
		formatter.VerboseLog("recorded run %s in %s", runID, opts.StorePath)
	}

	if opts.Output != "" {
		if err := ir.SaveModule(m, opts.Output); err != nil {
			return commandError(formatter, ErrCodeWrite, err)
		}
		data.Output = opts.Output
	}

	if formatter.Format == "json" {
		return formatter.Success(data)
	}
	return formatter.Success(fmt.Sprintf("✓ %s", labelPass.Summary()))
}

// recordLabelRun writes the run and its records to the provenance store.
func recordLabelRun(path, moduleName, params string, p *passes.LabelPass) (string, error) {
	s, err := store.Open(path)
	if err != nil {
		return "", err
	}
	defer s.Close()

	records := p.Records()
	functions := 0
	if n := len(records); n > 0 {
		functions = int(records[n-1].FunctionID) + 1
	}

	run := store.LabelRun{
		ID:            runIDGen.Generate(),
		ModuleName:    moduleName,
		Params:        params,
		FunctionCount: functions,
		BlockCount:    len(records),
	}
	if err := s.WriteLabelRun(context.Background(), run, records); err != nil {
		return "", err
	}
	return run.ID, nil
}
