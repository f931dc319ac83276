package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studyztp/nugget/internal/ir"
	"github.com/studyztp/nugget/internal/passes"
)

// PassResult summarizes one executed pass of a session.
type PassResult struct {
	Pass    string   `json:"pass"`
	Summary string   `json:"summary"`
	Skipped []string `json:"skipped,omitempty"`
}

// SessionData is the success payload of the run command.
type SessionData struct {
	Module string       `json:"module"`
	Output string       `json:"output,omitempty"`
	Passes []PassResult `json:"passes"`
	RunID  string       `json:"run_id,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <session.cue>",
		Short: "Run a full instrumentation session",
		Long: `Execute an ordered pipeline of passes over one module, as declared in a
CUE session file:

    session: {
        module: "prog.yaml"
        output: "prog.inst.yaml"
        store:  "runs.db"
        passes: [
            "ir-bb-label-pass<output_csv=bb_info.csv>",
            "phase-analysis-pass<interval_length=100000>",
        ]
    }`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runSession(opts *RootOptions, sessionPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	session, err := LoadSession(sessionPath)
	if err != nil {
		return commandError(formatter, ErrCodeSession, err)
	}
	formatter.VerboseLog("session: module=%s passes=%d", session.Module, len(session.Passes))

	m, err := ir.LoadModule(session.Module)
	if err != nil {
		return commandError(formatter, ErrCodeLoad, err)
	}

	data := SessionData{Module: m.Name}
	for _, invocation := range session.Passes {
		pass, matched, err := passes.Dispatch(invocation)
		if err != nil {
			return commandError(formatter, ErrCodeSession, err)
		}
		if !matched {
			// Inside a session there is no outer pipeline to defer to.
			return commandError(formatter, ErrCodeSession,
				fmt.Errorf("unknown pass invocation %q", invocation))
		}

		formatter.VerboseLog("running %s", pass.Name())
		if err := pass.Run(m); err != nil {
			return passError(formatter, err)
		}
		for _, diag := range pass.Diagnostics() {
			formatter.Warn(diag)
		}
		data.Passes = append(data.Passes, PassResult{
			Pass:    pass.Name(),
			Summary: pass.Summary(),
			Skipped: pass.Diagnostics(),
		})

		if labelPass, ok := pass.(*passes.LabelPass); ok && session.Store != "" {
			runID, err := recordLabelRun(session.Store, m.Name, rawParams(invocation), labelPass)
			if err != nil {
				return commandError(formatter, ErrCodeStore, err)
			}
			data.RunID = runID
			formatter.VerboseLog("recorded run %s in %s", runID, session.Store)
		}
	}

	if session.Output != "" {
		if err := ir.SaveModule(m, session.Output); err != nil {
			return commandError(formatter, ErrCodeWrite, err)
		}
		data.Output = session.Output
	}

	if formatter.Format == "json" {
		return formatter.Success(data)
	}
	for _, r := range data.Passes {
		fmt.Fprintf(formatter.Writer, "✓ %s: %s\n", r.Pass, r.Summary)
	}
	return nil
}

// rawParams extracts the bracketed parameter string from an invocation,
// for provenance recording. Empty for bare invocations.
func rawParams(invocation string) string {
	open := -1
	for i, c := range invocation {
		if c == '<' {
			open = i
			break
		}
	}
	if open < 0 || invocation[len(invocation)-1] != '>' {
		return ""
	}
	return invocation[open+1 : len(invocation)-1]
}
