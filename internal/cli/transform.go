package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studyztp/nugget/internal/ir"
	"github.com/studyztp/nugget/internal/passes"
)

// newFormatter builds the output formatter for a command invocation.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// commandError reports a command-level problem (bad input, bad
// configuration, store or write failure) and maps it to exit code 2.
func commandError(f *OutputFormatter, code string, err error) error {
	f.Error(code, err.Error())
	return WrapExitError(ExitCommandError, code, err)
}

// passError reports a fatal transformation error and maps it to exit
// code 1.
func passError(f *OutputFormatter, err error) error {
	f.Error(ErrCodePass, err.Error())
	return WrapExitError(ExitFailure, ErrCodePass, err)
}

// TransformData is the success payload of the analyze and bound commands.
type TransformData struct {
	Module  string   `json:"module"`
	Summary string   `json:"summary"`
	Skipped []string `json:"skipped,omitempty"`
	Output  string   `json:"output,omitempty"`
}

// runTransform loads a module, runs one instrumentation pass over it,
// reports skip diagnostics, and optionally saves the transformed module.
// Shared by the analyze and bound commands.
func runTransform(opts *RootOptions, pass passes.Pass, modulePath, outPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	m, err := ir.LoadModule(modulePath)
	if err != nil {
		return commandError(formatter, ErrCodeLoad, err)
	}
	formatter.VerboseLog("loaded module %s (%d function(s))", m.Name, len(m.Functions))

	if err := pass.Run(m); err != nil {
		return passError(formatter, err)
	}
	for _, diag := range pass.Diagnostics() {
		formatter.Warn(diag)
	}

	data := TransformData{
		Module:  m.Name,
		Summary: pass.Summary(),
		Skipped: pass.Diagnostics(),
	}
	if outPath != "" {
		if err := ir.SaveModule(m, outPath); err != nil {
			return commandError(formatter, ErrCodeWrite, err)
		}
		data.Output = outPath
	}

	if formatter.Format == "json" {
		return formatter.Success(data)
	}
	return formatter.Success(fmt.Sprintf("✓ %s", pass.Summary()))
}
