package passes

import (
	"errors"
	"fmt"

	"github.com/studyztp/nugget/internal/ir"
)

// Pass is a configured whole-module transformation.
type Pass interface {
	// Name returns the pass invocation base name.
	Name() string

	// Run mutates the module in place. A non-nil error is fatal to the
	// whole run.
	Run(m *ir.Module) error

	// Summary describes the last Run for human output.
	Summary() string

	// Diagnostics returns recoverable skip diagnostics from the last Run.
	Diagnostics() []string
}

// passEntry binds an invocation base name and option schema to a pass
// constructor.
type passEntry struct {
	base   string
	schema []Option
	build  func(OptionSet) Pass
}

// registry lists every known pass in dispatch order.
var registry = []passEntry{
	{LabelPassName, LabelPassOptions, func(o OptionSet) Pass { return NewLabelPass(o) }},
	{AnalysisPassName, AnalysisPassOptions, func(o OptionSet) Pass { return NewAnalysisPass(o) }},
	{BoundPassName, BoundPassOptions, func(o OptionSet) Pass { return NewBoundPass(o) }},
}

// Dispatch matches an invocation string (a base name with an optional
// bracketed parameter string) against the registered passes and constructs
// the matching pass with its resolved options.
//
// The second result reports whether any pass claimed the name. An
// unrecognized name returns (nil, false, nil) so an enclosing pipeline can
// pass it through to whatever else handles it; a claimed name with bad
// parameters returns the configuration error.
func Dispatch(invocation string) (Pass, bool, error) {
	for _, e := range registry {
		opts, err := MatchParamPass(invocation, e.base, e.schema)
		if err != nil {
			if errors.Is(err, ErrNameMismatch) {
				continue
			}
			return nil, true, fmt.Errorf("%s: %w", e.base, err)
		}
		return e.build(opts), true, nil
	}
	return nil, false, nil
}

// Build constructs the named pass directly from a raw parameter string,
// bypassing invocation-name matching. Used by callers that already know
// which pass they want, like the per-pass CLI commands.
func Build(base, params string) (Pass, error) {
	for _, e := range registry {
		if e.base != base {
			continue
		}
		opts, err := ParseOptions(params, e.schema)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", base, err)
		}
		return e.build(opts), nil
	}
	return nil, fmt.Errorf("unknown pass %q", base)
}
