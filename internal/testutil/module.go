// Package testutil provides IR module builders shared by pass, store, and
// CLI tests.
//
// Builders produce small, deterministic modules so tests can assert exact
// block IDs, record rows, and inserted instructions. All helpers return
// fresh values on every call; mutating one test's module never affects
// another's.
package testutil

import "github.com/studyztp/nugget/internal/ir"

// Block builds a block with n plain instructions followed by a terminator
// of the given opcode, n+1 instructions in total.
func Block(name string, n int, term string) *ir.Block {
	b := &ir.Block{Name: name}
	for i := 0; i < n; i++ {
		b.Instructions = append(b.Instructions, &ir.Instruction{Op: "add"})
	}
	b.Instructions = append(b.Instructions, &ir.Instruction{Op: term})
	return b
}

// Func builds a defined function from the given blocks.
func Func(name string, blocks ...*ir.Block) *ir.Function {
	return &ir.Function{Name: name, Blocks: blocks}
}

// Decl builds a bodyless function declaration.
func Decl(name string) *ir.Function {
	return &ir.Function{Name: name, Declaration: true}
}

// ROIBegin builds the region-of-interest entry function with a single exit
// block, the shape the instrumentation passes require.
func ROIBegin() *ir.Function {
	return &ir.Function{
		Name: "nugget_roi_begin_",
		Blocks: []*ir.Block{
			{Instructions: []*ir.Instruction{{Op: "ret"}}},
		},
	}
}

// Module builds a module from the given functions.
func Module(name string, fns ...*ir.Function) *ir.Module {
	return &ir.Module{Name: name, Functions: fns}
}

// HookDecls returns declarations for every runtime hook the passes call
// into. Tests append the subset they need or all of them.
func HookDecls() []*ir.Function {
	return []*ir.Function{
		Decl("nugget_init"),
		Decl("nugget_bb_hook"),
		Decl("nugget_warmup_marker_hook"),
		Decl("nugget_start_marker_hook"),
		Decl("nugget_end_marker_hook"),
	}
}

// InstrumentedModule builds the canonical five-block test program: a
// one-block function and a four-block diamond (entry, then, else, merge),
// plus the ROI entry and all hook declarations.
func InstrumentedModule() *ir.Module {
	fns := []*ir.Function{
		Func("warm", Block("", 3, "ret")),
		Func("compute",
			Block("", 2, "condbr"),
			Block("if.then", 4, "br"),
			Block("if.else", 1, "br"),
			Block("if.end", 2, "ret"),
		),
		ROIBegin(),
	}
	fns = append(fns, HookDecls()...)
	return Module("prog", fns...)
}
