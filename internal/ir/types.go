package ir

// BlockIDKey is the reserved metadata key under which the labeling pass
// stores a block's module-global ID on its terminator instruction.
const BlockIDKey = "bb.id"

// terminatorOps defines the control-transfer opcodes that may end a block.
var terminatorOps = map[string]bool{
	"br":          true,
	"condbr":      true,
	"switch":      true,
	"ret":         true,
	"unreachable": true,
}

// Module is a compiled program: an ordered set of functions.
type Module struct {
	Name      string      `yaml:"name"`
	Functions []*Function `yaml:"functions"`
}

// Function returns the function with the given name, or nil.
func (m *Module) Function(name string) *Function {
	for _, f := range m.Functions {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Function is a callable unit. A declaration has no body and is excluded
// from all labeling and instrumentation.
type Function struct {
	Name        string   `yaml:"name"`
	Declaration bool     `yaml:"declaration,omitempty"`
	Blocks      []*Block `yaml:"blocks,omitempty"`
}

// IsDeclaration reports whether the function has no body.
func (f *Function) IsDeclaration() bool {
	return f.Declaration || len(f.Blocks) == 0
}

// UniqueExitBlock returns the function's sole exit block (the one block
// terminated by ret). The second result is false when the function has
// zero or more than one exit block.
func (f *Function) UniqueExitBlock() (*Block, bool) {
	var exit *Block
	for _, b := range f.Blocks {
		t := b.Terminator()
		if t == nil || t.Op != "ret" {
			continue
		}
		if exit != nil {
			return nil, false
		}
		exit = b
	}
	if exit == nil {
		return nil, false
	}
	return exit, true
}

// Block is a maximal straight-line instruction sequence ending in one
// control-transfer instruction. The entry block of a function may have an
// empty name.
type Block struct {
	Name         string         `yaml:"name,omitempty"`
	Instructions []*Instruction `yaml:"instructions"`
}

// Terminator returns the block's terminator instruction, or nil when the
// block does not end in a control-transfer instruction. A nil terminator
// means the block is structurally malformed.
func (b *Block) Terminator() *Instruction {
	if len(b.Instructions) == 0 {
		return nil
	}
	last := b.Instructions[len(b.Instructions)-1]
	if !last.IsTerminator() {
		return nil
	}
	return last
}

// InstCount returns the number of instructions in the block, terminator
// included.
func (b *Block) InstCount() int {
	return len(b.Instructions)
}

// InsertBeforeTerminator inserts ins immediately before the block's
// terminator. The block must have a terminator; callers check first.
func (b *Block) InsertBeforeTerminator(ins *Instruction) {
	i := len(b.Instructions) - 1
	b.Instructions = append(b.Instructions, nil)
	copy(b.Instructions[i+1:], b.Instructions[i:])
	b.Instructions[i] = ins
}

// Instruction is a single IR instruction. Calls carry a callee name and
// integer constant arguments; asm markers carry literal text and clobber
// annotations.
type Instruction struct {
	Op       string            `yaml:"op"`
	Callee   string            `yaml:"callee,omitempty"`
	Args     []uint64          `yaml:"args,omitempty"`
	Text     string            `yaml:"text,omitempty"`
	Clobbers []string          `yaml:"clobbers,omitempty"`
	Meta     map[string]string `yaml:"meta,omitempty"`
}

// IsTerminator reports whether the instruction is a control transfer.
func (i *Instruction) IsTerminator() bool {
	return terminatorOps[i.Op]
}

// SetMeta attaches a metadata value under key, allocating the map on first
// use.
func (i *Instruction) SetMeta(key, value string) {
	if i.Meta == nil {
		i.Meta = make(map[string]string, 1)
	}
	i.Meta[key] = value
}

// MetaValue returns the metadata value under key. The second result is
// false when no value is attached.
func (i *Instruction) MetaValue(key string) (string, bool) {
	v, ok := i.Meta[key]
	return v, ok
}

// NewCall builds a call instruction to callee with integer constant
// arguments.
func NewCall(callee string, args ...uint64) *Instruction {
	return &Instruction{Op: "call", Callee: callee, Args: args}
}

// NewAsm builds a side-effecting inline-asm marker instruction. The text is
// emitted verbatim; clobbers annotate what the marker may touch so later
// stages never reorder or delete it.
func NewAsm(text string, clobbers ...string) *Instruction {
	return &Instruction{Op: "asm", Text: text, Clobbers: clobbers}
}
