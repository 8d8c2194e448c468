// Package cfg is the concrete control-flow graph oracle that the peg
// package's APEG builder consumes through the peg.Oracle façade. It plays
// the role Nebula's ir.Program/ir.BasicBlock play for the Whitespace
// compiler: a plain, mutable graph of basic blocks built once by a
// front end and thereafter read-only.
package cfg

import "fmt"

// Func is a procedure: an ordered list of basic blocks with a
// distinguished entry.
type Func struct {
	Name   string
	Blocks []*Block
	Entry  *Block
}

// Block is a basic block: a name, a terminator, and the predecessor set
// computed from every other block's terminator.
type Block struct {
	id         int
	name       string
	Terminator Terminator
	preds      []*Block
}

// ID returns the block's stable, dense index within its Func.
func (b *Block) ID() int { return b.id }

// Name returns the block's human-readable name.
func (b *Block) Name() string { return b.name }

func (b *Block) String() string { return b.name }

// Preds returns the block's predecessors in the order edges were added.
func (b *Block) Preds() []*Block { return b.preds }

// Succs returns the block's successors per its terminator.
func (b *Block) Succs() []*Block {
	if b.Terminator == nil {
		return nil
	}
	return b.Terminator.Succs()
}

// Terminator is a basic block's branching instruction.
type Terminator interface {
	Succs() []*Block
	IsConditional() bool
	TrueSuccessor() *Block
	FalseSuccessor() *Block
	UniqueSuccessor() *Block
	fmt.Stringer
}

// JmpTerm is an unconditional jump, or a block with no successor at all
// (Target == nil) standing in for Nebula's RetTerm/ExitTerm.
type JmpTerm struct {
	Target *Block
}

func (t *JmpTerm) Succs() []*Block {
	if t.Target == nil {
		return nil
	}
	return []*Block{t.Target}
}
func (t *JmpTerm) IsConditional() bool     { return false }
func (t *JmpTerm) TrueSuccessor() *Block   { return nil }
func (t *JmpTerm) FalseSuccessor() *Block  { return nil }
func (t *JmpTerm) UniqueSuccessor() *Block { return t.Target }
func (t *JmpTerm) String() string {
	if t.Target == nil {
		return "ret"
	}
	return "jmp " + t.Target.name
}

// CondTerm is a two-way conditional jump.
type CondTerm struct {
	True, False *Block
}

func (t *CondTerm) Succs() []*Block         { return []*Block{t.True, t.False} }
func (t *CondTerm) IsConditional() bool     { return true }
func (t *CondTerm) TrueSuccessor() *Block   { return t.True }
func (t *CondTerm) FalseSuccessor() *Block  { return t.False }
func (t *CondTerm) UniqueSuccessor() *Block { return nil }
func (t *CondTerm) String() string {
	return fmt.Sprintf("jz %s, %s", t.True.name, t.False.name)
}

// SwitchTerm is a multi-way branch. The peg package's core only handles
// single-successor and two-way conditional terminators; SwitchTerm
// exists so a front end can still represent one in the source CFG, and
// Func.Validate rejects it with a clear error before it ever reaches the
// APEG builder, rather than letting the builder mis-partition its edges.
type SwitchTerm struct {
	Cases   []*Block
	Default *Block
}

func (t *SwitchTerm) Succs() []*Block {
	succs := append([]*Block(nil), t.Cases...)
	if t.Default != nil {
		succs = append(succs, t.Default)
	}
	return succs
}
func (t *SwitchTerm) IsConditional() bool     { return false }
func (t *SwitchTerm) TrueSuccessor() *Block   { return nil }
func (t *SwitchTerm) FalseSuccessor() *Block  { return nil }
func (t *SwitchTerm) UniqueSuccessor() *Block { return nil }
func (t *SwitchTerm) String() string          { return "switch" }

// ErrSwitchTerminator reports that a Func contains a block terminated by
// a SwitchTerm, which the peg package's core cannot translate.
type ErrSwitchTerminator struct {
	Block *Block
}

func (e *ErrSwitchTerminator) Error() string {
	return fmt.Sprintf("cfg: block %q has a switch terminator, which is unsupported", e.Block.name)
}

// Validate rejects any Func shape the peg package cannot translate.
func (f *Func) Validate() error {
	for _, b := range f.Blocks {
		if _, ok := b.Terminator.(*SwitchTerm); ok {
			return &ErrSwitchTerminator{Block: b}
		}
	}
	return nil
}
