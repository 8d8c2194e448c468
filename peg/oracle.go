package peg

// SourceBlock is the minimal view of a source procedure's basic block that
// the APEG builder needs. Concrete implementations live outside this
// package (see cfg.Block); peg only ever reads through this interface.
type SourceBlock interface {
	// ID is a stable, dense index into the source procedure's block list,
	// used only to recover a deterministic iteration order.
	ID() int
	Name() string
	Preds() []SourceBlock
	Terminator() Terminator
}

// Terminator exposes the branch shape of a block's terminating
// instruction. Multi-way switches are not represented; a terminator is
// either conditional (two successors) or not (zero or one successor).
type Terminator interface {
	IsConditional() bool
	TrueSuccessor() SourceBlock
	FalseSuccessor() SourceBlock
	UniqueSuccessor() SourceBlock
}

// Loop identifies a natural loop of the source procedure. Two Loop values
// compare equal iff they name the same loop; Parent returns nil for a
// top-level loop (the "top" loop of the loop-set glossary entry is the
// absence of a parent, not a Loop value in its own right).
type Loop interface {
	ID() int
	Parent() Loop
}

// Oracle is the CFG/loop/dominator façade the APEG builder consumes. It
// never exposes mutation; every method is a pure query over analyses that
// are assumed already computed for the source procedure.
type Oracle interface {
	// Blocks returns every block of the source procedure in a stable,
	// deterministic order (the procedure's own block order; the entry
	// block need not come first).
	Blocks() []SourceBlock
	EntryBlock() SourceBlock

	IsLoopHeader(b SourceBlock) bool
	LoopFor(b SourceBlock) Loop
	IsLoopLatch(l Loop, b SourceBlock) bool
	ExitBlocks(l Loop) []SourceBlock
}
