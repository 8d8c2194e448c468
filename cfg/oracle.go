package cfg

import "github.com/pegrewrite/peg/peg"

// blockAdapter is the sole peg.SourceBlock implementation this package
// hands out; the Oracle caches one per *Block so two references to the
// same block compare equal as interface values, which peg's maps rely
// on for identity.
type blockAdapter struct {
	b  *Block
	or *Oracle
}

func (a *blockAdapter) ID() int   { return a.b.id }
func (a *blockAdapter) Name() string { return a.b.name }

func (a *blockAdapter) Preds() []peg.SourceBlock {
	preds := make([]peg.SourceBlock, len(a.b.preds))
	for i, p := range a.b.preds {
		preds[i] = a.or.adapt(p)
	}
	return preds
}

func (a *blockAdapter) Terminator() peg.Terminator {
	if a.b.Terminator == nil {
		return nil
	}
	return &termAdapter{t: a.b.Terminator, or: a.or}
}

type termAdapter struct {
	t  Terminator
	or *Oracle
}

func (t *termAdapter) IsConditional() bool { return t.t.IsConditional() }
func (t *termAdapter) TrueSuccessor() peg.SourceBlock {
	return t.or.adaptOrNil(t.t.TrueSuccessor())
}
func (t *termAdapter) FalseSuccessor() peg.SourceBlock {
	return t.or.adaptOrNil(t.t.FalseSuccessor())
}
func (t *termAdapter) UniqueSuccessor() peg.SourceBlock {
	return t.or.adaptOrNil(t.t.UniqueSuccessor())
}

// Oracle adapts a Func's CFG, dominator tree and loop analysis to
// peg.Oracle, the only façade the APEG builder depends on.
type Oracle struct {
	f        *Func
	loops    *LoopInfo
	adapters map[*Block]*blockAdapter
}

// NewOracle builds the oracle for f, running loop analysis over f's
// dominator tree. It returns an error if f fails validation (e.g.
// contains a switch terminator). Reducibility of the control flow is
// assumed, not checked.
func NewOracle(f *Func) (*Oracle, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	dom := BuildDominatorTree(f)
	loops := AnalyzeLoops(f, dom)
	return &Oracle{f: f, loops: loops, adapters: make(map[*Block]*blockAdapter)}, nil
}

func (o *Oracle) adapt(b *Block) *blockAdapter {
	if b == nil {
		return nil
	}
	if a, ok := o.adapters[b]; ok {
		return a
	}
	a := &blockAdapter{b: b, or: o}
	o.adapters[b] = a
	return a
}

func (o *Oracle) adaptOrNil(b *Block) peg.SourceBlock {
	a := o.adapt(b)
	if a == nil {
		return nil
	}
	return a
}

// Blocks returns every block of f in declaration order; the entry block
// is not moved to the front.
func (o *Oracle) Blocks() []peg.SourceBlock {
	blocks := make([]peg.SourceBlock, len(o.f.Blocks))
	for i, b := range o.f.Blocks {
		blocks[i] = o.adapt(b)
	}
	return blocks
}

// EntryBlock returns f's entry block.
func (o *Oracle) EntryBlock() peg.SourceBlock { return o.adapt(o.f.Entry) }

func (o *Oracle) unwrap(b peg.SourceBlock) *Block {
	if b == nil {
		return nil
	}
	return b.(*blockAdapter).b
}

// IsLoopHeader reports whether b is a natural loop header.
func (o *Oracle) IsLoopHeader(b peg.SourceBlock) bool {
	return o.loops.IsLoopHeader(o.unwrap(b))
}

// LoopFor returns the innermost loop containing b, or nil.
func (o *Oracle) LoopFor(b peg.SourceBlock) peg.Loop {
	l := o.loops.LoopFor(o.unwrap(b))
	if l == nil {
		return nil
	}
	return l
}

// IsLoopLatch reports whether b is a latch of l.
func (o *Oracle) IsLoopLatch(l peg.Loop, b peg.SourceBlock) bool {
	return o.loops.IsLoopLatch(l.(*Loop), o.unwrap(b))
}

// ExitBlocks returns l's exit blocks.
func (o *Oracle) ExitBlocks(l peg.Loop) []peg.SourceBlock {
	exits := o.loops.ExitBlocks(l.(*Loop))
	out := make([]peg.SourceBlock, len(exits))
	for i, b := range exits {
		out[i] = o.adapt(b)
	}
	return out
}
