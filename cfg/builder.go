package cfg

// Builder assists incremental Func construction: blocks are created up
// front, wired with terminators, and predecessor lists are derived once
// at Finish, mirroring the two-phase create-then-connect style of
// Nebula's ir.Builder.
type Builder struct {
	name   string
	blocks []*Block
	nextID int
}

// NewBuilder constructs a builder for a procedure named name.
func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

// CreateBlock creates and returns a new, unterminated block.
func (b *Builder) CreateBlock(name string) *Block {
	block := &Block{id: b.nextID, name: name}
	b.blocks = append(b.blocks, block)
	b.nextID++
	return block
}

// SetTerminator sets block's terminator. It panics if block already has
// one, mirroring BasicBlock.SetTerminator's single-assignment contract.
func (b *Builder) SetTerminator(block *Block, term Terminator) {
	if block.Terminator != nil {
		panic("cfg: terminator already set for " + block.name)
	}
	block.Terminator = term
}

// Finish derives every block's predecessor list from the terminators set
// so far and returns the completed Func rooted at entry. It validates the
// result, rejecting switch terminators.
func (b *Builder) Finish(entry *Block) (*Func, error) {
	for _, block := range b.blocks {
		for _, succ := range block.Succs() {
			succ.preds = append(succ.preds, block)
		}
	}
	f := &Func{Name: b.name, Blocks: b.blocks, Entry: entry}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}
