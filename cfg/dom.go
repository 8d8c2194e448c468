package cfg

import "github.com/pegrewrite/peg/internal/domtree"

// DominatorTree is the dominator tree of a Func's source CFG, used by
// loop.go to confirm headers dominate their latches.
type DominatorTree struct {
	f    *Func
	tree *domtree.Tree
}

type cfgGraph struct{ f *Func }

func (g cfgGraph) NumNodes() int { return len(g.f.Blocks) }
func (g cfgGraph) Entry() int    { return g.f.Entry.id }
func (g cfgGraph) Preds(n int) []int {
	b := g.f.Blocks[n]
	ids := make([]int, len(b.preds))
	for i, p := range b.preds {
		ids[i] = p.id
	}
	return ids
}

// BuildDominatorTree computes f's dominator tree.
func BuildDominatorTree(f *Func) *DominatorTree {
	return &DominatorTree{f: f, tree: domtree.Build(cfgGraph{f: f})}
}

// Dominates reports whether a dominates b.
func (d *DominatorTree) Dominates(a, b *Block) bool {
	return d.tree.Dominates(a.id, b.id)
}

// IDom returns b's immediate dominator, or nil for the entry.
func (d *DominatorTree) IDom(b *Block) *Block {
	i := d.tree.IDom(b.id)
	if i == -1 {
		return nil
	}
	return d.f.Blocks[i]
}
