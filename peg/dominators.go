package peg

import "github.com/pegrewrite/peg/internal/domtree"

// PEGDominatorTree is the dominator tree of the APEG's Block nodes, keyed
// by Node identity rather than raw indices.
type PEGDominatorTree struct {
	fn   *Function
	tree *domtree.Tree
}

// pegGraph adapts a Function to domtree.Graph. Node ids are already dense
// indices into fn.nodes, so no renumbering is needed; non-Block nodes
// simply have no predecessors and stay unreachable, which is harmless.
type pegGraph struct {
	fn *Function
}

func (g pegGraph) NumNodes() int { return len(g.fn.nodes) }
func (g pegGraph) Entry() int    { return g.fn.entry.id }
func (g pegGraph) Preds(n int) []int {
	node := g.fn.nodes[n]
	if node.kind != BlockKind {
		return nil
	}
	ids := make([]int, len(node.preds))
	for i, p := range node.preds {
		ids[i] = p.id
	}
	return ids
}

func buildPEGDominatorTree(f *Function) (*PEGDominatorTree, error) {
	if f.entry == nil {
		return nil, &MissingEntryError{}
	}
	t := domtree.Build(pegGraph{fn: f})
	return &PEGDominatorTree{fn: f, tree: t}, nil
}

// IDom returns n's immediate dominator Block, or nil if n is the entry or
// unreachable.
func (d *PEGDominatorTree) IDom(n *Node) *Node {
	i := d.tree.IDom(n.id)
	if i == -1 {
		return nil
	}
	return d.fn.nodes[i]
}

// Dominates reports whether a dominates b.
func (d *PEGDominatorTree) Dominates(a, b *Node) bool {
	return d.tree.Dominates(a.id, b.id)
}

// Reachable reports whether n was reached from the entry Block.
func (d *PEGDominatorTree) Reachable(n *Node) bool {
	return d.tree.Reachable(n.id)
}

// nearestCommonDominator returns the nearest common dominator of a and b.
func (d *PEGDominatorTree) nearestCommonDominator(a, b *Node) *Node {
	i := d.tree.NearestCommonDominator(a.id, b.id)
	return d.fn.nodes[i]
}

// findCommonDominator returns the nearest common dominator Block shared by
// every edge's destination's predecessor-side Block in the set. In
// practice this is the common dominator of the set of source Blocks that edges in
// es originate from. The root edge (nil Source) is treated as dominated
// by nothing but the entry itself.
func findCommonDominator(f *Function, es EdgeSet) (*Node, error) {
	edges := es.Edges()
	if len(edges) == 0 {
		return nil, &EmptyEdgeSetError{}
	}
	var common *Node
	for _, e := range edges {
		src := e.Source
		if src == nil {
			src = f.entry
		}
		if common == nil {
			common = src
			continue
		}
		common = f.dom.nearestCommonDominator(common, src)
	}
	return common, nil
}
