package peg

// ValueFn maps an edge to the PEG value produced when that edge is the
// one carrying control.
type ValueFn func(Edge) *Node

// edgeSourceValueFn returns the ValueFn that the top-level caller of
// makeDecide supplies: an edge's source Block, except for root, whose
// destination (the entry Block) is returned instead.
func edgeSourceValueFn(root Edge) ValueFn {
	return func(e Edge) *Node {
		if e.Source == nil {
			return e.Dest
		}
		return e.Source
	}
}

// makeDecide builds a φ-tree over inEdges, recursing on the nearest
// common dominator's true/false partition and ascending into enclosing
// loop scope when the dominator lives in a loop the recursion has not
// yet entered. outerLoops is never mutated; extended copies are passed
// down the recursion instead.
func makeDecide(f *Function, sourceEdge Edge, inEdges EdgeSet, valueFn ValueFn, outerLoops LoopSet) (*Node, error) {
	if inEdges.Len() == 0 {
		return nil, &MissingDominatorError{Reason: "makeDecide called with an empty edge set"}
	}

	d, err := findCommonDominator(f, inEdges)
	if err != nil {
		return nil, err
	}
	dLoops := blockLoopSet(d)

	if dLoops.IsSubsetOf(outerLoops) {
		return makeDecideCaseA(f, d, inEdges, valueFn, outerLoops)
	}
	return makeDecideCaseB(f, sourceEdge, inEdges, valueFn, outerLoops, dLoops)
}

func makeDecideCaseA(f *Function, d *Node, inEdges EdgeSet, valueFn ValueFn, outerLoops LoopSet) (*Node, error) {
	edges := inEdges.Edges()

	collapsed := valueFn(edges[0])
	allSame := true
	for _, e := range edges[1:] {
		if valueFn(e) != collapsed {
			allSame = false
			break
		}
	}
	if allSame {
		return collapsed, nil
	}

	if inEdges.Len() < 2 {
		return nil, &MissingDominatorError{Reason: "single-edge set failed to collapse"}
	}
	if len(d.Succs()) != 2 {
		return nil, &UnsupportedTerminatorError{Block: d.Source()}
	}

	trueSucc, falseSucc, err := trueFalseSuccessors(d)
	if err != nil {
		return nil, err
	}

	trueEdge := NewEdge(d, trueSucc)
	falseEdge := NewEdge(d, falseSucc)

	trueEdges := inEdges.Filter(func(e Edge) bool { return isReachableFromEdge(trueEdge, e) })
	falseEdges := inEdges.Filter(func(e Edge) bool { return isReachableFromEdge(falseEdge, e) })

	t, err := makeDecide(f, trueEdge, trueEdges, valueFn, outerLoops)
	if err != nil {
		return nil, err
	}
	fl, err := makeDecide(f, falseEdge, falseEdges, valueFn, outerLoops)
	if err != nil {
		return nil, err
	}

	cond, err := f.ConditionFor(d)
	if err != nil {
		return nil, err
	}
	return f.NewPhi(cond, t, fl), nil
}

// makeDecideCaseB handles a dominator that lives inside a loop the
// recursion has not yet entered: it inserts the outermost such loop into
// an extended copy of outerLoops and recurses on the same edge set. No
// Eval/Pass loop-exit value is synthesized for the escaped loop; the
// result is the decide-node of the edge set in the widened loop scope.
func makeDecideCaseB(f *Function, sourceEdge Edge, inEdges EdgeSet, valueFn ValueFn, outerLoops, dLoops LoopSet) (*Node, error) {
	l := dLoops.OutermostNotIn(outerLoops)
	if l == nil {
		return nil, &MissingDominatorError{Reason: "loop escape detected but no candidate loop found"}
	}
	return makeDecide(f, sourceEdge, inEdges, valueFn, outerLoops.With(l))
}

func trueFalseSuccessors(d *Node) (trueSucc, falseSucc *Node, err error) {
	src := d.Source()
	term := src.Terminator()
	if !term.IsConditional() {
		return nil, nil, &UnsupportedTerminatorError{Block: src}
	}
	t, f := term.TrueSuccessor(), term.FalseSuccessor()
	tn, fn := d.fn.BlockFor(t), d.fn.BlockFor(f)
	if tn == nil || fn == nil {
		return nil, nil, &UnsupportedTerminatorError{Block: src}
	}
	return tn, fn, nil
}

// blockLoopSet returns the LoopSet of a Block's surrounding loop. A
// virtual-forward node has no surrounding loop of its own (Block.Loop()
// is nil for it), so its loop set is empty.
func blockLoopSet(b *Node) LoopSet {
	loop := b.Loop()
	if loop == nil {
		return nil
	}
	return NewLoopSet(loop)
}
