package peg

// computeInputs derives Block b's child expression: a φ-tree over
// its incoming edges, wrapped in a Theta when b is a concrete loop
// header (with the recurrence computed by recursing onto its
// virtual-forward peer, which absorbs the latch edges).
func computeInputs(f *Function, b *Node) (*Node, error) {
	in := incomingEdges(f, b)

	decider, err := makeDecide(f, f.RootEdge(), in, edgeSourceValueFn(f.RootEdge()), blockLoopSet(b))
	if err != nil {
		return nil, err
	}

	if b.IsLoopHeader() {
		recurrence, err := computeInputs(f, b.Peer())
		if err != nil {
			return nil, err
		}
		return f.NewTheta(decider, recurrence), nil
	}

	return decider, nil
}

func incomingEdges(f *Function, b *Node) EdgeSet {
	if b.IsEntry() {
		return NewEdgeSet(f.RootEdge())
	}
	edges := make([]Edge, 0, len(b.Preds()))
	for _, p := range b.Preds() {
		edges = append(edges, NewEdge(p, b))
	}
	return NewEdgeSet(edges...)
}
