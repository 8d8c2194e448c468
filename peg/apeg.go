package peg

// BuildAPEG constructs the auxiliary block graph: a concrete Block per
// source block, a virtual-forward Block per loop header, a Condition per
// concrete Block, and APEG edges with latch back-edges redirected to the
// virtual-forward twin. It does not compute per-block children;
// call Build (driver.go) for the full pipeline.
func BuildAPEG(oracle Oracle, name string) (*Function, error) {
	f := &Function{
		Name:             name,
		blockOf:          make(map[SourceBlock]*Node),
		condOf:           make(map[*Node]*Node),
		virtualForwardOf: make(map[*Node]*Node),
	}

	// Step 1: allocate Blocks in source order, virtual-forward twin first
	// for loop headers.
	for _, b := range oracle.Blocks() {
		loop := oracle.LoopFor(b)
		isEntry := b == oracle.EntryBlock()

		var virtual *Node
		if oracle.IsLoopHeader(b) {
			virtual = f.newBlockNode(b, nil, false, true)
		}

		concrete := f.newBlockNode(b, loop, isEntry, false)
		if virtual != nil {
			concrete.peer = virtual
			virtual.peer = concrete
			f.virtualForwardOf[concrete] = virtual
		}
		f.blockOf[b] = concrete

		if isEntry {
			f.entry = concrete
			f.rootEdge = RootEdge(concrete)
		}
	}

	// Step 2: allocate a Condition for every concrete Block.
	for _, b := range oracle.Blocks() {
		concrete := f.blockOf[b]
		f.condOf[concrete] = f.newConditionNode(concrete)
	}

	// Step 3: wire predecessor edges, redirecting latches to the virtual-
	// forward twin of their loop's header.
	for _, b := range oracle.Blocks() {
		concrete := f.blockOf[b]
		header := oracle.IsLoopHeader(b)
		var loop Loop
		if header {
			loop = oracle.LoopFor(b)
		}
		for _, pred := range b.Preds() {
			predNode := f.blockOf[pred]
			if predNode == nil {
				return nil, &UnresolvedPredecessorError{Block: b, Predecessor: pred}
			}
			dest := concrete
			if header && oracle.IsLoopLatch(loop, pred) {
				dest = f.virtualForwardOf[concrete]
			}
			addAPEGEdge(predNode, dest)
		}
	}

	// Step 4: recompute the PEG dominator tree over the APEG.
	dom, err := buildPEGDominatorTree(f)
	if err != nil {
		return nil, err
	}
	f.dom = dom

	return f, nil
}

func addAPEGEdge(src, dst *Node) {
	src.succs = append(src.succs, dst)
	dst.preds = append(dst.preds, src)
}
