package peg

// Build runs the full pipeline: construct the APEG over oracle, then
// compute and attach the child expression of every non-entry concrete
// Block. It consumes no mutable state across invocations and returns a
// fully formed PEG function or the first fatal error encountered.
func Build(oracle Oracle, name string) (*Function, error) {
	f, err := BuildAPEG(oracle, name)
	if err != nil {
		return nil, err
	}

	for _, n := range f.nodes {
		if n.kind != BlockKind || n.isVirtualForward {
			continue
		}
		// Every non-entry concrete Block gets a child. The entry Block is
		// normally a leaf with no child: its own identity is already the
		// value every incoming edge resolves to. But when the entry is
		// itself a loop header its recurrence is only reachable through
		// computeInputs, so it gets a child too.
		if n.isEntry && !n.IsLoopHeader() {
			continue
		}
		child, err := computeInputs(f, n)
		if err != nil {
			return nil, err
		}
		n.setChild(child)
	}

	return f, nil
}
