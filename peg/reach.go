package peg

// isReachableFromEdge reports whether dstEdge is reachable from srcEdge:
// true when the two edges are equal, when srcEdge's destination equals
// dstEdge's source, or when a BFS of APEG successors starting at
// srcEdge's destination reaches dstEdge's source. Implemented as a plain
// BFS over Node.Succs rather than through a general-purpose graph
// library: the traversal only ever needs forward reachability among
// Block nodes, and andrewarchi/graph's query surface beyond construction
// is unverified (see ControlFlowDigraph in digraph.go for where that
// dependency is actually exercised).
func isReachableFromEdge(srcEdge, dstEdge Edge) bool {
	if srcEdge == dstEdge {
		return true
	}
	target := dstEdge.Source
	if target == nil {
		return false
	}
	if srcEdge.Dest == target {
		return true
	}

	visited := map[*Node]bool{srcEdge.Dest: true}
	queue := []*Node{srcEdge.Dest}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, s := range cur.Succs() {
			if s == target {
				return true
			}
			if !visited[s] {
				visited[s] = true
				queue = append(queue, s)
			}
		}
	}
	return false
}
