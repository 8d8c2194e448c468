package peg

import "github.com/andrewarchi/graph"

// ControlFlowDigraph builds a directed graph mirroring the APEG's Block
// edges, for external graph-analysis tooling (dominance frontiers,
// strongly-connected-component checks) that operates on andrewarchi/graph
// rather than this package's own Node/Succs representation. The PEG
// builder itself never queries the returned graph. computeInputs and
// makeDecide work entirely in terms of Node.Preds/Succs.
func ControlFlowDigraph(f *Function) graph.Graph {
	g := graph.NewGraph(uint(len(f.nodes)))
	for _, n := range f.nodes {
		if n.kind != BlockKind {
			continue
		}
		for _, s := range n.succs {
			g.Add(uint(n.id), uint(s.id))
		}
	}
	return g
}
