package peg

import "sort"

// Edge is a BBEdge: a pair of (source?, destination) Block nodes. The
// sole edge with an absent source is the root edge, whose destination is
// the entry Block.
type Edge struct {
	Source *Node // nil for the root edge
	Dest   *Node
}

// NewEdge constructs a normal edge; both arguments are required non-nil.
func NewEdge(src, dst *Node) Edge {
	if src == nil || dst == nil {
		panic("peg: NewEdge requires non-nil source and destination")
	}
	return Edge{Source: src, Dest: dst}
}

// RootEdge constructs the synthetic edge with no source.
func RootEdge(dst *Node) Edge {
	if dst == nil {
		panic("peg: RootEdge requires a non-nil destination")
	}
	return Edge{Source: nil, Dest: dst}
}

// Less orders edges structurally over (Dest, Source), matching the
// original BBEdge::operator<.
func (e Edge) Less(o Edge) bool {
	if e.Dest.id != o.Dest.id {
		return e.Dest.id < o.Dest.id
	}
	if e.Source == nil {
		return o.Source != nil
	}
	if o.Source == nil {
		return false
	}
	return e.Source.id < o.Source.id
}

func (e Edge) String() string {
	src := "<entry>"
	if e.Source != nil {
		src = e.Source.name
	}
	return src + " --> " + e.Dest.name
}

// EdgeSet is a deduplicated, deterministically ordered set of edges.
type EdgeSet struct {
	edges []Edge
}

// NewEdgeSet builds an EdgeSet from a slice of edges, deduplicating and
// sorting for deterministic iteration (needed for the idempotence-of-
// build property: repeated builds must produce isomorphic results).
func NewEdgeSet(edges ...Edge) EdgeSet {
	s := EdgeSet{edges: append([]Edge(nil), edges...)}
	sort.Slice(s.edges, func(i, j int) bool { return s.edges[i].Less(s.edges[j]) })
	if len(s.edges) > 1 {
		out := s.edges[:1]
		for _, e := range s.edges[1:] {
			if e != out[len(out)-1] {
				out = append(out, e)
			}
		}
		s.edges = out
	}
	return s
}

// Len returns the number of edges in the set.
func (s EdgeSet) Len() int { return len(s.edges) }

// Edges returns the set's edges in sorted order. The caller must not
// mutate the returned slice.
func (s EdgeSet) Edges() []Edge { return s.edges }

// Filter returns the subset of edges for which pred holds.
func (s EdgeSet) Filter(pred func(Edge) bool) EdgeSet {
	var out []Edge
	for _, e := range s.edges {
		if pred(e) {
			out = append(out, e)
		}
	}
	return EdgeSet{edges: out}
}
