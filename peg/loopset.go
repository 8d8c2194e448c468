package peg

// LoopSet is the totally ordered chain of loops containing a block, from
// innermost to outermost, excluding the unique "top" loop (represented by
// the absence of a parent). It is used only for subset comparisons.
type LoopSet []Loop

// NewLoopSet builds the LoopSet of a block's innermost loop, walking
// Parent() outward until it is nil.
func NewLoopSet(innermost Loop) LoopSet {
	var ls LoopSet
	for l := innermost; l != nil; l = l.Parent() {
		ls = append(ls, l)
	}
	return ls
}

// Contains reports whether l is a member of the set.
func (ls LoopSet) Contains(l Loop) bool {
	for _, cur := range ls {
		if cur == l {
			return true
		}
	}
	return false
}

// IsSubsetOf reports whether every loop in ls is also in outer.
func (ls LoopSet) IsSubsetOf(outer LoopSet) bool {
	for _, l := range ls {
		if !outer.Contains(l) {
			return false
		}
	}
	return true
}

// With returns a new LoopSet with l inserted, if not already present.
func (ls LoopSet) With(l Loop) LoopSet {
	if ls.Contains(l) {
		return ls
	}
	out := make(LoopSet, len(ls), len(ls)+1)
	copy(out, ls)
	return append(out, l)
}

// OutermostNotIn returns the outermost loop in ls that is not a member of
// outer. ls must be a subset of... no such requirement is enforced here;
// the caller (makeDecide Case B) guarantees it per the algorithm's
// invariant that DLoops is always a strict superset of outerLoops at that
// point.
func (ls LoopSet) OutermostNotIn(outer LoopSet) Loop {
	var outermost Loop
	for _, l := range ls {
		if outer.Contains(l) {
			continue
		}
		if outermost == nil || isAncestorOrSelf(l, outermost) {
			outermost = l
		}
	}
	return outermost
}

// isAncestorOrSelf reports whether a is an ancestor of (or equal to) b by
// walking b's parent chain.
func isAncestorOrSelf(a, b Loop) bool {
	for cur := b; cur != nil; cur = cur.Parent() {
		if cur == a {
			return true
		}
	}
	return false
}
