package smt // import "github.com/pegrewrite/peg/smt"

import (
	"testing"

	"github.com/mitchellh/go-z3"
)

// TestLoopDepthTransitivity is a sanity check, not part of the build
// pipeline, that the integer-depth ordering LoopSet.OutermostNotIn
// relies on (nesting is a strict total order per chain) is the kind of
// property an SMT solver confirms unsatisfiable to falsify: if loop a
// nests inside b and b nests inside c, a cannot be outside c.
func TestLoopDepthTransitivity(t *testing.T) {
	config := z3.NewConfig()
	defer config.Close()

	ctx := z3.NewContext(config)
	defer ctx.Close()

	depthA := ctx.Const(ctx.Symbol("depthA"), ctx.IntSort())
	depthB := ctx.Const(ctx.Symbol("depthB"), ctx.IntSort())
	depthC := ctx.Const(ctx.Symbol("depthC"), ctx.IntSort())
	v0 := ctx.Int(0, ctx.IntSort())

	// a nests in b (a is deeper): depthA - depthB > 0
	aInB := depthA.Sub(depthB).Gt(v0)
	// b nests in c: depthB - depthC > 0
	bInC := depthB.Sub(depthC).Gt(v0)
	// negation of the expected conclusion: a does NOT nest in c
	notAInC := depthA.Sub(depthC).Le(v0)

	s := ctx.NewSolver()
	defer s.Close()
	s.Assert(aInB)
	s.Assert(bInC)
	s.Assert(notAInC)

	result := s.Check()
	if result != z3.False {
		t.Fatalf("expected unsat (transitivity holds), got: %d", result)
	}
}
