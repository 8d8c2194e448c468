package peg_test

import (
	"testing"

	"github.com/pegrewrite/peg/peg"
	"github.com/pegrewrite/peg/cfg"
)

func buildOracle(t *testing.T, build func(b *cfg.Builder) *cfg.Block) (*cfg.Oracle, *cfg.Func) {
	t.Helper()
	b := cfg.NewBuilder("test")
	entry := build(b)
	f, err := b.Finish(entry)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	o, err := cfg.NewOracle(f)
	if err != nil {
		t.Fatalf("NewOracle: %v", err)
	}
	return o, f
}

func findBlock(fn *peg.Function, name string) *peg.Node {
	for _, n := range fn.Nodes() {
		if n.Kind() == peg.BlockKind && !n.IsVirtualForward() && n.Name() == name {
			return n
		}
	}
	return nil
}

func TestBuildStraightLine(t *testing.T) {
	o, _ := buildOracle(t, func(b *cfg.Builder) *cfg.Block {
		a := b.CreateBlock("a")
		bb := b.CreateBlock("b")
		c := b.CreateBlock("c")
		b.SetTerminator(a, &cfg.JmpTerm{Target: bb})
		b.SetTerminator(bb, &cfg.JmpTerm{Target: c})
		b.SetTerminator(c, &cfg.JmpTerm{Target: nil})
		return a
	})

	fn, err := peg.Build(o, "straight")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	bNode := findBlock(fn, "b")
	cNode := findBlock(fn, "c")
	aNode := findBlock(fn, "a")

	if bNode.Child() != aNode {
		t.Errorf("b.Child() = %v, want %v", bNode.Child(), aNode)
	}
	if cNode.Child() != bNode {
		t.Errorf("c.Child() = %v, want %v", cNode.Child(), bNode)
	}
	for _, n := range fn.Nodes() {
		if n.Kind() == peg.PhiKind || n.Kind() == peg.ThetaKind {
			t.Errorf("unexpected %s node in straight-line build: %s", n.Kind(), n.Name())
		}
	}
}

func TestBuildDiamond(t *testing.T) {
	o, _ := buildOracle(t, func(b *cfg.Builder) *cfg.Block {
		a := b.CreateBlock("a")
		bb := b.CreateBlock("b")
		c := b.CreateBlock("c")
		d := b.CreateBlock("d")
		b.SetTerminator(a, &cfg.CondTerm{True: bb, False: c})
		b.SetTerminator(bb, &cfg.JmpTerm{Target: d})
		b.SetTerminator(c, &cfg.JmpTerm{Target: d})
		b.SetTerminator(d, &cfg.JmpTerm{Target: nil})
		return a
	})

	fn, err := peg.Build(o, "diamond")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	dNode := findBlock(fn, "d")
	phi := dNode.Child()
	if phi == nil || phi.Kind() != peg.PhiKind {
		t.Fatalf("d.Child() = %v, want a Phi", phi)
	}
	aNode := findBlock(fn, "a")
	bNode := findBlock(fn, "b")
	cNode := findBlock(fn, "c")

	cond, err := fn.ConditionFor(aNode)
	if err != nil {
		t.Fatalf("ConditionFor: %v", err)
	}
	if phi.Cond() != cond {
		t.Errorf("phi.Cond() = %v, want %v", phi.Cond(), cond)
	}
	if phi.WhenTrue() != bNode || phi.WhenFalse() != cNode {
		t.Errorf("phi operands = (%v, %v), want (%v, %v)", phi.WhenTrue(), phi.WhenFalse(), bNode, cNode)
	}
}

func TestBuildNestedDiamond(t *testing.T) {
	o, _ := buildOracle(t, func(b *cfg.Builder) *cfg.Block {
		a := b.CreateBlock("a")
		bb := b.CreateBlock("b")
		c := b.CreateBlock("c")
		d := b.CreateBlock("d")
		e := b.CreateBlock("e")
		f := b.CreateBlock("f")
		b.SetTerminator(a, &cfg.CondTerm{True: bb, False: c})
		b.SetTerminator(bb, &cfg.JmpTerm{Target: d})
		b.SetTerminator(c, &cfg.JmpTerm{Target: e})
		b.SetTerminator(d, &cfg.JmpTerm{Target: f})
		b.SetTerminator(e, &cfg.JmpTerm{Target: f})
		b.SetTerminator(f, &cfg.JmpTerm{Target: nil})
		return a
	})

	fn, err := peg.Build(o, "nested")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	fNode := findBlock(fn, "f")
	phi := fNode.Child()
	if phi == nil || phi.Kind() != peg.PhiKind {
		t.Fatalf("f.Child() = %v, want a Phi", phi)
	}
	dNode := findBlock(fn, "d")
	eNode := findBlock(fn, "e")
	if phi.WhenTrue() != dNode || phi.WhenFalse() != eNode {
		t.Errorf("phi operands = (%v, %v), want (%v, %v)", phi.WhenTrue(), phi.WhenFalse(), dNode, eNode)
	}
}

func TestBuildSimpleLoop(t *testing.T) {
	o, _ := buildOracle(t, func(b *cfg.Builder) *cfg.Block {
		a := b.CreateBlock("a")
		h := b.CreateBlock("h")
		body := b.CreateBlock("body")
		exit := b.CreateBlock("exit")
		b.SetTerminator(a, &cfg.JmpTerm{Target: h})
		b.SetTerminator(h, &cfg.CondTerm{True: body, False: exit})
		b.SetTerminator(body, &cfg.JmpTerm{Target: h})
		b.SetTerminator(exit, &cfg.JmpTerm{Target: nil})
		return a
	})

	fn, err := peg.Build(o, "loop")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	hNode := findBlock(fn, "h")
	if !hNode.IsLoopHeader() {
		t.Fatalf("h is not a loop header")
	}
	if hNode.Peer() == nil || !hNode.Peer().IsVirtualForward() {
		t.Fatalf("h has no virtual-forward peer")
	}

	theta := hNode.Child()
	if theta == nil || theta.Kind() != peg.ThetaKind {
		t.Fatalf("h.Child() = %v, want a Theta", theta)
	}
	aNode := findBlock(fn, "a")
	bodyNode := findBlock(fn, "body")
	if theta.Base() != aNode {
		t.Errorf("theta.Base() = %v, want %v", theta.Base(), aNode)
	}
	if theta.Recurrence() != bodyNode {
		t.Errorf("theta.Recurrence() = %v, want %v", theta.Recurrence(), bodyNode)
	}

	exitNode := findBlock(fn, "exit")
	if exitNode.Child() != hNode {
		t.Errorf("exit.Child() = %v, want %v", exitNode.Child(), hNode)
	}
}

func TestBuildLoopWithInternalDiamond(t *testing.T) {
	// h branches to both legs of the internal diamond directly (true=x,
	// false=y), both rejoining at z before latching back to h.
	b := cfg.NewBuilder("loopdiamond")
	a := b.CreateBlock("a")
	h := b.CreateBlock("h")
	x := b.CreateBlock("x")
	y := b.CreateBlock("y")
	z := b.CreateBlock("z")
	b.SetTerminator(a, &cfg.JmpTerm{Target: h})
	b.SetTerminator(h, &cfg.CondTerm{True: x, False: y})
	b.SetTerminator(x, &cfg.JmpTerm{Target: z})
	b.SetTerminator(y, &cfg.JmpTerm{Target: z})
	b.SetTerminator(z, &cfg.JmpTerm{Target: h})
	f, err := b.Finish(a)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	oracle, err := cfg.NewOracle(f)
	if err != nil {
		t.Fatalf("NewOracle: %v", err)
	}

	fn, err := peg.Build(oracle, "loopdiamond")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	hNode := findBlock(fn, "h")
	zNode := findBlock(fn, "z")
	xNode := findBlock(fn, "x")
	yNode := findBlock(fn, "y")
	aNode := findBlock(fn, "a")

	phi := zNode.Child()
	if phi == nil || phi.Kind() != peg.PhiKind {
		t.Fatalf("z.Child() = %v, want a Phi", phi)
	}
	cond, err := fn.ConditionFor(hNode)
	if err != nil {
		t.Fatalf("ConditionFor: %v", err)
	}
	if phi.Cond() != cond {
		t.Errorf("phi.Cond() = %v, want cond(h)", phi.Cond())
	}
	if phi.WhenTrue() != xNode || phi.WhenFalse() != yNode {
		t.Errorf("phi operands = (%v, %v), want (%v, %v)", phi.WhenTrue(), phi.WhenFalse(), xNode, yNode)
	}

	theta := hNode.Child()
	if theta == nil || theta.Kind() != peg.ThetaKind {
		t.Fatalf("h.Child() = %v, want a Theta", theta)
	}
	if theta.Base() != aNode {
		t.Errorf("theta.Base() = %v, want %v", theta.Base(), aNode)
	}
	if theta.Recurrence() != zNode {
		t.Errorf("theta.Recurrence() = %v, want %v", theta.Recurrence(), zNode)
	}
}

func TestBuildEntryIsLoopHeader(t *testing.T) {
	b := cfg.NewBuilder("entryloop")
	entry := b.CreateBlock("entry")
	l := b.CreateBlock("l")
	exit := b.CreateBlock("exit")
	b.SetTerminator(entry, &cfg.CondTerm{True: l, False: exit})
	b.SetTerminator(l, &cfg.JmpTerm{Target: entry})
	b.SetTerminator(exit, &cfg.JmpTerm{Target: nil})
	f, err := b.Finish(entry)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	oracle, err := cfg.NewOracle(f)
	if err != nil {
		t.Fatalf("NewOracle: %v", err)
	}

	fn, err := peg.Build(oracle, "entryloop")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	entryNode := findBlock(fn, "entry")
	if !entryNode.IsLoopHeader() {
		t.Fatalf("entry is not a loop header")
	}
	if entryNode.Child() == nil {
		t.Fatalf("entry.Child() is nil, want a Theta")
	}
	theta := entryNode.Child()
	if theta.Kind() != peg.ThetaKind {
		t.Fatalf("entry.Child().Kind() = %v, want Theta", theta.Kind())
	}
	if theta.Base() != entryNode {
		t.Errorf("theta.Base() = %v, want entry itself", theta.Base())
	}
	lNode := findBlock(fn, "l")
	if theta.Recurrence() != lNode {
		t.Errorf("theta.Recurrence() = %v, want %v", theta.Recurrence(), lNode)
	}
}

func TestBuildIdempotent(t *testing.T) {
	build := func(b *cfg.Builder) *cfg.Block {
		a := b.CreateBlock("a")
		bb := b.CreateBlock("b")
		c := b.CreateBlock("c")
		d := b.CreateBlock("d")
		b.SetTerminator(a, &cfg.CondTerm{True: bb, False: c})
		b.SetTerminator(bb, &cfg.JmpTerm{Target: d})
		b.SetTerminator(c, &cfg.JmpTerm{Target: d})
		b.SetTerminator(d, &cfg.JmpTerm{Target: nil})
		return a
	}

	o1, _ := buildOracle(t, build)
	fn1, err := peg.Build(o1, "diamond")
	if err != nil {
		t.Fatalf("Build #1: %v", err)
	}
	o2, _ := buildOracle(t, build)
	fn2, err := peg.Build(o2, "diamond")
	if err != nil {
		t.Fatalf("Build #2: %v", err)
	}

	names1 := nodeNames(fn1)
	names2 := nodeNames(fn2)
	if len(names1) != len(names2) {
		t.Fatalf("node counts differ: %d vs %d", len(names1), len(names2))
	}
	for i := range names1 {
		if names1[i] != names2[i] {
			t.Errorf("node %d name differs: %q vs %q", i, names1[i], names2[i])
		}
	}
}

func nodeNames(fn *peg.Function) []string {
	names := make([]string, len(fn.Nodes()))
	for i, n := range fn.Nodes() {
		names[i] = n.Name()
	}
	return names
}
