package peg

import "fmt"

// Kind tags which variant a Node is. Go has no sum types, so Node is one
// struct with a Kind discriminant and per-variant fields left zero when
// unused, matched at use sites with a switch over Kind, the same shape
// Go's own SSA IR uses for its single Value type.
type Kind uint8

const (
	// BlockKind nodes stand for a source basic block, concrete or a
	// virtual-forward duplicate of a loop header.
	BlockKind Kind = iota
	// ConditionKind nodes mark the predicate of a Block's terminator.
	ConditionKind
	// PhiKind nodes select between a true and a false child based on a
	// Condition.
	PhiKind
	// ThetaKind nodes hold a loop's first-iteration and recurrence
	// values.
	ThetaKind
)

func (k Kind) String() string {
	switch k {
	case BlockKind:
		return "block"
	case ConditionKind:
		return "condition"
	case PhiKind:
		return "phi"
	case ThetaKind:
		return "theta"
	default:
		return "unknown"
	}
}

// Node is a PEG value. Only the fields relevant to Kind are meaningful;
// see the per-variant accessors below for the intended read surface.
type Node struct {
	id   int
	fn   *Function
	name string
	kind Kind

	// --- BlockKind payload ---
	source           SourceBlock
	loop             Loop
	isEntry          bool
	isVirtualForward bool
	peer             *Node // concrete <-> virtual-forward cross-reference
	preds            []*Node
	succs            []*Node
	child            *Node // set at most once; the entry Block gets one only if it is a loop header

	// --- ConditionKind payload ---
	conditionOf *Node // the concrete Block whose terminator this predicates

	// --- PhiKind payload ---
	cond      *Node
	whenTrue  *Node
	whenFalse *Node

	// --- ThetaKind payload ---
	base       *Node
	recurrence *Node

	// valueUsers records, for any node, the set of Phi/Theta nodes that
	// reference it as an operand. It exists purely to answer "does this
	// Condition have predecessors" for the DOT hidden-node rule; the
	// build algorithm never reads it.
	valueUsers []*Node
}

// ID returns the node's identity, stable and unique within its Function.
func (n *Node) ID() int { return n.id }

// Name returns the node's human-readable name.
func (n *Node) Name() string { return n.name }

// Kind returns the node's tag.
func (n *Node) Kind() Kind { return n.kind }

func (n *Node) String() string { return n.name }

// Function owns every Node created during a build and is the only thing
// that outlives a single APEG construction. Nodes hold non-owning
// references into their Function, including cyclic ones (a Theta's
// recurrence transitively reaches its own header). There is no
// reference counting to break.
type Function struct {
	Name  string
	nodes []*Node

	blockOf          map[SourceBlock]*Node // concrete Block only
	condOf           map[*Node]*Node       // concrete Block -> its Condition
	virtualForwardOf map[*Node]*Node       // header Block -> its virtual-forward twin

	entry    *Node
	rootEdge Edge

	dom *PEGDominatorTree
}

// Nodes returns every node in creation order.
func (f *Function) Nodes() []*Node { return f.nodes }

// Entry returns the unique Block with IsEntry set.
func (f *Function) Entry() *Node { return f.entry }

func (f *Function) newNode(kind Kind, name string) *Node {
	n := &Node{id: len(f.nodes), fn: f, name: name, kind: kind}
	f.nodes = append(f.nodes, n)
	return n
}

func (f *Function) newBlockNode(source SourceBlock, loop Loop, isEntry, isVirtualForward bool) *Node {
	name := source.Name()
	if isVirtualForward {
		name += ".virtual"
	}
	n := f.newNode(BlockKind, name)
	n.source = source
	n.loop = loop
	n.isEntry = isEntry
	n.isVirtualForward = isVirtualForward
	return n
}

func (f *Function) newConditionNode(of *Node) *Node {
	n := f.newNode(ConditionKind, "cond."+of.name)
	n.conditionOf = of
	return n
}

// NewPhi constructs a Phi node selecting whenTrue when cond holds and
// whenFalse otherwise. A Phi is immutable after construction.
func (f *Function) NewPhi(cond, whenTrue, whenFalse *Node) *Node {
	n := f.newNode(PhiKind, fmt.Sprintf("phi.%d", len(f.nodes)))
	n.cond, n.whenTrue, n.whenFalse = cond, whenTrue, whenFalse
	cond.addUser(n)
	whenTrue.addUser(n)
	whenFalse.addUser(n)
	return n
}

// NewTheta constructs a Theta node whose value is base on the first
// iteration and recurrence on every subsequent one.
func (f *Function) NewTheta(base, recurrence *Node) *Node {
	n := f.newNode(ThetaKind, fmt.Sprintf("theta.%d", len(f.nodes)))
	n.base, n.recurrence = base, recurrence
	base.addUser(n)
	recurrence.addUser(n)
	return n
}

func (n *Node) addUser(user *Node) {
	n.valueUsers = append(n.valueUsers, user)
}

// --- Block accessors ---

// Source returns the source basic block this node stands for. Both a
// concrete Block and its virtual-forward twin return the same block.
func (n *Node) Source() SourceBlock { return n.source }

// Loop returns the surrounding loop of a concrete Block, or nil. A
// virtual-forward node always returns nil (it has no surrounding loop).
func (n *Node) Loop() Loop { return n.loop }

// IsEntry reports whether this is the unique entry Block.
func (n *Node) IsEntry() bool { return n.isEntry }

// IsVirtualForward reports whether this Block is a virtual-forward
// duplicate of a loop header.
func (n *Node) IsVirtualForward() bool { return n.isVirtualForward }

// Peer returns the cross-referenced Block: a virtual-forward node's
// concrete twin, or a concrete loop header's virtual-forward twin. It is
// nil for every other Block.
func (n *Node) Peer() *Node { return n.peer }

// Preds returns the node's APEG predecessor Blocks.
func (n *Node) Preds() []*Node { return n.preds }

// Succs returns the node's APEG successor Blocks.
func (n *Node) Succs() []*Node { return n.succs }

// Child returns the value expression computed for this Block, or nil
// before computeInputs has run. It stays nil for the entry Block unless
// the entry is also a loop header.
func (n *Node) Child() *Node { return n.child }

func (n *Node) setChild(child *Node) {
	if n.child != nil {
		panic("peg: child already set for " + n.name)
	}
	n.child = child
}

// IsLoopHeader reports whether this is a concrete Block that is the
// header of a loop (virtual-forward nodes are never loop headers).
func (n *Node) IsLoopHeader() bool {
	return n.kind == BlockKind && !n.isVirtualForward && n.peer != nil
}

// --- Condition accessors ---

// ConditionOf returns the Block this Condition predicates.
func (n *Node) ConditionOf() *Node { return n.conditionOf }

// --- Phi accessors ---

// Cond, WhenTrue and WhenFalse return a Phi's three operands.
func (n *Node) Cond() *Node      { return n.cond }
func (n *Node) WhenTrue() *Node  { return n.whenTrue }
func (n *Node) WhenFalse() *Node { return n.whenFalse }

// --- Theta accessors ---

// Base and Recurrence return a Theta's two operands.
func (n *Node) Base() *Node       { return n.base }
func (n *Node) Recurrence() *Node { return n.recurrence }

// ValuePredecessors returns the Phi/Theta nodes that reference n as an
// operand. Used only by the DOT serializer's hidden-node rule.
func (n *Node) ValuePredecessors() []*Node { return n.valueUsers }

// ConditionFor returns the Condition node registered for a concrete Block,
// or an error if b was never registered (a contract violation: every
// concrete Block gets a Condition during APEG construction).
func (f *Function) ConditionFor(b *Node) (*Node, error) {
	c, ok := f.condOf[b]
	if !ok {
		return nil, &MissingConditionError{Block: b}
	}
	return c, nil
}

// VirtualForwardOf returns the virtual-forward twin of a concrete loop
// header Block, or nil if b is not a loop header.
func (f *Function) VirtualForwardOf(b *Node) *Node {
	return f.virtualForwardOf[b]
}

// BlockFor returns the concrete Block node for a source basic block, or
// nil if none was registered.
func (f *Function) BlockFor(b SourceBlock) *Node {
	return f.blockOf[b]
}

// Dominators returns the PEG dominator tree computed over the APEG.
func (f *Function) Dominators() *PEGDominatorTree { return f.dom }

// RootEdge returns the synthetic edge whose destination is the entry
// Block and whose source is absent.
func (f *Function) RootEdge() Edge { return f.rootEdge }
