package peg

import "fmt"

// UnsupportedTerminatorError reports a block whose terminator is neither
// single-successor nor two-way conditional (e.g. a switch). Fatal.
type UnsupportedTerminatorError struct {
	Block SourceBlock
}

func (e *UnsupportedTerminatorError) Error() string {
	return fmt.Sprintf("peg: block %q has an unsupported terminator (only unconditional and two-way conditional are handled)", e.Block.Name())
}

// MissingDominatorError reports a contract violation in decide-node
// construction: makeDecide was called with an empty edge set, a
// single-edge set failed to collapse, or a loop escape found no
// candidate loop. Fatal.
type MissingDominatorError struct {
	Reason string
}

func (e *MissingDominatorError) Error() string {
	return "peg: missing dominator: " + e.Reason
}

// EmptyEdgeSetError is returned by findCommonDominator when given zero
// edges. It is a type of its own, not wrapped in a MissingDominatorError.
type EmptyEdgeSetError struct{}

func (e *EmptyEdgeSetError) Error() string {
	return "peg: findCommonDominator called with an empty edge set"
}

// MissingConditionError reports that a Block was queried for its
// Condition node without having been registered during APEG construction.
// Fatal: every concrete Block is registered during APEG construction.
type MissingConditionError struct {
	Block *Node
}

func (e *MissingConditionError) Error() string {
	return fmt.Sprintf("peg: no Condition registered for block %q", e.Block.Name())
}

// MissingEntryError reports that BuildAPEG was asked to build over an
// Oracle whose EntryBlock never appeared in Blocks(). Fatal.
type MissingEntryError struct{}

func (e *MissingEntryError) Error() string {
	return "peg: oracle produced no entry block"
}

// UnresolvedPredecessorError reports that a block's predecessor was not
// itself present in Oracle.Blocks(), a contract violation of the
// caller's CFG. Fatal.
type UnresolvedPredecessorError struct {
	Block       SourceBlock
	Predecessor SourceBlock
}

func (e *UnresolvedPredecessorError) Error() string {
	return fmt.Sprintf("peg: block %q lists predecessor %q that is absent from the procedure's block list", e.Block.Name(), e.Predecessor.Name())
}

// UnsupportedLoopEscapeError names a loop and the dominator at which
// decide-node construction ascends past a loop the current edge set has
// not yet entered. Nothing in this package returns it: makeDecide's Case B
// performs that ascent, without synthesizing break-condition or pass
// nodes, instead of failing.
type UnsupportedLoopEscapeError struct {
	Dominator *Node
	Loop      Loop
}

func (e *UnsupportedLoopEscapeError) Error() string {
	return fmt.Sprintf("peg: decide-node construction would need to escape loop %d at dominator %q; Eval/Pass loop-escape synthesis is not implemented", e.Loop.ID(), e.Dominator.Name())
}
