// Package codegen implements the IRLoweringVisitor of spec.md §4.5: it
// walks an ast.Module and drives an external IRBuilder ("the
// IRBuilderCapability" of spec.md §6) to construct IR for it. The
// concrete IR representation is supplied by a collaborator — see
// internal/codegen/irtext for the textual reference implementation
// used by this repository's CLI and tests.
package codegen

// Value, BasicBlock, Function, Module, and Type are opaque handles
// produced and consumed by an IRBuilder. The visitor never inspects
// their contents directly; it only threads them between IRBuilder
// calls, the same way the teacher's Evaluator threads an opaque
// runtime Value between visit methods.
type (
	Value      interface{}
	BasicBlock interface{}
	Function   interface{}
	Module     interface{}
	Type       interface{}
)

// PhiIncoming pairs a value with the predecessor block it arrives from,
// for IRBuilder.Phi.
type PhiIncoming struct {
	Value Value
	Block BasicBlock
}

// StackSlot names a named_values entry in the visitor's scoped symbol
// table (spec.md §4.5): the alloca Value for a lexically bound name.
type StackSlot = Value
