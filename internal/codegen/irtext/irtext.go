// Package irtext is a from-scratch, textual reference implementation of
// codegen.IRBuilder: it renders a readable pseudo-LLVM IR text form
// instead of driving a real native backend. It stands in for the
// out-of-scope native codegen backend (spec.md §1), letting
// `--show-llvm-ir` and golden-file tests run without an external LLVM
// binding. EmitObject is a documented stub — see its doc comment.
package irtext

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/go-arx/internal/codegen"
	"github.com/cwbudde/go-arx/internal/diag"
	"github.com/cwbudde/go-arx/internal/lexer"
)

type irType int

const (
	irFloat irType = iota
	irInt32
	irVoid
	irBool
)

func (irType) isCodegenType() {}

func (t irType) String() string {
	switch t {
	case irFloat:
		return "float"
	case irInt32:
		return "i32"
	case irVoid:
		return "void"
	case irBool:
		return "i1"
	default:
		return "?"
	}
}

// irValue is either a named SSA temporary/slot or an inline constant.
type irValue struct {
	name       string
	typ        irType
	isConst    bool
	constFloat float64
	constInt   int32
}

func (*irValue) isCodegenValue() {}

func (v *irValue) text() string {
	if v.isConst {
		if v.typ == irInt32 {
			return strconv.Itoa(int(v.constInt))
		}
		return strconv.FormatFloat(v.constFloat, 'g', -1, 64)
	}
	return v.name
}

type irBlock struct {
	label  string
	instrs []string
	fn     *irFunction
}

func (*irBlock) isCodegenBasicBlock() {}

type irFunction struct {
	name       string
	paramNames []string
	paramTypes []irType
	retType    irType
	defined    bool

	blocks     []*irBlock
	entry      *irBlock
	tempCount  int
	nameCounts map[string]int
}

func (*irFunction) isCodegenFunction() {}

type irModule struct {
	fns []*irFunction
}

func (*irModule) isCodegenModule() {}

// Builder implements codegen.IRBuilder, rendering pseudo-LLVM text.
// Grounded on tetratelabs/wazero's internal ssa.Builder API shape
// (allocate-basic-block / set-current-block / phi / branch / Format)
// — not an import, since that package is unexported; this is an
// independent implementation.
type Builder struct {
	mod      *irModule
	fnByName map[string]*irFunction
	cur      *irBlock
	curFn    *irFunction
}

// NewBuilder creates an empty Builder, mirroring wazero ssa.NewBuilder's
// zero-argument constructor shape.
func NewBuilder() *Builder {
	return &Builder{mod: &irModule{}, fnByName: make(map[string]*irFunction)}
}

func (b *Builder) FloatType() codegen.Type { return irFloat }
func (b *Builder) Int32Type() codegen.Type { return irInt32 }
func (b *Builder) VoidType() codegen.Type  { return irVoid }

func (b *Builder) ConstFloat(v float64) codegen.Value {
	return &irValue{isConst: true, constFloat: v, typ: irFloat}
}

func (b *Builder) ConstInt32(v int32) codegen.Value {
	return &irValue{isConst: true, constInt: v, typ: irInt32}
}

func (b *Builder) Module() codegen.Module { return b.mod }

func toIRTypes(ts []codegen.Type) []irType {
	out := make([]irType, len(ts))
	for i, t := range ts {
		out[i] = t.(irType)
	}
	return out
}

func (b *Builder) DeclareFunction(name string, paramTypes []codegen.Type, retType codegen.Type) (codegen.Function, error) {
	if fn, ok := b.fnByName[name]; ok {
		if len(fn.paramTypes) != len(paramTypes) {
			return nil, fmt.Errorf("redeclaration of %q with mismatched arity", name)
		}
		return fn, nil
	}
	fn := &irFunction{
		name:       name,
		paramTypes: toIRTypes(paramTypes),
		retType:    retType.(irType),
		nameCounts: make(map[string]int),
	}
	b.fnByName[name] = fn
	b.mod.fns = append(b.mod.fns, fn)
	return fn, nil
}

func (b *Builder) DefineFunction(name string, paramNames []string, paramTypes []codegen.Type, retType codegen.Type) (codegen.Function, error) {
	if len(paramNames) != len(paramTypes) {
		return nil, fmt.Errorf("defining %q: %d name(s) for %d parameter type(s)", name, len(paramNames), len(paramTypes))
	}
	fn, ok := b.fnByName[name]
	if !ok {
		fn = &irFunction{name: name, nameCounts: make(map[string]int)}
		b.fnByName[name] = fn
		b.mod.fns = append(b.mod.fns, fn)
	} else if fn.defined {
		return nil, fmt.Errorf("redefinition of %q", name)
	}
	fn.paramNames = append([]string(nil), paramNames...)
	fn.paramTypes = toIRTypes(paramTypes)
	fn.retType = retType.(irType)
	fn.defined = true
	return fn, nil
}

func (b *Builder) FunctionByName(name string) (codegen.Function, bool) {
	fn, ok := b.fnByName[name]
	if !ok {
		return nil, false
	}
	return fn, true
}

func (b *Builder) Param(fn codegen.Function, index int) codegen.Value {
	f := fn.(*irFunction)
	return &irValue{name: "%" + f.paramNames[index], typ: f.paramTypes[index]}
}

func (b *Builder) uniqueName(f *irFunction, base string) string {
	n := f.nameCounts[base]
	f.nameCounts[base]++
	if n == 0 {
		return "%" + base
	}
	return fmt.Sprintf("%%%s.%d", base, n)
}

func (b *Builder) nextTemp(f *irFunction) string {
	name := fmt.Sprintf("%%t%d", f.tempCount)
	f.tempCount++
	return name
}

func (b *Builder) AppendBasicBlock(fn codegen.Function, name string) codegen.BasicBlock {
	f := fn.(*irFunction)
	label := b.uniqueBlockLabel(f, name)
	blk := &irBlock{label: label, fn: f}
	f.blocks = append(f.blocks, blk)
	if f.entry == nil {
		f.entry = blk
	}
	return blk
}

func (b *Builder) uniqueBlockLabel(f *irFunction, base string) string {
	for _, existing := range f.blocks {
		if existing.label == base {
			return fmt.Sprintf("%s.%d", base, len(f.blocks))
		}
	}
	return base
}

func (b *Builder) PositionAtStart(blk codegen.BasicBlock) { b.position(blk) }
func (b *Builder) PositionAtEnd(blk codegen.BasicBlock)   { b.position(blk) }

func (b *Builder) position(blk codegen.BasicBlock) {
	bb := blk.(*irBlock)
	b.cur = bb
	b.curFn = bb.fn
}

func (b *Builder) CurrentBlock() codegen.BasicBlock  { return b.cur }
func (b *Builder) CurrentFunction() codegen.Function { return b.curFn }

func (b *Builder) emit(instr string) {
	b.cur.instrs = append(b.cur.instrs, instr)
}

func (b *Builder) EntryAlloca(fn codegen.Function, name string, typ codegen.Type) codegen.Value {
	f := fn.(*irFunction)
	t := typ.(irType)
	slot := b.uniqueName(f, name+".addr")
	f.entry.instrs = append(f.entry.instrs, fmt.Sprintf("%s = alloca %s", slot, t))
	return &irValue{name: slot, typ: t}
}

func (b *Builder) Load(slot codegen.Value) codegen.Value {
	s := slot.(*irValue)
	name := b.nextTemp(b.curFn)
	b.emit(fmt.Sprintf("%s = load %s, %s* %s", name, s.typ, s.typ, s.name))
	return &irValue{name: name, typ: s.typ}
}

func (b *Builder) Store(value, slot codegen.Value) {
	v := value.(*irValue)
	s := slot.(*irValue)
	b.emit(fmt.Sprintf("store %s %s, %s* %s", v.typ, v.text(), s.typ, s.name))
}

func (b *Builder) binArith(op string, lhs, rhs codegen.Value) codegen.Value {
	l := lhs.(*irValue)
	r := rhs.(*irValue)
	name := b.nextTemp(b.curFn)
	b.emit(fmt.Sprintf("%s = %s float %s, %s", name, op, l.text(), r.text()))
	return &irValue{name: name, typ: irFloat}
}

func (b *Builder) FAdd(lhs, rhs codegen.Value) codegen.Value { return b.binArith("fadd", lhs, rhs) }
func (b *Builder) FSub(lhs, rhs codegen.Value) codegen.Value { return b.binArith("fsub", lhs, rhs) }
func (b *Builder) FMul(lhs, rhs codegen.Value) codegen.Value { return b.binArith("fmul", lhs, rhs) }

var cmpCodes = map[string]string{
	"!=": "ne", "==": "eq", "<": "lt", ">": "gt", "<=": "le", ">=": "ge",
}

func (b *Builder) fcmp(prefix, op string, lhs, rhs codegen.Value) codegen.Value {
	l := lhs.(*irValue)
	r := rhs.(*irValue)
	name := b.nextTemp(b.curFn)
	code, ok := cmpCodes[op]
	if !ok {
		code = op
	}
	b.emit(fmt.Sprintf("%s = fcmp %s%s float %s, %s", name, prefix, code, l.text(), r.text()))
	return &irValue{name: name, typ: irBool}
}

func (b *Builder) FCmpOrdered(op string, lhs, rhs codegen.Value) codegen.Value {
	return b.fcmp("o", op, lhs, rhs)
}

func (b *Builder) FCmpUnordered(op string, lhs, rhs codegen.Value) codegen.Value {
	return b.fcmp("u", op, lhs, rhs)
}

func (b *Builder) UIToFP(v codegen.Value) codegen.Value {
	val := v.(*irValue)
	name := b.nextTemp(b.curFn)
	b.emit(fmt.Sprintf("%s = uitofp %s %s to float", name, val.typ, val.text()))
	return &irValue{name: name, typ: irFloat}
}

func (b *Builder) FPToUI(v codegen.Value) codegen.Value {
	val := v.(*irValue)
	name := b.nextTemp(b.curFn)
	b.emit(fmt.Sprintf("%s = fptoui %s %s to i32", name, val.typ, val.text()))
	return &irValue{name: name, typ: irInt32}
}

func (b *Builder) Call(fn codegen.Function, args []codegen.Value) (codegen.Value, error) {
	f := fn.(*irFunction)
	if len(args) != len(f.paramTypes) {
		return nil, fmt.Errorf("call to %q: expected %d argument(s), got %d", f.name, len(f.paramTypes), len(args))
	}
	argStrs := make([]string, len(args))
	for i, a := range args {
		av := a.(*irValue)
		argStrs[i] = fmt.Sprintf("%s %s", f.paramTypes[i], av.text())
	}
	if f.retType == irVoid {
		b.emit(fmt.Sprintf("call void @%s(%s)", f.name, strings.Join(argStrs, ", ")))
		return nil, nil
	}
	name := b.nextTemp(b.curFn)
	b.emit(fmt.Sprintf("%s = call %s @%s(%s)", name, f.retType, f.name, strings.Join(argStrs, ", ")))
	return &irValue{name: name, typ: f.retType}, nil
}

func (b *Builder) Phi(typ codegen.Type, incoming []codegen.PhiIncoming) codegen.Value {
	t := typ.(irType)
	name := b.nextTemp(b.curFn)
	parts := make([]string, len(incoming))
	for i, inc := range incoming {
		val := inc.Value.(*irValue)
		blk := inc.Block.(*irBlock)
		parts[i] = fmt.Sprintf("[ %s, %%%s ]", val.text(), blk.label)
	}
	b.emit(fmt.Sprintf("%s = phi %s %s", name, t, strings.Join(parts, ", ")))
	return &irValue{name: name, typ: t}
}

func (b *Builder) Br(target codegen.BasicBlock) {
	blk := target.(*irBlock)
	b.emit(fmt.Sprintf("br label %%%s", blk.label))
}

func (b *Builder) CBranch(cond codegen.Value, then, els codegen.BasicBlock) {
	c := cond.(*irValue)
	t := then.(*irBlock)
	e := els.(*irBlock)
	b.emit(fmt.Sprintf("br i1 %s, label %%%s, label %%%s", c.text(), t.label, e.label))
}

func (b *Builder) Ret(v codegen.Value) {
	if v == nil {
		b.emit("ret void")
		return
	}
	val := v.(*irValue)
	b.emit(fmt.Sprintf("ret %s %s", val.typ, val.text()))
}

// Verify is a no-op: the textual builder performs no well-formedness
// analysis of its own.
func (b *Builder) Verify(fn codegen.Function) error { return nil }

// Format renders every function declared or defined so far as
// pseudo-LLVM text, in module declaration order.
func (b *Builder) Format() string {
	var out strings.Builder
	for i, fn := range b.mod.fns {
		if i > 0 {
			out.WriteString("\n")
		}
		if !fn.defined {
			params := make([]string, len(fn.paramTypes))
			for i, t := range fn.paramTypes {
				params[i] = t.String()
			}
			fmt.Fprintf(&out, "declare %s @%s(%s)\n", fn.retType, fn.name, strings.Join(params, ", "))
			continue
		}
		params := make([]string, len(fn.paramTypes))
		for i, t := range fn.paramTypes {
			params[i] = fmt.Sprintf("%s %%%s", t, fn.paramNames[i])
		}
		fmt.Fprintf(&out, "define %s @%s(%s) {\n", fn.retType, fn.name, strings.Join(params, ", "))
		for _, blk := range fn.blocks {
			fmt.Fprintf(&out, "%s:\n", blk.label)
			for _, instr := range blk.instrs {
				fmt.Fprintf(&out, "  %s\n", instr)
			}
		}
		out.WriteString("}\n")
	}
	return out.String()
}

// EmitObject always fails: a real object-file backend is out of scope
// for this repository (spec.md §1, "native codegen internals") and no
// example in the corpus provides one to bind to — see SPEC_FULL.md's
// Open Question Resolution #4.
func (b *Builder) EmitObject(triple string) ([]byte, error) {
	return nil, diag.New(diag.Lowering, lexer.Position{},
		"object emission requires an external native backend (target %q)", triple)
}

var _ codegen.IRBuilder = (*Builder)(nil)
