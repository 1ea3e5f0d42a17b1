/*
File    : gscript/ast/ast.go
Author  : GokceOnal1
*/

// Package ast defines GScript's parse tree: the Node produced by the
// parser for every construct in the grammar, from literals up through
// blueprint declarations. Nodes are immutable once built; evaluating
// one (see the eval package) produces a value.Value, never mutates
// the node itself.
//
// Every node carries the Span of the token that produced it, so a
// runtime error raised while evaluating a node can still point back
// at the exact source location that built it.
package ast

import "github.com/GokceOnal1/gscript/token"

// Kind tags the syntactic form of a Node.
type Kind string

const (
	KString Kind = "STRING"
	KInt    Kind = "INT"
	KFloat  Kind = "FLOAT"
	KBool   Kind = "BOOL"
	KNoop   Kind = "NOOP"
	KEof    Kind = "EOF"
	KBreak  Kind = "BREAK"
	KList   Kind = "LIST"

	KBinOp       Kind = "BINOP"
	KUnOp        Kind = "UNOP"
	KIndex       Kind = "INDEX"
	KObjectIndex Kind = "OBJECT_INDEX"

	KVar            Kind = "VAR"
	KVarDef         Kind = "VAR_DEF"
	KVarReassign    Kind = "VAR_REASSIGN"
	KListReassign   Kind = "LIST_REASSIGN"
	KObjectReassign Kind = "OBJECT_REASSIGN"

	KFuncDef  Kind = "FUNC_DEF"
	KFuncCall Kind = "FUNC_CALL"
	KReturn   Kind = "RETURN"
	KIf       Kind = "IF"
	KWhile    Kind = "WHILE"
	KClass    Kind = "CLASS"
	KNew      Kind = "NEW"
	KCompound Kind = "COMPOUND"
	KImport   Kind = "IMPORT" // reserved, never produced by the parser
)

// Node is implemented by every parse tree type.
type Node interface {
	Kind() Kind
	Span() token.Span
}

// Base centralizes the Span bookkeeping every node needs. It is
// embedded (and exported) so constructors in other packages (the
// parser) can populate it directly in a struct literal.
type Base struct {
	Sp token.Span
}

func (b Base) Span() token.Span { return b.Sp }

// StringLit is a string literal.
type StringLit struct {
	Base
	Val string
}

func (n *StringLit) Kind() Kind { return KString }

// IntLit is an integer literal.
type IntLit struct {
	Base
	Val int32
}

func (n *IntLit) Kind() Kind { return KInt }

// FloatLit is a floating-point literal.
type FloatLit struct {
	Base
	Val float32
}

func (n *FloatLit) Kind() Kind { return KFloat }

// BoolLit is a `true` or `false` literal.
type BoolLit struct {
	Base
	Val bool
}

func (n *BoolLit) Kind() Kind { return KBool }

// NoopLit is the AST's "nothing here" node, substituted by the parser
// during error recovery in place of an unparsable subexpression.
type NoopLit struct{ Base }

func (n *NoopLit) Kind() Kind { return KNoop }

// EofLit is the grammar's EOF-sentinel production.
type EofLit struct{ Base }

func (n *EofLit) Kind() Kind { return KEof }

// BreakStmt is a `break` statement.
type BreakStmt struct{ Base }

func (n *BreakStmt) Kind() Kind { return KBreak }

// ListLit is a `[e1, e2, ...]` list literal.
type ListLit struct {
	Base
	Elements []Node
}

func (n *ListLit) Kind() Kind { return KList }

// BinOp is a binary operator expression.
type BinOp struct {
	Base
	Left  Node
	Op    token.Type
	Right Node
}

func (n *BinOp) Kind() Kind { return KBinOp }

// UnOp is a unary operator expression (`-x` or `!x`).
type UnOp struct {
	Base
	Op   token.Type
	Body Node
}

func (n *UnOp) Kind() Kind { return KUnOp }

// Index is one or more chained index operations: `target[i1][i2]...`.
type Index struct {
	Base
	Target  Node
	Indices []Node
}

func (n *Index) Kind() Kind { return KIndex }

// ObjectIndex is dot access into an object: `object.property`, where
// Property is a VAR (field read), a FUNC_CALL (method call), or an
// INDEX (indexing a list property). A chain `a.b.c` nests through
// Object: the outer node's Object is the ObjectIndex for `a.b`.
type ObjectIndex struct {
	Base
	Object   Node
	Property Node
}

func (n *ObjectIndex) Kind() Kind { return KObjectIndex }

// Var is a bare identifier reference.
type Var struct {
	Base
	Name string
}

func (n *Var) Kind() Kind { return KVar }

// VarDef is both a `assign NAME = expr` declaration and a function
// parameter declaration (`param NAME`, Value left nil).
type VarDef struct {
	Base
	Name  string
	Value Node
}

func (n *VarDef) Kind() Kind { return KVarDef }

// VarReassign is `NAME = expr`.
type VarReassign struct {
	Base
	Name  string
	Value Node
}

func (n *VarReassign) Kind() Kind { return KVarReassign }

// ListReassign is `TARGET[i1][i2]... = expr`, where Target is the
// Index node describing the left-hand side.
type ListReassign struct {
	Base
	Target *Index
	Value  Node
}

func (n *ListReassign) Kind() Kind { return KListReassign }

// ObjectReassign is `OBJ.prop = expr` or `OBJ.prop[i] = expr`, where
// Target is the ObjectIndex node describing the left-hand side.
type ObjectReassign struct {
	Base
	Target *ObjectIndex
	Value  Node
}

func (n *ObjectReassign) Kind() Kind { return KObjectReassign }

// FuncDef is a function (or method) declaration.
type FuncDef struct {
	Base
	Name string
	Args []*VarDef
	Body *Compound
}

func (n *FuncDef) Kind() Kind { return KFuncDef }

// FuncCall is `name(args...)`.
type FuncCall struct {
	Base
	Name string
	Args []Node
}

func (n *FuncCall) Kind() Kind { return KFuncCall }

// Return is `return expr`.
type Return struct {
	Base
	Value Node
}

func (n *Return) Kind() Kind { return KReturn }

// If is an if/else-if/else chain. Conditions[i] guards Bodies[i];
// Else runs if no condition matched and is nil if there is no else.
type If struct {
	Base
	Conditions []Node
	Bodies     []*Compound
	Else       *Compound
}

func (n *If) Kind() Kind { return KIf }

// While is a `while (cond) { body }` loop.
type While struct {
	Base
	Condition Node
	Body      *Compound
}

func (n *While) Kind() Kind { return KWhile }

// Class is a `blueprint NAME { ... }` declaration. PropOrder and
// MethodOrder preserve declaration order for deterministic object
// construction and display; the maps give O(1) lookup by name.
type Class struct {
	Base
	Name        string
	Properties  map[string]*VarDef
	PropOrder   []string
	Methods     map[string]*FuncDef
	MethodOrder []string
}

func (n *Class) Kind() Kind { return KClass }

// New is `new NAME(args...)`.
type New struct {
	Base
	Name string
	Args []Node
}

func (n *New) Kind() Kind { return KNew }

// Compound is a sequence of statements separated by `;`.
type Compound struct {
	Base
	Statements []Node
}

func (n *Compound) Kind() Kind { return KCompound }

// Import is reserved for cross-file imports; no parser production
// emits it and the evaluator has no case for it.
type Import struct {
	Base
	Path string
}

func (n *Import) Kind() Kind { return KImport }

// NewBase is a small constructor helper so parser code can write
// `ast.NewBase(span)` instead of repeating the struct literal.
func NewBase(sp token.Span) Base { return Base{Sp: sp} }
