/*
File    : gscript/value/value.go
Author  : GokceOnal1
*/

// Package value defines GScript's runtime value model: the result of
// evaluating an AST node, as opposed to the ast package's parse-tree
// representation of what to evaluate.
//
// Value and Scope live in the same package rather than two: an Object
// value carries its own Scope, and a Scope's variable cells can in
// turn hold Object values. That mutual recursion is natural for a
// tree-walking interpreter with first-class objects, and keeping both
// types in one package avoids manufacturing an import cycle to keep
// them apart.
package value

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Kind tags the dynamic type of a Value for type-of queries, dispatch,
// and the "==" / "!=" same-kind checks the evaluator performs.
type Kind string

const (
	KString Kind = "String"
	KInt    Kind = "Integer"
	KFloat  Kind = "Float"
	KBool   Kind = "Boolean"
	KType   Kind = "Type"
	KNoop   Kind = "Noop"
	KEof    Kind = "Eof"
	KList   Kind = "List_Obj"
	KObject Kind = "Object"
	KFile   Kind = "File"

	// Sentinels used to unwind control flow through nested Eval
	// calls; never observed as the final result of a successful
	// evaluation (see eval's invokeFunction / COMPOUND's short-circuit).
	KReturn Kind = "Return"
	KBreak  Kind = "Break"
)

// Value is the result of evaluating an AST node. Every concrete type
// below implements it.
type Value interface {
	Kind() Kind
	ToString() string
}

// Cell is a shared, mutable holder for a Value. Scope bindings and
// list elements are reached through a *Cell rather than a bare Value
// so that one write is visible through every alias of that cell —
// this is what gives `a[2] = 5` and in-place property mutation their
// effect (see LIST_REASSIGN and OBJECT_REASSIGN in the eval package).
type Cell struct {
	V Value
}

// String is a GScript string value.
type String struct{ Val string }

func (s *String) Kind() Kind      { return KString }
func (s *String) ToString() string { return s.Val }

// Int is a 32-bit signed integer value.
type Int struct{ Val int32 }

func (i *Int) Kind() Kind      { return KInt }
func (i *Int) ToString() string { return strconv.FormatInt(int64(i.Val), 10) }

// Float is a 32-bit floating-point value.
type Float struct{ Val float32 }

func (f *Float) Kind() Kind { return KFloat }
func (f *Float) ToString() string {
	return strconv.FormatFloat(float64(f.Val), 'f', -1, 32)
}

// Bool is a boolean value.
type Bool struct{ Val bool }

func (b *Bool) Kind() Kind      { return KBool }
func (b *Bool) ToString() string { return strconv.FormatBool(b.Val) }

// Type is the result of the type(v) builtin: a string tag naming the
// runtime kind of some other value.
type Type struct{ Tag string }

func (t *Type) Kind() Kind      { return KType }
func (t *Type) ToString() string { return t.Tag }

// Noop is the "did nothing" result produced by statements that have no
// useful value (e.g. a function call falling off the end of its body
// without a RETURN) and by the parser's error-recovery substitutions.
type Noop struct{}

func (n *Noop) Kind() Kind      { return KNoop }
func (n *Noop) ToString() string { return "no operation" }

// Eof is the literal value of the grammar's EOF-sentinel production,
// used by the parser when it must produce *some* expression node at
// the very end of the token stream.
type Eof struct{}

func (e *Eof) Kind() Kind      { return KEof }
func (e *Eof) ToString() string { return "EOF" }

// List is a mutable, ordered sequence of shared cells. Reading a LIST
// literal does not deep-copy its elements: it evaluates each element
// expression once and wraps the result in a fresh cell (see
// eval's evalList), after which the List value itself may be copied
// freely (e.g. on `assign b = a`) while still sharing the same
// underlying cells — a plain Go slice copy aliases its backing array,
// which is exactly the sharing semantics the list needs.
type List struct {
	Elements []*Cell
}

func (l *List) Kind() Kind { return KList }
func (l *List) ToString() string {
	parts := make([]string, len(l.Elements))
	for i, c := range l.Elements {
		parts[i] = c.V.ToString()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Return wraps the payload of a RETURN statement so that COMPOUND,
// IF, and WHILE can unwind through nested Eval calls with a single
// kind check, instead of every caller threading an explicit
// "did this return?" boolean.
type Return struct{ Value Value }

func (r *Return) Kind() Kind      { return KReturn }
func (r *Return) ToString() string { return r.Value.ToString() }

// Break is the sentinel produced by a BREAK statement; WHILE consumes
// it locally and everything else propagates it upward unchanged.
type Break struct{}

func (b *Break) Kind() Kind      { return KBreak }
func (b *Break) ToString() string { return "break" }

// IsControl reports whether v is a RETURN or BREAK sentinel rather
// than an ordinary value.
func IsControl(v Value) bool {
	k := v.Kind()
	return k == KReturn || k == KBreak
}

// TypeName implements the type(v) builtin's mapping from runtime kind
// to display name, including the blueprint-name special case for
// objects.
func TypeName(v Value) string {
	if obj, ok := v.(*Object); ok {
		return obj.ClassName
	}
	switch v.Kind() {
	case KInt:
		return "Integer"
	case KFloat:
		return "Float"
	case KString:
		return "String"
	case KBool:
		return "Boolean"
	case KList:
		return "List_Obj"
	case KFile:
		return "File"
	case KNoop:
		return "Null"
	default:
		return string(v.Kind())
	}
}

// fmtQuoted renders v the way an OBJECT's ToString renders a property
// value: strings in double quotes, everything else via ToString.
func fmtQuoted(v Value) string {
	if s, ok := v.(*String); ok {
		return fmt.Sprintf("%q", s.Val)
	}
	return v.ToString()
}

// File is a handle returned by the fopen builtin, wrapping a native
// OS file descriptor. It is a distinct value kind rather than an
// Object so that fread/fwrite/fseek/ftell/fclose can work on it
// without going through blueprint/method machinery.
type File struct {
	Handle *os.File
	Path   string
}

func (f *File) Kind() Kind      { return KFile }
func (f *File) ToString() string { return fmt.Sprintf("<file: %s>", f.Path) }

// Object is an instance of a blueprint: a class name plus the Scope
// that holds its properties and bound methods. Reading an OBJECT
// variable deep-clones this Scope (see Scope.DeepClone), which is what
// gives GScript objects by-value semantics despite being implemented
// as a reference type under the hood.
type Object struct {
	ClassName string
	Scope     *Scope
}

func (o *Object) Kind() Kind { return KObject }

// ToString renders "ClassName instance { k: "v", ..., method: function(params: a, b, ...) }".
// Properties are listed in declaration order, then methods, skipping
// the constructor ("create") since it is not a callable property of
// the finished instance.
func (o *Object) ToString() string {
	var parts []string
	for _, name := range o.Scope.VarOrder {
		cell := o.Scope.Variables[name]
		parts = append(parts, fmt.Sprintf("%s: %s", name, fmtQuoted(cell.V)))
	}
	for _, name := range o.Scope.FuncOrder {
		if name == "create" {
			continue
		}
		fn := o.Scope.Functions[name]
		params := make([]string, len(fn.Args))
		for i, a := range fn.Args {
			params[i] = a.Name
		}
		parts = append(parts, fmt.Sprintf("%s: function(params: %s)", name, strings.Join(params, ", ")))
	}
	return fmt.Sprintf("%s instance { %s }", o.ClassName, strings.Join(parts, ", "))
}
