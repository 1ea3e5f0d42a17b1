/*
File    : gscript/value/scope.go
Author  : GokceOnal1
*/

package value

import "github.com/GokceOnal1/gscript/ast"

// Scope is a lexical environment: three independent name tables
// (variables, functions, blueprints) plus a link to the enclosing
// scope. Variables live behind a *Cell so that aliases of the same
// binding (list/object sharing) observe each
// other's writes; functions and blueprints are looked up by value
// since GScript never mutates a declaration after the fact.
//
// Parent is a plain pointer, not a reference-counted or weak one:
// Go's garbage collector reclaims a chain of scopes as soon as
// nothing reachable points into it, so the parent-retention problem
// that motivates weak links in other host languages simply doesn't
// arise here.
type Scope struct {
	Variables map[string]*Cell
	VarOrder  []string

	Functions map[string]*ast.FuncDef
	FuncOrder []string

	Blueprints map[string]*ast.Class

	Parent *Scope
}

// NewScope creates an empty scope chained to parent. parent is nil
// only for the root scope of a running program.
func NewScope(parent *Scope) *Scope {
	return &Scope{
		Variables:  make(map[string]*Cell),
		Functions:  make(map[string]*ast.FuncDef),
		Blueprints: make(map[string]*ast.Class),
		Parent:     parent,
	}
}

// AddVar binds name to v in this scope only, shadowing any binding of
// the same name in an enclosing scope. Returns false if name is
// already bound in this scope (the caller should treat that as a
// VariableDefinitionError: redeclaration).
func (s *Scope) AddVar(name string, v Value) bool {
	if _, exists := s.Variables[name]; exists {
		return false
	}
	s.Variables[name] = &Cell{V: v}
	s.VarOrder = append(s.VarOrder, name)
	return true
}

// SetVar finds the nearest existing binding of name, walking up the
// parent chain, and mutates its cell in place. Returns false if no
// such binding exists anywhere in the chain.
func (s *Scope) SetVar(name string, v Value) bool {
	for sc := s; sc != nil; sc = sc.Parent {
		if cell, ok := sc.Variables[name]; ok {
			cell.V = v
			return true
		}
	}
	return false
}

// ResolveVar finds name's cell by walking up the parent chain. The
// caller decides what to do with the cell: evaluating a VAR node reads
// cell.V (deep-cloning it first if it is an Object), while a
// LIST_REASSIGN indexes through cell.V directly to mutate shared
// state.
func (s *Scope) ResolveVar(name string) (*Cell, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if cell, ok := sc.Variables[name]; ok {
			return cell, true
		}
	}
	return nil, false
}

// AddFunc binds a function declaration in this scope only. Returns
// false if name is already bound here.
func (s *Scope) AddFunc(fn *ast.FuncDef) bool {
	if _, exists := s.Functions[fn.Name]; exists {
		return false
	}
	s.Functions[fn.Name] = fn
	s.FuncOrder = append(s.FuncOrder, fn.Name)
	return true
}

// ResolveFunc finds a function declaration by walking up the parent
// chain.
func (s *Scope) ResolveFunc(name string) (*ast.FuncDef, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if fn, ok := sc.Functions[name]; ok {
			return fn, true
		}
	}
	return nil, false
}

// AddBlueprint binds a blueprint declaration in this scope only.
// Returns false if name is already bound here.
func (s *Scope) AddBlueprint(cls *ast.Class) bool {
	if _, exists := s.Blueprints[cls.Name]; exists {
		return false
	}
	s.Blueprints[cls.Name] = cls
	return true
}

// ResolveBlueprint finds a blueprint declaration by walking up the
// parent chain. NEW resolves from the current scope; an object's
// scope has no parent but carries copies of the root's blueprints.
func (s *Scope) ResolveBlueprint(name string) (*ast.Class, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if cls, ok := sc.Blueprints[name]; ok {
			return cls, true
		}
	}
	return nil, false
}

// RootScope walks to the top of the parent chain. Ordinary function
// calls run in a scope parented to the root rather than to the
// caller's scope, so that a function body only ever sees globals plus
// its own locals and parameters — never whatever locals happen to be
// live at the call site.
func (s *Scope) RootScope() *Scope {
	sc := s
	for sc.Parent != nil {
		sc = sc.Parent
	}
	return sc
}

// DeepClone produces an independent copy of s: fresh cells for every
// variable (recursively deep-cloning any Object values so the clone
// owns its own nested scopes too), and a shared reference to the same
// parent. Function and blueprint declarations are immutable once
// parsed, so they are copied by reference, not cloned.
//
// This is what gives object VARs by-value semantics: every time a VAR
// holding an Object is read, the evaluator clones its scope so that
// mutating the result never reaches back into the original binding.
func (s *Scope) DeepClone() *Scope {
	clone := &Scope{
		Variables:  make(map[string]*Cell, len(s.Variables)),
		VarOrder:   append([]string(nil), s.VarOrder...),
		Functions:  make(map[string]*ast.FuncDef, len(s.Functions)),
		FuncOrder:  append([]string(nil), s.FuncOrder...),
		Blueprints: make(map[string]*ast.Class, len(s.Blueprints)),
		Parent:     s.Parent,
	}
	for name, cell := range s.Variables {
		clone.Variables[name] = &Cell{V: deepCloneValue(cell.V)}
	}
	for name, fn := range s.Functions {
		clone.Functions[name] = fn
	}
	for name, cls := range s.Blueprints {
		clone.Blueprints[name] = cls
	}
	return clone
}

// deepCloneValue clones v if it is a reference-shaped value that needs
// independent backing storage (Object), and returns every other kind
// unchanged since GScript's scalars are already copied by value in Go.
func deepCloneValue(v Value) Value {
	if obj, ok := v.(*Object); ok {
		return &Object{ClassName: obj.ClassName, Scope: obj.Scope.DeepClone()}
	}
	return v
}
