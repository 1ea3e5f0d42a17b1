/*
File    : gscript/eval/eval.go
Author  : GokceOnal1
*/

// Package eval walks an ast.Node tree and produces value.Value
// results, mutating value.Scope environments along the way.
//
// The evaluator holds exactly one logical "current scope" pointer; it
// is swapped for the duration of a function call, a method dispatch,
// or a loop body and restored when that evaluation returns. A fatal
// error (a PushFatal panic) unwinds without restoring it; a caller
// that recovers and keeps the Evaluator resets Current itself.
package eval

import (
	"bufio"
	"io"
	"math"

	"github.com/GokceOnal1/gscript/ast"
	"github.com/GokceOnal1/gscript/errs"
	"github.com/GokceOnal1/gscript/token"
	"github.com/GokceOnal1/gscript/value"
)

// Evaluator owns the root scope of a running program and the
// "current" scope pointer that every Eval call reads and writes
// through.
type Evaluator struct {
	Root    *value.Scope
	Current *value.Scope
	Sink    *errs.Sink
	Writer  io.Writer
	Reader  *bufio.Reader
}

// New creates an Evaluator with a fresh root scope, reporting to sink,
// printing builtin output to w and reading builtin input from r.
func New(sink *errs.Sink, w io.Writer, r io.Reader) *Evaluator {
	root := value.NewScope(nil)
	return &Evaluator{Root: root, Current: root, Sink: sink, Writer: w, Reader: bufio.NewReader(r)}
}

// Run evaluates a whole program's top-level compound in the root scope.
func (e *Evaluator) Run(prog *ast.Compound) value.Value {
	return e.Eval(prog)
}

// Eval dispatches on the dynamic type of n. Per the testable
// properties this is built against, a successful Eval of an
// expression always returns a value kind (STRING/INT/FLOAT/BOOL/LIST/
// OBJECT/TYPE/NOOP) or a control sentinel (RETURN/BREAK) — never an
// unevaluated node shape like VAR or BINOP.
func (e *Evaluator) Eval(n ast.Node) value.Value {
	switch node := n.(type) {
	case *ast.Compound:
		return e.evalCompound(node)
	case *ast.IntLit:
		return &value.Int{Val: node.Val}
	case *ast.FloatLit:
		return &value.Float{Val: node.Val}
	case *ast.StringLit:
		return &value.String{Val: node.Val}
	case *ast.BoolLit:
		return &value.Bool{Val: node.Val}
	case *ast.NoopLit:
		return &value.Noop{}
	case *ast.EofLit:
		return &value.Eof{}
	case *ast.BreakStmt:
		return &value.Break{}
	case *ast.ListLit:
		return e.evalList(node)
	case *ast.BinOp:
		return e.evalBinOp(node)
	case *ast.UnOp:
		return e.evalUnOp(node)
	case *ast.Var:
		return e.evalVar(node)
	case *ast.VarDef:
		return e.evalVarDef(node)
	case *ast.VarReassign:
		return e.evalVarReassign(node)
	case *ast.Index:
		return e.evalIndex(node)
	case *ast.ListReassign:
		return e.evalListReassign(node)
	case *ast.ObjectIndex:
		return e.evalObjectIndex(node)
	case *ast.ObjectReassign:
		return e.evalObjectReassign(node)
	case *ast.FuncDef:
		return e.evalFuncDef(node)
	case *ast.FuncCall:
		return e.callFunction(node, nil)
	case *ast.Return:
		return &value.Return{Value: e.Eval(node.Value)}
	case *ast.If:
		return e.evalIf(node)
	case *ast.While:
		return e.evalWhile(node)
	case *ast.Class:
		return e.evalClass(node)
	case *ast.New:
		return e.evalNew(node)
	default:
		e.Sink.PushFatal(errs.SyntaxError, n.Span(), "cannot evaluate node of type %T", n)
		return &value.Noop{}
	}
}

func (e *Evaluator) evalCompound(c *ast.Compound) value.Value {
	var last value.Value = &value.Noop{}
	for _, stmt := range c.Statements {
		v := e.Eval(stmt)
		if value.IsControl(v) {
			return v
		}
		last = v
	}
	return last
}

func (e *Evaluator) evalList(n *ast.ListLit) value.Value {
	cells := make([]*value.Cell, len(n.Elements))
	for i, el := range n.Elements {
		cells[i] = &value.Cell{V: e.Eval(el)}
	}
	return &value.List{Elements: cells}
}

func (e *Evaluator) evalUnOp(n *ast.UnOp) value.Value {
	v := e.Eval(n.Body)
	switch n.Op {
	case token.MINUS:
		switch x := v.(type) {
		case *value.Int:
			return &value.Int{Val: -x.Val}
		case *value.Float:
			return &value.Float{Val: -x.Val}
		default:
			e.Sink.Push(errs.TypeError, n.Span(), "unary '-' requires a numeric operand")
			return &value.Noop{}
		}
	case token.NOT:
		if b, ok := v.(*value.Bool); ok {
			return &value.Bool{Val: !b.Val}
		}
		e.Sink.Push(errs.TypeError, n.Span(), "unary '!' requires a boolean operand")
		return &value.Noop{}
	}
	return &value.Noop{}
}

func (e *Evaluator) evalBinOp(n *ast.BinOp) value.Value {
	l := e.Eval(n.Left)
	r := e.Eval(n.Right)
	switch n.Op {
	case token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT:
		return e.evalArith(n, l, r)
	case token.EQ, token.NE:
		return e.evalEquality(n, l, r)
	case token.LT, token.LE, token.GT, token.GE:
		return e.evalOrdering(n, l, r)
	case token.AMP, token.PIPE:
		return e.evalLogical(n, l, r)
	}
	e.Sink.Push(errs.SyntaxError, n.Span(), "unknown operator %q", n.Op)
	return &value.Noop{}
}

// asFloat widens an Int or Float value to float32 for mixed-type
// arithmetic; any other kind fails the conversion.
func asFloat(v value.Value) (float32, bool) {
	switch x := v.(type) {
	case *value.Int:
		return float32(x.Val), true
	case *value.Float:
		return x.Val, true
	}
	return 0, false
}

// evalArith implements Integer+Integer stays Integer; any Float
// participant promotes both operands to Float. Division and modulus
// by zero are fatal; a non-numeric operand is a (non-fatal) TypeError
// that yields NOOP.
func (e *Evaluator) evalArith(n *ast.BinOp, l, r value.Value) value.Value {
	if li, lok := l.(*value.Int); lok {
		if ri, rok := r.(*value.Int); rok {
			switch n.Op {
			case token.PLUS:
				return &value.Int{Val: li.Val + ri.Val}
			case token.MINUS:
				return &value.Int{Val: li.Val - ri.Val}
			case token.STAR:
				return &value.Int{Val: li.Val * ri.Val}
			case token.SLASH:
				if ri.Val == 0 {
					e.Sink.PushFatal(errs.DivideByZeroError, n.Span(), "division by zero")
				}
				return &value.Int{Val: li.Val / ri.Val}
			case token.PERCENT:
				if ri.Val == 0 {
					e.Sink.PushFatal(errs.DivideByZeroError, n.Span(), "modulus by zero")
				}
				return &value.Int{Val: li.Val % ri.Val}
			}
		}
	}
	lf, lok := asFloat(l)
	rf, rok := asFloat(r)
	if lok && rok {
		switch n.Op {
		case token.PLUS:
			return &value.Float{Val: lf + rf}
		case token.MINUS:
			return &value.Float{Val: lf - rf}
		case token.STAR:
			return &value.Float{Val: lf * rf}
		case token.SLASH:
			if rf == 0 {
				e.Sink.PushFatal(errs.DivideByZeroError, n.Span(), "division by zero")
			}
			return &value.Float{Val: lf / rf}
		case token.PERCENT:
			if rf == 0 {
				e.Sink.PushFatal(errs.DivideByZeroError, n.Span(), "modulus by zero")
			}
			return &value.Float{Val: float32(math.Mod(float64(lf), float64(rf)))}
		}
	}
	e.Sink.Push(errs.TypeError, n.Span(), "operator %q requires numeric operands", n.Op)
	return &value.Noop{}
}

func (e *Evaluator) evalEquality(n *ast.BinOp, l, r value.Value) value.Value {
	eq := valuesEqual(l, r)
	if n.Op == token.NE {
		eq = !eq
	}
	return &value.Bool{Val: eq}
}

// valuesEqual implements the same-kind rules: numeric, BOOL↔BOOL,
// STRING↔STRING, and TYPE↔TYPE. Anything else compares unequal.
func valuesEqual(l, r value.Value) bool {
	if li, ok := l.(*value.Int); ok {
		if ri, ok := r.(*value.Int); ok {
			return li.Val == ri.Val
		}
	}
	if lf, lok := asFloat(l); lok {
		if rf, rok := asFloat(r); rok {
			return lf == rf
		}
	}
	if lb, ok := l.(*value.Bool); ok {
		if rb, ok := r.(*value.Bool); ok {
			return lb.Val == rb.Val
		}
	}
	if ls, ok := l.(*value.String); ok {
		if rs, ok := r.(*value.String); ok {
			return ls.Val == rs.Val
		}
	}
	if lt, ok := l.(*value.Type); ok {
		if rt, ok := r.(*value.Type); ok {
			return lt.Tag == rt.Tag
		}
	}
	return false
}

func (e *Evaluator) evalOrdering(n *ast.BinOp, l, r value.Value) value.Value {
	lf, lok := asFloat(l)
	rf, rok := asFloat(r)
	if !lok || !rok {
		e.Sink.Push(errs.TypeError, n.Span(), "ordering comparisons require numeric operands")
		return &value.Noop{}
	}
	var result bool
	switch n.Op {
	case token.LT:
		result = lf < rf
	case token.LE:
		result = lf <= rf
	case token.GT:
		result = lf > rf
	case token.GE:
		result = lf >= rf
	}
	return &value.Bool{Val: result}
}

func (e *Evaluator) evalLogical(n *ast.BinOp, l, r value.Value) value.Value {
	lb, lok := l.(*value.Bool)
	rb, rok := r.(*value.Bool)
	if !lok || !rok {
		e.Sink.Push(errs.TypeError, n.Span(), "operator %q requires boolean operands", n.Op)
		return &value.Noop{}
	}
	switch n.Op {
	case token.AMP:
		return &value.Bool{Val: lb.Val && rb.Val}
	case token.PIPE:
		return &value.Bool{Val: lb.Val || rb.Val}
	}
	return &value.Noop{}
}

// evalVar resolves name up the current scope chain and returns the
// bound value. If the binding holds an Object, a deep clone of its
// scope is returned instead, giving VAR reads by-value semantics for
// objects (see value.Scope.DeepClone).
func (e *Evaluator) evalVar(n *ast.Var) value.Value {
	cell, ok := e.Current.ResolveVar(n.Name)
	if !ok {
		e.Sink.PushFatal(errs.IdentifierError, n.Span(), "undefined variable %q", n.Name)
		return &value.Noop{}
	}
	if obj, ok := cell.V.(*value.Object); ok {
		return &value.Object{ClassName: obj.ClassName, Scope: obj.Scope.DeepClone()}
	}
	return cell.V
}

func (e *Evaluator) evalVarDef(n *ast.VarDef) value.Value {
	if token.Keywords[n.Name] {
		e.Sink.PushFatal(errs.VariableDefinitionError, n.Span(), "%q is a reserved keyword", n.Name)
	}
	v := e.Eval(n.Value)
	if !e.Current.AddVar(n.Name, v) {
		e.Sink.PushFatal(errs.VariableDefinitionError, n.Span(), "variable %q is already defined", n.Name)
	}
	return &value.Noop{}
}

func (e *Evaluator) evalVarReassign(n *ast.VarReassign) value.Value {
	v := e.Eval(n.Value)
	if !e.Current.SetVar(n.Name, v) {
		e.Sink.PushFatal(errs.IdentifierError, n.Span(), "undefined variable %q", n.Name)
	}
	return &value.Noop{}
}

// evalIndex descends target through each index expression in order,
// requiring an Int index and a List target at every level.
func (e *Evaluator) evalIndex(n *ast.Index) value.Value {
	cur := e.Eval(n.Target)
	for _, idxNode := range n.Indices {
		idxVal := e.Eval(idxNode)
		idxInt, ok := idxVal.(*value.Int)
		if !ok {
			e.Sink.PushFatal(errs.ListError, n.Span(), "index must be an integer")
		}
		lst, ok := cur.(*value.List)
		if !ok {
			e.Sink.PushFatal(errs.ListError, n.Span(), "cannot index a non-list value")
		}
		i := int(idxInt.Val)
		if i < 0 || i >= len(lst.Elements) {
			e.Sink.PushFatal(errs.ListError, n.Span(), "index %d out of bounds", i)
		}
		cur = lst.Elements[i].V
	}
	return cur
}

// applyListReassign descends from rootCell's value through indices,
// replacing the element at the final index with newVal in place. Used
// both by a plain LIST_REASSIGN and by OBJECT_REASSIGN's
// trailing-index case.
func (e *Evaluator) applyListReassign(span token.Span, rootCell *value.Cell, indices []ast.Node, newVal value.Value) {
	cur := rootCell.V
	for depth, idxNode := range indices {
		idxVal := e.Eval(idxNode)
		idxInt, ok := idxVal.(*value.Int)
		if !ok {
			e.Sink.PushFatal(errs.ListError, span, "index must be an integer")
		}
		lst, ok := cur.(*value.List)
		if !ok {
			e.Sink.PushFatal(errs.ListError, span, "cannot index a non-list value")
		}
		i := int(idxInt.Val)
		if i < 0 || i >= len(lst.Elements) {
			e.Sink.PushFatal(errs.ListError, span, "index %d out of bounds", i)
		}
		if depth == len(indices)-1 {
			lst.Elements[i].V = newVal
		} else {
			cur = lst.Elements[i].V
		}
	}
}

func (e *Evaluator) evalListReassign(n *ast.ListReassign) value.Value {
	varNode, ok := n.Target.Target.(*ast.Var)
	if !ok {
		e.Sink.PushFatal(errs.ListError, n.Span(), "list assignment target must be a variable")
		return &value.Noop{}
	}
	cell, ok := e.Current.ResolveVar(varNode.Name)
	if !ok {
		e.Sink.PushFatal(errs.IdentifierError, n.Span(), "undefined variable %q", varNode.Name)
		return &value.Noop{}
	}
	newVal := e.Eval(n.Value)
	e.applyListReassign(n.Span(), cell, n.Target.Indices, newVal)
	e.Current.SetVar(varNode.Name, cell.V)
	return newVal
}

// evalObjectIndex evaluates the left side to an Object and interprets
// the right side under the object's own scope.
func (e *Evaluator) evalObjectIndex(n *ast.ObjectIndex) value.Value {
	objVal := e.Eval(n.Object)
	obj, ok := objVal.(*value.Object)
	if !ok {
		e.Sink.PushFatal(errs.SyntaxError, n.Span(), "'.' requires an object on the left")
		return &value.Noop{}
	}
	return e.evalUnderScope(n.Property, obj.Scope)
}

// evalUnderScope evaluates a property node (VAR, FUNC_CALL, INDEX, or
// chained OBJECT_INDEX) with scope substituted in for the current
// scope, restoring the evaluator's current scope afterward. FUNC_CALL
// is the one exception: its arguments still evaluate in the caller's
// own scope (see callFunction's override parameter), only the method
// lookup and the call's enclosing scope come from scope.
func (e *Evaluator) evalUnderScope(prop ast.Node, scope *value.Scope) value.Value {
	switch p := prop.(type) {
	case *ast.FuncCall:
		return e.callFunction(p, scope)
	case *ast.Var, *ast.Index, *ast.ObjectIndex:
		saved := e.Current
		e.Current = scope
		v := e.Eval(p)
		e.Current = saved
		return v
	default:
		e.Sink.PushFatal(errs.SyntaxError, prop.Span(), "invalid property access")
		return &value.Noop{}
	}
}

// resolveObjectTarget resolves node to the live *value.Object it names,
// walking VAR and chained OBJECT_INDEX nodes through ResolveVar rather
// than Eval so the result is the object actually bound in scope, never
// a DeepClone taken for by-value VAR reads (see evalVar). Mirrors how
// evalListReassign resolves its target's cell directly instead of
// evaluating it.
func (e *Evaluator) resolveObjectTarget(n ast.Node) (*value.Object, bool) {
	switch t := n.(type) {
	case *ast.Var:
		cell, ok := e.Current.ResolveVar(t.Name)
		if !ok {
			return nil, false
		}
		obj, ok := cell.V.(*value.Object)
		return obj, ok
	case *ast.ObjectIndex:
		parent, ok := e.resolveObjectTarget(t.Object)
		if !ok {
			return nil, false
		}
		propVar, ok := t.Property.(*ast.Var)
		if !ok {
			return nil, false
		}
		cell, ok := parent.Scope.ResolveVar(propVar.Name)
		if !ok {
			return nil, false
		}
		obj, ok := cell.V.(*value.Object)
		return obj, ok
	default:
		return nil, false
	}
}

// evalObjectReassign locates the object named by Target.Object, then
// either replaces a property directly (trailing `.NAME`) or runs
// list-reassignment semantics under the object's scope (trailing
// `[i]...`).
func (e *Evaluator) evalObjectReassign(n *ast.ObjectReassign) value.Value {
	obj, ok := e.resolveObjectTarget(n.Target.Object)
	if !ok {
		e.Sink.PushFatal(errs.SyntaxError, n.Span(), "'.' requires an object on the left")
		return &value.Noop{}
	}
	newVal := e.Eval(n.Value)

	switch prop := n.Target.Property.(type) {
	case *ast.Var:
		if !obj.Scope.SetVar(prop.Name, newVal) {
			obj.Scope.AddVar(prop.Name, newVal)
		}
	case *ast.Index:
		varNode, ok := prop.Target.(*ast.Var)
		if !ok {
			e.Sink.PushFatal(errs.ListError, n.Span(), "object list-property assignment target must be a property name")
			return &value.Noop{}
		}
		cell, ok := obj.Scope.ResolveVar(varNode.Name)
		if !ok {
			e.Sink.PushFatal(errs.IdentifierError, n.Span(), "undefined property %q", varNode.Name)
			return &value.Noop{}
		}
		saved := e.Current
		e.Current = obj.Scope
		e.applyListReassign(n.Span(), cell, prop.Indices, newVal)
		e.Current = saved
	default:
		e.Sink.PushFatal(errs.SyntaxError, n.Span(), "invalid object assignment target")
	}
	return newVal
}

func (e *Evaluator) evalFuncDef(n *ast.FuncDef) value.Value {
	if token.Keywords[n.Name] {
		e.Sink.PushFatal(errs.FunctionDefinitionError, n.Span(), "%q is a reserved keyword", n.Name)
	}
	if !e.Current.AddFunc(n) {
		e.Sink.PushFatal(errs.FunctionDefinitionError, n.Span(), "function %q is already defined", n.Name)
	}
	return &value.Noop{}
}

func (e *Evaluator) evalClass(n *ast.Class) value.Value {
	if token.Keywords[n.Name] {
		e.Sink.PushFatal(errs.BlueprintError, n.Span(), "%q is a reserved keyword", n.Name)
	}
	if !e.Current.AddBlueprint(n) {
		e.Sink.PushFatal(errs.BlueprintError, n.Span(), "blueprint %q is already defined", n.Name)
	}
	return &value.Noop{}
}

// evalNew instantiates a blueprint: a fresh parent-less scope holds
// the instance's properties (initialized to Noop until `create` runs)
// and every method but `create` itself; blueprints visible at the
// root scope are copied in too so a method can `new` another class.
// `create` then runs as an ordinary call parented to the new scope,
// with its arguments evaluated in the caller's scope first.
func (e *Evaluator) evalNew(n *ast.New) value.Value {
	cls, ok := e.Current.ResolveBlueprint(n.Name)
	if !ok {
		e.Sink.PushFatal(errs.BlueprintError, n.Span(), "undefined blueprint %q", n.Name)
		return &value.Noop{}
	}
	createFn, ok := cls.Methods["create"]
	if !ok {
		e.Sink.PushFatal(errs.BlueprintError, n.Span(), "blueprint %q has no 'create' method", n.Name)
		return &value.Noop{}
	}

	argVals := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		argVals[i] = e.Eval(a)
	}

	objScope := value.NewScope(nil)
	for _, pname := range cls.PropOrder {
		objScope.AddVar(pname, &value.Noop{})
	}
	root := e.Current.RootScope()
	for name, bp := range root.Blueprints {
		objScope.Blueprints[name] = bp
	}
	for _, mname := range cls.MethodOrder {
		if mname == "create" {
			continue
		}
		objScope.Functions[mname] = cls.Methods[mname]
		objScope.FuncOrder = append(objScope.FuncOrder, mname)
	}

	e.invokeFunction(createFn, argVals, objScope, n.Span())

	return &value.Object{ClassName: n.Name, Scope: objScope}
}

// invokeFunction runs fn's body with parameters bound to args.
// enclosing is the call scope's parent: the object's own scope for
// method dispatch and construction, or the root scope for an ordinary
// call — never the caller's scope, which would let dynamic scoping
// break recursion (see §4.4.1).
func (e *Evaluator) invokeFunction(fn *ast.FuncDef, args []value.Value, enclosing *value.Scope, span token.Span) value.Value {
	if len(args) != len(fn.Args) {
		e.Sink.PushFatal(errs.FunctionError, span, "function %q expects %d argument(s), got %d", fn.Name, len(fn.Args), len(args))
	}
	callScope := value.NewScope(enclosing)
	for i, param := range fn.Args {
		callScope.AddVar(param.Name, args[i])
	}
	saved := e.Current
	e.Current = callScope
	result := e.Eval(fn.Body)
	e.Current = saved

	if ret, ok := result.(*value.Return); ok {
		return ret.Value
	}
	return &value.Noop{}
}

// callFunction dispatches name to a builtin, or resolves and invokes a
// user-defined function. override, when non-nil, is the object scope
// a method call was dispatched through: it is both where the function
// name is looked up and the call scope's parent. For an ordinary call
// (override nil) the function is looked up in the current scope chain
// and the call scope is parented to the root.
func (e *Evaluator) callFunction(call *ast.FuncCall, override *value.Scope) value.Value {
	if bi, ok := builtins[call.Name]; ok {
		return bi(e, call)
	}

	lookupScope := e.Current
	enclosing := e.Root
	if override != nil {
		lookupScope = override
		enclosing = override
	}

	fn, ok := lookupScope.ResolveFunc(call.Name)
	if !ok {
		e.Sink.PushFatal(errs.FunctionError, call.Span(), "undefined function %q", call.Name)
		return &value.Noop{}
	}

	args := make([]value.Value, len(call.Args))
	for i, a := range call.Args {
		args[i] = e.Eval(a)
	}
	return e.invokeFunction(fn, args, enclosing, call.Span())
}

func (e *Evaluator) evalIf(n *ast.If) value.Value {
	for i, cond := range n.Conditions {
		cv := e.Eval(cond)
		b, ok := cv.(*value.Bool)
		if !ok {
			e.Sink.PushFatal(errs.ConditionalError, n.Span(), "condition must be boolean")
			return &value.Noop{}
		}
		if b.Val {
			return e.Eval(n.Bodies[i])
		}
	}
	if n.Else != nil {
		return e.Eval(n.Else)
	}
	return &value.Noop{}
}

// evalWhile creates exactly one child scope per iteration, parented to
// the stable outer scope in effect at loop entry; the outer scope
// itself is restored once the loop exits.
func (e *Evaluator) evalWhile(n *ast.While) value.Value {
	outer := e.Current
	for {
		child := value.NewScope(outer)
		e.Current = child

		condVal := e.Eval(n.Condition)
		b, ok := condVal.(*value.Bool)
		if !ok {
			e.Sink.PushFatal(errs.ConditionalError, n.Span(), "condition must be boolean")
			e.Current = outer
			return &value.Noop{}
		}
		if !b.Val {
			break
		}

		result := e.Eval(n.Body)
		if r, ok := result.(*value.Return); ok {
			e.Current = outer
			return r
		}
		if _, ok := result.(*value.Break); ok {
			break
		}
	}
	e.Current = outer
	return &value.Noop{}
}
