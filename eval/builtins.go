/*
File    : gscript/eval/builtins.go
Author  : GokceOnal1
*/

package eval

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/GokceOnal1/gscript/ast"
	"github.com/GokceOnal1/gscript/errs"
	"github.com/GokceOnal1/gscript/value"
)

// builtinFunc implements one builtin. Each builtin evaluates its own
// arguments (via evalArgs) in the caller's current scope, matching
// ordinary call argument-binding order.
type builtinFunc func(e *Evaluator, call *ast.FuncCall) value.Value

// builtins is the fixed builtin table; FUNC_CALL checks it before
// resolving a user-defined function of the same name.
var builtins = map[string]builtinFunc{
	"write":      biWrite,
	"read":       biRead,
	"type":       biType,
	"to_int":     biToInt,
	"to_float":   biToFloat,
	"random_int": biRandomInt,
	"length":     biLength,
	"replace":    biReplace,
	"ast_debug":  biAstDebug,
}

func evalArgs(e *Evaluator, call *ast.FuncCall) []value.Value {
	args := make([]value.Value, len(call.Args))
	for i, a := range call.Args {
		args[i] = e.Eval(a)
	}
	return args
}

// biWrite prints each argument's value.Value.ToString, space-separated,
// followed by a newline.
func biWrite(e *Evaluator, call *ast.FuncCall) value.Value {
	args := evalArgs(e, call)
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.ToString()
	}
	fmt.Fprintln(e.Writer, strings.Join(parts, " "))
	return &value.Noop{}
}

// biRead reads one line from standard input, trimming the trailing
// newline.
func biRead(e *Evaluator, call *ast.FuncCall) value.Value {
	line, err := e.Reader.ReadString('\n')
	if err != nil && line == "" {
		return &value.String{Val: ""}
	}
	return &value.String{Val: strings.TrimRight(line, "\r\n")}
}

func biType(e *Evaluator, call *ast.FuncCall) value.Value {
	args := evalArgs(e, call)
	if len(args) != 1 {
		e.Sink.PushFatal(errs.FunctionError, call.Span(), "type() expects 1 argument, got %d", len(args))
	}
	return &value.Type{Tag: value.TypeName(args[0])}
}

func biToInt(e *Evaluator, call *ast.FuncCall) value.Value {
	args := evalArgs(e, call)
	if len(args) != 1 {
		e.Sink.PushFatal(errs.FunctionError, call.Span(), "to_int() expects 1 argument, got %d", len(args))
	}
	s, ok := args[0].(*value.String)
	if !ok {
		e.Sink.PushFatal(errs.TypeError, call.Span(), "to_int() expects a string argument")
	}
	i, err := strconv.ParseInt(s.Val, 10, 32)
	if err != nil {
		e.Sink.PushFatal(errs.TypeError, call.Span(), "cannot convert %q to an integer", s.Val)
	}
	return &value.Int{Val: int32(i)}
}

func biToFloat(e *Evaluator, call *ast.FuncCall) value.Value {
	args := evalArgs(e, call)
	if len(args) != 1 {
		e.Sink.PushFatal(errs.FunctionError, call.Span(), "to_float() expects 1 argument, got %d", len(args))
	}
	s, ok := args[0].(*value.String)
	if !ok {
		e.Sink.PushFatal(errs.TypeError, call.Span(), "to_float() expects a string argument")
	}
	f, err := strconv.ParseFloat(s.Val, 32)
	if err != nil {
		e.Sink.PushFatal(errs.TypeError, call.Span(), "cannot convert %q to a float", s.Val)
	}
	return &value.Float{Val: float32(f)}
}

// biRandomInt returns a uniform value in [a, b] inclusive.
func biRandomInt(e *Evaluator, call *ast.FuncCall) value.Value {
	args := evalArgs(e, call)
	if len(args) != 2 {
		e.Sink.PushFatal(errs.FunctionError, call.Span(), "random_int() expects 2 arguments, got %d", len(args))
	}
	a, aok := args[0].(*value.Int)
	b, bok := args[1].(*value.Int)
	if !aok || !bok {
		e.Sink.PushFatal(errs.TypeError, call.Span(), "random_int() expects two integer arguments")
	}
	lo, hi := a.Val, b.Val
	if lo > hi {
		lo, hi = hi, lo
	}
	return &value.Int{Val: lo + rand.Int31n(hi-lo+1)}
}

func biLength(e *Evaluator, call *ast.FuncCall) value.Value {
	args := evalArgs(e, call)
	if len(args) != 1 {
		e.Sink.PushFatal(errs.FunctionError, call.Span(), "length() expects 1 argument, got %d", len(args))
	}
	switch v := args[0].(type) {
	case *value.List:
		return &value.Int{Val: int32(len(v.Elements))}
	case *value.String:
		return &value.Int{Val: int32(len(v.Val))}
	default:
		e.Sink.PushFatal(errs.TypeError, call.Span(), "length() expects a list or a string")
		return &value.Noop{}
	}
}

// biReplace returns s with the character at index i replaced by the
// first character of c.
func biReplace(e *Evaluator, call *ast.FuncCall) value.Value {
	args := evalArgs(e, call)
	if len(args) != 3 {
		e.Sink.PushFatal(errs.FunctionError, call.Span(), "replace() expects 3 arguments, got %d", len(args))
	}
	s, sok := args[0].(*value.String)
	idx, iok := args[1].(*value.Int)
	c, cok := args[2].(*value.String)
	if !sok || !iok || !cok {
		e.Sink.PushFatal(errs.TypeError, call.Span(), "replace() expects (string, integer, string)")
	}
	if int(idx.Val) < 0 || int(idx.Val) >= len(s.Val) || len(c.Val) == 0 {
		e.Sink.PushFatal(errs.ListError, call.Span(), "replace() index out of bounds")
	}
	runes := []byte(s.Val)
	runes[idx.Val] = c.Val[0]
	return &value.String{Val: string(runes)}
}

// biAstDebug returns the debug form of a single evaluated argument,
// useful while developing GScript programs themselves.
func biAstDebug(e *Evaluator, call *ast.FuncCall) value.Value {
	args := evalArgs(e, call)
	if len(args) != 1 {
		e.Sink.PushFatal(errs.FunctionError, call.Span(), "ast_debug() expects 1 argument, got %d", len(args))
	}
	return &value.String{Val: fmt.Sprintf("<%s %s>", value.TypeName(args[0]), args[0].ToString())}
}
