/*
File    : gscript/eval/builtins_file.go
Author  : GokceOnal1
*/

package eval

import (
	"io"
	"os"

	"github.com/GokceOnal1/gscript/ast"
	"github.com/GokceOnal1/gscript/errs"
	"github.com/GokceOnal1/gscript/value"
)

// File I/O is an ambient addition beyond the spec's required builtin
// set: stateful file handles, modeled as a distinct value.File kind
// rather than an Object, so these builtins can work on them directly.
func init() {
	builtins["fopen"] = biFopen
	builtins["fclose"] = biFclose
	builtins["fread"] = biFread
	builtins["fwrite"] = biFwrite
	builtins["fseek"] = biFseek
	builtins["ftell"] = biFtell
}

// biFopen opens a file with the given mode: "r", "w", "a", "r+", "w+".
func biFopen(e *Evaluator, call *ast.FuncCall) value.Value {
	args := evalArgs(e, call)
	if len(args) != 2 {
		e.Sink.PushFatal(errs.FunctionError, call.Span(), "fopen() expects 2 arguments (path, mode)")
	}
	path, pok := args[0].(*value.String)
	mode, mok := args[1].(*value.String)
	if !pok || !mok {
		e.Sink.PushFatal(errs.TypeError, call.Span(), "fopen() expects (string, string)")
	}

	var flag int
	switch mode.Val {
	case "r":
		flag = os.O_RDONLY
	case "w":
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case "a":
		flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	case "r+":
		flag = os.O_RDWR
	case "w+":
		flag = os.O_RDWR | os.O_CREATE | os.O_TRUNC
	default:
		e.Sink.PushFatal(errs.FileError, call.Span(), "invalid file mode %q", mode.Val)
	}

	handle, err := os.OpenFile(path.Val, flag, 0644)
	if err != nil {
		e.Sink.PushFatal(errs.FileError, call.Span(), "could not open file %q: %v", path.Val, err)
	}
	return &value.File{Handle: handle, Path: path.Val}
}

func fileArg(e *Evaluator, call *ast.FuncCall, args []value.Value, i int) *value.File {
	f, ok := args[i].(*value.File)
	if !ok {
		e.Sink.PushFatal(errs.FileError, call.Span(), "argument %d must be a file handle", i+1)
	}
	return f
}

func biFclose(e *Evaluator, call *ast.FuncCall) value.Value {
	args := evalArgs(e, call)
	if len(args) != 1 {
		e.Sink.PushFatal(errs.FunctionError, call.Span(), "fclose() expects 1 argument")
	}
	f := fileArg(e, call, args, 0)
	if err := f.Handle.Close(); err != nil {
		e.Sink.PushFatal(errs.FileError, call.Span(), "failed to close file: %v", err)
	}
	return &value.Noop{}
}

func biFread(e *Evaluator, call *ast.FuncCall) value.Value {
	args := evalArgs(e, call)
	if len(args) != 2 {
		e.Sink.PushFatal(errs.FunctionError, call.Span(), "fread() expects 2 arguments (handle, size)")
	}
	f := fileArg(e, call, args, 0)
	size, ok := args[1].(*value.Int)
	if !ok {
		e.Sink.PushFatal(errs.TypeError, call.Span(), "second argument to fread() must be an integer")
	}
	buf := make([]byte, size.Val)
	n, err := f.Handle.Read(buf)
	if err != nil && err != io.EOF {
		e.Sink.PushFatal(errs.FileError, call.Span(), "read failed: %v", err)
	}
	return &value.String{Val: string(buf[:n])}
}

func biFwrite(e *Evaluator, call *ast.FuncCall) value.Value {
	args := evalArgs(e, call)
	if len(args) != 2 {
		e.Sink.PushFatal(errs.FunctionError, call.Span(), "fwrite() expects 2 arguments (handle, content)")
	}
	f := fileArg(e, call, args, 0)
	content, ok := args[1].(*value.String)
	if !ok {
		e.Sink.PushFatal(errs.TypeError, call.Span(), "second argument to fwrite() must be a string")
	}
	n, err := f.Handle.WriteString(content.Val)
	if err != nil {
		e.Sink.PushFatal(errs.FileError, call.Span(), "write failed: %v", err)
	}
	return &value.Int{Val: int32(n)}
}

// biFseek moves the file cursor; whence is 0 (start), 1 (current), 2 (end).
func biFseek(e *Evaluator, call *ast.FuncCall) value.Value {
	args := evalArgs(e, call)
	if len(args) != 3 {
		e.Sink.PushFatal(errs.FunctionError, call.Span(), "fseek() expects 3 arguments (handle, offset, whence)")
	}
	f := fileArg(e, call, args, 0)
	offset, ok := args[1].(*value.Int)
	if !ok {
		e.Sink.PushFatal(errs.TypeError, call.Span(), "second argument to fseek() must be an integer")
	}
	whence, ok := args[2].(*value.Int)
	if !ok {
		e.Sink.PushFatal(errs.TypeError, call.Span(), "third argument to fseek() must be an integer")
	}
	pos, err := f.Handle.Seek(int64(offset.Val), int(whence.Val))
	if err != nil {
		e.Sink.PushFatal(errs.FileError, call.Span(), "seek failed: %v", err)
	}
	return &value.Int{Val: int32(pos)}
}

func biFtell(e *Evaluator, call *ast.FuncCall) value.Value {
	args := evalArgs(e, call)
	if len(args) != 1 {
		e.Sink.PushFatal(errs.FunctionError, call.Span(), "ftell() expects 1 argument")
	}
	f := fileArg(e, call, args, 0)
	pos, err := f.Handle.Seek(0, io.SeekCurrent)
	if err != nil {
		e.Sink.PushFatal(errs.FileError, call.Span(), "ftell failed: %v", err)
	}
	return &value.Int{Val: int32(pos)}
}
