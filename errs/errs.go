/*
File    : gscript/errs/errs.go
Author  : GokceOnal1
*/

// Package errs implements GScript's structured error sink. Every
// component (lexer, parser, evaluator) pushes errors carrying a
// file/line/column span into a shared Sink; fatal conditions call
// PushFatal, which dumps every accumulated error with a caret
// underline beneath the offending span and panics, and a deferred
// Recover turns that panic into a process exit with status 1.
package errs

import (
	"fmt"
	"io"
	"os"

	"github.com/GokceOnal1/gscript/token"
	"github.com/fatih/color"
)

// Kind enumerates the taxonomy of errors a GScript program can raise.
type Kind string

const (
	SyntaxError             Kind = "SyntaxError"
	DivideByZeroError       Kind = "DivideByZeroError"
	FileError                Kind = "FileError"
	TokenError               Kind = "TokenError"
	EndOfInputError          Kind = "EndOfInputError"
	VariableDefinitionError  Kind = "VariableDefinitionError"
	FunctionDefinitionError  Kind = "FunctionDefinitionError"
	FunctionError            Kind = "FunctionError"
	ConditionalError         Kind = "ConditionalError"
	TypeError                Kind = "TypeError"
	ListError                Kind = "ListError"
	BlueprintError           Kind = "BlueprintError"
	IdentifierError          Kind = "IdentifierError"
)

// Error is one structured diagnostic: a kind, a human message, and the
// source span it points at.
type Error struct {
	Kind    Kind
	Message string
	Span    token.Span
}

// fatalSignal is recovered by the entry point (cmd/gscript or the
// REPL) to unwind cleanly from a fatal error without a raw panic
// propagating out of the evaluator's recursive Eval calls.
type fatalSignal struct{ err Error }

// Sink accumulates errors during a single run (lex + parse + eval) and
// knows how to print and terminate. It is passed explicitly rather
// than kept process-global so that tests can point it at a buffer and
// inspect what would have been shown to the user.
type Sink struct {
	Errors []Error
	Writer io.Writer
}

// NewSink creates a Sink that prints to w.
func NewSink(w io.Writer) *Sink {
	return &Sink{Writer: w}
}

// Push accumulates a non-fatal error and continues.
func (s *Sink) Push(kind Kind, span token.Span, format string, a ...interface{}) {
	s.Errors = append(s.Errors, Error{Kind: kind, Message: fmt.Sprintf(format, a...), Span: span})
}

// PushFatal accumulates an error and immediately terminates the run:
// it prints every pending error (including this one) and panics with
// fatalSignal, which Recover converts into a clean process exit.
func (s *Sink) PushFatal(kind Kind, span token.Span, format string, a ...interface{}) {
	e := Error{Kind: kind, Message: fmt.Sprintf(format, a...), Span: span}
	s.Errors = append(s.Errors, e)
	s.dump()
	panic(fatalSignal{err: e})
}

// HasErrors reports whether any error (fatal or not) has been pushed.
func (s *Sink) HasErrors() bool {
	return len(s.Errors) > 0
}

var (
	kindColor = color.New(color.FgRed, color.Bold)
	locColor  = color.New(color.FgCyan)
	caretColor = color.New(color.FgYellow, color.Bold)
)

// dump prints every accumulated error to the sink's writer: the file
// path, line, column, kind, message, the offending source line, and a
// caret underline spanning the offending column range.
func (s *Sink) dump() {
	w := s.Writer
	if w == nil {
		w = os.Stderr
	}
	for _, e := range s.Errors {
		locColor.Fprintf(w, "%s:%d:%d: ", e.Span.File, e.Span.Line, e.Span.StartCol)
		kindColor.Fprintf(w, "%s", e.Kind)
		fmt.Fprintf(w, ": %s\n", e.Message)
		if e.Span.SourceLine != "" {
			fmt.Fprintf(w, "    %s\n", e.Span.SourceLine)
			fmt.Fprint(w, "    ")
			caretColor.Fprintf(w, "%s\n", caretLine(e.Span))
		}
	}
	divider := "------------------------------------------------------------"
	fmt.Fprintln(w, divider)
}

// caretLine builds the "    ^^^^" underline for a span: spaces up to
// StartCol, then carets spanning StartCol..EndCol.
func caretLine(sp token.Span) string {
	width := sp.EndCol - sp.StartCol + 1
	if width < 1 {
		width = 1
	}
	buf := make([]byte, 0, sp.StartCol+width)
	for i := 1; i < sp.StartCol; i++ {
		buf = append(buf, ' ')
	}
	for i := 0; i < width; i++ {
		buf = append(buf, '^')
	}
	return string(buf)
}

// DumpPending prints every accumulated error without exiting, for
// callers (like the REPL) that want to show diagnostics and then keep
// running instead of terminating the process.
func (s *Sink) DumpPending() {
	s.dump()
}

// Terminate dumps all pending errors and exits the process with
// status 1. Used for conditions the caller has already decided are
// fatal but did not originate through PushFatal (e.g. a parser that
// collected several recoverable errors and stops before evaluation).
func (s *Sink) Terminate() {
	s.dump()
	os.Exit(1)
}

// Recover should be deferred by any entry point that evaluates
// GScript source. It converts a PushFatal panic into a process exit
// with status 1, and lets any other panic continue propagating.
func Recover() {
	if r := recover(); r != nil {
		if _, ok := r.(fatalSignal); ok {
			os.Exit(1)
		}
		panic(r)
	}
}
