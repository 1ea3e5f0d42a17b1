/*
File    : gscript/cmd/gscript/main.go
Author  : GokceOnal1
*/

// Command gscript is the GScript interpreter's command-line entry
// point.
//
// Usage:
//
//	gscript              start the interactive REPL
//	gscript <filename>   run filename, resolved relative to ./entry/
//
// Any other invocation is a command-line error. Exit code is 0 on
// success, 1 on any fatal error.
package main

import (
	"os"
	"path/filepath"

	"github.com/GokceOnal1/gscript/errs"
	"github.com/GokceOnal1/gscript/eval"
	"github.com/GokceOnal1/gscript/lexer"
	"github.com/GokceOnal1/gscript/parser"
	"github.com/GokceOnal1/gscript/repl"
	"github.com/fatih/color"
)

var redColor = color.New(color.FgRed)

const (
	version = "v1.0.0"
	author  = "GokceOnal1"
	license = "MIT"
	prompt  = "gscript >>> "
	sepLine = "----------------------------------------------------------------"
	banner  = `
   ▄████  ▄▄▄▄▄   ▄████  ██▀███   ██▓ ██▓███  ▄▄▄█████▓
  ██▒ ▀█▒▓█████▄ ██▒ ▀█▒▓██ ▒ ██▒▓██▒▓██░  ██▒▓  ██▒ ▓▒
 ▒██░▄▄▄░▒██▒ ▄██▒██░▄▄▄░▓██ ░▄█ ▒▒██▒▓██░ ██▓▒▒ ▓██░ ▒░
 ░▓█  ██▓▒██░█▀  ░▓█  ██▓▒██▀▀█▄  ░██░▒██▄█▓▒ ▒░ ▓██▓ ░
 ░▒▓███▀▒░▓█  ▀█▓░▒▓███▀▒░██▓ ▒██▒░██░▒██▒ ░  ░  ▒██▒ ░
  ░▒   ▒ ░▒▓███▀▒ ░▒   ▒ ░ ▒▓ ░▒▓░░▓  ▒▓▒░ ░  ░  ▒ ░░
   ░   ░ ▒░▒   ░   ░   ░   ░▒ ░ ▒░ ▒ ░░▒ ░         ░
 ░ ░   ░  ░    ░ ░ ░   ░   ░░   ░  ▒ ░░░         ░
       ░  ░          ░    ░      ░
`
)

func main() {
	switch len(os.Args) {
	case 1:
		r := repl.New(banner, version, author, sepLine, license, prompt)
		r.Start(os.Stdout)
	case 2:
		runFile(os.Args[1])
	default:
		redColor.Fprintln(os.Stderr, "[USAGE ERROR] usage: gscript <filename>")
		os.Exit(1)
	}
}

// runFile resolves filename relative to ./entry/ (per the CLI
// contract) and runs it to completion, exiting 1 on any fatal error.
func runFile(filename string) {
	path := filepath.Join("entry", filename)
	src, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] could not read file %q: %v\n", path, err)
		os.Exit(1)
	}

	sink := errs.NewSink(os.Stderr)
	defer errs.Recover()

	lx := lexer.New(path, string(src))
	lx.Sink = sink
	par := parser.New(lx, sink)
	prog := par.ParseCompound()
	if sink.HasErrors() {
		sink.Terminate()
	}

	ev := eval.New(sink, os.Stdout, os.Stdin)
	ev.Run(prog)
	if sink.HasErrors() {
		sink.Terminate()
	}
}
