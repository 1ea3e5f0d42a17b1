/*
File    : gscript/repl/repl.go
Author  : GokceOnal1
*/

// Package repl implements GScript's Read-Eval-Print Loop: an
// interactive session that lexes, parses, and evaluates one line of
// source at a time against a persistent Evaluator, so bindings from
// one line are visible to the next.
package repl

import (
	"io"
	"os"
	"strings"

	"github.com/GokceOnal1/gscript/errs"
	"github.com/GokceOnal1/gscript/eval"
	"github.com/GokceOnal1/gscript/lexer"
	"github.com/GokceOnal1/gscript/parser"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

// Color definitions for REPL output.
// These colors provide visual feedback to enhance user experience:
// - blueColor: Decorative lines and separators
// - yellowColor: Expression results and version info
// - redColor: Error messages and warnings
// - greenColor: Banner and success messages
// - cyanColor: Informational messages and instructions
var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl holds the cosmetic configuration for an interactive session.
type Repl struct {
	Banner  string // ASCII art banner displayed at startup
	Version string // Version string of the interpreter
	Author  string // Author contact information
	Line    string // Separator line for visual formatting
	License string // Software license information
	Prompt  string // Command prompt shown to the user (e.g., "gs >>> ")
}

// New creates a Repl with the given banner configuration.
//
// Parameters:
//
//	banner  - ASCII art logo to display at startup
//	version - Version string of the interpreter
//	author  - Author contact information
//	line    - Separator line for formatting
//	license - Software license information
//	prompt  - Command prompt string
//
// Returns:
//
//	A pointer to a newly created Repl instance
func New(banner, version, author, line, license, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

// PrintBannerInfo displays the welcome banner and usage instructions.
// This is called when the REPL starts to provide users with:
// - The GScript logo (ASCII art)
// - Version and author information
// - Basic usage instructions
// - Command history navigation tips
//
// Parameters:
//
//	writer - The io.Writer to output the banner to (typically os.Stdout)
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	// Print top separator line in blue
	blueColor.Fprintf(writer, "%s\n", r.Line)

	// Print the ASCII art banner in green
	greenColor.Fprintf(writer, "%s\n", r.Banner)

	// Print separator line
	blueColor.Fprintf(writer, "%s\n", r.Line)

	// Print version, author, and license information in yellow
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)

	// Print separator line
	blueColor.Fprintf(writer, "%s\n", r.Line)

	// Print welcome message and usage instructions in cyan
	cyanColor.Fprintf(writer, "%s\n", "Welcome to GScript!")
	cyanColor.Fprintf(writer, "%s\n", "Type your code and press enter")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history")

	// Print bottom separator line
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start begins the REPL main loop.
// This is the core function that handles the interactive session:
// 1. Displays the welcome banner
// 2. Sets up readline for line editing and history
// 3. Creates a persistent evaluator and error sink
// 4. Enters the main read-eval-print loop
// 5. Processes user input until exit
//
// The loop continues until:
// - User types '.exit'
// - EOF is encountered (Ctrl+D)
// - An error occurs in readline
//
// Parameters:
//
//	writer - Output destination (typically os.Stdout)
//
// Features:
// - Command history (accessible via up/down arrows)
// - Line editing capabilities (backspace, cursor movement, etc.)
// - Automatic whitespace trimming
// - Empty line handling
// - Panic recovery for robust error handling
func (r *Repl) Start(writer io.Writer) {
	// Print the welcome banner and usage instructions
	r.PrintBannerInfo(writer)

	// Create a new readline instance for enhanced line editing
	// This provides features like command history, cursor movement, etc.
	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close() // Ensure readline is properly closed on exit

	// Sink and Evaluator persist for the whole session so bindings from
	// one line remain visible to the next. os.Stdin backs read() so
	// interactive input works the same way it does for file execution
	// (cmd/gscript/main.go), even though readline owns the terminal for
	// everything typed at the prompt itself.
	sink := errs.NewSink(writer)
	ev := eval.New(sink, writer, os.Stdin)

	// Main REPL loop - continues until user exits or error occurs
	for {
		// Read a line of input from the user; blocks until Enter is pressed
		line, err := rl.Readline()
		if err != nil {
			// EOF or error occurred (e.g., Ctrl+D pressed)
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		// Trim whitespace from the input
		line = strings.Trim(line, " \n\t\r")

		// Skip empty lines
		if line == "" {
			continue
		}

		// Check for exit command
		if line == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		// Save the command to history for up/down arrow navigation
		rl.SaveHistory(line)

		// Execute the input with panic recovery to prevent crashes
		r.executeWithRecovery(writer, line, ev, sink)
	}
}

// executeWithRecovery handles lexing, parsing, and evaluation with
// panic recovery. This implements a robust error handling strategy for
// the REPL:
// 1. Sets up panic recovery to catch runtime errors
// 2. Resets the sink so one line's mistakes don't poison the next
// 3. Lexes and parses the line into an AST
// 4. Checks for parse errors
// 5. Evaluates the AST and prints the result
//
// Unlike file execution mode, the REPL continues running after errors,
// allowing users to correct mistakes and try again.
//
// Parameters:
//
//	writer - Output destination for results and errors
//	line   - The user's input line to execute
//	ev     - The evaluator instance (maintains state across REPL lines)
//	sink   - The error sink shared with ev, reset before each line
//
// Error Handling:
//   - Panics: Caught and displayed as runtime errors, REPL continues
//   - Parse errors: Dumped via the sink, REPL continues
//   - Success: Result displayed in yellow
func (r *Repl) executeWithRecovery(writer io.Writer, line string, ev *eval.Evaluator, sink *errs.Sink) {
	// Recover from any panics that might occur during parsing or evaluation
	// Unlike file mode, we don't exit - just display the error and continue
	defer func() {
		if rec := recover(); rec != nil {
			// A panic can leave the evaluator inside a call or loop scope
			ev.Current = ev.Root
			redColor.Fprintf(writer, "[RUNTIME ERROR] %v\n", rec)
		}
	}()

	// Drop any errors left over from a previous line
	sink.Errors = nil

	// Lex and parse the input line into an Abstract Syntax Tree
	lx := lexer.New("<repl>", line)
	lx.Sink = sink
	par := parser.New(lx, sink)
	prog := par.ParseCompound()

	// Non-fatal lexer/parser errors are collected in the sink; fatal
	// ones panic and are caught by the deferred recover above
	if sink.HasErrors() {
		sink.DumpPending()
		return // Return to REPL prompt for user to try again
	}

	// Evaluate the AST and print its result in yellow
	result := ev.Run(prog)
	yellowColor.Fprintf(writer, "%s\n", result.ToString())
}
