/*
File    : gscript/token/token.go
Author  : GokceOnal1
*/

// Package token defines the lexical token types and the source span
// metadata that is threaded through the lexer, parser, and evaluator
// for GScript, a small dynamically-typed scripting language.
//
// Every token and every AST node carries a Span: the originating file
// path, the full text of the source line it came from, and its 1-based
// line/column range. Spans are immutable after construction and are
// the sole input to error messages (see the errs package).
package token

import "fmt"

// Type identifies the lexical category of a Token.
type Type string

// Token type constants. GScript's grammar is small and flat: there is
// no precedence-table of operator classes the way larger languages
// have one, just the literal set of symbols the lexer emits.
const (
	EOF     Type = "EOF"
	INVALID Type = "INVALID"

	INT    Type = "INT"
	FLOAT  Type = "FLOAT"
	STRING Type = "STRING"
	ID     Type = "ID"

	EQ     Type = "==" // equality comparison
	ASSIGN Type = "="  // assignment
	LE     Type = "<="
	LT     Type = "<"
	GE     Type = ">="
	GT     Type = ">"
	NE     Type = "!="
	NOT    Type = "!"
	AMP    Type = "&" // logical AND
	PIPE   Type = "|" // logical OR
	PERCENT Type = "%"
	SEMI   Type = ";"
	COLON  Type = ":"
	LPAREN Type = "("
	RPAREN Type = ")"
	COMMA  Type = ","
	LBRACE Type = "{"
	RBRACE Type = "}"
	LBRACKET Type = "["
	RBRACKET Type = "]"
	PLUS   Type = "+"
	MINUS  Type = "-"
	STAR   Type = "*"
	SLASH  Type = "/"
	DOT    Type = "."
)

// Span records where a token or AST node came from in the source text.
// It is immutable once constructed and is carried unchanged from the
// lexer through parsing into evaluation, so that a runtime error can
// still point back at the exact source location that produced it.
type Span struct {
	File       string // file name passed to lexer.New (e.g. "entry/a.gs" or "<repl>")
	SourceLine string // full text of the line the token/node starts on
	Line       int    // 1-based line number
	StartCol   int    // 1-based starting column (inclusive)
	EndCol     int    // 1-based ending column (inclusive)
}

// String renders the span as "file:line:col" for compact error prefixes.
func (s Span) String() string {
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.StartCol)
}

// Token is a single lexical token. Per the language's tagged-variant
// design, INT/FLOAT/STRING/ID tokens carry a payload in the
// corresponding field; all other tokens are identified by Type alone.
type Token struct {
	Type Type
	Span Span

	IntVal   int32
	FloatVal float32
	StrVal   string // payload for STRING and ID tokens
}

// Literal returns the token's source text, independent of its kind:
// the payload for INT/FLOAT/STRING/ID tokens, the Type string for
// every other token.
func (t Token) Literal() string {
	switch t.Type {
	case INT:
		return fmt.Sprintf("%d", t.IntVal)
	case FLOAT:
		return fmt.Sprintf("%g", t.FloatVal)
	case STRING, ID:
		return t.StrVal
	default:
		return string(t.Type)
	}
}

// Keywords is the set of identifier spellings the parser treats
// specially. The lexer does not know about keywords at all: every one
// of these is lexed as a plain ID token and it is the parser's
// identifier-form dispatch that recognizes them.
var Keywords = map[string]bool{
	"assign":    true,
	"funct":     true,
	"return":    true,
	"blueprint": true,
	"new":       true,
	"if":        true,
	"else":      true,
	"while":     true,
	"break":     true,
	"true":      true,
	"false":     true,
	"param":     true,
	"prop":      true,
	"method":    true,
}
