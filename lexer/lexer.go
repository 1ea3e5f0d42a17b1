/*
File    : gscript/lexer/lexer.go
Author  : GokceOnal1
*/

// Package lexer turns GScript source text into a stream of tokens.
//
// The lexer is byte-oriented and single-pass: it tracks the current
// line and column so every token it produces carries a full Span back
// to the originating source line, which is what lets later stages
// (parser, evaluator) report errors with caret-accurate positions.
package lexer

import (
	"strconv"
	"strings"

	"github.com/GokceOnal1/gscript/errs"
	"github.com/GokceOnal1/gscript/token"
)

// Lexer holds all state needed to tokenize one source file.
//
// Fields:
//   - file: name attributed to every Span produced (e.g. "<repl>" or a path)
//   - src: the complete source text
//   - lines: src split on '\n', used to fill in Span.SourceLine for diagnostics
//   - pos: current byte offset into src (0-indexed)
//   - current: the byte at pos, or 0 once the source is exhausted
//   - line: current line number (1-indexed)
//   - col: current column number (1-indexed)
//   - Sink: receives TokenError for unrecognized bytes and unterminated
//     strings, SyntaxError for malformed number literals
type Lexer struct {
	file  string
	src   string
	lines []string // src split on '\n', used to fill in Span.SourceLine

	pos     int
	current byte
	line    int
	col     int

	Sink *errs.Sink // receives TokenError for unrecognized bytes
}

// New creates a Lexer over src, attributing all spans to file.
//
// Parameters:
//   - file: name recorded on every token's Span, for diagnostics
//   - src: the source text to tokenize
//
// Returns:
//   - *Lexer: a lexer positioned at line 1, column 1, ready to scan
func New(file, src string) *Lexer {
	lx := &Lexer{
		file:  file,
		src:   src,
		lines: strings.Split(src, "\n"),
		line:  1,
		col:   1,
	}
	// Prime current with the first byte; an empty source leaves it 0 (EOF)
	if len(src) > 0 {
		lx.current = src[0]
	}
	return lx
}

func (lx *Lexer) sourceLine(line int) string {
	idx := line - 1
	if idx < 0 || idx >= len(lx.lines) {
		return ""
	}
	return lx.lines[idx]
}

func (lx *Lexer) span(startLine, startCol, endCol int) token.Span {
	return token.Span{
		File:       lx.file,
		SourceLine: lx.sourceLine(startLine),
		Line:       startLine,
		StartCol:   startCol,
		EndCol:     endCol,
	}
}

// peek looks ahead to the next byte without consuming it. This is
// useful for lookahead when determining multi-byte tokens like "==".
//
// Returns:
//   - byte: the next byte, or 0 if at end of source
func (lx *Lexer) peek() byte {
	if lx.pos+1 >= len(lx.src) {
		return 0 // end of source
	}
	return lx.src[lx.pos+1]
}

// advance consumes the current byte and moves the cursor forward,
// updating pos, col, line, and current. A consumed newline increments
// line and resets col to 1; every other byte just increments col.
func (lx *Lexer) advance() {
	if lx.current == '\n' {
		lx.line++
		lx.col = 1
	} else {
		lx.col++
	}
	lx.pos++
	if lx.pos >= len(lx.src) {
		lx.current = 0 // null byte indicates end
	} else {
		lx.current = lx.src[lx.pos]
	}
}

func isDigit(b byte) bool  { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool  { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }
func isIdentStart(b byte) bool { return isAlpha(b) || b == '_' }
func isIdentCont(b byte) bool  { return isAlpha(b) || isDigit(b) || b == '_' }
func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// skipWhitespaceAndComments consumes runs of whitespace and
// backslash-delimited comments in the source. It is called before
// tokenizing each meaningful token.
//
// It handles:
//   - Whitespace characters (space, tab, carriage return, newline)
//   - Comments delimited by a pair of '\' characters
//
// When a newline is encountered, the line counter is incremented and
// col is reset to 1, so comments spanning multiple lines still track
// position correctly.
func (lx *Lexer) skipWhitespaceAndComments() {
	for {
		if isSpace(lx.current) {
			lx.advance()
			continue
		}
		if lx.current == '\\' {
			lx.advance() // consume opening backslash
			for lx.current != '\\' && lx.current != 0 {
				lx.advance()
			}
			if lx.current == '\\' {
				lx.advance() // consume closing backslash
			}
			continue
		}
		break
	}
}

// NextToken retrieves the next token from the source code stream.
// It skips whitespace and comments, then identifies and returns the
// next meaningful token. This is the main entry point for
// token-by-token scanning, called once per token by the parser.
//
// The method handles:
//   - Comparison and assignment operators, including their two-byte forms
//     ('==', '<=', '>=', '!=')
//   - Arithmetic and structural single-byte operators/symbols
//   - String literals (delegated to readString)
//   - Numeric literals, integer or float (delegated to readNumber)
//   - Identifiers, including keywords (delegated to readIdentifier)
//
// Returns:
//   - token.Token: the next token in the source, or an EOF token once
//     the source is exhausted
//
// Unknown bytes push a non-fatal TokenError to the sink and are
// skipped one byte at a time.
func (lx *Lexer) NextToken() token.Token {
	// Skip any whitespace and comments before the next token
	lx.skipWhitespaceAndComments()

	line, col := lx.line, lx.col

	// mk builds a token whose span starts at the position already
	// captured above and spans width bytes
	mk := func(typ token.Type, width int) token.Token {
		return token.Token{Type: typ, Span: lx.span(line, col, col+width-1)}
	}

	switch c := lx.current; {
	case c == 0:
		// Null byte indicates end of source
		return mk(token.EOF, 1)
	case c == '=':
		// Could be '=' (assignment) or '==' (equality)
		if lx.peek() == '=' {
			lx.advance()
			lx.advance()
			return mk(token.EQ, 2)
		}
		lx.advance()
		return mk(token.ASSIGN, 1)
	case c == '<':
		// Could be '<' or '<='
		if lx.peek() == '=' {
			lx.advance()
			lx.advance()
			return mk(token.LE, 2)
		}
		lx.advance()
		return mk(token.LT, 1)
	case c == '>':
		// Could be '>' or '>='
		if lx.peek() == '=' {
			lx.advance()
			lx.advance()
			return mk(token.GE, 2)
		}
		lx.advance()
		return mk(token.GT, 1)
	case c == '!':
		// Could be '!' (logical NOT) or '!=' (not equal)
		if lx.peek() == '=' {
			lx.advance()
			lx.advance()
			return mk(token.NE, 2)
		}
		lx.advance()
		return mk(token.NOT, 1)
	case c == '&':
		lx.advance()
		return mk(token.AMP, 1)
	case c == '|':
		lx.advance()
		return mk(token.PIPE, 1)
	case c == '%':
		lx.advance()
		return mk(token.PERCENT, 1)
	case c == ';':
		lx.advance()
		return mk(token.SEMI, 1)
	case c == ':':
		lx.advance()
		return mk(token.COLON, 1)
	case c == '(':
		lx.advance()
		return mk(token.LPAREN, 1)
	case c == ')':
		lx.advance()
		return mk(token.RPAREN, 1)
	case c == ',':
		lx.advance()
		return mk(token.COMMA, 1)
	case c == '{':
		lx.advance()
		return mk(token.LBRACE, 1)
	case c == '}':
		lx.advance()
		return mk(token.RBRACE, 1)
	case c == '[':
		lx.advance()
		return mk(token.LBRACKET, 1)
	case c == ']':
		lx.advance()
		return mk(token.RBRACKET, 1)
	case c == '+':
		lx.advance()
		return mk(token.PLUS, 1)
	case c == '-':
		lx.advance()
		return mk(token.MINUS, 1)
	case c == '*':
		lx.advance()
		return mk(token.STAR, 1)
	case c == '/':
		lx.advance()
		return mk(token.SLASH, 1)
	case c == '.':
		lx.advance()
		return mk(token.DOT, 1)
	case c == '"':
		// String literal - delegate to specialized handler
		return lx.readString(line, col)
	case isDigit(c):
		// Numeric literal - delegate to specialized handler
		return lx.readNumber(line, col)
	case isIdentStart(c):
		// Identifier or keyword - delegate to specialized handler
		return lx.readIdentifier(line, col)
	default:
		// Unrecognized byte: report it and retry from the next one
		start := lx.pos
		lx.advance()
		if lx.Sink != nil {
			lx.Sink.Push(errs.TokenError, lx.span(line, col, col),
				"unrecognized byte %q", lx.src[start:start+1])
		}
		return lx.NextToken()
	}
}

// readString scans a double-quoted string literal starting at the
// opening quote. There is no escape processing: characters are taken
// verbatim until the closing quote.
//
// Example:
//
//	Source: `"hi there"`
//	Result: a STRING token with StrVal "hi there"
//
// An unterminated string (source runs out before the closing quote)
// is a fatal lexical error.
func (lx *Lexer) readString(line, col int) token.Token {
	lx.advance() // consume opening quote
	var b strings.Builder
	for lx.current != '"' && lx.current != 0 {
		b.WriteByte(lx.current)
		lx.advance()
	}
	if lx.current == 0 {
		sp := lx.span(line, col, lx.col)
		if lx.Sink != nil {
			lx.Sink.PushFatal(errs.TokenError, sp, "unterminated string literal")
		}
		return token.Token{Type: token.STRING, Span: sp, StrVal: b.String()}
	}
	lx.advance() // consume closing quote
	return token.Token{Type: token.STRING, Span: lx.span(line, col, lx.col-1), StrVal: b.String()}
}

// readNumber scans a run of digits with an optional single dot. The
// presence of a dot selects FLOAT (32-bit); otherwise the literal is
// parsed as an INT (32-bit).
//
// Example:
//
//	"3.14" -> FLOAT token with FloatVal 3.14
//	"42"   -> INT token with IntVal 42
//
// A malformed literal (one strconv rejects despite matching the scan
// loop) emits a non-fatal SyntaxError and yields a zero value so
// scanning can continue.
func (lx *Lexer) readNumber(line, col int) token.Token {
	start := lx.pos
	seenDot := false
	for isDigit(lx.current) || (lx.current == '.' && !seenDot && isDigit(lx.peek())) {
		if lx.current == '.' {
			seenDot = true
		}
		lx.advance()
	}
	text := lx.src[start:lx.pos]
	sp := lx.span(line, col, lx.col-1)
	if seenDot {
		f, err := strconv.ParseFloat(text, 32)
		if err != nil {
			if lx.Sink != nil {
				lx.Sink.Push(errs.SyntaxError, sp, "malformed float literal %q", text)
			}
			return token.Token{Type: token.FLOAT, Span: sp, FloatVal: 0}
		}
		return token.Token{Type: token.FLOAT, Span: sp, FloatVal: float32(f)}
	}
	i, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		if lx.Sink != nil {
			lx.Sink.Push(errs.SyntaxError, sp, "malformed integer literal %q", text)
		}
		return token.Token{Type: token.INT, Span: sp, IntVal: 0}
	}
	return token.Token{Type: token.INT, Span: sp, IntVal: int32(i)}
}

// readIdentifier scans a run of identifier bytes. Keywords are not
// distinguished here; they remain ID tokens and are recognized later
// by the parser's keyword dispatch.
func (lx *Lexer) readIdentifier(line, col int) token.Token {
	start := lx.pos
	for isIdentCont(lx.current) {
		lx.advance()
	}
	text := lx.src[start:lx.pos]
	return token.Token{Type: token.ID, Span: lx.span(line, col, lx.col-1), StrVal: text}
}

// ConsumeAll tokenizes the whole source and returns every token in
// order. It repeatedly calls NextToken until EOF is reached,
// collecting tokens into a slice. Useful for tests and tooling that
// want the full token stream up front rather than one at a time.
//
// Returns:
//   - []token.Token: every token from the source, excluding the
//     trailing EOF token
func (lx *Lexer) ConsumeAll() []token.Token {
	toks := make([]token.Token, 0)
	for {
		t := lx.NextToken()
		if t.Type == token.EOF {
			break
		}
		toks = append(toks, t)
	}
	return toks
}
