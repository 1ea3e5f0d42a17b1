/*
File    : gscript/parser/parser.go
Author  : GokceOnal1
*/

// Package parser implements GScript's recursive-descent parser with
// explicit precedence climbing. The entry point, ParseCompound,
// consumes the entire token stream up to EOF and returns the
// top-level COMPOUND node.
//
// Grammar, operator precedence low to high:
//
//	compound := expr (';' expr)*
//	expr     := term (('&'|'|') term)*
//	term     := arith (('=='|'!='|'<'|'<='|'>'|'>=') arith)*
//	arith    := factor (('+'|'-') factor)*
//	factor   := mono  (('*'|'/'|'%') mono)*
//	mono     := number | string | identform | '(' expr ')' | '[' list ']' |
//	            '-' mono | '!' mono | EOF-sentinel
//
// identform dispatches on the keyword set {assign, funct, return,
// blueprint, new, if, while, break, true, false}; any other
// identifier is the head of a VAR reference, a call, an index/dot
// chain, or an assignment.
package parser

import (
	"github.com/GokceOnal1/gscript/ast"
	"github.com/GokceOnal1/gscript/errs"
	"github.com/GokceOnal1/gscript/lexer"
	"github.com/GokceOnal1/gscript/token"
)

// Parser holds one token of lookahead over a Lexer and reports
// diagnostics to a shared Sink.
type Parser struct {
	lex  *lexer.Lexer
	cur  token.Token
	sink *errs.Sink
}

// New creates a Parser over lex, primed with its first token.
func New(lex *lexer.Lexer, sink *errs.Sink) *Parser {
	p := &Parser{lex: lex, sink: sink}
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.cur = p.lex.NextToken()
}

func (p *Parser) curIs(t token.Type) bool { return p.cur.Type == t }

func (p *Parser) curKeyword(kw string) bool {
	return p.cur.Type == token.ID && p.cur.StrVal == kw
}

// verify checks that the current token matches expected and consumes
// it. A mismatch here is always fatal: every use of verify checks a
// required token (a paren, brace or bracket, the '=' of a definition,
// EOF) that the grammar gives no way to recover from.
func (p *Parser) verify(expected token.Type) token.Span {
	sp := p.cur.Span
	if p.cur.Type != expected {
		p.sink.PushFatal(errs.TokenError, sp, "expected %q, found %q", expected, p.cur.Type)
	}
	p.advance()
	return sp
}

// expectID consumes an ID token and returns its text, or pushes a
// fatal TokenError if the current token isn't one.
func (p *Parser) expectID() string {
	if p.cur.Type != token.ID {
		p.sink.PushFatal(errs.TokenError, p.cur.Span, "expected identifier, found %q", p.cur.Type)
		return ""
	}
	name := p.cur.StrVal
	p.advance()
	return name
}

// ParseCompound is the parser's exposed entry point: it consumes the
// entire token stream up to EOF.
func (p *Parser) ParseCompound() *ast.Compound {
	comp := p.compoundUntil(token.EOF)
	p.verify(token.EOF)
	return comp
}

// compoundUntil parses a ';'-separated sequence of expr up to (but
// not consuming) a token of type end.
func (p *Parser) compoundUntil(end token.Type) *ast.Compound {
	sp := p.cur.Span
	var stmts []ast.Node
	for !p.curIs(end) && !p.curIs(token.EOF) {
		stmts = append(stmts, p.expr())
		if p.curIs(token.SEMI) {
			p.advance()
			continue
		}
		break
	}
	return &ast.Compound{Base: ast.NewBase(sp), Statements: stmts}
}

// parseBlock parses a brace-delimited compound: `{ stmt; stmt; ... }`.
func (p *Parser) parseBlock() *ast.Compound {
	sp := p.cur.Span
	p.verify(token.LBRACE)
	comp := p.compoundUntil(token.RBRACE)
	p.verify(token.RBRACE)
	comp.Sp = sp
	return comp
}

func (p *Parser) expr() ast.Node {
	left := p.term()
	for p.cur.Type == token.AMP || p.cur.Type == token.PIPE {
		op, sp := p.cur.Type, p.cur.Span
		p.advance()
		right := p.term()
		left = &ast.BinOp{Base: ast.NewBase(sp), Left: left, Op: op, Right: right}
	}
	return left
}

func (p *Parser) term() ast.Node {
	left := p.arith()
	for isComparisonOp(p.cur.Type) {
		op, sp := p.cur.Type, p.cur.Span
		p.advance()
		right := p.arith()
		left = &ast.BinOp{Base: ast.NewBase(sp), Left: left, Op: op, Right: right}
	}
	return left
}

func isComparisonOp(t token.Type) bool {
	switch t {
	case token.EQ, token.NE, token.LT, token.LE, token.GT, token.GE:
		return true
	}
	return false
}

func (p *Parser) arith() ast.Node {
	left := p.factor()
	for p.cur.Type == token.PLUS || p.cur.Type == token.MINUS {
		op, sp := p.cur.Type, p.cur.Span
		p.advance()
		right := p.factor()
		left = &ast.BinOp{Base: ast.NewBase(sp), Left: left, Op: op, Right: right}
	}
	return left
}

func (p *Parser) factor() ast.Node {
	left := p.mono()
	for p.cur.Type == token.STAR || p.cur.Type == token.SLASH || p.cur.Type == token.PERCENT {
		op, sp := p.cur.Type, p.cur.Span
		p.advance()
		right := p.mono()
		left = &ast.BinOp{Base: ast.NewBase(sp), Left: left, Op: op, Right: right}
	}
	return left
}

func (p *Parser) mono() ast.Node {
	tok := p.cur
	switch tok.Type {
	case token.INT:
		p.advance()
		return &ast.IntLit{Base: ast.NewBase(tok.Span), Val: tok.IntVal}
	case token.FLOAT:
		p.advance()
		return &ast.FloatLit{Base: ast.NewBase(tok.Span), Val: tok.FloatVal}
	case token.STRING:
		p.advance()
		return &ast.StringLit{Base: ast.NewBase(tok.Span), Val: tok.StrVal}
	case token.LPAREN:
		p.advance()
		n := p.expr()
		p.verify(token.RPAREN)
		return n
	case token.LBRACKET:
		return p.parseList()
	case token.MINUS, token.NOT:
		p.advance()
		body := p.mono()
		return &ast.UnOp{Base: ast.NewBase(tok.Span), Op: tok.Type, Body: body}
	case token.EOF:
		return &ast.EofLit{Base: ast.NewBase(tok.Span)}
	case token.ID:
		return p.identForm()
	default:
		p.sink.Push(errs.SyntaxError, tok.Span, "unexpected token %q", tok.Type)
		p.advance()
		return &ast.NoopLit{Base: ast.NewBase(tok.Span)}
	}
}

// parseList parses `[ e1, e2, ... ]`.
func (p *Parser) parseList() ast.Node {
	sp := p.cur.Span
	p.verify(token.LBRACKET)
	var elems []ast.Node
	for !p.curIs(token.RBRACKET) && !p.curIs(token.EOF) {
		elems = append(elems, p.expr())
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.verify(token.RBRACKET)
	return &ast.ListLit{Base: ast.NewBase(sp), Elements: elems}
}

// identForm dispatches an ID token on the keyword set, or falls
// through to parsePlainIdent for an ordinary reference/call/assignment.
func (p *Parser) identForm() ast.Node {
	tok := p.cur
	switch tok.StrVal {
	case "true":
		p.advance()
		return &ast.BoolLit{Base: ast.NewBase(tok.Span), Val: true}
	case "false":
		p.advance()
		return &ast.BoolLit{Base: ast.NewBase(tok.Span), Val: false}
	case "assign":
		p.advance()
		return p.parseVarDef(tok.Span)
	case "funct":
		p.advance()
		return p.parseFuncDef(tok.Span)
	case "return":
		p.advance()
		return p.parseReturn(tok.Span)
	case "blueprint":
		p.advance()
		return p.parseClass(tok.Span)
	case "new":
		p.advance()
		return p.parseNew(tok.Span)
	case "if":
		p.advance()
		return p.parseIf(tok.Span)
	case "while":
		p.advance()
		return p.parseWhile(tok.Span)
	case "break":
		p.advance()
		return &ast.BreakStmt{Base: ast.NewBase(tok.Span)}
	default:
		return p.parsePlainIdent()
	}
}

// parsePlainIdent parses a non-keyword identifier: a VAR reference, a
// FUNC_CALL, or the head of an index/dot chain, with assignment
// synthesized afterward if the chain is followed by '='.
func (p *Parser) parsePlainIdent() ast.Node {
	tok := p.cur
	name, sp := tok.StrVal, tok.Span
	p.advance()

	var base ast.Node
	if p.curIs(token.LPAREN) {
		base = p.parseFuncCall(name, sp)
	} else {
		base = &ast.Var{Base: ast.NewBase(sp), Name: name}
	}
	base = p.parsePostfix(base)

	if p.curIs(token.ASSIGN) {
		eqSp := p.cur.Span
		p.advance()
		val := p.expr()
		switch b := base.(type) {
		case *ast.Var:
			return &ast.VarReassign{Base: ast.NewBase(sp), Name: b.Name, Value: val}
		case *ast.Index:
			return &ast.ListReassign{Base: ast.NewBase(sp), Target: b, Value: val}
		case *ast.ObjectIndex:
			return &ast.ObjectReassign{Base: ast.NewBase(sp), Target: b, Value: val}
		default:
			p.sink.PushFatal(errs.SyntaxError, eqSp, "left-hand side of '=' is not assignable")
			return &ast.NoopLit{Base: ast.NewBase(eqSp)}
		}
	}
	return base
}

// parsePostfix consumes a chain of `[index]...` and `.property`
// suffixes following base, building nested Index / ObjectIndex nodes.
func (p *Parser) parsePostfix(base ast.Node) ast.Node {
	for {
		switch {
		case p.curIs(token.LBRACKET):
			sp := p.cur.Span
			var indices []ast.Node
			for p.curIs(token.LBRACKET) {
				p.advance()
				indices = append(indices, p.expr())
				p.verify(token.RBRACKET)
			}
			base = &ast.Index{Base: ast.NewBase(sp), Target: base, Indices: indices}
		case p.curIs(token.DOT):
			sp := p.cur.Span
			p.advance()
			prop := p.parsePropertyAtom()
			base = &ast.ObjectIndex{Base: ast.NewBase(sp), Object: base, Property: prop}
		default:
			return base
		}
	}
}

// parsePropertyAtom parses the NAME (optionally followed by an
// immediate call or index) on the right of a '.' in a dot chain.
func (p *Parser) parsePropertyAtom() ast.Node {
	sp := p.cur.Span
	name := p.expectID()

	if p.curIs(token.LPAREN) {
		return p.parseFuncCall(name, sp)
	}
	var node ast.Node = &ast.Var{Base: ast.NewBase(sp), Name: name}
	if p.curIs(token.LBRACKET) {
		var indices []ast.Node
		for p.curIs(token.LBRACKET) {
			p.advance()
			indices = append(indices, p.expr())
			p.verify(token.RBRACKET)
		}
		node = &ast.Index{Base: ast.NewBase(sp), Target: node, Indices: indices}
	}
	return node
}

func (p *Parser) parseFuncCall(name string, sp token.Span) ast.Node {
	p.verify(token.LPAREN)
	var args []ast.Node
	for !p.curIs(token.RPAREN) {
		args = append(args, p.expr())
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.verify(token.RPAREN)
	return &ast.FuncCall{Base: ast.NewBase(sp), Name: name, Args: args}
}

// parseVarDef parses `NAME = expr` following a consumed `assign`.
func (p *Parser) parseVarDef(sp token.Span) ast.Node {
	name := p.expectID()
	p.verify(token.ASSIGN)
	val := p.expr()
	return &ast.VarDef{Base: ast.NewBase(sp), Name: name, Value: val}
}

// parseFuncDef parses `NAME ( param P1, param P2, ... ) { body }`
// following a consumed `funct`.
func (p *Parser) parseFuncDef(sp token.Span) *ast.FuncDef {
	name := p.expectID()
	p.verify(token.LPAREN)
	var args []*ast.VarDef
	for !p.curIs(token.RPAREN) {
		pSp := p.cur.Span
		if p.curKeyword("param") {
			p.advance()
		} else {
			p.sink.Push(errs.SyntaxError, p.cur.Span, "expected 'param' in parameter list")
		}
		pname := p.expectID()
		args = append(args, &ast.VarDef{Base: ast.NewBase(pSp), Name: pname})
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.verify(token.RPAREN)
	body := p.parseBlock()
	return &ast.FuncDef{Base: ast.NewBase(sp), Name: name, Args: args, Body: body}
}

func (p *Parser) parseReturn(sp token.Span) ast.Node {
	val := p.expr()
	return &ast.Return{Base: ast.NewBase(sp), Value: val}
}

// parseClass parses `NAME { prop P; method funct M(..){..}; ... }`
// following a consumed `blueprint`. Per spec, a method name that
// repeats overwrites the earlier definition (last-definition-wins).
func (p *Parser) parseClass(sp token.Span) ast.Node {
	name := p.expectID()
	p.verify(token.LBRACE)
	cls := &ast.Class{
		Base:       ast.NewBase(sp),
		Name:       name,
		Properties: make(map[string]*ast.VarDef),
		Methods:    make(map[string]*ast.FuncDef),
	}
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		switch {
		case p.curKeyword("prop"):
			pSp := p.cur.Span
			p.advance()
			pname := p.expectID()
			if _, exists := cls.Properties[pname]; !exists {
				cls.PropOrder = append(cls.PropOrder, pname)
			}
			cls.Properties[pname] = &ast.VarDef{Base: ast.NewBase(pSp), Name: pname}
		case p.curKeyword("method"):
			p.advance()
			if !p.curKeyword("funct") {
				p.sink.PushFatal(errs.SyntaxError, p.cur.Span, "expected 'funct' after 'method'")
			}
			mSp := p.cur.Span
			p.advance()
			fn := p.parseFuncDef(mSp)
			if _, exists := cls.Methods[fn.Name]; !exists {
				cls.MethodOrder = append(cls.MethodOrder, fn.Name)
			}
			cls.Methods[fn.Name] = fn
		default:
			p.sink.PushFatal(errs.SyntaxError, p.cur.Span, "expected 'prop' or 'method' in blueprint body")
		}
		if p.curIs(token.SEMI) {
			p.advance()
		}
	}
	p.verify(token.RBRACE)
	return cls
}

func (p *Parser) parseNew(sp token.Span) ast.Node {
	name := p.expectID()
	p.verify(token.LPAREN)
	var args []ast.Node
	for !p.curIs(token.RPAREN) {
		args = append(args, p.expr())
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.verify(token.RPAREN)
	return &ast.New{Base: ast.NewBase(sp), Name: name, Args: args}
}

// parseIf parses `if (cond) { body } (else if (...) {...})* (else {...})?`
// following a consumed `if`.
func (p *Parser) parseIf(sp token.Span) ast.Node {
	n := &ast.If{Base: ast.NewBase(sp)}

	p.verify(token.LPAREN)
	cond := p.expr()
	p.verify(token.RPAREN)
	n.Conditions = append(n.Conditions, cond)
	n.Bodies = append(n.Bodies, p.parseBlock())

	for p.curKeyword("else") {
		p.advance()
		if p.curKeyword("if") {
			p.advance()
			p.verify(token.LPAREN)
			c := p.expr()
			p.verify(token.RPAREN)
			n.Conditions = append(n.Conditions, c)
			n.Bodies = append(n.Bodies, p.parseBlock())
			continue
		}
		n.Else = p.parseBlock()
		break
	}
	return n
}

func (p *Parser) parseWhile(sp token.Span) ast.Node {
	p.verify(token.LPAREN)
	cond := p.expr()
	p.verify(token.RPAREN)
	body := p.parseBlock()
	return &ast.While{Base: ast.NewBase(sp), Condition: cond, Body: body}
}
