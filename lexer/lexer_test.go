package lexer

import (
	"io"
	"testing"

	"github.com/GokceOnal1/gscript/errs"
	"github.com/GokceOnal1/gscript/token"
	"github.com/stretchr/testify/assert"
)

func typesOf(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestLexer_ConsumeAll_Operators(t *testing.T) {
	tests := []struct {
		input    string
		expected []token.Type
	}{
		{"1 + 2 * 3", []token.Type{token.INT, token.PLUS, token.INT, token.STAR, token.INT}},
		{"a == b != c", []token.Type{token.ID, token.EQ, token.ID, token.NE, token.ID}},
		{"<= < >= > = !", []token.Type{token.LE, token.LT, token.GE, token.GT, token.ASSIGN, token.NOT}},
		{"x[0][1].y", []token.Type{token.ID, token.LBRACKET, token.INT, token.RBRACKET, token.LBRACKET, token.INT, token.RBRACKET, token.DOT, token.ID}},
	}
	for _, tt := range tests {
		lx := New("<test>", tt.input)
		toks := lx.ConsumeAll()
		assert.Equal(t, tt.expected, typesOf(toks), "input: %q", tt.input)
	}
}

func TestLexer_Comments(t *testing.T) {
	lx := New("<test>", `1 \this is a comment\ + 2`)
	toks := lx.ConsumeAll()
	assert.Equal(t, []token.Type{token.INT, token.PLUS, token.INT}, typesOf(toks))
}

func TestLexer_StringLiteral(t *testing.T) {
	lx := New("<test>", `"hello world"`)
	toks := lx.ConsumeAll()
	assert.Len(t, toks, 1)
	assert.Equal(t, token.STRING, toks[0].Type)
	assert.Equal(t, "hello world", toks[0].StrVal)
}

func TestLexer_NumberKinds(t *testing.T) {
	lx := New("<test>", "42 3.14")
	toks := lx.ConsumeAll()
	assert.Equal(t, token.INT, toks[0].Type)
	assert.Equal(t, int32(42), toks[0].IntVal)
	assert.Equal(t, token.FLOAT, toks[1].Type)
	assert.InDelta(t, 3.14, toks[1].FloatVal, 0.0001)
}

func TestLexer_UnrecognizedByte_PushesTokenError(t *testing.T) {
	sink := errs.NewSink(io.Discard)
	lx := New("<test>", "1 @ 2")
	lx.Sink = sink
	toks := lx.ConsumeAll()
	assert.Equal(t, []token.Type{token.INT, token.INT}, typesOf(toks))
	assert.True(t, sink.HasErrors())
}
