package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpan_String(t *testing.T) {
	sp := Span{File: "entry/a.gs", Line: 3, StartCol: 5}
	assert.Equal(t, "entry/a.gs:3:5", sp.String())
}

func TestToken_Literal(t *testing.T) {
	tests := []struct {
		tok      Token
		expected string
	}{
		{Token{Type: INT, IntVal: 42}, "42"},
		{Token{Type: FLOAT, FloatVal: 1.5}, "1.5"},
		{Token{Type: STRING, StrVal: "hi"}, "hi"},
		{Token{Type: ID, StrVal: "x"}, "x"},
		{Token{Type: PLUS}, "+"},
		{Token{Type: EOF}, "EOF"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.tok.Literal())
	}
}

func TestKeywords(t *testing.T) {
	for _, kw := range []string{"assign", "funct", "return", "blueprint", "new", "if", "else", "while", "break", "true", "false", "param", "prop", "method"} {
		assert.True(t, Keywords[kw], "expected %q to be a keyword", kw)
	}
	assert.False(t, Keywords["notakeyword"])
}
