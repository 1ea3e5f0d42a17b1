package errs

import (
	"bytes"
	"testing"

	"github.com/GokceOnal1/gscript/token"
	"github.com/stretchr/testify/assert"
)

func TestSink_Push_AccumulatesWithoutExiting(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(&buf)
	sink.Push(TypeError, token.Span{File: "a.gs", Line: 1, StartCol: 1}, "bad type")
	assert.True(t, sink.HasErrors())
	assert.Len(t, sink.Errors, 1)
	assert.Equal(t, TypeError, sink.Errors[0].Kind)
}

func TestSink_DumpPending_PrintsWithoutExiting(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(&buf)
	sink.Push(SyntaxError, token.Span{
		File: "a.gs", Line: 2, StartCol: 3, EndCol: 5, SourceLine: "  bad + code",
	}, "unexpected token")

	sink.DumpPending()
	out := buf.String()
	assert.Contains(t, out, "a.gs:2:3")
	assert.Contains(t, out, "SyntaxError")
	assert.Contains(t, out, "unexpected token")
	assert.Contains(t, out, "bad + code")
}

func TestPushFatal_PanicsAndDumps(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(&buf)
	assert.Panics(t, func() {
		sink.PushFatal(DivideByZeroError, token.Span{File: "a.gs", Line: 1, StartCol: 1}, "division by zero")
	})
	assert.Contains(t, buf.String(), "DivideByZeroError")
}

func TestCaretLine_Width(t *testing.T) {
	sp := token.Span{StartCol: 3, EndCol: 5}
	line := caretLine(sp)
	assert.Equal(t, "  ^^^", line)
}
