package parser

import (
	"io"
	"testing"

	"github.com/GokceOnal1/gscript/ast"
	"github.com/GokceOnal1/gscript/errs"
	"github.com/GokceOnal1/gscript/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) (*ast.Compound, *errs.Sink) {
	t.Helper()
	sink := errs.NewSink(io.Discard)
	lx := lexer.New("<test>", src)
	lx.Sink = sink
	p := New(lx, sink)
	return p.ParseCompound(), sink
}

func TestParser_ArithmeticPrecedence(t *testing.T) {
	prog, sink := parse(t, "1 + 2 * 3")
	require.False(t, sink.HasErrors())
	require.Len(t, prog.Statements, 1)
	bin, ok := prog.Statements[0].(*ast.BinOp)
	require.True(t, ok)
	// top-level op must be '+' since '*' binds tighter
	assert.Equal(t, "+", string(bin.Op))
	_, rightIsMul := bin.Right.(*ast.BinOp)
	assert.True(t, rightIsMul)
}

func TestParser_VarDefAndReassign(t *testing.T) {
	prog, sink := parse(t, "assign a = 1; a = 2")
	require.False(t, sink.HasErrors())
	require.Len(t, prog.Statements, 2)
	_, ok := prog.Statements[0].(*ast.VarDef)
	assert.True(t, ok)
	_, ok = prog.Statements[1].(*ast.VarReassign)
	assert.True(t, ok)
}

func TestParser_ListIndexReassign(t *testing.T) {
	prog, sink := parse(t, "xs[1] = 99")
	require.False(t, sink.HasErrors())
	require.Len(t, prog.Statements, 1)
	lr, ok := prog.Statements[0].(*ast.ListReassign)
	require.True(t, ok)
	assert.Equal(t, "xs", lr.Target.Target.(*ast.Var).Name)
}

func TestParser_FuncDef(t *testing.T) {
	prog, sink := parse(t, "funct add(param a, param b) { return a + b }")
	require.False(t, sink.HasErrors())
	fd, ok := prog.Statements[0].(*ast.FuncDef)
	require.True(t, ok)
	assert.Equal(t, "add", fd.Name)
	require.Len(t, fd.Args, 2)
	assert.Equal(t, "a", fd.Args[0].Name)
	assert.Equal(t, "b", fd.Args[1].Name)
}

func TestParser_Blueprint(t *testing.T) {
	src := `blueprint Point { prop x; prop y; method funct create(param a, param b) { x = a; y = b }; method funct sum() { return x + y } }`
	prog, sink := parse(t, src)
	require.False(t, sink.HasErrors())
	cls, ok := prog.Statements[0].(*ast.Class)
	require.True(t, ok)
	assert.Equal(t, "Point", cls.Name)
	assert.Contains(t, cls.Properties, "x")
	assert.Contains(t, cls.Properties, "y")
	assert.Contains(t, cls.Methods, "create")
	assert.Contains(t, cls.Methods, "sum")
}

func TestParser_IfElseChain(t *testing.T) {
	src := `if (a == 1) { write(1) } else if (a == 2) { write(2) } else { write(3) }`
	prog, sink := parse(t, src)
	require.False(t, sink.HasErrors())
	ifNode, ok := prog.Statements[0].(*ast.If)
	require.True(t, ok)
	assert.Len(t, ifNode.Conditions, 2)
	assert.Len(t, ifNode.Bodies, 2)
	assert.NotNil(t, ifNode.Else)
}

func TestParser_ObjectIndexChain(t *testing.T) {
	prog, sink := parse(t, "a.b.c = 1")
	require.False(t, sink.HasErrors())
	orr, ok := prog.Statements[0].(*ast.ObjectReassign)
	require.True(t, ok)
	assert.Equal(t, "c", orr.Target.Property.(*ast.Var).Name)
	inner, ok := orr.Target.Object.(*ast.ObjectIndex)
	require.True(t, ok)
	assert.Equal(t, "b", inner.Property.(*ast.Var).Name)
}
