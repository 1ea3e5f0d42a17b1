package eval

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/GokceOnal1/gscript/errs"
	"github.com/GokceOnal1/gscript/lexer"
	"github.com/GokceOnal1/gscript/parser"
	"github.com/GokceOnal1/gscript/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run lexes, parses, and evaluates src against a fresh Evaluator,
// returning both the final statement's value and whatever the program
// wrote via write().
func run(t *testing.T, src string) (value.Value, string) {
	t.Helper()
	var out bytes.Buffer
	sink := errs.NewSink(io.Discard)
	lx := lexer.New("<test>", src)
	lx.Sink = sink
	p := parser.New(lx, sink)
	prog := p.ParseCompound()
	require.False(t, sink.HasErrors(), "parse errors: %+v", sink.Errors)

	ev := New(sink, &out, strings.NewReader(""))
	result := ev.Run(prog)
	require.False(t, sink.HasErrors(), "eval errors: %+v", sink.Errors)
	return result, out.String()
}

func TestScenario_IntAddition(t *testing.T) {
	_, out := run(t, `assign a = 1; assign b = 2; write(a + b)`)
	assert.Equal(t, "3\n", out)
}

func TestScenario_ListIndexReassign(t *testing.T) {
	_, out := run(t, `assign xs = [10, 20, 30]; xs[1] = 99; write(xs)`)
	assert.Equal(t, "[10, 99, 30]\n", out)
}

func TestScenario_RecursiveFactorial(t *testing.T) {
	src := `funct fact(param n) { if (n == 0) { return 1 } else { return n * fact(n - 1) } }; write(fact(5))`
	_, out := run(t, src)
	assert.Equal(t, "120\n", out)
}

func TestScenario_WhileLoop(t *testing.T) {
	src := `assign i = 0; while (i < 3) { write(i); i = i + 1 }`
	_, out := run(t, src)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestScenario_BlueprintMethodDispatch(t *testing.T) {
	src := `blueprint Point { prop x; prop y; method funct create(param a, param b) { x = a; y = b }; method funct sum() { return x + y } }; assign p = new Point(3, 4); write(p.sum())`
	_, out := run(t, src)
	assert.Equal(t, "7\n", out)
}

func TestScenario_NestedListIndexReassign(t *testing.T) {
	src := `assign m = [[1,2],[3,4]]; m[1][0] = 9; write(m[1][0]); write(m[0][1])`
	_, out := run(t, src)
	assert.Equal(t, "9\n2\n", out)
}

func TestInvariant_ObjectAssignIsByValue(t *testing.T) {
	src := `blueprint Box { prop v; method funct create(param a) { v = a } }; assign x = new Box(1); assign y = x; y.v = 2; write(x.v); write(y.v)`
	_, out := run(t, src)
	assert.Equal(t, "1\n2\n", out)
}

func TestInvariant_BreakStopsAfterOneIteration(t *testing.T) {
	src := `assign i = 0; while (i < 100) { write(i); i = i + 1; break }`
	_, out := run(t, src)
	assert.Equal(t, "0\n", out)
}

func TestInvariant_DivideByZeroIsFatal(t *testing.T) {
	var out bytes.Buffer
	sink := errs.NewSink(io.Discard)
	lx := lexer.New("<test>", `1 / 0`)
	lx.Sink = sink
	p := parser.New(lx, sink)
	prog := p.ParseCompound()
	require.False(t, sink.HasErrors())

	ev := New(sink, &out, strings.NewReader(""))
	assert.Panics(t, func() { ev.Run(prog) })
	assert.True(t, sink.HasErrors())
}

func TestInvariant_TypeMismatchYieldsNoopNotFatal(t *testing.T) {
	sink := errs.NewSink(io.Discard)
	lx := lexer.New("<test>", `"a" + true`)
	lx.Sink = sink
	p := parser.New(lx, sink)
	prog := p.ParseCompound()
	require.False(t, sink.HasErrors())

	ev := New(sink, io.Discard, strings.NewReader(""))
	result := ev.Run(prog)
	assert.Equal(t, value.KNoop, result.Kind())
	assert.True(t, sink.HasErrors(), "a non-fatal TypeError should still be recorded")
}

func TestBuiltin_Length(t *testing.T) {
	result, _ := run(t, `length([1,2,3])`)
	assert.Equal(t, int32(3), result.(*value.Int).Val)

	result, _ = run(t, `length("abc")`)
	assert.Equal(t, int32(3), result.(*value.Int).Val)
}

func TestBuiltin_TypeOf(t *testing.T) {
	result, _ := run(t, `type(1)`)
	assert.Equal(t, "Integer", result.(*value.Type).Tag)
}

func TestBuiltin_Replace(t *testing.T) {
	result, _ := run(t, `replace("cat", 0, "b")`)
	assert.Equal(t, "bat", result.(*value.String).Val)
}

func TestBuiltin_ToIntAndToFloat(t *testing.T) {
	result, _ := run(t, `to_int("42")`)
	assert.Equal(t, int32(42), result.(*value.Int).Val)

	result, _ = run(t, `to_float("3.5")`)
	assert.InDelta(t, 3.5, result.(*value.Float).Val, 0.0001)
}
