package eval

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/GokceOnal1/gscript/errs"
	"github.com/GokceOnal1/gscript/lexer"
	"github.com/GokceOnal1/gscript/parser"
	"github.com/stretchr/testify/require"
)

func TestFileIO_WriteThenReadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scratch.txt")
	src := fmt.Sprintf(`
assign f = fopen(%q, "w");
fwrite(f, "hi");
fclose(f);
assign g = fopen(%q, "r");
write(fread(g, 2));
fclose(g)
`, path, path)

	var out bytes.Buffer
	sink := errs.NewSink(io.Discard)
	lx := lexer.New("<test>", src)
	lx.Sink = sink
	p := parser.New(lx, sink)
	prog := p.ParseCompound()
	require.False(t, sink.HasErrors(), "parse errors: %+v", sink.Errors)

	ev := New(sink, &out, strings.NewReader(""))
	ev.Run(prog)
	require.False(t, sink.HasErrors(), "eval errors: %+v", sink.Errors)
	require.Equal(t, "hi\n", out.String())
}

func TestFileIO_SeekAndTell(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scratch.txt")
	src := fmt.Sprintf(`
assign f = fopen(%q, "w");
fwrite(f, "hello world");
fclose(f);
assign g = fopen(%q, "r");
fseek(g, 6, 0);
write(ftell(g));
write(fread(g, 5));
fclose(g)
`, path, path)

	var out bytes.Buffer
	sink := errs.NewSink(io.Discard)
	lx := lexer.New("<test>", src)
	lx.Sink = sink
	p := parser.New(lx, sink)
	prog := p.ParseCompound()
	require.False(t, sink.HasErrors(), "parse errors: %+v", sink.Errors)

	ev := New(sink, &out, strings.NewReader(""))
	ev.Run(prog)
	require.False(t, sink.HasErrors(), "eval errors: %+v", sink.Errors)
	require.Equal(t, "6\nworld\n", out.String())
}
