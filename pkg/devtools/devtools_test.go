package devtools

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/Tim4270/ProceduralGenerationTools/pkg/engine/random"
	"github.com/Tim4270/ProceduralGenerationTools/pkg/engine/world"
	"github.com/Tim4270/ProceduralGenerationTools/pkg/generator"
)

func generated(t *testing.T) (*world.Grid, generator.Result, *generator.Tree) {
	t.Helper()
	var tree *generator.Tree
	g := world.NewGrid(40, 30)
	gen := generator.NewBSP(generator.DefaultConfig(), random.New(5),
		generator.WithLogger(log.New(io.Discard)),
		generator.WithTreeObserver(func(tr *generator.Tree) { tree = tr }))
	res, err := gen.Generate(context.Background(), g, g)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return g, res, tree
}

func TestDumpMap(t *testing.T) {
	g, res, _ := generated(t)

	var buf bytes.Buffer
	if err := DumpMap(&buf, g, res); err != nil {
		t.Fatalf("DumpMap: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"--- Metadata ---",
		"run_id: " + res.RunID,
		"grid_width: 40",
		"grid_height: 30",
		"walkable_regions: 1",
		"--- Legend (cell symbols) ---",
		"--- Map ---",
		"--- Rooms (placement order) ---",
		"--- Tile counts ---",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump is missing %q", want)
		}
	}
	for _, row := range g.Rows() {
		if !strings.Contains(out, row+"\n") {
			t.Fatalf("dump is missing map row %q", row)
		}
	}
	if got := strings.Count(out, "  index: "); got != res.RoomsPlaced {
		t.Errorf("dump lists %d rooms, want %d", got, res.RoomsPlaced)
	}
}

func TestDumpMap_NoGrid(t *testing.T) {
	if err := DumpMap(io.Discard, nil, generator.Result{}); err == nil {
		t.Error("DumpMap(nil grid) should fail")
	}
}

func TestDumpMapToFile(t *testing.T) {
	g, res, _ := generated(t)
	path := filepath.Join(t.TempDir(), "dump.txt")

	written, err := DumpMapToFile(path, g, res)
	if err != nil {
		t.Fatalf("DumpMapToFile: %v", err)
	}
	if !filepath.IsAbs(written) {
		t.Errorf("returned path %q is not absolute", written)
	}
	data, err := os.ReadFile(written)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "run_id: "+res.RunID) {
		t.Error("file does not contain the dump")
	}
}

func TestDumpMapToFile_Errors(t *testing.T) {
	g, res, _ := generated(t)
	dir := t.TempDir()

	written, err := DumpMapToFile(filepath.Join(dir, "dump.txt"), nil, res)
	if err == nil || written != "" {
		t.Errorf("nil grid: got path %q and err %v, want no path and an error", written, err)
	}

	if written, err := DumpMapToFile(dir, g, res); err == nil || written != "" {
		t.Errorf("directory target: got path %q and err %v, want no path and an error", written, err)
	}
}

func TestTreeToDOT(t *testing.T) {
	_, res, tree := generated(t)
	dot := TreeToDOT(tree)

	if !strings.HasPrefix(dot, "digraph BSP {") || !strings.HasSuffix(dot, "}\n") {
		t.Fatalf("not a digraph:\n%s", dot)
	}
	if got, want := strings.Count(dot, "->"), tree.Len()-1; got != want {
		t.Errorf("got %d edges, want %d", got, want)
	}
	if got := strings.Count(dot, "palegreen"); got != res.RoomsPlaced {
		t.Errorf("got %d room leaves, want %d", got, res.RoomsPlaced)
	}
}

func TestTreeToDOT_Empty(t *testing.T) {
	if dot := TreeToDOT(nil); strings.Contains(dot, "->") {
		t.Errorf("nil tree should have no edges:\n%s", dot)
	}
}

func TestRenderTreeSVG(t *testing.T) {
	_, _, tree := generated(t)

	svg, err := RenderTreeSVG(context.Background(), TreeToDOT(tree))
	if err != nil {
		t.Fatalf("RenderTreeSVG: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("output is not SVG")
	}
}
