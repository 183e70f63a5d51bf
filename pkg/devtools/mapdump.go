// Package devtools provides developer tools for inspecting generated layouts.
package devtools

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Tim4270/ProceduralGenerationTools/pkg/engine/world"
	"github.com/Tim4270/ProceduralGenerationTools/pkg/generator"
)

// DefaultMapDumpFilename is used when DumpMapToFile is given an empty path
const DefaultMapDumpFilename = "map.txt"

// DumpMap writes a debug dump of a generated grid to w: metadata, legend,
// the full map, the placed rooms and per-tile counts. The format is plain
// sections of key: value lines.
func DumpMap(w io.Writer, grid *world.Grid, res generator.Result) error {
	if grid == nil {
		return fmt.Errorf("no grid")
	}
	bw := bufio.NewWriter(w)

	// --- Metadata ---
	fmt.Fprintln(bw, "=== MAP DUMP (BSP layout, rooms, corridors) ===")
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "--- Metadata ---")
	fmt.Fprintf(bw, "run_id: %s\n", res.RunID)
	fmt.Fprintf(bw, "state: %s\n", res.State)
	fmt.Fprintf(bw, "success: %v\n", res.Success)
	fmt.Fprintf(bw, "cancelled: %v\n", res.Cancelled)
	fmt.Fprintf(bw, "grid_width: %d\n", grid.Width())
	fmt.Fprintf(bw, "grid_height: %d\n", grid.Height())
	fmt.Fprintln(bw, "coordinate_system: x,y (0-based, x=column, y=row growing downward)")
	fmt.Fprintf(bw, "leaves: %d\n", res.Leaves)
	fmt.Fprintf(bw, "split_rects: %d\n", res.SplitRects)
	fmt.Fprintf(bw, "rooms_placed: %d\n", res.RoomsPlaced)
	fmt.Fprintf(bw, "corridors: %d\n", res.Corridors)
	fmt.Fprintf(bw, "walkable_regions: %d\n", world.Components(grid))
	fmt.Fprintln(bw)

	// --- Legend ---
	fmt.Fprintln(bw, "--- Legend (cell symbols) ---")
	for _, kind := range world.AllTileKinds() {
		fmt.Fprintf(bw, "%q = %s  ", kind.Symbol(), kind)
	}
	fmt.Fprintln(bw)
	fmt.Fprintln(bw)

	// --- Map ---
	fmt.Fprintln(bw, "--- Map ---")
	for _, row := range grid.Rows() {
		fmt.Fprintln(bw, row)
	}
	fmt.Fprintln(bw)

	// --- Rooms ---
	fmt.Fprintln(bw, "--- Rooms (placement order) ---")
	for i, room := range res.Rooms {
		fmt.Fprintf(bw, "  index: %d leaf: %d x: %d y: %d w: %d h: %d center: %d,%d\n",
			i, room.Leaf, room.Rect.X, room.Rect.Y, room.Rect.W, room.Rect.H, room.Center.X, room.Center.Y)
	}
	fmt.Fprintln(bw)

	// --- Tile counts ---
	fmt.Fprintln(bw, "--- Tile counts ---")
	for _, kind := range world.AllTileKinds() {
		fmt.Fprintf(bw, "%s: %d\n", kind, grid.Count(kind))
	}

	return bw.Flush()
}

// DumpMapToFile writes DumpMap output to path (DefaultMapDumpFilename when
// empty) and returns the absolute path written
func DumpMapToFile(path string, grid *world.Grid, res generator.Result) (absPath string, err error) {
	if path == "" {
		path = DefaultMapDumpFilename
	}
	absPath, err = filepath.Abs(path)
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			absPath, err = "", cerr
		}
	}()

	if err := DumpMap(f, grid, res); err != nil {
		return "", fmt.Errorf("dump map: %w", err)
	}
	if err := f.Sync(); err != nil {
		return "", err
	}
	return absPath, nil
}
