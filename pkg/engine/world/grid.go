package world

import "fmt"

// GridAccess is read access to a rectangular grid of cells
type GridAccess interface {
	Width() int
	Height() int
	// TryGetCell returns the cell at (x, y), or false if it is out of bounds
	TryGetCell(x, y int) (*Cell, bool)
}

// TilePainter writes tiles onto cells
type TilePainter interface {
	// PaintTile sets the tile of cell. When overwrite is false, a cell that
	// already holds a tile is left untouched.
	PaintTile(cell *Cell, kind TileKind, overwrite bool)
}

// Grid is an in-memory GridAccess and TilePainter.
// Cells are stored row-major and addressed by (x, y) with y growing downward.
type Grid struct {
	cells  []*Cell
	width  int
	height int
}

var (
	_ GridAccess  = (*Grid)(nil)
	_ TilePainter = (*Grid)(nil)
)

// NewGrid creates a new grid with the given dimensions
func NewGrid(width, height int) *Grid {
	g := &Grid{}
	g.Build(width, height)
	return g
}

// Build initializes the grid with the given dimensions, discarding any previous cells
func (g *Grid) Build(width, height int) {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("grid dimensions must be positive, got %dx%d", width, height))
	}

	g.width = width
	g.height = height
	g.cells = make([]*Cell, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.cells[y*width+x] = NewCell(x, y)
		}
	}
}

// Width returns the number of columns in the grid
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows in the grid
func (g *Grid) Height() int {
	return g.height
}

// IsValidPosition checks if an x/y position is within grid bounds
func (g *Grid) IsValidPosition(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// TryGetCell returns the cell at the given position, or false if out of bounds
func (g *Grid) TryGetCell(x, y int) (*Cell, bool) {
	if !g.IsValidPosition(x, y) {
		return nil, false
	}
	return g.cells[y*g.width+x], true
}

// GetCell returns the cell at the given position, or nil if out of bounds
func (g *Grid) GetCell(x, y int) *Cell {
	c, _ := g.TryGetCell(x, y)
	return c
}

// PaintTile sets the tile of cell. A nil cell is ignored.
func (g *Grid) PaintTile(cell *Cell, kind TileKind, overwrite bool) {
	if cell == nil {
		return
	}
	if !overwrite && cell.Tile != TileNone {
		return
	}
	cell.Tile = kind
}

// TileAt returns the tile at (x, y), or TileNone when out of bounds
func (g *Grid) TileAt(x, y int) TileKind {
	c, ok := g.TryGetCell(x, y)
	if !ok {
		return TileNone
	}
	return c.Tile
}

// Count returns how many cells hold the given tile
func (g *Grid) Count(kind TileKind) int {
	n := 0
	for _, c := range g.cells {
		if c.Tile == kind {
			n++
		}
	}
	return n
}

// BuildAllCellConnections links every cell to its in-bounds neighbours
func (g *Grid) BuildAllCellConnections() {
	g.ForEachCell(func(x, y int, cell *Cell) {
		cell.North = g.GetCell(x, y-1)
		cell.East = g.GetCell(x+1, y)
		cell.South = g.GetCell(x, y+1)
		cell.West = g.GetCell(x-1, y)
	})
}

// ForEachCell iterates over all cells in row-major order
func (g *Grid) ForEachCell(fn func(x, y int, cell *Cell)) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			fn(x, y, g.cells[y*g.width+x])
		}
	}
}

// Snapshot returns a copy of every tile in row-major order
func (g *Grid) Snapshot() []TileKind {
	tiles := make([]TileKind, len(g.cells))
	for i, c := range g.cells {
		tiles[i] = c.Tile
	}
	return tiles
}

// Restore writes back tiles taken by Snapshot.
// It returns an error if the snapshot was taken from a grid of a different size.
func (g *Grid) Restore(tiles []TileKind) error {
	if len(tiles) != len(g.cells) {
		return fmt.Errorf("snapshot has %d tiles, grid has %d", len(tiles), len(g.cells))
	}
	for i, c := range g.cells {
		c.Tile = tiles[i]
	}
	return nil
}

// Rows returns the grid as one string per row using TileKind.Symbol
func (g *Grid) Rows() []string {
	rows := make([]string, 0, g.height)
	line := make([]rune, g.width)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			line[x] = g.cells[y*g.width+x].Tile.Symbol()
		}
		rows = append(rows, string(line))
	}
	return rows
}
