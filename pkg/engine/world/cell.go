// Package world provides generic 2D grid-based world primitives.
// Generators see the grid only through the GridAccess and TilePainter
// interfaces, so any tile store can be plugged in.
package world

// Cell represents a single tile in the grid
type Cell struct {
	// Grid position
	X int
	Y int

	// Tile painted on this cell
	Tile TileKind

	// Navigation - links to adjacent cells, set by Grid.BuildAllCellConnections
	North *Cell
	East  *Cell
	South *Cell
	West  *Cell
}

// NewCell creates a new unpainted cell at the given position
func NewCell(x, y int) *Cell {
	return &Cell{X: x, Y: y}
}

// Walkable returns true if the cell holds a room or corridor tile
func (c *Cell) Walkable() bool {
	return c != nil && c.Tile.Walkable()
}

// Neighbors returns all non-nil adjacent cells in N, E, S, W order
func (c *Cell) Neighbors() []*Cell {
	neighbors := make([]*Cell, 0, 4)
	for _, n := range []*Cell{c.North, c.East, c.South, c.West} {
		if n != nil {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}
