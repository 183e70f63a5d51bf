package world

import (
	"github.com/zyedidia/generic/mapset"
)

// Reachable returns every walkable cell reachable from start through N/E/S/W
// moves over walkable cells. BuildAllCellConnections must have been called.
func Reachable(start *Cell) mapset.Set[*Cell] {
	visited := mapset.New[*Cell]()
	if !start.Walkable() {
		return visited
	}

	queue := []*Cell{start}
	visited.Put(start)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, n := range current.Neighbors() {
			if n.Walkable() && !visited.Has(n) {
				visited.Put(n)
				queue = append(queue, n)
			}
		}
	}
	return visited
}

// Components returns the number of separate walkable regions in the grid.
// A layout where every room is reachable from every other has exactly one.
func Components(g *Grid) int {
	g.BuildAllCellConnections()

	seen := mapset.New[*Cell]()
	count := 0
	g.ForEachCell(func(x, y int, cell *Cell) {
		if !cell.Walkable() || seen.Has(cell) {
			return
		}
		count++
		Reachable(cell).Each(func(c *Cell) {
			seen.Put(c)
		})
	})
	return count
}

// AllReachable returns true if every walkable cell is reachable from the
// first one and at least one walkable cell exists
func AllReachable(g *Grid) bool {
	return Components(g) == 1
}
