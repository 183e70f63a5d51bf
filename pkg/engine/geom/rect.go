// Package geom provides integer 2D geometry used by the generators.
// Rectangles use an inclusive origin and exclusive max, so a Rect{X: 2, W: 3}
// covers columns 2, 3 and 4.
package geom

import "fmt"

// Point is an integer grid coordinate
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String returns the point as "(x, y)"
func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// DistSq returns the squared euclidean distance between two points
func (p Point) DistSq(o Point) int {
	dx := p.X - o.X
	dy := p.Y - o.Y
	return dx*dx + dy*dy
}

// Rect is an axis-aligned integer rectangle
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// NewRect creates a rectangle from its origin and size
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// XMin returns the first column covered by the rectangle
func (r Rect) XMin() int { return r.X }

// XMax returns the column just past the rectangle
func (r Rect) XMax() int { return r.X + r.W }

// YMin returns the first row covered by the rectangle
func (r Rect) YMin() int { return r.Y }

// YMax returns the row just past the rectangle
func (r Rect) YMax() int { return r.Y + r.H }

// Empty returns true if the rectangle covers no cells
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Area returns the number of cells covered, or 0 for an empty rectangle
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.W * r.H
}

// Overlaps returns true if the two rectangles share at least one cell.
// Rectangles that only touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.XMax() && r.XMax() > o.X && r.Y < o.YMax() && r.YMax() > o.Y
}

// Expand grows the rectangle by n cells on every side
func (r Rect) Expand(n int) Rect {
	return Rect{X: r.X - n, Y: r.Y - n, W: r.W + 2*n, H: r.H + 2*n}
}

// Inset shrinks the rectangle by n cells on every side
func (r Rect) Inset(n int) Rect {
	return r.Expand(-n)
}

// Contains returns true if o lies entirely inside r
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.XMax() <= r.XMax() && o.Y >= r.Y && o.YMax() <= r.YMax()
}

// Center returns the cell at the middle of the rectangle, rounded toward the origin
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Union returns the smallest rectangle covering both r and o
func (r Rect) Union(o Rect) Rect {
	xMin := min(r.XMin(), o.XMin())
	yMin := min(r.YMin(), o.YMin())
	xMax := max(r.XMax(), o.XMax())
	yMax := max(r.YMax(), o.YMax())
	return Rect{X: xMin, Y: yMin, W: xMax - xMin, H: yMax - yMin}
}

// Points calls fn for every cell of the rectangle, row by row
func (r Rect) Points(fn func(p Point)) {
	for y := r.YMin(); y < r.YMax(); y++ {
		for x := r.XMin(); x < r.XMax(); x++ {
			fn(Point{X: x, Y: y})
		}
	}
}

// String returns the rectangle as "(x:1, y:2, w:3, h:4)"
func (r Rect) String() string {
	return fmt.Sprintf("(x:%d, y:%d, w:%d, h:%d)", r.X, r.Y, r.W, r.H)
}
