package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectOverlaps(t *testing.T) {
	base := NewRect(2, 2, 4, 4)

	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"identical", NewRect(2, 2, 4, 4), true},
		{"inside", NewRect(3, 3, 1, 1), true},
		{"partial", NewRect(5, 5, 3, 3), true},
		{"touching right edge", NewRect(6, 2, 2, 4), false},
		{"touching bottom edge", NewRect(2, 6, 4, 1), false},
		{"far away", NewRect(20, 20, 2, 2), false},
		{"empty", NewRect(3, 3, 0, 2), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base), "overlap must be symmetric")
		})
	}
}

func TestRectExpandAndInset(t *testing.T) {
	r := NewRect(5, 5, 1, 10)

	assert.Equal(t, NewRect(4, 4, 3, 12), r.Expand(1))
	assert.Equal(t, r, r.Expand(2).Inset(2))
	assert.True(t, NewRect(6, 5, 2, 2).Overlaps(r.Expand(1)), "expanded boundary should reach the neighbour column")
}

func TestRectContains(t *testing.T) {
	outer := NewRect(0, 0, 10, 10)

	assert.True(t, outer.Contains(NewRect(0, 0, 10, 10)))
	assert.True(t, outer.Contains(NewRect(2, 3, 4, 5)))
	assert.False(t, outer.Contains(NewRect(8, 8, 3, 1)))
	assert.False(t, outer.Contains(NewRect(-1, 0, 2, 2)))
}

func TestRectCenterAndUnion(t *testing.T) {
	assert.Equal(t, Point{X: 3, Y: 4}, NewRect(1, 2, 5, 4).Center())
	assert.Equal(t, Point{X: 0, Y: 0}, NewRect(0, 0, 1, 1).Center())

	u := NewRect(0, 0, 2, 2).Union(NewRect(5, 1, 1, 4))
	assert.Equal(t, NewRect(0, 0, 6, 5), u)
}

func TestRectPointsAndArea(t *testing.T) {
	r := NewRect(1, 1, 3, 2)
	var seen []Point
	r.Points(func(p Point) { seen = append(seen, p) })

	assert.Len(t, seen, r.Area())
	assert.Equal(t, Point{X: 1, Y: 1}, seen[0])
	assert.Equal(t, Point{X: 3, Y: 2}, seen[len(seen)-1])
	assert.Zero(t, NewRect(0, 0, -1, 4).Area())
}

func TestPointDistSq(t *testing.T) {
	a := Point{X: 1, Y: 1}
	b := Point{X: 4, Y: 5}
	assert.Equal(t, 25, a.DistSq(b))
	assert.Equal(t, "(1, 1)", a.String())
}
