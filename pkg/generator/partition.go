package generator

import (
	"github.com/charmbracelet/log"

	"github.com/Tim4270/ProceduralGenerationTools/pkg/engine/geom"
	"github.com/Tim4270/ProceduralGenerationTools/pkg/engine/random"
)

// Axis is the orientation of a split line
type Axis int

// Split axes
const (
	// Horizontal splits stack the children on top of each other
	Horizontal Axis = iota
	// Vertical splits put the children side by side
	Vertical
)

// String returns the axis name
func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Partitioner recursively splits tree nodes into two children
type Partitioner struct {
	rng    random.Service
	logger *log.Logger
}

// NewPartitioner creates a partitioner drawing from rng
func NewPartitioner(rng random.Service, logger *log.Logger) *Partitioner {
	if logger == nil {
		logger = log.Default()
	}
	return &Partitioner{rng: rng, logger: logger}
}

// chooseAxis splits across the longer side, tossing a coin for squares
func (p *Partitioner) chooseAxis(area geom.Rect) Axis {
	switch {
	case area.W < area.H:
		return Horizontal
	case area.W > area.H:
		return Vertical
	case p.rng.Chance(0.5):
		return Horizontal
	default:
		return Vertical
	}
}

// Split divides a leaf into two children and returns true on success.
// The node stays a leaf when both sides are under twice minLeafSize or when
// the chosen axis leaves no valid offset.
func (p *Partitioner) Split(t *Tree, id NodeID, minLeafSize int) bool {
	if !t.IsLeaf(id) {
		return false
	}
	area := t.Area(id)
	if area.W < minLeafSize*2 && area.H < minLeafSize*2 {
		return false
	}

	axis := p.chooseAxis(area)
	extent := area.W
	if axis == Horizontal {
		extent = area.H
	}

	minSplit := minLeafSize
	maxSplit := extent - minLeafSize
	if maxSplit <= minSplit {
		return false
	}
	offset := p.rng.Range(minSplit, maxSplit+1)

	var a, b geom.Rect
	if axis == Horizontal {
		a = geom.NewRect(area.X, area.Y, area.W, offset)
		b = geom.NewRect(area.X, area.Y+offset, area.W, area.H-offset)
	} else {
		a = geom.NewRect(area.X, area.Y, offset, area.H)
		b = geom.NewRect(area.X+offset, area.Y, area.W-offset, area.H)
	}
	t.setChildren(id, a, b)

	p.logger.Debug("split", "axis", axis, "offset", offset, "a", a, "b", b)
	return true
}

// RecursiveSplit splits id and then both of its children until no leaf can
// be split further
func (p *Partitioner) RecursiveSplit(t *Tree, id NodeID, minLeafSize int) {
	if !p.Split(t, id, minLeafSize) {
		return
	}
	c1, c2 := t.Children(id)
	p.RecursiveSplit(t, c1, minLeafSize)
	p.RecursiveSplit(t, c2, minLeafSize)
}
