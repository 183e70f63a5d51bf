package generator

import (
	"context"
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/Tim4270/ProceduralGenerationTools/pkg/engine/geom"
	"github.com/Tim4270/ProceduralGenerationTools/pkg/engine/random"
	"github.com/Tim4270/ProceduralGenerationTools/pkg/engine/world"
)

// Connector carves corridors between room centers
type Connector struct {
	grid    world.GridAccess
	painter world.TilePainter
	rng     random.Service
	width   int
	logger  *log.Logger
}

// NewConnector creates a connector painting corridors of the given width
func NewConnector(grid world.GridAccess, painter world.TilePainter, rng random.Service, width int, logger *log.Logger) *Connector {
	if logger == nil {
		logger = log.Default()
	}
	return &Connector{
		grid:    grid,
		painter: painter,
		rng:     rng,
		width:   max(1, width),
		logger:  logger,
	}
}

// Connect joins centers using a list-based strategy and returns the number
// of corridors carved. SiblingPairs needs the tree; use ConnectTree for it.
func (c *Connector) Connect(ctx context.Context, centers []geom.Point, strategy Strategy) (int, error) {
	if len(centers) < 2 {
		c.logger.Debug("not enough rooms to connect", "rooms", len(centers))
		return 0, nil
	}

	carved := 0
	for i := 1; i < len(centers); i++ {
		if err := ctx.Err(); err != nil {
			return carved, err
		}

		from := centers[i-1]
		switch strategy {
		case Sequential:
		case NearestPrevious:
			from = centers[NearestPreviousIndex(centers, i)]
		default:
			return carved, fmt.Errorf("%w: strategy %s cannot connect a room list", ErrInvalidConfig, strategy)
		}

		c.Corridor(from, centers[i])
		carved++
		c.logger.Debug("connected rooms", "strategy", strategy, "from", from, "to", centers[i])
	}
	return carved, nil
}

// NearestPreviousIndex returns the index of the center before i that is closest
// to centers[i]; ties go to the lowest index
func NearestPreviousIndex(centers []geom.Point, i int) int {
	best := 0
	bestDist := math.MaxInt
	for j := 0; j < i; j++ {
		if d := centers[j].DistSq(centers[i]); d < bestDist {
			bestDist = d
			best = j
		}
	}
	return best
}

// ConnectTree joins rooms across every split of the tree, bottom-up. For
// each internal node whose two subtrees both hold rooms, the closest pair of
// centers (one per side) gets a corridor.
func (c *Connector) ConnectTree(ctx context.Context, t *Tree) (int, error) {
	carved := 0
	var visit func(id NodeID) error
	visit = func(id NodeID) error {
		if t.IsLeaf(id) {
			return nil
		}
		c1, c2 := t.Children(id)
		if err := visit(c1); err != nil {
			return err
		}
		if err := visit(c2); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		a, b, ok := closestPair(t.RoomCenters(c1), t.RoomCenters(c2))
		if !ok {
			return nil
		}
		c.Corridor(a, b)
		carved++
		c.logger.Debug("connected siblings", "from", a, "to", b)
		return nil
	}

	err := visit(RootID)
	return carved, err
}

// closestPair returns the pair (one from each list) with the smallest
// squared distance, or false if either list is empty
func closestPair(as, bs []geom.Point) (geom.Point, geom.Point, bool) {
	if len(as) == 0 || len(bs) == 0 {
		return geom.Point{}, geom.Point{}, false
	}
	bestDist := math.MaxInt
	var bestA, bestB geom.Point
	for _, a := range as {
		for _, b := range bs {
			if d := a.DistSq(b); d < bestDist {
				bestDist = d
				bestA, bestB = a, b
			}
		}
	}
	return bestA, bestB, true
}

// Corridor carves an L-shaped corridor from one point to another. A coin toss
// decides whether the horizontal leg runs first (along from's row, turning at
// to's column) or the vertical leg does (along from's column, turning at to's
// row). Cells outside the grid are skipped.
func (c *Connector) Corridor(from, to geom.Point) {
	if c.rng.Chance(0.5) {
		c.carveHorizontal(from.Y, from.X, to.X)
		c.carveVertical(to.X, from.Y, to.Y)
		return
	}
	c.carveVertical(from.X, from.Y, to.Y)
	c.carveHorizontal(to.Y, from.X, to.X)
}

// carveHorizontal paints a band width cells thick, rows y..y+width-1
func (c *Connector) carveHorizontal(y, x1, x2 int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		for w := 0; w < c.width; w++ {
			c.paint(x, y+w)
		}
	}
}

// carveVertical paints a band width cells thick, columns x..x+width-1
func (c *Connector) carveVertical(x, y1, y2 int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		for w := 0; w < c.width; w++ {
			c.paint(x+w, y)
		}
	}
}

func (c *Connector) paint(x, y int) {
	cell, ok := c.grid.TryGetCell(x, y)
	if !ok {
		return
	}
	c.painter.PaintTile(cell, world.TileCorridor, true)
}
