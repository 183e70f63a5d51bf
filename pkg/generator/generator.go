// Package generator builds dungeon layouts with binary space partitioning:
// the grid is split into a tree of regions, a room is placed in each leaf,
// and the rooms are joined by corridors.
package generator

import (
	"context"

	"github.com/Tim4270/ProceduralGenerationTools/pkg/engine/world"
)

// GridGenerator is an interface for map generation algorithms
type GridGenerator interface {
	Generate(ctx context.Context, grid world.GridAccess, painter world.TilePainter) (Result, error)
	Name() string
}

var _ GridGenerator = (*BSPGenerator)(nil)
