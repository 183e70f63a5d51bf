package generator

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Tim4270/ProceduralGenerationTools/pkg/engine/geom"
	"github.com/Tim4270/ProceduralGenerationTools/pkg/engine/random"
	"github.com/Tim4270/ProceduralGenerationTools/pkg/engine/world"
)

// ErrGenerationInProgress is returned when Generate is called on a generator
// that is already running
var ErrGenerationInProgress = errors.New("generation already in progress")

// BSPGenerator generates maps using Binary Space Partitioning
type BSPGenerator struct {
	cfg      Config
	rng      random.Service
	logger   *log.Logger
	pacer    Pacer
	observer func(*Tree)

	running atomic.Bool
	state   atomic.Int32
}

// Option configures a BSPGenerator
type Option func(*BSPGenerator)

// WithLogger sets the logger; the default is log.Default()
func WithLogger(l *log.Logger) Option {
	return func(g *BSPGenerator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithPacer sets the pacer called between visible steps
func WithPacer(p Pacer) Option {
	return func(g *BSPGenerator) {
		if p != nil {
			g.pacer = p
		}
	}
}

// WithTreeObserver registers fn to receive the finished partition tree of
// every successful run. Each run builds a new tree; fn must not modify it.
func WithTreeObserver(fn func(*Tree)) Option {
	return func(g *BSPGenerator) {
		g.observer = fn
	}
}

// NewBSP creates a BSP generator. All randomness is drawn from rng.
func NewBSP(cfg Config, rng random.Service, opts ...Option) *BSPGenerator {
	g := &BSPGenerator{
		cfg:    cfg,
		rng:    rng,
		logger: log.Default(),
		pacer:  NoPacing,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Name returns the name of this generator
func (g *BSPGenerator) Name() string {
	return "BSP Tree"
}

// Config returns the settings the generator was built with
func (g *BSPGenerator) Config() Config {
	return g.cfg
}

// State returns the phase of the current run, or the final state of the last one
func (g *BSPGenerator) State() State {
	return State(g.state.Load())
}

func (g *BSPGenerator) setState(s State) {
	g.state.Store(int32(s))
}

// Generate partitions the grid, places rooms and connects them, painting
// onto painter as it goes. Cancelling ctx stops the run at the next step;
// the returned Result then has Cancelled set, the error wraps ctx.Err(), and
// cells painted so far are left in place.
func (g *BSPGenerator) Generate(ctx context.Context, grid world.GridAccess, painter world.TilePainter) (Result, error) {
	if err := g.cfg.Validate(); err != nil {
		return Result{State: StateIdle}, err
	}
	if !g.running.CompareAndSwap(false, true) {
		return Result{State: g.State()}, ErrGenerationInProgress
	}
	defer g.running.Store(false)

	runID := uuid.New().String()[:8]
	r := &bspRun{
		gen:     g,
		grid:    grid,
		painter: painter,
		logger:  g.logger.With("run", runID),
		result:  Result{RunID: runID},
	}
	g.setState(StateIdle)
	return r.execute(ctx)
}

// bspRun holds everything owned by a single Generate call
type bspRun struct {
	gen     *BSPGenerator
	grid    world.GridAccess
	painter world.TilePainter
	logger  *log.Logger

	tree       *Tree
	splitRects []geom.Rect
	leaves     []NodeID
	result     Result
}

func (r *bspRun) execute(ctx context.Context) (Result, error) {
	if err := r.partition(ctx); err != nil {
		return r.stop(ctx, err)
	}
	if err := r.place(ctx); err != nil {
		return r.stop(ctx, err)
	}
	if err := r.connect(ctx); err != nil {
		return r.stop(ctx, err)
	}

	if r.gen.observer != nil {
		r.gen.observer(r.tree)
	}
	r.enter(StateDone)
	r.result.Success = true
	r.logger.Info("generation complete",
		"leaves", r.result.Leaves,
		"rooms", r.result.RoomsPlaced,
		"corridors", r.result.Corridors)
	return r.result, nil
}

func (r *bspRun) enter(s State) {
	r.gen.setState(s)
	r.result.State = s
	if !s.Terminal() {
		r.result.Phase = s
	}
	r.logger.Debug("state", "state", s)
}

// stop ends the run early. Context errors end it as cancelled; anything else
// leaves the state where it failed.
func (r *bspRun) stop(ctx context.Context, err error) (Result, error) {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return r.cancel(err)
	}
	r.logger.Error("generation failed", "phase", r.result.Phase, "err", err)
	return r.result, fmt.Errorf("generation failed while %s: %w", r.result.Phase, err)
}

func (r *bspRun) cancel(err error) (Result, error) {
	r.enter(StateCancelled)
	r.result.Cancelled = true
	r.logger.Warn("generation cancelled", "phase", r.result.Phase, "rooms", r.result.RoomsPlaced, "err", err)
	return r.result, fmt.Errorf("generation cancelled while %s: %w", r.result.Phase, err)
}

func (r *bspRun) pause(ctx context.Context) error {
	if err := r.gen.pacer.Pause(ctx); err != nil {
		return err
	}
	return ctx.Err()
}

// partition builds the tree; nothing is painted
func (r *bspRun) partition(ctx context.Context) error {
	r.enter(StatePartitioning)
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := r.gen.cfg
	r.tree = NewTree(geom.NewRect(0, 0, r.grid.Width(), r.grid.Height()))
	NewPartitioner(r.gen.rng, r.logger).RecursiveSplit(r.tree, RootID, cfg.MinLeafSize)

	r.splitRects = r.tree.SplitRects(RootID)
	if bad := r.tree.MisalignedSplits(RootID); len(bad) > 0 {
		r.logger.Warn("split children do not share an edge", "nodes", bad)
	}
	r.leaves = r.tree.Leaves(RootID)

	r.result.Leaves = len(r.leaves)
	r.result.SplitRects = len(r.splitRects)
	r.logger.Debug("partitioned", "leaves", len(r.leaves), "depth", r.tree.Depth(RootID))
	return nil
}

// place paints the ground and split walls, then a room per leaf where one fits
func (r *bspRun) place(ctx context.Context) error {
	r.enter(StatePlacing)
	cfg := r.gen.cfg

	if cfg.FillGround {
		for y := 0; y < r.grid.Height(); y++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			r.paintRect(geom.NewRect(0, y, r.grid.Width(), 1), world.TileGround)
		}
	}

	for _, s := range r.splitRects {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.paintRect(s, world.TileWall)
	}
	if err := r.pause(ctx); err != nil {
		return err
	}

	placer := NewPlacer(r.gen.rng, cfg)
	placed := make([]geom.Rect, 0, len(r.leaves))
	for _, leaf := range r.leaves {
		if err := ctx.Err(); err != nil {
			return err
		}

		area := r.tree.Area(leaf)
		room, ok := placer.PlaceRoomInLeaf(area, r.splitRects, placed)
		if !ok {
			r.logger.Debug("failed to place room", "leaf", area, "attempts", cfg.MaxPlacementAttempts)
			continue
		}
		if err := r.tree.SetRoom(leaf, room); err != nil {
			return err
		}

		r.paintRect(room, world.TileRoom)
		placed = append(placed, room)
		r.result.Rooms = append(r.result.Rooms, Room{Leaf: leaf, Rect: room, Center: room.Center()})
		r.result.RoomsPlaced++
		r.logger.Debug("placed room", "room", room, "center", room.Center())

		if err := r.pause(ctx); err != nil {
			return err
		}
	}
	return nil
}

// connect carves corridors with the configured strategy
func (r *bspRun) connect(ctx context.Context) error {
	r.enter(StateConnecting)
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := r.gen.cfg
	c := NewConnector(r.grid, r.painter, r.gen.rng, cfg.CorridorWidth, r.logger)

	var (
		carved int
		err    error
	)
	if cfg.Strategy == SiblingPairs {
		carved, err = c.ConnectTree(ctx, r.tree)
	} else {
		carved, err = c.Connect(ctx, r.result.Centers(), cfg.Strategy)
	}
	r.result.Corridors = carved
	if err != nil {
		return err
	}
	return r.pause(ctx)
}

func (r *bspRun) paintRect(rect geom.Rect, kind world.TileKind) {
	rect.Points(func(p geom.Point) {
		if cell, ok := r.grid.TryGetCell(p.X, p.Y); ok {
			r.painter.PaintTile(cell, kind, true)
		}
	})
}
