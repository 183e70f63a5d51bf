// Package tui draws generated grids as text, colored with ANSI styles when
// the output supports it.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"github.com/Tim4270/ProceduralGenerationTools/pkg/engine/terminal"
	"github.com/Tim4270/ProceduralGenerationTools/pkg/engine/world"
	"github.com/Tim4270/ProceduralGenerationTools/pkg/generator"
)

// Icon constants
const (
	IconVoid     = " "
	IconGround   = "░"
	IconWall     = "▒"
	IconRoom     = "·"
	IconCorridor = "○"
)

// clearScreen moves the cursor home and clears the display
const clearScreen = "\033[H\033[2J"

// Renderer draws grids tile by tile
type Renderer struct {
	// MaxCols clips each row to this many cells; 0 means no limit
	MaxCols int

	useColor bool
	ascii    bool
	icons    map[world.TileKind]string
	styles   map[world.TileKind]color.Style
	subtle   color.Style
}

// Option configures a Renderer
type Option func(*Renderer)

// WithColor turns ANSI styling on or off
func WithColor(on bool) Option {
	return func(r *Renderer) { r.useColor = on }
}

// WithASCII draws tiles with their plain text symbols instead of block icons
func WithASCII(on bool) Option {
	return func(r *Renderer) { r.ascii = on }
}

// WithMaxCols clips rows to n cells
func WithMaxCols(n int) Option {
	return func(r *Renderer) { r.MaxCols = n }
}

// FitTerminal clips rows to the width of the stdout terminal
func FitTerminal() Option {
	return func(r *Renderer) { r.MaxCols = terminal.GetWidth() }
}

// New creates a renderer. Color is off unless WithColor(true) is given.
func New(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	r.init()
	return r
}

func (r *Renderer) init() {
	r.icons = map[world.TileKind]string{
		world.TileNone:     IconVoid,
		world.TileGround:   IconGround,
		world.TileWall:     IconWall,
		world.TileRoom:     IconRoom,
		world.TileCorridor: IconCorridor,
	}
	if r.ascii {
		for _, kind := range world.AllTileKinds() {
			r.icons[kind] = string(kind.Symbol())
		}
	}

	r.styles = map[world.TileKind]color.Style{
		world.TileGround:   {color.FgGray},
		world.TileWall:     {color.FgGray, color.OpBold},
		world.TileRoom:     {color.FgGreen},
		world.TileCorridor: {color.FgYellow, color.OpBold},
	}
	r.subtle = color.Style{color.FgGray, color.OpBold}
}

// RenderCell returns the styled icon for a tile
func (r *Renderer) RenderCell(kind world.TileKind) string {
	icon, ok := r.icons[kind]
	if !ok {
		icon = IconVoid
	}
	return r.style(kind, icon)
}

func (r *Renderer) style(kind world.TileKind, text string) string {
	if !r.useColor {
		return text
	}
	style, ok := r.styles[kind]
	if !ok {
		return text
	}
	return style.Sprint(text)
}

// Rows returns the grid as styled rows, clipped to MaxCols
func (r *Renderer) Rows(grid world.GridAccess) []string {
	cols := grid.Width()
	if r.MaxCols > 0 && r.MaxCols < cols {
		cols = r.MaxCols
	}

	rows := make([]string, 0, grid.Height())
	var sb strings.Builder
	for y := 0; y < grid.Height(); y++ {
		sb.Reset()
		for x := 0; x < cols; x++ {
			kind := world.TileNone
			if cell, ok := grid.TryGetCell(x, y); ok {
				kind = cell.Tile
			}
			sb.WriteString(r.RenderCell(kind))
		}
		rows = append(rows, sb.String())
	}
	return rows
}

// Render writes the grid to w, one row per line
func (r *Renderer) Render(w io.Writer, grid world.GridAccess) error {
	for _, row := range r.Rows(grid) {
		if _, err := fmt.Fprintln(w, row); err != nil {
			return err
		}
	}
	return nil
}

// tileLabel returns the translated name of a tile kind
func tileLabel(kind world.TileKind) string {
	switch kind {
	case world.TileGround:
		return gotext.Get("Ground")
	case world.TileWall:
		return gotext.Get("Split wall")
	case world.TileRoom:
		return gotext.Get("Room")
	case world.TileCorridor:
		return gotext.Get("Corridor")
	default:
		return gotext.Get("Empty")
	}
}

// Legend returns one line per painted tile kind: icon, then label
func (r *Renderer) Legend() []string {
	lines := make([]string, 0, len(world.AllTileKinds())-1)
	for _, kind := range world.AllTileKinds() {
		if kind == world.TileNone {
			continue
		}
		lines = append(lines, r.RenderCell(kind)+" "+tileLabel(kind))
	}
	return lines
}

// Summary describes a finished run in one line
func (r *Renderer) Summary(res generator.Result) string {
	var line string
	switch {
	case res.Cancelled:
		line = gotext.Get("Run %s cancelled while %s: %d rooms placed", res.RunID, res.Phase, res.RoomsPlaced)
	case !res.Success:
		line = gotext.Get("Run %s failed while %s", res.RunID, res.Phase)
	default:
		line = gotext.Get("Run %s: %d leaves, %d rooms, %d corridors", res.RunID, res.Leaves, res.RoomsPlaced, res.Corridors)
	}
	if r.useColor {
		return r.subtle.Sprint(line)
	}
	return line
}

// LivePacer returns a pacer that redraws grid on w at every generation step
// and then waits delay
func (r *Renderer) LivePacer(w io.Writer, grid world.GridAccess, delay time.Duration) generator.Pacer {
	wait := generator.Delay(delay)
	return generator.PacerFunc(func(ctx context.Context) error {
		if _, err := io.WriteString(w, clearScreen); err != nil {
			return err
		}
		if err := r.Render(w, grid); err != nil {
			return err
		}
		return wait.Pause(ctx)
	})
}
