package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/leonelquinteros/gotext"
	"github.com/spf13/cobra"

	"github.com/Tim4270/ProceduralGenerationTools/pkg/config"
	"github.com/Tim4270/ProceduralGenerationTools/pkg/devtools"
	"github.com/Tim4270/ProceduralGenerationTools/pkg/engine/random"
	"github.com/Tim4270/ProceduralGenerationTools/pkg/engine/terminal"
	"github.com/Tim4270/ProceduralGenerationTools/pkg/engine/world"
	"github.com/Tim4270/ProceduralGenerationTools/pkg/generator"
	"github.com/Tim4270/ProceduralGenerationTools/pkg/renderer/tui"
)

type generateOpts struct {
	seed     int64
	width    int
	height   int
	strategy string
	color    string
	delay    time.Duration
	ascii    bool
	legend   bool
	dump     string
	treeDOT  string
	treeSVG  string
}

func newGenerateCmd(a *app) *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a dungeon and print it",
		Long: `Generate partitions the grid, places rooms and carves corridors, then prints the map.

Flags override the values from the settings file. A seed of 0 picks one from the clock;
the seed used is logged so the layout can be reproduced.`,
		Example: `  procgen generate --seed 42
  procgen generate -W 100 -H 50 --strategy sibling-pairs --dump map.txt
  procgen generate --delay 80ms`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.apply(cmd, a.cfg)
			if err != nil {
				return err
			}
			return runGenerate(cmd.Context(), a, cfg, opts)
		},
	}

	f := cmd.Flags()
	f.Int64VarP(&opts.seed, "seed", "s", 0, "random seed (0 picks one from the clock)")
	f.IntVarP(&opts.width, "width", "W", 0, "grid width")
	f.IntVarP(&opts.height, "height", "H", 0, "grid height")
	f.StringVar(&opts.strategy, "strategy", "", "connection strategy: sequential, nearest-previous, sibling-pairs")
	f.StringVar(&opts.color, "color", "", "color output: auto, always, never")
	f.DurationVar(&opts.delay, "delay", 0, "redraw the map after every step, waiting this long")
	f.BoolVar(&opts.ascii, "ascii", false, "draw tiles with plain ASCII symbols")
	f.BoolVar(&opts.legend, "legend", true, "print the tile legend")
	f.StringVar(&opts.dump, "dump", "", "write a map dump to this file")
	f.StringVar(&opts.treeDOT, "tree-dot", "", "write the partition tree as DOT to this file")
	f.StringVar(&opts.treeSVG, "tree-svg", "", "write the partition tree as SVG to this file")

	return cmd
}

// apply overlays the flags the user set onto the settings file
func (o generateOpts) apply(cmd *cobra.Command, cfg config.File) (config.File, error) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = o.seed
	}
	if flags.Changed("width") {
		cfg.Grid.Width = o.width
	}
	if flags.Changed("height") {
		cfg.Grid.Height = o.height
	}
	if flags.Changed("strategy") {
		s, err := generator.ParseStrategy(o.strategy)
		if err != nil {
			return cfg, err
		}
		cfg.Generation.Strategy = s
	}
	if flags.Changed("color") {
		cfg.Output.Color = o.color
	}
	if flags.Changed("delay") {
		cfg.Output.StepDelay = config.Duration{Duration: o.delay}
	}
	if flags.Changed("dump") {
		cfg.Output.MapDump = o.dump
	}
	if flags.Changed("tree-dot") {
		cfg.Output.TreeDOT = o.treeDOT
	}
	if flags.Changed("tree-svg") {
		cfg.Output.TreeSVG = o.treeSVG
	}
	return cfg, cfg.Validate()
}

// newSource returns a seeded source, picking the seed from the clock when it is 0
func newSource(seed int64) *random.Source {
	if seed == 0 {
		return random.NewFromTime()
	}
	return random.New(seed)
}

// newRenderer builds a renderer suited to w and the color mode
func newRenderer(w io.Writer, mode string, ascii bool) *tui.Renderer {
	f, isFile := w.(*os.File)
	useColor := mode == config.ColorAlways || (mode == config.ColorAuto && isFile && terminal.ColorEnabled(f))

	opts := []tui.Option{tui.WithColor(useColor), tui.WithASCII(ascii)}
	if isFile && terminal.IsTerminal(f) {
		opts = append(opts, tui.FitTerminal())
	}
	return tui.New(opts...)
}

func runGenerate(ctx context.Context, a *app, cfg config.File, opts generateOpts) error {
	logger := loggerFromContext(ctx)
	rng := newSource(cfg.Seed)
	logger.Info("generating",
		"seed", rng.Seed(),
		"width", cfg.Grid.Width,
		"height", cfg.Grid.Height,
		"strategy", cfg.Generation.Strategy)

	grid := world.NewGrid(cfg.Grid.Width, cfg.Grid.Height)
	r := newRenderer(a.out, cfg.Output.Color, opts.ascii)

	var tree *generator.Tree
	genOpts := []generator.Option{
		generator.WithLogger(logger),
		generator.WithTreeObserver(func(t *generator.Tree) { tree = t }),
	}
	if delay := cfg.Output.StepDelay.Duration; delay > 0 {
		genOpts = append(genOpts, generator.WithPacer(r.LivePacer(a.out, grid, delay)))
	}

	prog := newProgress(logger)
	res, err := generator.NewBSP(cfg.Generation, rng, genOpts...).Generate(ctx, grid, grid)
	if err != nil {
		fmt.Fprintln(a.errOut, r.Summary(res))
		return err
	}

	if err := r.Render(a.out, grid); err != nil {
		return err
	}
	if opts.legend {
		fmt.Fprintln(a.out)
		for _, line := range r.Legend() {
			fmt.Fprintln(a.out, line)
		}
	}
	fmt.Fprintln(a.out, r.Summary(res))
	prog.done(gotext.Get("Generated %dx%d dungeon", cfg.Grid.Width, cfg.Grid.Height))

	return writeArtifacts(ctx, logger, cfg.Output, grid, res, tree)
}

// writeArtifacts writes the debug files named in out
func writeArtifacts(ctx context.Context, logger *log.Logger, out config.Output, grid *world.Grid, res generator.Result, tree *generator.Tree) error {
	if out.MapDump != "" {
		path, err := devtools.DumpMapToFile(out.MapDump, grid, res)
		if err != nil {
			return err
		}
		logger.Info(gotext.Get("Map dump written"), "path", path)
	}

	if out.TreeDOT == "" && out.TreeSVG == "" {
		return nil
	}
	dot := devtools.TreeToDOT(tree)
	if out.TreeDOT != "" {
		if err := os.WriteFile(out.TreeDOT, []byte(dot), 0644); err != nil {
			return fmt.Errorf("write tree DOT: %w", err)
		}
		logger.Info(gotext.Get("Partition tree written"), "path", out.TreeDOT, "format", "dot")
	}
	if out.TreeSVG != "" {
		svg, err := devtools.RenderTreeSVG(ctx, dot)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out.TreeSVG, svg, 0644); err != nil {
			return fmt.Errorf("write tree SVG: %w", err)
		}
		logger.Info(gotext.Get("Partition tree written"), "path", out.TreeSVG, "format", "svg")
	}
	return nil
}
