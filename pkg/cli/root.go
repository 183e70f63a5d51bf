package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Tim4270/ProceduralGenerationTools/pkg/config"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// app is the state shared by every command of one invocation
type app struct {
	out     io.Writer
	errOut  io.Writer
	cfgPath string
	verbose bool
	cfg     config.File
}

// Execute runs the procgen CLI with ctx as the root command context
func Execute(ctx context.Context) error {
	return newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:          "procgen",
		Short:        "procgen builds dungeon layouts with binary space partitioning",
		Long:         `procgen splits a grid into a tree of regions, places a room in each leaf and joins the rooms with corridors. Layouts are reproducible from a seed.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if a.verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(a.errOut, level)
			cmd.SetContext(withLogger(cmd.Context(), logger))

			cfg, err := config.Load(a.cfgPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			logger.Debug("config loaded", "path", a.cfgPath)
			return nil
		},
	}

	root.SetOut(out)
	root.SetErr(errOut)
	root.SetVersionTemplate(fmt.Sprintf("procgen %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&a.cfgPath, "config", "c", config.DefaultFilename, "settings file")

	root.AddCommand(newGenerateCmd(a))
	root.AddCommand(newServeCmd(a))
	root.AddCommand(newConfigCmd(a))

	return root
}
