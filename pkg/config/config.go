// Package config reads and writes the procgen.toml settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/Tim4270/ProceduralGenerationTools/pkg/generator"
)

// DefaultFilename is the config file looked up in the working directory
const DefaultFilename = "procgen.toml"

// ErrInvalid is wrapped by every config file validation failure
var ErrInvalid = errors.New("invalid config file")

// Color modes for Output.Color
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// File is the content of procgen.toml
type File struct {
	Seed       int64            `toml:"seed"` // 0 picks a seed from the clock
	Grid       Grid             `toml:"grid"`
	Generation generator.Config `toml:"generation"`
	Output     Output           `toml:"output"`
}

// Grid is the size of the generated map
type Grid struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Output controls what the CLI writes besides the map preview
type Output struct {
	Color     string   `toml:"color"`
	StepDelay Duration `toml:"step_delay"`
	MapDump   string   `toml:"map_dump"`
	TreeDOT   string   `toml:"tree_dot"`
	TreeSVG   string   `toml:"tree_svg"`
}

// Duration is a time.Duration written as a string such as "50ms"
type Duration struct {
	time.Duration
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Default returns the settings used when no file exists
func Default() File {
	return File{
		Grid:       Grid{Width: 60, Height: 40},
		Generation: generator.DefaultConfig(),
		Output:     Output{Color: ColorAuto},
	}
}

// Load reads the file at path on top of Default. A missing file yields the
// defaults with no error. Keys the file format does not know are an error.
func Load(path string) (File, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return File{}, err
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return File{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return File{}, fmt.Errorf("%w: %s: unknown keys %s", ErrInvalid, path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating missing parent directories
func Save(path string, cfg File) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Sync()
}

// Validate reports the first problem with the file
func (f File) Validate() error {
	switch {
	case f.Grid.Width < 1 || f.Grid.Height < 1:
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalid, f.Grid.Width, f.Grid.Height)
	case f.Output.StepDelay.Duration < 0:
		return fmt.Errorf("%w: step_delay must not be negative", ErrInvalid)
	}
	switch f.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: color must be auto, always or never, got %q", ErrInvalid, f.Output.Color)
	}
	if err := f.Generation.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}
