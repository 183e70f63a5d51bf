package generator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is wrapped by every Config validation failure
var ErrInvalidConfig = errors.New("invalid generator config")

// Strategy selects how placed rooms are joined by corridors
type Strategy int

// Connection strategies
const (
	// Sequential joins each room to the one placed just before it
	Sequential Strategy = iota
	// NearestPrevious joins each room to the closest room placed before it
	NearestPrevious
	// SiblingPairs walks the partition tree bottom-up and joins the closest
	// pair of rooms across every split
	SiblingPairs
)

// AllStrategies returns every strategy in declaration order
func AllStrategies() []Strategy {
	return []Strategy{Sequential, NearestPrevious, SiblingPairs}
}

// String returns the strategy name used in config files and flags
func (s Strategy) String() string {
	switch s {
	case Sequential:
		return "sequential"
	case NearestPrevious:
		return "nearest-previous"
	case SiblingPairs:
		return "sibling-pairs"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// IsValid returns true for the declared strategies
func (s Strategy) IsValid() bool {
	return s >= Sequential && s <= SiblingPairs
}

// ParseStrategy parses a strategy name, ignoring case and accepting
// underscores in place of dashes
func ParseStrategy(name string) (Strategy, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for _, s := range AllStrategies() {
		if s.String() == normalized {
			return s, nil
		}
	}
	return Sequential, fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, name)
}

// MarshalText implements encoding.TextMarshaler
func (s Strategy) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: unknown strategy %d", ErrInvalidConfig, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Config holds the tunables of BSP generation
type Config struct {
	MinLeafSize          int      `toml:"min_leaf_size" json:"min_leaf_size"`                     // Leaves are never split below this size on the split axis
	MinRoomSize          int      `toml:"min_room_size" json:"min_room_size"`                     // Smallest room side when the leaf has room for it
	RoomPadding          int      `toml:"room_padding" json:"room_padding"`                       // Inset between a room and its leaf edges
	SplitPadding         int      `toml:"split_padding" json:"split_padding"`                     // Clearance between a room and any split boundary
	InterRoomSpacing     int      `toml:"inter_room_spacing" json:"inter_room_spacing"`           // Clearance between two rooms
	MaxPlacementAttempts int      `toml:"max_placement_attempts" json:"max_placement_attempts"` // Attempts per leaf before it is left empty
	CorridorWidth        int      `toml:"corridor_width" json:"corridor_width"`
	Strategy             Strategy `toml:"strategy" json:"strategy"`
	FillGround           bool     `toml:"fill_ground" json:"fill_ground"` // Paint every cell with ground before placing rooms
}

// DefaultConfig returns the standard BSP settings
func DefaultConfig() Config {
	return Config{
		MinLeafSize:          6,
		MinRoomSize:          3,
		RoomPadding:          2,
		SplitPadding:         1,
		InterRoomSpacing:     1,
		MaxPlacementAttempts: 5,
		CorridorWidth:        1,
		Strategy:             Sequential,
		FillGround:           true,
	}
}

// Validate reports the first problem with the config
func (c Config) Validate() error {
	switch {
	case c.MinLeafSize < 1:
		return fmt.Errorf("%w: min_leaf_size must be at least 1, got %d", ErrInvalidConfig, c.MinLeafSize)
	case c.MinRoomSize < 1:
		return fmt.Errorf("%w: min_room_size must be at least 1, got %d", ErrInvalidConfig, c.MinRoomSize)
	case c.RoomPadding < 0:
		return fmt.Errorf("%w: room_padding must not be negative, got %d", ErrInvalidConfig, c.RoomPadding)
	case c.SplitPadding < 0:
		return fmt.Errorf("%w: split_padding must not be negative, got %d", ErrInvalidConfig, c.SplitPadding)
	case c.InterRoomSpacing < 0:
		return fmt.Errorf("%w: inter_room_spacing must not be negative, got %d", ErrInvalidConfig, c.InterRoomSpacing)
	case c.MaxPlacementAttempts < 1:
		return fmt.Errorf("%w: max_placement_attempts must be at least 1, got %d", ErrInvalidConfig, c.MaxPlacementAttempts)
	case c.CorridorWidth < 1:
		return fmt.Errorf("%w: corridor_width must be at least 1, got %d", ErrInvalidConfig, c.CorridorWidth)
	case !c.Strategy.IsValid():
		return fmt.Errorf("%w: unknown strategy %d", ErrInvalidConfig, int(c.Strategy))
	}
	return nil
}
