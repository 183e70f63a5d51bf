package world

// TileKind is what has been painted onto a cell
type TileKind int

// Tile kinds. TileNone is the zero value of a freshly built grid.
const (
	TileNone TileKind = iota
	TileGround
	TileWall
	TileRoom
	TileCorridor
)

// AllTileKinds returns every tile kind in declaration order
func AllTileKinds() []TileKind {
	return []TileKind{TileNone, TileGround, TileWall, TileRoom, TileCorridor}
}

// String returns the lower-case name of the tile kind
func (k TileKind) String() string {
	switch k {
	case TileNone:
		return "none"
	case TileGround:
		return "ground"
	case TileWall:
		return "wall"
	case TileRoom:
		return "room"
	case TileCorridor:
		return "corridor"
	default:
		return "unknown"
	}
}

// Symbol returns the single-character symbol used in text dumps
func (k TileKind) Symbol() rune {
	switch k {
	case TileGround:
		return ','
	case TileWall:
		return '#'
	case TileRoom:
		return '.'
	case TileCorridor:
		return '+'
	default:
		return ' '
	}
}

// Walkable returns true for tiles a player can move through
func (k TileKind) Walkable() bool {
	return k == TileRoom || k == TileCorridor
}
