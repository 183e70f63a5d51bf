package generator

import (
	"github.com/Tim4270/ProceduralGenerationTools/pkg/engine/geom"
	"github.com/Tim4270/ProceduralGenerationTools/pkg/engine/random"
)

// Placer sizes and positions rooms inside partition leaves
type Placer struct {
	rng random.Service
	cfg Config
}

// NewPlacer creates a placer using the room settings of cfg
func NewPlacer(rng random.Service, cfg Config) *Placer {
	return &Placer{rng: rng, cfg: cfg}
}

// roomExtent picks a room side for a leaf side of the given extent. Leaves
// too small for MinRoomSize get whatever fits, down to a single cell.
func (p *Placer) roomExtent(extent int) int {
	available := extent - 2*p.cfg.RoomPadding
	if available >= p.cfg.MinRoomSize {
		return p.rng.Range(p.cfg.MinRoomSize, available+1)
	}
	return max(1, available)
}

// roomStart picks the first cell of a room of the given size along one axis
// of a leaf spanning [leafMin, leafMax). Without a valid range the room is
// pinned to the padded minimum, or pulled back so it still ends inside the
// leaf when the leaf is narrower than its padding.
func (p *Placer) roomStart(leafMin, leafMax, size int) int {
	lo := min(leafMin+p.cfg.RoomPadding, leafMax-size)
	hiExclusive := leafMax - p.cfg.RoomPadding - size + 1
	if hiExclusive > lo {
		return p.rng.Range(lo, hiExclusive)
	}
	return lo
}

// candidate draws one room for leaf, or false if the drawn room is
// degenerate or does not fit in the leaf
func (p *Placer) candidate(leaf geom.Rect) (geom.Rect, bool) {
	w := p.roomExtent(leaf.W)
	h := p.roomExtent(leaf.H)
	if w <= 0 || h <= 0 {
		return geom.Rect{}, false
	}
	x := p.roomStart(leaf.XMin(), leaf.XMax(), w)
	y := p.roomStart(leaf.YMin(), leaf.YMax(), h)
	room := geom.NewRect(x, y, w, h)
	if !leaf.Contains(room) {
		return geom.Rect{}, false
	}
	return room, true
}

// touchesSplit reports whether room comes within SplitPadding of a boundary
func (p *Placer) touchesSplit(room geom.Rect, splitRects []geom.Rect) bool {
	for _, s := range splitRects {
		if room.Overlaps(s.Expand(p.cfg.SplitPadding)) {
			return true
		}
	}
	return false
}

// crowdsRoom reports whether room comes within InterRoomSpacing of a placed room
func (p *Placer) crowdsRoom(room geom.Rect, placed []geom.Rect) bool {
	for _, other := range placed {
		if room.Overlaps(other.Expand(p.cfg.InterRoomSpacing)) {
			return true
		}
	}
	return false
}

// PlaceRoomInLeaf tries up to MaxPlacementAttempts random rooms inside leaf
// and returns the first one clear of every split boundary and placed room.
// It returns false when every attempt was rejected.
func (p *Placer) PlaceRoomInLeaf(leaf geom.Rect, splitRects, placed []geom.Rect) (geom.Rect, bool) {
	for attempt := 0; attempt < p.cfg.MaxPlacementAttempts; attempt++ {
		room, ok := p.candidate(leaf)
		if !ok {
			continue
		}
		if p.touchesSplit(room, splitRects) {
			continue
		}
		if p.crowdsRoom(room, placed) {
			continue
		}
		return room, true
	}
	return geom.Rect{}, false
}
