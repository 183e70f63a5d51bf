package generator

import (
	"github.com/Tim4270/ProceduralGenerationTools/pkg/engine/geom"
)

// State is the phase a generation run is in
type State int32

// Generation states. Done and Cancelled are terminal.
const (
	StateIdle State = iota
	StatePartitioning
	StatePlacing
	StateConnecting
	StateDone
	StateCancelled
)

// String returns the lower-case state name
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePartitioning:
		return "partitioning"
	case StatePlacing:
		return "placing"
	case StateConnecting:
		return "connecting"
	case StateDone:
		return "done"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal returns true for states a run never leaves
func (s State) Terminal() bool {
	return s == StateDone || s == StateCancelled
}

// Room is a placed room, in placement order
type Room struct {
	Leaf   NodeID     `json:"leaf"`
	Rect   geom.Rect  `json:"rect"`
	Center geom.Point `json:"center"`
}

// Result summarizes one generation run
type Result struct {
	RunID       string `json:"run_id"`
	State       State  `json:"-"`
	Phase       State  `json:"-"` // last working state entered; where a stopped run stopped
	Success     bool   `json:"success"`
	Cancelled   bool   `json:"cancelled"`
	Leaves      int    `json:"leaves"`
	SplitRects  int    `json:"split_rects"`
	RoomsPlaced int    `json:"rooms_placed"`
	Corridors   int    `json:"corridors"`
	Rooms       []Room `json:"rooms"`
}

// Centers returns the room centers in placement order
func (r Result) Centers() []geom.Point {
	centers := make([]geom.Point, len(r.Rooms))
	for i, room := range r.Rooms {
		centers[i] = room.Center
	}
	return centers
}
