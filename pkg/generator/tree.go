package generator

import (
	"errors"
	"fmt"

	"github.com/Tim4270/ProceduralGenerationTools/pkg/engine/geom"
)

// NodeID addresses a node inside a Tree
type NodeID int

// NoNode marks an absent child
const NoNode NodeID = -1

var (
	// ErrNotLeaf is returned when a room is assigned to an internal node
	ErrNotLeaf = errors.New("node is not a leaf")
	// ErrRoomAlreadySet is returned when a leaf is given a second room
	ErrRoomAlreadySet = errors.New("leaf already has a room")
)

// Node is one region of the partition tree. A node has either two children
// or none; only leaves carry a room.
type Node struct {
	Area    geom.Rect
	Child1  NodeID
	Child2  NodeID
	Room    geom.Rect
	HasRoom bool
}

// IsLeaf returns true if the node has no children
func (n Node) IsLeaf() bool {
	return n.Child1 == NoNode && n.Child2 == NoNode
}

// Tree is an arena of partition nodes. Children are owned by their parent
// and referenced by index; the root is always RootID.
type Tree struct {
	nodes []Node
}

// RootID is the id of the node covering the whole area
const RootID NodeID = 0

// NewTree creates a tree with a single leaf covering area
func NewTree(area geom.Rect) *Tree {
	t := &Tree{}
	t.add(area)
	return t
}

func (t *Tree) add(area geom.Rect) NodeID {
	t.nodes = append(t.nodes, Node{Area: area, Child1: NoNode, Child2: NoNode})
	return NodeID(len(t.nodes) - 1)
}

// Len returns the number of nodes in the tree
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns a copy of the node with the given id
func (t *Tree) Node(id NodeID) Node {
	return t.nodes[id]
}

// Area returns the area covered by a node
func (t *Tree) Area(id NodeID) geom.Rect {
	return t.nodes[id].Area
}

// Children returns both children of a node, or NoNode twice for a leaf
func (t *Tree) Children(id NodeID) (NodeID, NodeID) {
	n := t.nodes[id]
	return n.Child1, n.Child2
}

// IsLeaf returns true if the node has no children
func (t *Tree) IsLeaf(id NodeID) bool {
	return t.nodes[id].IsLeaf()
}

// setChildren attaches two new children covering a and b
func (t *Tree) setChildren(id NodeID, a, b geom.Rect) {
	c1 := t.add(a)
	c2 := t.add(b)
	t.nodes[id].Child1 = c1
	t.nodes[id].Child2 = c2
}

// SetRoom records the room placed in a leaf. Each leaf accepts one room.
func (t *Tree) SetRoom(id NodeID, room geom.Rect) error {
	n := &t.nodes[id]
	if !n.IsLeaf() {
		return fmt.Errorf("set room on node %d: %w", id, ErrNotLeaf)
	}
	if n.HasRoom {
		return fmt.Errorf("set room on node %d: %w", id, ErrRoomAlreadySet)
	}
	n.Room = room
	n.HasRoom = true
	return nil
}

// Leaves returns the leaves under id in pre-order, first child first
func (t *Tree) Leaves(id NodeID) []NodeID {
	var leaves []NodeID
	t.walk(id, func(n NodeID) {
		if t.IsLeaf(n) {
			leaves = append(leaves, n)
		}
	})
	return leaves
}

// SplitRects returns the boundary between the children of every internal
// node under id, in pre-order
func (t *Tree) SplitRects(id NodeID) []geom.Rect {
	var rects []geom.Rect
	t.walk(id, func(n NodeID) {
		if t.IsLeaf(n) {
			return
		}
		c1, c2 := t.Children(n)
		r, _ := SplitBoundary(t.Area(c1), t.Area(c2))
		rects = append(rects, r)
	})
	return rects
}

// MisalignedSplits returns the internal nodes whose children do not share
// an edge. A tree built by Partitioner never has any.
func (t *Tree) MisalignedSplits(id NodeID) []NodeID {
	var bad []NodeID
	t.walk(id, func(n NodeID) {
		if t.IsLeaf(n) {
			return
		}
		c1, c2 := t.Children(n)
		if _, ok := SplitBoundary(t.Area(c1), t.Area(c2)); !ok {
			bad = append(bad, n)
		}
	})
	return bad
}

// RoomCenters returns the centers of the rooms placed under id, in pre-order
func (t *Tree) RoomCenters(id NodeID) []geom.Point {
	var centers []geom.Point
	t.walk(id, func(n NodeID) {
		if node := t.nodes[n]; node.HasRoom {
			centers = append(centers, node.Room.Center())
		}
	})
	return centers
}

// Depth returns the number of levels below and including id
func (t *Tree) Depth(id NodeID) int {
	if t.IsLeaf(id) {
		return 1
	}
	c1, c2 := t.Children(id)
	return 1 + max(t.Depth(c1), t.Depth(c2))
}

// walk visits id and its descendants in pre-order
func (t *Tree) walk(id NodeID, fn func(NodeID)) {
	if id == NoNode {
		return
	}
	fn(id)
	c1, c2 := t.Children(id)
	t.walk(c1, fn)
	t.walk(c2, fn)
}

// SplitBoundary returns the thickness-1 rectangle on the edge between two
// sibling areas. Stacked siblings give a horizontal line on b's first row,
// side-by-side siblings a vertical line on b's first column. Siblings that
// share neither edge fall back to their bounding rectangle and ok is false.
func SplitBoundary(a, b geom.Rect) (r geom.Rect, ok bool) {
	switch {
	case a.X == b.X && a.W == b.W:
		return geom.NewRect(a.XMin(), b.YMin(), a.W, 1), true
	case a.Y == b.Y && a.H == b.H:
		return geom.NewRect(b.XMin(), a.YMin(), 1, a.H), true
	default:
		return a.Union(b), false
	}
}
