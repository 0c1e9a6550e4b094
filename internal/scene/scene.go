// Package scene holds the retained render state between frames: an arena of
// render objects keyed by stable component id, reconciled against freshly
// synthesized geometry on every vessel change, plus the camera and ray
// queries used for picking.
package scene

import (
	"vessel-studio/internal/mesh"
	"vessel-studio/internal/synth"
)

// Kind identifies which component list a node belongs to.
type Kind int

const (
	KindShell Kind = iota
	KindNozzle
	KindSaddle
	KindLug
	KindTexture
)

func (k Kind) String() string {
	switch k {
	case KindShell:
		return "shell"
	case KindNozzle:
		return "nozzle"
	case KindSaddle:
		return "saddle"
	case KindLug:
		return "lug"
	case KindTexture:
		return "texture"
	default:
		return "unknown"
	}
}

// Key identifies one render object. ID is the list index for nozzles,
// saddles, and lugs, and the texture's own stable id for textures.
type Key struct {
	Kind Kind
	ID   int
}

// Node is one owned render object in the arena.
type Node struct {
	Key      Key
	Index    int // List index, reported through selection callbacks
	Group    *mesh.Group
	Pickable bool
}

// Spec describes the desired state of one node for reconciliation.
type Spec struct {
	Key      Key
	Index    int
	Group    *mesh.Group
	Pickable bool
}

// Scene owns the arena and the decal list for the current frame.
type Scene struct {
	nodes  map[Key]*Node
	order  []Key // Stable iteration order for rendering
	Decals []synth.Decal

	// Reconciliation counters from the last Reconcile call.
	Created, Updated, Destroyed int
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{nodes: make(map[Key]*Node)}
}

// Reconcile diffs the desired specs against the arena: missing nodes are
// created, present ones updated in place, and nodes absent from specs are
// destroyed. Geometry from previous frames is never retained for keys that
// disappear, so removing a component releases its meshes here and nowhere
// else.
func (s *Scene) Reconcile(specs []Spec) {
	s.Created, s.Updated, s.Destroyed = 0, 0, 0

	seen := make(map[Key]bool, len(specs))
	s.order = s.order[:0]
	for _, spec := range specs {
		seen[spec.Key] = true
		s.order = append(s.order, spec.Key)
		if n, ok := s.nodes[spec.Key]; ok {
			n.Index = spec.Index
			n.Group = spec.Group
			n.Pickable = spec.Pickable
			s.Updated++
			continue
		}
		s.nodes[spec.Key] = &Node{Key: spec.Key, Index: spec.Index, Group: spec.Group, Pickable: spec.Pickable}
		s.Created++
	}
	for key := range s.nodes {
		if !seen[key] {
			delete(s.nodes, key)
			s.Destroyed++
		}
	}
}

// Nodes returns the nodes in spec order.
func (s *Scene) Nodes() []*Node {
	out := make([]*Node, 0, len(s.order))
	for _, key := range s.order {
		if n, ok := s.nodes[key]; ok {
			out = append(out, n)
		}
	}
	return out
}

// Get returns the node for a key.
func (s *Scene) Get(key Key) (*Node, bool) {
	n, ok := s.nodes[key]
	return n, ok
}

// Len returns the number of live nodes.
func (s *Scene) Len() int {
	return len(s.nodes)
}
