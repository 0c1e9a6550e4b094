// Package app provides the host application state and its event bus. The
// state is the single writer of the canonical vessel parameters: the drag
// controller and the import pipeline only propose values through callbacks,
// and every accepted change flows back out as an event plus a scene
// rebuild.
package app

import (
	"sync"

	"vessel-studio/internal/interaction"
	"vessel-studio/internal/scene"
	"vessel-studio/internal/synth"
	"vessel-studio/internal/vessel"
)

// EventType identifies application events.
type EventType int

const (
	EventVesselChanged EventType = iota
	EventSelectionChanged
	EventLocksChanged
	EventProjectLoaded
	EventProjectSaved
	EventModified
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// Selection identifies the selected component, if any.
type Selection struct {
	Kind  scene.Kind
	Index int
}

// State holds the application state: the vessel, the retained scene, the
// selection, and the per-type drag locks.
type State struct {
	mu sync.RWMutex

	ProjectPath string
	Modified    bool

	Vessel *vessel.State
	Seq    *vessel.Sequence
	Scene  *scene.Scene
	Locks  interaction.Locks

	selected *Selection

	listeners map[EventType][]EventListener
}

// NewState creates the application state with a default vessel and an
// already-reconciled scene.
func NewState() *State {
	s := &State{
		Vessel:    vessel.NewState(),
		Scene:     scene.New(),
		listeners: make(map[EventType][]EventListener),
	}
	s.Seq = vessel.NewSequence(nil)
	s.RebuildScene()
	return s
}

// On registers an event listener.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()
	for _, l := range listeners {
		l(data)
	}
}

// SetModified marks the project dirty and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	s.Modified = modified
	s.mu.Unlock()
	s.Emit(EventModified, modified)
}

// Selected returns the current selection.
func (s *State) Selected() (Selection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return Selection{}, false
	}
	return *s.selected, true
}

// Select sets the selection and rebuilds so the highlight material shows.
func (s *State) Select(kind scene.Kind, index int) {
	s.mu.Lock()
	s.selected = &Selection{Kind: kind, Index: index}
	s.mu.Unlock()
	s.RebuildScene()
	s.Emit(EventSelectionChanged, Selection{Kind: kind, Index: index})
}

// Deselect clears the selection.
func (s *State) Deselect() {
	s.mu.Lock()
	had := s.selected != nil
	s.selected = nil
	s.mu.Unlock()
	if had {
		s.RebuildScene()
		s.Emit(EventSelectionChanged, nil)
	}
}

// SetLocks replaces the drag lock flags.
func (s *State) SetLocks(locks interaction.Locks) {
	s.mu.Lock()
	s.Locks = locks
	s.mu.Unlock()
	s.Emit(EventLocksChanged, locks)
}

// selectedIndex returns the selected index for a kind, or -1.
func (s *State) selectedIndex(kind scene.Kind) int {
	if s.selected != nil && s.selected.Kind == kind {
		return s.selected.Index
	}
	return -1
}

// RebuildScene resynthesizes every component and reconciles the scene
// arena. Geometry is ephemeral: this is the only place render objects are
// created, updated, or destroyed.
func (s *State) RebuildScene() {
	s.mu.Lock()
	defer s.mu.Unlock()

	vs := s.Vessel
	var specs []scene.Spec

	specs = append(specs, scene.Spec{
		Key:   scene.Key{Kind: scene.KindShell},
		Group: synth.Shell(vs, false),
	})
	for i, cfg := range vs.Nozzles {
		specs = append(specs, scene.Spec{
			Key:      scene.Key{Kind: scene.KindNozzle, ID: i},
			Index:    i,
			Group:    synth.Nozzle(vs, cfg, s.selectedIndex(scene.KindNozzle) == i),
			Pickable: true,
		})
	}
	for i, g := range synth.Saddles(vs, s.selectedIndex(scene.KindSaddle)) {
		specs = append(specs, scene.Spec{
			Key:      scene.Key{Kind: scene.KindSaddle, ID: i},
			Index:    i,
			Group:    g,
			Pickable: true,
		})
	}
	for i, cfg := range vs.Lugs {
		specs = append(specs, scene.Spec{
			Key:      scene.Key{Kind: scene.KindLug, ID: i},
			Index:    i,
			Group:    synth.Lug(vs, cfg, s.selectedIndex(scene.KindLug) == i),
			Pickable: true,
		})
	}

	decals := synth.TextureDecals(vs, s.selectedIndex(scene.KindTexture))
	for i, d := range decals {
		specs = append(specs, scene.Spec{
			Key:      scene.Key{Kind: scene.KindTexture, ID: d.TextureID},
			Index:    i,
			Group:    synth.DecalProxy(vs, d),
			Pickable: true,
		})
	}

	s.Scene.Reconcile(specs)
	s.Scene.Decals = decals
}

// vesselEdit wraps a mutation: validate-by-construction callers mutate the
// vessel, then the scene rebuilds and listeners fire.
func (s *State) vesselEdit(fn func(vs *vessel.State)) {
	s.mu.Lock()
	fn(s.Vessel)
	s.mu.Unlock()
	s.RebuildScene()
	s.Emit(EventVesselChanged, s.Vessel)
	s.SetModified(true)
}
