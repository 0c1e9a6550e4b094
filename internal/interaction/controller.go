// Package interaction implements the selection and drag controller. The
// per-gesture state machine is deliberately explicit: the state is exactly
// one of Idle or Dragging, and Transition is a pure function of (state,
// event, context) returning the next state plus the effects to emit, so the
// whole gesture logic is unit-testable without a pointer device.
package interaction

import (
	"vessel-studio/internal/scene"
	"vessel-studio/internal/vessel"
)

// Locks suppresses direct manipulation per component type. Locking is
// advisory to this controller only: locked components remain editable
// through the parameter forms.
type Locks struct {
	Nozzles  bool `json:"nozzles"`
	Saddles  bool `json:"saddles"`
	Textures bool `json:"textures"`
	Lugs     bool `json:"lugs"`
}

// Excluded returns the pick-exclusion set for the current locks. The shell
// is never a drag target.
func (l Locks) Excluded() map[scene.Kind]bool {
	return map[scene.Kind]bool{
		scene.KindShell:   true,
		scene.KindNozzle:  l.Nozzles,
		scene.KindSaddle:  l.Saddles,
		scene.KindTexture: l.Textures,
		scene.KindLug:     l.Lugs,
	}
}

// Phase is the gesture state.
type Phase int

const (
	Idle Phase = iota
	Dragging
)

// State is the complete controller state between events.
type State struct {
	Phase Phase
	Kind  scene.Kind
	Index int
	// LastAngle carries the component's angle across pointer samples whose
	// ray cannot recover a radial direction (grazing the axis).
	LastAngle float64
}

// EventType distinguishes pointer events.
type EventType int

const (
	PointerDown EventType = iota
	PointerMove
	PointerUp
)

// Event is one pointer sample in normalized device coordinates.
type Event struct {
	Type EventType
	X, Y float64
}

// Context is the world the controller reads at event time. It never writes
// any of it; position changes travel through effects.
type Context struct {
	Scene  *scene.Scene
	Camera *scene.Camera
	Vessel *vessel.State
	Locks  Locks
}

// EffectType tags an effect.
type EffectType int

const (
	EffectSelect EffectType = iota
	EffectDeselect
	EffectMove
	EffectDragEnd
)

// Effect is one callback the host should receive, in order.
type Effect struct {
	Type     EffectType
	Kind     scene.Kind
	Index    int
	Position float64
	Angle    float64
}

// Transition advances the state machine. Events with a missing scene or
// camera are no-ops that still collapse any stale drag back to Idle.
func Transition(st State, ev Event, ctx Context) (State, []Effect) {
	if ctx.Scene == nil || ctx.Camera == nil || ctx.Vessel == nil {
		if st.Phase == Dragging {
			return State{}, []Effect{{Type: EffectDragEnd}}
		}
		return State{}, nil
	}

	switch ev.Type {
	case PointerDown:
		return pointerDown(st, ev, ctx)
	case PointerMove:
		return pointerMove(st, ev, ctx)
	case PointerUp:
		return pointerUp(st)
	}
	return st, nil
}

func pointerDown(st State, ev Event, ctx Context) (State, []Effect) {
	ray := ctx.Camera.RayThrough(ev.X, ev.Y)
	hit, ok := ctx.Scene.Pick(ray, ctx.Locks.Excluded())
	if !ok {
		// Empty space: deselect, and clear any stale drag.
		return State{}, []Effect{{Type: EffectDeselect}}
	}
	next := State{
		Phase:     Dragging,
		Kind:      hit.Key.Kind,
		Index:     hit.Index,
		LastAngle: componentAngle(ctx.Vessel, hit.Key.Kind, hit.Index),
	}
	return next, []Effect{{Type: EffectSelect, Kind: hit.Key.Kind, Index: hit.Index}}
}

func pointerMove(st State, ev Event, ctx Context) (State, []Effect) {
	if st.Phase != Dragging {
		return st, nil
	}
	ray := ctx.Camera.RayThrough(ev.X, ev.Y)
	pos, angle := ResolveDrag(ctx.Vessel, ray, st.LastAngle)
	st.LastAngle = angle
	return st, []Effect{{
		Type:     EffectMove,
		Kind:     st.Kind,
		Index:    st.Index,
		Position: pos,
		Angle:    angle,
	}}
}

func pointerUp(st State) (State, []Effect) {
	if st.Phase != Dragging {
		return State{}, nil
	}
	return State{}, []Effect{{Type: EffectDragEnd}}
}

func componentAngle(vs *vessel.State, kind scene.Kind, index int) float64 {
	switch kind {
	case scene.KindNozzle:
		if index >= 0 && index < len(vs.Nozzles) {
			return vs.Nozzles[index].Angle
		}
	case scene.KindLug:
		if index >= 0 && index < len(vs.Lugs) {
			return vs.Lugs[index].Angle
		}
	case scene.KindTexture:
		if index >= 0 && index < len(vs.Textures) {
			return vs.Textures[index].Angle
		}
	}
	return 0
}

// Callbacks is the host-facing callback surface.
type Callbacks struct {
	OnSelect   func(kind scene.Kind, index int)
	OnDeselect func()
	OnMove     func(kind scene.Kind, index int, position, angle float64)
	OnDragEnd  func()
}

// Controller owns a State and dispatches effects to callbacks. Each pointer
// sample is processed synchronously and completely, so the latest position
// always wins and no backlog can accumulate.
type Controller struct {
	state State
	cb    Callbacks
}

// NewController creates a controller with the given callbacks.
func NewController(cb Callbacks) *Controller {
	return &Controller{cb: cb}
}

// Handle feeds one event through the machine and fires the resulting
// callbacks in order.
func (c *Controller) Handle(ev Event, ctx Context) {
	next, effects := Transition(c.state, ev, ctx)
	c.state = next
	for _, ef := range effects {
		switch ef.Type {
		case EffectSelect:
			if c.cb.OnSelect != nil {
				c.cb.OnSelect(ef.Kind, ef.Index)
			}
		case EffectDeselect:
			if c.cb.OnDeselect != nil {
				c.cb.OnDeselect()
			}
		case EffectMove:
			if c.cb.OnMove != nil {
				c.cb.OnMove(ef.Kind, ef.Index, ef.Position, ef.Angle)
			}
		case EffectDragEnd:
			if c.cb.OnDragEnd != nil {
				c.cb.OnDragEnd()
			}
		}
	}
}

// DraggingKind reports the current drag target, if any.
func (c *Controller) DraggingKind() (scene.Kind, int, bool) {
	if c.state.Phase != Dragging {
		return 0, 0, false
	}
	return c.state.Kind, c.state.Index, true
}
