package interaction

import (
	"testing"

	"vessel-studio/internal/mesh"
	"vessel-studio/internal/scene"
	"vessel-studio/internal/vessel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonum.org/v1/gonum/spatial/r3"
)

// testContext builds a scene with one nozzle proxy box sitting on top of a
// horizontal vessel shell at x=3000, and a camera looking at it from +Z.
func testContext(locks Locks) Context {
	vs := vessel.NewState()
	vs.Nozzles = []vessel.NozzleConfig{{Name: "N1", Position: 3000, Angle: 90, Bore: 102.3}}

	g := &mesh.Group{}
	g.Add("nozzle", "carbon-steel", 1,
		mesh.Box(300, 300, 300).Translate(r3.Vec{X: 3000, Y: vs.Radius()}))

	sc := scene.New()
	sc.Reconcile([]scene.Spec{
		{Key: scene.Key{Kind: scene.KindNozzle, ID: 0}, Index: 0, Group: g, Pickable: true},
	})

	cam := &scene.Camera{
		Position: r3.Vec{X: 3000, Y: vs.Radius() + 150, Z: 8000},
		Target:   r3.Vec{X: 3000, Y: vs.Radius() + 150},
		Up:       r3.Vec{Y: 1},
		FovY:     0.7,
		Aspect:   1.5,
	}

	return Context{Scene: sc, Camera: cam, Vessel: vs, Locks: locks}
}

func TestPointerDownSelectsAndStartsDrag(t *testing.T) {
	ctx := testContext(Locks{})

	st, effects := Transition(State{}, Event{Type: PointerDown, X: 0, Y: 0}, ctx)
	require.Len(t, effects, 1)
	assert.Equal(t, EffectSelect, effects[0].Type)
	assert.Equal(t, scene.KindNozzle, effects[0].Kind)
	assert.Equal(t, 0, effects[0].Index)

	assert.Equal(t, Dragging, st.Phase)
	assert.Equal(t, 90.0, st.LastAngle)
}

func TestPointerDownOnEmptySpaceDeselects(t *testing.T) {
	ctx := testContext(Locks{})

	// Aim well away from the nozzle.
	st, effects := Transition(State{}, Event{Type: PointerDown, X: 0.95, Y: 0.95}, ctx)
	require.Len(t, effects, 1)
	assert.Equal(t, EffectDeselect, effects[0].Type)
	assert.Equal(t, Idle, st.Phase)
}

func TestLockedKindIsNotPickable(t *testing.T) {
	ctx := testContext(Locks{Nozzles: true})

	st, effects := Transition(State{}, Event{Type: PointerDown, X: 0, Y: 0}, ctx)
	require.Len(t, effects, 1)
	assert.Equal(t, EffectDeselect, effects[0].Type)
	assert.Equal(t, Idle, st.Phase)
}

func TestDragMoveEmitsClampedWrappedValues(t *testing.T) {
	ctx := testContext(Locks{})

	st, _ := Transition(State{}, Event{Type: PointerDown, X: 0, Y: 0}, ctx)
	require.Equal(t, Dragging, st.Phase)

	// Drag far off to the left, past the vessel end and outside the canvas.
	st, effects := Transition(st, Event{Type: PointerMove, X: -8, Y: 0.2}, ctx)
	require.Len(t, effects, 1)
	ef := effects[0]
	assert.Equal(t, EffectMove, ef.Type)
	assert.GreaterOrEqual(t, ef.Position, 0.0)
	assert.LessOrEqual(t, ef.Position, ctx.Vessel.Length)
	assert.GreaterOrEqual(t, ef.Angle, 0.0)
	assert.Less(t, ef.Angle, 360.0)
	assert.Equal(t, Dragging, st.Phase)
}

func TestPointerMoveWhileIdleIsNoOp(t *testing.T) {
	ctx := testContext(Locks{})
	st, effects := Transition(State{}, Event{Type: PointerMove, X: 0, Y: 0}, ctx)
	assert.Empty(t, effects)
	assert.Equal(t, Idle, st.Phase)
}

func TestPointerUpEndsDrag(t *testing.T) {
	ctx := testContext(Locks{})
	st, _ := Transition(State{}, Event{Type: PointerDown, X: 0, Y: 0}, ctx)

	st, effects := Transition(st, Event{Type: PointerUp}, ctx)
	require.Len(t, effects, 1)
	assert.Equal(t, EffectDragEnd, effects[0].Type)
	assert.Equal(t, Idle, st.Phase)

	// A second up is a no-op.
	_, effects = Transition(st, Event{Type: PointerUp}, ctx)
	assert.Empty(t, effects)
}

func TestMissingContextCollapsesStaleDrag(t *testing.T) {
	st := State{Phase: Dragging, Kind: scene.KindNozzle, Index: 0}
	next, effects := Transition(st, Event{Type: PointerMove}, Context{})
	require.Len(t, effects, 1)
	assert.Equal(t, EffectDragEnd, effects[0].Type)
	assert.Equal(t, Idle, next.Phase)

	// Idle state with missing context stays quiet.
	_, effects = Transition(State{}, Event{Type: PointerDown}, Context{})
	assert.Empty(t, effects)
}

func TestControllerDispatchesCallbacks(t *testing.T) {
	ctx := testContext(Locks{})

	var selected, moved, ended int
	c := NewController(Callbacks{
		OnSelect: func(kind scene.Kind, index int) { selected++ },
		OnMove:   func(kind scene.Kind, index int, position, angle float64) { moved++ },
		OnDragEnd: func() {
			ended++
		},
	})

	c.Handle(Event{Type: PointerDown, X: 0, Y: 0}, ctx)
	assert.Equal(t, 1, selected)
	kind, index, dragging := c.DraggingKind()
	require.True(t, dragging)
	assert.Equal(t, scene.KindNozzle, kind)
	assert.Equal(t, 0, index)

	c.Handle(Event{Type: PointerMove, X: 0.1, Y: 0.1}, ctx)
	assert.Equal(t, 1, moved)

	c.Handle(Event{Type: PointerUp}, ctx)
	assert.Equal(t, 1, ended)
	_, _, dragging = c.DraggingKind()
	assert.False(t, dragging)
}

func TestResolveDragHorizontal(t *testing.T) {
	vs := vessel.NewState() // horizontal, radius 1000, length 6000

	// Straight down onto the top of the shell at x=2500.
	ray := scene.Ray{Origin: r3.Vec{X: 2500, Y: 5000}, Dir: r3.Vec{Y: -1}}
	pos, angle := ResolveDrag(vs, ray, 0)
	assert.InDelta(t, 2500, pos, 1e-6)
	assert.InDelta(t, 90, angle, 1e-6)

	// From the front toward -Z: hits the shell at angle 0.
	ray = scene.Ray{Origin: r3.Vec{X: 1000, Z: 5000}, Dir: r3.Vec{Z: -1}}
	_, angle = ResolveDrag(vs, ray, 0)
	assert.InDelta(t, 0, angle, 1e-6)
}

func TestResolveDragClampsAxial(t *testing.T) {
	vs := vessel.NewState()

	// Beyond the right tangent: clamp to length.
	ray := scene.Ray{Origin: r3.Vec{X: 9000, Y: 5000}, Dir: r3.Vec{Y: -1}}
	pos, _ := ResolveDrag(vs, ray, 0)
	assert.Equal(t, vs.Length, pos)

	// Before the left tangent: clamp to zero.
	ray = scene.Ray{Origin: r3.Vec{X: -3000, Y: 5000}, Dir: r3.Vec{Y: -1}}
	pos, _ = ResolveDrag(vs, ray, 0)
	assert.Equal(t, 0.0, pos)
}

func TestResolveDragMissesCylinderFallsBackToPlane(t *testing.T) {
	vs := vessel.NewState()

	// A ray passing far above the shell never meets the cylinder, but the
	// axis plane fallback still yields in-range values.
	ray := scene.Ray{Origin: r3.Vec{X: 3000, Y: 8000, Z: 5000}, Dir: r3.Vec{Z: -1}}
	pos, angle := ResolveDrag(vs, ray, 45)
	assert.GreaterOrEqual(t, pos, 0.0)
	assert.LessOrEqual(t, pos, vs.Length)
	assert.GreaterOrEqual(t, angle, 0.0)
	assert.Less(t, angle, 360.0)
}

func TestResolveDragNearAxisUsesFallbackAngle(t *testing.T) {
	vs := vessel.NewState()
	vs.Orientation = vessel.Vertical

	// Straight down the vertical axis: the radial direction is undefined.
	ray := scene.Ray{Origin: r3.Vec{Y: 20000}, Dir: r3.Vec{Y: -1}}
	_, angle := ResolveDrag(vs, ray, 123)
	assert.InDelta(t, 123, angle, 1e-9)
}

func TestResolveDragVerticalAngleConvention(t *testing.T) {
	vs := vessel.NewState()
	vs.Orientation = vessel.Vertical

	// Toward the shell from +X: plan angle 0.
	ray := scene.Ray{Origin: r3.Vec{X: 5000, Y: 3000}, Dir: r3.Vec{X: -1}}
	pos, angle := ResolveDrag(vs, ray, 0)
	assert.InDelta(t, 3000, pos, 1e-6)
	assert.InDelta(t, 0, angle, 1e-6)

	// From -Z looking in +Z: first cylinder hit is at z=-1000, plan angle 90.
	ray = scene.Ray{Origin: r3.Vec{Y: 3000, Z: -5000}, Dir: r3.Vec{Z: 1}}
	_, angle = ResolveDrag(vs, ray, 0)
	assert.InDelta(t, 90, angle, 1e-6)
}

func TestLocksExcluded(t *testing.T) {
	ex := Locks{Saddles: true}.Excluded()
	assert.True(t, ex[scene.KindShell]) // Shell is never draggable
	assert.True(t, ex[scene.KindSaddle])
	assert.False(t, ex[scene.KindNozzle])
	assert.False(t, ex[scene.KindLug])
	assert.False(t, ex[scene.KindTexture])
}
