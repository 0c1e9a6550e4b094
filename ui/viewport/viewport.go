// Package viewport provides the 3D vessel view: an orbiting camera over the
// retained scene, software-rendered into a raster, with pick-and-drag wired
// to the interaction controller.
package viewport

import (
	"image"
	"math"

	"vessel-studio/internal/app"
	"vessel-studio/internal/interaction"
	"vessel-studio/internal/render"
	"vessel-studio/internal/scene"
	"vessel-studio/internal/sizes"
	"vessel-studio/internal/vessel"
	"vessel-studio/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	orbitSpeed   = 0.4 // Degrees per pixel of secondary drag
	minPitch     = -85.0
	maxPitch     = 85.0
	minDistScale = 0.4
	maxDistScale = 6.0
	zoomStep     = 1.15
)

// VesselViewport is the interactive 3D view widget.
type VesselViewport struct {
	widget.BaseWidget

	state      *app.State
	controller *interaction.Controller
	raster     *fynecanvas.Raster

	// Orbit camera state, applied on top of the current view preset center.
	yaw      float64
	pitch    float64
	distance float64

	// Gesture bookkeeping: a primary drag either moves a component (the
	// controller owns it) or falls through to orbiting.
	orbiting bool
	lastDrag fyne.Position

	onStatus func(text string)
}

// New creates the viewport bound to the application state.
func New(state *app.State) *VesselViewport {
	vp := &VesselViewport{
		state: state,
	}
	vp.applyView(sizes.GetView("iso"))

	vp.controller = interaction.NewController(interaction.Callbacks{
		OnSelect: func(kind scene.Kind, index int) {
			state.Select(kind, index)
		},
		OnDeselect: func() {
			state.Deselect()
		},
		OnMove: func(kind scene.Kind, index int, position, angle float64) {
			state.MoveComponent(kind, index, position, angle)
		},
		OnDragEnd: func() {
			// Position already committed move-by-move; nothing to finalize.
		},
	})

	vp.raster = fynecanvas.NewRaster(vp.draw)
	vp.ExtendBaseWidget(vp)

	state.On(app.EventVesselChanged, func(interface{}) { vp.Refresh() })
	state.On(app.EventSelectionChanged, func(interface{}) { vp.Refresh() })
	state.On(app.EventProjectLoaded, func(interface{}) {
		vp.applyView(sizes.GetView("iso"))
		vp.Refresh()
	})

	return vp
}

// SetOnStatus installs a status line callback.
func (vp *VesselViewport) SetOnStatus(fn func(text string)) {
	vp.onStatus = fn
}

// SetView jumps the camera to a named view preset.
func (vp *VesselViewport) SetView(key string) {
	vp.applyView(sizes.GetView(key))
	vp.Refresh()
}

func (vp *VesselViewport) applyView(preset sizes.ViewPreset) {
	vp.yaw = preset.YawDeg
	vp.pitch = preset.PitchDeg
	vp.distance = preset.DistFactor * vp.boundingRadius()
}

// boundingRadius is the sphere radius enclosing shell plus heads, used to
// scale camera distance to the vessel.
func (vp *VesselViewport) boundingRadius() float64 {
	vs := vp.state.Vessel
	half := vs.Length/2 + vs.HeadDepth()
	return math.Hypot(half, vs.Radius())
}

func (vp *VesselViewport) center() r3.Vec {
	vs := vp.state.Vessel
	if vs.Orientation == vessel.Vertical {
		return r3.Vec{Y: vs.Length / 2}
	}
	return r3.Vec{X: vs.Length / 2}
}

// camera builds the camera for the current orbit state and widget aspect.
func (vp *VesselViewport) camera() *scene.Camera {
	size := vp.Size()
	aspect := 1.0
	if size.Height > 0 {
		aspect = float64(size.Width) / float64(size.Height)
	}
	return scene.NewCamera(vp.center(), vp.yaw, vp.pitch, vp.distance, aspect)
}

// draw renders one frame at the requested raster size.
func (vp *VesselViewport) draw(w, h int) image.Image {
	if w < 2 || h < 2 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	vs := vp.state.Vessel
	cam := scene.NewCamera(vp.center(), vp.yaw, vp.pitch, vp.distance, float64(w)/float64(h))
	return render.Render(vp.state.Scene, cam, render.Params{
		Lighting:    sizes.GetLighting(vs.Visual.LightingKey),
		Orientation: vs.Orientation,
		Decals:      vp.state.Scene.Decals,
	}, w, h)
}

// CreateRenderer implements fyne.Widget.
func (vp *VesselViewport) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(vp.raster)
}

// MinSize implements fyne.Widget.
func (vp *VesselViewport) MinSize() fyne.Size {
	return fyne.NewSize(320, 240)
}

// ndc converts a widget-local position to normalized device coordinates,
// +y up, matching the camera's ray convention.
func (vp *VesselViewport) ndc(pos fyne.Position) (float64, float64) {
	size := vp.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return 0, 0
	}
	x := 2*float64(pos.X)/float64(size.Width) - 1
	y := 1 - 2*float64(pos.Y)/float64(size.Height)
	return x, y
}

func (vp *VesselViewport) ctx() interaction.Context {
	return interaction.Context{
		Scene:  vp.state.Scene,
		Camera: vp.camera(),
		Vessel: vp.state.Vessel,
		Locks:  vp.state.Locks,
	}
}

// MouseDown starts either a component drag or a camera orbit.
func (vp *VesselViewport) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	x, y := vp.ndc(ev.Position)
	vp.controller.Handle(interaction.Event{Type: interaction.PointerDown, X: x, Y: y}, vp.ctx())
	if kind, _, ok := vp.controller.DraggingKind(); ok {
		vp.status("Dragging " + kind.String())
	} else {
		vp.orbiting = true
	}
	vp.lastDrag = ev.Position
}

// MouseUp ends the gesture.
func (vp *VesselViewport) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	x, y := vp.ndc(ev.Position)
	vp.controller.Handle(interaction.Event{Type: interaction.PointerUp, X: x, Y: y}, vp.ctx())
	vp.orbiting = false
	vp.status("")
}

// Dragged moves the dragged component or orbits the camera.
func (vp *VesselViewport) Dragged(ev *fyne.DragEvent) {
	if _, _, ok := vp.controller.DraggingKind(); ok {
		x, y := vp.ndc(ev.Position)
		vp.controller.Handle(interaction.Event{Type: interaction.PointerMove, X: x, Y: y}, vp.ctx())
		vp.lastDrag = ev.Position
		return
	}
	if vp.orbiting {
		vp.yaw -= float64(ev.Dragged.DX) * orbitSpeed
		vp.pitch = geometry.Clamp(vp.pitch+float64(ev.Dragged.DY)*orbitSpeed, minPitch, maxPitch)
		vp.lastDrag = ev.Position
		vp.Refresh()
	}
}

// DragEnd ends a component drag that finished without a mouse-up event.
func (vp *VesselViewport) DragEnd() {
	if _, _, ok := vp.controller.DraggingKind(); ok {
		x, y := vp.ndc(vp.lastDrag)
		vp.controller.Handle(interaction.Event{Type: interaction.PointerUp, X: x, Y: y}, vp.ctx())
	}
	vp.orbiting = false
}

// Scrolled zooms the camera distance, clamped to the vessel scale.
func (vp *VesselViewport) Scrolled(ev *fyne.ScrollEvent) {
	r := vp.boundingRadius()
	factor := zoomStep
	if ev.Scrolled.DY > 0 {
		factor = 1 / zoomStep
	}
	vp.distance = geometry.Clamp(vp.distance*factor, minDistScale*r, maxDistScale*r)
	vp.Refresh()
}

func (vp *VesselViewport) status(text string) {
	if vp.onStatus != nil {
		vp.onStatus(text)
	}
}
