package scene

import (
	"math"

	"vessel-studio/pkg/geometry"

	"gonum.org/v1/gonum/spatial/r3"
)

// Ray is a half-line in model space with unit direction.
type Ray struct {
	Origin r3.Vec
	Dir    r3.Vec
}

// At returns the point at parameter t.
func (r Ray) At(t float64) r3.Vec {
	return r3.Add(r.Origin, r3.Scale(t, r.Dir))
}

// Camera is a perspective camera. It both projects points for the software
// renderer and casts picking rays, so the two always agree.
type Camera struct {
	Position r3.Vec
	Target   r3.Vec
	Up       r3.Vec
	FovY     float64 // Vertical field of view, radians
	Aspect   float64 // Width / height
}

// NewCamera returns a camera orbiting the given center from a yaw/pitch
// view preset direction at the given distance.
func NewCamera(center r3.Vec, yawDeg, pitchDeg, distance, aspect float64) *Camera {
	yaw := geometry.Radians(yawDeg)
	pitch := geometry.Radians(pitchDeg)
	dir := r3.Vec{
		X: math.Cos(pitch) * math.Sin(yaw),
		Y: math.Sin(pitch),
		Z: math.Cos(pitch) * math.Cos(yaw),
	}
	return &Camera{
		Position: r3.Add(center, r3.Scale(distance, dir)),
		Target:   center,
		Up:       r3.Vec{Y: 1},
		FovY:     geometry.Radians(40),
		Aspect:   aspect,
	}
}

// basis returns the right/up/forward unit vectors of the view frame.
func (c *Camera) basis() (right, up, forward r3.Vec) {
	forward = r3.Unit(r3.Sub(c.Target, c.Position))
	right = r3.Unit(r3.Cross(forward, c.Up))
	if r3.Norm(right) < 1e-9 {
		right = r3.Vec{X: 1}
	}
	up = r3.Cross(right, forward)
	return right, up, forward
}

// RayThrough casts a ray from the camera through normalized device
// coordinates, where x and y are in [-1, 1] with +y up. Coordinates outside
// that range are legal and simply aim past the viewport edge.
func (c *Camera) RayThrough(ndcX, ndcY float64) Ray {
	right, up, forward := c.basis()
	halfH := math.Tan(c.FovY / 2)
	halfW := halfH * c.Aspect
	dir := r3.Add(forward, r3.Add(r3.Scale(ndcX*halfW, right), r3.Scale(ndcY*halfH, up)))
	return Ray{Origin: c.Position, Dir: r3.Unit(dir)}
}

// Project maps a model-space point to normalized device coordinates and
// view depth. Points behind the camera report ok=false.
func (c *Camera) Project(p r3.Vec) (ndcX, ndcY, depth float64, ok bool) {
	right, up, forward := c.basis()
	rel := r3.Sub(p, c.Position)
	depth = r3.Dot(rel, forward)
	if depth <= 1e-9 {
		return 0, 0, depth, false
	}
	halfH := math.Tan(c.FovY / 2)
	halfW := halfH * c.Aspect
	ndcX = r3.Dot(rel, right) / (depth * halfW)
	ndcY = r3.Dot(rel, up) / (depth * halfH)
	return ndcX, ndcY, depth, true
}
