package render

import (
	"math"

	"github.com/taigrr/meshfolder/pkg/math3d"
)

// Camera is a perspective camera looking at a fixed target.
type Camera struct {
	Position math3d.Vec3
	Target   math3d.Vec3

	FOV         float64 // Vertical field of view in radians
	AspectRatio float64 // Width / Height
	Near        float64
	Far         float64
}

// NewCamera returns a camera on the +Z axis looking at the origin.
func NewCamera(distance float64) *Camera {
	return &Camera{
		Position:    math3d.V3(0, 0, distance),
		FOV:         math.Pi / 3,
		AspectRatio: 1,
		Near:        0.1,
		Far:         100,
	}
}

// SetDistance moves the camera along its current line of sight.
func (c *Camera) SetDistance(d float64) {
	dir := c.Position.Sub(c.Target).Normalize()
	if dir.Len() == 0 {
		dir = math3d.V3(0, 0, 1)
	}
	c.Position = c.Target.Add(dir.Scale(d))
}

// Distance returns the distance from the camera to its target.
func (c *Camera) Distance() float64 {
	return c.Position.Sub(c.Target).Len()
}

// ViewProjectionMatrix returns projection * view.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	view := math3d.LookAt(c.Position, c.Target, math3d.V3(0, 1, 0))
	proj := math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
	return proj.Mul(view)
}

// maxNDC bounds how far off screen a projected point may land before it is
// treated as invisible, so a vertex grazing the camera plane does not turn
// into an enormous line walk.
const maxNDC = 8

// project maps a point through vp to screen coordinates.
// visible is false for points behind the camera or far off screen.
func project(vp math3d.Mat4, p math3d.Vec3, width, height int) (x, y float64, visible bool) {
	clip := vp.MulPoint(p)
	if clip.W <= 0 {
		return 0, 0, false
	}
	ndc := clip.PerspectiveDivide()
	if math.Abs(ndc.X) > maxNDC || math.Abs(ndc.Y) > maxNDC {
		return 0, 0, false
	}
	x = (ndc.X + 1) * 0.5 * float64(width)
	y = (1 - ndc.Y) * 0.5 * float64(height) // Y is flipped
	return x, y, true
}

// WorldToScreen transforms a world point to screen coordinates.
func (c *Camera) WorldToScreen(p math3d.Vec3, width, height int) (x, y float64, visible bool) {
	return project(c.ViewProjectionMatrix(), p, width, height)
}
