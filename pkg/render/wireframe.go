package render

import (
	"github.com/taigrr/meshfolder/pkg/math3d"
)

// Geometry is what the wireframe renderer needs from a mesh.
type Geometry interface {
	Positions() [][3]float32
	Edges() [][2]int32
}

// Wireframe renders mesh edges.
type Wireframe struct {
	camera *Camera
	fb     *Framebuffer
}

// NewWireframe creates a new wireframe renderer.
func NewWireframe(camera *Camera, fb *Framebuffer) *Wireframe {
	return &Wireframe{
		camera: camera,
		fb:     fb,
	}
}

// FitTransform centers box at the origin and scales its largest side to 2.
func FitTransform(box math3d.Box) math3d.Mat4 {
	maxDim := box.Size().MaxComponent()
	scale := 1.0
	if maxDim > 0 {
		scale = 2.0 / maxDim
	}
	return math3d.ScaleUniform(scale).Mul(math3d.Translate(box.Center().Negate()))
}

// DrawMesh draws every edge of g after applying model.
// It returns the number of edges with at least one visible endpoint.
func (w *Wireframe) DrawMesh(g Geometry, model math3d.Mat4, c Color) int {
	mvp := w.camera.ViewProjectionMatrix().Mul(model)
	pos := g.Positions()

	type screenPoint struct {
		x, y    int
		visible bool
	}
	projected := make([]screenPoint, len(pos))
	for i, p := range pos {
		x, y, vis := project(mvp, math3d.FromArray(p), w.fb.Width, w.fb.Height)
		projected[i] = screenPoint{int(x), int(y), vis}
	}

	drawn := 0
	for _, e := range g.Edges() {
		if int(e[0]) >= len(projected) || int(e[1]) >= len(projected) || e[0] < 0 || e[1] < 0 {
			continue
		}
		a, b := projected[e[0]], projected[e[1]]
		// Lines crossing the camera plane are dropped rather than clipped.
		if !a.visible || !b.visible {
			continue
		}
		w.fb.DrawLine(a.x, a.y, b.x, b.y, c)
		drawn++
	}
	return drawn
}
