package render

import (
	"image"

	"github.com/taigrr/meshfolder/pkg/math3d"
)

// SnapshotOptions controls Snapshot.
type SnapshotOptions struct {
	Size        int // Output edge length in pixels
	Supersample int // Render at Size*Supersample, then downsample
	Background  Color
	Line        Color
	Rotation    math3d.Mat4 // Applied after fitting; zero means identity
}

// DefaultSnapshotOptions returns a 512px, 2x supersampled render.
func DefaultSnapshotOptions() SnapshotOptions {
	return SnapshotOptions{
		Size:        512,
		Supersample: 2,
		Background:  RGB(30, 30, 40),
		Line:        RGB(0, 255, 128),
		Rotation:    math3d.Identity(),
	}
}

// Snapshot renders g as a fitted wireframe into a square image.
func Snapshot(g Geometry, opts SnapshotOptions) *image.RGBA {
	if opts.Size <= 0 {
		opts.Size = 1
	}
	if opts.Supersample <= 0 {
		opts.Supersample = 1
	}
	if opts.Rotation == (math3d.Mat4{}) {
		opts.Rotation = math3d.Identity()
	}

	side := opts.Size * opts.Supersample
	fb := NewFramebuffer(side, side)
	fb.Clear(opts.Background)

	if box, ok := math3d.BoundsOf(g.Positions()); ok {
		camera := NewCamera(4)
		NewWireframe(camera, fb).DrawMesh(g, opts.Rotation.Mul(FitTransform(box)), opts.Line)
	}

	return Downsample(fb.ToImage(), opts.Size, opts.Size)
}
