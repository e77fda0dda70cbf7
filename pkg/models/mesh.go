// Package models loads mesh files into plain vertex and face arrays.
package models

import (
	"github.com/taigrr/meshfolder/pkg/math3d"
)

// Mesh is geometry as read from a file: vertex positions and polygon
// index tuples into Vertices.
type Mesh struct {
	Name     string
	Vertices [][3]float32
	Faces    [][]int32
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([][3]float32, 0),
		Faces:    make([][]int32, 0),
	}
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// FaceCount returns the number of faces.
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// FaceArity returns the number of indices shared by every face, or 0 when
// the mesh has no faces or mixes polygon sizes.
func (m *Mesh) FaceArity() int {
	if len(m.Faces) == 0 {
		return 0
	}
	k := len(m.Faces[0])
	for _, f := range m.Faces[1:] {
		if len(f) != k {
			return 0
		}
	}
	return k
}

// Triangulate replaces every polygon with a triangle fan around its first
// vertex. Faces with fewer than three indices are dropped.
func (m *Mesh) Triangulate() {
	tris := make([][]int32, 0, len(m.Faces))
	for _, f := range m.Faces {
		for i := 1; i+1 < len(f); i++ {
			tris = append(tris, []int32{f[0], f[i], f[i+1]})
		}
	}
	m.Faces = tris
}

// Bounds returns the axis-aligned bounding box of the vertices.
// ok is false for a mesh without vertices.
func (m *Mesh) Bounds() (box math3d.Box, ok bool) {
	return math3d.BoundsOf(m.Vertices)
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	b, _ := m.Bounds()
	return b.Center()
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	b, _ := m.Bounds()
	return b.Size()
}

// Positions returns the vertex array.
func (m *Mesh) Positions() [][3]float32 {
	return m.Vertices
}

// Edges returns every polygon edge once, as ordered index pairs.
func (m *Mesh) Edges() [][2]int32 {
	seen := make(map[[2]int32]struct{}, len(m.Faces)*3)
	edges := make([][2]int32, 0, len(m.Faces)*3)
	for _, f := range m.Faces {
		for i := range f {
			a, b := f[i], f[(i+1)%len(f)]
			if a > b {
				a, b = b, a
			}
			e := [2]int32{a, b}
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			edges = append(edges, e)
		}
	}
	return edges
}

// checkIndices reports the first face index that does not address a vertex.
func (m *Mesh) checkIndices() error {
	n := int32(len(m.Vertices))
	for fi, f := range m.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= n {
				return &IndexRangeError{Face: fi, Index: int(idx), Vertices: int(n)}
			}
		}
	}
	return nil
}
