package models

import (
	"errors"
	"testing"
)

func TestFaceArity(t *testing.T) {
	mesh := NewMesh("test")
	if mesh.FaceArity() != 0 {
		t.Errorf("empty mesh should have arity 0")
	}

	mesh.Faces = [][]int32{{0, 1, 2}, {1, 2, 3}}
	if mesh.FaceArity() != 3 {
		t.Errorf("expected arity 3, got %d", mesh.FaceArity())
	}

	mesh.Faces = append(mesh.Faces, []int32{0, 1, 2, 3})
	if mesh.FaceArity() != 0 {
		t.Errorf("mixed faces should have arity 0, got %d", mesh.FaceArity())
	}
}

func TestTriangulate(t *testing.T) {
	mesh := NewMesh("test")
	mesh.Faces = [][]int32{
		{0, 1, 2},
		{0, 1, 2, 3, 4},
		{5, 6},
	}

	mesh.Triangulate()

	if mesh.FaceCount() != 4 {
		t.Fatalf("expected 4 triangles, got %d", mesh.FaceCount())
	}
	if mesh.FaceArity() != 3 {
		t.Errorf("expected arity 3 after triangulation")
	}
	last := mesh.Faces[3]
	if last[0] != 0 || last[1] != 3 || last[2] != 4 {
		t.Errorf("fan should pivot on first vertex, got %v", last)
	}
}

func TestEdges(t *testing.T) {
	mesh := NewMesh("test")
	mesh.Faces = [][]int32{{0, 1, 2}, {2, 1, 3}}

	edges := mesh.Edges()
	if len(edges) != 5 {
		t.Errorf("two triangles sharing an edge have 5 edges, got %d", len(edges))
	}
}

func TestCheckIndices(t *testing.T) {
	mesh := NewMesh("test")
	mesh.Vertices = [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	mesh.Faces = [][]int32{{0, 1, 2}}
	if err := mesh.checkIndices(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	mesh.Faces = append(mesh.Faces, []int32{0, 1, 3})
	err := mesh.checkIndices()
	var rangeErr *IndexRangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("expected IndexRangeError, got %v", err)
	}
	if rangeErr.Face != 1 || rangeErr.Index != 3 {
		t.Errorf("unexpected error detail: %+v", rangeErr)
	}
}

func TestBounds(t *testing.T) {
	mesh := NewMesh("test")
	if _, ok := mesh.Bounds(); ok {
		t.Error("empty mesh should have no bounds")
	}

	mesh.Vertices = [][3]float32{{-1, 0, 2}, {3, 4, -2}}
	if c := mesh.Center(); c.X != 1 || c.Y != 2 || c.Z != 0 {
		t.Errorf("unexpected center %+v", c)
	}
	if s := mesh.Size(); s.X != 4 || s.Y != 4 || s.Z != 4 {
		t.Errorf("unexpected size %+v", s)
	}
}
