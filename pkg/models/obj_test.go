package models

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const quadOBJ = `# unit quad
o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vn 0 0 1
f 1/1/1 2/1/1 3/1/1 4/1/1
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestReadOBJQuad(t *testing.T) {
	mesh, err := ReadOBJ(strings.NewReader(quadOBJ))
	if err != nil {
		t.Fatalf("ReadOBJ: %v", err)
	}
	if mesh.VertexCount() != 4 {
		t.Errorf("expected 4 vertices, got %d", mesh.VertexCount())
	}
	if mesh.FaceCount() != 1 {
		t.Fatalf("expected 1 face, got %d", mesh.FaceCount())
	}
	if mesh.FaceArity() != 4 {
		t.Errorf("expected arity 4, got %d", mesh.FaceArity())
	}
	want := []int32{0, 1, 2, 3}
	for i, idx := range mesh.Faces[0] {
		if idx != want[i] {
			t.Errorf("face index %d = %d, want %d", i, idx, want[i])
		}
	}
	if mesh.Vertices[2] != [3]float32{1, 1, 0} {
		t.Errorf("vertex 2 = %v", mesh.Vertices[2])
	}
}

func TestReadOBJNegativeIndices(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\n"
	mesh, err := ReadOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadOBJ: %v", err)
	}
	if got := mesh.Faces[0]; got[0] != 0 || got[1] != 1 || got[2] != 2 {
		t.Errorf("relative indices resolved to %v", got)
	}
}

func TestReadOBJFacesBeforeVertices(t *testing.T) {
	src := "f 1 2 3\nv 0 0 0\nv 1 0 0\nv 0 1 0\n"
	mesh, err := ReadOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadOBJ: %v", err)
	}
	if mesh.VertexCount() != 3 || mesh.FaceCount() != 1 {
		t.Fatalf("got %d vertices, %d faces", mesh.VertexCount(), mesh.FaceCount())
	}
	if got := mesh.Faces[0]; got[0] != 0 || got[1] != 1 || got[2] != 2 {
		t.Errorf("face resolved to %v", got)
	}
}

func TestReadOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"short vertex", "v 1 2\n"},
		{"bad float", "v 1 x 2\n"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
		{"out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n"},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
		{"forward out of range", "f 1 2 4\nv 0 0 0\nv 1 0 0\nv 0 1 0\n"},
		{"negative before vertices", "f -1 -2 -3\nv 0 0 0\nv 1 0 0\nv 0 1 0\n"},
		{"index overflow", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 99999999999\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadOBJ(strings.NewReader(tt.src)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadOBJInvalidPath(t *testing.T) {
	if _, err := LoadOBJ("/nonexistent/path.obj"); err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadDispatch(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "quad.obj", quadOBJ)

	mesh, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if mesh.Name != "quad.obj" {
		t.Errorf("expected name quad.obj, got %q", mesh.Name)
	}

	upper := writeFile(t, dir, "QUAD.OBJ", quadOBJ)
	if _, err := Load(upper); err != nil {
		t.Errorf("extension lookup should ignore case: %v", err)
	}

	txt := writeFile(t, dir, "notes.txt", "hello")
	if _, err := Load(txt); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}

	empty := writeFile(t, dir, "empty.obj", "# nothing\n")
	if _, err := Load(empty); !errors.Is(err, ErrNoVertices) {
		t.Errorf("expected ErrNoVertices, got %v", err)
	}

	// LoadFormat ignores the file name.
	renamed := writeFile(t, dir, "quad.obj.bak", quadOBJ)
	if _, err := LoadFormat(renamed, ".obj"); err != nil {
		t.Errorf("LoadFormat: %v", err)
	}
}

func TestRegister(t *testing.T) {
	Register(".TEST", func(path string) (*Mesh, error) {
		m := NewMesh(path)
		m.Vertices = append(m.Vertices, [3]float32{1, 2, 3})
		return m, nil
	})

	found := false
	for _, ext := range Formats() {
		if ext == ".test" {
			found = true
		}
	}
	if !found {
		t.Fatalf("registered format missing from %v", Formats())
	}

	mesh, err := LoadFormat("whatever", ".test")
	if err != nil {
		t.Fatalf("LoadFormat: %v", err)
	}
	if mesh.VertexCount() != 1 {
		t.Errorf("expected custom loader result, got %d vertices", mesh.VertexCount())
	}
}
