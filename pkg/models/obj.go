package models

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// maxOBJLine bounds a single OBJ record; scanned meshes can carry very long
// face lines.
const maxOBJLine = 16 << 20

// LoadOBJ loads a Wavefront OBJ file. Only positions and faces are read;
// faces are kept as authored polygons.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, err := ReadOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("parse obj: %w", err)
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}

// ReadOBJ parses OBJ records from r.
func ReadOBJ(r io.Reader) (*Mesh, error) {
	mesh := NewMesh("")

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxOBJLine)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			var p [3]float32
			for i := range 3 {
				x, err := strconv.ParseFloat(fields[i+1], 32)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				p[i] = float32(x)
			}
			mesh.Vertices = append(mesh.Vertices, p)

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNo)
			}
			face := make([]int32, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				idx, err := objIndex(tok, len(mesh.Vertices))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				face = append(face, idx)
			}
			mesh.Faces = append(mesh.Faces, face)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// Faces may reference vertices declared further down the file.
	if err := mesh.checkIndices(); err != nil {
		return nil, err
	}
	return mesh, nil
}

// objIndex resolves the position part of a face token ("7", "7/2", "7//3",
// "-1"). Negative indices are relative to the vertices declared so far;
// positive ones are range-checked once the whole file is read.
func objIndex(tok string, count int) (int32, error) {
	if i := strings.IndexByte(tok, '/'); i >= 0 {
		tok = tok[:i]
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("bad face index %q", tok)
	}

	switch {
	case n > 0:
		if n > math.MaxInt32 {
			return 0, fmt.Errorf("face index %s out of range", tok)
		}
		return int32(n - 1), nil
	case n < 0:
		n += count
		if n < 0 {
			return 0, fmt.Errorf("face index %s out of range (%d vertices)", tok, count)
		}
		return int32(n), nil
	default:
		return 0, fmt.Errorf("face index 0 is invalid")
	}
}
