package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/meshfolder/pkg/meshfolder"
	"github.com/taigrr/meshfolder/pkg/models"
	"github.com/taigrr/meshfolder/pkg/render"
)

// recordMesh wraps a loaded record so it can be measured and drawn.
func recordMesh(rec *meshfolder.Record) *models.Mesh {
	return &models.Mesh{
		Name:     filepath.Base(rec.Path),
		Vertices: rec.Vertices,
		Faces:    rec.Faces,
	}
}

// parseColor reads an "R,G,B" triple.
func parseColor(s string) (render.Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return render.Color{}, fmt.Errorf("invalid color %q: want R,G,B", s)
	}
	var rgb [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return render.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		rgb[i] = uint8(v)
	}
	return render.RGB(rgb[0], rgb[1], rgb[2]), nil
}

// frameName inserts a zero-padded frame number before the extension:
// out.png -> out-007.png.
func frameName(path string, frame int) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%03d%s", strings.TrimSuffix(path, ext), frame, ext)
}
