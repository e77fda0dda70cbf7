// Package meshfolder indexes a directory of mesh files and loads them on
// demand as plain vertex and face arrays.
//
// The catalog is built once by New from the files directly under a root
// directory and the files one subdirectory level down. It is sorted by path
// and never changes afterwards, so an ordinal always names the same file for
// the lifetime of an Index. Get parses the file each time it is called; no
// geometry is cached.
package meshfolder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/taigrr/meshfolder/pkg/models"
)

// DefaultExtensions is the allowed suffix set used when none is configured.
var DefaultExtensions = []string{".obj", ".ply"}

// Loader is the mesh-parsing capability behind Get. ext is the matched
// suffix of the entry.
type Loader interface {
	Load(path, ext string) (*models.Mesh, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(path, ext string) (*models.Mesh, error)

// Load calls f(path, ext).
func (f LoaderFunc) Load(path, ext string) (*models.Mesh, error) {
	return f(path, ext)
}

// Index is an immutable catalog of mesh files. It is safe for concurrent use
// as long as the Loader is.
type Index struct {
	root      string
	exts      map[string]struct{}
	entries   []Entry
	loader    Loader
	transform Transform
	log       *zap.Logger
}

// Option configures New.
type Option func(*Index) error

// WithExtensions replaces the allowed suffix set. Matching is
// case-sensitive and every suffix must start with ".".
func WithExtensions(exts ...string) Option {
	return func(ix *Index) error {
		if len(exts) == 0 {
			return errors.New("empty extension set")
		}
		set := make(map[string]struct{}, len(exts))
		for _, ext := range exts {
			if len(ext) < 2 || ext[0] != '.' {
				return fmt.Errorf("invalid extension %q", ext)
			}
			set[ext] = struct{}{}
		}
		ix.exts = set
		return nil
	}
}

// WithTransform stores a record transform for callers to retrieve with
// Index.Transform.
func WithTransform(t Transform) Option {
	return func(ix *Index) error {
		ix.transform = t
		return nil
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(ix *Index) error {
		if log != nil {
			ix.log = log
		}
		return nil
	}
}

// WithLoader replaces the mesh parser. The default dispatches on the
// matched suffix through the models format registry.
func WithLoader(l Loader) Option {
	return func(ix *Index) error {
		if l == nil {
			return errors.New("nil loader")
		}
		ix.loader = l
		return nil
	}
}

// New scans root and builds the catalog. Environment variables in root are
// expanded first. A root that is not a readable directory, an invalid
// option, or a scan that finds no eligible file yields a
// *ConfigurationError.
func New(root string, opts ...Option) (*Index, error) {
	ix := &Index{
		root:   filepath.Clean(os.ExpandEnv(root)),
		loader: LoaderFunc(loadMesh),
		log:    zap.NewNop(),
	}
	if err := WithExtensions(DefaultExtensions...)(ix); err != nil {
		return nil, &ConfigurationError{Root: ix.root, Err: err}
	}
	for _, opt := range opts {
		if err := opt(ix); err != nil {
			return nil, &ConfigurationError{Root: ix.root, Err: err}
		}
	}

	ix.log.Info("Building mesh folder index", zap.String("root", ix.root))

	entries, err := ix.scan()
	if err != nil {
		return nil, &ConfigurationError{Root: ix.root, Err: err}
	}
	if len(entries) == 0 {
		return nil, &ConfigurationError{Root: ix.root, Err: ErrNoEligibleFiles}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
	ix.entries = entries

	ix.log.Debug("Mesh folder index built",
		zap.String("root", ix.root),
		zap.Int("entries", len(entries)),
		zap.Strings("extensions", ix.Extensions()))

	return ix, nil
}

// scan lists the root and each first-level subdirectory.
func (ix *Index) scan() ([]Entry, error) {
	children, err := os.ReadDir(ix.root)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, child := range children {
		path := filepath.Join(ix.root, child.Name())
		info, err := os.Stat(path)
		if err != nil {
			ix.log.Debug("Skipping unreadable entry", zap.String("path", path), zap.Error(err))
			continue
		}

		switch {
		case info.IsDir():
			sub, err := ix.scanDir(path)
			if err != nil {
				ix.log.Warn("Skipping unreadable directory", zap.String("path", path), zap.Error(err))
				continue
			}
			entries = append(entries, sub...)
		case info.Mode().IsRegular():
			if ext, ok := ix.match(child.Name()); ok {
				entries = append(entries, Entry{Path: path, Kind: KindFile, Ext: ext})
			}
		}
	}
	return entries, nil
}

// scanDir collects eligible regular files directly inside dir.
func (ix *Index) scanDir(dir string) ([]Entry, error) {
	children, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, child := range children {
		ext, ok := ix.match(child.Name())
		if !ok {
			continue
		}
		path := filepath.Join(dir, child.Name())
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		entries = append(entries, Entry{Path: path, Kind: KindDirectory, Ext: ext})
	}
	return entries, nil
}

// loadMesh parses by the matched suffix, falling back to the final
// extension for names like "scan.lod0.ply".
func loadMesh(path, ext string) (*models.Mesh, error) {
	mesh, err := models.LoadFormat(path, ext)
	if errors.Is(err, models.ErrUnsupportedFormat) {
		return models.Load(path)
	}
	return mesh, err
}

func (ix *Index) match(name string) (string, bool) {
	ext := firstSuffix(name)
	if ext == "" {
		return "", false
	}
	_, ok := ix.exts[ext]
	return ext, ok
}

// Root returns the root directory after environment expansion.
func (ix *Index) Root() string {
	return ix.root
}

// Extensions returns the allowed suffixes in sorted order.
func (ix *Index) Extensions() []string {
	exts := make([]string, 0, len(ix.exts))
	for ext := range ix.exts {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Transform returns the transform passed to WithTransform, or nil.
func (ix *Index) Transform() Transform {
	return ix.transform
}

// Len returns the number of catalogued files.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Entries returns a copy of the catalog.
func (ix *Index) Entries() []Entry {
	out := make([]Entry, len(ix.entries))
	copy(out, ix.entries)
	return out
}

// Entry returns the catalog entry at i.
func (ix *Index) Entry(i int) (Entry, error) {
	if i < 0 || i >= len(ix.entries) {
		return Entry{}, &IndexError{Index: i, Len: len(ix.entries)}
	}
	return ix.entries[i], nil
}

// Find returns the ordinal of path, or -1 when it is not catalogued.
func (ix *Index) Find(path string) int {
	path = filepath.Clean(path)
	i := sort.Search(len(ix.entries), func(i int) bool {
		return ix.entries[i].Path >= path
	})
	if i < len(ix.entries) && ix.entries[i].Path == path {
		return i
	}
	return -1
}

// Get loads the mesh at ordinal i. Geometry is returned as authored, except
// that meshes mixing polygon sizes are fan-triangulated so every face row has
// the same length. Parse failures are returned as *LoadError.
func (ix *Index) Get(i int) (*Record, error) {
	entry, err := ix.Entry(i)
	if err != nil {
		return nil, err
	}

	mesh, err := ix.loader.Load(entry.Path, entry.Ext)
	if err != nil {
		return nil, &LoadError{Path: entry.Path, Err: err}
	}
	if mesh == nil || len(mesh.Vertices) == 0 {
		return nil, &LoadError{Path: entry.Path, Err: models.ErrNoVertices}
	}
	if mesh.FaceCount() > 0 && mesh.FaceArity() == 0 {
		ix.log.Debug("Triangulating mixed-arity faces",
			zap.String("path", entry.Path),
			zap.Int("faces", mesh.FaceCount()))
		mesh.Triangulate()
	}

	return &Record{
		Vertices: mesh.Vertices,
		Faces:    mesh.Faces,
		Index:    i,
		Path:     entry.Path,
		Kind:     entry.Kind,
	}, nil
}

// String describes the index for log lines.
func (ix *Index) String() string {
	return fmt.Sprintf("meshfolder(%s, %d entries, %s)", ix.root, len(ix.entries), strings.Join(ix.Extensions(), ","))
}
