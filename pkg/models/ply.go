package models

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// plyType is a PLY scalar type.
type plyType int

const (
	plyInvalid plyType = iota
	plyInt8
	plyUint8
	plyInt16
	plyUint16
	plyInt32
	plyUint32
	plyFloat32
	plyFloat64
)

var plyTypeNames = map[string]plyType{
	"char": plyInt8, "int8": plyInt8,
	"uchar": plyUint8, "uint8": plyUint8,
	"short": plyInt16, "int16": plyInt16,
	"ushort": plyUint16, "uint16": plyUint16,
	"int": plyInt32, "int32": plyInt32,
	"uint": plyUint32, "uint32": plyUint32,
	"float": plyFloat32, "float32": plyFloat32,
	"double": plyFloat64, "float64": plyFloat64,
}

func (t plyType) size() int {
	switch t {
	case plyInt8, plyUint8:
		return 1
	case plyInt16, plyUint16:
		return 2
	case plyInt32, plyUint32, plyFloat32:
		return 4
	case plyFloat64:
		return 8
	}
	return 0
}

// maxPLYFacePrealloc bounds the up-front allocation for one face list.
const maxPLYFacePrealloc = 16

type plyProperty struct {
	name      string
	typ       plyType
	list      bool
	countType plyType
}

type plyElement struct {
	name  string
	count int
	props []plyProperty
}

type plyHeader struct {
	format   string
	elements []plyElement
}

// plyValues yields successive scalars from the body of a PLY file.
type plyValues interface {
	next(t plyType) (float64, error)
}

// LoadPLY loads a Stanford PLY file in ascii, binary_little_endian or
// binary_big_endian format. Only vertex positions and face index lists are
// kept; every other element and property is read past.
func LoadPLY(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ply: %w", err)
	}
	defer f.Close()

	mesh, err := ReadPLY(f)
	if err != nil {
		return nil, fmt.Errorf("parse ply: %w", err)
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}

// ReadPLY parses a PLY stream.
func ReadPLY(r io.Reader) (*Mesh, error) {
	br := bufio.NewReader(r)

	hdr, err := readPLYHeader(br)
	if err != nil {
		return nil, err
	}

	var values plyValues
	switch hdr.format {
	case "ascii":
		sc := bufio.NewScanner(br)
		sc.Buffer(make([]byte, 0, 4096), 1<<20)
		sc.Split(bufio.ScanWords)
		values = &plyASCII{sc: sc}
	case "binary_little_endian":
		values = &plyBinary{r: br, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &plyBinary{r: br, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("unknown ply format %q", hdr.format)
	}

	mesh := NewMesh("")
	for _, el := range hdr.elements {
		if err := readPLYElement(values, el, mesh); err != nil {
			return nil, fmt.Errorf("element %s: %w", el.name, err)
		}
	}
	return mesh, nil
}

func readPLYHeader(br *bufio.Reader) (*plyHeader, error) {
	hdr := &plyHeader{}

	magic, err := br.ReadString('\n')
	if err != nil || strings.TrimSpace(magic) != "ply" {
		return nil, errors.New("missing ply magic")
	}

	for {
		line, err := br.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("truncated header: %w", err)
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "format":
			if len(fields) < 3 {
				return nil, errors.New("malformed format line")
			}
			hdr.format = fields[1]
		case "element":
			if len(fields) != 3 {
				return nil, fmt.Errorf("malformed element line %q", strings.TrimSpace(line))
			}
			n, err := strconv.Atoi(fields[2])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("bad element count %q", fields[2])
			}
			hdr.elements = append(hdr.elements, plyElement{name: fields[1], count: n})
		case "property":
			if len(hdr.elements) == 0 {
				return nil, errors.New("property before element")
			}
			prop, err := parsePLYProperty(fields[1:])
			if err != nil {
				return nil, err
			}
			el := &hdr.elements[len(hdr.elements)-1]
			el.props = append(el.props, prop)
		case "end_header":
			if hdr.format == "" {
				return nil, errors.New("header has no format line")
			}
			return hdr, nil
		case "comment", "obj_info":
		default:
			return nil, fmt.Errorf("unexpected header keyword %q", fields[0])
		}
	}
}

func parsePLYProperty(fields []string) (plyProperty, error) {
	if len(fields) == 4 && fields[0] == "list" {
		ct, vt := plyTypeNames[fields[1]], plyTypeNames[fields[2]]
		if ct == plyInvalid || vt == plyInvalid {
			return plyProperty{}, fmt.Errorf("bad list property types %q %q", fields[1], fields[2])
		}
		return plyProperty{name: fields[3], typ: vt, list: true, countType: ct}, nil
	}
	if len(fields) == 2 {
		t := plyTypeNames[fields[0]]
		if t == plyInvalid {
			return plyProperty{}, fmt.Errorf("bad property type %q", fields[0])
		}
		return plyProperty{name: fields[1], typ: t}, nil
	}
	return plyProperty{}, fmt.Errorf("malformed property %q", strings.Join(fields, " "))
}

func readPLYElement(values plyValues, el plyElement, mesh *Mesh) error {
	xyz := [3]int{-1, -1, -1}
	faceProp := -1
	for i, p := range el.props {
		switch {
		case el.name == "vertex" && !p.list && p.name == "x":
			xyz[0] = i
		case el.name == "vertex" && !p.list && p.name == "y":
			xyz[1] = i
		case el.name == "vertex" && !p.list && p.name == "z":
			xyz[2] = i
		case el.name == "face" && p.list && (p.name == "vertex_indices" || p.name == "vertex_index"):
			faceProp = i
		}
	}
	isVertex := el.name == "vertex"
	if isVertex && (xyz[0] < 0 || xyz[1] < 0 || xyz[2] < 0) {
		return errors.New("vertex element lacks x, y, z")
	}

	for range el.count {
		var pos [3]float32
		for i, p := range el.props {
			if p.list {
				n, err := values.next(p.countType)
				if err != nil {
					return err
				}
				if n < 0 || n > math.MaxInt32 {
					return fmt.Errorf("bad list length %v", n)
				}
				var face []int32
				if i == faceProp {
					// n comes from the file; let append grow past small polygons.
					face = make([]int32, 0, min(int(n), maxPLYFacePrealloc))
				}
				for range int(n) {
					v, err := values.next(p.typ)
					if err != nil {
						return err
					}
					if i == faceProp {
						face = append(face, int32(v))
					}
				}
				if i == faceProp {
					mesh.Faces = append(mesh.Faces, face)
				}
				continue
			}

			v, err := values.next(p.typ)
			if err != nil {
				return err
			}
			if isVertex {
				for axis, pi := range xyz {
					if pi == i {
						pos[axis] = float32(v)
					}
				}
			}
		}
		if isVertex {
			mesh.Vertices = append(mesh.Vertices, pos)
		}
	}
	return nil
}

type plyASCII struct {
	sc *bufio.Scanner
}

func (a *plyASCII) next(plyType) (float64, error) {
	if !a.sc.Scan() {
		if err := a.sc.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	return strconv.ParseFloat(a.sc.Text(), 64)
}

type plyBinary struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (b *plyBinary) next(t plyType) (float64, error) {
	n := t.size()
	if _, err := io.ReadFull(b.r, b.buf[:n]); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return 0, err
	}
	p := b.buf[:n]
	switch t {
	case plyInt8:
		return float64(int8(p[0])), nil
	case plyUint8:
		return float64(p[0]), nil
	case plyInt16:
		return float64(int16(b.order.Uint16(p))), nil
	case plyUint16:
		return float64(b.order.Uint16(p)), nil
	case plyInt32:
		return float64(int32(b.order.Uint32(p))), nil
	case plyUint32:
		return float64(b.order.Uint32(p)), nil
	case plyFloat32:
		return float64(math.Float32frombits(b.order.Uint32(p))), nil
	case plyFloat64:
		return math.Float64frombits(b.order.Uint64(p)), nil
	}
	return 0, fmt.Errorf("bad scalar type %d", t)
}
