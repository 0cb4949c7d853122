package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format   string // "binary_little_endian", "binary_big_endian", or "ascii"
	Version  string // Usually "1.0"
	Elements []PLYElement
}

// PLYElement is one element block declared in the header, e.g. vertex or face
type PLYElement struct {
	Name       string
	Count      int
	Properties []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string // Scalar type, or the element type for lists
	IsList   bool
	ListType string // For list properties, the type of the count
}

// PLYData contains the vertex positions and triangle indices of a PLY file
type PLYData struct {
	Vertices []core.Vec3 // Vertex positions (x, y, z)
	Faces    []int       // Triangle indices (3 per triangle); polygons are fan-triangulated
}

// LoadPLY loads a PLY file and returns its vertex and face data
func LoadPLY(filename string) (*PLYData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file %s: %w", filename, err)
	}
	defer file.Close()

	data, err := ReadPLY(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return data, nil
}

// ReadPLY parses an ascii or binary PLY stream
func ReadPLY(r io.Reader) (*PLYData, error) {
	reader := bufio.NewReader(r)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var values plyValueReader
	switch header.Format {
	case "ascii":
		values = &asciiValueReader{reader: reader}
	case "binary_little_endian":
		values = &binaryValueReader{reader: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &binaryValueReader{reader: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("unsupported PLY format: %s", header.Format)
	}

	data := &PLYData{}
	for _, element := range header.Elements {
		if err := readPLYElement(values, element, data); err != nil {
			return nil, fmt.Errorf("failed to read %s data: %w", element.Name, err)
		}
	}
	return data, nil
}

// parsePLYHeader reads up to and including the end_header line
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}

	magic, err := reader.ReadString('\n')
	if err != nil || strings.TrimSpace(magic) != "ply" {
		return nil, fmt.Errorf("missing ply magic number")
	}

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("unterminated header: %w", err)
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "end_header":
			if header.Format == "" {
				return nil, fmt.Errorf("header has no format line")
			}
			return header, nil
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid format line: %q", strings.TrimSpace(line))
			}
			header.Format = parts[1]
			header.Version = parts[2]
		case "comment", "obj_info":
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element line: %q", strings.TrimSpace(line))
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})
		case "property":
			if len(header.Elements) == 0 {
				return nil, fmt.Errorf("property before any element")
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			current := &header.Elements[len(header.Elements)-1]
			current.Properties = append(current.Properties, prop)
		default:
			return nil, fmt.Errorf("unknown header keyword: %s", parts[0])
		}
	}
}

// parsePLYProperty parses "list <count type> <type> <name>" or "<type> <name>"
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) >= 4 && parts[0] == "list" {
		if getTypeSize(parts[1]) == 0 || getTypeSize(parts[2]) == 0 {
			return PLYProperty{}, fmt.Errorf("unknown list property type: %s", strings.Join(parts, " "))
		}
		return PLYProperty{Name: parts[3], Type: parts[2], IsList: true, ListType: parts[1]}, nil
	}
	if len(parts) >= 2 {
		if getTypeSize(parts[0]) == 0 {
			return PLYProperty{}, fmt.Errorf("unknown property type: %s", parts[0])
		}
		return PLYProperty{Name: parts[1], Type: parts[0]}, nil
	}
	return PLYProperty{}, fmt.Errorf("invalid property: %s", strings.Join(parts, " "))
}

// getTypeSize returns the size in bytes of a PLY scalar type, 0 if unknown
func getTypeSize(dataType string) int {
	switch dataType {
	case "char", "uchar", "int8", "uint8":
		return 1
	case "short", "ushort", "int16", "uint16":
		return 2
	case "int", "uint", "float", "int32", "uint32", "float32":
		return 4
	case "double", "float64":
		return 8
	}
	return 0
}

func readPLYElement(values plyValueReader, element PLYElement, data *PLYData) error {
	for i := 0; i < element.Count; i++ {
		var position core.Vec3
		var indices []int

		for _, prop := range element.Properties {
			if prop.IsList {
				count, err := values.read(prop.ListType)
				if err != nil {
					return err
				}
				list := make([]int, int(count))
				for k := range list {
					v, err := values.read(prop.Type)
					if err != nil {
						return err
					}
					list[k] = int(v)
				}
				if element.Name == "face" && (prop.Name == "vertex_indices" || prop.Name == "vertex_index") {
					indices = list
				}
				continue
			}

			v, err := values.read(prop.Type)
			if err != nil {
				return err
			}
			if element.Name == "vertex" {
				switch prop.Name {
				case "x":
					position.X = v
				case "y":
					position.Y = v
				case "z":
					position.Z = v
				}
			}
		}

		switch element.Name {
		case "vertex":
			data.Vertices = append(data.Vertices, position)
		case "face":
			if len(indices) < 3 {
				return fmt.Errorf("face %d has %d vertices", i, len(indices))
			}
			for k := 1; k+1 < len(indices); k++ {
				data.Faces = append(data.Faces, indices[0], indices[k], indices[k+1])
			}
		}
	}
	return nil
}

// plyValueReader reads one scalar of the given PLY type as float64
type plyValueReader interface {
	read(dataType string) (float64, error)
}

type asciiValueReader struct {
	reader *bufio.Reader
}

func (a *asciiValueReader) read(dataType string) (float64, error) {
	var token strings.Builder
	for {
		b, err := a.reader.ReadByte()
		if err != nil {
			if err == io.EOF && token.Len() > 0 {
				break
			}
			return 0, fmt.Errorf("unexpected end of data: %w", err)
		}
		if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			if token.Len() > 0 {
				break
			}
			continue
		}
		token.WriteByte(b)
	}
	v, err := strconv.ParseFloat(token.String(), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", dataType, token.String())
	}
	return v, nil
}

type binaryValueReader struct {
	reader *bufio.Reader
	order  binary.ByteOrder
	buf    [8]byte
}

func (b *binaryValueReader) read(dataType string) (float64, error) {
	size := getTypeSize(dataType)
	buf := b.buf[:size]
	if _, err := io.ReadFull(b.reader, buf); err != nil {
		return 0, fmt.Errorf("unexpected end of data: %w", err)
	}

	switch dataType {
	case "char", "int8":
		return float64(int8(buf[0])), nil
	case "uchar", "uint8":
		return float64(buf[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(buf))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(buf)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(buf))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(buf)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(buf))), nil
	case "double", "float64":
		return math.Float64frombits(b.order.Uint64(buf)), nil
	}
	return 0, fmt.Errorf("unknown type %s", dataType)
}
