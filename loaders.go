package gosie3d

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"
)

var (
	defaultDXFColor = color.RGBA{R: 100, G: 10, B: 58, A: 255}
	defaultPLYColor = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

func LoadObjectFromDXFFile(fileName string, reverse int) (*Model, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not open DXF file %s: %w", fileName, err)
	}
	defer file.Close()

	obj, err := NewObjectFromDXF(file, reverse)
	if err != nil {
		return nil, fmt.Errorf("error parsing DXF file %s: %w", fileName, err)
	}
	return obj, nil
}

// NewObjectFromDXF reads the 3DFACE entities of a DXF file into a model with
// its BSP tree already built.
func NewObjectFromDXF(reader io.Reader, reverse int) (*Model, error) {
	obj := NewModel()
	scanner := bufio.NewScanner(reader)

	readFloatLine := func() (float64, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, err
			}
			return 0, io.ErrUnexpectedEOF
		}
		val, err := strconv.ParseFloat(strings.TrimSpace(scanner.Text()), 64)
		if err != nil {
			return 0, fmt.Errorf("could not parse float value '%s': %w", scanner.Text(), err)
		}
		return val, nil
	}

	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) != "3DFACE" {
			continue
		}

		// group code and value of the layer, then the first group code
		for i := 0; i < 3; i++ {
			if !scanner.Scan() {
				return nil, errors.New("unexpected end of file while parsing 3DFACE header")
			}
		}

		aFace := NewFaceEmpty(defaultDXFColor, nil)
		var pts [4][3]float64
		for c := 0; c < 4; c++ {
			for axis := 0; axis < 3; axis++ {
				v, err := readFloatLine()
				if err != nil {
					return nil, fmt.Errorf("error reading coordinate %d of vertex %d: %w", axis, c, err)
				}
				pts[c][axis] = v
				if c < 3 || axis < 2 {
					scanner.Scan() // next group code
				}
			}
		}

		for c, p := range pts {
			// triangles repeat the third vertex
			if c == 3 && p == pts[2] {
				break
			}
			aFace.AddPoint(p[0], p[1], p[2])
		}
		aFace.Finished(reverse)
		obj.AddFace(aFace)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from DXF source: %w", err)
	}

	obj.Finished(false, true)
	return obj, nil
}

// plyVertex is a vertex with its color.
type plyVertex struct {
	X, Y, Z float64
	Color   color.RGBA
}

func LoadObjectFromPLYFile(fileName string, reverse int, useBsp bool) (*Model, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not open PLY file %s: %w", fileName, err)
	}
	defer file.Close()

	obj, err := LoadObjectFromPLYReader(file, reverse, useBsp)
	if err != nil {
		return nil, fmt.Errorf("error parsing PLY file %s: %w", fileName, err)
	}
	return obj, nil
}

// parsePLYColor reads three 0-255 channels.
func parsePLYColor(fields []string) (color.RGBA, error) {
	var rgb [3]uint8
	for i := range rgb {
		v, err := strconv.ParseUint(fields[i], 10, 8)
		if err != nil {
			return color.RGBA{}, err
		}
		rgb[i] = uint8(v)
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}, nil
}

// LoadObjectFromPLYReader reads an ASCII PLY file. Face colors come from the
// face element, the average of the vertex colors, or a default grey.
func LoadObjectFromPLYReader(reader io.Reader, reverse int, useBsp bool) (*Model, error) {
	obj := NewModel()
	scanner := bufio.NewScanner(reader)

	var vertexCount, faceCount int
	var hasVertexColor, hasFaceColor, sawHeaderEnd bool
	var currentElement string

header:
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) > 1 && parts[1] != "ascii" {
				return nil, fmt.Errorf("unsupported PLY format %q", parts[1])
			}
		case "element":
			if len(parts) == 3 {
				currentElement = parts[1]
				n, err := strconv.Atoi(parts[2])
				if err != nil {
					return nil, fmt.Errorf("bad element count %q: %w", parts[2], err)
				}
				if n < 0 {
					return nil, fmt.Errorf("negative element count %d", n)
				}
				switch parts[1] {
				case "vertex":
					vertexCount = n
				case "face":
					faceCount = n
				}
			}
		case "property":
			if len(parts) > 2 && (parts[2] == "red" || parts[2] == "diffuse_red") {
				switch currentElement {
				case "vertex":
					hasVertexColor = true
				case "face":
					hasFaceColor = true
				}
			}
		case "end_header":
			sawHeaderEnd = true
			break header
		}
	}
	if !sawHeaderEnd {
		return nil, errors.New("missing end_header")
	}

	vertices := make([]plyVertex, 0, vertexCount)
	for i := 0; i < vertexCount; i++ {
		if !scanner.Scan() {
			return nil, errors.New("unexpected end of file while reading vertices")
		}
		parts := strings.Fields(scanner.Text())

		vert := plyVertex{Color: color.RGBA{R: 255, G: 255, B: 255, A: 255}}
		want := 3
		if hasVertexColor {
			want = 6
		}
		if len(parts) < want {
			return nil, fmt.Errorf("invalid vertex data on line %d", i)
		}
		var xyz [3]float64
		for axis := range xyz {
			f, err := strconv.ParseFloat(parts[axis], 64)
			if err != nil {
				return nil, fmt.Errorf("vertex %d coordinate %d: %w", i, axis, err)
			}
			xyz[axis] = f
		}
		vert.X, vert.Y, vert.Z = xyz[0], xyz[1], xyz[2]
		if hasVertexColor {
			c, err := parsePLYColor(parts[3:6])
			if err != nil {
				return nil, fmt.Errorf("vertex %d color: %w", i, err)
			}
			vert.Color = c
		}
		vertices = append(vertices, vert)
	}

	for i := 0; i < faceCount; i++ {
		if !scanner.Scan() {
			return nil, errors.New("unexpected end of file while reading faces")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			return nil, fmt.Errorf("empty face on line %d", i)
		}
		numFaceVerts, err := strconv.Atoi(parts[0])
		if err != nil || numFaceVerts < 3 || len(parts) < numFaceVerts+1 {
			return nil, fmt.Errorf("invalid face data on line %d", i)
		}

		idxs := make([]int, numFaceVerts)
		for j := range idxs {
			idx, err := strconv.Atoi(parts[j+1])
			if err != nil || idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("bad vertex index %q on face %d", parts[j+1], i)
			}
			idxs[j] = idx
		}

		var faceColor color.RGBA
		switch {
		case hasFaceColor:
			if len(parts) != numFaceVerts+1+3 {
				return nil, fmt.Errorf("invalid face-color data on line %d", i)
			}
			faceColor, err = parsePLYColor(parts[numFaceVerts+1:])
			if err != nil {
				return nil, fmt.Errorf("face %d color: %w", i, err)
			}
		case hasVertexColor:
			var r, g, b int
			for _, idx := range idxs {
				r += int(vertices[idx].Color.R)
				g += int(vertices[idx].Color.G)
				b += int(vertices[idx].Color.B)
			}
			faceColor = color.RGBA{
				R: uint8(r / numFaceVerts),
				G: uint8(g / numFaceVerts),
				B: uint8(b / numFaceVerts),
				A: 255,
			}
		default:
			faceColor = defaultPLYColor
		}

		aFace := NewFaceEmpty(faceColor, nil)
		for _, idx := range idxs {
			aFace.AddPoint(vertices[idx].X, vertices[idx].Y, vertices[idx].Z)
		}
		aFace.Finished(reverse)
		obj.AddFace(aFace)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from PLY source: %w", err)
	}

	obj.Finished(false, useBsp)
	return obj, nil
}

// WriteDXF writes the model's base geometry as 3DFACE entities.
func (o *Model) WriteDXF(w io.Writer) error {
	writer := bufio.NewWriter(w)
	writePair := func(code int, value any) {
		_, _ = fmt.Fprintf(writer, "%d\n%v\n", code, value)
	}

	writePair(0, "SECTION")
	writePair(2, "HEADER")
	writePair(0, "ENDSEC")
	writePair(0, "SECTION")
	writePair(2, "ENTITIES")

	var err error
	o.eachFace(func(faceIdxs []int, _ int, _ color.RGBA) {
		if len(faceIdxs) < 3 {
			return
		}
		if len(faceIdxs) > 4 {
			err = fmt.Errorf("DXF 3DFACE cannot hold a %d sided face", len(faceIdxs))
			return
		}
		writePair(0, "3DFACE")
		writePair(8, "0")

		pts := o.faceMesh.Points.ThisMatrix
		for c := 0; c < 4; c++ {
			p := pts[faceIdxs[min(c, len(faceIdxs)-1)]]
			writePair(10+c, p[0])
			writePair(20+c, p[1])
			writePair(30+c, p[2])
		}
	})
	if err != nil {
		return err
	}

	writePair(0, "ENDSEC")
	writePair(0, "EOF")
	return writer.Flush()
}

// WritePLY writes the model's base geometry as ASCII PLY with a color per face.
func (o *Model) WritePLY(w io.Writer) error {
	writer := bufio.NewWriter(w)

	type coloredFace struct {
		indices []int
		color   color.RGBA
	}
	var allFaces []coloredFace
	o.eachFace(func(indices []int, _ int, col color.RGBA) {
		if len(indices) >= 3 {
			allFaces = append(allFaces, coloredFace{indices: indices, color: col})
		}
	})

	numVertices := o.PointCount()
	_, _ = fmt.Fprintln(writer, "ply")
	_, _ = fmt.Fprintln(writer, "format ascii 1.0")
	_, _ = fmt.Fprintln(writer, "comment Generated by gosie3d with face colors")
	_, _ = fmt.Fprintf(writer, "element vertex %d\n", numVertices)
	_, _ = fmt.Fprintln(writer, "property float x")
	_, _ = fmt.Fprintln(writer, "property float y")
	_, _ = fmt.Fprintln(writer, "property float z")
	_, _ = fmt.Fprintf(writer, "element face %d\n", len(allFaces))
	_, _ = fmt.Fprintln(writer, "property list uchar int vertex_indices")
	_, _ = fmt.Fprintln(writer, "property uchar red")
	_, _ = fmt.Fprintln(writer, "property uchar green")
	_, _ = fmt.Fprintln(writer, "property uchar blue")
	_, _ = fmt.Fprintln(writer, "end_header")

	if numVertices > 0 {
		for _, vertex := range o.faceMesh.Points.ThisMatrix {
			_, _ = fmt.Fprintf(writer, "%f %f %f\n", vertex[0], vertex[1], vertex[2])
		}
	}

	for _, face := range allFaces {
		_, _ = fmt.Fprintf(writer, "%d", len(face.indices))
		for _, vIndex := range face.indices {
			_, _ = fmt.Fprintf(writer, " %d", vIndex)
		}
		_, _ = fmt.Fprintf(writer, " %d %d %d\n", face.color.R, face.color.G, face.color.B)
	}

	return writer.Flush()
}

// SaveDXF writes the model to fileName in DXF format.
func (o *Model) SaveDXF(fileName string) error {
	return saveFile(fileName, o.WriteDXF)
}

// SavePLYWithFaceColors writes the model to fileName in PLY format.
func (o *Model) SavePLYWithFaceColors(fileName string) error {
	return saveFile(fileName, o.WritePLY)
}

func saveFile(fileName string, write func(io.Writer) error) error {
	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", fileName, err)
	}
	if err := write(file); err != nil {
		file.Close()
		return fmt.Errorf("could not write %s: %w", fileName, err)
	}
	return file.Close()
}
