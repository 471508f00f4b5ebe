package gosie3d

import (
	"bytes"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plyTriangle = `ply
format ascii 1.0
element vertex 3
property float x
property float y
property float z
property uchar red
property uchar green
property uchar blue
element face 1
property list uchar int vertex_indices
end_header
0 0 0 255 0 0
1 0 0 0 255 0
0 1 0 0 0 255
3 0 1 2
`

func TestLoadPLYVertexColors(t *testing.T) {
	m, err := LoadObjectFromPLYReader(strings.NewReader(plyTriangle), FACE_NORMAL, false)
	require.NoError(t, err)
	assert.Equal(t, 1, m.FaceCount())
	assert.Equal(t, 3, m.PointCount())
	assert.Equal(t, color.RGBA{R: 85, G: 85, B: 85, A: 255}, m.faceColors[0])
}

func TestLoadPLYErrors(t *testing.T) {
	testCases := []struct {
		name string
		src  string
	}{
		{"binary", "ply\nformat binary_little_endian 1.0\nend_header\n"},
		{"no header end", "ply\nformat ascii 1.0\nelement vertex 1\n"},
		{"short vertex list", "ply\nformat ascii 1.0\nelement vertex 2\nproperty float x\nend_header\n0 0 0\n"},
		{"bad index", "ply\nformat ascii 1.0\nelement vertex 1\nelement face 1\nend_header\n0 0 0\n3 0 1 2\n"},
		{"negative face size", "ply\nformat ascii 1.0\nelement vertex 1\nelement face 1\nend_header\n0 0 0\n-1\n"},
		{"empty face with vertex colors", "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nproperty float y\nproperty float z\nproperty uchar red\nproperty uchar green\nproperty uchar blue\nelement face 1\nend_header\n0 0 0 1 1 1\n1 0 0 1 1 1\n0 1 0 1 1 1\n0\n"},
		{"two vertex face", "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nproperty float y\nproperty float z\nproperty uchar red\nproperty uchar green\nproperty uchar blue\nelement face 1\nend_header\n0 0 0 1 1 1\n1 0 0 1 1 1\n0 1 0 1 1 1\n2 0 1\n"},
		{"negative element count", "ply\nformat ascii 1.0\nelement vertex -4\nend_header\n"},
		{"bad coordinate", "ply\nformat ascii 1.0\nelement vertex 1\nend_header\na b c\n"},
		{"bad vertex color", "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nproperty float y\nproperty float z\nproperty uchar red\nproperty uchar green\nproperty uchar blue\nelement face 1\nend_header\n0 0 0 1 1 1\n1 0 0 1 1 1\n0 1 0 1 x 1\n3 0 1 2\n"},
		{"bad face color", "ply\nformat ascii 1.0\nelement vertex 3\nelement face 1\nproperty list uchar int vertex_indices\nproperty uchar red\nend_header\n0 0 0\n1 0 0\n0 1 0\n3 0 1 2 255 300 0\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadObjectFromPLYReader(strings.NewReader(tc.src), FACE_NORMAL, true)
			assert.Error(t, err)
		})
	}
}

func TestPLYRoundTrip(t *testing.T) {
	red := color.RGBA{R: 200, G: 20, B: 10, A: 255}
	box := NewBox(2, 2, 2, red)

	var buf bytes.Buffer
	require.NoError(t, box.WritePLY(&buf))

	back, err := LoadObjectFromPLYReader(&buf, FACE_NORMAL, true)
	require.NoError(t, err)
	assert.Equal(t, 6, back.FaceCount())
	assert.Equal(t, 8, back.PointCount())
	back.eachFace(func(_ []int, _ int, col color.RGBA) {
		assert.Equal(t, red, col)
	})
}

func TestDXFRoundTrip(t *testing.T) {
	sphere := NewSphere(1, 6, 4, colWhite)

	var buf bytes.Buffer
	require.NoError(t, sphere.WriteDXF(&buf))
	assert.Equal(t, sphere.FaceCount(), strings.Count(buf.String(), "3DFACE"))

	back, err := NewObjectFromDXF(&buf, FACE_NORMAL)
	require.NoError(t, err)
	assert.Equal(t, sphere.PointCount(), back.PointCount())
	assert.GreaterOrEqual(t, back.FaceCount(), sphere.FaceCount())

	// triangles come back with three points, not a repeated fourth
	triangles := 0
	back.eachFace(func(indices []int, _ int, _ color.RGBA) {
		if len(indices) == 3 {
			triangles++
		}
	})
	assert.Equal(t, 2*6, triangles)
}

func TestDXFRejectsLargePolygons(t *testing.T) {
	o := NewModel()
	o.AddFace(newTestFace(
		[3]float64{0, 0, 0}, [3]float64{1, 0, 0}, [3]float64{2, 1, 0},
		[3]float64{1, 2, 0}, [3]float64{0, 1, 0},
	))
	o.Finished(false, false)

	var buf bytes.Buffer
	assert.Error(t, o.WriteDXF(&buf))
}

func TestSaveAndLoadFiles(t *testing.T) {
	dir := t.TempDir()
	box := NewBox(1, 1, 1, colWhite)

	plyPath := filepath.Join(dir, "box.ply")
	require.NoError(t, box.SavePLYWithFaceColors(plyPath))
	m, err := LoadObjectFromPLYFile(plyPath, FACE_NORMAL, true)
	require.NoError(t, err)
	assert.Equal(t, 6, m.FaceCount())

	dxfPath := filepath.Join(dir, "box.dxf")
	require.NoError(t, box.SaveDXF(dxfPath))
	m, err = LoadObjectFromDXFFile(dxfPath, FACE_NORMAL)
	require.NoError(t, err)
	assert.Equal(t, 6, m.FaceCount())

	_, err = LoadObjectFromPLYFile(filepath.Join(dir, "missing.ply"), FACE_NORMAL, true)
	assert.Error(t, err)
}
