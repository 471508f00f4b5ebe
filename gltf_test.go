package gosie3d

import (
	"image/color"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quadDocument builds a document with one red two-triangle quad, placed in
// the scene through a child node.
func quadDocument() *gltf.Document {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2, 0, 2, 3})

	doc.Materials = []*gltf.Material{{
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{BaseColorFactor: &[4]float64{1, 0, 0, 1}},
	}}
	doc.Meshes = []*gltf.Mesh{{
		Primitives: []*gltf.Primitive{{
			Attributes: map[string]int{gltf.POSITION: pos},
			Indices:    gltf.Index(idx),
			Material:   gltf.Index(0),
		}},
	}}
	doc.Nodes = []*gltf.Node{
		{Children: []int{1}, Translation: [3]float64{5, 0, 0}},
		{Mesh: gltf.Index(0)},
	}
	doc.Scenes[0].Nodes = []int{0}
	return doc
}

func TestNewObjectFromGLTF(t *testing.T) {
	m, err := NewObjectFromGLTF(quadDocument())
	require.NoError(t, err)

	assert.Equal(t, 2, m.FaceCount())
	assert.Equal(t, 4, m.PointCount())
	m.eachFace(func(_ []int, _ int, col color.RGBA) {
		assert.Equal(t, color.RGBA{R: 255, A: 255}, col)
	})

	// centred on load
	min, max, ok := m.bounds()
	require.True(t, ok)
	assert.InDelta(t, -0.5, min[0], 1e-6)
	assert.InDelta(t, 0.5, max[0], 1e-6)
}

func TestNewObjectFromGLTFNoTriangles(t *testing.T) {
	doc := gltf.NewDocument()
	_, err := NewObjectFromGLTF(doc)
	assert.Error(t, err)
}

func TestNewObjectFromGLTFBadNode(t *testing.T) {
	doc := quadDocument()
	doc.Scenes[0].Nodes = []int{7}
	_, err := NewObjectFromGLTF(doc)
	assert.Error(t, err)
}

func TestNewObjectFromGLTFBadAccessor(t *testing.T) {
	testCases := []struct {
		name    string
		breakIt func(prim *gltf.Primitive)
	}{
		{"position", func(prim *gltf.Primitive) { prim.Attributes[gltf.POSITION] = 42 }},
		{"indices", func(prim *gltf.Primitive) { prim.Indices = gltf.Index(42) }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc := quadDocument()
			tc.breakIt(doc.Meshes[0].Primitives[0])
			_, err := NewObjectFromGLTF(doc)
			assert.ErrorContains(t, err, "out of range")
		})
	}
}

func TestMaterialColorDefault(t *testing.T) {
	doc := gltf.NewDocument()
	assert.Equal(t, defaultGLTFColor, materialColor(doc, nil))
	assert.Equal(t, defaultGLTFColor, materialColor(doc, gltf.Index(3)))
}
