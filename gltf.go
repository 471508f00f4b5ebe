package gosie3d

import (
	"fmt"
	"image/color"
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

var defaultGLTFColor = color.RGBA{R: 200, G: 200, B: 200, A: 255}

// LoadObjectFromGLTFFile reads a .gltf or .glb file into a single model.
func LoadObjectFromGLTFFile(fileName string) (*Model, error) {
	doc, err := gltf.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not open glTF file %s: %w", fileName, err)
	}
	obj, err := NewObjectFromGLTF(doc)
	if err != nil {
		return nil, fmt.Errorf("error reading glTF file %s: %w", fileName, err)
	}
	return obj, nil
}

// NewObjectFromGLTF flattens the triangles of the document's default scene
// into one model, centred on the origin, with a BSP tree.
func NewObjectFromGLTF(doc *gltf.Document) (*Model, error) {
	obj := NewModel()

	var roots []int
	switch {
	case doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes):
		roots = doc.Scenes[*doc.Scene].Nodes
	case len(doc.Scenes) > 0:
		roots = doc.Scenes[0].Nodes
	default:
		for i := range doc.Nodes {
			roots = append(roots, i)
		}
	}

	var walk func(nodeIdx int, parent mgl64.Mat4) error
	walk = func(nodeIdx int, parent mgl64.Mat4) error {
		if nodeIdx < 0 || nodeIdx >= len(doc.Nodes) {
			return fmt.Errorf("node %d out of range", nodeIdx)
		}
		node := doc.Nodes[nodeIdx]
		world := parent.Mul4(nodeMatrix(node))
		if node.Mesh != nil {
			if err := addGLTFMesh(obj, doc, int(*node.Mesh), world); err != nil {
				return err
			}
		}
		for _, child := range node.Children {
			if err := walk(int(child), world); err != nil {
				return err
			}
		}
		return nil
	}
	for _, root := range roots {
		if err := walk(int(root), mgl64.Ident4()); err != nil {
			return nil, err
		}
	}

	if obj.theFaces.FaceCount() == 0 {
		return nil, fmt.Errorf("no triangles found")
	}
	log.Printf("glTF faces: %d", obj.theFaces.FaceCount())
	obj.Finished(true, true)
	return obj, nil
}

func nodeMatrix(node *gltf.Node) mgl64.Mat4 {
	if m := node.MatrixOrDefault(); m != gltf.DefaultMatrix {
		return mgl64.Mat4(m)
	}
	t := node.TranslationOrDefault()
	r := node.RotationOrDefault()
	s := node.ScaleOrDefault()
	rot := mgl64.Quat{W: r[3], V: mgl64.Vec3{r[0], r[1], r[2]}}.Mat4()
	return mgl64.Translate3D(t[0], t[1], t[2]).Mul4(rot).Mul4(mgl64.Scale3D(s[0], s[1], s[2]))
}

func addGLTFMesh(obj *Model, doc *gltf.Document, meshIdx int, world mgl64.Mat4) error {
	if meshIdx < 0 || meshIdx >= len(doc.Meshes) {
		return fmt.Errorf("mesh %d out of range", meshIdx)
	}
	toWorld := ToGoSieMatrix(world)

	for pi, prim := range doc.Meshes[meshIdx].Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		if posIdx < 0 || posIdx >= len(doc.Accessors) {
			return fmt.Errorf("mesh %d primitive %d: position accessor %d out of range", meshIdx, pi, posIdx)
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("mesh %d primitive %d positions: %w", meshIdx, pi, err)
		}

		var indices []uint32
		if prim.Indices != nil {
			if *prim.Indices < 0 || *prim.Indices >= len(doc.Accessors) {
				return fmt.Errorf("mesh %d primitive %d: index accessor %d out of range", meshIdx, pi, *prim.Indices)
			}
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return fmt.Errorf("mesh %d primitive %d indices: %w", meshIdx, pi, err)
			}
		} else {
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		col := materialColor(doc, prim.Material)
		for i := 0; i+2 < len(indices); i += 3 {
			f := NewFaceEmpty(col, nil)
			for _, idx := range indices[i : i+3] {
				if int(idx) >= len(positions) {
					return fmt.Errorf("mesh %d primitive %d: index %d out of range", meshIdx, pi, idx)
				}
				p := positions[idx]
				x, y, z := toWorld.TransformPoint(float64(p[0]), float64(p[1]), float64(p[2]))
				f.AddPoint(x, y, z)
			}
			f.Finished(FACE_NORMAL)
			obj.AddFace(f)
		}
	}
	return nil
}

func materialColor(doc *gltf.Document, material *int) color.RGBA {
	if material == nil || *material >= len(doc.Materials) {
		return defaultGLTFColor
	}
	pbr := doc.Materials[*material].PBRMetallicRoughness
	if pbr == nil {
		return defaultGLTFColor
	}
	c := pbr.BaseColorFactorOrDefault()
	return color.RGBA{
		R: uint8(clampFloat(c[0], 0, 1) * 255),
		G: uint8(clampFloat(c[1], 0, 1) * 255),
		B: uint8(clampFloat(c[2], 0, 1) * 255),
		A: 255,
	}
}
